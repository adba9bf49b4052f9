// Command mimictl encodes, decodes and inspects message content envelopes.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ZentaChain/zentalk-content/internal/config"
	"github.com/ZentaChain/zentalk-content/internal/logging"
	"github.com/ZentaChain/zentalk-content/pkg/protocol"
	"github.com/ZentaChain/zentalk-content/pkg/wire"
)

var (
	version = "dev"
	commit  = "unknown"
)

var (
	configPath string
	logLevel   string
	hexIO      bool

	logger zerolog.Logger
	codec  *protocol.Codec
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mimictl",
	Short: "Encode, decode and inspect message content envelopes",
	Long: `mimictl converts between message content envelopes and their binary
encoding. Input and output are raw bytes unless --hex is given.`,
	Version:       fmt.Sprintf("%s (commit: %s, protocol %s)", version, commit, protocol.FormatVersion(protocol.ProtocolVersion)),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		opts := logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format}
		if logLevel != "" {
			opts.Level = logLevel
		}
		logger = logging.New(os.Stderr, opts)

		codecCfg := cfg.Codec()
		codecCfg.Logger = &logger
		if codec, err = protocol.NewCodec(codecCfg); err != nil {
			return fmt.Errorf("codec: %w", err)
		}
		logger.Debug().
			Str("config", configPath).
			Uint64("max_field_length", codecCfg.Limits.MaxFieldLength).
			Int("max_nesting", codecCfg.Limits.MaxNesting).
			Msg("codec ready")
		return nil
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&hexIO, "hex", "x", false, "read and write hex instead of raw bytes")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode separates malformed input (2) from non-conformant input (3).
func exitCode(err error) int {
	switch protocol.KindOf(err) {
	case wire.KindValidation:
		return 3
	case wire.KindTruncatedInput, wire.KindFieldOutOfRange, wire.KindInvalidUTF8,
		wire.KindDuplicateExtensionID, wire.KindUnsupportedVersion:
		return 2
	}
	return 1
}
