// Package config loads mimictl settings from an optional TOML file.
//
//	[limits]
//	max_field_length = "1MiB"
//	max_extensions = 64
//	max_list_items = 1024
//	max_nesting = 8
//	max_reference_length = 255
//	canonical_extensions = false
//
//	[log]
//	level = "info"
//	format = "console"
//
// Keys left out keep their defaults. Unknown keys are an error so typos do
// not silently fall back to defaults.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ZentaChain/zentalk-content/pkg/protocol"
	"github.com/ZentaChain/zentalk-content/pkg/wire"
)

type Config struct {
	Limits LimitsConfig `toml:"limits"`
	Log    LogConfig    `toml:"log"`
}

type LimitsConfig struct {
	MaxFieldLength      SizeBytes `toml:"max_field_length"`
	MaxExtensions       uint64    `toml:"max_extensions"`
	MaxListItems        uint64    `toml:"max_list_items"`
	MaxNesting          int       `toml:"max_nesting"`
	MaxReferenceLength  SizeBytes `toml:"max_reference_length"`
	CanonicalExtensions bool      `toml:"canonical_extensions"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // console | json
}

// Default mirrors protocol.DefaultConfig.
func Default() Config {
	lim := wire.DefaultLimits()
	return Config{
		Limits: LimitsConfig{
			MaxFieldLength:     SizeBytes(lim.MaxFieldLength),
			MaxExtensions:      lim.MaxExtensions,
			MaxListItems:       lim.MaxListItems,
			MaxNesting:         lim.MaxNesting,
			MaxReferenceLength: SizeBytes(lim.MaxReferenceLength),
		},
		Log: LogConfig{Level: "info", Format: "console"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("config parse failed (%s): unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults.
func Parse(data string) (Config, error) {
	cfg := Default()
	meta, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config parse failed: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config parse failed: unknown key %s", undecoded[0])
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := c.WireLimits().Validate(); err != nil {
		return err
	}
	if c.Limits.MaxExtensions == 0 {
		return fmt.Errorf("limits.max_extensions must be positive")
	}
	if c.Limits.MaxReferenceLength > c.Limits.MaxFieldLength {
		return fmt.Errorf("limits.max_reference_length %s exceeds limits.max_field_length %s",
			c.Limits.MaxReferenceLength, c.Limits.MaxFieldLength)
	}
	switch strings.ToLower(strings.TrimSpace(c.Log.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("log.format %q must be console or json", c.Log.Format)
	}
	return nil
}

func (c Config) WireLimits() wire.Limits {
	return wire.Limits{
		MaxFieldLength:     uint64(c.Limits.MaxFieldLength),
		MaxExtensions:      c.Limits.MaxExtensions,
		MaxListItems:       c.Limits.MaxListItems,
		MaxNesting:         c.Limits.MaxNesting,
		MaxReferenceLength: int(c.Limits.MaxReferenceLength),
	}
}

// Codec returns the codec configuration. The caller attaches a logger.
func (c Config) Codec() protocol.Config {
	return protocol.Config{
		Limits:              c.WireLimits(),
		CanonicalExtensions: c.Limits.CanonicalExtensions,
	}
}
