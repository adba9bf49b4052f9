package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/ZentaChain/zentalk-content/pkg/content"
	"github.com/ZentaChain/zentalk-content/pkg/extension"
	"github.com/ZentaChain/zentalk-content/pkg/protocol"
	"github.com/ZentaChain/zentalk-content/pkg/wire"
)

// envelopeFlags are shared by every encode subcommand.
type envelopeFlags struct {
	replyTo  string
	replaces string
	expires  time.Duration
	fallback string
	lang     string
	exts     []string
	topic    string
}

var encFlags envelopeFlags

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Build, validate and encode an envelope",
}

var encodeTextCmd = &cobra.Command{
	Use:   "text <body>",
	Short: "Encode a text message",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEncode(cmd, content.Text{Body: args[0]})
	},
}

var encodeLocationCmd = &cobra.Command{
	Use:   "location <latitude> <longitude> [label]",
	Short: "Encode a location",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		loc, err := parseLocation(args)
		if err != nil {
			return err
		}
		return runEncode(cmd, loc)
	},
}

var encodeDeleteCmd = &cobra.Command{
	Use:   "delete <target-hex>",
	Short: "Encode a delete request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := parseReference("target", args[0])
		if err != nil {
			return err
		}
		return runEncode(cmd, content.Delete{Target: target})
	},
}

var encodeReactCmd = &cobra.Command{
	Use:   "react <target-hex> <emoji>",
	Short: "Encode a reaction",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := parseReference("target", args[0])
		if err != nil {
			return err
		}
		return runEncode(cmd, content.Reaction{Target: target, Emoji: []rune(args[1])})
	},
}

func init() {
	f := encodeCmd.PersistentFlags()
	f.StringVar(&encFlags.replyTo, "reply-to", "", "reference of the message replied to (hex)")
	f.StringVar(&encFlags.replaces, "replaces", "", "reference of the message replaced (hex)")
	f.DurationVar(&encFlags.expires, "expires", 0, "expire the message after this duration")
	f.StringVar(&encFlags.fallback, "fallback", "", "explicit fallback text")
	f.StringVar(&encFlags.lang, "lang", "", "BCP 47 language tag of the content")
	f.StringVar(&encFlags.topic, "topic", "", "topic identifier (hex)")
	f.StringArrayVar(&encFlags.exts, "ext", nil, "extension as id=hex, repeatable")

	encodeCmd.AddCommand(encodeTextCmd, encodeLocationCmd, encodeDeleteCmd, encodeReactCmd)
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, c content.Content) error {
	env, err := encFlags.envelope(c, time.Now())
	if err != nil {
		return err
	}
	buf, err := codec.EncodeChecked(env)
	if err != nil {
		return err
	}
	logger.Debug().
		Stringer("content", c.Tag()).
		Int("size", len(buf)).
		Int("extensions", len(env.Extensions)).
		Msg("encoded envelope")
	return writeOutput(cmd.OutOrStdout(), buf, hexIO)
}

// envelope wraps c with the metadata named by the flags. now anchors the
// expiration time.
func (f envelopeFlags) envelope(c content.Content, now time.Time) (protocol.Envelope, error) {
	env := protocol.Envelope{Content: c}

	var err error
	if f.replyTo != "" {
		if env.ReplyTo, err = parseReference("reply-to", f.replyTo); err != nil {
			return env, err
		}
	}
	if f.replaces != "" {
		if env.Replaces, err = parseReference("replaces", f.replaces); err != nil {
			return env, err
		}
	}
	if f.expires > 0 {
		ts := wire.TimestampOf(now.Add(f.expires))
		env.Expires = &ts
	}
	if f.fallback != "" {
		text := f.fallback
		env.FallbackText = &text
	}
	if f.lang != "" {
		tag, err := language.Parse(f.lang)
		if err != nil {
			return env, fmt.Errorf("--lang: %w", err)
		}
		env.Extensions = append(env.Extensions, protocol.LanguageExtension(tag))
	}
	if f.topic != "" {
		topic, err := hex.DecodeString(f.topic)
		if err != nil {
			return env, fmt.Errorf("--topic: %w", err)
		}
		env.Extensions = append(env.Extensions, protocol.TopicExtension(topic))
	}
	for _, raw := range f.exts {
		ext, err := parseExtension(raw)
		if err != nil {
			return env, err
		}
		env.Extensions = append(env.Extensions, ext)
	}
	return env, nil
}

// parseExtension parses "id=hex". The payload may be empty.
func parseExtension(raw string) (extension.Extension, error) {
	idPart, payloadPart, ok := strings.Cut(raw, "=")
	if !ok {
		return extension.Extension{}, fmt.Errorf("--ext %q: want id=hex", raw)
	}
	id, err := strconv.ParseUint(idPart, 10, 64)
	if err != nil {
		return extension.Extension{}, fmt.Errorf("--ext %q: id: %w", raw, err)
	}
	payload, err := hex.DecodeString(payloadPart)
	if err != nil {
		return extension.Extension{}, fmt.Errorf("--ext %q: payload: %w", raw, err)
	}
	return extension.Extension{ID: id, Payload: payload}, nil
}

func parseReference(name, raw string) (content.Reference, error) {
	ref, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return ref, nil
}

func parseLocation(args []string) (content.Location, error) {
	lat, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return content.Location{}, fmt.Errorf("latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return content.Location{}, fmt.Errorf("longitude: %w", err)
	}
	loc := content.Location{Latitude: lat, Longitude: lon}
	if len(args) == 3 {
		label := args[2]
		loc.Label = &label
	}
	return loc, nil
}
