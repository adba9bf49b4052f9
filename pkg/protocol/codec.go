package protocol

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ZentaChain/zentalk-content/pkg/content"
	"github.com/ZentaChain/zentalk-content/pkg/extension"
	"github.com/ZentaChain/zentalk-content/pkg/wire"
)

// Config is fixed when a Codec is built.
type Config struct {
	Limits wire.Limits

	// CanonicalExtensions makes validation require strictly increasing
	// extension ids.
	CanonicalExtensions bool

	// Logger receives debug records for rejected input. Nil disables logging.
	Logger *zerolog.Logger
}

func DefaultConfig() Config {
	return Config{Limits: wire.DefaultLimits()}
}

// Codec encodes, decodes and validates envelopes under one Config.
type Codec struct {
	lim       wire.Limits
	canonical bool
	log       zerolog.Logger
}

// NewCodec returns a Codec for cfg.
func NewCodec(cfg Config) (*Codec, error) {
	if err := cfg.Limits.Validate(); err != nil {
		return nil, err
	}
	c := &Codec{
		lim:       cfg.Limits,
		canonical: cfg.CanonicalExtensions,
		log:       zerolog.Nop(),
	}
	if cfg.Logger != nil {
		c.log = cfg.Logger.With().Str("component", "codec").Logger()
	}
	return c, nil
}

func (c *Codec) Limits() wire.Limits { return c.lim }

// Encode writes env without validating it. Encoding still fails on values
// that have no representation, such as missing content or nesting past the
// limit.
func (c *Codec) Encode(env Envelope) ([]byte, error) {
	buf := AppendVersion(make([]byte, 0, 64))

	buf, err := content.AppendLimit(buf, env.Content, c.lim.MaxNesting)
	if err != nil {
		c.log.Debug().Err(err).Str("kind", KindOf(err).String()).Msg("encode rejected")
		return nil, fmt.Errorf("protocol: encode content: %w", err)
	}

	buf = wire.AppendOptionalBytes(buf, env.ReplyTo)
	buf = wire.AppendOptionalBytes(buf, env.Replaces)
	buf = wire.AppendPresence(buf, env.Expires != nil)
	if env.Expires != nil {
		buf = wire.AppendUint64(buf, uint64(*env.Expires))
	}
	buf = wire.AppendOptionalString(buf, env.FallbackText)

	if buf, err = extension.Append(buf, env.Extensions); err != nil {
		c.log.Debug().Err(err).Str("kind", KindOf(err).String()).Msg("encode rejected")
		return nil, fmt.Errorf("protocol: encode extensions: %w", err)
	}
	return buf, nil
}

// EncodeChecked validates env and encodes it only if it conforms.
func (c *Codec) EncodeChecked(env Envelope) ([]byte, error) {
	if err := c.Validate(env); err != nil {
		return nil, err
	}
	return c.Encode(env)
}

// Decode parses buf and validates the result. It returns the first error
// encountered.
func (c *Codec) Decode(buf []byte) (Envelope, error) {
	env, err := c.DecodeStructural(buf)
	if err == nil {
		err = c.Validate(env)
	}
	if err != nil {
		c.log.Debug().
			Err(err).
			Str("kind", KindOf(err).String()).
			Int("size", len(buf)).
			Msg("decode rejected")
		return Envelope{}, err
	}

	c.log.Trace().
		Stringer("content", env.Content.Tag()).
		Int("size", len(buf)).
		Int("extensions", len(env.Extensions)).
		Msg("decoded envelope")
	return env, nil
}

// DecodeStructural parses buf without running Validate. Tools that need to
// inspect non-conformant input use it; everything else uses Decode.
//
// Framing is still checked: bytes left over inside a known content body or
// after the envelope fail with a *ValidationError of rule length, since no
// envelope can be built from them.
func (c *Codec) DecodeStructural(buf []byte) (Envelope, error) {
	if _, err := ReadVersion(buf); err != nil {
		return Envelope{}, err
	}

	var (
		env Envelope
		err error
	)
	r := wire.NewReader(buf, VersionSize, c.lim)

	if env.Content, err = content.Read(r); err != nil {
		return Envelope{}, fmt.Errorf("protocol: content: %w", err)
	}
	if env.ReplyTo, err = r.OptionalBytes("reply_to"); err != nil {
		return Envelope{}, err
	}
	if env.Replaces, err = r.OptionalBytes("replaces"); err != nil {
		return Envelope{}, err
	}

	ok, err := r.Present("expires")
	if err != nil {
		return Envelope{}, err
	}
	if ok {
		ms, err := r.Uint64("expires")
		if err != nil {
			return Envelope{}, err
		}
		ts := wire.Timestamp(ms)
		env.Expires = &ts
	}

	if env.FallbackText, err = r.OptionalString("fallback_text"); err != nil {
		return Envelope{}, err
	}
	if env.Extensions, err = extension.Read(r); err != nil {
		return Envelope{}, fmt.Errorf("protocol: %w", err)
	}
	if err := r.Done("envelope"); err != nil {
		return Envelope{}, err
	}
	return env, nil
}

var defaultCodec = mustCodec(DefaultConfig())

func mustCodec(cfg Config) *Codec {
	c, err := NewCodec(cfg)
	if err != nil {
		panic(fmt.Sprintf("protocol: default codec: %v", err))
	}
	return c
}

// Encode encodes env with the default configuration.
func Encode(env Envelope) ([]byte, error) {
	return defaultCodec.Encode(env)
}

// EncodeChecked validates and encodes env with the default configuration.
func EncodeChecked(env Envelope) ([]byte, error) {
	return defaultCodec.EncodeChecked(env)
}

// Decode decodes and validates buf with the default configuration.
func Decode(buf []byte) (Envelope, error) {
	return defaultCodec.Decode(buf)
}

// Validate checks env with the default configuration.
func Validate(env Envelope) error {
	return defaultCodec.Validate(env)
}
