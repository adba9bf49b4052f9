package protocol

import (
	"errors"
	"unicode/utf8"

	"github.com/ZentaChain/zentalk-content/pkg/content"
	"github.com/ZentaChain/zentalk-content/pkg/extension"
	"github.com/ZentaChain/zentalk-content/pkg/wire"
)

// Validate applies the semantic rules to env. A failure is always a
// *ValidationError and matches ErrValidation.
func (c *Codec) Validate(env Envelope) error {
	if err := content.Validate(env.Content, c.lim); err != nil {
		return err
	}
	if err := c.checkReference("reply_to", env.ReplyTo); err != nil {
		return err
	}
	if err := c.checkReference("replaces", env.Replaces); err != nil {
		return err
	}
	if env.Expires != nil && *env.Expires == 0 {
		return wire.Invalid(wire.RuleRange, "expires", "zero timestamp")
	}
	if env.FallbackText != nil {
		switch s := *env.FallbackText; {
		case s == "":
			return wire.Invalid(wire.RuleRequired, "fallback_text", "present but empty")
		case uint64(len(s)) > c.lim.MaxFieldLength:
			return wire.Invalid(wire.RuleLength, "fallback_text", "%d bytes exceeds %d", len(s), c.lim.MaxFieldLength)
		case !utf8.ValidString(s):
			return wire.Invalid(wire.RuleUTF8, "fallback_text", "invalid UTF-8")
		}
	}
	if err := c.checkExtensions(env.Extensions); err != nil {
		return err
	}
	return c.checkReplyHash(env)
}

// checkReplyHash holds the reply hash extension, when sent, to the same
// rules as an attachment hash.
func (c *Codec) checkReplyHash(env Envelope) error {
	alg, hash, ok, err := env.ReplyHash(c.lim)
	switch {
	case !ok:
		return nil
	case err != nil:
		var ve *wire.ValidationError
		if errors.As(err, &ve) {
			return ve.At("extensions")
		}
		return &wire.ValidationError{Rule: wire.RuleLength, Field: "extensions.reply_hash", Reason: err.Error(), Err: err}
	case env.ReplyTo == nil:
		return wire.Invalid(wire.RuleRequired, "extensions.reply_hash", "reply hash without reply_to")
	case alg == content.HashNone:
		return wire.Invalid(wire.RuleRange, "extensions.reply_hash", "no hash algorithm")
	}
	if size, known := alg.Size(); known && len(hash) != size {
		return wire.Invalid(wire.RuleLength, "extensions.reply_hash", "%d bytes, algorithm %d needs %d", len(hash), alg, size)
	}
	if len(hash) == 0 {
		return wire.Invalid(wire.RuleRequired, "extensions.reply_hash", "empty hash")
	}
	return nil
}

func (c *Codec) checkReference(field string, ref content.Reference) error {
	switch {
	case ref == nil:
		return nil
	case len(ref) == 0:
		return wire.Invalid(wire.RuleRequired, field, "present but empty")
	case len(ref) > c.lim.MaxReferenceLength:
		return wire.Invalid(wire.RuleLength, field, "%d bytes exceeds %d", len(ref), c.lim.MaxReferenceLength)
	}
	return nil
}

func (c *Codec) checkExtensions(exts []extension.Extension) error {
	if uint64(len(exts)) > c.lim.MaxExtensions {
		return wire.Invalid(wire.RuleLength, "extensions", "%d entries exceeds %d", len(exts), c.lim.MaxExtensions)
	}
	if err := extension.CheckUnique(exts); err != nil {
		return &wire.ValidationError{Rule: wire.RuleUnique, Field: "extensions", Reason: err.Error(), Err: err}
	}
	for _, e := range exts {
		if e.ID > wire.MaxVarint {
			return wire.Invalid(wire.RuleRange, "extensions", "id %d exceeds %d", e.ID, wire.MaxVarint)
		}
		if uint64(len(e.Payload)) > c.lim.MaxFieldLength {
			return wire.Invalid(wire.RuleLength, "extensions", "id %d payload of %d bytes exceeds %d",
				e.ID, len(e.Payload), c.lim.MaxFieldLength)
		}
	}
	if c.canonical && !extension.IsCanonical(exts) {
		return wire.Invalid(wire.RuleOrder, "extensions", "ids are not strictly increasing")
	}
	return nil
}
