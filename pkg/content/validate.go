package content

import (
	"math"
	"mime"
	"unicode/utf8"

	"github.com/ZentaChain/zentalk-content/pkg/wire"
)

// Validate checks c against the semantic rules of its variant. Failures are
// *wire.ValidationError values whose Field is a dotted path into c.
func Validate(c Content, lim wire.Limits) error {
	if err := validate(c, lim, 1); err != nil {
		return err
	}
	return nil
}

func validate(c Content, lim wire.Limits, depth int) *wire.ValidationError {
	if err := validateFields(c, lim, depth); err != nil {
		return err
	}
	return checkFrame(c, lim, depth)
}

// checkFrame bounds the encoded body of c by MaxFieldLength, the same bound
// the decoder puts on body_len.
func checkFrame(c Content, lim wire.Limits, depth int) *wire.ValidationError {
	body, err := c.appendBody(nil, depth, lim.MaxNesting)
	if err != nil {
		return &wire.ValidationError{Rule: wire.RuleRange, Field: "body", Reason: err.Error(), Err: err}
	}
	if uint64(len(body)) > lim.MaxFieldLength {
		return wire.Invalid(wire.RuleLength, "body", "encoded body of %d bytes exceeds %d",
			len(body), lim.MaxFieldLength).At(pathName(c))
	}
	return nil
}

func pathName(c Content) string {
	switch t := c.Tag(); {
	case t == TagGroupOperation:
		return "group"
	case t.Known():
		return t.String()
	}
	return "unknown"
}

func validateFields(c Content, lim wire.Limits, depth int) *wire.ValidationError {
	if c == nil {
		return wire.Invalid(wire.RuleRequired, "content", "missing")
	}
	if depth > lim.MaxNesting {
		return wire.Invalid(wire.RuleNesting, "content", "depth %d exceeds %d", depth, lim.MaxNesting)
	}

	v := validator{lim: lim}
	switch c := c.(type) {
	case Text:
		v.text("body", c.Body, false)
		return v.at("text")

	case Attachment:
		v.text("content_id", c.ContentID, true)
		v.text("media_type", c.MediaType, true)
		v.text("filename", c.Filename, false)
		if v.err == nil {
			if _, _, err := mime.ParseMediaType(c.MediaType); err != nil {
				v.fail(wire.RuleRange, "media_type", "%q is not a media type", c.MediaType)
			}
		}
		v.bytes("hash", c.Hash)
		if v.err == nil {
			if c.HashAlgorithm == HashNone && len(c.Hash) > 0 {
				v.fail(wire.RuleRange, "hash", "hash present without an algorithm")
			} else if size, ok := c.HashAlgorithm.Size(); ok && len(c.Hash) != size {
				v.fail(wire.RuleLength, "hash", "%d bytes, algorithm %d needs %d", len(c.Hash), c.HashAlgorithm, size)
			}
		}
		if c.DecryptionRef != nil {
			v.reference("decryption_ref", c.DecryptionRef)
		}
		v.text("description", c.Description, false)
		if c.Expires != nil && *c.Expires == 0 {
			v.fail(wire.RuleRange, "expires", "zero timestamp")
		}
		return v.at("attachment")

	case Reaction:
		v.reference("target", c.Target)
		v.list("emoji", len(c.Emoji), 1)
		for _, cp := range c.Emoji {
			if v.err == nil && !utf8.ValidRune(cp) {
				v.fail(wire.RuleRange, "emoji", "U+%04X is not a Unicode scalar value", cp)
			}
		}
		return v.at("reaction")

	case Location:
		v.coordinate("latitude", c.Latitude, 90)
		v.coordinate("longitude", c.Longitude, 180)
		if c.Label != nil {
			v.text("label", *c.Label, true)
		}
		return v.at("location")

	case Edit:
		v.reference("target", c.Target)
		if v.err == nil {
			if err := validate(c.New, lim, depth+1); err != nil {
				return err.At("new").At("edit")
			}
		}
		return v.at("edit")

	case Delete:
		v.reference("target", c.Target)
		return v.at("delete")

	case Poll:
		v.text("question", c.Question, true)
		v.list("options", len(c.Options), 2)
		for _, o := range c.Options {
			v.text("options", o, true)
		}
		return v.at("poll")

	case GroupOperation:
		v.groupOperation(c)
		return v.at("group")

	case Receipt:
		v.list("statuses", len(c.Statuses), 1)
		for _, s := range c.Statuses {
			v.reference("statuses.target", s.Target)
		}
		return v.at("receipt")

	case Multipart:
		if c.Semantics > ProcessAll {
			v.fail(wire.RuleRange, "semantics", "unknown semantics %d", c.Semantics)
		}
		v.list("parts", len(c.Parts), 1)
		if v.err != nil {
			return v.at("multipart")
		}
		for _, p := range c.Parts {
			if err := validate(p.Content, lim, depth+1); err != nil {
				return err.At("parts").At("multipart")
			}
		}
		return nil

	case Unknown:
		if c.ID.Known() {
			return wire.Invalid(wire.RuleTag, "unknown", "tag %d belongs to %s", uint64(c.ID), c.ID)
		}
		if uint64(c.ID) > wire.MaxVarint {
			return wire.Invalid(wire.RuleRange, "unknown", "tag %d exceeds %d", uint64(c.ID), uint64(wire.MaxVarint))
		}
		v.bytes("payload", c.Payload)
		return v.at("unknown")
	}
	return wire.Invalid(wire.RuleTag, "content", "unsupported content type %T", c)
}

// validator keeps the first failure; later checks are no-ops once one fails.
type validator struct {
	lim wire.Limits
	err *wire.ValidationError
}

func (v *validator) fail(rule wire.Rule, field, format string, args ...any) {
	if v.err == nil {
		v.err = wire.Invalid(rule, field, format, args...)
	}
}

func (v *validator) at(parent string) *wire.ValidationError {
	if v.err == nil {
		return nil
	}
	return v.err.At(parent)
}

func (v *validator) text(field, s string, required bool) {
	switch {
	case required && s == "":
		v.fail(wire.RuleRequired, field, "empty")
	case uint64(len(s)) > v.lim.MaxFieldLength:
		v.fail(wire.RuleLength, field, "%d bytes exceeds %d", len(s), v.lim.MaxFieldLength)
	case !utf8.ValidString(s):
		v.fail(wire.RuleUTF8, field, "invalid UTF-8")
	}
}

func (v *validator) bytes(field string, b []byte) {
	if uint64(len(b)) > v.lim.MaxFieldLength {
		v.fail(wire.RuleLength, field, "%d bytes exceeds %d", len(b), v.lim.MaxFieldLength)
	}
}

func (v *validator) reference(field string, ref []byte) {
	switch {
	case len(ref) == 0:
		v.fail(wire.RuleRequired, field, "empty reference")
	case len(ref) > v.lim.MaxReferenceLength:
		v.fail(wire.RuleLength, field, "%d bytes exceeds %d", len(ref), v.lim.MaxReferenceLength)
	}
}

func (v *validator) list(field string, n, min int) {
	switch {
	case n < min:
		v.fail(wire.RuleRequired, field, "%d entries, need at least %d", n, min)
	case uint64(n) > v.lim.MaxListItems:
		v.fail(wire.RuleLength, field, "%d entries exceeds %d", n, v.lim.MaxListItems)
	}
}

func (v *validator) coordinate(field string, deg, bound float64) {
	if math.IsNaN(deg) || deg < -bound || deg > bound {
		v.fail(wire.RuleRange, field, "%v outside [%v, %v]", deg, -bound, bound)
	}
}

func (v *validator) groupOperation(c GroupOperation) {
	switch c.Op {
	case GroupRename:
		if len(c.Operands) != 1 {
			v.fail(wire.RuleRequired, "operands", "rename takes exactly one name, got %d", len(c.Operands))
			return
		}
		v.text("operands", string(c.Operands[0]), true)
	case GroupAddMembers, GroupRemoveMembers, GroupChangeAdmins:
		v.list("operands", len(c.Operands), 1)
		for _, o := range c.Operands {
			if len(o) == 0 {
				v.fail(wire.RuleRequired, "operands", "empty member id")
			}
			v.bytes("operands", o)
		}
	default:
		v.list("operands", len(c.Operands), 0)
		for _, o := range c.Operands {
			v.bytes("operands", o)
		}
	}
}
