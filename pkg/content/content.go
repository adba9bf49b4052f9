// Package content implements the message content variants: a tagged union of
// known kinds plus Unknown, which carries any tag this version does not
// recognize as an opaque payload.
//
// Every variant is framed the same way on the wire:
//
//	content ::= tag(varint) | body_len(varint) | body
//
// Dispatch is on the tag alone. A known tag decodes its declared field
// sequence from the body, which the fields must fill exactly. An unknown tag
// keeps the body bytes verbatim, so re-encoding reproduces them.
//
// Edit and Multipart embed further content. Nesting depth is counted on both
// decode and encode, with the top-level content at depth 1.
//
// Variants are immutable values; nothing in this package holds mutable
// state, and every function is safe for concurrent use.
package content

import (
	"encoding/hex"
	"fmt"

	"github.com/ZentaChain/zentalk-content/pkg/wire"
)

// Tag selects a content variant.
type Tag uint64

const (
	TagText           Tag = 1
	TagAttachment     Tag = 2
	TagReaction       Tag = 3
	TagLocation       Tag = 4
	TagEdit           Tag = 5
	TagDelete         Tag = 6
	TagPoll           Tag = 7
	TagGroupOperation Tag = 8
	TagReceipt        Tag = 9
	TagMultipart      Tag = 10
)

var tagNames = map[Tag]string{
	TagText:           "text",
	TagAttachment:     "attachment",
	TagReaction:       "reaction",
	TagLocation:       "location",
	TagEdit:           "edit",
	TagDelete:         "delete",
	TagPoll:           "poll",
	TagGroupOperation: "group_operation",
	TagReceipt:        "receipt",
	TagMultipart:      "multipart",
}

// Known reports whether t names a variant this package decodes.
func (t Tag) Known() bool {
	_, ok := tagNames[t]
	return ok
}

func (t Tag) String() string {
	if n, ok := tagNames[t]; ok {
		return n
	}
	return fmt.Sprintf("unknown(%d)", uint64(t))
}

// Content is one variant of the union. The set of implementations is closed;
// forward compatibility goes through Unknown.
type Content interface {
	Tag() Tag
	appendBody(dst []byte, depth, max int) ([]byte, error)
}

// Reference is an opaque message identifier.
type Reference []byte

func (r Reference) String() string {
	return hex.EncodeToString(r)
}

// Encode returns the framed encoding of c.
func Encode(c Content) ([]byte, error) {
	return Append(nil, c)
}

// Append appends the framed encoding of c to dst, bounding nesting by the
// default limits.
func Append(dst []byte, c Content) ([]byte, error) {
	return AppendLimit(dst, c, wire.DefaultLimits().MaxNesting)
}

// AppendLimit is Append with an explicit nesting bound.
func AppendLimit(dst []byte, c Content, maxDepth int) ([]byte, error) {
	return appendContent(dst, c, 1, maxDepth)
}

func appendContent(dst []byte, c Content, depth, max int) ([]byte, error) {
	if c == nil {
		return dst, wire.Invalid(wire.RuleRequired, "content", "missing")
	}
	if depth > max {
		return dst, fmt.Errorf("%w: content nesting depth %d exceeds %d", wire.ErrFieldOutOfRange, depth, max)
	}
	body, err := c.appendBody(nil, depth, max)
	if err != nil {
		return dst, fmt.Errorf("%s: %w", c.Tag(), err)
	}
	if dst, err = wire.AppendVarint(dst, uint64(c.Tag())); err != nil {
		return dst, err
	}
	return wire.AppendBytes(dst, body), nil
}

// Decode reads one content value at off and returns it with the offset just
// past it.
func Decode(buf []byte, off int, lim wire.Limits) (Content, int, error) {
	r := wire.NewReader(buf, off, lim)
	c, err := Read(r)
	if err != nil {
		return nil, off, err
	}
	return c, r.Offset(), nil
}

// Read decodes one content value from r.
func Read(r *wire.Reader) (Content, error) {
	return read(r, 1)
}

func read(r *wire.Reader, depth int) (Content, error) {
	if max := r.Limits().MaxNesting; depth > max {
		return nil, fmt.Errorf("%w: content nesting depth %d exceeds %d at offset %d",
			wire.ErrFieldOutOfRange, depth, max, r.Offset())
	}
	raw, err := r.Varint("content.tag")
	if err != nil {
		return nil, err
	}
	tag := Tag(raw)
	body, err := r.Sub("content.body")
	if err != nil {
		return nil, err
	}

	var c Content
	switch tag {
	case TagText:
		c, err = readText(body)
	case TagAttachment:
		c, err = readAttachment(body)
	case TagReaction:
		c, err = readReaction(body)
	case TagLocation:
		c, err = readLocation(body)
	case TagEdit:
		c, err = readEdit(body, depth)
	case TagDelete:
		c, err = readDelete(body)
	case TagPoll:
		c, err = readPoll(body)
	case TagGroupOperation:
		c, err = readGroupOperation(body)
	case TagReceipt:
		c, err = readReceipt(body)
	case TagMultipart:
		c, err = readMultipart(body, depth)
	default:
		return Unknown{ID: tag, Payload: body.Rest()}, nil
	}
	if err != nil {
		return nil, err
	}
	if err := body.Done(tag.String()); err != nil {
		return nil, err
	}
	return c, nil
}

// Unknown is content whose tag this version does not recognize.
type Unknown struct {
	ID Tag

	// Payload is the body exactly as it appeared on the wire. An empty body
	// decodes to nil, so a non-nil empty Payload comes back as nil.
	Payload []byte
}

func (c Unknown) Tag() Tag { return c.ID }

func (c Unknown) appendBody(dst []byte, _, _ int) ([]byte, error) {
	return append(dst, c.Payload...), nil
}
