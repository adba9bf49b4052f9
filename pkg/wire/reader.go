package wire

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Reader is a bounds-checked cursor over an encoded buffer. Offsets are
// absolute positions in the original buffer, so errors from a Sub reader
// point at the same bytes as errors from its parent.
type Reader struct {
	buf []byte
	off int
	lim Limits
}

// NewReader returns a Reader over buf starting at off.
func NewReader(buf []byte, off int, lim Limits) *Reader {
	if off < 0 {
		off = 0
	}
	if off > len(buf) {
		off = len(buf)
	}
	return &Reader{buf: buf, off: off, lim: lim}
}

func (r *Reader) Offset() int { return r.off }

// Len returns the number of unread bytes.
func (r *Reader) Len() int { return len(r.buf) - r.off }

func (r *Reader) Limits() Limits { return r.lim }

func (r *Reader) need(field string, n int) error {
	if r.Len() < n {
		return truncated(field, r.off, n, r.Len())
	}
	return nil
}

func (r *Reader) Varint(field string) (uint64, error) {
	v, next, err := DecodeVarint(r.buf, r.off)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	r.off = next
	return v, nil
}

func (r *Reader) Uint8(field string) (uint8, error) {
	if err := r.need(field, 1); err != nil {
		return 0, err
	}
	v := r.buf[r.off]
	r.off++
	return v, nil
}

func (r *Reader) Uint16(field string) (uint16, error) {
	if err := r.need(field, 2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return v, nil
}

func (r *Reader) Uint64(field string) (uint64, error) {
	if err := r.need(field, 8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return v, nil
}

func (r *Reader) Float64(field string) (float64, error) {
	bits, err := r.Uint64(field)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// Present reads the presence byte of an optional field.
func (r *Reader) Present(field string) (bool, error) {
	b, err := r.Uint8(field)
	if err != nil {
		return false, err
	}
	switch b {
	case absent:
		return false, nil
	case present:
		return true, nil
	default:
		return false, outOfRange(field, "presence byte 0x%02x at offset %d", b, r.off-1)
	}
}

func (r *Reader) window(field string) ([]byte, error) {
	b, next, err := DecodeLengthPrefixed(r.buf, r.off, r.lim.MaxFieldLength)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	r.off = next
	return b, nil
}

// Bytes reads a length-prefixed field and returns a copy. An empty field
// decodes to nil.
func (r *Reader) Bytes(field string) ([]byte, error) {
	b, err := r.window(field)
	if err != nil || len(b) == 0 {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// OptionalBytes reads a presence byte and field. Absent decodes to nil and
// present decodes to a non-nil slice, even when empty.
func (r *Reader) OptionalBytes(field string) ([]byte, error) {
	ok, err := r.Present(field)
	if err != nil || !ok {
		return nil, err
	}
	b, err := r.window(field)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (r *Reader) String(field string) (string, error) {
	start := r.off
	b, err := r.window(field)
	if err != nil {
		return "", err
	}
	if !ValidUTF8(b) {
		return "", fmt.Errorf("%w: %s at offset %d", ErrInvalidUTF8, field, start)
	}
	return string(b), nil
}

func (r *Reader) OptionalString(field string) (*string, error) {
	ok, err := r.Present(field)
	if err != nil || !ok {
		return nil, err
	}
	s, err := r.String(field)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Count reads a list count. Every list item takes at least one byte, so a
// count larger than the unread bytes is truncated input; no caller allocates
// from a count this has not checked.
func (r *Reader) Count(field string, max uint64) (int, error) {
	start := r.off
	n, err := r.Varint(field)
	if err != nil {
		return 0, err
	}
	if n > max {
		return 0, outOfRange(field, "count %d exceeds limit %d at offset %d", n, max, start)
	}
	if n > uint64(r.Len()) {
		return 0, truncated(field, r.off, int(n), r.Len())
	}
	return int(n), nil
}

// Sub reads a length-prefixed field and returns a Reader confined to it.
func (r *Reader) Sub(field string) (*Reader, error) {
	b, err := r.window(field)
	if err != nil {
		return nil, err
	}
	end := r.off
	return &Reader{buf: r.buf[:end:end], off: end - len(b), lim: r.lim}, nil
}

// Done reports a length mismatch if any bytes remain unread.
func (r *Reader) Done(field string) error {
	if r.Len() == 0 {
		return nil
	}
	return Invalid(RuleLength, field, "%d trailing bytes at offset %d", r.Len(), r.off)
}

// Rest consumes and returns a copy of every unread byte, nil when none remain.
func (r *Reader) Rest() []byte {
	if r.Len() == 0 {
		return nil
	}
	out := make([]byte, r.Len())
	copy(out, r.buf[r.off:])
	r.off = len(r.buf)
	return out
}
