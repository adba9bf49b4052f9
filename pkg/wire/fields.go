package wire

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

const (
	absent  byte = 0x00
	present byte = 0x01
)

// AppendBytes appends b as a length-prefixed field.
func AppendBytes(dst, b []byte) []byte {
	dst = quicAppendLen(dst, len(b))
	return append(dst, b...)
}

// EncodeLengthPrefixed returns b as a standalone length-prefixed field.
func EncodeLengthPrefixed(b []byte) []byte {
	return AppendBytes(make([]byte, 0, VarintLen(uint64(len(b)))+len(b)), b)
}

// DecodeLengthPrefixed reads a length-prefixed field at off. The returned
// slice aliases buf. A declared length above max is FieldOutOfRange even when
// the buffer is long enough.
func DecodeLengthPrefixed(buf []byte, off int, max uint64) ([]byte, int, error) {
	n, next, err := DecodeVarint(buf, off)
	if err != nil {
		return nil, off, err
	}
	if n > max {
		return nil, off, outOfRange("length", "declared %d exceeds limit %d at offset %d", n, max, off)
	}
	if n > uint64(len(buf)-next) {
		return nil, off, truncated("length-prefixed field", next, int(n), len(buf)-next)
	}
	end := next + int(n)
	return buf[next:end:end], end, nil
}

func AppendString(dst []byte, s string) []byte {
	dst = quicAppendLen(dst, len(s))
	return append(dst, s...)
}

// AppendPresence writes the presence byte of an optional field.
func AppendPresence(dst []byte, ok bool) []byte {
	if ok {
		return append(dst, present)
	}
	return append(dst, absent)
}

// AppendOptionalBytes writes a presence byte and, for non-nil b, the field.
// A non-nil empty slice is present and empty.
func AppendOptionalBytes(dst, b []byte) []byte {
	dst = AppendPresence(dst, b != nil)
	if b == nil {
		return dst
	}
	return AppendBytes(dst, b)
}

func AppendOptionalString(dst []byte, s *string) []byte {
	dst = AppendPresence(dst, s != nil)
	if s == nil {
		return dst
	}
	return AppendString(dst, *s)
}

func AppendUint8(dst []byte, v uint8) []byte {
	return append(dst, v)
}

func AppendUint16(dst []byte, v uint16) []byte {
	return binary.BigEndian.AppendUint16(dst, v)
}

func AppendUint64(dst []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(dst, v)
}

// AppendFloat64 writes the IEEE-754 bit pattern of v, so negative zero and
// every NaN payload survive a round trip.
func AppendFloat64(dst []byte, v float64) []byte {
	return binary.BigEndian.AppendUint64(dst, math.Float64bits(v))
}

// ValidUTF8 reports whether b is valid UTF-8.
func ValidUTF8(b []byte) bool {
	return utf8.Valid(b)
}

func quicAppendLen(dst []byte, n int) []byte {
	// Any in-memory length fits in 62 bits.
	out, _ := AppendVarint(dst, uint64(n))
	return out
}
