// Package wire is the primitive layer of the content codec: variable-length
// integers, fixed-width big-endian integers, presence bytes, and
// length-prefixed byte and string fields.
//
// Varints use the QUIC variable-length integer encoding (RFC 9000 section 16),
// the same scheme MLS uses for its vectors. The two high bits of the first
// byte select a 1, 2, 4 or 8 byte encoding and the largest value is 2^62-1.
// Encoders always emit the shortest form and decoders reject longer forms, so
// a decoded value re-encodes to the bytes it came from.
//
// Every decode function takes a buffer and an offset and returns the new
// offset. Declared lengths are checked against Limits and against the bytes
// that remain before anything is allocated.
package wire

import (
	"github.com/quic-go/quic-go/quicvarint"
)

// MaxVarint is the largest value a varint can carry.
const MaxVarint uint64 = quicvarint.Max

// VarintLen returns the encoded width of v, or 0 if v cannot be encoded.
func VarintLen(v uint64) int {
	if v > MaxVarint {
		return 0
	}
	return int(quicvarint.Len(v))
}

// AppendVarint appends the minimal encoding of v to dst.
func AppendVarint(dst []byte, v uint64) ([]byte, error) {
	if v > MaxVarint {
		return dst, outOfRange("varint", "%d exceeds %d", v, MaxVarint)
	}
	return quicvarint.Append(dst, v), nil
}

// EncodeVarint returns the minimal encoding of v.
func EncodeVarint(v uint64) ([]byte, error) {
	return AppendVarint(make([]byte, 0, 8), v)
}

// DecodeVarint reads one varint at off and returns the value and the offset
// just past it.
func DecodeVarint(buf []byte, off int) (uint64, int, error) {
	if off < 0 || off >= len(buf) {
		return 0, off, truncated("varint", off, 1, remaining(buf, off))
	}
	need := 1 << (buf[off] >> 6)
	if len(buf)-off < need {
		return 0, off, truncated("varint", off, need, len(buf)-off)
	}
	v, n, err := quicvarint.Parse(buf[off : off+need])
	if err != nil {
		return 0, off, truncated("varint", off, need, len(buf)-off)
	}
	if n != VarintLen(v) {
		return 0, off, outOfRange("varint", "non-minimal %d byte encoding of %d at offset %d", n, v, off)
	}
	return v, off + n, nil
}

func remaining(buf []byte, off int) int {
	if off < 0 || off > len(buf) {
		return 0
	}
	return len(buf) - off
}
