// Package extension encodes the ordered extension list that closes every
// envelope. An extension is an id and an opaque payload. This layer never
// interprets payloads; it only guarantees that ids are unique within a list
// and that every byte survives a decode/encode round trip in the order given.
package extension

import (
	"fmt"
	"slices"

	"github.com/ZentaChain/zentalk-content/pkg/wire"
)

// ErrDuplicateID is returned when one list carries the same id twice.
var ErrDuplicateID = wire.ErrDuplicateExtensionID

// Extension is one {id, payload} entry.
type Extension struct {
	ID uint64

	// Payload is opaque. The wire does not tell an empty payload from a
	// missing one, so both decode to nil.
	Payload []byte
}

// Append writes exts to dst in the order supplied. It does not sort or
// deduplicate.
func Append(dst []byte, exts []Extension) ([]byte, error) {
	var err error
	if dst, err = wire.AppendVarint(dst, uint64(len(exts))); err != nil {
		return dst, err
	}
	for i, e := range exts {
		if dst, err = wire.AppendVarint(dst, e.ID); err != nil {
			return dst, fmt.Errorf("extension %d: %w", i, err)
		}
		dst = wire.AppendBytes(dst, e.Payload)
	}
	return dst, nil
}

func Encode(exts []Extension) ([]byte, error) {
	return Append(nil, exts)
}

// Decode reads an extension list at off and returns it with the offset just
// past it. A repeated id fails with ErrDuplicateID.
func Decode(buf []byte, off int, lim wire.Limits) ([]Extension, int, error) {
	r := wire.NewReader(buf, off, lim)
	exts, err := Read(r)
	if err != nil {
		return nil, off, err
	}
	return exts, r.Offset(), nil
}

// Read decodes an extension list from r.
func Read(r *wire.Reader) ([]Extension, error) {
	n, err := r.Count("extensions.count", r.Limits().MaxExtensions)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	exts := make([]Extension, 0, n)
	seen := make(map[uint64]struct{}, n)
	for i := 0; i < n; i++ {
		start := r.Offset()
		id, err := r.Varint("extensions.id")
		if err != nil {
			return nil, err
		}
		payload, err := r.Bytes("extensions.payload")
		if err != nil {
			return nil, fmt.Errorf("extension id %d: %w", id, err)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: id %d at offset %d", ErrDuplicateID, id, start)
		}
		seen[id] = struct{}{}
		exts = append(exts, Extension{ID: id, Payload: payload})
	}
	return exts, nil
}

// CheckUnique returns ErrDuplicateID naming the first repeated id.
func CheckUnique(exts []Extension) error {
	seen := make(map[uint64]int, len(exts))
	for i, e := range exts {
		if prev, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: id %d at positions %d and %d", ErrDuplicateID, e.ID, prev, i)
		}
		seen[e.ID] = i
	}
	return nil
}

// IsCanonical reports whether ids are strictly increasing.
func IsCanonical(exts []Extension) bool {
	for i := 1; i < len(exts); i++ {
		if exts[i].ID <= exts[i-1].ID {
			return false
		}
	}
	return true
}

// Canonical returns a copy of exts sorted by id. Payloads are shared with
// the input.
func Canonical(exts []Extension) []Extension {
	if exts == nil {
		return nil
	}
	out := slices.Clone(exts)
	slices.SortStableFunc(out, func(a, b Extension) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}

// Find returns the first extension with id.
func Find(exts []Extension, id uint64) (Extension, bool) {
	for _, e := range exts {
		if e.ID == id {
			return e, true
		}
	}
	return Extension{}, false
}
