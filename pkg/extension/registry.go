package extension

import (
	"fmt"
	"maps"
	"slices"
)

// Registry maps extension ids to display names. It is built once and only
// read afterwards; decoding never consults it.
type Registry struct {
	names map[uint64]string
}

func NewRegistry(names map[uint64]string) *Registry {
	return &Registry{names: maps.Clone(names)}
}

// Name returns the registered name for id, or "ext-<id>".
func (r *Registry) Name(id uint64) string {
	if r != nil {
		if n, ok := r.names[id]; ok {
			return n
		}
	}
	return fmt.Sprintf("ext-%d", id)
}

func (r *Registry) Known(id uint64) bool {
	if r == nil {
		return false
	}
	_, ok := r.names[id]
	return ok
}

// IDs returns the registered ids in ascending order.
func (r *Registry) IDs() []uint64 {
	if r == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(r.names))
}
