package wire

import "errors"

// Limits bounds what a decoder will accept from untrusted input. A Limits
// value is copied into each codec and never mutated afterwards.
type Limits struct {
	MaxFieldLength     uint64 // largest length-prefixed payload, in bytes
	MaxExtensions      uint64 // entries in one extension list
	MaxListItems       uint64 // entries in any other list
	MaxNesting         int    // content-within-content depth, top level is 1
	MaxReferenceLength int    // message references, checked by validation
}

func DefaultLimits() Limits {
	return Limits{
		MaxFieldLength:     1 << 20,
		MaxExtensions:      64,
		MaxListItems:       1024,
		MaxNesting:         8,
		MaxReferenceLength: 255,
	}
}

var (
	errZeroFieldLength = errors.New("wire: limits: max field length must be positive")
	errZeroNesting     = errors.New("wire: limits: max nesting must be at least 1")
	errZeroListItems   = errors.New("wire: limits: max list items must be positive")
	errZeroReference   = errors.New("wire: limits: max reference length must be positive")
)

func (l Limits) Validate() error {
	switch {
	case l.MaxFieldLength == 0:
		return errZeroFieldLength
	case l.MaxNesting < 1:
		return errZeroNesting
	case l.MaxListItems == 0:
		return errZeroListItems
	case l.MaxReferenceLength <= 0:
		return errZeroReference
	}
	return nil
}
