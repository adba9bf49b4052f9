package wire

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the codec packages matches exactly one
// of these with errors.Is.
var (
	ErrTruncatedInput       = errors.New("wire: truncated input")
	ErrFieldOutOfRange      = errors.New("wire: field out of range")
	ErrInvalidUTF8          = errors.New("wire: invalid utf-8")
	ErrDuplicateExtensionID = errors.New("wire: duplicate extension id")
	ErrUnsupportedVersion   = errors.New("wire: unsupported version")
	ErrValidation           = errors.New("wire: validation failed")
)

// Kind classifies a codec error.
type Kind uint8

const (
	KindNone Kind = iota
	KindTruncatedInput
	KindFieldOutOfRange
	KindInvalidUTF8
	KindDuplicateExtensionID
	KindUnsupportedVersion
	KindValidation
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTruncatedInput:
		return "truncated_input"
	case KindFieldOutOfRange:
		return "field_out_of_range"
	case KindInvalidUTF8:
		return "invalid_utf8"
	case KindDuplicateExtensionID:
		return "duplicate_extension_id"
	case KindUnsupportedVersion:
		return "unsupported_version"
	case KindValidation:
		return "validation"
	default:
		return "other"
	}
}

// KindOf reports the kind of err. Validation is checked first because a
// ValidationError may wrap a structural cause it was delegated from.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrTruncatedInput):
		return KindTruncatedInput
	case errors.Is(err, ErrFieldOutOfRange):
		return KindFieldOutOfRange
	case errors.Is(err, ErrInvalidUTF8):
		return KindInvalidUTF8
	case errors.Is(err, ErrDuplicateExtensionID):
		return KindDuplicateExtensionID
	case errors.Is(err, ErrUnsupportedVersion):
		return KindUnsupportedVersion
	default:
		return KindOther
	}
}

// Rule names the semantic predicate a ValidationError violated.
type Rule string

const (
	RuleLength   Rule = "length"
	RuleRequired Rule = "required"
	RuleRange    Rule = "range"
	RuleUTF8     Rule = "utf8"
	RuleUnique   Rule = "unique"
	RuleOrder    Rule = "order"
	RuleNesting  Rule = "nesting"
	RuleTag      Rule = "tag"
)

// ValidationError reports well-formed input that breaks a semantic rule.
type ValidationError struct {
	Rule   Rule
	Field  string
	Reason string
	Err    error
}

// Invalid builds a ValidationError with a formatted reason.
func Invalid(rule Rule, field, format string, args ...any) *ValidationError {
	return &ValidationError{Rule: rule, Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("wire: validation failed: rule=%s: %s", e.Rule, e.Reason)
	}
	return fmt.Sprintf("wire: validation failed: rule=%s field=%s: %s", e.Rule, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// At prefixes Field with a parent path, so nested failures read like
// "edit.new.latitude".
func (e *ValidationError) At(parent string) *ValidationError {
	out := *e
	if out.Field == "" {
		out.Field = parent
	} else {
		out.Field = parent + "." + out.Field
	}
	return &out
}

// RuleOf returns the rule of the first ValidationError in err's chain.
func RuleOf(err error) (Rule, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Rule, true
	}
	return "", false
}

func truncated(field string, off, need, have int) error {
	return fmt.Errorf("%w: %s at offset %d needs %d bytes, %d remain", ErrTruncatedInput, field, off, need, have)
}

func outOfRange(field string, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrFieldOutOfRange, field, fmt.Sprintf(format, args...))
}
