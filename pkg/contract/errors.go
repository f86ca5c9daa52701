package contract

import (
	"errors"
	"fmt"

	"github.com/aretw0/graft/pkg/schema"
)

// Stable violation codes. Tooling matches on these, not on messages.
const (
	// CodeMissingDefault flags an optional input with no default entry.
	CodeMissingDefault = "missing_default"
	// CodeStaleDefault flags a default entry whose input is not optional
	// (or not declared at all).
	CodeStaleDefault = "stale_default"
	// CodeBadDefault flags a default value that fails its input's own type.
	CodeBadDefault = "bad_default"
	// CodeNilDefault flags an absent (nil) default value.
	CodeNilDefault = "nil_default"
	// CodeDuplicateInput flags an input name declared more than once.
	CodeDuplicateInput = "duplicate_input"

	// Resolution-time codes.
	CodeMissingRequired = "missing_required"
	CodeUnexpectedInput = "unexpected_input"
	CodeInvalidValue    = "invalid_value"

	// CodeUnspecifiedShape flags an omitted internal-state or ambient-context
	// shape. "None" must be declared as an explicitly-empty shape.
	CodeUnspecifiedShape = "unspecified_shape"
)

// Error is a single contract violation with a stable code.
type Error struct {
	Code   string
	Unit   string
	Input  string // empty for unit-level violations
	Reason string
}

func (e *Error) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("unit %q: %s: %s", e.Unit, e.Code, e.Reason)
	}
	return fmt.Sprintf("unit %q input %q: %s: %s", e.Unit, e.Input, e.Code, e.Reason)
}

// HasCode reports whether err is, wraps, or aggregates a contract Error with
// the given code.
func HasCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var ce *Error
	if errors.As(err, &ce) && ce.Code == code {
		return true
	}
	for _, sub := range schema.ValidationErrors(err) {
		if HasCode(sub, code) {
			return true
		}
	}
	return false
}

func aggregate(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return &schema.AggregateError{Errors: errs}
	}
}
