package importing

import (
	"errors"
	"fmt"
)

var (
	ErrTypeMismatch = errors.New("type mismatch")
	ErrMissingField = errors.New("missing field")
	ErrInvalidRange = errors.New("invalid range")
)

// ValidationError explains why a row was rejected. Kind is one of the
// sentinels above or clock.ErrFormat / clock.ErrRange.
type ValidationError struct {
	Kind  error
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %v: %s", e.Field, e.Kind, e.Msg)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func newValidationError(kind error, field, msg string) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Msg: msg}
}
