package clock

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat reports time text that does not have the H:MM shape.
	ErrFormat = errors.New("malformed time")
	// ErrRange reports a well-formed time whose hour or minute is out of bounds.
	ErrRange = errors.New("time out of range")
)

// Error wraps a parse failure with the offending input.
type Error struct {
	Kind  error
	Input string
	Msg   string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return fmt.Sprintf("%s: %q", e.Kind.Error(), e.Input)
	}
	return fmt.Sprintf("%s: %q: %s", e.Kind.Error(), e.Input, e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

func formatError(input, msg string) error {
	return &Error{Kind: ErrFormat, Input: input, Msg: msg}
}

func rangeError(input, msg string) error {
	return &Error{Kind: ErrRange, Input: input, Msg: msg}
}
