package eventtime

import (
	"errors"
	"fmt"
)

var (
	ErrMissingRequiredField     = errors.New("missing required field")
	ErrInvalidLiteral           = errors.New("invalid literal")
	ErrIncompatibleDurationUnit = errors.New("incompatible duration unit")
)

// Error names the kind of failure and the input field that caused it.
type Error struct {
	Kind  error
	Field string
	Value string
	Err   error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Field)
	if e.Value != "" {
		msg += fmt.Sprintf(" %q", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}
