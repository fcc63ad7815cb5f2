package term

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownKeyword             = errors.New("unknown keyword")
	ErrUnsupportedTermFormat      = errors.New("unsupported term format")
	ErrNaturalLanguageParseFailed = errors.New("natural language parse failed")
	ErrInvertedBounds             = errors.New("window start is not before its end")
)

// Error reports why a term could not be resolved. Kind is one of the Err*
// sentinels; Field names the offending input ("term", "from" or "to").
type Error struct {
	Kind  error
	Field string
	Input string
	Err   error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s %q", e.Kind, e.Field, e.Input)
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

func newError(kind error, field, input string, err error) *Error {
	return &Error{Kind: kind, Field: field, Input: input, Err: err}
}
