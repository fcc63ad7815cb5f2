// Package nlp turns free-text phrases such as "dentist next friday at 3pm" or
// "holiday monday to wednesday" into a start/end pair.
package nlp

import (
	"errors"
	"time"
)

var (
	ErrEmpty   = errors.New("nlp: empty text")
	ErrNoMatch = errors.New("nlp: no date or time found")
)

// Result is what a Parser extracts from a phrase. End is the zero time when the
// phrase does not name one. When AllDay is set, Start and End are at midnight.
type Result struct {
	Title  string
	Start  time.Time
	End    time.Time
	AllDay bool
}

func (r Result) HasEnd() bool {
	return !r.End.IsZero()
}

// Parser interprets text relative to base, which stands in for "now".
type Parser interface {
	Parse(text string, base time.Time) (Result, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(text string, base time.Time) (Result, error)

func (f ParserFunc) Parse(text string, base time.Time) (Result, error) {
	return f(text, base)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
