package term

import "strings"

// Input is a description of a period to resolve. It is one of Keyword,
// Numeric, Natural or Bounds.
type Input interface {
	isInput()
}

// KeywordInput names a phrase from the fixed vocabulary.
type KeywordInput struct {
	Phrase string
}

// Numeric is YYYY, YYYYMM or YYYYMMDD.
type Numeric struct {
	Digits string
}

// Natural is free text handed to the natural-language parser.
type Natural struct {
	Text string
}

// Bounds carries independently optional from/to literals.
type Bounds struct {
	From string
	To   string
}

func (KeywordInput) isInput() {}
func (Numeric) isInput()      {}
func (Natural) isInput()      {}
func (Bounds) isInput()       {}

// Classify picks the Input variant for a positional argument and the
// --from/--to flags. The positional argument wins over the flags.
func Classify(arg, from, to string) Input {
	arg = strings.TrimSpace(arg)
	switch {
	case arg == "":
		return Bounds{From: from, To: to}
	case isKeyword(arg):
		return KeywordInput{Phrase: arg}
	case isDigits(arg):
		return Numeric{Digits: arg}
	default:
		return Natural{Text: arg}
	}
}

func isKeyword(s string) bool {
	_, ok := LookupKeyword(s)
	return ok
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
