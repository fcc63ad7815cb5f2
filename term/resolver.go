// Package term resolves a user-supplied description of a period into a
// half-open window [Start, End).
package term

import (
	"fmt"
	"strings"
	"time"

	"github.com/toniov/gcal-cli/nlp"
)

// Window is the half-open interval [Start, End). A zero Start or End means
// the window is unbounded on that side.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) HasStart() bool { return !w.Start.IsZero() }
func (w Window) HasEnd() bool   { return !w.End.IsZero() }

func (w Window) String() string {
	format := func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(time.RFC3339)
	}
	return format(w.Start) + " ~ " + format(w.End)
}

var boundLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// Resolver has no mutable state and may be shared between goroutines.
type Resolver struct {
	parser nlp.Parser
}

func NewResolver(parser nlp.Parser) *Resolver {
	return &Resolver{parser: parser}
}

// Resolve maps in to a concrete window. Calendar boundaries are taken in
// now's location.
func (r *Resolver) Resolve(in Input, now time.Time) (Window, error) {
	switch in := in.(type) {
	case KeywordInput:
		k, ok := LookupKeyword(in.Phrase)
		if !ok {
			return Window{}, newError(ErrUnknownKeyword, "term", in.Phrase, nil)
		}
		return KeywordWindow(k, now), nil
	case Numeric:
		return numericWindow(in.Digits, now.Location())
	case Natural:
		return r.naturalWindow(in.Text, now)
	case Bounds:
		return boundsWindow(in, now)
	default:
		return Window{}, fmt.Errorf("term: unexpected input %T", in)
	}
}

// KeywordWindow is exactly one day, month or year wide.
func KeywordWindow(k Keyword, now time.Time) Window {
	day := startOfDay(now)
	switch k {
	case Today:
		return days(day, 0)
	case Yesterday:
		return days(day, -1)
	case DayBeforeYesterday:
		return days(day, -2)
	case Tomorrow:
		return days(day, 1)
	case DayAfterTomorrow:
		return days(day, 2)
	case ThisMonth:
		return months(startOfMonth(now), 0)
	case LastMonth:
		return months(startOfMonth(now), -1)
	case NextMonth:
		return months(startOfMonth(now), 1)
	case ThisYear:
		return years(startOfYear(now), 0)
	case LastYear:
		return years(startOfYear(now), -1)
	case NextYear:
		return years(startOfYear(now), 1)
	default:
		panic(fmt.Sprintf("term: keyword %d has no window", int(k)))
	}
}

func numericWindow(digits string, loc *time.Location) (Window, error) {
	var layout string
	switch len(digits) {
	case 4:
		layout = "2006"
	case 6:
		layout = "200601"
	case 8:
		layout = "20060102"
	default:
		return Window{}, newError(ErrUnsupportedTermFormat, "term", digits,
			fmt.Errorf("want 4, 6 or 8 digits, got %d", len(digits)))
	}
	if !isDigits(digits) {
		return Window{}, newError(ErrUnknownKeyword, "term", digits, nil)
	}

	t, err := time.ParseInLocation(layout, digits, loc)
	if err != nil {
		return Window{}, newError(ErrUnknownKeyword, "term", digits, err)
	}
	switch len(digits) {
	case 4:
		return years(t, 0), nil
	case 6:
		return months(t, 0), nil
	default:
		return days(t, 0), nil
	}
}

func (r *Resolver) naturalWindow(text string, now time.Time) (Window, error) {
	if r.parser == nil {
		return Window{}, newError(ErrNaturalLanguageParseFailed, "term", text,
			fmt.Errorf("no natural language parser configured"))
	}
	res, err := r.parser.Parse(text, now)
	if err != nil {
		return Window{}, newError(ErrNaturalLanguageParseFailed, "term", text, err)
	}

	w := Window{Start: res.Start}
	switch {
	case res.AllDay && res.HasEnd():
		w.End = startOfDay(res.End).AddDate(0, 0, 1)
	case res.AllDay:
		w.End = startOfDay(res.Start).AddDate(0, 0, 1)
	default:
		w.End = res.End
	}
	if w.HasEnd() && !w.Start.Before(w.End) {
		return Window{}, newError(ErrInvertedBounds, "term", text, nil)
	}
	return w, nil
}

func boundsWindow(b Bounds, now time.Time) (Window, error) {
	from, to := strings.TrimSpace(b.From), strings.TrimSpace(b.To)
	if from == "" && to == "" {
		return KeywordWindow(Today, now), nil
	}

	var w Window
	var err error
	if from != "" {
		if w.Start, err = parseBound(from, now.Location()); err != nil {
			return Window{}, newError(ErrUnsupportedTermFormat, "from", from, err)
		}
	}
	if to != "" {
		if w.End, err = parseBound(to, now.Location()); err != nil {
			return Window{}, newError(ErrUnsupportedTermFormat, "to", to, err)
		}
	}
	if w.HasStart() && w.HasEnd() && !w.Start.Before(w.End) {
		return Window{}, newError(ErrInvertedBounds, "to", to, nil)
	}
	return w, nil
}

// parseBound accepts a date, a local date-time or RFC 3339. A bare date is
// midnight at the start of that day.
func parseBound(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range boundLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not a date or date-time")
}

func days(day time.Time, offset int) Window {
	start := day.AddDate(0, 0, offset)
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

func months(first time.Time, offset int) Window {
	start := first.AddDate(0, offset, 0)
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

func years(first time.Time, offset int) Window {
	start := first.AddDate(offset, 0, 0)
	return Window{Start: start, End: start.AddDate(1, 0, 0)}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func startOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}
