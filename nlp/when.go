package nlp

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var (
	// rangeSep joins the two ends of a range: "monday to friday", "3pm - 5pm".
	rangeSep = regexp.MustCompile(`(?i)^\s*(?:to|until|till|through|thru|-|~)\s+`)

	// clockLead may sit between a date and the clock time that belongs to it:
	// "tomorrow from 3pm", "friday @ 9am".
	clockLead = regexp.MustCompile(`(?i)^\s*(?:(?:at|from)\s+|@\s*|,\s*)?`)

	clockRe = regexp.MustCompile(`(?i)(?:\d{1,2}\s*(?::\d{2})?\s*(?:a\.?m\.?|p\.?m\.?)(?:\W|$)|\d{1,2}:\d{2}|\bnoon\b|\bmidnight\b|\bnow\b|\btonight\b|\d+\s*(?:hours?|hrs?|minutes?|mins?)\b|o'?clock)`)

	connectors = map[string]bool{
		"at": true, "on": true, "from": true, "in": true, "for": true, "by": true,
	}
)

// When is a Parser built on olebedev/when with the English and common rule
// sets. A single When may be shared between goroutines.
type When struct {
	parser *when.Parser
}

func NewWhen() *When {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &When{parser: w}
}

type span struct {
	start, end int
}

func (w *When) Parse(text string, base time.Time) (Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}, ErrEmpty
	}

	first, err := w.parser.Parse(text, base)
	if err != nil {
		return Result{}, fmt.Errorf("nlp: parse %q: %w", text, err)
	}
	if first == nil {
		return Result{}, fmt.Errorf("%w: %q", ErrNoMatch, text)
	}

	res := Result{
		Start:  first.Time,
		AllDay: !hasClock(first.Text),
	}
	matched := []span{locate(text, first.Index, first.Text)}

	// when only clusters matches a few bytes apart, so a clock time behind a
	// connector is lost from the first match.
	if res.AllDay {
		if t, end, ok := w.clockAfter(text, matched[0].end, first.Time); ok {
			res.Start = t
			res.AllDay = false
			matched[0].end = end
		}
	}

	rest := text[matched[0].end:]
	if loc := rangeSep.FindStringIndex(rest); loc != nil {
		tail := rest[loc[1]:]
		// The far end is read relative to the near end so "3pm to 5pm" stays
		// on one day and "friday to monday" crosses the weekend.
		second, err := w.parser.Parse(tail, res.Start)
		if err == nil && second != nil {
			s := locate(tail, second.Index, second.Text)
			if strings.TrimSpace(tail[:s.start]) == "" {
				res.End = second.Time
				if hasClock(second.Text) {
					res.AllDay = false
				}
				offset := matched[0].end + loc[1]
				matched = append(matched, span{matched[0].end, offset + s.end})
			}
		}
	}

	if res.AllDay {
		res.Start = startOfDay(res.Start)
		if res.HasEnd() {
			res.End = startOfDay(res.End)
		}
	}
	res.Title = title(text, matched)
	return res, nil
}

// clockAfter parses a clock time that directly follows text[from:], allowing
// one connector in between. It returns the time on base's day and the end of
// the consumed text.
func (w *When) clockAfter(text string, from int, base time.Time) (time.Time, int, bool) {
	rest := text[from:]
	lead := clockLead.FindStringIndex(rest)
	tail := rest[lead[1]:]
	if tail == "" {
		return time.Time{}, 0, false
	}

	next, err := w.parser.Parse(tail, base)
	if err != nil || next == nil || !hasClock(next.Text) {
		return time.Time{}, 0, false
	}
	s := locate(tail, next.Index, next.Text)
	if s.start != 0 {
		return time.Time{}, 0, false
	}
	return next.Time, from + lead[1] + s.end, true
}

func hasClock(s string) bool {
	return clockRe.MatchString(s)
}

// locate finds the byte span of a match, falling back to a substring search
// when the reported index does not line up with the text.
func locate(text string, idx int, match string) span {
	if idx >= 0 && idx+len(match) <= len(text) && text[idx:idx+len(match)] == match {
		return span{idx, idx + len(match)}
	}
	if i := strings.Index(strings.ToLower(text), strings.ToLower(match)); i >= 0 {
		return span{i, i + len(match)}
	}
	return span{len(text), len(text)}
}

func title(text string, matched []span) string {
	var b strings.Builder
	pos := 0
	for _, s := range matched {
		if s.start > pos {
			b.WriteString(text[pos:s.start])
		}
		b.WriteByte(' ')
		if s.end > pos {
			pos = s.end
		}
	}
	if pos < len(text) {
		b.WriteString(text[pos:])
	}

	words := strings.Fields(b.String())
	for len(words) > 0 && connectors[strings.ToLower(words[len(words)-1])] {
		words = words[:len(words)-1]
	}
	for len(words) > 0 && connectors[strings.ToLower(words[0])] {
		words = words[1:]
	}
	return strings.Join(words, " ")
}
