// Package eventtime derives an event's start and end from natural-language
// text or from separate date, time and duration fields.
package eventtime

import (
	"strings"
	"time"

	"github.com/toniov/gcal-cli/nlp"
)

// Input is either Text, or Summary and Date with optional Time and Duration.
// When Text is set the structured fields other than Summary are ignored.
type Input struct {
	Text     string
	Summary  string
	Date     string
	Time     string
	Duration string
}

// Builder is safe for concurrent use; it holds only its configuration.
type Builder struct {
	parser          nlp.Parser
	defaultDuration Duration
	loc             *time.Location
}

// NewBuilder returns a Builder that gives events without an end a length of
// defaultMinutes and places structured date-times in loc.
func NewBuilder(parser nlp.Parser, defaultMinutes int, loc *time.Location) *Builder {
	if loc == nil {
		loc = time.Local
	}
	return &Builder{
		parser:          parser,
		defaultDuration: Minute(defaultMinutes),
		loc:             loc,
	}
}

func (b *Builder) Build(in Input, now time.Time) (Event, error) {
	if strings.TrimSpace(in.Text) != "" {
		return b.buildNatural(in, now)
	}
	return b.buildStructured(in)
}

func (b *Builder) buildNatural(in Input, now time.Time) (Event, error) {
	if b.parser == nil {
		return Event{}, &Error{Kind: ErrInvalidLiteral, Field: "text", Value: in.Text,
			Err: nlp.ErrNoMatch}
	}
	res, err := b.parser.Parse(in.Text, now)
	if err != nil {
		return Event{}, &Error{Kind: ErrInvalidLiteral, Field: "text", Value: in.Text, Err: err}
	}

	ev := Event{Summary: res.Title}
	if in.Summary != "" {
		ev.Summary = in.Summary
	}

	if res.AllDay {
		start := DateOf(res.Start)
		end := start.AddDays(1)
		if res.HasEnd() {
			end = DateOf(res.End).AddDays(1)
		}
		if !start.Before(end) {
			return Event{}, &Error{Kind: ErrInvalidLiteral, Field: "text", Value: in.Text}
		}
		ev.Time = AllDay{Start: start, End: end}
		return ev, nil
	}

	end := b.defaultDuration.AddTo(res.Start)
	if res.HasEnd() {
		end = res.End
	}
	if !res.Start.Before(end) {
		return Event{}, &Error{Kind: ErrInvalidLiteral, Field: "text", Value: in.Text}
	}
	ev.Time = Timed{Start: res.Start, End: end}
	return ev, nil
}

func (b *Builder) buildStructured(in Input) (Event, error) {
	if strings.TrimSpace(in.Summary) == "" {
		return Event{}, &Error{Kind: ErrMissingRequiredField, Field: "summary"}
	}
	if strings.TrimSpace(in.Date) == "" {
		return Event{}, &Error{Kind: ErrMissingRequiredField, Field: "date"}
	}

	date, err := ParseDate(in.Date)
	if err != nil {
		return Event{}, &Error{Kind: ErrInvalidLiteral, Field: "date", Value: in.Date, Err: err}
	}

	var dur *Duration
	if in.Duration != "" {
		d, err := ParseDuration(in.Duration)
		if err != nil {
			return Event{}, &Error{Kind: ErrInvalidLiteral, Field: "duration", Value: in.Duration, Err: err}
		}
		if d.IsZero() {
			return Event{}, &Error{Kind: ErrInvalidLiteral, Field: "duration", Value: in.Duration}
		}
		dur = &d
	}

	ev := Event{Summary: in.Summary}
	if strings.TrimSpace(in.Time) == "" {
		end := date.AddDays(1)
		if dur != nil {
			if !dur.IsCalendar() {
				return Event{}, &Error{Kind: ErrIncompatibleDurationUnit, Field: "duration", Value: in.Duration}
			}
			if end, err = dur.AddToDate(date); err != nil {
				return Event{}, &Error{Kind: ErrIncompatibleDurationUnit, Field: "duration", Value: in.Duration, Err: err}
			}
		}
		if !date.Before(end) {
			return Event{}, &Error{Kind: ErrInvalidLiteral, Field: "duration", Value: in.Duration}
		}
		ev.Time = AllDay{Start: date, End: end}
		return ev, nil
	}

	clock, err := ParseClock(in.Time)
	if err != nil {
		return Event{}, &Error{Kind: ErrInvalidLiteral, Field: "time", Value: in.Time, Err: err}
	}
	start := clock.On(date, b.loc)
	length := b.defaultDuration
	if dur != nil {
		length = *dur
	}
	end := length.AddTo(start)
	if !start.Before(end) {
		return Event{}, &Error{Kind: ErrInvalidLiteral, Field: "duration", Value: in.Duration}
	}
	ev.Time = Timed{Start: start, End: end}
	return ev, nil
}
