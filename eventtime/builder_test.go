package eventtime

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toniov/gcal-cli/nlp"
)

var location, _ = time.LoadLocation("Asia/Tokyo")

var now = time.Date(2024, 9, 10, 8, 0, 0, 0, location)

func stubParser(res nlp.Result, err error) nlp.Parser {
	return nlp.ParserFunc(func(string, time.Time) (nlp.Result, error) {
		return res, err
	})
}

func date(y int, m time.Month, d int) Date {
	return Date{Year: y, Month: m, Day: d}
}

func TestBuild_Structured(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want Spec
	}{
		{
			name: "all day without duration",
			in:   Input{Summary: "Holiday", Date: "2024-09-15"},
			want: AllDay{Start: date(2024, 9, 15), End: date(2024, 9, 16)},
		},
		{
			name: "all day over a month end",
			in:   Input{Summary: "Holiday", Date: "20240930"},
			want: AllDay{Start: date(2024, 9, 30), End: date(2024, 10, 1)},
		},
		{
			name: "all day with days",
			in:   Input{Summary: "Trip", Date: "2024-09-15", Duration: "3d"},
			want: AllDay{Start: date(2024, 9, 15), End: date(2024, 9, 18)},
		},
		{
			name: "all day with weeks",
			in:   Input{Summary: "Trip", Date: "2024/09/15", Duration: "2w"},
			want: AllDay{Start: date(2024, 9, 15), End: date(2024, 9, 29)},
		},
		{
			name: "all day with months",
			in:   Input{Summary: "Sabbatical", Date: "2024-01-31", Duration: "1M"},
			want: AllDay{Start: date(2024, 1, 31), End: date(2024, 3, 2)},
		},
		{
			name: "all day with years",
			in:   Input{Summary: "Contract", Date: "2024-09-15", Duration: "1y"},
			want: AllDay{Start: date(2024, 9, 15), End: date(2025, 9, 15)},
		},
		{
			name: "timed with minutes",
			in:   Input{Summary: "Call", Date: "2024-09-15", Time: "1430", Duration: "30m"},
			want: Timed{
				Start: time.Date(2024, 9, 15, 14, 30, 0, 0, location),
				End:   time.Date(2024, 9, 15, 15, 0, 0, 0, location),
			},
		},
		{
			name: "timed with default duration",
			in:   Input{Summary: "Call", Date: "2024-09-15", Time: "23:30"},
			want: Timed{
				Start: time.Date(2024, 9, 15, 23, 30, 0, 0, location),
				End:   time.Date(2024, 9, 16, 0, 30, 0, 0, location),
			},
		},
		{
			name: "timed with hours and pm",
			in:   Input{Summary: "Workshop", Date: "2024-09-15", Time: "2pm", Duration: "2h"},
			want: Timed{
				Start: time.Date(2024, 9, 15, 14, 0, 0, 0, location),
				End:   time.Date(2024, 9, 15, 16, 0, 0, 0, location),
			},
		},
		{
			name: "timed with days",
			in:   Input{Summary: "Retreat", Date: "2024-09-15", Time: "09:00", Duration: "2d"},
			want: Timed{
				Start: time.Date(2024, 9, 15, 9, 0, 0, 0, location),
				End:   time.Date(2024, 9, 17, 9, 0, 0, 0, location),
			},
		},
	}

	b := NewBuilder(nil, 60, location)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := b.Build(tt.in, now)
			require.NoError(t, err)
			assert.Equal(t, tt.in.Summary, ev.Summary)
			assert.Equal(t, tt.want, ev.Time)
		})
	}
}

func TestBuild_ExplicitMinutesAreExact(t *testing.T) {
	ev, err := NewBuilder(nil, 60, location).Build(Input{Summary: "Sync", Date: "2024-03-31", Time: "01:30", Duration: "90m"}, now)
	require.NoError(t, err)

	timed, ok := ev.Time.(Timed)
	require.True(t, ok)
	assert.Equal(t, 90*time.Minute, timed.End.Sub(timed.Start))
}

func TestBuild_StructuredErrors(t *testing.T) {
	tests := []struct {
		name  string
		in    Input
		kind  error
		field string
	}{
		{"no summary", Input{Date: "2024-09-15"}, ErrMissingRequiredField, "summary"},
		{"no date", Input{Summary: "x"}, ErrMissingRequiredField, "date"},
		{"bad date", Input{Summary: "x", Date: "15/09/2024"}, ErrInvalidLiteral, "date"},
		{"bad time", Input{Summary: "x", Date: "2024-09-15", Time: "25:00"}, ErrInvalidLiteral, "time"},
		{"bad duration", Input{Summary: "x", Date: "2024-09-15", Duration: "2 hours"}, ErrInvalidLiteral, "duration"},
		{"unknown unit", Input{Summary: "x", Date: "2024-09-15", Duration: "2q"}, ErrInvalidLiteral, "duration"},
		{"zero duration", Input{Summary: "x", Date: "2024-09-15", Time: "10:00", Duration: "0m"}, ErrInvalidLiteral, "duration"},
		{"hours on all day", Input{Summary: "x", Date: "2024-09-15", Duration: "2h"}, ErrIncompatibleDurationUnit, "duration"},
		{"minutes on all day", Input{Summary: "x", Date: "2024-09-15", Duration: "30m"}, ErrIncompatibleDurationUnit, "duration"},
		{"hours overflow", Input{Summary: "x", Date: "2024-09-15", Time: "10:00", Duration: "9999999999h"}, ErrInvalidLiteral, "duration"},
		{"minutes overflow", Input{Summary: "x", Date: "2024-09-15", Time: "10:00", Duration: "99999999999m"}, ErrInvalidLiteral, "duration"},
		{"years beyond range", Input{Summary: "x", Date: "2024-09-15", Duration: "99999y"}, ErrInvalidLiteral, "duration"},
	}

	b := NewBuilder(nil, 60, location)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Build(tt.in, now)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)

			var berr *Error
			require.True(t, errors.As(err, &berr))
			assert.Equal(t, tt.field, berr.Field)
		})
	}
}

func TestBuild_Natural(t *testing.T) {
	start := time.Date(2024, 9, 20, 15, 0, 0, 0, location)
	tests := []struct {
		name    string
		result  nlp.Result
		wantSum string
		want    Spec
	}{
		{
			name:    "all day single",
			result:  nlp.Result{Title: "Conference", Start: time.Date(2024, 9, 20, 0, 0, 0, 0, location), AllDay: true},
			wantSum: "Conference",
			want:    AllDay{Start: date(2024, 9, 20), End: date(2024, 9, 21)},
		},
		{
			name: "all day range",
			result: nlp.Result{
				Title:  "Trip",
				Start:  time.Date(2024, 9, 20, 0, 0, 0, 0, location),
				End:    time.Date(2024, 9, 22, 0, 0, 0, 0, location),
				AllDay: true,
			},
			wantSum: "Trip",
			want:    AllDay{Start: date(2024, 9, 20), End: date(2024, 9, 23)},
		},
		{
			name:    "timed default duration",
			result:  nlp.Result{Title: "Dentist", Start: start},
			wantSum: "Dentist",
			want:    Timed{Start: start, End: start.Add(45 * time.Minute)},
		},
		{
			name:    "timed with end",
			result:  nlp.Result{Title: "Meeting", Start: start, End: start.Add(2 * time.Hour)},
			wantSum: "Meeting",
			want:    Timed{Start: start, End: start.Add(2 * time.Hour)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(stubParser(tt.result, nil), 45, location)
			ev, err := b.Build(Input{Text: "anything"}, now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSum, ev.Summary)
			assert.Equal(t, tt.want, ev.Time)
		})
	}
}

func TestBuild_NaturalSummaryOverride(t *testing.T) {
	b := NewBuilder(stubParser(nlp.Result{Title: "parsed", Start: now}, nil), 60, location)
	ev, err := b.Build(Input{Text: "anything", Summary: "given", Date: "ignored"}, now)
	require.NoError(t, err)
	assert.Equal(t, "given", ev.Summary)
}

func TestBuild_NaturalErrors(t *testing.T) {
	_, err := NewBuilder(stubParser(nlp.Result{}, nlp.ErrNoMatch), 60, location).Build(Input{Text: "gibberish"}, now)
	assert.ErrorIs(t, err, ErrInvalidLiteral)
	assert.ErrorIs(t, err, nlp.ErrNoMatch)

	inverted := nlp.Result{Start: now, End: now.Add(-time.Hour)}
	_, err = NewBuilder(stubParser(inverted, nil), 60, location).Build(Input{Text: "backwards"}, now)
	assert.ErrorIs(t, err, ErrInvalidLiteral)

	_, err = NewBuilder(nil, 60, location).Build(Input{Text: "no parser"}, now)
	assert.ErrorIs(t, err, ErrInvalidLiteral)
}

func TestBuild_AllDayRoundTrip(t *testing.T) {
	b := NewBuilder(nil, 60, location)
	d := date(2023, 12, 25)
	for i := 0; i < 800; i++ {
		ev, err := b.Build(Input{Summary: "day", Date: d.String()}, now)
		require.NoError(t, err)
		allDay, ok := ev.Time.(AllDay)
		require.True(t, ok)
		assert.Equal(t, d, allDay.Start)
		assert.Equal(t, d.AddDays(1), allDay.End)
		d = d.AddDays(1)
	}
}
