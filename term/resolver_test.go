package term

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toniov/gcal-cli/nlp"
)

var location, _ = time.LoadLocation("Europe/Warsaw")

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, location)
}

func stubParser(res nlp.Result, err error) nlp.Parser {
	return nlp.ParserFunc(func(string, time.Time) (nlp.Result, error) {
		return res, err
	})
}

func TestResolve_Keywords(t *testing.T) {
	now := at(2024, time.September, 15, 14, 45)
	tests := []struct {
		phrase string
		start  time.Time
		end    time.Time
	}{
		{"today", at(2024, 9, 15, 0, 0), at(2024, 9, 16, 0, 0)},
		{"yesterday", at(2024, 9, 14, 0, 0), at(2024, 9, 15, 0, 0)},
		{"the day before yesterday", at(2024, 9, 13, 0, 0), at(2024, 9, 14, 0, 0)},
		{"tomorrow", at(2024, 9, 16, 0, 0), at(2024, 9, 17, 0, 0)},
		{"the day after tomorrow", at(2024, 9, 17, 0, 0), at(2024, 9, 18, 0, 0)},
		{"this month", at(2024, 9, 1, 0, 0), at(2024, 10, 1, 0, 0)},
		{"last month", at(2024, 8, 1, 0, 0), at(2024, 9, 1, 0, 0)},
		{"next month", at(2024, 10, 1, 0, 0), at(2024, 11, 1, 0, 0)},
		{"this year", at(2024, 1, 1, 0, 0), at(2025, 1, 1, 0, 0)},
		{"last year", at(2023, 1, 1, 0, 0), at(2024, 1, 1, 0, 0)},
		{"next year", at(2025, 1, 1, 0, 0), at(2026, 1, 1, 0, 0)},
		{"  The Day  After Tomorrow ", at(2024, 9, 17, 0, 0), at(2024, 9, 18, 0, 0)},
	}

	r := NewResolver(nil)
	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			w, err := r.Resolve(KeywordInput{Phrase: tt.phrase}, now)
			require.NoError(t, err)
			assert.True(t, tt.start.Equal(w.Start), "start %s, want %s", w.Start, tt.start)
			assert.True(t, tt.end.Equal(w.End), "end %s, want %s", w.End, tt.end)
		})
	}
}

func TestResolve_DayKeywordsAreOneDayWide(t *testing.T) {
	r := NewResolver(nil)
	// 2024-10-27 is the autumn DST change in Warsaw, so that day lasts 25h.
	for _, now := range []time.Time{at(2024, 3, 1, 0, 0), at(2024, 10, 26, 23, 59), at(2024, 12, 31, 12, 0)} {
		for _, phrase := range []string{"today", "tomorrow", "yesterday"} {
			w, err := r.Resolve(KeywordInput{Phrase: phrase}, now)
			require.NoError(t, err)
			assert.Equal(t, 0, w.Start.Hour())
			assert.Equal(t, 0, w.Start.Minute())
			assert.Equal(t, w.Start.AddDate(0, 0, 1), w.End)
		}
	}
}

func TestResolve_UnknownKeyword(t *testing.T) {
	_, err := NewResolver(nil).Resolve(KeywordInput{Phrase: "next week"}, at(2024, 9, 15, 0, 0))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownKeyword)

	var terr *Error
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "term", terr.Field)
	assert.Equal(t, "next week", terr.Input)
}

func TestResolve_Numeric(t *testing.T) {
	now := at(2030, 1, 1, 12, 0)
	tests := []struct {
		digits string
		start  time.Time
		end    time.Time
	}{
		{"2024", at(2024, 1, 1, 0, 0), at(2025, 1, 1, 0, 0)},
		{"1999", at(1999, 1, 1, 0, 0), at(2000, 1, 1, 0, 0)},
		{"202402", at(2024, 2, 1, 0, 0), at(2024, 3, 1, 0, 0)},
		{"202302", at(2023, 2, 1, 0, 0), at(2023, 3, 1, 0, 0)},
		{"202404", at(2024, 4, 1, 0, 0), at(2024, 5, 1, 0, 0)},
		{"202412", at(2024, 12, 1, 0, 0), at(2025, 1, 1, 0, 0)},
		{"20240915", at(2024, 9, 15, 0, 0), at(2024, 9, 16, 0, 0)},
		{"20241231", at(2024, 12, 31, 0, 0), at(2025, 1, 1, 0, 0)},
	}

	r := NewResolver(nil)
	for _, tt := range tests {
		t.Run(tt.digits, func(t *testing.T) {
			w, err := r.Resolve(Numeric{Digits: tt.digits}, now)
			require.NoError(t, err)
			assert.True(t, tt.start.Equal(w.Start), "start %s, want %s", w.Start, tt.start)
			assert.True(t, tt.end.Equal(w.End), "end %s, want %s", w.End, tt.end)
		})
	}
}

func TestResolve_NumericFourDigitYears(t *testing.T) {
	r := NewResolver(nil)
	for y := 1970; y <= 2100; y++ {
		w, err := r.Resolve(Numeric{Digits: time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006")}, at(2024, 6, 1, 0, 0))
		require.NoError(t, err)
		assert.True(t, at(y, 1, 1, 0, 0).Equal(w.Start))
		assert.True(t, at(y+1, 1, 1, 0, 0).Equal(w.End))
	}
}

func TestResolve_NumericErrors(t *testing.T) {
	tests := []struct {
		digits string
		kind   error
	}{
		{"123", ErrUnsupportedTermFormat},
		{"12345", ErrUnsupportedTermFormat},
		{"2024091", ErrUnsupportedTermFormat},
		{"202409150", ErrUnsupportedTermFormat},
		{"202413", ErrUnknownKeyword},
		{"20240230", ErrUnknownKeyword},
		{"2024ab15", ErrUnknownKeyword},
	}

	r := NewResolver(nil)
	for _, tt := range tests {
		t.Run(tt.digits, func(t *testing.T) {
			_, err := r.Resolve(Numeric{Digits: tt.digits}, at(2024, 9, 15, 0, 0))
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestResolve_Natural(t *testing.T) {
	now := at(2024, 9, 15, 9, 0)
	tests := []struct {
		name   string
		result nlp.Result
		start  time.Time
		end    time.Time
	}{
		{
			name:   "all day without end",
			result: nlp.Result{Start: at(2024, 9, 20, 0, 0), AllDay: true},
			start:  at(2024, 9, 20, 0, 0),
			end:    at(2024, 9, 21, 0, 0),
		},
		{
			name:   "all day with end",
			result: nlp.Result{Start: at(2024, 9, 20, 0, 0), End: at(2024, 9, 22, 0, 0), AllDay: true},
			start:  at(2024, 9, 20, 0, 0),
			end:    at(2024, 9, 23, 0, 0),
		},
		{
			name:   "timed with end",
			result: nlp.Result{Start: at(2024, 9, 20, 15, 0), End: at(2024, 9, 20, 17, 0)},
			start:  at(2024, 9, 20, 15, 0),
			end:    at(2024, 9, 20, 17, 0),
		},
		{
			name:   "timed without end is open",
			result: nlp.Result{Start: at(2024, 9, 20, 15, 0)},
			start:  at(2024, 9, 20, 15, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewResolver(stubParser(tt.result, nil)).Resolve(Natural{Text: "whatever"}, now)
			require.NoError(t, err)
			assert.Equal(t, tt.start, w.Start)
			assert.Equal(t, tt.end, w.End)
			assert.Equal(t, !tt.end.IsZero(), w.HasEnd())
		})
	}
}

func TestResolve_NaturalErrors(t *testing.T) {
	now := at(2024, 9, 15, 9, 0)

	_, err := NewResolver(stubParser(nlp.Result{}, nlp.ErrNoMatch)).Resolve(Natural{Text: "blah"}, now)
	assert.ErrorIs(t, err, ErrNaturalLanguageParseFailed)
	assert.ErrorIs(t, err, nlp.ErrNoMatch)

	_, err = NewResolver(nil).Resolve(Natural{Text: "blah"}, now)
	assert.ErrorIs(t, err, ErrNaturalLanguageParseFailed)

	inverted := nlp.Result{Start: at(2024, 9, 20, 17, 0), End: at(2024, 9, 20, 15, 0)}
	_, err = NewResolver(stubParser(inverted, nil)).Resolve(Natural{Text: "blah"}, now)
	assert.ErrorIs(t, err, ErrInvertedBounds)
}

func TestResolve_Bounds(t *testing.T) {
	now := at(2024, 9, 15, 9, 0)
	tests := []struct {
		name   string
		bounds Bounds
		start  time.Time
		end    time.Time
	}{
		{"neither falls back to today", Bounds{}, at(2024, 9, 15, 0, 0), at(2024, 9, 16, 0, 0)},
		{"from only", Bounds{From: "2024-09-01"}, at(2024, 9, 1, 0, 0), time.Time{}},
		{"to only", Bounds{To: "2024-09-30 18:00"}, time.Time{}, at(2024, 9, 30, 18, 0)},
		{"both", Bounds{From: "2024-09-01T08:30", To: "2024-09-02"}, at(2024, 9, 1, 8, 30), at(2024, 9, 2, 0, 0)},
		{"seconds", Bounds{From: "2024-09-01 08:30:00"}, at(2024, 9, 1, 8, 30), time.Time{}},
	}

	r := NewResolver(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := r.Resolve(tt.bounds, now)
			require.NoError(t, err)
			assert.True(t, tt.start.Equal(w.Start), "start %s, want %s", w.Start, tt.start)
			assert.True(t, tt.end.Equal(w.End), "end %s, want %s", w.End, tt.end)
		})
	}
}

func TestResolve_BoundsRFC3339(t *testing.T) {
	w, err := NewResolver(nil).Resolve(Bounds{From: "2024-09-01T10:00:00Z"}, at(2024, 9, 15, 9, 0))
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC).Equal(w.Start))
}

func TestResolve_BoundsErrors(t *testing.T) {
	r := NewResolver(nil)
	now := at(2024, 9, 15, 9, 0)

	_, err := r.Resolve(Bounds{From: "yesterday-ish"}, now)
	var terr *Error
	require.True(t, errors.As(err, &terr))
	assert.ErrorIs(t, err, ErrUnsupportedTermFormat)
	assert.Equal(t, "from", terr.Field)

	_, err = r.Resolve(Bounds{To: "32/13/2024"}, now)
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "to", terr.Field)

	_, err = r.Resolve(Bounds{From: "2024-09-02", To: "2024-09-01"}, now)
	assert.ErrorIs(t, err, ErrInvertedBounds)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		arg  string
		from string
		want Input
	}{
		{"", "2024-01-01", Bounds{From: "2024-01-01"}},
		{"today", "", KeywordInput{Phrase: "today"}},
		{"Last Month", "", KeywordInput{Phrase: "Last Month"}},
		{"202409", "", Numeric{Digits: "202409"}},
		{"123", "", Numeric{Digits: "123"}},
		{"next week", "", Natural{Text: "next week"}},
		{"2024-09-15", "", Natural{Text: "2024-09-15"}},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.arg, tt.from, ""))
		})
	}
}

func TestKeywordString(t *testing.T) {
	for _, k := range Keywords() {
		got, ok := LookupKeyword(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}
	assert.Equal(t, "unknown", Keyword(99).String())
}
