package eventtime

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

type Unit int

const (
	Minutes Unit = iota
	Hours
	Days
	Weeks
	Months
	Years
)

var unitLetters = map[string]Unit{
	"m": Minutes,
	"h": Hours,
	"d": Days,
	"w": Weeks,
	"M": Months,
	"y": Years,
}

func (u Unit) String() string {
	switch u {
	case Minutes:
		return "minutes"
	case Hours:
		return "hours"
	case Days:
		return "days"
	case Weeks:
		return "weeks"
	case Months:
		return "months"
	case Years:
		return "years"
	default:
		return "unknown"
	}
}

func (u Unit) letter() string {
	for l, v := range unitLetters {
		if v == u {
			return l
		}
	}
	return "?"
}

// Duration is a compact length such as "90m" or "2d". Units are
// case-sensitive: "m" is minutes and "M" is months.
type Duration struct {
	Magnitude int
	Unit      Unit
}

var durationRe = regexp.MustCompile(`^(\d+)([a-zA-Z])$`)

// maxMagnitude keeps AddTo inside the range of time.Duration and well clear of
// year overflow in AddDate.
var maxMagnitude = map[Unit]int64{
	Minutes: math.MaxInt64 / int64(time.Minute),
	Hours:   math.MaxInt64 / int64(time.Hour),
	Days:    10000 * 366,
	Weeks:   10000 * 53,
	Months:  10000 * 12,
	Years:   10000,
}

func ParseDuration(s string) (Duration, error) {
	matches := durationRe.FindStringSubmatch(s)
	if matches == nil {
		return Duration{}, fmt.Errorf("not a duration (want e.g. 30m, 2h, 1d): %q", s)
	}
	unit, ok := unitLetters[matches[2]]
	if !ok {
		return Duration{}, fmt.Errorf("unknown duration unit %q in %q", matches[2], s)
	}
	n, err := strconv.Atoi(matches[1])
	if err != nil {
		return Duration{}, fmt.Errorf("duration magnitude %q: %w", matches[1], err)
	}
	if int64(n) > maxMagnitude[unit] {
		return Duration{}, fmt.Errorf("duration %q is too long (at most %d%s)", s, maxMagnitude[unit], matches[2])
	}
	return Duration{Magnitude: n, Unit: unit}, nil
}

func Minute(n int) Duration {
	return Duration{Magnitude: n, Unit: Minutes}
}

// IsCalendar reports whether the unit counts whole days or more.
func (d Duration) IsCalendar() bool {
	return d.Unit >= Days
}

func (d Duration) IsZero() bool {
	return d.Magnitude == 0
}

func (d Duration) AddTo(t time.Time) time.Time {
	switch d.Unit {
	case Minutes:
		return t.Add(time.Duration(d.Magnitude) * time.Minute)
	case Hours:
		return t.Add(time.Duration(d.Magnitude) * time.Hour)
	case Days:
		return t.AddDate(0, 0, d.Magnitude)
	case Weeks:
		return t.AddDate(0, 0, 7*d.Magnitude)
	case Months:
		return t.AddDate(0, d.Magnitude, 0)
	case Years:
		return t.AddDate(d.Magnitude, 0, 0)
	default:
		panic(fmt.Sprintf("eventtime: unit %d cannot be added", int(d.Unit)))
	}
}

// AddToDate applies a calendar duration to a date. Minutes and hours have
// no meaning on a date and are rejected.
func (d Duration) AddToDate(date Date) (Date, error) {
	if !d.IsCalendar() {
		return Date{}, fmt.Errorf("%s cannot be applied to a date", d.Unit)
	}
	return DateOf(d.AddTo(date.In(time.UTC))), nil
}

func (d Duration) String() string {
	return strconv.Itoa(d.Magnitude) + d.Unit.letter()
}
