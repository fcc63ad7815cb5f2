package clock

import "time"

type Clock interface {
	Now() time.Time
}

type System struct {
	Location *time.Location
}

func (s System) Now() time.Time {
	if s.Location != nil {
		return time.Now().In(s.Location)
	}
	return time.Now()
}

// Fixed always reports the same instant; used by tests and for reproducible
// invocations.
type Fixed struct {
	FixedNow time.Time
}

func (f *Fixed) Now() time.Time {
	return f.FixedNow
}

func (f *Fixed) SetNow(now time.Time) {
	f.FixedNow = now
}
