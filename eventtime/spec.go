package eventtime

import "time"

// Spec is when an event happens: either AllDay or Timed, never both.
type Spec interface {
	isSpec()
}

// AllDay covers the dates [Start, End); a one-day event has End equal to
// Start plus one day.
type AllDay struct {
	Start Date
	End   Date
}

// Timed covers the instants [Start, End).
type Timed struct {
	Start time.Time
	End   time.Time
}

func (AllDay) isSpec() {}
func (Timed) isSpec()  {}

// Event is the derived summary and time of an event to insert.
type Event struct {
	Summary string
	Time    Spec
}
