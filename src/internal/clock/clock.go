package clock

import "time"

// Clock supplies the batch date. Every batch decision is made against
// Today, never against time.Now directly, so a pinned clock makes the
// whole engine deterministic.
type Clock interface {
	Today() time.Time
}

type SystemClock struct{}

func (SystemClock) Today() time.Time {
	return Truncate(time.Now().UTC())
}

// FixedClock always returns the same pinned date (time-travel for
// batch reruns and tests).
type FixedClock struct {
	Date time.Time
}

func (c FixedClock) Today() time.Time {
	return Truncate(c.Date)
}

// Truncate drops the time-of-day portion, keeping a UTC midnight date.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthsBetween counts whole calendar months from start to end,
// anchored on the start's day of month. Negative when end precedes
// start.
func MonthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	return months
}

// DaysBetween counts calendar days from start to end.
func DaysBetween(start, end time.Time) int {
	return int(Truncate(end).Sub(Truncate(start)).Hours() / 24)
}
