package advisory

import "time"

// Clock supplies the current time so callers can pin the month in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// MonthClock returns a clock pinned to the first day of month in the current year.
func MonthClock(month int) FixedClock {
	return FixedClock(time.Date(time.Now().Year(), time.Month(month), 1, 12, 0, 0, 0, time.Local))
}
