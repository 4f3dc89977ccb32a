package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFixedClockTruncatesToMidnight(t *testing.T) {
	pinned := time.Date(2026, time.March, 15, 17, 42, 3, 0, time.UTC)
	c := FixedClock{Date: pinned}
	assert.Equal(t, date(2026, time.March, 15), c.Today())
}

func TestMonthsBetween(t *testing.T) {
	start := date(2026, time.January, 15)

	assert.Equal(t, 0, MonthsBetween(start, date(2026, time.February, 14)))
	assert.Equal(t, 1, MonthsBetween(start, date(2026, time.February, 15)))
	assert.Equal(t, 3, MonthsBetween(start, date(2026, time.April, 15)))
	assert.Equal(t, 2, MonthsBetween(start, date(2026, time.April, 14)))
	assert.Equal(t, 12, MonthsBetween(start, date(2027, time.January, 15)))
	assert.Equal(t, -1, MonthsBetween(start, date(2025, time.December, 15)))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 1, DaysBetween(date(2026, time.February, 28), date(2026, time.March, 1)))
	assert.Equal(t, 184, DaysBetween(date(2026, time.January, 1), date(2026, time.July, 4)))
	assert.Equal(t, 0, DaysBetween(date(2026, time.May, 5), date(2026, time.May, 5)))
}
