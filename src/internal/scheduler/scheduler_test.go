package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUntilNextRun(t *testing.T) {
	s := New(nil, nil, nil, 1)

	// Before today's window: wait until 01:00 today.
	now := time.Date(2026, time.March, 10, 0, 30, 0, 0, time.UTC)
	assert.Equal(t, 30*time.Minute, s.untilNextRun(now))

	// Past today's window: wait until 01:00 tomorrow.
	now = time.Date(2026, time.March, 10, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 24*time.Hour, s.untilNextRun(now))

	now = time.Date(2026, time.March, 10, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, 2*time.Hour, s.untilNextRun(now))
}
