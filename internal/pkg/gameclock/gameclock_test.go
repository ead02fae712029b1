package gameclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestClock() *Clock {
	return New(12, 2*time.Minute)
}

func TestAdvance_ElapsedRealTimeMovesGameDays(t *testing.T) {
	clock := newTestClock()
	last := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	// Two minutes of wall clock is exactly one game day.
	day := clock.Advance(0, last, last.Add(2*time.Minute))
	assert.InDelta(t, 1.0, day, 1e-9)

	// Half a game day from an arbitrary starting point.
	day = clock.Advance(3.25, last, last.Add(time.Minute))
	assert.InDelta(t, 3.75, day, 1e-9)
}

func TestAdvance_NeverMovesBackward(t *testing.T) {
	clock := newTestClock()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	// A stale "last update" in the future must not rewind the clock.
	assert.Equal(t, 7.5, clock.Advance(7.5, now.Add(time.Hour), now))
	assert.Equal(t, 7.5, clock.Advance(7.5, now, now))
}

func TestDateLabel(t *testing.T) {
	clock := newTestClock()
	day := func(v float64) *float64 { return &v }

	assert.Equal(t, "Y1 M1", clock.DateLabel(day(0)))
	assert.Equal(t, "Y1 M1", clock.DateLabel(day(0.99)))
	assert.Equal(t, "Y1 M12", clock.DateLabel(day(11.2)))
	assert.Equal(t, "Y2 M1", clock.DateLabel(day(12)))
	assert.Equal(t, "Y3 M6", clock.DateLabel(day(29.5)))
}

func TestDateLabel_UnknownSchedule(t *testing.T) {
	clock := newTestClock()
	negative := -1.0

	assert.Equal(t, "---", clock.DateLabel(nil))
	assert.Equal(t, "---", clock.DateLabel(&negative))
}

func TestTimeUntil(t *testing.T) {
	clock := newTestClock()

	assert.Equal(t, 2*time.Minute, clock.TimeUntil(11, 12))
	assert.Equal(t, time.Minute, clock.TimeUntil(11.5, 12))

	// Past or current schedules are due now.
	assert.Equal(t, time.Duration(0), clock.TimeUntil(12, 12))
	assert.Equal(t, time.Duration(0), clock.TimeUntil(14, 12))
}

func TestWholeDay(t *testing.T) {
	assert.Equal(t, 0, WholeDay(0))
	assert.Equal(t, 0, WholeDay(0.999))
	assert.Equal(t, 5, WholeDay(5.0))
	assert.Equal(t, 5, WholeDay(5.7))
}
