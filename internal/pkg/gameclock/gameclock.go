package gameclock

import (
	"fmt"
	"math"
	"time"
)

// Clock converts the fractional game-day counter of a slot into
// calendar-style labels and wall-clock schedules. A fixed number of
// game days make up one in-game year; each whole game day is one
// calendar month for labeling.
type Clock struct {
	DaysPerYear    int
	RealPerGameDay time.Duration
}

// New creates a clock with the given year length and real-time rate.
func New(daysPerYear int, realPerGameDay time.Duration) *Clock {
	return &Clock{DaysPerYear: daysPerYear, RealPerGameDay: realPerGameDay}
}

// Advance returns the game day advanced by the wall-clock interval
// since last. Game time is monotonic: a non-positive elapsed interval
// leaves the day unchanged.
func (c *Clock) Advance(day float64, last, now time.Time) float64 {
	elapsed := now.Sub(last)
	if elapsed <= 0 {
		return day
	}
	return day + float64(elapsed)/float64(c.RealPerGameDay)
}

// DateLabel renders a game day as "Y<year> M<month>". A nil day is an
// unknown schedule and renders as "---".
func (c *Clock) DateLabel(day *float64) string {
	if day == nil || math.IsNaN(*day) || *day < 0 {
		return "---"
	}
	totalMonths := int(math.Floor(*day))
	year := totalMonths/c.DaysPerYear + 1
	month := totalMonths%c.DaysPerYear + 1
	return fmt.Sprintf("Y%d M%d", year, month)
}

// TimeUntil returns the wall-clock duration until a scheduled game day
// is reached from the current day. Already-passed schedules yield zero.
func (c *Clock) TimeUntil(current, scheduled float64) time.Duration {
	remaining := scheduled - current
	if remaining <= 0 {
		return 0
	}
	return time.Duration(remaining * float64(c.RealPerGameDay))
}

// WholeDay truncates a fractional game day to the whole day used for
// transaction stamping and daily-limit accounting.
func WholeDay(day float64) int {
	return int(math.Floor(day))
}
