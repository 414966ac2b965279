package engine

import (
	"time"

	"github.com/abstogo/SpaceTycoon/internal/domain/calendar"
)

// DefaultDayLength is the real time one simulated day takes.
const DefaultDayLength = time.Second

// DayHook runs once for every simulated day, after the date has moved.
type DayHook func(date calendar.Date)

// SimulationClock converts elapsed time into whole game days.
// It does NOT know about ships or crew - only time progression.
type SimulationClock struct {
	dayLength time.Duration
	elapsed   time.Duration
	date      calendar.Date
	hooks     []DayHook
}

// NewClock creates a clock at start. dayLength <= 0 selects DefaultDayLength.
func NewClock(start calendar.Date, dayLength time.Duration) *SimulationClock {
	if dayLength <= 0 {
		dayLength = DefaultDayLength
	}
	return &SimulationClock{dayLength: dayLength, date: start}
}

// OnDay registers a per-day hook. Hooks run in registration order.
func (c *SimulationClock) OnDay(h DayHook) {
	c.hooks = append(c.hooks, h)
}

// Advance accumulates delta and runs the hooks for every completed day.
// It returns the number of days that passed.
func (c *SimulationClock) Advance(delta time.Duration) int {
	if delta <= 0 {
		return 0
	}
	c.elapsed += delta

	days := 0
	for c.elapsed >= c.dayLength {
		c.elapsed -= c.dayLength
		c.nextDay()
		days++
	}
	return days
}

// AdvanceDays runs n whole days regardless of accumulated time.
func (c *SimulationClock) AdvanceDays(n int) {
	for i := 0; i < n; i++ {
		c.nextDay()
	}
}

func (c *SimulationClock) nextDay() {
	c.date = c.date.Next()
	for _, h := range c.hooks {
		h(c.date)
	}
}

// Date returns the current game date.
func (c *SimulationClock) Date() calendar.Date {
	return c.date
}

// SetDate moves the clock without running hooks and clears partial progress.
func (c *SimulationClock) SetDate(d calendar.Date) {
	c.date = d
	c.elapsed = 0
}

// DayLength returns the real duration of one game day.
func (c *SimulationClock) DayLength() time.Duration {
	return c.dayLength
}

// Progress is the fraction of the current day already elapsed.
func (c *SimulationClock) Progress() float64 {
	return float64(c.elapsed) / float64(c.dayLength)
}
