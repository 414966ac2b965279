package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abstogo/SpaceTycoon/internal/domain/calendar"
)

func TestClock_AdvanceAccumulates(t *testing.T) {
	c := NewClock(calendar.Date{Year: 1105, Day: 1}, time.Second)
	var seen []string
	c.OnDay(func(d calendar.Date) { seen = append(seen, d.String()) })

	assert.Zero(t, c.Advance(400*time.Millisecond))
	assert.Equal(t, 2, c.Advance(2100*time.Millisecond))
	assert.Equal(t, []string{"1105-002", "1105-003"}, seen)
	assert.InDelta(t, 0.5, c.Progress(), 1e-9)
	assert.Zero(t, c.Advance(-time.Second))
}

func TestClock_WrapsYear(t *testing.T) {
	c := NewClock(calendar.Date{Year: 1105, Day: 364}, 0)
	assert.Equal(t, DefaultDayLength, c.DayLength())

	c.AdvanceDays(2)
	assert.Equal(t, calendar.Date{Year: 1106, Day: 1}, c.Date())
}

func TestClock_SetDateSkipsHooks(t *testing.T) {
	c := NewClock(calendar.New(1105), time.Second)
	calls := 0
	c.OnDay(func(calendar.Date) { calls++ })

	c.Advance(500 * time.Millisecond)
	c.SetDate(calendar.Date{Year: 1200, Day: 10})
	assert.Zero(t, calls)
	assert.Zero(t, c.Progress())
	assert.Equal(t, "1200-010", c.Date().String())
}
