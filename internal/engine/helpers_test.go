package engine

import (
	"testing"

	"github.com/abstogo/SpaceTycoon/internal/catalog"
	"github.com/abstogo/SpaceTycoon/internal/events"
	"github.com/abstogo/SpaceTycoon/internal/platform/logger"
	"github.com/abstogo/SpaceTycoon/internal/rng"
)

// steady returns the same float for every draw and 0 for every int draw.
type steady float64

func (s steady) Float64() float64 { return float64(s) }
func (s steady) IntN(int) int     { return 0 }

// quiet never passes a probability check.
const quiet = steady(0.99)

func newTestSession(t *testing.T, src rng.Source, mutate ...func(*Options)) *GameSession {
	t.Helper()
	opts := DefaultOptions()
	for _, m := range mutate {
		m(&opts)
	}
	journal := events.NewEventLog("test-session", nil)
	return NewGameSession(opts, catalog.MustDefault(), src, journal, logger.Nop())
}
