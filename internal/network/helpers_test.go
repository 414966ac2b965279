package network

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abstogo/SpaceTycoon/internal/catalog"
	"github.com/abstogo/SpaceTycoon/internal/engine"
	"github.com/abstogo/SpaceTycoon/internal/events"
	"github.com/abstogo/SpaceTycoon/internal/infra/cache"
	"github.com/abstogo/SpaceTycoon/internal/infra/storage"
	"github.com/abstogo/SpaceTycoon/internal/platform/logger"
)

// steady returns the same float for every draw and 0 for every int draw.
type steady float64

func (s steady) Float64() float64 { return float64(s) }
func (s steady) IntN(int) int     { return 0 }

func newTestRunner(t *testing.T, persister events.EventPersister) *engine.Runner {
	t.Helper()
	journal := events.NewEventLog("net-session", persister)
	s := engine.NewGameSession(engine.DefaultOptions(), catalog.MustDefault(), steady(0.99), journal, logger.Nop())
	return engine.NewRunner(s, logger.Nop(), 0)
}

// newStoredAPI wires an API to a temp-dir SQLite database.
func newStoredAPI(t *testing.T) (*API, *engine.Runner) {
	t.Helper()
	db, err := storage.InitSQLite(filepath.Join(t.TempDir(), "net.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	eventRepo := storage.NewSQLiteEventRepository(db)
	c, err := cache.NewSnapshotCache(4, 0)
	require.NoError(t, err)
	store := storage.NewGameStore(storage.NewSQLiteSaveRepository(db), c, 6)

	runner := newTestRunner(t, storage.NewJournalPersister(eventRepo))
	return NewAPI(runner, store, storage.NewReconstructor(eventRepo), nil, logger.Nop()), runner
}
