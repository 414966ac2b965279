package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abstogo/SpaceTycoon/internal/domain/calendar"
	"github.com/abstogo/SpaceTycoon/internal/events"
	"github.com/abstogo/SpaceTycoon/internal/infra/cache"
	"github.com/abstogo/SpaceTycoon/internal/savegame"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitSQLite(filepath.Join(t.TempDir(), "data", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func row(id string, day int, eventType string, payload map[string]any) GameEvent {
	return GameEvent{
		ID:        id,
		SessionID: "s1",
		Timestamp: time.Date(2026, 1, 1, 0, 0, day, 0, time.UTC),
		EventType: eventType,
		ActorID:   "player",
		GameYear:  1105,
		GameDay:   day,
		Message:   eventType + " " + id,
		Payload:   payload,
	}
}

func TestEventRepository_AppendAndQuery(t *testing.T) {
	// Setup
	ctx := context.Background()
	repo := NewSQLiteEventRepository(openTestDB(t))

	// Act
	require.NoError(t, repo.Append(ctx, row("e1", 1, "TRADE", map[string]any{"credits": 320})))
	require.NoError(t, repo.Append(ctx, row("e2", 2, "REFUEL", nil)))
	require.NoError(t, repo.Append(ctx, row("e3", 3, "TRADE", nil)))
	other := row("x1", 1, "TRADE", nil)
	other.SessionID = "s2"
	require.NoError(t, repo.Append(ctx, other))

	// Assert
	all, err := repo.GetBySessionID(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"e1", "e2", "e3"}, []string{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, float64(320), all[0].Payload["credits"])
	assert.Empty(t, all[1].Payload)

	trades, err := repo.GetByEventType(ctx, "s1", "TRADE")
	require.NoError(t, err)
	assert.Len(t, trades, 2)

	since, err := repo.GetSince(ctx, "s1", 1105, 2)
	require.NoError(t, err)
	require.Len(t, since, 2)
	assert.Equal(t, "e2", since[0].ID)

	require.NoError(t, repo.DeleteSession(ctx, "s1"))
	all, err = repo.GetBySessionID(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, all)
	rest, err := repo.GetBySessionID(ctx, "s2")
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}

func TestSaveRepository_UpsertGetList(t *testing.T) {
	// Setup
	ctx := context.Background()
	repo := NewSQLiteSaveRepository(openTestDB(t))
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	// Act
	require.NoError(t, repo.Upsert(ctx, SaveRecord{SessionID: "a", Version: 2, Credits: 100, Location: "Port Alpha", GameDate: "1105-001", Document: []byte(`{"a":1}`), SavedAt: t0}))
	require.NoError(t, repo.Upsert(ctx, SaveRecord{SessionID: "b", Version: 2, Credits: 200, Location: "Port Beta", GameDate: "1105-002", Document: []byte(`{"b":1}`), SavedAt: t0.Add(time.Hour)}))
	require.NoError(t, repo.Upsert(ctx, SaveRecord{SessionID: "a", Version: 2, Credits: 150, Location: "Port Gamma", GameDate: "1105-003", Document: []byte(`{"a":2}`), SavedAt: t0.Add(2 * time.Hour)}))

	// Assert
	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 150, got.Credits)
	assert.Equal(t, "Port Gamma", got.Location)
	assert.JSONEq(t, `{"a":2}`, string(got.Document))

	missing, err := repo.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].SessionID)
	assert.Nil(t, list[0].Document)

	require.NoError(t, repo.Delete(ctx, "a"))
	got, err = repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestJournalPersister_RoundTrip(t *testing.T) {
	// Setup
	ctx := context.Background()
	repo := NewSQLiteEventRepository(openTestDB(t))
	journal := events.NewEventLog("s1", NewJournalPersister(repo))
	date := calendar.Date{Year: 1105, Day: 4}

	// Act
	_, err := journal.Record(events.EventTypeRefuel, events.ActorPlayer, date, "Refueled 10 units.", map[string]int{"amount": 10, "cost": 100})
	require.NoError(t, err)
	_, err = journal.Record(events.EventTypeArrival, events.ActorShip, date.Next(), "Arrived at Port Beta.", nil)
	require.NoError(t, err)

	// Assert
	history, err := LoadJournal(ctx, repo, "s1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, events.EventTypeRefuel, history[0].Type)
	assert.Equal(t, date, history[0].Date)
	assert.Equal(t, "1105-004: Refueled 10 units.", history[0].Line())
	assert.Equal(t, map[string]any{"amount": float64(10), "cost": float64(100)}, history[0].Payload)
	assert.Nil(t, history[1].Payload)

	restored := events.NewEventLog("s1", nil)
	restored.Load(history)
	assert.Equal(t, 2, restored.Len())
}

func TestFromJournal_ScalarPayload(t *testing.T) {
	e, err := FromJournal(events.GameEvent{ID: "1", Type: events.EventTypeNotice, Payload: "hello"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"value": "hello"}, e.Payload)
}

type failingRepo struct{ EventRepository }

func (failingRepo) Append(context.Context, GameEvent) error { return errors.New("disk full") }

func TestJournalPersister_ErrorKeepsEventInMemory(t *testing.T) {
	journal := events.NewEventLog("s1", NewJournalPersister(failingRepo{}))

	_, err := journal.Record(events.EventTypeNotice, events.ActorSystem, calendar.New(1105), "hello", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 1, journal.Len())
}

func TestGameStore_SaveLoad(t *testing.T) {
	// Setup
	ctx := context.Background()
	c, err := cache.NewSnapshotCache(8, 0)
	require.NoError(t, err)
	repo := NewSQLiteSaveRepository(openTestDB(t))
	store := NewGameStore(repo, c, 6)

	snap := savegame.Default()
	snap.Credits = 4321
	snap.Location = "Port Delta"

	// Act
	require.NoError(t, store.Save(ctx, "s1", snap))
	c.Invalidate("s1")
	loaded, err := store.Load(ctx, "s1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 4321, loaded.Credits)
	assert.Equal(t, "Port Delta", loaded.Location)
	assert.Len(t, loaded.Crew, len(snap.Crew))
	assert.Equal(t, 1, c.Len(), "a repository read fills the cache")

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "1105-001", list[0].GameDate)
}

func TestGameStore_MissingAndDeleted(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewSnapshotCache(8, 0)
	require.NoError(t, err)
	store := NewGameStore(NewSQLiteSaveRepository(openTestDB(t)), c, 6)

	_, err = store.Load(ctx, "none")
	assert.ErrorIs(t, err, ErrNoSave)

	require.NoError(t, store.Save(ctx, "s1", savegame.Default()))
	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Load(ctx, "s1")
	assert.ErrorIs(t, err, ErrNoSave)
}

func TestGameStore_InvalidDocument(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteSaveRepository(openTestDB(t))
	require.NoError(t, repo.Upsert(ctx, SaveRecord{
		SessionID: "bad", Version: 2, Location: "x", GameDate: "x",
		Document: []byte(`{"credits":-5}`), SavedAt: time.Now(),
	}))
	store := NewGameStore(repo, nil, 6)

	_, err := store.Load(ctx, "bad")

	assert.ErrorIs(t, err, savegame.ErrInvalidSnapshot)
}

func TestReconstructor_RecapAndCreditFlow(t *testing.T) {
	// Setup
	ctx := context.Background()
	repo := NewSQLiteEventRepository(openTestDB(t))
	for _, e := range []GameEvent{
		row("1", 1, "CHOICE_RESOLVED", map[string]any{"kind": "credit_delta", "amount": 750, "declined": false}),
		row("2", 2, "CHOICE_RESOLVED", map[string]any{"kind": "spend_attempt", "amount": 500, "declined": false}),
		row("3", 3, "CHOICE_RESOLVED", map[string]any{"kind": "spend_attempt", "amount": 0, "declined": true}),
		row("4", 4, "TRADE", map[string]any{"credits": -320}),
		row("5", 5, "TRADE", map[string]any{"credits": 400}),
		row("6", 6, "REFUEL", map[string]any{"amount": 10, "cost": 100}),
		row("7", 7, "MAINTENANCE", map[string]any{"cost": 500}),
		row("8", 8, "ARRIVAL", nil),
	} {
		require.NoError(t, repo.Append(ctx, e))
	}
	r := NewReconstructor(repo)

	// Act
	recap, err := r.GenerateRecap(ctx, "s1", calendar.Date{Year: 1105, Day: 3})
	require.NoError(t, err)
	flow, err := r.RebuildCreditFlow(ctx, "s1")
	require.NoError(t, err)

	// Assert
	require.Len(t, recap, 6)
	assert.Equal(t, "1105-003", recap[0].Date)
	impacts := make([]string, len(recap))
	for i, e := range recap {
		impacts[i] = e.Impact
	}
	assert.Equal(t, []string{"NEGATIVE", "NEUTRAL", "POSITIVE", "NEUTRAL", "NEUTRAL", "NEUTRAL"}, impacts)

	assert.Equal(t, 1150, flow.Earned)
	assert.Equal(t, 500+320+100+500, flow.Spent)
	assert.Equal(t, 1150-1420, flow.Net())
}
