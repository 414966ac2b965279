package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abstogo/SpaceTycoon/internal/infra/cache"
	"github.com/abstogo/SpaceTycoon/internal/savegame"
)

// ErrNoSave is returned when a session has never been saved.
var ErrNoSave = errors.New("no saved game")

// GameStore saves and loads snapshots. Encoded documents are kept in a read
// cache in front of the repository; the repository stays the source of truth.
type GameStore struct {
	repo    SaveRepository
	cache   *cache.SnapshotCache
	maxCrew int
}

// NewGameStore creates a store. c may be nil to disable caching.
func NewGameStore(repo SaveRepository, c *cache.SnapshotCache, maxCrew int) *GameStore {
	return &GameStore{repo: repo, cache: c, maxCrew: maxCrew}
}

// Save encodes and stores a snapshot.
func (g *GameStore) Save(ctx context.Context, sessionID string, snap *savegame.Snapshot) error {
	snap.Timestamp = time.Now().UTC()
	doc, err := savegame.Encode(snap)
	if err != nil {
		return err
	}

	rec := SaveRecord{
		SessionID: sessionID,
		Version:   snap.Version,
		Credits:   snap.Credits,
		Location:  snap.Location,
		GameDate:  snap.Date.String(),
		Document:  doc,
		SavedAt:   snap.Timestamp,
	}
	if err := g.repo.Upsert(ctx, rec); err != nil {
		return err
	}
	if g.cache != nil {
		g.cache.Put(sessionID, doc)
	}
	return nil
}

// Load returns the validated snapshot of a session.
func (g *GameStore) Load(ctx context.Context, sessionID string) (*savegame.Snapshot, error) {
	doc, err := g.document(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	snap, err := savegame.Load(doc, g.maxCrew)
	if err != nil {
		if g.cache != nil {
			g.cache.Invalidate(sessionID)
		}
		return nil, fmt.Errorf("load %s: %w", sessionID, err)
	}
	return snap, nil
}

func (g *GameStore) document(ctx context.Context, sessionID string) ([]byte, error) {
	if g.cache != nil {
		if doc, ok := g.cache.Get(sessionID); ok {
			return doc, nil
		}
	}

	rec, err := g.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w for session %s", ErrNoSave, sessionID)
	}
	if g.cache != nil {
		g.cache.Put(sessionID, rec.Document)
	}
	return rec.Document, nil
}

// List returns save headers.
func (g *GameStore) List(ctx context.Context) ([]SaveRecord, error) {
	return g.repo.List(ctx)
}

// Delete removes a save and its cache entry.
func (g *GameStore) Delete(ctx context.Context, sessionID string) error {
	if g.cache != nil {
		g.cache.Invalidate(sessionID)
	}
	return g.repo.Delete(ctx, sessionID)
}
