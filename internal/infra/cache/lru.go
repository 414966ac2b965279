// Package cache provides an in-process cache for quick save reads.
// The save repository remains the source of truth.
package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is the number of sessions kept when no size is configured.
const DefaultSize = 64

type entry struct {
	doc    []byte
	stored time.Time
}

// SnapshotCache holds encoded save documents keyed by session id.
type SnapshotCache struct {
	docs       *lru.Cache[string, entry]
	expiration time.Duration
	now        func() time.Time
}

// NewSnapshotCache creates a cache of the given size. A zero expiration keeps
// entries until they are evicted.
func NewSnapshotCache(size int, expiration time.Duration) (*SnapshotCache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	docs, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	return &SnapshotCache{docs: docs, expiration: expiration, now: time.Now}, nil
}

// Put stores a copy of doc.
func (c *SnapshotCache) Put(sessionID string, doc []byte) {
	cp := make([]byte, len(doc))
	copy(cp, doc)
	c.docs.Add(sessionID, entry{doc: cp, stored: c.now()})
}

// Get returns a copy of the cached document.
func (c *SnapshotCache) Get(sessionID string) ([]byte, bool) {
	e, ok := c.docs.Get(sessionID)
	if !ok {
		return nil, false
	}
	if c.expiration > 0 && c.now().Sub(e.stored) > c.expiration {
		c.docs.Remove(sessionID)
		return nil, false
	}
	cp := make([]byte, len(e.doc))
	copy(cp, e.doc)
	return cp, true
}

// Invalidate drops a session's entry.
func (c *SnapshotCache) Invalidate(sessionID string) {
	c.docs.Remove(sessionID)
}

// Len returns the number of cached sessions.
func (c *SnapshotCache) Len() int {
	return c.docs.Len()
}
