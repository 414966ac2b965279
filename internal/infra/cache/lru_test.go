package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCache_PutGet(t *testing.T) {
	c, err := NewSnapshotCache(2, 0)
	require.NoError(t, err)

	doc := []byte(`{"credits":10}`)
	c.Put("a", doc)
	doc[0] = 'X'

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, `{"credits":10}`, string(got))

	got[0] = 'Y'
	again, _ := c.Get("a")
	assert.Equal(t, byte('{'), again[0], "callers must not alias the cached bytes")
}

func TestSnapshotCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c, err := NewSnapshotCache(2, 0)
	require.NoError(t, err)

	c.Put("a", []byte("1"))
	c.Put("b", []byte("2"))
	_, _ = c.Get("a")
	c.Put("c", []byte("3"))

	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestSnapshotCache_Expiration(t *testing.T) {
	c, err := NewSnapshotCache(0, time.Minute)
	require.NoError(t, err)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	c.Put("a", []byte("1"))

	now = now.Add(30 * time.Second)
	_, ok := c.Get("a")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestSnapshotCache_Invalidate(t *testing.T) {
	c, err := NewSnapshotCache(4, 0)
	require.NoError(t, err)

	c.Put("a", []byte("1"))
	c.Invalidate("a")
	c.Invalidate("missing")

	_, ok := c.Get("a")
	assert.False(t, ok)
}
