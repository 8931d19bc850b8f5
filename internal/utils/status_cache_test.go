package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusCache(t *testing.T) {
	cache := NewStatusCache(0)
	defer cache.Stop()

	t.Run("First observation is a change", func(t *testing.T) {
		changed, previous := cache.Observe("ACME/AGV1", "ONLINE")
		assert.True(t, changed)
		assert.Equal(t, "", previous)
	})

	t.Run("Same status is not a change", func(t *testing.T) {
		changed, previous := cache.Observe("ACME/AGV1", "ONLINE")
		assert.False(t, changed)
		assert.Equal(t, "ONLINE", previous)
	})

	t.Run("Transition reports previous status", func(t *testing.T) {
		changed, previous := cache.Observe("ACME/AGV1", "CONNECTIONBROKEN")
		assert.True(t, changed)
		assert.Equal(t, "ONLINE", previous)

		status, ok := cache.Get("ACME/AGV1")
		assert.True(t, ok)
		assert.Equal(t, "CONNECTIONBROKEN", status)
		assert.Equal(t, 3, cache.Snapshot()["ACME/AGV1"].UpdateCount)
	})
}

func TestStatusCacheCleanup(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := &StatusCache{
		statusMap: make(map[string]*StatusEntry),
		ttl:       time.Minute,
		now:       func() time.Time { return now },
	}

	cache.Observe("old", "ONLINE")
	now = now.Add(50 * time.Second)
	cache.Observe("fresh", "ONLINE")
	now = now.Add(30 * time.Second)

	cache.cleanup()

	_, ok := cache.Get("old")
	assert.False(t, ok)
	_, ok = cache.Get("fresh")
	assert.True(t, ok)
}

func TestStatusCacheTimer(t *testing.T) {
	t.Run("Stale entries are removed in the background", func(t *testing.T) {
		cache := NewStatusCache(20 * time.Millisecond)
		defer cache.Stop()

		cache.Observe("ACME/AGV1", "ONLINE")
		assert.Eventually(t, func() bool {
			_, ok := cache.Get("ACME/AGV1")
			return !ok
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("Stop prevents further cleanup", func(t *testing.T) {
		cache := NewStatusCache(20 * time.Millisecond)
		cache.Stop()
		cache.Stop()

		cache.Observe("ACME/AGV1", "ONLINE")
		time.Sleep(80 * time.Millisecond)
		_, ok := cache.Get("ACME/AGV1")
		assert.True(t, ok)
	})

	t.Run("Re-arming after Stop is a no-op", func(t *testing.T) {
		cache := NewStatusCache(time.Hour)
		cache.Stop()
		first := cache.cleanupTimer

		cache.startCleanup()
		assert.Same(t, first, cache.cleanupTimer)
	})
}
