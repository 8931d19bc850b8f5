package utils

import (
	"sync"
	"time"
)

// StatusCache 차량별 마지막 상태를 기억해 상태 변경만 감지
type StatusCache struct {
	mu           sync.RWMutex
	statusMap    map[string]*StatusEntry
	ttl          time.Duration
	cleanupTimer *time.Timer
	stopped      bool
	now          func() time.Time
}

// StatusEntry 캐시 엔트리
type StatusEntry struct {
	Status      string
	LastUpdated time.Time
	UpdateCount int
}

// NewStatusCache 새 상태 캐시 생성. ttl 동안 갱신이 없는 엔트리는 정리됨
func NewStatusCache(ttl time.Duration) *StatusCache {
	cache := &StatusCache{
		statusMap: make(map[string]*StatusEntry),
		ttl:       ttl,
		now:       time.Now,
	}

	if ttl > 0 {
		cache.startCleanup()
	}

	return cache
}

// Observe 새 상태 기록. 처음 보는 키이거나 상태가 바뀌면 changed=true 와 이전 상태 반환
func (c *StatusCache) Observe(key, status string) (changed bool, previous string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	entry, exists := c.statusMap[key]
	if !exists {
		c.statusMap[key] = &StatusEntry{Status: status, LastUpdated: now, UpdateCount: 1}
		return true, ""
	}

	previous = entry.Status
	entry.Status = status
	entry.LastUpdated = now
	entry.UpdateCount++
	return previous != status, previous
}

// Get 상태 조회
func (c *StatusCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if entry, exists := c.statusMap[key]; exists {
		return entry.Status, true
	}
	return "", false
}

// Snapshot 모든 상태의 복사본
func (c *StatusCache) Snapshot() map[string]StatusEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[string]StatusEntry, len(c.statusMap))
	for k, v := range c.statusMap {
		result[k] = *v
	}
	return result
}

// startCleanup 주기적 정리 예약. Stop 이후에는 다시 예약하지 않음
func (c *StatusCache) startCleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}
	c.cleanupTimer = time.AfterFunc(c.ttl, func() {
		c.cleanup()
		c.startCleanup()
	})
}

// cleanup 오래된 엔트리 정리
func (c *StatusCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.statusMap {
		if now.Sub(entry.LastUpdated) > c.ttl {
			delete(c.statusMap, key)
			removed++
			Logger.Debugf("Cleaned up stale cache entry: %s", key)
		}
	}

	if removed > 0 {
		Logger.Infof("Cleaned up %d stale cache entries", removed)
	}
}

// Stop 캐시 정리 중지
func (c *StatusCache) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopped = true
	if c.cleanupTimer != nil {
		c.cleanupTimer.Stop()
	}
}
