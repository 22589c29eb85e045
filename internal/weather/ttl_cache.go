package weather

import (
	"strings"
	"sync"
	"time"
)

type cacheEntry struct {
	conditions *Conditions
	storedAt   time.Time
}

// ttlCache is a process-local cache keyed by normalized query. Expiry is
// evaluated against a caller-supplied clock on read, so entries can also
// be served stale as an upstream fallback.
type ttlCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func newTTLCache() *ttlCache {
	return &ttlCache{entries: make(map[string]cacheEntry)}
}

func (c *ttlCache) get(key string, now time.Time, ttl time.Duration) (*Conditions, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || now.Sub(entry.storedAt) >= ttl {
		return nil, false
	}
	return entry.conditions, true
}

func (c *ttlCache) getStale(key string) (*Conditions, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return entry.conditions, true
}

func (c *ttlCache) set(key string, conditions *Conditions, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{conditions: conditions, storedAt: now}
}

func cacheKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
