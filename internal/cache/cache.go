// Package cache is a small TTL read-through cache for computed report
// payloads. Keys are canonicalized query parameters; callers tolerate
// slightly stale aggregates within the freshness window.
package cache

import (
	"strings"
	"sync"
	"time"
)

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// Cache holds computed values for a fixed duration.
type Cache struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]entry
}

// New creates a cache. A non-positive ttl disables caching entirely.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:   ttl,
		items: make(map[string]entry),
	}
}

// Get returns the cached value for key if it has not expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(v.expiresAt) {
		delete(c.items, key)
		return nil, false
	}
	return v.value, true
}

// Put stores a value under key for the cache's TTL.
func (c *Cache) Put(key string, value interface{}) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.purgeExpiredLocked(time.Now())
	c.items[key] = entry{value: value, expiresAt: time.Now().Add(c.ttl)}
}

func (c *Cache) purgeExpiredLocked(now time.Time) {
	for k, v := range c.items {
		if now.After(v.expiresAt) {
			delete(c.items, k)
		}
	}
}

// Key joins report name and parameters into a stable cache key.
func Key(parts ...string) string {
	return strings.Join(parts, "|")
}
