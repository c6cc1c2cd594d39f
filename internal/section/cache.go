package section

import (
	"sync"
	"time"
)

type cacheEntry struct {
	page     *Page
	storedAt time.Time
}

// Cache is a thread-safe in-memory page cache with TTL eviction.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

// Put stores p under its reference. It is a no-op when caching is disabled.
func (c *Cache) Put(p *Page) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[p.Ref] = cacheEntry{page: p, storedAt: time.Now()}
}

// Get returns a fresh page, or nil when absent or expired. A zero TTL
// disables caching.
func (c *Cache) Get(ref string) *Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[ref]
	if !ok || c.ttl <= 0 || time.Since(e.storedAt) > c.ttl {
		return nil
	}
	return e.page
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Cleanup removes expired pages.
func (c *Cache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for ref, e := range c.entries {
		if now.Sub(e.storedAt) > c.ttl {
			delete(c.entries, ref)
		}
	}
}
