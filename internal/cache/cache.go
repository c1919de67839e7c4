// Package cache implements the process-wide query cache. Entries are keyed
// by operation plus filter fingerprint; every successful mutation invalidates
// all keys under the affected operation prefix, so readers re-fetch instead
// of serving stale pages.
package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a read-through cache with prefix invalidation and TTL expiry.
// A zero TTL means entries never expire on their own.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

// Key builds a cache key from an operation name and its parameters. Each
// parameter is rendered quoted, so a delimiter character inside a value
// cannot run into the delimiter between values and two different parameter
// lists never produce the same key.
func Key(op string, parts ...any) string {
	var b strings.Builder
	b.WriteString(op)
	for _, p := range parts {
		fmt.Fprintf(&b, "|%q", fmt.Sprint(p))
	}
	return b.String()
}

// Get returns the cached value for key, if present and not expired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry{value: value}
	if c.ttl > 0 {
		e.expiresAt = time.Now().Add(c.ttl)
	}
	c.entries[key] = e
}

// InvalidatePrefix removes every entry whose key starts with prefix and
// returns how many entries it dropped.
func (c *Cache) InvalidatePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			dropped++
		}
	}
	return dropped
}

// Sweep removes expired entries. Intended to run on a scheduler so the map
// does not accumulate dead filter combinations.
func (c *Cache) Sweep(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of live entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
