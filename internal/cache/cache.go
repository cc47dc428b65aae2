// Package cache holds answered questions so repeated asks cost nothing.
// Entries expire by TTL and the oldest-accessed fifth is evicted in one
// batch when the cache fills up.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"time"

	"hsouza/julius/internal/textutils"
)

const (
	// DefaultCapacity bounds the number of cached answers.
	DefaultCapacity = 500
	// DefaultTTL is how long an answer stays valid.
	DefaultTTL = 30 * time.Minute
	// evictFraction of entries leave in one batch at capacity.
	evictFraction = 5
)

type entry struct {
	answer       string
	createdAt    time.Time
	lastAccessed time.Time
	// ttl overrides the cache TTL for this entry; zero means the default.
	ttl time.Duration
}

// ResponseCache is a TTL-bounded answer cache, safe for concurrent use.
type ResponseCache struct {
	mu       sync.Mutex
	entries  map[string]*entry
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

// New creates a ResponseCache. Non-positive capacity or TTL fall back to
// the defaults.
func New(capacity int, ttl time.Duration) *ResponseCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ResponseCache{
		entries:  make(map[string]*entry),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Key derives the cache key for a question within a scope. The question
// is normalized first, so accent and casing variants share one entry.
func Key(question, scope string) string {
	normalized := textutils.Normalize(question)
	sum := md5.Sum([]byte(fmt.Sprintf("%s:%s", normalized, scope)))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached answer for a key, refreshing its access time.
func (c *ResponseCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweep()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	e.lastAccessed = c.now()
	return e.answer, true
}

// Set stores an answer under a key with the cache's default TTL,
// evicting as needed.
func (c *ResponseCache) Set(key, answer string) {
	c.set(key, answer, 0)
}

// SetWithTTL stores an answer that expires after its own ttl instead of
// the cache default. Non-positive ttl falls back to the default.
func (c *ResponseCache) SetWithTTL(key, answer string, ttl time.Duration) {
	if ttl < 0 {
		ttl = 0
	}
	c.set(key, answer, ttl)
}

func (c *ResponseCache) set(key, answer string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweep()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		c.evictOldest()
	}

	now := c.now()
	c.entries[key] = &entry{
		answer:       answer,
		createdAt:    now,
		lastAccessed: now,
		ttl:          ttl,
	}
}

// Len returns the number of live entries.
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweep()
	return len(c.entries)
}

// Clear drops every entry.
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}

// sweep removes expired entries. Called under the lock on every access;
// the full scan keeps expiry exact instead of approximate.
func (c *ResponseCache) sweep() {
	now := c.now()
	for key, e := range c.entries {
		ttl := e.ttl
		if ttl == 0 {
			ttl = c.ttl
		}
		if now.Sub(e.createdAt) > ttl {
			delete(c.entries, key)
		}
	}
}

// evictOldest removes the least recently accessed fifth of the cache in
// one batch, so a full cache does not evict on every single insert.
func (c *ResponseCache) evictOldest() {
	type keyed struct {
		key          string
		lastAccessed time.Time
	}

	ordered := make([]keyed, 0, len(c.entries))
	for key, e := range c.entries {
		ordered = append(ordered, keyed{key: key, lastAccessed: e.lastAccessed})
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].lastAccessed.Before(ordered[j].lastAccessed)
	})

	batch := len(c.entries) / evictFraction
	if batch < 1 {
		batch = 1
	}
	for _, k := range ordered[:batch] {
		delete(c.entries, k.key)
	}
}
