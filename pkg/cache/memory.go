package cache

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryCache keeps entries in process memory. The HTTP server uses it when
// no Redis address is configured; tests use it to observe cache traffic.
//
// A cache created with a positive limit never holds more than limit entries.
// When a new key would exceed it, expired entries are swept first and then
// the oldest entries are evicted.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	limit   int
	seq     uint64
	now     func() time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
	seq       uint64 // insertion order, for eviction
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// NewMemoryCache creates an empty in-memory cache holding at most limit
// entries. A limit <= 0 means unbounded.
func NewMemoryCache(limit int) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		limit:   limit,
		now:     time.Now,
	}
}

// Get returns a copy of the stored value.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if e.expired(c.now()) {
		_ = c.Delete(ctx, key)
		return nil, false, nil
	}
	return slices.Clone(e.data), true, nil
}

// Set stores a copy of data, evicting older entries if the cache is full.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	now := c.now()
	e := memoryEntry{data: slices.Clone(data)}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	e.seq = c.seq
	if _, exists := c.entries[key]; !exists && c.limit > 0 && len(c.entries) >= c.limit {
		c.sweep(now)
		for len(c.entries) >= c.limit {
			c.evictOldest()
		}
	}
	c.entries[key] = e
	return nil
}

// sweep drops expired entries. Callers hold mu.
func (c *MemoryCache) sweep(now time.Time) {
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
		}
	}
}

// evictOldest drops the least recently written entry. Callers hold mu.
func (c *MemoryCache) evictOldest() {
	var (
		oldest string
		minSeq uint64
		found  bool
	)
	for k, e := range c.entries {
		if !found || e.seq < minSeq {
			oldest, minSeq, found = k, e.seq, true
		}
	}
	if found {
		delete(c.entries, oldest)
	}
}

// Delete removes key.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, including expired ones not yet
// swept.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close drops all entries.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}

var _ Cache = (*MemoryCache)(nil)
