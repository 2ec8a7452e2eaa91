package compile

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/HelloBroBro/pytensor/internal/link"
)

// Cache maps graph+mode signatures to compiled functions. Lookups are
// safe under many readers; concurrent misses for the same signature are
// coalesced so the pipeline runs at most once per distinct signature. A
// failed compilation writes no entry.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*link.CompiledFunction
	group   singleflight.Group

	compiles atomic.Int64
	hits     atomic.Int64
	misses   atomic.Int64
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*link.CompiledFunction)}
}

// shared is the process-wide function cache.
var shared = NewCache()

// SharedCache returns the process-wide function cache.
func SharedCache() *Cache {
	return shared
}

// GetOrCompile returns the cached function for sig, or runs build to
// produce, store and return it. Callers racing on the same signature
// block on the single in-flight build instead of duplicating it.
func (c *Cache) GetOrCompile(sig string, build func() (*link.CompiledFunction, error)) (*link.CompiledFunction, error) {
	c.mu.RLock()
	fn, ok := c.entries[sig]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return fn, nil
	}

	v, err, _ := c.group.Do(sig, func() (any, error) {
		// Re-check: a racing caller may have finished while we queued.
		c.mu.RLock()
		fn, ok := c.entries[sig]
		c.mu.RUnlock()
		if ok {
			return fn, nil
		}

		c.misses.Add(1)
		c.compiles.Add(1)
		fn, err := build()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[sig] = fn
		c.mu.Unlock()
		return fn, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*link.CompiledFunction), nil
}

// CompileCount returns how many compilations the cache has performed.
func (c *Cache) CompileCount() int64 {
	return c.compiles.Load()
}

// Stats returns cumulative hit and miss counts.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Clear drops every entry. Counters are kept; intended for tests.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*link.CompiledFunction)
	c.mu.Unlock()
}

// Len returns the number of cached functions.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
