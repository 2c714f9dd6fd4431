// Package patterncache implements the process-local memoization map
// Itemset -> CachedFrequentItemset (spec.md §3, C6): grown only, never
// invalidated, during one mining run.
//
// During Phase 1 the cache is written concurrently by a worker pool, one
// shard per worker (spec.md §5); NewShards allocates the shards (each a
// lock-protected Cache), and MergeShards combines them into the single
// Cache Phase 2/3 read and write from one goroutine. Cache methods keep
// taking their RWMutex after the merge. The split mirrors the
// teacher's core.Graph, which guards its maps with dedicated
// sync.RWMutex fields rather than a generic concurrent-map type.
package patterncache

import (
	"sync"

	"github.com/probmine/ucim/itemset"
	"github.com/probmine/ucim/tidset"
)

// Entry is spec.md's CachedFrequentItemset: a FrequentItemset plus the
// exact Tidset the calculator was run against (invariant I5). The one
// exception is an extension cut off by P6 in package closure: it is
// cached with Support 0 and Prob 0 and its tidset, without a calculator
// run.
type Entry struct {
	Set     *itemset.Set
	Support int
	Prob    float64
	Tidset  *tidset.Tidset
}

// Cache is a single-shard, thread-safe Itemset -> Entry map.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[string]Entry)}
}

// Get looks up the cached entry for s, if any.
func (c *Cache) Get(s *itemset.Set) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[s.Key()]
	return e, ok
}

// Put stores (or overwrites) the entry for s. Overwriting is only ever
// done with an identical recomputation (the cache is logically
// grown-only, spec.md §3); Put itself does not enforce that, callers do.
func (c *Cache) Put(e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[e.Set.Key()] = e
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Entries returns a snapshot slice of every cached entry. Intended for
// single-threaded use after Phase 1 has completed (spec.md §5), e.g.
// Phase 2's scan for cached 2-itemsets to seed the frontier.
func (c *Cache) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	return out
}

// Merge copies every entry of other into c. Used to fold per-worker
// Phase 1 shards into the single Cache instance Phase 2/3 use
// single-threaded (spec.md §5).
func (c *Cache) Merge(other *Cache) {
	other.mu.RLock()
	defer other.mu.RUnlock()
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range other.entries {
		c.entries[k] = v
	}
}

// NewShards allocates n empty per-worker Cache shards for Phase 1.
func NewShards(n int) []*Cache {
	shards := make([]*Cache, n)
	for i := range shards {
		shards[i] = New()
	}
	return shards
}

// MergeShards folds every shard into a single fresh Cache, in shard
// order (deterministic, though last-writer-wins is irrelevant here since
// Phase 1 shards never compute the same itemset twice).
func MergeShards(shards []*Cache) *Cache {
	merged := New()
	for _, s := range shards {
		merged.Merge(s)
	}
	return merged
}
