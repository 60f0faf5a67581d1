package corpus

import (
	"context"
	"math"
	"sync"

	"github.com/bastiangx/wordhint/pkg/puzzle"
	"github.com/bastiangx/wordhint/pkg/rank"
	"github.com/charmbracelet/log"
)

// Cache keeps the results of recent queries and evicts the least recently used one
// once full. It wraps any Searcher.
type Cache struct {
	next        Searcher
	entries     map[string][]rank.MatchResult
	accessTime  map[string]int64
	accessCount int64
	hits        int64
	maxEntries  int
	mu          sync.Mutex
}

// NewCache wraps next. A non-positive maxEntries disables caching.
func NewCache(next Searcher, maxEntries int) *Cache {
	return &Cache{
		next:       next,
		entries:    make(map[string][]rank.MatchResult, max(maxEntries, 0)),
		accessTime: make(map[string]int64, max(maxEntries, 0)),
		maxEntries: maxEntries,
	}
}

// Search serves q from the cache or forwards it. Cached slices are copied out so
// callers may modify what they get.
func (c *Cache) Search(ctx context.Context, q puzzle.Query) ([]rank.MatchResult, error) {
	if c.maxEntries <= 0 {
		return c.next.Search(ctx, q)
	}

	key := q.Key()
	c.mu.Lock()
	if cached, ok := c.entries[key]; ok {
		c.hits++
		c.accessTime[key] = c.getNextAccessTime()
		c.mu.Unlock()
		return clone(cached), nil
	}
	c.mu.Unlock()

	results, err := c.next.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxEntries {
		c.evictLRU()
	}
	c.entries[key] = clone(results)
	c.accessTime[key] = c.getNextAccessTime()
	c.mu.Unlock()

	return results, nil
}

// Stats reports cache occupancy and hits, along with the wrapped searcher's stats.
func (c *Cache) Stats() map[string]int {
	stats := map[string]int{}
	if st, ok := c.next.(interface{ Stats() map[string]int }); ok {
		for k, v := range st.Stats() {
			stats[k] = v
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	stats["cacheEntries"] = len(c.entries)
	stats["maxCacheEntries"] = c.maxEntries
	stats["cacheHits"] = int(c.hits)
	return stats
}

func (c *Cache) getNextAccessTime() int64 {
	c.accessCount++
	return c.accessCount
}

func (c *Cache) evictLRU() {
	var oldestKey string
	var oldestTime int64 = math.MaxInt64

	for key, t := range c.accessTime {
		if t < oldestTime {
			oldestTime = t
			oldestKey = key
		}
	}

	if oldestKey != "" {
		delete(c.entries, oldestKey)
		delete(c.accessTime, oldestKey)
		log.Debugf("Evicted query '%s' from cache", oldestKey)
	}
}

func clone(in []rank.MatchResult) []rank.MatchResult {
	if in == nil {
		return nil
	}
	out := make([]rank.MatchResult, len(in))
	copy(out, in)
	return out
}
