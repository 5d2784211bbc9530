package dataset

import (
	"path/filepath"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// shardCache holds parsed shard contents keyed by shard path (relative to
// the dataset root). Shards load lazily on first access and stay resident
// for the cache's lifetime; a dataset refresh swaps the whole cache rather
// than evicting entries, so readers always see fully parsed snapshots.
//
// Concurrent first access to the same path is coalesced through a
// singleflight group: exactly one goroutine parses while the rest wait for
// its result. First access to different paths proceeds in parallel.
//
// All methods are safe for concurrent use.
type shardCache struct {
	root string

	mu     sync.RWMutex
	shards map[string][]Row

	group singleflight.Group

	hits        atomic.Uint64
	misses      atomic.Uint64
	loads       atomic.Uint64
	skippedRows atomic.Uint64
}

func newShardCache(root string) *shardCache {
	return &shardCache{
		root:   root,
		shards: make(map[string][]Row),
	}
}

// get returns the parsed rows for a shard, loading it on first access.
// A shard that does not exist on disk caches as an empty row set.
func (c *shardCache) get(entity Entity, relPath string) []Row {
	c.mu.RLock()
	rows, ok := c.shards[relPath]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return rows
	}
	c.misses.Add(1)

	v, _, _ := c.group.Do(relPath, func() (any, error) {
		// A concurrent loader may have finished between the miss above and
		// this flight starting.
		c.mu.RLock()
		rows, ok := c.shards[relPath]
		c.mu.RUnlock()
		if ok {
			return rows, nil
		}

		rows, skipped := parseShard(entity, filepath.Join(c.root, filepath.FromSlash(relPath)))
		c.loads.Add(1)
		if skipped > 0 {
			c.skippedRows.Add(uint64(skipped))
		}

		c.mu.Lock()
		c.shards[relPath] = rows
		c.mu.Unlock()
		return rows, nil
	})
	rows, _ = v.([]Row)
	return rows
}

// peek returns the cached rows for a shard without triggering a load.
func (c *shardCache) peek(relPath string) ([]Row, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rows, ok := c.shards[relPath]
	return rows, ok
}

// entries returns the number of cached shards.
func (c *shardCache) entries() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.shards)
}
