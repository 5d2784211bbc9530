package dataset

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// Logger defines the logging interface used by the Store.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Store is the read path over one standing-data dataset tree.
//
// It binds the dataset root at construction and owns the lazy shard cache;
// there is no ambient singleton, so tests can point a Store at a temporary
// tree. Every query resolves candidate shards through the locator, loads
// them through the cache and filters rows in the engine.
//
// All methods are safe for concurrent use.
type Store struct {
	root   string
	logger Logger

	mu    sync.RWMutex
	cache *shardCache
}

// NewStore creates a Store bound to the dataset root directory.
func NewStore(root string) *Store {
	return &Store{
		root:   root,
		logger: noopLogger{},
		cache:  newShardCache(root),
	}
}

// SetLogger sets the logger for the store.
func (s *Store) SetLogger(logger Logger) {
	s.logger = logger
}

// Root returns the dataset root directory the store was bound to.
func (s *Store) Root() string {
	return s.root
}

// Search finds rows of an entity matching all supplied predicates, in
// discovery order, up to limit rows.
//
// Predicates the entity does not recognise are ignored. The limit is
// clamped to [0, MaxLimit]; a limit of zero returns an empty result without
// loading any shard. When the entity's sharding predicate is present its
// value narrows the candidate shard set; otherwise all shards are scanned,
// bounded by the candidate cap.
func (s *Store) Search(ctx context.Context, entity Entity, preds Predicates, limit int) (Result, error) {
	if !entity.Valid() {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}

	limit = ClampLimit(limit)
	if limit == 0 {
		return Result{Rows: []Row{}}, nil
	}

	eff := normalize(entity, preds)

	var key string
	if field := shardingField[entity]; field != "" {
		key = eff[field]
	}

	// Pin the cache for the whole request so an in-flight query keeps its
	// snapshot across a concurrent Reload.
	s.mu.RLock()
	cache := s.cache
	s.mu.RUnlock()

	paths, truncated := resolve(s.root, locate(entity, key))
	res := scan(ctx, cache, entity, paths, eff, limit)
	res.Partial = res.Partial || truncated

	s.logger.Debug("search complete",
		"entity", string(entity),
		"predicates", len(eff),
		"rows", len(res.Rows),
		"shards", res.ShardsScanned,
		"partial", res.Partial,
	)
	return res, nil
}

// Peek returns the cached rows for a shard path without loading it.
// The path is relative to the dataset root.
func (s *Store) Peek(relPath string) ([]Row, bool) {
	s.mu.RLock()
	cache := s.cache
	s.mu.RUnlock()
	return cache.peek(relPath)
}

// Reload discards all cached shards by swapping in a fresh cache.
//
// It is called when the dataset snapshot has been replaced out-of-band.
// Queries already in flight keep the cache they started with; new queries
// lazily reload from the refreshed tree.
func (s *Store) Reload() {
	fresh := newShardCache(s.root)
	s.mu.Lock()
	old := s.cache
	s.cache = fresh
	s.mu.Unlock()

	s.logger.Info("dataset cache reloaded", "discarded_shards", old.entries())
}

// HealthCheck verifies the dataset root exists and is a readable directory.
//
// Per-query shard failures degrade to empty results; an unreadable root is
// the one dataset condition surfaced as a health failure.
func (s *Store) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("dataset health check: %w", ctx.Err())
	default:
	}

	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatasetUnreadable, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrDatasetUnreadable, s.root)
	}
	if _, err := os.ReadDir(s.root); err != nil {
		return fmt.Errorf("%w: %v", ErrDatasetUnreadable, err)
	}
	return nil
}

// Stats is a snapshot of cache counters for monitoring.
type Stats struct {
	Shards      int    `json:"shards"`
	Hits        uint64 `json:"hits"`
	Misses      uint64 `json:"misses"`
	Loads       uint64 `json:"loads"`
	SkippedRows uint64 `json:"skipped_rows"`
}

// GetStats returns current cache statistics.
func (s *Store) GetStats() Stats {
	s.mu.RLock()
	cache := s.cache
	s.mu.RUnlock()

	return Stats{
		Shards:      cache.entries(),
		Hits:        cache.hits.Load(),
		Misses:      cache.misses.Load(),
		Loads:       cache.loads.Load(),
		SkippedRows: cache.skippedRows.Load(),
	}
}
