package dataset

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
)

// Predicates maps predicate names to match values. All supplied predicates
// are ANDed; names an entity does not recognise are ignored.
type Predicates map[string]string

// MaxLimit is the hard upper bound on rows returned by a single search.
const MaxLimit = 1000

// Result is the outcome of one search.
//
// Rows are in discovery order: candidate shards in locator order, rows in
// shard order. Partial is set when a matching row may exist in an unscanned
// shard, either because the candidate set was truncated at the cap or
// because the limit stopped the scan with shards still unvisited.
type Result struct {
	Rows          []Row
	Partial       bool
	ShardsScanned int
}

// ClampLimit applies the hard result cap to a caller-requested limit.
// Negative limits clamp to zero.
func ClampLimit(limit int) int {
	if limit < 0 {
		return 0
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// normalize uppercases predicate values once and drops empty or
// unrecognised predicates, returning the effective predicate set.
func normalize(entity Entity, preds Predicates) map[string]string {
	known := predicateFields[entity]
	eff := make(map[string]string, len(preds))
	for name, value := range preds {
		value = strings.TrimSpace(value)
		if value == "" || !known[name] {
			continue
		}
		eff[name] = strings.ToUpper(value)
	}
	return eff
}

// matchRow reports whether a row satisfies every effective predicate.
func matchRow(row Row, eff map[string]string) bool {
	for field, needle := range eff {
		if !row.matches(field, needle) {
			return false
		}
	}
	return true
}

// resolve turns a locator result into the ordered, capped list of shard
// paths to scan. Scan directories are expanded with a deterministic lexical
// walk; the walk is the only part of candidate resolution that reads the
// filesystem, and a missing directory simply contributes no shards.
func resolve(root string, c candidates) (paths []string, truncated bool) {
	paths = c.paths
	truncated = c.truncated
	if len(paths) > maxCandidateShards {
		paths = paths[:maxCandidateShards]
		truncated = true
	}

	for _, dir := range c.scanDirs {
		if len(paths) >= maxCandidateShards {
			truncated = true
			break
		}
		abs := filepath.Join(root, filepath.FromSlash(dir))
		_ = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() || !strings.HasSuffix(p, ".csv") {
				return nil
			}
			if len(paths) >= maxCandidateShards {
				truncated = true
				return filepath.SkipAll
			}
			rel, relErr := filepath.Rel(root, p)
			if relErr != nil {
				return nil
			}
			paths = append(paths, filepath.ToSlash(rel))
			return nil
		})
	}
	return paths, truncated
}

// scan iterates candidate shards in order, filtering rows against the
// effective predicates and stopping as soon as limit rows have matched.
// Shards beyond the stopping point are never parsed.
func scan(ctx context.Context, cache *shardCache, entity Entity, paths []string, eff map[string]string, limit int) Result {
	res := Result{Rows: []Row{}}
	for _, p := range paths {
		if ctx.Err() != nil {
			break
		}
		res.ShardsScanned++
		for _, row := range cache.get(entity, p) {
			if !matchRow(row, eff) {
				continue
			}
			res.Rows = append(res.Rows, row)
			if len(res.Rows) >= limit {
				// Shards past the stopping point may hold further matches.
				res.Partial = res.ShardsScanned < len(paths)
				return res
			}
		}
	}
	return res
}
