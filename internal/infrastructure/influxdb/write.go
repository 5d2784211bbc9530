package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteQueryMetric records a completed search query.
//
// The write is non-blocking; data is batched and sent asynchronously.
//
// Parameters:
//   - entity: The entity type queried (e.g., "aircraft", "airports")
//   - durationMs: Total query duration in milliseconds
//   - rows: Number of rows returned
//   - shards: Number of shards scanned to satisfy the query
//   - partial: Whether the result was truncated by the shard candidate cap
//
// Example:
//
//	client.WriteQueryMetric("aircraft", 1.8, 1, 1, false)
func (c *Client) WriteQueryMetric(entity string, durationMs float64, rows, shards int, partial bool) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"query",
		map[string]string{
			"entity": entity,
		},
		map[string]interface{}{
			"duration_ms":    durationMs,
			"rows":           rows,
			"shards_scanned": shards,
			"partial":        partial,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteCacheStats records a snapshot of shard cache counters.
//
// Intended to be called periodically (or after a reload) so cache hit
// rates and growth can be graphed over time.
//
// Parameters:
//   - shards: Number of shards currently cached
//   - hits: Cumulative cache hit count
//   - misses: Cumulative cache miss count
//   - skippedRows: Cumulative malformed rows skipped during parsing
func (c *Client) WriteCacheStats(shards int, hits, misses, skippedRows uint64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"cache",
		map[string]string{},
		map[string]interface{}{
			"shards":       shards,
			"hits":         hits,
			"misses":       misses,
			"skipped_rows": skippedRows,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for measurements that don't fit the helper methods.
//
// Parameters:
//   - measurement: The measurement name (table)
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the actual data
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}
