// Package influxdb provides InfluxDB connectivity for the standing data service.
//
// It wraps the official influxdb-client-go v2 library with service-specific
// patterns for connection management, metric writing, and health monitoring.
//
// # Purpose
//
// This package handles time-series data storage for:
//   - Query metrics (latency, row counts, shards scanned, partial results)
//   - Shard cache statistics (hits, misses, skipped rows)
//
// InfluxDB integration is entirely optional: when influxdb.enabled is false
// the service runs without it and no metrics are recorded.
//
// # Usage
//
//	cfg := config.InfluxDBConfig{
//	    Enabled: true,
//	    URL:     "http://localhost:8086",
//	    Token:   "your-token",
//	    Org:     "standingdata",
//	    Bucket:  "metrics",
//	}
//
//	client, err := influxdb.Connect(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.WriteQueryMetric("aircraft", 1.8, 1, 1, false)
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes.
//
// # Error Handling
//
// Write operations are non-blocking and batch errors are delivered via a
// callback set with SetOnError. Connection and health check errors are
// returned directly.
package influxdb
