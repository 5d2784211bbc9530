// Package dataset provides the sharded data access layer over the aviation
// standing-data CSV tree.
//
// The dataset is an immutable, read-only snapshot of tens of thousands of
// CSV shards, partitioned per entity by a prefix of a lookup field:
//
//	aircraft/schema-01/{digit}/{two-digits}/{three-digits}.csv
//	airlines/schema-01/airlines.csv
//	airports/schema-01/{letter}/{two-letters}.csv
//	routes/schema-01/{letter}/{code}-{all|digit}.csv
//	countries/schema-01/countries.csv
//	model-type/schema-01/{letter}.csv
//	code-blocks/schema-01/code-blocks.csv
//	registration-prefixes/schema-01/reg-prefixes.csv
//
// The package is built from four pieces:
//
//   - locator (locator.go): pure mapping from entity type and lookup key to
//     candidate shard paths, with a widening fallback for short keys and a
//     deterministic cap on browse-all candidate sets.
//   - parser (parser.go): header-bound CSV parsing into fixed typed records,
//     tolerating malformed rows and missing shard files.
//   - cache (cache.go): lazy path-to-rows cache with singleflight load
//     coalescing, so concurrent first access to one shard parses it once.
//   - engine (engine.go): ANDed case-insensitive predicate filtering with a
//     hard result cap and early termination.
//
// # Usage
//
//	store := dataset.NewStore("/data")
//	store.SetLogger(log)
//
//	res, err := store.Search(ctx, dataset.EntityAirport,
//	    dataset.Predicates{"icao": "EGLL"}, 10)
//	if err != nil {
//	    return err
//	}
//	for _, row := range res.Rows {
//	    airport := row.(dataset.Airport)
//	    // ...
//	}
//
// # Thread Safety
//
// The Store and its shard cache are safe for arbitrary concurrent use. The
// only shared mutable state is the path-to-rows map; every mutation is an
// atomic insert keyed by path, and a dataset refresh swaps the entire cache
// so in-flight queries keep the snapshot they started with.
package dataset
