package dataset

import (
	"reflect"
	"sync"
	"testing"
)

const airportShard = "airports/schema-01/e/eg.csv"

func TestShardCache_GetLoadsOnce(t *testing.T) {
	root := newTestDataset(t)
	c := newShardCache(root)

	first := c.get(EntityAirport, airportShard)
	if len(first) != 2 {
		t.Fatalf("rows = %d, want 2", len(first))
	}
	second := c.get(EntityAirport, airportShard)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated get returned different rows")
	}
	if loads := c.loads.Load(); loads != 1 {
		t.Errorf("loads = %d, want 1", loads)
	}
	if c.hits.Load() != 1 || c.misses.Load() != 1 {
		t.Errorf("hits=%d misses=%d, want 1/1", c.hits.Load(), c.misses.Load())
	}
}

func TestShardCache_ConcurrentSamePathParsesOnce(t *testing.T) {
	root := newTestDataset(t)
	c := newShardCache(root)

	const goroutines = 32
	results := make([][]Row, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.get(EntityAirport, airportShard)
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		if !reflect.DeepEqual(results[0], results[i]) {
			t.Fatalf("goroutine %d saw different rows", i)
		}
	}
	if loads := c.loads.Load(); loads != 1 {
		t.Errorf("loads = %d, want 1", loads)
	}
	if c.entries() != 1 {
		t.Errorf("entries = %d, want 1", c.entries())
	}
}

func TestShardCache_ConcurrentDifferentPaths(t *testing.T) {
	root := newTestDataset(t)
	c := newShardCache(root)

	paths := []string{
		airportShard,
		"airports/schema-01/k/kj.csv",
		"airlines/schema-01/airlines.csv",
		"countries/schema-01/countries.csv",
	}
	entities := []Entity{EntityAirport, EntityAirport, EntityAirline, EntityCountry}

	var wg sync.WaitGroup
	for round := 0; round < 8; round++ {
		for i := range paths {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				c.get(entities[i], paths[i])
			}(i)
		}
	}
	wg.Wait()

	if c.entries() != len(paths) {
		t.Errorf("entries = %d, want %d", c.entries(), len(paths))
	}
	if loads := c.loads.Load(); loads != uint64(len(paths)) {
		t.Errorf("loads = %d, want %d", loads, len(paths))
	}
}

func TestShardCache_MissingShardCachesEmpty(t *testing.T) {
	root := newTestDataset(t)
	c := newShardCache(root)

	rows := c.get(EntityAirport, "airports/schema-01/z/zz.csv")
	if len(rows) != 0 {
		t.Errorf("rows = %d, want 0", len(rows))
	}
	// The absence is cached too: a second get is a hit, not a reparse.
	c.get(EntityAirport, "airports/schema-01/z/zz.csv")
	if loads := c.loads.Load(); loads != 1 {
		t.Errorf("loads = %d, want 1", loads)
	}
}

func TestShardCache_Peek(t *testing.T) {
	root := newTestDataset(t)
	c := newShardCache(root)

	if _, ok := c.peek(airportShard); ok {
		t.Error("peek before load reported present")
	}
	loaded := c.get(EntityAirport, airportShard)
	rows, ok := c.peek(airportShard)
	if !ok || !reflect.DeepEqual(rows, loaded) {
		t.Error("peek after load did not return the cached rows")
	}
}

func TestShardCache_SkippedRowCounting(t *testing.T) {
	root := t.TempDir()
	writeShard(t, root, "countries/schema-01/countries.csv",
		"ISO,Name\nGB,United Kingdom\nbadrow\n")
	c := newShardCache(root)

	c.get(EntityCountry, "countries/schema-01/countries.csv")
	if got := c.skippedRows.Load(); got != 1 {
		t.Errorf("skippedRows = %d, want 1", got)
	}
}
