package dataset

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(newTestDataset(t))
}

func TestSearch_AirportByICAO(t *testing.T) {
	s := newTestStore(t)

	res, err := s.Search(context.Background(), EntityAirport, Predicates{"icao": "EGLL"}, 100)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(res.Rows))
	}
	if ap := res.Rows[0].(Airport); ap.Name != "London Heathrow" {
		t.Errorf("Name = %q, want London Heathrow", ap.Name)
	}
	if res.Partial {
		t.Error("narrowed lookup flagged partial")
	}
	// The icao predicate narrows to a single shard.
	if res.ShardsScanned != 1 {
		t.Errorf("ShardsScanned = %d, want 1", res.ShardsScanned)
	}
}

func TestSearch_AirportByGenericCodeMatchesIATA(t *testing.T) {
	s := newTestStore(t)

	// "code" has no shard narrowing (the row for IATA LHR lives in the
	// e/eg.csv shard keyed by its ICAO-derived code), so this scans all
	// airport shards and still finds the row via its IATA column.
	res, err := s.Search(context.Background(), EntityAirport, Predicates{"code": "LHR"}, 100)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(res.Rows))
	}
	if ap := res.Rows[0].(Airport); ap.ICAO != "EGLL" {
		t.Errorf("ICAO = %q, want EGLL", ap.ICAO)
	}
}

func TestSearch_CaseInsensitive(t *testing.T) {
	s := newTestStore(t)

	lower, err := s.Search(context.Background(), EntityAirport, Predicates{"icao": "egll"}, 100)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	upper, err := s.Search(context.Background(), EntityAirport, Predicates{"icao": "EGLL"}, 100)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if !reflect.DeepEqual(lower.Rows, upper.Rows) {
		t.Error("case changed the result set")
	}
}

func TestSearch_PredicatesAreANDed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	both, _ := s.Search(ctx, EntityAirport, Predicates{"country": "GB", "name": "Heathrow"}, 100)
	gb, _ := s.Search(ctx, EntityAirport, Predicates{"country": "GB"}, 100)
	name, _ := s.Search(ctx, EntityAirport, Predicates{"name": "Heathrow"}, 100)

	if len(both.Rows) != 1 {
		t.Fatalf("AND rows = %d, want 1", len(both.Rows))
	}
	for _, r := range both.Rows {
		if !containsRow(gb.Rows, r) || !containsRow(name.Rows, r) {
			t.Error("AND result not a subset of single-predicate results")
		}
	}
}

func containsRow(rows []Row, want Row) bool {
	for _, r := range rows {
		if reflect.DeepEqual(r, want) {
			return true
		}
	}
	return false
}

func TestSearch_LimitLaw(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, limit := range []int{1, 2, 5, MaxLimit, MaxLimit + 500} {
		res, err := s.Search(ctx, EntityAirport, Predicates{"country": "GB"}, limit)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		max := limit
		if max > MaxLimit {
			max = MaxLimit
		}
		if len(res.Rows) > max {
			t.Errorf("limit %d: rows = %d", limit, len(res.Rows))
		}
	}
}

func TestSearch_ZeroLimitTouchesNoShard(t *testing.T) {
	s := newTestStore(t)

	res, err := s.Search(context.Background(), EntityAirport, Predicates{"icao": "EGLL"}, 0)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(res.Rows) != 0 || res.ShardsScanned != 0 {
		t.Errorf("zero limit: rows=%d shards=%d", len(res.Rows), res.ShardsScanned)
	}
	if stats := s.GetStats(); stats.Loads != 0 {
		t.Errorf("zero limit loaded %d shards", stats.Loads)
	}
}

func TestSearch_EarlyStopSkipsExcessShards(t *testing.T) {
	s := newTestStore(t)

	// Browse-all over airports with limit 1: the first shard (e/eg.csv in
	// lexical walk order) satisfies the limit, so k/kj.csv is never parsed.
	res, err := s.Search(context.Background(), EntityAirport, nil, 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(res.Rows))
	}
	if _, cached := s.Peek("airports/schema-01/k/kj.csv"); cached {
		t.Error("early stop still parsed a shard past the limit")
	}
}

func TestSearch_LimitHitMidScanIsPartial(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Full scan over airports cut short by the limit: k/kj.csv is never
	// visited, so a matching row could have been skipped.
	res, err := s.Search(ctx, EntityAirport, Predicates{"country": "GB"}, 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(res.Rows))
	}
	if !res.Partial {
		t.Error("limit stopped the scan with shards unvisited, Partial = false")
	}

	// A scan that visits every candidate shard is complete, limit or not.
	res, err = s.Search(ctx, EntityAirport, Predicates{"country": "GB"}, 100)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if res.Partial {
		t.Error("complete scan reported Partial = true")
	}
}

func TestSearch_MissingShardYieldsEmpty(t *testing.T) {
	s := newTestStore(t)

	res, err := s.Search(context.Background(), EntityAirport, Predicates{"icao": "ZZZZ"}, 100)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(res.Rows) != 0 {
		t.Errorf("rows = %d, want 0", len(res.Rows))
	}
}

func TestSearch_AirlineNoMatch(t *testing.T) {
	s := newTestStore(t)

	res, err := s.Search(context.Background(), EntityAirline, Predicates{"icao": "ZZZ1"}, 100)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(res.Rows) != 0 {
		t.Errorf("rows = %d, want 0", len(res.Rows))
	}
}

func TestSearch_UnrecognisedPredicateIgnored(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	with, _ := s.Search(ctx, EntityAirport, Predicates{"icao": "EGLL", "wingspan": "huge"}, 100)
	without, _ := s.Search(ctx, EntityAirport, Predicates{"icao": "EGLL"}, 100)
	if !reflect.DeepEqual(with.Rows, without.Rows) {
		t.Error("unrecognised predicate altered the result")
	}
}

func TestSearch_AircraftAndRoutes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	res, err := s.Search(ctx, EntityAircraft, Predicates{"icao": "400123"}, 100)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("aircraft rows = %d, want 1", len(res.Rows))
	}
	if a := res.Rows[0].(Aircraft); a.Registration != "G-ABCD" {
		t.Errorf("Registration = %q", a.Registration)
	}

	res, err = s.Search(ctx, EntityRoute, Predicates{"callsign": "BAW123"}, 100)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("route rows = %d, want 1", len(res.Rows))
	}
	if r := res.Rows[0].(Route); r.AirportCodes != "EGLL-KJFK" {
		t.Errorf("AirportCodes = %q", r.AirportCodes)
	}

	// The -all shard is part of the candidate set for any callsign with
	// that letter prefix.
	res, _ = s.Search(ctx, EntityRoute, Predicates{"callsign": "BAW9XC"}, 100)
	if len(res.Rows) != 1 {
		t.Errorf("-all shard rows = %d, want 1", len(res.Rows))
	}
}

func TestSearch_OperatorSubstring(t *testing.T) {
	s := newTestStore(t)

	res, err := s.Search(context.Background(), EntityAircraft, Predicates{"operator": "ryan"}, 100)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(res.Rows))
	}
	if a := res.Rows[0].(Aircraft); a.Operator != "Ryanair" {
		t.Errorf("Operator = %q", a.Operator)
	}
}

func TestSearch_UnknownEntity(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Search(context.Background(), Entity("spaceships"), nil, 100)
	if !errors.Is(err, ErrUnknownEntity) {
		t.Errorf("error = %v, want ErrUnknownEntity", err)
	}
}

func TestStore_Reload(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Search(ctx, EntityAirport, Predicates{"icao": "EGLL"}, 100); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if s.GetStats().Shards == 0 {
		t.Fatal("no shards cached before reload")
	}

	// Replace the shard on disk, then reload: the next query sees new data.
	writeShard(t, s.Root(), "airports/schema-01/e/eg.csv",
		"Code,Name,ICAO,IATA,Location,CountryISO2,Latitude,Longitude,AltitudeFeet\n"+
			"EGLL,Heathrow Renamed,EGLL,LHR,London,GB,51.4706,-0.461941,83\n")
	s.Reload()

	if s.GetStats().Shards != 0 {
		t.Error("reload did not discard cached shards")
	}
	res, err := s.Search(ctx, EntityAirport, Predicates{"icao": "EGLL"}, 100)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(res.Rows))
	}
	if ap := res.Rows[0].(Airport); ap.Name != "Heathrow Renamed" {
		t.Errorf("Name = %q, want refreshed row", ap.Name)
	}
}

func TestStore_HealthCheck(t *testing.T) {
	s := newTestStore(t)
	if err := s.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}

	missing := NewStore(filepath.Join(t.TempDir(), "nope"))
	err := missing.HealthCheck(context.Background())
	if !errors.Is(err, ErrDatasetUnreadable) {
		t.Errorf("error = %v, want ErrDatasetUnreadable", err)
	}
}

func TestStore_HealthCheckCancelled(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.HealthCheck(ctx); err == nil {
		t.Error("HealthCheck() with cancelled context returned nil")
	}
}
