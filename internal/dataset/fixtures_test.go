package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

// writeShard writes one CSV shard under root, creating parent directories.
func writeShard(t *testing.T, root, relPath, content string) {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", abs, err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", abs, err)
	}
}

// newTestDataset builds a small but representative dataset tree and returns
// its root.
func newTestDataset(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeShard(t, root, "airports/schema-01/e/eg.csv",
		"Code,Name,ICAO,IATA,Location,CountryISO2,Latitude,Longitude,AltitudeFeet\n"+
			"EGLL,London Heathrow,EGLL,LHR,London,GB,51.4706,-0.461941,83\n"+
			"EGKK,London Gatwick,EGKK,LGW,London,GB,51.1481,-0.190278,202\n")
	writeShard(t, root, "airports/schema-01/k/kj.csv",
		"Code,Name,ICAO,IATA,Location,CountryISO2,Latitude,Longitude,AltitudeFeet\n"+
			"KJFK,John F Kennedy Intl,KJFK,JFK,New York,US,40.6398,-73.7789,13\n")

	writeShard(t, root, "airlines/schema-01/airlines.csv",
		"Code,Name,ICAO,IATA,PositioningFlightPattern,CharterFlightPattern\n"+
			"BAW,British Airways,BAW,BA,,\n"+
			"VIR,Virgin Atlantic,VIR,VS,,\n")

	writeShard(t, root, "countries/schema-01/countries.csv",
		"ISO,Name\nGB,United Kingdom\nUS,United States\n")

	writeShard(t, root, "aircraft/schema-01/4/40/400.csv",
		"ICAO,Registration,ModelICAO,Manufacturer,Model,ManufacturerAndModel,IsPrivateOperator,Operator,AirlineCode,SerialNumber,YearBuilt\n"+
			"400123,G-ABCD,A320,Airbus,A320-232,Airbus A320-232,0,British Airways,BAW,5551,2008\n"+
			"400456,G-WXYZ,B738,Boeing,737-8AS,Boeing 737-8AS,0,Ryanair,RYR,5552,2011\n")

	writeShard(t, root, "routes/schema-01/b/baw-1.csv",
		"Callsign,Code,Number,AirlineCode,AirportCodes\n"+
			"BAW123,BAW,123,BAW,EGLL-KJFK\n")
	writeShard(t, root, "routes/schema-01/b/baw-all.csv",
		"Callsign,Code,Number,AirlineCode,AirportCodes\n"+
			"BAW9XC,BAW,9XC,BAW,EGLL-EGCC\n")

	writeShard(t, root, "model-type/schema-01/a.csv",
		"ICAO,Manufacturer,Model,Engines,EngineTypeCode,EnginePlacementCode,SpeciesCode,WakeTurbulenceCode,IsActive\n"+
			"A320,Airbus,A320,2,J,W,L,M,1\n")

	writeShard(t, root, "code-blocks/schema-01/code-blocks.csv",
		"Start,Finish,Count,Bitmask,SignificantBitmask,IsMilitary,CountryISO2\n"+
			"400000,43FFFF,262144,0x400000,0xFC0000,0,GB\n")

	writeShard(t, root, "registration-prefixes/schema-01/reg-prefixes.csv",
		"Prefix,CountryISO2,HasHyphen,DecodeFullRegex,DecodeNoHyphenRegex,FormatTemplate\n"+
			"G,GB,1,^G-[A-Z]{4}$,^G[A-Z]{4}$,G-AAAA\n")

	return root
}
