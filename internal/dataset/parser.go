package dataset

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
)

// header maps column names to their positions in a shard's header row.
// Columns are bound by name, never by position, so reordered or added
// columns cannot shift field meanings.
type header struct {
	index map[string]int
	width int
}

func newHeader(record []string) header {
	h := header{index: make(map[string]int, len(record)), width: len(record)}
	for i, name := range record {
		if i == 0 {
			// Shards are written with a UTF-8 BOM.
			name = strings.TrimPrefix(name, "\uFEFF")
		}
		h.index[name] = i
	}
	return h
}

// field returns the named column's value in record, or "" when the column
// is absent from this shard. A missing expected column degrades the field,
// it never fails the shard.
func (h header) field(record []string, name string) string {
	i, ok := h.index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func (h header) intField(record []string, name string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(h.field(record, name)))
	return v
}

func (h header) floatField(record []string, name string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(h.field(record, name)), 64)
	return v
}

func (h header) boolField(record []string, name string) bool {
	switch strings.ToLower(strings.TrimSpace(h.field(record, name))) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// rowBuilder constructs one typed row from a shard record.
type rowBuilder func(h header, record []string) Row

var rowBuilders = map[Entity]rowBuilder{
	EntityAircraft: func(h header, rec []string) Row {
		return Aircraft{
			ICAO:                 h.field(rec, "ICAO"),
			Registration:         h.field(rec, "Registration"),
			ModelICAO:            h.field(rec, "ModelICAO"),
			Manufacturer:         h.field(rec, "Manufacturer"),
			Model:                h.field(rec, "Model"),
			ManufacturerAndModel: h.field(rec, "ManufacturerAndModel"),
			IsPrivateOperator:    h.boolField(rec, "IsPrivateOperator"),
			Operator:             h.field(rec, "Operator"),
			AirlineCode:          h.field(rec, "AirlineCode"),
			SerialNumber:         h.field(rec, "SerialNumber"),
			YearBuilt:            h.intField(rec, "YearBuilt"),
		}
	},
	EntityAirline: func(h header, rec []string) Row {
		return Airline{
			Code:                     h.field(rec, "Code"),
			Name:                     h.field(rec, "Name"),
			ICAO:                     h.field(rec, "ICAO"),
			IATA:                     h.field(rec, "IATA"),
			PositioningFlightPattern: h.field(rec, "PositioningFlightPattern"),
			CharterFlightPattern:     h.field(rec, "CharterFlightPattern"),
		}
	},
	EntityAirport: func(h header, rec []string) Row {
		return Airport{
			Code:         h.field(rec, "Code"),
			Name:         h.field(rec, "Name"),
			ICAO:         h.field(rec, "ICAO"),
			IATA:         h.field(rec, "IATA"),
			Location:     h.field(rec, "Location"),
			CountryISO2:  h.field(rec, "CountryISO2"),
			Latitude:     h.floatField(rec, "Latitude"),
			Longitude:    h.floatField(rec, "Longitude"),
			AltitudeFeet: h.intField(rec, "AltitudeFeet"),
		}
	},
	EntityRoute: func(h header, rec []string) Row {
		return Route{
			Callsign:     h.field(rec, "Callsign"),
			Code:         h.field(rec, "Code"),
			Number:       h.field(rec, "Number"),
			AirlineCode:  h.field(rec, "AirlineCode"),
			AirportCodes: h.field(rec, "AirportCodes"),
		}
	},
	EntityCountry: func(h header, rec []string) Row {
		return Country{
			ISO:  h.field(rec, "ISO"),
			Name: h.field(rec, "Name"),
		}
	},
	EntityModelType: func(h header, rec []string) Row {
		return ModelType{
			ICAO:                h.field(rec, "ICAO"),
			Manufacturer:        h.field(rec, "Manufacturer"),
			Model:               h.field(rec, "Model"),
			Engines:             h.field(rec, "Engines"),
			EngineTypeCode:      h.field(rec, "EngineTypeCode"),
			EnginePlacementCode: h.field(rec, "EnginePlacementCode"),
			SpeciesCode:         h.field(rec, "SpeciesCode"),
			WakeTurbulenceCode:  h.field(rec, "WakeTurbulenceCode"),
			IsActive:            h.boolField(rec, "IsActive"),
		}
	},
	EntityCodeBlock: func(h header, rec []string) Row {
		return CodeBlock{
			Start:              h.field(rec, "Start"),
			Finish:             h.field(rec, "Finish"),
			Count:              h.intField(rec, "Count"),
			Bitmask:            h.field(rec, "Bitmask"),
			SignificantBitmask: h.field(rec, "SignificantBitmask"),
			IsMilitary:         h.boolField(rec, "IsMilitary"),
			CountryISO2:        h.field(rec, "CountryISO2"),
		}
	},
	EntityRegistrationPrefix: func(h header, rec []string) Row {
		return RegistrationPrefix{
			Prefix:              h.field(rec, "Prefix"),
			CountryISO2:         h.field(rec, "CountryISO2"),
			HasHyphen:           h.boolField(rec, "HasHyphen"),
			DecodeFullRegex:     h.field(rec, "DecodeFullRegex"),
			DecodeNoHyphenRegex: h.field(rec, "DecodeNoHyphenRegex"),
			FormatTemplate:      h.field(rec, "FormatTemplate"),
		}
	},
}

// parseShard reads one CSV shard into typed rows.
//
// A shard that cannot be opened yields zero rows: shard directories are
// sparse and a missing prefix is not an error. Malformed rows (wrong column
// count, unparseable quoting) are skipped and counted rather than failing
// the shard. The returned slice is never mutated afterwards.
func parseShard(entity Entity, absPath string) (rows []Row, skipped int) {
	build, ok := rowBuilders[entity]
	if !ok {
		return nil, 0
	}

	f, err := os.Open(absPath)
	if err != nil {
		return nil, 0
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	headerRec, err := r.Read()
	if err != nil {
		// Empty or unreadable shard: no rows, nothing to count.
		return nil, 0
	}
	h := newHeader(headerRec)

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped++
				continue
			}
			// I/O failure mid-shard: keep what parsed cleanly.
			break
		}
		if len(rec) != h.width {
			skipped++
			continue
		}
		rows = append(rows, build(h, rec))
	}
	return rows, skipped
}
