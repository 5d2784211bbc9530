package dataset

import (
	"sort"
	"strings"
)

// Entity identifies one of the standing-data collections.
type Entity string

// Known entities. The string value matches the top-level dataset directory.
const (
	EntityAircraft           Entity = "aircraft"
	EntityAirline            Entity = "airlines"
	EntityAirport            Entity = "airports"
	EntityRoute              Entity = "routes"
	EntityCountry            Entity = "countries"
	EntityModelType          Entity = "model-type"
	EntityCodeBlock          Entity = "code-blocks"
	EntityRegistrationPrefix Entity = "registration-prefixes"
)

// Row is one parsed record from a shard. Rows are immutable values; the
// concrete type is one of the entity structs below.
//
// matches reports whether the named field contains needle. The field name is
// a recognised predicate name (lowercase) and needle is already uppercased;
// matching is case-insensitive substring per field.
type Row interface {
	matches(field, needle string) bool
}

// contains reports whether value contains the already-uppercased needle,
// ignoring case.
func contains(value, upperNeedle string) bool {
	return strings.Contains(strings.ToUpper(value), upperNeedle)
}

// Aircraft is one airframe record, keyed by its Mode-S ICAO hex address.
type Aircraft struct {
	ICAO                 string `json:"icao"`
	Registration         string `json:"registration"`
	ModelICAO            string `json:"model_icao"`
	Manufacturer         string `json:"manufacturer"`
	Model                string `json:"model"`
	ManufacturerAndModel string `json:"manufacturer_and_model"`
	IsPrivateOperator    bool   `json:"is_private_operator"`
	Operator             string `json:"operator"`
	AirlineCode          string `json:"airline_code"`
	SerialNumber         string `json:"serial_number"`
	YearBuilt            int    `json:"year_built"`
}

func (a Aircraft) matches(field, needle string) bool {
	switch field {
	case "icao":
		return contains(a.ICAO, needle)
	case "registration":
		return contains(a.Registration, needle)
	case "operator":
		return contains(a.Operator, needle)
	case "model":
		return contains(a.Model, needle) || contains(a.ManufacturerAndModel, needle)
	case "airline_code":
		return contains(a.AirlineCode, needle)
	}
	return false
}

// Airline is one operator record from the single airlines shard.
type Airline struct {
	Code                     string `json:"code"`
	Name                     string `json:"name"`
	ICAO                     string `json:"icao"`
	IATA                     string `json:"iata"`
	PositioningFlightPattern string `json:"positioning_flight_pattern"`
	CharterFlightPattern     string `json:"charter_flight_pattern"`
}

func (a Airline) matches(field, needle string) bool {
	switch field {
	case "code":
		return contains(a.Code, needle) || contains(a.ICAO, needle) || contains(a.IATA, needle)
	case "icao":
		return contains(a.ICAO, needle)
	case "iata":
		return contains(a.IATA, needle)
	case "name":
		return contains(a.Name, needle)
	}
	return false
}

// Airport is one aerodrome record. Code is the ICAO code where one exists,
// otherwise the IATA code; shards are keyed by it.
type Airport struct {
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	ICAO         string  `json:"icao"`
	IATA         string  `json:"iata"`
	Location     string  `json:"location"`
	CountryISO2  string  `json:"country_iso2"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	AltitudeFeet int     `json:"altitude_feet"`
}

func (a Airport) matches(field, needle string) bool {
	switch field {
	case "code":
		return contains(a.Code, needle) || contains(a.ICAO, needle) || contains(a.IATA, needle)
	case "icao":
		return contains(a.ICAO, needle)
	case "iata":
		return contains(a.IATA, needle)
	case "name":
		return contains(a.Name, needle)
	case "country":
		return contains(a.CountryISO2, needle)
	}
	return false
}

// Route is one callsign-to-airports mapping.
type Route struct {
	Callsign     string `json:"callsign"`
	Code         string `json:"code"`
	Number       string `json:"number"`
	AirlineCode  string `json:"airline_code"`
	AirportCodes string `json:"airport_codes"`
}

func (r Route) matches(field, needle string) bool {
	switch field {
	case "callsign":
		return contains(r.Callsign, needle)
	case "code":
		return contains(r.Code, needle)
	case "airline_code":
		return contains(r.AirlineCode, needle)
	}
	return false
}

// Country is one ISO 3166 country record.
type Country struct {
	ISO  string `json:"iso"`
	Name string `json:"name"`
}

func (c Country) matches(field, needle string) bool {
	switch field {
	case "iso":
		return contains(c.ISO, needle)
	case "name":
		return contains(c.Name, needle)
	}
	return false
}

// ModelType is one ICAO aircraft type designator record.
type ModelType struct {
	ICAO                string `json:"icao"`
	Manufacturer        string `json:"manufacturer"`
	Model               string `json:"model"`
	Engines             string `json:"engines"`
	EngineTypeCode      string `json:"engine_type_code"`
	EnginePlacementCode string `json:"engine_placement_code"`
	SpeciesCode         string `json:"species_code"`
	WakeTurbulenceCode  string `json:"wake_turbulence_code"`
	IsActive            bool   `json:"is_active"`
}

func (m ModelType) matches(field, needle string) bool {
	switch field {
	case "icao":
		return contains(m.ICAO, needle)
	case "manufacturer":
		return contains(m.Manufacturer, needle)
	case "model":
		return contains(m.Model, needle)
	}
	return false
}

// CodeBlock is one Mode-S address allocation block.
type CodeBlock struct {
	Start              string `json:"start"`
	Finish             string `json:"finish"`
	Count              int    `json:"count"`
	Bitmask            string `json:"bitmask"`
	SignificantBitmask string `json:"significant_bitmask"`
	IsMilitary         bool   `json:"is_military"`
	CountryISO2        string `json:"country_iso2"`
}

func (c CodeBlock) matches(field, needle string) bool {
	switch field {
	case "country":
		return contains(c.CountryISO2, needle)
	}
	return false
}

// RegistrationPrefix is one national registration prefix record.
type RegistrationPrefix struct {
	Prefix              string `json:"prefix"`
	CountryISO2         string `json:"country_iso2"`
	HasHyphen           bool   `json:"has_hyphen"`
	DecodeFullRegex     string `json:"decode_full_regex"`
	DecodeNoHyphenRegex string `json:"decode_no_hyphen_regex"`
	FormatTemplate      string `json:"format_template"`
}

func (r RegistrationPrefix) matches(field, needle string) bool {
	switch field {
	case "prefix":
		return contains(r.Prefix, needle)
	case "country":
		return contains(r.CountryISO2, needle)
	}
	return false
}

// predicateFields lists the recognised predicate names per entity.
// Unrecognised predicate names are ignored by the engine.
var predicateFields = map[Entity]map[string]bool{
	EntityAircraft:           set("icao", "registration", "operator", "model", "airline_code"),
	EntityAirline:            set("code", "icao", "iata", "name"),
	EntityAirport:            set("code", "icao", "iata", "name", "country"),
	EntityRoute:              set("callsign", "code", "airline_code"),
	EntityCountry:            set("iso", "name"),
	EntityModelType:          set("icao", "manufacturer", "model"),
	EntityCodeBlock:          set("country"),
	EntityRegistrationPrefix: set("prefix", "country"),
}

// shardingField names the predicate whose value selects shards for an entity.
// Entities missing here are either single-file or cannot be narrowed safely
// (airport IATA codes live in shards keyed by the ICAO-derived Code, so only
// an icao predicate narrows airports).
var shardingField = map[Entity]string{
	EntityAircraft:  "icao",
	EntityAirport:   "icao",
	EntityRoute:     "callsign",
	EntityModelType: "icao",
}

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// Entities returns all known entity types in a stable order.
func Entities() []Entity {
	return []Entity{
		EntityAircraft,
		EntityAirline,
		EntityAirport,
		EntityRoute,
		EntityCountry,
		EntityModelType,
		EntityCodeBlock,
		EntityRegistrationPrefix,
	}
}

// Valid reports whether e names a known entity type.
func (e Entity) Valid() bool {
	_, ok := predicateFields[e]
	return ok
}

// PredicateNames returns the recognised predicate names for an entity,
// sorted for stable output.
func PredicateNames(e Entity) []string {
	fields := predicateFields[e]
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
