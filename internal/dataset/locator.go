package dataset

import (
	"path"
	"strings"
)

// maxCandidateShards bounds the number of shard files considered for a single
// query. Browse-all and widened lookups are truncated deterministically at
// this cap and the result is flagged partial.
const maxCandidateShards = 400

// schemaDir is the per-entity directory under the dataset root.
var schemaDir = map[Entity]string{
	EntityAircraft:           "aircraft/schema-01",
	EntityAirline:            "airlines/schema-01",
	EntityAirport:            "airports/schema-01",
	EntityRoute:              "routes/schema-01",
	EntityCountry:            "countries/schema-01",
	EntityModelType:          "model-type/schema-01",
	EntityCodeBlock:          "code-blocks/schema-01",
	EntityRegistrationPrefix: "registration-prefixes/schema-01",
}

// singleFile maps the unsharded entities to their one shard.
var singleFile = map[Entity]string{
	EntityAirline:            "airlines.csv",
	EntityCountry:            "countries.csv",
	EntityCodeBlock:          "code-blocks.csv",
	EntityRegistrationPrefix: "reg-prefixes.csv",
}

const (
	hexDigits    = "0123456789abcdef"
	letterDigits = "abcdefghijklmnopqrstuvwxyz"
)

// candidates is the shard set selected by the locator for one query.
//
// Paths are explicit shard files, relative to the dataset root, in the order
// they must be scanned. ScanDirs are directories whose CSV files must be
// enumerated instead; they are used when the shard namespace cannot be listed
// without looking at the disk (route airline codes, full aircraft browses).
// The enumeration happens downstream — the locator itself never touches the
// filesystem.
type candidates struct {
	paths     []string
	scanDirs  []string
	truncated bool
}

// locate computes the candidate shard set for an entity and lookup key.
//
// An empty key selects the browse-all set. A key too short for the entity's
// full sharding depth widens to every shard under the derived prefix; a key
// with no usable prefix character at all falls back to browse-all. locate is
// pure: same arguments, same result, no I/O.
func locate(entity Entity, key string) candidates {
	if file, ok := singleFile[entity]; ok {
		return candidates{paths: []string{path.Join(schemaDir[entity], file)}}
	}

	key = strings.ToUpper(strings.TrimSpace(key))

	switch entity {
	case EntityAircraft:
		return locateAircraft(key)
	case EntityAirport:
		return locateAirport(key)
	case EntityRoute:
		return locateRoute(key)
	case EntityModelType:
		return locateModelType(key)
	}
	return candidates{}
}

// locateAircraft shards by the first three hex digits of the ICAO address:
// aircraft/schema-01/4/4c/4ca.csv.
func locateAircraft(key string) candidates {
	dir := schemaDir[EntityAircraft]
	prefix := strings.ToLower(hexPrefix(key, 3))

	switch len(prefix) {
	case 3:
		return candidates{paths: []string{
			path.Join(dir, prefix[:1], prefix[:2], prefix+".csv"),
		}}
	case 2:
		c := candidates{}
		for _, h := range hexDigits {
			p := prefix + string(h)
			c.paths = append(c.paths, path.Join(dir, p[:1], p[:2], p+".csv"))
		}
		return c
	case 1:
		c := candidates{}
		for _, h2 := range hexDigits {
			for _, h3 := range hexDigits {
				p := prefix + string(h2) + string(h3)
				c.paths = append(c.paths, path.Join(dir, p[:1], p[:2], p+".csv"))
			}
		}
		return c
	}
	return candidates{scanDirs: []string{dir}}
}

// locateAirport shards by the first two letters of the airport code:
// airports/schema-01/e/eg.csv.
func locateAirport(key string) candidates {
	dir := schemaDir[EntityAirport]
	prefix := strings.ToLower(letterPrefix(key, 2))

	switch len(prefix) {
	case 2:
		return candidates{paths: []string{
			path.Join(dir, prefix[:1], prefix+".csv"),
		}}
	case 1:
		c := candidates{}
		for _, l := range letterDigits {
			p := prefix + string(l)
			c.paths = append(c.paths, path.Join(dir, p[:1], p+".csv"))
		}
		return c
	}
	return candidates{scanDirs: []string{dir}}
}

// locateRoute shards by the callsign's leading letter run plus its first
// digit: routes/schema-01/b/baw-1.csv, with a baw-all.csv sibling holding
// routes whose flight numbers fall outside the digit split.
func locateRoute(key string) candidates {
	dir := schemaDir[EntityRoute]
	letters := strings.ToLower(letterPrefix(key, 8))
	if letters == "" {
		return candidates{scanDirs: []string{dir}}
	}

	sub := path.Join(dir, letters[:1])
	rest := key[len(letters):]

	if rest != "" && rest[0] >= '0' && rest[0] <= '9' {
		return candidates{paths: []string{
			path.Join(sub, letters+"-"+string(rest[0])+".csv"),
			path.Join(sub, letters+"-all.csv"),
		}}
	}

	// No flight number in the key: every digit split could hold a match.
	c := candidates{paths: []string{path.Join(sub, letters+"-all.csv")}}
	for d := '0'; d <= '9'; d++ {
		c.paths = append(c.paths, path.Join(sub, letters+"-"+string(d)+".csv"))
	}
	return c
}

// locateModelType shards by the first character of the type designator:
// model-type/schema-01/b.csv. Designators may begin with a digit.
func locateModelType(key string) candidates {
	dir := schemaDir[EntityModelType]
	if key != "" {
		c := key[0]
		switch {
		case c >= 'A' && c <= 'Z':
			return candidates{paths: []string{path.Join(dir, strings.ToLower(string(c))+".csv")}}
		case c >= '0' && c <= '9':
			return candidates{paths: []string{path.Join(dir, string(c)+".csv")}}
		}
	}

	// Browse-all: the shard namespace is one file per leading character.
	c := candidates{}
	for _, d := range "0123456789" {
		c.paths = append(c.paths, path.Join(dir, string(d)+".csv"))
	}
	for _, l := range letterDigits {
		c.paths = append(c.paths, path.Join(dir, string(l)+".csv"))
	}
	return c
}

// hexPrefix returns the leading run of hex digits in key, at most n long.
func hexPrefix(key string, n int) string {
	for i := 0; i < len(key) && i < n; i++ {
		c := key[i]
		if (c < '0' || c > '9') && (c < 'A' || c > 'F') {
			return key[:i]
		}
	}
	if len(key) < n {
		return key
	}
	return key[:n]
}

// letterPrefix returns the leading run of letters in key, at most n long.
func letterPrefix(key string, n int) string {
	for i := 0; i < len(key) && i < n; i++ {
		c := key[i]
		if c < 'A' || c > 'Z' {
			return key[:i]
		}
	}
	if len(key) < n {
		return key
	}
	return key[:n]
}
