package unit

import "strings"

// physicalTypes maps decomposed dimension signatures to the names used
// for compatibility checks and error reporting.
var physicalTypes = map[string]string{
	"":              "dimensionless",
	"m:1":           "length",
	"m:2":           "area",
	"m:3":           "volume",
	"s:1":           "time",
	"g:1":           "mass",
	"A:1":           "electric current",
	"K:1":           "temperature",
	"mol:1":         "amount of substance",
	"cd:1":          "luminous intensity",
	"rad:1":         "angle",
	"sr:1":          "solid angle",
	"ct:1":          "count",
	"s:-1":          "frequency",
	"m:1 s:-1":      "speed",
	"m:1 s:-2":      "acceleration",
	"g:1 m:1 s:-2":  "force",
	"g:1 m:2 s:-2":  "energy",
	"g:1 m:2 s:-3":  "power",
	"g:1 m:-1 s:-2": "pressure",
	"g:1 s:-2":      "spectral flux density",
	"g:1 m:2 s:-1":  "angular momentum",
	"m:3 s:-2":      "standard gravitational parameter",
}

// signature renders the decomposed base/power multiset of a unit in
// canonical order, ignoring scale.
func signature(u Unit) string {
	d := u.Decompose()
	parts := make([]string, len(d.bases))
	for i, b := range d.bases {
		parts[i] = b.name + ":" + d.powers[i].String()
	}
	return strings.Join(parts, " ")
}

// PhysicalType returns the dimensional category of a unit, or "unknown"
// for signatures without a conventional name.
func PhysicalType(u Unit) string {
	if name, ok := physicalTypes[signature(u)]; ok {
		return name
	}
	return "unknown"
}
