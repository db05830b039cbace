// Package unit implements an algebra of physical units.
//
// The package defines the fundamental types for composing, parsing and
// converting units:
//
//   - [Unit]: anything that can scale a value and compose with other units
//   - [NamedUnit]: an atomic, registry-resident symbol (m, s, erg, ...)
//   - [Composite]: a scale factor times named units raised to rational powers
//   - [Registry]: the table resolving names and aliases to named units
//   - [Equivalency]: a caller-supplied bridge between physical types
//
// # Example
//
//	reg := unit.Builtin()
//	kms, _ := reg.Parse("km/s")
//	ms, _ := reg.Parse("m/s")
//	v, _ := unit.To(kms, ms, 1.0) // 1000.0
//
// # Thread Safety
//
// A Registry is immutable once populated; all unit values are immutable.
// Everything here is safe for concurrent use after construction.
package unit
