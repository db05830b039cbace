package unit

// Equivalency bridges two otherwise-incompatible physical types with a
// pair of conversion functions. Equivalencies are always supplied by
// the caller; there is no global default list.
type Equivalency struct {
	A    Unit
	B    Unit
	AtoB func(float64) float64
	BtoA func(float64) float64
}

// speed of light, m/s
const cLight = 299792458.0

// MassEnergy bridges mass and energy via E = m c². The registry is
// needed to resolve the anchor units.
func MassEnergy(r *Registry) Equivalency {
	kgU, _ := r.Lookup("kg")
	jU, _ := r.Lookup("J")
	c2 := cLight * cLight
	return Equivalency{
		A:    kgU,
		B:    jU,
		AtoB: func(m float64) float64 { return m * c2 },
		BtoA: func(e float64) float64 { return e / c2 },
	}
}
