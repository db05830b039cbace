package unit

import "math"

// Builtin constructs the standard registry: SI bases, common derived
// units and astronomy staples, with SI prefixes applied to prefixable
// names. A duplicate definition in the table is a programming error and
// panics, so a broken table fails at initialization rather than at
// first use.
func Builtin() *Registry {
	r := NewRegistry()

	m := NewIrreducible("m", "length", "meter", "metre").Prefixable()
	g := NewIrreducible("g", "mass", "gram").Prefixable()
	s := NewIrreducible("s", "time", "second", "sec").Prefixable()
	amp := NewIrreducible("A", "electric current", "ampere", "amp").Prefixable()
	kelvin := NewIrreducible("K", "temperature", "Kelvin", "kelvin").Prefixable()
	mol := NewIrreducible("mol", "amount of substance", "mole")
	cd := NewIrreducible("cd", "luminous intensity", "candela")
	rad := NewIrreducible("rad", "angle", "radian")
	sr := NewIrreducible("sr", "solid angle", "steradian")
	ct := NewIrreducible("ct", "count", "count")

	for _, u := range []*NamedUnit{m, g, s, amp, kelvin, mol, cd, rad, sr, ct} {
		mustRegister(r, u)
	}

	// Time.
	mustRegister(r, NewDerived("min", Scaled(60, s), "minute"))
	hour := NewDerived("h", Scaled(3600, s), "hour", "hr")
	mustRegister(r, hour)
	day := NewDerived("d", Scaled(86400, s), "day")
	mustRegister(r, day)
	mustRegister(r, NewDerived("yr", Scaled(365.25*86400, s), "year"))

	// Angles.
	deg := NewDerived("deg", Scaled(math.Pi/180, rad), "degree")
	mustRegister(r, deg)
	arcmin := NewDerived("arcmin", Scaled(1.0/60, deg), "arcminute")
	mustRegister(r, arcmin)
	mustRegister(r, NewDerived("arcsec", Scaled(1.0/60, arcmin), "arcsecond"))

	// Length.
	mustRegister(r, NewDerived("Angstrom", Scaled(1e-10, m), "AA", "angstrom"))
	au := NewDerived("AU", Scaled(1.495978707e11, m), "au", "astronomical_unit")
	mustRegister(r, au)
	mustRegister(r, NewDerived("pc", Scaled(3.0856775814913673e16, m), "parsec"))

	// Mechanics.
	hz := NewDerived("Hz", Pow(s, RInt(-1)), "hertz").Prefixable()
	mustRegister(r, hz)
	newton := NewDerived("N", NewComposite(1e3, []*NamedUnit{g, m, s},
		[]Rational{RInt(1), RInt(1), RInt(-2)}), "newton").Prefixable()
	mustRegister(r, newton)
	joule := NewDerived("J", Mul(newton, m), "joule").Prefixable()
	mustRegister(r, joule)
	watt := NewDerived("W", Div(joule, s), "watt").Prefixable()
	mustRegister(r, watt)
	mustRegister(r, NewDerived("Pa", Div(newton, Pow(m, RInt(2))), "pascal").Prefixable())

	// Astronomy staples.
	mustRegister(r, NewDerived("erg", Scaled(1e-7, joule)))
	mustRegister(r, NewDerived("eV", Scaled(1.602176634e-19, joule), "electronvolt").Prefixable())
	mustRegister(r, NewDerived("Jy", Scaled(1e-26, Div(watt, Mul(Pow(m, RInt(2)), hz))),
		"jansky", "Jansky").Prefixable())

	return r
}

func mustRegister(r *Registry, u *NamedUnit) {
	if err := r.RegisterPrefixed(u); err != nil {
		panic(err)
	}
}

// SI expresses a unit over SI bases, with any gram powers promoted to
// kilograms and the difference folded into the scale.
func SI(u Unit) *Composite {
	d := u.Decompose()
	out := &Composite{scale: d.scale}
	for i, b := range d.bases {
		p := d.powers[i]
		if b.name == "g" {
			kg := &NamedUnit{name: "kg", def: Scaled(1e3, b)}
			out.scale /= math.Pow(1e3, p.Float())
			out.mergeBase(kg, p)
		} else {
			out.mergeBase(b, p)
		}
	}
	out.sortBases()
	return out
}

// CGS expresses a unit over cgs bases (centimeter, gram, second).
func CGS(u Unit) *Composite {
	d := u.Decompose()
	out := &Composite{scale: d.scale}
	for i, b := range d.bases {
		p := d.powers[i]
		if b.name == "m" {
			cm := &NamedUnit{name: "cm", def: Scaled(1e-2, b)}
			out.scale *= math.Pow(1e2, p.Float())
			out.mergeBase(cm, p)
		} else {
			out.mergeBase(b, p)
		}
	}
	out.sortBases()
	return out
}
