package unit

import (
	"math"
	"sort"
)

// Unit is anything that can scale a numeric value and compose with
// other units through multiplication, division and exponentiation.
type Unit interface {
	String() string
	Decompose() *Composite
}

// Composite is a scale factor times a product of named units raised to
// rational powers. Bases never repeat and zero powers are elided.
type Composite struct {
	scale  float64
	bases  []*NamedUnit
	powers []Rational
}

// Dimensionless is the empty composite with scale one.
var Dimensionless = &Composite{scale: 1}

// NewComposite builds a composite, merging duplicate bases and dropping
// zero powers. bases and powers must align.
func NewComposite(scale float64, bases []*NamedUnit, powers []Rational) *Composite {
	c := &Composite{scale: scale}
	for i, b := range bases {
		c.mergeBase(b, powers[i])
	}
	return c
}

func (c *Composite) mergeBase(b *NamedUnit, p Rational) {
	if p.IsZero() {
		return
	}
	for i, existing := range c.bases {
		if existing.name == b.name {
			sum := c.powers[i].Add(p)
			if sum.IsZero() {
				c.bases = append(c.bases[:i], c.bases[i+1:]...)
				c.powers = append(c.powers[:i], c.powers[i+1:]...)
			} else {
				c.powers[i] = sum
			}
			return
		}
	}
	c.bases = append(c.bases, b)
	c.powers = append(c.powers, p)
}

// Scale returns the numeric scale factor.
func (c *Composite) Scale() float64 { return c.scale }

// Bases returns the named units, aligned with Powers.
func (c *Composite) Bases() []*NamedUnit { return c.bases }

// Powers returns the rational powers, aligned with Bases.
func (c *Composite) Powers() []Rational { return c.powers }

func (c *Composite) String() string { return ToString(c) }

// asComposite lifts any unit into its display-form composite.
func asComposite(u Unit) *Composite {
	switch v := u.(type) {
	case *Composite:
		return v
	case *NamedUnit:
		return &Composite{scale: 1, bases: []*NamedUnit{v}, powers: []Rational{RInt(1)}}
	default:
		return u.Decompose()
	}
}

// Mul multiplies two units, merging their base/power multisets.
func Mul(a, b Unit) *Composite {
	ca, cb := asComposite(a), asComposite(b)
	out := &Composite{scale: ca.scale * cb.scale}
	for i, base := range ca.bases {
		out.mergeBase(base, ca.powers[i])
	}
	for i, base := range cb.bases {
		out.mergeBase(base, cb.powers[i])
	}
	return out
}

// Div divides a by b.
func Div(a, b Unit) *Composite {
	return Mul(a, Pow(b, RInt(-1)))
}

// Pow raises a unit to a rational power.
func Pow(u Unit, p Rational) *Composite {
	c := asComposite(u)
	if p.IsZero() {
		return &Composite{scale: 1}
	}
	out := &Composite{scale: math.Pow(c.scale, p.Float())}
	for i, base := range c.bases {
		out.mergeBase(base, c.powers[i].Mul(p))
	}
	return out
}

// Scaled multiplies a unit by a bare numeric factor.
func Scaled(factor float64, u Unit) *Composite {
	c := asComposite(u)
	out := &Composite{scale: factor * c.scale, bases: append([]*NamedUnit(nil), c.bases...),
		powers: append([]Rational(nil), c.powers...)}
	return out
}

// Decompose expresses the composite in irreducible bases, folding all
// derived-unit scales into the scale factor. The result is in canonical
// order (bases sorted by name).
func (c *Composite) Decompose() *Composite {
	out := &Composite{scale: c.scale}
	for i, base := range c.bases {
		p := c.powers[i]
		d := base.Decompose()
		out.scale *= math.Pow(d.scale, p.Float())
		for j, db := range d.bases {
			out.mergeBase(db, d.powers[j].Mul(p))
		}
	}
	out.sortBases()
	return out
}

func (c *Composite) sortBases() {
	idx := make([]int, len(c.bases))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return c.bases[idx[a]].name < c.bases[idx[b]].name
	})
	bases := make([]*NamedUnit, len(idx))
	powers := make([]Rational, len(idx))
	for i, j := range idx {
		bases[i] = c.bases[j]
		powers[i] = c.powers[j]
	}
	c.bases = bases
	c.powers = powers
}

// Equal reports whether two units represent the identical scale and
// bases after normalization. It is stricter than equivalence: units
// related by a conversion factor are not equal.
func Equal(a, b Unit) bool {
	da, db := a.Decompose(), b.Decompose()
	if !floatEq(da.scale, db.scale) || len(da.bases) != len(db.bases) {
		return false
	}
	for i := range da.bases {
		if da.bases[i].name != db.bases[i].name || da.powers[i] != db.powers[i] {
			return false
		}
	}
	return true
}

// sameDimension reports whether two units share the same decomposed
// base/power signature, ignoring scale.
func sameDimension(a, b Unit) bool {
	da, db := a.Decompose(), b.Decompose()
	if len(da.bases) != len(db.bases) {
		return false
	}
	for i := range da.bases {
		if da.bases[i].name != db.bases[i].name || da.powers[i] != db.powers[i] {
			return false
		}
	}
	return true
}

// Converter rescales a value from one unit into another.
type Converter func(float64) float64

// IsEquivalent reports whether a is convertible to b, directly or via
// one of the supplied equivalencies. Equivalencies are tried in order
// and the first match wins.
func IsEquivalent(a, b Unit, equivs ...Equivalency) bool {
	if sameDimension(a, b) {
		return true
	}
	for _, eq := range equivs {
		if (sameDimension(a, eq.A) && sameDimension(b, eq.B)) ||
			(sameDimension(a, eq.B) && sameDimension(b, eq.A)) {
			return true
		}
	}
	return false
}

// ConverterTo builds a function converting values in from-units to
// to-units. It fails with a ConversionError when the physical types
// differ and no equivalency bridges them.
func ConverterTo(from, to Unit, equivs ...Equivalency) (Converter, error) {
	df, dt := from.Decompose(), to.Decompose()
	if sameDimension(df, dt) {
		ratio := df.scale / dt.scale
		return func(v float64) float64 { return v * ratio }, nil
	}
	for _, eq := range equivs {
		if sameDimension(from, eq.A) && sameDimension(to, eq.B) {
			rIn := df.scale / eq.A.Decompose().scale
			rOut := eq.B.Decompose().scale / dt.scale
			fwd := eq.AtoB
			return func(v float64) float64 { return fwd(v*rIn) * rOut }, nil
		}
		if sameDimension(from, eq.B) && sameDimension(to, eq.A) {
			rIn := df.scale / eq.B.Decompose().scale
			rOut := eq.A.Decompose().scale / dt.scale
			back := eq.BtoA
			return func(v float64) float64 { return back(v*rIn) * rOut }, nil
		}
	}
	return nil, &ConversionError{From: from, To: to}
}

// To converts a single value from one unit to another.
func To(from, to Unit, value float64, equivs ...Equivalency) (float64, error) {
	conv, err := ConverterTo(from, to, equivs...)
	if err != nil {
		return 0, err
	}
	return conv(value), nil
}
