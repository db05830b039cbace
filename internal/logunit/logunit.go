// Package logunit implements logarithmic (functional) units — magnitude,
// dex and decibel — and quantities carrying values in the log domain.
//
// A LogUnit wraps a physical unit inside a nonlinear scale. Adding two
// log units multiplies their physical units; this is what makes "adding
// magnitudes" equivalent to multiplying fluxes.
package logunit

import (
	"errors"
	"fmt"
	"math"

	"github.com/davre/quanta/internal/unit"
)

// ErrIncompatible indicates an attempt to add or subtract logarithmic
// units whose functional units are not mutually convertible.
var ErrIncompatible = errors.New("logunit: can only add/subtract logarithmic units of compatible type")

// Functional is the logarithmic scale itself: a fixed base-10 family
// member with a linear factor to dex (mag = -0.4 dex, dB = 0.1 dex).
type Functional struct {
	name   string
	family string
	toDex  float64
}

var (
	DexUnit     = Functional{name: "dex", family: "log10", toDex: 1}
	MagUnit     = Functional{name: "mag", family: "log10", toDex: -0.4}
	DecibelUnit = Functional{name: "dB", family: "log10", toDex: 0.1}
)

func (f Functional) Name() string { return f.name }

func (f Functional) String() string { return f.name }

// ConvertTo rescales a value between functional units of the same
// family.
func (f Functional) ConvertTo(g Functional, v float64) (float64, error) {
	if f.family != g.family {
		return 0, fmt.Errorf("%w: %s vs %s", ErrIncompatible, f.name, g.name)
	}
	return v * f.toDex / g.toDex, nil
}

// Neg flips the sign convention, for negated log units.
func (f Functional) Neg() Functional {
	return Functional{name: f.name, family: f.family, toDex: -f.toDex}
}

// LogUnit is a logarithmic scale of a physical unit. The physical unit
// may be dimensionless.
type LogUnit struct {
	fu       Functional
	physical unit.Unit
}

// NewLogUnit wraps a physical unit in a functional scale. A nil
// physical unit means dimensionless.
func NewLogUnit(fu Functional, physical unit.Unit) *LogUnit {
	if physical == nil {
		physical = unit.Dimensionless
	}
	return &LogUnit{fu: fu, physical: physical}
}

// Mag builds a magnitude unit over a physical unit.
func Mag(physical unit.Unit) *LogUnit { return NewLogUnit(MagUnit, physical) }

// Dex builds a dex (plain log10) unit over a physical unit.
func Dex(physical unit.Unit) *LogUnit { return NewLogUnit(DexUnit, physical) }

// Decibel builds a decibel unit over a physical unit.
func Decibel(physical unit.Unit) *LogUnit { return NewLogUnit(DecibelUnit, physical) }

// PhysicalUnit returns the encapsulated physical unit.
func (l *LogUnit) PhysicalUnit() unit.Unit { return l.physical }

// FunctionalUnit returns the logarithmic scale.
func (l *LogUnit) FunctionalUnit() Functional { return l.fu }

func (l *LogUnit) String() string {
	ps := unit.ToString(l.physical)
	if ps == "" {
		return l.fu.name
	}
	return fmt.Sprintf("%s(%s)", l.fu.name, ps)
}

// FromPhysical transforms a physical-domain value into the functional
// (log) domain.
func (l *LogUnit) FromPhysical(x float64) float64 {
	return math.Log10(x) / l.fu.toDex
}

// ToPhysical transforms a functional-domain value back to the physical
// domain.
func (l *LogUnit) ToPhysical(x float64) float64 {
	return math.Pow(10, x*l.fu.toDex)
}

// combine implements the sign table for log-unit addition: the result's
// physical unit is physical^signSelf × other.physical^signOther, and
// the functional units must be mutually convertible.
func (l *LogUnit) combine(other *LogUnit, signSelf, signOther int) (*LogUnit, error) {
	if _, err := other.fu.ConvertTo(l.fu, 1); err != nil {
		return nil, err
	}
	pu := unit.Mul(unit.Pow(l.physical, unit.RInt(signSelf)),
		unit.Pow(other.physical, unit.RInt(signOther)))
	return &LogUnit{fu: l.fu, physical: pu}, nil
}

// Add combines with signs (+1, +1): the physical units multiply.
func (l *LogUnit) Add(other *LogUnit) (*LogUnit, error) {
	return l.combine(other, 1, 1)
}

// Sub combines with signs (+1, -1): the physical units divide.
func (l *LogUnit) Sub(other *LogUnit) (*LogUnit, error) {
	return l.combine(other, 1, -1)
}

// SubFrom combines with signs (-1, +1), for other - l.
func (l *LogUnit) SubFrom(other *LogUnit) (*LogUnit, error) {
	return l.combine(other, -1, 1)
}

// Neg inverts the physical unit and flips the functional sign.
func (l *LogUnit) Neg() *LogUnit {
	return &LogUnit{fu: l.fu.Neg(), physical: unit.Pow(l.physical, unit.RInt(-1))}
}

// IsEquivalent reports whether values can be converted between the two
// log units: same functional family and equivalent physical units.
func (l *LogUnit) IsEquivalent(other *LogUnit) bool {
	if l.fu.family != other.fu.family {
		return false
	}
	return unit.IsEquivalent(l.physical, other.physical)
}

// ConverterTo builds a converter between log units, handling both the
// functional rescale and the physical scale offset (mag(Jy) to mag(mJy)
// shifts by the log of the Jy/mJy ratio).
func (l *LogUnit) ConverterTo(other *LogUnit) (unit.Converter, error) {
	if l.fu.family != other.fu.family {
		return nil, fmt.Errorf("%w: %s vs %s", ErrIncompatible, l.fu.name, other.fu.name)
	}
	ratio, err := unit.To(l.physical, other.physical, 1)
	if err != nil {
		return nil, err
	}
	offset := math.Log10(ratio)
	fromDex, toDex := l.fu.toDex, other.fu.toDex
	return func(v float64) float64 {
		return (v*fromDex + offset) / toDex
	}, nil
}

// AB and ST magnitude zero points, as zero-flux-density scaled units.

// ABZero returns the AB magnitude zero flux density (W / m² Hz scaled).
func ABZero(r *unit.Registry) unit.Unit {
	base := r.MustParse("W / (m2 Hz)")
	return unit.Scaled(math.Pow(10, -0.4*48.6)*1e-3, base)
}

// STZero returns the ST magnitude zero flux density (W / m² Å scaled).
func STZero(r *unit.Registry) unit.Unit {
	base := r.MustParse("W / (m2 Angstrom)")
	return unit.Scaled(math.Pow(10, -0.4*21.1)*1e-3, base)
}

// ABMag returns the AB magnitude system unit.
func ABMag(r *unit.Registry) *LogUnit { return Mag(ABZero(r)) }

// STMag returns the ST magnitude system unit.
func STMag(r *unit.Registry) *LogUnit { return Mag(STZero(r)) }
