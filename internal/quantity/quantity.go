// Package quantity provides numeric values bound to units: the Quantity
// array type and the Angle primitive used by coordinate representations.
package quantity

import (
	"errors"
	"fmt"

	"github.com/davre/quanta/internal/unit"
)

// ErrBroadcast indicates values that cannot be broadcast to a common
// length.
var ErrBroadcast = errors.New("quantity: values cannot be broadcast")

// Quantity is a numeric array bound to a unit. A scalar quantity is a
// length-one array flagged as scalar. Values are broadcastable in the
// 1-D sense: a scalar stretches against any length, otherwise lengths
// must match exactly.
type Quantity struct {
	values []float64
	unit   unit.Unit
	scalar bool
}

// New builds an array quantity. The slice is copied.
func New(values []float64, u unit.Unit) Quantity {
	v := make([]float64, len(values))
	copy(v, values)
	return Quantity{values: v, unit: u}
}

// Scalar builds a scalar quantity.
func Scalar(v float64, u unit.Unit) Quantity {
	return Quantity{values: []float64{v}, unit: u, scalar: true}
}

// Wrap builds an array quantity sharing the caller's slice. Mutating
// the slice afterwards mutates the quantity; use New when in doubt.
func Wrap(values []float64, u unit.Unit) Quantity {
	return Quantity{values: values, unit: u}
}

// Values returns the backing slice. Treat it as read-only.
func (q Quantity) Values() []float64 { return q.values }

// Value returns the single value of a scalar quantity, or the first
// element otherwise.
func (q Quantity) Value() float64 {
	if len(q.values) == 0 {
		return 0
	}
	return q.values[0]
}

// At returns element i, stretching scalars to any index.
func (q Quantity) At(i int) float64 {
	if q.scalar || len(q.values) == 1 {
		return q.values[0]
	}
	return q.values[i]
}

func (q Quantity) Unit() unit.Unit { return q.unit }

func (q Quantity) IsScalar() bool { return q.scalar }

func (q Quantity) Len() int { return len(q.values) }

func (q Quantity) String() string {
	us := unit.ToString(q.unit)
	if q.scalar {
		return fmt.Sprintf("%g %s", q.Value(), us)
	}
	return fmt.Sprintf("%v %s", q.values, us)
}

// To converts the quantity to another unit.
func (q Quantity) To(u unit.Unit, equivs ...unit.Equivalency) (Quantity, error) {
	conv, err := unit.ConverterTo(q.unit, u, equivs...)
	if err != nil {
		return Quantity{}, err
	}
	out := make([]float64, len(q.values))
	for i, v := range q.values {
		out[i] = conv(v)
	}
	return Quantity{values: out, unit: u, scalar: q.scalar}, nil
}

// MulUnit reinterprets the quantity with its unit multiplied by u.
func (q Quantity) MulUnit(u unit.Unit) Quantity {
	return Quantity{values: q.values, unit: unit.Mul(q.unit, u), scalar: q.scalar}
}

// DivUnit reinterprets the quantity with its unit divided by u.
func (q Quantity) DivUnit(u unit.Unit) Quantity {
	return Quantity{values: q.values, unit: unit.Div(q.unit, u), scalar: q.scalar}
}

// Scale multiplies all values by a bare number.
func (q Quantity) Scale(f float64) Quantity {
	out := make([]float64, len(q.values))
	for i, v := range q.values {
		out[i] = v * f
	}
	return Quantity{values: out, unit: q.unit, scalar: q.scalar}
}

// Mul multiplies two quantities element-wise, multiplying units.
func (q Quantity) Mul(other Quantity) (Quantity, error) {
	n, err := BroadcastLen(q.Len(), other.Len())
	if err != nil {
		return Quantity{}, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = q.At(i) * other.At(i)
	}
	return Quantity{values: out, unit: unit.Mul(q.unit, other.unit),
		scalar: q.scalar && other.scalar}, nil
}

// Div divides two quantities element-wise, dividing units.
func (q Quantity) Div(other Quantity) (Quantity, error) {
	n, err := BroadcastLen(q.Len(), other.Len())
	if err != nil {
		return Quantity{}, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = q.At(i) / other.At(i)
	}
	return Quantity{values: out, unit: unit.Div(q.unit, other.unit),
		scalar: q.scalar && other.scalar}, nil
}

// Add adds another quantity, converting it to this quantity's unit
// first. Incompatible units fail with the unit conversion error.
func (q Quantity) Add(other Quantity, equivs ...unit.Equivalency) (Quantity, error) {
	converted, err := other.To(q.unit, equivs...)
	if err != nil {
		return Quantity{}, err
	}
	n, err := BroadcastLen(q.Len(), converted.Len())
	if err != nil {
		return Quantity{}, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = q.At(i) + converted.At(i)
	}
	return Quantity{values: out, unit: q.unit, scalar: q.scalar && other.scalar}, nil
}

// BroadcastLen resolves the common length of 1-D values: length one
// stretches, anything else must match.
func BroadcastLen(lens ...int) (int, error) {
	n := 1
	for _, l := range lens {
		if l == n || l == 1 {
			continue
		}
		if n == 1 {
			n = l
			continue
		}
		return 0, fmt.Errorf("%w: lengths %v", ErrBroadcast, lens)
	}
	if n == 1 && len(lens) > 0 {
		n = lens[0]
	}
	return n, nil
}
