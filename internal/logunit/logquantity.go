package logunit

import (
	"fmt"

	"github.com/davre/quanta/internal/quantity"
	"github.com/davre/quanta/internal/unit"
)

// LogQuantity is a numeric array bound to a LogUnit. The stored values
// are already in the functional (log) domain.
//
// Addition and subtraction are named methods rather than operators:
// they change the unit of the result (the physical units multiply or
// divide) while the stored log-domain values add or subtract directly.
type LogQuantity struct {
	values []float64
	lu     *LogUnit
	scalar bool
}

// NewLogQuantity builds a log quantity from values already in the
// functional domain.
func NewLogQuantity(values []float64, lu *LogUnit) LogQuantity {
	v := make([]float64, len(values))
	copy(v, values)
	return LogQuantity{values: v, lu: lu}
}

// ScalarLog builds a scalar log quantity from a functional-domain value.
func ScalarLog(v float64, lu *LogUnit) LogQuantity {
	return LogQuantity{values: []float64{v}, lu: lu, scalar: true}
}

// fromPhysical converts a physical quantity into the given functional
// scale, inferring the physical unit from the quantity.
func fromPhysical(q quantity.Quantity, fu Functional) LogQuantity {
	lu := NewLogUnit(fu, q.Unit())
	out := make([]float64, q.Len())
	for i, v := range q.Values() {
		out[i] = lu.FromPhysical(v)
	}
	return LogQuantity{values: out, lu: lu, scalar: q.IsScalar()}
}

// Magnitude converts a physical quantity to magnitudes:
// Magnitude(10 ct/s) is -2.5 mag(ct / s).
func Magnitude(q quantity.Quantity) LogQuantity { return fromPhysical(q, MagUnit) }

// DexOf converts a physical quantity to dex.
func DexOf(q quantity.Quantity) LogQuantity { return fromPhysical(q, DexUnit) }

// DecibelOf converts a physical quantity to decibels.
func DecibelOf(q quantity.Quantity) LogQuantity { return fromPhysical(q, DecibelUnit) }

// Values returns the functional-domain values. Treat as read-only.
func (q LogQuantity) Values() []float64 { return q.values }

// Value returns the first functional-domain value.
func (q LogQuantity) Value() float64 {
	if len(q.values) == 0 {
		return 0
	}
	return q.values[0]
}

// Unit returns the full logarithmic unit.
func (q LogQuantity) Unit() *LogUnit { return q.lu }

// PhysicalUnit returns the encapsulated physical unit.
func (q LogQuantity) PhysicalUnit() unit.Unit { return q.lu.PhysicalUnit() }

// FunctionalValues is an alias for Values, for callers that want to be
// explicit about the domain.
func (q LogQuantity) FunctionalValues() []float64 { return q.Values() }

func (q LogQuantity) IsScalar() bool { return q.scalar }

func (q LogQuantity) Len() int { return len(q.values) }

func (q LogQuantity) String() string {
	if q.scalar {
		return fmt.Sprintf("%g %s", q.Value(), q.lu)
	}
	return fmt.Sprintf("%v %s", q.values, q.lu)
}

// ToPhysical converts back to the physical domain.
func (q LogQuantity) ToPhysical() quantity.Quantity {
	out := make([]float64, len(q.values))
	for i, v := range q.values {
		out[i] = q.lu.ToPhysical(v)
	}
	if q.scalar {
		return quantity.Scalar(out[0], q.lu.PhysicalUnit())
	}
	return quantity.New(out, q.lu.PhysicalUnit())
}

// To converts into another log unit of the same functional family.
func (q LogQuantity) To(lu *LogUnit) (LogQuantity, error) {
	conv, err := q.lu.ConverterTo(lu)
	if err != nil {
		return LogQuantity{}, err
	}
	out := make([]float64, len(q.values))
	for i, v := range q.values {
		out[i] = conv(v)
	}
	return LogQuantity{values: out, lu: lu, scalar: q.scalar}, nil
}

// Add adds another log quantity: the log-domain values add numerically
// (after rescaling other into this functional unit) and the physical
// units multiply.
func (q LogQuantity) Add(other LogQuantity) (LogQuantity, error) {
	lu, err := q.lu.Add(other.lu)
	if err != nil {
		return LogQuantity{}, err
	}
	return q.combineValues(other, lu, 1)
}

// Sub subtracts another log quantity: log-domain values subtract and
// the physical units divide.
func (q LogQuantity) Sub(other LogQuantity) (LogQuantity, error) {
	lu, err := q.lu.Sub(other.lu)
	if err != nil {
		return LogQuantity{}, err
	}
	return q.combineValues(other, lu, -1)
}

// SubFrom computes other - q. Unlike Sub, the result lands in other's
// functional unit, so the rescale into the new unit is explicit here.
func (q LogQuantity) SubFrom(other LogQuantity) (LogQuantity, error) {
	lu, err := q.lu.SubFrom(other.lu)
	if err != nil {
		return LogQuantity{}, err
	}
	n, err := quantity.BroadcastLen(q.Len(), other.Len())
	if err != nil {
		return LogQuantity{}, err
	}
	convSelf, err := q.lu.fu.ConvertTo(lu.fu, 1)
	if err != nil {
		return LogQuantity{}, err
	}
	convOther, err := other.lu.fu.ConvertTo(lu.fu, 1)
	if err != nil {
		return LogQuantity{}, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = other.at(i)*convOther - q.at(i)*convSelf
	}
	return LogQuantity{values: out, lu: lu, scalar: q.scalar && other.scalar}, nil
}

func (q LogQuantity) at(i int) float64 {
	if q.scalar || len(q.values) == 1 {
		return q.values[0]
	}
	return q.values[i]
}

func (q LogQuantity) combineValues(other LogQuantity, lu *LogUnit, sign float64) (LogQuantity, error) {
	n, err := quantity.BroadcastLen(q.Len(), other.Len())
	if err != nil {
		return LogQuantity{}, err
	}
	// Rescale the other operand into this functional unit, e.g. dB -> mag.
	conv, err := other.lu.fu.ConvertTo(q.lu.fu, 1)
	if err != nil {
		return LogQuantity{}, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = q.at(i) + sign*other.at(i)*conv
	}
	return LogQuantity{values: out, lu: lu, scalar: q.scalar && other.scalar}, nil
}
