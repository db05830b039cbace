package quantity

import (
	"fmt"
	"math"
)

// Angle is an angular value stored in radians. It is the immutable
// component type for the angular axes of coordinate representations.
type Angle float64

// Deg builds an angle from degrees.
func Deg(d float64) Angle { return Angle(d * math.Pi / 180) }

// Rad builds an angle from radians.
func Rad(r float64) Angle { return Angle(r) }

// Radians returns the value in radians.
func (a Angle) Radians() float64 { return float64(a) }

// Degrees returns the value in degrees.
func (a Angle) Degrees() float64 { return float64(a) * 180 / math.Pi }

// WrapAt360 wraps into [0, 360) degrees.
func (a Angle) WrapAt360() Angle {
	r := math.Mod(float64(a), 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	return Angle(r)
}

// WrapAt180 wraps into (-180, 180] degrees.
func (a Angle) WrapAt180() Angle {
	r := math.Mod(float64(a), 2*math.Pi)
	if r > math.Pi {
		r -= 2 * math.Pi
	} else if r <= -math.Pi {
		r += 2 * math.Pi
	}
	return Angle(r)
}

func (a Angle) Sin() float64 { return math.Sin(float64(a)) }

func (a Angle) Cos() float64 { return math.Cos(float64(a)) }

func (a Angle) String() string {
	return fmt.Sprintf("%g deg", a.Degrees())
}

// Degs converts a slice of degree values to angles.
func Degs(ds ...float64) []Angle {
	out := make([]Angle, len(ds))
	for i, d := range ds {
		out[i] = Deg(d)
	}
	return out
}
