package repr

import (
	"fmt"

	"github.com/davre/quanta/internal/quantity"
	"github.com/davre/quanta/internal/unit"
)

// Cartesian represents points in 3D rectangular coordinates. It is the
// conversion hub for all other variants. The three components must
// share a physical type; y and z are normalized into x's unit at
// construction so component arithmetic never mixes scales.
type Cartesian struct {
	x, y, z quantity.Quantity
	n       int
}

// NewCartesian builds a cartesian representation, broadcasting the
// components to a common length.
func NewCartesian(x, y, z quantity.Quantity) (*Cartesian, error) {
	if !unit.IsEquivalent(x.Unit(), y.Unit()) || !unit.IsEquivalent(x.Unit(), z.Unit()) {
		return nil, fmt.Errorf("repr: x, y and z must share a physical type, got %q, %q, %q",
			unit.ToString(x.Unit()), unit.ToString(y.Unit()), unit.ToString(z.Unit()))
	}
	y, err := y.To(x.Unit())
	if err != nil {
		return nil, err
	}
	z, err = z.To(x.Unit())
	if err != nil {
		return nil, err
	}
	n, err := quantity.BroadcastLen(x.Len(), y.Len(), z.Len())
	if err != nil {
		return nil, &BroadcastError{Components: []string{"x", "y", "z"},
			Lengths: []int{x.Len(), y.Len(), z.Len()}}
	}
	return &Cartesian{x: x, y: y, z: z, n: n}, nil
}

// CartesianScalar builds a scalar cartesian point in the given unit.
func CartesianScalar(x, y, z float64, u unit.Unit) *Cartesian {
	c, _ := NewCartesian(quantity.Scalar(x, u), quantity.Scalar(y, u), quantity.Scalar(z, u))
	return c
}

func (c *Cartesian) Name() string { return "cartesian" }

func (c *Cartesian) Components() []string { return []string{"x", "y", "z"} }

func (c *Cartesian) Shape() int { return c.n }

func (c *Cartesian) IsScalar() bool { return c.n == 1 }

// X returns the x component.
func (c *Cartesian) X() quantity.Quantity { return c.x }

// Y returns the y component.
func (c *Cartesian) Y() quantity.Quantity { return c.y }

// Z returns the z component.
func (c *Cartesian) Z() quantity.Quantity { return c.z }

// Unit returns the shared component unit.
func (c *Cartesian) Unit() unit.Unit { return c.x.Unit() }

// At returns the point at index i as raw component values.
func (c *Cartesian) At(i int) (x, y, z float64) {
	return c.x.At(i), c.y.At(i), c.z.At(i)
}

func (c *Cartesian) ToCartesian() *Cartesian { return c }

// Transform applies a 3x3 matrix (e.g. a rotation) to every point,
// returning a new representation.
func (c *Cartesian) Transform(m [3][3]float64) *Cartesian {
	xs := make([]float64, c.n)
	ys := make([]float64, c.n)
	zs := make([]float64, c.n)
	for i := 0; i < c.n; i++ {
		x, y, z := c.At(i)
		xs[i] = m[0][0]*x + m[0][1]*y + m[0][2]*z
		ys[i] = m[1][0]*x + m[1][1]*y + m[1][2]*z
		zs[i] = m[2][0]*x + m[2][1]*y + m[2][2]*z
	}
	u := c.Unit()
	out, _ := NewCartesian(quantity.New(xs, u), quantity.New(ys, u), quantity.New(zs, u))
	return out
}

func (c *Cartesian) String() string {
	if c.IsScalar() {
		return fmt.Sprintf("cartesian (x, y, z) = (%g, %g, %g) %s",
			c.x.Value(), c.y.Value(), c.z.Value(), unit.ToString(c.Unit()))
	}
	return fmt.Sprintf("cartesian (x, y, z), shape %d, in %s", c.n, unit.ToString(c.Unit()))
}
