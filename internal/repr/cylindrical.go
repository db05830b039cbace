package repr

import (
	"fmt"
	"math"

	"github.com/davre/quanta/internal/quantity"
	"github.com/davre/quanta/internal/unit"
)

// Cylindrical represents points in cylindrical coordinates: distance
// from the axis, azimuth and height. rho and z must share a physical
// type; z is normalized into rho's unit at construction.
type Cylindrical struct {
	rho quantity.Quantity
	phi []quantity.Angle
	z   quantity.Quantity
	n   int
}

// NewCylindrical builds a cylindrical representation, broadcasting the
// components to a common length.
func NewCylindrical(rho quantity.Quantity, phi []quantity.Angle, z quantity.Quantity) (*Cylindrical, error) {
	if !unit.IsEquivalent(rho.Unit(), z.Unit()) {
		return nil, fmt.Errorf("repr: rho and z must share a physical type, got %q, %q",
			unit.ToString(rho.Unit()), unit.ToString(z.Unit()))
	}
	z, err := z.To(rho.Unit())
	if err != nil {
		return nil, err
	}
	n, err := quantity.BroadcastLen(rho.Len(), len(phi), z.Len())
	if err != nil {
		return nil, &BroadcastError{Components: []string{"rho", "phi", "z"},
			Lengths: []int{rho.Len(), len(phi), z.Len()}}
	}
	return &Cylindrical{rho: rho, phi: copyAngles(phi), z: z, n: n}, nil
}

func (c *Cylindrical) Name() string { return "cylindrical" }

func (c *Cylindrical) Components() []string { return []string{"rho", "phi", "z"} }

func (c *Cylindrical) Shape() int { return c.n }

func (c *Cylindrical) IsScalar() bool { return c.n == 1 }

// Rho returns the distances from the axis.
func (c *Cylindrical) Rho() quantity.Quantity { return c.rho }

// Phi returns the azimuths.
func (c *Cylindrical) Phi() []quantity.Angle { return c.phi }

// Z returns the heights.
func (c *Cylindrical) Z() quantity.Quantity { return c.z }

func (c *Cylindrical) ToCartesian() *Cartesian {
	xs := make([]float64, c.n)
	ys := make([]float64, c.n)
	zs := make([]float64, c.n)
	for i := 0; i < c.n; i++ {
		rho := c.rho.At(i)
		phi := angleAt(c.phi, i)
		xs[i] = rho * phi.Cos()
		ys[i] = rho * phi.Sin()
		zs[i] = c.z.At(i)
	}
	u := c.rho.Unit()
	out, _ := NewCartesian(quantity.New(xs, u), quantity.New(ys, u), quantity.New(zs, u))
	return out
}

// CylindricalFromCartesian recovers rho/phi/z; rho comes from hypot and
// phi from atan2 so all quadrants resolve correctly.
func CylindricalFromCartesian(c *Cartesian) (*Cylindrical, error) {
	rho := make([]float64, c.n)
	phi := make([]quantity.Angle, c.n)
	zs := make([]float64, c.n)
	for i := 0; i < c.n; i++ {
		x, y, z := c.At(i)
		rho[i] = math.Hypot(x, y)
		phi[i] = quantity.Rad(math.Atan2(y, x))
		zs[i] = z
	}
	u := c.Unit()
	return NewCylindrical(quantity.New(rho, u), phi, quantity.New(zs, u))
}

func (c *Cylindrical) String() string {
	if c.IsScalar() {
		return fmt.Sprintf("cylindrical (rho, phi, z) = (%g, %s, %g) %s",
			c.rho.Value(), c.phi[0], c.z.Value(), unit.ToString(c.rho.Unit()))
	}
	return fmt.Sprintf("cylindrical (rho, phi, z), shape %d, in %s", c.n, unit.ToString(c.rho.Unit()))
}
