// Package repr defines 3D point representations — cartesian, spherical,
// unit-spherical, physics-spherical and cylindrical — and conversions
// between them.
//
// Cartesian is the hub of a star topology: every variant converts to
// and from it, which guarantees any-to-any convertibility in at most
// two hops. The spherical family adds direct shortcuts that skip the
// cartesian round trip.
//
// Representations are value types: conversions and transforms always
// return new instances. Constructors copy their component slices; a
// representation never aliases caller-owned arrays.
package repr

import (
	"errors"
	"fmt"
	"sort"
)

// ErrBroadcast indicates component arrays that cannot be broadcast to a
// common shape.
var ErrBroadcast = errors.New("repr: components cannot be broadcast")

// BroadcastError names the components that failed to broadcast.
type BroadcastError struct {
	Components []string
	Lengths    []int
}

func (e *BroadcastError) Error() string {
	return fmt.Sprintf("repr: components %v with lengths %v cannot be broadcast",
		e.Components, e.Lengths)
}

func (e *BroadcastError) Unwrap() error { return ErrBroadcast }

// Representation is a 3D point in some parametrization.
type Representation interface {
	// Name is the canonical lowercase registry name of the variant.
	Name() string
	// ToCartesian converts to the cartesian hub.
	ToCartesian() *Cartesian
	// Components lists the in-order component names.
	Components() []string

	SupportsShapeOps
}

// SupportsShapeOps is the shape trait shared by all representations.
// Shape is the common broadcast length of the components; a scalar
// representation has shape 1 and IsScalar true.
type SupportsShapeOps interface {
	Shape() int
	IsScalar() bool
}

// Descriptor describes a registered representation variant.
type Descriptor struct {
	Name          string
	Components    []string
	FromCartesian func(*Cartesian) (Representation, error)
}

var classes = make(map[string]Descriptor)

// Register adds a representation variant to the table. Registering a
// name twice is a fatal initialization-time error and panics.
func Register(d Descriptor) {
	if _, dup := classes[d.Name]; dup {
		panic(fmt.Sprintf("repr: representation %q already registered", d.Name))
	}
	classes[d.Name] = d
}

// Get resolves a variant descriptor by its canonical name.
func Get(name string) (Descriptor, error) {
	d, ok := classes[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("repr: unknown representation %q", name)
	}
	return d, nil
}

// Names lists the registered variant names, sorted.
func Names() []string {
	out := make([]string, 0, len(classes))
	for name := range classes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func init() {
	Register(Descriptor{
		Name:       "cartesian",
		Components: []string{"x", "y", "z"},
		FromCartesian: func(c *Cartesian) (Representation, error) {
			return c, nil
		},
	})
	Register(Descriptor{
		Name:       "unitspherical",
		Components: []string{"lon", "lat"},
		FromCartesian: func(c *Cartesian) (Representation, error) {
			return UnitSphericalFromCartesian(c)
		},
	})
	Register(Descriptor{
		Name:       "spherical",
		Components: []string{"lon", "lat", "distance"},
		FromCartesian: func(c *Cartesian) (Representation, error) {
			return SphericalFromCartesian(c)
		},
	})
	Register(Descriptor{
		Name:       "physicsspherical",
		Components: []string{"phi", "theta", "r"},
		FromCartesian: func(c *Cartesian) (Representation, error) {
			return PhysicsSphericalFromCartesian(c)
		},
	})
	Register(Descriptor{
		Name:       "cylindrical",
		Components: []string{"rho", "phi", "z"},
		FromCartesian: func(c *Cartesian) (Representation, error) {
			return CylindricalFromCartesian(c)
		},
	})
}

// RepresentAs converts a representation to the named variant. The
// identity conversion returns the receiver unchanged without copying.
// The spherical family converts directly; everything else goes through
// the cartesian hub.
func RepresentAs(r Representation, name string) (Representation, error) {
	if r.Name() == name {
		return r, nil
	}
	if direct, ok, err := shortcut(r, name); ok {
		return direct, err
	}
	d, err := Get(name)
	if err != nil {
		return nil, err
	}
	return d.FromCartesian(r.ToCartesian())
}

// shortcut handles the direct conversions within the spherical family,
// which avoid the numerically needless cartesian round trip.
func shortcut(r Representation, name string) (Representation, bool, error) {
	switch v := r.(type) {
	case *UnitSpherical:
		switch name {
		case "spherical":
			s, err := v.ToSpherical()
			return s, true, err
		case "physicsspherical":
			p, err := v.ToPhysicsSpherical()
			return p, true, err
		}
	case *Spherical:
		switch name {
		case "unitspherical":
			u, err := v.ToUnitSpherical()
			return u, true, err
		case "physicsspherical":
			p, err := v.ToPhysicsSpherical()
			return p, true, err
		}
	case *PhysicsSpherical:
		switch name {
		case "unitspherical":
			u, err := v.ToUnitSpherical()
			return u, true, err
		case "spherical":
			s, err := v.ToSpherical()
			return s, true, err
		}
	}
	return nil, false, nil
}
