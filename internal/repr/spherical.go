package repr

import (
	"fmt"
	"math"

	"github.com/davre/quanta/internal/quantity"
	"github.com/davre/quanta/internal/unit"
)

// UnitSpherical represents points on the unit sphere: longitude and
// latitude, no distance.
type UnitSpherical struct {
	lon, lat []quantity.Angle
	n        int
}

// NewUnitSpherical builds a unit-sphere representation, broadcasting
// lon and lat to a common length. The slices are copied.
func NewUnitSpherical(lon, lat []quantity.Angle) (*UnitSpherical, error) {
	n, err := quantity.BroadcastLen(len(lon), len(lat))
	if err != nil {
		return nil, &BroadcastError{Components: []string{"lon", "lat"},
			Lengths: []int{len(lon), len(lat)}}
	}
	return &UnitSpherical{lon: copyAngles(lon), lat: copyAngles(lat), n: n}, nil
}

func (u *UnitSpherical) Name() string { return "unitspherical" }

func (u *UnitSpherical) Components() []string { return []string{"lon", "lat"} }

func (u *UnitSpherical) Shape() int { return u.n }

func (u *UnitSpherical) IsScalar() bool { return u.n == 1 }

// Lon returns the longitudes.
func (u *UnitSpherical) Lon() []quantity.Angle { return u.lon }

// Lat returns the latitudes.
func (u *UnitSpherical) Lat() []quantity.Angle { return u.lat }

func (u *UnitSpherical) lonAt(i int) quantity.Angle { return angleAt(u.lon, i) }

func (u *UnitSpherical) latAt(i int) quantity.Angle { return angleAt(u.lat, i) }

func (u *UnitSpherical) ToCartesian() *Cartesian {
	xs := make([]float64, u.n)
	ys := make([]float64, u.n)
	zs := make([]float64, u.n)
	for i := 0; i < u.n; i++ {
		lon, lat := u.lonAt(i), u.latAt(i)
		xs[i] = lat.Cos() * lon.Cos()
		ys[i] = lat.Cos() * lon.Sin()
		zs[i] = lat.Sin()
	}
	c, _ := NewCartesian(quantity.New(xs, unit.Dimensionless),
		quantity.New(ys, unit.Dimensionless), quantity.New(zs, unit.Dimensionless))
	return c
}

// UnitSphericalFromCartesian recovers lon/lat with atan2, dropping the
// radius. The branch range of lon is (-pi, pi].
func UnitSphericalFromCartesian(c *Cartesian) (*UnitSpherical, error) {
	lon := make([]quantity.Angle, c.n)
	lat := make([]quantity.Angle, c.n)
	for i := 0; i < c.n; i++ {
		x, y, z := c.At(i)
		s := math.Hypot(x, y)
		lon[i] = quantity.Rad(math.Atan2(y, x))
		lat[i] = quantity.Rad(math.Atan2(z, s))
	}
	return NewUnitSpherical(lon, lat)
}

// ToSpherical is the direct shortcut: same angles, unit distance.
func (u *UnitSpherical) ToSpherical() (*Spherical, error) {
	return NewSpherical(u.lon, u.lat, quantity.Scalar(1, unit.Dimensionless))
}

// ToPhysicsSpherical is the direct shortcut: phi is lon, theta the
// colatitude, unit radius.
func (u *UnitSpherical) ToPhysicsSpherical() (*PhysicsSpherical, error) {
	phi := make([]quantity.Angle, u.n)
	theta := make([]quantity.Angle, u.n)
	for i := 0; i < u.n; i++ {
		phi[i] = u.lonAt(i)
		theta[i] = quantity.Rad(math.Pi/2 - u.latAt(i).Radians())
	}
	return NewPhysicsSpherical(phi, theta, quantity.Scalar(1, unit.Dimensionless))
}

func (u *UnitSpherical) String() string {
	if u.IsScalar() {
		return fmt.Sprintf("unitspherical (lon, lat) = (%s, %s)", u.lon[0], u.lat[0])
	}
	return fmt.Sprintf("unitspherical (lon, lat), shape %d", u.n)
}

// Spherical represents points in full spherical coordinates with the
// astronomical convention: latitude measured from the equator.
type Spherical struct {
	lon, lat []quantity.Angle
	distance quantity.Quantity
	n        int
}

// NewSpherical builds a spherical representation, broadcasting the
// components to a common length. The angle slices are copied.
func NewSpherical(lon, lat []quantity.Angle, distance quantity.Quantity) (*Spherical, error) {
	n, err := quantity.BroadcastLen(len(lon), len(lat), distance.Len())
	if err != nil {
		return nil, &BroadcastError{Components: []string{"lon", "lat", "distance"},
			Lengths: []int{len(lon), len(lat), distance.Len()}}
	}
	return &Spherical{lon: copyAngles(lon), lat: copyAngles(lat), distance: distance, n: n}, nil
}

func (s *Spherical) Name() string { return "spherical" }

func (s *Spherical) Components() []string { return []string{"lon", "lat", "distance"} }

func (s *Spherical) Shape() int { return s.n }

func (s *Spherical) IsScalar() bool { return s.n == 1 }

// Lon returns the longitudes.
func (s *Spherical) Lon() []quantity.Angle { return s.lon }

// Lat returns the latitudes.
func (s *Spherical) Lat() []quantity.Angle { return s.lat }

// Distance returns the distances from the origin.
func (s *Spherical) Distance() quantity.Quantity { return s.distance }

func (s *Spherical) ToCartesian() *Cartesian {
	xs := make([]float64, s.n)
	ys := make([]float64, s.n)
	zs := make([]float64, s.n)
	for i := 0; i < s.n; i++ {
		lon, lat := angleAt(s.lon, i), angleAt(s.lat, i)
		d := s.distance.At(i)
		xs[i] = d * lat.Cos() * lon.Cos()
		ys[i] = d * lat.Cos() * lon.Sin()
		zs[i] = d * lat.Sin()
	}
	u := s.distance.Unit()
	c, _ := NewCartesian(quantity.New(xs, u), quantity.New(ys, u), quantity.New(zs, u))
	return c
}

// SphericalFromCartesian recovers lon/lat/distance. hypot keeps the
// radius stable near the poles; atan2 keeps the branch correct in all
// quadrants.
func SphericalFromCartesian(c *Cartesian) (*Spherical, error) {
	lon := make([]quantity.Angle, c.n)
	lat := make([]quantity.Angle, c.n)
	dist := make([]float64, c.n)
	for i := 0; i < c.n; i++ {
		x, y, z := c.At(i)
		s := math.Hypot(x, y)
		lon[i] = quantity.Rad(math.Atan2(y, x))
		lat[i] = quantity.Rad(math.Atan2(z, s))
		dist[i] = math.Hypot(s, z)
	}
	return NewSpherical(lon, lat, quantity.New(dist, c.Unit()))
}

// ToUnitSpherical drops the distance.
func (s *Spherical) ToUnitSpherical() (*UnitSpherical, error) {
	return NewUnitSpherical(s.lon, s.lat)
}

// ToPhysicsSpherical converts latitude to colatitude directly.
func (s *Spherical) ToPhysicsSpherical() (*PhysicsSpherical, error) {
	phi := make([]quantity.Angle, s.n)
	theta := make([]quantity.Angle, s.n)
	for i := 0; i < s.n; i++ {
		phi[i] = angleAt(s.lon, i)
		theta[i] = quantity.Rad(math.Pi/2 - angleAt(s.lat, i).Radians())
	}
	return NewPhysicsSpherical(phi, theta, s.distance)
}

func (s *Spherical) String() string {
	if s.IsScalar() {
		return fmt.Sprintf("spherical (lon, lat, distance) = (%s, %s, %s)",
			s.lon[0], s.lat[0], s.distance)
	}
	return fmt.Sprintf("spherical (lon, lat, distance), shape %d", s.n)
}

// PhysicsSpherical represents points in spherical coordinates with the
// physics convention: theta measured from the pole. phi is wrapped to
// [0, 360) degrees and theta must lie within [0, 180] degrees.
type PhysicsSpherical struct {
	phi, theta []quantity.Angle
	r          quantity.Quantity
	n          int
}

// NewPhysicsSpherical builds a physics-convention spherical
// representation, broadcasting the components to a common length.
func NewPhysicsSpherical(phi, theta []quantity.Angle, r quantity.Quantity) (*PhysicsSpherical, error) {
	n, err := quantity.BroadcastLen(len(phi), len(theta), r.Len())
	if err != nil {
		return nil, &BroadcastError{Components: []string{"phi", "theta", "r"},
			Lengths: []int{len(phi), len(theta), r.Len()}}
	}
	wrapped := make([]quantity.Angle, len(phi))
	for i, p := range phi {
		wrapped[i] = p.WrapAt360()
	}
	for _, t := range theta {
		deg := t.Degrees()
		if deg < -1e-12 || deg > 180+1e-12 {
			return nil, fmt.Errorf("repr: inclination angle must be within 0 deg <= angle <= 180 deg, got %g deg", deg)
		}
	}
	return &PhysicsSpherical{phi: wrapped, theta: copyAngles(theta), r: r, n: n}, nil
}

func (p *PhysicsSpherical) Name() string { return "physicsspherical" }

func (p *PhysicsSpherical) Components() []string { return []string{"phi", "theta", "r"} }

func (p *PhysicsSpherical) Shape() int { return p.n }

func (p *PhysicsSpherical) IsScalar() bool { return p.n == 1 }

// Phi returns the azimuths.
func (p *PhysicsSpherical) Phi() []quantity.Angle { return p.phi }

// Theta returns the inclinations from the pole.
func (p *PhysicsSpherical) Theta() []quantity.Angle { return p.theta }

// R returns the radii.
func (p *PhysicsSpherical) R() quantity.Quantity { return p.r }

func (p *PhysicsSpherical) ToCartesian() *Cartesian {
	xs := make([]float64, p.n)
	ys := make([]float64, p.n)
	zs := make([]float64, p.n)
	for i := 0; i < p.n; i++ {
		phi, theta := angleAt(p.phi, i), angleAt(p.theta, i)
		d := p.r.At(i)
		xs[i] = d * theta.Sin() * phi.Cos()
		ys[i] = d * theta.Sin() * phi.Sin()
		zs[i] = d * theta.Cos()
	}
	u := p.r.Unit()
	c, _ := NewCartesian(quantity.New(xs, u), quantity.New(ys, u), quantity.New(zs, u))
	return c
}

// PhysicsSphericalFromCartesian recovers phi/theta/r; theta comes from
// atan2(hypot(x, y), z) so the pole is handled without a branch cut.
func PhysicsSphericalFromCartesian(c *Cartesian) (*PhysicsSpherical, error) {
	phi := make([]quantity.Angle, c.n)
	theta := make([]quantity.Angle, c.n)
	rs := make([]float64, c.n)
	for i := 0; i < c.n; i++ {
		x, y, z := c.At(i)
		s := math.Hypot(x, y)
		phi[i] = quantity.Rad(math.Atan2(y, x))
		theta[i] = quantity.Rad(math.Atan2(s, z))
		rs[i] = math.Hypot(s, z)
	}
	return NewPhysicsSpherical(phi, theta, quantity.New(rs, c.Unit()))
}

// ToSpherical converts colatitude back to latitude directly.
func (p *PhysicsSpherical) ToSpherical() (*Spherical, error) {
	lon := make([]quantity.Angle, p.n)
	lat := make([]quantity.Angle, p.n)
	for i := 0; i < p.n; i++ {
		lon[i] = angleAt(p.phi, i)
		lat[i] = quantity.Rad(math.Pi/2 - angleAt(p.theta, i).Radians())
	}
	return NewSpherical(lon, lat, p.r)
}

// ToUnitSpherical drops the radius.
func (p *PhysicsSpherical) ToUnitSpherical() (*UnitSpherical, error) {
	lon := make([]quantity.Angle, p.n)
	lat := make([]quantity.Angle, p.n)
	for i := 0; i < p.n; i++ {
		lon[i] = angleAt(p.phi, i)
		lat[i] = quantity.Rad(math.Pi/2 - angleAt(p.theta, i).Radians())
	}
	return NewUnitSpherical(lon, lat)
}

func (p *PhysicsSpherical) String() string {
	if p.IsScalar() {
		return fmt.Sprintf("physicsspherical (phi, theta, r) = (%s, %s, %s)",
			p.phi[0], p.theta[0], p.r)
	}
	return fmt.Sprintf("physicsspherical (phi, theta, r), shape %d", p.n)
}

func copyAngles(a []quantity.Angle) []quantity.Angle {
	out := make([]quantity.Angle, len(a))
	copy(out, a)
	return out
}

func angleAt(a []quantity.Angle, i int) quantity.Angle {
	if len(a) == 1 {
		return a[0]
	}
	return a[i]
}
