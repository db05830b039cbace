package repr

import (
	"errors"
	"math"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/davre/quanta/internal/quantity"
	"github.com/davre/quanta/internal/unit"
)

var reg = unit.Builtin()

func pc() unit.Unit { return reg.MustParse("pc") }

func TestRegistryNames(t *testing.T) {
	g := NewWithT(t)

	g.Expect(Names()).To(Equal([]string{
		"cartesian", "cylindrical", "physicsspherical", "spherical", "unitspherical",
	}))

	d, err := Get("spherical")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(d.Components).To(Equal([]string{"lon", "lat", "distance"}))

	_, err = Get("hyperbolic")
	g.Expect(err).To(HaveOccurred())
}

func TestRegisterDuplicatePanics(t *testing.T) {
	g := NewWithT(t)

	g.Expect(func() {
		Register(Descriptor{Name: "cartesian"})
	}).To(Panic())
}

func TestCartesianToSphericalScenarios(t *testing.T) {
	g := NewWithT(t)

	tests := []struct {
		x, y, z        float64
		lon, lat, dist float64 // degrees, degrees, pc
	}{
		{1, 0, 0, 0, 0, 1},
		{0, 1, 0, 90, 0, 1},
		{-1, 0, 0, 180, 0, 1},
		{0, 0, 1, 0, 90, 1},
		{0, 0, -2, 0, -90, 2},
		{1, 1, 0, 45, 0, math.Sqrt2},
	}

	for _, tt := range tests {
		c := CartesianScalar(tt.x, tt.y, tt.z, pc())
		s, err := SphericalFromCartesian(c)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(s.Lon()[0].WrapAt360().Degrees()).To(BeNumerically("~", math.Mod(tt.lon+360, 360), 1e-10),
			"lon of (%g, %g, %g)", tt.x, tt.y, tt.z)
		g.Expect(s.Lat()[0].Degrees()).To(BeNumerically("~", tt.lat, 1e-10))
		g.Expect(s.Distance().Value()).To(BeNumerically("~", tt.dist, 1e-12))
	}
}

func TestPhysicsSphericalToCartesian(t *testing.T) {
	g := NewWithT(t)

	// phi 0, theta 90 deg, r 1 points along +x.
	p, err := NewPhysicsSpherical(quantity.Degs(0), quantity.Degs(90),
		quantity.Scalar(1, pc()))
	g.Expect(err).NotTo(HaveOccurred())

	c := p.ToCartesian()
	x, y, z := c.At(0)
	g.Expect(x).To(BeNumerically("~", 1, 1e-12))
	g.Expect(y).To(BeNumerically("~", 0, 1e-12))
	g.Expect(z).To(BeNumerically("~", 0, 1e-12))

	// theta 0 points along +z.
	p, err = NewPhysicsSpherical(quantity.Degs(0), quantity.Degs(0),
		quantity.Scalar(1, pc()))
	g.Expect(err).NotTo(HaveOccurred())
	_, _, z = p.ToCartesian().At(0)
	g.Expect(z).To(BeNumerically("~", 1, 1e-12))
}

func TestPhysicsSphericalValidation(t *testing.T) {
	g := NewWithT(t)

	_, err := NewPhysicsSpherical(quantity.Degs(0), quantity.Degs(190),
		quantity.Scalar(1, pc()))
	g.Expect(err).To(HaveOccurred())

	// phi wraps into [0, 360).
	p, err := NewPhysicsSpherical(quantity.Degs(-90), quantity.Degs(90),
		quantity.Scalar(1, pc()))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(p.Phi()[0].Degrees()).To(BeNumerically("~", 270, 1e-10))
}

func TestSphericalRoundTripGrid(t *testing.T) {
	g := NewWithT(t)

	for lon := 0.0; lon < 360; lon += 10 {
		for lat := -80.0; lat <= 80; lat += 10 {
			s, err := NewSpherical(quantity.Degs(lon), quantity.Degs(lat),
				quantity.Scalar(2.5, pc()))
			g.Expect(err).NotTo(HaveOccurred())

			back, err := SphericalFromCartesian(s.ToCartesian())
			g.Expect(err).NotTo(HaveOccurred())

			g.Expect(back.Lon()[0].WrapAt360().Degrees()).To(BeNumerically("~", lon, 1e-10),
				"lon %g lat %g", lon, lat)
			g.Expect(back.Lat()[0].Degrees()).To(BeNumerically("~", lat, 1e-10))
			g.Expect(back.Distance().Value()).To(BeNumerically("~", 2.5, 1e-12))
		}
	}
}

func TestDirectShortcutsMatchHub(t *testing.T) {
	g := NewWithT(t)

	for lon := 0.0; lon < 360; lon += 30 {
		for lat := -60.0; lat <= 60; lat += 30 {
			s, err := NewSpherical(quantity.Degs(lon), quantity.Degs(lat),
				quantity.Scalar(1.5, pc()))
			g.Expect(err).NotTo(HaveOccurred())

			direct, err := s.ToPhysicsSpherical()
			g.Expect(err).NotTo(HaveOccurred())

			viaHub, err := PhysicsSphericalFromCartesian(s.ToCartesian())
			g.Expect(err).NotTo(HaveOccurred())

			g.Expect(direct.Phi()[0].Degrees()).To(BeNumerically("~",
				viaHub.Phi()[0].Degrees(), 1e-10))
			g.Expect(direct.Theta()[0].Degrees()).To(BeNumerically("~",
				viaHub.Theta()[0].Degrees(), 1e-10))
			g.Expect(direct.R().Value()).To(BeNumerically("~", viaHub.R().Value(), 1e-12))
		}
	}
}

func TestUnitSphericalShortcutMatchesHub(t *testing.T) {
	g := NewWithT(t)

	for lon := 0.0; lon <= 350; lon += 10 {
		for lat := -80.0; lat <= 80; lat += 10 {
			u, err := NewUnitSpherical(quantity.Degs(lon), quantity.Degs(lat))
			g.Expect(err).NotTo(HaveOccurred())

			direct, err := u.ToPhysicsSpherical()
			g.Expect(err).NotTo(HaveOccurred())

			viaHub, err := PhysicsSphericalFromCartesian(u.ToCartesian())
			g.Expect(err).NotTo(HaveOccurred())

			g.Expect(direct.Phi()[0].Degrees()).To(BeNumerically("~",
				viaHub.Phi()[0].Degrees(), 1e-10), "lon %g lat %g", lon, lat)
			g.Expect(direct.Theta()[0].Degrees()).To(BeNumerically("~",
				viaHub.Theta()[0].Degrees(), 1e-10))
			g.Expect(direct.R().Value()).To(BeNumerically("~", viaHub.R().Value(), 1e-12))
		}
	}
}

func TestRepresentAs(t *testing.T) {
	g := NewWithT(t)

	s, err := NewSpherical(quantity.Degs(30), quantity.Degs(45),
		quantity.Scalar(10, pc()))
	g.Expect(err).NotTo(HaveOccurred())

	// Identity returns the receiver.
	same, err := RepresentAs(s, "spherical")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(same).To(BeIdenticalTo(Representation(s)))

	// Through the hub and back.
	cyl, err := RepresentAs(s, "cylindrical")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cyl.Name()).To(Equal("cylindrical"))

	back, err := RepresentAs(cyl, "spherical")
	g.Expect(err).NotTo(HaveOccurred())
	sb := back.(*Spherical)
	g.Expect(sb.Lon()[0].Degrees()).To(BeNumerically("~", 30, 1e-10))
	g.Expect(sb.Lat()[0].Degrees()).To(BeNumerically("~", 45, 1e-10))
	g.Expect(sb.Distance().Value()).To(BeNumerically("~", 10, 1e-10))

	_, err = RepresentAs(s, "nope")
	g.Expect(err).To(HaveOccurred())
}

func TestUnitSphericalDropsDistance(t *testing.T) {
	g := NewWithT(t)

	s, err := NewSpherical(quantity.Degs(10, 20), quantity.Degs(-5, 5),
		quantity.New([]float64{4, 8}, pc()))
	g.Expect(err).NotTo(HaveOccurred())

	u, err := s.ToUnitSpherical()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(u.Shape()).To(Equal(2))
	g.Expect(u.Lon()[1].Degrees()).To(BeNumerically("~", 20, 1e-12))

	// Promoting back gains unit distance.
	promoted, err := u.ToSpherical()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(promoted.Distance().Value()).To(Equal(1.0))
}

func TestCylindricalRoundTrip(t *testing.T) {
	g := NewWithT(t)

	cyl, err := NewCylindrical(quantity.New([]float64{1, 2}, pc()),
		quantity.Degs(45, 120), quantity.New([]float64{0.5, -1}, pc()))
	g.Expect(err).NotTo(HaveOccurred())

	back, err := CylindricalFromCartesian(cyl.ToCartesian())
	g.Expect(err).NotTo(HaveOccurred())

	for i := 0; i < 2; i++ {
		g.Expect(back.Rho().At(i)).To(BeNumerically("~", cyl.Rho().At(i), 1e-12))
		g.Expect(back.Phi()[i].WrapAt360().Degrees()).To(BeNumerically("~",
			cyl.Phi()[i].WrapAt360().Degrees(), 1e-10))
		g.Expect(back.Z().At(i)).To(BeNumerically("~", cyl.Z().At(i), 1e-12))
	}
}

func TestCartesianUnitNormalization(t *testing.T) {
	g := NewWithT(t)

	km := reg.MustParse("km")
	m := reg.MustParse("m")

	c, err := NewCartesian(quantity.Scalar(1, km), quantity.Scalar(500, m),
		quantity.Scalar(0, m))
	g.Expect(err).NotTo(HaveOccurred())

	_, y, _ := c.At(0)
	g.Expect(y).To(Equal(0.5))
	g.Expect(unit.ToString(c.Unit())).To(Equal("km"))

	_, err = NewCartesian(quantity.Scalar(1, km), quantity.Scalar(1, reg.MustParse("s")),
		quantity.Scalar(0, km))
	g.Expect(err).To(HaveOccurred())
}

func TestBroadcasting(t *testing.T) {
	g := NewWithT(t)

	// Scalar distance stretches over array angles.
	s, err := NewSpherical(quantity.Degs(0, 90, 180), quantity.Degs(0, 0, 0),
		quantity.Scalar(3, pc()))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(s.Shape()).To(Equal(3))
	g.Expect(s.IsScalar()).To(BeFalse())

	// Mismatched lengths fail with a BroadcastError naming components.
	_, err = NewSpherical(quantity.Degs(0, 90), quantity.Degs(0, 0, 0),
		quantity.Scalar(3, pc()))
	g.Expect(err).To(HaveOccurred())
	g.Expect(errors.Is(err, ErrBroadcast)).To(BeTrue())
	var be *BroadcastError
	g.Expect(errors.As(err, &be)).To(BeTrue())
	g.Expect(be.Components).To(Equal([]string{"lon", "lat", "distance"}))
}

func TestCartesianTransform(t *testing.T) {
	g := NewWithT(t)

	// Rotate +x to +y about z.
	rot := [3][3]float64{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}}
	c := CartesianScalar(1, 0, 0, pc())
	out := c.Transform(rot)

	x, y, z := out.At(0)
	g.Expect(x).To(BeNumerically("~", 0, 1e-15))
	g.Expect(y).To(BeNumerically("~", 1, 1e-15))
	g.Expect(z).To(BeNumerically("~", 0, 1e-15))
}

func TestPoleUsesAtan2(t *testing.T) {
	g := NewWithT(t)

	// Exactly at the pole the latitude is 90 and lon collapses to 0.
	c := CartesianScalar(0, 0, 5, pc())
	s, err := SphericalFromCartesian(c)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(s.Lat()[0].Degrees()).To(BeNumerically("~", 90, 1e-12))
	g.Expect(s.Lon()[0].Radians()).To(Equal(0.0))

	p, err := PhysicsSphericalFromCartesian(c)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(p.Theta()[0].Degrees()).To(BeNumerically("~", 0, 1e-12))
}
