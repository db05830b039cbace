package logunit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davre/quanta/internal/quantity"
	"github.com/davre/quanta/internal/unit"
)

func TestFunctionalConvert(t *testing.T) {
	tests := []struct {
		from, to Functional
		in, out  float64
	}{
		{DexUnit, DexUnit, 3, 3},
		{DecibelUnit, DexUnit, 30, 3},
		{DexUnit, DecibelUnit, 3, 30},
		{MagUnit, DexUnit, -2.5, 1},
		{DexUnit, MagUnit, 1, -2.5},
		{DecibelUnit, MagUnit, 10, -2.5},
	}

	for _, tt := range tests {
		got, err := tt.from.ConvertTo(tt.to, tt.in)
		require.NoError(t, err, "%s -> %s", tt.from, tt.to)
		assert.InDelta(t, tt.out, got, 1e-12, "%g %s -> %s", tt.in, tt.from, tt.to)
	}
}

func TestLogUnitString(t *testing.T) {
	r := unit.Builtin()

	assert.Equal(t, "mag(ct / s)", Mag(r.MustParse("ct/s")).String())
	assert.Equal(t, "dex", Dex(nil).String())
	assert.Equal(t, "dB", Decibel(unit.Dimensionless).String())
}

func TestFromToPhysical(t *testing.T) {
	r := unit.Builtin()
	mag := Mag(r.MustParse("Jy"))

	v := mag.FromPhysical(100)
	assert.InDelta(t, -5, v, 1e-12)
	assert.InDelta(t, 100, mag.ToPhysical(v), 1e-9)

	dex := Dex(nil)
	assert.InDelta(t, 3, dex.FromPhysical(1000), 1e-12)
}

func TestLogUnitAddMultipliesPhysical(t *testing.T) {
	r := unit.Builtin()

	sum, err := Mag(r.MustParse("ct/s")).Add(Mag(r.MustParse("s")))
	require.NoError(t, err)
	assert.True(t, unit.Equal(sum.PhysicalUnit(), r.MustParse("ct")),
		"physical unit = %s", sum.PhysicalUnit())

	diff, err := Mag(r.MustParse("ct/s")).Sub(Mag(r.MustParse("ct/s")))
	require.NoError(t, err)
	assert.True(t, unit.Equal(diff.PhysicalUnit(), unit.Dimensionless))
}

func TestLogUnitAddFamilies(t *testing.T) {
	r := unit.Builtin()

	// mag and dB share the log10 family, so they combine; the result
	// keeps the receiver's functional unit.
	sum, err := Mag(r.MustParse("Jy")).Add(Decibel(r.MustParse("Jy")))
	require.NoError(t, err)
	assert.Equal(t, "mag", sum.FunctionalUnit().Name())

	// A foreign family refuses to combine.
	ln := Functional{name: "ln", family: "loge", toDex: 0.4342944819032518}
	_, err = Mag(r.MustParse("Jy")).Add(NewLogUnit(ln, r.MustParse("s")))
	assert.ErrorIs(t, err, ErrIncompatible)
}

func TestLogUnitConverterScaleOffset(t *testing.T) {
	r := unit.Builtin()

	// mag(Jy) -> mag(mJy) shifts by -2.5 log10(1000) = -7.5.
	conv, err := Mag(r.MustParse("Jy")).ConverterTo(Mag(r.MustParse("mJy")))
	require.NoError(t, err)
	assert.InDelta(t, -2.5, conv(5), 1e-12)

	// dB -> dex of the same physical unit is a pure rescale.
	conv, err = Decibel(r.MustParse("W")).ConverterTo(Dex(r.MustParse("W")))
	require.NoError(t, err)
	assert.InDelta(t, 3, conv(30), 1e-12)
}

func TestMagnitudeQuantity(t *testing.T) {
	r := unit.Builtin()

	m := Magnitude(quantity.Scalar(10, r.MustParse("ct/s")))
	assert.InDelta(t, -2.5, m.Value(), 1e-12)
	assert.Equal(t, "mag(ct / s)", m.Unit().String())

	back := m.ToPhysical()
	assert.InDelta(t, 10, back.Value(), 1e-9)
	assert.True(t, unit.Equal(back.Unit(), r.MustParse("ct/s")))
}

func TestLogQuantitySubGivesDimensionlessRatio(t *testing.T) {
	r := unit.Builtin()

	bright := Magnitude(quantity.Scalar(100, r.MustParse("Jy")))
	faint := Magnitude(quantity.Scalar(1, r.MustParse("Jy")))

	d, err := bright.Sub(faint)
	require.NoError(t, err)
	assert.InDelta(t, -5, d.Value(), 1e-12)
	assert.True(t, unit.Equal(d.PhysicalUnit(), unit.Dimensionless))

	ratio := d.ToPhysical()
	assert.InDelta(t, 100, ratio.Value(), 1e-9)
}

func TestLogQuantityAddArrays(t *testing.T) {
	r := unit.Builtin()

	rates := Magnitude(quantity.New([]float64{1, 10, 100}, r.MustParse("ct/s")))
	exposure := Magnitude(quantity.Scalar(100, r.MustParse("s")))

	counts, err := rates.Add(exposure)
	require.NoError(t, err)
	require.Equal(t, 3, counts.Len())
	assert.True(t, unit.Equal(counts.Unit().PhysicalUnit(), r.MustParse("ct")))

	phys := counts.ToPhysical()
	want := []float64{100, 1000, 10000}
	for i, w := range want {
		assert.InDelta(t, w, phys.Values()[i], 1e-6)
	}
}

func TestLogQuantityTo(t *testing.T) {
	r := unit.Builtin()

	q := ScalarLog(5, Mag(r.MustParse("Jy")))
	got, err := q.To(Mag(r.MustParse("mJy")))
	require.NoError(t, err)
	assert.InDelta(t, -2.5, got.Value(), 1e-12)

	// Round trip.
	back, err := got.To(Mag(r.MustParse("Jy")))
	require.NoError(t, err)
	assert.InDelta(t, 5, back.Value(), 1e-12)
}

func TestLogQuantitySubFrom(t *testing.T) {
	r := unit.Builtin()

	a := ScalarLog(3, Dex(r.MustParse("m")))
	b := ScalarLog(5, Dex(r.MustParse("m2")))

	// b - a: physical m2 / m = m.
	d, err := a.SubFrom(b)
	require.NoError(t, err)
	assert.InDelta(t, 2, d.Value(), 1e-12)
	assert.True(t, unit.Equal(d.PhysicalUnit(), r.MustParse("m")))
}

func TestABAndSTZeroPoints(t *testing.T) {
	r := unit.Builtin()

	// The AB zero point is 3631 Jy to within a few parts in 1e4.
	jy, err := unit.To(ABZero(r), r.MustParse("Jy"), 1)
	require.NoError(t, err)
	assert.InDelta(t, 3630.78, jy, 0.01)

	// ST zero point in cgs: 3.631e-9 erg / (s cm2 Angstrom).
	cgs, err := unit.To(STZero(r), r.MustParse("erg / (s cm2 Angstrom)"), 1)
	require.NoError(t, err)
	assert.InDelta(t, 3.6307805e-9, cgs, 1e-13)

	// A source at the zero point flux has AB magnitude 0.
	flux := quantity.Scalar(3630.7805477010025, r.MustParse("Jy"))
	conv, err := Mag(r.MustParse("Jy")).ConverterTo(ABMag(r))
	require.NoError(t, err)
	mag := Magnitude(flux)
	assert.InDelta(t, 0, conv(mag.Value()), 1e-6)
}

func TestLogUnitNeg(t *testing.T) {
	r := unit.Builtin()

	n := Mag(r.MustParse("s")).Neg()
	assert.True(t, unit.Equal(n.PhysicalUnit(), r.MustParse("1/s")))
	// Negation flips the functional sign: -mag of x is mag of 1/x.
	assert.InDelta(t, 2.5, n.FromPhysical(10), 1e-12)
}
