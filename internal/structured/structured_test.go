package structured

import (
	"errors"
	"math"
	"testing"

	"github.com/davre/quanta/internal/unit"
)

func mustNew(t *testing.T, parts []Part, names []Name) *StructuredUnit {
	t.Helper()
	s, err := New(parts, names)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewAutoNames(t *testing.T) {
	r := unit.Builtin()

	s := mustNew(t, []Part{r.MustParse("m"), r.MustParse("s")}, nil)
	keys := s.Keys()
	if len(keys) != 2 || keys[0] != "f0" || keys[1] != "f1" {
		t.Errorf("keys = %v, want [f0 f1]", keys)
	}
}

func TestNewLengthMismatch(t *testing.T) {
	r := unit.Builtin()

	_, err := New([]Part{r.MustParse("m")}, []Name{N("a"), N("b")})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("got %v, want ErrLengthMismatch", err)
	}
}

func TestNestedNames(t *testing.T) {
	r := unit.Builtin()

	inner := mustNew(t, []Part{r.MustParse("deg"), r.MustParse("deg")}, nil)
	outer := mustNew(t, []Part{inner, r.MustParse("pc")},
		[]Name{Group("sky", N("lon"), N("lat")), N("distance")})

	p, ok := outer.Field("sky")
	if !ok {
		t.Fatal("field sky missing")
	}
	nested, ok := p.(*StructuredUnit)
	if !ok {
		t.Fatal("sky is not structured")
	}
	if keys := nested.Keys(); keys[0] != "lon" || keys[1] != "lat" {
		t.Errorf("nested keys = %v", keys)
	}

	names := NamesOf(outer)
	if names[0].Key != "sky" || len(names[0].Sub) != 2 || names[1].Key != "distance" {
		t.Errorf("NamesOf = %v", names)
	}
}

func TestWrapDegenerate(t *testing.T) {
	r := unit.Builtin()
	m := r.MustParse("m")

	got, err := Wrap(m, nil)
	if err != nil {
		t.Fatal(err)
	}
	if u, ok := got.(unit.Unit); !ok || !unit.Equal(u, m) {
		t.Errorf("Wrap(m, nil) = %v, want the plain unit back", got)
	}

	got, err = Wrap(m, []Name{N("x")})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got.(*StructuredUnit); !ok {
		t.Errorf("Wrap(m, names) = %T, want *StructuredUnit", got)
	}
}

func TestSIDistributesOverFields(t *testing.T) {
	r := unit.Builtin()

	s := mustNew(t, []Part{r.MustParse("km"), r.MustParse("g")}, nil)
	si := s.SI()

	for i := 0; i < s.Len(); i++ {
		want := unit.SI(s.At(i).(unit.Unit))
		got := si.At(i).(unit.Unit)
		if !unit.Equal(got, want) {
			t.Errorf("field %d: SI = %s, want %s", i, got, want)
		}
	}
	if si.Keys()[0] != s.Keys()[0] {
		t.Error("SI must keep field names")
	}
}

func TestToConvertsTuples(t *testing.T) {
	r := unit.Builtin()

	from := mustNew(t, []Part{r.MustParse("km"), r.MustParse("km/s")},
		[]Name{N("p"), N("v")})
	to := mustNew(t, []Part{r.MustParse("m"), r.MustParse("m/s")},
		[]Name{N("p"), N("v")})

	out, err := from.To(to, Tuple{1.0, 2.0})
	if err != nil {
		t.Fatal(err)
	}
	if out[0].(float64) != 1000 || out[1].(float64) != 2000 {
		t.Errorf("out = %v, want [1000 2000]", out)
	}
}

func TestToNestedTuples(t *testing.T) {
	r := unit.Builtin()

	inner := mustNew(t, []Part{r.MustParse("deg"), r.MustParse("deg")}, nil)
	from := mustNew(t, []Part{inner, r.MustParse("pc")}, nil)

	innerRad := mustNew(t, []Part{r.MustParse("rad"), r.MustParse("rad")}, nil)
	to := mustNew(t, []Part{innerRad, r.MustParse("pc")}, nil)

	out, err := from.To(to, Tuple{Tuple{180.0, 90.0}, 1.0})
	if err != nil {
		t.Fatal(err)
	}
	sky := out[0].(Tuple)
	if math.Abs(sky[0].(float64)-math.Pi) > 1e-12 {
		t.Errorf("lon = %v, want pi", sky[0])
	}
	if out[1].(float64) != 1 {
		t.Errorf("distance = %v, want 1", out[1])
	}
}

func TestToArityMismatch(t *testing.T) {
	r := unit.Builtin()

	from := mustNew(t, []Part{r.MustParse("m"), r.MustParse("s")}, nil)
	to := mustNew(t, []Part{r.MustParse("m"), r.MustParse("s")}, nil)

	_, err := from.To(to, Tuple{1.0})
	if !errors.Is(err, ErrArityMismatch) {
		t.Errorf("got %v, want ErrArityMismatch", err)
	}

	short := mustNew(t, []Part{r.MustParse("m")}, nil)
	if _, err := from.ConverterTo(short); !errors.Is(err, ErrArityMismatch) {
		t.Errorf("got %v, want ErrArityMismatch", err)
	}
}

func TestEqualIgnoresNames(t *testing.T) {
	r := unit.Builtin()

	a := mustNew(t, []Part{r.MustParse("m"), r.MustParse("s")},
		[]Name{N("x"), N("t")})
	b := mustNew(t, []Part{r.MustParse("m"), r.MustParse("s")},
		[]Name{N("position"), N("time")})
	c := mustNew(t, []Part{r.MustParse("km"), r.MustParse("s")},
		[]Name{N("x"), N("t")})

	if !a.Equal(b) {
		t.Error("same parts under different names must compare equal")
	}
	if a.Equal(c) {
		t.Error("different parts must not compare equal")
	}
}

func TestParseRoundTrip(t *testing.T) {
	r := unit.Builtin()

	tests := []*StructuredUnit{
		mustNew(t, []Part{r.MustParse("m"), r.MustParse("s")}, nil),
		mustNew(t, []Part{r.MustParse("m")}, nil),
		mustNew(t, []Part{
			mustNew(t, []Part{r.MustParse("deg"), r.MustParse("deg")}, nil),
			r.MustParse("pc"),
		}, nil),
		mustNew(t, []Part{r.MustParse("km/s"), r.MustParse("(m/s)**2")}, nil),
	}

	for _, s := range tests {
		got, err := Parse(r, s.String())
		if err != nil {
			t.Errorf("Parse(%q): %v", s.String(), err)
			continue
		}
		su, ok := got.(*StructuredUnit)
		if !ok {
			t.Errorf("Parse(%q) = %T, want *StructuredUnit", s.String(), got)
			continue
		}
		if !su.Equal(s) {
			t.Errorf("Parse(%q) = %s, round trip lost", s.String(), su)
		}
	}
}

func TestParsePlainFallthrough(t *testing.T) {
	r := unit.Builtin()

	got, err := Parse(r, "(m/s)**2")
	if err != nil {
		t.Fatal(err)
	}
	u, ok := got.(unit.Unit)
	if !ok {
		t.Fatalf("Parse = %T, want a plain unit", got)
	}
	if !unit.Equal(u, r.MustParse("m2/s2")) {
		t.Errorf("Parse((m/s)**2) = %s", u)
	}

	if _, err := Parse(r, "(m, nope)"); err == nil {
		t.Error("unknown field unit must fail")
	}
}

func TestIsEquivalent(t *testing.T) {
	r := unit.Builtin()

	a := mustNew(t, []Part{r.MustParse("km"), r.MustParse("h")}, nil)
	b := mustNew(t, []Part{r.MustParse("m"), r.MustParse("s")}, nil)
	c := mustNew(t, []Part{r.MustParse("m"), r.MustParse("K")}, nil)

	if !a.IsEquivalent(b) {
		t.Error("(km, h) must be equivalent to (m, s)")
	}
	if a.IsEquivalent(c) {
		t.Error("(km, h) must not be equivalent to (m, K)")
	}
}

func TestString(t *testing.T) {
	r := unit.Builtin()

	two := mustNew(t, []Part{r.MustParse("m"), r.MustParse("s")}, nil)
	if got := two.String(); got != "(m, s)" {
		t.Errorf("String() = %q, want %q", got, "(m, s)")
	}

	one := mustNew(t, []Part{r.MustParse("m")}, nil)
	if got := one.String(); got != "(m,)" {
		t.Errorf("String() = %q, want %q", got, "(m,)")
	}
}
