package unit

import (
	"errors"
	"testing"
)

func TestParseBasics(t *testing.T) {
	r := Builtin()

	tests := []struct {
		expr string
		want string // canonical equivalent, parsed independently
	}{
		{"m", "m"},
		{"km", "km"},
		{"m s", "m s"},
		{"m*s", "m s"},
		{"m.s", "m s"},
		{"m/s", "m / s"},
		{"m / s", "m / s"},
		{"m**2", "m2"},
		{"m^2", "m2"},
		{"m2", "m2"},
		{"m-2", "1 / m2"},
		{"m**-2", "1 / m2"},
		{"m(3/2)", "m(3/2)"},
		{"sqrt(m)", "m(1/2)"},
		{"sqrt(m2 s2)", "m s"},
		{"(m/s)**2", "m2 / s2"},
		{"km / (s m)", "km / (m s)"},
		{"/s", "1 / s"},
		{"m / s / s", "m / s2"},
	}

	for _, tt := range tests {
		got, err := r.Parse(tt.expr)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.expr, err)
			continue
		}
		want := r.MustParse(tt.want)
		if !Equal(got, want) {
			t.Errorf("Parse(%q) = %s, want %s", tt.expr, ToString(got), tt.want)
		}
	}
}

func TestParseEmptyIsDimensionless(t *testing.T) {
	r := Builtin()

	for _, expr := range []string{"", "   "} {
		got, err := r.Parse(expr)
		if err != nil {
			t.Fatalf("Parse(%q): %v", expr, err)
		}
		if !Equal(got, Dimensionless) {
			t.Errorf("Parse(%q) = %s, want dimensionless", expr, ToString(got))
		}
	}
}

func TestParseLeadingFactor(t *testing.T) {
	r := Builtin()

	tests := []struct {
		expr  string
		scale float64
	}{
		{"5 m", 5},
		{"5m", 5},
		{"-2.5 m", -2.5},
		{"1.5e3 m", 1500},
		{"10**3 m", 1000},
		{"10^3 m", 1000},
		{"10-3 m", 1e-3},
		{"10+2 m", 100},
		{"2 10**3 m", 2000},
		{"2 10-3 m", 2e-3},
		{"5 m2 / s2", 5},
	}

	for _, tt := range tests {
		got, err := r.Parse(tt.expr)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.expr, err)
			continue
		}
		d := got.Decompose()
		if !almostEq(d.Scale(), tt.scale, 1e-12) {
			t.Errorf("Parse(%q): scale = %g, want %g", tt.expr, d.Scale(), tt.scale)
		}
	}
}

func TestParseWholeNameShortCircuit(t *testing.T) {
	// A registered name wins over the grammar, even when the grammar
	// would read it differently.
	r := NewRegistry()
	if err := r.Register(NewIrreducible("m2", "weird", "m2alias")); err != nil {
		t.Fatal(err)
	}
	u, err := r.Parse("m2")
	if err != nil {
		t.Fatal(err)
	}
	n, ok := u.(*NamedUnit)
	if !ok || n.Name() != "m2" {
		t.Errorf("Parse(m2) = %v, want the registered named unit", u)
	}
}

func TestParseUnknownUnit(t *testing.T) {
	r := Builtin()

	tests := []struct {
		expr  string
		token string
		col   int
	}{
		{"foo", "foo", 0},
		{"m / foo", "foo", 4},
		{"km furlong", "furlong", 3},
	}

	for _, tt := range tests {
		_, err := r.Parse(tt.expr)
		if err == nil {
			t.Errorf("Parse(%q): expected error", tt.expr)
			continue
		}
		if !errors.Is(err, ErrUnknownUnit) {
			t.Errorf("Parse(%q): error %v does not wrap ErrUnknownUnit", tt.expr, err)
			continue
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("Parse(%q): error %T is not a ParseError", tt.expr, err)
			continue
		}
		if pe.Token != tt.token || pe.Col != tt.col {
			t.Errorf("Parse(%q): token %q at col %d, want %q at %d",
				tt.expr, pe.Token, pe.Col, tt.token, tt.col)
		}
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	r := Builtin()

	tests := []string{
		"m**",
		"m /",
		"sqrt(m",
		"sqrt m",
		"(m",
		"m)",
		"2 5 m",
		"m ? s",
		"*m",
	}

	for _, expr := range tests {
		_, err := r.Parse(expr)
		if err == nil {
			t.Errorf("Parse(%q): expected syntax error", expr)
			continue
		}
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("Parse(%q): error %v does not wrap ErrSyntax", expr, err)
		}
	}
}

func TestParseErrorMessage(t *testing.T) {
	r := Builtin()

	_, err := r.Parse("km / foo")
	if err == nil {
		t.Fatal("expected error")
	}
	want := `at col 5, "foo" is not a valid unit in "km / foo"`
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestParseRoundTrip(t *testing.T) {
	r := Builtin()

	exprs := []string{
		"m / s",
		"erg / (Angstrom cm2 s)",
		"5 m2 / s2",
		"km s",
		"m(3/2)",
		"1 / s2",
	}

	for _, expr := range exprs {
		u := r.MustParse(expr)
		rendered := ToString(u)
		back, err := r.Parse(rendered)
		if err != nil {
			t.Errorf("reparse of %q (%q): %v", expr, rendered, err)
			continue
		}
		if !Equal(u, back) {
			t.Errorf("%q: round trip %q is not Equal", expr, rendered)
		}
	}
}

func TestMustParsePanics(t *testing.T) {
	r := Builtin()
	defer func() {
		if recover() == nil {
			t.Error("expected panic from MustParse on bad input")
		}
	}()
	r.MustParse("not a unit ((")
}
