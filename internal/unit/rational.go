package unit

import (
	"fmt"
	"math"
)

// Rational is an exact unit power. It is always kept reduced with a
// positive denominator.
type Rational struct {
	Num int
	Den int
}

// R builds a reduced rational. A zero denominator panics: powers come
// from code or from the parser, which never produces zero denominators.
func R(num, den int) Rational {
	if den == 0 {
		panic("unit: rational with zero denominator")
	}
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(abs(num), den)
	if g > 1 {
		num /= g
		den /= g
	}
	return Rational{Num: num, Den: den}
}

// RInt builds a whole-number power.
func RInt(n int) Rational {
	return Rational{Num: n, Den: 1}
}

func (r Rational) Add(other Rational) Rational {
	return R(r.Num*other.Den+other.Num*r.Den, r.Den*other.Den)
}

func (r Rational) Mul(other Rational) Rational {
	return R(r.Num*other.Num, r.Den*other.Den)
}

func (r Rational) Neg() Rational {
	return Rational{Num: -r.Num, Den: r.Den}
}

func (r Rational) IsZero() bool { return r.Num == 0 }

func (r Rational) IsOne() bool { return r.Num == 1 && r.Den == 1 }

func (r Rational) Float() float64 {
	return float64(r.Num) / float64(r.Den)
}

func (r Rational) String() string {
	if r.Den == 1 {
		return fmt.Sprintf("%d", r.Num)
	}
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// floatEq compares floats with a relative tolerance, so that scales that
// went through different multiplication orders still compare equal.
func floatEq(a, b float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	return diff <= 1e-12*math.Max(math.Abs(a), math.Abs(b))
}
