package unit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Parse turns a unit string in the generic grammar into a Unit. The
// grammar follows the FITS convention: products by whitespace, "*" or
// ".", division by "/", powers by "**", "^" or an adjacent number
// (m2, m-2, m(3/2)), parenthesized groups, sqrt(...), and an optional
// leading numeric factor (5, -2.5, 10**3).
//
// A string that is a single registered name short-circuits the grammar
// entirely; otherwise the grammar parser runs and its error, not the
// lookup failure, is what the caller sees.
func (r *Registry) Parse(s string) (Unit, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Dimensionless, nil
	}
	if u, ok := r.Lookup(trimmed); ok {
		return u, nil
	}
	toks, err := lexUnits(s)
	if err != nil {
		return nil, &ParseError{Expr: s, Col: err.col, Wrapped: ErrSyntax}
	}
	p := &unitParser{reg: r, expr: s, toks: toks}
	u, perr := p.parseMain()
	if perr != nil {
		return nil, perr
	}
	return u, nil
}

// MustParse is Parse, panicking on error. Intended for fixed strings.
func (r *Registry) MustParse(s string) Unit {
	u, err := r.Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokUnit
	tokUInt
	tokUFloat
	tokSign
	tokStar
	tokDoubleStar
	tokPeriod
	tokSlash
	tokCaret
	tokOpen
	tokClose
	tokSqrt
)

type token struct {
	kind tokKind
	text string
	ival int
	fval float64
	col  int
}

type lexError struct{ col int }

func (e *lexError) Error() string { return fmt.Sprintf("invalid character at col %d", e.col) }

func lexUnits(s string) ([]token, *lexError) {
	var toks []token
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '*':
			if i+1 < len(s) && s[i+1] == '*' {
				toks = append(toks, token{kind: tokDoubleStar, col: i})
				i += 2
			} else {
				toks = append(toks, token{kind: tokStar, col: i})
				i++
			}
		case c == '^':
			toks = append(toks, token{kind: tokCaret, col: i})
			i++
		case c == '/':
			toks = append(toks, token{kind: tokSlash, col: i})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokOpen, col: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokClose, col: i})
			i++
		case c == '+' || c == '-':
			if i+1 >= len(s) || !isDigit(s[i+1]) {
				return nil, &lexError{col: i}
			}
			sign := 1
			if c == '-' {
				sign = -1
			}
			toks = append(toks, token{kind: tokSign, ival: sign, col: i})
			i++
		case isDigit(c) || (c == '.' && i+1 < len(s) && isDigit(s[i+1])):
			tok, n := lexNumber(s, i)
			toks = append(toks, tok)
			i = n
		case c == '.':
			toks = append(toks, token{kind: tokPeriod, col: i})
			i++
		case isAlpha(c):
			start := i
			for i < len(s) && (isAlpha(s[i]) || s[i] == '_') {
				i++
			}
			word := s[start:i]
			if word == "sqrt" {
				toks = append(toks, token{kind: tokSqrt, col: start})
			} else {
				toks = append(toks, token{kind: tokUnit, text: word, col: start})
			}
		default:
			return nil, &lexError{col: i}
		}
	}
	toks = append(toks, token{kind: tokEOF, col: len(s)})
	return toks, nil
}

// lexNumber scans digits with an optional fraction and exponent. A
// number with neither is an integer token; a trailing bare "." is also
// treated as an integer, matching the FITS lexer.
func lexNumber(s string, start int) (token, int) {
	i := start
	hasDot, hasExp := false, false
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '.' {
		hasDot = true
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			hasExp = true
			i = j
			for i < len(s) && isDigit(s[i]) {
				i++
			}
		}
	}
	text := s[start:i]
	if !hasExp && (!hasDot || strings.HasSuffix(text, ".")) {
		ival, _ := strconv.Atoi(strings.TrimSuffix(text, "."))
		return token{kind: tokUInt, text: text, ival: ival, col: start}, i
	}
	fval, _ := strconv.ParseFloat(text, 64)
	return token{kind: tokUFloat, text: text, fval: fval, col: start}, i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

type unitParser struct {
	reg  *Registry
	expr string
	toks []token
	pos  int
}

func (p *unitParser) peek() token { return p.toks[p.pos] }

func (p *unitParser) peekAt(n int) token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *unitParser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *unitParser) syntaxErr(t token) *ParseError {
	return &ParseError{Expr: p.expr, Col: t.col, Wrapped: ErrSyntax}
}

func (p *unitParser) parseMain() (Unit, *ParseError) {
	factor := 1.0
	haveFactor := false
	if k := p.peek().kind; k == tokSign || k == tokUInt || k == tokUFloat {
		f, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		factor = f
		haveFactor = true
	}

	var result *Composite
	if p.peek().kind == tokSlash {
		// inverse unit: "/ s" means s**-1
		p.next()
		expr, err := p.parseUnitExpression()
		if err != nil {
			return nil, err
		}
		result = Pow(expr, RInt(-1))
	} else {
		prod, err := p.parseDivisionProduct()
		if err != nil {
			return nil, err
		}
		result = prod
	}

	if t := p.peek(); t.kind != tokEOF {
		return nil, p.syntaxErr(t)
	}
	if haveFactor {
		result = Scaled(factor, result)
	}
	return result, nil
}

// parseFactor handles the single leading numeric factor, including the
// FITS exponent forms "10**3", "10^3" and "2 10**3".
func (p *unitParser) parseFactor() (float64, *ParseError) {
	val, err := p.parseSignedNumber()
	if err != nil {
		return 0, err
	}
	switch p.peek().kind {
	case tokDoubleStar, tokCaret:
		p.next()
		exp, perr := p.parseNumericPower()
		if perr != nil {
			return 0, perr
		}
		return math.Pow(val, exp.Float()), nil
	case tokSign:
		exp, perr := p.parseSignedNumber2()
		if perr != nil {
			return 0, perr
		}
		return math.Pow(val, exp), nil
	case tokUInt:
		// "2 10**3" / "2 10-3": a second integer must carry an exponent.
		if k := p.peekAt(1).kind; k != tokSign && k != tokDoubleStar && k != tokCaret {
			return 0, p.syntaxErr(p.peek())
		}
		base := float64(p.next().ival)
		switch p.peek().kind {
		case tokSign:
			exp, perr := p.parseSignedNumber2()
			if perr != nil {
				return 0, perr
			}
			return val * math.Pow(base, exp), nil
		case tokDoubleStar, tokCaret:
			p.next()
			exp, perr := p.parseNumericPower()
			if perr != nil {
				return 0, perr
			}
			return val * math.Pow(base, exp.Float()), nil
		default:
			return 0, p.syntaxErr(p.peek())
		}
	}
	return val, nil
}

func (p *unitParser) parseSignedNumber() (float64, *ParseError) {
	sign := 1.0
	if p.peek().kind == tokSign {
		sign = float64(p.next().ival)
	}
	switch t := p.next(); t.kind {
	case tokUInt:
		return sign * float64(t.ival), nil
	case tokUFloat:
		return sign * t.fval, nil
	default:
		return 0, p.syntaxErr(t)
	}
}

// parseSignedNumber2 requires an explicit sign (the "signed_int" rule).
func (p *unitParser) parseSignedNumber2() (float64, *ParseError) {
	t := p.next()
	if t.kind != tokSign {
		return 0, p.syntaxErr(t)
	}
	n := p.next()
	if n.kind != tokUInt {
		return 0, p.syntaxErr(n)
	}
	return float64(t.ival) * float64(n.ival), nil
}

// parseDivisionProduct parses a product with any number of trailing
// "/ expr" divisions.
func (p *unitParser) parseDivisionProduct() (*Composite, *ParseError) {
	result, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokSlash {
		p.next()
		expr, derr := p.parseUnitExpression()
		if derr != nil {
			return nil, derr
		}
		result = Div(result, expr)
	}
	return result, nil
}

func (p *unitParser) parseProduct() (*Composite, *ParseError) {
	result, err := p.parseUnitExpression()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokStar, tokPeriod:
			p.next()
			expr, perr := p.parseUnitExpression()
			if perr != nil {
				return nil, perr
			}
			result = Mul(result, expr)
		case tokUnit, tokSqrt:
			expr, perr := p.parseUnitExpression()
			if perr != nil {
				return nil, perr
			}
			result = Mul(result, expr)
		case tokOpen:
			// A parenthesized group adjacent to a unit is a product;
			// numeric parens were already consumed as powers.
			expr, perr := p.parseUnitExpression()
			if perr != nil {
				return nil, perr
			}
			result = Mul(result, expr)
		default:
			return result, nil
		}
	}
}

func (p *unitParser) parseUnitExpression() (*Composite, *ParseError) {
	switch t := p.peek(); t.kind {
	case tokSqrt:
		p.next()
		if open := p.next(); open.kind != tokOpen {
			return nil, p.syntaxErr(open)
		}
		inner, err := p.parseDivisionProduct()
		if err != nil {
			return nil, err
		}
		if cl := p.next(); cl.kind != tokClose {
			return nil, p.syntaxErr(cl)
		}
		return Pow(inner, R(1, 2)), nil
	case tokOpen:
		p.next()
		inner, err := p.parseDivisionProduct()
		if err != nil {
			return nil, err
		}
		if cl := p.next(); cl.kind != tokClose {
			return nil, p.syntaxErr(cl)
		}
		return p.applyPowerSuffix(inner)
	case tokUnit:
		p.next()
		named, ok := p.reg.Lookup(t.text)
		if !ok {
			return nil, &ParseError{Expr: p.expr, Col: t.col, Token: t.text, Wrapped: ErrUnknownUnit}
		}
		return p.applyPowerSuffix(asComposite(named))
	default:
		return nil, p.syntaxErr(t)
	}
}

// applyPowerSuffix applies an optional power to a unit expression:
// "m**2", "m^2", the adjacent-digits form "m2"/"m-2", "m(3/2)", or the
// same forms after a closing paren, "(m/s)**2".
func (p *unitParser) applyPowerSuffix(base *Composite) (*Composite, *ParseError) {
	switch p.peek().kind {
	case tokDoubleStar, tokCaret:
		p.next()
		pow, err := p.parseNumericPower()
		if err != nil {
			return nil, err
		}
		return Pow(base, pow), nil
	case tokUInt, tokSign:
		pow, err := p.parseIntPower()
		if err != nil {
			return nil, err
		}
		return Pow(base, pow), nil
	case tokOpen:
		// Only a numeric power, "m(3/2)"; "m (s)" is a product.
		if k := p.peekAt(1).kind; k == tokSign || k == tokUInt || k == tokUFloat {
			pow, err := p.parseNumericPower()
			if err != nil {
				return nil, err
			}
			return Pow(base, pow), nil
		}
	}
	return base, nil
}

func (p *unitParser) parseIntPower() (Rational, *ParseError) {
	sign := 1
	if p.peek().kind == tokSign {
		sign = p.next().ival
	}
	t := p.next()
	if t.kind != tokUInt {
		return Rational{}, p.syntaxErr(t)
	}
	return RInt(sign * t.ival), nil
}

func (p *unitParser) parseNumericPower() (Rational, *ParseError) {
	if p.peek().kind == tokOpen {
		p.next()
		pow, err := p.parseParenPower()
		if err != nil {
			return Rational{}, err
		}
		if cl := p.next(); cl.kind != tokClose {
			return Rational{}, p.syntaxErr(cl)
		}
		return pow, nil
	}
	return p.parseIntPower()
}

// parseParenPower handles the inside of a parenthesized power: a signed
// integer, a fraction like 3/2, or a float like 1.5.
func (p *unitParser) parseParenPower() (Rational, *ParseError) {
	sign := 1
	if p.peek().kind == tokSign {
		sign = p.next().ival
	}
	switch t := p.next(); t.kind {
	case tokUInt:
		if p.peek().kind == tokSlash {
			p.next()
			dsign := 1
			if p.peek().kind == tokSign {
				dsign = p.next().ival
			}
			d := p.next()
			if d.kind != tokUInt {
				return Rational{}, p.syntaxErr(d)
			}
			return R(sign*t.ival, dsign*d.ival), nil
		}
		return RInt(sign * t.ival), nil
	case tokUFloat:
		r, ok := ratApprox(float64(sign) * t.fval)
		if !ok {
			return Rational{}, p.syntaxErr(t)
		}
		return r, nil
	default:
		return Rational{}, p.syntaxErr(t)
	}
}

// ratApprox converts a float power to an exact rational with a small
// denominator, failing for values that are not close to one.
func ratApprox(f float64) (Rational, bool) {
	for den := 1; den <= 1000; den++ {
		num := f * float64(den)
		rounded := math.Round(num)
		if math.Abs(num-rounded) < 1e-9 {
			return R(int(rounded), den), true
		}
	}
	return Rational{}, false
}
