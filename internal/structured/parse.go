package structured

import (
	"strings"

	"github.com/davre/quanta/internal/unit"
)

// Parse parses the String form of a structured unit. Tuple forms like
// "(m, s)", "(m,)" or "((deg, deg), pc)" become StructuredUnits with
// automatic field names; anything without a top-level comma is handed
// to the plain unit grammar, so parenthesized plain forms like
// "(m/s)**2" still resolve.
func Parse(r *unit.Registry, s string) (Part, error) {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "(") || !strings.HasSuffix(t, ")") {
		return r.Parse(s)
	}
	fields, ok := splitTuple(t[1 : len(t)-1])
	if !ok {
		return r.Parse(s)
	}
	parts := make([]Part, len(fields))
	for i, f := range fields {
		p, err := Parse(r, f)
		if err != nil {
			return nil, err
		}
		parts[i] = p
	}
	return New(parts, nil)
}

// splitTuple splits on top-level commas, honoring nested parens. A
// trailing comma marks a single-field tuple and yields no empty field.
// It reports false when parens are unbalanced or no top-level comma
// exists, so the caller falls back to the plain grammar.
func splitTuple(s string) ([]string, bool) {
	var fields []string
	depth, start, commas := 0, 0, 0
	for i, c := range s {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, false
			}
		case ',':
			if depth == 0 {
				commas++
				fields = append(fields, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 || commas == 0 {
		return nil, false
	}
	if last := strings.TrimSpace(s[start:]); last != "" {
		fields = append(fields, last)
	}
	return fields, true
}
