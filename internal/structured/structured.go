// Package structured defines named, possibly nested groupings of units
// that mirror a record-style value layout, with field-wise conversion.
package structured

import (
	"errors"
	"fmt"
	"strings"

	"github.com/davre/quanta/internal/unit"
)

// Domain errors for structured-unit operations.
var (
	// ErrLengthMismatch indicates units and field names of unequal length.
	ErrLengthMismatch = errors.New("structured: lengths of units and field names must match")

	// ErrArityMismatch indicates a value tuple whose shape does not
	// match the unit's fields.
	ErrArityMismatch = errors.New("structured: value tuple does not match unit fields")
)

// Part is a field of a structured unit: either a plain unit.Unit or a
// nested *StructuredUnit.
type Part interface {
	String() string
}

// Name is a field name, optionally carrying names for a nested group.
type Name struct {
	Key string
	Sub []Name
}

// N is shorthand for a flat field name.
func N(key string) Name { return Name{Key: key} }

// Group is shorthand for a named nested group.
func Group(key string, sub ...Name) Name { return Name{Key: key, Sub: sub} }

// Tuple is a record value matching a structured unit: each element is
// a float64 for a plain field or a nested Tuple for a structured one.
type Tuple []any

// StructuredUnit is an ordered mapping from field names to parts.
type StructuredUnit struct {
	names []Name
	parts []Part
}

// New builds a structured unit. With nil names, fields are named
// f0, f1, ... . A name carrying sub-names wraps the matching part
// (which must then be a tuple-like nested unit) recursively.
func New(parts []Part, names []Name) (*StructuredUnit, error) {
	if names == nil {
		names = make([]Name, len(parts))
		for i := range parts {
			names[i] = N(fmt.Sprintf("f%d", i))
		}
	}
	if len(parts) != len(names) {
		return nil, fmt.Errorf("%w: %d units, %d names", ErrLengthMismatch, len(parts), len(names))
	}
	out := &StructuredUnit{names: names, parts: make([]Part, len(parts))}
	for i, p := range parts {
		if len(names[i].Sub) > 0 {
			nested, ok := p.(*StructuredUnit)
			if !ok {
				return nil, fmt.Errorf("%w: field %q names a group but unit is not structured",
					ErrLengthMismatch, names[i].Key)
			}
			renamed, err := New(nested.parts, names[i].Sub)
			if err != nil {
				return nil, err
			}
			out.parts[i] = renamed
		} else {
			out.parts[i] = p
		}
	}
	return out, nil
}

// Wrap degenerates gracefully: a single plain unit with no names is
// returned unchanged, anything else becomes a StructuredUnit.
func Wrap(part Part, names []Name) (Part, error) {
	if u, ok := part.(unit.Unit); ok && names == nil {
		return u, nil
	}
	if s, ok := part.(*StructuredUnit); ok {
		if names == nil {
			return s, nil
		}
		return New(s.parts, names)
	}
	return New([]Part{part}, names)
}

// NamesOf extracts the possibly nested field names of a structured
// unit, suitable for handing to New to borrow its layout.
func NamesOf(s *StructuredUnit) []Name {
	out := make([]Name, len(s.names))
	for i, n := range s.names {
		if nested, ok := s.parts[i].(*StructuredUnit); ok {
			out[i] = Group(n.Key, NamesOf(nested)...)
		} else {
			out[i] = N(n.Key)
		}
	}
	return out
}

// Len returns the number of top-level fields.
func (s *StructuredUnit) Len() int { return len(s.parts) }

// Keys returns the top-level field names in order.
func (s *StructuredUnit) Keys() []string {
	out := make([]string, len(s.names))
	for i, n := range s.names {
		out[i] = n.Key
	}
	return out
}

// Values returns the parts in field order.
func (s *StructuredUnit) Values() []Part {
	return append([]Part(nil), s.parts...)
}

// Item is a (name, part) pair.
type Item struct {
	Name string
	Part Part
}

// Items returns (name, part) pairs in field order.
func (s *StructuredUnit) Items() []Item {
	out := make([]Item, len(s.parts))
	for i := range s.parts {
		out[i] = Item{Name: s.names[i].Key, Part: s.parts[i]}
	}
	return out
}

// Field resolves a part by name.
func (s *StructuredUnit) Field(name string) (Part, bool) {
	for i, n := range s.names {
		if n.Key == name {
			return s.parts[i], true
		}
	}
	return nil, false
}

// At returns the part at field position i.
func (s *StructuredUnit) At(i int) Part { return s.parts[i] }

// apply is the single recursive mechanism behind SI, CGS, Decompose and
// friends: the plain-unit operation runs on every leaf and the results
// repack into a same-shaped structured unit.
func (s *StructuredUnit) apply(f func(unit.Unit) (unit.Unit, error)) (*StructuredUnit, error) {
	out := &StructuredUnit{names: s.names, parts: make([]Part, len(s.parts))}
	for i, p := range s.parts {
		switch v := p.(type) {
		case *StructuredUnit:
			sub, err := v.apply(f)
			if err != nil {
				return nil, err
			}
			out.parts[i] = sub
		case unit.Unit:
			u, err := f(v)
			if err != nil {
				return nil, err
			}
			out.parts[i] = u
		default:
			return nil, fmt.Errorf("structured: field %q holds a non-unit part", s.names[i].Key)
		}
	}
	return out, nil
}

// SI converts every field to its SI form.
func (s *StructuredUnit) SI() *StructuredUnit {
	out, _ := s.apply(func(u unit.Unit) (unit.Unit, error) { return unit.SI(u), nil })
	return out
}

// CGS converts every field to its cgs form.
func (s *StructuredUnit) CGS() *StructuredUnit {
	out, _ := s.apply(func(u unit.Unit) (unit.Unit, error) { return unit.CGS(u), nil })
	return out
}

// Decompose expresses every field in irreducible bases.
func (s *StructuredUnit) Decompose() *StructuredUnit {
	out, _ := s.apply(func(u unit.Unit) (unit.Unit, error) { return u.Decompose(), nil })
	return out
}

// MulUnit multiplies every field by a plain unit, keeping names.
func (s *StructuredUnit) MulUnit(other unit.Unit) *StructuredUnit {
	out, _ := s.apply(func(u unit.Unit) (unit.Unit, error) { return unit.Mul(u, other), nil })
	return out
}

// DivUnit divides every field by a plain unit, keeping names.
func (s *StructuredUnit) DivUnit(other unit.Unit) *StructuredUnit {
	out, _ := s.apply(func(u unit.Unit) (unit.Unit, error) { return unit.Div(u, other), nil })
	return out
}

// IsEquivalent reports whether all fields are pairwise equivalent to
// the other's fields.
func (s *StructuredUnit) IsEquivalent(other *StructuredUnit, equivs ...unit.Equivalency) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i, p := range s.parts {
		switch v := p.(type) {
		case *StructuredUnit:
			o, ok := other.parts[i].(*StructuredUnit)
			if !ok || !v.IsEquivalent(o, equivs...) {
				return false
			}
		case unit.Unit:
			o, ok := other.parts[i].(unit.Unit)
			if !ok || !unit.IsEquivalent(v, o, equivs...) {
				return false
			}
		}
	}
	return true
}

// converter converts a value tuple field by field.
type converter func(Tuple) (Tuple, error)

// ConverterTo builds a tuple converter into other's units.
func (s *StructuredUnit) ConverterTo(other *StructuredUnit, equivs ...unit.Equivalency) (converter, error) {
	if s.Len() != other.Len() {
		return nil, fmt.Errorf("%w: %d fields vs %d", ErrArityMismatch, s.Len(), other.Len())
	}
	fieldConvs := make([]func(any) (any, error), len(s.parts))
	for i, p := range s.parts {
		switch v := p.(type) {
		case *StructuredUnit:
			o, ok := other.parts[i].(*StructuredUnit)
			if !ok {
				return nil, fmt.Errorf("%w: field %q nesting differs", ErrArityMismatch, s.names[i].Key)
			}
			sub, err := v.ConverterTo(o, equivs...)
			if err != nil {
				return nil, err
			}
			fieldConvs[i] = func(val any) (any, error) {
				t, ok := val.(Tuple)
				if !ok {
					return nil, ErrArityMismatch
				}
				return sub(t)
			}
		case unit.Unit:
			o, ok := other.parts[i].(unit.Unit)
			if !ok {
				return nil, fmt.Errorf("%w: field %q nesting differs", ErrArityMismatch, s.names[i].Key)
			}
			conv, err := unit.ConverterTo(v, o, equivs...)
			if err != nil {
				return nil, err
			}
			fieldConvs[i] = func(val any) (any, error) {
				f, ok := val.(float64)
				if !ok {
					return nil, ErrArityMismatch
				}
				return conv(f), nil
			}
		}
	}
	return func(value Tuple) (Tuple, error) {
		if len(value) != len(fieldConvs) {
			return nil, fmt.Errorf("%w: %d values for %d fields", ErrArityMismatch,
				len(value), len(fieldConvs))
		}
		out := make(Tuple, len(value))
		for i, fc := range fieldConvs {
			v, err := fc(value[i])
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}, nil
}

// To converts a value tuple into other's units.
func (s *StructuredUnit) To(other *StructuredUnit, value Tuple, equivs ...unit.Equivalency) (Tuple, error) {
	conv, err := s.ConverterTo(other, equivs...)
	if err != nil {
		return nil, err
	}
	return conv(value)
}

// Equal compares parts only, not field names: two structured units with
// the same units under different names compare equal. This mirrors the
// long-standing values-only comparison of structured containers.
func (s *StructuredUnit) Equal(other *StructuredUnit) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i, p := range s.parts {
		switch v := p.(type) {
		case *StructuredUnit:
			o, ok := other.parts[i].(*StructuredUnit)
			if !ok || !v.Equal(o) {
				return false
			}
		case unit.Unit:
			o, ok := other.parts[i].(unit.Unit)
			if !ok || !unit.Equal(v, o) {
				return false
			}
		}
	}
	return true
}

// String renders the unit as a parenthesized list; a single field keeps
// a trailing comma so the form stays distinguishable from a plain unit.
func (s *StructuredUnit) String() string {
	inner := make([]string, len(s.parts))
	for i, p := range s.parts {
		inner[i] = p.String()
	}
	if len(inner) == 1 {
		return "(" + inner[0] + ",)"
	}
	return "(" + strings.Join(inner, ", ") + ")"
}
