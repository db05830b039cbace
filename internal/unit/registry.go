package unit

import (
	"fmt"
	"sort"
)

// Registry maps unit names and aliases to their definitions. It is
// populated once and read-only afterwards; parsers and formatters take
// an explicit handle rather than reaching for a global.
type Registry struct {
	units map[string]*NamedUnit
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{units: make(map[string]*NamedUnit)}
}

// Register adds a named unit under its canonical name and all aliases.
// Registering a name twice is an error: the builtin table treats it as
// fatal at construction time.
func (r *Registry) Register(u *NamedUnit) error {
	names := append([]string{u.name}, u.aliases...)
	for _, name := range names {
		if _, ok := r.units[name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicate, name)
		}
	}
	for _, name := range names {
		r.units[name] = u
	}
	return nil
}

// RegisterPrefixed registers a unit and, when it is prefixable, one
// derived unit per SI prefix (km, mJy, ...). Prefixes apply to the
// canonical name only, never to aliases.
func (r *Registry) RegisterPrefixed(u *NamedUnit) error {
	if err := r.Register(u); err != nil {
		return err
	}
	if !u.prefixable {
		return nil
	}
	for _, p := range siPrefixes {
		pu := &NamedUnit{
			name:      p.symbol + u.name,
			def:       Scaled(p.factor, u),
			generated: true,
		}
		if err := r.Register(pu); err != nil {
			return err
		}
	}
	return nil
}

// Lookup resolves a name or alias.
func (r *Registry) Lookup(name string) (*NamedUnit, bool) {
	u, ok := r.units[name]
	return u, ok
}

// Len returns the number of resolvable names, aliases included.
func (r *Registry) Len() int { return len(r.units) }

// Canonical returns the explicitly defined units sorted by name.
// Aliases and prefix-generated entries (km, mJy, ...) are skipped.
func (r *Registry) Canonical() []*NamedUnit {
	out := make([]*NamedUnit, 0, len(r.units))
	for name, u := range r.units {
		if name != u.name || u.generated {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

type siPrefix struct {
	symbol string
	factor float64
}

var siPrefixes = []siPrefix{
	{"Y", 1e24}, {"Z", 1e21}, {"E", 1e18}, {"P", 1e15}, {"T", 1e12},
	{"G", 1e9}, {"M", 1e6}, {"k", 1e3}, {"h", 1e2}, {"da", 1e1},
	{"d", 1e-1}, {"c", 1e-2}, {"m", 1e-3}, {"u", 1e-6}, {"n", 1e-9},
	{"p", 1e-12}, {"f", 1e-15}, {"a", 1e-18}, {"z", 1e-21}, {"y", 1e-24},
}
