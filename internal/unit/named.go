package unit

// NamedUnit is an atomic, registry-resident unit symbol. Irreducible
// units (meter, second, gram, ...) have no definition and decompose to
// themselves; derived units (joule, erg, ...) carry a definition in
// terms of other units.
type NamedUnit struct {
	name       string
	aliases    []string
	physical   string
	def        *Composite
	prefixable bool
	generated  bool
}

// NewIrreducible defines a base unit that cannot be expressed as a
// product of other units.
func NewIrreducible(name, physical string, aliases ...string) *NamedUnit {
	return &NamedUnit{name: name, physical: physical, aliases: aliases}
}

// NewDerived defines a unit in terms of an existing one. The physical
// type is derived from the definition.
func NewDerived(name string, def Unit, aliases ...string) *NamedUnit {
	return &NamedUnit{name: name, def: asComposite(def), aliases: aliases}
}

// Prefixable marks the unit as accepting SI prefixes and returns it.
func (n *NamedUnit) Prefixable() *NamedUnit {
	n.prefixable = true
	return n
}

// Name returns the canonical registry name.
func (n *NamedUnit) Name() string { return n.name }

// Aliases returns the alternate names resolving to this unit.
func (n *NamedUnit) Aliases() []string { return n.aliases }

// IsIrreducible reports whether the unit decomposes to itself.
func (n *NamedUnit) IsIrreducible() bool { return n.def == nil }

// Definition returns what the unit is defined as, or nil for
// irreducible units.
func (n *NamedUnit) Definition() *Composite { return n.def }

func (n *NamedUnit) String() string { return n.name }

// Decompose expresses the unit in irreducible bases.
func (n *NamedUnit) Decompose() *Composite {
	if n.def == nil {
		return &Composite{scale: 1, bases: []*NamedUnit{n}, powers: []Rational{RInt(1)}}
	}
	return n.def.Decompose()
}
