package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/davre/quanta/internal/unit"
)

const (
	DefaultSystem    = "none"
	DefaultPrecision = 6
)

type Config struct {
	System    string    `yaml:"system"`
	Precision int       `yaml:"precision"`
	Units     []UnitDef `yaml:"units"`
}

// UnitDef declares a custom unit. With an empty definition the unit is
// a new irreducible base of the given physical type; otherwise the
// definition string is parsed against the registry built so far.
type UnitDef struct {
	Name       string   `yaml:"name"`
	Definition string   `yaml:"definition"`
	Physical   string   `yaml:"physical"`
	Aliases    []string `yaml:"aliases"`
	Prefixable bool     `yaml:"prefixable"`
}

func DefaultConfig() *Config {
	return &Config{
		System:    DefaultSystem,
		Precision: DefaultPrecision,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Apply registers the custom units into the registry, in declaration
// order so later definitions may build on earlier ones.
func (c *Config) Apply(r *unit.Registry) error {
	for _, def := range c.Units {
		if err := register(r, def); err != nil {
			return err
		}
	}
	return nil
}

func register(r *unit.Registry, def UnitDef) error {
	var u *unit.NamedUnit
	if def.Definition == "" {
		u = unit.NewIrreducible(def.Name, def.Physical, def.Aliases...)
	} else {
		parsed, err := r.Parse(def.Definition)
		if err != nil {
			return err
		}
		u = unit.NewDerived(def.Name, parsed, def.Aliases...)
	}
	if def.Prefixable {
		u.Prefixable()
	}
	return r.RegisterPrefixed(u)
}
