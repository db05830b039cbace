package config

var Presets = map[string][]UnitDef{
	"astro": {
		{Name: "solMass", Definition: "1.98892e30 kg", Aliases: []string{"Msun"}},
		{Name: "solRad", Definition: "6.957e8 m", Aliases: []string{"Rsun"}},
		{Name: "solLum", Definition: "3.828e26 W", Aliases: []string{"Lsun"}},
		{Name: "lyr", Definition: "9.4607304725808e15 m", Aliases: []string{"lightyear"}},
		{Name: "Ry", Definition: "13.605693122994 eV", Aliases: []string{"rydberg"}},
	},
	"imperial": {
		{Name: "inch", Definition: "2.54 cm"},
		{Name: "ft", Definition: "12 inch", Aliases: []string{"foot"}},
		{Name: "yd", Definition: "3 ft", Aliases: []string{"yard"}},
		{Name: "mi", Definition: "5280 ft", Aliases: []string{"mile"}},
		{Name: "lb", Definition: "453.59237 g", Aliases: []string{"pound"}},
	},
	"si_extra": {
		{Name: "bar", Definition: "1e5 Pa", Prefixable: true},
		{Name: "t", Definition: "1000 kg", Aliases: []string{"tonne"}},
		{Name: "L", Definition: "1e-3 m3", Aliases: []string{"liter", "litre"}, Prefixable: true},
	},
}

func GetPreset(name string) []UnitDef {
	defs, ok := Presets[name]
	if !ok {
		return nil
	}
	return defs
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
