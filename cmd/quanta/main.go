package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/davre/quanta/internal/config"
	"github.com/davre/quanta/internal/logunit"
	"github.com/davre/quanta/internal/quantity"
	"github.com/davre/quanta/internal/repr"
	"github.com/davre/quanta/internal/store"
	"github.com/davre/quanta/internal/tui"
	"github.com/davre/quanta/internal/unit"
	"github.com/davre/quanta/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	precision  int
	// convert
	valueList  string
	saveResult bool
	massEnergy bool
	// repr
	reprUnit string
	// curve / transfer
	rangeMin float64
	rangeMax float64
	// mag
	zeroPoint string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "quanta",
		Short: "unit algebra and quantity toolkit",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, _, err := setup(cmd)
			if err != nil {
				return err
			}
			return tui.Run(reg, precision)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".quanta", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "register a unit preset")
	rootCmd.PersistentFlags().IntVar(&precision, "precision", config.DefaultPrecision, "output digits")

	convertCmd := &cobra.Command{
		Use:   "convert [value] [from] [to]",
		Short: "convert a value between units",
		Args:  cobra.ExactArgs(3),
		RunE:  runConvert,
	}
	convertCmd.Flags().StringVar(&valueList, "values", "", "comma-separated values, overrides the positional value")
	convertCmd.Flags().BoolVar(&saveResult, "save", false, "save the conversion to the data directory")
	convertCmd.Flags().BoolVar(&massEnergy, "mass-energy", false, "allow mass <-> energy via E=mc2")

	inspectCmd := &cobra.Command{
		Use:   "inspect [unit]",
		Short: "decompose a unit and report its physical type",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}

	reprCmd := &cobra.Command{
		Use:   "repr [from] [to] [components...]",
		Short: "convert between coordinate representations",
		Long: "Converts a point between coordinate representations. Angular\n" +
			"components are given in degrees, radial ones in --unit.",
		Args: cobra.RangeArgs(4, 5),
		RunE: runRepr,
	}
	reprCmd.Flags().StringVar(&reprUnit, "unit", "m", "unit of the radial components")

	curveCmd := &cobra.Command{
		Use:   "curve [from] [to]",
		Short: "plot a conversion curve",
		Args:  cobra.ExactArgs(2),
		RunE:  runCurve,
	}
	curveCmd.Flags().Float64Var(&rangeMin, "min", 0, "range start")
	curveCmd.Flags().Float64Var(&rangeMax, "max", 100, "range end")
	curveCmd.Flags().BoolVar(&massEnergy, "mass-energy", false, "allow mass <-> energy via E=mc2")

	transferCmd := &cobra.Command{
		Use:   "transfer [mag|dex|dB] [unit]",
		Short: "plot a logarithmic transfer curve",
		Args:  cobra.ExactArgs(2),
		RunE:  runTransfer,
	}
	transferCmd.Flags().Float64Var(&rangeMin, "min", 1, "physical range start")
	transferCmd.Flags().Float64Var(&rangeMax, "max", 1000, "physical range end")

	magCmd := &cobra.Command{
		Use:   "mag [value] [unit]",
		Short: "express a quantity in magnitudes",
		Args:  cobra.ExactArgs(2),
		RunE:  runMag,
	}
	magCmd.Flags().StringVar(&zeroPoint, "zero", "", "magnitude zero point (ab or st)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list registered units",
		RunE:  runList,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list unit presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPresets,
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "list saved conversions",
		RunE:  runHistory,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [id]",
		Short: "export a saved conversion to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportJSON,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive converter",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, equivs, err := setup(cmd)
			if err != nil {
				return err
			}
			return tui.Run(reg, precision, equivs...)
		},
	}
	tuiCmd.Flags().BoolVar(&massEnergy, "mass-energy", false, "allow mass <-> energy via E=mc2")

	rootCmd.AddCommand(convertCmd, inspectCmd, reprCmd, curveCmd, transferCmd,
		magCmd, listCmd, presetsCmd, historyCmd, exportJSONCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// setup builds the unit registry from the builtin table, the preset,
// and the config file. Flags override config values.
func setup(cmd *cobra.Command) (*unit.Registry, []unit.Equivalency, error) {
	reg := unit.Builtin()

	if preset != "" {
		defs := config.GetPreset(preset)
		if defs == nil {
			return nil, nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		if err := (&config.Config{Units: defs}).Apply(reg); err != nil {
			return nil, nil, err
		}
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Apply(reg); err != nil {
			return nil, nil, err
		}
		if !cmd.Flags().Changed("precision") && cfg.Precision > 0 {
			precision = cfg.Precision
		}
	}

	var equivs []unit.Equivalency
	if massEnergy {
		equivs = append(equivs, unit.MassEnergy(reg))
	}
	return reg, equivs, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	reg, equivs, err := setup(cmd)
	if err != nil {
		return err
	}

	from, err := reg.Parse(args[1])
	if err != nil {
		return err
	}
	to, err := reg.Parse(args[2])
	if err != nil {
		return err
	}

	inputs, err := parseValues(args[0])
	if err != nil {
		return err
	}

	conv, err := unit.ConverterTo(from, to, equivs...)
	if err != nil {
		return err
	}

	outputs := make([]float64, len(inputs))
	for i, in := range inputs {
		outputs[i] = conv(in)
		fmt.Printf("%.*g %s = %.*g %s\n",
			precision, in, unit.ToString(from),
			precision, outputs[i], unit.ToString(to))
	}

	if saveResult {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(&store.Conversion{
			From:     unit.ToString(from),
			To:       unit.ToString(to),
			Physical: unit.PhysicalType(from),
			Inputs:   inputs,
			Outputs:  outputs,
		})
		if err != nil {
			return err
		}
		log.Info("conversion saved", "id", id)
	}

	return nil
}

func parseValues(positional string) ([]float64, error) {
	raw := []string{positional}
	if valueList != "" {
		raw = strings.Split(valueList, ",")
	}
	values := make([]float64, len(raw))
	for i, s := range raw {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", s)
		}
		values[i] = v
	}
	return values, nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	reg, _, err := setup(cmd)
	if err != nil {
		return err
	}

	u, err := reg.Parse(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "unit\t%s\n", unit.ToString(u))
	fmt.Fprintf(w, "decomposed\t%s\n", unit.ToString(u.Decompose()))
	fmt.Fprintf(w, "physical\t%s\n", unit.PhysicalType(u))
	fmt.Fprintf(w, "si\t%s\n", unit.ToString(unit.SI(u)))
	fmt.Fprintf(w, "cgs\t%s\n", unit.ToString(unit.CGS(u)))

	if named, ok := reg.Lookup(args[0]); ok {
		if aliases := named.Aliases(); len(aliases) > 0 {
			fmt.Fprintf(w, "aliases\t%s\n", strings.Join(aliases, ", "))
		}
		if named.IsIrreducible() {
			fmt.Fprintf(w, "kind\tirreducible\n")
		} else {
			fmt.Fprintf(w, "kind\tderived\n")
		}
	}

	return w.Flush()
}

func runRepr(cmd *cobra.Command, args []string) error {
	reg, _, err := setup(cmd)
	if err != nil {
		return err
	}

	u, err := reg.Parse(reprUnit)
	if err != nil {
		return err
	}

	comps := make([]float64, len(args)-2)
	for i, s := range args[2:] {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("component %d is not a number: %q", i+1, s)
		}
		comps[i] = v
	}

	in, err := buildRepresentation(args[0], comps, u)
	if err != nil {
		return err
	}

	out, err := repr.RepresentAs(in, args[1])
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s\n", in.Name(), in)
	fmt.Printf("%s: %s\n", out.Name(), out)
	return nil
}

func buildRepresentation(name string, comps []float64, u unit.Unit) (repr.Representation, error) {
	need := 3
	if name == "unitspherical" {
		need = 2
	}
	if len(comps) != need {
		return nil, fmt.Errorf("%s needs %d components, got %d", name, need, len(comps))
	}

	switch name {
	case "cartesian":
		return repr.CartesianScalar(comps[0], comps[1], comps[2], u), nil
	case "spherical":
		return repr.NewSpherical(quantity.Degs(comps[0]), quantity.Degs(comps[1]),
			quantity.Scalar(comps[2], u))
	case "physicsspherical":
		return repr.NewPhysicsSpherical(quantity.Degs(comps[0]), quantity.Degs(comps[1]),
			quantity.Scalar(comps[2], u))
	case "cylindrical":
		return repr.NewCylindrical(quantity.Scalar(comps[0], u),
			quantity.Degs(comps[1]), quantity.Scalar(comps[2], u))
	case "unitspherical":
		return repr.NewUnitSpherical(quantity.Degs(comps[0]), quantity.Degs(comps[1]))
	}
	return nil, fmt.Errorf("unknown representation %q (available: %s)",
		name, strings.Join(repr.Names(), ", "))
}

func runCurve(cmd *cobra.Command, args []string) error {
	reg, equivs, err := setup(cmd)
	if err != nil {
		return err
	}

	from, err := reg.Parse(args[0])
	if err != nil {
		return err
	}
	to, err := reg.Parse(args[1])
	if err != nil {
		return err
	}

	out, err := viz.ConversionCurve(from, to, rangeMin, rangeMax, equivs...)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func runTransfer(cmd *cobra.Command, args []string) error {
	reg, _, err := setup(cmd)
	if err != nil {
		return err
	}

	physical, err := reg.Parse(args[1])
	if err != nil {
		return err
	}

	var lu *logunit.LogUnit
	switch args[0] {
	case "mag":
		lu = logunit.Mag(physical)
	case "dex":
		lu = logunit.Dex(physical)
	case "dB", "db":
		lu = logunit.Decibel(physical)
	default:
		return fmt.Errorf("unknown functional unit %q (available: mag, dex, dB)", args[0])
	}

	out, err := viz.TransferCurve(lu, rangeMin, rangeMax)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func runMag(cmd *cobra.Command, args []string) error {
	reg, _, err := setup(cmd)
	if err != nil {
		return err
	}

	value, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("not a number: %q", args[0])
	}
	u, err := reg.Parse(args[1])
	if err != nil {
		return err
	}

	m := logunit.Magnitude(quantity.Scalar(value, u))
	fmt.Printf("%.*g %s\n", precision, m.Value(), m.Unit())

	if zeroPoint != "" {
		var zero *logunit.LogUnit
		switch zeroPoint {
		case "ab":
			zero = logunit.ABMag(reg)
		case "st":
			zero = logunit.STMag(reg)
		default:
			return fmt.Errorf("unknown zero point %q (available: ab, st)", zeroPoint)
		}
		rel, err := m.To(zero)
		if err != nil {
			return err
		}
		fmt.Printf("%.*g mag(%s)\n", precision, rel.Value(), strings.ToUpper(zeroPoint))
	}

	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	reg, _, err := setup(cmd)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPHYSICAL\tDEFINITION\tALIASES")

	for _, u := range reg.Canonical() {
		def := "irreducible"
		if d := u.Definition(); d != nil {
			def = unit.ToString(d)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			u.Name(), unit.PhysicalType(u), def, strings.Join(u.Aliases(), ", "))
	}

	return w.Flush()
}

func runPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		for _, name := range config.ListPresets() {
			fmt.Println(name)
		}
		return nil
	}

	defs := config.GetPreset(args[0])
	if defs == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDEFINITION\tALIASES")
	for _, def := range defs {
		fmt.Fprintf(w, "%s\t%s\t%s\n", def.Name, def.Definition, strings.Join(def.Aliases, ", "))
	}
	return w.Flush()
}

func runHistory(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	metas, err := st.List()
	if err != nil {
		return err
	}

	if len(metas) == 0 {
		fmt.Println("no saved conversions")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFROM\tTO\tPHYSICAL\tTIME\tCOUNT")
	for _, meta := range metas {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			meta.ID, meta.From, meta.To, meta.Physical,
			meta.Timestamp.Format("2006-01-02 15:04:05"), meta.Count)
	}
	return w.Flush()
}

func runExportJSON(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	inputs, outputs, err := st.LoadValues(args[0])
	if err != nil {
		return err
	}

	return store.ExportJSONStdout(&store.Conversion{
		From:     meta.From,
		To:       meta.To,
		Physical: meta.Physical,
		Inputs:   inputs,
		Outputs:  outputs,
	})
}
