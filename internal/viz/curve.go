package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/davre/quanta/internal/logunit"
	"github.com/davre/quanta/internal/unit"
)

const (
	defaultWidth   = 60
	defaultHeight  = 12
	defaultSamples = 80
)

// Sample evaluates f at n evenly spaced points across [lo, hi].
func Sample(f func(float64) float64, lo, hi float64, n int) []float64 {
	if n < 2 {
		n = 2
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = f(lo + float64(i)*step)
	}
	return out
}

// Plot renders values as a line chart with a caption underneath.
func Plot(values []float64, caption string, width, height int) string {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	chart := asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption))
	return graphStyle.Render(chart)
}

// ConversionCurve plots values in the from unit converted to the to
// unit across [lo, hi].
func ConversionCurve(from, to unit.Unit, lo, hi float64, equivs ...unit.Equivalency) (string, error) {
	conv, err := unit.ConverterTo(from, to, equivs...)
	if err != nil {
		return "", err
	}

	title := fmt.Sprintf("%s -> %s", unit.ToString(from), unit.ToString(to))
	values := Sample(func(x float64) float64 { return conv(x) }, lo, hi, defaultSamples)

	var b strings.Builder
	b.WriteString(headerStyle.Render(title) + "\n")
	b.WriteString(Plot(values, title, 0, 0) + "\n")
	b.WriteString(labelStyle.Render("range ") +
		valueStyle.Render(fmt.Sprintf("[%g, %g] %s", lo, hi, unit.ToString(from))))
	return b.String(), nil
}

// TransferCurve plots the logarithmic value of lu over physical
// values spanning [lo, hi], sampled on a log-spaced grid.
func TransferCurve(lu *logunit.LogUnit, lo, hi float64) (string, error) {
	if lo <= 0 || hi <= lo {
		return "", fmt.Errorf("viz: transfer curve needs 0 < lo < hi, got [%g, %g]", lo, hi)
	}

	values := Sample(func(x float64) float64 { return lu.FromPhysical(math.Pow(10, x)) },
		math.Log10(lo), math.Log10(hi), defaultSamples)

	title := lu.String()
	var b strings.Builder
	b.WriteString(headerStyle.Render(title) + "\n")
	b.WriteString(Plot(values, title, 0, 0) + "\n")
	b.WriteString(labelStyle.Render("physical ") +
		valueStyle.Render(fmt.Sprintf("[%g, %g] %s, log spaced", lo, hi,
			unit.ToString(lu.PhysicalUnit()))))
	return b.String(), nil
}
