// Package viz renders terminal charts for unit conversions.
//
// Conversion curves and logarithmic transfer curves are plotted as
// ASCII line charts, sized for an 80-column terminal by default.
package viz
