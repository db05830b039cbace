package unit

import (
	"fmt"
	"sort"
	"strings"
)

// ToString renders a unit in the generic string format: positive powers
// first, then a division group for negative powers, each group sorted
// alphabetically. The output round-trips through Registry.Parse.
func ToString(u Unit) string {
	return toStringOpts(u, true)
}

// ToStringUnscaled renders a unit without its scale factor. Used in
// error messages where the scale is not meaningful to show.
func ToStringUnscaled(u Unit) string {
	return toStringOpts(u, false)
}

func toStringOpts(u Unit, showScale bool) string {
	switch v := u.(type) {
	case *NamedUnit:
		return v.name
	case *Composite:
		return compositeString(v, showScale)
	default:
		return compositeString(asComposite(u), showScale)
	}
}

type basePower struct {
	name  string
	power Rational
}

func compositeString(c *Composite, showScale bool) string {
	var parts []string
	if showScale && c.scale != 1 {
		parts = append(parts, fmt.Sprintf("%g", c.scale))
	}

	if len(c.bases) > 0 {
		var positives, negatives []basePower
		for i, b := range c.bases {
			p := c.powers[i]
			if p.Num > 0 {
				positives = append(positives, basePower{b.name, p})
			} else {
				negatives = append(negatives, basePower{b.name, p.Neg()})
			}
		}

		if len(positives) > 0 {
			parts = append(parts, formatGroup(positives))
		} else if len(parts) == 0 {
			parts = append(parts, "1")
		}

		if len(negatives) > 0 {
			parts = append(parts, "/")
			group := formatGroup(negatives)
			if len(negatives) > 1 {
				group = "(" + group + ")"
			}
			parts = append(parts, group)
		}
	}

	return strings.Join(parts, " ")
}

func formatGroup(group []basePower) string {
	sort.SliceStable(group, func(i, j int) bool {
		return strings.ToLower(group[i].name) < strings.ToLower(group[j].name)
	})
	out := make([]string, len(group))
	for i, bp := range group {
		switch {
		case bp.power.IsOne():
			out[i] = bp.name
		case bp.power.Den == 1:
			out[i] = fmt.Sprintf("%s%d", bp.name, bp.power.Num)
		default:
			out[i] = fmt.Sprintf("%s(%s)", bp.name, bp.power)
		}
	}
	return strings.Join(out, " ")
}
