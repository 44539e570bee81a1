package ui

import (
	"fmt"

	"mapgen/internal/core"
)

// Lines lays out a parameter snapshot as panel text: one header per group
// followed by indented "label: value" rows.
func Lines(snap core.ParameterSnapshot) []string {
	var out []string
	for _, g := range snap.Groups {
		if len(g.Params) == 0 {
			continue
		}
		out = append(out, g.Name)
		for _, p := range g.Params {
			label := p.Label
			if label == "" {
				label = p.Key
			}
			out = append(out, fmt.Sprintf("  %s: %s", label, p.Value))
		}
	}
	return out
}
