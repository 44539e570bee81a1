package ui

import "strings"

// Toggles holds the overlay switches of the viewer.
type Toggles struct {
	Boundary bool
	Trees    bool
	Rivers   bool
}

// Flip toggles the overlay bound to key: 'b' boundary, 't' trees, 'r'
// rivers. Other keys are ignored.
func (t *Toggles) Flip(key rune) {
	switch key {
	case 'b', 'B':
		t.Boundary = !t.Boundary
	case 't', 'T':
		t.Trees = !t.Trees
	case 'r', 'R':
		t.Rivers = !t.Rivers
	}
}

// Summary lists the active overlays, or "none".
func (t Toggles) Summary() string {
	var on []string
	if t.Boundary {
		on = append(on, "boundary")
	}
	if t.Trees {
		on = append(on, "trees")
	}
	if t.Rivers {
		on = append(on, "rivers")
	}
	if len(on) == 0 {
		return "none"
	}
	return strings.Join(on, ", ")
}
