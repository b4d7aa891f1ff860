package rundown

import "rundown-cli/internal/model"

// Projection is the collapse-aware view of the canonical order: every header,
// plus every item whose nearest preceding header is expanded. It carries
// bidirectional index maps between visible and canonical positions.
//
// A Projection is a snapshot: it must be rebuilt after any document or
// collapse-state change, never patched in place.
type Projection struct {
	Visible     []model.Item
	toCanonical []int
	toVisible   []int
}

// Project builds the visible subsequence in a single forward pass, tracking
// the active header's collapse flag.
func Project(items []model.Item, collapsed map[string]bool) Projection {
	p := Projection{
		Visible:     make([]model.Item, 0, len(items)),
		toCanonical: make([]int, 0, len(items)),
		toVisible:   make([]int, len(items)),
	}
	hidden := false // true while inside a collapsed header's group
	for i, it := range items {
		if it.IsHeader() {
			hidden = collapsed[it.ID]
		} else if hidden {
			p.toVisible[i] = -1
			continue
		}
		p.toVisible[i] = len(p.Visible)
		p.Visible = append(p.Visible, it)
		p.toCanonical = append(p.toCanonical, i)
	}
	return p
}

func (p Projection) Len() int { return len(p.Visible) }

// ToCanonical maps a visible index to its canonical index, or -1 when out of
// range.
func (p Projection) ToCanonical(vi int) int {
	if vi < 0 || vi >= len(p.toCanonical) {
		return -1
	}
	return p.toCanonical[vi]
}

// ToVisible maps a canonical index to its visible index. Indices hidden by a
// collapsed header (or out of range) yield -1; callers must treat -1 as "not
// currently representable", not as an error.
func (p Projection) ToVisible(ci int) int {
	if ci < 0 || ci >= len(p.toVisible) {
		return -1
	}
	return p.toVisible[ci]
}
