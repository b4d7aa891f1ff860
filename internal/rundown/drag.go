package rundown

// Drag coordinates a reorder gesture: idle -> dragging -> (drag-over)* ->
// dropped or cancelled. Indices arrive in visible space (the window layer
// rebases window-local indices before calling in) and are resolved to
// canonical space only when the drop commits.
//
// The payload is captured as an id set at drag start. Remote mutations can
// land mid-gesture, so Drop revalidates against the live document and aborts
// all-or-nothing rather than moving the wrong span.
type Drag struct {
	active    bool
	payload   []string
	sourceVis int
	rev       int64
	indicator int
}

func NewDrag() *Drag {
	return &Drag{indicator: -1}
}

func (g *Drag) Active() bool { return g.active }

// Payload returns the ids being dragged (set at Start).
func (g *Drag) Payload() []string { return g.payload }

// Indicator is the current drop position in visible space, or -1. Pure UI
// feedback; no invariant attaches to it.
func (g *Drag) Indicator() int {
	if !g.active {
		return -1
	}
	return g.indicator
}

// Start begins a gesture from a visible-order row. Dragging a header picks up
// the whole group's ids, hidden children included, so the group moves as one
// unit whether or not it is collapsed.
func (g *Drag) Start(d *Document, p Projection, sourceVis int) error {
	g.reset()
	ci := p.ToCanonical(sourceVis)
	if ci < 0 {
		return StaleDragError{Reason: "source index out of range"}
	}
	it, ok := d.At(ci)
	if !ok {
		return StaleDragError{Reason: "source row vanished"}
	}
	payload := []string{it.ID}
	if it.IsHeader() {
		payload = append(payload, d.GroupItemIDs(it.ID)...)
	}
	g.active = true
	g.payload = payload
	g.sourceVis = sourceVis
	g.rev = d.Rev()
	g.indicator = sourceVis
	return nil
}

// Over tracks the drop indicator while hovering. No-op when idle.
func (g *Drag) Over(targetVis int) {
	if !g.active {
		return
	}
	g.indicator = targetVis
}

// Drop commits the gesture: the target visible index is resolved against the
// CURRENT projection and the move applied through the document. If the
// document changed since Start, or the target no longer resolves, the gesture
// aborts with StaleDragError and the canonical order is left untouched.
// targetVis == p.Len() drops at the end of the rundown.
func (g *Drag) Drop(d *Document, p Projection, targetVis int) error {
	if !g.active {
		return StaleDragError{Reason: "no drag in progress"}
	}
	defer g.reset()

	if d.Rev() != g.rev {
		return StaleDragError{Reason: "document changed during drag"}
	}
	for _, id := range g.payload {
		if d.IndexOf(id) < 0 {
			return StaleDragError{Reason: "dragged item vanished: " + id}
		}
	}
	var to int
	switch {
	case targetVis == p.Len():
		to = d.Len()
	default:
		to = p.ToCanonical(targetVis)
		if to < 0 {
			return StaleDragError{Reason: "target index out of range"}
		}
	}
	return d.Move(g.payload, to)
}

// Cancel resets the gesture with zero side effects on the canonical order.
func (g *Drag) Cancel() { g.reset() }

func (g *Drag) reset() {
	g.active = false
	g.payload = nil
	g.sourceVis = -1
	g.rev = 0
	g.indicator = -1
}
