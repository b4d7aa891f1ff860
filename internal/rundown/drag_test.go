package rundown

import (
	"errors"
	"testing"
)

func TestDragCollapsedHeaderMovesGroup(t *testing.T) {
	d := demoDoc() // [h1, a, b, h2, c]
	collapsed := map[string]bool{"h1": true}
	p := Project(d.Items(), collapsed) // [h1, h2, c]

	g := NewDrag()
	if err := g.Start(d, p, 0); err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := g.Payload(); !sameOrder(got, []string{"h1", "a", "b"}) {
		t.Fatalf("payload = %v, want the whole hidden group", got)
	}
	g.Over(3)
	if g.Indicator() != 3 {
		t.Fatalf("indicator = %d, want 3", g.Indicator())
	}
	if err := g.Drop(d, p, p.Len()); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if !sameOrder(order(d), []string{"h2", "c", "h1", "a", "b"}) {
		t.Fatalf("order = %v, want [h2 c h1 a b]", order(d))
	}
	if g.Active() {
		t.Fatalf("drag must return to idle after drop")
	}
}

func TestDragSegment(t *testing.T) {
	d := demoDoc()
	p := Project(d.Items(), nil) // [h1, a, b, h2, c]
	g := NewDrag()
	if err := g.Start(d, p, 4); err != nil { // c
		t.Fatalf("start: %v", err)
	}
	if err := g.Drop(d, p, 1); err != nil { // before a
		t.Fatalf("drop: %v", err)
	}
	if !sameOrder(order(d), []string{"h1", "c", "a", "b", "h2"}) {
		t.Fatalf("order = %v", order(d))
	}
}

func TestDragCancelHasNoSideEffects(t *testing.T) {
	d := demoDoc()
	p := Project(d.Items(), nil)
	before := order(d)
	rev := d.Rev()

	g := NewDrag()
	if err := g.Start(d, p, 1); err != nil {
		t.Fatalf("start: %v", err)
	}
	g.Over(4)
	g.Cancel()

	if g.Active() || g.Indicator() != -1 {
		t.Fatalf("cancel must reset to idle")
	}
	if !sameOrder(order(d), before) || d.Rev() != rev {
		t.Fatalf("cancel mutated the document")
	}
	var sde StaleDragError
	if err := g.Drop(d, p, 2); !errors.As(err, &sde) {
		t.Fatalf("drop after cancel must fail stale, got %v", err)
	}
}

func TestDropAbortsWhenDocumentChangedUnderneath(t *testing.T) {
	d := demoDoc()
	p := Project(d.Items(), nil)

	g := NewDrag()
	if err := g.Start(d, p, 1); err != nil {
		t.Fatalf("start: %v", err)
	}

	// A remote mutation lands mid-drag.
	if err := d.Remove("c"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	before := order(d)

	var sde StaleDragError
	if err := g.Drop(d, p, 3); !errors.As(err, &sde) {
		t.Fatalf("expected StaleDragError, got %v", err)
	}
	if !sameOrder(order(d), before) {
		t.Fatalf("aborted drop must not move anything: %v", order(d))
	}
	if g.Active() {
		t.Fatalf("aborted drag must reset to idle")
	}
}

func TestDragStartStaleIndex(t *testing.T) {
	d := demoDoc()
	p := Project(d.Items(), nil)
	g := NewDrag()
	var sde StaleDragError
	if err := g.Start(d, p, 99); !errors.As(err, &sde) {
		t.Fatalf("expected StaleDragError, got %v", err)
	}
	if g.Active() {
		t.Fatalf("failed start must stay idle")
	}
}

func TestDropInsideOwnSpanIsNoOp(t *testing.T) {
	d := demoDoc()
	collapsed := map[string]bool{"h1": true}
	p := Project(d.Items(), collapsed)
	before := order(d)

	g := NewDrag()
	if err := g.Start(d, p, 0); err != nil {
		t.Fatalf("start: %v", err)
	}
	// Visible index 0 is h1 itself; canonical target 0 is the span boundary,
	// which Move treats as a same-place reinsertion.
	if err := g.Drop(d, p, 0); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if !sameOrder(order(d), before) {
		t.Fatalf("same-place drop must leave order unchanged: %v", order(d))
	}
}
