package tui

import "testing"

func TestCursorMovesOverVisibleRows(t *testing.T) {
	m := newTestModel(t, demoItems())

	if it, _ := m.cursorItem(); it.ID != "h1" {
		t.Fatalf("expected cursor on h1; got %q", it.ID)
	}
	press(m, "down", "down")
	if it, _ := m.cursorItem(); it.ID != "b" {
		t.Fatalf("expected cursor on b; got %q", it.ID)
	}
	press(m, "G")
	if it, _ := m.cursorItem(); it.ID != "c" {
		t.Fatalf("expected cursor on last row c; got %q", it.ID)
	}
	press(m, "g")
	if it, _ := m.cursorItem(); it.ID != "h1" {
		t.Fatalf("expected cursor back on h1; got %q", it.ID)
	}
}

func TestEnterTogglesHeaderCollapse(t *testing.T) {
	m := newTestModel(t, demoItems())

	press(m, "enter")
	if !sameIDs(visibleIDs(m), []string{"h1", "h2", "c"}) {
		t.Fatalf("expected [h1 h2 c] after collapsing h1; got %v", visibleIDs(m))
	}
	if it, _ := m.cursorItem(); it.ID != "h1" {
		t.Fatalf("cursor should stay on the folded header; got %q", it.ID)
	}

	press(m, "enter")
	if !sameIDs(visibleIDs(m), []string{"h1", "a", "b", "h2", "c"}) {
		t.Fatalf("expected full order after expanding; got %v", visibleIDs(m))
	}
}

func TestEnterOnSegmentIsNoOp(t *testing.T) {
	m := newTestModel(t, demoItems())

	press(m, "down", "enter")
	if !sameIDs(visibleIDs(m), []string{"h1", "a", "b", "h2", "c"}) {
		t.Fatalf("segment rows must not fold; got %v", visibleIDs(m))
	}
}

func TestToggleCollapseAllKeepsCursorSection(t *testing.T) {
	m := newTestModel(t, demoItems())

	// Cursor on segment b inside h1's group.
	press(m, "down", "down", "z")
	if !sameIDs(visibleIDs(m), []string{"h1", "h2"}) {
		t.Fatalf("expected all sections folded; got %v", visibleIDs(m))
	}
	if it, _ := m.cursorItem(); it.ID != "h1" {
		t.Fatalf("cursor should land on the enclosing header; got %q", it.ID)
	}

	press(m, "z")
	if !sameIDs(visibleIDs(m), []string{"h1", "a", "b", "h2", "c"}) {
		t.Fatalf("expected everything expanded again; got %v", visibleIDs(m))
	}
}

func TestCollapseStateSurvivesRelaunch(t *testing.T) {
	m := newTestModel(t, demoItems())

	press(m, "enter") // fold h1
	m.persistUI()

	m2, err := newAppModel(m.s)
	if err != nil {
		t.Fatalf("newAppModel: %v", err)
	}
	if !m2.collapsed.IsCollapsed("h1") {
		t.Fatalf("expected h1 to stay folded across relaunch")
	}
	if !sameIDs(visibleIDs(m2), []string{"h1", "h2", "c"}) {
		t.Fatalf("expected restored projection; got %v", visibleIDs(m2))
	}
}
