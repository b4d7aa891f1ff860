package tui

import "testing"

func TestToggleAndClearSelection(t *testing.T) {
	m := newTestModel(t, demoItems())

	press(m, "down", "x")
	if !m.sel.Contains("a") || m.sel.Len() != 1 {
		t.Fatalf("expected only a selected")
	}

	press(m, "down", "x")
	if !m.sel.Contains("b") || m.sel.Len() != 2 {
		t.Fatalf("expected a and b selected; have %d", m.sel.Len())
	}

	press(m, "esc")
	if m.sel.Len() != 0 {
		t.Fatalf("escape should clear the selection")
	}
}

func TestRangeSelectFollowsVisibleOrder(t *testing.T) {
	m := newTestModel(t, demoItems())

	press(m, "down", "x") // anchor on a
	press(m, "G", "v")    // extend to the last visible row
	want := []string{"a", "b", "h2", "c"}
	if got := m.sel.IDs(m.doc); !sameIDs(got, want) {
		t.Fatalf("expected %v selected; got %v", want, got)
	}
}

func TestClickSelectOnCollapsedHeaderGrabsGroup(t *testing.T) {
	m := newTestModel(t, demoItems())

	press(m, "enter", "c") // fold h1, then click-select it
	for _, id := range []string{"h1", "a", "b"} {
		if !m.sel.Contains(id) {
			t.Fatalf("expected %s in the selection", id)
		}
	}
	if m.sel.Contains("h2") || m.sel.Contains("c") {
		t.Fatalf("click-select must replace, not grow")
	}
}

func TestDeleteRemovesSelectionAndLogsEvents(t *testing.T) {
	m := newTestModel(t, demoItems())

	press(m, "down", "x", "down", "x", "D")
	if !sameIDs(docIDs(m), []string{"h1", "h2", "c"}) {
		t.Fatalf("expected a and b removed; got %v", docIDs(m))
	}
	if m.sel.Len() != 0 {
		t.Fatalf("selection should be cleared after delete")
	}
}

func TestDeleteWithoutSelectionRemovesCursorRow(t *testing.T) {
	m := newTestModel(t, demoItems())

	press(m, "G", "D")
	if !sameIDs(docIDs(m), []string{"h1", "a", "b", "h2"}) {
		t.Fatalf("expected only c removed; got %v", docIDs(m))
	}
	if it, _ := m.cursorItem(); it.ID != "h2" {
		t.Fatalf("cursor should clamp to the last row; got %q", it.ID)
	}
}
