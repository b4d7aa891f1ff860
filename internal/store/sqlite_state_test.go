package store

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: filepath.Join(t.TempDir(), ".rundown")}

	items := SeedItems()
	items[1].Script = "# Cold open\n\nRoll VT."
	items[1].Custom = map[string]string{"cam": "2"}
	if err := s.SaveItems(ctx, items); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.LoadItems(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(items) {
		t.Fatalf("loaded %d items, want %d", len(got), len(items))
	}
	for i := range items {
		if got[i].ID != items[i].ID {
			t.Fatalf("order not preserved at %d: %s != %s", i, got[i].ID, items[i].ID)
		}
	}
	if got[1].Script != items[1].Script || got[1].Custom["cam"] != "2" {
		t.Fatalf("fields lost in round trip: %+v", got[1])
	}

	// Saving again replaces, never appends.
	if err := s.SaveItems(ctx, items[:3]); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err = s.LoadItems(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("loaded %d items, want 3", len(got))
	}
}

func TestLoadEmptyWorkspace(t *testing.T) {
	s := Store{Dir: filepath.Join(t.TempDir(), ".rundown")}
	got, err := s.LoadItems(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty rundown, got %d items", len(got))
	}
}

func TestDiscoverDir(t *testing.T) {
	root := t.TempDir()
	ws := filepath.Join(root, ".rundown")
	s := Store{Dir: ws}
	if err := s.Ensure(); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := (Store{Dir: nested}).Ensure(); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	found, ok := DiscoverDir(nested)
	if !ok || found != ws {
		t.Fatalf("DiscoverDir = %q, %v; want %q", found, ok, ws)
	}
	if _, ok := DiscoverDir(filepath.Join("/", "nonexistent-root-path")); ok {
		t.Fatalf("expected no discovery outside a workspace")
	}
}

func TestUIStateRoundTrip(t *testing.T) {
	s := Store{Dir: filepath.Join(t.TempDir(), ".rundown")}
	st, err := s.LoadUIState()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.Version != 1 || len(st.CollapsedIDs) != 0 {
		t.Fatalf("unexpected fresh state: %+v", st)
	}
	st.CollapsedIDs = []string{"item-a", "item-b"}
	st.LockedNumbering = true
	st.PlayheadID = "item-c"
	st.EventCursor = 42
	if err := s.SaveUIState(st); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.LoadUIState()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.LockedNumbering || got.PlayheadID != "item-c" || got.EventCursor != 42 || len(got.CollapsedIDs) != 2 {
		t.Fatalf("round trip lost state: %+v", got)
	}
}

func TestNewItemID(t *testing.T) {
	a, b := NewItemID(), NewItemID()
	if a == b {
		t.Fatalf("ids must be unique")
	}
	if len(a) <= len("item-") || a[:5] != "item-" {
		t.Fatalf("unexpected id shape: %q", a)
	}
}
