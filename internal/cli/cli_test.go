package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"rundown-cli/internal/model"
	"rundown-cli/internal/store"
)

func runCmd(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--dir", dir}, args...))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("rundown %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func workspace(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), ".rundown")
}

func TestInitSeedsDemoShow(t *testing.T) {
	dir := workspace(t)
	out := runCmd(t, dir, "init")
	if !strings.Contains(out, "initialized") {
		t.Fatalf("unexpected init output: %q", out)
	}

	items, err := (store.Store{Dir: dir}).LoadItems(context.Background())
	if err != nil {
		t.Fatalf("LoadItems: %v", err)
	}
	if len(items) == 0 {
		t.Fatalf("expected seeded rows")
	}
	if !items[0].IsHeader() {
		t.Fatalf("demo show should open with a block header; got %+v", items[0])
	}

	// Second init must refuse instead of clobbering.
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--dir", dir, "init"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected re-init to fail")
	}
}

func TestAddMoveRemoveRoundTrip(t *testing.T) {
	dir := workspace(t)
	runCmd(t, dir, "init", "--empty")

	runCmd(t, dir, "add", "--header", "A Block")
	runCmd(t, dir, "add", "Cold Open", "--duration", "1:00")
	runCmd(t, dir, "add", "--header", "B Block")
	runCmd(t, dir, "add", "Weather", "--duration", "1:30", "--talent", "Dana")

	s := store.Store{Dir: dir}
	items, err := s.LoadItems(context.Background())
	if err != nil {
		t.Fatalf("LoadItems: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected 4 rows; got %d", len(items))
	}
	if items[3].Duration != 90 || items[3].Talent != "Dana" {
		t.Fatalf("flags not applied: %+v", items[3])
	}

	// Moving the B Block header drags Weather along.
	runCmd(t, dir, "mv", items[2].ID, "--to", "0")
	items, _ = s.LoadItems(context.Background())
	if items[0].Name != "B Block" || items[1].Name != "Weather" {
		t.Fatalf("expected the group at the top; got %v", names(items))
	}

	runCmd(t, dir, "rm", items[1].ID)
	items, _ = s.LoadItems(context.Background())
	if len(items) != 3 {
		t.Fatalf("expected 3 rows after rm; got %v", names(items))
	}

	// Every mutation must land in the event log for live TUI replicas.
	evs, err := s.EventsSince(context.Background(), 0)
	if err != nil {
		t.Fatalf("EventsSince: %v", err)
	}
	if len(evs) != 6 {
		t.Fatalf("expected 6 logged mutations; got %d", len(evs))
	}
}

func TestAddAfterInsertsMidShow(t *testing.T) {
	dir := workspace(t)
	runCmd(t, dir, "init", "--empty")
	runCmd(t, dir, "add", "--header", "A Block")
	runCmd(t, dir, "add", "First")

	s := store.Store{Dir: dir}
	items, _ := s.LoadItems(context.Background())
	runCmd(t, dir, "add", "Breaking", "--after", items[0].ID)

	items, _ = s.LoadItems(context.Background())
	if !strings.HasPrefix(names(items), "A Block, Breaking, First") {
		t.Fatalf("expected insert right after the header; got %v", names(items))
	}
}

func TestShowRendersLabelsAndTotal(t *testing.T) {
	dir := workspace(t)
	runCmd(t, dir, "init")

	out := runCmd(t, dir, "show")
	// go-pretty uppercases header cells.
	for _, want := range []string{"NAME", "total runtime"} {
		if !strings.Contains(out, want) {
			t.Fatalf("show output missing %q:\n%s", want, out)
		}
	}
	// Section labels are letters, segments numbers.
	if !strings.Contains(out, " A ") || !strings.Contains(out, " 1 ") {
		t.Fatalf("expected row labels in table:\n%s", out)
	}
}

func names(items []model.Item) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, it.Name)
	}
	return strings.Join(parts, ", ")
}
