package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"rundown-cli/internal/model"
	"rundown-cli/internal/store"
)

func seg(id, name string, dur int) model.Item {
	now := time.Now().UTC()
	return model.Item{ID: id, Kind: model.ItemKindSegment, Name: name, Duration: dur, CreatedAt: now, UpdatedAt: now}
}

func hdr(id, name string) model.Item {
	now := time.Now().UTC()
	return model.Item{ID: id, Kind: model.ItemKindHeader, Name: name, CreatedAt: now, UpdatedAt: now}
}

func demoItems() []model.Item {
	return []model.Item{
		hdr("h1", "A Block"),
		seg("a", "Cold Open", 60),
		seg("b", "Headlines", 30),
		hdr("h2", "B Block"),
		seg("c", "Weather", 90),
	}
}

func newTestModel(t *testing.T, items []model.Item) *appModel {
	t.Helper()
	s := store.Store{Dir: t.TempDir()}
	if err := s.Ensure(); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if err := s.SaveItems(context.Background(), items); err != nil {
		t.Fatalf("SaveItems: %v", err)
	}
	m, err := newAppModel(s)
	if err != nil {
		t.Fatalf("newAppModel: %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func press(m *appModel, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "pgup":
			msg = tea.KeyMsg{Type: tea.KeyPgUp}
		case "pgdown":
			msg = tea.KeyMsg{Type: tea.KeyPgDown}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func visibleIDs(m *appModel) []string {
	p := m.proj()
	ids := make([]string, 0, p.Len())
	for _, it := range p.Visible {
		ids = append(ids, it.ID)
	}
	return ids
}

func docIDs(m *appModel) []string {
	ids := make([]string, 0, m.doc.Len())
	for _, it := range m.doc.Items() {
		ids = append(ids, it.ID)
	}
	return ids
}

func sameIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
