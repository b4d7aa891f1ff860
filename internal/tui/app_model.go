package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"rundown-cli/internal/model"
	"rundown-cli/internal/rundown"
	"rundown-cli/internal/store"
)

const (
	rowHeight = 1
	overscan  = 4
)

type inputMode int

const (
	inputNone inputMode = iota
	inputAddSegment
	inputAddHeader
	inputRename
	inputDuration
	inputTalent
)

type reloadTickMsg struct{}

type appModel struct {
	s store.Store

	doc       *rundown.Document
	calc      *rundown.Calc
	collapsed *rundown.CollapseSet
	sel       *rundown.Selection
	drag      *rundown.Drag

	playheadID string

	cursor int // visible-order index
	scroll int // viewport offset in the same units as rowHeight

	width  int
	height int

	showScript bool

	input     textinput.Model
	inputMode inputMode

	flash    string
	flashErr bool

	// Last event log seq applied to this replica.
	eventCursor int64
}

func newAppModel(s store.Store) (*appModel, error) {
	ctx := context.Background()

	items, err := s.LoadItems(ctx)
	if err != nil {
		return nil, err
	}
	// The items table already reflects every past event.
	seq, err := s.LastEventSeq(ctx)
	if err != nil {
		return nil, err
	}

	m := &appModel{
		s:           s,
		doc:         rundown.NewDocument(items),
		collapsed:   rundown.NewCollapseSet(),
		sel:         rundown.NewSelection(),
		drag:        rundown.NewDrag(),
		eventCursor: seq,
	}
	m.calc = rundown.NewCalc(m.doc)

	ti := textinput.New()
	ti.CharLimit = 200
	m.input = ti

	if st, err := s.LoadUIState(); err == nil {
		for _, id := range st.CollapsedIDs {
			if _, ok := m.doc.Item(id); ok {
				m.collapsed.Set(id, true)
			}
		}
		m.calc.SetLocked(st.LockedNumbering)
		if _, ok := m.doc.Item(st.PlayheadID); ok {
			m.playheadID = st.PlayheadID
		}
		if ci := m.doc.IndexOf(st.CursorID); ci >= 0 {
			if vi := m.proj().ToVisible(ci); vi >= 0 {
				m.cursor = vi
			}
		}
	}
	m.clampCursor()
	return m, nil
}

func (m *appModel) proj() rundown.Projection {
	return rundown.Project(m.doc.Items(), m.collapsed.Map())
}

func (m *appModel) rows() []rundown.RowInfo {
	return m.calc.Rows(m.collapsed, m.playheadID, time.Now())
}

// cursorItem returns the visible row under the cursor.
func (m *appModel) cursorItem() (model.Item, bool) {
	p := m.proj()
	if m.cursor < 0 || m.cursor >= p.Len() {
		return model.Item{}, false
	}
	return p.Visible[m.cursor], true
}

func (m *appModel) clampCursor() {
	n := m.proj().Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
}

// bodyRows is how many item rows fit between the header and footer chrome.
func (m *appModel) bodyRows() int {
	h := m.height - 4
	if h < 4 {
		h = 4
	}
	return h
}

func (m *appModel) ensureCursorVisible() {
	top := m.cursor * rowHeight
	viewport := m.bodyRows() * rowHeight
	if top < m.scroll {
		m.scroll = top
	}
	if top+rowHeight > m.scroll+viewport {
		m.scroll = top + rowHeight - viewport
	}
	maxScroll := rundown.TotalHeight(m.proj().Len(), rowHeight) - viewport
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

func (m *appModel) window() rundown.Window {
	return rundown.ComputeWindow(m.proj().Len(), rowHeight, m.bodyRows()*rowHeight, m.scroll, overscan)
}

// persistDoc writes the full order plus the log entries describing how it got
// there, then fast-forwards the replica cursor past our own entries.
func (m *appModel) persistDoc(evs ...store.MutationEvent) {
	ctx := context.Background()
	if err := m.s.SaveItems(ctx, m.doc.Items()); err != nil {
		m.setFlash("save failed: "+err.Error(), true)
		return
	}
	for _, ev := range evs {
		if err := m.s.AppendEvent(ctx, ev); err != nil {
			m.setFlash("event log: "+err.Error(), true)
			return
		}
	}
	if seq, err := m.s.LastEventSeq(ctx); err == nil {
		m.eventCursor = seq
	}
}

func (m *appModel) persistUI() {
	st := &store.UIState{
		Version:         1,
		CollapsedIDs:    m.collapsed.IDs(),
		LockedNumbering: m.calc.Locked(),
		PlayheadID:      m.playheadID,
		EventCursor:     m.eventCursor,
	}
	if it, ok := m.cursorItem(); ok {
		st.CursorID = it.ID
	}
	_ = m.s.SaveUIState(st)
}

func (m *appModel) setFlash(msg string, isErr bool) {
	m.flash = msg
	m.flashErr = isErr
}

func (m *appModel) clearFlash() {
	m.flash = ""
	m.flashErr = false
}

// reloadFromDisk replaces the in-memory order with the stored one. Used by
// the explicit reload key; the tick-driven path replays events instead.
func (m *appModel) reloadFromDisk() error {
	ctx := context.Background()
	items, err := m.s.LoadItems(ctx)
	if err != nil {
		return err
	}
	seq, err := m.s.LastEventSeq(ctx)
	if err != nil {
		return err
	}
	locked := m.calc.Locked()
	m.doc = rundown.NewDocument(items)
	m.calc = rundown.NewCalc(m.doc)
	m.calc.SetLocked(locked)
	m.eventCursor = seq
	m.drag.Cancel()
	m.afterDocChange()
	return nil
}

// afterDocChange re-derives everything that hangs off the canonical order.
func (m *appModel) afterDocChange() {
	m.sel.Prune(m.doc)
	if _, ok := m.doc.Item(m.playheadID); !ok {
		m.playheadID = ""
	}
	m.clampCursor()
}

// moveCursorToID places the cursor on the row for id, expanding nothing: if
// the row is hidden inside a collapsed group the cursor stays where it is.
func (m *appModel) moveCursorToID(id string) {
	ci := m.doc.IndexOf(id)
	if ci < 0 {
		return
	}
	if vi := m.proj().ToVisible(ci); vi >= 0 {
		m.cursor = vi
		m.ensureCursorVisible()
	}
}
