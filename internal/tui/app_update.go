package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"rundown-cli/internal/model"
	"rundown-cli/internal/rundown"
	"rundown-cli/internal/store"
)

const reloadEvery = 2 * time.Second

func tickReload() tea.Cmd {
	return tea.Tick(reloadEvery, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

func (m *appModel) Init() tea.Cmd {
	return tickReload()
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()
		return m, nil

	case reloadTickMsg:
		// Fold in edits made by CLI commands (or another terminal) against
		// the same workspace. Replaying the shared log keeps this replica's
		// selection and collapse state intact across remote edits.
		m.applyRemoteEvents()
		return m, tickReload()

	case tea.KeyMsg:
		if m.inputMode != inputNone {
			return m.updateInput(msg)
		}
		m.clearFlash()
		if m.drag.Active() {
			return m.updateDrag(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *appModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.persistUI()
		return m, tea.Quit

	case "r":
		// Reload from disk (so running CLI commands in another terminal is reflected).
		if err := m.reloadFromDisk(); err != nil {
			m.setFlash("reload: "+err.Error(), true)
		}
		return m, nil

	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "pgup":
		m.moveCursor(-m.bodyRows())
	case "pgdown":
		m.moveCursor(m.bodyRows())
	case "home", "g":
		m.cursor = 0
		m.ensureCursorVisible()
	case "end", "G":
		m.cursor = m.proj().Len() - 1
		m.clampCursor()

	case "enter":
		m.toggleCollapse()
	case "z":
		m.toggleCollapseAll()

	case " ", "x":
		if it, ok := m.cursorItem(); ok {
			m.sel.Toggle(it.ID)
		}
	case "c":
		if it, ok := m.cursorItem(); ok {
			m.sel.Click(m.doc, m.collapsed.Map(), it.ID)
		}
	case "v":
		if it, ok := m.cursorItem(); ok {
			m.sel.RangeTo(m.doc, m.proj(), it.ID)
		}
	case "esc":
		m.sel.Clear()

	case "d":
		if err := m.drag.Start(m.doc, m.proj(), m.cursor); err != nil {
			m.setFlash(err.Error(), true)
		}

	case "f":
		m.toggleFloat()
	case "p":
		m.togglePlayhead()
	case "l":
		m.calc.SetLocked(!m.calc.Locked())
		m.persistUI()

	case "a":
		m.openInput(inputAddSegment, "segment name", "")
	case "A":
		m.openInput(inputAddHeader, "header name", "")
	case "e":
		if it, ok := m.cursorItem(); ok {
			m.openInput(inputRename, "name", it.Name)
		}
	case "t":
		if it, ok := m.cursorItem(); ok && !it.IsHeader() {
			m.openInput(inputDuration, "duration (m:ss)", model.FormatDuration(it.Duration))
		}
	case "T":
		if it, ok := m.cursorItem(); ok && !it.IsHeader() {
			m.openInput(inputTalent, "talent", it.Talent)
		}

	case "D":
		m.removeRows()

	case "tab":
		m.showScript = !m.showScript
		m.ensureCursorVisible()
	}
	return m, nil
}

func (m *appModel) updateDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.nudgeIndicator(-1)
	case "down", "j":
		m.nudgeIndicator(1)
	case "enter":
		m.dropDrag()
	case "esc", "q":
		m.drag.Cancel()
	case "ctrl+c":
		m.persistUI()
		return m, tea.Quit
	}
	return m, nil
}

func (m *appModel) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *appModel) nudgeIndicator(delta int) {
	ind := m.drag.Indicator() + delta
	if ind < 0 {
		ind = 0
	}
	// One past the last visible row means "append to the end".
	if n := m.proj().Len(); ind > n {
		ind = n
	}
	m.drag.Over(ind)
	m.scrollIndicatorIntoView()
}

func (m *appModel) scrollIndicatorIntoView() {
	top := m.drag.Indicator() * rowHeight
	viewport := m.bodyRows() * rowHeight
	if top < m.scroll {
		m.scroll = top
	}
	if top+rowHeight > m.scroll+viewport {
		m.scroll = top + rowHeight - viewport
	}
}

func (m *appModel) dropDrag() {
	p := m.proj()
	ids := append([]string(nil), m.drag.Payload()...)
	targetVis := m.drag.Indicator()

	// The canonical target the gesture resolves to; recorded in the event log
	// so other replicas replay the identical move.
	to := m.doc.Len()
	if targetVis < p.Len() {
		to = p.ToCanonical(targetVis)
	}

	if err := m.drag.Drop(m.doc, p, targetVis); err != nil {
		m.setFlash(err.Error(), true)
		return
	}
	m.persistDoc(store.MutationEvent{Op: "move", IDs: ids, To: to})
	if len(ids) > 0 {
		m.moveCursorToID(ids[0])
	}
	m.afterDocChange()
}

func (m *appModel) toggleCollapse() {
	it, ok := m.cursorItem()
	if !ok || !it.IsHeader() {
		return
	}
	m.collapsed.Toggle(it.ID)
	// Collapsing above the cursor can shrink the visible order.
	m.moveCursorToID(it.ID)
	m.clampCursor()
	m.persistUI()
}

func (m *appModel) toggleCollapseAll() {
	anyExpanded := false
	for _, it := range m.doc.Items() {
		if it.IsHeader() && !m.collapsed.IsCollapsed(it.ID) {
			anyExpanded = true
			break
		}
	}
	var keep string
	if it, ok := m.cursorItem(); ok {
		keep = it.ID
		if !it.IsHeader() {
			keep = m.doc.HeaderOf(it.ID)
		}
	}
	for _, it := range m.doc.Items() {
		if it.IsHeader() {
			m.collapsed.Set(it.ID, anyExpanded)
		}
	}
	m.moveCursorToID(keep)
	m.clampCursor()
	m.persistUI()
}

// targetIDs is what row-level commands operate on: the selection when the
// cursor row is part of it, otherwise just the cursor row.
func (m *appModel) targetIDs() []string {
	it, ok := m.cursorItem()
	if !ok {
		return nil
	}
	if m.sel.Len() > 0 && m.sel.Contains(it.ID) {
		return m.sel.IDs(m.doc)
	}
	return []string{it.ID}
}

func (m *appModel) toggleFloat() {
	var evs []store.MutationEvent
	for _, id := range m.targetIDs() {
		it, ok := m.doc.Item(id)
		if !ok || it.IsHeader() {
			continue
		}
		p := patchFloated(!it.Floated)
		if err := m.doc.Update(id, p); err != nil {
			continue
		}
		evs = append(evs, store.MutationEvent{Op: "update", ID: id, Patch: &p})
	}
	if len(evs) > 0 {
		m.persistDoc(evs...)
	}
}

func (m *appModel) togglePlayhead() {
	it, ok := m.cursorItem()
	if !ok {
		return
	}
	if m.playheadID == it.ID {
		m.playheadID = ""
	} else {
		m.playheadID = it.ID
	}
	m.persistUI()
}

func (m *appModel) removeRows() {
	ids := m.targetIDs()
	if len(ids) == 0 {
		return
	}
	var evs []store.MutationEvent
	for _, id := range ids {
		if err := m.doc.Remove(id); err != nil {
			continue
		}
		evs = append(evs, store.MutationEvent{Op: "remove", ID: id})
	}
	if len(evs) == 0 {
		return
	}
	m.persistDoc(evs...)
	m.sel.Clear()
	m.afterDocChange()
}

func (m *appModel) openInput(mode inputMode, placeholder, value string) {
	m.inputMode = mode
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *appModel) closeInput() {
	m.inputMode = inputNone
	m.input.Blur()
	m.input.SetValue("")
}

func (m *appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeInput()
		return m, nil
	case "enter":
		m.commitInput()
		return m, nil
	case "ctrl+c":
		m.persistUI()
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *appModel) commitInput() {
	value := strings.TrimSpace(m.input.Value())
	mode := m.inputMode
	m.closeInput()
	if value == "" && mode != inputTalent {
		return
	}

	switch mode {
	case inputAddSegment:
		m.insertNew(model.ItemKindSegment, value)
	case inputAddHeader:
		m.insertNew(model.ItemKindHeader, value)
	case inputRename:
		m.patchCursor(patchName(value))
	case inputDuration:
		secs, err := model.ParseDuration(value)
		if err != nil {
			m.setFlash(err.Error(), true)
			return
		}
		m.patchCursor(patchDuration(secs))
	case inputTalent:
		m.patchCursor(patchTalent(value))
	}
}

func (m *appModel) insertNew(kind model.ItemKind, name string) {
	now := time.Now().UTC()
	it := model.Item{
		ID:        store.NewItemID(),
		Kind:      kind,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	at := m.doc.Len()
	if cur, ok := m.cursorItem(); ok {
		at = m.doc.IndexOf(cur.ID) + 1
	}
	if err := m.doc.Insert(it, at); err != nil {
		m.setFlash(err.Error(), true)
		return
	}
	m.persistDoc(store.MutationEvent{Op: "insert", Item: &it, At: at})
	m.moveCursorToID(it.ID)
}

func (m *appModel) patchCursor(p rundown.Patch) {
	it, ok := m.cursorItem()
	if !ok {
		return
	}
	if err := m.doc.Update(it.ID, p); err != nil {
		m.setFlash(err.Error(), true)
		return
	}
	m.persistDoc(store.MutationEvent{Op: "update", ID: it.ID, Patch: &p})
}

func (m *appModel) applyRemoteEvents() {
	ctx := context.Background()
	evs, err := m.s.EventsSince(ctx, m.eventCursor)
	if err != nil || len(evs) == 0 {
		return
	}
	for _, ev := range evs {
		_ = store.Apply(m.doc, ev)
		m.eventCursor = ev.Seq
	}
	m.drag.Cancel()
	m.afterDocChange()
}
