package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"rundown-cli/internal/model"
)

func (m *appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "loading..."
	}

	header := m.viewHeader()
	body := m.viewBody()
	status := m.viewStatusLine()
	footer := m.viewFooter()

	return strings.Join([]string{header, "", body, status, footer}, "\n")
}

func (m *appModel) viewHeader() string {
	now := time.Now()
	total := m.calc.Total(m.collapsed, m.playheadID, now)

	parts := []string{"Rundown", m.s.Dir, "total " + model.FormatDuration(total)}
	if m.calc.Locked() {
		parts = append(parts, "locked #")
	}
	if m.drag.Active() {
		parts = append(parts, fmt.Sprintf("moving %d row(s)", len(m.drag.Payload())))
	}
	line := strings.Join(parts, "  ·  ")
	if xansi.StringWidth(line) > m.width {
		line = xansi.Cut(line, 0, m.width)
	}
	return lipgloss.NewStyle().Bold(true).Render(line)
}

// viewBody renders only the windowed slice of the visible order: rows are
// materialized for the window (viewport plus overscan) and the viewport is
// cut out of that, so off-screen rows never pay rendering cost.
func (m *appModel) viewBody() string {
	p := m.proj()
	infos := m.rows()
	win := m.window()

	listW := m.width
	if m.showScript {
		listW = m.width / 2
	}

	dragging := map[string]bool{}
	if m.drag.Active() {
		for _, id := range m.drag.Payload() {
			dragging[id] = true
		}
	}

	lines := make([]string, 0, win.Len()+1)
	for local := 0; local < win.Len(); local++ {
		vi := win.ToVisible(local)
		it := p.Visible[vi]
		ci := p.ToCanonical(vi)
		rc := rowContext{
			collapsed: m.collapsed.IsCollapsed(it.ID),
			focused:   vi == m.cursor && !m.drag.Active(),
			selected:  m.sel.Contains(it.ID),
			dragging:  dragging[it.ID],
			width:     listW,
		}
		if ci >= 0 && ci < len(infos) {
			rc.info = infos[ci]
		}
		lines = append(lines, renderRow(it, rc))
	}

	// The drop indicator is a gap between rows; splice it into the window
	// so the user sees exactly where the payload lands.
	if m.drag.Active() {
		at := m.drag.Indicator() - win.Start
		if at >= 0 && at <= len(lines) {
			lines = append(lines[:at], append([]string{renderDropLine(listW)}, lines[at:]...)...)
		}
	}

	// Cut the viewport out of the materialized window.
	first := m.scroll/rowHeight - win.Start
	if first < 0 {
		first = 0
	}
	n := m.bodyRows()
	if first > len(lines) {
		first = len(lines)
	}
	end := first + n
	if end > len(lines) {
		end = len(lines)
	}
	view := lines[first:end]

	for len(view) < n {
		view = append(view, "")
	}
	list := strings.Join(view, "\n")

	if !m.showScript {
		return list
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, list, " ", m.viewScriptPane(m.width-listW-1, n))
}

// viewScriptPane shows the cursor row's script (or notes) as rendered markdown.
func (m *appModel) viewScriptPane(width, height int) string {
	if width < 12 {
		return ""
	}
	it, ok := m.cursorItem()
	if !ok {
		return ""
	}
	body := it.Script
	if strings.TrimSpace(body) == "" {
		body = it.Notes
	}
	var out string
	if strings.TrimSpace(body) == "" {
		out = styleMuted().Render("(no script)")
	} else {
		out = renderMarkdown(body, width-2)
	}
	title := lipgloss.NewStyle().Bold(true).Render(xansi.Cut(it.Name, 0, width))
	pane := title + "\n" + out

	// Clamp to the list height so the join stays rectangular.
	paneLines := strings.Split(pane, "\n")
	if len(paneLines) > height {
		paneLines = paneLines[:height]
	}
	return strings.Join(paneLines, "\n")
}

func (m *appModel) viewStatusLine() string {
	if m.inputMode != inputNone {
		return renderInputLine(m.width, m.input.View())
	}
	if m.flash != "" {
		st := styleMuted()
		if m.flashErr {
			st = lipgloss.NewStyle().Foreground(colorFlashErrorFg)
		}
		return st.Render(xansi.Cut(m.flash, 0, m.width))
	}
	if n := m.sel.Len(); n > 0 {
		return styleMuted().Render(fmt.Sprintf("%d selected", n))
	}
	return ""
}

func (m *appModel) viewFooter() string {
	var hints string
	switch {
	case m.inputMode != inputNone:
		hints = "enter: confirm  esc: cancel"
	case m.drag.Active():
		hints = "up/down: position  enter: drop  esc: cancel"
	default:
		hints = "x: select  v: range  d: move  enter: fold  f: float  p: playhead  l: lock#  a/A: add  e/t: edit  D: delete  tab: script  q: quit"
	}
	if xansi.StringWidth(hints) > m.width {
		hints = xansi.Cut(hints, 0, m.width)
	}
	return lipgloss.NewStyle().Faint(true).Render(hints)
}
