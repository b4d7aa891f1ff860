package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"rundown-cli/internal/model"
	"rundown-cli/internal/rundown"
)

// rowContext carries everything renderRow needs besides the item itself.
type rowContext struct {
	info      rundown.RowInfo
	collapsed bool
	focused   bool
	selected  bool
	dragging  bool // row is part of the drag payload
	width     int
}

func renderRow(it model.Item, rc rowContext) string {
	width := rc.width
	if width < 20 {
		width = 20
	}

	base := lipgloss.NewStyle()
	switch {
	case rc.info.Status == model.StatusCurrent:
		base = base.Background(colorCurrentBg).Foreground(colorCurrentFg).Bold(true)
	case it.IsHeader():
		base = base.Background(colorHeaderBg).Foreground(colorHeaderFg).Bold(true)
	case it.Floated:
		base = base.Foreground(colorFloated)
	case rc.info.Status == model.StatusCompleted:
		base = base.Foreground(colorCompleted)
	}
	if rc.selected && rc.info.Status != model.StatusCurrent {
		base = base.Background(colorSelectedBg).Foreground(colorSelectedFg)
	}
	if rc.dragging {
		base = faintIfDark(base).Italic(true)
	}

	cursor := " "
	if rc.focused {
		cursor = glyphCursor()
		base = base.Bold(true)
	}
	sel := " "
	if rc.selected {
		sel = glyphSelected()
	}

	twisty := "  "
	if it.IsHeader() {
		if rc.collapsed {
			twisty = glyphTwistyClosed() + " "
		} else {
			twisty = glyphTwistyOpen() + " "
		}
	}

	name := strings.TrimSpace(it.Name)
	if name == "" {
		name = "(untitled)"
	}
	if it.Floated {
		name += " " + glyphFloated()
	}

	left := fmt.Sprintf("%s%s %-4s %s%s", cursor, sel, rc.info.Label, twisty, name)
	if !it.IsHeader() && strings.TrimSpace(it.Talent) != "" {
		left += "  " + it.Talent
	}

	// Headers show the group aggregate; segments their own duration.
	dur := it.Duration
	if it.IsHeader() {
		dur = rc.info.End - rc.info.Start
	}
	right := model.FormatDuration(dur) + " "

	// Fill the gap so the duration column stays right-aligned and the
	// background highlight covers the whole row.
	gap := width - xansi.StringWidth(left) - xansi.StringWidth(right)
	var line string
	if gap >= 1 {
		line = left + strings.Repeat(" ", gap) + right
	} else {
		line = xansi.Cut(left, 0, width-xansi.StringWidth(right)-1) + " " + right
	}
	if xansi.StringWidth(line) > width {
		line = xansi.Cut(line, 0, width)
	}
	return base.Render(line)
}

func renderDropLine(width int) string {
	if width < 4 {
		width = 4
	}
	line := strings.Repeat(glyphDropLine(), width)
	return lipgloss.NewStyle().Foreground(colorDropLine).Render(line)
}
