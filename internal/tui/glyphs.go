package tui

import (
	"os"
	"strings"
	"sync"
)

// Terminal apps can't change the user's actual font. Instead, we choose
// between Unicode and ASCII glyph sets for UI affordances (twisties, the
// cursor bar, the drop indicator). This helps on terminals/fonts that don't
// render some glyphs cleanly.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference() {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("RUNDOWN_TUI_GLYPHS")))
	switch v {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
		// Unknown value: ignore.
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	defer glyphsMu.RUnlock()
	return currentGlyphs
}

func glyphTwistyOpen() string {
	if glyphs() == glyphSetASCII {
		return "v"
	}
	return "▾"
}

func glyphTwistyClosed() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "▸"
}

func glyphCursor() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "▌"
}

func glyphDropLine() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}

func glyphFloated() string {
	if glyphs() == glyphSetASCII {
		return "~"
	}
	return "⇣"
}

func glyphSelected() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "•"
}
