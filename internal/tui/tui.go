package tui

import (
	"rundown-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(s store.Store) error {
	applyColorProfilePreference()
	applyGlyphPreference()

	m, err := newAppModel(s)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
