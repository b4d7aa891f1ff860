package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// UIState stores small, user-facing state for restoring the editor on
// relaunch. It lives inside the workspace directory so it is naturally scoped
// per workspace, and it is best effort: callers tolerate missing or invalid
// data.
type UIState struct {
	Version int `json:"version"`

	CollapsedIDs    []string `json:"collapsedIds,omitempty"`
	LockedNumbering bool     `json:"lockedNumbering,omitempty"`
	PlayheadID      string   `json:"playheadId,omitempty"`
	CursorID        string   `json:"cursorId,omitempty"`

	// EventCursor is the last event log seq this workspace replica applied.
	EventCursor int64 `json:"eventCursor,omitempty"`
}

func (s Store) uiStatePath() string {
	return filepath.Join(s.Dir, uiStateFileName)
}

func (s Store) LoadUIState() (*UIState, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return &UIState{Version: 1}, nil
	}
	b, err := os.ReadFile(s.uiStatePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &UIState{Version: 1}, nil
		}
		return nil, err
	}
	var st UIState
	if err := json.Unmarshal(b, &st); err != nil {
		// Corrupt UI state is not worth failing startup over.
		return &UIState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func (s Store) SaveUIState(st *UIState) error {
	if st == nil || strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	st.Version = 1
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.uiStatePath(), append(b, '\n'), 0o644)
}
