package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"bingo-editor/internal/model"
)

const tuiStateFileName = "tui_state.json"

// TUIState stores display preferences restored on the next launch. It never
// holds document data.
//
// Loading is best effort: a missing or corrupt file yields the default state.
type TUIState struct {
	Version int `json:"version"`

	// ActiveSection is one of: quests|rewards|golden_tile
	ActiveSection string `json:"activeSection,omitempty"`

	TitlesCollapsed bool `json:"titlesCollapsed,omitempty"`

	// HiddenColumns maps a section to the field names hidden in its table.
	HiddenColumns map[string][]string `json:"hiddenColumns,omitempty"`
}

// Section returns the stored active section, defaulting to quests.
func (st *TUIState) Section() model.Section {
	if st == nil {
		return model.SectionQuests
	}
	sec, err := model.ParseSection(st.ActiveSection)
	if err != nil {
		return model.SectionQuests
	}
	return sec
}

// DefaultTUIStateDir is the per-user directory for TUI state.
func DefaultTUIStateDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(dir) == "" {
		return ""
	}
	return filepath.Join(dir, "bingo")
}

// LoadTUIState reads the state file from dir. An empty dir disables
// persistence.
func LoadTUIState(dir string) (*TUIState, error) {
	if strings.TrimSpace(dir) == "" {
		return &TUIState{Version: 1}, nil
	}
	b, err := os.ReadFile(filepath.Join(dir, tuiStateFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &TUIState{Version: 1}, nil
		}
		return nil, err
	}
	var st TUIState
	if err := json.Unmarshal(b, &st); err != nil {
		// Corrupt file: treat as missing.
		return &TUIState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func SaveTUIState(dir string, st *TUIState) error {
	if st == nil || strings.TrimSpace(dir) == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(dir, tuiStateFileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
