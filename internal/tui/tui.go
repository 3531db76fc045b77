package tui

import (
	"context"

	"bingo-editor/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the editor on st and blocks until the user quits. The first
// load is started by the program itself.
func Run(ctx context.Context, st *store.EventStore, opt Options) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference()

	m := newAppModel(ctx, st, opt)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
