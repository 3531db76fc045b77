package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const maxCellWidth = 28

// renderGrid draws a bordered table with a row cursor and, when focused, a
// highlighted cursor cell. cursorRow < 0 disables the cursor.
func renderGrid(headers []string, rows [][]string, cursorRow, cursorCol int, focused bool) string {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = make([]string, len(r))
		for j, c := range r {
			cells[i][j] = truncate(c, maxCellWidth)
		}
	}

	base := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return base.Bold(true).Foreground(colorChromeMuted)
			case row == cursorRow && col == cursorCol && focused:
				return base.Foreground(colorCursorCellFg).Background(colorCursorCellBg).Bold(true)
			case row == cursorRow:
				return base.Foreground(colorSelectedFg).Background(colorSelectedBg)
			}
			return base
		})
	return t.String()
}
