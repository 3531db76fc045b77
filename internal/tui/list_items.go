package tui

import (
	"fmt"

	"bingo-editor/internal/model"

	"github.com/charmbracelet/bubbles/list"
)

type boardItem struct {
	index int
	board model.Board
}

func (i boardItem) FilterValue() string { return boardLabel(i.index) }
func (i boardItem) Title() string       { return boardLabel(i.index) }
func (i boardItem) Description() string {
	return fmt.Sprintf("%dq %dr %dg",
		len(i.board.Quests), len(i.board.Rewards), len(i.board.GoldenTiles))
}

// newList builds a render-only list: selection lives in the store, so the
// list never handles keys itself.
func newList(title string, items []list.Item) list.Model {
	d := list.NewDefaultDelegate()
	d.SetSpacing(0)
	l := list.New(items, d, 0, 0)
	l.Title = title
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("board", "boards")
	return l
}
