package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit        key.Binding
	Help        key.Binding
	Preview     key.Binding
	Reset       key.Binding
	NextPane    key.Binding
	PrevPane    key.Binding
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	NextSection key.Binding
	PrevSection key.Binding
	Edit        key.Binding
	Add         key.Binding
	Delete      key.Binding
	Theme       key.Binding
	Titles      key.Binding
	Columns     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Preview:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "document preview")),
		Reset:       key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset (discard edits and reload)")),
		NextPane:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		PrevPane:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous pane")),
		Up:          key.NewBinding(key.WithKeys("up", "k", "ctrl+p"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j", "ctrl+n"), key.WithHelp("↓/j", "down")),
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous column")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
		NextSection: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next section")),
		PrevSection: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "previous section")),
		Edit:        key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter/e", "edit cell")),
		Add:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add board/row/title")),
		Delete:      key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete board/row/title")),
		Theme:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "edit theme")),
		Titles:      key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "collapse/expand titles")),
		Columns:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "show/hide columns")),
	}
}

func (k keyMap) all() []key.Binding {
	return []key.Binding{
		k.NextPane, k.PrevPane, k.Up, k.Down, k.Left, k.Right,
		k.NextSection, k.PrevSection, k.Edit, k.Add, k.Delete,
		k.Theme, k.Titles, k.Columns, k.Preview, k.Reset, k.Help, k.Quit,
	}
}

// helpMarkdown lists every binding as a markdown table.
func (k keyMap) helpMarkdown() string {
	var b strings.Builder
	b.WriteString("# Keys\n\n| key | action |\n| --- | --- |\n")
	for _, kb := range k.all() {
		h := kb.Help()
		fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
	}
	b.WriteString("\nWhile editing a cell: `enter` or `tab` commits, `esc` cancels. ")
	b.WriteString("Numbers must be non-negative; spotlight accepts `true` or `false`.\n\n")
	b.WriteString("Edits live in memory only. `R` discards them and reloads the source.\n")
	return b.String()
}
