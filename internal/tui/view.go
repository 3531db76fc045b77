package tui

import (
	"fmt"
	"strings"

	"bingo-editor/internal/loader"
	"bingo-editor/internal/model"

	"github.com/charmbracelet/lipgloss"
)

const sidebarWidth = 22

func (m appModel) View() string {
	w, h := m.size()

	switch st := m.st.Status(); st.State {
	case loader.StateLoading:
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading event data from "+emptyAsDash(m.source)+"…")
	case loader.StateError:
		body := strings.Join([]string{
			styleError().Render("Could not load event data"),
			"",
			st.Err,
			"",
			styleMuted().Render("R: retry   q: quit"),
		}, "\n")
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, body)
	}

	if m.modal != modalNone {
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, m.viewModal(w))
	}

	header := m.viewHeader(w)
	footer := m.viewFooter(w)
	titles := m.viewTitles(w)

	bodyH := h - lipgloss.Height(header) - lipgloss.Height(footer) - lipgloss.Height(titles)
	if bodyH < 6 {
		bodyH = 6
	}
	detailW := w - sidebarWidth
	if detailW < 30 {
		detailW = 30
	}
	sidebar := normalizePane(m.viewSidebar(bodyH-2), sidebarWidth, bodyH)
	detail := normalizePane(m.viewDetail(detailW-4, bodyH-2), detailW, bodyH)
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, detail)

	return strings.Join([]string{header, body, titles, footer}, "\n")
}

func (m appModel) viewHeader(w int) string {
	theme := m.st.Theme()
	if strings.TrimSpace(theme) == "" {
		theme = "(no theme)"
	}
	left := lipgloss.NewStyle().Bold(true).Render("Bingo  ") +
		styleHeading().Render("Theme: ") + theme
	lastOp, edits := m.activity.snapshot()
	right := styleMuted().Render(fmt.Sprintf("source=%s  edits=%d  last=%s", emptyAsDash(m.source), edits, emptyAsDash(lastOp)))
	gap := w - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		return truncate(left+"  "+right, w)
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m appModel) viewFooter(w int) string {
	hints := "tab: pane  a: add  d: delete  enter: edit  [/]: section  c: columns  t: theme  T: titles  p: preview  R: reset  ?: help  q: quit"
	line := styleMuted().Render(truncate(hints, w))
	if m.flash == "" {
		return line
	}
	st := lipgloss.NewStyle().Bold(true)
	if m.flashErr {
		st = styleError()
	}
	return st.Render(truncate(m.flash, w)) + "\n" + line
}

func (m appModel) viewSidebar(h int) string {
	focused := m.pane == paneBoards
	title := styleHeading().Render(fmt.Sprintf("Boards (%d)", len(m.st.Boards())))
	var body string
	if len(m.boardsList.Items()) == 0 {
		body = styleMuted().Render("No boards.\na: add board")
	} else {
		l := m.boardsList
		l.SetSize(sidebarWidth-4, h-1)
		body = l.View()
	}
	return stylePane(focused).Width(sidebarWidth - 2).Height(h).Render(title + "\n" + body)
}

func (m appModel) viewDetail(w, h int) string {
	focused := m.pane == paneRows
	sel := m.st.Selection()
	bi, b, ok := m.selectedBoard()
	if !ok {
		return stylePane(focused).Width(w).Height(h).Render(styleMuted().Render("No board selected."))
	}

	tabs := make([]string, 0, 3)
	for _, sec := range model.Sections() {
		label := fmt.Sprintf(" %s (%d) ", sec.Label(), b.Len(sec))
		if sec == sel.Section {
			tabs = append(tabs, styleSelected().Render(label))
		} else {
			tabs = append(tabs, styleMuted().Render(label))
		}
	}
	head := styleHeading().Render(boardLabel(bi)) + "  " + strings.Join(tabs, " ")

	fields := m.visibleFields(sel.Section)
	hiddenN := len(model.Fields(sel.Section)) - len(fields)
	n := b.Len(sel.Section)
	var grid string
	if n == 0 {
		grid = styleMuted().Render("No rows.  a: add row")
	} else {
		headers := make([]string, 0, len(fields))
		for _, f := range fields {
			headers = append(headers, f.Name)
		}
		rows := make([][]string, 0, n)
		for i := 0; i < n; i++ {
			r := b.Row(sel.Section, i)
			cells := make([]string, 0, len(fields))
			for _, f := range fields {
				cells = append(cells, r.Value(f.Name))
			}
			rows = append(rows, cells)
		}
		cursor := -1
		if focused {
			cursor = m.rowCursor
		}
		grid = renderGrid(headers, rows, cursor, m.colCursor, focused)
	}
	parts := []string{head, "", grid}
	if hiddenN > 0 {
		parts = append(parts, styleMuted().Render(fmt.Sprintf("%d hidden column(s)  c: columns", hiddenN)))
	}
	return stylePane(focused).Width(w).Height(h).Render(strings.Join(parts, "\n"))
}

func (m appModel) viewTitles(w int) string {
	focused := m.pane == paneTitles
	titles := m.st.Titles()
	twisty := glyphTwistyExpanded()
	if m.titlesCollapsed {
		twisty = glyphTwistyCollapsed()
	}
	head := styleHeading().Render(fmt.Sprintf("%s Titles (%d)", twisty, len(titles)))
	if m.titlesCollapsed {
		return stylePane(false).Width(w - 2).Render(head + styleMuted().Render("  T: expand"))
	}

	var body string
	if len(titles) == 0 {
		body = styleMuted().Render("No titles.  a: add title")
	} else {
		headers := []string{}
		for _, f := range model.TitleFields() {
			headers = append(headers, string(f))
		}
		rows := make([][]string, 0, len(titles))
		for _, t := range titles {
			rows = append(rows, []string{t.LanguageID, t.Translation})
		}
		cursor := -1
		if focused {
			cursor = m.titleRow
		}
		body = renderGrid(headers, rows, cursor, m.titleCol, focused)
	}
	return stylePane(focused).Width(w - 2).Render(head + "\n" + body)
}

func (m appModel) viewModal(w int) string {
	switch m.modal {
	case modalEditCell:
		return m.viewEditModal(w)
	case modalConfirm:
		title, body, label := m.confirmText()
		return renderConfirmModal(w, title, body, label, "Cancel", m.confirmFocus)
	case modalColumns:
		return m.viewColumnsModal(w)
	case modalHelp:
		return renderModalBox(w, "Help", m.viewport.View()+"\n"+styleMuted().Render("esc: close"))
	case modalPreview:
		return renderModalBox(w, "Document preview", m.viewport.View()+"\n"+styleMuted().Render("↑/↓: scroll   esc: close"))
	}
	return ""
}

func (m appModel) confirmText() (title, body, label string) {
	switch m.confirm {
	case confirmDeleteBoard:
		return "Delete board", fmt.Sprintf("Delete %s and all of its rows?", boardLabel(m.confirmBoard)), "Delete"
	case confirmDeleteRow:
		sec := m.st.Selection().Section
		return "Delete row", fmt.Sprintf("Delete row %d of %s on %s?", m.confirmRow+1, strings.ToLower(sec.Label()), boardLabel(m.confirmBoard)), "Delete"
	default:
		_, edits := m.activity.snapshot()
		return "Reset", fmt.Sprintf("Discard %d edit(s) and reload from %s?", edits, emptyAsDash(m.source)), "Reset"
	}
}

func (m appModel) viewEditModal(w int) string {
	bodyW := modalBodyWidth(w)
	var target string
	switch m.editTarget {
	case editTheme:
		target = "Theme"
	case editTitleCell:
		target = fmt.Sprintf("Title %d", m.editRow+1)
	default:
		target = fmt.Sprintf("%s %s %s row %d", boardLabel(m.editBoard), glyphBullet(), m.editSection.Label(), m.editRow+1)
	}
	lines := []string{
		target,
		styleMuted().Render(fmt.Sprintf("%s (%s)", m.edit.Field.Name, m.edit.Field.Kind)),
		"",
		renderInputLine(bodyW, m.input.View(), m.edit.Errored()),
	}
	if m.edit.Errored() {
		lines = append(lines, styleError().Render(m.edit.Err().Error()))
	}
	lines = append(lines, "", styleMuted().Render("enter/tab: commit   esc: cancel"))
	return renderModalBox(w, "Edit "+m.edit.Field.Name, strings.Join(lines, "\n"))
}

func (m appModel) viewColumnsModal(w int) string {
	sec := m.st.Selection().Section
	lines := make([]string, 0, 8)
	for i, f := range model.Fields(sec) {
		ln := fmt.Sprintf("%s %s", glyphCheck(!m.hidden[sec][f.Name]), f.Name)
		if i == m.columnsCursor {
			ln = styleSelected().Render(ln)
		}
		lines = append(lines, ln)
	}
	lines = append(lines, "", styleMuted().Render("space: toggle   esc: done"))
	return renderModalBox(w, sec.Label()+" columns", strings.Join(lines, "\n"))
}

func emptyAsDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
