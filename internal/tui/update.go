package tui

import (
	"errors"
	"time"

	"bingo-editor/internal/editor"
	"bingo-editor/internal/loader"
	"bingo-editor/internal/model"
	"bingo-editor/internal/publish"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func flashAfter(seq int) tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if m.st.Status().State != loader.StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		return m.applyLoaded(msg), nil

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
			m.flashErr = false
		}
		return m, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		if m.modal != modalNone {
			m, cmd = m.updateModal(msg)
		} else {
			m, cmd = m.updateKey(msg)
		}
		m.clampCursors()
		m.syncBoards()
		return m, cmd
	}
	return m, nil
}

func (m appModel) applyLoaded(msg loadedMsg) appModel {
	if !m.st.CompleteReset(msg.gen, msg.doc, msg.err) {
		return m
	}
	if msg.err != nil {
		m.log.Warn("load failed", zap.Uint64("generation", msg.gen), zap.Error(msg.err))
	} else {
		m.log.Info("load finished", zap.Uint64("generation", msg.gen), zap.Int("boards", len(msg.doc.Boards)))
		if sec := m.ui.Section(); sec != m.st.Selection().Section {
			_ = m.st.SetActiveSection(sec)
		}
	}
	m.clampCursors()
	m.syncBoards()
	return m
}

func (m appModel) updateKey(msg tea.KeyMsg) (appModel, tea.Cmd) {
	switch m.st.Status().State {
	case loader.StateLoading:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	case loader.StateError:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reset):
			// Nothing to discard, so no confirmation.
			return m.reset()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		return m.openViewport(modalHelp, m.keys.helpMarkdown()), nil
	case key.Matches(msg, m.keys.Preview):
		doc := *m.st.Document()
		md := publish.RenderDocumentMarkdown(doc, publish.RenderOptions{})
		if bi, _, ok := m.selectedBoard(); ok && m.pane == paneRows {
			if s, err := publish.RenderBoardMarkdown(doc, bi, publish.RenderOptions{}); err == nil {
				md = s
			}
		}
		return m.openViewport(modalPreview, md), nil
	case key.Matches(msg, m.keys.Reset):
		m.openConfirm(confirmReset)
		return m, nil
	case key.Matches(msg, m.keys.NextPane):
		m.pane = m.nextPane(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevPane):
		m.pane = m.nextPane(-1)
		return m, nil
	case key.Matches(msg, m.keys.Theme):
		m.openEdit(editTheme, model.Field{Name: "theme", Kind: model.FieldString}, m.st.Theme())
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Titles):
		m.titlesCollapsed = !m.titlesCollapsed
		if m.titlesCollapsed && m.pane == paneTitles {
			m.pane = paneBoards
		}
		m.saveUIState()
		return m, nil
	}

	switch m.pane {
	case paneRows:
		return m.updateRows(msg)
	case paneTitles:
		return m.updateTitles(msg)
	default:
		return m.updateBoards(msg)
	}
}

func (m appModel) nextPane(dir int) pane {
	panes := []pane{paneBoards, paneRows}
	if !m.titlesCollapsed {
		panes = append(panes, paneTitles)
	}
	cur := 0
	for i, p := range panes {
		if p == m.pane {
			cur = i
		}
	}
	return panes[(cur+dir+len(panes))%len(panes)]
}

func (m appModel) updateBoards(msg tea.KeyMsg) (appModel, tea.Cmd) {
	sel := m.st.Selection()
	switch {
	case key.Matches(msg, m.keys.Up):
		if sel.HasBoard {
			m.st.SelectBoard(sel.Board - 1)
		}
	case key.Matches(msg, m.keys.Down):
		next := 0
		if sel.HasBoard {
			next = sel.Board + 1
		}
		m.st.SelectBoard(next)
	case key.Matches(msg, m.keys.Add):
		m.st.AddBoard(model.NewBoard())
		n := len(m.st.Boards())
		if !sel.HasBoard {
			m.st.SelectBoard(n - 1)
		}
		return m, m.setFlash("added "+boardLabel(n-1), false)
	case key.Matches(msg, m.keys.Delete):
		if !sel.HasBoard {
			return m, m.setFlash("no board selected", true)
		}
		m.confirmBoard = sel.Board
		m.openConfirm(confirmDeleteBoard)
	case key.Matches(msg, m.keys.Edit), key.Matches(msg, m.keys.Right):
		if sel.HasBoard {
			m.pane = paneRows
		}
	}
	return m, nil
}

func (m appModel) updateRows(msg tea.KeyMsg) (appModel, tea.Cmd) {
	sel := m.st.Selection()
	bi, b, ok := m.selectedBoard()

	switch {
	case key.Matches(msg, m.keys.NextSection), key.Matches(msg, m.keys.PrevSection):
		dir := 1
		if key.Matches(msg, m.keys.PrevSection) {
			dir = -1
		}
		secs := model.Sections()
		cur := 0
		for i, s := range secs {
			if s == sel.Section {
				cur = i
			}
		}
		next := secs[(cur+dir+len(secs))%len(secs)]
		if err := m.st.SetActiveSection(next); err != nil {
			return m, m.reportErr(err)
		}
		m.rowCursor, m.colCursor = 0, 0
		m.saveUIState()
		return m, nil
	case key.Matches(msg, m.keys.Columns):
		m.columnsCursor = 0
		m.modal = modalColumns
		return m, nil
	}

	if !ok {
		if key.Matches(msg, m.keys.Add) || key.Matches(msg, m.keys.Edit) || key.Matches(msg, m.keys.Delete) {
			return m, m.setFlash("no board selected", true)
		}
		return m, nil
	}

	n := b.Len(sel.Section)
	fields := m.visibleFields(sel.Section)
	switch {
	case key.Matches(msg, m.keys.Up):
		m.rowCursor--
	case key.Matches(msg, m.keys.Down):
		m.rowCursor++
	case key.Matches(msg, m.keys.Left):
		m.colCursor--
	case key.Matches(msg, m.keys.Right):
		m.colCursor++
	case key.Matches(msg, m.keys.Add):
		row, err := model.NewRow(sel.Section)
		if err != nil {
			return m, m.reportErr(err)
		}
		if err := m.st.AddRow(bi, sel.Section, row); err != nil {
			return m, m.reportErr(err)
		}
		m.rowCursor = n
	case key.Matches(msg, m.keys.Delete):
		if n == 0 {
			return m, nil
		}
		m.confirmBoard = bi
		m.confirmRow = m.rowCursor
		m.openConfirm(confirmDeleteRow)
	case key.Matches(msg, m.keys.Edit):
		if n == 0 || len(fields) == 0 {
			return m, nil
		}
		r := clamp(m.rowCursor, 0, n-1)
		f := fields[clamp(m.colCursor, 0, len(fields)-1)]
		m.openEdit(editRowCell, f, b.Row(sel.Section, r).Value(f.Name))
		m.editBoard, m.editSection, m.editRow = bi, sel.Section, r
		return m, m.input.Focus()
	}
	return m, nil
}

func (m appModel) updateTitles(msg tea.KeyMsg) (appModel, tea.Cmd) {
	n := len(m.st.Titles())
	fields := model.TitleFields()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.titleRow--
	case key.Matches(msg, m.keys.Down):
		m.titleRow++
	case key.Matches(msg, m.keys.Left):
		m.titleCol--
	case key.Matches(msg, m.keys.Right):
		m.titleCol++
	case key.Matches(msg, m.keys.Add):
		m.st.AddTitle(model.Title{})
		m.titleRow = n
	case key.Matches(msg, m.keys.Delete):
		if n == 0 {
			return m, nil
		}
		return m, m.reportErr(m.st.DeleteTitle(m.titleRow))
	case key.Matches(msg, m.keys.Edit):
		if n == 0 {
			return m, nil
		}
		r := clamp(m.titleRow, 0, n-1)
		field := fields[clamp(m.titleCol, 0, len(fields)-1)]
		m.openEdit(editTitleCell, model.Field{Name: string(field), Kind: model.FieldString}, m.st.Titles()[r].Value(field))
		m.editRow = r
		return m, m.input.Focus()
	}
	return m, nil
}

func (m *appModel) openConfirm(action confirmAction) {
	m.modal = modalConfirm
	m.confirm = action
	m.confirmFocus = confirmFocusCancel
}

func (m *appModel) openEdit(target editTarget, f model.Field, committed string) {
	m.modal = modalEditCell
	m.editTarget = target
	m.edit = editor.NewCell(f, committed)
	m.input.SetValue(committed)
	m.input.CursorEnd()
}

func (m appModel) openViewport(kind modalKind, md string) appModel {
	m.modal = kind
	m.resize()
	m.viewport.SetContent(publish.RenderTerminal(md, m.viewport.Width, markdownStyle()))
	m.viewport.GotoTop()
	return m
}

func (m appModel) updateModal(msg tea.KeyMsg) (appModel, tea.Cmd) {
	switch m.modal {
	case modalEditCell:
		return m.updateEdit(msg)
	case modalConfirm:
		return m.updateConfirm(msg)
	case modalColumns:
		return m.updateColumns(msg), nil
	case modalHelp, modalPreview:
		switch msg.String() {
		case "esc", "q", "?", "p":
			m.modal = modalNone
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateEdit(msg tea.KeyMsg) (appModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.edit.Abandon()
		m.input.Blur()
		m.modal = modalNone
		return m, nil
	case "enter", "tab":
		m.edit.SetDraft(m.input.Value())
		v, ok := m.edit.Commit()
		if !ok {
			// Keep the modal open on the held draft.
			return m, nil
		}
		if err := m.commitEdit(v); err != nil {
			return m, m.reportErr(err)
		}
		m.input.Blur()
		m.modal = modalNone
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.edit.SetDraft(m.input.Value())
	return m, cmd
}

// commitEdit sends a gated value to the store.
func (m appModel) commitEdit(v string) error {
	switch m.editTarget {
	case editTheme:
		m.st.SetTheme(&v)
		return nil
	case editTitleCell:
		return m.st.UpdateTitleCell(m.editRow, model.TitleField(m.edit.Field.Name), v)
	}

	doc := m.st.Document()
	if m.editBoard >= len(doc.Boards) || m.editRow >= doc.Boards[m.editBoard].Len(m.editSection) {
		return errors.New("row no longer exists")
	}
	row := doc.Boards[m.editBoard].Row(m.editSection, m.editRow)
	updated, err := editor.ApplyRow(row, m.edit.Field.Name, v)
	if err != nil {
		return err
	}
	return m.st.UpdateRow(m.editBoard, m.editSection, m.editRow, updated)
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (appModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g", "n":
		m.modal = modalNone
		return m, nil
	case "tab", "shift+tab", "left", "right", "h", "l":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "y":
		return m.runConfirm()
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			return m.runConfirm()
		}
		m.modal = modalNone
		return m, nil
	}
	return m, nil
}

func (m appModel) runConfirm() (appModel, tea.Cmd) {
	m.modal = modalNone
	switch m.confirm {
	case confirmReset:
		return m.reset()
	case confirmDeleteBoard:
		if err := m.st.DeleteBoard(m.confirmBoard); err != nil {
			return m, m.reportErr(err)
		}
		m.rowCursor = 0
		return m, m.setFlash("deleted "+boardLabel(m.confirmBoard), false)
	case confirmDeleteRow:
		sec := m.st.Selection().Section
		return m, m.reportErr(m.st.DeleteRow(m.confirmBoard, sec, m.confirmRow))
	}
	return m, nil
}

func (m appModel) updateColumns(msg tea.KeyMsg) appModel {
	sec := m.st.Selection().Section
	fields := model.Fields(sec)
	switch msg.String() {
	case "esc", "c", "q", "enter":
		m.modal = modalNone
		m.saveUIState()
	case "up", "k":
		m.columnsCursor = clamp(m.columnsCursor-1, 0, len(fields)-1)
	case "down", "j":
		m.columnsCursor = clamp(m.columnsCursor+1, 0, len(fields)-1)
	case " ", "x":
		f := fields[clamp(m.columnsCursor, 0, len(fields)-1)]
		hide := !m.hidden[sec][f.Name]
		if hide && len(m.visibleFields(sec)) == 1 {
			// Keep at least one column.
			return m
		}
		m.setHidden(sec, f.Name, hide)
	}
	return m
}

func (m *appModel) resize() {
	w, h := m.size()
	bodyH := h - 8
	if bodyH < 5 {
		bodyH = 5
	}
	m.viewport.Width = modalBodyWidth(w) - 2
	m.viewport.Height = bodyH
	m.input.Width = modalBodyWidth(w) - 4
}

// size falls back to a fixed layout until the first WindowSizeMsg.
func (m appModel) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = 100
	}
	if h <= 0 {
		h = 32
	}
	return w, h
}
