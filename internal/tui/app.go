package tui

import (
	"context"
	"fmt"
	"sync"

	"bingo-editor/internal/editor"
	"bingo-editor/internal/model"
	"bingo-editor/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type pane int

const (
	paneBoards pane = iota
	paneRows
	paneTitles
)

func (p pane) String() string {
	switch p {
	case paneRows:
		return "rows"
	case paneTitles:
		return "titles"
	default:
		return "boards"
	}
}

type modalKind int

const (
	modalNone modalKind = iota
	modalEditCell
	modalConfirm
	modalColumns
	modalHelp
	modalPreview
)

// editTarget says where a committed cell edit is sent.
type editTarget int

const (
	editRowCell editTarget = iota
	editTitleCell
	editTheme
)

// loadedMsg carries the outcome of the load started for generation gen.
type loadedMsg struct {
	gen uint64
	doc model.Document
	err error
}

type flashDoneMsg struct{ seq int }

// activity is fed by the store subscription. It is shared between copies of
// appModel, so it is guarded by its own mutex.
type activity struct {
	mu     sync.Mutex
	lastOp string
	edits  int
}

func (a *activity) observe(ch store.Change) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastOp = ch.Op
	switch ch.Op {
	case "reset", "loaded", "load_failed":
		a.edits = 0
	case "select_board", "set_active_section":
	default:
		a.edits++
	}
}

func (a *activity) snapshot() (string, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastOp, a.edits
}

type appModel struct {
	ctx      context.Context
	st       *store.EventStore
	log      *zap.Logger
	source   string
	stateDir string
	ui       *store.TUIState
	keys     keyMap

	width  int
	height int

	pane pane

	boardsList list.Model
	rowCursor  int
	colCursor  int
	titleRow   int
	titleCol   int

	hidden          map[model.Section]map[string]bool
	titlesCollapsed bool

	modal         modalKind
	confirm       confirmAction
	confirmFocus  confirmModalFocus
	confirmBoard  int
	confirmRow    int
	columnsCursor int

	edit        editor.Cell
	editTarget  editTarget
	editBoard   int
	editSection model.Section
	editRow     int
	input       textinput.Model

	spinner  spinner.Model
	viewport viewport.Model

	activity *activity

	flash    string
	flashErr bool
	flashSeq int
}

// Options configures a TUI session.
type Options struct {
	// Source is shown in the header.
	Source string
	// StateDir holds tui_state.json. Empty disables persistence.
	StateDir string
	Logger   *zap.Logger
}

func newAppModel(ctx context.Context, st *store.EventStore, opt Options) appModel {
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ui, err := store.LoadTUIState(opt.StateDir)
	if err != nil {
		log.Warn("load tui state", zap.Error(err))
		ui = &store.TUIState{Version: 1}
	}

	m := appModel{
		ctx:             ctx,
		st:              st,
		log:             log.Named("tui"),
		source:          opt.Source,
		stateDir:        opt.StateDir,
		ui:              ui,
		keys:            defaultKeyMap(),
		pane:            paneBoards,
		hidden:          map[model.Section]map[string]bool{},
		titlesCollapsed: ui.TitlesCollapsed,
		activity:        &activity{},
	}
	for sec, names := range ui.HiddenColumns {
		s, err := model.ParseSection(sec)
		if err != nil {
			continue
		}
		for _, n := range names {
			if _, ok := model.LookupField(s, n); ok {
				m.setHidden(s, n, true)
			}
		}
	}

	m.boardsList = newList("Boards", []list.Item{})
	m.input = textinput.New()
	m.input.Prompt = ""
	m.input.CharLimit = 256
	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.viewport = viewport.New(0, 0)

	st.Subscribe(m.activity.observe)
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

// loadCmd starts a reset generation and returns the command that performs
// the load off the update loop.
func (m appModel) loadCmd() tea.Cmd {
	gen := m.st.BeginReset()
	ctx := m.ctx
	st := m.st
	m.log.Info("load started", zap.Uint64("generation", gen), zap.String("source", m.source))
	return func() tea.Msg {
		doc, err := st.Fetch(ctx)
		return loadedMsg{gen: gen, doc: doc, err: err}
	}
}

func (m appModel) reset() (appModel, tea.Cmd) {
	m.modal = modalNone
	m.rowCursor, m.colCursor, m.titleRow, m.titleCol = 0, 0, 0, 0
	cmd := m.loadCmd()
	m.syncBoards()
	return m, tea.Batch(m.spinner.Tick, cmd)
}

func (m *appModel) setHidden(sec model.Section, field string, hide bool) {
	if m.hidden[sec] == nil {
		m.hidden[sec] = map[string]bool{}
	}
	if hide {
		m.hidden[sec][field] = true
	} else {
		delete(m.hidden[sec], field)
	}
}

// visibleFields returns the columns of sec that are not hidden.
func (m appModel) visibleFields(sec model.Section) []model.Field {
	all := model.Fields(sec)
	out := make([]model.Field, 0, len(all))
	for _, f := range all {
		if !m.hidden[sec][f.Name] {
			out = append(out, f)
		}
	}
	return out
}

// selectedBoard returns the selected board of the current snapshot.
func (m appModel) selectedBoard() (int, model.Board, bool) {
	doc := m.st.Document()
	sel := m.st.Selection()
	if !sel.HasBoard || sel.Board < 0 || sel.Board >= len(doc.Boards) {
		return 0, model.Board{}, false
	}
	return sel.Board, doc.Boards[sel.Board], true
}

// clampCursors keeps every cursor inside the current snapshot.
func (m *appModel) clampCursors() {
	sec := m.st.Selection().Section
	n := 0
	if _, b, ok := m.selectedBoard(); ok {
		n = b.Len(sec)
	}
	m.rowCursor = clamp(m.rowCursor, 0, n-1)
	m.colCursor = clamp(m.colCursor, 0, len(m.visibleFields(sec))-1)
	m.titleRow = clamp(m.titleRow, 0, len(m.st.Titles())-1)
	m.titleCol = clamp(m.titleCol, 0, len(model.TitleFields())-1)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (m *appModel) syncBoards() {
	doc := m.st.Document()
	items := make([]list.Item, 0, len(doc.Boards))
	for i, b := range doc.Boards {
		items = append(items, boardItem{index: i, board: b})
	}
	m.boardsList.SetItems(items)
	if sel := m.st.Selection(); sel.HasBoard {
		m.boardsList.Select(sel.Board)
	}
}

func (m *appModel) saveUIState() {
	st := &store.TUIState{
		Version:         1,
		ActiveSection:   string(m.st.Selection().Section),
		TitlesCollapsed: m.titlesCollapsed,
		HiddenColumns:   map[string][]string{},
	}
	for _, sec := range model.Sections() {
		for _, f := range model.Fields(sec) {
			if m.hidden[sec][f.Name] {
				st.HiddenColumns[string(sec)] = append(st.HiddenColumns[string(sec)], f.Name)
			}
		}
	}
	if len(st.HiddenColumns) == 0 {
		st.HiddenColumns = nil
	}
	m.ui = st
	if err := store.SaveTUIState(m.stateDir, st); err != nil {
		m.log.Warn("save tui state", zap.Error(err))
	}
}

func (m *appModel) setFlash(msg string, isErr bool) tea.Cmd {
	m.flashSeq++
	m.flash = msg
	m.flashErr = isErr
	return flashAfter(m.flashSeq)
}

// reportErr surfaces a rejected store operation in the status line.
func (m *appModel) reportErr(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return m.setFlash(err.Error(), true)
}

func boardLabel(i int) string { return fmt.Sprintf("Board %d", i+1) }
