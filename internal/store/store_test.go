package store

import (
	"context"
	"errors"
	"testing"

	"bingo-editor/internal/loader"
	"bingo-editor/internal/model"
	"bingo-editor/internal/schema"

	"github.com/google/go-cmp/cmp"
)

type fakeLoader struct {
	docs  []model.Document
	errs  []error
	calls int
}

func (f *fakeLoader) Load(ctx context.Context) (model.Document, error) {
	i := f.calls
	f.calls++
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if err != nil {
		return model.Document{}, err
	}
	if i < len(f.docs) {
		return f.docs[i], nil
	}
	return f.docs[len(f.docs)-1], nil
}

func quest(area string) model.Quest {
	return model.Quest{Area: area, Quantity: 1, Render: "r", Target: "t", TargetType: "tt", Type: "kill"}
}

func threeBoardDoc() model.Document {
	return model.Document{
		Theme:  "Spring",
		Titles: []model.Title{{LanguageID: "en", Translation: "Spring"}, {LanguageID: "fr", Translation: "Printemps"}},
		Boards: []model.Board{
			{Quests: []model.Quest{quest("a0"), quest("a1"), quest("a2")}, Rewards: []model.Reward{{ID: "r0"}}, GoldenTiles: []model.GoldenTile{}},
			{Quests: []model.Quest{quest("b0")}, Rewards: []model.Reward{}, GoldenTiles: []model.GoldenTile{model.NewGoldenTile()}},
			model.NewBoard(),
		},
	}
}

func newLoadedStore(t *testing.T, doc model.Document) *EventStore {
	t.Helper()
	s := New(&fakeLoader{docs: []model.Document{doc}}, nil)
	if err := s.Reset(context.Background()); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return s
}

func TestReset_LoadsAndSelectsFirstBoard(t *testing.T) {
	t.Parallel()

	s := New(&fakeLoader{docs: []model.Document{{
		Theme:  "Spring",
		Titles: []model.Title{},
		Boards: []model.Board{model.NewBoard()},
	}}}, nil)

	if st := s.Status(); st.State != loader.StateLoading {
		t.Fatalf("expected loading before first reset; got %v", st.State)
	}
	if _, ok := s.SelectedBoard(); ok {
		t.Fatalf("expected no selection before load")
	}

	if err := s.Reset(context.Background()); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if i, ok := s.SelectedBoard(); !ok || i != 0 {
		t.Fatalf("expected selected board 0; got %d,%v", i, ok)
	}
	if st := s.Status(); st.State != loader.StateReady || st.Document != s.Document() {
		t.Fatalf("expected ready status carrying the live document; got %+v", st)
	}

	if err := s.AddRow(0, model.SectionQuests, model.Quest{Area: "forest", Quantity: 2, Render: "r", Target: "t", TargetType: "tt", Type: "kill"}); err != nil {
		t.Fatalf("AddRow: %v", err)
	}
	if got := len(s.Boards()[0].Quests); got != 1 {
		t.Fatalf("expected 1 quest; got %d", got)
	}
}

func TestReset_EmptyDocumentHasNoSelection(t *testing.T) {
	t.Parallel()

	s := newLoadedStore(t, model.Document{Theme: "x"})
	if _, ok := s.SelectedBoard(); ok {
		t.Fatalf("expected no selection for a document without boards")
	}
}

func TestReset_FailureIsTerminalUntilNextReset(t *testing.T) {
	t.Parallel()

	fl := &fakeLoader{
		errs: []error{&schema.ValidationError{Issues: []schema.Issue{{Path: "theme", Message: "required"}}}, nil},
		docs: []model.Document{{}, threeBoardDoc()},
	}
	s := New(fl, nil)

	if err := s.Reset(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	st := s.Status()
	if st.State != loader.StateError || st.Err != "validation error: data does not match schema" {
		t.Fatalf("unexpected status: %+v", st)
	}
	if st.Document != nil {
		t.Fatalf("error status must not carry a document")
	}
	if fl.calls != 1 {
		t.Fatalf("expected no retry; loader called %d times", fl.calls)
	}

	if err := s.Reset(context.Background()); err != nil {
		t.Fatalf("second Reset: %v", err)
	}
	if got := len(s.Boards()); got != 3 {
		t.Fatalf("expected 3 boards after recovery; got %d", got)
	}
}

func TestReset_DiscardsEditsAndSelection(t *testing.T) {
	t.Parallel()

	s := newLoadedStore(t, threeBoardDoc())
	s.SelectBoard(2)
	if err := s.DeleteRow(0, model.SectionQuests, 0); err != nil {
		t.Fatalf("DeleteRow: %v", err)
	}
	if err := s.Reset(context.Background()); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if diff := cmp.Diff(threeBoardDoc(), *s.Document()); diff != "" {
		t.Fatalf("expected original document after reset (-want +got):\n%s", diff)
	}
	if i, _ := s.SelectedBoard(); i != 0 {
		t.Fatalf("expected selection 0 after reset; got %d", i)
	}
}

func TestCompleteReset_DropsStaleGeneration(t *testing.T) {
	t.Parallel()

	s := New(nil, nil)
	first := s.BeginReset()
	second := s.BeginReset()

	if !s.CompleteReset(second, threeBoardDoc(), nil) {
		t.Fatalf("expected current generation to apply")
	}
	if s.CompleteReset(first, model.Document{Theme: "stale"}, nil) {
		t.Fatalf("expected stale generation to be dropped")
	}
	if got := s.Theme(); got != "Spring" {
		t.Fatalf("stale completion overwrote document: theme=%q", got)
	}
	if s.Generation() != second {
		t.Fatalf("generation changed unexpectedly")
	}
}

func TestSelectBoard(t *testing.T) {
	t.Parallel()

	s := newLoadedStore(t, threeBoardDoc())
	before := s.Document()

	if !s.SelectBoard(2) {
		t.Fatalf("expected SelectBoard(2) to apply")
	}
	if i, _ := s.SelectedBoard(); i != 2 {
		t.Fatalf("expected board 2; got %d", i)
	}
	for _, bad := range []int{-1, 3, 100} {
		if s.SelectBoard(bad) {
			t.Fatalf("SelectBoard(%d) should be ignored", bad)
		}
		if i, _ := s.SelectedBoard(); i != 2 {
			t.Fatalf("SelectBoard(%d) changed selection to %d", bad, i)
		}
	}
	if s.Document() != before {
		t.Fatalf("selection changes must not replace the document")
	}
}

func TestAddBoard_KeepsSelection(t *testing.T) {
	t.Parallel()

	s := newLoadedStore(t, threeBoardDoc())
	s.SelectBoard(1)
	s.AddBoard(model.NewBoard())

	if got := len(s.Boards()); got != 4 {
		t.Fatalf("expected 4 boards; got %d", got)
	}
	if i, _ := s.SelectedBoard(); i != 1 {
		t.Fatalf("expected selection to stay on 1; got %d", i)
	}
}

func TestDeleteBoard_RepairsSelection(t *testing.T) {
	t.Parallel()

	s := newLoadedStore(t, threeBoardDoc())
	s.SelectBoard(2)

	if err := s.DeleteBoard(0); err != nil {
		t.Fatalf("DeleteBoard: %v", err)
	}
	if got := len(s.Boards()); got != 2 {
		t.Fatalf("expected 2 boards; got %d", got)
	}
	if i, ok := s.SelectedBoard(); !ok || i != 0 {
		t.Fatalf("expected selection repaired to 0; got %d,%v", i, ok)
	}

	if err := s.DeleteBoard(1); err != nil {
		t.Fatalf("DeleteBoard: %v", err)
	}
	if err := s.DeleteBoard(0); err != nil {
		t.Fatalf("DeleteBoard: %v", err)
	}
	if _, ok := s.SelectedBoard(); ok {
		t.Fatalf("expected no selection after deleting the last board")
	}
}

func TestUpdateBoard(t *testing.T) {
	t.Parallel()

	s := newLoadedStore(t, threeBoardDoc())
	nb := model.Board{Rewards: []model.Reward{{ID: "new"}}}
	if err := s.UpdateBoard(1, nb); err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	if diff := cmp.Diff(nb, s.Boards()[1]); diff != "" {
		t.Fatalf("board mismatch (-want +got):\n%s", diff)
	}
}

func TestDeleteRow_ShiftsLaterRows(t *testing.T) {
	t.Parallel()

	s := newLoadedStore(t, threeBoardDoc())
	before := s.Document()

	if err := s.DeleteRow(0, model.SectionQuests, 1); err != nil {
		t.Fatalf("DeleteRow: %v", err)
	}
	got := s.Boards()[0].Quests
	want := []model.Quest{quest("a0"), quest("a2")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("quests mismatch (-want +got):\n%s", diff)
	}
	if len(before.Boards[0].Quests) != 3 {
		t.Fatalf("previous snapshot was mutated")
	}
}

func TestMutations_CopyPathAndShareSiblings(t *testing.T) {
	t.Parallel()

	s := newLoadedStore(t, threeBoardDoc())
	before := s.Document()

	if err := s.UpdateRow(0, model.SectionRewards, 0, model.Reward{ID: "r0", Quantity: 5}); err != nil {
		t.Fatalf("UpdateRow: %v", err)
	}
	after := s.Document()

	if after == before {
		t.Fatalf("expected a new document pointer")
	}
	if &after.Boards[0] == &before.Boards[0] {
		t.Fatalf("expected boards slice to be copied")
	}
	if &after.Boards[0].Rewards[0] == &before.Boards[0].Rewards[0] {
		t.Fatalf("expected mutated section to be copied")
	}
	if &after.Boards[0].Quests[0] != &before.Boards[0].Quests[0] {
		t.Fatalf("expected untouched section of the mutated board to be shared")
	}
	if &after.Boards[1].Quests[0] != &before.Boards[1].Quests[0] {
		t.Fatalf("expected untouched board to be shared")
	}
	if &after.Titles[0] != &before.Titles[0] {
		t.Fatalf("expected titles to be shared")
	}
	if before.Boards[0].Rewards[0].Quantity != 0 {
		t.Fatalf("previous snapshot was mutated")
	}
}

func TestRowMutations_AllSections(t *testing.T) {
	t.Parallel()

	s := newLoadedStore(t, threeBoardDoc())
	tests := []struct {
		add    model.Row
		update model.Row
	}{
		{add: model.Quest{Area: "x"}, update: model.Quest{Area: "y", Quantity: 3}},
		{add: model.Reward{ID: "x"}, update: model.Reward{ID: "y", Quantity: 3}},
		{add: model.GoldenTile{RewardID: "x", Spotlight: "true"}, update: model.GoldenTile{RewardID: "y", Spotlight: "false"}},
	}
	for _, tt := range tests {
		sec := tt.add.Section()
		n := s.Boards()[2].Len(sec)
		if err := s.AddRow(2, sec, tt.add); err != nil {
			t.Fatalf("AddRow(%s): %v", sec, err)
		}
		if got := s.Boards()[2].Len(sec); got != n+1 {
			t.Fatalf("AddRow(%s): len %d, want %d", sec, got, n+1)
		}
		if err := s.UpdateRow(2, sec, n, tt.update); err != nil {
			t.Fatalf("UpdateRow(%s): %v", sec, err)
		}
		if diff := cmp.Diff(tt.update, s.Boards()[2].Row(sec, n)); diff != "" {
			t.Fatalf("UpdateRow(%s) mismatch (-want +got):\n%s", sec, diff)
		}
		if err := s.DeleteRow(2, sec, n); err != nil {
			t.Fatalf("DeleteRow(%s): %v", sec, err)
		}
		if got := s.Boards()[2].Len(sec); got != n {
			t.Fatalf("DeleteRow(%s): len %d, want %d", sec, got, n)
		}
	}
}

func TestIndexOutOfRange_LeavesDocumentUnchanged(t *testing.T) {
	t.Parallel()

	s := newLoadedStore(t, threeBoardDoc())
	before := s.Document()
	selBefore := s.Selection()

	ops := map[string]func() error{
		"update board -1":     func() error { return s.UpdateBoard(-1, model.NewBoard()) },
		"update board 3":      func() error { return s.UpdateBoard(3, model.NewBoard()) },
		"delete board 3":      func() error { return s.DeleteBoard(3) },
		"add row board 9":     func() error { return s.AddRow(9, model.SectionQuests, model.NewQuest()) },
		"update row board 9":  func() error { return s.UpdateRow(9, model.SectionQuests, 0, model.NewQuest()) },
		"update row 3":        func() error { return s.UpdateRow(0, model.SectionQuests, 3, model.NewQuest()) },
		"update row -1":       func() error { return s.UpdateRow(0, model.SectionRewards, -1, model.NewReward()) },
		"update empty golden": func() error { return s.UpdateRow(0, model.SectionGoldenTile, 0, model.NewGoldenTile()) },
		"delete row 3":        func() error { return s.DeleteRow(0, model.SectionQuests, 3) },
		"delete row board -1": func() error { return s.DeleteRow(-1, model.SectionQuests, 0) },
		"title 2":             func() error { return s.UpdateTitleCell(2, model.TitleTranslation, "x") },
		"title -1":            func() error { return s.UpdateTitleCell(-1, model.TitleLanguageID, "x") },
		"delete title 5":      func() error { return s.DeleteTitle(5) },
	}
	for name, op := range ops {
		err := op()
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("%s: expected ErrIndexOutOfRange; got %v", name, err)
		}
		var ierr *IndexOutOfRangeError
		if !errors.As(err, &ierr) {
			t.Fatalf("%s: expected *IndexOutOfRangeError; got %T", name, err)
		}
		if s.Document() != before {
			t.Fatalf("%s: document replaced on rejected mutation", name)
		}
		if s.Selection() != selBefore {
			t.Fatalf("%s: selection changed on rejected mutation", name)
		}
	}
}

func TestRowSectionMismatch(t *testing.T) {
	t.Parallel()

	s := newLoadedStore(t, threeBoardDoc())
	before := s.Document()

	var mismatch *SectionMismatchError
	if err := s.AddRow(0, model.SectionQuests, model.NewReward()); !errors.As(err, &mismatch) {
		t.Fatalf("expected SectionMismatchError; got %v", err)
	}
	if err := s.AddRow(0, model.SectionQuests, nil); !errors.As(err, &mismatch) {
		t.Fatalf("expected SectionMismatchError for nil row; got %v", err)
	}
	q := model.NewQuest()
	if err := s.UpdateRow(0, model.SectionQuests, 0, &q); !errors.As(err, &mismatch) {
		t.Fatalf("expected SectionMismatchError for pointer row; got %v", err)
	}
	if err := s.DeleteRow(0, "boards", 0); err == nil {
		t.Fatalf("expected unknown section error")
	}
	if s.Document() != before {
		t.Fatalf("document replaced on rejected mutation")
	}
}

func TestSetTheme(t *testing.T) {
	t.Parallel()

	s := newLoadedStore(t, threeBoardDoc())
	before := s.Document()

	s.SetTheme(nil)
	if s.Theme() != "Spring" || s.Document() != before {
		t.Fatalf("nil theme must be a no-op")
	}

	empty := ""
	s.SetTheme(&empty)
	if s.Theme() != "" {
		t.Fatalf("expected empty theme to be accepted; got %q", s.Theme())
	}

	summer := "Summer"
	s.SetTheme(&summer)
	if s.Theme() != "Summer" {
		t.Fatalf("expected Summer; got %q", s.Theme())
	}
}

func TestTitles(t *testing.T) {
	t.Parallel()

	s := newLoadedStore(t, threeBoardDoc())
	if err := s.UpdateTitleCell(1, model.TitleTranslation, "Bingo du printemps"); err != nil {
		t.Fatalf("UpdateTitleCell: %v", err)
	}
	want := model.Title{LanguageID: "fr", Translation: "Bingo du printemps"}
	if got := s.Titles()[1]; got != want {
		t.Fatalf("title mismatch: got %+v want %+v", got, want)
	}

	var uerr *UnknownFieldError
	if err := s.UpdateTitleCell(0, "name", "x"); !errors.As(err, &uerr) {
		t.Fatalf("expected UnknownFieldError; got %v", err)
	}

	s.AddTitle(model.Title{LanguageID: "de"})
	if got := len(s.Titles()); got != 3 {
		t.Fatalf("expected 3 titles; got %d", got)
	}
	if err := s.DeleteTitle(0); err != nil {
		t.Fatalf("DeleteTitle: %v", err)
	}
	if got := s.Titles()[0].LanguageID; got != "fr" {
		t.Fatalf("expected fr to shift to index 0; got %q", got)
	}
}

func TestSetActiveSection(t *testing.T) {
	t.Parallel()

	s := newLoadedStore(t, threeBoardDoc())
	if err := s.SetActiveSection(model.SectionGoldenTile); err != nil {
		t.Fatalf("SetActiveSection: %v", err)
	}
	if got := s.Selection().Section; got != model.SectionGoldenTile {
		t.Fatalf("expected golden_tile; got %q", got)
	}
	if err := s.SetActiveSection("titles"); err == nil {
		t.Fatalf("expected error for unknown section")
	}
}

func TestSubscribe(t *testing.T) {
	t.Parallel()

	s := newLoadedStore(t, threeBoardDoc())
	var ops []string
	cancel := s.Subscribe(func(c Change) {
		ops = append(ops, c.Op)
		if c.Document != s.Document() {
			t.Errorf("%s: change carries a stale document", c.Op)
		}
	})

	s.AddBoard(model.NewBoard())
	_ = s.DeleteBoard(99)
	s.SelectBoard(1)
	cancel()
	s.AddBoard(model.NewBoard())

	if diff := cmp.Diff([]string{"add_board", "select_board"}, ops); diff != "" {
		t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
	}
}
