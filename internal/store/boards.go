package store

import "bingo-editor/internal/model"

// SelectBoard selects boards[index]. Out-of-range indices are ignored and
// reported as false; callers pass indices from a rendered list.
func (s *EventStore) SelectBoard(index int) bool {
	s.mu.Lock()
	if index < 0 || index >= len(s.doc.Boards) {
		s.mu.Unlock()
		return false
	}
	sel := s.sel
	sel.Board = index
	sel.HasBoard = true
	s.apply("select_board", s.doc, sel)
	return true
}

// SetActiveSection switches which row collection of the selected board is shown.
func (s *EventStore) SetActiveSection(section model.Section) error {
	if _, err := model.ParseSection(string(section)); err != nil {
		return err
	}
	s.mu.Lock()
	sel := s.sel
	sel.Section = section
	s.apply("set_active_section", s.doc, sel)
	return nil
}

// AddBoard appends board. The selection is unchanged.
func (s *EventStore) AddBoard(board model.Board) {
	s.mu.Lock()
	doc := *s.doc
	doc.Boards = appendCopy(doc.Boards, board)
	s.apply("add_board", &doc, s.sel)
}

func (s *EventStore) UpdateBoard(index int, board model.Board) error {
	s.mu.Lock()
	if err := outOfRange("update_board", "board", index, len(s.doc.Boards)); err != nil {
		return s.reject(err)
	}
	doc := *s.doc
	doc.Boards = replaceAt(doc.Boards, index, board)
	s.apply("update_board", &doc, s.sel)
	return nil
}

// DeleteBoard removes boards[index]. The selection is reset to the first
// board when any remain, otherwise cleared; the previously selected board is
// not tracked across the shift.
func (s *EventStore) DeleteBoard(index int) error {
	s.mu.Lock()
	if err := outOfRange("delete_board", "board", index, len(s.doc.Boards)); err != nil {
		return s.reject(err)
	}
	doc := *s.doc
	doc.Boards = removeAt(doc.Boards, index)
	sel := s.sel
	sel.Board = 0
	sel.HasBoard = len(doc.Boards) > 0
	s.apply("delete_board", &doc, sel)
	return nil
}
