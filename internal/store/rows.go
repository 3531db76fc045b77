package store

import "bingo-editor/internal/model"

// Row mutations are addressed by (board, section, row) position. A stale
// row index after an earlier delete addresses whatever row now sits there;
// callers serialize row edits against their own render of the board.

// AddRow appends row to the given section of boards[boardIndex]. The row's
// field values are not validated here.
func (s *EventStore) AddRow(boardIndex int, section model.Section, row model.Row) error {
	const op = "add_row"
	s.mu.Lock()
	if err := outOfRange(op, "board", boardIndex, len(s.doc.Boards)); err != nil {
		return s.reject(err)
	}
	if err := checkRowSection(op, section, row); err != nil {
		return s.reject(err)
	}

	b := s.doc.Boards[boardIndex]
	switch section {
	case model.SectionQuests:
		b.Quests = appendCopy(b.Quests, row.(model.Quest))
	case model.SectionRewards:
		b.Rewards = appendCopy(b.Rewards, row.(model.Reward))
	case model.SectionGoldenTile:
		b.GoldenTiles = appendCopy(b.GoldenTiles, row.(model.GoldenTile))
	}
	s.applyBoard(op, boardIndex, b)
	return nil
}

// UpdateRow replaces the row at rowIndex wholesale.
func (s *EventStore) UpdateRow(boardIndex int, section model.Section, rowIndex int, row model.Row) error {
	const op = "update_row"
	s.mu.Lock()
	if err := outOfRange(op, "board", boardIndex, len(s.doc.Boards)); err != nil {
		return s.reject(err)
	}
	if err := checkRowSection(op, section, row); err != nil {
		return s.reject(err)
	}
	b := s.doc.Boards[boardIndex]
	if err := outOfRange(op, string(section), rowIndex, b.Len(section)); err != nil {
		return s.reject(err)
	}

	switch section {
	case model.SectionQuests:
		b.Quests = replaceAt(b.Quests, rowIndex, row.(model.Quest))
	case model.SectionRewards:
		b.Rewards = replaceAt(b.Rewards, rowIndex, row.(model.Reward))
	case model.SectionGoldenTile:
		b.GoldenTiles = replaceAt(b.GoldenTiles, rowIndex, row.(model.GoldenTile))
	}
	s.applyBoard(op, boardIndex, b)
	return nil
}

// DeleteRow removes the row at rowIndex; later rows move up one position.
func (s *EventStore) DeleteRow(boardIndex int, section model.Section, rowIndex int) error {
	const op = "delete_row"
	if _, err := model.ParseSection(string(section)); err != nil {
		return err
	}
	s.mu.Lock()
	if err := outOfRange(op, "board", boardIndex, len(s.doc.Boards)); err != nil {
		return s.reject(err)
	}
	b := s.doc.Boards[boardIndex]
	if err := outOfRange(op, string(section), rowIndex, b.Len(section)); err != nil {
		return s.reject(err)
	}

	switch section {
	case model.SectionQuests:
		b.Quests = removeAt(b.Quests, rowIndex)
	case model.SectionRewards:
		b.Rewards = removeAt(b.Rewards, rowIndex)
	case model.SectionGoldenTile:
		b.GoldenTiles = removeAt(b.GoldenTiles, rowIndex)
	}
	s.applyBoard(op, boardIndex, b)
	return nil
}

// applyBoard installs b at boardIndex in a new snapshot. Callers hold s.mu.
func (s *EventStore) applyBoard(op string, boardIndex int, b model.Board) {
	doc := *s.doc
	doc.Boards = replaceAt(doc.Boards, boardIndex, b)
	s.apply(op, &doc, s.sel)
}

func checkRowSection(op string, section model.Section, row model.Row) error {
	if _, err := model.ParseSection(string(section)); err != nil {
		return err
	}
	switch row.(type) {
	case model.Quest, model.Reward, model.GoldenTile:
	default:
		// nil, or a pointer to a row value.
		return &SectionMismatchError{Op: op, Section: section}
	}
	if row.Section() != section {
		return &SectionMismatchError{Op: op, Section: section, Got: row.Section()}
	}
	return nil
}
