package store

import "bingo-editor/internal/model"

// SetTheme replaces the theme. A nil theme is ignored; "" is a valid theme.
func (s *EventStore) SetTheme(theme *string) {
	if theme == nil {
		return
	}
	s.mu.Lock()
	doc := *s.doc
	doc.Theme = *theme
	s.apply("set_theme", &doc, s.sel)
}

// UpdateTitleCell replaces one field of titles[rowIndex].
func (s *EventStore) UpdateTitleCell(rowIndex int, field model.TitleField, value string) error {
	const op = "update_title_cell"
	s.mu.Lock()
	if err := outOfRange(op, "title", rowIndex, len(s.doc.Titles)); err != nil {
		return s.reject(err)
	}
	t, ok := s.doc.Titles[rowIndex].With(field, value)
	if !ok {
		return s.reject(&UnknownFieldError{Op: op, Field: string(field)})
	}
	doc := *s.doc
	doc.Titles = replaceAt(doc.Titles, rowIndex, t)
	s.apply(op, &doc, s.sel)
	return nil
}

func (s *EventStore) AddTitle(t model.Title) {
	s.mu.Lock()
	doc := *s.doc
	doc.Titles = appendCopy(doc.Titles, t)
	s.apply("add_title", &doc, s.sel)
}

func (s *EventStore) DeleteTitle(rowIndex int) error {
	s.mu.Lock()
	if err := outOfRange("delete_title", "title", rowIndex, len(s.doc.Titles)); err != nil {
		return s.reject(err)
	}
	doc := *s.doc
	doc.Titles = removeAt(doc.Titles, rowIndex)
	s.apply("delete_title", &doc, s.sel)
	return nil
}
