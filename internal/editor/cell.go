package editor

import "bingo-editor/internal/model"

// Cell is the in-progress edit of one table cell.
//
// Blur and Enter both call Commit, so they always commit the same value.
type Cell struct {
	Field     model.Field
	committed string
	draft     string
	err       error
}

func NewCell(f model.Field, committed string) Cell {
	return Cell{Field: f, committed: committed, draft: committed}
}

func (c Cell) Committed() string { return c.committed }
func (c Cell) Draft() string     { return c.draft }
func (c Cell) Errored() bool     { return c.err != nil }
func (c Cell) Err() error        { return c.err }

// SetDraft records keystrokes. The error flag is only recomputed on commit
// so that a half-typed value is not flagged mid-edit.
func (c *Cell) SetDraft(text string) {
	c.draft = text
}

// Commit validates the draft. On success the committed value is updated and
// returned with ok=true; on failure the draft is held, the cell is marked
// errored and the previous committed value stays.
func (c *Cell) Commit() (string, bool) {
	v, err := Check(c.Field, c.draft)
	if err != nil {
		c.err = err
		return c.committed, false
	}
	c.err = nil
	c.committed = v
	c.draft = v
	return v, true
}

// Abandon drops the draft and clears the error state.
func (c *Cell) Abandon() {
	c.draft = c.committed
	c.err = nil
}
