package store

import (
	"errors"
	"fmt"

	"bingo-editor/internal/model"
)

var ErrIndexOutOfRange = errors.New("index out of range")

// IndexOutOfRangeError is returned when a mutation addresses a board, row or
// title that does not exist. The document is left unchanged.
type IndexOutOfRangeError struct {
	Op     string
	Target string
	Index  int
	Len    int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: %s index %d out of range (len %d)", e.Op, e.Target, e.Index, e.Len)
}

func (e *IndexOutOfRangeError) Is(target error) bool { return target == ErrIndexOutOfRange }

// SectionMismatchError is returned when a row is written to a section of a
// different kind (e.g. a Reward into quests).
type SectionMismatchError struct {
	Op      string
	Section model.Section
	Got     model.Section
}

func (e *SectionMismatchError) Error() string {
	if e.Got == "" {
		return fmt.Sprintf("%s: missing row for section %s", e.Op, e.Section)
	}
	return fmt.Sprintf("%s: %s row cannot be stored in %s", e.Op, e.Got, e.Section)
}

type UnknownFieldError struct {
	Op    string
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s: unknown field %q", e.Op, e.Field)
}

func outOfRange(op, target string, index, n int) error {
	if index >= 0 && index < n {
		return nil
	}
	return &IndexOutOfRangeError{Op: op, Target: target, Index: index, Len: n}
}
