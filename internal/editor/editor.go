// Package editor holds the edit-boundary gates for table cells. A draft only
// reaches the store once it passes the gate for its field kind; rejected
// drafts stay in the cell, marked as errored, until corrected or abandoned.
package editor

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"bingo-editor/internal/model"
)

// InvalidFieldInputError is local to the edit boundary and never reaches the store.
type InvalidFieldInputError struct {
	Field string
	Input string
	Want  string
}

func (e *InvalidFieldInputError) Error() string {
	return fmt.Sprintf("%s: %q is not %s", e.Field, e.Input, e.Want)
}

// ParseNumber accepts finite numbers >= 0. Empty input is rejected rather
// than treated as zero.
func ParseNumber(field, text string) (float64, error) {
	s := strings.TrimSpace(text)
	v, err := strconv.ParseFloat(s, 64)
	if s == "" || err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, &InvalidFieldInputError{Field: field, Input: text, Want: "a non-negative number"}
	}
	return v, nil
}

// ParseSpotlight accepts exactly "true" or "false".
func ParseSpotlight(field, text string) (string, error) {
	switch text {
	case "true", "false":
		return text, nil
	}
	return "", &InvalidFieldInputError{Field: field, Input: text, Want: `"true" or "false"`}
}

// Check runs the gate for kind and returns the normalized committed text.
func Check(f model.Field, text string) (string, error) {
	switch f.Kind {
	case model.FieldNumber:
		v, err := ParseNumber(f.Name, text)
		if err != nil {
			return "", err
		}
		return model.FormatNumber(v), nil
	case model.FieldBoolString:
		return ParseSpotlight(f.Name, text)
	default:
		return text, nil
	}
}

var errNilRow = errors.New("no row to edit")

// ApplyRow returns row with field set from text, or an
// *InvalidFieldInputError when text fails the field's gate.
func ApplyRow(row model.Row, field string, text string) (model.Row, error) {
	if row == nil {
		return nil, errNilRow
	}
	f, ok := model.LookupField(row.Section(), field)
	if !ok {
		return row, fmt.Errorf("%s has no field %q", row.Section(), field)
	}
	switch f.Kind {
	case model.FieldNumber:
		v, err := ParseNumber(f.Name, text)
		if err != nil {
			return row, err
		}
		out, _ := row.WithNumber(f.Name, v)
		return out, nil
	case model.FieldBoolString:
		if _, err := ParseSpotlight(f.Name, text); err != nil {
			return row, err
		}
	}
	out, _ := row.WithString(f.Name, text)
	return out, nil
}
