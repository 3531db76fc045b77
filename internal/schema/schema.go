// Package schema decodes and validates bingo event documents.
//
// Parse is the single entry point used by the loader. Every field is required
// except the three board sections, which default to empty.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"bingo-editor/internal/model"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError reports every field that does not conform to the schema.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "schema validation failed"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, is.Path+": "+is.Message)
	}
	return "schema validation failed: " + strings.Join(parts, "; ")
}

type wireDocument struct {
	Theme  *string     `json:"theme" validate:"required"`
	Titles []*wireTitle `json:"titles" validate:"required,dive,required"`
	Boards []*wireBoard `json:"boards" validate:"required,dive,required"`
}

type wireTitle struct {
	LanguageID  *string `json:"language_id" validate:"required"`
	Translation *string `json:"translation" validate:"required"`
}

type wireBoard struct {
	GoldenTiles []*wireGoldenTile `json:"golden_tile" validate:"dive,required"`
	Quests      []*wireQuest      `json:"quests" validate:"dive,required"`
	Rewards     []*wireReward     `json:"rewards" validate:"dive,required"`
}

type wireQuest struct {
	Area       *string  `json:"area" validate:"required"`
	Quantity   *float64 `json:"quantity" validate:"required"`
	Render     *string  `json:"render" validate:"required"`
	Target     *string  `json:"target" validate:"required"`
	TargetType *string  `json:"target_type" validate:"required"`
	Type       *string  `json:"type" validate:"required"`
}

type wireReward struct {
	ID       *string  `json:"id" validate:"required"`
	Quantity *float64 `json:"quantity" validate:"required"`
	Type     *string  `json:"type" validate:"required"`
}

type wireGoldenTile struct {
	QuestPosition  *float64 `json:"quest_position" validate:"required"`
	RewardID       *string  `json:"reward_id" validate:"required"`
	RewardQuantity *float64 `json:"reward_quantity" validate:"required"`
	RewardType     *string  `json:"reward_type" validate:"required"`
	Spotlight      *flag    `json:"spotlight" validate:"required"`
}

// flag is the boolean-as-string spotlight value. Input may be a JSON boolean
// or a string; "true"/"false" are written back as booleans.
type flag string

func (f *flag) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("true")):
		*f = "true"
		return nil
	case bytes.Equal(b, []byte("false")):
		*f = "false"
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flag(s)
		return nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return &json.UnmarshalTypeError{Value: kindOf(v), Type: reflect.TypeOf(true)}
}

func (f flag) MarshalJSON() ([]byte, error) {
	switch f {
	case "true", "false":
		return []byte(f), nil
	}
	return json.Marshal(string(f))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Parse decodes raw JSON and validates it against the document schema.
// Non-conforming input yields a *ValidationError listing every issue;
// malformed JSON yields a wrapped decode error.
func Parse(raw []byte) (model.Document, error) {
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) {
			return model.Document{}, &ValidationError{Issues: []Issue{typeIssue(te)}}
		}
		return model.Document{}, fmt.Errorf("decode event document: %w", err)
	}

	// The original data source spells the title list "title".
	if m, ok := tree.(map[string]any); ok {
		if legacy, ok := m["title"]; ok {
			if _, ok := m["titles"]; !ok {
				m["titles"] = legacy
			}
			delete(m, "title")
		}
	}

	// Wrongly typed values are reported here with their full path and
	// removed, so the struct decode below cannot fail on them.
	var issues []Issue
	tree = checkKinds(tree, reflect.TypeOf(wireDocument{}), "", &issues)
	if tree == nil {
		return model.Document{}, &ValidationError{Issues: issues}
	}
	clean, err := json.Marshal(tree)
	if err != nil {
		return model.Document{}, fmt.Errorf("re-encode event document: %w", err)
	}
	var w wireDocument
	if err := json.Unmarshal(clean, &w); err != nil {
		return model.Document{}, fmt.Errorf("decode event document: %w", err)
	}

	if err := validate.Struct(w); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return model.Document{}, fmt.Errorf("validate event document: %w", err)
		}
		reported := make(map[string]bool, len(issues))
		for _, is := range issues {
			reported[is.Path] = true
		}
		for _, fe := range verrs {
			p := issuePath(fe.Namespace())
			if reported[p] {
				continue
			}
			issues = append(issues, Issue{Path: p, Message: issueMessage(fe)})
		}
	}
	if len(issues) > 0 {
		return model.Document{}, &ValidationError{Issues: issues}
	}
	return w.toModel(), nil
}

// ParseYAML accepts the same document written as YAML.
func ParseYAML(raw []byte) (model.Document, error) {
	var v any
	if err := yaml.Unmarshal(raw, &v); err != nil {
		return model.Document{}, fmt.Errorf("decode yaml event document: %w", err)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return model.Document{}, fmt.Errorf("convert yaml event document: %w", err)
	}
	return Parse(b)
}

// Marshal writes doc in the data source shape. Nil collections are written as [].
func Marshal(doc model.Document, pretty bool) ([]byte, error) {
	w := fromModel(doc)
	if pretty {
		return json.MarshalIndent(w, "", "  ")
	}
	return json.Marshal(w)
}

// Export returns doc in the data source shape for generic encoders
// (yaml, edn). Its JSON encoding equals Marshal's.
func Export(doc model.Document) any {
	return fromModel(doc)
}

func issuePath(ns string) string {
	// Drop the root struct name ("wireDocument.").
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func issueMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

func typeIssue(te *json.UnmarshalTypeError) Issue {
	path := te.Field
	if path == "" {
		path = "(root)"
	}
	return Issue{Path: path, Message: fmt.Sprintf("expected %s, received %s", te.Type, te.Value)}
}
