package schema

import (
	"errors"
	"strings"
	"testing"

	"bingo-editor/internal/model"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const sampleJSON = `{
  "theme": "Spring",
  "title": [
    {"language_id": "en", "translation": "Spring Bingo"},
    {"language_id": "fr", "translation": "Bingo du printemps"}
  ],
  "boards": [
    {
      "quests": [
        {"area": "forest", "quantity": 2, "render": "r", "target": "wolf", "target_type": "mob", "type": "kill"}
      ],
      "rewards": [
        {"id": "gold", "quantity": 100, "type": "currency"}
      ],
      "golden_tile": [
        {"quest_position": 4, "reward_id": "gem", "reward_quantity": 1, "reward_type": "item", "spotlight": true}
      ]
    },
    {}
  ]
}`

func TestParse_SampleDocument(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := model.Document{
		Theme: "Spring",
		Titles: []model.Title{
			{LanguageID: "en", Translation: "Spring Bingo"},
			{LanguageID: "fr", Translation: "Bingo du printemps"},
		},
		Boards: []model.Board{
			{
				Quests:      []model.Quest{{Area: "forest", Quantity: 2, Render: "r", Target: "wolf", TargetType: "mob", Type: "kill"}},
				Rewards:     []model.Reward{{ID: "gold", Quantity: 100, Type: "currency"}},
				GoldenTiles: []model.GoldenTile{{QuestPosition: 4, RewardID: "gem", RewardQuantity: 1, RewardType: "item", Spotlight: "true"}},
			},
			model.NewBoard(),
		},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Fatalf("Parse mismatch (-want +got):\n%s", diff)
	}
	if doc.Boards[1].Quests == nil || doc.Boards[1].GoldenTiles == nil {
		t.Fatalf("expected absent board sections to default to empty, non-nil slices")
	}
}

func TestParse_TitlesKeyWinsOverLegacy(t *testing.T) {
	t.Parallel()

	raw := `{"theme":"x","titles":[{"language_id":"en","translation":"new"}],"title":[{"language_id":"en","translation":"old"}],"boards":[]}`
	doc, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Titles) != 1 || doc.Titles[0].Translation != "new" {
		t.Fatalf("expected titles key to win; got %+v", doc.Titles)
	}
}

func TestParse_ReportsMissingFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		wantPath string
	}{
		{
			name:     "missing theme",
			raw:      `{"titles":[],"boards":[]}`,
			wantPath: "theme",
		},
		{
			name:     "missing titles",
			raw:      `{"theme":"","boards":[]}`,
			wantPath: "titles",
		},
		{
			name:     "null boards",
			raw:      `{"theme":"","titles":[],"boards":null}`,
			wantPath: "boards",
		},
		{
			name:     "missing quest quantity",
			raw:      `{"theme":"","titles":[],"boards":[{"quests":[{"area":"a","render":"r","target":"t","target_type":"tt","type":"k"}]}]}`,
			wantPath: "boards[0].quests[0].quantity",
		},
		{
			name:     "missing spotlight",
			raw:      `{"theme":"","titles":[],"boards":[{},{"golden_tile":[{"quest_position":0,"reward_id":"","reward_quantity":0,"reward_type":""}]}]}`,
			wantPath: "boards[1].golden_tile[0].spotlight",
		},
		{
			name:     "missing title translation",
			raw:      `{"theme":"","titles":[{"language_id":"en"}],"boards":[]}`,
			wantPath: "titles[0].translation",
		},
		{
			name:     "null board",
			raw:      `{"theme":"","titles":[],"boards":[null]}`,
			wantPath: "boards[0]",
		},
		{
			name:     "board not an object",
			raw:      `{"theme":"","titles":[],"boards":[{},7]}`,
			wantPath: "boards[1]",
		},
		{
			name:     "null quests section",
			raw:      `{"theme":"","titles":[],"boards":[{"quests":null}]}`,
			wantPath: "boards[0].quests",
		},
		{
			name:     "rewards section not an array",
			raw:      `{"theme":"","titles":[],"boards":[{"rewards":{}}]}`,
			wantPath: "boards[0].rewards",
		},
		{
			name:     "null title",
			raw:      `{"theme":"","titles":[null],"boards":[]}`,
			wantPath: "titles[0]",
		},
		{
			name:     "null golden tile",
			raw:      `{"theme":"","titles":[],"boards":[{"golden_tile":[null]}]}`,
			wantPath: "boards[0].golden_tile[0]",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.raw))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError; got %v", err)
			}
			for _, is := range verr.Issues {
				if is.Path == tt.wantPath {
					return
				}
			}
			t.Fatalf("expected issue at %q; got %+v", tt.wantPath, verr.Issues)
		})
	}
}

func TestParse_TypeMismatchIsValidationError(t *testing.T) {
	t.Parallel()

	raw := `{"theme":"","titles":[],"boards":[{},{"rewards":[{"id":"a","quantity":"lots","type":"t"}]}]}`
	_, err := Parse([]byte(raw))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError; got %v", err)
	}
	want := []Issue{{Path: "boards[1].rewards[0].quantity", Message: "expected number, received string"}}
	if diff := cmp.Diff(want, verr.Issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_CollectsEveryIssue(t *testing.T) {
	t.Parallel()

	raw := `{"theme":1,"titles":[{"language_id":2,"translation":"x"},{"language_id":"fr"}],` +
		`"boards":[{"quests":[{"area":"a","quantity":"two","render":"r","target":"t","target_type":"tt"}]}]}`
	_, err := Parse([]byte(raw))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError; got %v", err)
	}
	want := []Issue{
		{Path: "theme", Message: "expected string, received number"},
		{Path: "titles[0].language_id", Message: "expected string, received number"},
		{Path: "boards[0].quests[0].quantity", Message: "expected number, received string"},
		{Path: "titles[1].translation", Message: "required"},
		{Path: "boards[0].quests[0].type", Message: "required"},
	}
	if diff := cmp.Diff(want, verr.Issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_RootMustBeObject(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{`[]`, `null`, `"x"`} {
		_, err := Parse([]byte(raw))
		var verr *ValidationError
		if !errors.As(err, &verr) || len(verr.Issues) != 1 || verr.Issues[0].Path != "(root)" {
			t.Fatalf("Parse(%s): expected one root issue; got %v", raw, err)
		}
	}
}

func TestParse_SpotlightMustBeBoolOrString(t *testing.T) {
	t.Parallel()

	raw := `{"theme":"","titles":[],"boards":[{"golden_tile":[{"quest_position":0,"reward_id":"","reward_quantity":0,"reward_type":"","spotlight":7}]}]}`
	_, err := Parse([]byte(raw))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError; got %v", err)
	}
}

func TestParse_MalformedJSONIsNotValidationError(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`{"theme":`))
	if err == nil {
		t.Fatalf("expected error")
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		t.Fatalf("malformed JSON should not be a schema validation error")
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	t.Parallel()

	docs := []model.Document{
		{},
		{Theme: "", Titles: []model.Title{{}}, Boards: []model.Board{{}}},
		{
			Theme:  "Winter",
			Titles: []model.Title{{LanguageID: "de", Translation: "Winterbingo"}},
			Boards: []model.Board{
				{
					Quests:      []model.Quest{{Area: "cave", Quantity: 1.5}},
					Rewards:     []model.Reward{{ID: "r1", Quantity: 0, Type: "xp"}},
					GoldenTiles: []model.GoldenTile{{QuestPosition: 3, Spotlight: "false"}, {Spotlight: "maybe"}},
				},
			},
		},
	}

	for i, d := range docs {
		b, err := Marshal(d, i%2 == 0)
		if err != nil {
			t.Fatalf("Marshal(%d): %v", i, err)
		}
		got, err := Parse(b)
		if err != nil {
			t.Fatalf("Parse(Marshal(%d)): %v\n%s", i, err, b)
		}
		if diff := cmp.Diff(d, got, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("round trip %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestMarshal_SpotlightWrittenAsBool(t *testing.T) {
	t.Parallel()

	doc := model.Document{Boards: []model.Board{{GoldenTiles: []model.GoldenTile{{Spotlight: "true"}}}}}
	b, err := Marshal(doc, false)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(b), `"spotlight":true`) {
		t.Fatalf("expected boolean spotlight; got %s", b)
	}
	if !strings.Contains(string(b), `"titles":[]`) {
		t.Fatalf("expected empty titles array; got %s", b)
	}
}

func TestParseYAML(t *testing.T) {
	t.Parallel()

	raw := `
theme: Autumn
titles:
  - language_id: en
    translation: Autumn Bingo
boards:
  - rewards:
      - id: leaf
        quantity: 3
        type: item
    golden_tile:
      - quest_position: 0
        reward_id: leaf
        reward_quantity: 1
        reward_type: item
        spotlight: "false"
`
	doc, err := ParseYAML([]byte(raw))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if doc.Theme != "Autumn" || len(doc.Boards) != 1 {
		t.Fatalf("unexpected doc: %+v", doc)
	}
	if got := doc.Boards[0].Rewards[0].Quantity; got != 3 {
		t.Fatalf("expected reward quantity 3; got %v", got)
	}
	if got := doc.Boards[0].GoldenTiles[0].Spotlight; got != "false" {
		t.Fatalf("expected spotlight false; got %q", got)
	}
}
