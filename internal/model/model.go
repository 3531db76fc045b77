package model

// Document is the bingo event configuration being edited.
type Document struct {
	Theme  string  `json:"theme"`
	Titles []Title `json:"titles"`
	Boards []Board `json:"boards"`
}

type Title struct {
	LanguageID  string `json:"language_id"`
	Translation string `json:"translation"`
}

// TitleField names an editable column of the titles table.
type TitleField string

const (
	TitleLanguageID  TitleField = "language_id"
	TitleTranslation TitleField = "translation"
)

func TitleFields() []TitleField {
	return []TitleField{TitleLanguageID, TitleTranslation}
}

// With returns a copy of t with field set to value.
func (t Title) With(field TitleField, value string) (Title, bool) {
	switch field {
	case TitleLanguageID:
		t.LanguageID = value
	case TitleTranslation:
		t.Translation = value
	default:
		return t, false
	}
	return t, true
}

func (t Title) Value(field TitleField) string {
	switch field {
	case TitleLanguageID:
		return t.LanguageID
	case TitleTranslation:
		return t.Translation
	default:
		return ""
	}
}

// Board is one bingo grid. Boards have no id; their address is their index.
type Board struct {
	Quests      []Quest      `json:"quests"`
	Rewards     []Reward     `json:"rewards"`
	GoldenTiles []GoldenTile `json:"golden_tile"`
}

// NewBoard returns a board with three empty sections.
func NewBoard() Board {
	return Board{
		Quests:      []Quest{},
		Rewards:     []Reward{},
		GoldenTiles: []GoldenTile{},
	}
}

// Len reports the number of rows in the given section.
func (b Board) Len(section Section) int {
	switch section {
	case SectionQuests:
		return len(b.Quests)
	case SectionRewards:
		return len(b.Rewards)
	case SectionGoldenTile:
		return len(b.GoldenTiles)
	default:
		return 0
	}
}

// Row returns the row at index i of section. Callers check bounds with Len.
func (b Board) Row(section Section, i int) Row {
	switch section {
	case SectionQuests:
		return b.Quests[i]
	case SectionRewards:
		return b.Rewards[i]
	case SectionGoldenTile:
		return b.GoldenTiles[i]
	default:
		return nil
	}
}

// Selection is the transient UI cursor. It is not part of the document.
type Selection struct {
	Board    int
	HasBoard bool
	Section  Section
}
