package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Section is one of the three row collections of a board.
type Section string

const (
	SectionQuests     Section = "quests"
	SectionRewards    Section = "rewards"
	SectionGoldenTile Section = "golden_tile"
)

// Sections lists the board sections in display order.
func Sections() []Section {
	return []Section{SectionQuests, SectionRewards, SectionGoldenTile}
}

func ParseSection(s string) (Section, error) {
	switch Section(strings.TrimSpace(s)) {
	case SectionQuests:
		return SectionQuests, nil
	case SectionRewards:
		return SectionRewards, nil
	case SectionGoldenTile:
		return SectionGoldenTile, nil
	default:
		return "", fmt.Errorf("unknown section: %q", s)
	}
}

// Label is the human-facing name ("Golden tile" for golden_tile).
func (s Section) Label() string {
	str := strings.ReplaceAll(string(s), "_", " ")
	if str == "" {
		return ""
	}
	return strings.ToUpper(str[:1]) + str[1:]
}

// FieldKind selects the edit gate applied to a field.
type FieldKind int

const (
	FieldString FieldKind = iota
	FieldNumber
	FieldBoolString
)

func (k FieldKind) String() string {
	switch k {
	case FieldNumber:
		return "number"
	case FieldBoolString:
		return "bool-string"
	default:
		return "string"
	}
}

type Field struct {
	Name string
	Kind FieldKind
}

var (
	questFields = []Field{
		{Name: "area", Kind: FieldString},
		{Name: "quantity", Kind: FieldNumber},
		{Name: "render", Kind: FieldString},
		{Name: "target", Kind: FieldString},
		{Name: "target_type", Kind: FieldString},
		{Name: "type", Kind: FieldString},
	}
	rewardFields = []Field{
		{Name: "id", Kind: FieldString},
		{Name: "quantity", Kind: FieldNumber},
		{Name: "type", Kind: FieldString},
	}
	goldenTileFields = []Field{
		{Name: "quest_position", Kind: FieldNumber},
		{Name: "reward_id", Kind: FieldString},
		{Name: "reward_quantity", Kind: FieldNumber},
		{Name: "reward_type", Kind: FieldString},
		{Name: "spotlight", Kind: FieldBoolString},
	}
)

// Fields returns the column layout of a section, in schema order.
func Fields(section Section) []Field {
	switch section {
	case SectionQuests:
		return questFields
	case SectionRewards:
		return rewardFields
	case SectionGoldenTile:
		return goldenTileFields
	default:
		return nil
	}
}

// LookupField finds a field of section by name.
func LookupField(section Section, name string) (Field, bool) {
	for _, f := range Fields(section) {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Row is a quest, reward or golden tile. The set of implementations is closed.
type Row interface {
	Section() Section
	// Value returns the display text of a field ("" for unknown fields).
	Value(field string) string
	// WithString and WithNumber return an updated copy. ok is false when
	// field does not exist on the row or has a different kind.
	WithString(field, value string) (Row, bool)
	WithNumber(field string, value float64) (Row, bool)

	isRow()
}

type Quest struct {
	Area       string  `json:"area"`
	Quantity   float64 `json:"quantity"`
	Render     string  `json:"render"`
	Target     string  `json:"target"`
	TargetType string  `json:"target_type"`
	Type       string  `json:"type"`
}

type Reward struct {
	ID       string  `json:"id"`
	Quantity float64 `json:"quantity"`
	Type     string  `json:"type"`
}

type GoldenTile struct {
	QuestPosition  float64 `json:"quest_position"`
	RewardID       string  `json:"reward_id"`
	RewardQuantity float64 `json:"reward_quantity"`
	RewardType     string  `json:"reward_type"`
	// Spotlight is "true" or "false".
	Spotlight string `json:"spotlight"`
}

func NewQuest() Quest   { return Quest{} }
func NewReward() Reward { return Reward{} }

func NewGoldenTile() GoldenTile {
	return GoldenTile{Spotlight: "false"}
}

// NewRow returns the blank row appended by "add row" in the given section.
func NewRow(section Section) (Row, error) {
	switch section {
	case SectionQuests:
		return NewQuest(), nil
	case SectionRewards:
		return NewReward(), nil
	case SectionGoldenTile:
		return NewGoldenTile(), nil
	default:
		return nil, fmt.Errorf("unknown section: %q", section)
	}
}

// FormatNumber renders a quantity without trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (Quest) isRow()      {}
func (Reward) isRow()     {}
func (GoldenTile) isRow() {}

func (Quest) Section() Section      { return SectionQuests }
func (Reward) Section() Section     { return SectionRewards }
func (GoldenTile) Section() Section { return SectionGoldenTile }

func (q Quest) Value(field string) string {
	switch field {
	case "area":
		return q.Area
	case "quantity":
		return FormatNumber(q.Quantity)
	case "render":
		return q.Render
	case "target":
		return q.Target
	case "target_type":
		return q.TargetType
	case "type":
		return q.Type
	}
	return ""
}

func (q Quest) WithString(field, value string) (Row, bool) {
	switch field {
	case "area":
		q.Area = value
	case "render":
		q.Render = value
	case "target":
		q.Target = value
	case "target_type":
		q.TargetType = value
	case "type":
		q.Type = value
	default:
		return q, false
	}
	return q, true
}

func (q Quest) WithNumber(field string, value float64) (Row, bool) {
	if field != "quantity" {
		return q, false
	}
	q.Quantity = value
	return q, true
}

func (r Reward) Value(field string) string {
	switch field {
	case "id":
		return r.ID
	case "quantity":
		return FormatNumber(r.Quantity)
	case "type":
		return r.Type
	}
	return ""
}

func (r Reward) WithString(field, value string) (Row, bool) {
	switch field {
	case "id":
		r.ID = value
	case "type":
		r.Type = value
	default:
		return r, false
	}
	return r, true
}

func (r Reward) WithNumber(field string, value float64) (Row, bool) {
	if field != "quantity" {
		return r, false
	}
	r.Quantity = value
	return r, true
}

func (g GoldenTile) Value(field string) string {
	switch field {
	case "quest_position":
		return FormatNumber(g.QuestPosition)
	case "reward_id":
		return g.RewardID
	case "reward_quantity":
		return FormatNumber(g.RewardQuantity)
	case "reward_type":
		return g.RewardType
	case "spotlight":
		return g.Spotlight
	}
	return ""
}

// WithString also covers spotlight; the "true"/"false" gate lives at the edit boundary.
func (g GoldenTile) WithString(field, value string) (Row, bool) {
	switch field {
	case "reward_id":
		g.RewardID = value
	case "reward_type":
		g.RewardType = value
	case "spotlight":
		g.Spotlight = value
	default:
		return g, false
	}
	return g, true
}

func (g GoldenTile) WithNumber(field string, value float64) (Row, bool) {
	switch field {
	case "quest_position":
		g.QuestPosition = value
	case "reward_quantity":
		g.RewardQuantity = value
	default:
		return g, false
	}
	return g, true
}
