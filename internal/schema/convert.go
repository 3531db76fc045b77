package schema

import "bingo-editor/internal/model"

func (w wireDocument) toModel() model.Document {
	doc := model.Document{
		Theme:  *w.Theme,
		Titles: make([]model.Title, 0, len(w.Titles)),
		Boards: make([]model.Board, 0, len(w.Boards)),
	}
	for _, t := range w.Titles {
		doc.Titles = append(doc.Titles, model.Title{LanguageID: *t.LanguageID, Translation: *t.Translation})
	}
	for _, b := range w.Boards {
		doc.Boards = append(doc.Boards, b.toModel())
	}
	return doc
}

func (w wireBoard) toModel() model.Board {
	b := model.Board{
		Quests:      make([]model.Quest, 0, len(w.Quests)),
		Rewards:     make([]model.Reward, 0, len(w.Rewards)),
		GoldenTiles: make([]model.GoldenTile, 0, len(w.GoldenTiles)),
	}
	for _, q := range w.Quests {
		b.Quests = append(b.Quests, model.Quest{
			Area:       *q.Area,
			Quantity:   *q.Quantity,
			Render:     *q.Render,
			Target:     *q.Target,
			TargetType: *q.TargetType,
			Type:       *q.Type,
		})
	}
	for _, r := range w.Rewards {
		b.Rewards = append(b.Rewards, model.Reward{ID: *r.ID, Quantity: *r.Quantity, Type: *r.Type})
	}
	for _, g := range w.GoldenTiles {
		b.GoldenTiles = append(b.GoldenTiles, model.GoldenTile{
			QuestPosition:  *g.QuestPosition,
			RewardID:       *g.RewardID,
			RewardQuantity: *g.RewardQuantity,
			RewardType:     *g.RewardType,
			Spotlight:      string(*g.Spotlight),
		})
	}
	return b
}

// Output shapes. Separate from the wire input types so that Marshal never
// emits null for an empty collection.
type outDocument struct {
	Theme  string        `json:"theme"`
	Titles []model.Title `json:"titles"`
	Boards []outBoard    `json:"boards"`
}

type outBoard struct {
	GoldenTiles []outGoldenTile `json:"golden_tile"`
	Quests      []model.Quest   `json:"quests"`
	Rewards     []model.Reward  `json:"rewards"`
}

type outGoldenTile struct {
	QuestPosition  float64 `json:"quest_position"`
	RewardID       string  `json:"reward_id"`
	RewardQuantity float64 `json:"reward_quantity"`
	RewardType     string  `json:"reward_type"`
	Spotlight      flag    `json:"spotlight"`
}

func fromModel(doc model.Document) outDocument {
	out := outDocument{
		Theme:  doc.Theme,
		Titles: nonNil(doc.Titles),
		Boards: make([]outBoard, 0, len(doc.Boards)),
	}
	for _, b := range doc.Boards {
		ob := outBoard{
			GoldenTiles: make([]outGoldenTile, 0, len(b.GoldenTiles)),
			Quests:      nonNil(b.Quests),
			Rewards:     nonNil(b.Rewards),
		}
		for _, g := range b.GoldenTiles {
			ob.GoldenTiles = append(ob.GoldenTiles, outGoldenTile{
				QuestPosition:  g.QuestPosition,
				RewardID:       g.RewardID,
				RewardQuantity: g.RewardQuantity,
				RewardType:     g.RewardType,
				Spotlight:      flag(g.Spotlight),
			})
		}
		out.Boards = append(out.Boards, ob)
	}
	return out
}

func nonNil[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}
