package store

import (
	"time"

	"rundown-cli/internal/model"
)

// SeedItems returns a small demo show for `rundown init`.
func SeedItems() []model.Item {
	now := time.Now().UTC()
	mk := func(kind model.ItemKind, name string, dur int) model.Item {
		return model.Item{
			ID:        NewItemID(),
			Kind:      kind,
			Name:      name,
			Duration:  dur,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	return []model.Item{
		mk(model.ItemKindHeader, "A Block: Top Stories", 0),
		mk(model.ItemKindSegment, "Cold Open", 20),
		mk(model.ItemKindSegment, "Headlines", 90),
		mk(model.ItemKindSegment, "Lead Package", 150),
		mk(model.ItemKindHeader, "B Block: Weather", 0),
		mk(model.ItemKindSegment, "Weather Tease", 15),
		mk(model.ItemKindSegment, "Forecast", 120),
		mk(model.ItemKindHeader, "C Block: Sports", 0),
		mk(model.ItemKindSegment, "Sports Wrap", 180),
		mk(model.ItemKindSegment, "Kicker", 45),
	}
}
