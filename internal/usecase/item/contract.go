package item

import (
	"context"

	domitem "github.com/kailas-cloud/snapdex/internal/domain/item"
)

// Repository defines the storage contract for items and their images.
type Repository interface {
	Save(ctx context.Context, it domitem.Item) error
	Get(ctx context.Context, id string) (domitem.Item, error)
	List(ctx context.Context, owner string) ([]domitem.Item, error)
	Delete(ctx context.Context, id string) error
	SaveImage(ctx context.Context, id string, data []byte) error
	Image(ctx context.Context, id string) ([]byte, error)
}

// ScoreDeleter removes the score records of a deleted item.
type ScoreDeleter interface {
	DeleteByItem(ctx context.Context, itemID string) error
}

// Queue schedules an item for analysis.
type Queue interface {
	Enqueue(ctx context.Context, id string) error
}
