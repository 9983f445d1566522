package search

import (
	"context"

	"github.com/kailas-cloud/snapdex/internal/domain/item"
	"github.com/kailas-cloud/snapdex/internal/domain/score"
)

// ItemReader reads candidate items. An empty owner lists all owners.
type ItemReader interface {
	List(ctx context.Context, owner string) ([]item.Item, error)
	Get(ctx context.Context, id string) (item.Item, error)
}

// ScoreStore persists score records keyed by (item, query).
type ScoreStore interface {
	Upsert(ctx context.Context, rec score.Record) error
}
