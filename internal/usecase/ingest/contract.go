package ingest

import (
	"context"

	"github.com/kailas-cloud/snapdex/internal/domain/item"
)

// Lifecycle is the consumer interface for item state changes (ISP).
type Lifecycle interface {
	MarkProcessing(ctx context.Context, id string) (item.Item, error)
	Image(ctx context.Context, id string) ([]byte, error)
	Complete(ctx context.Context, id string, f item.Features) (item.Item, error)
	Fail(ctx context.Context, id, msg string) (item.Item, error)
}

// Analyzer extracts screenshot features from image bytes.
type Analyzer interface {
	Analyze(ctx context.Context, image []byte, mimeType string) (item.Features, error)
}
