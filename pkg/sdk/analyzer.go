package snapdex

import (
	"context"
	"fmt"

	domitem "github.com/kailas-cloud/snapdex/internal/domain/item"
)

// Analyzer extracts features from screenshot image bytes.
type Analyzer interface {
	Analyze(ctx context.Context, image []byte, mimeType string) (Features, error)
}

// analyzerAdapter wraps a public Analyzer to satisfy the ingest worker.
type analyzerAdapter struct {
	inner Analyzer
}

func (a *analyzerAdapter) Analyze(ctx context.Context, image []byte, mimeType string) (domitem.Features, error) {
	f, err := a.inner.Analyze(ctx, image, mimeType)
	if err != nil {
		return domitem.Features{}, fmt.Errorf("analyze: %w", err)
	}
	return toInternalFeatures(f), nil
}
