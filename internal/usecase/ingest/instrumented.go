package ingest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/snapdex/internal/domain/item"
)

// InstrumentedAnalyzer wraps an Analyzer with logging.
// Transport metrics (requests, duration, tokens) are recorded in transport/openai.
type InstrumentedAnalyzer struct {
	inner    Analyzer
	provider string
	model    string
	logger   *zap.Logger
}

// NewInstrumentedAnalyzer wraps an analyzer with observability.
func NewInstrumentedAnalyzer(inner Analyzer, provider, model string, logger *zap.Logger) *InstrumentedAnalyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstrumentedAnalyzer{inner: inner, provider: provider, model: model, logger: logger}
}

// Analyze delegates to the inner analyzer and logs the outcome.
func (a *InstrumentedAnalyzer) Analyze(ctx context.Context, image []byte, mimeType string) (item.Features, error) {
	start := time.Now()

	f, err := a.inner.Analyze(ctx, image, mimeType)

	duration := time.Since(start)

	if err != nil {
		a.logger.Error("Analysis request failed",
			zap.String("provider", a.provider),
			zap.String("model", a.model),
			zap.Duration("duration", duration),
			zap.Int("image_bytes", len(image)),
			zap.Error(err),
		)
		return item.Features{}, fmt.Errorf("analyze: %w", err)
	}

	a.logger.Debug("Analysis request completed",
		zap.String("provider", a.provider),
		zap.String("model", a.model),
		zap.Duration("duration", duration),
		zap.Int("image_bytes", len(image)),
		zap.Int("text_chars", len(f.Text())),
		zap.Int("ui_elements", len(f.UIElements)),
		zap.Int("colors", len(f.DominantColors)),
	)
	return f, nil
}
