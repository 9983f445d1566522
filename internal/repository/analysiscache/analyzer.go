package analysiscache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/snapdex/internal/db"
	"github.com/kailas-cloud/snapdex/internal/domain/item"
)

// analyzer is the decorated vision analyzer.
type analyzer interface {
	Analyze(ctx context.Context, image []byte, mimeType string) (item.Features, error)
}

// store is the consumer interface for the analysis cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// CachedAnalyzer caches extracted features by image content, so
// reprocessing or re-uploading the same bytes skips the provider call.
type CachedAnalyzer struct {
	inner      analyzer
	store      store
	keyPrefix  string
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// keyPrefix should include the model name so a model switch starts cold.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner analyzer,
	s store,
	keyPrefix string,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedAnalyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedAnalyzer{
		inner:      inner,
		store:      s,
		keyPrefix:  keyPrefix,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Analyze returns cached features or calls the inner analyzer.
// Failures are never cached.
func (c *CachedAnalyzer) Analyze(ctx context.Context, image []byte, mimeType string) (item.Features, error) {
	key := c.cacheKey(image)

	if f, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return f, nil
	}

	c.incCache("miss")

	f, err := c.inner.Analyze(ctx, image, mimeType)
	if err != nil {
		return item.Features{}, fmt.Errorf("analyze image: %w", err)
	}

	c.putToCache(ctx, key, f)
	return f, nil
}

func (c *CachedAnalyzer) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedAnalyzer) cacheKey(image []byte) string {
	h := sha256.Sum256(image)
	return c.keyPrefix + hex.EncodeToString(h[:])
}

func (c *CachedAnalyzer) getFromCache(ctx context.Context, key string) (item.Features, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached analysis", zap.String("key", key), zap.Error(err))
		}
		return item.Features{}, false
	}
	if len(data) == 0 {
		return item.Features{}, false
	}

	var row featuresRow
	if err := json.Unmarshal(data, &row); err != nil {
		c.logger.Warn("Failed to parse cached analysis", zap.String("key", key), zap.Error(err))
		return item.Features{}, false
	}
	return row.features(), true
}

func (c *CachedAnalyzer) putToCache(ctx context.Context, key string, f item.Features) {
	data, err := json.Marshal(rowFrom(f))
	if err != nil {
		c.logger.Warn("Failed to encode analysis", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, key, data); err != nil {
		c.logger.Warn("Failed to cache analysis", zap.String("key", key), zap.Error(err))
	}
}

type featuresRow struct {
	ExtractedText     *string           `json:"extracted_text,omitempty"`
	VisualDescription *string           `json:"visual_description,omitempty"`
	UIElements        []string          `json:"ui_elements,omitempty"`
	DominantColors    []string          `json:"dominant_colors,omitempty"`
	ErrorStates       []string          `json:"error_states,omitempty"`
	VisualPatterns    []string          `json:"visual_patterns,omitempty"`
	ColorContext      map[string]string `json:"color_context,omitempty"`
}

func rowFrom(f item.Features) featuresRow {
	return featuresRow{
		ExtractedText:     f.ExtractedText,
		VisualDescription: f.VisualDescription,
		UIElements:        f.UIElements,
		DominantColors:    f.DominantColors,
		ErrorStates:       f.ErrorStates,
		VisualPatterns:    f.VisualPatterns,
		ColorContext:      f.ColorContext,
	}
}

func (r featuresRow) features() item.Features {
	return item.Features{
		ExtractedText:     r.ExtractedText,
		VisualDescription: r.VisualDescription,
		UIElements:        r.UIElements,
		DominantColors:    r.DominantColors,
		ErrorStates:       r.ErrorStates,
		VisualPatterns:    r.VisualPatterns,
		ColorContext:      r.ColorContext,
	}.Normalize()
}
