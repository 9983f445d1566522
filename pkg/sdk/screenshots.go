package snapdex

import (
	"context"
	"fmt"
	"time"
)

// ScreenshotService manages stored screenshots.
type ScreenshotService struct {
	svc itemUseCase
	obs *observer
}

// Upload stores image bytes as a pending screenshot. With an analyzer
// configured it is queued for analysis; otherwise it stays pending until
// features are imported for its ID.
func (s *ScreenshotService) Upload(ctx context.Context, owner string, file File, image []byte) (_ Screenshot, err error) {
	start := time.Now()
	defer func() { s.obs.observe("upload", start, err, "owner", owner) }()

	it, err := s.svc.Create(ctx, owner, toInternalFile(file), image)
	if err != nil {
		return Screenshot{}, fmt.Errorf("upload: %w", err)
	}
	return fromInternalScreenshot(it), nil
}

// Import stores a screenshot with features extracted elsewhere and makes it
// searchable. Importing an existing ID replaces its features.
func (s *ScreenshotService) Import(ctx context.Context, req ImportRequest) (_ Screenshot, err error) {
	start := time.Now()
	defer func() { s.obs.observe("import", start, err, "owner", req.Owner) }()

	it, err := s.svc.Import(ctx, req.Owner, req.ID,
		toInternalFile(req.File), toInternalFeatures(req.Features), req.UploadedAt)
	if err != nil {
		return Screenshot{}, fmt.Errorf("import: %w", err)
	}
	return fromInternalScreenshot(it), nil
}

// Get returns one screenshot. An empty owner skips the ownership check.
func (s *ScreenshotService) Get(ctx context.Context, owner, id string) (_ Screenshot, err error) {
	start := time.Now()
	defer func() { s.obs.observe("get", start, err, "owner", owner) }()

	it, err := s.svc.Get(ctx, owner, id)
	if err != nil {
		return Screenshot{}, fmt.Errorf("get screenshot: %w", err)
	}
	return fromInternalScreenshot(it), nil
}

// List returns the owner's screenshots newest first. An empty owner lists all.
func (s *ScreenshotService) List(ctx context.Context, owner string) (_ []Screenshot, err error) {
	start := time.Now()
	defer func() { s.obs.observe("list", start, err, "owner", owner) }()

	items, err := s.svc.List(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list screenshots: %w", err)
	}
	out := make([]Screenshot, len(items))
	for i, it := range items {
		out[i] = fromInternalScreenshot(it)
	}
	return out, nil
}

// Delete removes a screenshot with its image and score records.
func (s *ScreenshotService) Delete(ctx context.Context, owner, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("delete", start, err, "owner", owner) }()

	if err = s.svc.Delete(ctx, owner, id); err != nil {
		return fmt.Errorf("delete screenshot: %w", err)
	}
	return nil
}

// Reprocess resets a screenshot to pending and queues it for analysis.
// Returns ErrAnalyzerNotConfigured without an analyzer.
func (s *ScreenshotService) Reprocess(ctx context.Context, owner, id string) (_ Screenshot, err error) {
	start := time.Now()
	defer func() { s.obs.observe("reprocess", start, err, "owner", owner) }()

	it, err := s.svc.Reprocess(ctx, owner, id)
	if err != nil {
		return Screenshot{}, fmt.Errorf("reprocess: %w", err)
	}
	return fromInternalScreenshot(it), nil
}

// ReprocessFailed queues every failed screenshot of the owner and returns how many.
func (s *ScreenshotService) ReprocessFailed(ctx context.Context, owner string) (n int, err error) {
	start := time.Now()
	defer func() { s.obs.observe("reprocess_failed", start, err, "owner", owner, "queued", n) }()

	n, err = s.svc.ReprocessFailed(ctx, owner)
	if err != nil {
		return n, fmt.Errorf("reprocess failed: %w", err)
	}
	return n, nil
}
