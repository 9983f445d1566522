package item

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/snapdex/internal/domain"
	domitem "github.com/kailas-cloud/snapdex/internal/domain/item"
)

// DefaultMaxImageBytes is the upload limit when none is configured.
const DefaultMaxImageBytes = 10 << 20

// RecentLimit is the number of items Status returns.
const RecentLimit = 20

// Service manages the screenshot lifecycle: upload, analysis state, deletion.
// An empty owner means an unscoped administrative call.
type Service struct {
	repo          Repository
	scores        ScoreDeleter
	queue         Queue
	maxImageBytes int64
	now           func() time.Time
	newID         func() string
	logger        *zap.Logger
}

// New creates an item service.
func New(repo Repository, scores ScoreDeleter) *Service {
	return &Service{
		repo:          repo,
		scores:        scores,
		maxImageBytes: DefaultMaxImageBytes,
		now:           time.Now,
		newID:         uuid.NewString,
		logger:        zap.NewNop(),
	}
}

// WithQueue sets the analysis queue. Without one, uploads stay pending.
func (s *Service) WithQueue(q Queue) *Service {
	s.queue = q
	return s
}

// WithMaxImageBytes configures the upload size limit.
func (s *Service) WithMaxImageBytes(n int64) *Service {
	if n > 0 {
		s.maxImageBytes = n
	}
	return s
}

// WithClock replaces the clock used for lifecycle timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// WithLogger sets the service logger.
func (s *Service) WithLogger(l *zap.Logger) *Service {
	if l != nil {
		s.logger = l
	}
	return s
}

// Create stores an uploaded image as a pending item and queues it for analysis.
func (s *Service) Create(ctx context.Context, owner string, file domitem.File, image []byte) (domitem.Item, error) {
	if int64(len(image)) > s.maxImageBytes {
		return domitem.Item{}, fmt.Errorf("%d bytes (max %d): %w", len(image), s.maxImageBytes, domain.ErrImageTooLarge)
	}
	if !strings.HasPrefix(file.MIMEType, "image/") {
		return domitem.Item{}, fmt.Errorf("%q: %w", file.MIMEType, domain.ErrUnsupportedImage)
	}
	file.Size = int64(len(image))

	it, err := domitem.New(s.newID(), owner, file, s.now().UTC())
	if err != nil {
		return domitem.Item{}, fmt.Errorf("validate item: %w: %w", domain.ErrInvalidSchema, err)
	}
	if err := s.repo.SaveImage(ctx, it.ID(), image); err != nil {
		return domitem.Item{}, fmt.Errorf("save image: %w", err)
	}
	if err := s.repo.Save(ctx, it); err != nil {
		return domitem.Item{}, fmt.Errorf("save item: %w", err)
	}
	s.enqueue(ctx, it.ID())
	return it, nil
}

// Import stores an item whose features were extracted elsewhere.
// An empty id generates one. Re-importing an existing id replaces its features.
func (s *Service) Import(
	ctx context.Context, owner, id string, file domitem.File, f domitem.Features, uploadedAt time.Time,
) (domitem.Item, error) {
	if err := f.Validate(); err != nil {
		return domitem.Item{}, fmt.Errorf("validate features: %w: %w", domain.ErrInvalidSchema, err)
	}
	if id == "" {
		id = s.newID()
	}
	if uploadedAt.IsZero() {
		uploadedAt = s.now().UTC()
	}
	it, err := domitem.New(id, owner, file, uploadedAt)
	if err != nil {
		return domitem.Item{}, fmt.Errorf("validate item: %w: %w", domain.ErrInvalidSchema, err)
	}
	it, err = it.Complete(f, s.now().UTC())
	if err != nil {
		return domitem.Item{}, err
	}
	if err := s.repo.Save(ctx, it); err != nil {
		return domitem.Item{}, fmt.Errorf("save item: %w", err)
	}
	return it, nil
}

// Get returns an item visible to owner.
func (s *Service) Get(ctx context.Context, owner, id string) (domitem.Item, error) {
	it, err := s.repo.Get(ctx, id)
	if err != nil {
		return domitem.Item{}, fmt.Errorf("get item: %w", err)
	}
	if owner != "" && it.Owner() != owner {
		return domitem.Item{}, domain.ErrItemNotFound
	}
	return it, nil
}

// List returns the owner's items newest first.
func (s *Service) List(ctx context.Context, owner string) ([]domitem.Item, error) {
	items, err := s.repo.List(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// Delete removes an item together with its image and score records.
func (s *Service) Delete(ctx context.Context, owner, id string) error {
	if _, err := s.Get(ctx, owner, id); err != nil {
		return err
	}
	if err := s.scores.DeleteByItem(ctx, id); err != nil {
		return fmt.Errorf("delete scores: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// Image returns the stored image of an item.
func (s *Service) Image(ctx context.Context, id string) ([]byte, error) {
	data, err := s.repo.Image(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get image: %w", err)
	}
	return data, nil
}

// MarkProcessing moves an item into processing.
func (s *Service) MarkProcessing(ctx context.Context, id string) (domitem.Item, error) {
	return s.transition(ctx, id, func(it domitem.Item) (domitem.Item, error) {
		return it.StartProcessing()
	})
}

// Complete stores extracted features and makes the item searchable.
func (s *Service) Complete(ctx context.Context, id string, f domitem.Features) (domitem.Item, error) {
	if err := f.Validate(); err != nil {
		return domitem.Item{}, fmt.Errorf("validate features: %w: %w", domain.ErrInvalidSchema, err)
	}
	return s.transition(ctx, id, func(it domitem.Item) (domitem.Item, error) {
		return it.Complete(f, s.now().UTC())
	})
}

// CompleteFor is Complete restricted to the owner's items.
func (s *Service) CompleteFor(ctx context.Context, owner, id string, f domitem.Features) (domitem.Item, error) {
	if _, err := s.Get(ctx, owner, id); err != nil {
		return domitem.Item{}, err
	}
	return s.Complete(ctx, id, f)
}

// Fail records an analysis failure.
func (s *Service) Fail(ctx context.Context, id, msg string) (domitem.Item, error) {
	return s.transition(ctx, id, func(it domitem.Item) (domitem.Item, error) {
		return it.Fail(msg, s.now().UTC())
	})
}

// Reprocess resets an item to pending and queues it again.
func (s *Service) Reprocess(ctx context.Context, owner, id string) (domitem.Item, error) {
	if s.queue == nil {
		return domitem.Item{}, domain.ErrAnalyzerNotConfigured
	}
	it, err := s.Get(ctx, owner, id)
	if err != nil {
		return domitem.Item{}, err
	}
	it = it.Reset()
	if err := s.repo.Save(ctx, it); err != nil {
		return domitem.Item{}, fmt.Errorf("save item: %w", err)
	}
	s.enqueue(ctx, id)
	return it, nil
}

// ReprocessFailed requeues every failed item of the owner and returns how many.
func (s *Service) ReprocessFailed(ctx context.Context, owner string) (int, error) {
	if s.queue == nil {
		return 0, domain.ErrAnalyzerNotConfigured
	}
	items, err := s.List(ctx, owner)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, it := range items {
		if it.Status() != domitem.StatusFailed {
			continue
		}
		if _, err := s.Reprocess(ctx, owner, it.ID()); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Status summarizes an owner's items.
type Status struct {
	Total  int
	Counts map[domitem.Status]int
	// Recent holds up to RecentLimit items, newest first.
	Recent []domitem.Item
}

// Status counts items per lifecycle status.
func (s *Service) Status(ctx context.Context, owner string) (Status, error) {
	items, err := s.List(ctx, owner)
	if err != nil {
		return Status{}, err
	}
	st := Status{Total: len(items), Counts: make(map[domitem.Status]int, len(domitem.Statuses))}
	for _, status := range domitem.Statuses {
		st.Counts[status] = 0
	}
	for _, it := range items {
		st.Counts[it.Status()]++
	}
	st.Recent = items[:min(len(items), RecentLimit)]
	return st, nil
}

func (s *Service) transition(
	ctx context.Context, id string, fn func(domitem.Item) (domitem.Item, error),
) (domitem.Item, error) {
	it, err := s.repo.Get(ctx, id)
	if err != nil {
		return domitem.Item{}, fmt.Errorf("get item: %w", err)
	}
	next, err := fn(it)
	if err != nil {
		return domitem.Item{}, err
	}
	if err := s.repo.Save(ctx, next); err != nil {
		return domitem.Item{}, fmt.Errorf("save item: %w", err)
	}
	return next, nil
}

// enqueue schedules analysis. A full queue leaves the item pending for a
// later reprocess.
func (s *Service) enqueue(ctx context.Context, id string) {
	if s.queue == nil {
		return
	}
	if err := s.queue.Enqueue(ctx, id); err != nil {
		s.logger.Warn("Failed to enqueue analysis", zap.String("item_id", id), zap.Error(err))
	}
}
