package search

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/snapdex/internal/domain"
	"github.com/kailas-cloud/snapdex/internal/domain/item"
	"github.com/kailas-cloud/snapdex/internal/domain/score"
	"github.com/kailas-cloud/snapdex/internal/domain/search/request"
	"github.com/kailas-cloud/snapdex/internal/domain/search/result"
	"github.com/kailas-cloud/snapdex/internal/domain/search/signal"
	"github.com/kailas-cloud/snapdex/internal/domain/search/timefilter"
	"github.com/kailas-cloud/snapdex/internal/metrics"
)

// Service ranks an owner's screenshots against a free-text query.
type Service struct {
	items         ItemReader
	scores        ScoreStore
	set           *signal.Set
	now           func() time.Time
	parser        *timefilter.Parser
	ownerOptional bool
	logger        *zap.Logger
}

// New creates a search service scoring with the given signal set.
func New(items ItemReader, scores ScoreStore, set *signal.Set) *Service {
	return &Service{
		items:  items,
		scores: scores,
		set:    set,
		now:    time.Now,
		parser: timefilter.NewParser(time.Now),
		logger: zap.NewNop(),
	}
}

// WithClock replaces the clock used for time filters and score timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
		s.parser = timefilter.NewParser(now)
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

// WithOwnerOptional allows unscoped searches across all owners.
// Intended for administrative tooling only.
func (s *Service) WithOwnerOptional() *Service {
	s.ownerOptional = true
	return s
}

// SignalSet returns the signal set used for scoring.
func (s *Service) SignalSet() *signal.Set { return s.set }

// Search scores every completed candidate, persists a record for each item
// above the threshold and returns the best matches first.
func (s *Service) Search(ctx context.Context, req request.Request) ([]result.Result, error) {
	if !req.Scoped() && !s.ownerOptional {
		return nil, domain.ErrOwnerRequired
	}

	start := time.Now()
	defer func() { metrics.SearchDuration.Observe(time.Since(start).Seconds()) }()

	items, err := s.items.List(ctx, req.Owner())
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	query := req.Query()
	filter := s.parser.Parse(query)
	scoredAt := s.now()

	var (
		results    []result.Result
		candidates int
	)
	for _, it := range items {
		if !it.IsSearchable() {
			continue
		}
		if filter != nil && !filter.Match(it) {
			metrics.SearchResultsTotal.WithLabelValues("time_filtered").Inc()
			continue
		}
		candidates++

		b := s.set.Explain(query, it)
		if !b.Accepted {
			metrics.SearchResultsTotal.WithLabelValues("below_threshold").Inc()
			continue
		}
		metrics.SearchResultsTotal.WithLabelValues("accepted").Inc()

		rec := score.New(it.ID(), it.Owner(), query, b, scoredAt)
		if err := s.scores.Upsert(ctx, rec); err != nil {
			return nil, fmt.Errorf("save score %s: %w", it.ID(), err)
		}
		results = append(results, result.New(rec, it))
	}
	metrics.SearchCandidates.Observe(float64(candidates))

	sort.SliceStable(results, func(i, j int) bool {
		return score.Less(results[i].Record(), results[j].Record())
	})
	if len(results) > req.Limit() {
		results = results[:req.Limit()]
	}

	s.logger.Debug("Search completed",
		zap.String("owner", req.Owner()),
		zap.Bool("time_filter", filter != nil),
		zap.Int("items", len(items)),
		zap.Int("candidates", candidates),
		zap.Int("results", len(results)),
	)
	return results, nil
}

// Explanation is the per-signal breakdown of one item against one query.
type Explanation struct {
	Item      item.Item
	Breakdown signal.Breakdown
	// Filter is the time filter parsed from the query, nil if none.
	Filter *timefilter.Filter
	// Excluded is true when the item would be skipped before scoring,
	// either because it is not completed or because of the time filter.
	Excluded bool
}

// Explain scores a single item without persisting anything.
// owner must match the item's owner unless owner is optional and empty.
func (s *Service) Explain(ctx context.Context, query, owner, itemID string) (Explanation, error) {
	if owner == "" && !s.ownerOptional {
		return Explanation{}, domain.ErrOwnerRequired
	}
	if _, err := request.New(query, owner, 0); err != nil {
		return Explanation{}, fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
	}

	it, err := s.items.Get(ctx, itemID)
	if err != nil {
		return Explanation{}, fmt.Errorf("get item: %w", err)
	}
	if owner != "" && it.Owner() != owner {
		return Explanation{}, domain.ErrItemNotFound
	}

	filter := s.parser.Parse(query)
	return Explanation{
		Item:      it,
		Breakdown: s.set.Explain(query, it),
		Filter:    filter,
		Excluded:  !it.IsSearchable() || (filter != nil && !filter.Match(it)),
	}, nil
}
