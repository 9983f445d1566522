package snapdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/snapdex/internal/db"
	dbBadger "github.com/kailas-cloud/snapdex/internal/db/badger"
	dbRedis "github.com/kailas-cloud/snapdex/internal/db/redis"
	domitem "github.com/kailas-cloud/snapdex/internal/domain/item"
	"github.com/kailas-cloud/snapdex/internal/domain/search/entity"
	"github.com/kailas-cloud/snapdex/internal/domain/search/lexicon"
	"github.com/kailas-cloud/snapdex/internal/domain/search/request"
	"github.com/kailas-cloud/snapdex/internal/domain/search/result"
	"github.com/kailas-cloud/snapdex/internal/domain/search/signal"
	itemrepo "github.com/kailas-cloud/snapdex/internal/repository/item"
	scorerepo "github.com/kailas-cloud/snapdex/internal/repository/score"
	openaiVision "github.com/kailas-cloud/snapdex/internal/transport/openai"
	healthuc "github.com/kailas-cloud/snapdex/internal/usecase/health"
	"github.com/kailas-cloud/snapdex/internal/usecase/ingest"
	itemuc "github.com/kailas-cloud/snapdex/internal/usecase/item"
	searchuc "github.com/kailas-cloud/snapdex/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	// drainTimeout bounds how long Close waits for queued analysis.
	drainTimeout = 5 * time.Minute
)

// Internal interfaces, replaced by mocks in tests.
type itemUseCase interface {
	Create(ctx context.Context, owner string, file domitem.File, image []byte) (domitem.Item, error)
	Import(
		ctx context.Context, owner, id string, file domitem.File, f domitem.Features, uploadedAt time.Time,
	) (domitem.Item, error)
	Get(ctx context.Context, owner, id string) (domitem.Item, error)
	List(ctx context.Context, owner string) ([]domitem.Item, error)
	Delete(ctx context.Context, owner, id string) error
	Reprocess(ctx context.Context, owner, id string) (domitem.Item, error)
	ReprocessFailed(ctx context.Context, owner string) (int, error)
	Status(ctx context.Context, owner string) (itemuc.Status, error)
}

type searchUseCase interface {
	Search(ctx context.Context, req request.Request) ([]result.Result, error)
	Explain(ctx context.Context, query, owner, itemID string) (searchuc.Explanation, error)
}

// Client is the snapdex SDK entry point.
type Client struct {
	store     db.Store
	itemSvc   itemUseCase
	searchSvc searchUseCase
	healthSvc healthUseCase
	worker    *ingest.Worker
	setName   string
	threshold float64
	obs       *observer
}

// New creates a snapdex Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix: defaultKeyPrefix,
		signalSet: signal.SetSeven,
		threshold: signal.DefaultThreshold,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("snapdex: storage required (use WithValkey, WithRedis or WithBadger)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("snapdex: database not ready: %w", err)
	}

	c, err := wireClient(store, cfg, obs)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case driverValkey, driverRedis:
		if len(cfg.addrs) == 0 || cfg.addrs[0] == "" {
			return nil, fmt.Errorf("snapdex: %s address required", cfg.driver)
		}
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
			DB:       cfg.selectDB,
		})
		if err != nil {
			return nil, fmt.Errorf("snapdex: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	case driverBadger:
		s, err := dbBadger.Open(dbBadger.Config{
			Path:     cfg.badgerPath,
			InMemory: cfg.badgerPath == "",
		})
		if err != nil {
			return nil, fmt.Errorf("snapdex: open badger store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("snapdex: unknown driver %q", cfg.driver)
	}
}

func buildSignalSet(cfg *clientConfig) (*signal.Set, error) {
	entities, err := entity.Compile(append(entity.DefaultRules(), toInternalRules(cfg.entities)...))
	if err != nil {
		return nil, fmt.Errorf("snapdex: entities: %w", err)
	}
	calcs := signal.NewCalculators(lexicon.Default().Extend(cfg.vocabulary), entities, nil)
	set, err := signal.Build(cfg.signalSet, calcs, toInternalWeights(cfg.weights), cfg.threshold)
	if err != nil {
		return nil, fmt.Errorf("snapdex: signal set: %w", err)
	}
	return set, nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	set, err := buildSignalSet(cfg)
	if err != nil {
		return nil, err
	}

	items := itemrepo.New(store, cfg.keyPrefix)
	scores := scorerepo.New(store, cfg.keyPrefix)

	itemSvc := itemuc.New(items, scores)
	searchSvc := searchuc.New(items, scores, set)
	if cfg.ownerOptional {
		searchSvc = searchSvc.WithOwnerOptional()
	}

	// Pass a nil interface (not a typed nil pointer) when no vision provider is set.
	var vision healthuc.VisionChecker
	var analyzer ingest.Analyzer
	switch {
	case cfg.analyzer != nil:
		analyzer = &analyzerAdapter{inner: cfg.analyzer}
	case cfg.vision != nil:
		base := openaiVision.NewAnalyzer(&openaiVision.Config{
			APIKey:    cfg.vision.APIKey,
			BaseURL:   cfg.vision.BaseURL,
			Model:     cfg.vision.Model,
			MaxTokens: cfg.vision.MaxTokens,
			Provider:  "openai",
		})
		analyzer, vision = base, base
	}

	var worker *ingest.Worker
	if analyzer != nil {
		worker, err = ingest.New(itemSvc, analyzer, ingest.Config{
			Workers:     cfg.ingestConfig.Workers,
			QueueSize:   cfg.ingestConfig.QueueSize,
			MaxAttempts: cfg.ingestConfig.MaxAttempts,
			Timeout:     cfg.ingestConfig.Timeout,
			RetryDelay:  cfg.ingestConfig.RetryDelay,
		}, zap.NewNop())
		if err != nil {
			return nil, fmt.Errorf("snapdex: ingest worker: %w", err)
		}
		itemSvc.WithQueue(worker)
	}

	return &Client{
		store:     store,
		itemSvc:   itemSvc,
		searchSvc: searchSvc,
		healthSvc: healthuc.New(store, vision),
		worker:    worker,
		setName:   set.Name(),
		threshold: set.Threshold(),
		obs:       obs,
	}, nil
}

// Close waits for queued analysis to finish and releases all resources.
func (c *Client) Close() {
	if c.worker != nil {
		ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		defer cancel()
		_ = c.worker.Close(ctx)
	}
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Screenshots returns the screenshot management service.
func (c *Client) Screenshots() *ScreenshotService {
	return &ScreenshotService{svc: c.itemSvc, obs: c.obs}
}
