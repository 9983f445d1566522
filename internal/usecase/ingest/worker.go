package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/snapdex/internal/metrics"
)

// Worker defaults.
const (
	DefaultWorkers     = 4
	DefaultQueueSize   = 100
	DefaultMaxAttempts = 3
	DefaultTimeout     = 60 * time.Second
)

// ErrWorkerClosed is returned by Enqueue after Close.
var ErrWorkerClosed = errors.New("ingest worker closed")

// Config tunes the worker pool.
type Config struct {
	Workers     int
	QueueSize   int
	MaxAttempts int
	// Timeout bounds a single analysis attempt.
	Timeout time.Duration
	// RetryDelay is multiplied by the attempt number between retries.
	RetryDelay time.Duration
}

func (c *Config) applyDefaults() {
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.QueueSize <= 0 {
		c.QueueSize = DefaultQueueSize
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RetryDelay < 0 {
		c.RetryDelay = 0
	}
}

// Worker runs image analysis on a bounded goroutine pool.
// Enqueue blocks while every worker is busy; once QueueSize callers are
// waiting it fails fast with ants.ErrPoolOverload.
type Worker struct {
	items    Lifecycle
	analyzer Analyzer
	pool     *ants.Pool
	cfg      Config
	logger   *zap.Logger

	base   context.Context
	cancel context.CancelFunc
	// mu orders wg.Add in Enqueue before wg.Wait in Close.
	mu     sync.RWMutex
	wg     sync.WaitGroup
	closed atomic.Bool
}

// New creates a worker and its pool.
func New(items Lifecycle, analyzer Analyzer, cfg Config, logger *zap.Logger) (*Worker, error) {
	cfg.applyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	pool, err := ants.NewPool(cfg.Workers,
		ants.WithMaxBlockingTasks(cfg.QueueSize),
		ants.WithPanicHandler(func(p any) {
			logger.Error("Ingest job panicked", zap.Any("panic", p))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create ingest pool: %w", err)
	}
	base, cancel := context.WithCancel(context.Background())
	return &Worker{
		items:    items,
		analyzer: analyzer,
		pool:     pool,
		cfg:      cfg,
		logger:   logger,
		base:     base,
		cancel:   cancel,
	}, nil
}

// Enqueue schedules analysis of one item. The job outlives ctx; only the
// submission honors it.
func (w *Worker) Enqueue(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("enqueue %s: %w", id, err)
	}
	w.mu.RLock()
	if w.closed.Load() {
		w.mu.RUnlock()
		return ErrWorkerClosed
	}
	w.wg.Add(1)
	w.mu.RUnlock()

	err := w.pool.Submit(func() {
		defer w.wg.Done()
		w.process(id)
	})
	if err != nil {
		w.wg.Done()
		metrics.IngestJobsTotal.WithLabelValues("rejected").Inc()
		return fmt.Errorf("enqueue %s: %w", id, err)
	}
	return nil
}

// Running returns the number of busy workers.
func (w *Worker) Running() int { return w.pool.Running() }

// Close stops accepting jobs and waits for in-flight ones until ctx expires.
// Jobs still running after that are cancelled.
func (w *Worker) Close(ctx context.Context) error {
	w.mu.Lock()
	swapped := w.closed.CompareAndSwap(false, true)
	w.mu.Unlock()
	if !swapped {
		return nil
	}
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
	case <-ctx.Done():
		err = fmt.Errorf("wait for ingest jobs: %w", ctx.Err())
	}
	w.cancel()
	w.pool.Release()
	return err
}

func (w *Worker) process(id string) {
	metrics.IngestRunning.Inc()
	defer metrics.IngestRunning.Dec()

	start := time.Now()
	log := w.logger.With(zap.String("item_id", id))

	it, err := w.items.MarkProcessing(w.base, id)
	if err != nil {
		log.Warn("Skipping ingest job", zap.Error(err))
		metrics.IngestJobsTotal.WithLabelValues("rejected").Inc()
		return
	}
	image, err := w.items.Image(w.base, id)
	if err != nil {
		w.fail(log, id, fmt.Errorf("load image: %w", err))
		return
	}

	var lastErr error
	for attempt := 1; attempt <= w.cfg.MaxAttempts; attempt++ {
		if attempt > 1 && !w.sleep(time.Duration(attempt-1)*w.cfg.RetryDelay) {
			lastErr = w.base.Err()
			break
		}
		metrics.IngestAttemptsTotal.Inc()

		ctx, cancel := context.WithTimeout(w.base, w.cfg.Timeout)
		features, err := w.analyzer.Analyze(ctx, image, it.File().MIMEType)
		cancel()
		if err == nil {
			if _, err := w.items.Complete(w.base, id, features); err != nil {
				log.Error("Failed to store features", zap.Error(err))
				metrics.IngestJobsTotal.WithLabelValues("failed").Inc()
				return
			}
			log.Info("Screenshot analyzed",
				zap.Int("attempts", attempt),
				zap.Duration("duration", time.Since(start)),
			)
			metrics.IngestJobsTotal.WithLabelValues("completed").Inc()
			return
		}
		lastErr = err
		log.Warn("Analysis attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", w.cfg.MaxAttempts),
			zap.Error(err),
		)
	}
	w.fail(log, id, lastErr)
}

func (w *Worker) fail(log *zap.Logger, id string, cause error) {
	metrics.IngestJobsTotal.WithLabelValues("failed").Inc()
	if _, err := w.items.Fail(context.WithoutCancel(w.base), id, cause.Error()); err != nil {
		log.Error("Failed to record analysis failure", zap.NamedError("cause", cause), zap.Error(err))
		return
	}
	log.Error("Screenshot analysis failed", zap.Error(cause))
}

// sleep waits d or until the worker shuts down. It reports false on shutdown.
func (w *Worker) sleep(d time.Duration) bool {
	if d <= 0 {
		return w.base.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-w.base.Done():
		return false
	}
}
