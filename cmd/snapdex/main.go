package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/snapdex/internal/config"
	"github.com/kailas-cloud/snapdex/internal/db"
	dbBadger "github.com/kailas-cloud/snapdex/internal/db/badger"
	dbRedis "github.com/kailas-cloud/snapdex/internal/db/redis"
	"github.com/kailas-cloud/snapdex/internal/domain/search/entity"
	"github.com/kailas-cloud/snapdex/internal/domain/search/lexicon"
	searchsignal "github.com/kailas-cloud/snapdex/internal/domain/search/signal"
	logpkg "github.com/kailas-cloud/snapdex/internal/logger"
	"github.com/kailas-cloud/snapdex/internal/metrics"
	"github.com/kailas-cloud/snapdex/internal/repository/analysiscache"
	itemrepo "github.com/kailas-cloud/snapdex/internal/repository/item"
	scorerepo "github.com/kailas-cloud/snapdex/internal/repository/score"
	chiTransport "github.com/kailas-cloud/snapdex/internal/transport/chi"
	gen "github.com/kailas-cloud/snapdex/internal/transport/generated"
	openaiVision "github.com/kailas-cloud/snapdex/internal/transport/openai"
	healthuc "github.com/kailas-cloud/snapdex/internal/usecase/health"
	"github.com/kailas-cloud/snapdex/internal/usecase/ingest"
	itemuc "github.com/kailas-cloud/snapdex/internal/usecase/item"
	searchuc "github.com/kailas-cloud/snapdex/internal/usecase/search"
	"github.com/kailas-cloud/snapdex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, logpkg.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting snapdex API server",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("signal_set", cfg.Scoring.SignalSet),
		zap.Bool("ingest", cfg.Ingest.Enabled),
	)

	store, err := openStore(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterSearchMetrics()
	metrics.RegisterAnalysisMetrics()

	set, err := buildSignalSet(&cfg)
	if err != nil {
		logger.Fatal("Invalid scoring configuration", zap.Error(err))
	}

	// Create repositories
	items := itemrepo.New(store, cfg.Database.KeyPrefix)
	scores := scorerepo.New(store, cfg.Database.KeyPrefix)

	// Create use case services
	itemSvc := itemuc.New(items, scores).
		WithMaxImageBytes(cfg.HTTP.MaxUploadBytes).
		WithLogger(logger)
	searchSvc := searchuc.New(items, scores, set).WithLogger(logger)

	// Vision analysis is optional: without it items arrive through PUT features.
	// Pass a nil interface (not a typed nil pointer) when it is off.
	var vision healthuc.VisionChecker
	var worker *ingest.Worker
	if cfg.Ingest.Enabled {
		base := openaiVision.NewAnalyzer(&openaiVision.Config{
			APIKey:    cfg.Vision.APIKey,
			BaseURL:   cfg.Vision.BaseURL,
			Model:     cfg.Vision.Model,
			MaxTokens: cfg.Vision.MaxTokens,
			Provider:  cfg.Vision.Provider,
			Logger:    logger,
		})
		vision = base

		worker, err = ingest.New(itemSvc, buildAnalyzer(base, cfg, store, logger), ingest.Config{
			Workers:     cfg.Ingest.Workers,
			QueueSize:   cfg.Ingest.QueueSize,
			MaxAttempts: cfg.Ingest.MaxAttempts,
			Timeout:     time.Duration(cfg.Ingest.TimeoutSec) * time.Second,
			RetryDelay:  time.Duration(cfg.Ingest.RetryDelaySec) * time.Second,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to create ingest worker", zap.Error(err))
		}
		itemSvc.WithQueue(worker)
		logger.Info("Vision analysis enabled",
			zap.String("provider", cfg.Vision.Provider),
			zap.String("model", cfg.Vision.Model),
			zap.Int("workers", cfg.Ingest.Workers),
		)
	}

	healthSvc := healthuc.New(store, vision)

	// Create chi server
	server := chiTransport.NewServer(itemSvc, searchSvc, healthSvc, logger).
		WithMaxUploadBytes(cfg.HTTP.MaxUploadBytes).
		WithDefaultLimit(cfg.Scoring.DefaultLimit)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.Tokens))
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	gen.HandlerWithOptions(server, gen.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: chiTransport.ParamErrorHandler,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}
	// Unfinished jobs leave their items in processing; a reprocess picks them up.
	if worker != nil {
		if err := worker.Close(shutdownCtx); err != nil {
			logger.Warn("Ingest worker did not drain", zap.Error(err))
		}
	}

	logger.Info("Server stopped gracefully")
}

func openStore(cfg config.DatabaseConfig, logger *zap.Logger) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverValkey, config.DriverRedis:
		return dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.SelectDB,
		})
	case config.DriverBadger:
		return dbBadger.Open(dbBadger.Config{
			Path:     cfg.BadgerPath,
			InMemory: cfg.BadgerPath == "",
			Logger:   logger,
		})
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func buildSignalSet(cfg *config.Config) (*searchsignal.Set, error) {
	entities, err := entity.Compile(append(entity.DefaultRules(), cfg.Scoring.Entities...))
	if err != nil {
		return nil, fmt.Errorf("entities: %w", err)
	}
	calcs := searchsignal.NewCalculators(lexicon.Default().Extend(cfg.Scoring.Vocabulary), entities, nil)
	return searchsignal.Build(cfg.Scoring.SignalSet, calcs, cfg.SignalWeights(), cfg.Scoring.Threshold)
}

// buildAnalyzer assembles the decorator chain: OpenAI -> Cached -> Instrumented
func buildAnalyzer(
	base *openaiVision.Analyzer,
	cfg config.Config,
	store db.Store,
	logger *zap.Logger,
) ingest.Analyzer {
	cached := analysiscache.New(
		base, store,
		cfg.Database.KeyPrefix+"analysis:"+cfg.Vision.Model+":",
		metrics.AnalysisCacheTotal, logger,
	)
	return ingest.NewInstrumentedAnalyzer(cached, cfg.Vision.Provider, cfg.Vision.Model, logger)
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(gen.ErrorResponse{
						Code:    gen.ErrorResponseCodeInternalError,
						Message: "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
// It runs after auth so the line carries the resolved owner.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(
				zap.String("request_id", requestID),
				zap.String("owner", chiTransport.OwnerFromContext(r.Context())),
			)
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("route", routePattern(r)),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			}
			if n, err := strconv.Atoi(ww.Header().Get(chiTransport.ResultCountHeader)); err == nil {
				fields = append(fields, zap.Int("result_count", n))
			}
			reqLogger.Info("http_request", fields...)
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}
