package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/kailas-cloud/snapdex/internal/config"
	snapdex "github.com/kailas-cloud/snapdex/pkg/sdk"
)

const (
	outputText = "text"
	outputYAML = "yaml"
)

// globals carries the persistent flags shared by every subcommand.
type globals struct {
	configPath string
	owner      string
	output     string
}

func (g *globals) loadConfig() (config.Config, error) {
	if g.configPath != "" {
		return config.LoadFile(g.configPath)
	}
	return config.Load(config.GetEnv())
}

// open connects to the configured store. The CLI acts as an operator, so
// searches without --owner cover every owner.
func (g *globals) open(ctx context.Context) (*snapdex.Client, error) {
	if g.output != outputText && g.output != outputYAML {
		return nil, fmt.Errorf("unknown output format %q", g.output)
	}

	cfg, err := g.loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	client, err := snapdex.New(ctx, clientOptions(&cfg)...)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return client, nil
}

func clientOptions(cfg *config.Config) []snapdex.Option {
	opts := []snapdex.Option{
		snapdex.WithKeyPrefix(cfg.Database.KeyPrefix),
		snapdex.WithSignalSet(cfg.Scoring.SignalSet),
		snapdex.WithWeights(cfg.Scoring.Weights),
		snapdex.WithThreshold(cfg.Scoring.Threshold),
		snapdex.WithVocabulary(cfg.Scoring.Vocabulary),
		snapdex.WithOwnerOptional(),
		snapdex.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}

	switch cfg.Database.Driver {
	case config.DriverValkey, config.DriverRedis:
		addr := ""
		if len(cfg.Database.Addrs) > 0 {
			addr = cfg.Database.Addrs[0]
		}
		if cfg.Database.Driver == config.DriverRedis {
			opts = append(opts, snapdex.WithRedis(addr, cfg.Database.Password))
		} else {
			opts = append(opts, snapdex.WithValkey(addr, cfg.Database.Password))
		}
		opts = append(opts, snapdex.WithDB(cfg.Database.SelectDB))
	default:
		opts = append(opts, snapdex.WithBadger(cfg.Database.BadgerPath))
	}

	if len(cfg.Scoring.Entities) > 0 {
		rules := make([]snapdex.Entity, len(cfg.Scoring.Entities))
		for i, r := range cfg.Scoring.Entities {
			rules[i] = snapdex.Entity{Term: r.Term, Variants: r.Variants}
		}
		opts = append(opts, snapdex.WithEntities(rules...))
	}

	if cfg.Ingest.Enabled {
		opts = append(opts,
			snapdex.WithOpenAIVision(snapdex.VisionConfig{
				APIKey:    cfg.Vision.APIKey,
				BaseURL:   cfg.Vision.BaseURL,
				Model:     cfg.Vision.Model,
				MaxTokens: cfg.Vision.MaxTokens,
			}),
			snapdex.WithIngest(snapdex.IngestConfig{
				Workers:     cfg.Ingest.Workers,
				QueueSize:   cfg.Ingest.QueueSize,
				MaxAttempts: cfg.Ingest.MaxAttempts,
				Timeout:     time.Duration(cfg.Ingest.TimeoutSec) * time.Second,
				RetryDelay:  time.Duration(cfg.Ingest.RetryDelaySec) * time.Second,
			}),
		)
	}

	return opts
}
