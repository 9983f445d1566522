package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kailas-cloud/snapdex/internal/domain/search/entity"
	"github.com/kailas-cloud/snapdex/internal/domain/search/signal"
)

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_Database(t *testing.T) {
	tests := []struct {
		name    string
		driver  string
		addrs   []string
		wantErr bool
	}{
		{"valkey with addrs", DriverValkey, []string{"localhost:6379"}, false},
		{"redis without addrs", DriverRedis, nil, true},
		{"badger without addrs", DriverBadger, nil, false},
		{"unknown driver", "sqlite", []string{"x"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Database.Driver = tt.driver
			cfg.Database.Addrs = tt.addrs

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Scoring(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errSub string
	}{
		{"unknown set", func(c *Config) { c.Scoring.SignalSet = "nine" }, "signal_set"},
		{"unknown weight", func(c *Config) { c.Scoring.Weights = map[string]float64{"sound": 0.1} }, "unknown signal"},
		{"negative weight", func(c *Config) { c.Scoring.Weights = map[string]float64{"text": -1} }, "negative"},
		{"threshold too high", func(c *Config) { c.Scoring.Threshold = 1 }, "threshold"},
		{"entity without term", func(c *Config) {
			c.Scoring.Entities = []entity.Rule{{Variants: []string{"x"}}}
		}, "entities[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.errSub) {
				t.Fatalf("Validate() error = %v, want substring %q", err, tt.errSub)
			}
		})
	}
}

func TestValidate_IngestNeedsAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.Ingest.Enabled = true

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing vision.api_key")
	}

	cfg.Vision.APIKey = "sk-test"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_AuthTokens(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.Tokens = map[string]string{"tok": ""}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for token without owner")
	}
}

func TestValidate_LoggingFormat(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Format = "console"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("console format: %v", err)
	}

	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log format")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.MaxUploadBytes != 10<<20 {
		t.Errorf("expected MaxUploadBytes=10MB, got %d", cfg.HTTP.MaxUploadBytes)
	}
	if cfg.Database.Driver != DriverValkey {
		t.Errorf("expected Driver=valkey, got %q", cfg.Database.Driver)
	}
	if cfg.Database.KeyPrefix != "snapdex:" {
		t.Errorf("expected KeyPrefix='snapdex:', got %q", cfg.Database.KeyPrefix)
	}
	if cfg.Scoring.SignalSet != signal.SetSeven {
		t.Errorf("expected SignalSet=seven, got %q", cfg.Scoring.SignalSet)
	}
	if cfg.Scoring.Threshold != signal.DefaultThreshold {
		t.Errorf("expected Threshold=%v, got %v", signal.DefaultThreshold, cfg.Scoring.Threshold)
	}
	if cfg.Scoring.DefaultLimit != 5 {
		t.Errorf("expected DefaultLimit=5, got %d", cfg.Scoring.DefaultLimit)
	}
	if cfg.Ingest.Workers != 4 || cfg.Ingest.QueueSize != 100 || cfg.Ingest.MaxAttempts != 3 {
		t.Errorf("unexpected ingest defaults: %+v", cfg.Ingest)
	}
	if cfg.Ingest.RetryDelaySec != 2 {
		t.Errorf("expected RetryDelaySec=2, got %d", cfg.Ingest.RetryDelaySec)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 5, MaxUploadBytes: 1024},
		Database: DatabaseConfig{Driver: DriverBadger, KeyPrefix: "custom:"},
		Scoring:  ScoringConfig{SignalSet: signal.SetFour, Threshold: 0.3},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 5 {
		t.Errorf("expected ReadTimeoutSec=5, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.MaxUploadBytes != 1024 {
		t.Errorf("expected MaxUploadBytes=1024, got %d", cfg.HTTP.MaxUploadBytes)
	}
	if cfg.Database.Driver != DriverBadger || cfg.Database.KeyPrefix != "custom:" {
		t.Errorf("database overridden: %+v", cfg.Database)
	}
	if cfg.Scoring.SignalSet != signal.SetFour || cfg.Scoring.Threshold != 0.3 {
		t.Errorf("scoring overridden: %+v", cfg.Scoring)
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("SNAPDEX_TEST_PORT", "9090")
	t.Setenv("SNAPDEX_TEST_TOKEN", "secret")

	cfg, err := Parse([]byte(`
http:
  port: ${SNAPDEX_TEST_PORT}
database:
  driver: ${SNAPDEX_TEST_DRIVER:-badger}
auth:
  tokens:
    ${SNAPDEX_TEST_TOKEN}: alice
scoring:
  signal_set: four
  weights:
    text: 0.5
  entities:
    - term: order id
      variants: [oid]
  vocabulary:
    ui_keywords: [carousel]
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("Port = %d", cfg.HTTP.Port)
	}
	if cfg.Database.Driver != DriverBadger {
		t.Errorf("Driver = %q", cfg.Database.Driver)
	}
	if cfg.Auth.Tokens["secret"] != "alice" {
		t.Errorf("Tokens = %v", cfg.Auth.Tokens)
	}
	if w := cfg.SignalWeights(); w[signal.Text] != 0.5 {
		t.Errorf("SignalWeights() = %v", w)
	}
	if len(cfg.Scoring.Entities) != 1 || cfg.Scoring.Entities[0].Variants[0] != "oid" {
		t.Errorf("Entities = %+v", cfg.Scoring.Entities)
	}
	if len(cfg.Scoring.Vocabulary.UIKeywords) != 1 {
		t.Errorf("Vocabulary.UIKeywords = %v", cfg.Scoring.Vocabulary.UIKeywords)
	}
}

func TestLoad_ConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapdex.yaml")
	if err := os.WriteFile(path, []byte("http:\n  port: 8081\ndatabase:\n  driver: badger\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load("ignored")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 8081 {
		t.Errorf("Port = %d", cfg.HTTP.Port)
	}
}

func TestSignalWeights_Empty(t *testing.T) {
	cfg := validConfig()
	if cfg.SignalWeights() != nil {
		t.Error("no overrides should give nil")
	}
}
