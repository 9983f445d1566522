package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/snapdex/internal/domain/search/entity"
	"github.com/kailas-cloud/snapdex/internal/domain/search/lexicon"
	"github.com/kailas-cloud/snapdex/internal/domain/search/signal"
)

// Database drivers.
const (
	DriverValkey = "valkey"
	DriverRedis  = "redis"
	DriverBadger = "badger"
)

// Config holds the snapdex API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Vision   VisionConfig   `yaml:"vision"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error (default: determined by env)
	Format string `yaml:"format"` // json, console (default: determined by env)
}

// AuthConfig maps bearer tokens to owner ids. Empty disables auth.
type AuthConfig struct {
	Tokens map[string]string `yaml:"tokens"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int   `yaml:"port"`
	ReadTimeoutSec  int   `yaml:"read_timeout_sec"`
	WriteTimeoutSec int   `yaml:"write_timeout_sec"`
	ShutdownSec     int   `yaml:"shutdown_timeout_sec"`
	MaxUploadBytes  int64 `yaml:"max_upload_bytes"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // valkey, redis, badger (default: valkey)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	SelectDB         int      `yaml:"select_db"`
	BadgerPath       string   `yaml:"badger_path"`
	KeyPrefix        string   `yaml:"key_prefix"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// ScoringConfig holds ranking settings.
type ScoringConfig struct {
	SignalSet    string             `yaml:"signal_set"` // seven, four
	Weights      map[string]float64 `yaml:"weights"`
	Threshold    float64            `yaml:"threshold"`
	DefaultLimit int                `yaml:"default_limit"`
	Entities     []entity.Rule      `yaml:"entities"`
	// Vocabulary is merged into the stock vocabulary.
	Vocabulary lexicon.Vocabulary `yaml:"vocabulary"`
}

// IngestConfig holds background analysis settings.
type IngestConfig struct {
	Enabled       bool `yaml:"enabled"`
	Workers       int  `yaml:"workers"`
	QueueSize     int  `yaml:"queue_size"`
	MaxAttempts   int  `yaml:"max_attempts"`
	TimeoutSec    int  `yaml:"timeout_sec"`
	RetryDelaySec int  `yaml:"retry_delay_sec"`
}

// VisionConfig holds the vision provider settings.
type VisionConfig struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"api_key"`
	MaxTokens int    `yaml:"max_tokens"`
}

// Load reads configuration from CONFIG_PATH, or from a YAML file by
// environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = findConfigPath(env)
	}
	return LoadFile(configPath)
}

// LoadFile reads configuration from an explicit path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML document, expanding ${VAR} and ${VAR:-default} first.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 30
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.MaxUploadBytes <= 0 {
		c.HTTP.MaxUploadBytes = 10 << 20
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverValkey
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Database.KeyPrefix == "" {
		c.Database.KeyPrefix = "snapdex:"
	}
	if c.Scoring.SignalSet == "" {
		c.Scoring.SignalSet = signal.SetSeven
	}
	if c.Scoring.Threshold <= 0 {
		c.Scoring.Threshold = signal.DefaultThreshold
	}
	if c.Scoring.DefaultLimit <= 0 {
		c.Scoring.DefaultLimit = 5
	}
	if c.Ingest.Workers <= 0 {
		c.Ingest.Workers = 4
	}
	if c.Ingest.QueueSize <= 0 {
		c.Ingest.QueueSize = 100
	}
	if c.Ingest.MaxAttempts <= 0 {
		c.Ingest.MaxAttempts = 3
	}
	if c.Ingest.TimeoutSec <= 0 {
		c.Ingest.TimeoutSec = 60
	}
	if c.Ingest.RetryDelaySec <= 0 {
		c.Ingest.RetryDelaySec = 2
	}
	if c.Vision.Provider == "" {
		c.Vision.Provider = "openai"
	}
	if c.Vision.Model == "" {
		c.Vision.Model = "gpt-4o"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case DriverValkey, DriverRedis:
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for driver %q", c.Database.Driver)
		}
	case DriverBadger:
		// empty badger_path runs in memory
	default:
		return fmt.Errorf("database.driver must be %q, %q or %q, got %q",
			DriverValkey, DriverRedis, DriverBadger, c.Database.Driver)
	}
	if _, err := signal.WeightsFor(c.Scoring.SignalSet); err != nil {
		return fmt.Errorf("scoring.signal_set: %w", err)
	}
	for name, w := range c.Scoring.Weights {
		if !signal.Name(name).IsValid() {
			return fmt.Errorf("scoring.weights: unknown signal %q", name)
		}
		if w < 0 {
			return fmt.Errorf("scoring.weights.%s must not be negative, got %v", name, w)
		}
	}
	if c.Scoring.Threshold >= 1 {
		return fmt.Errorf("scoring.threshold must be below 1, got %v", c.Scoring.Threshold)
	}
	for i, r := range c.Scoring.Entities {
		if strings.TrimSpace(r.Term) == "" {
			return fmt.Errorf("scoring.entities[%d].term is required", i)
		}
	}
	for token, owner := range c.Auth.Tokens {
		if token == "" || owner == "" {
			return fmt.Errorf("auth.tokens entries need a token and an owner")
		}
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	if c.Ingest.Enabled && c.Vision.APIKey == "" {
		return fmt.Errorf("vision.api_key is required when ingest is enabled")
	}
	return nil
}

// SignalWeights returns the weight overrides keyed by signal name.
func (c *Config) SignalWeights() map[signal.Name]float64 {
	if len(c.Scoring.Weights) == 0 {
		return nil
	}
	out := make(map[signal.Name]float64, len(c.Scoring.Weights))
	for name, w := range c.Scoring.Weights {
		out[signal.Name(name)] = w
	}
	return out
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
