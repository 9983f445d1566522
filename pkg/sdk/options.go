package snapdex

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Storage drivers.
const (
	driverValkey = "valkey"
	driverRedis  = "redis"
	driverBadger = "badger"
)

const defaultKeyPrefix = "snapdex:"

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver     string
	addrs      []string
	password   string
	selectDB   int
	badgerPath string
	keyPrefix  string

	signalSet     string
	weights       map[string]float64
	threshold     float64
	entities      []Entity
	vocabulary    Vocabulary
	ownerOptional bool

	analyzer     Analyzer
	vision       *VisionConfig
	ingestConfig IngestConfig

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithValkey configures the client to connect to a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverValkey
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverRedis
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithDB selects the logical Redis/Valkey database.
func WithDB(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.selectDB = n
	})
}

// WithBadger stores data in an embedded Badger database at path.
// An empty path keeps everything in memory.
func WithBadger(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverBadger
		c.badgerPath = path
	})
}

// WithKeyPrefix sets the storage key prefix. Default: "snapdex:".
// It must match the API server's database.key_prefix to share data.
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithSignalSet selects the ranking signals: "seven" (default) or "four".
func WithSignalSet(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.signalSet = name
	})
}

// WithWeights overrides individual signal weights, keyed by signal name.
// The resulting weights must still sum to 1.
func WithWeights(w map[string]float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.weights = w
	})
}

// WithThreshold sets the overall confidence a result must exceed. Default: 0.1.
func WithThreshold(t float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.threshold = t
	})
}

// WithEntities adds identifier rules on top of the stock "case id" rule.
func WithEntities(rules ...Entity) Option {
	return optionFunc(func(c *clientConfig) {
		c.entities = append(c.entities, rules...)
	})
}

// WithVocabulary extends the stock word lists and color tables.
func WithVocabulary(v Vocabulary) Option {
	return optionFunc(func(c *clientConfig) {
		c.vocabulary = v
	})
}

// WithOwnerOptional allows searches with an empty owner, which then span all owners.
func WithOwnerOptional() Option {
	return optionFunc(func(c *clientConfig) {
		c.ownerOptional = true
	})
}

// WithAnalyzer enables background analysis of reprocessed screenshots.
func WithAnalyzer(a Analyzer) Option {
	return optionFunc(func(c *clientConfig) {
		c.analyzer = a
	})
}

// WithOpenAIVision enables background analysis through an OpenAI-compatible
// vision model. It is ignored when WithAnalyzer is also given.
func WithOpenAIVision(cfg VisionConfig) Option {
	return optionFunc(func(c *clientConfig) {
		c.vision = &cfg
	})
}

// WithIngest tunes the background analysis pool.
func WithIngest(cfg IngestConfig) Option {
	return optionFunc(func(c *clientConfig) {
		c.ingestConfig = cfg
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
