package snapdex

import (
	"time"

	"github.com/kailas-cloud/snapdex/internal/domain/search/lexicon"
)

// Status is the analysis lifecycle state of a screenshot.
type Status string

// Lifecycle states.
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// File describes the original image file.
type File struct {
	Name       string
	MIMEType   string
	Size       int64
	Width      int
	Height     int
	CreatedAt  *time.Time
	ModifiedAt *time.Time
}

// Features are the values extracted from a screenshot. Empty strings mean
// the extractor produced nothing. DominantColors are #rrggbb codes.
type Features struct {
	ExtractedText     string
	VisualDescription string
	UIElements        []string
	DominantColors    []string
	ErrorStates       []string
	VisualPatterns    []string
	ColorContext      map[string]string
}

// Screenshot is a stored screenshot with its analysis state.
type Screenshot struct {
	ID              string
	Owner           string
	Status          Status
	File            File
	Features        Features
	ProcessingError string
	UploadedAt      time.Time
	ProcessedAt     *time.Time
}

// ImportRequest adds a screenshot whose features were extracted elsewhere.
// An empty ID generates one; a zero UploadedAt means now.
type ImportRequest struct {
	ID         string
	Owner      string
	File       File
	Features   Features
	UploadedAt time.Time
}

// SearchResult is a single ranked hit. Confidences are rounded to three decimals.
type SearchResult struct {
	ID          string
	Filename    string
	Confidence  float64
	Signals     map[string]float64
	Matches     map[string][]string
	TextExcerpt string
	UploadedAt  time.Time
}

// SignalScore is one signal's contribution in an Explanation.
type SignalScore struct {
	Name    string
	Value   float64
	Weight  float64
	Matches []string
}

// TimeFilter is the time range parsed from a query.
type TimeFilter struct {
	Field string // "uploaded_at", "file_created_at" or "file_modified_at"
	From  time.Time
	To    time.Time
}

// Explanation is the per-signal breakdown of one screenshot against a query.
type Explanation struct {
	ID        string
	Query     string
	SignalSet string
	Threshold float64
	Overall   float64
	Accepted  bool
	// Excluded is true when the screenshot is skipped before scoring.
	Excluded   bool
	Signals    []SignalScore
	TimeFilter *TimeFilter
}

// StatusSummary counts an owner's screenshots per status.
type StatusSummary struct {
	Total  int
	Counts map[Status]int
	Recent []Screenshot
}

// Entity is an identifier written in several forms, such as "case id".
type Entity struct {
	Term     string
	Variants []string
}

// Vocabulary holds the word lists and color tables used for ranking.
// Values passed to WithVocabulary are merged into the stock vocabulary.
type Vocabulary = lexicon.Vocabulary

// VisionConfig configures an OpenAI-compatible vision provider.
type VisionConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
}

// IngestConfig tunes the background analysis pool. Zero values use defaults.
type IngestConfig struct {
	Workers     int
	QueueSize   int
	MaxAttempts int
	Timeout     time.Duration
	RetryDelay  time.Duration
}
