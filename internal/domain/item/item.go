package item

import (
	"fmt"
	"regexp"
	"time"

	"github.com/kailas-cloud/snapdex/internal/domain"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Validation limits.
const (
	MaxIDLength       = 128
	MaxOwnerLength    = 256
	MaxFilenameLength = 255
)

// File describes the uploaded image file.
type File struct {
	Name       string
	MIMEType   string
	Size       int64
	Width      int
	Height     int
	CreatedAt  *time.Time
	ModifiedAt *time.Time
}

// Item is a screenshot record with its extracted features (immutable value object).
// Lifecycle changes return a new Item.
type Item struct {
	id              string
	owner           string
	status          Status
	file            File
	features        Features
	processingError string
	uploadedAt      time.Time
	processedAt     *time.Time
}

// New validates and creates a pending Item.
func New(id, owner string, file File, uploadedAt time.Time) (Item, error) {
	if id == "" {
		return Item{}, fmt.Errorf("item ID is required")
	}
	if len(id) > MaxIDLength {
		return Item{}, fmt.Errorf("item ID too long (max %d)", MaxIDLength)
	}
	if !idRegex.MatchString(id) {
		return Item{}, fmt.Errorf("item ID must be alphanumeric with underscores and hyphens")
	}
	if owner == "" {
		return Item{}, fmt.Errorf("owner is required")
	}
	if len(owner) > MaxOwnerLength {
		return Item{}, fmt.Errorf("owner too long (max %d)", MaxOwnerLength)
	}
	if file.Name == "" {
		return Item{}, fmt.Errorf("filename is required")
	}
	if len(file.Name) > MaxFilenameLength {
		return Item{}, fmt.Errorf("filename too long (max %d)", MaxFilenameLength)
	}
	if file.Size < 0 || file.Width < 0 || file.Height < 0 {
		return Item{}, fmt.Errorf("file size and dimensions must be non-negative")
	}

	return Item{
		id:         id,
		owner:      owner,
		status:     StatusPending,
		file:       file,
		features:   Features{}.Normalize(),
		uploadedAt: uploadedAt,
	}, nil
}

// Reconstruct creates an Item without validation (storage hydration).
func Reconstruct(
	id, owner string, status Status, file File, features Features,
	processingError string, uploadedAt time.Time, processedAt *time.Time,
) Item {
	return Item{
		id:              id,
		owner:           owner,
		status:          status,
		file:            file,
		features:        features.Normalize(),
		processingError: processingError,
		uploadedAt:      uploadedAt,
		processedAt:     processedAt,
	}
}

// ID returns the item identifier.
func (i Item) ID() string { return i.id }

// Owner returns the owning user identifier.
func (i Item) Owner() string { return i.owner }

// Status returns the lifecycle status.
func (i Item) Status() Status { return i.status }

// File returns the uploaded file metadata.
func (i Item) File() File { return i.file }

// Features returns the extracted feature fields.
func (i Item) Features() Features { return i.features }

// ProcessingError returns the last ingestion failure message.
func (i Item) ProcessingError() string { return i.processingError }

// UploadedAt returns the upload time. Zero means unknown.
func (i Item) UploadedAt() time.Time { return i.uploadedAt }

// ProcessedAt returns the time analysis finished, if it has.
func (i Item) ProcessedAt() *time.Time { return i.processedAt }

// IsSearchable reports whether the item may take part in ranking.
func (i Item) IsSearchable() bool { return i.status == StatusCompleted }

// StartProcessing moves an item into processing. Items already processing
// may be restarted by a retrying worker.
func (i Item) StartProcessing() (Item, error) {
	if i.status != StatusPending && i.status != StatusFailed && i.status != StatusProcessing {
		return Item{}, transitionErr(i.status, StatusProcessing)
	}
	i.status = StatusProcessing
	i.processingError = ""
	return i, nil
}

// Complete stores the extracted features and marks the item searchable.
// Completed items may be completed again to re-import features.
func (i Item) Complete(f Features, now time.Time) (Item, error) {
	if i.status == StatusFailed {
		return Item{}, transitionErr(i.status, StatusCompleted)
	}
	i.status = StatusCompleted
	i.features = f.Normalize()
	i.processingError = ""
	t := now
	i.processedAt = &t
	return i, nil
}

// Fail records an ingestion failure.
func (i Item) Fail(msg string, now time.Time) (Item, error) {
	if i.status != StatusPending && i.status != StatusProcessing {
		return Item{}, transitionErr(i.status, StatusFailed)
	}
	i.status = StatusFailed
	i.processingError = msg
	t := now
	i.processedAt = &t
	return i, nil
}

// Reset returns the item to pending for another analysis run.
// Features are kept until the next run overwrites them.
func (i Item) Reset() Item {
	i.status = StatusPending
	i.processingError = ""
	i.processedAt = nil
	return i
}

func transitionErr(from, to Status) error {
	return domain.NewTransitionError(string(from), string(to))
}
