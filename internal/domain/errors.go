package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrItemNotFound signals a missing screenshot item.
	ErrItemNotFound = errors.New("item not found")
	// ErrScoreNotFound signals that an item was never scored for a query.
	ErrScoreNotFound = errors.New("score not found")
	// ErrInvalidQuery signals an empty or oversized search query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrOwnerRequired signals an unscoped call where an owner is mandatory.
	ErrOwnerRequired = errors.New("owner required")
	// ErrInvalidSchema signals malformed item fields or feature payloads.
	ErrInvalidSchema = errors.New("invalid schema")
	// ErrInvalidState signals a forbidden lifecycle transition.
	ErrInvalidState = errors.New("invalid state transition")

	// ErrImageTooLarge signals an upload above the configured size limit.
	ErrImageTooLarge = errors.New("image too large")
	// ErrUnsupportedImage signals an upload that is not an image.
	ErrUnsupportedImage = errors.New("unsupported image type")
	// ErrAnalysisFailed signals a vision provider failure.
	ErrAnalysisFailed = errors.New("image analysis failed")
	// ErrAnalyzerNotConfigured signals that no vision provider is wired.
	ErrAnalyzerNotConfigured = errors.New("analyzer not configured")
)

// TransitionError wraps ErrInvalidState with the offending statuses.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidState.Error(), e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidState }

// NewTransitionError creates a lifecycle transition error.
func NewTransitionError(from, to string) error {
	return &TransitionError{From: from, To: to}
}
