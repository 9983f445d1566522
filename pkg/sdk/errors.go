package snapdex

import "github.com/kailas-cloud/snapdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound              = domain.ErrItemNotFound
	ErrInvalidQuery          = domain.ErrInvalidQuery
	ErrOwnerRequired         = domain.ErrOwnerRequired
	ErrInvalidSchema         = domain.ErrInvalidSchema
	ErrInvalidState          = domain.ErrInvalidState
	ErrImageTooLarge         = domain.ErrImageTooLarge
	ErrUnsupportedImage      = domain.ErrUnsupportedImage
	ErrAnalysisFailed        = domain.ErrAnalysisFailed
	ErrAnalyzerNotConfigured = domain.ErrAnalyzerNotConfigured
)
