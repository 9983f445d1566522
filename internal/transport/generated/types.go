package generated

import (
	"time"
)

// Defines values for ErrorResponseCode.
const (
	ErrorResponseCodeAnalysisFailed        ErrorResponseCode = "analysis_failed"
	ErrorResponseCodeAnalyzerNotConfigured ErrorResponseCode = "analyzer_not_configured"
	ErrorResponseCodeBadRequest            ErrorResponseCode = "bad_request"
	ErrorResponseCodeImageTooLarge         ErrorResponseCode = "image_too_large"
	ErrorResponseCodeInternalError         ErrorResponseCode = "internal_error"
	ErrorResponseCodeInvalidQuery          ErrorResponseCode = "invalid_query"
	ErrorResponseCodeInvalidState          ErrorResponseCode = "invalid_state"
	ErrorResponseCodeItemNotFound          ErrorResponseCode = "item_not_found"
	ErrorResponseCodeNotImplemented        ErrorResponseCode = "not_implemented"
	ErrorResponseCodeOwnerRequired         ErrorResponseCode = "owner_required"
	ErrorResponseCodeUnauthorized          ErrorResponseCode = "unauthorized"
	ErrorResponseCodeUnsupportedImage      ErrorResponseCode = "unsupported_image"
	ErrorResponseCodeValidationFailed      ErrorResponseCode = "validation_failed"
)

// Defines values for HealthResponseChecks.
const (
	HealthResponseChecksDisabled HealthResponseChecks = "disabled"
	HealthResponseChecksError    HealthResponseChecks = "error"
	HealthResponseChecksOk       HealthResponseChecks = "ok"
)

// Defines values for HealthResponseStatus.
const (
	HealthResponseStatusDegraded HealthResponseStatus = "degraded"
	HealthResponseStatusError    HealthResponseStatus = "error"
	HealthResponseStatusOk       HealthResponseStatus = "ok"
)

// Defines values for ScreenshotStatus.
const (
	ScreenshotStatusCompleted  ScreenshotStatus = "completed"
	ScreenshotStatusFailed     ScreenshotStatus = "failed"
	ScreenshotStatusPending    ScreenshotStatus = "pending"
	ScreenshotStatusProcessing ScreenshotStatus = "processing"
)

// ErrorResponse defines model for ErrorResponse.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// ErrorResponseCode defines model for ErrorResponse.Code.
type ErrorResponseCode string

// ExplainResponse defines model for ExplainResponse.
type ExplainResponse struct {
	Accepted bool `json:"accepted"`

	// Excluded The item would be skipped before scoring (status or time filter).
	Excluded   bool            `json:"excluded"`
	Id         string          `json:"id"`
	Overall    float64         `json:"overall"`
	Query      string          `json:"query"`
	SignalSet  string          `json:"signal_set"`
	Signals    []SignalScore   `json:"signals"`
	Threshold  float64         `json:"threshold"`
	TimeFilter *TimeFilterInfo `json:"time_filter,omitempty"`
}

// Features defines model for Features.
type Features struct {
	ColorContext      *map[string]string `json:"color_context,omitempty"`
	DominantColors    *[]string          `json:"dominant_colors,omitempty"`
	ErrorStates       *[]string          `json:"error_states,omitempty"`
	ExtractedText     *string            `json:"extracted_text,omitempty"`
	UiElements        *[]string          `json:"ui_elements,omitempty"`
	VisualDescription *string            `json:"visual_description,omitempty"`
	VisualPatterns    *[]string          `json:"visual_patterns,omitempty"`
}

// HealthResponse defines model for HealthResponse.
type HealthResponse struct {
	Checks map[string]HealthResponseChecks `json:"checks"`
	Status HealthResponseStatus            `json:"status"`
}

// HealthResponseChecks defines model for HealthResponse.Checks.
type HealthResponseChecks string

// HealthResponseStatus defines model for HealthResponse.Status.
type HealthResponseStatus string

// ReprocessResponse defines model for ReprocessResponse.
type ReprocessResponse struct {
	Queued int `json:"queued"`
}

// Screenshot defines model for Screenshot.
type Screenshot struct {
	Features        *Features        `json:"features,omitempty"`
	FileCreatedAt   *time.Time       `json:"file_created_at,omitempty"`
	FileModifiedAt  *time.Time       `json:"file_modified_at,omitempty"`
	Filename        string           `json:"filename"`
	Height          *int             `json:"height,omitempty"`
	Id              string           `json:"id"`
	MimeType        string           `json:"mime_type"`
	ProcessedAt     *time.Time       `json:"processed_at,omitempty"`
	ProcessingError *string          `json:"processing_error,omitempty"`
	Size            int64            `json:"size"`
	Status          ScreenshotStatus `json:"status"`
	UploadedAt      time.Time        `json:"uploaded_at"`
	Width           *int             `json:"width,omitempty"`
}

// ScreenshotStatus defines model for Screenshot.Status.
type ScreenshotStatus string

// ScreenshotListResponse defines model for ScreenshotListResponse.
type ScreenshotListResponse struct {
	Count int          `json:"count"`
	Items []Screenshot `json:"items"`
}

// SearchResponse defines model for SearchResponse.
type SearchResponse struct {
	Count   int            `json:"count"`
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

// SearchResult defines model for SearchResult.
type SearchResult struct {
	Confidence  float64              `json:"confidence"`
	Filename    string               `json:"filename"`
	Id          string               `json:"id"`
	Matches     *map[string][]string `json:"matches,omitempty"`
	Signals     map[string]float64   `json:"signals"`
	TextExcerpt *string              `json:"text_excerpt,omitempty"`
	UploadedAt  time.Time            `json:"uploaded_at"`
}

// SignalScore defines model for SignalScore.
type SignalScore struct {
	Matches *[]string `json:"matches,omitempty"`
	Name    string    `json:"name"`
	Value   float64   `json:"value"`
	Weight  float64   `json:"weight"`
}

// StatusResponse defines model for StatusResponse.
type StatusResponse struct {
	Counts map[string]int `json:"counts"`
	Recent []Screenshot   `json:"recent"`
	Total  int            `json:"total"`
}

// TimeFilterInfo defines model for TimeFilterInfo.
type TimeFilterInfo struct {
	Field string    `json:"field"`
	From  time.Time `json:"from"`
	To    time.Time `json:"to"`
}

// ScreenshotId defines model for ScreenshotId.
type ScreenshotId = string

// SearchParams defines parameters for Search.
type SearchParams struct {
	Q     string `form:"q" json:"q"`
	Limit *int   `form:"limit,omitempty" json:"limit,omitempty"`
}

// ExplainScreenshotParams defines parameters for ExplainScreenshot.
type ExplainScreenshotParams struct {
	Q string `form:"q" json:"q"`
}

// ReprocessScreenshotsParams defines parameters for ReprocessScreenshots.
type ReprocessScreenshotsParams struct {
	Status *string `form:"status,omitempty" json:"status,omitempty"`
}

// PutScreenshotFeaturesJSONRequestBody defines body for PutScreenshotFeatures for application/json ContentType.
type PutScreenshotFeaturesJSONRequestBody = Features
