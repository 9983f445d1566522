package chi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder for dimensions
	_ "image/jpeg" // register decoder for dimensions
	_ "image/png"  // register decoder for dimensions
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/snapdex/internal/domain"
	domitem "github.com/kailas-cloud/snapdex/internal/domain/item"
	"github.com/kailas-cloud/snapdex/internal/domain/search/request"
	logpkg "github.com/kailas-cloud/snapdex/internal/logger"
	gen "github.com/kailas-cloud/snapdex/internal/transport/generated"
	healthuc "github.com/kailas-cloud/snapdex/internal/usecase/health"
	itemuc "github.com/kailas-cloud/snapdex/internal/usecase/item"
	searchuc "github.com/kailas-cloud/snapdex/internal/usecase/search"
)

// ResultCountHeader carries the number of search results for access logs.
const ResultCountHeader = "X-Result-Count"

// multipartMemory is the in-memory part of a parsed upload form; the rest spills to disk.
const multipartMemory = 8 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server implements generated.ServerInterface for the oapi-codegen chi router.
type Server struct {
	gen.Unimplemented
	items          *itemuc.Service
	search         *searchuc.Service
	health         *healthuc.Service
	logger         *zap.Logger
	maxUploadBytes int64
	defaultLimit   int
	errorHandlers  []errorHandler
}

var _ gen.ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(
	items *itemuc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		items:          items,
		search:         search,
		health:         health,
		logger:         logger,
		maxUploadBytes: itemuc.DefaultMaxImageBytes,
		defaultLimit:   request.DefaultLimit,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrItemNotFound, http.StatusNotFound, gen.ErrorResponseCodeItemNotFound),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, gen.ErrorResponseCodeInvalidQuery),
		sentinelHandler(domain.ErrOwnerRequired, http.StatusUnauthorized, gen.ErrorResponseCodeOwnerRequired),
		sentinelHandler(domain.ErrInvalidSchema, http.StatusBadRequest, gen.ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrInvalidState, http.StatusConflict, gen.ErrorResponseCodeInvalidState),
		sentinelHandler(domain.ErrImageTooLarge,
			http.StatusRequestEntityTooLarge, gen.ErrorResponseCodeImageTooLarge),
		sentinelHandler(domain.ErrUnsupportedImage,
			http.StatusUnsupportedMediaType, gen.ErrorResponseCodeUnsupportedImage),
		sentinelHandler(domain.ErrAnalysisFailed, http.StatusBadGateway, gen.ErrorResponseCodeAnalysisFailed),
		sentinelHandler(domain.ErrAnalyzerNotConfigured,
			http.StatusServiceUnavailable, gen.ErrorResponseCodeAnalyzerNotConfigured),
	}
	return s
}

// WithMaxUploadBytes configures the upload size limit.
func (s *Server) WithMaxUploadBytes(n int64) *Server {
	if n > 0 {
		s.maxUploadBytes = n
	}
	return s
}

// WithDefaultLimit configures the result count used when a search omits limit.
func (s *Server) WithDefaultLimit(n int) *Server {
	if n > 0 {
		s.defaultLimit = n
	}
	return s
}

// Search handles GET /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request, params gen.SearchParams) {
	limit := s.defaultLimit
	if params.Limit != nil {
		limit = *params.Limit
	}
	req, err := request.New(params.Q, OwnerFromContext(r.Context()), limit)
	if err != nil {
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeInvalidQuery, err.Error())
		return
	}

	results, err := s.search.Search(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]gen.SearchResult, len(results))
	for i := range results {
		items[i] = searchResultToGen(&results[i])
	}
	w.Header().Set(ResultCountHeader, strconv.Itoa(len(items)))
	writeJSON(w, http.StatusOK, gen.SearchResponse{
		Query:   req.Query(),
		Count:   len(items),
		Results: items,
	})
}

// ExplainScreenshot handles GET /api/v1/screenshots/{id}/explain.
func (s *Server) ExplainScreenshot(
	w http.ResponseWriter, r *http.Request, id gen.ScreenshotId, params gen.ExplainScreenshotParams,
) {
	exp, err := s.search.Explain(r.Context(), params.Q, OwnerFromContext(r.Context()), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, explanationToGen(id, params.Q, exp, s.search.SignalSet()))
}

// UploadScreenshot handles POST /api/v1/screenshots.
func (s *Server) UploadScreenshot(w http.ResponseWriter, r *http.Request) {
	// Multipart framing overhead is allowed on top of the image limit.
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.handleDomainError(w, r, domain.ErrImageTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeBadRequest, "Invalid multipart form: "+err.Error())
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	f, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeBadRequest, "Form field \"image\" is required")
		return
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, s.maxUploadBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeBadRequest, "Failed to read upload")
		return
	}

	file := domitem.File{
		Name:     header.Filename,
		MIMEType: uploadMIMEType(header.Header.Get("Content-Type"), data),
	}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		file.Width, file.Height = cfg.Width, cfg.Height
	}
	if file.CreatedAt, err = formTime(r, "file_created_at"); err != nil {
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeValidationFailed, err.Error())
		return
	}
	if file.ModifiedAt, err = formTime(r, "file_modified_at"); err != nil {
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeValidationFailed, err.Error())
		return
	}

	it, err := s.items.Create(r.Context(), OwnerFromContext(r.Context()), file, data)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/screenshots/"+it.ID())
	writeJSON(w, http.StatusCreated, screenshotToGen(it, false))
}

// ListScreenshots handles GET /api/v1/screenshots.
func (s *Server) ListScreenshots(w http.ResponseWriter, r *http.Request) {
	items, err := s.items.List(r.Context(), OwnerFromContext(r.Context()))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	out := make([]gen.Screenshot, len(items))
	for i, it := range items {
		out[i] = screenshotToGen(it, false)
	}
	writeJSON(w, http.StatusOK, gen.ScreenshotListResponse{Items: out, Count: len(out)})
}

// GetScreenshot handles GET /api/v1/screenshots/{id}.
func (s *Server) GetScreenshot(w http.ResponseWriter, r *http.Request, id gen.ScreenshotId) {
	it, err := s.items.Get(r.Context(), OwnerFromContext(r.Context()), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, screenshotToGen(it, true))
}

// GetScreenshotImage handles GET /api/v1/screenshots/{id}/image.
func (s *Server) GetScreenshotImage(w http.ResponseWriter, r *http.Request, id gen.ScreenshotId) {
	it, err := s.items.Get(r.Context(), OwnerFromContext(r.Context()), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	data, err := s.items.Image(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", it.File().MIMEType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// DeleteScreenshot handles DELETE /api/v1/screenshots/{id}.
func (s *Server) DeleteScreenshot(w http.ResponseWriter, r *http.Request, id gen.ScreenshotId) {
	if err := s.items.Delete(r.Context(), OwnerFromContext(r.Context()), id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PutScreenshotFeatures handles PUT /api/v1/screenshots/{id}/features.
func (s *Server) PutScreenshotFeatures(w http.ResponseWriter, r *http.Request, id gen.ScreenshotId) {
	var body gen.PutScreenshotFeaturesJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	it, err := s.items.CompleteFor(r.Context(), OwnerFromContext(r.Context()), id, featuresFromGen(body))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, screenshotToGen(it, true))
}

// ReprocessScreenshot handles POST /api/v1/screenshots/{id}/reprocess.
func (s *Server) ReprocessScreenshot(w http.ResponseWriter, r *http.Request, id gen.ScreenshotId) {
	it, err := s.items.Reprocess(r.Context(), OwnerFromContext(r.Context()), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, screenshotToGen(it, false))
}

// ReprocessScreenshots handles POST /api/v1/screenshots/reprocess.
func (s *Server) ReprocessScreenshots(w http.ResponseWriter, r *http.Request, params gen.ReprocessScreenshotsParams) {
	if params.Status != nil && *params.Status != string(domitem.StatusFailed) {
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeValidationFailed,
			"only failed screenshots can be reprocessed in bulk")
		return
	}
	n, err := s.items.ReprocessFailed(r.Context(), OwnerFromContext(r.Context()))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, gen.ReprocessResponse{Queued: n})
}

// GetStatus handles GET /api/v1/status.
func (s *Server) GetStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.items.Status(r.Context(), OwnerFromContext(r.Context()))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusToGen(st))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]gen.HealthResponseChecks, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = gen.HealthResponseChecks(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, gen.HealthResponse{
		Status: gen.HealthResponseStatus(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// uploadMIMEType trusts the part header only when it names an image and
// sniffs the bytes otherwise.
func uploadMIMEType(declared string, data []byte) string {
	declared = strings.TrimSpace(strings.Split(declared, ";")[0])
	if strings.HasPrefix(declared, "image/") {
		return declared
	}
	return strings.Split(http.DetectContentType(data), ";")[0]
}

func formTime(r *http.Request, field string) (*time.Time, error) {
	v := r.FormValue(field)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, fmt.Errorf("%s must be RFC3339: %w", field, err)
	}
	t = t.UTC()
	return &t, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code gen.ErrorResponseCode, message string) {
	writeJSON(w, status, gen.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrItemNotFound,
		domain.ErrInvalidQuery,
		domain.ErrOwnerRequired,
		domain.ErrInvalidSchema,
		domain.ErrInvalidState,
		domain.ErrImageTooLarge,
		domain.ErrUnsupportedImage,
		domain.ErrAnalysisFailed,
		domain.ErrAnalyzerNotConfigured,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code gen.ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, gen.ErrorResponseCodeInternalError, "internal error")
}

// ParamErrorHandler renders parameter binding failures as a JSON 400.
func ParamErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeBadRequest, err.Error())
}
