package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/snapdex/internal/domain"
	"github.com/kailas-cloud/snapdex/internal/domain/item"
	"github.com/kailas-cloud/snapdex/internal/metrics"
)

// DefaultMaxTokens caps the completion length when none is configured.
const DefaultMaxTokens = 2000

// Analyzer extracts screenshot features through an OpenAI-compatible vision model.
type Analyzer struct {
	client    *openai.Client
	model     string
	maxTokens int
	provider  string
	logger    *zap.Logger
}

// Config holds the vision provider settings.
type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Provider  string
	Logger    *zap.Logger
}

// NewAnalyzer creates an OpenAI-compatible vision analyzer.
func NewAnalyzer(cfg *Config) *Analyzer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Analyzer{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     cfg.Model,
		maxTokens: maxTokens,
		provider:  cfg.Provider,
		logger:    logger,
	}
}

// Analyze sends the image as a data URL and parses the answer into features.
func (a *Analyzer) Analyze(ctx context.Context, image []byte, mimeType string) (item.Features, error) {
	if len(image) == 0 {
		return item.Features{}, fmt.Errorf("empty image: %w", domain.ErrAnalysisFailed)
	}
	req := openai.ChatCompletionRequest{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		Messages: []openai.ChatCompletionMessage{{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{
					Type: openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{
						URL:    dataURL(image, mimeType),
						Detail: openai.ImageURLDetailHigh,
					},
				},
				{Type: openai.ChatMessagePartTypeText, Text: analysisPrompt},
			},
		}},
	}

	start := time.Now()

	resp, err := a.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.AnalysisRequestsTotal.WithLabelValues(a.provider, a.model, "error").Inc()
		metrics.AnalysisErrorsTotal.WithLabelValues(a.provider, a.model, "api_error").Inc()
		return item.Features{}, parseAPIError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		metrics.AnalysisRequestsTotal.WithLabelValues(a.provider, a.model, "error").Inc()
		metrics.AnalysisErrorsTotal.WithLabelValues(a.provider, a.model, "empty_response").Inc()
		return item.Features{}, fmt.Errorf("empty analysis response: %w", domain.ErrAnalysisFailed)
	}

	metrics.AnalysisRequestsTotal.WithLabelValues(a.provider, a.model, "success").Inc()
	metrics.AnalysisRequestDuration.WithLabelValues(a.provider, a.model).Observe(duration.Seconds())
	if resp.Usage.TotalTokens > 0 {
		metrics.AnalysisTokensTotal.WithLabelValues(a.provider, a.model, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.AnalysisTokensTotal.WithLabelValues(a.provider, a.model, "completion").
			Add(float64(resp.Usage.CompletionTokens))
		metrics.AnalysisTokensTotal.WithLabelValues(a.provider, a.model, "total").Add(float64(resp.Usage.TotalTokens))
	}

	text := resp.Choices[0].Message.Content
	f, err := parseJSON(text)
	if err != nil {
		metrics.AnalysisFallbackTotal.WithLabelValues(a.provider, a.model).Inc()
		a.logger.Debug("Analysis response is not JSON, using section parser",
			zap.String("model", a.model),
			zap.Error(err),
		)
		f = parseSections(text)
	}
	return f, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (a *Analyzer) HealthCheck(ctx context.Context) error {
	if _, err := a.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

func dataURL(image []byte, mimeType string) string {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image)
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrAnalysisFailed for correct 502 mapping.
func parseAPIError(err error) error {
	wrap := domain.ErrAnalysisFailed

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail == "" {
			detail = string(reqErr.Body)
		}
		return fmt.Errorf("vision API error %d: %s: %w", reqErr.HTTPStatusCode, detail, wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("vision API error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("vision request: %w: %w", err, wrap)
	}
	return fmt.Errorf("vision request failed: %w", wrap)
}

// extractDetail extracts the "detail" field from a JSON error body (Nebius error format).
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
