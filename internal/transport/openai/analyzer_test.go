package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/snapdex/internal/domain"
	"github.com/kailas-cloud/snapdex/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterAnalysisMetrics()
	os.Exit(m.Run())
}

// chatRequest mirrors the parts of the chat completion request the analyzer sends.
type chatRequest struct {
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
	Messages  []struct {
		Role    string `json:"role"`
		Content []struct {
			Type     string `json:"type"`
			Text     string `json:"text"`
			ImageURL *struct {
				URL    string `json:"url"`
				Detail string `json:"detail"`
			} `json:"image_url"`
		} `json:"content"`
	} `json:"messages"`
}

func chatServer(t *testing.T, content string, check func(chatRequest)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if check != nil {
			check(req)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 800, "completion_tokens": 120, "total_tokens": 920},
		})
	}))
}

func newTestAnalyzer(url string) *Analyzer {
	return NewAnalyzer(&Config{
		APIKey:   "test-key",
		BaseURL:  url,
		Model:    "test-model",
		Provider: "test",
		Logger:   zap.NewNop(),
	})
}

func TestAnalyzer_JSONResponse(t *testing.T) {
	content := "Here is the analysis:\n```json\n" + `{
		"extracted_text": "Sign in failed",
		"visual_description": "Login form with a red banner",
		"ui_elements": ["login button", " "],
		"dominant_colors": ["#FF0000", "red", "#ffffff"],
		"error_states": ["invalid password"],
		"visual_patterns": ["red error styling"],
		"color_context": {"#ff0000": "error indication"}
	}` + "\n```"
	image := []byte("png-bytes")

	server := chatServer(t, content, func(req chatRequest) {
		if req.Model != "test-model" || req.MaxTokens != DefaultMaxTokens {
			t.Errorf("model/max_tokens = %q/%d", req.Model, req.MaxTokens)
		}
		parts := req.Messages[0].Content
		if len(parts) != 2 || parts[0].ImageURL == nil {
			t.Fatalf("unexpected content parts: %+v", parts)
		}
		want := "data:image/png;base64," + base64.StdEncoding.EncodeToString(image)
		if parts[0].ImageURL.URL != want {
			t.Errorf("image url = %q", parts[0].ImageURL.URL)
		}
		if !strings.Contains(parts[1].Text, "extracted_text") {
			t.Error("prompt must describe the JSON structure")
		}
	})
	defer server.Close()

	f, err := newTestAnalyzer(server.URL).Analyze(context.Background(), image, "image/png")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if f.Text() != "Sign in failed" || f.Description() != "Login form with a red banner" {
		t.Errorf("text fields = %q / %q", f.Text(), f.Description())
	}
	if len(f.UIElements) != 1 {
		t.Errorf("UIElements = %v", f.UIElements)
	}
	if len(f.DominantColors) != 2 || f.DominantColors[0] != "#ff0000" {
		t.Errorf("DominantColors = %v", f.DominantColors)
	}
	if f.ColorContext["#ff0000"] != "error indication" {
		t.Errorf("ColorContext = %v", f.ColorContext)
	}
	if err := f.Validate(); err != nil {
		t.Errorf("analyzer output must validate: %v", err)
	}
}

func TestAnalyzer_FallbackSections(t *testing.T) {
	content := "**Extracted Text**\nWelcome back\n\n**UI Elements**\n- Submit Button\n"
	server := chatServer(t, content, nil)
	defer server.Close()

	f, err := newTestAnalyzer(server.URL).Analyze(context.Background(), []byte("x"), "image/jpeg")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if f.Text() != "Welcome back" {
		t.Errorf("Text() = %q", f.Text())
	}
	if len(f.UIElements) != 1 || f.UIElements[0] != "submit button" {
		t.Errorf("UIElements = %v", f.UIElements)
	}
}

func TestAnalyzer_EmptyResponse(t *testing.T) {
	server := chatServer(t, "", nil)
	defer server.Close()

	_, err := newTestAnalyzer(server.URL).Analyze(context.Background(), []byte("x"), "image/png")
	if !errors.Is(err, domain.ErrAnalysisFailed) {
		t.Fatalf("expected ErrAnalysisFailed, got %v", err)
	}
}

func TestAnalyzer_EmptyImage(t *testing.T) {
	a := newTestAnalyzer("http://127.0.0.1:0")

	if _, err := a.Analyze(context.Background(), nil, "image/png"); !errors.Is(err, domain.ErrAnalysisFailed) {
		t.Fatalf("expected ErrAnalysisFailed, got %v", err)
	}
}

func TestAnalyzer_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"message": "rate limit exceeded",
				"type":    "rate_limit_error",
			},
		})
	}))
	defer server.Close()

	_, err := newTestAnalyzer(server.URL).Analyze(context.Background(), []byte("x"), "image/png")
	if !errors.Is(err, domain.ErrAnalysisFailed) {
		t.Fatalf("expected ErrAnalysisFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("status code missing from error: %v", err)
	}
}

func TestAnalyzer_DetailError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"image too large for model"}`))
	}))
	defer server.Close()

	_, err := newTestAnalyzer(server.URL).Analyze(context.Background(), []byte("x"), "image/png")
	if !errors.Is(err, domain.ErrAnalysisFailed) {
		t.Fatalf("expected ErrAnalysisFailed, got %v", err)
	}
}

func TestAnalyzer_HealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","data":[]}`))
	}))
	defer server.Close()

	if err := newTestAnalyzer(server.URL).HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck failed: %v", err)
	}
}
