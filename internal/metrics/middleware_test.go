package metrics

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/api/v1/screenshots/{id}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, id := range []string{"a", "b", "c"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/screenshots/"+id, http.NoBody)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}
	}

	val := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/screenshots/{id}", "200"))
	if val < 3 {
		t.Errorf("expected one series for all ids with >= 3 requests, got %f", val)
	}
	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected http_request_duration_seconds to have observations")
	}
	if got := testutil.ToFloat64(httpInFlight); got != 0 {
		t.Errorf("in-flight gauge = %v after requests finished", got)
	}
}

func TestMiddleware_StatusCodes(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) {})
	r.Get("/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Post("/upload", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
	})

	tests := []struct {
		method, path, status string
	}{
		{http.MethodGet, "/ok", "200"},
		{http.MethodGet, "/missing", "404"},
		{http.MethodPost, "/upload", "413"},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, http.NoBody)
			r.ServeHTTP(httptest.NewRecorder(), req)

			val := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(tc.method, tc.path, tc.status))
			if val < 1 {
				t.Errorf("expected requests_total for %s %s with status %s >= 1, got %f",
					tc.method, tc.path, tc.status, val)
			}
		})
	}
}

func TestMiddleware_RequestBodyBytes(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/api/v1/screenshots", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/screenshots", bytes.NewReader(make([]byte, 4096)))
	r.ServeHTTP(httptest.NewRecorder(), req)

	if testutil.CollectAndCount(httpRequestBytes) == 0 {
		t.Error("expected http_request_body_bytes to have a series for the upload route")
	}
}

func TestRouteLabel_Unrouted(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/nowhere", http.NoBody)
	if got := routeLabel(req); got != "unknown" {
		t.Errorf("routeLabel() = %q, want unknown", got)
	}
}

func TestRegister_Idempotent(t *testing.T) {
	RegisterSearchMetrics()
	RegisterSearchMetrics()
	RegisterAnalysisMetrics()
	RegisterAnalysisMetrics()

	before := testutil.ToFloat64(SearchResultsTotal.WithLabelValues("accepted"))
	SearchResultsTotal.WithLabelValues("accepted").Inc()
	if got := testutil.ToFloat64(SearchResultsTotal.WithLabelValues("accepted")); got != before+1 {
		t.Errorf("search_items_total = %v, want %v", got, before+1)
	}
}
