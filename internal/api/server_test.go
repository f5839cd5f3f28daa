package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MikeSquared-Agency/loki/internal/config"
	"github.com/MikeSquared-Agency/loki/internal/engine"
	"github.com/MikeSquared-Agency/loki/internal/session"
)

const testAPIKey = "TEST123"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Config{
		Port:               8760,
		APIKey:             testAPIKey,
		SessionTTL:         time.Hour,
		RateLimitEnabled:   false,
		RateLimitPerMinute: 60,
		MaxMessageChars:    5000,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng := engine.New(session.NewMemoryStore(), nil, nil, cfg.SessionTTL, logger)
	return NewServer(cfg, eng, nil)
}

func postHoneypot(srv *Server, apiKey, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/v1/honeypot", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("x-api-key", apiKey)
	}
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestStatusEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/v1/loki/status", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["agent"] != "loki" {
		t.Errorf("expected agent loki, got %q", body["agent"])
	}
}

func TestAuth_MissingAPIKey(t *testing.T) {
	srv := newTestServer(t)

	w := postHoneypot(srv, "", `{"message": "hello"}`)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	var body errorBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Message != "Missing API Key" {
		t.Errorf("expected Missing API Key, got %q", body.Message)
	}
}

func TestAuth_WrongAPIKey(t *testing.T) {
	srv := newTestServer(t)

	w := postHoneypot(srv, "WRONG_KEY", `{"message": "hello"}`)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	var body errorBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Message != "Invalid API Key" {
		t.Errorf("expected Invalid API Key, got %q", body.Message)
	}
}

func TestRateLimit(t *testing.T) {
	cfg := config.Config{
		Port:               8760,
		APIKey:             testAPIKey,
		SessionTTL:         time.Hour,
		RateLimitEnabled:   true,
		RateLimitPerMinute: 2,
		MaxMessageChars:    5000,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng := engine.New(session.NewMemoryStore(), nil, nil, cfg.SessionTTL, logger)
	srv := NewServer(cfg, eng, nil)

	for i := 0; i < 2; i++ {
		if w := postHoneypot(srv, testAPIKey, `{"message": "hello"}`); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}
	if w := postHoneypot(srv, testAPIKey, `{"message": "hello"}`); w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 after limit, got %d", w.Code)
	}
}

func TestNotFoundEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/nonexistent", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
