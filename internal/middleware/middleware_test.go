package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"calboard/internal/config"
	"calboard/pkg/logger"
)

func init() {
	logger.SetOutput(io.Discard)
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
})

func TestAccessLogAssignsRequestID(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	h := AccessLog(&out)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(RequestIDHeader) == "" {
			t.Errorf("handler did not see a request id")
		}
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/data", nil))

	if rec.Header().Get(RequestIDHeader) == "" {
		t.Fatalf("expected X-Request-ID on the response")
	}
	line := out.String()
	if !strings.Contains(line, "/api/data") || !strings.Contains(line, "418") {
		t.Fatalf("unexpected access line %q", line)
	}
}

func TestAccessLogKeepsCallerRequestID(t *testing.T) {
	t.Parallel()

	h := AccessLog(io.Discard)(okHandler)
	req := httptest.NewRequest(http.MethodPost, "/api/entry", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "abc" {
		t.Fatalf("expected caller id to be echoed, got %q", got)
	}
}

func TestCorsAllowsConfiguredOrigins(t *testing.T) {
	t.Parallel()

	h := CorsMiddleware([]string{"https://*.example.com"})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/data", nil)
	req.Header.Set("Origin", "https://board.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://board.example.com" {
		t.Fatalf("expected origin reflected, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/data", nil)
	req.Header.Set("Origin", "https://evil.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow-origin for foreign origin, got %q", got)
	}
}

func TestCorsPreflight(t *testing.T) {
	t.Parallel()

	called := false
	h := CorsMiddleware([]string{"*"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/entry", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent || called {
		t.Fatalf("expected 204 without reaching handler, got %d called=%v", rec.Code, called)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Fatalf("expected wildcard to reflect origin")
	}
}

func TestBodyLimit(t *testing.T) {
	t.Parallel()

	var readErr error
	h := BodyLimitMiddleware(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))

	if _, ok := readErr.(*http.MaxBytesError); !ok {
		t.Fatalf("expected MaxBytesError, got %v", readErr)
	}
}

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(config.RateLimitConfig{Enabled: true, Requests: 1, Window: "1h", Burst: 2})
	h := rl.Middleware(okHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/data", nil)
		req.RemoteAddr = "198.51.100.7:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected codes %v", codes)
	}

	// Another client has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/api/data", nil)
	req.RemoteAddr = "198.51.100.8:5000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected independent bucket per ip, got %d", rec.Code)
	}
}

func TestRateLimiterDisabledPassesThrough(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(config.RateLimitConfig{Enabled: false, Requests: 1, Window: "1h", Burst: 1})
	h := rl.Middleware(okHandler)
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
}

func TestRateLimiterPurge(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(config.RateLimitConfig{Enabled: true})
	rl.getVisitor("203.0.113.1")
	rl.getVisitor("203.0.113.2")
	time.Sleep(5 * time.Millisecond)

	if removed := rl.purge(time.Millisecond); removed != 2 {
		t.Fatalf("expected 2 stale visitors removed, got %d", removed)
	}
}
