package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DukeRupert/tenebreuse/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestLimiter(t *testing.T, max int, window time.Duration) *RateLimiter {
	t.Helper()
	rl := NewRateLimiter(max, window, discardLogger())
	t.Cleanup(rl.Close)
	return rl
}

func TestRateLimiter_AllowsUpToLimit(t *testing.T) {
	rl := newTestLimiter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("4th request should be denied")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("another IP has its own window")
	}
}

func TestRateLimiter_WindowExpires(t *testing.T) {
	rl := newTestLimiter(t, 1, time.Minute)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("ip")
	if rl.Allow("ip") {
		t.Fatal("second request in window should be denied")
	}
	if got := rl.TimeUntilReset("ip"); got != time.Minute {
		t.Errorf("TimeUntilReset = %v, want 1m", got)
	}

	now = now.Add(61 * time.Second)
	if !rl.Allow("ip") {
		t.Error("request after window should be allowed")
	}
}

func TestRateLimiter_Reset(t *testing.T) {
	rl := newTestLimiter(t, 1, time.Minute)
	rl.Allow("ip")
	rl.Reset("ip")
	if !rl.Allow("ip") {
		t.Error("reset key should be allowed again")
	}
	if rl.TimeUntilReset("unknown") != 0 {
		t.Error("unknown key has no wait")
	}
}

func TestRateLimiter_CloseTwice(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute, discardLogger())
	rl.Close()
	rl.Close()
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := newTestLimiter(t, 1, time.Minute)
	handler := NewRateLimitMiddleware(rl, discardLogger()).Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(accept string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/contact.html", nil)
		req.RemoteAddr = "192.0.2.7:4000"
		req.Header.Set("Accept", accept)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	if rec := send("text/html"); rec.Code != http.StatusOK {
		t.Fatalf("first request: status %d", rec.Code)
	}

	rec := send("text/html")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: status %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After")
	}
	if !strings.Contains(rec.Body.String(), "Trop de demandes") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}

	rec = send("application/json")
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("JSON client got %q", ct)
	}
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != domain.ERATELIMIT {
		t.Errorf("code = %q, want %q", body.Error.Code, domain.ERATELIMIT)
	}

	req := httptest.NewRequest(http.MethodPost, "/contact.html", nil)
	req.RemoteAddr = "192.0.2.7:4000"
	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("htmx request: status %d, want 429", rec.Code)
	}
	if got := rec.Body.String(); !strings.HasPrefix(got, `<div class="form-error show"`) || strings.Contains(got, "<html") {
		t.Errorf("htmx client got %q, want an error banner", got)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "203.0.113.1, 10.0.0.1"}, "10.0.0.2:80", "203.0.113.1"},
		{"real ip", map[string]string{"X-Real-IP": " 203.0.113.9 "}, "10.0.0.2:80", "203.0.113.9"},
		{"remote addr", nil, "198.51.100.4:5555", "198.51.100.4"},
		{"remote without port", nil, "198.51.100.4", "198.51.100.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
