package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func serveSecurity(isSecure bool) *httptest.ResponseRecorder {
	handler := NewSecurityHeadersMiddleware(isSecure).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec
}

func TestSecurityHeadersMiddleware_SetsHeaders(t *testing.T) {
	rec := serveSecurity(true)

	for header, want := range map[string]string{
		"X-Frame-Options":        "DENY",
		"X-Content-Type-Options": "nosniff",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Error("HSTS should be set when secure")
	}
}

func TestSecurityHeadersMiddleware_NoHSTSInDevelopment(t *testing.T) {
	if hsts := serveSecurity(false).Header().Get("Strict-Transport-Security"); hsts != "" {
		t.Errorf("HSTS should not be set, got %q", hsts)
	}
}

func TestSecurityHeadersMiddleware_CSP(t *testing.T) {
	csp := serveSecurity(false).Header().Get("Content-Security-Policy")

	for _, directive := range []string{
		"default-src 'self'",
		"script-src 'self' https://unpkg.com",
		"frame-ancestors 'none'",
		"form-action 'self'",
	} {
		if !strings.Contains(csp, directive) {
			t.Errorf("CSP missing %q: %s", directive, csp)
		}
	}
	if strings.Contains(csp, "script-src 'self' https://unpkg.com 'unsafe-inline'") {
		t.Error("inline scripts should not be allowed")
	}
}
