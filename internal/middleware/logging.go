package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// RequestLoggingMiddleware logs one line per request.
type RequestLoggingMiddleware struct {
	logger *slog.Logger
}

func NewRequestLoggingMiddleware(logger *slog.Logger) *RequestLoggingMiddleware {
	return &RequestLoggingMiddleware{logger: logger}
}

// quietPrefixes are polled by health checks and browsers too often to be worth a line.
var quietPrefixes = []string{"/health", "/metrics", "/static/"}

// redactedParams may carry what a visitor typed into a form.
var redactedParams = map[string]struct{}{
	"csrf_token": {},
	"name":       {},
	"email":      {},
	"phone":      {},
	"message":    {},
	"snapshot":   {},
}

// Handler logs method, path, status, duration, client IP and user agent.
// Server errors are logged at warn level.
func (m *RequestLoggingMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isQuiet(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		began := time.Now()
		next.ServeHTTP(rec, r)

		level := slog.LevelInfo
		if rec.status >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		m.logger.LogAttrs(r.Context(), level, "request",
			slog.String("method", r.Method),
			slog.String("path", sanitizePath(r.URL.Path, r.URL.RawQuery)),
			slog.Int("status", rec.status),
			slog.Int64("duration_ms", time.Since(began).Milliseconds()),
			slog.String("ip", getClientIP(r)),
			slog.String("user_agent", r.UserAgent()),
		)
	})
}

func isQuiet(path string) bool {
	for _, prefix := range quietPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// statusRecorder remembers the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// sanitizePath appends the query to path with personal values replaced by
// [REDACTED]. Pairs without '=' are dropped.
func sanitizePath(path, rawQuery string) string {
	var b strings.Builder
	b.WriteString(path)

	sep := byte('?')
	for _, pair := range strings.Split(rawQuery, "&") {
		key, _, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		b.WriteByte(sep)
		sep = '&'
		if _, personal := redactedParams[strings.ToLower(key)]; personal {
			b.WriteString(key + "=[REDACTED]")
		} else {
			b.WriteString(pair)
		}
	}
	return b.String()
}
