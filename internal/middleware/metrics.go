package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
)

// MetricsAuthMiddleware puts HTTP basic auth in front of /metrics. With no
// credentials configured it lets every request through; main warns about it.
type MetricsAuthMiddleware struct {
	user [sha256.Size]byte
	pass [sha256.Size]byte
	open bool
}

func NewMetricsAuthMiddleware(username, password string) *MetricsAuthMiddleware {
	return &MetricsAuthMiddleware{
		user: sha256.Sum256([]byte(username)),
		pass: sha256.Sum256([]byte(password)),
		open: username == "" && password == "",
	}
}

// Handler wraps the metrics handler. Credentials are compared as digests so
// the comparison time does not depend on their length.
func (m *MetricsAuthMiddleware) Handler(next http.Handler) http.Handler {
	if m.open {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		u := sha256.Sum256([]byte(user))
		p := sha256.Sum256([]byte(pass))
		match := subtle.ConstantTimeCompare(u[:], m.user[:]) & subtle.ConstantTimeCompare(p[:], m.pass[:])
		if !ok || match != 1 {
			w.Header().Set("WWW-Authenticate", `Basic realm="tenebreuse-metrics", charset="UTF-8"`)
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
