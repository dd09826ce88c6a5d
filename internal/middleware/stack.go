package middleware

import (
	"net/http"
	"strings"
)

// Stack composes middleware so the first one listed is the outermost.
//
//	public := Stack(logging.Handler, security.Handler)
//	mux.Handle("GET /contact.html", public(contactHandler))
func Stack(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

// wantsJSON reports whether the client asked for a JSON answer. htmx
// requests always want HTML fragments.
func wantsJSON(r *http.Request) bool {
	if r.Header.Get("HX-Request") == "true" {
		return false
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.Contains(r.Header.Get("Content-Type"), "application/json")
}
