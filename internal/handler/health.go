package handler

import (
	"log/slog"
	"net/http"

	"github.com/DukeRupert/tenebreuse/internal/content"
)

// Health reports OK once the site document can be loaded.
func Health(loader *content.Loader, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := loader.Load(r.Context(), content.Site); err != nil {
			UnavailableResponse(w, r, logger, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}
