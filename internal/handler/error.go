package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/DukeRupert/tenebreuse/internal/domain"
	"github.com/DukeRupert/tenebreuse/internal/templ/shared"
	"github.com/DukeRupert/tenebreuse/internal/view"
)

// ErrorResponse writes err in the form the client expects: a JSON body when
// it asks for JSON, an error banner for htmx swaps, a standalone error page
// otherwise. Internal details never leave the server; they are logged.
func ErrorResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code := domain.ErrorCode(err)
	message := domain.ErrorMessage(err)
	status := ErrorCodeToHTTPStatus(code)

	logError(logger, r, err, code, status)

	switch {
	case acceptsJSON(r):
		body := JSONError{}
		body.Error.Code = code
		body.Error.Message = message
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			body.Error.Message = validationMessage
			body.Error.Fields = ve.Fields
		}
		writeJSON(w, status, body)
	case isHTMX(r):
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_ = shared.Banner(shared.BannerError, message).Render(r.Context(), w)
	default:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_ = shared.ErrorPage(view.ErrorState{Title: statusTitle(status), Message: message}).Render(r.Context(), w)
	}
}

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ERATELIMIT:
		return http.StatusTooManyRequests
	case domain.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

const validationMessage = "Le formulaire contient des erreurs."

func statusTitle(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Requête invalide"
	case http.StatusNotFound:
		return "Page introuvable"
	case http.StatusTooManyRequests:
		return "Trop de demandes"
	case http.StatusServiceUnavailable:
		return "Site momentanément indisponible"
	default:
		return "Erreur"
	}
}

// NotFoundResponse answers 404.
func NotFoundResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger) {
	ErrorResponse(w, r, logger, domain.Errorf(domain.ENOTFOUND, "", "La page demandée n'existe pas."))
}

// UnavailableResponse reports that the site documents could not be loaded.
func UnavailableResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	ErrorResponse(w, r, logger, domain.Wrap(err, domain.EUNAVAILABLE, "", "Données du site indisponibles"))
}

// InternalErrorResponse hides err behind the generic message.
func InternalErrorResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	ErrorResponse(w, r, logger, domain.Internal(err, "", "Une erreur interne est survenue"))
}

// logError logs server failures as errors and client mistakes as info.
func logError(logger *slog.Logger, r *http.Request, err error, code string, status int) {
	attrs := []any{
		"error", err.Error(),
		"code", code,
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
	}
	if op := domain.ErrorOp(err); op != "" {
		attrs = append(attrs, "op", op)
	}

	if status >= 500 {
		logger.Error("server error", attrs...)
	} else {
		logger.Info("client error", attrs...)
	}
}

// acceptsJSON reports whether the client asked for JSON. htmx requests
// always want HTML.
func acceptsJSON(r *http.Request) bool {
	if isHTMX(r) {
		return false
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.Contains(r.Header.Get("Content-Type"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// JSONError is the body of a JSON error response.
type JSONError struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields,omitempty"`
	} `json:"error"`
}
