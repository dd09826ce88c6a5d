package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DukeRupert/tenebreuse/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestErrorResponse_ValidationJSONIncludesFields(t *testing.T) {
	ve := domain.NewValidationError("contact.validate", "name", "Ce champ est obligatoire")

	req := httptest.NewRequest("POST", "/contact.html", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	ErrorResponse(rec, req, discardLogger(), ve)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	var body JSONError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Error.Code != domain.EINVALID {
		t.Errorf("expected code %q, got %q", domain.EINVALID, body.Error.Code)
	}
	if body.Error.Fields["name"] != "Ce champ est obligatoire" {
		t.Errorf("expected field message, got %v", body.Error.Fields)
	}
	if strings.Contains(rec.Body.String(), "contact.validate") {
		t.Errorf("response exposes internal operation name: %s", rec.Body.String())
	}
}

func TestErrorResponse_InternalErrorHidesDetails(t *testing.T) {
	storageErr := errors.New("s3: AccessDenied for bucket tenebreuse-prod")
	internalErr := domain.Internal(storageErr, "R2Storage.Get", "fetch failed")

	for _, accept := range []string{"text/html", "application/json"} {
		req := httptest.NewRequest("GET", "/services.html", nil)
		req.Header.Set("Accept", accept)
		rec := httptest.NewRecorder()

		ErrorResponse(rec, req, discardLogger(), internalErr)

		body := rec.Body.String()
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("%s: expected status 500, got %d", accept, rec.Code)
		}
		if strings.Contains(body, "tenebreuse-prod") || strings.Contains(body, "R2Storage") {
			t.Errorf("%s: response exposes internals: %s", accept, body)
		}
		if !strings.Contains(body, "erreur interne") {
			t.Errorf("%s: response should contain generic message, got: %s", accept, body)
		}
	}
}

func TestErrorResponse_UnwrappedErrorReturnsGeneric(t *testing.T) {
	rawErr := errors.New("open /srv/data/site.json: permission denied")

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()

	ErrorResponse(rec, req, discardLogger(), rawErr)

	if strings.Contains(rec.Body.String(), "/srv/data") {
		t.Errorf("response exposes file path: %s", rec.Body.String())
	}
}

func TestErrorResponse_HTMLPage(t *testing.T) {
	req := httptest.NewRequest("GET", "/validate/newsletter/email", nil)
	rec := httptest.NewRecorder()

	NotFoundResponse(rec, req, discardLogger())

	body := rec.Body.String()
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
	if !strings.HasPrefix(body, "<!DOCTYPE html>") {
		t.Errorf("expected a standalone page, got: %s", body)
	}
	if !strings.Contains(body, "Page introuvable") {
		t.Errorf("expected page title, got: %s", body)
	}
}

func TestErrorResponse_HTMXBanner(t *testing.T) {
	req := httptest.NewRequest("POST", "/devis/export", nil)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	ErrorResponse(rec, req, discardLogger(), domain.Invalid("SiteHandler.Export", "Format d'export inconnu"))

	body := rec.Body.String()
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if !strings.Contains(body, `class="form-error show"`) {
		t.Errorf("expected an error banner, got: %s", body)
	}
	if strings.Contains(body, "<html") {
		t.Errorf("htmx responses must be fragments, got: %s", body)
	}
}

func TestUnavailableResponse(t *testing.T) {
	err := &domain.LoadError{Document: "site", Status: http.StatusBadGateway, Err: errors.New("timeout")}

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	UnavailableResponse(rec, req, discardLogger(), err)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), domain.EUNAVAILABLE) {
		t.Errorf("expected code %q in body, got: %s", domain.EUNAVAILABLE, rec.Body.String())
	}
}

func TestErrorCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{domain.EINVALID, http.StatusBadRequest},
		{domain.ENOTFOUND, http.StatusNotFound},
		{domain.ERATELIMIT, http.StatusTooManyRequests},
		{domain.EUNAVAILABLE, http.StatusServiceUnavailable},
		{domain.EINTERNAL, http.StatusInternalServerError},
		{"unknown", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := ErrorCodeToHTTPStatus(tt.code); got != tt.want {
			t.Errorf("ErrorCodeToHTTPStatus(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
