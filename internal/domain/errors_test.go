package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"domain error", Invalid("op", "bad"), EINVALID},
		{"wrapped domain error", fmt.Errorf("ctx: %w", NotFound("op", "service", "x")), ENOTFOUND},
		{"validation error", NewValidationError("quote.validate", "email", "bad"), EINVALID},
		{"load error", &LoadError{Document: "site", Status: http.StatusNotFound}, EUNAVAILABLE},
		{"export error", &ExportError{Format: "json", Err: errors.New("eof")}, EINVALID},
		{"plain error", errors.New("boom"), EINTERNAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCode(tt.err))
		})
	}
}

func TestErrorMessage_HidesInternalDetails(t *testing.T) {
	err := Internal(errors.New("disk on fire"), "op", "disk on fire")
	assert.NotContains(t, ErrorMessage(err), "disk")
	assert.Equal(t, "bad input", ErrorMessage(Invalid("op", "bad input")))
}

func TestAddFieldError_FirstMessageWins(t *testing.T) {
	ve := NewValidationError("contact.validate", "email", "Ce champ est obligatoire")
	AddFieldError(ve, "email", "Veuillez entrer une adresse email valide")
	AddFieldError(ve, "name", "Ce champ est obligatoire")

	assert.Equal(t, "Ce champ est obligatoire", ve.Field("email"))
	assert.Equal(t, "Ce champ est obligatoire", ve.Field("name"))
	assert.True(t, ve.HasErrors())
}

func TestValidationError_NilSafe(t *testing.T) {
	var ve *ValidationError
	assert.False(t, ve.HasErrors())
	assert.Equal(t, "", ve.Field("name"))
}

func TestLoadErrors(t *testing.T) {
	site := &LoadError{Document: "site", Status: http.StatusNotFound, Err: errors.New("missing")}
	faq := &LoadError{Document: "faq", Status: http.StatusUnprocessableEntity, Err: errors.New("bad json")}

	got := LoadErrors(errors.Join(site, faq))
	require.Len(t, got, 2)
	assert.Equal(t, "site", got[0].Document)
	assert.Equal(t, "faq", got[1].Document)

	assert.Nil(t, LoadErrors(nil))
	assert.Contains(t, site.Error(), "404 Not Found")
}
