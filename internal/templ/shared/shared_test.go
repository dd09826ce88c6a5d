package shared

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/tenebreuse/internal/form"
	"github.com/DukeRupert/tenebreuse/internal/view"
)

func TestBanner(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Banner(BannerError, "Veuillez <choisir>").Render(context.Background(), &buf))
	assert.Equal(t, `<div class="form-error show" role="alert" data-autohide="5000">Veuillez &lt;choisir&gt;</div>`, buf.String())

	buf.Reset()
	require.NoError(t, Banner(BannerSuccess, "").Render(context.Background(), &buf))
	assert.Empty(t, buf.String())
}

func TestFieldError(t *testing.T) {
	tests := []struct {
		name  string
		state form.FieldState
		want  string
	}{
		{"untouched", form.FieldState{}, `<div class="field-feedback" id="error-email" data-state="untouched" aria-live="polite"></div>`},
		{"valid", form.FieldState{Status: form.Valid}, `<div class="field-feedback" id="error-email" data-state="valid" aria-live="polite"></div>`},
		{"invalid", form.Rejected("Adresse <invalide>"), `<div class="field-feedback" id="error-email" data-state="invalid" aria-live="polite">` +
			`<p class="form-error">Adresse &lt;invalide&gt;</p></div>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, FieldError("email", tt.state).Render(context.Background(), &buf))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestErrorPage(t *testing.T) {
	var buf bytes.Buffer
	s := view.ErrorState{Title: "Erreur de chargement", Message: "Impossible", Guidance: []string{"statut 404"}}
	require.NoError(t, ErrorPage(s).Render(context.Background(), &buf))

	html := buf.String()
	assert.Contains(t, html, "<title>Erreur de chargement</title>")
	assert.Contains(t, html, `<p class="error-guidance">statut 404</p>`)
	assert.Contains(t, html, "</main></body></html>")
}
