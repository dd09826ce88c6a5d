// Package shared holds the templ components used by both full pages and
// htmx fragments: form banners, inline field errors and the error state.
package shared

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/DukeRupert/tenebreuse/internal/form"
	"github.com/DukeRupert/tenebreuse/internal/view"
)

// BannerType selects the banner styling.
type BannerType string

const (
	BannerError   BannerType = "error"
	BannerSuccess BannerType = "success"
)

// BannerAutoHide is how long site.js keeps a banner on screen, in ms.
const BannerAutoHide = 5000

// Banner is a dismissing message shown at the top of a form container.
func Banner(kind BannerType, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if message == "" {
			return nil
		}
		_, err := io.WriteString(w, `<div class="form-`+string(kind)+` show" role="alert" data-autohide="`+strconv.Itoa(BannerAutoHide)+`">`+
			templ.EscapeString(message)+`</div>`)
		return err
	})
}

// FieldErrorID is the id of the error slot next to an input.
func FieldErrorID(field string) string {
	return "error-" + field
}

// FieldError is the slot under an input. It is always rendered, so htmx can
// swap it on blur; data-state carries the field status for site.js and the
// message is shown only when the field is invalid.
func FieldError(field string, state form.FieldState) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div class="field-feedback" id="` + templ.EscapeString(FieldErrorID(field)) +
			`" data-state="` + state.Status.String() + `" aria-live="polite">`)
		if state.Status == form.Invalid {
			b.WriteString(`<p class="form-error">` + templ.EscapeString(state.Message) + `</p>`)
		}
		b.WriteString(`</div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// ErrorState replaces the main content when the site cannot be rendered.
func ErrorState(s view.ErrorState) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div class="error-message">`)
		b.WriteString(`<h2>` + templ.EscapeString(s.Title) + `</h2>`)
		b.WriteString(`<p>` + templ.EscapeString(s.Message) + `</p>`)
		for _, g := range s.Guidance {
			b.WriteString(`<p class="error-guidance">` + templ.EscapeString(g) + `</p>`)
		}
		b.WriteString(`</div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// ErrorPage is a standalone document around ErrorState. It needs none of
// the site documents, so it renders even when nothing could be loaded.
func ErrorPage(s view.ErrorState) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="fr"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>`+templ.EscapeString(s.Title)+`</title>`+
			`<link rel="stylesheet" href="/static/css/site.css"></head><body><main>`); err != nil {
			return err
		}
		if err := ErrorState(s).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}
