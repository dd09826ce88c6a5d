package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DukeRupert/tenebreuse/internal/content"
	"github.com/DukeRupert/tenebreuse/internal/csrf"
	"github.com/DukeRupert/tenebreuse/internal/domain"
	"github.com/DukeRupert/tenebreuse/internal/email"
	"github.com/DukeRupert/tenebreuse/internal/form"
	"github.com/DukeRupert/tenebreuse/internal/metrics"
	"github.com/DukeRupert/tenebreuse/internal/quote"
	"github.com/DukeRupert/tenebreuse/internal/templ/shared"
	"github.com/DukeRupert/tenebreuse/internal/view"
)

// notifyTimeout bounds a contact notification. The visitor's response does
// not wait on delivery beyond it.
const notifyTimeout = 10 * time.Second

// =============================================================================
// Handler Configuration
// =============================================================================

// SiteHandler serves the five pages and the two forms.
type SiteHandler struct {
	loader   *content.Loader
	renderer *Renderer
	notifier email.Notifier
	baseURL  string
	isSecure bool
	reload   bool
	logger   *slog.Logger
	now      func() time.Time
}

// SiteHandlerConfig holds the dependencies of a SiteHandler.
type SiteHandlerConfig struct {
	Loader   *content.Loader
	Renderer *Renderer
	Notifier email.Notifier
	// BaseURL is the public origin, used for Open Graph URLs.
	BaseURL  string
	IsSecure bool
	// ReloadDocuments drops the loader cache before each request so edited
	// documents show up without a restart. Development only.
	ReloadDocuments bool
	Logger          *slog.Logger
}

// NewSiteHandler creates a new SiteHandler.
func NewSiteHandler(cfg SiteHandlerConfig) *SiteHandler {
	return &SiteHandler{
		loader:   cfg.Loader,
		renderer: cfg.Renderer,
		notifier: cfg.Notifier,
		baseURL:  cfg.BaseURL,
		isSecure: cfg.IsSecure,
		reload:   cfg.ReloadDocuments,
		logger:   cfg.Logger,
		now:      time.Now,
	}
}

// =============================================================================
// Route Registration
// =============================================================================

// RegisterRoutes registers the page and form routes with the provided mux.
//
// protect wraps every POST route (CSRF check). throttle additionally wraps
// the submissions (rate limit), not the blur validation.
//
// Routes:
// - GET  /, /index.html, /a-propos.html, /contact.html, /services.html, /devis.html
// - GET  /{file}                 -> page by file name, unknown names show home
// - POST /contact.html           -> SubmitContact
// - POST /devis.html             -> SubmitQuote
// - POST /devis/export           -> Export
// - POST /validate/{form}/{field} -> ValidateField
func (h *SiteHandler) RegisterRoutes(mux *http.ServeMux, protect, throttle func(http.Handler) http.Handler) {
	mux.Handle("GET /{$}", h.page(domain.RouteHome))
	for _, route := range domain.Routes() {
		mux.Handle("GET /"+route.File(), h.page(route))
	}
	mux.HandleFunc("GET /{file}", func(w http.ResponseWriter, r *http.Request) {
		h.servePage(w, r, domain.RouteFromPath(r.URL.Path))
	})

	mux.Handle("POST /contact.html", protect(throttle(http.HandlerFunc(h.SubmitContact))))
	mux.Handle("POST /devis.html", protect(throttle(http.HandlerFunc(h.SubmitQuote))))
	mux.Handle("POST /devis/export", protect(http.HandlerFunc(h.Export)))
	mux.Handle("POST /validate/{form}/{field}", protect(http.HandlerFunc(h.ValidateField)))
}

func (h *SiteHandler) page(route domain.Route) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.servePage(w, r, route)
	})
}

// =============================================================================
// GET pages
// =============================================================================

func (h *SiteHandler) servePage(w http.ResponseWriter, r *http.Request, route domain.Route) {
	switch route {
	case domain.RouteServices:
		h.Services(w, r)
	case domain.RouteQuote:
		h.Quote(w, r)
	case domain.RouteContact:
		h.render(w, r, route, http.StatusOK, func(b *content.Bundle) (any, error) {
			return view.Contact(b.Site, b.PageContent().Contact, b.FAQ, form.ContactInput{}, view.FormState{})
		})
	case domain.RouteAbout:
		h.render(w, r, route, http.StatusOK, func(b *content.Bundle) (any, error) {
			return view.About(b.PageContent().About)
		})
	default:
		h.render(w, r, domain.RouteHome, http.StatusOK, func(b *content.Bundle) (any, error) {
			return view.Home(b.Site, b.PageContent().Home)
		})
	}
}

// Services shows the catalog. ?category= filters it and ?detail= opens a
// service. An htmx request targeting the grid gets the grid fragment only.
func (h *SiteHandler) Services(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	detail := r.URL.Query().Get("detail")

	if isHTMX(r) && r.Header.Get("HX-Target") == "services-grid" {
		b, err := h.load(r.Context(), content.Services)
		if err != nil {
			h.logLoadFailure(r, err)
		}
		h.renderer.RenderPartial(w, http.StatusOK, "services-grid", view.BuildGrid(b.Catalog(), category))
		return
	}

	h.render(w, r, domain.RouteServices, http.StatusOK, func(b *content.Bundle) (any, error) {
		return view.Services(b.PageContent().Services, b.Catalog(), category, detail)
	})
}

// Quote shows the quote form. ?service= preselects a service.
func (h *SiteHandler) Quote(w http.ResponseWriter, r *http.Request) {
	preselect := r.URL.Query().Get("service")
	h.render(w, r, domain.RouteQuote, http.StatusOK, func(b *content.Bundle) (any, error) {
		return view.Quote(b.PageContent().Devis, b.Catalog(), form.QuoteInput{}, view.FormState{}, preselect, nil)
	})
}

// =============================================================================
// POST /contact.html
// =============================================================================

// SubmitContact validates the contact form and notifies the workshop.
// Errors re-render the form with status 422. Delivery failures are logged;
// the visitor is thanked either way.
func (h *SiteHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid("SiteHandler.SubmitContact", "Formulaire illisible"))
		return
	}

	in := form.ParseContact(r.PostForm)
	if ve := form.ValidateContact(in); ve != nil {
		metrics.FormSubmitted(form.ContactForm, "invalid")
		h.logger.Info("contact form rejected", "field_count", len(ve.Fields))
		h.renderForm(w, r, domain.RouteContact, "contact-form", http.StatusUnprocessableEntity, func(b *content.Bundle) (any, error) {
			return view.Contact(b.Site, b.PageContent().Contact, b.FAQ, in, view.StateFrom(ve))
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), notifyTimeout)
	defer cancel()
	result := "ok"
	if err := h.notifier.SendContactMessage(ctx, email.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Message: in.Message,
	}); err != nil {
		result = "error"
		h.logger.Error("contact notification failed", "error", err)
	}
	metrics.FormSubmitted(form.ContactForm, result)

	h.renderForm(w, r, domain.RouteContact, "contact-form", http.StatusOK, func(b *content.Bundle) (any, error) {
		return view.Contact(b.Site, b.PageContent().Contact, b.FAQ, form.ContactInput{}, view.FormState{Success: form.MsgContactSuccess})
	})
}

// =============================================================================
// POST /devis.html
// =============================================================================

// SubmitQuote validates the quote form and shows the summary under it.
func (h *SiteHandler) SubmitQuote(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid("SiteHandler.SubmitQuote", "Formulaire illisible"))
		return
	}

	in := form.ParseQuote(r.PostForm)
	if ve := form.ValidateQuote(in); ve != nil {
		metrics.FormSubmitted(form.QuoteForm, "invalid")
		h.logger.Info("quote form rejected", "field_count", len(ve.Fields), "banner_count", len(ve.Banners))
		h.renderForm(w, r, domain.RouteQuote, "devis-main", http.StatusUnprocessableEntity, func(b *content.Bundle) (any, error) {
			return view.Quote(b.PageContent().Devis, b.Catalog(), in, view.StateFrom(ve), "", nil)
		})
		return
	}

	h.renderForm(w, r, domain.RouteQuote, "devis-main", http.StatusOK, func(b *content.Bundle) (any, error) {
		now := h.now()
		q := quote.Summarize(in, b.Catalog(), now)
		summary, err := view.Summary(q, now)
		if err != nil {
			return nil, err
		}
		metrics.FormSubmitted(form.QuoteForm, "ok")
		metrics.QuoteSummarized(q.Total())
		h.logger.Info("quote summarized", "reference", q.Reference, "services", len(q.Need.Services))
		return view.Quote(b.PageContent().Devis, b.Catalog(), in, view.FormState{}, "", summary)
	})
}

// =============================================================================
// POST /devis/export
// =============================================================================

// Export downloads a summary. The snapshot field carries the JSON produced
// with the summary; format is "json" (default) or "text".
func (h *SiteHandler) Export(w http.ResponseWriter, r *http.Request) {
	const op = "SiteHandler.Export"

	format := r.PostFormValue("format")
	if format == "" {
		format = quote.FormatJSON
	}
	if format != quote.FormatJSON && format != quote.FormatText {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "Format d'export inconnu"))
		return
	}

	q, err := quote.ParseJSON([]byte(r.PostFormValue("snapshot")))
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	now := h.now()
	var (
		body        []byte
		contentType string
		filename    string
	)
	switch format {
	case quote.FormatText:
		body = []byte(quote.Text(q))
		contentType = "text/plain; charset=utf-8"
		filename = quote.TextFilename(q.Client.Name, now)
	default:
		body, err = quote.JSON(q)
		if err != nil {
			ErrorResponse(w, r, h.logger, err)
			return
		}
		contentType = "application/json"
		filename = quote.Filename(q.Client.Name, now)
	}

	metrics.QuoteExported(format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", contentDisposition(filename))
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(body)
}

// contentDisposition quotes filename for the header, with an RFC 5987
// variant for names outside ASCII.
func contentDisposition(filename string) string {
	ascii := strings.Map(func(r rune) rune {
		if r > 127 || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, filename)
	if ascii == filename {
		return fmt.Sprintf(`attachment; filename="%s"`, filename)
	}
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, ascii, url.PathEscape(filename))
}

// =============================================================================
// POST /validate/{form}/{field}
// =============================================================================

// ValidateField checks one field on blur and returns its slot, marked valid
// or invalid.
func (h *SiteHandler) ValidateField(w http.ResponseWriter, r *http.Request) {
	formName := r.PathValue("form")
	field := r.PathValue("field")

	rules, ok := form.FieldRules(formName, field)
	if !ok {
		NotFoundResponse(w, r, h.logger)
		return
	}

	state := form.FieldState{}.Blur(strings.TrimSpace(r.PostFormValue(field)), rules...)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := shared.FieldError(field, state).Render(r.Context(), w); err != nil {
		h.logger.Error("field error render failed", "error", err)
	}
}

// =============================================================================
// Rendering
// =============================================================================

// render loads the documents route needs, builds its content and writes the
// page. Without the site document nothing can be rendered and the error page
// is returned with 503; other missing documents only drop their sections.
func (h *SiteHandler) render(w http.ResponseWriter, r *http.Request, route domain.Route, status int, build func(*content.Bundle) (any, error)) {
	h.renderForm(w, r, route, "", status, build)
}

// renderForm is render for form posts: an htmx request gets the partial
// only when partial is set.
func (h *SiteHandler) renderForm(w http.ResponseWriter, r *http.Request, route domain.Route, partial string, status int, build func(*content.Bundle) (any, error)) {
	b, err := h.load(r.Context(), documentsFor(route)...)
	if b.Site == nil {
		h.unavailable(w, r, err)
		return
	}
	if err != nil {
		h.logLoadFailure(r, err)
	}

	pageContent, err := build(b)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	data := view.Page{
		Chrome:  h.chrome(b, route, r.URL.Path),
		Route:   route,
		Content: pageContent,
	}
	if route == domain.RouteContact || route == domain.RouteQuote {
		token, err := csrf.EnsureToken(w, r, h.isSecure)
		if err != nil {
			InternalErrorResponse(w, r, h.logger, err)
			return
		}
		data.CSRFToken = token
	}

	if partial != "" && isHTMX(r) {
		h.renderer.RenderPartial(w, status, partial, data)
		return
	}
	h.renderer.RenderHTTP(w, status, route.String(), data)
}

func (h *SiteHandler) load(ctx context.Context, names ...content.Name) (*content.Bundle, error) {
	if h.reload {
		h.loader.Invalidate()
	}
	return h.loader.Load(ctx, names...)
}

func (h *SiteHandler) chrome(b *content.Bundle, route domain.Route, path string) view.Chrome {
	c := view.BuildChrome(b.Site, seoOverride(b.Pages, route), path, h.baseURL)
	if isLocalAsset(b.Site.OGImage()) {
		c.SEO.OGImage = view.AbsoluteURL(h.baseURL, OGImagePath)
	}
	return c
}

func (h *SiteHandler) unavailable(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		err = errors.New("site document missing")
	}
	h.logLoadFailure(r, err)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Retry-After", "30")
	w.WriteHeader(http.StatusServiceUnavailable)
	if err := shared.ErrorPage(view.SiteUnavailable(err)).Render(r.Context(), w); err != nil {
		h.logger.Error("error page render failed", "error", err)
	}
}

func (h *SiteHandler) logLoadFailure(r *http.Request, err error) {
	for _, le := range domain.LoadErrors(err) {
		h.logger.Warn("document unavailable",
			"document", le.Document,
			"status", le.Status,
			"path", r.URL.Path,
			"error", le.Err,
		)
	}
}

// documentsFor lists the documents a page reads.
func documentsFor(route domain.Route) []content.Name {
	switch route {
	case domain.RouteContact:
		return []content.Name{content.Site, content.Pages, content.FAQ}
	case domain.RouteServices, domain.RouteQuote:
		return []content.Name{content.Site, content.Pages, content.Services}
	default:
		return []content.Name{content.Site, content.Pages}
	}
}

func seoOverride(pages *domain.PageContent, route domain.Route) *domain.SEOMeta {
	if pages == nil {
		return nil
	}
	switch route {
	case domain.RouteHome:
		if pages.Home != nil {
			return pages.Home.SEO
		}
	case domain.RouteAbout:
		if pages.About != nil {
			return pages.About.SEO
		}
	case domain.RouteContact:
		if pages.Contact != nil {
			return pages.Contact.SEO
		}
	case domain.RouteServices:
		if pages.Services != nil {
			return pages.Services.SEO
		}
	case domain.RouteQuote:
		if pages.Devis != nil {
			return pages.Devis.SEO
		}
	}
	return nil
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
