package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"sort"
	"strings"
	"sync"
)

// Renderer manages template parsing and rendering with isolated template sets.
//
// Templates are organized as:
//   - layouts/base.html - the page shell (head tags, navigation, footer)
//   - partials/*.html - fragments shared by pages and returned to htmx
//   - pages/*.html - one file per page, each defining "content"
//
// Every page is parsed into its own clone of the layout so that each can
// define "content" without clashing.
type Renderer struct {
	templates map[string]*template.Template
	fsys      fs.FS
	logger    *slog.Logger
	isDev     bool
	mu        sync.RWMutex
}

// RendererConfig holds configuration for the renderer.
type RendererConfig struct {
	// FS is rooted at the templates directory.
	FS     fs.FS
	Logger *slog.Logger
	// IsDev re-parses templates before every render.
	IsDev bool
}

// NewRenderer creates a new template renderer.
func NewRenderer(cfg RendererConfig) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		fsys:      cfg.FS,
		logger:    cfg.Logger,
		isDev:     cfg.IsDev,
	}

	if err := r.Reload(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Renderer) loadTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template)

	partialFiles, err := fs.Glob(r.fsys, "partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to glob partials: %w", err)
	}

	// Partials share one set so a fragment can include another
	if len(partialFiles) > 0 {
		partialTmpl, err := template.New("").Funcs(TemplateFuncs()).ParseFS(r.fsys, partialFiles...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse partials: %w", err)
		}

		// Store with base name as key (e.g., "services-grid" for "services-grid.html")
		for _, partial := range partialFiles {
			templates["partial/"+baseName(partial)] = partialTmpl
		}
	}

	baseTmpl, err := template.New("base").Funcs(TemplateFuncs()).ParseFS(r.fsys, "layouts/base.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base layout: %w", err)
	}

	// Parse partials into the layout so pages can use {{template "partial_name"}}
	if len(partialFiles) > 0 {
		baseTmpl, err = baseTmpl.ParseFS(r.fsys, partialFiles...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse partials into base layout: %w", err)
		}
	}

	pages, err := fs.Glob(r.fsys, "pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to glob pages: %w", err)
	}

	for _, page := range pages {
		pageTmpl, err := baseTmpl.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone base template for %s: %w", page, err)
		}

		pageTmpl, err = pageTmpl.ParseFS(r.fsys, page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", page, err)
		}

		// Store as "home", "services", etc.
		templates[baseName(page)] = pageTmpl
	}

	return templates, nil
}

// Reload re-parses every template. The previous set stays in use when
// parsing fails.
func (r *Renderer) Reload() error {
	templates, err := r.loadTemplates()
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.templates = templates
	r.mu.Unlock()

	r.logger.Debug("templates loaded", "count", len(templates))
	return nil
}

// Render renders a page or partial ("partial/<name>") to an io.Writer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}) error {
	// In dev mode, reload templates on each request
	if r.isDev {
		if err := r.Reload(); err != nil {
			return fmt.Errorf("template reload failed: %w", err)
		}
	}

	r.mu.RLock()
	tmpl, ok := r.templates[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	return tmpl.ExecuteTemplate(w, r.getBaseTemplateName(name), data)
}

// RenderHTTP renders a page directly to an http.ResponseWriter with the
// given status.
func (r *Renderer) RenderHTTP(w http.ResponseWriter, status int, name string, data interface{}) {
	r.write(w, status, name, data)
}

// RenderPartial renders a partial template (for htmx responses).
// The partial file should contain {{define "name"}}...{{end}} where name matches the file name.
func (r *Renderer) RenderPartial(w http.ResponseWriter, status int, name string, data interface{}) {
	r.write(w, status, "partial/"+name, data)
}

func (r *Renderer) write(w http.ResponseWriter, status int, name string, data interface{}) {
	// Render to buffer first to catch errors before writing headers
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data); err != nil {
		r.logger.Error("template execution failed", "name", name, "error", err)
		http.Error(w, "Template execution failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// getBaseTemplateName determines which template to execute.
func (r *Renderer) getBaseTemplateName(name string) string {
	if strings.HasPrefix(name, "partial/") {
		return strings.TrimPrefix(name, "partial/")
	}
	return "base"
}

// ListTemplates returns the sorted names of all loaded templates.
func (r *Renderer) ListTemplates() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func baseName(file string) string {
	return strings.TrimSuffix(path.Base(file), path.Ext(file))
}
