// Package content loads the site's JSON documents from storage.
//
// A Loader fetches each document at most once for its lifetime and hands
// out typed values. Concurrent first requests for the same document share a
// single fetch. Failures are never cached, so a document that was missing
// is retried on the next request.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/DukeRupert/tenebreuse/internal/domain"
	"github.com/DukeRupert/tenebreuse/internal/metrics"
	"github.com/DukeRupert/tenebreuse/internal/storage"
)

// Name identifies one of the site documents.
type Name string

const (
	Site     Name = "site"
	Pages    Name = "pages"
	Services Name = "services"
	FAQ      Name = "faq"
)

// Names lists every known document.
func Names() []Name {
	return []Name{Site, Pages, Services, FAQ}
}

// ParseName returns the document called s.
func ParseName(s string) (Name, bool) {
	for _, n := range Names() {
		if string(n) == s {
			return n, true
		}
	}
	return "", false
}

// Key is the storage key of the document in per-file mode.
func (n Name) Key() string {
	return storage.DocumentKey(string(n))
}

// maxDocumentSize bounds a single read. Documents are hand-edited JSON.
const maxDocumentSize = 4 << 20

// fetchTimeout bounds a shared fetch. It is detached from the caller's
// context because other requests may be waiting on the same fetch.
const fetchTimeout = 10 * time.Second

// Bundle holds whichever documents loaded. A nil field means the document
// was not requested or failed; the error returned alongside says which.
type Bundle struct {
	Site     *domain.SiteConfig
	Pages    *domain.PageContent
	Services *domain.Catalog
	FAQ      *domain.FAQ
}

// Catalog returns the services document, or an empty catalog.
func (b *Bundle) Catalog() *domain.Catalog {
	if b.Services == nil {
		return &domain.Catalog{}
	}
	return b.Services
}

// PageContent returns the pages document, or an empty one.
func (b *Bundle) PageContent() *domain.PageContent {
	if b.Pages == nil {
		return &domain.PageContent{}
	}
	return b.Pages
}

// Options configures a Loader.
type Options struct {
	// BundleKey, when set, reads every document from the top-level keys of
	// a single file (e.g. "data.json") instead of one file per document.
	BundleKey string
}

// Loader fetches and caches documents.
type Loader struct {
	store     storage.Storage
	bundleKey string
	logger    *slog.Logger

	mu     sync.RWMutex
	cache  map[Name]any
	bundle map[string]json.RawMessage

	group singleflight.Group
}

// NewLoader creates a Loader reading from store.
func NewLoader(store storage.Storage, opts Options, logger *slog.Logger) *Loader {
	return &Loader{
		store:     store,
		bundleKey: opts.BundleKey,
		logger:    logger,
		cache:     make(map[Name]any),
	}
}

// Load fetches the named documents concurrently. With no names it loads
// site and pages. The returned Bundle is never nil; the error joins one
// *domain.LoadError per failed document.
func (l *Loader) Load(ctx context.Context, names ...Name) (*Bundle, error) {
	if len(names) == 0 {
		names = []Name{Site, Pages}
	}

	type result struct {
		name  Name
		value any
		err   error
	}

	results := make([]result, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name Name) {
			defer wg.Done()
			v, err := l.document(ctx, name)
			results[i] = result{name: name, value: v, err: err}
		}(i, name)
	}
	wg.Wait()

	bundle := &Bundle{}
	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		switch v := r.value.(type) {
		case *domain.SiteConfig:
			bundle.Site = v
		case *domain.PageContent:
			bundle.Pages = v
		case *domain.Catalog:
			bundle.Services = v
		case *domain.FAQ:
			bundle.FAQ = v
		}
	}

	return bundle, errors.Join(errs...)
}

// Invalidate drops every cached document so the next Load refetches.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[Name]any)
	l.bundle = nil
	l.logger.Debug("document cache invalidated")
}

// document returns a cached document or fetches it once.
func (l *Loader) document(ctx context.Context, name Name) (any, error) {
	l.mu.RLock()
	v, ok := l.cache[name]
	l.mu.RUnlock()
	if ok {
		metrics.DocumentCacheHit(string(name))
		return v, nil
	}

	v, err, _ := l.group.Do(string(name), func() (any, error) {
		// A flight that finished between the cache check and Do already
		// filled the cache.
		l.mu.RLock()
		cached, ok := l.cache[name]
		l.mu.RUnlock()
		if ok {
			return cached, nil
		}

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()

		start := time.Now()
		v, err := l.fetch(ctx, name)
		metrics.DocumentFetched(string(name), outcome(err), time.Since(start))
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.cache[name] = v
		l.mu.Unlock()
		return v, nil
	})
	if err != nil {
		l.logFailure(name, err)
		return nil, err
	}
	return v, nil
}

func (l *Loader) fetch(ctx context.Context, name Name) (any, error) {
	var data []byte
	if l.bundleKey != "" {
		raw, err := l.bundleDocument(ctx, name)
		if err != nil {
			return nil, err
		}
		data = raw
	} else {
		raw, err := l.read(ctx, string(name), name.Key())
		if err != nil {
			return nil, err
		}
		data = raw
	}

	v, err := decode(name, data)
	if err != nil {
		return nil, &domain.LoadError{Document: string(name), Status: http.StatusUnprocessableEntity, Err: err}
	}
	return v, nil
}

// bundleDocument returns the raw JSON of one top-level key of the bundle.
func (l *Loader) bundleDocument(ctx context.Context, name Name) ([]byte, error) {
	l.mu.RLock()
	bundle := l.bundle
	l.mu.RUnlock()

	if bundle == nil {
		v, err, _ := l.group.Do("bundle:"+l.bundleKey, func() (any, error) {
			l.mu.RLock()
			cached := l.bundle
			l.mu.RUnlock()
			if cached != nil {
				return cached, nil
			}

			raw, err := l.read(ctx, l.bundleKey, l.bundleKey)
			if err != nil {
				return nil, err
			}
			var m map[string]json.RawMessage
			if err := json.Unmarshal(raw, &m); err != nil {
				return nil, &domain.LoadError{Document: l.bundleKey, Status: http.StatusUnprocessableEntity, Err: err}
			}
			l.mu.Lock()
			l.bundle = m
			l.mu.Unlock()
			return m, nil
		})
		if err != nil {
			// Report the failure against the requested document.
			var le *domain.LoadError
			if errors.As(err, &le) {
				return nil, &domain.LoadError{Document: string(name), Status: le.Status, Err: err}
			}
			return nil, err
		}
		bundle = v.(map[string]json.RawMessage)
	}

	raw, ok := bundle[string(name)]
	if !ok || string(raw) == "null" {
		return nil, &domain.LoadError{
			Document: string(name),
			Status:   http.StatusNotFound,
			Err:      fmt.Errorf("key %q missing from %s", name, l.bundleKey),
		}
	}
	return raw, nil
}

// read fetches key from storage, mapping storage failures to LoadErrors.
func (l *Loader) read(ctx context.Context, document, key string) ([]byte, error) {
	rc, info, err := l.store.Get(ctx, key)
	if err != nil {
		return nil, &domain.LoadError{Document: document, Status: statusFor(err), Err: err}
	}
	defer rc.Close()

	if info.ContentType != "" && !storage.IsJSON(info.ContentType) {
		l.logger.Debug("document has unexpected content type",
			"document", document,
			"content_type", info.ContentType,
		)
	}

	data, err := io.ReadAll(io.LimitReader(rc, maxDocumentSize+1))
	if err != nil {
		return nil, &domain.LoadError{Document: document, Status: http.StatusBadGateway, Err: err}
	}
	if len(data) > maxDocumentSize {
		return nil, &domain.LoadError{Document: document, Status: http.StatusRequestEntityTooLarge, Err: storage.ErrTooLarge}
	}
	return data, nil
}

func decode(name Name, data []byte) (any, error) {
	var v any
	switch name {
	case Site:
		v = &domain.SiteConfig{}
	case Pages:
		v = &domain.PageContent{}
	case Services:
		v = &domain.Catalog{}
	case FAQ:
		v = &domain.FAQ{}
	default:
		return nil, fmt.Errorf("unknown document %q", name)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}
	return v, nil
}

func statusFor(err error) int {
	switch {
	case storage.IsNotFound(err):
		return http.StatusNotFound
	case storage.IsAccessDenied(err):
		return http.StatusForbidden
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var le *domain.LoadError
	if errors.As(err, &le) {
		return strconv.Itoa(le.Status)
	}
	return "error"
}

// logFailure reports a failed document: the site document is required for
// every page, the others only degrade their sections.
func (l *Loader) logFailure(name Name, err error) {
	attrs := []any{"document", string(name), "error", err}
	var le *domain.LoadError
	if errors.As(err, &le) {
		attrs = append(attrs, "status", le.Status)
	}
	if name == Site {
		l.logger.Error("failed to load required document", attrs...)
		return
	}
	l.logger.Warn("failed to load document", attrs...)
}
