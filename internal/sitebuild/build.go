package sitebuild

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/DukeRupert/tenebreuse/internal/domain"
)

// OGImageFile is the name of the normalized Open Graph image in the output.
const OGImageFile = "og-image.jpg"

// Builder renders every page through the site's HTTP handler and writes the
// result, with the static assets, to a directory.
type Builder struct {
	// Handler serves the pages, e.g. a mux with the site routes.
	Handler http.Handler
	// Static is copied to <out>/static.
	Static fs.FS
	// OGImage returns the normalized image, or an ENOTFOUND error when the
	// site has none. May be nil.
	OGImage func(ctx context.Context) ([]byte, error)
	Logger  *slog.Logger
}

// Result summarizes a build.
type Result struct {
	Pages  []string
	Assets int
	// BrokenLinks lists local links that point at no written file, as
	// "<page>: <link>".
	BrokenLinks []string
}

// Build writes the site to out, creating it if needed.
func (b *Builder) Build(ctx context.Context, out string) (*Result, error) {
	if err := os.MkdirAll(out, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	res := &Result{}
	docs := make(map[string]*goquery.Document)
	for _, route := range domain.Routes() {
		name := route.File()
		body, err := b.render(ctx, "/"+name)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(out, name), body, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		docs[name] = doc
		res.Pages = append(res.Pages, name)
		b.Logger.Info("page written", "page", name, "bytes", len(body))
	}

	n, err := copyFS(b.Static, filepath.Join(out, "static"))
	if err != nil {
		return nil, fmt.Errorf("copy static assets: %w", err)
	}
	res.Assets = n

	if b.OGImage != nil {
		img, err := b.OGImage(ctx)
		switch {
		case err == nil:
			if err := os.WriteFile(filepath.Join(out, OGImageFile), img, 0o644); err != nil {
				return nil, fmt.Errorf("write %s: %w", OGImageFile, err)
			}
			res.Assets++
		case domain.ErrorCode(err) == domain.ENOTFOUND:
			b.Logger.Info("no og image configured")
		default:
			return nil, fmt.Errorf("og image: %w", err)
		}
	}

	for _, name := range res.Pages {
		for _, link := range localLinks(docs[name]) {
			if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(link))); err != nil {
				res.BrokenLinks = append(res.BrokenLinks, name+": "+link)
			}
		}
	}
	sort.Strings(res.BrokenLinks)
	return res, nil
}

func (b *Builder) render(ctx context.Context, target string) ([]byte, error) {
	req := httptest.NewRequest(http.MethodGet, target, nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	b.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		return nil, fmt.Errorf("status %d", rec.Code)
	}
	return rec.Body.Bytes(), nil
}

// localLinks returns the site-relative files referenced by links, scripts,
// stylesheets and images. Form actions need the server and are skipped.
func localLinks(doc *goquery.Document) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(ref string) {
		u, err := url.Parse(strings.TrimSpace(ref))
		if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
			return
		}
		p := strings.TrimPrefix(path.Clean("/"+u.Path), "/")
		if p == "" {
			p = domain.RouteHome.File()
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	doc.Find("a[href], link[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		add(href)
	})
	doc.Find("script[src], img[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		add(src)
	})
	return out
}

func copyFS(src fs.FS, dst string) (int, error) {
	count := 0
	err := fs.WalkDir(src, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dst, filepath.FromSlash(p))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		in, err := src.Open(p)
		if err != nil {
			return err
		}
		defer in.Close()

		outFile, err := os.Create(target)
		if err != nil {
			return err
		}
		if _, err := io.Copy(outFile, in); err != nil {
			outFile.Close()
			return err
		}
		count++
		return outFile.Close()
	})
	return count, err
}
