package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/DukeRupert/tenebreuse/internal/content"
	"github.com/DukeRupert/tenebreuse/internal/domain"
	"github.com/DukeRupert/tenebreuse/internal/storage"
)

// OGImagePath is where the normalized Open Graph image is served.
const OGImagePath = "/og-image.jpg"

// Open Graph image geometry and encoding.
const (
	OGImageWidth   = 1200
	OGImageHeight  = 630
	OGImageQuality = 85
)

// NormalizeOGImage resizes an image to fit within 1200x630 while preserving
// its aspect ratio, and encodes it as JPEG.
func NormalizeOGImage(data io.Reader) ([]byte, error) {
	img, err := imaging.Decode(data, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	fitted := imaging.Fit(img, OGImageWidth, OGImageHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, imaging.JPEG, imaging.JPEGQuality(OGImageQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// OGImageHandler serves the site's Open Graph image, normalized. The result
// is kept in memory until the configured source changes.
type OGImageHandler struct {
	loader *content.Loader
	static fs.FS
	logger *slog.Logger

	mu     sync.Mutex
	source string
	image  []byte
}

// NewOGImageHandler reads source images from static, the FS served under
// /static/.
func NewOGImageHandler(loader *content.Loader, static fs.FS, logger *slog.Logger) *OGImageHandler {
	return &OGImageHandler{loader: loader, static: static, logger: logger}
}

func (h *OGImageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	img, err := h.Image(r.Context())
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(img)
}

// Image returns the normalized image. It fails with ENOTFOUND when the site
// has no image under /static/.
func (h *OGImageHandler) Image(ctx context.Context) ([]byte, error) {
	const op = "OGImageHandler.Image"

	b, err := h.loader.Load(ctx, content.Site)
	if b.Site == nil {
		return nil, domain.Wrap(err, domain.EUNAVAILABLE, op, "Données du site indisponibles")
	}
	source := b.Site.OGImage()
	if !isLocalAsset(source) {
		return nil, domain.NotFound(op, "image", OGImagePath)
	}
	if !storage.IsImage(storage.DetectContentType("", source)) {
		h.logger.Warn("og image source is not an image", "source", source)
		return nil, domain.NotFound(op, "image", source)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.source == source && h.image != nil {
		return h.image, nil
	}

	f, err := h.static.Open(strings.TrimPrefix(source, "/static/"))
	if err != nil {
		h.logger.Warn("og image source missing", "source", source, "error", err)
		return nil, domain.NotFound(op, "image", source)
	}
	defer f.Close()

	img, err := NormalizeOGImage(f)
	if err != nil {
		return nil, domain.Internal(err, op, "normalize og image")
	}

	h.source = source
	h.image = img
	h.logger.Info("og image normalized", "source", source, "bytes", len(img))
	return img, nil
}

// isLocalAsset reports whether ref names a file of the static FS.
func isLocalAsset(ref string) bool {
	return strings.HasPrefix(ref, "/static/") && len(ref) > len("/static/")
}
