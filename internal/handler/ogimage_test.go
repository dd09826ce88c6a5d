package handler

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: 40, B: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writeSite(t *testing.T, ogImage string) string {
	t.Helper()
	dir := t.TempDir()
	site := `{"branding":{"name":"La Pêche Ténébreuse"},"seo":{"og":{"image":"` + ogImage + `"}}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "site.json"), []byte(site), 0o644))
	return dir
}

func TestNormalizeOGImage_FitsWithinBounds(t *testing.T) {
	out, err := NormalizeOGImage(bytes.NewReader(pngBytes(t, 1600, 900)))
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 1120, cfg.Width)
	assert.Equal(t, 630, cfg.Height)
}

func TestNormalizeOGImage_KeepsSmallImages(t *testing.T) {
	out, err := NormalizeOGImage(bytes.NewReader(pngBytes(t, 400, 300)))
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 400, cfg.Width)
	assert.Equal(t, 300, cfg.Height)
}

func TestNormalizeOGImage_RejectsGarbage(t *testing.T) {
	_, err := NormalizeOGImage(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestOGImageHandler_Serve(t *testing.T) {
	static := fstest.MapFS{"img/og.png": {Data: pngBytes(t, 2400, 1260)}}
	h := NewOGImageHandler(newTestLoader(t, writeSite(t, "/static/img/og.png")), static, discardLogger())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, OGImagePath, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, OGImageWidth, cfg.Width)
	assert.Equal(t, OGImageHeight, cfg.Height)

	// Served from memory once normalized.
	delete(static, "img/og.png")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, OGImagePath, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOGImageHandler_NotFound(t *testing.T) {
	tests := []struct {
		name   string
		image  string
		static fstest.MapFS
	}{
		{"external url", "https://cdn.exemple.fr/og.jpg", fstest.MapFS{}},
		{"missing file", "/static/img/absent.png", fstest.MapFS{}},
		{"no image", "", fstest.MapFS{}},
		{"not an image", "/static/css/site.css", fstest.MapFS{"css/site.css": {Data: []byte("body{}")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewOGImageHandler(newTestLoader(t, writeSite(t, tt.image)), tt.static, discardLogger())
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, OGImagePath, nil))
			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}

func TestOGImageHandler_SiteUnavailable(t *testing.T) {
	h := NewOGImageHandler(newTestLoader(t, t.TempDir()), fstest.MapFS{}, discardLogger())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, OGImagePath, nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(newTestLoader(t, "../../web/data"), discardLogger())(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = httptest.NewRecorder()
	Health(newTestLoader(t, t.TempDir()), discardLogger())(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
