package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_LoadsEmbeddedTemplates(t *testing.T) {
	r := newTestRenderer(t)

	names := r.ListTemplates()
	for _, want := range []string{"home", "about", "contact", "services", "devis", "partial/contact-form", "partial/devis-main", "partial/services-grid", "partial/field"} {
		assert.Contains(t, names, want)
	}
}

func testTemplates() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html":   {Data: []byte(`{{define "base"}}<main>{{template "content" .}}</main>{{end}}`)},
		"partials/greet.html": {Data: []byte(`{{define "greet"}}<p>Bonjour {{.}}</p>{{end}}`)},
		"pages/home.html":     {Data: []byte(`{{define "content"}}{{template "greet" .}}{{end}}`)},
		"pages/about.html":    {Data: []byte(`{{define "content"}}<h1>{{title .}}</h1>{{end}}`)},
	}
}

func TestRenderer_PagesDefineOwnContent(t *testing.T) {
	r, err := NewRenderer(RendererConfig{FS: testTemplates(), Logger: discardLogger()})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "home", "Jeanne"))
	assert.Equal(t, "<main><p>Bonjour Jeanne</p></main>", buf.String())

	buf.Reset()
	require.NoError(t, r.Render(&buf, "about", "notre atelier"))
	assert.Equal(t, "<main><h1>Notre Atelier</h1></main>", buf.String())
}

func TestRenderer_RenderPartial(t *testing.T) {
	r, err := NewRenderer(RendererConfig{FS: testTemplates(), Logger: discardLogger()})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	r.RenderPartial(rec, http.StatusUnprocessableEntity, "greet", "<b>")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "<p>Bonjour &lt;b&gt;</p>", rec.Body.String())
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewRenderer(RendererConfig{FS: testTemplates(), Logger: discardLogger()})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	r.RenderHTTP(rec, http.StatusOK, "galerie", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRenderer_ReloadKeepsPreviousSetOnError(t *testing.T) {
	fsys := testTemplates()
	r, err := NewRenderer(RendererConfig{FS: fsys, Logger: discardLogger()})
	require.NoError(t, err)

	fsys["pages/home.html"] = &fstest.MapFile{Data: []byte(`{{define "content"}}{{.Broken`)}
	assert.Error(t, r.Reload())

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "home", "Jeanne"))
	assert.True(t, strings.Contains(buf.String(), "Bonjour Jeanne"))
}

func TestRenderer_DevModeReparses(t *testing.T) {
	fsys := testTemplates()
	r, err := NewRenderer(RendererConfig{FS: fsys, Logger: discardLogger(), IsDev: true})
	require.NoError(t, err)

	fsys["partials/greet.html"] = &fstest.MapFile{Data: []byte(`{{define "greet"}}<p>Salut {{.}}</p>{{end}}`)}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "home", "Jeanne"))
	assert.Equal(t, "<main><p>Salut Jeanne</p></main>", buf.String())
}
