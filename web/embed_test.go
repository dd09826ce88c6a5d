package web

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic_SiteScript(t *testing.T) {
	data, err := fs.ReadFile(Static(), "js/site.js")
	require.NoError(t, err)
	script := string(data)

	// Static copies of devis.html carry no preselect hook; the script falls
	// back to the query string.
	assert.Contains(t, script, "new URLSearchParams(window.location.search).get('service')")
	assert.Contains(t, script, `'[data-post-render*="preselect:"]'`)

	// Field slots follow the server's data-state.
	assert.Contains(t, script, "slot.dataset.state = 'untouched'")
}

func TestTemplates_Embedded(t *testing.T) {
	for _, name := range []string{"layouts/base.html", "pages/devis.html", "partials/field.html", "email/contact.html"} {
		_, err := fs.Stat(Templates(), name)
		assert.NoError(t, err, name)
	}
}
