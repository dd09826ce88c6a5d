package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DukeRupert/tenebreuse/internal/domain"
)

func testSite() *domain.SiteConfig {
	return &domain.SiteConfig{
		Branding: domain.Branding{Name: "La Pêche Ténébreuse", Logo: domain.Logo{Text: "LPT"}},
		Navigation: domain.Navigation{
			Links: []domain.Link{
				{Label: "Accueil", Href: "index.html"},
				{Label: "Services", Href: "services.html"},
				{Label: "Contact", Href: "contact.html"},
			},
			CTA: domain.Link{Label: "Devis gratuit", Href: "devis.html"},
		},
		Footer: domain.Footer{
			Description: "Réparation de coques",
			Contact:     domain.ContactInfo{Phone: "06 00 00 00 00", Email: "contact@lpt.fr", Zone: "Finistère", Hours: "Lun-Ven"},
			Copyright:   "© 2024",
		},
		SEO: domain.SEO{
			Default: domain.SEOMeta{Title: "Réparation navale", Description: "Atelier mobile"},
			OG:      &domain.OpenGraph{Image: "/static/img/og.jpg"},
		},
	}
}

func activeHrefs(c Chrome) []string {
	var out []string
	for _, l := range c.Links {
		if l.Active {
			out = append(out, l.Href)
		}
	}
	return out
}

func TestBuildChrome_ActiveLink(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"/", []string{"index.html"}},
		{"", []string{"index.html"}},
		{"/services.html", []string{"services.html"}},
		{"/site/contact.html", []string{"contact.html"}},
		{"/devis.html", nil},
		{"/inconnu.html", nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			c := BuildChrome(testSite(), nil, tt.path, "")
			assert.Equal(t, tt.want, activeHrefs(c))
		})
	}
}

func TestBuildChrome_Idempotent(t *testing.T) {
	site := testSite()
	a := BuildChrome(site, nil, "/services.html", "https://lpt.fr")
	b := BuildChrome(site, nil, "/services.html", "https://lpt.fr")
	assert.Equal(t, a, b)
}

func TestBuildChrome_MobileLinksEndWithCTA(t *testing.T) {
	c := BuildChrome(testSite(), nil, "/", "")
	links := c.MobileLinks()
	assert.Len(t, links, 4)
	assert.Equal(t, domain.Link{Label: "Devis gratuit", Href: "devis.html"}, links[3])
}

func TestBuildChrome_SEOFallbacks(t *testing.T) {
	site := testSite()

	c := BuildChrome(site, &domain.SEOMeta{Title: "Nos services"}, "/", "")
	assert.Equal(t, "Nos services", c.SEO.Title)
	assert.Equal(t, "Nos services", c.SEO.OGTitle)
	assert.Equal(t, "Atelier mobile", c.SEO.Description)

	c = BuildChrome(site, nil, "/", "")
	assert.Equal(t, "Réparation navale", c.SEO.Title)

	site.SEO.Default.Title = ""
	c = BuildChrome(site, nil, "/", "")
	assert.Equal(t, domain.DefaultSiteTitle, c.SEO.Title)
}

func TestBuildChrome_OGImage(t *testing.T) {
	site := testSite()

	assert.Equal(t, "https://lpt.fr/static/img/og.jpg", BuildChrome(site, nil, "/", "https://lpt.fr/").SEO.OGImage)
	assert.Equal(t, "/static/img/og.jpg", BuildChrome(site, nil, "/", "").SEO.OGImage)

	site.SEO.OG.Image = "https://cdn.example.com/og.png"
	assert.Equal(t, "https://cdn.example.com/og.png", BuildChrome(site, nil, "/", "https://lpt.fr").SEO.OGImage)

	site.SEO.OG = nil
	assert.Empty(t, BuildChrome(site, nil, "/", "https://lpt.fr").SEO.OGImage)
}

func TestBuildChrome_LogoFallsBackToBrand(t *testing.T) {
	site := testSite()
	site.Branding.Logo.Text = ""
	c := BuildChrome(site, nil, "/", "")
	assert.Equal(t, "La Pêche Ténébreuse", c.Logo)
	assert.Equal(t, "Finistère", c.Footer.Contact.Zone)
}
