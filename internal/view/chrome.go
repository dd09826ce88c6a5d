package view

import (
	"net/url"
	"strings"

	"github.com/DukeRupert/tenebreuse/internal/domain"
)

// NavLink is a navigation entry with its active state resolved.
type NavLink struct {
	Label  string
	Href   string
	Active bool
}

// SEOView holds the head tags of a page.
type SEOView struct {
	Title         string
	Description   string
	OGTitle       string
	OGDescription string
	OGImage       string
}

type FooterView struct {
	BrandName   string
	Description string
	Contact     domain.ContactInfo
	Links       []domain.Link
	Copyright   string
}

// Chrome is the navigation bar, footer and head tags shared by every page.
type Chrome struct {
	Logo    string
	HomeURL string
	Links   []NavLink
	CTA     domain.Link
	Footer  FooterView
	SEO     SEOView
}

// MobileLinks are the entries of the mobile menu: the navigation links
// followed by the call to action.
func (c Chrome) MobileLinks() []domain.Link {
	out := make([]domain.Link, 0, len(c.Links)+1)
	for _, l := range c.Links {
		out = append(out, domain.Link{Label: l.Label, Href: l.Href})
	}
	if c.CTA.Href != "" {
		out = append(out, c.CTA)
	}
	return out
}

// BuildChrome resolves the chrome for the page served at currentPath. A link
// is active when its href equals the last path segment ("index.html" for
// the root). The page override, when set, takes precedence over the site's
// SEO defaults. Relative OG image paths are resolved against baseURL.
func BuildChrome(site *domain.SiteConfig, override *domain.SEOMeta, currentPath, baseURL string) Chrome {
	current := domain.CurrentFile(currentPath)

	links := make([]NavLink, 0, len(site.Navigation.Links))
	for _, l := range site.Navigation.Links {
		links = append(links, NavLink{Label: l.Label, Href: l.Href, Active: l.Href == current})
	}

	return Chrome{
		Logo:    site.LogoText(),
		HomeURL: domain.RouteHome.File(),
		Links:   links,
		CTA:     site.Navigation.CTA,
		Footer: FooterView{
			BrandName:   site.Branding.Name,
			Description: site.Footer.Description,
			Contact:     site.Footer.Contact,
			Links:       site.Footer.Links,
			Copyright:   site.Footer.Copyright,
		},
		SEO: buildSEO(site, override, baseURL),
	}
}

func buildSEO(site *domain.SiteConfig, override *domain.SEOMeta, baseURL string) SEOView {
	title := site.SEO.Default.Title
	description := site.SEO.Default.Description
	if override != nil {
		if override.Title != "" {
			title = override.Title
		}
		if override.Description != "" {
			description = override.Description
		}
	}
	if title == "" {
		title = domain.DefaultSiteTitle
	}

	return SEOView{
		Title:         title,
		Description:   description,
		OGTitle:       title,
		OGDescription: description,
		OGImage:       AbsoluteURL(baseURL, site.OGImage()),
	}
}

// AbsoluteURL resolves ref against baseURL. Absolute refs, and any ref when
// baseURL is empty, are returned unchanged.
func AbsoluteURL(baseURL, ref string) string {
	if ref == "" || baseURL == "" {
		return ref
	}
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
