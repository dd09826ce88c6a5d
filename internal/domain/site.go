package domain

import (
	"fmt"
	"strings"
)

// DefaultSiteTitle is used when neither the page nor the site sets a title.
const DefaultSiteTitle = "La Pêche Ténébreuse"

// SiteConfig is the site-wide document: branding, navigation, footer and SEO.
type SiteConfig struct {
	Branding   Branding   `json:"branding"`
	Navigation Navigation `json:"navigation"`
	Footer     Footer     `json:"footer"`
	SEO        SEO        `json:"seo"`
	Stats      *Stats     `json:"stats,omitempty"`
}

type Branding struct {
	Name string `json:"name"`
	Logo Logo   `json:"logo"`
}

type Logo struct {
	Text string `json:"text"`
}

// Link is a labelled href as written in the documents.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type Navigation struct {
	Links []Link `json:"links"`
	CTA   Link   `json:"cta"`
}

type Footer struct {
	Description string      `json:"description"`
	Contact     ContactInfo `json:"contact"`
	Links       []Link      `json:"links"`
	Copyright   string      `json:"copyright"`
}

// ContactInfo is shared by the footer and the contact page card.
type ContactInfo struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
	Zone  string `json:"zone"`
	Hours string `json:"horaires"`
}

type SEO struct {
	Default SEOMeta    `json:"default"`
	OG      *OpenGraph `json:"og,omitempty"`
}

// SEOMeta holds a title/description pair. Pages may carry one as an override.
type SEOMeta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type OpenGraph struct {
	Image string `json:"image"`
}

// Stats are the labels of the fixed four-value stats block on the home page.
type Stats struct {
	Experience    string `json:"experience"`
	Interventions string `json:"interventions"`
	Satisfaction  string `json:"satisfaction"`
	Reactive      string `json:"reactive"`
}

// LogoText returns the logo text, falling back to the brand name.
func (s *SiteConfig) LogoText() string {
	if strings.TrimSpace(s.Branding.Logo.Text) != "" {
		return s.Branding.Logo.Text
	}
	return s.Branding.Name
}

// OGImage returns the configured Open Graph image path, or "".
func (s *SiteConfig) OGImage() string {
	if s.SEO.OG == nil {
		return ""
	}
	return s.SEO.OG.Image
}

// Problems lists structural issues an operator should fix in the document.
func (s *SiteConfig) Problems() []string {
	var out []string
	if strings.TrimSpace(s.Branding.Name) == "" {
		out = append(out, "site: branding.name is empty")
	}
	for i, l := range s.Navigation.Links {
		if l.Href == "" || l.Label == "" {
			out = append(out, fmt.Sprintf("site: navigation.links[%d] needs label and href", i))
		}
	}
	if s.Navigation.CTA.Href == "" {
		out = append(out, "site: navigation.cta.href is empty")
	}
	return out
}
