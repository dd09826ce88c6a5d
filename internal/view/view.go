// Package view maps loaded documents to the data each page template needs.
//
// Builders are pure: the same documents give the same view. A nil section
// in the documents gives a nil section in the view, and the template skips
// its mount point. A section that is present but lacks its title is an
// authoring error and returns an EINTERNAL error.
package view

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/DukeRupert/tenebreuse/internal/domain"
)

// Client hooks run by site.js once a page or fragment is in the document.
const (
	HookReveal        = "reveal"
	HookPreselect     = "preselect:"
	HookScrollSummary = "scroll:devis-summary"
)

// Hooks lists the client hooks to run after a view is rendered.
type Hooks struct {
	PostRender []string
}

// HookAttr is the value of the data-post-render attribute.
func (h Hooks) HookAttr() string {
	return strings.Join(h.PostRender, " ")
}

// Page is what every full-page template receives.
type Page struct {
	Chrome    Chrome
	Route     domain.Route
	CSRFToken string
	Content   any
}

// HeroView is the banner at the top of each page.
type HeroView struct {
	Title     string
	Subtitle  string
	Primary   *domain.Link
	Secondary *domain.Link
}

// CardSectionView is a titled grid of cards.
type CardSectionView struct {
	Title    string
	Subtitle string
	Items    []domain.Card
}

func buildHero(op string, h *domain.Hero) (*HeroView, error) {
	if h == nil {
		return nil, nil
	}
	if strings.TrimSpace(h.Title) == "" {
		return nil, missing(op, "hero.title")
	}
	v := &HeroView{Title: h.Title, Subtitle: h.Subtitle}
	if h.CTA != nil {
		v.Primary = h.CTA.Primary
		v.Secondary = h.CTA.Secondary
	}
	return v, nil
}

func buildCards(op, section string, s *domain.CardSection) (*CardSectionView, error) {
	if s == nil {
		return nil, nil
	}
	if strings.TrimSpace(s.Title) == "" {
		return nil, missing(op, section+".title")
	}
	return &CardSectionView{Title: s.Title, Subtitle: s.Subtitle, Items: s.Items}, nil
}

func missing(op, field string) error {
	return domain.Errorf(domain.EINTERNAL, op, "required field %s is missing", field)
}

var md = goldmark.New()

// Markdown renders author text to HTML. Raw HTML in the source is not
// passed through.
func Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// Paragraphs splits text on blank lines, dropping empty paragraphs.
func Paragraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
