package view

import (
	"strings"

	"github.com/DukeRupert/tenebreuse/internal/domain"
)

// Gallery labels of the before/after section.
var galleryLabels = []string{"Avant", "Après"}

type BeforeAfterView struct {
	Title       string
	Subtitle    string
	Description string
	Gallery     []string
}

// StatView is one tile of the stats block.
type StatView struct {
	Value string
	Label string
}

type HomeView struct {
	Hooks
	Hero        *HeroView
	Expertises  *CardSectionView
	BeforeAfter *BeforeAfterView
	WhyUs       *CardSectionView
	// Stats are shown under the why-us cards.
	Stats []StatView
}

// Home builds the home page. page may be nil.
func Home(site *domain.SiteConfig, page *domain.HomePage) (*HomeView, error) {
	const op = "view.Home"

	v := &HomeView{Hooks: Hooks{PostRender: []string{HookReveal}}}
	if page == nil {
		return v, nil
	}

	var err error
	if v.Hero, err = buildHero(op, page.Hero); err != nil {
		return nil, err
	}
	if v.Expertises, err = buildCards(op, "expertises", page.Expertises); err != nil {
		return nil, err
	}
	if v.WhyUs, err = buildCards(op, "whyUs", page.WhyUs); err != nil {
		return nil, err
	}
	if ba := page.BeforeAfter; ba != nil {
		if strings.TrimSpace(ba.Title) == "" {
			return nil, missing(op, "beforeAfter.title")
		}
		v.BeforeAfter = &BeforeAfterView{
			Title:       ba.Title,
			Subtitle:    ba.Subtitle,
			Description: ba.Description,
			Gallery:     galleryLabels,
		}
	}
	if v.WhyUs != nil && site != nil && site.Stats != nil {
		v.Stats = buildStats(site.Stats)
	}
	return v, nil
}

func buildStats(s *domain.Stats) []StatView {
	return []StatView{
		{Value: "10+", Label: s.Experience},
		{Value: "📍", Label: s.Interventions},
		{Value: "100%", Label: s.Satisfaction},
		{Value: "⚡", Label: s.Reactive},
	}
}
