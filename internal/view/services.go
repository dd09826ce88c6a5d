package view

import (
	"html/template"
	"net/url"

	"github.com/DukeRupert/tenebreuse/internal/domain"
)

// EmptyServicesMessage replaces the grid when a filter matches nothing.
const EmptyServicesMessage = "Aucun service trouvé dans cette catégorie."

// FilterView is one category button. The first one is always "Tous".
type FilterView struct {
	ID     string
	Label  string
	Icon   string
	Href   string
	Active bool
}

// ServiceCard is a service as listed on the services page and in the
// quote form.
type ServiceCard struct {
	ID          string
	Name        string
	Description string
	PriceText   string
	UnitText    string
	Badge       string
	Note        string
	DetailHref  string
	QuoteHref   string
}

// ServiceDetail is the open detail panel.
type ServiceDetail struct {
	ServiceCard
	Long      template.HTML
	CloseHref string
}

// ServicesGrid is the part of the page replaced when the filter changes.
type ServicesGrid struct {
	Hooks
	Category string
	Cards    []ServiceCard
	Empty    string
}

type ServicesView struct {
	Hooks
	Hero    *HeroView
	Intro   *domain.Intro
	Filters []FilterView
	Grid    ServicesGrid
	Detail  *ServiceDetail
}

// Services builds the services page filtered on category ("" or
// domain.AllCategories for every service). detailID opens the detail panel
// of that service; an unknown id leaves it closed.
func Services(page *domain.ServicesPage, catalog *domain.Catalog, category, detailID string) (*ServicesView, error) {
	const op = "view.Services"

	if category == "" {
		category = domain.AllCategories
	}

	v := &ServicesView{
		Hooks:   Hooks{PostRender: []string{HookReveal}},
		Filters: buildFilters(catalog, category),
		Grid:    BuildGrid(catalog, category),
	}
	if s, ok := catalog.Find(detailID); ok && detailID != "" {
		v.Detail = &ServiceDetail{
			ServiceCard: card(s, category),
			Long:        Markdown(s.LongDescription()),
			CloseHref:   servicesHref(category, ""),
		}
	}
	if page == nil {
		return v, nil
	}

	var err error
	if v.Hero, err = buildHero(op, page.Hero); err != nil {
		return nil, err
	}
	v.Intro = page.Intro
	return v, nil
}

// BuildGrid lists the services of one category in catalog order.
func BuildGrid(catalog *domain.Catalog, category string) ServicesGrid {
	if category == "" {
		category = domain.AllCategories
	}
	g := ServicesGrid{
		Hooks:    Hooks{PostRender: []string{HookReveal}},
		Category: category,
	}
	for _, s := range catalog.Filter(category) {
		g.Cards = append(g.Cards, card(s, category))
	}
	if len(g.Cards) == 0 {
		g.Empty = EmptyServicesMessage
	}
	return g
}

func buildFilters(catalog *domain.Catalog, active string) []FilterView {
	filters := []FilterView{{
		ID:     domain.AllCategories,
		Label:  "Tous",
		Href:   servicesHref(domain.AllCategories, ""),
		Active: active == domain.AllCategories,
	}}
	for _, c := range catalog.Categories {
		filters = append(filters, FilterView{
			ID:     c.ID,
			Label:  c.Name,
			Icon:   c.Icon,
			Href:   servicesHref(c.ID, ""),
			Active: active == c.ID,
		})
	}
	return filters
}

func card(s domain.Service, category string) ServiceCard {
	return ServiceCard{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		PriceText:   s.PriceText(),
		UnitText:    s.UnitText(),
		Badge:       s.Badge,
		Note:        s.Note,
		DetailHref:  servicesHref(category, s.ID),
		QuoteHref:   QuoteHref(s.ID),
	}
}

// QuoteHref links to the quote form with the service preselected.
func QuoteHref(serviceID string) string {
	return domain.RouteQuote.File() + "?" + url.Values{"service": {serviceID}}.Encode()
}

func servicesHref(category, detail string) string {
	q := url.Values{}
	if category != "" && category != domain.AllCategories {
		q.Set("category", category)
	}
	if detail != "" {
		q.Set("detail", detail)
	}
	if len(q) == 0 {
		return domain.RouteServices.File()
	}
	return domain.RouteServices.File() + "?" + q.Encode()
}
