package view

import (
	"time"

	"github.com/DukeRupert/tenebreuse/internal/domain"
	"github.com/DukeRupert/tenebreuse/internal/form"
	"github.com/DukeRupert/tenebreuse/internal/quote"
)

// QuoteOption is a service checkbox of the quote form.
type QuoteOption struct {
	ID        string
	Name      string
	PriceText string
	UnitText  string
	Checked   bool
}

// QuoteGroup is a category heading with its checkboxes.
type QuoteGroup struct {
	CategoryID string
	Label      string
	Options    []QuoteOption
}

// SummaryLine is a service line of the summary.
type SummaryLine struct {
	Name      string
	PriceText string
}

// SummaryView is the recap shown once the quote form validates. Snapshot
// is the JSON export, posted back by the export buttons.
type SummaryView struct {
	Request    *domain.QuoteRequest
	Lines      []SummaryLine
	Total      string
	Disclaimer string
	Text       string
	Snapshot   string
	Filename   string
}

type QuoteView struct {
	Hooks
	Hero    *HeroView
	Intro   *domain.Intro
	Groups  []QuoteGroup
	Values  form.QuoteInput
	Form    FormState
	Summary *SummaryView
}

// Quote builds the quote page. preselect checks the service with that id
// when the catalog has it; otherwise it is ignored. summary is nil until
// the form validates.
func Quote(page *domain.DevisPage, catalog *domain.Catalog, values form.QuoteInput, state FormState, preselect string, summary *SummaryView) (*QuoteView, error) {
	const op = "view.Quote"

	v := &QuoteView{
		Hooks:   Hooks{PostRender: []string{HookReveal}},
		Values:  values,
		Form:    state,
		Summary: summary,
	}

	if _, ok := catalog.Find(preselect); ok && preselect != "" {
		if !values.Selected(preselect) {
			v.Values.Services = append(append([]string(nil), values.Services...), preselect)
		}
		v.PostRender = append(v.PostRender, HookPreselect+preselect)
	}
	if summary != nil {
		v.PostRender = append(v.PostRender, HookScrollSummary)
	}

	for _, g := range catalog.Groups() {
		group := QuoteGroup{CategoryID: g.CategoryID, Label: g.Label}
		for _, s := range g.Services {
			group.Options = append(group.Options, QuoteOption{
				ID:        s.ID,
				Name:      s.Name,
				PriceText: s.PriceText(),
				UnitText:  s.UnitText(),
				Checked:   v.Values.Selected(s.ID),
			})
		}
		v.Groups = append(v.Groups, group)
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

// Summary builds the recap of q, with both exports ready for the page.
func Summary(q *domain.QuoteRequest, now time.Time) (*SummaryView, error) {
	snapshot, err := quote.JSON(q)
	if err != nil {
		return nil, err
	}

	lines := make([]SummaryLine, 0, len(q.Need.Services))
	for _, l := range q.Need.Services {
		lines = append(lines, SummaryLine{Name: l.Name, PriceText: l.PriceText()})
	}
	return &SummaryView{
		Request:    q,
		Lines:      lines,
		Total:      domain.FormatEuros(q.Total()),
		Disclaimer: quote.Disclaimer,
		Text:       quote.Text(q),
		Snapshot:   string(snapshot),
		Filename:   quote.Filename(q.Client.Name, now),
	}, nil
}
