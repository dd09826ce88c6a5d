package view

import (
	"github.com/DukeRupert/tenebreuse/internal/domain"
	"github.com/DukeRupert/tenebreuse/internal/form"
)

type ContactView struct {
	Hooks
	Hero  *HeroView
	Intro *domain.Intro
	// Info is the contact card, taken from the site footer.
	Info   domain.ContactInfo
	FAQ    []domain.FAQItem
	Values form.ContactInput
	Form   FormState
}

// Contact builds the contact page. page and faq may be nil. The form is
// always present, with the values and state of the last submission.
func Contact(site *domain.SiteConfig, page *domain.ContactPage, faq *domain.FAQ, values form.ContactInput, state FormState) (*ContactView, error) {
	const op = "view.Contact"

	v := &ContactView{
		Hooks:  Hooks{PostRender: []string{HookReveal}},
		Values: values,
		Form:   state,
	}
	if site != nil {
		v.Info = site.Footer.Contact
	}
	if faq != nil {
		v.FAQ = faq.Items
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
