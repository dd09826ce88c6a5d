// Package sitebuild validates the site documents and exports the site as
// static files.
package sitebuild

import (
	"context"
	"fmt"
	"sort"

	"github.com/DukeRupert/tenebreuse/internal/content"
	"github.com/DukeRupert/tenebreuse/internal/domain"
	"github.com/DukeRupert/tenebreuse/internal/form"
	"github.com/DukeRupert/tenebreuse/internal/view"
)

// Check loads every document and lists what would break rendering: load
// failures, inconsistent site and catalog data, and page sections missing
// their title. An empty result means the documents are publishable.
func Check(ctx context.Context, loader *content.Loader) []string {
	b, err := loader.Load(ctx, content.Names()...)

	var problems []string
	for _, le := range domain.LoadErrors(err) {
		problems = append(problems, fmt.Sprintf("%s: cannot load (status %d): %v", le.Document, le.Status, le.Err))
	}
	if b.Site != nil {
		problems = append(problems, b.Site.Problems()...)
	}
	if b.Services != nil {
		problems = append(problems, b.Services.Problems()...)
	}
	if b.Site != nil && b.Pages != nil {
		problems = append(problems, pageProblems(b)...)
	}

	sort.Strings(problems)
	return problems
}

func pageProblems(b *content.Bundle) []string {
	pages := b.Pages
	catalog := b.Catalog()

	builds := []struct {
		page  string
		build func() error
	}{
		{"home", func() error { _, err := view.Home(b.Site, pages.Home); return err }},
		{"about", func() error { _, err := view.About(pages.About); return err }},
		{"contact", func() error {
			_, err := view.Contact(b.Site, pages.Contact, b.FAQ, form.ContactInput{}, view.FormState{})
			return err
		}},
		{"services", func() error { _, err := view.Services(pages.Services, catalog, "", ""); return err }},
		{"devis", func() error {
			_, err := view.Quote(pages.Devis, catalog, form.QuoteInput{}, view.FormState{}, "", nil)
			return err
		}},
	}

	var out []string
	for _, pb := range builds {
		if err := pb.build(); err != nil {
			out = append(out, fmt.Sprintf("pages.%s: %v", pb.page, err))
		}
	}
	return out
}
