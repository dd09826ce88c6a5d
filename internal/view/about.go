package view

import (
	"html/template"
	"strings"

	"github.com/DukeRupert/tenebreuse/internal/domain"
)

type StoryView struct {
	Title      string
	Paragraphs []template.HTML
}

type MethodView struct {
	Title string
	Steps []domain.Step
}

type AboutView struct {
	Hooks
	Hero   *HeroView
	Story  *StoryView
	Values *CardSectionView
	Method *MethodView
}

// About builds the about page. Story paragraphs are separated by blank
// lines and may use inline Markdown.
func About(page *domain.AboutPage) (*AboutView, error) {
	const op = "view.About"

	v := &AboutView{Hooks: Hooks{PostRender: []string{HookReveal}}}
	if page == nil {
		return v, nil
	}

	var err error
	if v.Hero, err = buildHero(op, page.Hero); err != nil {
		return nil, err
	}
	if v.Values, err = buildCards(op, "values", page.Values); err != nil {
		return nil, err
	}
	if s := page.Story; s != nil {
		if strings.TrimSpace(s.Title) == "" {
			return nil, missing(op, "story.title")
		}
		story := &StoryView{Title: s.Title}
		for _, p := range Paragraphs(s.Content) {
			story.Paragraphs = append(story.Paragraphs, Markdown(p))
		}
		v.Story = story
	}
	if m := page.Method; m != nil {
		if strings.TrimSpace(m.Title) == "" {
			return nil, missing(op, "method.title")
		}
		v.Method = &MethodView{Title: m.Title, Steps: m.Steps}
	}
	return v, nil
}
