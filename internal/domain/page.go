package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// PageContent is the "pages" document, one optional block per page.
// A nil block means the page has no content and renders chrome only.
type PageContent struct {
	Home     *HomePage     `json:"home,omitempty"`
	About    *AboutPage    `json:"about,omitempty"`
	Contact  *ContactPage  `json:"contact,omitempty"`
	Services *ServicesPage `json:"services,omitempty"`
	Devis    *DevisPage    `json:"devis,omitempty"`
}

// Hero is the top banner every page starts with.
type Hero struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	CTA      *HeroCTA `json:"cta,omitempty"`
}

type HeroCTA struct {
	Primary   *Link `json:"primary,omitempty"`
	Secondary *Link `json:"secondary,omitempty"`
}

// Card is an icon/title/description tile.
type Card struct {
	Icon        string `json:"icon,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CardSection is a titled grid of cards.
type CardSection struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Items    []Card `json:"items"`
}

type BeforeAfter struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
}

type HomePage struct {
	SEO         *SEOMeta     `json:"seo,omitempty"`
	Hero        *Hero        `json:"hero,omitempty"`
	Expertises  *CardSection `json:"expertises,omitempty"`
	BeforeAfter *BeforeAfter `json:"beforeAfter,omitempty"`
	WhyUs       *CardSection `json:"whyUs,omitempty"`
}

// Story content is free text; blank lines separate paragraphs.
type Story struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Method struct {
	Title string `json:"title"`
	Steps []Step `json:"steps"`
}

type Step struct {
	Number      StepNumber `json:"number"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
}

// StepNumber accepts either a JSON number or a string.
type StepNumber string

func (n *StepNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = StepNumber(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = StepNumber(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

type AboutPage struct {
	SEO    *SEOMeta     `json:"seo,omitempty"`
	Hero   *Hero        `json:"hero,omitempty"`
	Story  *Story       `json:"story,omitempty"`
	Values *CardSection `json:"values,omitempty"`
	Method *Method      `json:"method,omitempty"`
}

// Intro is a short paragraph under the hero. Warning is only used on the
// services page.
type Intro struct {
	Text    string `json:"text"`
	Warning string `json:"warning,omitempty"`
}

type ContactPage struct {
	SEO   *SEOMeta `json:"seo,omitempty"`
	Hero  *Hero    `json:"hero,omitempty"`
	Intro *Intro   `json:"intro,omitempty"`
}

type ServicesPage struct {
	SEO   *SEOMeta `json:"seo,omitempty"`
	Hero  *Hero    `json:"hero,omitempty"`
	Intro *Intro   `json:"intro,omitempty"`
}

type DevisPage struct {
	SEO   *SEOMeta `json:"seo,omitempty"`
	Hero  *Hero    `json:"hero,omitempty"`
	Intro *Intro   `json:"intro,omitempty"`
}
