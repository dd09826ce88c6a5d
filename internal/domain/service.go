package domain

import (
	"fmt"
	"sort"
)

// AllCategories is the reserved filter value that matches every service.
const AllCategories = "all"

// Service is one bookable repair or maintenance offering.
type Service struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	DescriptionLong string  `json:"descriptionLong,omitempty"`
	Category        string  `json:"category"`
	Price           float64 `json:"price"`
	PriceFrom       bool    `json:"priceFrom"`
	Unit            string  `json:"unit"`
	UnitLabel       string  `json:"unitLabel,omitempty"`
	Badge           string  `json:"badge,omitempty"`
	Note            string  `json:"note,omitempty"`
}

// LongDescription returns the detail text, falling back to the short one.
func (s Service) LongDescription() string {
	if s.DescriptionLong != "" {
		return s.DescriptionLong
	}
	return s.Description
}

// PriceText is the price as shown on cards, e.g. "À partir de 120€".
func (s Service) PriceText() string {
	return FormatPrice(s.Price, s.PriceFrom)
}

// UnitText is the unit suffix as shown on cards, e.g. "/ m² (coque)".
func (s Service) UnitText() string {
	return FormatUnit(s.Unit, s.UnitLabel)
}

type ServiceCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Catalog is the "services" document.
type Catalog struct {
	Categories []ServiceCategory `json:"categories"`
	Services   []Service         `json:"services"`
}

// ServiceGroup is a category heading with its services in catalog order.
type ServiceGroup struct {
	CategoryID string
	Label      string
	Services   []Service
}

var categoryLabels = map[string]string{
	"coque":     "Coque & Structure",
	"finition":  "Finition & Peinture",
	"entretien": "Entretien & Maintenance",
	"packs":     "Packs & Formules",
}

// Filter returns the services of one category in catalog order.
// AllCategories returns every service. An unknown category returns an empty
// slice, never nil.
func (c *Catalog) Filter(category string) []Service {
	out := make([]Service, 0, len(c.Services))
	for _, s := range c.Services {
		if category == AllCategories || s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// Find returns the service with the given id.
func (c *Catalog) Find(id string) (Service, bool) {
	for _, s := range c.Services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// HasCategory reports whether id is AllCategories or a declared category.
func (c *Catalog) HasCategory(id string) bool {
	if id == AllCategories {
		return true
	}
	for _, cat := range c.Categories {
		if cat.ID == id {
			return true
		}
	}
	return false
}

// CategoryName returns the heading used on the quote form for a category:
// the fixed label when one exists, then the declared category name, then the id.
func (c *Catalog) CategoryName(id string) string {
	if label, ok := categoryLabels[id]; ok {
		return label
	}
	for _, cat := range c.Categories {
		if cat.ID == id && cat.Name != "" {
			return cat.Name
		}
	}
	return id
}

// Groups buckets services by category, categories in order of first appearance.
func (c *Catalog) Groups() []ServiceGroup {
	index := make(map[string]int)
	var groups []ServiceGroup
	for _, s := range c.Services {
		i, ok := index[s.Category]
		if !ok {
			i = len(groups)
			index[s.Category] = i
			groups = append(groups, ServiceGroup{
				CategoryID: s.Category,
				Label:      c.CategoryName(s.Category),
			})
		}
		groups[i].Services = append(groups[i].Services, s)
	}
	return groups
}

// Problems lists catalog inconsistencies: duplicate ids, negative prices and
// services pointing at undeclared categories.
func (c *Catalog) Problems() []string {
	var out []string
	seen := make(map[string]bool)
	for _, cat := range c.Categories {
		if cat.ID == AllCategories {
			out = append(out, fmt.Sprintf("services: category id %q is reserved", cat.ID))
		}
	}
	for _, s := range c.Services {
		if s.ID == "" {
			out = append(out, fmt.Sprintf("services: %q has no id", s.Name))
			continue
		}
		if seen[s.ID] {
			out = append(out, fmt.Sprintf("services: duplicate id %q", s.ID))
		}
		seen[s.ID] = true
		if s.Price < 0 {
			out = append(out, fmt.Sprintf("services: %q has a negative price", s.ID))
		}
		if s.Category == AllCategories || !c.HasCategory(s.Category) {
			out = append(out, fmt.Sprintf("services: %q uses undeclared category %q", s.ID, s.Category))
		}
	}
	sort.Strings(out)
	return out
}
