package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *Catalog {
	return &Catalog{
		Categories: []ServiceCategory{
			{ID: "coque", Name: "Coque", Icon: "🛥️"},
			{ID: "finition", Name: "Finition", Icon: "🎨"},
			{ID: "entretien", Name: "Entretien", Icon: "🔧"},
		},
		Services: []Service{
			{ID: "osmose", Name: "Traitement osmose", Category: "coque", Price: 1200, PriceFrom: true, Unit: "forfait"},
			{ID: "vernis", Name: "Vernissage", Category: "finition", Price: 45, Unit: "m²"},
			{ID: "gelcoat", Name: "Réparation gelcoat", Category: "coque", Price: 80, Unit: "heure"},
			{ID: "hivernage", Name: "Hivernage", Category: "entretien", Price: 350, Unit: "forfait", UnitLabel: "jusqu'à 8m"},
		},
	}
}

func TestCatalog_Filter(t *testing.T) {
	c := testCatalog()

	tests := []struct {
		name     string
		category string
		wantIDs  []string
	}{
		{"all keeps catalog order", AllCategories, []string{"osmose", "vernis", "gelcoat", "hivernage"}},
		{"single category keeps relative order", "coque", []string{"osmose", "gelcoat"}},
		{"category with one service", "finition", []string{"vernis"}},
		{"unknown category", "voilerie", []string{}},
		{"empty category", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Filter(tt.category)
			require.NotNil(t, got)
			ids := make([]string, 0, len(got))
			for _, s := range got {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestCatalog_Filter_DoesNotAliasCatalog(t *testing.T) {
	c := testCatalog()
	got := c.Filter(AllCategories)
	got[0].Name = "changed"
	assert.Equal(t, "Traitement osmose", c.Services[0].Name)
}

func TestCatalog_CategoryName(t *testing.T) {
	c := testCatalog()
	c.Categories = append(c.Categories, ServiceCategory{ID: "voiles", Name: "Voilerie"})

	assert.Equal(t, "Coque & Structure", c.CategoryName("coque"))
	assert.Equal(t, "Packs & Formules", c.CategoryName("packs"))
	assert.Equal(t, "Voilerie", c.CategoryName("voiles"))
	assert.Equal(t, "inconnue", c.CategoryName("inconnue"))
}

func TestCatalog_Groups(t *testing.T) {
	groups := testCatalog().Groups()

	require.Len(t, groups, 3)
	assert.Equal(t, "coque", groups[0].CategoryID)
	assert.Equal(t, "Coque & Structure", groups[0].Label)
	assert.Len(t, groups[0].Services, 2)
	assert.Equal(t, "finition", groups[1].CategoryID)
	assert.Equal(t, "entretien", groups[2].CategoryID)
}

func TestCatalog_HasCategory(t *testing.T) {
	c := testCatalog()

	assert.True(t, c.HasCategory("finition"))
	assert.True(t, c.HasCategory(AllCategories))
	assert.False(t, c.HasCategory("moteur"))
	assert.False(t, c.HasCategory(""))
}

func TestCatalog_Problems_ServiceInAllCategory(t *testing.T) {
	c := testCatalog()
	c.Services = append(c.Services, Service{ID: "partout", Name: "Partout", Category: AllCategories})

	assert.Equal(t, []string{`services: "partout" uses undeclared category "all"`}, c.Problems())
}

func TestCatalog_Find(t *testing.T) {
	c := testCatalog()

	s, ok := c.Find("vernis")
	assert.True(t, ok)
	assert.Equal(t, "Vernissage", s.Name)

	_, ok = c.Find("missing")
	assert.False(t, ok)
}

func TestCatalog_Problems(t *testing.T) {
	c := testCatalog()
	assert.Empty(t, c.Problems())

	c.Services = append(c.Services,
		Service{ID: "vernis", Name: "Doublon", Category: "finition"},
		Service{ID: "negatif", Category: "coque", Price: -1},
		Service{ID: "orphelin", Category: "moteur"},
	)
	problems := c.Problems()
	assert.Len(t, problems, 3)
	assert.Contains(t, problems, `services: duplicate id "vernis"`)
	assert.Contains(t, problems, `services: "negatif" has a negative price`)
	assert.Contains(t, problems, `services: "orphelin" uses undeclared category "moteur"`)
}

func TestService_LongDescription(t *testing.T) {
	s := Service{Description: "court"}
	assert.Equal(t, "court", s.LongDescription())
	s.DescriptionLong = "long"
	assert.Equal(t, "long", s.LongDescription())
}
