package domain

import "time"

// QuoteRequest is the snapshot built from a submitted quote form.
// Service lines copy name and price at submission time, so later catalog
// edits never change an existing request. JSON keys follow the exported
// file format.
type QuoteRequest struct {
	Reference string        `json:"reference"`
	Date      time.Time     `json:"date"`
	Client    QuoteClient   `json:"client"`
	Boat      QuoteBoat     `json:"bateau"`
	Need      QuoteNeed     `json:"besoin"`
	Location  QuoteLocation `json:"localisation"`
	Other     QuoteOther    `json:"autres"`
	// TotalEstimate mirrors Total() so both export formats carry the same figure.
	TotalEstimate float64 `json:"totalEstime"`
}

type QuoteClient struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// QuoteBoat keeps length and year as typed so the snapshot echoes the form.
type QuoteBoat struct {
	Type     string `json:"type"`
	Length   string `json:"longueur"`
	Material string `json:"materiau"`
	Year     string `json:"annee"`
}

type QuoteNeed struct {
	Services    []QuoteLine `json:"services"`
	Description string      `json:"description"`
	Urgency     string      `json:"urgence"`
}

// QuoteLine is a service as it was priced when the request was made.
type QuoteLine struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	PriceFrom bool    `json:"priceFrom"`
	Unit      string  `json:"unit"`
}

type QuoteLocation struct {
	City string `json:"ville"`
	Port string `json:"port"`
}

type QuoteOther struct {
	Photos  string `json:"photos"`
	Consent bool   `json:"rgpd"`
}

const BoatTypeSailboat = "voilier"

var urgencyLabels = map[string]string{
	"faible":  "Faible",
	"moyenne": "Moyenne",
	"forte":   "Forte",
}

// Total sums every line price. Floor prices count at their floor, so the
// figure is indicative only.
func (q *QuoteRequest) Total() float64 {
	var total float64
	for _, l := range q.Need.Services {
		total += l.Price
	}
	return total
}

// BoatTypeLabel is "Voilier" for sailboats and "Bateau à moteur" otherwise.
func (q *QuoteRequest) BoatTypeLabel() string {
	if q.Boat.Type == BoatTypeSailboat {
		return "Voilier"
	}
	return "Bateau à moteur"
}

// UrgencyLabel returns the display label, or the raw value when unknown.
func (q *QuoteRequest) UrgencyLabel() string {
	return UrgencyLabel(q.Need.Urgency)
}

func UrgencyLabel(u string) string {
	if label, ok := urgencyLabels[u]; ok {
		return label
	}
	return u
}

// HasLocation reports whether a city or a port was given.
func (q *QuoteRequest) HasLocation() bool {
	return q.Location.City != "" || q.Location.Port != ""
}

// PriceText renders the line as "<price> / <unit>", unit defaulting to forfait.
func (l QuoteLine) PriceText() string {
	unit := l.Unit
	if unit == "" {
		unit = UnitFlatRate
	}
	return FormatPrice(l.Price, l.PriceFrom) + " / " + unit
}
