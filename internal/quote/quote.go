// Package quote turns a validated quote form into a QuoteRequest snapshot
// and exports it as plain text or JSON.
package quote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DukeRupert/tenebreuse/internal/domain"
	"github.com/DukeRupert/tenebreuse/internal/form"
)

// Disclaimers printed under the on-page summary and the text export.
const (
	Disclaimer     = "⚠️ Total indicatif. Un devis précis sera établi après diagnostic sur place."
	TextDisclaimer = "⚠️ Total indicatif. Un devis précis sera établi après diagnostic."
)

// Export formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Summarize builds the snapshot for a validated form. Each selected id is
// resolved against the catalog at this moment; an id the catalog doesn't
// know keeps the id as its name, a zero price and no unit. now is used for
// the date, truncated to milliseconds in UTC.
func Summarize(in form.QuoteInput, catalog *domain.Catalog, now time.Time) *domain.QuoteRequest {
	lines := make([]domain.QuoteLine, 0, len(in.Services))
	for _, id := range in.Services {
		line := domain.QuoteLine{ID: id, Name: id}
		if s, ok := catalog.Find(id); ok {
			line.Name = s.Name
			line.Price = s.Price
			line.PriceFrom = s.PriceFrom
			line.Unit = s.Unit
		}
		lines = append(lines, line)
	}

	q := &domain.QuoteRequest{
		Reference: uuid.NewString(),
		Date:      now.UTC().Truncate(time.Millisecond),
		Client: domain.QuoteClient{
			Name:  in.Name,
			Email: in.Email,
			Phone: in.Phone,
		},
		Boat: domain.QuoteBoat{
			Type:     in.BoatType,
			Length:   in.BoatLength,
			Material: in.BoatMaterial,
			Year:     in.BoatYear,
		},
		Need: domain.QuoteNeed{
			Services:    lines,
			Description: in.Description,
			Urgency:     in.Urgency,
		},
		Location: domain.QuoteLocation{
			City: in.City,
			Port: in.Port,
		},
		Other: domain.QuoteOther{
			Photos:  in.Photos,
			Consent: in.Consent,
		},
	}
	q.TotalEstimate = q.Total()
	return q
}

// Text renders the request for the clipboard.
func Text(q *domain.QuoteRequest) string {
	var b strings.Builder
	rule := strings.Repeat("-", 30)

	b.WriteString("DEMANDE DE DEVIS - La Pêche Ténébreuse\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	fmt.Fprintf(&b, "Date: %s\n\n", FrenchDate(q.Date))

	b.WriteString("INFORMATIONS CLIENT\n" + rule + "\n")
	fmt.Fprintf(&b, "Nom: %s\n", q.Client.Name)
	fmt.Fprintf(&b, "Email: %s\n", q.Client.Email)
	fmt.Fprintf(&b, "Téléphone: %s\n\n", q.Client.Phone)

	b.WriteString("INFORMATIONS BATEAU\n" + rule + "\n")
	fmt.Fprintf(&b, "Type: %s\n", q.BoatTypeLabel())
	fmt.Fprintf(&b, "Longueur: %s m\n", q.Boat.Length)
	if q.Boat.Material != "" {
		fmt.Fprintf(&b, "Matériau: %s\n", q.Boat.Material)
	}
	if q.Boat.Year != "" {
		fmt.Fprintf(&b, "Année: %s\n", q.Boat.Year)
	}
	b.WriteString("\n")

	b.WriteString("SERVICES DEMANDÉS\n" + rule + "\n")
	for _, l := range q.Need.Services {
		fmt.Fprintf(&b, "- %s: %s\n", l.Name, l.PriceText())
	}
	fmt.Fprintf(&b, "Total estimé: %s\n", domain.FormatEuros(q.Total()))
	if q.Need.Description != "" {
		fmt.Fprintf(&b, "\nDescription: %s\n", q.Need.Description)
	}
	fmt.Fprintf(&b, "Urgence: %s\n\n", q.UrgencyLabel())

	if q.HasLocation() {
		b.WriteString("LOCALISATION\n" + rule + "\n")
		if q.Location.City != "" {
			fmt.Fprintf(&b, "Ville: %s\n", q.Location.City)
		}
		if q.Location.Port != "" {
			fmt.Fprintf(&b, "Port: %s\n", q.Location.Port)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + TextDisclaimer + "\n")
	return b.String()
}

// JSON renders the snapshot with two-space indentation.
func JSON(q *domain.QuoteRequest) ([]byte, error) {
	out := *q
	out.TotalEstimate = q.Total()
	if out.Need.Services == nil {
		out.Need.Services = []domain.QuoteLine{}
	}
	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return nil, &domain.ExportError{Format: FormatJSON, Err: err}
	}
	return data, nil
}

// ParseJSON reads a snapshot produced by JSON.
func ParseJSON(data []byte) (*domain.QuoteRequest, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var q domain.QuoteRequest
	if err := dec.Decode(&q); err != nil {
		return nil, &domain.ExportError{Format: FormatJSON, Err: err}
	}
	if q.Client.Name == "" {
		return nil, &domain.ExportError{Format: FormatJSON, Err: fmt.Errorf("snapshot has no client name")}
	}
	return &q, nil
}

// whitespace matches what browsers treat as white space, including no-break
// and other Unicode spaces.
var whitespace = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)

// Filename is the download name: devis-<name>-<YYYY-MM-DD>.json, with each
// run of whitespace in the client name replaced by a hyphen. The date is
// the export day in UTC.
func Filename(clientName string, now time.Time) string {
	name := whitespace.ReplaceAllString(clientName, "-")
	return fmt.Sprintf("devis-%s-%s.json", name, now.UTC().Format("2006-01-02"))
}

// TextFilename is the download name of a text export.
func TextFilename(clientName string, now time.Time) string {
	return strings.TrimSuffix(Filename(clientName, now), ".json") + ".txt"
}

// FrenchDate formats t as dd/mm/yyyy in Paris time.
func FrenchDate(t time.Time) string {
	return t.In(paris).Format("02/01/2006")
}
