package form

import (
	"net/url"
	"strings"

	"github.com/DukeRupert/tenebreuse/internal/domain"
)

// Form identifiers, used in URLs and metrics labels.
const (
	ContactForm = "contact"
	QuoteForm   = "devis"
)

// Banner targets: the element a form-level message is shown above.
const (
	TargetContactForm    = "contact-form"
	TargetQuoteForm      = "devis-form"
	TargetServicesSelect = "services-select"
)

// fieldRules are the per-field rules shared by blur and submit validation.
var fieldRules = map[string]map[string][]Rule{
	ContactForm: {
		"name":    {Required},
		"email":   {Required, Email},
		"phone":   {Phone},
		"message": {Required},
	},
	QuoteForm: {
		"name":        {Required},
		"email":       {Required, Email},
		"phone":       {Required, Phone},
		"boat-type":   {Required},
		"boat-length": {Required, BoatLength},
	},
}

// FieldRules returns the rules for one field of a form. ok is false for an
// unknown form; a known form's free-text fields have no rules.
func FieldRules(formName, field string) (rules []Rule, ok bool) {
	fields, ok := fieldRules[formName]
	if !ok {
		return nil, false
	}
	return fields[field], true
}

// ContactInput is a submitted contact form.
type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// ParseContact reads the contact form fields, trimming whitespace.
func ParseContact(v url.Values) ContactInput {
	return ContactInput{
		Name:    value(v, "name"),
		Email:   value(v, "email"),
		Phone:   value(v, "phone"),
		Message: value(v, "message"),
	}
}

func (in ContactInput) values() map[string]string {
	return map[string]string{
		"name":    in.Name,
		"email":   in.Email,
		"phone":   in.Phone,
		"message": in.Message,
	}
}

// ValidateContact returns nil when the form can be sent.
func ValidateContact(in ContactInput) *domain.ValidationError {
	ve := &domain.ValidationError{Op: "contact.validate", Fields: map[string]string{}}
	checkFields(ve, ContactForm, in.values())
	if !ve.HasErrors() {
		return nil
	}
	return ve
}

// QuoteInput is a submitted quote form. Field names in comments are the
// HTML input names.
type QuoteInput struct {
	Name         string   // name
	Email        string   // email
	Phone        string   // phone
	BoatType     string   // boat-type
	BoatLength   string   // boat-length
	BoatMaterial string   // boat-material
	BoatYear     string   // boat-year
	Services     []string // services (checkboxes)
	Description  string   // description
	Urgency      string   // urgence
	City         string   // location-ville
	Port         string   // location-port
	Photos       string   // photos-links
	Consent      bool     // rgpd
}

// ParseQuote reads the quote form fields. Repeated and blank service ids
// are dropped, keeping the first occurrence order.
func ParseQuote(v url.Values) QuoteInput {
	in := QuoteInput{
		Name:         value(v, "name"),
		Email:        value(v, "email"),
		Phone:        value(v, "phone"),
		BoatType:     value(v, "boat-type"),
		BoatLength:   value(v, "boat-length"),
		BoatMaterial: value(v, "boat-material"),
		BoatYear:     value(v, "boat-year"),
		Description:  value(v, "description"),
		Urgency:      value(v, "urgence"),
		City:         value(v, "location-ville"),
		Port:         value(v, "location-port"),
		Photos:       value(v, "photos-links"),
		Consent:      v.Get("rgpd") == "on",
	}

	seen := make(map[string]bool)
	for _, id := range v["services"] {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		in.Services = append(in.Services, id)
	}
	return in
}

// Selected reports whether a service id was checked.
func (in QuoteInput) Selected(id string) bool {
	for _, s := range in.Services {
		if s == id {
			return true
		}
	}
	return false
}

func (in QuoteInput) values() map[string]string {
	return map[string]string{
		"name":        in.Name,
		"email":       in.Email,
		"phone":       in.Phone,
		"boat-type":   in.BoatType,
		"boat-length": in.BoatLength,
	}
}

// ValidateQuote returns nil when a summary can be built. Besides the field
// rules it requires at least one service and the data-processing consent.
func ValidateQuote(in QuoteInput) *domain.ValidationError {
	ve := &domain.ValidationError{Op: "quote.validate", Fields: map[string]string{}}
	checkFields(ve, QuoteForm, in.values())
	if len(in.Services) == 0 {
		ve.AddBanner(TargetServicesSelect, MsgNoService)
	}
	if !in.Consent {
		ve.AddBanner(TargetQuoteForm, MsgConsent)
	}
	if !ve.HasErrors() {
		return nil
	}
	return ve
}

func checkFields(ve *domain.ValidationError, formName string, values map[string]string) {
	for field, rules := range fieldRules[formName] {
		if msg := Check(values[field], rules...); msg != "" {
			domain.AddFieldError(ve, field, msg)
		}
	}
}

func value(v url.Values, key string) string {
	return strings.TrimSpace(v.Get(key))
}
