// Package form validates the contact and quote forms.
//
// Validation runs in two places: per field when an input loses focus, and
// for the whole form on submit. Both use the same rules, so a field that
// passed on blur never fails on submit for a different reason.
package form

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Messages shown next to invalid fields.
const (
	MsgRequired       = "Ce champ est obligatoire"
	MsgEmail          = "Veuillez entrer une adresse email valide"
	MsgPhone          = "Veuillez entrer un numéro de téléphone valide"
	MsgBoatLength     = "Veuillez entrer une longueur valide (0-100m)"
	MsgNoService      = "Veuillez sélectionner au moins un service"
	MsgConsent        = "Vous devez accepter le traitement de vos données personnelles"
	MsgContactSuccess = "Merci pour votre message ! Nous vous répondrons dans les plus brefs délais."
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9+\s\-()]+$`)
)

// Status is the validation state of one field.
type Status int

const (
	Untouched Status = iota
	Valid
	Invalid
)

func (s Status) String() string {
	switch s {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "untouched"
	}
}

// FieldState tracks a field between blur and input events.
type FieldState struct {
	Status  Status
	Message string
}

// Rejected is the state of a field the whole-form validation flagged. An
// empty message leaves the field untouched.
func Rejected(message string) FieldState {
	if message == "" {
		return FieldState{}
	}
	return FieldState{Status: Invalid, Message: message}
}

// Blur validates value and moves the field to Valid or Invalid.
func (s FieldState) Blur(value string, rules ...Rule) FieldState {
	if msg := Check(value, rules...); msg != "" {
		return FieldState{Status: Invalid, Message: msg}
	}
	return FieldState{Status: Valid}
}

// Input clears an error as soon as the user edits the field again.
// Valid and untouched fields are left as they are.
func (s FieldState) Input() FieldState {
	if s.Status == Invalid {
		return FieldState{Status: Untouched}
	}
	return s
}

// Rule returns an error message for value, or "" when it passes.
type Rule func(value string) string

// Check runs rules in order and returns the first message.
func Check(value string, rules ...Rule) string {
	for _, rule := range rules {
		if msg := rule(value); msg != "" {
			return msg
		}
	}
	return ""
}

// Required rejects blank values.
func Required(value string) string {
	if strings.TrimSpace(value) == "" {
		return MsgRequired
	}
	return ""
}

// Email checks the address shape. Empty values pass; combine with Required.
func Email(value string) string {
	if value != "" && !emailPattern.MatchString(value) {
		return MsgEmail
	}
	return ""
}

// Phone accepts digits, spaces, "+", "-" and parentheses. Empty values pass.
func Phone(value string) string {
	if value != "" && !phonePattern.MatchString(value) {
		return MsgPhone
	}
	return ""
}

// BoatLength accepts a length in metres greater than 0 and at most 100.
// A comma is accepted as decimal separator. Empty values pass.
func BoatLength(value string) string {
	if value == "" {
		return ""
	}
	length, ok := ParseLength(value)
	if !ok || length <= 0 || length > 100 {
		return MsgBoatLength
	}
	return ""
}

// ParseLength parses a decimal length, accepting "8,5" as well as "8.5".
func ParseLength(value string) (float64, bool) {
	v := strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
