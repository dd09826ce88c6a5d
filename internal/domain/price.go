package domain

import (
	"math"
	"strconv"
)

// UnitFlatRate is the unit for fixed-price services.
const UnitFlatRate = "forfait"

// FormatPrice renders a euro amount rounded to the unit, prefixed with
// "À partir de " for floor prices.
func FormatPrice(price float64, from bool) string {
	s := FormatEuros(price)
	if from {
		return "À partir de " + s
	}
	return s
}

// FormatEuros renders an amount with no decimals and a trailing euro sign.
// Halves round away from zero.
func FormatEuros(amount float64) string {
	return strconv.FormatFloat(math.Round(amount), 'f', 0, 64) + "€"
}

// FormatUnit renders the unit suffix shown after a price. Flat-rate services
// show their label (or "forfait"), others "/ unit" with the label in
// parentheses when present.
func FormatUnit(unit, label string) string {
	switch unit {
	case UnitFlatRate:
		if label != "" {
			return label
		}
		return UnitFlatRate
	case "":
		return ""
	}
	if label != "" {
		return "/ " + unit + " (" + label + ")"
	}
	return "/ " + unit
}
