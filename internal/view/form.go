package view

import "github.com/DukeRupert/tenebreuse/internal/domain"

// FormState is the outcome of the last submission of a form: inline field
// errors, form-level banners and an optional success message.
type FormState struct {
	Errors  map[string]string
	Banners []domain.Banner
	Success string
}

// StateFrom converts a validation failure. A nil error gives an empty state.
func StateFrom(ve *domain.ValidationError) FormState {
	if ve == nil {
		return FormState{}
	}
	return FormState{Errors: ve.Fields, Banners: ve.Banners}
}

// Error returns the message for field, or "".
func (s FormState) Error(field string) string {
	return s.Errors[field]
}

// BannersFor returns the banners shown above the element with id target.
func (s FormState) BannersFor(target string) []domain.Banner {
	var out []domain.Banner
	for _, b := range s.Banners {
		if b.Target == target {
			out = append(out, b)
		}
	}
	return out
}
