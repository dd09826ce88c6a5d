package view

import (
	"fmt"

	"github.com/DukeRupert/tenebreuse/internal/domain"
)

// ErrorState is the full-page message shown instead of content when the
// site document cannot be loaded.
type ErrorState struct {
	Title    string
	Message  string
	Guidance []string
}

// SiteUnavailable describes the load failures of err for an operator.
func SiteUnavailable(err error) ErrorState {
	s := ErrorState{
		Title:   "Erreur de chargement",
		Message: "Impossible de charger les données du site.",
	}
	for _, le := range domain.LoadErrors(err) {
		s.Guidance = append(s.Guidance, fmt.Sprintf("Document « %s » : statut %d.", le.Document, le.Status))
	}
	s.Guidance = append(s.Guidance, "Vérifiez la source des données (DATA_PROVIDER, DATA_DIR) puis lancez « sitectl check ».")
	return s
}
