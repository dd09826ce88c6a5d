package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/DukeRupert/tenebreuse/internal/csrf"
	"github.com/DukeRupert/tenebreuse/internal/domain"
	"github.com/DukeRupert/tenebreuse/internal/form"
	"github.com/DukeRupert/tenebreuse/internal/templ/shared"
	"github.com/DukeRupert/tenebreuse/internal/view"
)

var frenchTitle = cases.Title(language.French)

// TemplateFuncs returns a FuncMap with custom template functions
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},

		// Date/Time functions
		"year": func() int {
			return time.Now().Year()
		},

		// Prices
		"formatPrice": domain.FormatPrice,
		"formatEuros": domain.FormatEuros,
		"formatUnit":  domain.FormatUnit,

		// String functions
		"lower": strings.ToLower,
		"title": func(s string) string {
			return frenchTitle.String(s)
		},
		"markdown":   view.Markdown,
		"paragraphs": view.Paragraphs,

		// cn merges Tailwind classes; later classes override conflicting earlier ones.
		"cn": func(classes ...string) string {
			return twmerge.Merge(classes...)
		},

		"json": func(v interface{}) template.JS {
			b, err := json.Marshal(v)
			if err != nil {
				return template.JS("null")
			}
			return template.JS(b)
		},
		// ternaryClass returns class when cond is non-empty, e.g. an error message.
		"ternaryClass": func(cond, class string) string {
			if cond == "" {
				return ""
			}
			return class
		},
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("dict requires an even number of arguments")
			}
			m := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				m[key] = values[i+1]
			}
			return m, nil
		},

		// CSRF
		"csrfField": func(token string) template.HTML {
			return template.HTML(fmt.Sprintf(`<input type="hidden" name="%s" value="%s">`,
				csrf.FormFieldName, template.HTMLEscapeString(token)))
		},

		// Shared templ components
		"errorBanner": func(message string) (template.HTML, error) {
			return templ.ToGoHTML(context.Background(), shared.Banner(shared.BannerError, message))
		},
		"successBanner": func(message string) (template.HTML, error) {
			return templ.ToGoHTML(context.Background(), shared.Banner(shared.BannerSuccess, message))
		},
		"fieldError": func(field, message string) (template.HTML, error) {
			return templ.ToGoHTML(context.Background(), shared.FieldError(field, form.Rejected(message)))
		},
		"fieldErrorID": shared.FieldErrorID,
	}
}
