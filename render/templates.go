package render

import (
	"embed"
	"html/template"

	"github.com/a-h/templ"
)

//go:embed templates/*.html
var templateFS embed.FS

var tmpl = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// component renders the named template with data.
func component(name string, data any) templ.Component {
	return templ.FromGoHTML(tmpl.Lookup(name), data)
}
