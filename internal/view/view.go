// Package view implements HTML rendering for the application. Templates
// are embedded into the binary and exposed to Echo through its Renderer
// interface.
package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var tmplFS embed.FS

// Renderer satisfies echo.Renderer using html/template.
type Renderer struct {
	templates *template.Template
}

// New parses the embedded templates. Parsing happens once at startup and
// panics on malformed templates, which is a build defect rather than a
// runtime condition.
func New() *Renderer {
	return &Renderer{
		templates: template.Must(template.ParseFS(tmplFS, "templates/*.html")),
	}
}

// Render writes the named template with the given data.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
