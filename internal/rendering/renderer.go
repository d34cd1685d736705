package rendering

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Renderer renders the application's HTML pages from embedded templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// RenderPage renders the main page for the given view model.
func (r *Renderer) RenderPage(w io.Writer, page Page) error {
	if err := r.tmpl.ExecuteTemplate(w, "page.html", page); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}
