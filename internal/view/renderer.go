package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer executes the embedded page templates. Pages render into a
// buffer first so a template fault never leaks a half-written body.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any) error {
	buf := &bytes.Buffer{}
	if err := r.tmpl.ExecuteTemplate(buf, name, data); err != nil {
		return fmt.Errorf("failed to render %q: %w", name, err)
	}

	_, err := buf.WriteTo(w)
	return err
}
