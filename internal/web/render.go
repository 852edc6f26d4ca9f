package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"
)

//go:embed templates
var templatesFS embed.FS

const layoutFile = "templates/layout.html"

// Renderer tiene un *template.Template por página (layout + página).
type Renderer struct {
	pages map[string]*template.Template
}

// Field es lo que consume el bloque "field" del layout.
type Field struct {
	Name, Label, Type string
	Value, Error      string
	Required          bool
}

var funcs = template.FuncMap{
	// input arma un Field desde el FormData de la página: {{template "field" input . "name" "Nombre" "text" true}}
	"input": func(d FormData, name, label, typ string, required bool) Field {
		return Field{
			Name:     name,
			Label:    label,
			Type:     typ,
			Value:    d.Values[name],
			Error:    d.Errors[name],
			Required: required,
		}
	},
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	},
	"money": func(f float64) string {
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
	},
}

// NewRenderer parsea todas las páginas embebidas. Nombre de página: "clients/form", "home", ...
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: map[string]*template.Template{}}

	err := fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || p == layoutFile || path.Ext(p) != ".html" {
			return nil
		}

		t, err := template.New("page").Funcs(funcs).ParseFS(templatesFS, layoutFile, p)
		if err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}

		name := strings.TrimSuffix(strings.TrimPrefix(p, "templates/"), ".html")
		r.pages[name] = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Render ejecuta en buffer para no mandar respuestas a medias si el template falla.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("web: unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("web: render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Has indica si la página existe (para tests y wiring).
func (r *Renderer) Has(page string) bool {
	_, ok := r.pages[page]
	return ok
}
