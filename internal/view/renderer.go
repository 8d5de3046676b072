package view

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
)

const layoutFile = "layout.html"

var funcs = template.FuncMap{
	"price": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}

// Renderer pairs every page under dir with the shared layout. Page names are
// slash-separated paths relative to dir, e.g. "crud/form.html".
type Renderer struct {
	pages map[string]*template.Template
}

func New(dir string) (*Renderer, error) {
	layout := filepath.Join(dir, layoutFile)
	r := &Renderer{pages: map[string]*template.Template{}}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") || path == layout {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		tpl, err := template.New(layoutFile).Funcs(funcs).ParseFiles(layout, path)
		if err != nil {
			return fmt.Errorf("parse %s: %w", rel, err)
		}
		r.pages[filepath.ToSlash(rel)] = tpl
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(r.pages) == 0 {
		return nil, fmt.Errorf("no templates found in %s", dir)
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return tpl.ExecuteTemplate(w, "layout", data)
}
