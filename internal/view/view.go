// Package view builds the page views the router mounts. Each view gathers
// its data from the repository and the outbound API clients and renders one
// of the embedded HTML templates.
package view

import (
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"strconv"

	"tripbudget/internal/core"
	"tripbudget/internal/repository"
	"tripbudget/internal/travelapi"
)

// Deps carries everything the views need. It is shared across views; the
// router's factories close over one instance.
type Deps struct {
	Store     *repository.Store
	Rates     *travelapi.RatesClient
	Countries *travelapi.CountriesClient
	Images    *travelapi.ImagesClient
	Templates *template.Template
	Logger    *slog.Logger
}

// ParseTemplates parses the embedded page templates with the formatting
// helpers the pages use.
func ParseTemplates(fsys fs.FS) (*template.Template, error) {
	funcs := template.FuncMap{
		"money": func(m core.Money) string { return m.Format() },
		"date":  func(d core.Date) string { return d.String() },
		"pct": func(v float64) string {
			return strconv.FormatFloat(v, 'f', -1, 64) + "%"
		},
	}
	return template.New("").Funcs(funcs).ParseFS(fsys, "templates/*.html")
}

func (d *Deps) render(w io.Writer, name string, data any) error {
	return d.Templates.ExecuteTemplate(w, name, data)
}
