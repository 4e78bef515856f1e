package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"krishi/entities"
	"krishi/pkg/faq"
	"krishi/pkg/i18n"
	"krishi/pkg/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer turns a session snapshot into the page for its active view.
type Renderer struct {
	tmpl    *template.Template
	catalog *i18n.Catalog
}

// Page is what the templates see.
type Page struct {
	session.Snapshot
	FAQ        []faq.Item
	Posts      []entities.CommunityPost
	Views      []session.View
	Categories []string
}

func New(catalog *i18n.Catalog) (*Renderer, error) {
	if catalog == nil {
		catalog = i18n.Default()
	}
	r := &Renderer{catalog: catalog}
	tmpl, err := template.New("page").Funcs(template.FuncMap{
		"t":          r.translate,
		"score":      score,
		"percent":    percent,
		"confidence": confidence,
		"forecast":   forecast,
		"viewKey":    viewKey,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Render writes the full page for s. items is the FAQ accordion, shown on
// the home view only.
func (r *Renderer) Render(w io.Writer, s session.Snapshot, items []faq.Item) error {
	p := Page{
		Snapshot:   s,
		FAQ:        items,
		Posts:      s.VisiblePosts(),
		Views:      session.Views,
		Categories: entities.PostCategories,
	}
	return r.tmpl.ExecuteTemplate(w, "layout", p)
}

func (r *Renderer) translate(lang i18n.Language, key string) string {
	return r.catalog.T(lang, key)
}

// score renders a health score as "82/100".
func score(v float64) string { return fmt.Sprintf("%s/100", trimFloat(v)) }

// percent renders a 0..100 value as "90%".
func percent(v float64) string { return trimFloat(v) + "%" }

// confidence renders a 0..1 value as a percentage with one decimal.
func confidence(v float64) string { return fmt.Sprintf("%.1f%%", v*100) }

func forecast(days []entities.ForecastDay) []entities.ForecastDay {
	if len(days) > entities.ForecastDays {
		return days[:entities.ForecastDays]
	}
	return days
}

func viewKey(v session.View) string {
	switch v {
	case session.ViewSoil:
		return "soilAnalysis"
	case session.ViewDisease:
		return "diseaseDetection"
	}
	return string(v)
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}
