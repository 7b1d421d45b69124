package web

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"ldexchange/jobboard/internal/classify"
	"ldexchange/jobboard/internal/model"
	"ldexchange/jobboard/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

type pages struct {
	tmpl *template.Template
}

func mustParsePages() *pages {
	funcs := template.FuncMap{
		"ago": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return humanize.Time(t)
		},
		"date": func(t *time.Time) string {
			if t == nil {
				return "n/a"
			}
			return t.Format("Jan 2, 2006")
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"comma": func(n int) string { return humanize.Comma(int64(n)) },
	}
	return &pages{tmpl: template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))}
}

// render executes into a buffer first so a template error never leaves a
// half-written page.
func (p *pages) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("[web] render %s: %v", name, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// tile is one specialty card on the landing page.
type tile struct {
	Name  string
	Color string
	Count int
}

var tileColors = []string{"blue", "purple", "green", "orange", "teal", "pink", "blue", "purple"}

func tiles(l view.Landing) []tile {
	out := make([]tile, len(l.Specialties))
	for i, s := range l.Specialties {
		out[i] = tile{Name: s.Name, Count: s.Count, Color: tileColors[i%len(tileColors)]}
	}
	return out
}

type homeData struct {
	Landing view.Landing
	Tiles   []tile
}

type jobsData struct {
	View       view.View
	Locations  []string
	Levels     []model.Level
	Categories []model.Category
	CSVURL     template.URL
}

// Score exposes the match score to templates.
func (jobsData) Score(title string) int { return classify.Score(title) }

// Selected reports whether v is among the chosen filter values.
func (d jobsData) Selected(kind, v string) bool {
	var set []string
	switch kind {
	case "level":
		for _, l := range d.View.Filters.Levels {
			set = append(set, string(l))
		}
	case "category":
		for _, c := range d.View.Filters.Categories {
			set = append(set, string(c))
		}
	case "location":
		set = d.View.Filters.Locations
	}
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
