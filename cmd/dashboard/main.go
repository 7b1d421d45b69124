// jobboard-dashboard
//
// Prints the filtered job board in the terminal: stats panels, specialty
// bars, top companies and the job table.
//
//	jobboard-dashboard -level "Management+" -location "Orlando, FL" -location Remote
package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"ldexchange/jobboard/internal/config"
	"ldexchange/jobboard/internal/model"
	"ldexchange/jobboard/internal/store"
	"ldexchange/jobboard/internal/ui"
	"ldexchange/jobboard/internal/view"
)

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func main() {
	var levels, categories, locations, specialties multiFlag
	flag.Var(&levels, "level", `level to include, repeatable ("Management+", "Individual Contributor")`)
	flag.Var(&categories, "category", "category to include, repeatable")
	flag.Var(&locations, "location", "location to include, repeatable")
	flag.Var(&specialties, "specialty", "specialty to include, repeatable")
	search := flag.String("search", "", "substring of title or company")
	minScore := flag.Int("min-score", 0, "minimum match score (0-100)")
	flag.Parse()

	f := view.Filters{
		Specialties: specialties,
		Locations:   locations,
		Search:      *search,
		MinScore:    *minScore,
	}
	for _, s := range levels {
		l, err := model.ParseLevel(s)
		if err != nil {
			log.Fatalf("[dashboard] %v", err)
		}
		f.Levels = append(f.Levels, l)
	}
	for _, s := range categories {
		c, err := model.ParseCategory(s)
		if err != nil {
			log.Fatalf("[dashboard] %v", err)
		}
		f.Categories = append(f.Categories, c)
	}
	if f.MinScore < 0 || f.MinScore > 100 {
		log.Fatalf("[dashboard] -min-score must be between 0 and 100, got %d", f.MinScore)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[dashboard] Config error: %v", err)
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		log.Fatalf("[dashboard] Store: %v", err)
	}
	defer st.Close()

	v, err := view.NewService(st, nil).View(ctx, f)
	if err != nil {
		log.Fatalf("[dashboard] Load jobs: %v", err)
	}
	if err := ui.RenderView(v, time.Now()); err != nil {
		log.Fatalf("[dashboard] Render: %v", err)
	}
}
