// Package view assembles filtered job listings and their aggregate
// statistics for the front ends. Nothing here writes to the store.
package view

import (
	"slices"
	"strings"

	"ldexchange/jobboard/internal/classify"
	"ldexchange/jobboard/internal/location"
	"ldexchange/jobboard/internal/model"
)

// Filters are the user-settable predicates. Zero values mean "no
// constraint"; set predicates are ANDed together.
type Filters struct {
	Levels      []model.Level    `json:"levels,omitempty"`
	Categories  []model.Category `json:"categories,omitempty"`
	Specialties []string         `json:"specialties,omitempty"`
	Locations   []string         `json:"locations,omitempty"`
	Search      string           `json:"search,omitempty"`
	MinScore    int              `json:"minScore,omitempty"`
}

// IsZero reports whether f constrains nothing.
func (f Filters) IsZero() bool {
	return len(f.Levels) == 0 && len(f.Categories) == 0 && len(f.Specialties) == 0 &&
		len(f.Locations) == 0 && strings.TrimSpace(f.Search) == "" && f.MinScore <= 0
}

// Match reports whether rec satisfies every predicate in f.
func (f Filters) Match(rec model.JobRecord) bool {
	if len(f.Levels) > 0 && !slices.Contains(f.Levels, rec.Level) {
		return false
	}
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, rec.Category) {
		return false
	}
	if len(f.Specialties) > 0 && !matchesAnySpecialty(f.Specialties, rec) {
		return false
	}
	if !location.Matches(rec.Location, f.Locations) {
		return false
	}
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		if !strings.Contains(strings.ToLower(rec.Title), s) && !strings.Contains(strings.ToLower(rec.Company), s) {
			return false
		}
	}
	if f.MinScore > 0 && classify.Score(rec.Title) < f.MinScore {
		return false
	}
	return true
}

// Apply returns the records matching f, preserving input order.
func Apply(records []model.JobRecord, f Filters) []model.JobRecord {
	out := make([]model.JobRecord, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

func matchesAnySpecialty(names []string, rec model.JobRecord) bool {
	for _, s := range classify.Specialties {
		if slices.Contains(names, s.Name) && classify.MatchesSpecialty(s, rec.Title, rec.Description) {
			return true
		}
	}
	return false
}
