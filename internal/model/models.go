// Package model defines shared data structures for the job board.
package model

import (
	"fmt"
	"time"
)

// SearchGrid is the set of searches one ingestion run performs: every
// term is searched in every location.
type SearchGrid struct {
	Terms       []string      `yaml:"search_terms"`
	Locations   []string      `yaml:"locations"`
	MaxAgeHours int           `yaml:"max_age_hours"`
	MaxResults  int           `yaml:"max_results"`
	SourceSites []string      `yaml:"source_sites"`
	Country     string        `yaml:"country"`
	Delay       time.Duration `yaml:"delay"`
}

// Pairs expands the grid into per-pair search parameters, term-major.
func (g SearchGrid) Pairs() []SearchParams {
	pairs := make([]SearchParams, 0, len(g.Terms)*len(g.Locations))
	for _, term := range g.Terms {
		for _, loc := range g.Locations {
			pairs = append(pairs, SearchParams{
				SearchTerm:  term,
				Location:    loc,
				MaxAgeHours: g.MaxAgeHours,
				MaxResults:  g.MaxResults,
				SourceSites: g.SourceSites,
				Country:     g.Country,
			})
		}
	}
	return pairs
}

// SearchParams is one (search term × location) request to the aggregation
// service.
type SearchParams struct {
	SearchTerm  string
	Location    string
	MaxAgeHours int
	MaxResults  int
	SourceSites []string
	Country     string
}

// Posting is a raw listing as returned by the aggregation service.
// Duplicates across overlapping searches are expected.
type Posting struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	DatePosted  string   `json:"date_posted,omitempty"`
	URL         string   `json:"job_url"`
	Description string   `json:"description,omitempty"`
	MinAmount   *float64 `json:"min_amount,omitempty"`
	MaxAmount   *float64 `json:"max_amount,omitempty"`
	Interval    string   `json:"interval,omitempty"`
	Currency    string   `json:"currency,omitempty"`
}

// JobRecord is the persisted, classified representation of a posting.
// URL is the identity key; Level, Category and Salary are derived once at
// ingestion time and never recomputed.
type JobRecord struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	DatePosted  *time.Time `json:"datePosted"`
	URL         string     `json:"jobUrl"`
	Description string     `json:"description,omitempty"`
	Level       Level      `json:"level"`
	Category    Category   `json:"category"`
	Salary      *string    `json:"salary"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Level values mirror the level column.
type Level string

const (
	LevelManagement Level = "Management+"
	LevelIC         Level = "Individual Contributor"
)

// Levels lists every level in display order.
var Levels = []Level{LevelManagement, LevelIC}

// ParseLevel converts a raw string to a Level, returning an error for
// unknown values.
func ParseLevel(s string) (Level, error) {
	l := Level(s)
	switch l {
	case LevelManagement, LevelIC:
		return l, nil
	}
	return "", fmt.Errorf("unknown level %q", s)
}

// Category is the closed 5-way category stored with every record.
type Category string

const (
	CategoryInstructionalDesign Category = "Instructional Design"
	CategoryTrainingDelivery    Category = "Training Delivery"
	CategoryEnablement          Category = "Enablement"
	CategoryOpsAnalytics        Category = "Ops & Analytics"
	CategoryGeneral             Category = "General L&D"
)

// Categories lists every category in rule order.
var Categories = []Category{
	CategoryInstructionalDesign,
	CategoryTrainingDelivery,
	CategoryEnablement,
	CategoryOpsAnalytics,
	CategoryGeneral,
}

// ParseCategory converts a raw string to a Category, returning an error for
// unknown values.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}
