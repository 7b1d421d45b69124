package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"ldexchange/jobboard/internal/model"
)

// DefaultSearchGrid is the ingestion grid used when no search file is set.
func DefaultSearchGrid() model.SearchGrid {
	return model.SearchGrid{
		Terms: []string{
			"Learning and Development",
			"Instructional Designer",
			"Corporate Trainer",
			"Sales Enablement",
			"Talent Development",
		},
		Locations:   defaultLocations(),
		MaxAgeHours: 720,
		MaxResults:  20,
		SourceSites: defaultSites(),
		Country:     "USA",
		Delay:       time.Second,
	}
}

// DefaultLeadsGrid is the broad manager-level grid used by the leads
// command.
func DefaultLeadsGrid() model.SearchGrid {
	return model.SearchGrid{
		Terms: []string{
			"Training Manager",
			"Learning and Development Manager",
			"L&D Manager",
			"Talent Development Manager",
			"Sales Enablement Manager",
			"Organizational Development Manager",
			"Manager of Corporate Training",
			"Instructional Design Manager",
		},
		Locations:   defaultLocations(),
		MaxAgeHours: 720,
		MaxResults:  30,
		SourceSites: defaultSites(),
		Country:     "USA",
		Delay:       time.Second,
	}
}

func defaultLocations() []string {
	return []string{"Remote", "Orlando, FL", "Maitland, FL", "Altamonte Springs, FL"}
}

func defaultSites() []string {
	return []string{"indeed", "linkedin", "glassdoor"}
}

// SearchFile is the YAML document named by SEARCH_CONFIG.
type SearchFile struct {
	Search gridOverride `yaml:"search"`
	Leads  gridOverride `yaml:"leads"`
}

// gridOverride holds the fields a search file may set. Absent fields keep
// the defaults.
type gridOverride struct {
	Terms       []string `yaml:"search_terms"`
	Locations   []string `yaml:"locations"`
	MaxAgeHours *int     `yaml:"max_age_hours"`
	MaxResults  *int     `yaml:"max_results"`
	SourceSites []string `yaml:"source_sites"`
	Country     string   `yaml:"country"`
	Delay       *string  `yaml:"delay"`

	delay time.Duration
}

func (o gridOverride) merge(g model.SearchGrid) model.SearchGrid {
	if len(o.Terms) > 0 {
		g.Terms = o.Terms
	}
	if len(o.Locations) > 0 {
		g.Locations = o.Locations
	}
	if o.MaxAgeHours != nil {
		g.MaxAgeHours = *o.MaxAgeHours
	}
	if o.MaxResults != nil {
		g.MaxResults = *o.MaxResults
	}
	if len(o.SourceSites) > 0 {
		g.SourceSites = o.SourceSites
	}
	if o.Country != "" {
		g.Country = o.Country
	}
	if o.Delay != nil {
		g.Delay = o.delay
	}
	return g
}

// LoadSearchFile parses a YAML search file. Delays use Go duration syntax
// ("1s", "500ms").
func LoadSearchFile(path string) (*SearchFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read search config: %w", err)
	}
	var f SearchFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse search config %s: %w", path, err)
	}
	for _, o := range []*gridOverride{&f.Search, &f.Leads} {
		if o.Delay == nil {
			continue
		}
		d, err := time.ParseDuration(*o.Delay)
		if err != nil {
			return nil, fmt.Errorf("parse search config %s: delay: %w", path, err)
		}
		o.delay = d
	}
	return &f, nil
}
