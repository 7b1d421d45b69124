// Package leads implements the broad manager-level search: fetch a wide
// grid, keep titles that name both an L&D topic and a seniority level, and
// rank them by match score. Nothing is persisted.
package leads

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"ldexchange/jobboard/internal/classify"
	"ldexchange/jobboard/internal/model"
	"ldexchange/jobboard/internal/scraper"
)

// OutputFile is where the leads command writes its CSV.
const OutputFile = "broad_training_leads.csv"

// smartLevelWords are the seniority words the filter requires. Scoring uses
// the longer classify.LevelWords list.
var smartLevelWords = []string{"manager", "director", "head", "lead", "principal", "vp"}

// Lead is a posting that passed the smart filter, with its score.
type Lead struct {
	model.Posting
	Score int `json:"score"`
}

// Result is the outcome of one leads search.
type Result struct {
	Raw     int    // postings fetched, duplicates included
	Deduped int    // after dropping repeated URLs
	Failed  int    // search pairs that errored
	Leads   []Lead // passed the filter, best first
}

// SmartFilter keeps titles containing at least one topic word and at least
// one level word.
func SmartFilter(title string) bool {
	if title == "" {
		return false
	}
	t := strings.ToLower(title)
	return containsAny(t, classify.TopicWords) && containsAny(t, smartLevelWords)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// Finder runs the leads grid against a fetcher.
type Finder struct {
	fetcher scraper.Fetcher
	grid    model.SearchGrid

	// Progress, when set, is called after each search pair.
	Progress func(done, total int)

	sleep func(ctx context.Context, d time.Duration) error
}

// NewFinder returns a Finder for grid.
func NewFinder(f scraper.Fetcher, grid model.SearchGrid) *Finder {
	return &Finder{fetcher: f, grid: grid, sleep: scraper.Wait}
}

// Find fetches every pair, then dedups, filters and ranks the postings.
// Failed pairs are logged and skipped.
func (f *Finder) Find(ctx context.Context) (Result, error) {
	var (
		res Result
		all []model.Posting
	)
	pairs := f.grid.Pairs()
	for i, p := range pairs {
		if i > 0 && f.grid.Delay > 0 {
			if err := f.sleep(ctx, f.grid.Delay); err != nil {
				return res, err
			}
		}
		postings, err := f.fetcher.Fetch(ctx, p)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			var fe *scraper.FetchError
			if !errors.As(err, &fe) {
				err = &scraper.FetchError{Term: p.SearchTerm, Location: p.Location, Err: err}
			}
			slog.Warn("leads search failed, continuing", "err", err)
			res.Failed++
		} else {
			all = append(all, postings...)
		}
		if f.Progress != nil {
			f.Progress(i+1, len(pairs))
		}
	}

	res.Raw = len(all)
	unique := Dedup(all)
	res.Deduped = len(unique)
	res.Leads = Rank(unique)
	return res, nil
}

// Dedup drops postings whose URL was already seen; the first one wins.
// A missing URL is a key like any other, so only the first URL-less
// posting survives.
func Dedup(postings []model.Posting) []model.Posting {
	seen := make(map[string]struct{}, len(postings))
	out := make([]model.Posting, 0, len(postings))
	for _, p := range postings {
		key := strings.TrimSpace(p.URL)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Rank filters postings through SmartFilter and sorts them by score,
// highest first. Equal scores keep their fetch order.
func Rank(postings []model.Posting) []Lead {
	var out []Lead
	for _, p := range postings {
		if SmartFilter(p.Title) {
			out = append(out, Lead{Posting: p, Score: classify.Score(p.Title)})
		}
	}
	slices.SortStableFunc(out, func(a, b Lead) int { return b.Score - a.Score })
	return out
}

// Top returns at most n leads.
func Top(leads []Lead, n int) []Lead {
	if len(leads) > n {
		return leads[:n]
	}
	return leads
}

// String renders a one-line summary of r.
func (r Result) String() string {
	return fmt.Sprintf("raw=%d deduped=%d leads=%d failed=%d", r.Raw, r.Deduped, len(r.Leads), r.Failed)
}
