// Package scraper fetches raw postings from job aggregation services.
package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"ldexchange/jobboard/internal/model"
)

// Fetcher returns the raw postings for one (search term × location) pair.
type Fetcher interface {
	Fetch(ctx context.Context, p model.SearchParams) ([]model.Posting, error)
}

// FetchError is a transient failure for a single search pair. The pipeline
// logs it and moves on to the next pair.
type FetchError struct {
	Term     string
	Location string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %q in %q: %v", e.Term, e.Location, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

const (
	adzunaBaseURL   = "https://api.adzuna.com/v1/api/jobs"
	adzunaPageLimit = 50
	httpTimeout     = 15 * time.Second
)

// AdzunaFetcher fetches postings from the Adzuna public API.
// If AppID or AppKey is empty, Fetch returns (nil, nil) and logs a warning.
type AdzunaFetcher struct {
	AppID   string
	AppKey  string
	BaseURL string
	client  *http.Client

	warnSites sync.Once
}

// NewAdzunaFetcher constructs a fetcher with a shared HTTP client.
func NewAdzunaFetcher(appID, appKey string) *AdzunaFetcher {
	return &AdzunaFetcher{
		AppID:   appID,
		AppKey:  appKey,
		BaseURL: adzunaBaseURL,
		client:  &http.Client{Timeout: httpTimeout},
	}
}

type adzunaResponse struct {
	Results []adzunaResult `json:"results"`
	Count   int            `json:"count"`
}

type adzunaResult struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Company     adzunaName `json:"company"`
	Location    adzunaName `json:"location"`
	SalaryMin   *float64   `json:"salary_min"`
	SalaryMax   *float64   `json:"salary_max"`
	RedirectURL string     `json:"redirect_url"`
	Created     string     `json:"created"`
}

type adzunaName struct {
	DisplayName string `json:"display_name"`
}

// Fetch pages through results until MaxResults postings are collected or the
// API runs dry. Adzuna has no per-site filter, so SourceSites is ignored.
func (f *AdzunaFetcher) Fetch(ctx context.Context, p model.SearchParams) ([]model.Posting, error) {
	if f.AppID == "" || f.AppKey == "" {
		slog.Warn("ADZUNA_APP_ID / ADZUNA_APP_KEY not set, skipping fetch",
			"term", p.SearchTerm, "location", p.Location)
		return nil, nil
	}
	if len(p.SourceSites) > 0 {
		f.warnSites.Do(func() {
			slog.Info("adzuna aggregates its own sources, source_sites ignored", "sites", p.SourceSites)
		})
	}

	want := p.MaxResults
	if want <= 0 {
		want = adzunaPageLimit
	}
	pageSize := min(want, adzunaPageLimit)

	var postings []model.Posting
	for page := 1; len(postings) < want; page++ {
		batch, err := f.fetchPage(ctx, p, page, pageSize)
		if err != nil {
			return postings, fmt.Errorf("page %d: %w", page, err)
		}
		postings = append(postings, batch...)
		if len(batch) < pageSize {
			break
		}
	}
	if len(postings) > want {
		postings = postings[:want]
	}
	return postings, nil
}

func (f *AdzunaFetcher) fetchPage(ctx context.Context, p model.SearchParams, page, pageSize int) ([]model.Posting, error) {
	country := CountryCode(p.Country)
	endpoint := fmt.Sprintf("%s/%s/search/%d", strings.TrimRight(f.BaseURL, "/"), country, page)

	params := url.Values{}
	params.Set("app_id", f.AppID)
	params.Set("app_key", f.AppKey)
	params.Set("results_per_page", strconv.Itoa(pageSize))
	if isRemote(p.Location) {
		params.Set("what", p.SearchTerm+" remote")
	} else {
		params.Set("what", p.SearchTerm)
		params.Set("where", p.Location)
	}
	if days := maxDaysOld(p.MaxAgeHours); days > 0 {
		params.Set("max_days_old", strconv.Itoa(days))
	}
	params.Set("content-type", "application/json")
	params.Set("sort_by", "date")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("adzuna returned %d: %s", resp.StatusCode, truncateBody(body))
	}

	var apiResp adzunaResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	currency := currencyFor(country)
	postings := make([]model.Posting, 0, len(apiResp.Results))
	for _, r := range apiResp.Results {
		posting := model.Posting{
			Title:       r.Title,
			Company:     r.Company.DisplayName,
			Location:    r.Location.DisplayName,
			DatePosted:  r.Created,
			URL:         r.RedirectURL,
			Description: PlainText(r.Description),
			MinAmount:   r.SalaryMin,
			MaxAmount:   r.SalaryMax,
		}
		if posting.MinAmount != nil || posting.MaxAmount != nil {
			posting.Interval = "yearly"
			posting.Currency = currency
		}
		postings = append(postings, posting)
	}
	return postings, nil
}

// CountryCode maps a country name to the aggregator's two-letter segment.
func CountryCode(country string) string {
	switch c := strings.ToLower(strings.TrimSpace(country)); c {
	case "", "usa", "us", "united states":
		return "us"
	case "uk", "gb", "united kingdom":
		return "gb"
	case "canada", "ca":
		return "ca"
	default:
		return c
	}
}

func currencyFor(country string) string {
	switch country {
	case "gb":
		return "GBP"
	case "ca":
		return "CAD"
	case "us":
		return "USD"
	}
	return ""
}

// maxDaysOld converts an hour window to whole days, rounding up.
func maxDaysOld(hours int) int {
	if hours <= 0 {
		return 0
	}
	return (hours + 23) / 24
}

// isRemote reports whether a search location means "no geographic filter".
func isRemote(loc string) bool {
	return strings.EqualFold(strings.TrimSpace(loc), "remote")
}

func truncateBody(b []byte) string {
	const limit = 200
	if len(b) > limit {
		return string(b[:limit]) + "…"
	}
	return string(b)
}
