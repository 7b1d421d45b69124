package scraper_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ldexchange/jobboard/internal/model"
	"ldexchange/jobboard/internal/scraper"
)

func adzunaServer(t *testing.T, total int, seen *[]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = append(*seen, r.URL.String())
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		page, _ := strconv.Atoi(parts[len(parts)-1])
		size, _ := strconv.Atoi(r.URL.Query().Get("results_per_page"))

		results := []map[string]any{}
		for i := (page - 1) * size; i < min(page*size, total); i++ {
			res := map[string]any{
				"id":           strconv.Itoa(i),
				"title":        fmt.Sprintf("Trainer %d", i),
				"description":  "<p>Deliver <b>training</b></p><ul><li>coaching</li></ul>",
				"company":      map[string]string{"display_name": "Acme"},
				"location":     map[string]string{"display_name": "Orlando, FL"},
				"redirect_url": fmt.Sprintf("https://jobs.example/%d", i),
				"created":      "2026-10-01T08:00:00Z",
			}
			if i == 0 {
				res["salary_min"] = 80000
			}
			results = append(results, res)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"results": results, "count": total})
	}))
}

func TestAdzunaFetcher_Paginates(t *testing.T) {
	var seen []string
	srv := adzunaServer(t, 7, &seen)
	defer srv.Close()

	f := scraper.NewAdzunaFetcher("id", "key")
	f.BaseURL = srv.URL

	postings, err := f.Fetch(context.Background(), model.SearchParams{
		SearchTerm:  "Corporate Trainer",
		Location:    "Orlando, FL",
		MaxAgeHours: 720,
		MaxResults:  5,
		Country:     "USA",
	})
	require.NoError(t, err)
	require.Len(t, postings, 5)
	require.Len(t, seen, 1, "one full page satisfies the request")

	assert.Contains(t, seen[0], "/us/search/1")
	assert.Contains(t, seen[0], "max_days_old=30")
	assert.Contains(t, seen[0], "where=Orlando")

	first := postings[0]
	assert.Equal(t, "Trainer 0", first.Title)
	assert.Equal(t, "https://jobs.example/0", first.URL)
	assert.Equal(t, "Deliver training coaching", first.Description)
	require.NotNil(t, first.MinAmount)
	assert.Equal(t, 80000.0, *first.MinAmount)
	assert.Equal(t, "yearly", first.Interval)
	assert.Equal(t, "USD", first.Currency)
	assert.Equal(t, "", postings[1].Interval, "no salary, no interval")
}

func TestAdzunaFetcher_StopsOnShortPage(t *testing.T) {
	var seen []string
	srv := adzunaServer(t, 3, &seen)
	defer srv.Close()

	f := scraper.NewAdzunaFetcher("id", "key")
	f.BaseURL = srv.URL

	postings, err := f.Fetch(context.Background(), model.SearchParams{
		SearchTerm: "Trainer", Location: "Remote", MaxResults: 100,
	})
	require.NoError(t, err)
	assert.Len(t, postings, 3)
	require.Len(t, seen, 1)
	assert.NotContains(t, seen[0], "where=", "remote searches drop the location filter")
	assert.Contains(t, seen[0], "what=Trainer+remote")
}

func TestAdzunaFetcher_NoCredentials(t *testing.T) {
	f := scraper.NewAdzunaFetcher("", "")
	postings, err := f.Fetch(context.Background(), model.SearchParams{SearchTerm: "Trainer"})
	assert.NoError(t, err)
	assert.Nil(t, postings)
}

func TestAdzunaFetcher_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := scraper.NewAdzunaFetcher("id", "key")
	f.BaseURL = srv.URL

	_, err := f.Fetch(context.Background(), model.SearchParams{SearchTerm: "Trainer"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestFetchError_Unwraps(t *testing.T) {
	cause := errors.New("timeout")
	err := error(&scraper.FetchError{Term: "Trainer", Location: "Remote", Err: cause})
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `"Trainer"`)
}

func TestCountryCode(t *testing.T) {
	assert.Equal(t, "us", scraper.CountryCode("USA"))
	assert.Equal(t, "us", scraper.CountryCode(""))
	assert.Equal(t, "gb", scraper.CountryCode("UK"))
	assert.Equal(t, "de", scraper.CountryCode("DE"))
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "plain text", scraper.PlainText("plain \n text"))
	assert.Equal(t, "Lead training. Build content", scraper.PlainText("<div>Lead training.</div><div>Build content</div>"))
	assert.Equal(t, "kept", scraper.PlainText("<script>x()</script><p>kept</p>"))
}

func TestWait(t *testing.T) {
	require.NoError(t, scraper.Wait(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := scraper.Wait(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}
