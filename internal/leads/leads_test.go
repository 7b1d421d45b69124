package leads_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ldexchange/jobboard/internal/leads"
	"ldexchange/jobboard/internal/model"
)

func TestSmartFilter(t *testing.T) {
	cases := []struct {
		title string
		want  bool
	}{
		{"Training Manager", true},
		{"Director, Learning & Development", true},
		{"Head of L&D", true},
		{"VP Enablement", true},
		{"Principal Instructional Designer", true},
		{"Corporate Trainer", false},           // no topic word: "trainer" is not "training"
		{"Engineering Manager", false},         // no topic word
		{"Learning Specialist", false},         // no level word
		{"Senior Training Specialist", false},  // "senior" scores but does not pass
		{"Leadership Development Coach", true}, // "lead" inside "leadership"
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, leads.SmartFilter(tc.title), tc.title)
	}
}

func TestDedup_FirstWins(t *testing.T) {
	in := []model.Posting{
		{Title: "A", URL: "u1"},
		{Title: "B", URL: "u2"},
		{Title: "A again", URL: "u1"},
		{Title: "no url"},
		{Title: "no url either"},
	}
	got := leads.Dedup(in)
	require.Len(t, got, 3)
	assert.Equal(t, "A", got[0].Title)
	assert.Equal(t, "B", got[1].Title)
	assert.Equal(t, "no url", got[2].Title)
}

func TestRank_SortsByScoreStable(t *testing.T) {
	got := leads.Rank([]model.Posting{
		{Title: "Training Manager", URL: "1"},                          // 40
		{Title: "Senior Director, Learning and Development", URL: "2"}, // 40 + 40
		{Title: "Engineering Manager", URL: "3"},                       // filtered
		{Title: "L&D Manager", URL: "4"},                               // 40
	})
	require.Len(t, got, 3)
	assert.Equal(t, "2", got[0].URL)
	assert.Equal(t, 80, got[0].Score)
	assert.Equal(t, "1", got[1].URL)
	assert.Equal(t, "4", got[2].URL)
	assert.Equal(t, 40, got[2].Score)
}

func TestTop(t *testing.T) {
	l := make([]leads.Lead, 12)
	assert.Len(t, leads.Top(l, 10), 10)
	assert.Len(t, leads.Top(l[:3], 10), 3)
}

type stubFetcher struct {
	byLocation map[string][]model.Posting
	failOn     string
}

func (f *stubFetcher) Fetch(_ context.Context, p model.SearchParams) ([]model.Posting, error) {
	if p.Location == f.failOn {
		return nil, errors.New("timeout")
	}
	return f.byLocation[p.Location], nil
}

func TestFinder_Find(t *testing.T) {
	f := &stubFetcher{
		byLocation: map[string][]model.Posting{
			"Remote": {
				{Title: "Training Manager", URL: "u1"},
				{Title: "Corporate Trainer", URL: "u2"},
			},
			"Orlando, FL": {
				{Title: "Training Manager", URL: "u1"},
				{Title: "Head of Learning", URL: "u3"},
			},
		},
		failOn: "Tampa, FL",
	}
	grid := model.SearchGrid{
		Terms:     []string{"Training Manager"},
		Locations: []string{"Remote", "Orlando, FL", "Tampa, FL"},
	}

	var progress []int
	finder := leads.NewFinder(f, grid)
	finder.Progress = func(done, _ int) { progress = append(progress, done) }

	res, err := finder.Find(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, res.Raw)
	assert.Equal(t, 3, res.Deduped)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Leads, 2)
	assert.Equal(t, "u1", res.Leads[0].URL)
	assert.Equal(t, "u3", res.Leads[1].URL)
	assert.Equal(t, []int{1, 2, 3}, progress)
	assert.Equal(t, "raw=4 deduped=3 leads=2 failed=1", res.String())
}

func TestFinder_DelayHonoursCancel(t *testing.T) {
	f := &stubFetcher{byLocation: map[string][]model.Posting{
		"Remote": {{Title: "Training Manager", URL: "u1"}},
	}}
	grid := model.SearchGrid{
		Terms:     []string{"Training Manager"},
		Locations: []string{"Remote", "Orlando, FL"},
		Delay:     time.Hour,
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := leads.NewFinder(f, grid).Find(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func amount(v float64) *float64 { return &v }

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := leads.WriteCSV(&buf, []leads.Lead{{
		Posting: model.Posting{
			Title: "Training Manager", Company: "Acme", Location: "Remote", URL: "u1",
			DatePosted: "2024-03-01", MinAmount: amount(90000), MaxAmount: amount(110000), Interval: "yearly",
		},
		Score: 40,
	}})
	require.NoError(t, err)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, leads.CSVHeader, rows[0])
	assert.Equal(t, []string{"40", "Training Manager", "Acme", "Remote", "2024-03-01", "u1", "$90K - $110K/yr"}, rows[1])
}

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), leads.OutputFile)
	require.NoError(t, leads.WriteCSVFile(path, nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "score,title,company,location,date_posted,job_url,salary\n", string(raw))
}
