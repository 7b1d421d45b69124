package ingest_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ldexchange/jobboard/internal/ingest"
	"ldexchange/jobboard/internal/model"
	"ldexchange/jobboard/internal/store"
)

// stubFetcher returns canned postings keyed by search term.
type stubFetcher struct {
	byTerm map[string][]model.Posting
	fail   map[string]error
	calls  []model.SearchParams
}

func (f *stubFetcher) Fetch(_ context.Context, p model.SearchParams) ([]model.Posting, error) {
	f.calls = append(f.calls, p)
	if err := f.fail[p.SearchTerm]; err != nil {
		return nil, err
	}
	return f.byTerm[p.SearchTerm], nil
}

type recordingReporter struct {
	got []ingest.Summary
	err error
}

func (r *recordingReporter) Report(_ context.Context, s ingest.Summary) error {
	r.got = append(r.got, s)
	return r.err
}

func openMemory(t *testing.T) store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), "", ":memory:")
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func grid(terms ...string) model.SearchGrid {
	return model.SearchGrid{
		Terms:       terms,
		Locations:   []string{"Remote"},
		MaxAgeHours: 720,
		MaxResults:  20,
	}
}

func amount(v float64) *float64 { return &v }

func TestRun_MixedBatch(t *testing.T) {
	ctx := context.Background()
	st := openMemory(t)

	seed := &model.JobRecord{
		Title: "Corporate Trainer", URL: "https://jobs.example/a",
		Level: model.LevelIC, Category: model.CategoryTrainingDelivery,
	}
	_, err := st.InsertIfAbsent(ctx, seed)
	require.NoError(t, err)

	f := &stubFetcher{byTerm: map[string][]model.Posting{
		"enablement": {
			{Title: "Corporate Trainer", URL: "https://jobs.example/a"},
			{Title: "Deal Desk Enablement Manager", URL: "https://jobs.example/b",
				Description: "Own training for the deal desk."},
			{Title: "Instructional Design Manager", Company: "Globex", Location: "Remote",
				URL: "https://jobs.example/c", MinAmount: amount(80000), DatePosted: "2024-03-01"},
		},
	}}
	rep := &recordingReporter{}
	p := ingest.New(st, f, grid("enablement"))
	p.Reporters = []ingest.Reporter{rep}

	sum, err := p.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.New)
	assert.Equal(t, 1, sum.Duplicate)
	assert.Equal(t, 1, sum.Bouncer)
	assert.Equal(t, 0, sum.Invalid)
	assert.Equal(t, 3, sum.Fetched)
	assert.NotEmpty(t, sum.RunID)
	require.Len(t, rep.got, 1)
	assert.Equal(t, sum.RunID, rep.got[0].RunID)

	recs, err := st.Query(ctx, store.Query{})
	require.NoError(t, err)
	require.Len(t, recs, 2)

	var c *model.JobRecord
	for i := range recs {
		if recs[i].URL == "https://jobs.example/c" {
			c = &recs[i]
		}
	}
	require.NotNil(t, c)
	assert.Equal(t, model.LevelManagement, c.Level)
	assert.Equal(t, model.CategoryInstructionalDesign, c.Category)
	require.NotNil(t, c.Salary)
	assert.Equal(t, "$80K+", *c.Salary)
	require.NotNil(t, c.DatePosted)
	assert.Equal(t, "2024-03-01", c.DatePosted.Format("2006-01-02"))
	assert.False(t, c.CreatedAt.IsZero())
}

func TestRun_Idempotent(t *testing.T) {
	ctx := context.Background()
	st := openMemory(t)
	f := &stubFetcher{byTerm: map[string][]model.Posting{
		"training": {
			{Title: "Learning Experience Designer", URL: "https://jobs.example/1"},
			{Title: "Training Manager", URL: "https://jobs.example/2"},
		},
	}}
	p := ingest.New(st, f, grid("training"))

	first, err := p.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, first.New)

	second, err := p.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second.New)
	assert.Equal(t, 2, second.Duplicate)

	n, err := st.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestRun_OverlappingSearchesStoreOnce(t *testing.T) {
	ctx := context.Background()
	st := openMemory(t)
	same := model.Posting{Title: "L&D Specialist", URL: "https://jobs.example/x"}
	f := &stubFetcher{byTerm: map[string][]model.Posting{
		"l&d":      {same},
		"training": {same},
	}}

	sum, err := ingest.New(st, f, grid("l&d", "training")).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.New)
	assert.Equal(t, 1, sum.Duplicate)
}

func TestRun_InvalidAndEmptyURL(t *testing.T) {
	ctx := context.Background()
	st := openMemory(t)
	f := &stubFetcher{byTerm: map[string][]model.Posting{
		"training": {
			{Title: "Software Engineer", URL: "https://jobs.example/se"},
			{Title: "Corporate Trainer", URL: ""},
		},
	}}

	sum, err := ingest.New(st, f, grid("training")).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Invalid)
	assert.Equal(t, 1, sum.Fetched)
	assert.Equal(t, 0, sum.New)
}

// countingStore counts insert attempts made inside transactions.
type countingStore struct {
	store.Store
	inserts int
}

func (s *countingStore) InTx(ctx context.Context, fn func(q store.Querier) error) error {
	return s.Store.InTx(ctx, func(q store.Querier) error {
		return fn(countingQuerier{Querier: q, inserts: &s.inserts})
	})
}

type countingQuerier struct {
	store.Querier
	inserts *int
}

func (q countingQuerier) InsertIfAbsent(ctx context.Context, rec *model.JobRecord) (bool, error) {
	*q.inserts++
	return q.Querier.InsertIfAbsent(ctx, rec)
}

func TestRun_BlankURLDoesNotAbortRun(t *testing.T) {
	ctx := context.Background()
	st := openMemory(t)
	f := &stubFetcher{byTerm: map[string][]model.Posting{
		"a": {{Title: "Corporate Trainer", URL: "https://jobs.example/good"}},
		"b": {{Title: "Corporate Trainer", URL: "   "}},
	}}

	sum, err := ingest.New(st, f, grid("a", "b")).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.New)
	assert.Equal(t, 1, sum.Fetched)

	n, err := st.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestRun_NormalizedURLIsDuplicateOnRerun(t *testing.T) {
	long := "https://jobs.example/" + strings.Repeat("x", 2100)
	cases := []struct {
		name    string
		url     string
		wantLen int
	}{
		{"surrounding whitespace", "  https://jobs.example/padded \t", len("https://jobs.example/padded")},
		{"longer than column", long, 2000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			st := &countingStore{Store: openMemory(t)}
			f := &stubFetcher{byTerm: map[string][]model.Posting{
				"training": {{Title: "Training Manager", URL: tc.url}},
			}}
			p := ingest.New(st, f, grid("training"))

			first, err := p.Run(ctx)
			require.NoError(t, err)
			assert.Equal(t, 1, first.New)
			assert.Equal(t, 1, st.inserts)

			second, err := p.Run(ctx)
			require.NoError(t, err)
			assert.Equal(t, 0, second.New)
			assert.Equal(t, 1, second.Duplicate)
			assert.Equal(t, 1, st.inserts, "rerun must stop at the existence check")

			recs, err := st.Query(ctx, store.Query{})
			require.NoError(t, err)
			require.Len(t, recs, 1)
			assert.Equal(t, tc.wantLen, utf8.RuneCountInString(recs[0].URL))
			assert.Equal(t, strings.TrimSpace(recs[0].URL), recs[0].URL)
		})
	}
}

func TestRun_FetchFailureContinues(t *testing.T) {
	ctx := context.Background()
	st := openMemory(t)
	f := &stubFetcher{
		byTerm: map[string][]model.Posting{
			"training": {{Title: "Training Coordinator", URL: "https://jobs.example/t"}},
		},
		fail: map[string]error{"enablement": errors.New("upstream 502")},
	}

	sum, err := ingest.New(st, f, grid("enablement", "training")).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Pairs)
	assert.Equal(t, 1, sum.FailedPairs)
	assert.Equal(t, 1, sum.New)
	assert.Len(t, f.calls, 2)
}

func TestRun_ReporterErrorIsNotFatal(t *testing.T) {
	st := openMemory(t)
	f := &stubFetcher{byTerm: map[string][]model.Posting{
		"training": {{Title: "Training Lead", URL: "https://jobs.example/l"}},
	}}
	p := ingest.New(st, f, grid("training"))
	p.Reporters = []ingest.Reporter{&recordingReporter{err: errors.New("telegram down")}}

	sum, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.New)
}

func TestRun_ProgressCallback(t *testing.T) {
	st := openMemory(t)
	f := &stubFetcher{}
	g := grid("a", "b")
	g.Locations = []string{"Remote", "Tampa, FL"}

	var seen []int
	p := ingest.New(st, f, g)
	p.Progress = func(done, total int) {
		assert.Equal(t, 4, total)
		seen = append(seen, done)
	}
	_, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, seen)
}

func TestRun_CancelledContextRollsBack(t *testing.T) {
	st := openMemory(t)
	f := &stubFetcher{byTerm: map[string][]model.Posting{
		"a": {{Title: "Training Specialist", URL: "https://jobs.example/s"}},
	}}
	g := grid("a", "b")
	g.Delay = 1 << 40

	ctx, cancel := context.WithCancel(context.Background())
	p := ingest.New(st, f, g)
	p.Progress = func(done, _ int) {
		if done == 1 {
			cancel()
		}
	}
	_, err := p.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	n, err := st.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTag(t *testing.T) {
	rec := ingest.Tag(model.Posting{
		Title: "Senior Sales Enablement Lead", URL: "https://jobs.example/e",
		MinAmount: amount(95000), MaxAmount: amount(120000), Interval: "yearly",
		DatePosted: "not a date",
	})
	assert.Equal(t, model.LevelManagement, rec.Level)
	assert.Equal(t, model.CategoryEnablement, rec.Category)
	require.NotNil(t, rec.Salary)
	assert.Equal(t, "$95K - $120K/yr", *rec.Salary)
	assert.Nil(t, rec.DatePosted)
}
