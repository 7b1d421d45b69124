package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ldexchange/jobboard/internal/classify"
	"ldexchange/jobboard/internal/model"
	"ldexchange/jobboard/internal/scraper"
	"ldexchange/jobboard/internal/store"
)

// Summary is the outcome of one ingestion run.
type Summary struct {
	RunID       string    `json:"runId"`
	StartedAt   time.Time `json:"startedAt"`
	FinishedAt  time.Time `json:"finishedAt"`
	Pairs       int       `json:"pairs"`
	FailedPairs int       `json:"failedPairs"`
	Fetched     int       `json:"fetched"`
	New         int       `json:"new"`
	Duplicate   int       `json:"duplicate"`
	Invalid     int       `json:"invalid"`
	Bouncer     int       `json:"bouncer"`
}

// Duration is the wall time the run took.
func (s Summary) Duration() time.Duration { return s.FinishedAt.Sub(s.StartedAt) }

// Reporter receives the summary of every committed run.
type Reporter interface {
	Report(ctx context.Context, s Summary) error
}

// Pipeline runs the search grid against a fetcher and persists what
// survives classification.
type Pipeline struct {
	store   store.Store
	fetcher scraper.Fetcher
	grid    model.SearchGrid

	// Reporters are called after a successful commit. Their errors are
	// logged and never fail the run.
	Reporters []Reporter
	// Progress, when set, is called after each search pair.
	Progress func(done, total int)

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New constructs a Pipeline.
func New(st store.Store, f scraper.Fetcher, grid model.SearchGrid) *Pipeline {
	return &Pipeline{
		store:   st,
		fetcher: f,
		grid:    grid,
		now:     time.Now,
		sleep:   scraper.Wait,
	}
}

// Run executes one full pass over the grid inside a single transaction.
// A failed search pair is logged and skipped; a store error aborts the run
// and rolls back everything it wrote.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	sum := Summary{RunID: uuid.NewString(), StartedAt: p.now()}
	log := slog.With("run_id", sum.RunID)
	pairs := p.grid.Pairs()
	sum.Pairs = len(pairs)
	log.Info("ingest run starting", "pairs", len(pairs))

	err := p.store.InTx(ctx, func(q store.Querier) error {
		for i, params := range pairs {
			if i > 0 && p.grid.Delay > 0 {
				if err := p.sleep(ctx, p.grid.Delay); err != nil {
					return err
				}
			}
			if err := p.runPair(ctx, log, q, params, &sum); err != nil {
				return err
			}
			if p.Progress != nil {
				p.Progress(i+1, len(pairs))
			}
		}
		return nil
	})
	sum.FinishedAt = p.now()
	if err != nil {
		log.Error("ingest run failed, rolled back", "err", err)
		return sum, err
	}

	log.Info("ingest run done",
		"new", sum.New, "duplicate", sum.Duplicate, "invalid", sum.Invalid,
		"bouncer", sum.Bouncer, "failed_pairs", sum.FailedPairs,
		"duration", sum.Duration())

	for _, r := range p.Reporters {
		if rerr := r.Report(ctx, sum); rerr != nil {
			log.Warn("reporter failed", "err", rerr)
		}
	}
	return sum, nil
}

func (p *Pipeline) runPair(ctx context.Context, log *slog.Logger, q store.Querier, params model.SearchParams, sum *Summary) error {
	postings, err := p.fetcher.Fetch(ctx, params)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var fe *scraper.FetchError
		if !errors.As(err, &fe) {
			err = &scraper.FetchError{Term: params.SearchTerm, Location: params.Location, Err: err}
		}
		log.Warn("search failed, continuing", "err", err)
		sum.FailedPairs++
		return nil
	}
	log.Debug("search fetched", "term", params.SearchTerm, "location", params.Location, "count", len(postings))

	for _, posting := range postings {
		posting.URL = store.NormalizeURL(posting.URL)
		if posting.URL == "" {
			continue
		}
		sum.Fetched++
		end, err := p.process(ctx, q, posting)
		if err != nil {
			return err
		}
		switch end {
		case StatePersisted:
			sum.New++
		case StateSkippedDuplicate:
			sum.Duplicate++
		case StateSkippedInvalid:
			sum.Invalid++
		case StateSkippedBouncer:
			sum.Bouncer++
		}
	}
	return nil
}

// process walks one posting to a terminal state.
func (p *Pipeline) process(ctx context.Context, q store.Querier, posting model.Posting) (State, error) {
	c := candidate{state: StatePending}
	if err := c.move(StateFetched); err != nil {
		return c.state, err
	}

	exists, err := q.Exists(ctx, posting.URL)
	if err != nil {
		return c.state, fmt.Errorf("exists %s: %w", posting.URL, err)
	}
	if exists {
		return StateSkippedDuplicate, c.move(StateSkippedDuplicate)
	}
	if err := c.move(StateDeduped); err != nil {
		return c.state, err
	}

	if !classify.IsValidRole(posting.Title) {
		return StateSkippedInvalid, c.move(StateSkippedInvalid)
	}
	if err := c.move(StateValidated); err != nil {
		return c.state, err
	}

	if classify.NeedsBouncer(posting.Title) && !classify.IsValidEnablement(posting.Title, posting.Description) {
		return StateSkippedBouncer, c.move(StateSkippedBouncer)
	}
	rec := Tag(posting)
	rec.CreatedAt = p.now()
	if err := c.move(StateTagged); err != nil {
		return c.state, err
	}

	store.Normalize(&rec)
	inserted, err := q.InsertIfAbsent(ctx, &rec)
	if err != nil {
		return c.state, fmt.Errorf("insert %s: %w", posting.URL, err)
	}
	if !inserted {
		return StateSkippedDuplicate, c.move(StateSkippedDuplicate)
	}
	return StatePersisted, c.move(StatePersisted)
}

// Tag derives the stored record for a posting that passed validation.
func Tag(posting model.Posting) model.JobRecord {
	return model.JobRecord{
		Title:       posting.Title,
		Company:     posting.Company,
		Location:    posting.Location,
		DatePosted:  ParseDatePosted(posting.DatePosted),
		URL:         posting.URL,
		Description: posting.Description,
		Level:       classify.Level(posting.Title),
		Category:    classify.Category(posting.Title),
		Salary:      classify.FormatSalary(posting.MinAmount, posting.MaxAmount, posting.Interval, posting.Currency),
	}
}
