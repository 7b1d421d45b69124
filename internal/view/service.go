package view

import (
	"context"
	"fmt"
	"time"

	"ldexchange/jobboard/internal/model"
	"ldexchange/jobboard/internal/store"
)

// View is a filtered listing plus its aggregates.
type View struct {
	Filters Filters           `json:"filters"`
	Jobs    []model.JobRecord `json:"jobs"`
	Stats   Stats             `json:"stats"`
}

// Service answers view queries from a cached snapshot of the store.
type Service struct {
	store store.Querier
	cache Cache
	now   func() time.Time
}

// NewService returns a Service. A nil store makes every call fail with
// store.ErrUnavailable; a nil cache disables caching.
func NewService(st store.Querier, cache Cache) *Service {
	if cache == nil {
		cache = NewMemoryCache(0)
	}
	return &Service{store: st, cache: cache, now: time.Now}
}

// WithClock overrides the clock used for "new today".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// View returns the records matching f, newest first, with their stats.
func (s *Service) View(ctx context.Context, f Filters) (View, error) {
	all, err := s.records(ctx)
	if err != nil {
		return View{}, err
	}
	jobs := Apply(all, f)
	return View{Filters: f, Jobs: jobs, Stats: ComputeStats(jobs, s.now())}, nil
}

// Landing returns the home page summary over every record.
func (s *Service) Landing(ctx context.Context) (Landing, error) {
	all, err := s.records(ctx)
	if err != nil {
		return Landing{}, err
	}
	return ComputeLanding(all, s.now()), nil
}

// Locations returns the distinct stored locations for filter dropdowns.
func (s *Service) Locations(ctx context.Context) ([]string, error) {
	if s.store == nil {
		return nil, store.ErrUnavailable
	}
	locs, err := s.store.Locations(ctx)
	if err != nil {
		return nil, fmt.Errorf("locations: %w", err)
	}
	return locs, nil
}

// Invalidate drops the cached snapshot, e.g. after an ingestion run.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Invalidate(ctx)
}

func (s *Service) records(ctx context.Context) ([]model.JobRecord, error) {
	if s.store == nil {
		return nil, store.ErrUnavailable
	}
	return s.cache.Get(ctx, func(ctx context.Context) ([]model.JobRecord, error) {
		recs, err := s.store.Query(ctx, store.Query{})
		if err != nil {
			return nil, fmt.Errorf("load jobs: %w", err)
		}
		return recs, nil
	})
}
