// Package scheduler wires up the cron job that periodically triggers an
// ingestion run.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"ldexchange/jobboard/internal/ingest"
)

// Runner performs one ingestion run.
type Runner interface {
	Run(ctx context.Context) (ingest.Summary, error)
}

// Scheduler wraps robfig/cron and manages the ingestion loop. A tick that
// fires while a run is still in progress is skipped.
type Scheduler struct {
	cron   *cron.Cron
	runner Runner
	spec   string // cron spec, e.g. "@every 24h"

	// OnRun, when set, receives the outcome of every run.
	OnRun func(ingest.Summary, error)

	wg sync.WaitGroup
}

// New creates a Scheduler that fires every intervalHours hours.
func New(runner Runner, intervalHours int) *Scheduler {
	return NewWithSpec(runner, fmt.Sprintf("@every %dh", intervalHours))
}

// NewWithSpec creates a Scheduler for an arbitrary cron spec.
func NewWithSpec(runner Runner, spec string) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cron.DefaultLogger)),
		runner: runner,
		spec:   spec,
	}
}

// Start registers the job and starts the scheduler. It also runs once
// immediately so the store is populated without waiting for the first tick.
// The immediate run and the cron ticks share one skip-if-running guard.
func (s *Scheduler) Start(ctx context.Context) error {
	job := cron.NewChain(cron.SkipIfStillRunning(cron.DefaultLogger)).Then(cron.FuncJob(func() {
		s.runOnce(ctx)
	}))
	if _, err := s.cron.AddJob(s.spec, job); err != nil {
		return fmt.Errorf("cron.AddJob: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started: spec %s", s.spec)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		job.Run()
	}()
	return nil
}

// Stop stops the scheduler and waits for a run in progress to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.wg.Wait()
	log.Println("[scheduler] Cron stopped")
}

func (s *Scheduler) runOnce(ctx context.Context) {
	log.Println("[scheduler] Ingestion run started")
	sum, err := s.runner.Run(ctx)
	if err != nil {
		log.Printf("[scheduler] Ingestion run %s failed: %v", sum.RunID, err)
	} else {
		log.Printf("[scheduler] Ingestion run %s complete: new=%d duplicate=%d invalid=%d bouncer=%d",
			sum.RunID, sum.New, sum.Duplicate, sum.Invalid, sum.Bouncer)
	}
	if s.OnRun != nil {
		s.OnRun(sum, err)
	}
}
