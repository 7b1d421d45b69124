// jobboard-ingest
//
// Scrapes the configured (search term × location) grid, classifies every
// posting, and stores the new ones. Runs once by default; with -schedule it
// keeps running and repeats every SCRAPE_INTERVAL_HOURS.
//
// After each committed run the summary is published to Redis
// (EVENT_JOBS_INGESTED) and Telegram when those are configured.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/cheggaaa/pb/v3"

	"ldexchange/jobboard/internal/config"
	"ldexchange/jobboard/internal/db"
	"ldexchange/jobboard/internal/ingest"
	"ldexchange/jobboard/internal/notify"
	"ldexchange/jobboard/internal/scheduler"
	"ldexchange/jobboard/internal/scraper"
	"ldexchange/jobboard/internal/store"
	"ldexchange/jobboard/internal/ui"
	"ldexchange/jobboard/internal/view"
)

func main() {
	schedule := flag.Bool("schedule", false, "run now, then every SCRAPE_INTERVAL_HOURS until interrupted")
	quiet := flag.Bool("quiet", false, "no progress bar or summary table")
	flag.Parse()

	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[ingest] Config error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Store ───────────────────────────────────────────────────────────────
	st, err := store.Open(ctx, cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		log.Fatalf("[ingest] Store: %v", err)
	}
	defer st.Close()
	log.Println("[ingest] Store ready ✓")

	pipeline := ingest.New(st, scraper.NewAdzunaFetcher(cfg.AdzunaAppID, cfg.AdzunaAppKey), cfg.Search)

	// ── Reporters (optional) ────────────────────────────────────────────────
	if cfg.RedisURL != "" {
		rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Printf("[ingest] Redis unavailable, events disabled: %v", err)
		} else {
			defer rdb.Close()
			pipeline.Reporters = append(pipeline.Reporters,
				notify.NewRedisPublisher(rdb),
				notify.CacheInvalidator{Cache: view.NewRedisCache(rdb, view.SnapshotKey, view.DefaultTTL)},
			)
			log.Println("[ingest] Redis connected ✓")
		}
	}
	if cfg.TelegramEnabled() {
		tg, err := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("[ingest] Telegram disabled: %v", err)
		} else {
			pipeline.Reporters = append(pipeline.Reporters, tg)
		}
	}

	if *schedule {
		runScheduled(ctx, pipeline, cfg.ScrapeIntervalHours, *quiet)
		return
	}

	var bar *pb.ProgressBar
	if !*quiet {
		bar = pb.StartNew(len(cfg.Search.Pairs()))
		pipeline.Progress = func(done, _ int) { bar.SetCurrent(int64(done)) }
	}
	sum, err := pipeline.Run(ctx)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		log.Fatalf("[ingest] Run failed, nothing committed: %v", err)
	}
	if !*quiet {
		if err := ui.RenderSummary(sum); err != nil {
			log.Printf("[ingest] Render summary: %v", err)
		}
	}
}

func runScheduled(ctx context.Context, pipeline *ingest.Pipeline, intervalHours int, quiet bool) {
	s := scheduler.New(pipeline, intervalHours)
	if !quiet {
		s.OnRun = func(sum ingest.Summary, err error) {
			if err == nil {
				ui.RenderSummary(sum)
			}
		}
	}
	if err := s.Start(ctx); err != nil {
		log.Fatalf("[ingest] Scheduler: %v", err)
	}

	<-ctx.Done()
	log.Println("[ingest] Shutting down…")
	s.Stop()
	log.Println("[ingest] Stopped.")
}
