// jobboard-reset
//
// Deletes every stored job record. Classification labels are fixed at
// ingestion time, so this is how rule changes are applied: reset, then
// ingest again.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"ldexchange/jobboard/internal/config"
	"ldexchange/jobboard/internal/db"
	"ldexchange/jobboard/internal/store"
	"ldexchange/jobboard/internal/view"
)

func main() {
	yes := flag.Bool("yes", false, "confirm deletion of every job record")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[reset] Config error: %v", err)
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		log.Fatalf("[reset] Store: %v", err)
	}
	defer st.Close()

	n, err := st.Count(ctx)
	if err != nil {
		log.Fatalf("[reset] Count: %v", err)
	}
	if !*yes {
		fmt.Printf("%d job records would be deleted. Re-run with -yes to confirm.\n", n)
		return
	}

	deleted, err := st.DeleteAll(ctx)
	if err != nil {
		log.Fatalf("[reset] Delete: %v", err)
	}

	if cfg.RedisURL != "" {
		if rdb, err := db.NewRedisClient(ctx, cfg.RedisURL); err != nil {
			log.Printf("[reset] Redis unavailable, snapshot left to expire: %v", err)
		} else {
			if err := view.NewRedisCache(rdb, view.SnapshotKey, view.DefaultTTL).Invalidate(ctx); err != nil {
				log.Printf("[reset] %v", err)
			}
			rdb.Close()
		}
	}
	fmt.Printf("Deleted %d job records.\n", deleted)
}
