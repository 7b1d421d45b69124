package scraper

import (
	"context"
	"time"
)

// Wait pauses for d between searches. It returns ctx.Err() if ctx is done
// first.
func Wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
