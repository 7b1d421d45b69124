package notify

import (
	"context"

	"ldexchange/jobboard/internal/ingest"
	"ldexchange/jobboard/internal/view"
)

// CacheInvalidator drops a shared view snapshot after a run that stored
// new records, so front ends see them before the TTL lapses.
type CacheInvalidator struct {
	Cache view.Cache
}

// Report implements ingest.Reporter.
func (c CacheInvalidator) Report(ctx context.Context, s ingest.Summary) error {
	if s.New == 0 {
		return nil
	}
	return c.Cache.Invalidate(ctx)
}
