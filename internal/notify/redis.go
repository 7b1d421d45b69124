// Package notify forwards ingestion run summaries to outside listeners.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"ldexchange/jobboard/internal/ingest"
)

// ChannelJobsIngested is the Redis channel run summaries are published on.
const ChannelJobsIngested = "EVENT_JOBS_INGESTED"

// RedisPublisher publishes every committed run on ChannelJobsIngested.
type RedisPublisher struct {
	rdb *redis.Client
}

// NewRedisPublisher constructs a RedisPublisher.
func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

// Report implements ingest.Reporter.
func (p *RedisPublisher) Report(ctx context.Context, s ingest.Summary) error {
	event, err := IngestedEvent(s)
	if err != nil {
		return err
	}
	if err := p.rdb.Publish(ctx, ChannelJobsIngested, event).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", ChannelJobsIngested, err)
	}
	return nil
}

// IngestedEvent renders the event payload for a run.
func IngestedEvent(s ingest.Summary) ([]byte, error) {
	event, err := json.Marshal(struct {
		Type string `json:"type"`
		ingest.Summary
	}{Type: ChannelJobsIngested, Summary: s})
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", ChannelJobsIngested, err)
	}
	return event, nil
}
