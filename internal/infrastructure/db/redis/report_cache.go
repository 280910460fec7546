package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskboard/tracker-api/internal/core/ports"
)

const systemReportKey = "analytics:system"

// ReportCache stores the system analytics rollup in Redis for a short TTL.
// The rollup aggregates four collections, so serving the admin dashboard from
// cache keeps repeated loads off the database.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache creates a ReportCache wrapping the given Redis client.
func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	return &ReportCache{client: client, ttl: ttl}
}

// GetSystem returns the cached system report, or nil on a miss.
func (c *ReportCache) GetSystem(ctx context.Context) (*ports.SystemReport, error) {
	raw, err := c.client.Get(ctx, systemReportKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("report cache get: %w", err)
	}

	var report ports.SystemReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("report cache decode: %w", err)
	}
	return &report, nil
}

// SetSystem stores the system report, expiring after the configured TTL.
func (c *ReportCache) SetSystem(ctx context.Context, report *ports.SystemReport) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("report cache encode: %w", err)
	}
	return c.client.Set(ctx, systemReportKey, raw, c.ttl).Err()
}
