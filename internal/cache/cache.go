package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/models"
)

// ErrMiss is returned when no report is cached for a session.
var ErrMiss = errors.New("report not cached")

// ReportCache keeps rendered interview reports in Redis so repeated report
// requests for a completed session skip the build step.
type ReportCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewReportCache(rdb *redis.Client, ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ReportCache{rdb: rdb, ttl: ttl}
}

func reportKey(sessionID string) string {
	return fmt.Sprintf("report:%s", sessionID)
}

func (c *ReportCache) Get(ctx context.Context, sessionID string) (*models.Report, error) {
	if c == nil || c.rdb == nil {
		return nil, ErrMiss
	}

	data, err := c.rdb.Get(ctx, reportKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}

	var report models.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return &report, nil
}

func (c *ReportCache) Set(ctx context.Context, report *models.Report) error {
	if c == nil || c.rdb == nil {
		return nil
	}

	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return c.rdb.Set(ctx, reportKey(report.SessionID), data, c.ttl).Err()
}

func (c *ReportCache) Ping(ctx context.Context) error {
	if c == nil || c.rdb == nil {
		return errors.New("redis client not initialized")
	}
	return c.rdb.Ping(ctx).Err()
}
