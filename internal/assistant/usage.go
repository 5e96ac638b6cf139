package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const usageKeyPrefix = "assistant-usage"

// UsageTracker enforces a daily cap on assistant queries, shared
// across all instances through redis. The counter key is dated, so
// the window resets at midnight regardless of when the first query
// of the day landed.
type UsageTracker struct {
	rdb      redis.Cmdable
	dailyCap int

	// NowFunc is replaceable in tests
	NowFunc func() time.Time
}

func NewUsageTracker(rdb redis.Cmdable, dailyCap int) *UsageTracker {
	return &UsageTracker{
		rdb:      rdb,
		dailyCap: dailyCap,
		NowFunc:  time.Now,
	}
}

func (t *UsageTracker) usageKey() string {
	return fmt.Sprintf("%s||%s", usageKeyPrefix, t.NowFunc().Format("2006-01-02"))
}

// Allow increments today's counter and reports whether the query is
// within the cap. The key expires a day after its first increment;
// by then the date suffix has rolled over anyway.
func (t *UsageTracker) Allow(ctx context.Context) (bool, error) {
	key := t.usageKey()

	count, err := t.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("incr %s: %w", key, err)
	}

	if count == 1 {
		if err := t.rdb.Expire(ctx, key, 24*time.Hour).Err(); err != nil {
			return false, fmt.Errorf("expire %s: %w", key, err)
		}
	}

	return count <= int64(t.dailyCap), nil
}
