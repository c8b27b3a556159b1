package cachesvc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campushq/placetrack/core"
	"github.com/campushq/placetrack/core/analytics"
	"github.com/campushq/placetrack/core/application"
)

const globalStatsKey = "analytics:global_stats"

// StatsCache caches the admin global-stats aggregate in Redis. Writes to the
// application store invalidate it.
type StatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

var (
	_ analytics.Cache              = (*StatsCache)(nil)
	_ application.StatsInvalidator = (*StatsCache)(nil)
)

func NewStatsCache(conf *core.Config) *StatsCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	return &StatsCache{rdb: rdb, ttl: conf.Redis.StatsTTL}
}

// GetGlobalStats returns the cached aggregate, or nil on a miss.
func (c *StatsCache) GetGlobalStats(ctx context.Context) (*analytics.GlobalStats, error) {
	b, err := c.rdb.Get(ctx, globalStatsKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var stats analytics.GlobalStats
	if err := json.Unmarshal(b, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *StatsCache) SetGlobalStats(ctx context.Context, stats analytics.GlobalStats) error {
	b, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, globalStatsKey, b, c.ttl).Err()
}

func (c *StatsCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, globalStatsKey).Err()
}
