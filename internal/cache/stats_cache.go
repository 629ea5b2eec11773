package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"ascdash/internal/model"
)

// StatsCache caches computed dashboard stats; ingestion invalidates it so
// the dashboard never serves stale aggregates for long
type StatsCache interface {
	Set(ctx context.Context, key string, stats *model.DashboardStats) error
	Get(ctx context.Context, key string) (*model.DashboardStats, error)
	InvalidateAll(ctx context.Context) error
}

type statsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStatsCache(client *redis.Client, ttl time.Duration) StatsCache {
	return &statsCache{client: client, ttl: ttl}
}

func (c *statsCache) Set(ctx context.Context, key string, stats *model.DashboardStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "stats:"+key, data, c.ttl).Err()
}

func (c *statsCache) Get(ctx context.Context, key string) (*model.DashboardStats, error) {
	data, err := c.client.Get(ctx, "stats:"+key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var stats model.DashboardStats
	err = json.Unmarshal([]byte(data), &stats)
	return &stats, err
}

func (c *statsCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "stats:*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
