package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"ascdash/internal/model"
)

// RosterCache keeps roster snapshots in Redis so batch starts don't hit
// Mongo every time. A miss is not an error; callers fall through to the
// repository.
type RosterCache interface {
	Set(ctx context.Context, roster *model.Roster) error
	Get(ctx context.Context, name string) (*model.Roster, error)
	Invalidate(ctx context.Context, name string) error
}

type rosterCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRosterCache(client *redis.Client, ttl time.Duration) RosterCache {
	return &rosterCache{client: client, ttl: ttl}
}

func (c *rosterCache) Set(ctx context.Context, roster *model.Roster) error {
	data, err := json.Marshal(roster)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "roster:"+roster.Name, data, c.ttl).Err()
}

func (c *rosterCache) Get(ctx context.Context, name string) (*model.Roster, error) {
	data, err := c.client.Get(ctx, "roster:"+name).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var roster model.Roster
	err = json.Unmarshal([]byte(data), &roster)
	return &roster, err
}

func (c *rosterCache) Invalidate(ctx context.Context, name string) error {
	return c.client.Del(ctx, "roster:"+name).Err()
}
