package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultKeyPrefix = "tourlab:measure:"

// Redis backed cache of tour costs, shared between server instances.
// Entries expire after TTL; a zero TTL keeps them forever.
type RedisMeasureCache struct {
	Client *redis.Client
	Prefix string
	TTL    time.Duration
}

func NewRedisMeasureCache(client *redis.Client, prefix string, ttl time.Duration) *RedisMeasureCache {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisMeasureCache{Client: client, Prefix: prefix, TTL: ttl}
}

func (r *RedisMeasureCache) Get(ctx context.Context, key string) (float64, bool, error) {
	if r.Client == nil {
		return 0, false, errors.New("redis measure cache: client is nil")
	}

	cost, err := r.Client.Get(ctx, r.Prefix+key).Float64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("redis measure cache: get %q: %w", key, err)
	}

	return cost, true, nil
}

func (r *RedisMeasureCache) Put(ctx context.Context, key string, cost float64) error {
	if r.Client == nil {
		return errors.New("redis measure cache: client is nil")
	}

	val := strconv.FormatFloat(cost, 'g', -1, 64)
	if err := r.Client.Set(ctx, r.Prefix+key, val, r.TTL).Err(); err != nil {
		return fmt.Errorf("redis measure cache: set %q: %w", key, err)
	}

	return nil
}
