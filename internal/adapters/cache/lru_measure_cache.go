package cache

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// In-process cache of tour costs with least-recently-used eviction.
type LRUMeasureCache struct {
	c *lru.Cache[string, float64]
}

func NewLRUMeasureCache(size int) (*LRUMeasureCache, error) {
	c, err := lru.New[string, float64](size)
	if err != nil {
		return nil, fmt.Errorf("lru measure cache: size %d: %w", size, err)
	}
	return &LRUMeasureCache{c: c}, nil
}

func (l *LRUMeasureCache) Get(_ context.Context, key string) (float64, bool, error) {
	cost, ok := l.c.Get(key)
	return cost, ok, nil
}

func (l *LRUMeasureCache) Put(_ context.Context, key string, cost float64) error {
	l.c.Add(key, cost)
	return nil
}

func (l *LRUMeasureCache) Len() int {
	return l.c.Len()
}
