package ports

import "context"

// Contract for caching tour costs keyed by a tour's canonical key.
// Implementations must be safe for concurrent use.
type MeasureCache interface {
	// Return the cached cost, and whether it was present.
	Get(ctx context.Context, key string) (float64, bool, error)
	// Store the cost for key.
	Put(ctx context.Context, key string, cost float64) error
}
