package ports

import (
	"context"
	"tour-lab/internal/domain"
)

// Port: a boundary for reading the problem instance from a data source.
type WorldRepository interface {
	// Return the LocationSet in load order.
	ListLocations(ctx context.Context) ([]domain.Location, error)
	// Return every precomputed distance entry.
	ListDistances(ctx context.Context) (map[domain.Leg]float64, error)
}
