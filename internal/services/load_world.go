package services

import (
	"context"
	"fmt"
	"tour-lab/internal/domain"
	"tour-lab/internal/platform/obs"
	"tour-lab/internal/ports"
)

// LoadWorld reads the instance from repo and rejects incomplete distance
// tables up front, before any tour is measured.
func LoadWorld(ctx context.Context, repo ports.WorldRepository) (_ *domain.World, err error) {
	defer obs.Time(ctx, "world.load")(&err)

	locs, err := repo.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load world: list locations: %w", err)
	}

	entries, err := repo.ListDistances(ctx)
	if err != nil {
		return nil, fmt.Errorf("load world: list distances: %w", err)
	}

	table, err := domain.NewDistanceTable(entries)
	if err != nil {
		return nil, fmt.Errorf("load world: %w", err)
	}

	world, err := domain.NewWorld(locs, table)
	if err != nil {
		return nil, fmt.Errorf("load world: %w", err)
	}

	if err := world.CheckComplete(); err != nil {
		return nil, fmt.Errorf("load world: %w", err)
	}

	return world, nil
}
