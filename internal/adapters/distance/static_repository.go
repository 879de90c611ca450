package distance

import (
	"context"
	"tour-lab/internal/domain"
)

// StaticRepository is an in-memory WorldRepository. It backs the CSV
// source; distancetest builds fixtures on it.
type StaticRepository struct {
	locations []domain.Location
	m         map[domain.Leg]float64
}

// NewStaticRepositoryFromMap wraps an already keyed distance map.
func NewStaticRepositoryFromMap(locations []domain.Location, entries map[domain.Leg]float64) *StaticRepository {
	m := make(map[domain.Leg]float64, len(entries))
	for k, v := range entries {
		m[k] = v
	}

	locs := make([]domain.Location, len(locations))
	copy(locs, locations)
	return &StaticRepository{locations: locs, m: m}
}

func (r *StaticRepository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	out := make([]domain.Location, len(r.locations))
	copy(out, r.locations)
	return out, nil
}

func (r *StaticRepository) ListDistances(ctx context.Context) (map[domain.Leg]float64, error) {
	out := make(map[domain.Leg]float64, len(r.m))
	for k, v := range r.m {
		out[k] = v
	}
	return out, nil
}
