package services

import (
	"errors"
	"fmt"
	"math"
	"tour-lab/internal/domain"
)

// ErrNoOptions is returned when the greedy step has nothing left to choose.
var ErrNoOptions = errors.New("no remaining options")

// Neighbour performs one greedy nearest-neighbour step.
//
// current is the last stop of the partial tour, or "" / Depot when the tour
// is empty. Candidates are scanned in LocationSet order and a candidate must
// be in remaining and differ from current; the first strictly smaller
// distance wins, so ties go to the earlier location.
// The returned slice is remaining with exactly one occurrence of the chosen
// identifier removed; remaining itself is not modified.
func Neighbour(world *domain.World, current string, remaining []string) (string, []string, error) {
	if current == "" {
		current = domain.Depot
	}
	if len(remaining) == 0 {
		return "", nil, fmt.Errorf("neighbour of %q: %w", current, ErrNoOptions)
	}

	options := make(map[string]struct{}, len(remaining))
	for _, r := range remaining {
		options[r] = struct{}{}
	}

	best := ""
	bestDist := math.Inf(1)

	// Select next stop by minimum distance (greedy step).
	for _, candidate := range world.Names() {
		if candidate == current {
			continue
		}
		if _, ok := options[candidate]; !ok {
			continue
		}

		d, err := world.Distances().Lookup(current, candidate)
		if err != nil {
			return "", nil, fmt.Errorf("neighbour of %q: %w", current, err)
		}
		if d < bestDist {
			bestDist = d
			best = candidate
		}
	}

	if best == "" {
		return "", nil, fmt.Errorf("neighbour of %q: none of %v is a known location: %w", current, remaining, ErrNoOptions)
	}

	rest := make([]string, 0, len(remaining)-1)
	removed := false
	for _, r := range remaining {
		if !removed && r == best {
			removed = true
			continue
		}
		rest = append(rest, r)
	}

	return best, rest, nil
}

// GreedyTour builds a full tour by repeated Neighbour steps from the depot.
//
// The heuristic minimizes the immediate hop at each step and makes no
// attempt at global optimality.
func GreedyTour(world *domain.World) (domain.Tour, error) {
	return CompleteGreedy(world, nil)
}

// CompleteGreedy extends a partial tour with greedy steps until every
// location is visited. prefix must contain distinct, known locations.
func CompleteGreedy(world *domain.World, prefix domain.Tour) (domain.Tour, error) {
	if world == nil {
		return nil, errors.New("greedy tour: world is nil")
	}

	visited := make(map[string]struct{}, len(prefix))
	for _, p := range prefix {
		if !world.Contains(p) {
			return nil, fmt.Errorf("greedy tour: prefix has unknown location %q", p)
		}
		if _, dup := visited[p]; dup {
			return nil, fmt.Errorf("greedy tour: prefix visits %q twice", p)
		}
		visited[p] = struct{}{}
	}

	remaining := make([]string, 0, world.Len()-len(prefix))
	for _, name := range world.Names() {
		if _, ok := visited[name]; !ok {
			remaining = append(remaining, name)
		}
	}

	tour := prefix.Clone()
	if tour == nil {
		tour = make(domain.Tour, 0, world.Len())
	}

	current := domain.Depot
	if len(tour) > 0 {
		current = tour[len(tour)-1]
	}

	for len(remaining) > 0 {
		next, rest, err := Neighbour(world, current, remaining)
		if err != nil {
			return nil, fmt.Errorf("greedy tour: %w", err)
		}
		tour = append(tour, next)
		remaining = rest
		current = next
	}

	return tour, nil
}
