// Package distancetest builds small in-memory instances for tests.
package distancetest

import (
	"tour-lab/internal/adapters/distance"
	"tour-lab/internal/domain"
)

// Pair is one directed distance entry.
type Pair struct {
	From, To string
	Dist     float64
}

// Names builds a coordinate-free location list.
func Names(names ...string) []domain.Location {
	out := make([]domain.Location, 0, len(names))
	for _, n := range names {
		out = append(out, domain.Location{Name: n})
	}
	return out
}

// Symmetric expands each pair into both directions.
func Symmetric(pairs ...Pair) []Pair {
	out := make([]Pair, 0, 2*len(pairs))
	for _, p := range pairs {
		out = append(out, p, Pair{From: p.To, To: p.From, Dist: p.Dist})
	}
	return out
}

// Repository serves locations and pairs as a WorldRepository. Later pairs
// win over earlier ones for the same leg.
func Repository(locations []domain.Location, pairs []Pair) *distance.StaticRepository {
	m := make(map[domain.Leg]float64, len(pairs))
	for _, p := range pairs {
		m[domain.Leg{From: p.From, To: p.To}] = p.Dist
	}
	return distance.NewStaticRepositoryFromMap(locations, m)
}

// ThreeStops is the A, B, C instance where ABC costs 16 and ACB costs 13.
func ThreeStops() *distance.StaticRepository {
	return Repository(Names("A", "B", "C"), Symmetric(
		Pair{From: "*", To: "A", Dist: 1},
		Pair{From: "*", To: "B", Dist: 5},
		Pair{From: "*", To: "C", Dist: 9},
		Pair{From: "A", To: "B", Dist: 2},
		Pair{From: "A", To: "C", Dist: 3},
		Pair{From: "B", To: "C", Dist: 4},
	))
}
