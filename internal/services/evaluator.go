package services

import (
	"errors"
	"fmt"
	"tour-lab/internal/domain"

	"go.uber.org/zap"
)

// InvalidTourCost is the cost reported for a tour that fails validation.
// Search drivers should treat it as "reject and keep searching".
const InvalidTourCost = 9999999

// TourErrorKind classifies why a tour is not a permutation of the LocationSet.
type TourErrorKind string

const (
	TooManyVisits     TourErrorKind = "too_many_visits"
	MissingVisit      TourErrorKind = "missing_visit"
	UnrecognizedVisit TourErrorKind = "unrecognized_visit"
)

// TourError describes the first validation failure found in a tour.
type TourError struct {
	Kind TourErrorKind
	// Name is the offending identifier; empty for TooManyVisits.
	Name string
}

func (e *TourError) Error() string {
	switch e.Kind {
	case TooManyVisits:
		return "route has too many visits"
	case MissingVisit:
		return fmt.Sprintf("route is missing a visit to %s", e.Name)
	case UnrecognizedVisit:
		return fmt.Sprintf("route has an unrecognized visit %s", e.Name)
	default:
		return fmt.Sprintf("invalid route: %s", e.Kind)
	}
}

// Evaluator validates and measures tours against one World.
type Evaluator struct {
	world *domain.World
	log   *zap.Logger
}

// NewEvaluator returns an Evaluator; a nil logger discards diagnostics.
func NewEvaluator(world *domain.World, log *zap.Logger) (*Evaluator, error) {
	if world == nil {
		return nil, errors.New("new evaluator: world is nil")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Evaluator{world: world, log: log}, nil
}

func (e *Evaluator) World() *domain.World { return e.world }

// Check reports whether tour is a permutation of exactly the LocationSet.
// Membership is authoritative: a short tour always fails the missing-visit scan.
func (e *Evaluator) Check(tour domain.Tour) error {
	if len(tour) > e.world.Len() {
		return &TourError{Kind: TooManyVisits}
	}

	present := make(map[string]struct{}, len(tour))
	for _, name := range tour {
		present[name] = struct{}{}
	}

	for _, name := range e.world.Names() {
		if _, ok := present[name]; !ok {
			return &TourError{Kind: MissingVisit, Name: name}
		}
	}

	for _, name := range tour {
		if !e.world.Contains(name) {
			return &TourError{Kind: UnrecognizedVisit, Name: name}
		}
	}

	return nil
}

// Verify is Check with diagnostics: it logs why a tour is rejected and
// returns false instead of an error.
func (e *Evaluator) Verify(tour domain.Tour) bool {
	if len(tour) < e.world.Len() {
		// Advisory only; the membership scan below decides.
		e.log.Warn("route has a visit missed out",
			zap.Int("visits", len(tour)),
			zap.Int("locations", e.world.Len()),
		)
	}

	if err := e.Check(tour); err != nil {
		var te *TourError
		if errors.As(err, &te) {
			e.log.Warn(te.Error(), zap.String("kind", string(te.Kind)), zap.String("name", te.Name))
		}
		return false
	}

	return true
}

// Measure returns the round-trip cost depot -> tour... -> depot.
//
// An invalid tour costs InvalidTourCost with a nil error. A missing
// distance entry is a configuration bug and is returned as an error.
func (e *Evaluator) Measure(tour domain.Tour) (float64, error) {
	if !e.Verify(tour) {
		return InvalidTourCost, nil
	}

	legs, err := e.legs(tour)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, l := range legs {
		total += l.Cost
	}
	return total, nil
}

// LegCost is one hop of a measured tour.
type LegCost struct {
	From string
	To   string
	Cost float64
}

// LegCosts returns the per-hop breakdown of a valid tour, including the
// closing hop back to the depot.
func (e *Evaluator) LegCosts(tour domain.Tour) ([]LegCost, error) {
	if err := e.Check(tour); err != nil {
		return nil, fmt.Errorf("leg costs: %w", err)
	}
	return e.legs(tour)
}

func (e *Evaluator) legs(tour domain.Tour) ([]LegCost, error) {
	out := make([]LegCost, 0, len(tour)+1)

	prev := domain.Depot
	for _, city := range tour {
		d, err := e.world.Distances().Lookup(prev, city)
		if err != nil {
			return nil, fmt.Errorf("measure tour: %w", err)
		}
		out = append(out, LegCost{From: prev, To: city, Cost: d})
		prev = city
	}

	d, err := e.world.Distances().Lookup(prev, domain.Depot)
	if err != nil {
		return nil, fmt.Errorf("measure tour: closing leg: %w", err)
	}
	out = append(out, LegCost{From: prev, To: domain.Depot, Cost: d})

	return out, nil
}
