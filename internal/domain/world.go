package domain

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Names may not contain the separators of tour keys (",") or leg keys (":").
const reservedNameChars = ",:"

// World is the read-only problem instance: the LocationSet and its
// DistanceTable. It is built once at startup and shared by reference.
type World struct {
	locations []Location
	index     map[string]int
	distances *DistanceTable
}

// NewWorld validates the location set. Distance completeness is checked
// separately by CheckComplete so loaders can fail fast at startup.
func NewWorld(locations []Location, distances *DistanceTable) (*World, error) {
	if len(locations) == 0 {
		return nil, errors.New("new world: location set must not be empty")
	}
	if distances == nil {
		return nil, errors.New("new world: distance table is nil")
	}

	index := make(map[string]int, len(locations))
	locs := make([]Location, 0, len(locations))
	for i, l := range locations {
		name := strings.TrimSpace(l.Name)
		if name == "" {
			return nil, fmt.Errorf("new world: location at index %d has empty name", i)
		}
		if name == Depot {
			return nil, fmt.Errorf("new world: location at index %d uses reserved name %q", i, Depot)
		}
		if err := l.Coords.Validate(); err != nil {
			return nil, fmt.Errorf("new world: location %q: %w", name, err)
		}
		if strings.ContainsAny(name, reservedNameChars) {
			return nil, fmt.Errorf("new world: location %q contains one of the reserved characters %q", name, reservedNameChars)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("new world: duplicate location %q", name)
		}
		index[name] = len(locs)
		locs = append(locs, Location{Name: name, Coords: l.Coords})
	}

	return &World{locations: locs, index: index, distances: distances}, nil
}

// CheckComplete verifies that every ordered pair over the locations and the
// depot has a distance entry.
func (w *World) CheckComplete() error {
	points := append([]string{Depot}, w.Names()...)
	for _, a := range points {
		for _, b := range points {
			if a == b {
				continue
			}
			if !w.distances.Has(a, b) {
				return fmt.Errorf("incomplete distance table: %q: %w", Leg{From: a, To: b}.Key(), ErrMissingDistance)
			}
		}
	}

	return nil
}

// Locations returns the LocationSet in load order.
func (w *World) Locations() []Location {
	out := make([]Location, len(w.locations))
	copy(out, w.locations)
	return out
}

// Names returns the location identifiers in load order.
func (w *World) Names() []string {
	out := make([]string, len(w.locations))
	for i, l := range w.locations {
		out[i] = l.Name
	}
	return out
}

func (w *World) Len() int { return len(w.locations) }

func (w *World) Contains(name string) bool {
	_, ok := w.index[name]
	return ok
}

func (w *World) Location(name string) (Location, bool) {
	i, ok := w.index[name]
	if !ok {
		return Location{}, false
	}
	return w.locations[i], true
}

func (w *World) Distances() *DistanceTable { return w.distances }

// ParseTour reads a tour in the notation of domain.ParseTour, except that
// text naming a single location is that one stop rather than one stop per
// character.
func (w *World) ParseTour(s string) Tour {
	if name := strings.TrimSpace(s); w.Contains(name) {
		return Tour{name}
	}
	return ParseTour(s)
}

// Fingerprint identifies the instance contents. Two worlds with the same
// locations, coordinates and distances share a fingerprint.
func (w *World) Fingerprint() string {
	h := xxhash.New()
	for _, l := range w.locations {
		_, _ = h.WriteString(l.Name)
		_, _ = h.WriteString("|" + strconv.FormatFloat(l.Coords.Lat, 'g', -1, 64))
		_, _ = h.WriteString("|" + strconv.FormatFloat(l.Coords.Lon, 'g', -1, 64) + "\n")
	}

	legs := make([]Leg, 0, w.distances.Len())
	for leg := range w.distances.m {
		legs = append(legs, leg)
	}
	slices.SortFunc(legs, func(a, b Leg) int { return strings.Compare(a.Key(), b.Key()) })
	for _, leg := range legs {
		_, _ = h.WriteString(leg.Key() + "=" + strconv.FormatFloat(w.distances.m[leg], 'g', -1, 64) + "\n")
	}

	return strconv.FormatUint(h.Sum64(), 16)
}
