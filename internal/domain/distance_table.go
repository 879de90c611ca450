package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrMissingDistance marks a lookup for a pair the table does not contain.
// An incomplete table is a configuration bug; callers must not recover from it.
var ErrMissingDistance = errors.New("missing distance")

// Leg is an ordered (from, to) pair. Either side may be the Depot.
type Leg struct {
	From string
	To   string
}

// Key renders the leg as "from:to", the key format of the distance files.
func (l Leg) Key() string { return l.From + ":" + l.To }

// ParseLegKey splits a "from:to" key.
func ParseLegKey(key string) (Leg, error) {
	from, to, ok := strings.Cut(strings.TrimSpace(key), ":")
	if !ok {
		return Leg{}, fmt.Errorf("parse leg key %q: missing ':' separator", key)
	}
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from == "" || to == "" {
		return Leg{}, fmt.Errorf("parse leg key %q: empty endpoint", key)
	}

	return Leg{From: from, To: to}, nil
}

// DistanceTable is an immutable lookup of precomputed travel cost.
// It is not required to be symmetric; (a,b) and (b,a) are read as entered.
type DistanceTable struct {
	m map[Leg]float64
}

// NewDistanceTable copies entries into a read-only table.
func NewDistanceTable(entries map[Leg]float64) (*DistanceTable, error) {
	m := make(map[Leg]float64, len(entries))
	for leg, d := range entries {
		if leg.From == "" || leg.To == "" {
			return nil, fmt.Errorf("new distance table: empty endpoint in %q", leg.Key())
		}
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return nil, fmt.Errorf("new distance table: %q has non-finite cost %v", leg.Key(), d)
		}
		if d < 0 {
			return nil, fmt.Errorf("new distance table: %q has negative cost %v", leg.Key(), d)
		}
		m[leg] = d
	}

	return &DistanceTable{m: m}, nil
}

// Lookup returns the cost of travelling from -> to.
func (t *DistanceTable) Lookup(from, to string) (float64, error) {
	d, ok := t.m[Leg{From: from, To: to}]
	if !ok {
		return 0, fmt.Errorf("lookup %q: %w", Leg{From: from, To: to}.Key(), ErrMissingDistance)
	}

	return d, nil
}

func (t *DistanceTable) Has(from, to string) bool {
	_, ok := t.m[Leg{From: from, To: to}]
	return ok
}

func (t *DistanceTable) Len() int { return len(t.m) }

// Entries returns a copy of the underlying map.
func (t *DistanceTable) Entries() map[Leg]float64 {
	out := make(map[Leg]float64, len(t.m))
	for k, v := range t.m {
		out[k] = v
	}
	return out
}
