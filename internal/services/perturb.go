package services

import (
	"errors"
	"fmt"
	"math/rand"
	"tour-lab/internal/domain"
)

// ErrTourTooShort is returned when an operator needs two distinct positions.
var ErrTourTooShort = errors.New("tour needs at least 2 stops")

// ErrBadPosition is returned by the positional operators for indices that
// do not address the tour.
var ErrBadPosition = errors.New("bad position")

// Operator names a perturbation.
type Operator string

const (
	OpRelocate Operator = "relocate"
	OpSwap     Operator = "swap"
	OpReverse  Operator = "reverse"
	OpShuffle  Operator = "shuffle"
	OpRandom   Operator = "random"
)

func ParseOperator(s string) (Operator, error) {
	switch op := Operator(s); op {
	case OpRelocate, OpSwap, OpReverse, OpShuffle, OpRandom:
		return op, nil
	default:
		return "", fmt.Errorf("unknown operator %q", s)
	}
}

// Perturber produces randomized neighbours of a tour.
// It owns its random source and is not safe for concurrent use; give each
// goroutine its own Perturber.
type Perturber struct {
	rng *rand.Rand
}

func NewPerturber(rng *rand.Rand) (*Perturber, error) {
	if rng == nil {
		return nil, errors.New("new perturber: rng is nil")
	}
	return &Perturber{rng: rng}, nil
}

func NewSeededPerturber(seed int64) *Perturber {
	return &Perturber{rng: rand.New(rand.NewSource(seed))}
}

// SampleTwo draws two distinct positions in [0, n) without replacement.
// Every ordered pair is equally likely.
func (p *Perturber) SampleTwo(n int) (int, int, error) {
	if n < 2 {
		return 0, 0, fmt.Errorf("sample two of %d: %w", n, ErrTourTooShort)
	}
	i := p.rng.Intn(n)
	j := p.rng.Intn(n - 1)
	if j >= i {
		j++
	}
	return i, j, nil
}

// Apply dispatches to the named operator.
func (p *Perturber) Apply(op Operator, tour domain.Tour) (domain.Tour, error) {
	switch op {
	case OpRelocate:
		return p.Relocate(tour)
	case OpSwap:
		return p.Swap(tour)
	case OpReverse:
		return p.Reverse(tour)
	case OpShuffle:
		return p.Shuffle(tour)
	case OpRandom:
		return p.RandomChange(tour)
	default:
		return nil, fmt.Errorf("apply: unknown operator %q", op)
	}
}

// Relocate removes one random stop and reinserts it at another random position.
func (p *Perturber) Relocate(tour domain.Tour) (domain.Tour, error) {
	i1, i2, err := p.SampleTwo(len(tour))
	if err != nil {
		return nil, fmt.Errorf("relocate: %w", err)
	}
	return RelocateAt(tour, i1, i2)
}

// Swap exchanges two random stops.
func (p *Perturber) Swap(tour domain.Tour) (domain.Tour, error) {
	i1, i2, err := p.SampleTwo(len(tour))
	if err != nil {
		return nil, fmt.Errorf("swap: %w", err)
	}
	return SwapAt(tour, i1, i2)
}

// Reverse reverses a random segment [i1, i2), the 2-opt move.
// Pairs are re-drawn until i1 < i2.
func (p *Perturber) Reverse(tour domain.Tour) (domain.Tour, error) {
	i1, i2, err := p.SampleTwo(len(tour))
	if err != nil {
		return nil, fmt.Errorf("reverse: %w", err)
	}
	for i1 >= i2 {
		i1, i2, _ = p.SampleTwo(len(tour))
	}
	return ReverseAt(tour, i1, i2)
}

// Shuffle returns a uniformly random permutation of the tour (Fisher-Yates).
func (p *Perturber) Shuffle(tour domain.Tour) (domain.Tour, error) {
	if len(tour) < 2 {
		return nil, fmt.Errorf("shuffle: %w", ErrTourTooShort)
	}
	out := tour.Clone()
	for i := len(out) - 1; i > 0; i-- {
		j := p.rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// RandomChange picks Relocate, Swap or Reverse uniformly.
// Shuffle is deliberately not in the draw: it discards all order and is
// called directly by drivers that want a restart.
func (p *Perturber) RandomChange(tour domain.Tour) (domain.Tour, error) {
	switch p.rng.Intn(3) + 1 {
	case 1:
		return p.Relocate(tour)
	case 2:
		return p.Swap(tour)
	default:
		return p.Reverse(tour)
	}
}

func checkIndex(name string, n, i int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%s: index %d out of range [0,%d): %w", name, i, n, ErrBadPosition)
	}
	return nil
}

// RelocateAt moves the stop at i1 so that it sits at i2 in the result.
// i2 indexes the tour after removal, so i2 == len(tour)-1 appends.
func RelocateAt(tour domain.Tour, i1, i2 int) (domain.Tour, error) {
	n := len(tour)
	if n < 2 {
		return nil, fmt.Errorf("relocate: %w", ErrTourTooShort)
	}
	if err := checkIndex("relocate", n, i1); err != nil {
		return nil, err
	}
	if err := checkIndex("relocate", n, i2); err != nil {
		return nil, err
	}

	c := tour[i1]
	rest := make(domain.Tour, 0, n)
	rest = append(rest, tour[:i1]...)
	rest = append(rest, tour[i1+1:]...)

	out := make(domain.Tour, 0, n)
	out = append(out, rest[:i2]...)
	out = append(out, c)
	out = append(out, rest[i2:]...)
	return out, nil
}

// SwapAt exchanges the stops at i1 and i2.
func SwapAt(tour domain.Tour, i1, i2 int) (domain.Tour, error) {
	n := len(tour)
	if n < 2 {
		return nil, fmt.Errorf("swap: %w", ErrTourTooShort)
	}
	if err := checkIndex("swap", n, i1); err != nil {
		return nil, err
	}
	if err := checkIndex("swap", n, i2); err != nil {
		return nil, err
	}

	out := tour.Clone()
	out[i1], out[i2] = out[i2], out[i1]
	return out, nil
}

// ReverseAt reverses the half-open segment [i1, i2).
func ReverseAt(tour domain.Tour, i1, i2 int) (domain.Tour, error) {
	n := len(tour)
	if n < 2 {
		return nil, fmt.Errorf("reverse: %w", ErrTourTooShort)
	}
	if i1 < 0 || i2 > n || i1 >= i2 {
		return nil, fmt.Errorf("reverse: segment [%d,%d) invalid for length %d: %w", i1, i2, n, ErrBadPosition)
	}

	out := tour.Clone()
	for l, r := i1, i2-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out, nil
}
