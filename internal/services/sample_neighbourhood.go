package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"tour-lab/internal/domain"

	"github.com/montanaflynn/stats"
)

type SampleRequest struct {
	Tour     domain.Tour
	Operator Operator
	Samples  int
	// Workers defaults to 4 and is capped at Samples.
	Workers int
	Seed    int64
}

// NeighbourhoodStats summarizes the cost of sampled neighbours of one tour.
// Invalid neighbours cannot occur because every operator is a permutation.
type NeighbourhoodStats struct {
	BaseCost  float64
	Samples   int
	Improving int
	Best      domain.Tour
	BestCost  float64
	Mean      float64
	Median    float64
	Min       float64
	Max       float64
	P90       float64
	StdDev    float64
}

type sampleResult struct {
	costs    []float64
	best     domain.Tour
	bestCost float64
	err      error
}

// DeriveSeed mixes a base seed and a worker id into an independent seed
// (SplitMix64 finalizer), so workers never share a random stream.
func DeriveSeed(base int64, stream uint64) int64 {
	x := uint64(base) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// SampleNeighbourhood measures req.Samples perturbed neighbours of req.Tour.
//
// This is an inspection tool: neighbours are measured and summarized, never
// accepted or iterated on. The result is deterministic for a given
// (Seed, Workers, Samples).
func SampleNeighbourhood(ctx context.Context, eval *Evaluator, req SampleRequest) (*NeighbourhoodStats, error) {
	if eval == nil {
		return nil, errors.New("sample neighbourhood: evaluator is nil")
	}
	if req.Samples <= 0 {
		return nil, fmt.Errorf("sample neighbourhood: samples must be > 0 (got %d)", req.Samples)
	}
	if _, err := ParseOperator(string(req.Operator)); err != nil {
		return nil, fmt.Errorf("sample neighbourhood: %w", err)
	}
	if err := eval.Check(req.Tour); err != nil {
		return nil, fmt.Errorf("sample neighbourhood: base tour: %w", err)
	}

	base, err := eval.Measure(req.Tour)
	if err != nil {
		return nil, fmt.Errorf("sample neighbourhood: measure base: %w", err)
	}

	workers := req.Workers
	if workers <= 0 {
		workers = 4
	}
	if workers > req.Samples {
		workers = req.Samples
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	resultsCh := make(chan sampleResult, workers)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		// Spread the remainder over the first workers.
		quota := req.Samples / workers
		if w < req.Samples%workers {
			quota++
		}

		wg.Add(1)
		go func(worker int, quota int) {
			defer wg.Done()

			p := NewSeededPerturber(DeriveSeed(req.Seed, uint64(worker)))
			res := sampleResult{costs: make([]float64, 0, quota)}

			for i := 0; i < quota; i++ {
				if err := ctx.Err(); err != nil {
					resultsCh <- sampleResult{err: err}
					return
				}

				cand, err := p.Apply(req.Operator, req.Tour)
				if err != nil {
					resultsCh <- sampleResult{err: fmt.Errorf("worker %d: %w", worker, err)}
					cancel()
					return
				}
				cost, err := eval.Measure(cand)
				if err != nil {
					resultsCh <- sampleResult{err: fmt.Errorf("worker %d: %w", worker, err)}
					cancel()
					return
				}

				res.costs = append(res.costs, cost)
				if res.best == nil || cost < res.bestCost {
					res.best = cand
					res.bestCost = cost
				}
			}

			resultsCh <- res
		}(w, quota)
	}

	wg.Wait()
	close(resultsCh)

	// Results arrive in any order; equal best costs break on the tour key.
	var (
		costs    = make([]float64, 0, req.Samples)
		best     domain.Tour
		bestCost float64
		firstErr error
	)
	for res := range resultsCh {
		if res.err != nil {
			if firstErr == nil || errors.Is(firstErr, context.Canceled) {
				firstErr = res.err
			}
			continue
		}
		costs = append(costs, res.costs...)
		if res.best == nil {
			continue
		}
		if best == nil || res.bestCost < bestCost || (res.bestCost == bestCost && res.best.Key() < best.Key()) {
			best = res.best
			bestCost = res.bestCost
		}
	}
	if firstErr != nil {
		return nil, fmt.Errorf("sample neighbourhood: %w", firstErr)
	}

	out := &NeighbourhoodStats{
		BaseCost: base,
		Samples:  len(costs),
		Best:     best,
		BestCost: bestCost,
	}
	for _, c := range costs {
		if c < base {
			out.Improving++
		}
	}

	if err := summarize(costs, out); err != nil {
		return nil, fmt.Errorf("sample neighbourhood: %w", err)
	}
	return out, nil
}

func summarize(costs []float64, out *NeighbourhoodStats) error {
	data := stats.Float64Data(costs)

	var err error
	if out.Mean, err = stats.Mean(data); err != nil {
		return fmt.Errorf("mean: %w", err)
	}
	if out.Median, err = stats.Median(data); err != nil {
		return fmt.Errorf("median: %w", err)
	}
	if out.Min, err = stats.Min(data); err != nil {
		return fmt.Errorf("min: %w", err)
	}
	if out.Max, err = stats.Max(data); err != nil {
		return fmt.Errorf("max: %w", err)
	}
	if out.P90, err = stats.Percentile(data, 90); err != nil {
		return fmt.Errorf("percentile 90: %w", err)
	}
	if out.StdDev, err = stats.StandardDeviation(data); err != nil {
		return fmt.Errorf("standard deviation: %w", err)
	}

	return nil
}
