package services

import (
	"context"
	"testing"
	"tour-lab/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleNeighbourhoodThreeStops(t *testing.T) {
	eval, _ := observedEvaluator(t, abcWorld(t))

	st, err := SampleNeighbourhood(context.Background(), eval, SampleRequest{
		Tour:     domain.Tour{"A", "B", "C"},
		Operator: OpSwap,
		Samples:  60,
		Workers:  3,
		Seed:     11,
	})
	require.NoError(t, err)

	assert.Equal(t, 16.0, st.BaseCost)
	assert.Equal(t, 60, st.Samples)
	assert.LessOrEqual(t, st.Min, st.Median)
	assert.LessOrEqual(t, st.Median, st.Max)
	assert.Equal(t, st.Min, st.BestCost)

	// A swap of ABC gives BAC (19), CBA (16) or ACB (13); only ACB improves.
	require.Greater(t, st.Improving, 0)
	assert.Equal(t, domain.Tour{"A", "C", "B"}, st.Best)
	assert.Equal(t, 13.0, st.BestCost)
}

func TestSampleNeighbourhoodIsDeterministic(t *testing.T) {
	w := gridWorld(t, 7)
	eval, _ := observedEvaluator(t, w)
	tour, err := GreedyTour(w)
	require.NoError(t, err)

	req := SampleRequest{Tour: tour, Operator: OpRandom, Samples: 101, Workers: 4, Seed: 2024}

	a, err := SampleNeighbourhood(context.Background(), eval, req)
	require.NoError(t, err)
	b, err := SampleNeighbourhood(context.Background(), eval, req)
	require.NoError(t, err)

	assert.Equal(t, a.Best, b.Best)
	assert.Equal(t, a.BestCost, b.BestCost)
	assert.Equal(t, a.Improving, b.Improving)
	assert.InDelta(t, a.Mean, b.Mean, 1e-9)
	assert.Equal(t, 101, a.Samples)
}

func TestSampleNeighbourhoodRejectsBadInput(t *testing.T) {
	eval, _ := observedEvaluator(t, abcWorld(t))
	ctx := context.Background()

	_, err := SampleNeighbourhood(ctx, eval, SampleRequest{Tour: domain.Tour{"A", "B", "C"}, Operator: OpSwap})
	assert.ErrorContains(t, err, "samples")

	_, err = SampleNeighbourhood(ctx, eval, SampleRequest{Tour: domain.Tour{"A", "B", "C"}, Operator: "2opt", Samples: 1})
	assert.ErrorContains(t, err, "unknown operator")

	_, err = SampleNeighbourhood(ctx, eval, SampleRequest{Tour: domain.Tour{"A", "B"}, Operator: OpSwap, Samples: 1})
	assert.ErrorContains(t, err, "missing a visit")
}

func TestSampleNeighbourhoodHonoursCancel(t *testing.T) {
	eval, _ := observedEvaluator(t, gridWorld(t, 6))
	tour, err := GreedyTour(eval.World())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = SampleNeighbourhood(ctx, eval, SampleRequest{Tour: tour, Operator: OpShuffle, Samples: 10})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDeriveSeedSeparatesStreams(t *testing.T) {
	assert.NotEqual(t, DeriveSeed(1, 0), DeriveSeed(1, 1))
	assert.NotEqual(t, DeriveSeed(1, 0), DeriveSeed(2, 0))
	assert.Equal(t, DeriveSeed(5, 3), DeriveSeed(5, 3))
}
