package services

import (
	"context"
	"testing"
	"tour-lab/internal/adapters/distance/distancetest"
	"tour-lab/internal/domain"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func abcWorld(t *testing.T) *domain.World {
	t.Helper()

	// ABC costs 16, ACB costs 13.
	w, err := LoadWorld(context.Background(), distancetest.ThreeStops())
	require.NoError(t, err)
	return w
}

// gridWorld has n locations La, Lb, ... with |i-j|+1 costs between them
// and depot cost i+1.
func gridWorld(t *testing.T, n int) *domain.World {
	t.Helper()

	names := make([]string, n)
	for i := range names {
		names[i] = "L" + string(rune('a'+i))
	}

	var pairs []distancetest.Pair
	for i, a := range names {
		pairs = append(pairs, distancetest.Symmetric(distancetest.Pair{From: "*", To: a, Dist: float64(i + 1)})...)
		for j, b := range names {
			if i < j {
				pairs = append(pairs, distancetest.Symmetric(distancetest.Pair{From: a, To: b, Dist: float64(j - i + 1)})...)
			}
		}
	}

	w, err := LoadWorld(context.Background(), distancetest.Repository(distancetest.Names(names...), pairs))
	require.NoError(t, err)
	return w
}

func observedEvaluator(t *testing.T, w *domain.World) (*Evaluator, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	eval, err := NewEvaluator(w, zap.New(core))
	require.NoError(t, err)
	return eval, logs
}

func permutations(items []string) [][]string {
	if len(items) <= 1 {
		return [][]string{append([]string(nil), items...)}
	}
	var out [][]string
	for i := range items {
		rest := make([]string, 0, len(items)-1)
		rest = append(rest, items[:i]...)
		rest = append(rest, items[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]string{items[i]}, p...))
		}
	}
	return out
}
