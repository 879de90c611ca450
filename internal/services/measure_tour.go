package services

import (
	"context"
	"fmt"
	"tour-lab/internal/domain"
	"tour-lab/internal/platform/obs"
	"tour-lab/internal/ports"

	"go.uber.org/zap"
)

// MeasureTour is Measure behind an optional cache. Cache failures are
// logged through the evaluator's logger and fall through to a direct
// measurement.
func MeasureTour(ctx context.Context, eval *Evaluator, cache ports.MeasureCache, tour domain.Tour) (_ float64, err error) {
	defer obs.Time(ctx, "tour.measure")(&err)

	key := tour.Key()
	if cache != nil {
		cost, ok, err := cache.Get(ctx, key)
		if err != nil {
			eval.log.Warn("measure cache get failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			return cost, nil
		}
	}

	cost, err := eval.Measure(tour)
	if err != nil {
		return 0, fmt.Errorf("measure tour %q: %w", key, err)
	}

	if cache != nil {
		if err := cache.Put(ctx, key, cost); err != nil {
			eval.log.Warn("measure cache put failed", zap.String("key", key), zap.Error(err))
		}
	}

	return cost, nil
}
