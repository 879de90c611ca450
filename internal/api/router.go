package api

import (
	"net/http"
	"tour-lab/internal/api/handlers"
	"tour-lab/internal/ports"
	"tour-lab/internal/render"
	"tour-lab/internal/services"

	"go.uber.org/zap"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// cache and renderer may be nil; without a renderer /tours/map answers 404.
func NewRouter(eval *services.Evaluator, cache ports.MeasureCache, renderer *render.Renderer, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	mux := http.NewServeMux()

	locHandler := &handlers.LocationHandler{World: eval.World()}
	tourHandler := &handlers.TourHandler{
		Eval:     eval,
		Cache:    cache,
		Renderer: renderer,
	}

	mux.HandleFunc("/health", locHandler.Health)
	mux.HandleFunc("/locations", locHandler.List)
	mux.HandleFunc("/tours/verify", tourHandler.Verify)
	mux.HandleFunc("/tours/measure", tourHandler.Measure)
	mux.HandleFunc("/tours/greedy", tourHandler.Greedy)
	mux.HandleFunc("/tours/perturb", tourHandler.Perturb)
	mux.HandleFunc("/tours/sample", tourHandler.Sample)
	mux.HandleFunc("/tours/map", tourHandler.Map)

	return requestIDMiddleware(loggingMiddleware(log, mux))
}
