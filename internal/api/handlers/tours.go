package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"time"
	"tour-lab/internal/api/dto"
	"tour-lab/internal/domain"
	"tour-lab/internal/ports"
	"tour-lab/internal/render"
	"tour-lab/internal/services"
)

const (
	maxSamples = 100000
	maxWorkers = 64
)

// TourHandler exposes validation, measurement and perturbation of tours.
type TourHandler struct {
	Eval     *services.Evaluator
	Cache    ports.MeasureCache
	Renderer *render.Renderer
}

func (h *TourHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.TourRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tour := domain.Tour(req.Tour)
	res := dto.VerifyResponse{Valid: h.Eval.Verify(tour)}
	if !res.Valid {
		if err := h.Eval.Check(tour); err != nil {
			res.Error = err.Error()
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *TourHandler) Measure(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.TourRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tour := domain.Tour(req.Tour)
	cost, err := services.MeasureTour(r.Context(), h.Eval, h.Cache, tour)
	if err != nil {
		internalError(w, r, "measure tour", err)
		return
	}

	res := dto.MeasureResponse{Cost: cost, Valid: h.Eval.Check(tour) == nil}
	if res.Valid {
		legs, err := h.Eval.LegCosts(tour)
		if err != nil {
			internalError(w, r, "leg costs", err)
			return
		}
		res.Legs = make([]dto.LegResponse, 0, len(legs))
		for _, l := range legs {
			res.Legs = append(res.Legs, dto.LegResponse{From: l.From, To: l.To, Cost: l.Cost})
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Greedy completes the optional prefix with nearest-neighbour steps.
func (h *TourHandler) Greedy(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.GreedyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tour, err := services.CompleteGreedy(h.Eval.World(), domain.Tour(req.Prefix))
	if err != nil {
		if isFatal(err) {
			internalError(w, r, "greedy tour", err)
			return
		}
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	h.writeTour(w, r, tour)
}

func (h *TourHandler) Perturb(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.PerturbRequest
	if !decodeBody(w, r, &req) {
		return
	}

	op, err := services.ParseOperator(req.Operator)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	tour := domain.Tour(req.Tour)
	var out domain.Tour

	switch {
	case req.I1 != nil || req.I2 != nil:
		if req.I1 == nil || req.I2 == nil {
			writeError(w, r, http.StatusBadRequest, "i1 and i2 must be given together")
			return
		}
		switch op {
		case services.OpRelocate:
			out, err = services.RelocateAt(tour, *req.I1, *req.I2)
		case services.OpSwap:
			out, err = services.SwapAt(tour, *req.I1, *req.I2)
		case services.OpReverse:
			out, err = services.ReverseAt(tour, *req.I1, *req.I2)
		default:
			writeError(w, r, http.StatusBadRequest, "positions are only accepted for relocate, swap and reverse")
			return
		}
	default:
		p := services.NewSeededPerturber(seedOrNow(req.Seed))
		out, err = p.Apply(op, tour)
	}
	if err != nil {
		if errors.Is(err, services.ErrTourTooShort) || errors.Is(err, services.ErrBadPosition) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		internalError(w, r, "perturb tour", err)
		return
	}

	h.writeTour(w, r, out)
}

func (h *TourHandler) Sample(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.SampleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	op, err := services.ParseOperator(req.Operator)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Samples < 1 || req.Samples > maxSamples {
		writeError(w, r, http.StatusBadRequest, "samples must be between 1 and 100000")
		return
	}
	if req.Workers < 0 || req.Workers > maxWorkers {
		writeError(w, r, http.StatusBadRequest, "workers must be between 0 and 64")
		return
	}

	st, err := services.SampleNeighbourhood(r.Context(), h.Eval, services.SampleRequest{
		Tour:     domain.Tour(req.Tour),
		Operator: op,
		Samples:  req.Samples,
		Workers:  req.Workers,
		Seed:     seedOrNow(req.Seed),
	})
	if err != nil {
		var te *services.TourError
		if errors.As(err, &te) || errors.Is(err, services.ErrTourTooShort) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		internalError(w, r, "sample neighbourhood", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SampleResponse{
		BaseCost:  st.BaseCost,
		Samples:   st.Samples,
		Improving: st.Improving,
		Best:      st.Best,
		BestCost:  st.BestCost,
		Mean:      st.Mean,
		Median:    st.Median,
		Min:       st.Min,
		Max:       st.Max,
		P90:       st.P90,
		StdDev:    st.StdDev,
	})
}

// Map renders ?tour= as a PNG. Unknown stops are skipped, so partial tours
// can be drawn while they are being built.
func (h *TourHandler) Map(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	if h.Renderer == nil {
		writeError(w, r, http.StatusNotFound, "map rendering is not configured")
		return
	}

	tour := h.Eval.World().ParseTour(r.URL.Query().Get("tour"))

	var buf bytes.Buffer
	if err := h.Renderer.Draw(&buf, h.Eval.World(), tour); err != nil {
		internalError(w, r, "draw map", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *TourHandler) writeTour(w http.ResponseWriter, r *http.Request, tour domain.Tour) {
	cost, err := services.MeasureTour(r.Context(), h.Eval, h.Cache, tour)
	if err != nil {
		internalError(w, r, "measure tour", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.TourResponse{Tour: tour, Cost: cost})
}

func isFatal(err error) bool {
	return errors.Is(err, domain.ErrMissingDistance) || errors.Is(err, services.ErrNoOptions)
}

func seedOrNow(seed *int64) int64 {
	if seed != nil {
		return *seed
	}
	return time.Now().UnixNano()
}
