package handlers

import (
	"net/http"
	"tour-lab/internal/api/dto"
	"tour-lab/internal/domain"
	"tour-lab/internal/geo"
)

// LocationHandler exposes the loaded instance.
type LocationHandler struct {
	World *domain.World
}

// Health is a liveness check that also reports the instance size.
func (h *LocationHandler) Health(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	res := map[string]any{"status": "ok", "locations": h.World.Len()}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	locs := h.World.Locations()
	res := dto.ListLocationsResponse{
		Locations: make([]dto.LocationResponse, 0, len(locs)),
	}
	for _, l := range locs {
		u := geo.FromLatLon(l.Coords.Lat, l.Coords.Lon)
		res.Locations = append(res.Locations, dto.LocationResponse{
			Name:     l.Name,
			Lat:      l.Coords.Lat,
			Lon:      l.Coords.Lon,
			Easting:  u.Easting,
			Northing: u.Northing,
			Zone:     u.Zone,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
