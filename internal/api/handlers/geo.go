package handlers

import (
	"load-ranking-service/internal/adapters/geo"
	"load-ranking-service/internal/api/dto"
	"net/http"
	"strings"
)

type GeoHandler struct {
	Cities *geo.CityDB
}

// States lists all state codes with known cities.
func (h *GeoHandler) States(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.StatesResponse{States: h.Cities.States()})
}

// Cities lists the known cities of one state. The state code is the final
// path segment: /api/cities/{state}.
func (h *GeoHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	state := strings.ToUpper(strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/cities/"), "/"))
	if state == "" {
		writeError(w, r, http.StatusBadRequest, "state is required")
		return
	}

	cities := h.Cities.CitiesByState(state)
	if len(cities) == 0 {
		writeError(w, r, http.StatusNotFound, "unknown state: "+state)
		return
	}

	res := dto.CitiesResponse{State: state, Cities: make([]dto.CityEntry, 0, len(cities))}
	for _, c := range cities {
		res.Cities = append(res.Cities, dto.CityEntry{Name: c.Name, Lat: c.Coord.Lat, Lon: c.Coord.Lon})
	}
	writeJSON(w, r, http.StatusOK, res)
}
