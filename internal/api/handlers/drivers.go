package handlers

import (
	"context"
	"encoding/json"
	"io"
	"load-ranking-service/internal/adapters/geo"
	"load-ranking-service/internal/adapters/snapshot"
	"load-ranking-service/internal/api/dto"
	"load-ranking-service/internal/domain"
	"load-ranking-service/internal/ports"
	"load-ranking-service/internal/services"
	"log"
	"net/http"
	"strconv"
	"strings"
)

const defaultDriverLimit = 25

type DriversHandler struct {
	Board     ports.LoadBoard
	Registry  ports.CarrierRegistry
	Cities    *geo.CityDB
	Snapshots *snapshot.Store
}

// SearchDrivers finds available trucks near an origin, keeps small carriers,
// and enriches each result with carrier registry data.
func (h *DriversHandler) SearchDrivers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.DriverSearchRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	city := strings.TrimSpace(req.OriginCity)
	state := strings.ToUpper(strings.TrimSpace(req.OriginState))
	if city == "" || state == "" {
		writeError(w, r, http.StatusBadRequest, "origin_city and origin_state are required")
		return
	}

	var coordsPtr *domain.Coordinates
	if coords, ok := h.Cities.CityCoordinates(r.Context(), city, state); ok {
		coordsPtr = &coords
	}

	if err := h.Board.EnsureSession(r.Context()); err != nil {
		log.Printf("load board session failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "load board authentication failed")
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultDriverLimit
	}

	postings, counts, err := h.Board.SearchCapacity(r.Context(), ports.CapacitySearchRequest{
		City:              city,
		State:             state,
		Coordinates:       coordsPtr,
		EquipmentTypes:    req.EquipmentTypes,
		AvailabilityStart: req.Filters.AvailabilityStart,
		AvailabilityEnd:   req.Filters.AvailabilityEnd,
		DestinationState:  strings.ToUpper(strings.TrimSpace(req.Filters.DestinationState)),
		MaxDeadheadMiles:  int(req.Filters.MaxDeadhead),
	})
	if err != nil {
		log.Printf("capacity search failed city=%s state=%s err=%v", city, state, err)
		writeError(w, r, http.StatusBadGateway, "driver search failed")
		return
	}

	totalFound := counts.Total()
	if totalFound < len(postings) {
		totalFound = len(postings)
	}

	postings = services.FilterByFleetSize(r.Context(), postings, req.Filters.MaxFleetSize, h.Registry)
	if len(postings) > limit {
		postings = postings[:limit]
	}

	drivers := make([]dto.DriverResult, 0, len(postings))
	for _, posting := range postings {
		drivers = append(drivers, h.toDriverResult(r.Context(), posting))
	}

	h.saveSnapshot(city, state, req, totalFound, drivers)

	writeJSON(w, r, http.StatusOK, dto.DriverSearchResponse{
		Drivers:       drivers,
		TotalCount:    totalFound,
		ReturnedCount: len(drivers),
	})
}

func (h *DriversHandler) toDriverResult(ctx context.Context, posting *domain.CapacityPosting) dto.DriverResult {
	out := dto.DriverResult{
		EquipmentType:       posting.MatchingAssetInfo.EquipmentType,
		OriginCity:          posting.MatchingAssetInfo.Origin.City,
		OriginState:         posting.MatchingAssetInfo.Origin.StateProv,
		DestinationStates:   posting.MatchingAssetInfo.Destination.CandidateStates(),
		AvailableLengthFeet: posting.AvailableLengthFeet,
		AvailableWeightLbs:  posting.AvailableWeightPounds,
		DOTNumber:           posting.DotNumber(),
	}
	if posting.Availability != nil {
		out.EarliestWhen = posting.Availability.EarliestWhen
		out.LatestWhen = posting.Availability.LatestWhen
	}
	if p := posting.PosterInfo; p != nil {
		out.Company = p.CompanyName
		if p.Contact != nil {
			out.Contact = p.Contact.Email
			out.Phone = p.Contact.BestPhone()
		}
	}

	if h.Registry != nil && out.DOTNumber != 0 {
		rec, err := h.Registry.GetCarrier(ctx, strconv.FormatInt(out.DOTNumber, 10))
		if err != nil {
			log.Printf("driver registry lookup failed dot=%d err=%v", out.DOTNumber, err)
		} else if rec != nil {
			out.Registry = rec
			if out.Company == "" {
				out.Company = rec.LegalName
			}
			if out.Phone == "" && rec.PhyState != "" && out.OriginState == "" {
				out.OriginState = rec.PhyState
			}
		}
	}
	return out
}

// saveSnapshot persists search results for offline review. Failures are
// logged, never surfaced to the caller.
func (h *DriversHandler) saveSnapshot(city, state string, req dto.DriverSearchRequest, total int, drivers []dto.DriverResult) {
	if h.Snapshots == nil {
		return
	}

	meta := snapshot.Metadata{
		Lane: snapshot.Lane{
			OriginCity:  city,
			OriginState: state,
			Label:       city + ", " + state,
		},
		SearchParameters: map[string]any{
			"equipment_types":    req.EquipmentTypes,
			"destination_state":  req.Filters.DestinationState,
			"max_deadhead":       req.Filters.MaxDeadhead,
			"availability_start": req.Filters.AvailabilityStart,
			"availability_end":   req.Filters.AvailabilityEnd,
			"max_fleet_size":     req.Filters.MaxFleetSize,
		},
		TotalDriversFound: total,
		DriversReturned:   len(drivers),
	}

	path, err := h.Snapshots.SaveDrivers(meta, drivers)
	if err != nil {
		log.Printf("snapshot save failed lane=%s,%s err=%v", city, state, err)
		return
	}
	log.Printf("snapshot saved path=%s drivers=%d", path, len(drivers))
}
