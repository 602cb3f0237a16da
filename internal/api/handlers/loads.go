package handlers

import (
	"context"
	"encoding/json"
	"io"
	"load-ranking-service/internal/adapters/geo"
	"load-ranking-service/internal/api/dto"
	"load-ranking-service/internal/domain"
	"load-ranking-service/internal/ports"
	"load-ranking-service/internal/services"
	"log"
	"net/http"
	"strconv"
	"strings"
)

const defaultLoadLimit = 10

type LoadsHandler struct {
	Board    ports.LoadBoard
	Registry ports.CarrierRegistry
	Cities   *geo.CityDB
}

// GetLoadsForDriver searches the marketplace for loads near a driver,
// filters them, and returns them ranked by composite score.
func (h *LoadsHandler) GetLoadsForDriver(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.LoadSearchRequest

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

	city := strings.TrimSpace(req.DriverLocationCity)
	state := strings.ToUpper(strings.TrimSpace(req.DriverLocationState))
	if city == "" || state == "" {
		writeError(w, r, http.StatusBadRequest, "driver_location_city and driver_location_state are required")
		return
	}

	coords, ok := h.Cities.CityCoordinates(r.Context(), city, state)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "unknown city: "+city+", "+state)
		return
	}

	if err := h.Board.EnsureSession(r.Context()); err != nil {
		log.Printf("load board session failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "load board authentication failed")
		return
	}

	equipment := strings.ToUpper(strings.TrimSpace(req.EquipmentType))
	if equipment == "" {
		equipment = "V"
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLoadLimit
	}

	loads, err := h.Board.SearchLoads(r.Context(), ports.LoadSearchRequest{
		City:             city,
		State:            state,
		Coordinates:      coords,
		EquipmentType:    equipment,
		MaxDeadheadMiles: int(req.Filters.MaxDeadhead),
		DestinationState: strings.ToUpper(strings.TrimSpace(req.Filters.DestinationState)),
	})
	if err != nil {
		log.Printf("load search failed city=%s state=%s err=%v", city, state, err)
		writeError(w, r, http.StatusBadGateway, "load search failed")
		return
	}

	loads = services.FilterLoadsByType(loads, strings.ToUpper(strings.TrimSpace(req.Filters.LoadType)))
	if req.DriverAvailability != nil {
		loads = services.FilterLoadsByAvailability(loads, &domain.Availability{
			EarliestWhen: req.DriverAvailability.EarliestWhen,
			LatestWhen:   req.DriverAvailability.LatestWhen,
		})
	}

	ranked := services.AnalyzeLoads(r.Context(), loads, state, h.Board)
	totalCount := len(ranked)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	res := dto.LoadSearchResponse{
		Loads:      make([]dto.RankedLoad, 0, len(ranked)),
		TotalCount: totalCount,
		RankedBy:   "composite_score",
	}
	for _, al := range ranked {
		res.Loads = append(res.Loads, h.toRankedLoad(r.Context(), al))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *LoadsHandler) toRankedLoad(ctx context.Context, al domain.AnalyzedLoad) dto.RankedLoad {
	out := dto.RankedLoad{
		LoadNumber:  al.LoadNumber,
		MatchID:     al.MatchID,
		Origin:      al.Origin,
		Destination: al.Destination,
		Profit:      al.Profit,
		Market:      al.Market,
		Composite:   al.Composite,
	}
	if al.Raw == nil {
		return out
	}

	out.EquipmentType = al.Raw.MatchingAssetInfo.EquipmentType
	out.TripMiles = al.Raw.TripMiles()
	out.DeadheadMiles = al.Raw.DeadheadMiles()
	out.Broker = h.brokerInfo(ctx, al.Raw)
	return out
}

// brokerInfo assembles poster details, enriched from the carrier registry
// when the posting carries a DOT number. Registry failures degrade to the
// marketplace-supplied fields only.
func (h *LoadsHandler) brokerInfo(ctx context.Context, load *domain.Load) *dto.BrokerInfo {
	if load.PosterInfo == nil && load.PosterDotIDs == nil {
		return nil
	}

	info := &dto.BrokerInfo{}
	if p := load.PosterInfo; p != nil {
		info.Company = p.CompanyName
		info.CreditInfo = p.Credit
		if p.Contact != nil {
			info.Contact = p.Contact.Email
			info.Phone = p.Contact.BestPhone()
		}
	}
	if ids := load.PosterDotIDs; ids != nil {
		info.DOTNumber = ids.DotNumber
		if ids.BrokerMcNumber != 0 {
			info.MCNumber = ids.BrokerMcNumber
		} else {
			info.MCNumber = ids.CarrierMcNumber
		}

		if h.Registry != nil && ids.DotNumber != 0 {
			rec, err := h.Registry.GetCarrier(ctx, strconv.FormatInt(ids.DotNumber, 10))
			if err != nil {
				log.Printf("broker registry lookup failed dot=%d err=%v", ids.DotNumber, err)
			} else if rec != nil {
				info.Registry = rec
				if info.Company == "" {
					info.Company = rec.LegalName
				}
			}
		}
	}
	return info
}
