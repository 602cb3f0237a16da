package dto

import "load-ranking-service/internal/domain"

type AvailabilityWindow struct {
	EarliestWhen string `json:"earliestWhen"`
	LatestWhen   string `json:"latestWhen"`
}

type LoadFilters struct {
	DestinationState string  `json:"destination_state"`
	MaxDeadhead      float64 `json:"max_deadhead"`
	LoadType         string  `json:"load_type"`
}

type LoadSearchRequest struct {
	DriverLocationCity  string              `json:"driver_location_city"`
	DriverLocationState string              `json:"driver_location_state"`
	EquipmentType       string              `json:"equipment_type"`
	DriverAvailability  *AvailabilityWindow `json:"driver_availability"`
	Filters             LoadFilters         `json:"filters"`
	Limit               int                 `json:"limit"`
}

type BrokerInfo struct {
	Company    string                `json:"company"`
	Contact    string                `json:"contact"`
	Phone      string                `json:"phone"`
	MCNumber   int64                 `json:"mc_number,omitempty"`
	DOTNumber  int64                 `json:"dot_number,omitempty"`
	CreditInfo *domain.Credit        `json:"credit_info,omitempty"`
	Registry   *domain.CarrierRecord `json:"registry,omitempty"`
}

type RankedLoad struct {
	LoadNumber    int                  `json:"load_number"`
	MatchID       string               `json:"match_id"`
	Origin        domain.PlaceSummary  `json:"origin"`
	Destination   domain.PlaceSummary  `json:"destination"`
	EquipmentType string               `json:"equipment_type"`
	TripMiles     float64              `json:"trip_miles"`
	DeadheadMiles float64              `json:"deadhead_miles"`
	Profit        domain.ProfitData    `json:"profit"`
	Market        domain.MarketData    `json:"market"`
	Composite     domain.CompositeData `json:"composite"`
	Broker        *BrokerInfo          `json:"broker_info,omitempty"`
}

type LoadSearchResponse struct {
	Loads      []RankedLoad `json:"loads"`
	TotalCount int          `json:"total_count"`
	RankedBy   string       `json:"ranked_by"`
}
