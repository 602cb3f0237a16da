package dto

import "load-ranking-service/internal/domain"

type DriverFilters struct {
	DestinationState  string  `json:"destination_state"`
	MaxDeadhead       float64 `json:"max_deadhead"`
	AvailabilityStart string  `json:"availability_start"`
	AvailabilityEnd   string  `json:"availability_end"`
	MaxFleetSize      int     `json:"max_fleet_size"`
}

type DriverSearchRequest struct {
	OriginCity     string        `json:"origin_city"`
	OriginState    string        `json:"origin_state"`
	EquipmentTypes []string      `json:"equipment_types"`
	Filters        DriverFilters `json:"filters"`
	Limit          int           `json:"limit"`
}

type DriverResult struct {
	Company             string                `json:"company"`
	Contact             string                `json:"contact"`
	Phone               string                `json:"phone"`
	OriginCity          string                `json:"origin_city"`
	OriginState         string                `json:"origin_state"`
	DestinationStates   []string              `json:"destination_states,omitempty"`
	EquipmentType       string                `json:"equipment_type"`
	AvailableLengthFeet float64               `json:"available_length_feet,omitempty"`
	AvailableWeightLbs  float64               `json:"available_weight_pounds,omitempty"`
	EarliestWhen        string                `json:"earliest_when,omitempty"`
	LatestWhen          string                `json:"latest_when,omitempty"`
	DOTNumber           int64                 `json:"dot_number,omitempty"`
	Registry            *domain.CarrierRecord `json:"registry,omitempty"`
}

type DriverSearchResponse struct {
	Drivers       []DriverResult `json:"drivers"`
	TotalCount    int            `json:"total_count"`
	ReturnedCount int            `json:"returned_count"`
}

type AuthRequest struct {
	Environment string `json:"environment"`
}

type AuthResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	APICalls int64  `json:"api_calls"`
}

type StatesResponse struct {
	States []string `json:"states"`
}

type CityEntry struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type CitiesResponse struct {
	State  string      `json:"state"`
	Cities []CityEntry `json:"cities"`
}
