package domain

// ProfitData is the computed trip economics for a single load.
// Derived, never persisted; monetary fields are rounded to 2 decimals.
type ProfitData struct {
	TotalRevenue   float64 `json:"total_revenue"`
	FuelCost       float64 `json:"fuel_cost"`
	OpsCost        float64 `json:"ops_cost"`
	TotalCosts     float64 `json:"total_costs"`
	NetProfit      float64 `json:"net_profit"`
	ProfitPerMile  float64 `json:"profit_per_mile"`
	TotalMiles     float64 `json:"total_miles"`
	TripMiles      float64 `json:"trip_miles"`
	OriginDeadhead float64 `json:"origin_deadhead"`
	RatePerMile    float64 `json:"rate_per_mile"`
	EquipmentType  string  `json:"equipment_type"`
	Score          int     `json:"score"`
}

// ScoreBand pairs a 0-100 sub-score with its human rating label.
type ScoreBand struct {
	Score  int    `json:"score"`
	Rating string `json:"rating"`
}

// MarketData is the per-state market snapshot used for scoring. It is cached
// only within a single analysis call, shared by every load destined there.
type MarketData struct {
	State             string    `json:"state"`
	OutboundLoads     int       `json:"outbound_loads"`
	AvailableTrucks   int       `json:"available_trucks"`
	SupplyDemandRatio float64   `json:"supply_demand_ratio"`
	EaseOfBooking     ScoreBand `json:"ease_of_booking"`
	LaneConnectivity  ScoreBand `json:"lane_connectivity"`
}

// ScoreBreakdown lists the three sub-scores blended into a composite score.
type ScoreBreakdown struct {
	Profit       int `json:"profit"`
	Connectivity int `json:"connectivity"`
	Ease         int `json:"ease"`
}

// CompositeData is the final weighted ranking for a load.
type CompositeData struct {
	CompositeScore   float64        `json:"composite_score"`
	Recommendation   string         `json:"recommendation"`
	Color            string         `json:"color"`
	IndividualScores ScoreBreakdown `json:"individual_scores"`
}

// PlaceSummary is a compact city/state pair for response payloads.
type PlaceSummary struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// AnalyzedLoad aggregates one load's scoring results. Lifetime is a single
// orchestrator invocation; the sorted slice is the API response payload.
type AnalyzedLoad struct {
	LoadNumber  int           `json:"load_number"`
	MatchID     string        `json:"match_id"`
	Origin      PlaceSummary  `json:"origin"`
	Destination PlaceSummary  `json:"destination"`
	Profit      ProfitData    `json:"profit_data"`
	Market      MarketData    `json:"market_data"`
	Composite   CompositeData `json:"composite_data"`
	Raw         *Load         `json:"-"`
}
