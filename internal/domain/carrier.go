package domain

// CarrierRecord is one motor-carrier entry from the federal registry.
// Numeric fields are pointers because the registry frequently omits them;
// nil means "unknown", which filtering treats as benefit of the doubt.
type CarrierRecord struct {
	DOTNumber    string `json:"dot_number"`
	LegalName    string `json:"legal_name"`
	TruckUnits   *int   `json:"truck_units"`
	TotalDrivers *int   `json:"total_drivers"`
	PhyCity      string `json:"phy_city"`
	PhyState     string `json:"phy_state"`
	MCNumber     *int   `json:"mc_number"`
	EntityType   string `json:"entity_type"`
}
