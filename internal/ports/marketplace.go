package ports

import (
	"context"
	"load-ranking-service/internal/domain"
)

// AssetType selects which side of the marketplace a query searches.
type AssetType string

const (
	AssetShipment AssetType = "SHIPMENT"
	AssetTruck    AssetType = "TRUCK"
)

// MatchCounts is the per-audience result count of a marketplace query.
type MatchCounts struct {
	Normal         int
	Preferred      int
	PrivateNetwork int
}

// Total sums all audiences.
func (c MatchCounts) Total() int {
	return c.Normal + c.Preferred + c.PrivateNetwork
}

// PlaceLocator anchors a query to a named place with coordinates.
type PlaceLocator struct {
	City      string
	StateProv string
	Latitude  float64
	Longitude float64
}

// Locator is one endpoint of a search lane: a named place, a restricted set
// of states, or an open (any-destination) wildcard.
type Locator struct {
	Place  *PlaceLocator
	States []string
	Open   bool
}

// AvailabilityWindow bounds a capacity query by pickup window (RFC 3339).
type AvailabilityWindow struct {
	EarliestWhen string
	LatestWhen   string
}

// SearchCriteria is the structured query document submitted to the
// marketplace. Zero MaxAgeMinutes means the adapter's default staleness bound.
type SearchCriteria struct {
	AssetType                    AssetType
	EquipmentTypes               []string
	Origin                       *Locator
	Destination                  *Locator
	MaxAgeMinutes                int
	MaxOriginDeadheadMiles       int
	IncludeLoadBoard             bool
	IncludePrivateNetwork        bool
	IncludeOpenDestinationTrucks bool
	Availability                 *AvailabilityWindow
}

// MarketplaceClient is the capability the scoring core consumes: submit a
// query criteria document, then fetch counts-only results for its identifier.
type MarketplaceClient interface {
	CreateQuery(ctx context.Context, criteria SearchCriteria) (string, error)
	GetCounts(ctx context.Context, queryID string) (MatchCounts, error)
	// Authenticated reports whether the client holds a live session token.
	Authenticated() bool
}

// LoadSearchRequest describes a place-anchored load search for a driver.
type LoadSearchRequest struct {
	City             string
	State            string
	Coordinates      domain.Coordinates
	EquipmentType    string
	MaxDeadheadMiles int
	DestinationState string
	Limit            int
}

// CapacitySearchRequest describes a search for available trucks/drivers.
type CapacitySearchRequest struct {
	City              string
	State             string
	Coordinates       *domain.Coordinates
	EquipmentTypes    []string
	AvailabilityStart string
	AvailabilityEnd   string
	DestinationState  string
	MaxDeadheadMiles  int
	Limit             int
}

// LoadBoard is the full marketplace surface the HTTP layer consumes:
// the scoring capability plus posting searches and session control.
type LoadBoard interface {
	MarketplaceClient

	SearchLoads(ctx context.Context, req LoadSearchRequest) ([]*domain.Load, error)
	SearchCapacity(ctx context.Context, req CapacitySearchRequest) ([]*domain.CapacityPosting, MatchCounts, error)

	// EnsureSession authenticates if needed, making at most one
	// reset-and-retry attempt after a failed authentication.
	EnsureSession(ctx context.Context) error
	APICalls() int64
}
