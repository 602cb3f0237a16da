package dat

import (
	"context"
	"errors"
	"fmt"
	"load-ranking-service/internal/domain"
	"load-ranking-service/internal/ports"
	"log"
	"net/http"
	"net/url"
	"strconv"
)

// Default staleness bound for searches (48 hours).
const defaultMaxAgeMinutes = 2880

// Wire shapes for the search/v3 query protocol.

type wirePlace struct {
	City      string  `json:"city,omitempty"`
	StateProv string  `json:"stateProv,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

type wireArea struct {
	States []string `json:"states"`
}

type wireLocator struct {
	Place *wirePlace     `json:"place,omitempty"`
	Area  *wireArea      `json:"area,omitempty"`
	Open  map[string]any `json:"open,omitempty"`
}

type wireEquipment struct {
	Types []string `json:"types"`
}

type wireLane struct {
	AssetType   string        `json:"assetType"`
	Equipment   wireEquipment `json:"equipment"`
	Origin      *wireLocator  `json:"origin,omitempty"`
	Destination *wireLocator  `json:"destination,omitempty"`
}

type wireAudience struct {
	IncludeLoadBoard      bool `json:"includeLoadBoard"`
	IncludePrivateNetwork bool `json:"includePrivateNetwork"`
}

type wireAvailability struct {
	EarliestWhen string `json:"earliestWhen,omitempty"`
	LatestWhen   string `json:"latestWhen,omitempty"`
}

type wireCriteria struct {
	Lane                         wireLane          `json:"lane"`
	MaxAgeMinutes                int               `json:"maxAgeMinutes"`
	MaxOriginDeadheadMiles       int               `json:"maxOriginDeadheadMiles,omitempty"`
	Audience                     wireAudience      `json:"audience"`
	CountsOnly                   bool              `json:"countsOnly"`
	IncludeOpenDestinationTrucks bool              `json:"includeOpenDestinationTrucks,omitempty"`
	Availability                 *wireAvailability `json:"availability,omitempty"`
}

type queryRequest struct {
	Criteria wireCriteria `json:"criteria"`
}

type queryResponse struct {
	QueryID string `json:"queryId"`
}

type wireMatchCounts struct {
	Normal         int `json:"normal"`
	Preferred      int `json:"preferred"`
	PrivateNetwork int `json:"privateNetwork"`
}

type matchesResponse[T any] struct {
	Matches     []T             `json:"matches"`
	MatchCounts wireMatchCounts `json:"matchCounts"`
}

func buildLocator(l *ports.Locator) *wireLocator {
	if l == nil {
		return nil
	}
	switch {
	case l.Place != nil:
		return &wireLocator{Place: &wirePlace{
			City:      l.Place.City,
			StateProv: l.Place.StateProv,
			Latitude:  l.Place.Latitude,
			Longitude: l.Place.Longitude,
		}}
	case len(l.States) > 0:
		return &wireLocator{Area: &wireArea{States: l.States}}
	case l.Open:
		return &wireLocator{Open: map[string]any{}}
	default:
		return nil
	}
}

func buildCriteria(criteria ports.SearchCriteria) wireCriteria {
	maxAge := criteria.MaxAgeMinutes
	if maxAge == 0 {
		maxAge = defaultMaxAgeMinutes
	}

	var availability *wireAvailability
	if criteria.Availability != nil {
		availability = &wireAvailability{
			EarliestWhen: criteria.Availability.EarliestWhen,
			LatestWhen:   criteria.Availability.LatestWhen,
		}
	}

	return wireCriteria{
		Lane: wireLane{
			AssetType:   string(criteria.AssetType),
			Equipment:   wireEquipment{Types: criteria.EquipmentTypes},
			Origin:      buildLocator(criteria.Origin),
			Destination: buildLocator(criteria.Destination),
		},
		MaxAgeMinutes:          maxAge,
		MaxOriginDeadheadMiles: criteria.MaxOriginDeadheadMiles,
		Audience: wireAudience{
			IncludeLoadBoard:      criteria.IncludeLoadBoard,
			IncludePrivateNetwork: criteria.IncludePrivateNetwork,
		},
		CountsOnly:                   false,
		IncludeOpenDestinationTrucks: criteria.IncludeOpenDestinationTrucks,
		Availability:                 availability,
	}
}

// CreateQuery submits a search criteria document and returns the query
// identifier assigned by the marketplace.
func (c *Client) CreateQuery(ctx context.Context, criteria ports.SearchCriteria) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/search/v3/queries", nil, queryRequest{
		Criteria: buildCriteria(criteria),
	})
	if err != nil {
		return "", fmt.Errorf("dat create query: %w", err)
	}

	var decoded queryResponse
	if err := c.doJSON(req, &decoded, http.StatusOK, http.StatusCreated); err != nil {
		return "", fmt.Errorf("dat create query: %w", err)
	}
	if decoded.QueryID == "" {
		return "", errors.New("dat create query: no query id in response")
	}

	return decoded.QueryID, nil
}

// GetCounts fetches counts-only results for a previously created query.
func (c *Client) GetCounts(ctx context.Context, queryID string) (ports.MatchCounts, error) {
	query := url.Values{}
	query.Set("staticView", "JUST_COUNTS")
	query.Set("limit", "1")

	req, err := c.newRequest(ctx, http.MethodGet, "/search/v3/queryMatches/"+queryID, query, nil)
	if err != nil {
		return ports.MatchCounts{}, fmt.Errorf("dat get counts: %w", err)
	}

	var decoded matchesResponse[struct{}]
	if err := c.doJSON(req, &decoded, http.StatusOK); err != nil {
		return ports.MatchCounts{}, fmt.Errorf("dat get counts: %w", err)
	}

	return ports.MatchCounts{
		Normal:         decoded.MatchCounts.Normal,
		Preferred:      decoded.MatchCounts.Preferred,
		PrivateNetwork: decoded.MatchCounts.PrivateNetwork,
	}, nil
}

// fetchMatches retrieves full match payloads for a query.
func fetchMatches[T any](ctx context.Context, c *Client, queryID string, limit int) ([]T, ports.MatchCounts, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	req, err := c.newRequest(ctx, http.MethodGet, "/search/v3/queryMatches/"+queryID, query, nil)
	if err != nil {
		return nil, ports.MatchCounts{}, fmt.Errorf("fetch matches: %w", err)
	}

	var decoded matchesResponse[T]
	if err := c.doJSON(req, &decoded, http.StatusOK); err != nil {
		return nil, ports.MatchCounts{}, fmt.Errorf("fetch matches: %w", err)
	}

	counts := ports.MatchCounts{
		Normal:         decoded.MatchCounts.Normal,
		Preferred:      decoded.MatchCounts.Preferred,
		PrivateNetwork: decoded.MatchCounts.PrivateNetwork,
	}
	return decoded.Matches, counts, nil
}

// SearchLoads finds shipment postings reachable from the driver's location.
func (c *Client) SearchLoads(ctx context.Context, req ports.LoadSearchRequest) ([]*domain.Load, error) {
	if !c.Authenticated() {
		return nil, errors.New("dat search loads: not authenticated")
	}

	maxDeadhead := req.MaxDeadheadMiles
	if maxDeadhead == 0 {
		maxDeadhead = 50
	}
	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}

	criteria := ports.SearchCriteria{
		AssetType:      ports.AssetShipment,
		EquipmentTypes: []string{req.EquipmentType},
		Origin: &ports.Locator{Place: &ports.PlaceLocator{
			City:      req.City,
			StateProv: req.State,
			Latitude:  req.Coordinates.Lat,
			Longitude: req.Coordinates.Lon,
		}},
		Destination:            &ports.Locator{Open: true},
		MaxOriginDeadheadMiles: maxDeadhead,
		IncludeLoadBoard:       true,
		IncludePrivateNetwork:  true,
	}
	if req.DestinationState != "" {
		criteria.Destination = &ports.Locator{States: []string{req.DestinationState}}
	}

	queryID, err := c.CreateQuery(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("dat search loads: %w", err)
	}

	loads, _, err := fetchMatches[*domain.Load](ctx, c, queryID, limit)
	if err != nil {
		return nil, fmt.Errorf("dat search loads: %w", err)
	}

	log.Printf("load search city=%s state=%s equipment=%s results=%d",
		req.City, req.State, req.EquipmentType, len(loads))
	return loads, nil
}

// SearchCapacity finds truck/driver postings matching the request. The
// returned counts include matches beyond the fetched page.
func (c *Client) SearchCapacity(
	ctx context.Context,
	req ports.CapacitySearchRequest,
) ([]*domain.CapacityPosting, ports.MatchCounts, error) {
	if !c.Authenticated() {
		return nil, ports.MatchCounts{}, errors.New("dat search capacity: not authenticated")
	}

	equipment := req.EquipmentTypes
	if len(equipment) == 0 {
		equipment = []string{"V"}
	}
	limit := req.Limit
	if limit <= 0 {
		limit = 150
	}

	criteria := ports.SearchCriteria{
		AssetType:                    ports.AssetTruck,
		EquipmentTypes:               equipment,
		Destination:                  &ports.Locator{Open: true},
		MaxOriginDeadheadMiles:       req.MaxDeadheadMiles,
		IncludeLoadBoard:             true,
		IncludePrivateNetwork:        true,
		IncludeOpenDestinationTrucks: true,
	}

	switch {
	case req.City != "" && req.Coordinates != nil:
		criteria.Origin = &ports.Locator{Place: &ports.PlaceLocator{
			City:      req.City,
			StateProv: req.State,
			Latitude:  req.Coordinates.Lat,
			Longitude: req.Coordinates.Lon,
		}}
	case req.State != "":
		criteria.Origin = &ports.Locator{States: []string{req.State}}
	}

	if req.DestinationState != "" {
		criteria.Destination = &ports.Locator{States: []string{req.DestinationState}}
	}
	if req.AvailabilityStart != "" || req.AvailabilityEnd != "" {
		criteria.Availability = &ports.AvailabilityWindow{
			EarliestWhen: req.AvailabilityStart,
			LatestWhen:   req.AvailabilityEnd,
		}
	}

	queryID, err := c.CreateQuery(ctx, criteria)
	if err != nil {
		return nil, ports.MatchCounts{}, fmt.Errorf("dat search capacity: %w", err)
	}

	postings, counts, err := fetchMatches[*domain.CapacityPosting](ctx, c, queryID, limit)
	if err != nil {
		return nil, ports.MatchCounts{}, fmt.Errorf("dat search capacity: %w", err)
	}

	log.Printf("capacity search city=%s state=%s results=%d total=%d",
		req.City, req.State, len(postings), counts.Total())
	return postings, counts, nil
}
