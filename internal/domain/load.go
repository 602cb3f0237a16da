package domain

// Wire-shaped value types for marketplace load postings. JSON tags follow the
// DAT search/v3 field names so adapter decoding lands directly on these
// structs; optional fields are pointers so "absent" and "zero" stay distinct.

// Miles wraps a mileage value nested under a "miles" key on the wire.
type Miles struct {
	Miles float64 `json:"miles"`
}

// Place is a named location, optionally with coordinates.
type Place struct {
	City      string  `json:"city,omitempty"`
	StateProv string  `json:"stateProv,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// Area is a restricted set of states.
type Area struct {
	States []string `json:"states,omitempty"`
}

// LoadDestination is either a single place or a set of candidate states.
type LoadDestination struct {
	Place *Place `json:"place,omitempty"`
	Area  *Area  `json:"area,omitempty"`
}

// ResolveState returns the destination state for scoring: the place state if
// present, otherwise the first candidate state, otherwise "".
func (d LoadDestination) ResolveState() string {
	if d.Place != nil && d.Place.StateProv != "" {
		return d.Place.StateProv
	}
	if d.Area != nil && len(d.Area.States) > 0 {
		return d.Area.States[0]
	}
	return ""
}

// CandidateStates returns every state the destination may resolve to.
func (d LoadDestination) CandidateStates() []string {
	if d.Place != nil && d.Place.StateProv != "" {
		return []string{d.Place.StateProv}
	}
	if d.Area != nil {
		return d.Area.States
	}
	return nil
}

// Rate is a posted rate quote.
type Rate struct {
	RateUSD float64 `json:"rateUsd"`
	Basis   string  `json:"basis"` // "FLAT" or "PER_MILE"
}

const (
	RateBasisFlat    = "FLAT"
	RateBasisPerMile = "PER_MILE"
)

// RateInfo carries the load-board rate quotes attached to a posting.
type RateInfo struct {
	NonBookable *Rate `json:"nonBookable,omitempty"`
	Bookable    *Rate `json:"bookable,omitempty"`
}

// ShipmentCapacity describes the freight capacity of a posted shipment.
type ShipmentCapacity struct {
	FullPartial         string  `json:"fullPartial,omitempty"`
	MaximumWeightPounds float64 `json:"maximumWeightPounds,omitempty"`
	MaximumLengthFeet   float64 `json:"maximumLengthFeet,omitempty"`
}

// AssetCapacity wraps shipment capacity details.
type AssetCapacity struct {
	Shipment *ShipmentCapacity `json:"shipment,omitempty"`
}

// AssetInfo is the matched asset (shipment or truck) of a posting.
type AssetInfo struct {
	EquipmentType       string          `json:"equipmentType,omitempty"`
	Origin              Place           `json:"origin"`
	Destination         LoadDestination `json:"destination"`
	Capacity            *AssetCapacity  `json:"capacity,omitempty"`
	Commodity           string          `json:"commodity,omitempty"`
	SpecialInstructions string          `json:"specialInstructions,omitempty"`
	ReferenceID         string          `json:"referenceId,omitempty"`
}

// Availability is a posting's pickup window. Timestamps stay as RFC 3339
// strings on this type; callers parse when they need to compare.
type Availability struct {
	EarliestWhen string `json:"earliestWhen,omitempty"`
	LatestWhen   string `json:"latestWhen,omitempty"`
}

// Contact holds poster contact channels. Phone may arrive under either key.
type Contact struct {
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
}

// BestPhone prefers the primary phone field over the legacy one.
func (c Contact) BestPhone() string {
	if c.PhoneNumber != "" {
		return c.PhoneNumber
	}
	return c.Phone
}

// Credit is the poster's payment profile.
type Credit struct {
	CreditScore int     `json:"creditScore,omitempty"`
	DaysToPay   float64 `json:"daysToPay,omitempty"`
}

// PosterInfo identifies the company behind a posting.
type PosterInfo struct {
	CompanyName            string   `json:"companyName,omitempty"`
	Contact                *Contact `json:"contact,omitempty"`
	Credit                 *Credit  `json:"credit,omitempty"`
	CarrierHomeState       string   `json:"carrierHomeState,omitempty"`
	PreferredContactMethod string   `json:"preferredContactMethod,omitempty"`
}

// DotIDs carries the poster's registry identifiers.
type DotIDs struct {
	DotNumber       int64 `json:"dotNumber,omitempty"`
	CarrierMcNumber int64 `json:"carrierMcNumber,omitempty"`
	BrokerMcNumber  int64 `json:"brokerMcNumber,omitempty"`
}

// Load is one shipment posting fetched from the marketplace. Immutable once
// decoded; owned by the orchestrator for the duration of one analysis call.
type Load struct {
	MatchID              string        `json:"matchId,omitempty"`
	TripLength           *Miles        `json:"tripLength,omitempty"`
	OriginDeadhead       *Miles        `json:"originDeadhead,omitempty"`
	OriginDeadheadMiles  *Miles        `json:"originDeadheadMiles,omitempty"`
	EstimatedRatePerMile float64       `json:"estimatedRatePerMile,omitempty"`
	LoadBoardRateInfo    *RateInfo     `json:"loadBoardRateInfo,omitempty"`
	MatchingAssetInfo    AssetInfo     `json:"matchingAssetInfo"`
	Availability         *Availability `json:"availability,omitempty"`
	PosterInfo           *PosterInfo   `json:"posterInfo,omitempty"`
	PosterDotIDs         *DotIDs       `json:"posterDotIds,omitempty"`
	IsBookable           bool          `json:"isBookable,omitempty"`
	IsNegotiable         bool          `json:"isNegotiable,omitempty"`
	PostingID            string        `json:"postingId,omitempty"`
	Comments             string        `json:"comments,omitempty"`
}

// TripMiles returns the trip length, 0 when absent.
func (l *Load) TripMiles() float64 {
	if l.TripLength == nil {
		return 0
	}
	return l.TripLength.Miles
}

// DeadheadMiles prefers the originDeadhead field and falls back to the
// legacy originDeadheadMiles name; 0 when both are absent.
func (l *Load) DeadheadMiles() float64 {
	if l.OriginDeadhead != nil {
		return l.OriginDeadhead.Miles
	}
	if l.OriginDeadheadMiles != nil {
		return l.OriginDeadheadMiles.Miles
	}
	return 0
}

// DestinationState resolves the load's destination state, "" when the load
// has neither a destination place nor candidate states.
func (l *Load) DestinationState() string {
	return l.MatchingAssetInfo.Destination.ResolveState()
}

// FullPartial returns the load's full/partial flag from whichever nesting
// level the marketplace used, "" when absent.
func (l *Load) FullPartial() string {
	if l.MatchingAssetInfo.Capacity != nil && l.MatchingAssetInfo.Capacity.Shipment != nil {
		return l.MatchingAssetInfo.Capacity.Shipment.FullPartial
	}
	return ""
}
