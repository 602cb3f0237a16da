package domain

// CapacityPosting is one truck/driver availability posting from the
// marketplace capacity search.
type CapacityPosting struct {
	MatchID               string        `json:"matchId,omitempty"`
	MatchingAssetInfo     AssetInfo     `json:"matchingAssetInfo"`
	Availability          *Availability `json:"availability,omitempty"`
	PosterInfo            *PosterInfo   `json:"posterInfo,omitempty"`
	PosterDotIDs          *DotIDs       `json:"posterDotIds,omitempty"`
	OriginDeadheadMiles   *Miles        `json:"originDeadheadMiles,omitempty"`
	AvailableLengthFeet   float64       `json:"availableLengthFeet,omitempty"`
	AvailableWeightPounds float64       `json:"availableWeightPounds,omitempty"`
	IsBookable            bool          `json:"isBookable,omitempty"`
	IsNegotiable          bool          `json:"isNegotiable,omitempty"`
	IsFactorable          bool          `json:"isFactorable,omitempty"`
	IsAssurable           bool          `json:"isAssurable,omitempty"`
	IsTrackable           bool          `json:"isTrackable,omitempty"`
	Comments              string        `json:"comments,omitempty"`
	PostingID             string        `json:"postingId,omitempty"`
	PostingExpiresWhen    string        `json:"postingExpiresWhen,omitempty"`
}

// DotNumber returns the poster's DOT number, 0 when absent.
func (p *CapacityPosting) DotNumber() int64 {
	if p.PosterDotIDs == nil {
		return 0
	}
	return p.PosterDotIDs.DotNumber
}
