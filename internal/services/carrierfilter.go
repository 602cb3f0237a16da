package services

import (
	"context"
	"load-ranking-service/internal/domain"
	"load-ranking-service/internal/ports"
	"log"
	"strconv"
)

// DefaultMaxFleetSize is the small-carrier cutoff for capacity results.
const DefaultMaxFleetSize = 10

// FilterByFleetSize keeps capacity postings from carriers with at most
// maxTrucks trucks in the registry. Postings that cannot be verified (no DOT
// number, lookup failure, unknown fleet size) are kept: the filter only
// excludes carriers proven to be too large. Registry lookups are deduplicated
// by DOT number within one filtering pass.
func FilterByFleetSize(
	ctx context.Context,
	postings []*domain.CapacityPosting,
	maxTrucks int,
	registry ports.CarrierRegistry,
) []*domain.CapacityPosting {
	if len(postings) == 0 || registry == nil {
		return postings
	}

	if maxTrucks <= 0 {
		maxTrucks = DefaultMaxFleetSize
	}

	checked := make(map[string]*int)
	filtered := make([]*domain.CapacityPosting, 0, len(postings))

	for _, posting := range postings {
		dot := posting.DotNumber()
		if dot == 0 {
			filtered = append(filtered, posting)
			continue
		}

		dotStr := strconv.FormatInt(dot, 10)
		trucks, seen := checked[dotStr]
		if !seen {
			trucks = lookupTruckUnits(ctx, registry, dotStr)
			checked[dotStr] = trucks
		}

		if trucks == nil || *trucks <= maxTrucks {
			filtered = append(filtered, posting)
		}
	}

	log.Printf("fleet filter kept=%d of=%d max_trucks=%d", len(filtered), len(postings), maxTrucks)
	return filtered
}

// lookupTruckUnits returns the carrier's truck count, or nil when it cannot
// be determined.
func lookupTruckUnits(ctx context.Context, registry ports.CarrierRegistry, dot string) *int {
	rec, err := registry.GetCarrier(ctx, dot)
	if err != nil {
		log.Printf("carrier lookup failed dot=%s err=%v", dot, err)
		return nil
	}
	if rec == nil {
		return nil
	}
	return rec.TruckUnits
}
