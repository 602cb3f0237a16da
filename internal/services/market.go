package services

import (
	"context"
	"fmt"
	"load-ranking-service/internal/domain"
	"load-ranking-service/internal/ports"
	"log"
	"math"
)

// Staleness bound for market count queries (48 hours).
const marketMaxAgeMinutes = 2880

// FetchMarketData queries the marketplace for a state's outbound-load and
// available-truck counts and derives the supply/demand ratio plus the ease
// and connectivity sub-scores. It never returns an error: an unauthenticated
// client yields a zeroed "Unknown" result without any network call, and any
// query failure yields a zeroed "Error" result.
func FetchMarketData(
	ctx context.Context,
	state string,
	equipmentTypes []string,
	client ports.MarketplaceClient,
) domain.MarketData {
	if !client.Authenticated() {
		return placeholderMarketData(state, "Unknown")
	}

	outbound, err := fetchAssetCount(ctx, client, ports.AssetShipment, state, equipmentTypes)
	if err != nil {
		log.Printf("market fetch failed state=%s asset=SHIPMENT err=%v", state, err)
		return placeholderMarketData(state, "Error")
	}

	trucks, err := fetchAssetCount(ctx, client, ports.AssetTruck, state, equipmentTypes)
	if err != nil {
		log.Printf("market fetch failed state=%s asset=TRUCK err=%v", state, err)
		return placeholderMarketData(state, "Error")
	}

	sdr := float64(trucks) / math.Max(float64(outbound), 1)

	return domain.MarketData{
		State:             state,
		OutboundLoads:     outbound,
		AvailableTrucks:   trucks,
		SupplyDemandRatio: round2(sdr),
		EaseOfBooking:     easeOfBooking(sdr, outbound, trucks),
		LaneConnectivity:  laneConnectivity(outbound),
	}
}

// fetchAssetCount runs the two-step count protocol for one lane direction:
// submit a criteria document, then fetch counts-only results for its query id.
func fetchAssetCount(
	ctx context.Context,
	client ports.MarketplaceClient,
	assetType ports.AssetType,
	state string,
	equipmentTypes []string,
) (int, error) {
	criteria := ports.SearchCriteria{
		AssetType:             assetType,
		EquipmentTypes:        equipmentTypes,
		Origin:                &ports.Locator{States: []string{state}},
		Destination:           &ports.Locator{Open: true},
		MaxAgeMinutes:         marketMaxAgeMinutes,
		IncludeLoadBoard:      true,
		IncludePrivateNetwork: true,
		// Trucks with no preferred destination still count as supply.
		IncludeOpenDestinationTrucks: assetType == ports.AssetTruck,
	}

	queryID, err := client.CreateQuery(ctx, criteria)
	if err != nil {
		return 0, fmt.Errorf("create %s query: %w", assetType, err)
	}

	counts, err := client.GetCounts(ctx, queryID)
	if err != nil {
		return 0, fmt.Errorf("get %s counts: %w", assetType, err)
	}

	return counts.Total(), nil
}

// easeOfBooking bands the supply/demand ratio. A dead market (no loads and
// no trucks) is its own band rather than an "excellent" zero ratio.
func easeOfBooking(sdr float64, outbound, trucks int) domain.ScoreBand {
	switch {
	case outbound == 0 && trucks == 0:
		return domain.ScoreBand{Score: 0, Rating: "No Market"}
	case sdr <= 0.5:
		return domain.ScoreBand{Score: 95, Rating: "Excellent"}
	case sdr <= 1.0:
		return domain.ScoreBand{Score: 85, Rating: "Excellent"}
	case sdr <= 1.5:
		return domain.ScoreBand{Score: 70, Rating: "Balanced"}
	case sdr <= 2.5:
		return domain.ScoreBand{Score: 50, Rating: "Balanced"}
	case sdr <= 4.0:
		return domain.ScoreBand{Score: 35, Rating: "Difficult"}
	default:
		return domain.ScoreBand{Score: 20, Rating: "Difficult"}
	}
}

// laneConnectivity bands the outbound-load count: liquidity of the
// destination market for the driver's next move.
func laneConnectivity(outbound int) domain.ScoreBand {
	switch {
	case outbound >= 100:
		return domain.ScoreBand{Score: 90, Rating: "High"}
	case outbound >= 50:
		return domain.ScoreBand{Score: 70, Rating: "Medium"}
	case outbound >= 20:
		return domain.ScoreBand{Score: 50, Rating: "Low"}
	default:
		return domain.ScoreBand{Score: 20, Rating: "Very Low"}
	}
}

func placeholderMarketData(state, rating string) domain.MarketData {
	return domain.MarketData{
		State:            state,
		EaseOfBooking:    domain.ScoreBand{Score: 0, Rating: rating},
		LaneConnectivity: domain.ScoreBand{Score: 0, Rating: rating},
	}
}
