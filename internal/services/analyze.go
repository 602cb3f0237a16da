package services

import (
	"context"
	"load-ranking-service/internal/domain"
	"load-ranking-service/internal/ports"
	"log"
	"sort"
	"sync"
)

const (
	// Cap on distinct destination states fetched per analysis call.
	maxMarketStates = 10
	// Bound on simultaneous market fetches.
	maxConcurrentFetches = 5
)

// Market queries span all common equipment classes regardless of the load's
// own equipment: the driver cares about total outbound liquidity.
var marketEquipmentTypes = []string{"V", "R", "F"}

type marketResult struct {
	state string
	data  domain.MarketData
}

// AnalyzeLoads scores and ranks candidate loads for a driver. It fans out
// market-data fetches across the distinct destination states (bounded
// concurrency), joins the results back onto each load, computes profit and
// composite scores, and returns the loads sorted by composite score
// descending. It never fails: per-state fetch problems degrade to placeholder
// market data and loads without a resolvable destination are skipped.
//
// The caller is responsible for a valid marketplace session before fan-out;
// the concurrent fetches only read client state.
func AnalyzeLoads(
	ctx context.Context,
	loads []*domain.Load,
	driverState string,
	client ports.MarketplaceClient,
) []domain.AnalyzedLoad {
	if len(loads) == 0 {
		return []domain.AnalyzedLoad{}
	}

	allStates := destinationStates(loads)

	// Bound marketplace call volume. Loads destined to a truncated-out state
	// are still analyzed below, with zero-valued market data for their state.
	states := allStates
	if len(states) > maxMarketStates {
		states = states[:maxMarketStates]
	}

	log.Printf("analyze loads count=%d origin=%s states=%d fetched=%d",
		len(loads), driverState, len(allStates), len(states))

	cache := fetchMarketDataSet(ctx, states, client)

	analyzed := make([]domain.AnalyzedLoad, 0, len(loads))
	for i, load := range loads {
		state := load.DestinationState()
		if state == "" {
			continue
		}

		profit := EstimateProfit(load)

		market, ok := cache[state]
		if !ok {
			market = domain.MarketData{State: state}
		}

		composite := ScoreComposite(profit, market)

		origin := load.MatchingAssetInfo.Origin
		var destCity string
		if place := load.MatchingAssetInfo.Destination.Place; place != nil {
			destCity = place.City
		}

		analyzed = append(analyzed, domain.AnalyzedLoad{
			LoadNumber:  i + 1,
			MatchID:     load.MatchID,
			Origin:      domain.PlaceSummary{City: origin.City, State: origin.StateProv},
			Destination: domain.PlaceSummary{City: destCity, State: state},
			Profit:      profit,
			Market:      market,
			Composite:   composite,
			Raw:         load,
		})
	}

	// Stable sort keeps input order among equal composite scores.
	sort.SliceStable(analyzed, func(a, b int) bool {
		return analyzed[a].Composite.CompositeScore > analyzed[b].Composite.CompositeScore
	})

	return analyzed
}

// destinationStates collects the distinct destination states across all
// loads in first-encountered order, unioning candidate-state sets.
func destinationStates(loads []*domain.Load) []string {
	seen := make(map[string]struct{})
	states := make([]string, 0, len(loads))

	for _, load := range loads {
		for _, s := range load.MatchingAssetInfo.Destination.CandidateStates() {
			if s == "" {
				continue
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			states = append(states, s)
		}
	}

	return states
}

// fetchMarketDataSet fetches market data for each state with at most
// maxConcurrentFetches in flight. One state's failure never blocks or cancels
// the others; each worker writes a distinct key, joined via the results
// channel before any load is scored.
func fetchMarketDataSet(
	ctx context.Context,
	states []string,
	client ports.MarketplaceClient,
) map[string]domain.MarketData {
	cache := make(map[string]domain.MarketData, len(states))
	if len(states) == 0 {
		return cache
	}

	sem := make(chan struct{}, maxConcurrentFetches)
	results := make(chan marketResult, len(states))
	var wg sync.WaitGroup

	for _, state := range states {
		wg.Add(1)
		go func(state string) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			results <- marketResult{state: state, data: FetchMarketData(ctx, state, marketEquipmentTypes, client)}
		}(state)
	}

	wg.Wait()
	close(results)

	for r := range results {
		cache[r.state] = r.data
	}

	return cache
}
