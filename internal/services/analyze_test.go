package services

import (
	"context"
	"fmt"
	"load-ranking-service/internal/adapters/dat"
	"load-ranking-service/internal/domain"
	"testing"
)

func loadTo(state string, rate float64) *domain.Load {
	return &domain.Load{
		MatchID:              "m-" + state,
		TripLength:           &domain.Miles{Miles: 500},
		OriginDeadhead:       &domain.Miles{Miles: 50},
		EstimatedRatePerMile: rate,
		MatchingAssetInfo: domain.AssetInfo{
			EquipmentType: "V",
			Origin:        domain.Place{City: "Dallas", StateProv: "TX"},
			Destination: domain.LoadDestination{
				Place: &domain.Place{City: "City", StateProv: state},
			},
		},
	}
}

func TestAnalyzeLoadsEmpty(t *testing.T) {
	mock := dat.NewMockMarketplace(nil)

	out := AnalyzeLoads(context.Background(), nil, "TX", mock)

	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", out)
	}
	if mock.CreatedQueries() != 0 {
		t.Fatalf("queries = %d, want 0", mock.CreatedQueries())
	}
}

func TestAnalyzeLoadsTruncatesStateFanOut(t *testing.T) {
	states := []string{"OH", "PA", "NY", "IL", "GA", "FL", "NC", "TN", "MO", "WI", "MI"}

	counts := make([]dat.MockStateCounts, 0, len(states))
	for _, s := range states {
		counts = append(counts, dat.MockStateCounts{State: s, Loads: 60, Trucks: 30})
	}
	mock := dat.NewMockMarketplace(counts)

	// 12 loads across 11 distinct states (the last state repeats).
	loads := make([]*domain.Load, 0, 12)
	for _, s := range states {
		loads = append(loads, loadTo(s, 2.50))
	}
	loads = append(loads, loadTo("MI", 2.50))

	out := AnalyzeLoads(context.Background(), loads, "TX", mock)

	if len(out) != 12 {
		t.Fatalf("analyzed = %d, want all 12", len(out))
	}

	queried := mock.QueriedStates()
	if len(queried) != 10 {
		t.Fatalf("queried states = %d, want 10", len(queried))
	}
	// First-encountered states win the truncation; the 11th is never fetched.
	for _, s := range queried {
		if s == "MI" {
			t.Fatalf("truncated state MI was fetched")
		}
	}

	// Loads to the truncated-out state still appear, with zero market data.
	for _, al := range out {
		if al.Destination.State != "MI" {
			continue
		}
		if al.Market.OutboundLoads != 0 || al.Market.AvailableTrucks != 0 {
			t.Fatalf("truncated state market = %+v, want zeroed", al.Market)
		}
		if al.Market.State != "MI" {
			t.Fatalf("truncated state label = %q, want MI", al.Market.State)
		}
	}
}

func TestAnalyzeLoadsFailedStateIsolated(t *testing.T) {
	mock := dat.NewMockMarketplace([]dat.MockStateCounts{
		{State: "OH", Loads: 120, Trucks: 40},
		{State: "PA", Loads: 80, Trucks: 40},
	})
	mock.FailState("PA")

	out := AnalyzeLoads(context.Background(), []*domain.Load{
		loadTo("OH", 2.50),
		loadTo("PA", 2.50),
	}, "TX", mock)

	if len(out) != 2 {
		t.Fatalf("analyzed = %d, want 2", len(out))
	}

	for _, al := range out {
		switch al.Destination.State {
		case "OH":
			if al.Market.OutboundLoads != 120 {
				t.Fatalf("OH market = %+v", al.Market)
			}
		case "PA":
			if al.Market.EaseOfBooking.Rating != "Error" {
				t.Fatalf("PA ease = %+v, want Error", al.Market.EaseOfBooking)
			}
		}
	}
}

func TestAnalyzeLoadsSkipsUnresolvableDestination(t *testing.T) {
	mock := dat.NewMockMarketplace([]dat.MockStateCounts{
		{State: "OH", Loads: 60, Trucks: 30},
	})

	noDest := &domain.Load{
		MatchID:           "m-none",
		TripLength:        &domain.Miles{Miles: 300},
		MatchingAssetInfo: domain.AssetInfo{EquipmentType: "V"},
	}

	out := AnalyzeLoads(context.Background(), []*domain.Load{
		loadTo("OH", 2.50),
		noDest,
		loadTo("OH", 2.00),
	}, "TX", mock)

	if len(out) != 2 {
		t.Fatalf("analyzed = %d, want 2 (unresolvable destination skipped)", len(out))
	}
	// Load numbers enumerate the input, so the skipped load still consumes
	// its position.
	if out[0].LoadNumber == 2 || out[1].LoadNumber == 2 {
		t.Fatalf("skipped load's number reused: %d, %d", out[0].LoadNumber, out[1].LoadNumber)
	}
}

func TestAnalyzeLoadsSortedByCompositeDescending(t *testing.T) {
	mock := dat.NewMockMarketplace([]dat.MockStateCounts{
		{State: "OH", Loads: 120, Trucks: 40},
		{State: "WY", Loads: 5, Trucks: 40},
	})

	out := AnalyzeLoads(context.Background(), []*domain.Load{
		loadTo("WY", 2.50),
		loadTo("OH", 2.50),
	}, "TX", mock)

	if len(out) != 2 {
		t.Fatalf("analyzed = %d, want 2", len(out))
	}
	if out[0].Destination.State != "OH" {
		t.Fatalf("first = %q, want OH (stronger market)", out[0].Destination.State)
	}
	if out[0].Composite.CompositeScore < out[1].Composite.CompositeScore {
		t.Fatalf("not sorted: %v < %v", out[0].Composite.CompositeScore, out[1].Composite.CompositeScore)
	}
}

func TestAnalyzeLoadsStableForEqualScores(t *testing.T) {
	mock := dat.NewMockMarketplace([]dat.MockStateCounts{
		{State: "OH", Loads: 60, Trucks: 30},
	})

	loads := make([]*domain.Load, 0, 4)
	for i := 0; i < 4; i++ {
		l := loadTo("OH", 2.50)
		l.MatchID = fmt.Sprintf("m-%d", i)
		loads = append(loads, l)
	}

	out := AnalyzeLoads(context.Background(), loads, "TX", mock)

	if len(out) != 4 {
		t.Fatalf("analyzed = %d, want 4", len(out))
	}
	for i, al := range out {
		want := fmt.Sprintf("m-%d", i)
		if al.MatchID != want {
			t.Fatalf("order not stable: out[%d] = %q, want %q", i, al.MatchID, want)
		}
		if al.LoadNumber != i+1 {
			t.Fatalf("load number = %d, want %d", al.LoadNumber, i+1)
		}
	}
}

func TestDestinationStatesFirstEncounteredOrder(t *testing.T) {
	area := &domain.Load{
		MatchingAssetInfo: domain.AssetInfo{
			Destination: domain.LoadDestination{
				Area: &domain.Area{States: []string{"GA", "FL", "OH"}},
			},
		},
	}

	states := destinationStates([]*domain.Load{
		loadTo("OH", 2.50),
		area,
		loadTo("FL", 2.50),
	})

	want := []string{"OH", "GA", "FL"}
	if len(states) != len(want) {
		t.Fatalf("states = %v, want %v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Fatalf("states = %v, want %v", states, want)
		}
	}
}
