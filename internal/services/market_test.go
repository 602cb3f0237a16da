package services

import (
	"context"
	"load-ranking-service/internal/adapters/dat"
	"testing"
)

func TestFetchMarketDataCounts(t *testing.T) {
	mock := dat.NewMockMarketplace([]dat.MockStateCounts{
		{State: "TX", Loads: 120, Trucks: 60},
	})

	md := FetchMarketData(context.Background(), "TX", []string{"V", "R", "F"}, mock)

	if md.OutboundLoads != 120 || md.AvailableTrucks != 60 {
		t.Fatalf("counts = %d/%d, want 120/60", md.OutboundLoads, md.AvailableTrucks)
	}
	if md.SupplyDemandRatio != 0.5 {
		t.Fatalf("sdr = %v, want 0.5", md.SupplyDemandRatio)
	}
	if md.EaseOfBooking.Score != 95 || md.EaseOfBooking.Rating != "Excellent" {
		t.Fatalf("ease = %+v, want 95/Excellent", md.EaseOfBooking)
	}
	if md.LaneConnectivity.Score != 90 || md.LaneConnectivity.Rating != "High" {
		t.Fatalf("connectivity = %+v, want 90/High", md.LaneConnectivity)
	}
	// One SHIPMENT and one TRUCK query per state.
	if mock.CreatedQueries() != 2 {
		t.Fatalf("queries = %d, want 2", mock.CreatedQueries())
	}
}

func TestFetchMarketDataNoMarket(t *testing.T) {
	mock := dat.NewMockMarketplace([]dat.MockStateCounts{
		{State: "WY", Loads: 0, Trucks: 0},
	})

	md := FetchMarketData(context.Background(), "WY", []string{"V"}, mock)

	if md.EaseOfBooking.Score != 0 || md.EaseOfBooking.Rating != "No Market" {
		t.Fatalf("ease = %+v, want 0/No Market", md.EaseOfBooking)
	}
	if md.LaneConnectivity.Score != 20 || md.LaneConnectivity.Rating != "Very Low" {
		t.Fatalf("connectivity = %+v, want 20/Very Low", md.LaneConnectivity)
	}
}

func TestFetchMarketDataUnauthenticated(t *testing.T) {
	mock := dat.NewMockMarketplace(nil)
	mock.SetUnauthenticated()

	md := FetchMarketData(context.Background(), "TX", []string{"V"}, mock)

	if md.EaseOfBooking.Rating != "Unknown" || md.LaneConnectivity.Rating != "Unknown" {
		t.Fatalf("ratings = %q/%q, want Unknown", md.EaseOfBooking.Rating, md.LaneConnectivity.Rating)
	}
	if mock.CreatedQueries() != 0 {
		t.Fatalf("queries = %d, want 0 (no network calls when unauthenticated)", mock.CreatedQueries())
	}
}

func TestFetchMarketDataQueryFailure(t *testing.T) {
	mock := dat.NewMockMarketplace([]dat.MockStateCounts{
		{State: "OH", Loads: 40, Trucks: 30},
	})
	mock.FailState("OH")

	md := FetchMarketData(context.Background(), "OH", []string{"V"}, mock)

	if md.EaseOfBooking.Rating != "Error" || md.EaseOfBooking.Score != 0 {
		t.Fatalf("ease = %+v, want 0/Error", md.EaseOfBooking)
	}
	if md.OutboundLoads != 0 || md.AvailableTrucks != 0 {
		t.Fatalf("counts = %d/%d, want zeroed", md.OutboundLoads, md.AvailableTrucks)
	}
}

func TestEaseOfBookingBands(t *testing.T) {
	cases := []struct {
		sdr    float64
		loads  int
		trucks int
		score  int
		rating string
	}{
		{0.3, 100, 30, 95, "Excellent"},
		{1.0, 50, 50, 85, "Excellent"},
		{1.4, 50, 70, 70, "Balanced"},
		{2.5, 20, 50, 50, "Balanced"},
		{4.0, 10, 40, 35, "Difficult"},
		{6.0, 10, 60, 20, "Difficult"},
	}

	for _, tc := range cases {
		band := easeOfBooking(tc.sdr, tc.loads, tc.trucks)
		if band.Score != tc.score || band.Rating != tc.rating {
			t.Fatalf("ease(%v) = %+v, want %d/%s", tc.sdr, band, tc.score, tc.rating)
		}
	}
}

func TestLaneConnectivityBands(t *testing.T) {
	cases := []struct {
		outbound int
		score    int
	}{
		{150, 90},
		{100, 90},
		{99, 70},
		{50, 70},
		{49, 50},
		{20, 50},
		{19, 20},
		{0, 20},
	}

	for _, tc := range cases {
		band := laneConnectivity(tc.outbound)
		if band.Score != tc.score {
			t.Fatalf("connectivity(%d) = %d, want %d", tc.outbound, band.Score, tc.score)
		}
	}
}
