package handlers

import (
	"encoding/json"
	"load-ranking-service/internal/adapters/geo"
	"load-ranking-service/internal/adapters/snapshot"
	"load-ranking-service/internal/api/dto"
	"load-ranking-service/internal/domain"
	"load-ranking-service/internal/ports"
	"net/http"
	"os"
	"testing"
)

func samplePosting(dot int64) *domain.CapacityPosting {
	p := &domain.CapacityPosting{
		MatchingAssetInfo: domain.AssetInfo{
			EquipmentType: "V",
			Origin:        domain.Place{City: "Laredo", StateProv: "TX"},
			Destination: domain.LoadDestination{
				Area: &domain.Area{States: []string{"OH", "PA"}},
			},
		},
		AvailableLengthFeet:   53,
		AvailableWeightPounds: 45000,
		PosterInfo: &domain.PosterInfo{
			CompanyName: "SMALL FLEET LLC",
			Contact:     &domain.Contact{Phone: "555-0200"},
		},
	}
	if dot != 0 {
		p.PosterDotIDs = &domain.DotIDs{DotNumber: dot}
	}
	return p
}

func TestSearchDrivers(t *testing.T) {
	dir := t.TempDir()
	board := &fakeBoard{
		postings: []*domain.CapacityPosting{samplePosting(100), samplePosting(0)},
		counts:   ports.MatchCounts{Normal: 30},
	}
	h := &DriversHandler{
		Board:     board,
		Cities:    geo.NewCityDB(nil),
		Snapshots: snapshot.NewStore(dir),
	}

	rec := postJSON(t, h.SearchDrivers, "/api/search-drivers", dto.DriverSearchRequest{
		OriginCity:     "Laredo",
		OriginState:    "TX",
		EquipmentTypes: []string{"V"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}

	var res dto.DriverSearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.TotalCount != 30 || res.ReturnedCount != 2 {
		t.Fatalf("counts = %d/%d, want 30/2", res.TotalCount, res.ReturnedCount)
	}

	d := res.Drivers[0]
	if d.Company != "SMALL FLEET LLC" || d.Phone != "555-0200" {
		t.Fatalf("driver = %+v", d)
	}
	if d.OriginCity != "Laredo" || len(d.DestinationStates) != 2 {
		t.Fatalf("driver location = %+v", d)
	}

	// One snapshot file per search.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read snapshot dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("snapshots = %d, want 1", len(entries))
	}
}

func TestSearchDriversMissingOrigin(t *testing.T) {
	h := &DriversHandler{Board: &fakeBoard{}, Cities: geo.NewCityDB(nil)}

	rec := postJSON(t, h.SearchDrivers, "/api/search-drivers", dto.DriverSearchRequest{
		OriginCity: "Laredo",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSearchDriversLimit(t *testing.T) {
	postings := make([]*domain.CapacityPosting, 0, 30)
	for i := 0; i < 30; i++ {
		postings = append(postings, samplePosting(0))
	}
	board := &fakeBoard{postings: postings}
	h := &DriversHandler{Board: board, Cities: geo.NewCityDB(nil)}

	rec := postJSON(t, h.SearchDrivers, "/api/search-drivers", dto.DriverSearchRequest{
		OriginCity:  "Laredo",
		OriginState: "TX",
		Limit:       5,
	})

	var res dto.DriverSearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.ReturnedCount != 5 || len(res.Drivers) != 5 {
		t.Fatalf("returned = %d/%d, want 5", res.ReturnedCount, len(res.Drivers))
	}
	if res.TotalCount != 30 {
		t.Fatalf("total = %d, want 30", res.TotalCount)
	}
}
