package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"load-ranking-service/internal/adapters/geo"
	"load-ranking-service/internal/api/dto"
	"load-ranking-service/internal/domain"
	"load-ranking-service/internal/ports"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeBoard is an in-memory LoadBoard for handler tests.
type fakeBoard struct {
	loads       []*domain.Load
	postings    []*domain.CapacityPosting
	counts      ports.MatchCounts
	sessionErr  error
	searchErr   error
	stateCounts map[string]ports.MatchCounts
}

func (b *fakeBoard) CreateQuery(ctx context.Context, criteria ports.SearchCriteria) (string, error) {
	if criteria.Origin != nil && len(criteria.Origin.States) > 0 {
		state := criteria.Origin.States[0]
		if string(criteria.AssetType) == "TRUCK" {
			return "t-" + state, nil
		}
		return "s-" + state, nil
	}
	return "q-1", nil
}

func (b *fakeBoard) GetCounts(ctx context.Context, queryID string) (ports.MatchCounts, error) {
	if b.stateCounts != nil {
		if c, ok := b.stateCounts[queryID]; ok {
			return c, nil
		}
	}
	return ports.MatchCounts{}, nil
}

func (b *fakeBoard) Authenticated() bool { return b.sessionErr == nil }

func (b *fakeBoard) SearchLoads(ctx context.Context, req ports.LoadSearchRequest) ([]*domain.Load, error) {
	return b.loads, b.searchErr
}

func (b *fakeBoard) SearchCapacity(ctx context.Context, req ports.CapacitySearchRequest) ([]*domain.CapacityPosting, ports.MatchCounts, error) {
	return b.postings, b.counts, b.searchErr
}

func (b *fakeBoard) EnsureSession(ctx context.Context) error { return b.sessionErr }

func (b *fakeBoard) APICalls() int64 { return 0 }

func sampleLoad(state string) *domain.Load {
	return &domain.Load{
		MatchID:              "m-" + state,
		TripLength:           &domain.Miles{Miles: 500},
		OriginDeadhead:       &domain.Miles{Miles: 50},
		EstimatedRatePerMile: 2.50,
		MatchingAssetInfo: domain.AssetInfo{
			EquipmentType: "V",
			Origin:        domain.Place{City: "Dallas", StateProv: "TX"},
			Destination: domain.LoadDestination{
				Place: &domain.Place{City: "Columbus", StateProv: state},
			},
		},
		PosterInfo: &domain.PosterInfo{
			CompanyName: "BIG BROKER INC",
			Contact:     &domain.Contact{Email: "ops@example.com", PhoneNumber: "555-0100"},
		},
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	encoded, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(encoded))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestGetLoadsForDriver(t *testing.T) {
	board := &fakeBoard{
		loads: []*domain.Load{sampleLoad("OH"), sampleLoad("OH")},
		stateCounts: map[string]ports.MatchCounts{
			"s-OH": {Normal: 120},
			"t-OH": {Normal: 40},
		},
	}
	h := &LoadsHandler{Board: board, Cities: geo.NewCityDB(nil)}

	rec := postJSON(t, h.GetLoadsForDriver, "/api/get-loads-for-driver", dto.LoadSearchRequest{
		DriverLocationCity:  "Dallas",
		DriverLocationState: "TX",
		EquipmentType:       "V",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}

	var res dto.LoadSearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.TotalCount != 2 || len(res.Loads) != 2 {
		t.Fatalf("counts = %d/%d, want 2/2", res.TotalCount, len(res.Loads))
	}
	if res.RankedBy != "composite_score" {
		t.Fatalf("ranked_by = %q", res.RankedBy)
	}

	first := res.Loads[0]
	if first.Destination.State != "OH" || first.Profit.Score != 85 {
		t.Fatalf("first load = %+v", first)
	}
	if first.Broker == nil || first.Broker.Company != "BIG BROKER INC" || first.Broker.Phone != "555-0100" {
		t.Fatalf("broker = %+v", first.Broker)
	}
}

func TestGetLoadsForDriverUnknownCity(t *testing.T) {
	h := &LoadsHandler{Board: &fakeBoard{}, Cities: geo.NewCityDB(nil)}

	rec := postJSON(t, h.GetLoadsForDriver, "/api/get-loads-for-driver", dto.LoadSearchRequest{
		DriverLocationCity:  "Atlantis",
		DriverLocationState: "TX",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetLoadsForDriverMissingFields(t *testing.T) {
	h := &LoadsHandler{Board: &fakeBoard{}, Cities: geo.NewCityDB(nil)}

	rec := postJSON(t, h.GetLoadsForDriver, "/api/get-loads-for-driver", dto.LoadSearchRequest{})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetLoadsForDriverSessionFailure(t *testing.T) {
	board := &fakeBoard{sessionErr: errors.New("identity service down")}
	h := &LoadsHandler{Board: board, Cities: geo.NewCityDB(nil)}

	rec := postJSON(t, h.GetLoadsForDriver, "/api/get-loads-for-driver", dto.LoadSearchRequest{
		DriverLocationCity:  "Dallas",
		DriverLocationState: "TX",
	})

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestGetLoadsForDriverMethodNotAllowed(t *testing.T) {
	h := &LoadsHandler{Board: &fakeBoard{}, Cities: geo.NewCityDB(nil)}

	req := httptest.NewRequest(http.MethodGet, "/api/get-loads-for-driver", nil)
	rec := httptest.NewRecorder()
	h.GetLoadsForDriver(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestGetLoadsForDriverLimit(t *testing.T) {
	loads := make([]*domain.Load, 0, 15)
	for i := 0; i < 15; i++ {
		loads = append(loads, sampleLoad("OH"))
	}
	board := &fakeBoard{loads: loads}
	h := &LoadsHandler{Board: board, Cities: geo.NewCityDB(nil)}

	rec := postJSON(t, h.GetLoadsForDriver, "/api/get-loads-for-driver", dto.LoadSearchRequest{
		DriverLocationCity:  "Dallas",
		DriverLocationState: "TX",
	})

	var res dto.LoadSearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.TotalCount != 15 {
		t.Fatalf("total = %d, want 15", res.TotalCount)
	}
	if len(res.Loads) != defaultLoadLimit {
		t.Fatalf("returned = %d, want default limit %d", len(res.Loads), defaultLoadLimit)
	}
}
