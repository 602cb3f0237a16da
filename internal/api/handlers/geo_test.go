package handlers

import (
	"encoding/json"
	"load-ranking-service/internal/adapters/geo"
	"load-ranking-service/internal/api/dto"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStates(t *testing.T) {
	h := &GeoHandler{Cities: geo.NewCityDB(nil)}

	req := httptest.NewRequest(http.MethodGet, "/api/states", nil)
	rec := httptest.NewRecorder()
	h.States(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var res dto.StatesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.States) != 50 {
		t.Fatalf("states = %d, want 50", len(res.States))
	}
}

func TestListCities(t *testing.T) {
	h := &GeoHandler{Cities: geo.NewCityDB(nil)}

	req := httptest.NewRequest(http.MethodGet, "/api/cities/tx", nil)
	rec := httptest.NewRecorder()
	h.ListCities(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var res dto.CitiesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.State != "TX" || len(res.Cities) == 0 {
		t.Fatalf("response = %+v", res)
	}
}

func TestListCitiesUnknownState(t *testing.T) {
	h := &GeoHandler{Cities: geo.NewCityDB(nil)}

	req := httptest.NewRequest(http.MethodGet, "/api/cities/ZZ", nil)
	rec := httptest.NewRecorder()
	h.ListCities(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListCitiesMissingState(t *testing.T) {
	h := &GeoHandler{Cities: geo.NewCityDB(nil)}

	req := httptest.NewRequest(http.MethodGet, "/api/cities/", nil)
	rec := httptest.NewRecorder()
	h.ListCities(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
