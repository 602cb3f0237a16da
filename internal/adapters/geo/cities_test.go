package geo

import (
	"context"
	"errors"
	"load-ranking-service/internal/domain"
	"testing"
)

type stubGeocoder struct {
	coord domain.Coordinates
	err   error
	calls int
}

func (g *stubGeocoder) Geocode(ctx context.Context, city, state string) (domain.Coordinates, error) {
	g.calls++
	return g.coord, g.err
}

func TestCityCoordinatesExactMatch(t *testing.T) {
	db := NewCityDB(nil)

	coord, ok := db.CityCoordinates(context.Background(), "Dallas", "TX")
	if !ok {
		t.Fatal("Dallas, TX not found")
	}
	if coord.Lat != 32.7767 || coord.Lon != -96.7970 {
		t.Fatalf("coord = %+v", coord)
	}

	// Case and whitespace insensitive.
	if _, ok := db.CityCoordinates(context.Background(), "  dallas ", "tx"); !ok {
		t.Fatal("case-insensitive match failed")
	}
}

func TestCityCoordinatesAbbreviations(t *testing.T) {
	db := NewCityDB(nil)

	cases := []struct {
		city  string
		state string
	}{
		{"Ft Worth", "TX"},
		{"St Louis", "MO"},
		{"Ft Lauderdale", "FL"},
	}

	for _, tc := range cases {
		if _, ok := db.CityCoordinates(context.Background(), tc.city, tc.state); !ok {
			t.Fatalf("%s, %s not resolved via abbreviation", tc.city, tc.state)
		}
	}
}

func TestCityCoordinatesPrefixMatch(t *testing.T) {
	db := NewCityDB(nil)

	if _, ok := db.CityCoordinates(context.Background(), "Oklahoma", "OK"); !ok {
		t.Fatal("prefix match for Oklahoma City failed")
	}
}

func TestCityCoordinatesFallback(t *testing.T) {
	geocoder := &stubGeocoder{coord: domain.Coordinates{Lat: 31.0, Lon: -100.0}}
	db := NewCityDB(geocoder)

	coord, ok := db.CityCoordinates(context.Background(), "Muleshoe", "TX")
	if !ok {
		t.Fatal("fallback geocode failed")
	}
	if coord.Lat != 31.0 || geocoder.calls != 1 {
		t.Fatalf("coord = %+v calls = %d", coord, geocoder.calls)
	}
}

func TestCityCoordinatesFallbackError(t *testing.T) {
	geocoder := &stubGeocoder{err: errors.New("rate limited")}
	db := NewCityDB(geocoder)

	if _, ok := db.CityCoordinates(context.Background(), "Nowhere", "TX"); ok {
		t.Fatal("expected miss when geocoder fails")
	}
}

func TestCityCoordinatesEmptyCity(t *testing.T) {
	geocoder := &stubGeocoder{coord: domain.Coordinates{Lat: 1, Lon: 1}}
	db := NewCityDB(geocoder)

	if _, ok := db.CityCoordinates(context.Background(), "   ", "TX"); ok {
		t.Fatal("blank city resolved")
	}
	if geocoder.calls != 0 {
		t.Fatalf("geocoder calls = %d, want 0", geocoder.calls)
	}
}

func TestStatesSortedAndComplete(t *testing.T) {
	db := NewCityDB(nil)

	states := db.States()
	if len(states) != 50 {
		t.Fatalf("states = %d, want 50", len(states))
	}
	for i := 1; i < len(states); i++ {
		if states[i-1] >= states[i] {
			t.Fatalf("states not sorted at %d: %s >= %s", i, states[i-1], states[i])
		}
	}
}

func TestCitiesByStateUnknown(t *testing.T) {
	db := NewCityDB(nil)
	if cities := db.CitiesByState("ZZ"); len(cities) != 0 {
		t.Fatalf("unknown state returned %d cities", len(cities))
	}
}
