package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"load-ranking-service/internal/domain"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const nominatimBaseURL = "https://nominatim.openstreetmap.org/search"

// NominatimGeocoder resolves city/state pairs through the OpenStreetMap
// Nominatim API. Used only as a fallback when the static table misses.
type NominatimGeocoder struct {
	session   *http.Client
	baseURL   string
	userAgent string
}

func NewNominatimGeocoder(userAgent string) *NominatimGeocoder {
	if userAgent == "" {
		userAgent = "load-ranking-service/1.0"
	}
	return &NominatimGeocoder{
		session:   &http.Client{Timeout: 5 * time.Second},
		baseURL:   nominatimBaseURL,
		userAgent: userAgent,
	}
}

func (g *NominatimGeocoder) Geocode(ctx context.Context, city, state string) (domain.Coordinates, error) {
	params := url.Values{}
	params.Set("q", fmt.Sprintf("%s, %s, USA", city, state))
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("countrycodes", "us")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.session.Do(req)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %s, %s: %w", city, state, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinates{}, fmt.Errorf("geocode %s, %s: status %d", city, state, resp.StatusCode)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode decode: %w", err)
	}
	if len(results) == 0 {
		return domain.Coordinates{}, fmt.Errorf("geocode %s, %s: no results", city, state)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode parse lat: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode parse lon: %w", err)
	}
	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}
