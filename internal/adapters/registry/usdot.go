package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"load-ranking-service/internal/domain"
	"load-ranking-service/internal/platform/obs"
	"load-ranking-service/internal/ports"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// USDOTClient looks up motor-carrier records in the federal registry
// (data.transportation.gov Socrata dataset). Results, including negative
// ones, go through an explicit CarrierCache; concurrent lookups for the same
// DOT number are collapsed via singleflight.
type USDOTClient struct {
	session  *http.Client
	baseURL  string
	appToken string
	cache    ports.CarrierCache
	group    singleflight.Group
}

const usdotBaseURL = "https://data.transportation.gov/resource/az4n-8mr2.json"

func NewUSDOTClient(appToken string, cache ports.CarrierCache) *USDOTClient {
	return &USDOTClient{
		session:  &http.Client{Timeout: 5 * time.Second},
		baseURL:  usdotBaseURL,
		appToken: appToken,
		cache:    cache,
	}
}

// Socrata returns every field as a string.
type usdotRecord struct {
	DotNumber     string `json:"dot_number"`
	LegalName     string `json:"legal_name"`
	TruckUnits    string `json:"truck_units"`
	TotalDrivers  string `json:"total_drivers"`
	PhyCity       string `json:"phy_city"`
	PhyState      string `json:"phy_state"`
	Docket1Prefix string `json:"docket1prefix"`
	Docket1       string `json:"docket1"`
	EntityType    string `json:"entity_type"`
}

// GetCarrier resolves a DOT number to its registry record. Returns
// (nil, nil) for blank/zero DOT numbers and for numbers the registry does
// not know.
func (c *USDOTClient) GetCarrier(ctx context.Context, dotNumber string) (_ *domain.CarrierRecord, err error) {
	defer obs.Time(ctx, "usdot.GetCarrier")(&err)

	dot := strings.TrimSpace(dotNumber)
	if dot == "" || dot == "0" {
		return nil, nil
	}

	if c.cache != nil {
		rec, found, err := c.cache.Get(ctx, dot)
		if err != nil {
			log.Printf("carrier cache read failed dot=%s err=%v", dot, err)
		} else if found {
			return rec, nil
		}
	}

	v, err, _ := c.group.Do(dot, func() (any, error) {
		rec, err := c.fetch(ctx, dot)
		if err != nil {
			return nil, err
		}
		if c.cache != nil {
			if err := c.cache.Put(ctx, dot, rec); err != nil {
				log.Printf("carrier cache write failed dot=%s err=%v", dot, err)
			}
		}
		return rec, nil
	})
	if err != nil {
		return nil, err
	}

	rec, _ := v.(*domain.CarrierRecord)
	return rec, nil
}

func (c *USDOTClient) fetch(ctx context.Context, dot string) (*domain.CarrierRecord, error) {
	if c.appToken == "" {
		return nil, errors.New("usdot fetch: app token is not configured")
	}

	query := url.Values{}
	query.Set("dot_number", dot)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("usdot fetch: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-App-Token", c.appToken)

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("usdot fetch dot=%s: %w", dot, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("usdot fetch dot=%s: unexpected status %d", dot, resp.StatusCode)
	}

	var records []usdotRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("usdot fetch dot=%s: decode: %w", dot, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	return toCarrierRecord(records[0]), nil
}

func toCarrierRecord(r usdotRecord) *domain.CarrierRecord {
	rec := &domain.CarrierRecord{
		DOTNumber:    r.DotNumber,
		LegalName:    r.LegalName,
		TruckUnits:   parseCount(r.TruckUnits),
		TotalDrivers: parseCount(r.TotalDrivers),
		PhyCity:      r.PhyCity,
		PhyState:     r.PhyState,
		EntityType:   r.EntityType,
	}

	// MC numbers live in the docket fields with an "MC" prefix.
	if strings.EqualFold(r.Docket1Prefix, "MC") {
		rec.MCNumber = parseCount(r.Docket1)
	}

	return rec
}

// parseCount parses a registry numeric field, nil when absent or malformed.
func parseCount(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
