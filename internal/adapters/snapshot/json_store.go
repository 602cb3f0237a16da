package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store writes timestamped JSON snapshots of driver search results so that
// past searches can be reviewed offline. Write failures are reported to the
// caller but are not fatal to a search.
type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// Lane identifies the origin of a capacity search.
type Lane struct {
	OriginCity  string `json:"origin_city"`
	OriginState string `json:"origin_state"`
	Label       string `json:"label"`
}

// Metadata describes the search that produced a snapshot.
type Metadata struct {
	Timestamp         string         `json:"timestamp"`
	SearchDate        string         `json:"search_date"`
	SearchTime        string         `json:"search_time"`
	Lane              Lane           `json:"lane"`
	SearchParameters  map[string]any `json:"search_parameters"`
	TotalDriversFound int            `json:"total_drivers_found"`
	DriversReturned   int            `json:"drivers_returned"`
}

type document struct {
	SearchMetadata Metadata `json:"search_metadata"`
	Drivers        any      `json:"drivers"`
}

// SaveDrivers writes one snapshot file and returns its path. File names are
// drivers_{lane}_{timestamp}.json, unique per second.
func (s *Store) SaveDrivers(meta Metadata, drivers any) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("snapshot dir: %w", err)
	}

	now := time.Now()
	if meta.Timestamp == "" {
		meta.Timestamp = now.Format(time.RFC3339)
	}
	if meta.SearchDate == "" {
		meta.SearchDate = now.Format("2006-01-02")
	}
	if meta.SearchTime == "" {
		meta.SearchTime = now.Format("15:04:05")
	}

	name := fmt.Sprintf("drivers_%s_%s.json", laneSlug(meta.Lane), now.Format("20060102_150405"))
	path := filepath.Join(s.Dir, name)

	doc := document{SearchMetadata: meta, Drivers: drivers}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("snapshot encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("snapshot write: %w", err)
	}
	return path, nil
}

func laneSlug(lane Lane) string {
	label := lane.Label
	if label == "" {
		label = lane.OriginCity + "_" + lane.OriginState
	}
	label = strings.ToLower(label)
	var b strings.Builder
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
