package services

import (
	"load-ranking-service/internal/domain"
	"time"
)

// Load type filter values accepted by the HTTP layer.
const (
	LoadTypeFull    = "FULL"
	LoadTypePartial = "PARTIAL"
	LoadTypeBoth    = "BOTH"
)

// FilterLoadsByType keeps loads matching the requested full/partial filter.
// An empty filter passes everything through.
func FilterLoadsByType(loads []*domain.Load, loadType string) []*domain.Load {
	if loadType == "" || len(loads) == 0 {
		return loads
	}

	filtered := make([]*domain.Load, 0, len(loads))
	for _, load := range loads {
		fp := load.FullPartial()
		switch loadType {
		case LoadTypeBoth:
			if fp == LoadTypeFull || fp == LoadTypePartial {
				filtered = append(filtered, load)
			}
		default:
			if fp == loadType {
				filtered = append(filtered, load)
			}
		}
	}

	return filtered
}

// FilterLoadsByAvailability keeps loads whose pickup window overlaps the
// driver's availability window. Loads with no availability info, and windows
// that fail to parse, are kept: the filter only drops provable conflicts.
func FilterLoadsByAvailability(loads []*domain.Load, window *domain.Availability) []*domain.Load {
	if window == nil || len(loads) == 0 {
		return loads
	}

	driverStart, okStart := parseWhen(window.EarliestWhen)
	driverEnd, okEnd := parseWhen(window.LatestWhen)
	if !okStart && !okEnd {
		return loads
	}

	filtered := make([]*domain.Load, 0, len(loads))
	for _, load := range loads {
		if load.Availability == nil {
			filtered = append(filtered, load)
			continue
		}

		loadStart, haveLoadStart := parseWhen(load.Availability.EarliestWhen)
		loadEnd, haveLoadEnd := parseWhen(load.Availability.LatestWhen)
		if !haveLoadStart && !haveLoadEnd {
			filtered = append(filtered, load)
			continue
		}

		canPickup := true
		if okStart && haveLoadEnd && driverStart.After(loadEnd) {
			// Driver becomes available after the pickup window closes.
			canPickup = false
		}
		if okEnd && haveLoadStart && driverEnd.Before(loadStart) {
			// Driver is gone before the pickup window opens.
			canPickup = false
		}

		if canPickup {
			filtered = append(filtered, load)
		}
	}

	return filtered
}

func parseWhen(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
