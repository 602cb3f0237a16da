package services

import (
	"load-ranking-service/internal/domain"
	"testing"
)

func loadWithFullPartial(fp string) *domain.Load {
	return &domain.Load{
		MatchingAssetInfo: domain.AssetInfo{
			Capacity: &domain.AssetCapacity{
				Shipment: &domain.ShipmentCapacity{FullPartial: fp},
			},
		},
	}
}

func TestFilterLoadsByType(t *testing.T) {
	loads := []*domain.Load{
		loadWithFullPartial("FULL"),
		loadWithFullPartial("PARTIAL"),
		loadWithFullPartial(""),
	}

	if got := FilterLoadsByType(loads, ""); len(got) != 3 {
		t.Fatalf("no filter kept %d, want 3", len(got))
	}
	if got := FilterLoadsByType(loads, LoadTypeFull); len(got) != 1 {
		t.Fatalf("FULL kept %d, want 1", len(got))
	}
	if got := FilterLoadsByType(loads, LoadTypePartial); len(got) != 1 {
		t.Fatalf("PARTIAL kept %d, want 1", len(got))
	}
	// BOTH means "explicitly full or partial", dropping unlabeled postings.
	if got := FilterLoadsByType(loads, LoadTypeBoth); len(got) != 2 {
		t.Fatalf("BOTH kept %d, want 2", len(got))
	}
}

func TestFilterLoadsByAvailability(t *testing.T) {
	window := &domain.Availability{
		EarliestWhen: "2026-09-01T08:00:00Z",
		LatestWhen:   "2026-09-02T18:00:00Z",
	}

	overlapping := &domain.Load{Availability: &domain.Availability{
		EarliestWhen: "2026-09-01T12:00:00Z",
		LatestWhen:   "2026-09-01T20:00:00Z",
	}}
	closedBefore := &domain.Load{Availability: &domain.Availability{
		EarliestWhen: "2026-08-28T08:00:00Z",
		LatestWhen:   "2026-08-29T08:00:00Z",
	}}
	opensAfter := &domain.Load{Availability: &domain.Availability{
		EarliestWhen: "2026-09-05T08:00:00Z",
		LatestWhen:   "2026-09-06T08:00:00Z",
	}}
	noWindow := &domain.Load{}
	unparseable := &domain.Load{Availability: &domain.Availability{
		EarliestWhen: "tomorrow-ish",
	}}

	got := FilterLoadsByAvailability(
		[]*domain.Load{overlapping, closedBefore, opensAfter, noWindow, unparseable},
		window,
	)

	if len(got) != 3 {
		t.Fatalf("kept %d, want 3 (overlap + no window + unparseable)", len(got))
	}
	for _, l := range got {
		if l == closedBefore || l == opensAfter {
			t.Fatalf("kept a provably conflicting load")
		}
	}
}

func TestFilterLoadsByAvailabilityNilWindow(t *testing.T) {
	loads := []*domain.Load{{}, {}}
	if got := FilterLoadsByAvailability(loads, nil); len(got) != 2 {
		t.Fatalf("kept %d, want 2", len(got))
	}
}
