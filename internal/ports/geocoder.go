package ports

import (
	"context"
	"load-ranking-service/internal/domain"
)

// Geocoder resolves a US city/state pair to coordinates. Used as the online
// fallback behind the static city table.
type Geocoder interface {
	Geocode(ctx context.Context, city, state string) (domain.Coordinates, error)
}
