package ports

import (
	"context"
	"load-ranking-service/internal/domain"
)

// CarrierRegistry resolves a DOT number to the carrier's registry record.
// A nil record with nil error means the registry has no entry for the number.
type CarrierRegistry interface {
	GetCarrier(ctx context.Context, dotNumber string) (*domain.CarrierRecord, error)
}

// CarrierCache stores registry lookups for the process lifetime. A cached nil
// record is a valid negative entry, so Get distinguishes "miss" (found=false)
// from "cached as not found" (found=true, rec=nil).
type CarrierCache interface {
	Get(ctx context.Context, dotNumber string) (rec *domain.CarrierRecord, found bool, err error)
	Put(ctx context.Context, dotNumber string, rec *domain.CarrierRecord) error
	Clear(ctx context.Context) error
}
