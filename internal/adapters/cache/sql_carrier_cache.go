package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"load-ranking-service/internal/domain"
	"load-ranking-service/internal/platform/obs"
	"strings"
	"time"
)

// SQLCarrierCache is a Postgres-backed carrier cache. Records are stored as
// JSON payloads keyed by DOT number; a JSON null payload is a cached
// negative lookup.
type SQLCarrierCache struct {
	DB *sql.DB
}

func NewSQLCarrierCache(db *sql.DB) *SQLCarrierCache {
	return &SQLCarrierCache{DB: db}
}

// InitPostgresSchema creates the carrier cache table.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("carrier cache schema: db is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS carrier_cache (
        dot_number TEXT PRIMARY KEY,
        payload TEXT NOT NULL,
        fetched_at TIMESTAMPTZ NOT NULL
    );
	`
	if _, err := db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("carrier cache schema: create table: %w", err)
	}
	return nil
}

func (s *SQLCarrierCache) Get(
	ctx context.Context,
	dotNumber string,
) (_ *domain.CarrierRecord, _ bool, err error) {
	defer obs.Time(ctx, "carrier.cache.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("carrier cache: db is nil")
	}

	dotNumber = strings.TrimSpace(dotNumber)
	if dotNumber == "" {
		return nil, false, errors.New("get carrier cache: dot number must not be empty")
	}

	q := `
	SELECT payload
    FROM carrier_cache
    WHERE dot_number = $1;
	`

	var payload string
	if err := s.DB.QueryRowContext(ctx, q, dotNumber).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get carrier cache: query carrier_cache table: %w", err)
	}

	rec, err := decodeCarrierPayload(payload)
	if err != nil {
		return nil, false, fmt.Errorf("get carrier cache dot=%q: %w", dotNumber, err)
	}
	return rec, true, nil
}

func (s *SQLCarrierCache) Put(ctx context.Context, dotNumber string, rec *domain.CarrierRecord) error {
	if s.DB == nil {
		return errors.New("carrier cache: db is nil")
	}

	dotNumber = strings.TrimSpace(dotNumber)
	if dotNumber == "" {
		return errors.New("insert carrier cache: dot number must not be empty")
	}

	payload, err := encodeCarrierPayload(rec)
	if err != nil {
		return fmt.Errorf("insert carrier cache dot=%q: %w", dotNumber, err)
	}

	q := `
	INSERT INTO carrier_cache (dot_number, payload, fetched_at)
    VALUES ($1, $2, $3)
	ON CONFLICT (dot_number) DO UPDATE
	SET payload = EXCLUDED.payload,
		fetched_at = EXCLUDED.fetched_at;
	`

	if _, err := s.DB.ExecContext(ctx, q, dotNumber, payload, time.Now().UTC()); err != nil {
		return fmt.Errorf("insert carrier cache dot=%q: %w", dotNumber, err)
	}
	return nil
}

func (s *SQLCarrierCache) Clear(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("carrier cache: db is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM carrier_cache;`); err != nil {
		return fmt.Errorf("clear carrier cache: %w", err)
	}
	return nil
}

func encodeCarrierPayload(rec *domain.CarrierRecord) (string, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	return string(b), nil
}

func decodeCarrierPayload(payload string) (*domain.CarrierRecord, error) {
	var rec *domain.CarrierRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	return rec, nil
}
