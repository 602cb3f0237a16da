package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"load-ranking-service/internal/domain"
	"strings"
	"time"
)

// SqliteCarrierCache is the SQLite flavor of the carrier cache, used by the
// single-binary local deployment. Same payload scheme as SQLCarrierCache.
type SqliteCarrierCache struct {
	DB *sql.DB
}

func NewSqliteCarrierCache(db *sql.DB) *SqliteCarrierCache {
	return &SqliteCarrierCache{DB: db}
}

// InitSqliteSchema creates the carrier cache table.
func InitSqliteSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("carrier cache schema: db is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS carrier_cache (
        dot_number TEXT PRIMARY KEY,
        payload TEXT NOT NULL,
        fetched_at TEXT NOT NULL
    );
	`
	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("carrier cache schema: create table: %w", err)
	}
	return nil
}

func (s *SqliteCarrierCache) Get(
	ctx context.Context,
	dotNumber string,
) (*domain.CarrierRecord, bool, error) {
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
    WHERE dot_number = ?;
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

func (s *SqliteCarrierCache) Put(ctx context.Context, dotNumber string, rec *domain.CarrierRecord) error {
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
	INSERT OR REPLACE INTO carrier_cache (
        dot_number,
        payload,
        fetched_at
    )
    VALUES (?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, dotNumber, payload, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("insert carrier cache dot=%q: %w", dotNumber, err)
	}
	return nil
}

func (s *SqliteCarrierCache) Clear(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("carrier cache: db is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM carrier_cache;`); err != nil {
		return fmt.Errorf("clear carrier cache: %w", err)
	}
	return nil
}
