package geocache

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lodestar-geo/place-search-service/internal/domain"
)

// PostgresStore persists geocode results in a geocode_cache table, keyed by
// normalized query text. Upserts keep the latest provider answer.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed store on an existing pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// InitSchema creates the cache table if it does not exist.
func (s *PostgresStore) InitSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS geocode_cache (
			query        TEXT PRIMARY KEY,
			lat          DOUBLE PRECISION NOT NULL,
			lon          DOUBLE PRECISION NOT NULL,
			display_name TEXT NOT NULL DEFAULT '',
			cached_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("create geocode_cache table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) (domain.PlaceResult, bool, error) {
	var lat, lon float64
	var displayName string
	err := s.pool.QueryRow(ctx,
		`SELECT lat, lon, display_name FROM geocode_cache WHERE query = $1`, key,
	).Scan(&lat, &lon, &displayName)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.PlaceResult{}, false, nil
	}
	if err != nil {
		return domain.PlaceResult{}, false, fmt.Errorf("query geocode_cache: %w", err)
	}

	return domain.PlaceResult{
		Coordinate:  domain.Coordinate{Lat: lat, Lon: lon},
		DisplayName: displayName,
		Found:       true,
	}, true, nil
}

func (s *PostgresStore) Put(ctx context.Context, key string, result domain.PlaceResult) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO geocode_cache (query, lat, lon, display_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (query) DO UPDATE
		SET lat = EXCLUDED.lat, lon = EXCLUDED.lon,
		    display_name = EXCLUDED.display_name, cached_at = now()`,
		key, result.Coordinate.Lat, result.Coordinate.Lon, result.DisplayName)
	if err != nil {
		return fmt.Errorf("upsert geocode_cache: %w", err)
	}
	return nil
}
