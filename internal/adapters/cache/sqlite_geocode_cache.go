package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"apartment-eval-service/internal/domain"
	"apartment-eval-service/internal/ports"
)

// SQLite backed cache mapping address strings to geocode results.
// Address keys are expected to be consistent (e.g., normalized)
// by the caller.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// InitSchema creates the geocode cache table when missing.
func (s *SqliteGeocodeCache) InitSchema(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	_, err := s.DB.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lat REAL NOT NULL,
        lon REAL NOT NULL,
        formatted_address TEXT NOT NULL DEFAULT ''
    );
	`)
	if err != nil {
		return fmt.Errorf("init geocode cache schema: %w", err)
	}

	return nil
}

// Fetch a cached geocode result for the given address.
func (s *SqliteGeocodeCache) Get(ctx context.Context, address string) (ports.GeocodeResult, bool, error) {
	if s.DB == nil {
		return ports.GeocodeResult{}, false, errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return ports.GeocodeResult{}, false, nil
	}

	q := `
	SELECT lat, lon, formatted_address
    FROM geocode_cache
    WHERE address = ?;
	`

	var lat, lon float64
	var formatted string
	err := s.DB.QueryRowContext(ctx, q, address).Scan(&lat, &lon, &formatted)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.GeocodeResult{}, false, nil
	}
	if err != nil {
		return ports.GeocodeResult{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return ports.GeocodeResult{
		Coordinates:      domain.Coordinates{Lat: lat, Lon: lon},
		FormattedAddress: formatted,
	}, true, nil
}

// Store an address -> geocode result mapping in the cache.
func (s *SqliteGeocodeCache) Put(ctx context.Context, address string, result ports.GeocodeResult) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if strings.TrimSpace(address) == "" {
		return fmt.Errorf("insert geocode cache: empty address key")
	}

	q := `
	INSERT OR REPLACE INTO geocode_cache (
        address,
        lat,
        lon,
        formatted_address
    )
    VALUES (?, ?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, address, result.Coordinates.Lat, result.Coordinates.Lon, result.FormattedAddress); err != nil {
		return fmt.Errorf("insert geocode cache coord=%q: %w", address, err)
	}

	return nil
}
