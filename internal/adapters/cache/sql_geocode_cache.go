package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"apartment-eval-service/internal/domain"
	"apartment-eval-service/internal/platform/obs"
	"apartment-eval-service/internal/ports"
)

// SQLGeocodeCache is a Postgres-backed cache mapping addresses to
// geocode results, for deployments that share one cache across hosts.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Fetch a cached geocode result for the given address.
func (s *SQLGeocodeCache) Get(ctx context.Context, address string) (_ ports.GeocodeResult, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

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
    WHERE address = $1;
	`

	var lat, lon float64
	var formatted string
	err = s.DB.QueryRowContext(ctx, q, address).Scan(&lat, &lon, &formatted)
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
func (s *SQLGeocodeCache) Put(ctx context.Context, address string, result ports.GeocodeResult) (err error) {
	defer obs.Time(ctx, "geocode.cache.Put")(&err)

	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if strings.TrimSpace(address) == "" {
		return fmt.Errorf("insert geocode cache: empty address key")
	}

	q := `
	INSERT INTO geocode_cache (address, lat, lon, formatted_address)
    VALUES ($1, $2, $3, $4)
	ON CONFLICT (address) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		formatted_address = EXCLUDED.formatted_address;
	`

	if _, err := s.DB.ExecContext(ctx, q, address, result.Coordinates.Lat, result.Coordinates.Lon, result.FormattedAddress); err != nil {
		return fmt.Errorf("insert geocode cache coord=%q: %w", address, err)
	}

	return nil
}
