package geocode

import (
	"context"
	"database/sql"
	"delivery-map-service/internal/ports"
	"errors"
	"fmt"
	"strings"
)

// SQLite backed cache mapping address strings to geocoding results.
// Address keys are expected to be normalized by the caller.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// Fetch the cached result for one address. A miss is (nil, nil).
func (s *SqliteGeocodeCache) Get(ctx context.Context, address string) (*ports.GeocodeResult, error) {
	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return nil, nil
	}

	q := `
	SELECT lat, lon, display_name
	FROM geocode_cache
	WHERE address = ?;
	`

	var res ports.GeocodeResult
	err := s.DB.QueryRowContext(ctx, q, address).Scan(&res.Lat, &res.Lon, &res.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return &res, nil
}

// Store an address -> result mapping in the cache.
func (s *SqliteGeocodeCache) Put(ctx context.Context, address string, result ports.GeocodeResult) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("insert geocode cache: empty address key")
	}

	q := `
	INSERT OR REPLACE INTO geocode_cache (
		address,
		lat,
		lon,
		display_name
	)
	VALUES (?, ?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, address, result.Lat, result.Lon, result.Name); err != nil {
		return fmt.Errorf("insert geocode cache address=%q: %w", address, err)
	}

	return nil
}
