package geocode

import (
	"context"
	"database/sql"
	"delivery-map-service/internal/ports"
	"errors"
	"fmt"
	"strings"
)

// SQLGeocodeCache is the postgres variant of the geocode cache, used when
// the service runs against a shared database instead of a local file.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Fetch the cached result for one address. A miss is (nil, nil).
func (s *SQLGeocodeCache) Get(ctx context.Context, address string) (*ports.GeocodeResult, error) {
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
	WHERE address = $1;
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
func (s *SQLGeocodeCache) Put(ctx context.Context, address string, result ports.GeocodeResult) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("insert geocode cache: empty address key")
	}

	q := `
	INSERT INTO geocode_cache (address, lat, lon, display_name)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (address) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		display_name = EXCLUDED.display_name;
	`

	if _, err := s.DB.ExecContext(ctx, q, address, result.Lat, result.Lon, result.Name); err != nil {
		return fmt.Errorf("insert geocode cache address=%q: %w", address, err)
	}

	return nil
}
