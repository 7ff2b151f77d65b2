package ports

import "context"

// Result of a forward geocoding lookup.
type GeocodeResult struct {
	Lat  float64
	Lon  float64
	Name string
}

// Port: resolves a free-text postal address to geographic coordinates.
type Geocoder interface {
	// Geocode returns the best match for the address, or nil when the
	// service has no result. A blank address resolves to nil without a
	// lookup being issued.
	Geocode(ctx context.Context, address string) (*GeocodeResult, error)
}
