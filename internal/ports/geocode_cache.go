package ports

import "context"

// Port: persistent cache of resolved geocoding lookups keyed by address.
type GeocodeCache interface {
	// Get returns the cached result for the address, or nil on a miss.
	Get(ctx context.Context, address string) (*GeocodeResult, error)

	// Put stores an address -> result mapping.
	Put(ctx context.Context, address string, result GeocodeResult) error
}
