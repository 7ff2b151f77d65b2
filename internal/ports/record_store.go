package ports

import (
	"context"
	"delivery-map-service/internal/domain"
)

// Port: a boundary for loading and mutating the persisted record sequence.
type RecordStore interface {
	// Load returns all records in insertion order. An absent or unparsable
	// blob yields an empty sequence, not an error.
	Load(ctx context.Context) ([]domain.DeliveryRecord, error)

	// Save overwrites the full record sequence.
	Save(ctx context.Context, records []domain.DeliveryRecord) error

	// Append persists one new record at the end of the sequence.
	Append(ctx context.Context, record domain.DeliveryRecord) error

	// SetCoordinates assigns both coordinates to the record with the given
	// id and persists the sequence. A missing id and an already-placed
	// record are both silent no-ops.
	SetCoordinates(ctx context.Context, id string, lat float64, lon float64) error
}
