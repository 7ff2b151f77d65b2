package ports

import "context"

// Port: a single named slot of durable textual storage.
type StorageSlot interface {
	// Load returns the slot contents, or nil when the slot is absent.
	Load(ctx context.Context) ([]byte, error)

	// Save overwrites the slot contents.
	Save(ctx context.Context, data []byte) error
}
