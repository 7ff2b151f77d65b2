package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DefaultSlotName is the single named slot holding the record sequence.
const DefaultSlotName = "delivery_records"

// Initialize the database schema. The DDL sticks to the portable subset so
// it runs unchanged against sqlite and postgres.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createSlotsQuery := `
	CREATE TABLE IF NOT EXISTS storage_slots (
		name TEXT PRIMARY KEY,
		contents TEXT NOT NULL
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		display_name TEXT NOT NULL DEFAULT ''
	);
	`

	statements := []string{
		createSlotsQuery,
		createGeocodeCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
