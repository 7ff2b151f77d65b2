package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLSlot is the postgres variant of the storage slot, for deployments that
// keep the record blob in a shared database.
type SQLSlot struct {
	DB   *sql.DB
	Name string
}

func NewSQLSlot(db *sql.DB, name string) *SQLSlot {
	if name == "" {
		name = DefaultSlotName
	}
	return &SQLSlot{DB: db, Name: name}
}

// Load returns the slot contents, or nil when the slot does not exist yet.
func (s *SQLSlot) Load(ctx context.Context) ([]byte, error) {
	if s.DB == nil {
		return nil, errors.New("storage slot: db is nil")
	}

	q := `
	SELECT contents
	FROM storage_slots
	WHERE name = $1;
	`

	var contents string
	err := s.DB.QueryRowContext(ctx, q, s.Name).Scan(&contents)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %q: %w", s.Name, err)
	}

	return []byte(contents), nil
}

// Save overwrites the slot contents (last writer wins).
func (s *SQLSlot) Save(ctx context.Context, data []byte) error {
	if s.DB == nil {
		return errors.New("storage slot: db is nil")
	}

	q := `
	INSERT INTO storage_slots (name, contents)
	VALUES ($1, $2)
	ON CONFLICT (name) DO UPDATE
	SET contents = EXCLUDED.contents;
	`

	if _, err := s.DB.ExecContext(ctx, q, s.Name, string(data)); err != nil {
		return fmt.Errorf("save slot %q: %w", s.Name, err)
	}

	return nil
}
