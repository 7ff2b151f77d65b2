package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SqliteSlot is the SQLite-backed implementation of the StorageSlot port:
// one named row in the storage_slots table holding a textual blob.
type SqliteSlot struct {
	DB   *sql.DB
	Name string
}

func NewSqliteSlot(db *sql.DB, name string) *SqliteSlot {
	if name == "" {
		name = DefaultSlotName
	}
	return &SqliteSlot{DB: db, Name: name}
}

// Load returns the slot contents, or nil when the slot does not exist yet.
func (s *SqliteSlot) Load(ctx context.Context) ([]byte, error) {
	if s.DB == nil {
		return nil, errors.New("storage slot: db is nil")
	}

	q := `
	SELECT contents
	FROM storage_slots
	WHERE name = ?;
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
func (s *SqliteSlot) Save(ctx context.Context, data []byte) error {
	if s.DB == nil {
		return errors.New("storage slot: db is nil")
	}

	q := `
	INSERT OR REPLACE INTO storage_slots (name, contents)
	VALUES (?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, s.Name, string(data)); err != nil {
		return fmt.Errorf("save slot %q: %w", s.Name, err)
	}

	return nil
}
