package storage

import (
	"context"
	"delivery-map-service/internal/domain"
	"delivery-map-service/internal/platform/obs"
	"delivery-map-service/internal/ports"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// JSONRecordStore implements the RecordStore port by keeping the full record
// sequence as one JSON document in a named storage slot.
//
// Read-modify-write cycles are serialized by an internal mutex. The original
// storage layout had plain last-writer-wins semantics; with a concurrent
// HTTP server in front, interleaved appends could silently drop records, so
// mutation is locked here instead.
type JSONRecordStore struct {
	slot ports.StorageSlot
	log  *zap.Logger

	mu sync.Mutex
}

func NewJSONRecordStore(slot ports.StorageSlot, log *zap.Logger) *JSONRecordStore {
	return &JSONRecordStore{slot: slot, log: log}
}

// Load deserializes the record sequence in insertion order. An absent slot
// is an empty store; an unparsable blob is treated as empty as well, with a
// warning, so a corrupt blob never takes the service down.
func (s *JSONRecordStore) Load(ctx context.Context) ([]domain.DeliveryRecord, error) {
	data, err := s.slot.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	if len(data) == 0 {
		return []domain.DeliveryRecord{}, nil
	}

	var records []domain.DeliveryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.log.Warn("record slot is unparsable, treating as empty", zap.Error(err))
		return []domain.DeliveryRecord{}, nil
	}

	if records == nil {
		records = []domain.DeliveryRecord{}
	}

	return records, nil
}

// Save serializes the full sequence back to the slot, overwriting prior
// contents.
func (s *JSONRecordStore) Save(ctx context.Context, records []domain.DeliveryRecord) error {
	if records == nil {
		records = []domain.DeliveryRecord{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("save records: marshal: %w", err)
	}

	if err := s.slot.Save(ctx, data); err != nil {
		return fmt.Errorf("save records: %w", err)
	}

	return nil
}

// Append persists one new record at the end of the sequence.
func (s *JSONRecordStore) Append(ctx context.Context, record domain.DeliveryRecord) (err error) {
	defer obs.Time(s.log, "store.append")(&err)

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.Load(ctx)
	if err != nil {
		return fmt.Errorf("append record: %w", err)
	}

	records = append(records, record)

	if err := s.Save(ctx, records); err != nil {
		return fmt.Errorf("append record: %w", err)
	}

	return nil
}

// SetCoordinates assigns both coordinates to the record with the given id
// and persists. A missing id is a silent no-op: a placement request may
// outlive the record's visibility in a stale snapshot. A record that already
// carries coordinates is left untouched.
func (s *JSONRecordStore) SetCoordinates(ctx context.Context, id string, lat float64, lon float64) (err error) {
	defer obs.Time(s.log, "store.set_coordinates")(&err)

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.Load(ctx)
	if err != nil {
		return fmt.Errorf("set coordinates: %w", err)
	}

	for i := range records {
		if records[i].ID != id {
			continue
		}

		if !records[i].SetCoordinates(lat, lon) {
			s.log.Debug("record already placed, coordinates unchanged", zap.String("id", id))
			return nil
		}

		if err := s.Save(ctx, records); err != nil {
			return fmt.Errorf("set coordinates: %w", err)
		}
		return nil
	}

	s.log.Debug("placement target not found, ignoring", zap.String("id", id))
	return nil
}
