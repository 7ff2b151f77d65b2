package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"delivery-map-service/internal/domain"
	"delivery-map-service/internal/extract"
	"delivery-map-service/internal/ports"
)

// Separator between per-page text blocks before field extraction.
const pageSeparator = "\n\n"

// IngestInput is one submitted document plus the operator-supplied fields
// from the submission form.
type IngestInput struct {
	Filename  string
	Document  io.ReadSeeker
	Ticket    string
	WorkOrder string
	Status    string
}

// IngestService runs the extraction pipeline for one submitted document:
// text extraction, heuristic field extraction, geocoding, record creation.
// Every successfully read document produces exactly one record, even when
// all extracted fields are empty.
type IngestService struct {
	extractor ports.TextExtractor
	geocoder  ports.Geocoder
	store     ports.RecordStore
	log       *zap.Logger

	now   func() time.Time
	newID func() string
}

func NewIngestService(
	extractor ports.TextExtractor,
	geocoder ports.Geocoder,
	store ports.RecordStore,
	log *zap.Logger,
) *IngestService {
	return &IngestService{
		extractor: extractor,
		geocoder:  geocoder,
		store:     store,
		log:       log,
		now:       time.Now,
		newID:     NewRecordID,
	}
}

// NewRecordID builds a time-based id with a random suffix, unique for the
// lifetime of the store.
func NewRecordID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// Ingest processes one submission and returns the created record.
//
// Only ErrNoDocument and a wrapped ErrDocumentUnreadable abort without a
// record. A missing address skips geocoding entirely, and any geocoding
// failure is logged and absorbed; both leave the coordinates unset.
func (s *IngestService) Ingest(ctx context.Context, in IngestInput) (domain.DeliveryRecord, error) {
	if in.Document == nil {
		return domain.DeliveryRecord{}, ErrNoDocument
	}

	pages, err := s.extractor.ExtractPages(ctx, in.Document)
	if err != nil {
		return domain.DeliveryRecord{}, fmt.Errorf("%w: %v", ErrDocumentUnreadable, err)
	}

	fields := extract.Fields(strings.Join(pages, pageSeparator))

	record := domain.DeliveryRecord{
		ID:             s.newID(),
		SourceFilename: in.Filename,
		ZRD:            fields.ZRD,
		Contact:        fields.Contact,
		Address:        fields.Address,
		Ticket:         optional(in.Ticket),
		WorkOrder:      optional(in.WorkOrder),
		Status:         domain.ParseStatus(in.Status),
		CreatedAt:      s.now().UTC(),
	}

	if fields.Address != nil {
		result, err := s.geocoder.Geocode(ctx, *fields.Address)
		switch {
		case err != nil:
			s.log.Warn("geocoding failed, record proceeds unplaced",
				zap.String("address", *fields.Address),
				zap.Error(err),
			)
		case result == nil:
			s.log.Info("no geocoding result", zap.String("address", *fields.Address))
		default:
			record.SetCoordinates(result.Lat, result.Lon)
		}
	}

	if err := s.store.Append(ctx, record); err != nil {
		return domain.DeliveryRecord{}, fmt.Errorf("ingest: append record: %w", err)
	}

	s.log.Info("document ingested",
		zap.String("id", record.ID),
		zap.String("file", record.SourceFilename),
		zap.Bool("placed", record.Placed()),
	)

	return record, nil
}

// optional maps a trimmed form value to a pointer, blank to nil.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
