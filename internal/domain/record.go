package domain

import (
	"encoding/json"
	"time"
)

// Status classifies a delivery record and drives its marker color.
type Status string

const (
	StatusLow    Status = "low"
	StatusMedium Status = "medium"
	StatusHigh   Status = "high"
)

// ParseStatus maps operator input to a Status.
// Unknown or empty values fall back to StatusLow.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusLow, StatusMedium, StatusHigh:
		return Status(s)
	default:
		return StatusLow
	}
}

// Stored blobs may predate the enum or carry junk; normalize on decode.
func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = ParseStatus(raw)
	return nil
}

// DeliveryRecord is one ingested delivery document.
// Field names double as the canonical storage and wire encoding.
// Optional fields are pointers: explicit null and omitted key both
// decode to nil.
type DeliveryRecord struct {
	ID             string    `json:"id"`
	SourceFilename string    `json:"sourceFilename"`
	ZRD            *string   `json:"zrd"`
	Contact        *string   `json:"contact"`
	Address        *string   `json:"address"`
	Lat            *float64  `json:"lat"`
	Lon            *float64  `json:"lon"`
	Ticket         *string   `json:"ticket"`
	WorkOrder      *string   `json:"workOrder"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Placed reports whether the record carries coordinates.
// Lat and lon are always set together.
func (r *DeliveryRecord) Placed() bool {
	return r.Lat != nil && r.Lon != nil
}

// SetCoordinates assigns both coordinates together. Coordinates are written
// at most once per record; a record that is already placed is left untouched
// and false is returned.
func (r *DeliveryRecord) SetCoordinates(lat, lon float64) bool {
	if r.Placed() {
		return false
	}
	r.Lat = &lat
	r.Lon = &lon
	return true
}
