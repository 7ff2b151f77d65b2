package services

import (
	"fmt"
	"strings"

	"delivery-map-service/internal/domain"
)

// Marker is the view model handed to the map surface.
type Marker struct {
	RecordID string  `json:"recordId"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Color    string  `json:"color"`
	Popup    string  `json:"popup"`
}

// Placeholder for absent optional fields in popup text.
const missingField = "–"

// MarkerColor maps a record status to its marker color.
func MarkerColor(s domain.Status) string {
	switch s {
	case domain.StatusHigh:
		return "red"
	case domain.StatusMedium:
		return "orange"
	default:
		return "green"
	}
}

// Markers derives the marker set for all placed records. The view is
// rebuilt wholesale from the store contents on every change and is never
// kept as a second source of truth.
func Markers(records []domain.DeliveryRecord) []Marker {
	markers := make([]Marker, 0, len(records))
	for i := range records {
		r := &records[i]
		if !r.Placed() {
			continue
		}

		markers = append(markers, Marker{
			RecordID: r.ID,
			Lat:      *r.Lat,
			Lon:      *r.Lon,
			Color:    MarkerColor(r.Status),
			Popup:    PopupText(r),
		})
	}
	return markers
}

// NewestFirst returns a copy of the records in reverse insertion order.
// Display order is a presentation concern; storage order stays untouched.
func NewestFirst(records []domain.DeliveryRecord) []domain.DeliveryRecord {
	out := make([]domain.DeliveryRecord, len(records))
	for i := range records {
		out[len(records)-1-i] = records[i]
	}
	return out
}

// PopupText renders the popup content for one record.
func PopupText(r *domain.DeliveryRecord) string {
	lines := []string{
		"ZRD: " + orDash(r.ZRD),
		"Kontakt: " + orDash(r.Contact),
		"Adresse: " + orDash(r.Address),
		"Ticket: " + orDash(r.Ticket),
		"Auftrag: " + orDash(r.WorkOrder),
		fmt.Sprintf("Status: %s", r.Status),
		"Datei: " + r.SourceFilename,
	}
	return strings.Join(lines, "\n")
}

func orDash(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return missingField
	}
	return *s
}
