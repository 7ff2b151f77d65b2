package dto

import "time"

// RecordResponse mirrors the canonical record encoding used by the store.
type RecordResponse struct {
	ID             string    `json:"id"`
	SourceFilename string    `json:"sourceFilename"`
	ZRD            *string   `json:"zrd"`
	Contact        *string   `json:"contact"`
	Address        *string   `json:"address"`
	Lat            *float64  `json:"lat"`
	Lon            *float64  `json:"lon"`
	Ticket         *string   `json:"ticket"`
	WorkOrder      *string   `json:"workOrder"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

type ListRecordsResponse struct {
	Records []RecordResponse `json:"records"`
}

// IngestResponse reports the created record and whether the operator still
// needs to place its marker manually.
type IngestResponse struct {
	Record               RecordResponse `json:"record"`
	NeedsManualPlacement bool           `json:"needsManualPlacement"`
	Message              string         `json:"message"`
}
