package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"delivery-map-service/internal/api/dto"
	"delivery-map-service/internal/services"
)

// Uploads beyond this size are rejected before the pipeline runs.
const maxUploadBytes = 32 << 20

// IngestHandler accepts one submitted document per request and runs the
// extraction pipeline on it.
type IngestHandler struct {
	Service *services.IngestService
	Log     *zap.Logger
}

// Create handles a multipart submission: the document under "document" plus
// the operator-supplied ticket, workOrder and status form fields.
func (h *IngestHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid multipart submission")
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "no document supplied")
		return
	}
	defer file.Close()

	record, err := h.Service.Ingest(r.Context(), services.IngestInput{
		Filename:  header.Filename,
		Document:  file,
		Ticket:    r.FormValue("ticket"),
		WorkOrder: r.FormValue("workOrder"),
		Status:    r.FormValue("status"),
	})
	switch {
	case errors.Is(err, services.ErrNoDocument):
		writeError(w, r, http.StatusBadRequest, "no document supplied")
		return
	case errors.Is(err, services.ErrDocumentUnreadable):
		writeError(w, r, http.StatusUnprocessableEntity,
			"document contains no readable text; scanned documents are not supported")
		return
	case err != nil:
		h.Log.Error("ingest failed", zap.String("file", header.Filename), zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.IngestResponse{
		Record:               toRecordResponse(record),
		NeedsManualPlacement: !record.Placed(),
		Message:              "record created",
	}
	if res.NeedsManualPlacement {
		res.Message = "record created without coordinates; enable placement mode and click the map to set the marker"
	}

	writeJSON(w, r, http.StatusCreated, res)
}
