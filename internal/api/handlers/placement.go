package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"delivery-map-service/internal/api/dto"
	"delivery-map-service/internal/ports"
	"delivery-map-service/internal/services"
)

// PlacementHandler drives the manual placement flow: arming the controller
// for one record and consuming map clicks.
type PlacementHandler struct {
	Ctrl  *services.PlacementController
	Store ports.RecordStore
	Log   *zap.Logger
}

// Enable arms placement mode for the record in the path. Requesting a new
// target while one is pending replaces it.
func (h *PlacementHandler) Enable(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "record id is required")
		return
	}

	records, err := h.Store.Load(r.Context())
	if err != nil {
		h.Log.Error("load records failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	found := false
	for i := range records {
		if records[i].ID != id {
			continue
		}
		found = true
		if records[i].Placed() {
			writeError(w, r, http.StatusConflict, "record already has coordinates")
			return
		}
		break
	}
	if !found {
		writeError(w, r, http.StatusNotFound, "record not found")
		return
	}

	h.Ctrl.Enable(id)

	writeJSON(w, r, http.StatusOK, dto.PlacementResponse{Pending: h.Ctrl.Pending()})
}

// Get reports the pending placement target, nil when idle.
func (h *PlacementHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.PlacementResponse{Pending: h.Ctrl.Pending()})
}

// Cancel returns the controller to idle without placing anything.
func (h *PlacementHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.Ctrl.Cancel()
	writeJSON(w, r, http.StatusOK, dto.PlacementResponse{Pending: nil})
}

// Click consumes one map click event from the map surface.
func (h *PlacementHandler) Click(w http.ResponseWriter, r *http.Request) {
	var req dto.MapClickRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.Lat == nil || req.Lon == nil {
		writeError(w, r, http.StatusBadRequest, "lat and lon are required")
		return
	}
	if *req.Lat < -90 || *req.Lat > 90 || *req.Lon < -180 || *req.Lon > 180 {
		writeError(w, r, http.StatusBadRequest, "coordinates out of range")
		return
	}

	applied, err := h.Ctrl.MapClicked(r.Context(), *req.Lat, *req.Lon)
	if err != nil {
		h.Log.Error("apply placement failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.MapClickResponse{AppliedTo: applied})
}
