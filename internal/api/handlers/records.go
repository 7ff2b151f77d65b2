package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"delivery-map-service/internal/api/dto"
	"delivery-map-service/internal/ports"
	"delivery-map-service/internal/services"
)

// RecordHandler exposes the persisted record sequence and the views derived
// from it. All views are rebuilt from the store on every request.
type RecordHandler struct {
	Store ports.RecordStore
	Log   *zap.Logger
}

// List returns all records, newest first.
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.Load(r.Context())
	if err != nil {
		h.Log.Error("load records failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	ordered := services.NewestFirst(records)

	res := dto.ListRecordsResponse{Records: make([]dto.RecordResponse, 0, len(ordered))}
	for _, rec := range ordered {
		res.Records = append(res.Records, toRecordResponse(rec))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Markers returns the marker view models for all placed records.
func (h *RecordHandler) Markers(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.Load(r.Context())
	if err != nil {
		h.Log.Error("load records failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	markers := services.Markers(records)

	res := dto.ListMarkersResponse{Markers: make([]dto.MarkerResponse, 0, len(markers))}
	for _, m := range markers {
		res.Markers = append(res.Markers, dto.MarkerResponse{
			RecordID: m.RecordID,
			Lat:      m.Lat,
			Lon:      m.Lon,
			Color:    m.Color,
			Popup:    m.Popup,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Export serves the full record sequence as a pretty-printed JSON download
// in the canonical storage encoding and order.
func (h *RecordHandler) Export(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.Load(r.Context())
	if err != nil {
		h.Log.Error("load records failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		h.Log.Error("marshal export failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="delivery-records.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ExportGeoJSON serves the placed records as a GeoJSON feature collection,
// directly loadable by GIS tooling.
func (h *RecordHandler) ExportGeoJSON(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.Load(r.Context())
	if err != nil {
		h.Log.Error("load records failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	fc := geojson.NewFeatureCollection()
	for i := range records {
		rec := &records[i]
		if !rec.Placed() {
			continue
		}

		f := geojson.NewFeature(orb.Point{*rec.Lon, *rec.Lat})
		f.Properties["id"] = rec.ID
		f.Properties["sourceFilename"] = rec.SourceFilename
		f.Properties["status"] = string(rec.Status)
		f.Properties["color"] = services.MarkerColor(rec.Status)
		if rec.ZRD != nil {
			f.Properties["zrd"] = *rec.ZRD
		}
		if rec.Contact != nil {
			f.Properties["contact"] = *rec.Contact
		}
		if rec.Address != nil {
			f.Properties["address"] = *rec.Address
		}
		fc.Append(f)
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		h.Log.Error("marshal geojson failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.Header().Set("Content-Disposition", `attachment; filename="delivery-records.geojson"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
