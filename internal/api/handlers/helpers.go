package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"delivery-map-service/internal/api/dto"
	"delivery-map-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("encode response failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func toRecordResponse(rec domain.DeliveryRecord) dto.RecordResponse {
	return dto.RecordResponse{
		ID:             rec.ID,
		SourceFilename: rec.SourceFilename,
		ZRD:            rec.ZRD,
		Contact:        rec.Contact,
		Address:        rec.Address,
		Lat:            rec.Lat,
		Lon:            rec.Lon,
		Ticket:         rec.Ticket,
		WorkOrder:      rec.WorkOrder,
		Status:         string(rec.Status),
		CreatedAt:      rec.CreatedAt,
	}
}
