package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"delivery-map-service/internal/api/handlers"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root; handlers stay unaware of
// concrete adapters.
func NewRouter(
	ingest *handlers.IngestHandler,
	records *handlers.RecordHandler,
	placement *handlers.PlacementHandler,
	static http.Handler,
	log *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", handlers.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/records", ingest.Create)
		r.Get("/records", records.List)
		r.Get("/records/export", records.Export)
		r.Get("/records/export.geojson", records.ExportGeoJSON)
		r.Get("/markers", records.Markers)

		r.Get("/placement", placement.Get)
		r.Put("/placement/{id}", placement.Enable)
		r.Delete("/placement", placement.Cancel)
		r.Post("/map/click", placement.Click)
	})

	// The map page itself; a thin veneer over the API.
	if static != nil {
		r.Handle("/*", static)
	}

	return r
}
