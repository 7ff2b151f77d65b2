package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"delivery-map-service/internal/adapters/doctext"
	"delivery-map-service/internal/adapters/geocode"
	"delivery-map-service/internal/adapters/storage"
	"delivery-map-service/internal/api"
	"delivery-map-service/internal/api/handlers"
	"delivery-map-service/internal/platform/db"
	"delivery-map-service/internal/ports"
	"delivery-map-service/internal/services"
	"delivery-map-service/web"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, Nominatim, PDF extraction)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	logger, err := newLogger(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync() //nolint:errcheck
	zap.ReplaceGlobals(logger)

	driver := getEnv("DB_DRIVER", "sqlite")
	port := getEnv("PORT", "8080")
	nominatimURL := getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org")

	conn, err := openDB(driver)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := storage.InitSchema(ctx, conn); err != nil {
		logger.Fatal("init schema", zap.Error(err))
	}

	var slot ports.StorageSlot
	var cache ports.GeocodeCache
	switch driver {
	case "postgres":
		slot = storage.NewSQLSlot(conn, storage.DefaultSlotName)
		cache = geocode.NewSQLGeocodeCache(conn)
	default:
		slot = storage.NewSqliteSlot(conn, storage.DefaultSlotName)
		cache = geocode.NewSqliteGeocodeCache(conn)
	}

	store := storage.NewJSONRecordStore(slot, logger)
	geocoder := geocode.NewNominatimGeocoder(nominatimURL, cache, logger)
	extractor := doctext.NewPDFExtractor()

	ingestSvc := services.NewIngestService(extractor, geocoder, store, logger)
	placementCtrl := services.NewPlacementController(store, logger)

	router := api.NewRouter(
		&handlers.IngestHandler{Service: ingestSvc, Log: logger},
		&handlers.RecordHandler{Store: store, Log: logger},
		&handlers.PlacementHandler{Ctrl: placementCtrl, Store: store, Log: logger},
		web.Handler(),
		logger,
	)

	// Write timeout leaves headroom for a cold geocode on upload.
	logger.Info("server listening", zap.String("addr", ":"+port))
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	logger.Fatal("server stopped", zap.Error(srv.ListenAndServe()))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid LOG_LEVEL %q", level)
	}
	cfg.Level = lvl
	return cfg.Build()
}

func openDB(driver string) (*sql.DB, error) {
	switch driver {
	case "sqlite":
		return db.OpenSqlite(getEnv("DB_PATH", "data/app.db"))
	case "postgres":
		url := os.Getenv("DATABASE_URL")
		if url == "" {
			return nil, eris.New("DATABASE_URL is required when DB_DRIVER=postgres")
		}
		return db.OpenPostgres(url)
	default:
		return nil, eris.Errorf("unsupported DB_DRIVER %q", driver)
	}
}
