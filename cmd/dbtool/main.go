// Command dbtool manages the record database from the shell:
//
//	dbtool init    create tables
//	dbtool export  print the stored records as JSON
//	dbtool clear   reset the record slot to an empty list
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"

	"delivery-map-service/internal/adapters/storage"
	"delivery-map-service/internal/platform/db"
	"delivery-map-service/internal/ports"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	if len(os.Args) < 2 {
		log.Fatal("usage: dbtool <init|export|clear>")
	}

	conn, err := openDB()
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, conn, os.Args[1]); err != nil {
		log.Fatal(eris.ToString(err, true))
	}
}

func run(ctx context.Context, conn *sql.DB, cmd string) error {
	switch cmd {
	case "init":
		if err := storage.InitSchema(ctx, conn); err != nil {
			return eris.Wrap(err, "init schema")
		}
		log.Println("Schema ready.")
		return nil
	case "export":
		raw, err := slot(conn).Load(ctx)
		if err != nil {
			return eris.Wrap(err, "load records")
		}
		if raw == nil {
			raw = []byte("[]")
		}
		fmt.Println(string(raw))
		return nil
	case "clear":
		if err := slot(conn).Save(ctx, []byte("[]")); err != nil {
			return eris.Wrap(err, "clear records")
		}
		log.Println("Records cleared.")
		return nil
	default:
		return eris.Errorf("unknown command %q", cmd)
	}
}

func slot(conn *sql.DB) ports.StorageSlot {
	if getEnv("DB_DRIVER", "sqlite") == "postgres" {
		return storage.NewSQLSlot(conn, storage.DefaultSlotName)
	}
	return storage.NewSqliteSlot(conn, storage.DefaultSlotName)
}

func openDB() (*sql.DB, error) {
	switch driver := getEnv("DB_DRIVER", "sqlite"); driver {
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

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
