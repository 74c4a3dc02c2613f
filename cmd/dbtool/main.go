package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strings"

	"apartment-eval-service/internal/platform/db"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// dbtool prepares the Postgres geocode cache for deployments that
// share one cache across hosts. It creates the schema and reports how
// many addresses are cached.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	ctx := context.Background()
	if err := initSchema(ctx, pg); err != nil {
		log.Fatal(err)
	}

	count, err := cachedAddresses(ctx, pg)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Geocode cache ready cached_addresses=%d", count)
}

func initSchema(ctx context.Context, pg *sql.DB) error {
	log.Println("Initializing geocode cache schema...")
	_, err := pg.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lat DOUBLE PRECISION NOT NULL,
        lon DOUBLE PRECISION NOT NULL,
        formatted_address TEXT NOT NULL DEFAULT ''
    );
	`)
	if err != nil {
		return err
	}
	log.Println("Schema ready.")
	return nil
}

func cachedAddresses(ctx context.Context, pg *sql.DB) (int, error) {
	var count int
	err := pg.QueryRowContext(ctx, `SELECT COUNT(*) FROM geocode_cache;`).Scan(&count)
	return count, err
}
