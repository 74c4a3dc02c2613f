package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"apartment-eval-service/internal/adapters/cache"
	"apartment-eval-service/internal/adapters/maps"
	"apartment-eval-service/internal/adapters/stations"
	"apartment-eval-service/internal/api"
	"apartment-eval-service/internal/config"
	"apartment-eval-service/internal/platform/db"
	"apartment-eval-service/internal/ports"
	"apartment-eval-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (Google Maps, SQLite/Postgres, Redis)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := getEnv("PORT", "8080")
	stationsPath := getEnv("STATIONS_PATH", "data/subway_stations.json")

	apiKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if strings.TrimSpace(apiKey) == "" {
		log.Fatal("GOOGLE_MAPS_API_KEY is required")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	geocodeCache, closeDB, err := openGeocodeCache()
	if err != nil {
		log.Fatal(err)
	}
	defer closeDB()

	// Google Maps provider reuses geocode results across restarts to avoid
	// repeated geocoding of the same listing addresses.
	provider, err := maps.NewGoogleMapsProvider(apiKey, geocodeCache)
	if err != nil {
		log.Fatal(err)
	}

	stationIndex, err := stations.LoadIndex(stationsPath)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Loaded station dataset path=%s stations=%d", stationsPath, stationIndex.Len())

	evalCache := openEvaluationCache(cfg.CacheTTL)

	svc := services.NewEvaluationService(cfg, provider, provider, provider, stationIndex, evalCache)
	router := api.NewRouter(svc, evalCache)

	// Timeouts are tuned for cold-cache evaluations (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// openGeocodeCache selects the geocode cache backend: Postgres when
// DATABASE_URL is set, otherwise a local SQLite file.
func openGeocodeCache() (ports.GeocodeCache, func(), error) {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		pg, err := db.Open(url)
		if err != nil {
			return nil, nil, fmt.Errorf("open geocode cache: %w", err)
		}
		log.Println("Geocode cache backend=postgres")
		return cache.NewSQLGeocodeCache(pg), func() { pg.Close() }, nil
	}

	dbPath := getEnv("GEOCODE_CACHE_PATH", "data/app.db")
	sq, err := openSqlite(dbPath)
	if err != nil {
		return nil, nil, err
	}

	gc := cache.NewSqliteGeocodeCache(sq)
	if err := gc.InitSchema(context.Background()); err != nil {
		sq.Close()
		return nil, nil, err
	}

	log.Printf("Geocode cache backend=sqlite path=%s", dbPath)
	return gc, func() { sq.Close() }, nil
}

// openEvaluationCache selects the evaluation cache backend: Redis when
// REDIS_ADDR is set, otherwise in-process memory.
func openEvaluationCache(ttl time.Duration) ports.EvaluationCache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("Evaluation cache backend=memory")
		return cache.NewMemoryEvaluationCache(ttl)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	log.Printf("Evaluation cache backend=redis addr=%s", addr)
	return cache.NewRedisEvaluationCache(rdb, ttl)
}

func openSqlite(dbPath string) (*sql.DB, error) {
	sq, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %q: %w", dbPath, err)
	}

	if err := sq.Ping(); err != nil {
		return nil, fmt.Errorf("verify sqlite connection to %q: %w", dbPath, err)
	}

	return sq, nil
}
