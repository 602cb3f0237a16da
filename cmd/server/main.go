package main

import (
	"database/sql"
	"fmt"
	"load-ranking-service/internal/adapters/cache"
	"load-ranking-service/internal/adapters/dat"
	"load-ranking-service/internal/adapters/geo"
	"load-ranking-service/internal/adapters/registry"
	"load-ranking-service/internal/adapters/snapshot"
	"load-ranking-service/internal/api"
	"load-ranking-service/internal/config"
	"load-ranking-service/internal/ports"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (DAT, USDOT, caches) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "5004")
	environment := config.Get("DAT_ENVIRONMENT", dat.EnvStaging)
	snapshotDir := config.Get("SNAPSHOT_DIR", "saved_data")

	username := os.Getenv("DAT_USERNAME")
	password := os.Getenv("DAT_PASSWORD")
	user := os.Getenv("DAT_USER")
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" || strings.TrimSpace(user) == "" {
		log.Fatal("DAT_USERNAME, DAT_PASSWORD and DAT_USER are required")
	}

	board, err := dat.NewClient(username, password, user, environment)
	if err != nil {
		log.Fatal(err)
	}

	carrierCache, closeCache, err := newCarrierCache()
	if err != nil {
		log.Fatal(err)
	}
	if closeCache != nil {
		defer closeCache()
	}

	usdot := registry.NewUSDOTClient(os.Getenv("USDOT_APP_TOKEN"), carrierCache)
	cities := geo.NewCityDB(geo.NewNominatimGeocoder(config.Get("GEOCODER_USER_AGENT", "")))
	snapshots := snapshot.NewStore(snapshotDir)

	router := api.NewRouter(board, usdot, cities, snapshots)

	// Write timeout covers the market fan-out on cold searches.
	log.Printf("Server listening addr=:%s env=%s", port, board.Environment())
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// newCarrierCache picks the carrier cache backend from the environment:
// Redis when REGISTRY_REDIS_ADDR is set, SQLite when REGISTRY_DB_PATH is
// set, in-process memory otherwise.
func newCarrierCache() (ports.CarrierCache, func(), error) {
	if addr := os.Getenv("REGISTRY_REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REGISTRY_REDIS_PASSWORD"),
		})
		log.Printf("carrier cache backend=redis addr=%s", addr)
		c := cache.NewRedisCarrierCache(client, 24*time.Hour)
		return c, func() { client.Close() }, nil
	}

	if path := os.Getenv("REGISTRY_DB_PATH"); path != "" {
		db, err := openSqlite(path)
		if err != nil {
			return nil, nil, err
		}
		if err := cache.InitSqliteSchema(db); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("init carrier cache schema: %w", err)
		}
		log.Printf("carrier cache backend=sqlite path=%s", path)
		return cache.NewSqliteCarrierCache(db), func() { db.Close() }, nil
	}

	log.Printf("carrier cache backend=memory")
	return cache.NewMemoryCarrierCache(), nil, nil
}

func openSqlite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %q: %w", path, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("verify sqlite connection to %q: %w", path, err)
	}

	return db, nil
}
