package main

import (
	"context"
	"load-ranking-service/internal/adapters/cache"
	"load-ranking-service/internal/platform/db"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// registrytool manages the Postgres-backed carrier cache: it creates the
// schema and optionally clears cached entries (pass "clear").
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx := context.Background()

	log.Println("Initializing carrier cache schema...")
	if err := cache.InitPostgresSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if len(os.Args) > 1 && os.Args[1] == "clear" {
		store := cache.NewSQLCarrierCache(conn)
		if err := store.Clear(ctx); err != nil {
			log.Fatalf("clear failed: %v", err)
		}
		log.Println("Carrier cache cleared.")
	}
}
