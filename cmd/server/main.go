package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"agv-route-service/internal/adapters/cache"
	"agv-route-service/internal/adapters/distance"
	"agv-route-service/internal/adapters/repositories"
	"agv-route-service/internal/api"
	"agv-route-service/internal/config"
	"agv-route-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, optional Redis) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	toteSeedPath := config.Get("SEED_PATH", "data/seeds/totes.json")
	waypointSeedPath := config.Get("WAYPOINT_SEED_PATH", "data/seeds/waypoints.json")
	dock := config.Get("DOCK_WAYPOINT", "DOCK")
	port := config.Get("PORT", "8080")

	speed, err := strconv.ParseFloat(config.Get("AGV_SPEED_MPS", "1.4"), 64)
	if err != nil {
		log.Fatalf("AGV_SPEED_MPS must be a number: %v", err)
	}

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(db, toteSeedPath, waypointSeedPath); err != nil {
		log.Fatal(err)
	}

	// The provider layers persistent caches over exact planar geometry.
	// When REDIS_ADDR is set, legs are cached in Redis; otherwise in SQLite.
	var legCache ports.DistanceCache = cache.NewSqliteDistanceCache(db)
	if addr := config.Get("REDIS_ADDR", ""); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		legCache = cache.NewRedisDistanceCache(client, 24*time.Hour)
		log.Printf("Using redis leg cache addr=%s", addr)
	}

	waypointRepo := repositories.NewSqliteWaypointRepository(db)
	positionCache := cache.NewSqlitePositionCache(db)
	provider, err := distance.NewPlanarDistanceProvider(waypointRepo, positionCache, legCache, speed)
	if err != nil {
		log.Fatal(err)
	}

	toteRepo := repositories.NewSqliteToteRepository(db)
	router := api.NewRouter(toteRepo, waypointRepo, provider, dock)

	// Timeouts are tuned for cold-cache plan requests over large floors.
	log.Printf("Server listening addr=:%s", port)
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

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, toteSeedPath, waypointSeedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedWaypointsFromJSON(db, waypointSeedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedTotesFromJSON(db, toteSeedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
