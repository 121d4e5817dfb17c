package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"agv-route-service/internal/adapters/repositories"
	"agv-route-service/internal/config"
	"agv-route-service/internal/planar"
	"agv-route-service/internal/platform/db"
)

// dbtool initializes the Postgres schema and seeds demo data.
// The HTTP server runs on SQLite for local use; this tool targets the
// shared Postgres deployment.
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

	log.Println("Initializing database schema...")
	if err := initSchema(pg); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	toteSeedPath := config.Get("SEED_PATH", "data/seeds/totes.json")
	waypointSeedPath := config.Get("WAYPOINT_SEED_PATH", "data/seeds/waypoints.json")

	log.Println("Seeding database...")
	if err := seedWaypoints(pg, waypointSeedPath); err != nil {
		log.Fatalf("seeding waypoints failed: %v", err)
	}
	if err := seedTotes(pg, toteSeedPath); err != nil {
		log.Fatalf("seeding totes failed: %v", err)
	}
	log.Println("Seeding complete.")
}

// Postgres variant of the SQLite schema in internal/adapters/repositories.
func initSchema(pg *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS totes (
			tote_id INTEGER PRIMARY KEY,
			waypoint TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS waypoints (
			name TEXT PRIMARY KEY,
			position TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS distance_cache (
			origin TEXT NOT NULL,
			destination TEXT NOT NULL,
			distance_meters DOUBLE PRECISION NOT NULL,
			duration_seconds BIGINT NOT NULL,
			PRIMARY KEY (origin, destination)
		);`,
		`CREATE TABLE IF NOT EXISTS position_cache (
			waypoint TEXT PRIMARY KEY,
			position TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_distance_cache_destination_origin
		ON distance_cache(destination, origin);`,
	}

	for i, stmt := range statements {
		if _, err := pg.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	return nil
}

func seedTotes(pg *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed totes: read %q: %w", jsonPath, err)
	}

	var data []repositories.ToteSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed totes: parse json: %w", err)
	}

	query := `
	INSERT INTO totes (tote_id, waypoint)
	VALUES ($1, $2)
	ON CONFLICT (tote_id) DO UPDATE SET waypoint = EXCLUDED.waypoint;
	`
	for i, t := range data {
		if t.ToteID <= 0 {
			return fmt.Errorf("seed totes: invalid toteID at index %d: %d", i+1, t.ToteID)
		}
		if strings.TrimSpace(t.Waypoint) == "" {
			return fmt.Errorf("seed totes: item at index %d: waypoint cannot be empty", i+1)
		}

		if _, err := pg.Exec(query, t.ToteID, strings.TrimSpace(t.Waypoint)); err != nil {
			return fmt.Errorf("seed totes: insert tote_id=%d: %w", t.ToteID, err)
		}
	}

	return nil
}

func seedWaypoints(pg *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed waypoints: read %q: %w", jsonPath, err)
	}

	var data []repositories.WaypointSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed waypoints: parse json: %w", err)
	}

	query := `
	INSERT INTO waypoints (name, position)
	VALUES ($1, $2)
	ON CONFLICT (name) DO UPDATE SET position = EXCLUDED.position;
	`
	for i, w := range data {
		name := strings.TrimSpace(w.Name)
		if name == "" {
			return fmt.Errorf("seed waypoints: item at index %d: name cannot be empty", i+1)
		}

		position, err := planar.Parse(w.Position)
		if err != nil {
			return fmt.Errorf("seed waypoints: waypoint %q: %w", name, err)
		}

		if _, err := pg.Exec(query, name, position.String()); err != nil {
			return fmt.Errorf("seed waypoints: insert name=%q: %w", name, err)
		}
	}

	return nil
}
