package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"agv-route-service/internal/planar"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createTotesQuery := `
	CREATE TABLE IF NOT EXISTS totes (
		tote_id INTEGER PRIMARY KEY,
		waypoint TEXT NOT NULL
	);
	`

	createWaypointsQuery := `
	CREATE TABLE IF NOT EXISTS waypoints (
		name TEXT PRIMARY KEY,
		position TEXT NOT NULL
	);
	`

	createDistanceCacheQuery := `
	CREATE TABLE IF NOT EXISTS distance_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        distance_meters REAL NOT NULL,
        duration_seconds INTEGER NOT NULL,
        PRIMARY KEY (origin, destination)
    );
	`

	createPositionCacheQuery := `
	CREATE TABLE IF NOT EXISTS position_cache (
        waypoint TEXT PRIMARY KEY,
        position TEXT NOT NULL
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_distance_cache_destination_origin
    ON distance_cache(destination, origin);
	`

	statements := []string{
		createTotesQuery,
		createWaypointsQuery,
		createDistanceCacheQuery,
		createPositionCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type ToteSeed struct {
	ToteID   int    `json:"tote_id"`
	Waypoint string `json:"waypoint"`
}

type WaypointSeed struct {
	Name     string `json:"name"`
	Position string `json:"position"`
}

// Populate the database with tote data from a JSON file.
func SeedTotesFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed totes: read %q: %w", jsonPath, err)
	}

	var data []ToteSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed totes: parse json: %w", err)
	}

	rows := make([]ToteSeed, 0, len(data))
	for i, item := range data {
		toteID := item.ToteID
		if toteID <= 0 {
			return fmt.Errorf("seed totes: invalid toteID at index %d: %d", i+1, toteID)
		}

		waypoint := strings.TrimSpace(item.Waypoint)
		if waypoint == "" {
			return fmt.Errorf("seed totes: item at index %d: waypoint cannot be empty", i+1)
		}
		rows = append(rows, ToteSeed{ToteID: toteID, Waypoint: waypoint})
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed totes: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO totes (
		tote_id,
		waypoint
	)
	VALUES (?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed totes: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range rows {
		if _, err := stmt.Exec(t.ToteID, t.Waypoint); err != nil {
			return fmt.Errorf("seed totes: insert tote_id=%d: %w", t.ToteID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed totes: commit tx: %w", err)
	}

	return nil
}

// Populate the database with surveyed waypoints from a JSON file.
// Positions are validated through the displacement parser before insert so a
// bad seed fails at startup instead of at first route computation.
func SeedWaypointsFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed waypoints: read %q: %w", jsonPath, err)
	}

	var data []WaypointSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed waypoints: parse json: %w", err)
	}

	type row struct {
		name     string
		position string
	}

	rows := make([]row, 0, len(data))
	for i, item := range data {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return fmt.Errorf("seed waypoints: item at index %d: name cannot be empty", i+1)
		}

		position, err := planar.Parse(item.Position)
		if err != nil {
			return fmt.Errorf("seed waypoints: waypoint %q: %w", name, err)
		}
		// Store the canonical rendering, not the raw seed text.
		rows = append(rows, row{name: name, position: position.String()})
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed waypoints: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO waypoints (
		name,
		position
	)
	VALUES (?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed waypoints: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, w := range rows {
		if _, err := stmt.Exec(w.name, w.position); err != nil {
			return fmt.Errorf("seed waypoints: insert name=%q: %w", w.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed waypoints: commit tx: %w", err)
	}

	return nil
}
