package cache

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"agv-route-service/internal/measure"
	"agv-route-service/internal/planar"
	"agv-route-service/internal/ports"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	statements := []string{
		`CREATE TABLE distance_cache (
			origin TEXT NOT NULL,
			destination TEXT NOT NULL,
			distance_meters REAL NOT NULL,
			duration_seconds INTEGER NOT NULL,
			PRIMARY KEY (origin, destination)
		);`,
		`CREATE TABLE position_cache (
			waypoint TEXT PRIMARY KEY,
			position TEXT NOT NULL
		);`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	return db
}

func TestSqliteDistanceCachePutGet(t *testing.T) {
	c := NewSqliteDistanceCache(newTestDB(t))
	ctx := context.Background()

	legs := map[string]ports.DistanceResult{
		"A": {Distance: measure.FromMeters(5), Duration: 4 * time.Second},
		"B": {Distance: measure.FromMeters(0.125), Duration: 1 * time.Second},
	}

	if err := c.PutMany(ctx, "DOCK", legs); err != nil {
		t.Fatalf("PutMany: unexpected error: %v", err)
	}

	got, err := c.GetMany(ctx, "DOCK", []string{"A", "B", "C"})
	if err != nil {
		t.Fatalf("GetMany: unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d cached legs, want 2", len(got))
	}
	if got["A"].Distance.Meters() != 5 || got["A"].Duration != 4*time.Second {
		t.Errorf("leg A = %+v, want 5m / 4s", got["A"])
	}
	if got["B"].Distance.Meters() != 0.125 {
		t.Errorf("leg B meters = %v, want 0.125", got["B"].Distance.Meters())
	}
}

func TestSqlitePositionCacheRoundTrip(t *testing.T) {
	c := NewSqlitePositionCache(newTestDB(t))
	ctx := context.Background()

	positions := map[string]planar.Displacement{
		"A": planar.FromMeters(3.5, -2.25),
		"B": planar.FromCentimeters(150, 75),
	}

	if err := c.PutMany(ctx, positions); err != nil {
		t.Fatalf("PutMany: unexpected error: %v", err)
	}

	got, err := c.GetMany(ctx, []string{"A", "B", "UNKNOWN"})
	if err != nil {
		t.Fatalf("GetMany: unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d cached positions, want 2", len(got))
	}

	// Positions travel through text and must come back bit-identical.
	if !got["A"].Equal(positions["A"]) {
		t.Errorf("position A = %v, want %v", got["A"], positions["A"])
	}
	if !got["B"].Equal(positions["B"]) {
		t.Errorf("position B = %v, want %v", got["B"], positions["B"])
	}
}
