package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"agv-route-service/internal/domain"
	"agv-route-service/internal/planar"
)

// SQLite-backed implementation of the WaypointRepository port.
//
// Positions are persisted as displacement text ("<x>,<y>" in meters) and
// parsed back on read, so the stored value round-trips exactly.
type SqliteWaypointRepository struct{ DB *sql.DB }

func NewSqliteWaypointRepository(db *sql.DB) *SqliteWaypointRepository {
	return &SqliteWaypointRepository{DB: db}
}

// Return all surveyed waypoints ordered by name.
func (s *SqliteWaypointRepository) ListWaypoints(ctx context.Context) ([]*domain.Waypoint, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite waypoint repository: DB is nil")
	}

	query := `
	SELECT
		name,
		position
	FROM waypoints
	ORDER BY name;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list waypoints: query waypoints table: %w", err)
	}
	defer rows.Close()

	waypoints := make([]*domain.Waypoint, 0, 64)
	for rows.Next() {
		var name, positionText string
		if err := rows.Scan(&name, &positionText); err != nil {
			return nil, fmt.Errorf("list waypoints: scan row: %w", err)
		}

		position, err := planar.Parse(positionText)
		if err != nil {
			return nil, fmt.Errorf("list waypoints: waypoint %q: %w", name, err)
		}

		waypoints = append(waypoints, &domain.Waypoint{Name: name, Position: position})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list waypoints: row iteration: %w", err)
	}

	return waypoints, nil
}

// Fetch waypoints by name. Names absent from the table are absent from the result.
func (s *SqliteWaypointRepository) GetWaypoints(ctx context.Context, names []string) (map[string]domain.Waypoint, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite waypoint repository: DB is nil")
	}

	if len(names) == 0 {
		return map[string]domain.Waypoint{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(names))
	ph := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}

		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		uniq = append(uniq, n)
		ph = append(ph, "?")
	}

	if len(uniq) == 0 {
		return map[string]domain.Waypoint{}, nil
	}

	placeholders := strings.Join(ph, ",")
	args := make([]any, 0, len(uniq))
	for _, n := range uniq {
		args = append(args, n)
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	query := fmt.Sprintf(`
	SELECT
		name,
		position
	FROM waypoints
	WHERE name IN (%s);
	`, placeholders)

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get waypoints: query waypoints table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Waypoint, len(uniq))
	for rows.Next() {
		var name, positionText string
		if err := rows.Scan(&name, &positionText); err != nil {
			return nil, fmt.Errorf("get waypoints: scan row: %w", err)
		}

		position, err := planar.Parse(positionText)
		if err != nil {
			return nil, fmt.Errorf("get waypoints: waypoint %q: %w", name, err)
		}
		out[name] = domain.Waypoint{Name: name, Position: position}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get waypoints: row iteration: %w", err)
	}

	return out, nil
}

// Insert or replace a waypoint.
func (s *SqliteWaypointRepository) PutWaypoint(ctx context.Context, wp domain.Waypoint) error {
	if s.DB == nil {
		return errors.New("sqlite waypoint repository: DB is nil")
	}

	name := strings.TrimSpace(wp.Name)
	if name == "" {
		return errors.New("put waypoint: name must not be empty")
	}

	query := `
	INSERT OR REPLACE INTO waypoints (
		name,
		position
	)
	VALUES (?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, query, name, wp.Position.String()); err != nil {
		return fmt.Errorf("put waypoint %q: %w", name, err)
	}

	return nil
}
