package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"agv-route-service/internal/planar"
)

// SQLite backed cache mapping waypoint names to floor positions.
//
// Positions are stored as displacement text ("<x>,<y>" in meters) and
// parsed back on read. Waypoint keys are expected to be consistent
// (e.g., normalized) by the caller.
type SqlitePositionCache struct {
	DB *sql.DB
}

func NewSqlitePositionCache(db *sql.DB) *SqlitePositionCache {
	return &SqlitePositionCache{DB: db}
}

// Fetch cached positions for the given waypoints.
func (s *SqlitePositionCache) GetMany(ctx context.Context, waypoints []string) (map[string]planar.Displacement, error) {
	if s.DB == nil {
		return nil, errors.New("position cache: db is nil")
	}

	if len(waypoints) == 0 {
		return map[string]planar.Displacement{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(waypoints))
	ph := make([]string, 0, len(waypoints))
	for _, w := range waypoints {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}

		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		uniq = append(uniq, w)
		ph = append(ph, "?")
	}

	if len(uniq) == 0 {
		return map[string]planar.Displacement{}, nil
	}

	placeholders := strings.Join(ph, ",")
	args := make([]any, 0, len(uniq))
	for _, w := range uniq {
		args = append(args, w)
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT
        waypoint,
        position
    FROM position_cache
    WHERE waypoint IN (%s);
	`, placeholders)

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get position cache: query position_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]planar.Displacement, len(uniq))
	for rows.Next() {
		var waypoint, positionText string
		if err := rows.Scan(&waypoint, &positionText); err != nil {
			return nil, fmt.Errorf("get position cache: scan rows: %w", err)
		}

		position, err := planar.Parse(positionText)
		if err != nil {
			return nil, fmt.Errorf("get position cache: waypoint %q: %w", waypoint, err)
		}
		out[waypoint] = position
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get position cache: row iteration: %w", err)
	}

	return out, nil
}

// Store many cached positions.
func (s *SqlitePositionCache) PutMany(ctx context.Context, positions map[string]planar.Displacement) error {
	if s.DB == nil {
		return errors.New("position cache: db is nil")
	}

	if len(positions) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert position cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO position_cache (
        waypoint,
        position
    )
    VALUES (?, ?)
	`)
	if err != nil {
		return fmt.Errorf("insert position cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for waypoint, position := range positions {
		if strings.TrimSpace(waypoint) == "" {
			return fmt.Errorf("insert position cache: empty waypoint key")
		}

		if _, err := stmt.ExecContext(ctx, waypoint, position.String()); err != nil {
			return fmt.Errorf("insert position cache waypoint=%q: %w", waypoint, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert position cache commit: %w", err)
	}

	return nil
}
