package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"agv-route-service/internal/domain"
)

// SQLite-backed implementation of the ToteRepository port.
type SqliteToteRepository struct{ DB *sql.DB }

func NewSqliteToteRepository(db *sql.DB) *SqliteToteRepository {
	return &SqliteToteRepository{DB: db}
}

// Return all totes stored in the database.
func (s *SqliteToteRepository) ListTotes(ctx context.Context) ([]*domain.Tote, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite tote repository: DB is nil")
	}

	query := `
	SELECT
		tote_id,
		waypoint
	FROM totes
	ORDER BY tote_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list totes: query totes table: %w", err)
	}
	defer rows.Close()

	totes := make([]*domain.Tote, 0, 64)
	for rows.Next() {
		var id int
		var waypoint string
		err := rows.Scan(&id, &waypoint)
		if err != nil {
			return nil, fmt.Errorf("list totes: scan row: %w", err)
		}
		totes = append(totes, &domain.Tote{ToteID: id, Waypoint: waypoint})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list totes: row iteration: %w", err)
	}

	return totes, nil
}
