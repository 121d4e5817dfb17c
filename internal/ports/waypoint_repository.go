package ports

import (
	"context"

	"agv-route-service/internal/domain"
)

// Port: a boundary for storing and retrieving surveyed waypoints.
type WaypointRepository interface {
	// Retrieve all surveyed waypoints.
	ListWaypoints(ctx context.Context) ([]*domain.Waypoint, error)
	// Fetch waypoints by name. Missing names are simply absent from the result.
	GetWaypoints(ctx context.Context, names []string) (map[string]domain.Waypoint, error)
	// Insert or replace a waypoint.
	PutWaypoint(ctx context.Context, wp domain.Waypoint) error
}
