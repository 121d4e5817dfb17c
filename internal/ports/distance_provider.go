package ports

import (
	"context"
	"time"

	"agv-route-service/internal/measure"
)

// Distance and travel duration between two waypoints.
type DistanceResult struct {
	Distance measure.Length
	Duration time.Duration
}

// Contract for retrieving travel distance and duration between waypoints.
type DistanceProvider interface {
	// Return travel distance and estimated duration between two waypoints.
	GetDistance(ctx context.Context, origin string, destination string) (DistanceResult, error)
}
