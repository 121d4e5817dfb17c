package ports

import "context"

// Port: persistent cache of computed origin->destination leg results.
// Implementations are keyed by waypoint name on both sides.
type DistanceCache interface {
	// Fetch cached legs for one origin; missing destinations are absent
	// from the result rather than an error.
	GetMany(ctx context.Context, origin string, destinations []string) (map[string]DistanceResult, error)
	// Store legs for one origin, replacing existing entries.
	PutMany(ctx context.Context, origin string, results map[string]DistanceResult) error
}
