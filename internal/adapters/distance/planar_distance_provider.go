package distance

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"agv-route-service/internal/adapters/cache"
	"agv-route-service/internal/planar"
	"agv-route-service/internal/platform/obs"
	"agv-route-service/internal/ports"
)

// PlanarDistanceProvider implements DistanceProvider over surveyed floor
// positions.
//
// It coordinates:
//   - Waypoint name normalization
//   - Persistent position caching in front of the waypoint repository
//   - Persistent leg caching (sqlite or redis, behind the DistanceCache port)
//   - Exact straight-line distance between planar displacements
//
// Travel duration is derived from the configured vehicle speed. The provider
// is safe for concurrent use.
type PlanarDistanceProvider struct {
	waypoints     ports.WaypointRepository
	positionCache *cache.SqlitePositionCache
	legCache      ports.DistanceCache
	speed         float64 // meters per second
}

func NewPlanarDistanceProvider(
	waypoints ports.WaypointRepository,
	positionCache *cache.SqlitePositionCache,
	legCache ports.DistanceCache,
	speedMetersPerSecond float64,
) (*PlanarDistanceProvider, error) {
	if waypoints == nil {
		return nil, errors.New("planar distance provider: waypoint repository is nil")
	}
	if speedMetersPerSecond <= 0 || math.IsInf(speedMetersPerSecond, 0) || math.IsNaN(speedMetersPerSecond) {
		return nil, fmt.Errorf("planar distance provider: speed must be a positive finite value, got %v", speedMetersPerSecond)
	}

	provider := &PlanarDistanceProvider{
		waypoints:     waypoints,
		positionCache: positionCache,
		legCache:      legCache,
		speed:         speedMetersPerSecond,
	}

	return provider, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (p *PlanarDistanceProvider) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Delegate to the batched path to reuse caching logic.
func (p *PlanarDistanceProvider) GetDistance(
	ctx context.Context,
	origin string,
	destination string,
) (ports.DistanceResult, error) {
	if origin == "" || destination == "" {
		return ports.DistanceResult{}, errors.New("get planar distance: origin and destination must be non-empty")
	}

	normOrigin := p.normalize(origin)
	if normOrigin == "" {
		return ports.DistanceResult{}, errors.New("origin must be non-empty")
	}

	normDestination := p.normalize(destination)
	if normDestination == "" {
		return ports.DistanceResult{}, errors.New("destination must be non-empty")
	}

	results, err := p.GetDistances(ctx, normOrigin, []string{normDestination})
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf(
			"get distances %q -> %q: %w",
			normOrigin, normDestination, err,
		)
	}

	result, ok := results[normDestination]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("no distance result for %q -> %q", origin, destination)
	}

	return result, nil
}

// Compute distances from a single origin to many destinations.
func (p *PlanarDistanceProvider) GetDistances(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, "planar.GetDistances")(&err)

	if origin == "" {
		return nil, errors.New("origin must be non-empty")
	}

	if len(destinations) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	normOrigin := p.normalize(origin)
	if normOrigin == "" {
		return nil, errors.New("origin must be non-empty")
	}

	seen := map[string]struct{}{}
	normDestinations := make([]string, 0, len(destinations))
	for _, d := range destinations {
		nd := p.normalize(d)
		if nd == "" {
			return nil, fmt.Errorf("destination %q must be non-empty", d)
		}
		if _, ok := seen[nd]; ok {
			continue
		}
		seen[nd] = struct{}{}
		normDestinations = append(normDestinations, nd)
	}

	out := make(map[string]ports.DistanceResult, len(normDestinations))

	// Serve from the leg cache first; compute only the misses.
	missing := normDestinations
	if p.legCache != nil {
		cached, err := p.legCache.GetMany(ctx, normOrigin, normDestinations)
		if err != nil {
			return nil, fmt.Errorf("get planar distances: leg cache: %w", err)
		}

		missing = make([]string, 0, len(normDestinations))
		for _, d := range normDestinations {
			if r, ok := cached[d]; ok {
				out[d] = r
			} else {
				missing = append(missing, d)
			}
		}
	}

	if len(missing) == 0 {
		return out, nil
	}

	positions, err := p.resolvePositions(ctx, append([]string{normOrigin}, missing...))
	if err != nil {
		return nil, fmt.Errorf("get planar distances: %w", err)
	}

	originPos, ok := positions[normOrigin]
	if !ok {
		return nil, fmt.Errorf("get planar distances: unknown waypoint %q", normOrigin)
	}

	computed := make(map[string]ports.DistanceResult, len(missing))
	for _, d := range missing {
		destPos, ok := positions[d]
		if !ok {
			return nil, fmt.Errorf("get planar distances: unknown waypoint %q", d)
		}

		length := planar.Distance(originPos, destPos)
		computed[d] = ports.DistanceResult{
			Distance: length,
			Duration: time.Duration(math.Round(length.Meters()/p.speed)) * time.Second,
		}
	}

	if p.legCache != nil {
		// A failed cache write degrades performance, not correctness.
		if err := p.legCache.PutMany(ctx, normOrigin, computed); err != nil {
			log.Printf("leg cache write failed: origin=%q err=%v", normOrigin, err)
		}
	}

	for d, r := range computed {
		out[d] = r
	}

	return out, nil
}

// resolvePositions looks up waypoint positions, preferring the position
// cache and backfilling it from the repository on miss.
func (p *PlanarDistanceProvider) resolvePositions(
	ctx context.Context,
	names []string,
) (map[string]planar.Displacement, error) {
	positions := make(map[string]planar.Displacement, len(names))

	missing := names
	if p.positionCache != nil {
		cached, err := p.positionCache.GetMany(ctx, names)
		if err != nil {
			return nil, fmt.Errorf("resolve positions: position cache: %w", err)
		}

		missing = make([]string, 0, len(names))
		for _, n := range names {
			if pos, ok := cached[n]; ok {
				positions[n] = pos
			} else {
				missing = append(missing, n)
			}
		}
	}

	if len(missing) == 0 {
		return positions, nil
	}

	stored, err := p.waypoints.GetWaypoints(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("resolve positions: waypoint repository: %w", err)
	}

	resolved := make(map[string]planar.Displacement, len(stored))
	for _, n := range missing {
		wp, ok := stored[n]
		if !ok {
			return nil, fmt.Errorf("resolve positions: unknown waypoint %q", n)
		}
		positions[n] = wp.Position
		resolved[n] = wp.Position
	}

	if p.positionCache != nil && len(resolved) > 0 {
		if err := p.positionCache.PutMany(ctx, resolved); err != nil {
			log.Printf("position cache write failed: err=%v", err)
		}
	}

	return positions, nil
}
