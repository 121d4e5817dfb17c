package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"agv-route-service/internal/domain"
	"agv-route-service/internal/measure"
	"agv-route-service/internal/ports"
)

// Plan a drop route using a greedy nearest-neighbor algorithm.
//
// The algorithm minimizes immediate travel duration at each step.
// It does not attempt global route optimization (e.g., VRP solvers).
// The design prioritizes determinism and simplicity over optimality.
func PlanRoute(
	ctx context.Context,
	robotID int,
	departAt time.Time,
	dock string,
	totes []*domain.Tote,
	distanceProvider ports.DistanceProvider,
	returnToDock bool,
) (*domain.RoutePlan, error) {
	if dock == "" {
		return nil, errors.New("plan route: dock must be non-empty")
	}

	if len(totes) == 0 {
		return &domain.RoutePlan{
			RobotID:       robotID,
			DepartAt:      departAt,
			Stops:         []domain.RouteStop{},
			TotalDuration: 0,
			TotalDistance: measure.FromMeters(0),
		}, nil
	}

	byWaypoint := make(map[string][]int)
	for _, tote := range totes {
		byWaypoint[tote.Waypoint] = append(byWaypoint[tote.Waypoint], tote.ToteID)
	}

	remainingWaypoints := make(map[string]struct{})
	for wp := range byWaypoint {
		remainingWaypoints[wp] = struct{}{}
	}

	currentTime := departAt
	currentLocation := dock

	stops := []domain.RouteStop{}
	totalDistance := measure.FromMeters(0)
	var totalDuration time.Duration

	for len(remainingWaypoints) > 0 {
		waypoints := make([]string, 0, len(remainingWaypoints))
		for wp := range remainingWaypoints {
			waypoints = append(waypoints, wp)
		}

		var (
			results map[string]ports.DistanceResult
			err     error
		)

		// Prefer batched distance lookups when supported to reduce provider round trips.
		if provider, ok := distanceProvider.(ports.DistanceMatrixProvider); ok {
			results, err = provider.GetDistances(ctx, currentLocation, waypoints)
			if err != nil {
				return nil, fmt.Errorf("plan route: get distances matrix from %q: %w", currentLocation, err)
			}
		} else {
			results = make(map[string]ports.DistanceResult, len(waypoints))
			for _, wp := range waypoints {
				r, e := distanceProvider.GetDistance(ctx, currentLocation, wp)
				if e != nil {
					return nil, fmt.Errorf("plan route: get distance: from %q to %q: %w", currentLocation, wp, e)
				}
				results[wp] = r
			}
		}

		for _, wp := range waypoints {
			if _, ok := results[wp]; !ok {
				return nil, fmt.Errorf("plan route: missing distance result from %q to %q", currentLocation, wp)
			}
		}

		var bestWaypoint string
		minDuration := time.Duration(math.MaxInt64)

		// Select next stop by minimum travel duration (greedy step.)
		for _, wp := range waypoints {
			currentDuration := results[wp].Duration
			// Tie-breaker ensures deterministic ordering when durations are equal.
			if currentDuration < minDuration || (currentDuration == minDuration && (bestWaypoint == "" || wp < bestWaypoint)) {
				minDuration = currentDuration
				bestWaypoint = wp
			}
		}

		if bestWaypoint == "" {
			return nil, errors.New("plan route: failed to select next waypoint")
		}
		bestResult := results[bestWaypoint]

		currentTime = currentTime.Add(bestResult.Duration)
		totalDuration += bestResult.Duration
		totalDistance = totalDistance.Add(bestResult.Distance)

		stops = append(
			stops,
			domain.RouteStop{
				Waypoint: bestWaypoint,
				ArriveAt: currentTime,
				ToteIDs:  byWaypoint[bestWaypoint],
			},
		)

		delete(remainingWaypoints, bestWaypoint)
		currentLocation = bestWaypoint
	}

	// Optionally includes the return leg to the dock for total route metrics.
	if returnToDock {
		back, err := distanceProvider.GetDistance(ctx, currentLocation, dock)
		if err != nil {
			return nil, fmt.Errorf("plan route: get distance return leg from %q to %q: %w", currentLocation, dock, err)
		}

		currentTime = currentTime.Add(back.Duration)
		totalDuration += back.Duration
		totalDistance = totalDistance.Add(back.Distance)
	}

	return &domain.RoutePlan{
		RobotID:       robotID,
		DepartAt:      departAt,
		Stops:         stops,
		TotalDuration: totalDuration,
		TotalDistance: totalDistance,
	}, nil
}

// Create a RoutePlan for the currently loaded totes.
func PlanRobotRoute(
	ctx context.Context,
	robot *domain.Robot,
	departAt time.Time,
	distanceProvider ports.DistanceProvider,
	returnToDock bool,
) (*domain.RoutePlan, error) {
	if robot == nil {
		return nil, errors.New("plan robot route: robot must be non-nil")
	}

	if robot.Dock == "" {
		return nil, fmt.Errorf("plan robot route: robot %d dock must be non-empty", robot.RobotID)
	}

	// Delegate to PlanRoute while preserving robot-level invariants.
	plan, err := PlanRoute(ctx, robot.RobotID, departAt, robot.Dock, robot.Totes, distanceProvider, returnToDock)
	if err != nil {
		return nil, fmt.Errorf("plan robot route: for robot %d: %w", robot.RobotID, err)
	}
	return plan, nil
}
