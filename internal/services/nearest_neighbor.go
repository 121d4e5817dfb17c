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

// Plan a drop route over a precomputed pairwise distance map using a greedy
// nearest-neighbor algorithm.
//
// The algorithm minimizes immediate travel duration at each step.
// It does not attempt global route optimization (e.g., VRP solvers).
// The design prioritizes determinism and simplicity over optimality.
func NearestNeighborRoute(
	ctx context.Context,
	robot *domain.Robot,
	departAt time.Time,
	distances map[string]ports.DistanceResult,
	returnToDock bool,
) (*domain.RoutePlan, error) {
	dock := robot.Dock
	totes := robot.Totes

	if dock == "" {
		return nil, errors.New("plan route: dock must be non-empty")
	}

	if len(totes) == 0 {
		return &domain.RoutePlan{
			RobotID:       robot.RobotID,
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

		for _, wp := range waypoints {
			if _, ok := distances[currentLocation+"|"+wp]; !ok {
				return nil, fmt.Errorf("plan route: missing distance result from %q to %q", currentLocation, wp)
			}
		}

		var bestWaypoint string
		minDuration := time.Duration(math.MaxInt64)

		// Select next stop by minimum travel duration (greedy step.)
		for _, wp := range waypoints {
			currentDuration := distances[currentLocation+"|"+wp].Duration
			// Tie-breaker ensures deterministic ordering when durations are equal.
			if currentDuration < minDuration || (currentDuration == minDuration && (bestWaypoint == "" || wp < bestWaypoint)) {
				minDuration = currentDuration
				bestWaypoint = wp
			}
		}

		if bestWaypoint == "" {
			return nil, errors.New("plan route: failed to select next waypoint")
		}
		bestResult := distances[currentLocation+"|"+bestWaypoint]

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
		back, ok := distances[currentLocation+"|"+dock]
		if !ok {
			return nil, fmt.Errorf(
				"plan route: missing distance result for return leg from %q to %q",
				currentLocation, dock,
			)
		}

		currentTime = currentTime.Add(back.Duration)
		totalDuration += back.Duration
		totalDistance = totalDistance.Add(back.Distance)
	}

	return &domain.RoutePlan{
		RobotID:       robot.RobotID,
		DepartAt:      departAt,
		Stops:         stops,
		TotalDuration: totalDuration,
		TotalDistance: totalDistance,
	}, nil
}
