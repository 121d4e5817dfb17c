package services

import (
	"errors"
	"fmt"
	"slices"

	"agv-route-service/internal/domain"
	"agv-route-service/internal/ports"
)

// AssignTotesByDistance assigns totes to robots using a simple heuristic.
//
// Waypoints are sorted by dock distance and chunked across robots to produce a
// deterministic, reasonably balanced distribution without solving a full VRP.
// This is a planning shortcut intended for predictable behavior.
func AssignTotesByDistance(
	robots []*domain.Robot,
	totesByWaypoint map[string][]*domain.Tote,
	distances map[string]ports.DistanceResult,
	waypoints []string,
) error {
	if len(robots) == 0 {
		return errors.New("assign totes: robot list must not be empty")
	}

	// Sort by dock distance so each robot receives a contiguous "band" of waypoints.
	slices.SortFunc(waypoints, func(a, b string) int {
		if c := distances[a].Distance.Cmp(distances[b].Distance); c != 0 {
			return c
		}
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	})

	nRobots := len(robots)
	nWaypoints := len(waypoints)

	// Ceiling division: distribute waypoints as evenly as possible across robots.
	chunkSize := (nWaypoints + nRobots - 1) / nRobots

	for ri := 0; ri < nRobots; ri++ {
		start := ri * chunkSize
		if start >= nWaypoints {
			break
		}

		end := start + chunkSize
		if end > nWaypoints {
			end = nWaypoints
		}

		// Load all totes for this waypoint band onto the robot.
		// If capacity is exceeded, assignment fails fast rather than rebalancing.
		for _, wp := range waypoints[start:end] {
			for _, tote := range totesByWaypoint[wp] {
				if err := robots[ri].Load(tote); err != nil {
					return fmt.Errorf("assign totes: robot %d: %w", robots[ri].RobotID, err)
				}
			}
		}
	}

	return nil
}
