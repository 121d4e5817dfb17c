package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"agv-route-service/internal/domain"
	"agv-route-service/internal/ports"
)

type pairwiseResult struct {
	origin  string
	results map[string]ports.DistanceResult
	err     error
}

type PlanDeliveriesRequest struct {
	Dock          string
	RobotCount    int
	RobotCapacity int
	DepartAt      time.Time
	ReturnToDock  bool
}

func PlanDeliveries(
	ctx context.Context,
	req PlanDeliveriesRequest,
	repo ports.ToteRepository,
	provider ports.DistanceProvider,
) ([]*domain.RoutePlan, error) {
	totes, err := repo.ListTotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan deliveries: list totes: %w", err)
	}

	totesByWaypoint := make(map[string][]*domain.Tote)
	for _, tote := range totes {
		wp := strings.TrimSpace(tote.Waypoint)
		if wp == "" {
			return nil, fmt.Errorf(
				"plan deliveries: tote_id=%d has empty waypoint",
				tote.ToteID,
			)
		}
		totesByWaypoint[wp] = append(totesByWaypoint[wp], tote)
	}

	waypoints := make([]string, 0, len(totesByWaypoint))
	for wp := range totesByWaypoint {
		waypoints = append(waypoints, wp)
	}
	if len(waypoints) == 0 {
		return []*domain.RoutePlan{}, nil
	}

	distances := make(map[string]ports.DistanceResult, len(waypoints))

	// Prefer a single dock->many lookup when supported to reduce provider round trips.
	if mp, ok := provider.(ports.DistanceMatrixProvider); ok {
		results, err := mp.GetDistances(ctx, req.Dock, waypoints)
		if err != nil {
			return nil, fmt.Errorf("plan deliveries: get matrix distances from dock: %w", err)
		}

		for _, wp := range waypoints {
			r, ok := results[wp]
			if !ok {
				return nil, fmt.Errorf("plan deliveries: missing dock distance for %q", wp)
			}
			distances[wp] = r
		}
	} else {
		for _, wp := range waypoints {
			r, err := provider.GetDistance(ctx, req.Dock, wp)
			if err != nil {
				return nil, fmt.Errorf("plan deliveries: get distance dock -> %q: %w", wp, err)
			}
			distances[wp] = r
		}
	}

	robots := make([]*domain.Robot, 0, req.RobotCount)
	for i := 0; i < req.RobotCount; i++ {
		robots = append(robots, domain.NewRobot(i+1, req.RobotCapacity, req.Dock))
	}

	// Assign totes to robots before computing individual routes.
	if err := AssignTotesByDistance(robots, totesByWaypoint, distances, waypoints); err != nil {
		return nil, fmt.Errorf("plan deliveries: assign totes: %w", err)
	}

	// Build pairwiseDist: "origin|destination" → DistanceResult for all pairs
	// needed by the nearest-neighbor route planner.
	pairwiseDist := make(map[string]ports.DistanceResult)

	// Dock → each waypoint (already fetched above).
	for _, wp := range waypoints {
		pairwiseDist[req.Dock+"|"+wp] = distances[wp]
	}

	// Each waypoint → all other waypoints and the dock.
	dockAndWaypoints := append([]string{req.Dock}, waypoints...)
	mp, hasMatrix := provider.(ports.DistanceMatrixProvider)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, 5)
	resultsCh := make(chan pairwiseResult, len(waypoints))
	var wg sync.WaitGroup

	for _, origin := range waypoints {
		targets := make([]string, 0, len(dockAndWaypoints)-1)
		for _, t := range dockAndWaypoints {
			if t != origin {
				targets = append(targets, t)
			}
		}

		wg.Add(1)
		go func(orig string) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			var res map[string]ports.DistanceResult
			if hasMatrix {
				var e error
				res, e = mp.GetDistances(ctx, orig, targets)
				if e != nil {
					resultsCh <- pairwiseResult{origin: orig, err: fmt.Errorf("plan deliveries: get pairwise distances from %q: %w", orig, e)}
					cancel()
					return
				}
			} else {
				res = make(map[string]ports.DistanceResult, len(targets))
				for _, t := range targets {
					r, e := provider.GetDistance(ctx, orig, t)
					if e != nil {
						resultsCh <- pairwiseResult{origin: orig, err: fmt.Errorf("plan deliveries: get pairwise distance from %q to %q: %w", orig, t, e)}
						cancel()
						return
					}
					res[t] = r
				}
			}

			resultsCh <- pairwiseResult{origin: orig, results: res}
		}(origin)
	}

	wg.Wait()
	close(resultsCh)

	var pairwiseErr error
	for res := range resultsCh {
		if res.err != nil {
			if pairwiseErr == nil {
				pairwiseErr = res.err
			}
			continue
		}
		for _, t := range dockAndWaypoints {
			if t != res.origin {
				r, ok := res.results[t]
				if !ok {
					return nil, fmt.Errorf("plan deliveries: missing pairwise distance from %q to %q", res.origin, t)
				}
				pairwiseDist[res.origin+"|"+t] = r
			}
		}
	}
	if pairwiseErr != nil {
		return nil, pairwiseErr
	}

	// Compute a route plan per robot.
	plans := make([]*domain.RoutePlan, 0, len(robots))
	for _, robot := range robots {
		plan, err := NearestNeighborRoute(ctx, robot, req.DepartAt, pairwiseDist, req.ReturnToDock)
		if err != nil {
			return nil, fmt.Errorf("plan deliveries: plan nearest neighbor route: %w", err)
		}

		plans = append(plans, plan)
	}

	return plans, nil
}
