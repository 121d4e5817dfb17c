package services

import (
	"context"
	"testing"
	"time"

	"agv-route-service/internal/adapters/distance"
	"agv-route-service/internal/domain"
	"agv-route-service/internal/planar"
	"agv-route-service/internal/ports"
)

func TestRoutePlannerPlanRoute(t *testing.T) {
	totes := []*domain.Tote{
		{ToteID: 1, Waypoint: "A"},
		{ToteID: 2, Waypoint: "B"},
		{ToteID: 3, Waypoint: "C"},
	}

	pairs := []distance.MockPair{
		{From: "DOCK", To: "A", Meters: 1000, Seconds: 300},
		{From: "DOCK", To: "B", Meters: 2000, Seconds: 600},
		{From: "DOCK", To: "C", Meters: 1500, Seconds: 450},
		{From: "A", To: "B", Meters: 800, Seconds: 240},
		{From: "A", To: "C", Meters: 700, Seconds: 210},
		{From: "B", To: "C", Meters: 900, Seconds: 270},
		{From: "A", To: "DOCK", Meters: 1000, Seconds: 300},
		{From: "B", To: "DOCK", Meters: 2000, Seconds: 600},
		{From: "C", To: "DOCK", Meters: 1500, Seconds: 450},
		{From: "B", To: "A", Meters: 800, Seconds: 240},
		{From: "C", To: "A", Meters: 700, Seconds: 210},
		{From: "C", To: "B", Meters: 900, Seconds: 270},
	}

	provider := distance.NewMockDistanceProvider(pairs)

	depart := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	plan, err := PlanRoute(context.Background(), 1, depart, "DOCK", totes, provider, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.Stops) != 3 {
		t.Fatalf("expected 3 stops, got %d", len(plan.Stops))
	}
	if plan.Stops[0].Waypoint != "A" {
		t.Fatalf("expected first stop A, got %q", plan.Stops[0].Waypoint)
	}
	if plan.Stops[1].Waypoint != "C" {
		t.Fatalf("expected second stop C, got %q", plan.Stops[1].Waypoint)
	}
	if plan.Stops[2].Waypoint != "B" {
		t.Fatalf("expected third stop B, got %q", plan.Stops[2].Waypoint)
	}

	if plan.TotalDuration != 780*time.Second {
		t.Fatalf("duration = %v, want 780s", plan.TotalDuration)
	}
	if plan.TotalDistance.Meters() != 2600 {
		t.Fatalf("distance = %v, want 2600m", plan.TotalDistance.Meters())
	}
}

// Fixed in-memory waypoint repository for provider-backed planner tests.
type stubWaypointRepo struct {
	waypoints map[string]domain.Waypoint
}

func (s *stubWaypointRepo) ListWaypoints(ctx context.Context) ([]*domain.Waypoint, error) {
	out := make([]*domain.Waypoint, 0, len(s.waypoints))
	for _, wp := range s.waypoints {
		w := wp
		out = append(out, &w)
	}
	return out, nil
}

func (s *stubWaypointRepo) GetWaypoints(ctx context.Context, names []string) (map[string]domain.Waypoint, error) {
	out := make(map[string]domain.Waypoint, len(names))
	for _, n := range names {
		if wp, ok := s.waypoints[n]; ok {
			out[n] = wp
		}
	}
	return out, nil
}

func (s *stubWaypointRepo) PutWaypoint(ctx context.Context, wp domain.Waypoint) error {
	s.waypoints[wp.Name] = wp
	return nil
}

func TestPlanRouteWithPlanarProvider(t *testing.T) {
	repo := &stubWaypointRepo{waypoints: map[string]domain.Waypoint{
		"DOCK": {Name: "DOCK", Position: planar.Zero()},
		"A":    {Name: "A", Position: planar.FromMeters(3, 4)},
		"B":    {Name: "B", Position: planar.FromMeters(0, 10)},
	}}

	// 1 m/s, no caches: durations equal straight-line meters.
	provider, err := distance.NewPlanarDistanceProvider(repo, nil, nil, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	totes := []*domain.Tote{
		{ToteID: 1, Waypoint: "A"},
		{ToteID: 2, Waypoint: "B"},
	}

	depart := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	plan, err := PlanRoute(context.Background(), 7, depart, "DOCK", totes, provider, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// |DOCK->A| = 5 (3-4-5 triangle), |DOCK->B| = 10, so A is visited first.
	if len(plan.Stops) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(plan.Stops))
	}
	if plan.Stops[0].Waypoint != "A" {
		t.Fatalf("expected first stop A, got %q", plan.Stops[0].Waypoint)
	}
	if plan.Stops[1].Waypoint != "B" {
		t.Fatalf("expected second stop B, got %q", plan.Stops[1].Waypoint)
	}

	wantTotal := planar.Distance(planar.Zero(), planar.FromMeters(3, 4)).
		Add(planar.Distance(planar.FromMeters(3, 4), planar.FromMeters(0, 10)))
	if plan.TotalDistance.Meters() != wantTotal.Meters() {
		t.Fatalf("distance = %v, want %v", plan.TotalDistance.Meters(), wantTotal.Meters())
	}
}

func TestAssignTotesByDistance(t *testing.T) {
	robots := []*domain.Robot{
		domain.NewRobot(1, 4, "DOCK"),
		domain.NewRobot(2, 4, "DOCK"),
	}

	totesByWaypoint := map[string][]*domain.Tote{
		"NEAR": {{ToteID: 1, Waypoint: "NEAR"}},
		"MID":  {{ToteID: 2, Waypoint: "MID"}},
		"FAR":  {{ToteID: 3, Waypoint: "FAR"}},
	}

	distances := map[string]ports.DistanceResult{
		"NEAR": {Distance: mustParse(t, "3,4").Magnitude()},
		"MID":  {Distance: mustParse(t, "0,50").Magnitude()},
		"FAR":  {Distance: mustParse(t, "80,60").Magnitude()},
	}

	waypoints := []string{"FAR", "NEAR", "MID"}

	if err := AssignTotesByDistance(robots, totesByWaypoint, distances, waypoints); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Two nearest waypoints band onto robot 1, the farthest onto robot 2.
	if len(robots[0].Totes) != 2 {
		t.Fatalf("robot 1 totes = %d, want 2", len(robots[0].Totes))
	}
	if len(robots[1].Totes) != 1 {
		t.Fatalf("robot 2 totes = %d, want 1", len(robots[1].Totes))
	}
	if robots[1].Totes[0].ToteID != 3 {
		t.Fatalf("robot 2 carries tote %d, want 3", robots[1].Totes[0].ToteID)
	}
}

func mustParse(t *testing.T, text string) planar.Displacement {
	t.Helper()
	d, err := planar.Parse(text)
	if err != nil {
		t.Fatalf("parse %q: %v", text, err)
	}
	return d
}
