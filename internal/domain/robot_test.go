package domain

import (
	"testing"
	"time"

	"agv-route-service/internal/measure"
)

func TestRobotApplyPlan(t *testing.T) {
	// build test data
	tote1 := &Tote{ToteID: 1, Waypoint: "A"}
	tote2 := &Tote{ToteID: 2, Waypoint: "B"}
	tote3 := &Tote{ToteID: 3, Waypoint: "C"}

	robot := &Robot{
		RobotID:  1,
		Capacity: 3,
		Totes:    []*Tote{tote1, tote2, tote3},
	}

	departAt := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	plan := RoutePlan{
		RobotID:  1,
		DepartAt: departAt,
		Stops: []RouteStop{
			{
				Waypoint: "A",
				ArriveAt: departAt.Add(10 * time.Minute),
				ToteIDs:  []int{1},
			},
			{
				Waypoint: "B",
				ArriveAt: departAt.Add(20 * time.Minute),
				ToteIDs:  []int{2},
			},
		},
		TotalDistance: measure.FromMeters(1800),
		TotalDuration: 20 * time.Minute,
	}

	// call the method under test
	err := robot.ApplyPlan(&plan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// verify behavior
	for _, tote := range robot.Totes {
		if tote.LoadedAt == nil {
			t.Errorf("tote %d LoadedAt is nil", tote.ToteID)
			continue
		}

		if !tote.LoadedAt.Equal(departAt) {
			t.Errorf(
				"tote %d LoadedAt = %v, want %v",
				tote.ToteID,
				*tote.LoadedAt,
				departAt,
			)
		}
	}

	if tote1.DeliveredAt == nil || !tote1.DeliveredAt.Equal(departAt.Add(10*time.Minute)) {
		t.Errorf("tote1 DeliveredAt incorrect: %v", tote1.DeliveredAt)
	}

	if tote2.DeliveredAt == nil || !tote2.DeliveredAt.Equal(departAt.Add(20*time.Minute)) {
		t.Errorf("tote2 DeliveredAt incorrect: %v", tote2.DeliveredAt)
	}

	if tote3.DeliveredAt != nil {
		t.Errorf("tote3 should not be delivered, got %v", tote3.DeliveredAt)
	}
}

func TestRobotLoadRespectsCapacity(t *testing.T) {
	robot := NewRobot(1, 2, "DOCK")

	if err := robot.LoadMultiple([]*Tote{{ToteID: 1}, {ToteID: 2}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := robot.Load(&Tote{ToteID: 3}); err == nil {
		t.Fatal("expected capacity error, got nil")
	}

	robot.Clear()
	if len(robot.Totes) != 0 {
		t.Fatalf("expected empty robot after Clear, got %d totes", len(robot.Totes))
	}
}

func TestRobotApplyPlanRejectsMismatchedRobot(t *testing.T) {
	robot := NewRobot(1, 2, "DOCK")
	plan := &RoutePlan{RobotID: 2}

	if err := robot.ApplyPlan(plan); err == nil {
		t.Fatal("expected error for mismatched robot id, got nil")
	}
}
