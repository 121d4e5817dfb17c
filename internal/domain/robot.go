package domain

import (
	"fmt"
	"time"
)

// Delivery robot aggregate holding totes and producing/applying RoutePlans.
type Robot struct {
	RobotID  int
	Capacity int
	Dock     string
	DepartAt *time.Time
	Totes    []*Tote
}

func NewRobot(id int, capacity int, dock string) *Robot {
	return &Robot{
		RobotID:  id,
		Capacity: capacity,
		Dock:     dock,
	}
}

// Load a single tote onto the robot.
func (r *Robot) Load(tote *Tote) error {
	if len(r.Totes) >= r.Capacity {
		return fmt.Errorf("load robot: robot %d is at full capacity (capacity=%d)", r.RobotID, r.Capacity)
	}
	r.Totes = append(r.Totes, tote)
	return nil
}

// Load multiple totes onto the robot.
func (r *Robot) LoadMultiple(totes []*Tote) error {
	for _, tote := range totes {
		if err := r.Load(tote); err != nil {
			return err
		}
	}

	return nil
}

// Unload all totes from the robot.
func (r *Robot) Clear() {
	r.Totes = nil
}

// ApplyPlan stamps loading and delivery times onto the carried totes.
// Every loaded tote is marked loaded at departure; totes named by a stop
// are marked delivered at that stop's arrival time. Totes whose waypoint
// never appears in the plan keep a nil DeliveredAt.
func (r *Robot) ApplyPlan(plan *RoutePlan) error {
	if plan == nil {
		return fmt.Errorf("apply plan: robot %d: plan must be non-nil", r.RobotID)
	}
	if plan.RobotID != r.RobotID {
		return fmt.Errorf("apply plan: plan for robot %d applied to robot %d", plan.RobotID, r.RobotID)
	}

	depart := plan.DepartAt
	r.DepartAt = &depart

	for _, tote := range r.Totes {
		loadedAt := depart
		tote.LoadedAt = &loadedAt
	}

	delivered := make(map[int]time.Time)
	for _, stop := range plan.Stops {
		for _, id := range stop.ToteIDs {
			delivered[id] = stop.ArriveAt
		}
	}

	for _, tote := range r.Totes {
		if at, ok := delivered[tote.ToteID]; ok {
			arriveAt := at
			tote.DeliveredAt = &arriveAt
		}
	}

	return nil
}
