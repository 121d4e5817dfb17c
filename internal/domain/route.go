package domain

import (
	"time"

	"agv-route-service/internal/measure"
)

// Represents a single stop in a planned route.
// A RouteStop corresponds to arriving at a specific waypoint at a computed time,
// and dropping one or more totes associated with that waypoint.
type RouteStop struct {
	Waypoint string
	ArriveAt time.Time
	ToteIDs  []int
}

// Represents the planned route for a single robot.
// A RoutePlan is the output of a routing algorithm and describes the ordered
// sequence of drop stops, along with aggregate distance and duration metrics.
// It is immutable planning data and contains no side effects.
type RoutePlan struct {
	RobotID       int
	DepartAt      time.Time
	Stops         []RouteStop
	TotalDuration time.Duration
	TotalDistance measure.Length
}
