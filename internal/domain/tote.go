package domain

import "time"

// Represents a single delivery unit handled by the system.
// A Tote has a unique identifier and a single destination waypoint.
// Handling timestamps are populated during simulation after a route
// has been planned and applied.
type Tote struct {
	ToteID      int
	Waypoint    string
	LoadedAt    *time.Time
	DeliveredAt *time.Time
}
