package domain

import "agv-route-service/internal/planar"

// A surveyed position on the warehouse floor, expressed as a planar
// displacement from the dock origin. Waypoint names are the keys used
// throughout routing, caching and persistence.
type Waypoint struct {
	Name     string
	Position planar.Displacement
}
