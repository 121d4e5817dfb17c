package dto

// CreateWaypointRequest accepts a position either as displacement text
// ("<x>,<y>" in meters) or as an x/y pair with an explicit unit.
type CreateWaypointRequest struct {
	Name     string   `json:"name"`
	Position string   `json:"position,omitempty"`
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Unit     string   `json:"unit,omitempty"` // "m", "cm" or "mm"; defaults to "m"
}

type WaypointResponse struct {
	Name     string  `json:"name"`
	Position string  `json:"position"`
	XMeters  float64 `json:"x_meters"`
	YMeters  float64 `json:"y_meters"`
}

type ListWaypointsResponse struct {
	Waypoints []WaypointResponse `json:"waypoints"`
}

// DistanceResponse exposes the same leg in all three supported units.
type DistanceResponse struct {
	From            string  `json:"from"`
	To              string  `json:"to"`
	Meters          float64 `json:"meters"`
	Centimeters     float64 `json:"centimeters"`
	Millimeters     float64 `json:"millimeters"`
	DurationSeconds int     `json:"duration_seconds"`
}
