package dto

import "time"

type PlanRequest struct {
	Dock          string     `json:"dock"`
	DepartAt      *time.Time `json:"depart_at"`
	ReturnToDock  bool       `json:"return_to_dock"`
	RobotCount    int        `json:"robot_count"`
	RobotCapacity int        `json:"robot_capacity"`
}

type PlanStopResponse struct {
	Waypoint string    `json:"waypoint"`
	ArriveAt time.Time `json:"arrive_at"`
	ToteIDs  []int     `json:"tote_ids"`
}

type PlanResponse struct {
	RobotID              int                `json:"robot_id"`
	DepartAt             time.Time          `json:"depart_at"`
	TotalDistanceMeters  float64            `json:"total_distance_meters"`
	TotalDurationSeconds int                `json:"total_duration_seconds"`
	Stops                []PlanStopResponse `json:"stops"`
}

type ListPlanResponse struct {
	Plans []PlanResponse `json:"plans"`
}
