package dto

import "time"

type ToteResponse struct {
	ToteID      int        `json:"tote_id"`
	Waypoint    string     `json:"waypoint"`
	LoadedAt    *time.Time `json:"loaded_at"`
	DeliveredAt *time.Time `json:"delivered_at"`
}

type ListTotesResponse struct {
	Totes []ToteResponse `json:"totes"`
}
