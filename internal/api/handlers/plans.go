package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"agv-route-service/internal/api/dto"
	"agv-route-service/internal/ports"
	"agv-route-service/internal/services"
)

type PlanHandler struct {
	Repo        ports.ToteRepository
	Provider    ports.DistanceProvider
	DefaultDock string
}

// Plan orchestrates tote assignment and route planning for all robots.
// It coordinates repository access, assignment heuristics, and route computation.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	dock := strings.TrimSpace(req.Dock)
	if dock == "" {
		dock = strings.TrimSpace(h.DefaultDock)
	}
	if dock == "" {
		writeError(w, r, http.StatusBadRequest, "dock is required")
		return
	}

	robotCount := req.RobotCount
	if robotCount == 0 {
		robotCount = 3
	}
	if robotCount < 1 || robotCount > 10 {
		writeError(w, r, http.StatusBadRequest, "robot_count must be between 1 and 10")
		return
	}

	robotCap := req.RobotCapacity
	if robotCap == 0 {
		robotCap = 16
	}
	if robotCap < 1 || robotCap > 100 {
		writeError(w, r, http.StatusBadRequest, "robot_capacity must be between 1 and 100")
		return
	}

	depart := time.Now()
	if req.DepartAt != nil {
		depart = *req.DepartAt
	}

	svcReq := services.PlanDeliveriesRequest{
		Dock:          dock,
		RobotCount:    robotCount,
		RobotCapacity: robotCap,
		DepartAt:      depart,
		ReturnToDock:  req.ReturnToDock,
	}

	plans, err := services.PlanDeliveries(r.Context(), svcReq, h.Repo, h.Provider)
	if err != nil {
		log.Printf("plan deliveries failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListPlanResponse{Plans: make([]dto.PlanResponse, 0, len(plans))}
	for _, p := range plans {
		stops := make([]dto.PlanStopResponse, 0, len(p.Stops))
		for _, s := range p.Stops {
			stops = append(stops, dto.PlanStopResponse{
				Waypoint: s.Waypoint,
				ArriveAt: s.ArriveAt,
				ToteIDs:  s.ToteIDs,
			})
		}

		res.Plans = append(res.Plans, dto.PlanResponse{
			RobotID:              p.RobotID,
			DepartAt:             p.DepartAt,
			TotalDistanceMeters:  p.TotalDistance.Meters(),
			TotalDurationSeconds: int(p.TotalDuration / time.Second),
			Stops:                stops,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
