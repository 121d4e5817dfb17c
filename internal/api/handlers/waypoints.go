package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"agv-route-service/internal/api/dto"
	"agv-route-service/internal/domain"
	"agv-route-service/internal/planar"
	"agv-route-service/internal/ports"
)

// WaypointHandler exposes survey endpoints: listing the floor map and
// registering new waypoints.
type WaypointHandler struct {
	Repo ports.WaypointRepository
}

func (h *WaypointHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *WaypointHandler) list(w http.ResponseWriter, r *http.Request) {
	waypoints, err := h.Repo.ListWaypoints(r.Context())
	if err != nil {
		log.Printf("list waypoints failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListWaypointsResponse{
		Waypoints: make([]dto.WaypointResponse, 0, len(waypoints)),
	}
	for _, wp := range waypoints {
		x, y := wp.Position.Meters()
		res.Waypoints = append(res.Waypoints, dto.WaypointResponse{
			Name:     wp.Name,
			Position: wp.Position.String(),
			XMeters:  x,
			YMeters:  y,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *WaypointHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateWaypointRequest

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

	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "name is required")
		return
	}

	position, err := positionFromRequest(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	wp := domain.Waypoint{Name: name, Position: position}
	if err := h.Repo.PutWaypoint(r.Context(), wp); err != nil {
		log.Printf("put waypoint failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	x, y := position.Meters()
	writeJSON(w, r, http.StatusCreated, dto.WaypointResponse{
		Name:     name,
		Position: position.String(),
		XMeters:  x,
		YMeters:  y,
	})
}

// positionFromRequest accepts either displacement text or an x/y pair with
// an explicit unit, funneling both into the canonical meters constructor.
func positionFromRequest(req dto.CreateWaypointRequest) (planar.Displacement, error) {
	if strings.TrimSpace(req.Position) != "" {
		if req.X != nil || req.Y != nil {
			return planar.Displacement{}, errors.New("provide either position text or x/y, not both")
		}

		position, err := planar.Parse(req.Position)
		if err != nil {
			return planar.Displacement{}, errors.New("position must be two comma-separated numbers")
		}
		return position, nil
	}

	if req.X == nil || req.Y == nil {
		return planar.Displacement{}, errors.New("position or both x and y are required")
	}

	switch req.Unit {
	case "", "m":
		return planar.FromMeters(*req.X, *req.Y), nil
	case "cm":
		return planar.FromCentimeters(*req.X, *req.Y), nil
	case "mm":
		return planar.FromMillimeters(*req.X, *req.Y), nil
	default:
		return planar.Displacement{}, errors.New("unit must be one of m, cm, mm")
	}
}
