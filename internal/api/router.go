package api

import (
	"net/http"

	"agv-route-service/internal/api/handlers"
	"agv-route-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	totes ports.ToteRepository,
	waypoints ports.WaypointRepository,
	provider ports.DistanceProvider,
	dock string,
) http.Handler {
	mux := http.NewServeMux()

	toteHandler := &handlers.ToteHandler{Repo: totes}
	waypointHandler := &handlers.WaypointHandler{Repo: waypoints}
	distanceHandler := &handlers.DistanceHandler{Provider: provider}
	planHandler := &handlers.PlanHandler{
		Repo:        totes,
		Provider:    provider,
		DefaultDock: dock,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/totes", toteHandler.List)
	mux.HandleFunc("/waypoints", waypointHandler.Handle)
	mux.HandleFunc("/distance", distanceHandler.Get)
	mux.HandleFunc("/plans", planHandler.Plan)

	return loggingMiddleware(mux)
}
