package handlers

import (
	"log"
	"net/http"

	"agv-route-service/internal/api/dto"
	"agv-route-service/internal/ports"
)

// ToteHandler exposes read-only tote retrieval endpoints.
type ToteHandler struct {
	Repo ports.ToteRepository
}

func (h *ToteHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	totes, err := h.Repo.ListTotes(r.Context())
	if err != nil {
		log.Printf("list totes failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListTotesResponse{
		Totes: make([]dto.ToteResponse, 0, len(totes)),
	}
	for _, t := range totes {
		res.Totes = append(res.Totes, dto.ToteResponse{
			ToteID:      t.ToteID,
			Waypoint:    t.Waypoint,
			LoadedAt:    t.LoadedAt,
			DeliveredAt: t.DeliveredAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
