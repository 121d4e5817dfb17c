package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"agv-route-service/internal/api/dto"
	"agv-route-service/internal/measure"
	"agv-route-service/internal/ports"
)

// DistanceHandler answers point-to-point distance queries between waypoints.
type DistanceHandler struct {
	Provider ports.DistanceProvider
}

func (h *DistanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	from := strings.TrimSpace(r.URL.Query().Get("from"))
	to := strings.TrimSpace(r.URL.Query().Get("to"))
	if from == "" || to == "" {
		writeError(w, r, http.StatusBadRequest, "from and to are required")
		return
	}

	result, err := h.Provider.GetDistance(r.Context(), from, to)
	if err != nil {
		log.Printf("get distance failed: from=%q to=%q err=%v", from, to, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toDistanceResponse(from, to, result.Distance, result.Duration))
}

func toDistanceResponse(from, to string, d measure.Length, dur time.Duration) dto.DistanceResponse {
	return dto.DistanceResponse{
		From:            from,
		To:              to,
		Meters:          d.Meters(),
		Centimeters:     d.Centimeters(),
		Millimeters:     d.Millimeters(),
		DurationSeconds: int(dur / time.Second),
	}
}
