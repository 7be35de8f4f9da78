package railbook

import (
	"net/http"

	"github.com/railbook/itinerary-engine/internal"
)

type healthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Time: internal.Iso8601Now()})
}
