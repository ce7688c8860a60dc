package api

import (
	"net/http"

	"github.com/filippobenozzi/algodomo-bridge/internal/status"
)

// statusResponse is the wire shape of GET /api/status.
type statusResponse struct {
	OK            bool                `json:"ok"`
	UpdatedAt     int64               `json:"updatedAt"`
	RefreshErrors map[string]string   `json:"refreshErrors,omitempty"`
	Rooms         []status.RoomGroup  `json:"rooms"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var result status.Result
	if r.URL.Query().Get("refresh") == "1" {
		result = s.aggregator.Refresh(r.Context(), s.gatewaySettings())
	} else {
		result = s.aggregator.Get()
	}

	writeJSON(w, http.StatusOK, statusResponse{
		OK:            true,
		UpdatedAt:     result.UpdatedAt,
		RefreshErrors: result.RefreshErrors,
		Rooms:         result.Rooms,
	})
}
