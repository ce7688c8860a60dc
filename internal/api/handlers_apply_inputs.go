package api

import (
	"net/http"

	"github.com/filippobenozzi/algodomo-bridge/internal/gateway"
	"github.com/filippobenozzi/algodomo-bridge/internal/protocol"
	"github.com/filippobenozzi/algodomo-bridge/internal/store"
)

type inputResult struct {
	Index int    `json:"index"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// handleCmdApplyInputs pushes every enabled input's programming to its
// board, one frame per input, in index order. An optional board=<id>
// and/or address=<n> filter narrows which boards are touched; with
// neither, every configured board is applied. A single input's failure
// never aborts the sweep — every enabled input is attempted, and the
// overall ok is the logical AND across all of them.
func (s *Server) handleCmdApplyInputs(w http.ResponseWriter, r *http.Request) {
	cfg := s.configStore.Get()
	q := r.URL.Query()
	boardID := q.Get("board")
	address, hasAddress := queryInt(r, "address")

	settings := s.gatewaySettings()
	overallOK := true
	var results []map[string]any

	for _, b := range cfg.Boards {
		if boardID != "" && b.ID != boardID {
			continue
		}
		if hasAddress && b.Address != address {
			continue
		}
		boardResults, boardOK := s.applyBoardInputs(r, settings, b)
		overallOK = overallOK && boardOK
		results = append(results, map[string]any{
			"board":  map[string]any{"id": b.ID, "address": b.Address},
			"inputs": boardResults,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":     overallOK,
		"boards": results,
	})
}

func (s *Server) applyBoardInputs(r *http.Request, settings gateway.Settings, b store.Board) ([]inputResult, bool) {
	s.locks.Lock(b.Address)
	defer s.locks.Unlock(b.Address)

	ok := true
	results := make([]inputResult, 0, len(b.Inputs))
	// normalizeBoard (raw.go) sorts Inputs by Index, so iterating them in the stored
	// order already applies them in index order.
	for _, in := range b.Inputs {
		if !in.Enabled {
			continue
		}
		payload := protocol.Encode(b.Address, protocol.CmdInputConfig, in.Index, int(in.G2), int(in.G3), int(in.G4), in.TargetAddress)
		_, err := gateway.Transact(r.Context(), settings, payload, gateway.FrameOptions())
		s.logger.Transaction(b.Address, "apply-inputs", err)
		if err != nil {
			ok = false
			results = append(results, inputResult{Index: in.Index, OK: false, Error: err.Error()})
			continue
		}
		results = append(results, inputResult{Index: in.Index, OK: true})
	}
	return results, ok
}
