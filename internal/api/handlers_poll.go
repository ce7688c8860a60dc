package api

import (
	"net/http"

	"github.com/filippobenozzi/algodomo-bridge/internal/gateway"
	"github.com/filippobenozzi/algodomo-bridge/internal/protocol"
)

func (s *Server) handleCmdPoll(w http.ResponseWriter, r *http.Request) {
	address, ok := queryInt(r, "address")
	if !ok {
		writeBadRequest(w)
		return
	}

	settings := s.gatewaySettings()

	s.locks.Lock(address)
	defer s.locks.Unlock(address)

	payload := protocol.Encode(address, protocol.CmdPoll)
	reply, txErr := gateway.Transact(r.Context(), settings, payload, gateway.FrameOptions())
	s.logger.Transaction(address, "poll", txErr)
	if txErr != nil {
		writeGatewayError(w, txErr)
		return
	}

	frame, err := protocol.Decode(reply)
	if err != nil {
		writeGatewayError(w, err)
		return
	}

	snap := protocol.DecodeSnapshot(address, frame, protocol.NowMillis(), protocol.Hex(reply))
	s.aggregator.ApplySnapshot(snap)

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"snapshot": snap,
	})
}
