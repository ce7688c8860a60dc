package api

import (
	"encoding/hex"
	"net/http"

	"github.com/filippobenozzi/algodomo-bridge/internal/gateway"
)

// handleCmdProgramAddress transmits a single byte equal to address to
// program a freshly-wired board, and waits for a single-byte acknowledgement
// in raw mode (this handshake predates the framed protocol and carries no
// start/end markers).
func (s *Server) handleCmdProgramAddress(w http.ResponseWriter, r *http.Request) {
	address, ok := queryInt(r, "address")
	if !ok || address < 0 || address > 254 {
		writeBadRequest(w)
		return
	}

	settings := s.gatewaySettings()

	s.locks.Lock(address)
	defer s.locks.Unlock(address)

	reply, err := gateway.Transact(r.Context(), settings, []byte{byte(address)}, gateway.RawOptions(1))
	s.logger.Transaction(address, "program-address", err)
	if err != nil {
		writeGatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":     true,
		"ack":    reply[0],
		"ackHex": hex.EncodeToString(reply),
	})
}
