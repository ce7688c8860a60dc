package api

import (
	"net/http"

	"github.com/filippobenozzi/algodomo-bridge/internal/entity"
	"github.com/filippobenozzi/algodomo-bridge/internal/gateway"
	"github.com/filippobenozzi/algodomo-bridge/internal/protocol"
)

func (s *Server) handleCmdShutter(w http.ResponseWriter, r *http.Request) {
	ref, ok := parseRef(r, "channel")
	if !ok {
		writeBadRequest(w)
		return
	}
	action := r.URL.Query().Get("action")
	actionCode, err := protocol.ShutterActionCode(action)
	if err != nil {
		writeBadRequest(w)
		return
	}

	cfg := s.configStore.Get()
	shutter, err := entity.ResolveShutter(cfg, ref)
	if err != nil {
		writeNotFound(w)
		return
	}

	settings := s.gatewaySettings()

	s.locks.Lock(shutter.Address)
	defer s.locks.Unlock(shutter.Address)

	payload := protocol.Encode(shutter.Address, protocol.CmdShutter, shutter.Channel, int(actionCode))
	_, txErr := gateway.Transact(r.Context(), settings, payload, gateway.FrameOptions())
	s.logger.Transaction(shutter.Address, "shutter", txErr)
	if txErr != nil {
		writeGatewayError(w, txErr)
		return
	}

	s.stateStore.PutShutter(shutterDerivedState(shutter.ID, action))

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":     true,
		"entity": map[string]any{"id": shutter.ID, "address": shutter.Address, "channel": shutter.Channel},
		"action": action,
	})
}
