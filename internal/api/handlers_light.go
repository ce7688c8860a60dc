package api

import (
	"net/http"
	"strings"

	"github.com/filippobenozzi/algodomo-bridge/internal/entity"
	"github.com/filippobenozzi/algodomo-bridge/internal/gateway"
	"github.com/filippobenozzi/algodomo-bridge/internal/protocol"
	"github.com/filippobenozzi/algodomo-bridge/internal/status"
	"github.com/filippobenozzi/algodomo-bridge/internal/store"
)

func (s *Server) handleCmdLight(w http.ResponseWriter, r *http.Request) {
	ref, ok := parseRef(r, "relay")
	if !ok {
		writeBadRequest(w)
		return
	}
	action := strings.ToLower(r.URL.Query().Get("action"))
	actionCode, err := protocol.LightActionCode(action)
	if err != nil {
		writeBadRequest(w)
		return
	}

	cfg := s.configStore.Get()
	light, err := entity.ResolveLight(cfg, ref)
	if err != nil {
		writeNotFound(w)
		return
	}

	command, err := protocol.RelayCommand(light.Relay)
	if err != nil {
		writeBadRequest(w)
		return
	}

	settings := s.gatewaySettings()

	s.locks.Lock(light.Address)
	defer s.locks.Unlock(light.Address)

	payload := protocol.Encode(light.Address, command, int(actionCode))
	_, txErr := gateway.Transact(r.Context(), settings, payload, gateway.FrameOptions())
	s.logger.Transaction(light.Address, "light", txErr)
	if txErr != nil {
		writeGatewayError(w, txErr)
		return
	}

	// Best-effort refresh so the caller and subsequent /api/status reflect
	// the new relay state; a poll failure here does not fail the command,
	// but the light inference rule still derives a value from the action
	// alone so the state is never left stale.
	if pollErr := s.aggregator.PollUnlocked(r.Context(), settings, light.Address); pollErr != nil {
		previous := s.stateStore.Snapshot().Lights[light.ID].On
		on := status.InferLightOn(false, false, previous, action)
		s.stateStore.PutLight(store.DerivedLightState{ID: light.ID, On: on, UpdatedAt: protocol.NowMillis()})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":     true,
		"entity": map[string]any{"id": light.ID, "address": light.Address, "relay": light.Relay},
		"action": action,
	})
}
