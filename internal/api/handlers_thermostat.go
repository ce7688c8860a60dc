package api

import (
	"math"
	"net/http"
	"strconv"

	"github.com/filippobenozzi/algodomo-bridge/internal/entity"
	"github.com/filippobenozzi/algodomo-bridge/internal/gateway"
	"github.com/filippobenozzi/algodomo-bridge/internal/protocol"
)

func (s *Server) handleCmdThermostat(w http.ResponseWriter, r *http.Request) {
	ref, ok := parseRef(r, "")
	if !ok {
		writeBadRequest(w)
		return
	}
	setStr := r.URL.Query().Get("set")
	set, err := strconv.ParseFloat(setStr, 64)
	if err != nil || math.IsNaN(set) || math.IsInf(set, 0) {
		writeBadRequest(w)
		return
	}

	cfg := s.configStore.Get()
	th, err := entity.ResolveThermostat(cfg, ref)
	if err != nil {
		writeNotFound(w)
		return
	}

	integerPart, tenth := splitSetpoint(set)

	settings := s.gatewaySettings()

	s.locks.Lock(th.Address)
	defer s.locks.Unlock(th.Address)

	payload := protocol.Encode(th.Address, protocol.CmdThermostat, integerPart, tenth)
	_, txErr := gateway.Transact(r.Context(), settings, payload, gateway.FrameOptions())
	s.logger.Transaction(th.Address, "thermostat", txErr)
	if txErr != nil {
		writeGatewayError(w, txErr)
		return
	}

	derived := s.stateStore.Thermostat(th.ID)
	derived.ID = th.ID
	derived.Setpoint = set
	derived.UpdatedAt = protocol.NowMillis()
	s.stateStore.PutThermostat(derived)

	// Best-effort poll so temperature/boardSetpoint reflect fresh wire state.
	_ = s.aggregator.PollUnlocked(r.Context(), settings, th.Address)

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":     true,
		"entity": map[string]any{"id": th.ID, "address": th.Address},
		"set":    set,
	})
}

// splitSetpoint splits a real setpoint into its integer part in [0,99] and
// tenth in [0,9], rounding the absolute magnitude to the nearest tenth, half
// away from zero. The sign is not transmissible on this wire, so a negative
// setpoint encodes its magnitude exactly like a positive one.
func splitSetpoint(set float64) (int, int) {
	magnitude := math.Abs(set)
	tenths := int(math.Floor(magnitude*10 + 0.5))
	integerPart := tenths / 10
	tenth := tenths % 10
	if integerPart > 99 {
		integerPart, tenth = 99, 9
	}
	return integerPart, tenth
}
