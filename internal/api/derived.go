package api

import (
	"github.com/filippobenozzi/algodomo-bridge/internal/protocol"
	"github.com/filippobenozzi/algodomo-bridge/internal/store"
)

// shutterDerivedState records the last commanded action for a shutter, per
// DerivedShutterState in the data model (no post-poll for shutters).
func shutterDerivedState(id, action string) store.DerivedShutterState {
	return store.DerivedShutterState{ID: id, Position: action, UpdatedAt: protocol.NowMillis()}
}
