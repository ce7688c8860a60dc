package store

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// flushDelay is the coalescing window for state.json writes: bursts of
// updates within this window collapse into a single write.
const flushDelay = 200 * time.Millisecond

// DerivedLightState is the last-known state of a light entity, inferred
// from polls and from the last command issued to it. On is nil when no
// snapshot or command has ever resolved the light's on/off state.
type DerivedLightState struct {
	ID        string `json:"id"`
	On        *bool  `json:"on"`
	UpdatedAt int64  `json:"updatedAt"`
}

// DerivedShutterState is the last-known state of a shutter entity.
type DerivedShutterState struct {
	ID        string `json:"id"`
	Position  string `json:"position"`
	UpdatedAt int64  `json:"updatedAt"`
}

// DerivedThermostatState is the last-known state of a thermostat entity.
// Setpoint is the last value commanded through the API (zero until one has
// been commanded; the status view then shows the configured setpoint); BoardSetpoint
// is whatever the board itself last reported on a poll. The two are kept
// distinct because a poll can lag or disagree with the last command.
type DerivedThermostatState struct {
	ID            string  `json:"id"`
	Temperature   float64 `json:"temperature"`
	Setpoint      float64 `json:"setpoint"`
	BoardSetpoint float64 `json:"boardSetpoint"`
	UpdatedAt     int64   `json:"updatedAt"`
}

// BoardSnapshot is the decoded result of the most recent poll for one board
// address, persisted so /api/status can report input state and survive a
// restart without forcing an immediate re-poll.
type BoardSnapshot struct {
	Address     int     `json:"address"`
	BoardType   byte    `json:"boardType"`
	Release     byte    `json:"release"`
	OutputMask  byte    `json:"outputMask"`
	InputMask   byte    `json:"inputMask"`
	Dimmer      byte    `json:"dimmer"`
	Temperature float64 `json:"temperature"`
	PowerKw     float64 `json:"powerKw"`
	UpdatedAt   int64   `json:"updatedAt"`
	FrameHex    string  `json:"frameHex"`
}

// State is the full derived, eventually-consistent snapshot of the bus: the
// three mappings from entity id to derived state, the mapping from address
// (as a decimal string, for JSON object-key compatibility) to the last
// decoded BoardSnapshot, and a global UpdatedAt marking the last time any of
// it changed.
type State struct {
	Lights         map[string]DerivedLightState      `json:"lights"`
	Shutters       map[string]DerivedShutterState     `json:"shutters"`
	Thermostats    map[string]DerivedThermostatState  `json:"thermostats"`
	BoardSnapshots map[string]BoardSnapshot           `json:"boardSnapshots"`
	UpdatedAt      int64                              `json:"updatedAt"`
}

func emptyState() State {
	return State{
		Lights:         map[string]DerivedLightState{},
		Shutters:       map[string]DerivedShutterState{},
		Thermostats:    map[string]DerivedThermostatState{},
		BoardSnapshots: map[string]BoardSnapshot{},
	}
}

// StateStore owns state.json. Updates are applied in memory immediately and
// flushed to disk on a debounced timer, so a burst of polls during a single
// status refresh produces one write instead of one per address.
type StateStore struct {
	path string

	mu    sync.Mutex
	state State
	timer *time.Timer
	dirty bool
}

// LoadStateStore loads state.json from path. A missing file yields an empty
// State rather than an error, since state.json is derived and disposable.
func LoadStateStore(path string) (*StateStore, error) {
	s := &StateStore{path: path, state: emptyState()}

	var loaded State
	err := readJSON(path, &loaded)
	if err == nil {
		if loaded.Lights != nil {
			s.state.Lights = loaded.Lights
		}
		if loaded.Shutters != nil {
			s.state.Shutters = loaded.Shutters
		}
		if loaded.Thermostats != nil {
			s.state.Thermostats = loaded.Thermostats
		}
		if loaded.BoardSnapshots != nil {
			s.state.BoardSnapshots = loaded.BoardSnapshots
		}
		s.state.UpdatedAt = loaded.UpdatedAt
		return s, nil
	}
	if os.IsNotExist(err) {
		return s, nil
	}
	return s, nil
}

// Snapshot returns a copy of the current state.
func (s *StateStore) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

// PutLight records a light's derived state and schedules a flush.
func (s *StateStore) PutLight(v DerivedLightState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Lights[v.ID] = v
	s.scheduleFlush()
}

// PutShutter records a shutter's derived state and schedules a flush.
func (s *StateStore) PutShutter(v DerivedShutterState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Shutters[v.ID] = v
	s.scheduleFlush()
}

// PutThermostat records a thermostat's derived state and schedules a flush.
func (s *StateStore) PutThermostat(v DerivedThermostatState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Thermostats[v.ID] = v
	s.scheduleFlush()
}

// Thermostat returns the currently recorded derived state for a thermostat
// id, or the zero value if nothing has been recorded yet. Callers updating
// one field (the commanded setpoint, say) read this first so they don't
// clobber the other fields already on record.
func (s *StateStore) Thermostat(id string) DerivedThermostatState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Thermostats[id]
}

// PutBoardSnapshot records the latest decoded poll for address and
// schedules a flush.
func (s *StateStore) PutBoardSnapshot(address int, v BoardSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.BoardSnapshots[strconv.Itoa(address)] = v
	s.scheduleFlush()
}

// BoardSnapshot returns the last decoded poll recorded for address, if any.
func (s *StateStore) BoardSnapshot(address int) (BoardSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.state.BoardSnapshots[strconv.Itoa(address)]
	return v, ok
}

// scheduleFlush must be called with mu held. It arms a single timer when
// none is pending; later Put* calls ride the pending flush without
// resetting it, so a burst within flushDelay produces one write.
func (s *StateStore) scheduleFlush() {
	s.state.UpdatedAt = time.Now().UnixMilli()
	s.dirty = true
	if s.timer != nil {
		return
	}
	s.timer = time.AfterFunc(flushDelay, s.flush)
}

func (s *StateStore) flush() {
	s.mu.Lock()
	if !s.dirty {
		s.timer = nil
		s.mu.Unlock()
		return
	}
	snap := cloneState(s.state)
	s.dirty = false
	s.timer = nil
	s.mu.Unlock()

	// Best-effort: a failed state.json write is not fatal, state.json is
	// derived and will be rewritten on the next poll.
	_ = writeJSONAtomic(s.path, snap)
}

// Flush forces any pending write to complete synchronously, used on
// graceful shutdown so the last poll is not lost.
func (s *StateStore) Flush() error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	snap := cloneState(s.state)
	s.dirty = false
	s.mu.Unlock()

	return writeJSONAtomic(s.path, snap)
}

func cloneState(s State) State {
	out := emptyState()
	for k, v := range s.Lights {
		out.Lights[k] = v
	}
	for k, v := range s.Shutters {
		out.Shutters[k] = v
	}
	for k, v := range s.Thermostats {
		out.Thermostats[k] = v
	}
	for k, v := range s.BoardSnapshots {
		out.BoardSnapshots[k] = v
	}
	out.UpdatedAt = s.UpdatedAt
	return out
}
