package status

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/filippobenozzi/algodomo-bridge/internal/gateway"
	"github.com/filippobenozzi/algodomo-bridge/internal/logging"
	"github.com/filippobenozzi/algodomo-bridge/internal/protocol"
	"github.com/filippobenozzi/algodomo-bridge/internal/store"
)

// interPollDelay separates consecutive board polls during a refresh sweep,
// so a large installation does not flood the gateway with back-to-back
// connections.
const interPollDelay = 50 * time.Millisecond

// LightView is a light entity as rendered in a status response. On is nil
// when the light's state is unknown (no snapshot and no prior command).
type LightView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Room string `json:"room"`
	On   *bool  `json:"on"`
}

// ShutterView is a shutter entity as rendered in a status response.
type ShutterView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Room     string `json:"room"`
	Position string `json:"position"`
}

// ThermostatView is a thermostat entity as rendered in a status response.
// Setpoint is the last commanded value (falling back to the configured
// setpoint until one has been commanded); BoardSetpoint is whatever the
// board itself last reported on a poll, reported separately since the two
// can disagree.
type ThermostatView struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Room          string  `json:"room"`
	Temperature   float64 `json:"temperature"`
	Setpoint      float64 `json:"setpoint"`
	BoardSetpoint float64 `json:"boardSetpoint"`
}

// InputView is an opto input as rendered in a status response. Active is
// nil when no snapshot has ever been recorded for the input's board.
type InputView struct {
	BoardID string `json:"boardId"`
	Index   int    `json:"index"`
	Name    string `json:"name"`
	Room    string `json:"room"`
	Active  *bool  `json:"active"`
}

// RoomGroup bundles every entity sharing the same room, for display.
type RoomGroup struct {
	Room        string           `json:"room"`
	Lights      []LightView      `json:"lights"`
	Shutters    []ShutterView    `json:"shutters"`
	Thermostats []ThermostatView `json:"thermostats"`
	Inputs      []InputView      `json:"inputs"`
}

// Result is a full status response.
type Result struct {
	Rooms         []RoomGroup       `json:"rooms"`
	Refreshed     bool              `json:"refreshed"`
	UpdatedAt     int64             `json:"updatedAt"`
	RefreshErrors map[string]string `json:"refreshErrors,omitempty"`
}

// Aggregator builds Result values from the current configuration and state,
// optionally refreshing state with a live poll of every distinct board
// address first.
type Aggregator struct {
	configStore *store.ConfigStore
	stateStore  *store.StateStore
	locks       *gateway.AddressLocks
	logger      *logging.Logger

	refreshGroup singleflight.Group
}

// New builds an Aggregator.
func New(configStore *store.ConfigStore, stateStore *store.StateStore, locks *gateway.AddressLocks, logger *logging.Logger) *Aggregator {
	return &Aggregator{
		configStore: configStore,
		stateStore:  stateStore,
		locks:       locks,
		logger:      logger,
	}
}

// Get builds a Result from the current state without touching the bus.
func (a *Aggregator) Get() Result {
	cfg := a.configStore.Get()
	st := a.stateStore.Snapshot()
	return buildResult(cfg, st, false, nil)
}

// Refresh polls every distinct board address in sequence, updates the state
// store with what it learns, then builds a Result. Concurrent Refresh calls
// collapse into a single bus sweep via singleflight, keyed on the gateway
// address so settings changes mid-flight never mix results from two
// configurations.
func (a *Aggregator) Refresh(ctx context.Context, settings gateway.Settings) Result {
	key := settings.Addr()
	v, _, _ := a.refreshGroup.Do(key, func() (interface{}, error) {
		return a.refreshOnce(ctx, settings), nil
	})
	return v.(Result)
}

func (a *Aggregator) refreshOnce(ctx context.Context, settings gateway.Settings) Result {
	cfg := a.configStore.Get()
	addresses := distinctAddresses(cfg)

	refreshErrors := map[string]string{}
	for i, address := range addresses {
		if err := ctx.Err(); err != nil {
			refreshErrors[strconv.Itoa(address)] = err.Error()
			break
		}
		if err := a.pollAddress(ctx, settings, address); err != nil {
			// pollAddressUnlocked already logged the transaction failure via
			// a.logger.Transaction; this just records it for the response.
			refreshErrors[strconv.Itoa(address)] = err.Error()
		}
		if i < len(addresses)-1 {
			select {
			case <-ctx.Done():
			case <-time.After(interPollDelay):
			}
		}
	}

	st := a.stateStore.Snapshot()
	return buildResult(cfg, st, true, refreshErrors)
}

func (a *Aggregator) pollAddress(ctx context.Context, settings gateway.Settings, address int) error {
	a.locks.Lock(address)
	defer a.locks.Unlock(address)
	return a.pollAddressUnlocked(ctx, settings, address)
}

// PollUnlocked transacts a poll with address and applies the resulting
// snapshot to the state store, same as a refresh sweep's per-address step,
// but without acquiring address's lock. Callers that already hold the lock
// (a command handler doing a best-effort post-command poll) must use this
// instead of Refresh/pollAddress to avoid a self-deadlock.
func (a *Aggregator) PollUnlocked(ctx context.Context, settings gateway.Settings, address int) error {
	return a.pollAddressUnlocked(ctx, settings, address)
}

func (a *Aggregator) pollAddressUnlocked(ctx context.Context, settings gateway.Settings, address int) error {
	payload := protocol.Encode(address, protocol.CmdPoll)
	reply, err := gateway.Transact(ctx, settings, payload, gateway.FrameOptions())
	a.logger.Transaction(address, "poll", err)
	if err != nil {
		return fmt.Errorf("poll address %d: %w", address, err)
	}

	frame, err := protocol.Decode(reply)
	if err != nil {
		return fmt.Errorf("poll address %d: %w", address, err)
	}

	snap := protocol.DecodeSnapshot(address, frame, protocol.NowMillis(), protocol.Hex(reply))
	a.applySnapshot(snap)
	return nil
}

// ApplySnapshot derives per-entity state from a board snapshot and writes
// it into the state store. Exposed for callers that decode a snapshot
// themselves outside of a poll sweep (the standalone poll command handler).
func (a *Aggregator) ApplySnapshot(snap protocol.Snapshot) {
	a.applySnapshot(snap)
}

// applySnapshot derives per-entity state from a board snapshot and writes
// it into the state store, and records the raw snapshot itself so a later
// status read can compute per-input active state without a fresh poll.
func (a *Aggregator) applySnapshot(snap protocol.Snapshot) {
	cfg := a.configStore.Get()

	a.stateStore.PutBoardSnapshot(snap.Address, store.BoardSnapshot{
		Address:     snap.Address,
		BoardType:   snap.BoardType,
		Release:     snap.Release,
		OutputMask:  snap.OutputMask,
		InputMask:   snap.InputMask,
		Dimmer:      snap.Dimmer,
		Temperature: snap.Temperature,
		PowerKw:     snap.PowerKw,
		UpdatedAt:   snap.UpdatedAt,
		FrameHex:    snap.FrameHex,
	})

	for _, l := range cfg.Lights {
		if l.Address != snap.Address {
			continue
		}
		on := InferLightOn(true, snap.Outputs[channelKey(l.Relay)], nil, "")
		a.stateStore.PutLight(store.DerivedLightState{ID: l.ID, On: on, UpdatedAt: snap.UpdatedAt})
	}

	for _, th := range cfg.Thermostats {
		if th.Address != snap.Address {
			continue
		}
		// Setpoint is the last commanded value; a poll must never overwrite
		// it, only refresh the board's own reported BoardSetpoint.
		derived := a.stateStore.Thermostat(th.ID)
		derived.ID = th.ID
		derived.Temperature = snap.Temperature
		derived.BoardSetpoint = float64(snap.Setpoint)
		derived.UpdatedAt = snap.UpdatedAt
		a.stateStore.PutThermostat(derived)
	}
}

func channelKey(n int) string {
	return strconv.Itoa(n)
}

// distinctAddresses collects every board/light/shutter/thermostat address
// referenced by cfg, sorted ascending, deduplicated.
func distinctAddresses(cfg store.Configuration) []int {
	seen := map[int]struct{}{}
	add := func(addr int) {
		seen[addr] = struct{}{}
	}
	for _, b := range cfg.Boards {
		add(b.Address)
	}
	for _, l := range cfg.Lights {
		add(l.Address)
	}
	for _, s := range cfg.Shutters {
		add(s.Address)
	}
	for _, th := range cfg.Thermostats {
		add(th.Address)
	}

	out := make([]int, 0, len(seen))
	for addr := range seen {
		out = append(out, addr)
	}
	sort.Ints(out)
	return out
}

// buildResult groups every configured entity by room, case-sensitive
// sorted, using whatever derived state is currently in st. Entities with no
// recorded state report an unknown (nil) light state, an "unknown" shutter
// position, and a zero temperature with the configured setpoint.
func buildResult(cfg store.Configuration, st store.State, refreshed bool, refreshErrors map[string]string) Result {
	rooms := map[string]*RoomGroup{}
	order := []string{}

	group := func(room string) *RoomGroup {
		g, ok := rooms[room]
		if !ok {
			g = &RoomGroup{Room: room}
			rooms[room] = g
			order = append(order, room)
		}
		return g
	}

	for _, l := range cfg.Lights {
		derived := st.Lights[l.ID]
		g := group(l.Room)
		g.Lights = append(g.Lights, LightView{ID: l.ID, Name: l.Name, Room: l.Room, On: derived.On})
	}
	for _, s := range cfg.Shutters {
		derived := st.Shutters[s.ID]
		position := derived.Position
		if position == "" {
			position = "unknown"
		}
		g := group(s.Room)
		g.Shutters = append(g.Shutters, ShutterView{ID: s.ID, Name: s.Name, Room: s.Room, Position: position})
	}
	for _, th := range cfg.Thermostats {
		derived := st.Thermostats[th.ID]
		setpoint := derived.Setpoint
		if setpoint == 0 {
			setpoint = th.Setpoint
		}
		g := group(th.Room)
		g.Thermostats = append(g.Thermostats, ThermostatView{
			ID: th.ID, Name: th.Name, Room: th.Room,
			Temperature: derived.Temperature, Setpoint: setpoint, BoardSetpoint: derived.BoardSetpoint,
		})
	}
	for _, b := range cfg.Boards {
		snap, hasSnap := st.BoardSnapshots[strconv.Itoa(b.Address)]
		for _, in := range b.Inputs {
			var active *bool
			if hasSnap {
				v := protocol.IsInputActive(snap.InputMask, in.Index)
				active = &v
			}
			g := group(in.Room)
			g.Inputs = append(g.Inputs, InputView{
				BoardID: b.ID, Index: in.Index, Name: in.Name, Room: in.Room, Active: active,
			})
		}
	}

	sort.Strings(order)
	result := Result{Rooms: make([]RoomGroup, 0, len(order)), Refreshed: refreshed, UpdatedAt: st.UpdatedAt}
	for _, room := range order {
		result.Rooms = append(result.Rooms, *rooms[room])
	}
	if len(refreshErrors) > 0 {
		result.RefreshErrors = refreshErrors
	}
	return result
}
