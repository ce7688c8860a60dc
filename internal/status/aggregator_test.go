package status

import (
	"testing"

	"github.com/filippobenozzi/algodomo-bridge/internal/store"
)

func fixtureConfig() store.Configuration {
	return store.Configuration{
		Lights: []store.Light{
			{ID: "kitchen-light", Name: "Kitchen", Room: "Kitchen", Address: 3, Relay: 1},
			{ID: "hall-light", Name: "Hall", Room: "Hall", Address: 3, Relay: 2},
		},
		Shutters: []store.Shutter{
			{ID: "lounge-shutter", Name: "Lounge", Room: "Lounge", Address: 4, Channel: 1},
		},
		Thermostats: []store.Thermostat{
			{ID: "hall-thermostat", Name: "Hall Thermostat", Room: "Hall", Address: 5, Setpoint: 21},
		},
	}
}

func TestDistinctAddressesDedupesAndSorts(t *testing.T) {
	cfg := fixtureConfig()
	got := distinctAddresses(cfg)
	want := []int{3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestBuildResultGroupsByRoomSortedCaseSensitive(t *testing.T) {
	cfg := fixtureConfig()
	st := store.State{
		Lights:      map[string]store.DerivedLightState{},
		Shutters:    map[string]store.DerivedShutterState{},
		Thermostats: map[string]store.DerivedThermostatState{},
	}
	result := buildResult(cfg, st, false, nil)

	if len(result.Rooms) != 3 {
		t.Fatalf("expected 3 rooms, got %d: %+v", len(result.Rooms), result.Rooms)
	}
	names := []string{result.Rooms[0].Room, result.Rooms[1].Room, result.Rooms[2].Room}
	want := []string{"Hall", "Kitchen", "Lounge"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("room order = %v, want %v", names, want)
		}
	}
}

func TestBuildResultThermostatFallsBackToConfiguredSetpoint(t *testing.T) {
	cfg := fixtureConfig()
	st := store.State{
		Lights:      map[string]store.DerivedLightState{},
		Shutters:    map[string]store.DerivedShutterState{},
		Thermostats: map[string]store.DerivedThermostatState{},
	}
	result := buildResult(cfg, st, false, nil)

	var found bool
	for _, room := range result.Rooms {
		for _, th := range room.Thermostats {
			if th.ID == "hall-thermostat" {
				found = true
				if th.Setpoint != 21 {
					t.Fatalf("setpoint = %v, want 21 (configured fallback)", th.Setpoint)
				}
			}
		}
	}
	if !found {
		t.Fatalf("hall-thermostat not present in result")
	}
}

func TestBuildResultUsesDerivedStateWhenPresent(t *testing.T) {
	cfg := fixtureConfig()
	on := true
	st := store.State{
		Lights: map[string]store.DerivedLightState{
			"kitchen-light": {ID: "kitchen-light", On: &on, UpdatedAt: 1},
		},
		Shutters:    map[string]store.DerivedShutterState{},
		Thermostats: map[string]store.DerivedThermostatState{},
	}
	result := buildResult(cfg, st, true, nil)

	for _, room := range result.Rooms {
		for _, l := range room.Lights {
			if l.ID == "kitchen-light" && (l.On == nil || !*l.On) {
				t.Fatalf("expected kitchen-light On=true from derived state")
			}
		}
	}
	if !result.Refreshed {
		t.Fatalf("expected Refreshed=true")
	}
}

func TestBuildResultReportsInputActiveFromBoardSnapshot(t *testing.T) {
	cfg := store.Configuration{
		Boards: []store.Board{
			{
				ID:      "board-1",
				Address: 9,
				Name:    "Board 1",
				Inputs: []store.Input{
					{Index: 1, Name: "Door", Room: "Hall", Enabled: true},
					{Index: 2, Name: "Window", Room: "Hall", Enabled: true},
				},
			},
		},
	}
	st := store.State{
		Lights:      map[string]store.DerivedLightState{},
		Shutters:    map[string]store.DerivedShutterState{},
		Thermostats: map[string]store.DerivedThermostatState{},
		BoardSnapshots: map[string]store.BoardSnapshot{
			"9": {Address: 9, InputMask: 0x01}, // bit 0 set: input 1 inactive, input 2 active
		},
	}
	result := buildResult(cfg, st, true, nil)

	var gotDoor, gotWindow *bool
	for _, room := range result.Rooms {
		for _, in := range room.Inputs {
			switch in.Name {
			case "Door":
				gotDoor = in.Active
			case "Window":
				gotWindow = in.Active
			}
		}
	}
	if gotDoor == nil || *gotDoor {
		t.Fatalf("door active = %v, want false (bit set = inactive)", gotDoor)
	}
	if gotWindow == nil || !*gotWindow {
		t.Fatalf("window active = %v, want true (bit clear = active)", gotWindow)
	}
}

func TestBuildResultInputActiveIsUnknownWithoutSnapshot(t *testing.T) {
	cfg := store.Configuration{
		Boards: []store.Board{
			{ID: "board-1", Address: 9, Name: "Board 1", Inputs: []store.Input{
				{Index: 1, Name: "Door", Room: "Hall", Enabled: true},
			}},
		},
	}
	st := store.State{
		Lights:         map[string]store.DerivedLightState{},
		Shutters:       map[string]store.DerivedShutterState{},
		Thermostats:    map[string]store.DerivedThermostatState{},
		BoardSnapshots: map[string]store.BoardSnapshot{},
	}
	result := buildResult(cfg, st, false, nil)

	for _, room := range result.Rooms {
		for _, in := range room.Inputs {
			if in.Active != nil {
				t.Fatalf("expected active=nil without a recorded snapshot, got %v", *in.Active)
			}
		}
	}
}

func TestBuildResultDefaultsShutterPositionToUnknown(t *testing.T) {
	cfg := fixtureConfig()
	st := store.State{
		Lights:      map[string]store.DerivedLightState{},
		Shutters:    map[string]store.DerivedShutterState{},
		Thermostats: map[string]store.DerivedThermostatState{},
	}
	result := buildResult(cfg, st, false, nil)
	for _, room := range result.Rooms {
		for _, s := range room.Shutters {
			if s.ID == "lounge-shutter" && s.Position != "unknown" {
				t.Fatalf("position = %q, want unknown", s.Position)
			}
		}
	}
}
