package store

import (
	"encoding/json"
	"testing"
)

func sampleRaw() RawConfiguration {
	return RawConfiguration{
		Gateway: RawGatewaySettings{
			Host:      "192.168.1.10",
			Port:      Num{Value: 1470, Valid: true},
			TimeoutMs: Num{Value: 1200, Valid: true},
		},
		APIToken: "secret",
		Boards: []RawBoard{
			{
				ID:      "",
				Address: Num{Value: 3, Valid: true},
				Name:    "  ",
				Inputs: []RawInput{
					{Index: Num{Value: 1, Valid: true}, Name: "Door"},
					{Index: Num{Value: 1, Valid: true}, Name: "Window"},
				},
			},
		},
		Lights: []RawLight{
			{ID: "Kitchen Light!!", Address: Num{Value: 255, Valid: true}, Relay: Num{Value: 1, Valid: true}},
		},
	}
}

func TestNormalizeBoardAddressBoundary(t *testing.T) {
	raw := sampleRaw()
	cfg := raw.Normalize()
	if cfg.Boards[0].Address != 3 {
		t.Fatalf("board address = %d, want 3", cfg.Boards[0].Address)
	}
	if cfg.Lights[0].Address != 254 {
		t.Fatalf("light address = %d, want clamped to 254", cfg.Lights[0].Address)
	}
}

func TestNormalizeBoardIDFallback(t *testing.T) {
	cfg := sampleRaw().Normalize()
	if cfg.Boards[0].ID != "board-1" {
		t.Fatalf("board id = %q, want board-1", cfg.Boards[0].ID)
	}
	if cfg.Boards[0].Name != "Board 1" {
		t.Fatalf("board name = %q, want Board 1", cfg.Boards[0].Name)
	}
}

func TestNormalizeInputsGetDistinctIndexes(t *testing.T) {
	cfg := sampleRaw().Normalize()
	inputs := cfg.Boards[0].Inputs
	if len(inputs) != 2 {
		t.Fatalf("len(inputs) = %d, want 2", len(inputs))
	}
	if inputs[0].Index == inputs[1].Index {
		t.Fatalf("duplicate input indexes were not reassigned: %+v", inputs)
	}
}

func TestNormalizeInputTargetAddressDefaultsToBoard(t *testing.T) {
	cfg := sampleRaw().Normalize()
	for _, in := range cfg.Boards[0].Inputs {
		if in.TargetAddress != cfg.Boards[0].Address {
			t.Fatalf("input target address = %d, want board address %d", in.TargetAddress, cfg.Boards[0].Address)
		}
	}
}

func TestNormalizeInputTargetAddressHonoursExplicitOverride(t *testing.T) {
	raw := sampleRaw()
	raw.Boards[0].Inputs[0].TargetAddress = Num{Value: 40, Valid: true}
	cfg := raw.Normalize()
	if cfg.Boards[0].Inputs[0].TargetAddress != 40 {
		t.Fatalf("target address = %d, want 40", cfg.Boards[0].Inputs[0].TargetAddress)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	raw := sampleRaw()
	once := raw.Normalize()

	buf, err := json.Marshal(once)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var reRaw RawConfiguration
	if err := json.Unmarshal(buf, &reRaw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	twice := reRaw.Normalize()

	b1, _ := json.Marshal(once)
	b2, _ := json.Marshal(twice)
	if string(b1) != string(b2) {
		t.Fatalf("normalize is not idempotent:\n%s\nvs\n%s", b1, b2)
	}
}

func TestNormalizeTimeoutMsBoundaries(t *testing.T) {
	raw := sampleRaw()
	raw.Gateway.TimeoutMs = Num{Value: 50, Valid: true}
	cfg := raw.Normalize()
	if cfg.Gateway.TimeoutMs != 100 {
		t.Fatalf("timeoutMs = %d, want clamped to 100", cfg.Gateway.TimeoutMs)
	}

	raw.Gateway.TimeoutMs = Num{Value: 30000, Valid: true}
	cfg = raw.Normalize()
	if cfg.Gateway.TimeoutMs != 20000 {
		t.Fatalf("timeoutMs = %d, want clamped to 20000", cfg.Gateway.TimeoutMs)
	}
}

func TestNormalizeBoardDescriptionPassesThroughUntouched(t *testing.T) {
	raw := sampleRaw()
	raw.Boards[0].Description = "garage sub-panel, installed 2024"
	cfg := raw.Normalize()
	if cfg.Boards[0].Description != "garage sub-panel, installed 2024" {
		t.Fatalf("description = %q, want passthrough", cfg.Boards[0].Description)
	}
}
