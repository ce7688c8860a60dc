package store

import "strings"

// Raw* types mirror the on-wire JSON shape of config.json before
// normalisation: every numeric field tolerates decimal, hex, or missing
// input, and every string field tolerates blank or absent input. Normalize
// turns a RawConfiguration into a Configuration, repairing what it can and
// substituting defaults for what it can't parse.

const (
	minAddress = 0
	maxAddress = 254

	minRelay = 1
	maxRelay = 8

	minChannel = 1
	maxChannel = 4

	minInputIndex = 1
	maxInputIndex = 8

	minPort = 1
	maxPort = 65535

	minTimeoutMs = 100
	maxTimeoutMs = 20000
)

// RawInput is the wire shape of Input.
type RawInput struct {
	Index         Num      `json:"index"`
	Name          string   `json:"name"`
	Room          string   `json:"room"`
	Enabled       FlexBool `json:"enabled"`
	G2            Num      `json:"g2"`
	G3            Num      `json:"g3"`
	G4            Num      `json:"g4"`
	TargetAddress Num      `json:"targetAddress"`
}

// RawBoard is the wire shape of Board.
type RawBoard struct {
	ID          string     `json:"id"`
	Address     Num        `json:"address"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Inputs      []RawInput `json:"inputs"`
}

// RawLight is the wire shape of Light.
type RawLight struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Room    string `json:"room"`
	Address Num    `json:"address"`
	Relay   Num    `json:"relay"`
}

// RawShutter is the wire shape of Shutter.
type RawShutter struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Room    string `json:"room"`
	Address Num    `json:"address"`
	Channel Num    `json:"channel"`
}

// RawThermostat is the wire shape of Thermostat.
type RawThermostat struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Room     string   `json:"room"`
	Address  Num      `json:"address"`
	Setpoint *float64 `json:"setpoint"`
}

// RawGatewaySettings is the wire shape of GatewaySettings.
type RawGatewaySettings struct {
	Host      string `json:"host"`
	Port      Num    `json:"port"`
	TimeoutMs Num    `json:"timeoutMs"`
}

// RawConfiguration is the wire shape of Configuration, as read from or
// written to config.json before normalisation.
type RawConfiguration struct {
	Version     Num                `json:"version"`
	Gateway     RawGatewaySettings `json:"gateway"`
	APIToken    string             `json:"apiToken"`
	Boards      []RawBoard         `json:"boards"`
	Lights      []RawLight         `json:"lights"`
	Shutters    []RawShutter       `json:"shutters"`
	Thermostats []RawThermostat    `json:"thermostats"`
}

// Normalize converts r into a canonical Configuration, resolving every
// id/name/room/numeric field per the config normalisation rules: ids are
// slugified with a deterministic "<kind>-<n>" fallback and de-duplicated
// within their list, names fall back to "<kind> <n>", rooms fall back to
// "Senza stanza", and numeric fields are clamped into range with
// fallback-to-default on unparsable input.
func (r RawConfiguration) Normalize() Configuration {
	cfg := Configuration{
		Version: resolveClamped(r.Version, 1, 1<<30, 1),
		Gateway: GatewaySettings{
			Host:      resolveHost(r.Gateway.Host),
			Port:      resolveClamped(r.Gateway.Port, minPort, maxPort, defaultPort),
			TimeoutMs: resolveClamped(r.Gateway.TimeoutMs, minTimeoutMs, maxTimeoutMs, defaultTimeoutMs),
		},
		APIToken: r.APIToken,
	}

	boardIDs := map[string]struct{}{}
	cfg.Boards = make([]Board, 0, len(r.Boards))
	for i, rb := range r.Boards {
		board := normalizeBoard(rb, i+1, boardIDs)
		cfg.Boards = append(cfg.Boards, board)
	}

	lightIDs := map[string]struct{}{}
	cfg.Lights = make([]Light, 0, len(r.Lights))
	for i, rl := range r.Lights {
		cfg.Lights = append(cfg.Lights, Light{
			ID:      dedupeID(resolveID(rl.ID, "light", i+1), lightIDs),
			Name:    resolveName(rl.Name, "Light", i+1),
			Room:    resolveRoom(rl.Room),
			Address: resolveClamped(rl.Address, minAddress, maxAddress, defaultAddress),
			Relay:   resolveClamped(rl.Relay, minRelay, maxRelay, defaultRelay),
		})
	}

	shutterIDs := map[string]struct{}{}
	cfg.Shutters = make([]Shutter, 0, len(r.Shutters))
	for i, rs := range r.Shutters {
		cfg.Shutters = append(cfg.Shutters, Shutter{
			ID:      dedupeID(resolveID(rs.ID, "shutter", i+1), shutterIDs),
			Name:    resolveName(rs.Name, "Shutter", i+1),
			Room:    resolveRoom(rs.Room),
			Address: resolveClamped(rs.Address, minAddress, maxAddress, defaultAddress),
			Channel: resolveClamped(rs.Channel, minChannel, maxChannel, defaultChannel),
		})
	}

	thermostatIDs := map[string]struct{}{}
	cfg.Thermostats = make([]Thermostat, 0, len(r.Thermostats))
	for i, rt := range r.Thermostats {
		setpoint := 20.0
		if rt.Setpoint != nil {
			setpoint = clampFloat(*rt.Setpoint, 5, 35)
		}
		cfg.Thermostats = append(cfg.Thermostats, Thermostat{
			ID:       dedupeID(resolveID(rt.ID, "thermostat", i+1), thermostatIDs),
			Name:     resolveName(rt.Name, "Thermostat", i+1),
			Room:     resolveRoom(rt.Room),
			Address:  resolveClamped(rt.Address, minAddress, maxAddress, defaultAddress),
			Setpoint: setpoint,
		})
	}

	if cfg.Lights == nil {
		cfg.Lights = []Light{}
	}
	if cfg.Shutters == nil {
		cfg.Shutters = []Shutter{}
	}
	if cfg.Thermostats == nil {
		cfg.Thermostats = []Thermostat{}
	}
	if cfg.Boards == nil {
		cfg.Boards = []Board{}
	}

	return cfg
}

func normalizeBoard(rb RawBoard, n int, seen map[string]struct{}) Board {
	address := resolveClamped(rb.Address, minAddress, maxAddress, defaultAddress)
	board := Board{
		ID:          dedupeID(resolveID(rb.ID, "board", n), seen),
		Address:     address,
		Name:        resolveName(rb.Name, "Board", n),
		Description: rb.Description,
	}

	usedIndexes := map[int]struct{}{}
	board.Inputs = make([]Input, 0, len(rb.Inputs))
	for i, ri := range rb.Inputs {
		idx := resolveClamped(ri.Index, minInputIndex, maxInputIndex, i+1)
		idx = nextFreeIndex(idx, usedIndexes)
		if idx == 0 {
			// No free slot in [minInputIndex, maxInputIndex]; drop the input.
			continue
		}
		usedIndexes[idx] = struct{}{}

		target := address
		if ri.TargetAddress.Valid {
			target = clampInt(int(ri.TargetAddress.Value), minAddress, maxAddress)
		}

		board.Inputs = append(board.Inputs, Input{
			Index:         idx,
			Name:          resolveName(ri.Name, "Input", i+1),
			Room:          resolveRoom(ri.Room),
			Enabled:       ri.Enabled.Resolve(),
			G2:            byte(resolveClamped(ri.G2, 0, 255, 0)),
			G3:            byte(resolveClamped(ri.G3, 0, 255, 0)),
			G4:            byte(resolveClamped(ri.G4, 0, 255, 0)),
			TargetAddress: target,
		})
	}
	sortInputsByIndex(board.Inputs)

	if board.Inputs == nil {
		board.Inputs = []Input{}
	}
	return board
}

// nextFreeIndex returns idx if unused, otherwise the next unused slot in
// [minInputIndex, maxInputIndex], or 0 if the board's 8 slots are full.
func nextFreeIndex(idx int, used map[int]struct{}) int {
	if _, taken := used[idx]; !taken {
		return idx
	}
	for i := minInputIndex; i <= maxInputIndex; i++ {
		if _, taken := used[i]; !taken {
			return i
		}
	}
	return 0
}

func sortInputsByIndex(inputs []Input) {
	for i := 1; i < len(inputs); i++ {
		for j := i; j > 0 && inputs[j-1].Index > inputs[j].Index; j-- {
			inputs[j-1], inputs[j] = inputs[j], inputs[j-1]
		}
	}
}

func resolveHost(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return defaultHost
	}
	return trimmed
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
