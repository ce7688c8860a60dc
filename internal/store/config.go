package store

// Canonical, fully-normalised configuration types. These are what the rest
// of the application works with; every numeric field has already been
// clamped into its declared range and every id/name/room has been resolved.

// GatewaySettings describes how to reach the Algo_Domo TCP gateway.
type GatewaySettings struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	TimeoutMs int    `json:"timeoutMs"`
}

// Input is a configurable opto input on a board.
type Input struct {
	Index         int    `json:"index"`
	Name          string `json:"name"`
	Room          string `json:"room"`
	Enabled       bool   `json:"enabled"`
	G2            byte   `json:"g2"`
	G3            byte   `json:"g3"`
	G4            byte   `json:"g4"`
	TargetAddress int    `json:"targetAddress"`
}

// Board is a logical controller on the bus. Description is free-text
// operator notes, carried through normalisation untouched and never
// validated.
type Board struct {
	ID          string  `json:"id"`
	Address     int     `json:"address"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Inputs      []Input `json:"inputs"`
}

// Light is a relay-driven light entity.
type Light struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Room    string `json:"room"`
	Address int    `json:"address"`
	Relay   int    `json:"relay"`
}

// Shutter is a roller-blind entity.
type Shutter struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Room    string `json:"room"`
	Address int    `json:"address"`
	Channel int    `json:"channel"`
}

// Thermostat is a setpoint-driven climate entity.
type Thermostat struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Room     string  `json:"room"`
	Address  int     `json:"address"`
	Setpoint float64 `json:"setpoint"`
}

// Configuration aggregates the gateway settings, the shared API token, and
// the boards and entity lists. It is user-authoritative and replaced
// wholesale on every POST /api/config.
type Configuration struct {
	Version     int             `json:"version"`
	Gateway     GatewaySettings `json:"gateway"`
	APIToken    string          `json:"apiToken"`
	Boards      []Board         `json:"boards"`
	Lights      []Light         `json:"lights"`
	Shutters    []Shutter       `json:"shutters"`
	Thermostats []Thermostat    `json:"thermostats"`
}

// defaultPort and defaultTimeoutMs are the gateway's default endpoint and
// transaction timeout when config.json omits them: 127.0.0.1:1470, 1200 ms.
const (
	defaultHost      = "127.0.0.1"
	defaultPort      = 1470
	defaultTimeoutMs = 1200

	// defaultAddress is substituted for a board/entity address field that
	// fails to parse at all (as opposed to one that parses but is
	// out-of-range, which is clamped instead).
	defaultAddress = 0
	defaultRelay   = 1
	defaultChannel = 1
	defaultIndex   = 1
)

// DefaultConfiguration returns the configuration seeded on first run, before
// any config.json exists on disk.
func DefaultConfiguration() Configuration {
	return Configuration{
		Version: 1,
		Gateway: GatewaySettings{
			Host:      defaultHost,
			Port:      defaultPort,
			TimeoutMs: defaultTimeoutMs,
		},
		APIToken:    "",
		Boards:      []Board{},
		Lights:      []Light{},
		Shutters:    []Shutter{},
		Thermostats: []Thermostat{},
	}
}
