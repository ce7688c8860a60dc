package entity

import "github.com/filippobenozzi/algodomo-bridge/internal/store"

// Ref identifies a command target either by its configured id, or by its
// board address plus a sub-index (relay, shutter channel, or board address
// itself for a thermostat/poll target). ID takes precedence when both are
// present.
type Ref struct {
	ID         string
	Address    int
	SubIndex   int
	HasAddress bool
}

// ResolveLight finds the light matching ref, by id first, then by
// (address, relay).
func ResolveLight(cfg store.Configuration, ref Ref) (store.Light, error) {
	if ref.ID != "" {
		for _, l := range cfg.Lights {
			if l.ID == ref.ID {
				return l, nil
			}
		}
		return store.Light{}, ErrNotFound
	}
	if ref.HasAddress {
		for _, l := range cfg.Lights {
			if l.Address == ref.Address && l.Relay == ref.SubIndex {
				return l, nil
			}
		}
	}
	return store.Light{}, ErrNotFound
}

// ResolveShutter finds the shutter matching ref, by id first, then by
// (address, channel).
func ResolveShutter(cfg store.Configuration, ref Ref) (store.Shutter, error) {
	if ref.ID != "" {
		for _, s := range cfg.Shutters {
			if s.ID == ref.ID {
				return s, nil
			}
		}
		return store.Shutter{}, ErrNotFound
	}
	if ref.HasAddress {
		for _, s := range cfg.Shutters {
			if s.Address == ref.Address && s.Channel == ref.SubIndex {
				return s, nil
			}
		}
	}
	return store.Shutter{}, ErrNotFound
}

// ResolveThermostat finds the thermostat matching ref, by id first, then by
// address alone (a board hosts at most one thermostat).
func ResolveThermostat(cfg store.Configuration, ref Ref) (store.Thermostat, error) {
	if ref.ID != "" {
		for _, th := range cfg.Thermostats {
			if th.ID == ref.ID {
				return th, nil
			}
		}
		return store.Thermostat{}, ErrNotFound
	}
	if ref.HasAddress {
		for _, th := range cfg.Thermostats {
			if th.Address == ref.Address {
				return th, nil
			}
		}
	}
	return store.Thermostat{}, ErrNotFound
}

// ResolveBoard finds the board matching ref, by id first, then by address.
func ResolveBoard(cfg store.Configuration, ref Ref) (store.Board, error) {
	if ref.ID != "" {
		for _, b := range cfg.Boards {
			if b.ID == ref.ID {
				return b, nil
			}
		}
		return store.Board{}, ErrNotFound
	}
	if ref.HasAddress {
		for _, b := range cfg.Boards {
			if b.Address == ref.Address {
				return b, nil
			}
		}
	}
	return store.Board{}, ErrNotFound
}

// BoardByAddress finds a board by its address alone. The poll, apply-inputs
// and program-address handlers do not call it; they work from the address
// (or the board list) directly.
func BoardByAddress(cfg store.Configuration, address int) (store.Board, error) {
	for _, b := range cfg.Boards {
		if b.Address == address {
			return b, nil
		}
	}
	return store.Board{}, ErrNotFound
}
