package store

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Num is a numeric field that accepts a JSON number, a decimal string, or a
// hexadecimal string prefixed "0x" when read off the wire, per the
// hex/decimal tolerance rule of the config normalisation pass. Invalid or
// absent input leaves Valid false so normalisation can fall back to a
// field-appropriate default instead of rejecting the whole document.
type Num struct {
	Value int64
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler. It never returns an error:
// malformed input simply yields an invalid Num, which normalisation resolves
// to a default.
func (n *Num) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*n = Num{}
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = Num{}
			return nil
		}
		v, ok := parseFlexibleInt(s)
		*n = Num{Value: v, Valid: ok}
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*n = Num{}
		return nil
	}
	*n = Num{Value: int64(f), Valid: true}
	return nil
}

// MarshalJSON renders the Num as a plain JSON number (0 if invalid).
func (n Num) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Value)
}

// parseFlexibleInt parses a decimal string, or a hexadecimal string prefixed
// "0x"/"0X", into an int64.
func parseFlexibleInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "0x") {
		v, err := strconv.ParseInt(lower[2:], 16, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// clampInt pins v into [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// resolveClamped resolves a Num field: an unparsable value falls back to
// def; a parsable value is clamped into [lo, hi].
func resolveClamped(n Num, lo, hi, def int) int {
	if !n.Valid {
		return def
	}
	return clampInt(int(n.Value), lo, hi)
}

// FlexBool accepts a JSON boolean, defaulting to true unless explicitly
// false, per the "enabled" normalisation rule.
type FlexBool struct {
	set   bool
	value bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *FlexBool) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		*b = FlexBool{}
		return nil
	}
	*b = FlexBool{set: true, value: v}
	return nil
}

// MarshalJSON renders the resolved boolean value.
func (b FlexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Resolve())
}

// Resolve returns the effective boolean: true unless explicitly set false.
func (b FlexBool) Resolve() bool {
	if !b.set {
		return true
	}
	return b.value
}
