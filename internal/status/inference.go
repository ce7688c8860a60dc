package status

// InferLightOn computes a light's on/off state per the light inference
// rule: a fresh snapshot always wins; absent a snapshot, an explicit on/off
// command is authoritative, a toggle negates the previous value if known,
// and anything else (including toggle_no_ack with no snapshot) carries the
// previous value forward, or unknown if there was none.
func InferLightOn(hasSnapshot bool, snapshotOn bool, previous *bool, action string) *bool {
	if hasSnapshot {
		v := snapshotOn
		return &v
	}
	switch action {
	case "on":
		v := true
		return &v
	case "off":
		v := false
		return &v
	case "toggle":
		if previous != nil {
			v := !*previous
			return &v
		}
	}
	return previous
}
