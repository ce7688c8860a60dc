package status

import "testing"

func boolPtr(v bool) *bool { return &v }

func TestInferLightOnSnapshotWins(t *testing.T) {
	previous := boolPtr(false)
	got := InferLightOn(true, true, previous, "off")
	if got == nil || !*got {
		t.Fatalf("got %v, want true (snapshot wins)", got)
	}
}

func TestInferLightOnExplicitAction(t *testing.T) {
	if got := InferLightOn(false, false, nil, "on"); got == nil || !*got {
		t.Fatalf("action=on should yield true, got %v", got)
	}
	if got := InferLightOn(false, false, nil, "off"); got == nil || *got {
		t.Fatalf("action=off should yield false, got %v", got)
	}
}

func TestInferLightOnToggleNegatesPrevious(t *testing.T) {
	got := InferLightOn(false, false, boolPtr(true), "toggle")
	if got == nil || *got {
		t.Fatalf("toggle of true should yield false, got %v", got)
	}
}

func TestInferLightOnToggleWithNoPreviousIsUnknown(t *testing.T) {
	got := InferLightOn(false, false, nil, "toggle")
	if got != nil {
		t.Fatalf("toggle with no previous should be unknown, got %v", *got)
	}
}

func TestInferLightOnToggleNoAckCarriesForwardPrevious(t *testing.T) {
	got := InferLightOn(false, false, boolPtr(true), "toggle_no_ack")
	if got == nil || !*got {
		t.Fatalf("toggle_no_ack with no snapshot should carry previous forward, got %v", got)
	}
}

func TestInferLightOnUnknownWithNoPreviousAndNoAction(t *testing.T) {
	got := InferLightOn(false, false, nil, "")
	if got != nil {
		t.Fatalf("expected unknown, got %v", *got)
	}
}
