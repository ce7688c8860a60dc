package store

import "testing"

func TestSlugifyLowercasesAndCollapses(t *testing.T) {
	got := slugify("  Living Room -- Main  ")
	want := "living-room-main"
	if got != want {
		t.Fatalf("slugify = %q, want %q", got, want)
	}
}

func TestResolveIDFallsBackWhenBlank(t *testing.T) {
	got := resolveID("   ", "board", 3)
	if got != "board-3" {
		t.Fatalf("resolveID = %q, want board-3", got)
	}
}

func TestResolveIDKeepsSlugOfNonBlank(t *testing.T) {
	got := resolveID("Kitchen Light", "light", 1)
	if got != "kitchen-light" {
		t.Fatalf("resolveID = %q, want kitchen-light", got)
	}
}

func TestDedupeIDAppendsSuffix(t *testing.T) {
	seen := map[string]struct{}{}
	first := dedupeID("kitchen", seen)
	second := dedupeID("kitchen", seen)
	third := dedupeID("kitchen", seen)
	if first != "kitchen" || second != "kitchen-2" || third != "kitchen-3" {
		t.Fatalf("got %q, %q, %q", first, second, third)
	}
}

func TestResolveNameFallback(t *testing.T) {
	if got := resolveName("  ", "Light", 2); got != "Light 2" {
		t.Fatalf("resolveName = %q, want %q", got, "Light 2")
	}
	if got := resolveName(" Hallway ", "Light", 2); got != "Hallway" {
		t.Fatalf("resolveName = %q, want Hallway", got)
	}
}

func TestResolveRoomFallback(t *testing.T) {
	if got := resolveRoom("   "); got != defaultRoomName {
		t.Fatalf("resolveRoom = %q, want %q", got, defaultRoomName)
	}
	if got := resolveRoom(" Kitchen "); got != "Kitchen" {
		t.Fatalf("resolveRoom = %q, want Kitchen", got)
	}
}

func TestResolveClampedUnparsableFallsBackToDefault(t *testing.T) {
	if got := resolveClamped(Num{}, 0, 254, 99); got != 99 {
		t.Fatalf("resolveClamped = %d, want 99", got)
	}
}

func TestResolveClampedClampsOutOfRange(t *testing.T) {
	if got := resolveClamped(Num{Value: 255, Valid: true}, 0, 254, 0); got != 254 {
		t.Fatalf("resolveClamped = %d, want 254", got)
	}
	if got := resolveClamped(Num{Value: -5, Valid: true}, 0, 254, 0); got != 0 {
		t.Fatalf("resolveClamped = %d, want 0", got)
	}
}

func TestResolveClampedTimeoutBoundaries(t *testing.T) {
	if got := resolveClamped(Num{Value: 50, Valid: true}, minTimeoutMs, maxTimeoutMs, defaultTimeoutMs); got != 100 {
		t.Fatalf("timeoutMs clamp low = %d, want 100", got)
	}
	if got := resolveClamped(Num{Value: 30000, Valid: true}, minTimeoutMs, maxTimeoutMs, defaultTimeoutMs); got != 20000 {
		t.Fatalf("timeoutMs clamp high = %d, want 20000", got)
	}
}
