package protocol

import "testing"

func TestDecodeSnapshotTemperatureSign(t *testing.T) {
	f := Frame{G: [gPayloadSize]byte{0, 0, 0, 0, 3, 7, 0x2d, 0, 0, 0}}
	snap := DecodeSnapshot(1, f, 0, "")
	if snap.Temperature != -3.7 {
		t.Fatalf("temperature = %v, want -3.7", snap.Temperature)
	}
}

func TestDecodeSnapshotPositiveSignByteIsNotInverted(t *testing.T) {
	f := Frame{G: [gPayloadSize]byte{0, 0, 0, 0, 3, 7, 0x2b, 0, 0, 0}}
	snap := DecodeSnapshot(1, f, 0, "")
	if snap.Temperature != 3.7 {
		t.Fatalf("temperature = %v, want 3.7 (0x2b is not minus)", snap.Temperature)
	}
}

func TestDecodeSnapshotBoardTypeAndRelease(t *testing.T) {
	f := Frame{G: [gPayloadSize]byte{0x32, 0, 0, 0, 0, 0, 0, 0, 0, 0}}
	snap := DecodeSnapshot(1, f, 0, "")
	if snap.BoardType != 0x02 {
		t.Fatalf("boardType = %#x, want 0x02", snap.BoardType)
	}
	if snap.Release != 0x03 {
		t.Fatalf("release = %#x, want 0x03", snap.Release)
	}
}

func TestDecodeSnapshotPowerKw(t *testing.T) {
	f := Frame{G: [gPayloadSize]byte{0, 0, 0, 0, 0, 0, 0, 25, 0, 0}}
	snap := DecodeSnapshot(1, f, 0, "")
	if snap.PowerKw != 2.5 {
		t.Fatalf("powerKw = %v, want 2.5", snap.PowerKw)
	}
}

func TestIsInputActiveInvertedConvention(t *testing.T) {
	for ch := 1; ch <= 8; ch++ {
		if IsInputActive(0xFF, ch) {
			t.Fatalf("channel %d: all-set mask should yield inactive", ch)
		}
		if !IsInputActive(0x00, ch) {
			t.Fatalf("channel %d: all-clear mask should yield active", ch)
		}
	}
}

func TestChannelBitsMapping(t *testing.T) {
	bits := channelBits(0x04) // bit index 2 set -> channel 3
	if !bits["3"] {
		t.Fatalf("channel 3 should be set in mask 0x04")
	}
	if bits["1"] || bits["2"] {
		t.Fatalf("only channel 3 should be set in mask 0x04")
	}
}
