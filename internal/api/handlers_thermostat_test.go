package api

import "testing"

func TestSplitSetpoint(t *testing.T) {
	cases := []struct {
		name     string
		set      float64
		wantInt  int
		wantTenth int
	}{
		{"worked example", 21.55, 21, 6},
		{"small negative rounds to zero", -0.04, 0, 0},
		{"negative magnitude is preserved", -5.3, 5, 3},
		{"negative rounds up a tenth", -5.36, 5, 4},
		{"clamped above range", 120, 99, 9},
		{"clamped negative above range", -120, 99, 9},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			gotInt, gotTenth := splitSetpoint(c.set)
			if gotInt != c.wantInt || gotTenth != c.wantTenth {
				t.Fatalf("splitSetpoint(%v) = (%d,%d), want (%d,%d)", c.set, gotInt, gotTenth, c.wantInt, c.wantTenth)
			}
		})
	}
}
