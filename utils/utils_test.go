package utils

import "testing"

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{14.9985, 15.00},
		{37.504, 37.50},
		{37.506, 37.51},
		{0, 0},
		{99.99, 99.99},
		{-2.506, -2.51},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v): want %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestGetUUIDUnique(t *testing.T) {
	a, b := GetUUID(), GetUUID()
	if a == "" || a == b {
		t.Errorf("expected distinct non-empty ids, got %q and %q", a, b)
	}
}
