package utils

import "testing"

func TestRound(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"already exact", 26.35, 26.35},
		{"rounds down", 6.774, 6.77},
		{"rounds up", 1.006, 1.01},
		{"float noise from tax math", 0.05 * 7, 0.35},
		{"zero", 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Round(tc.in); got != tc.want {
				t.Errorf("Round(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(26.35, 26.350000001, 1e-6) {
		t.Error("expected values within tolerance to match")
	}
	if WithinTolerance(26.35, 26.36, 1e-6) {
		t.Error("expected values outside tolerance to differ")
	}
}
