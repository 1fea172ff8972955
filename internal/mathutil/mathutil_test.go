package mathutil

import (
	"math"
	"testing"
)

func TestIntClamp(t *testing.T) {
	tests := []struct{ v, lo, hi, want int }{
		{5, 0, 10, 5},
		{-3, 0, 10, 0},
		{12, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := IntClamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("IntClamp(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestIntMod(t *testing.T) {
	tests := []struct{ a, m, want int }{
		{7, 4, 3},
		{-1, 4, 3},
		{-8, 4, 0},
		{0, 3, 0},
	}
	for _, tt := range tests {
		if got := IntMod(tt.a, tt.m); got != tt.want {
			t.Errorf("IntMod(%d, %d) = %d, want %d", tt.a, tt.m, got, tt.want)
		}
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{-math.Pi, -math.Pi},
	}
	for _, tt := range tests {
		if got := WrapAngle(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClampAndLerp(t *testing.T) {
	if Clamp(1.5, 0, 1) != 1 || Clamp(-0.5, 0, 1) != 0 || Clamp(0.25, 0, 1) != 0.25 {
		t.Error("Clamp out of range")
	}
	if Lerp(2, 6, 0.25) != 3 {
		t.Errorf("Lerp = %v, want 3", Lerp(2, 6, 0.25))
	}
}
