package render

import (
	"image/color"
	"testing"
)

func TestShadowModel_FactorBounds(t *testing.T) {
	models := []ShadowModel{
		{Enabled: true, Distance: 20, Intensity: 0.8, Ambient: 0.2},
		{Enabled: true, Distance: 5, Intensity: 1, Ambient: 0.1},
		{Enabled: true, Distance: 10, Intensity: 0.3, Ambient: 0.5},
		{Enabled: true, Distance: 0, Intensity: 0.6, Ambient: 0},
	}

	for _, m := range models {
		prev := 2.0
		for d := 0.0; d <= 60; d += 0.25 {
			f := m.Factor(d)
			if f < m.Ambient || f > 1 {
				t.Errorf("%+v: Factor(%v) = %v outside [%v, 1]", m, d, f, m.Ambient)
			}
			if f > prev {
				t.Errorf("%+v: Factor increased from %v to %v at d=%v", m, prev, f, d)
			}
			prev = f
		}
	}
}

func TestShadowModel_FactorValues(t *testing.T) {
	m := ShadowModel{Enabled: true, Distance: 20, Intensity: 0.8, Ambient: 0.2}

	tests := []struct {
		distance float64
		want     float64
	}{
		{0, 1},
		{10, 0.6},
		{20, 0.2},
		{100, 0.2},
	}
	for _, tt := range tests {
		if got := m.Factor(tt.distance); got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("Factor(%v) = %v, want %v", tt.distance, got, tt.want)
		}
	}

	m.Enabled = false
	if got := m.Factor(100); got != 1 {
		t.Errorf("disabled model Factor = %v, want 1", got)
	}
}

func TestShadowModel_Apply(t *testing.T) {
	m := ShadowModel{Enabled: true, Color: color.RGBA{0, 0, 0, 255}}
	white := color.RGBA{255, 255, 255, 255}

	if got := m.Apply(white, 1); got != white {
		t.Errorf("Apply(1) = %v, want unchanged", got)
	}
	if got := m.Apply(white, 0); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("Apply(0) = %v, want shadow color", got)
	}
	half := m.Apply(white, 0.5)
	if half.R < 127 || half.R > 128 || half.A != 255 {
		t.Errorf("Apply(0.5) = %v", half)
	}

	tinted := ShadowModel{Color: color.RGBA{0, 0, 200, 255}}
	if got := tinted.Apply(color.RGBA{100, 100, 0, 255}, 0); got != (color.RGBA{0, 0, 200, 255}) {
		t.Errorf("Apply toward blue = %v", got)
	}
}
