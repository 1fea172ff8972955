package render

import (
	"image/color"
	"math"

	"reddust/internal/config"
	"reddust/internal/mathutil"
)

// ShadowModel darkens surfaces with distance. The zero value disables shading.
type ShadowModel struct {
	Enabled   bool
	Distance  float64 // Distance at which full Intensity is reached
	Intensity float64
	Ambient   float64 // Lower bound of the shade factor
	Color     color.RGBA
}

// NewShadowModel builds a shadow model from configuration
func NewShadowModel(cfg config.ShadowConfig) ShadowModel {
	return ShadowModel{
		Enabled:   cfg.Enabled,
		Distance:  cfg.Distance,
		Intensity: cfg.Intensity,
		Ambient:   cfg.AmbientLight,
		Color:     config.RGB(cfg.Color),
	}
}

// Factor returns the light factor for a distance: 1 is fully lit, Ambient the darkest.
// It never increases with distance.
func (s ShadowModel) Factor(distance float64) float64 {
	if !s.Enabled {
		return 1
	}

	ratio := 1.0
	if s.Distance > 0 {
		ratio = mathutil.Clamp(distance/s.Distance, 0, 1)
	}
	f := math.Max(1-ratio*s.Intensity, s.Ambient)
	return math.Min(f, 1)
}

// Apply moves c toward the shadow color by (1 - factor)
func (s ShadowModel) Apply(c color.RGBA, factor float64) color.RGBA {
	if factor >= 1 {
		return c
	}
	amount := 1 - math.Max(factor, 0)
	mix := func(from, to uint8) uint8 {
		return uint8(mathutil.Lerp(float64(from), float64(to), amount) + 0.5)
	}
	return color.RGBA{
		R: mix(c.R, s.Color.R),
		G: mix(c.G, s.Color.G),
		B: mix(c.B, s.Color.B),
		A: c.A,
	}
}

// overlayAlpha is the opacity of the shadow-colored overlay equivalent to Apply
func (s ShadowModel) overlayAlpha(factor float64) uint8 {
	if factor >= 1 {
		return 0
	}
	return uint8(mathutil.Clamp(1-factor, 0, 1)*255 + 0.5)
}
