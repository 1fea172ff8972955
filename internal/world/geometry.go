package world

import (
	"image/color"
	"math"

	"reddust/internal/graphics"

	"github.com/go-gl/mathgl/mgl64"
)

// Wall is one flat vertical quad from Start to End (x,z), standing on Start.Y.
// Block walls are expressed as four Wall segments by the level converter.
type Wall struct {
	Start   mgl64.Vec3
	End     mgl64.Vec3
	Height  float64
	Color   color.RGBA
	Texture *graphics.Texture
}

// BaseY returns the height the wall stands on
func (w *Wall) BaseY() float64 {
	return w.Start.Y()
}

// Pillar is a vertical cylinder centered on (X, Z)
type Pillar struct {
	X, Z    float64
	Radius  float64
	Height  float64
	BaseY   float64
	Color   color.RGBA
	Texture *graphics.Texture
}

// Floor is an axis-aligned horizontal rectangle at height Y
type Floor struct {
	X1, Z1  float64
	X2, Z2  float64
	Y       float64
	Color   color.RGBA
	Texture *graphics.Texture
}

// Corners returns the floor's corners in (x1,z1), (x2,z1), (x2,z2), (x1,z2) order
func (f *Floor) Corners() [4]mgl64.Vec3 {
	return [4]mgl64.Vec3{
		{f.X1, f.Y, f.Z1},
		{f.X2, f.Y, f.Z1},
		{f.X2, f.Y, f.Z2},
		{f.X1, f.Y, f.Z2},
	}
}

// Ramp is a tilted quad given by four arbitrary corners
type Ramp struct {
	Corners [4]mgl64.Vec3
	Color   color.RGBA
	Texture *graphics.Texture
}

// WaterSurface is an animated rectangle at base height Y with a volume Depth below it
type WaterSurface struct {
	X1, Z1     float64
	X2, Z2     float64
	Y          float64
	Depth      float64
	WaveSpeed  float64
	WaveHeight float64
	Color      color.RGBA
	Texture    *graphics.Texture
}

// SurfaceY returns the animated surface height at time t (seconds)
func (w *WaterSurface) SurfaceY(t float64) float64 {
	return w.Y + math.Sin(t*w.WaveSpeed)*w.WaveHeight
}

// Contains reports whether p lies inside the water volume whose top is at surfaceY
func (w *WaterSurface) Contains(p mgl64.Vec3, surfaceY float64) bool {
	minX, maxX := math.Min(w.X1, w.X2), math.Max(w.X1, w.X2)
	minZ, maxZ := math.Min(w.Z1, w.Z2), math.Max(w.Z1, w.Z2)
	return p.X() >= minX && p.X() <= maxX &&
		p.Z() >= minZ && p.Z() <= maxZ &&
		p.Y() >= surfaceY-w.Depth && p.Y() <= surfaceY
}

// Scene is the geometry for one frame. The renderer treats it as read-only.
type Scene struct {
	Walls   []Wall
	Pillars []Pillar
	Floors  []Floor
	Ramps   []Ramp
	Water   []WaterSurface
}

// Textures returns every distinct texture handle referenced by the scene
func (s *Scene) Textures() []*graphics.Texture {
	seen := make(map[*graphics.Texture]bool)
	var result []*graphics.Texture
	add := func(t *graphics.Texture) {
		if t != nil && !seen[t] {
			seen[t] = true
			result = append(result, t)
		}
	}
	for i := range s.Walls {
		add(s.Walls[i].Texture)
	}
	for i := range s.Pillars {
		add(s.Pillars[i].Texture)
	}
	for i := range s.Floors {
		add(s.Floors[i].Texture)
	}
	for i := range s.Ramps {
		add(s.Ramps[i].Texture)
	}
	for i := range s.Water {
		add(s.Water[i].Texture)
	}
	return result
}
