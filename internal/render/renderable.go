package render

import (
	"image/color"

	"reddust/internal/graphics"
	"reddust/internal/world"

	"github.com/go-gl/mathgl/mgl64"
)

// Surface holds what every queued polygon carries.
// Points and TexCoords are parallel and hold at least three entries.
type Surface struct {
	Distance  float64 // Sort distance, larger is drawn first
	Depth     float64 // Centroid depth along the horizontal view direction, as column spans measure it
	Points    []mgl64.Vec2
	Color     color.RGBA
	Texture   *graphics.Texture
	TexCoords []mgl64.Vec2
}

// Base returns the shared surface fields
func (s *Surface) Base() *Surface {
	return s
}

// Renderable is one screen-projected polygon waiting in the render queue.
// The set of implementations is closed: *WallInfo, *FloorInfo, *WaterInfo and *RampInfo.
type Renderable interface {
	Base() *Surface
	renderable()
}

// WallInfo is a wall drawn as a polygon instead of columns
type WallInfo struct {
	Surface
	Wall *world.Wall
}

// FloorInfo is a horizontal floor rectangle
type FloorInfo struct {
	Surface
	Floor     *world.Floor
	FromBelow bool
}

// WaterInfo is an animated water surface
type WaterInfo struct {
	Surface
	Water        *world.WaterSurface
	FromBelow    bool
	CameraInside bool // The camera is inside the water volume
}

// RampInfo is a tilted quad
type RampInfo struct {
	Surface
	Ramp *world.Ramp
}

func (*WallInfo) renderable()  {}
func (*FloorInfo) renderable() {}
func (*WaterInfo) renderable() {}
func (*RampInfo) renderable()  {}
