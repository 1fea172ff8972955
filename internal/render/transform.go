package render

import (
	"math"

	"reddust/internal/world"

	"github.com/go-gl/mathgl/mgl64"
)

// Viewport describes the raster being drawn and the projection onto it
type Viewport struct {
	Width  int
	Height int
	FOV    float64 // Horizontal field of view in radians
	Near   float64
	Far    float64
	// Scale overrides the FOV-derived projection scale when > 0
	Scale float64
}

// ProjectionScale returns the number of pixels one camera-space unit covers at z = 1
func (v Viewport) ProjectionScale() float64 {
	if v.Scale > 0 {
		return v.Scale
	}
	return ProjectionScale(v.Width, v.FOV)
}

// Horizon returns the screen row the horizontal plane through the eye projects to.
// Looking up (positive pitch) moves it down the screen.
func (v Viewport) Horizon(pitch float64) float64 {
	return float64(v.Height)/2 + math.Tan(pitch)*v.ProjectionScale()
}

// ProjectionScale derives the projection scale from the raster width and horizontal FOV
func ProjectionScale(width int, fov float64) float64 {
	if fov <= 0 || fov >= math.Pi {
		return float64(width) / 2
	}
	return float64(width) / 2 / math.Tan(fov/2)
}

// TransformToCameraSpace moves a world point into camera space, where +z is forward,
// +x is right and +y is up. Yaw is applied first, then pitch about the new x axis.
func TransformToCameraSpace(p mgl64.Vec3, cam *world.Camera) mgl64.Vec3 {
	dx := p.X() - cam.Position.X()
	dy := p.Y() - cam.Position.Y()
	dz := p.Z() - cam.Position.Z()

	cosYaw, sinYaw := math.Cos(cam.Yaw), math.Sin(cam.Yaw)
	x := dx*cosYaw + dz*sinYaw
	z := -dx*sinYaw + dz*cosYaw

	if cam.Pitch == 0 {
		return mgl64.Vec3{x, dy, z}
	}
	cosPitch, sinPitch := math.Cos(cam.Pitch), math.Sin(cam.Pitch)
	y := dy*cosPitch - z*sinPitch
	z = dy*sinPitch + z*cosPitch
	return mgl64.Vec3{x, y, z}
}

// ProjectPoint maps a camera-space point to pixel coordinates with the origin at the
// top-left corner. Depth is clamped just in front of the near plane so points on the
// plane don't blow up.
func ProjectPoint(p mgl64.Vec3, near float64, width, height int, scale float64) mgl64.Vec2 {
	z := math.Max(p.Z(), near*1.01)
	return mgl64.Vec2{
		float64(width)/2 + p.X()/z*scale,
		float64(height)/2 - p.Y()/z*scale,
	}
}

// project maps a camera-space point with the viewport's settings
func (v Viewport) project(p mgl64.Vec3) mgl64.Vec2 {
	return ProjectPoint(p, v.Near, v.Width, v.Height, v.ProjectionScale())
}
