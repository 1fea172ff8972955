package world

import (
	"math"

	"reddust/internal/mathutil"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is the viewer's eye. Yaw turns about the vertical axis and pitch tilts
// up (positive) or down. The renderer only reads it.
type Camera struct {
	Position mgl64.Vec3
	Yaw      float64
	Pitch    float64
}

// Forward returns the horizontal unit vector the camera looks along (x, z)
func (c *Camera) Forward() (float64, float64) {
	return -math.Sin(c.Yaw), math.Cos(c.Yaw)
}

// Right returns the horizontal unit vector to the camera's right (x, z)
func (c *Camera) Right() (float64, float64) {
	return math.Cos(c.Yaw), math.Sin(c.Yaw)
}

// Rotate turns the camera by the given yaw angle
func (c *Camera) Rotate(angle float64) {
	c.Yaw += angle
}

// Tilt changes pitch, keeping it within [-limit, limit]
func (c *Camera) Tilt(angle, limit float64) {
	c.Pitch = mathutil.Clamp(c.Pitch+angle, -limit, limit)
}
