package game

import (
	"math"

	"reddust/internal/config"
	"reddust/internal/mathutil"
	"reddust/internal/world"

	"github.com/charmbracelet/harmonica"
)

// CameraController eases the camera toward the yaw, pitch and eye height the
// input asks for. Targets move instantly; the camera follows on springs.
type CameraController struct {
	yaw, yawVel, targetYaw       float64
	pitch, pitchVel, targetPitch float64
	height, heightVel            float64
	targetHeight                 float64

	maxPitch     float64
	turnSpring   harmonica.Spring
	heightSpring harmonica.Spring
}

// NewCameraController starts at the camera's current pose. tps is the update rate.
func NewCameraController(cam *world.Camera, movement config.MovementConfig, maxPitch float64, tps int) *CameraController {
	if tps <= 0 {
		tps = 60
	}
	freq := movement.TurnSpringFrequency
	if freq <= 0 {
		freq = 6
	}
	damping := movement.TurnSpringDamping
	if damping <= 0 {
		damping = 1
	}
	cc := &CameraController{
		maxPitch:     maxPitch,
		turnSpring:   harmonica.NewSpring(harmonica.FPS(tps), freq, damping),
		heightSpring: harmonica.NewSpring(harmonica.FPS(tps), freq*1.5, 1.0),
	}
	cc.Reset(cam)
	return cc
}

// Reset snaps both the camera state and the targets to cam
func (cc *CameraController) Reset(cam *world.Camera) {
	cc.yaw, cc.targetYaw, cc.yawVel = cam.Yaw, cam.Yaw, 0
	cc.pitch, cc.targetPitch, cc.pitchVel = cam.Pitch, cam.Pitch, 0
	cc.height, cc.targetHeight, cc.heightVel = cam.Position.Y(), cam.Position.Y(), 0
}

// Turn moves the yaw target. Positive turns left.
func (cc *CameraController) Turn(delta float64) {
	cc.targetYaw += delta
}

// Look moves the pitch target, keeping it within the pitch limit
func (cc *CameraController) Look(delta float64) {
	cc.targetPitch = mathutil.Clamp(cc.targetPitch+delta, -cc.maxPitch, cc.maxPitch)
}

// SetHeight sets the eye height target
func (cc *CameraController) SetHeight(y float64) {
	cc.targetHeight = y
}

// TargetYaw returns where the camera is turning to
func (cc *CameraController) TargetYaw() float64 {
	return cc.targetYaw
}

// TargetPitch returns where the camera is tilting to
func (cc *CameraController) TargetPitch() float64 {
	return cc.targetPitch
}

// Update advances the springs one tick and writes the result into cam
func (cc *CameraController) Update(cam *world.Camera) {
	cc.yaw, cc.yawVel = cc.turnSpring.Update(cc.yaw, cc.yawVel, cc.targetYaw)
	cc.pitch, cc.pitchVel = cc.turnSpring.Update(cc.pitch, cc.pitchVel, cc.targetPitch)
	cc.height, cc.heightVel = cc.heightSpring.Update(cc.height, cc.heightVel, cc.targetHeight)

	// Keep yaw bounded; shifting target and state together leaves the spring unchanged
	if cc.yaw >= math.Pi || cc.yaw < -math.Pi {
		wrapped := mathutil.WrapAngle(cc.yaw)
		shift := cc.yaw - wrapped
		cc.yaw = wrapped
		cc.targetYaw -= shift
	}

	cam.Yaw = cc.yaw
	cam.Pitch = mathutil.Clamp(cc.pitch, -cc.maxPitch, cc.maxPitch)
	cam.Position[1] = cc.height
}
