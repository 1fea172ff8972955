package game

import (
	"math"
	"testing"

	"reddust/internal/config"
	"reddust/internal/world"

	"github.com/go-gl/mathgl/mgl64"
)

func newTestController(cam *world.Camera) *CameraController {
	return NewCameraController(cam, config.Default().Movement, 0.5, 60)
}

func settle(cc *CameraController, cam *world.Camera, ticks int) {
	for i := 0; i < ticks; i++ {
		cc.Update(cam)
	}
}

func TestCameraController_StartsAtRest(t *testing.T) {
	cam := &world.Camera{Position: mgl64.Vec3{1, 2, 3}, Yaw: 0.3, Pitch: -0.1}
	cc := newTestController(cam)
	settle(cc, cam, 10)

	if math.Abs(cam.Yaw-0.3) > 1e-9 || math.Abs(cam.Pitch+0.1) > 1e-9 || math.Abs(cam.Position.Y()-2) > 1e-9 {
		t.Errorf("Camera drifted without input: yaw=%v pitch=%v y=%v", cam.Yaw, cam.Pitch, cam.Position.Y())
	}
}

func TestCameraController_YawWraps(t *testing.T) {
	cam := &world.Camera{}
	cc := newTestController(cam)
	cc.Turn(2*math.Pi + 0.5)
	settle(cc, cam, 600)

	if math.Abs(cam.Yaw-0.5) > 1e-3 {
		t.Errorf("Expected yaw to settle at 0.5 after a full turn, got %v", cam.Yaw)
	}
	if cam.Yaw < -math.Pi || cam.Yaw >= math.Pi {
		t.Errorf("Yaw %v outside [-pi, pi)", cam.Yaw)
	}
}

func TestCameraController_LookClampsTarget(t *testing.T) {
	cam := &world.Camera{}
	cc := newTestController(cam)

	cc.Look(2)
	if cc.TargetPitch() != 0.5 {
		t.Errorf("Expected pitch target clamped to 0.5, got %v", cc.TargetPitch())
	}
	cc.Look(-5)
	if cc.TargetPitch() != -0.5 {
		t.Errorf("Expected pitch target clamped to -0.5, got %v", cc.TargetPitch())
	}
}

func TestCameraController_HeightFollows(t *testing.T) {
	cam := &world.Camera{Position: mgl64.Vec3{0, 1, 0}}
	cc := newTestController(cam)
	cc.SetHeight(2)

	cc.Update(cam)
	if y := cam.Position.Y(); y <= 1 || y >= 2 {
		t.Errorf("Expected height between 1 and 2 after one tick, got %v", y)
	}
	settle(cc, cam, 300)
	if y := cam.Position.Y(); math.Abs(y-2) > 1e-3 {
		t.Errorf("Expected height to settle at 2, got %v", y)
	}
}

func TestCameraController_Reset(t *testing.T) {
	cam := &world.Camera{}
	cc := newTestController(cam)
	cc.Turn(1)
	cc.Update(cam)

	snapped := &world.Camera{Yaw: -1}
	cc.Reset(snapped)
	if cc.TargetYaw() != -1 {
		t.Errorf("Expected Reset to move the target, got %v", cc.TargetYaw())
	}
	cc.Update(snapped)
	if math.Abs(snapped.Yaw+1) > 1e-12 {
		t.Errorf("Expected no motion after Reset, got yaw %v", snapped.Yaw)
	}
}
