package render

import (
	"math"
	"testing"

	"reddust/internal/world"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

func TestProjectPoint_CenterAhead(t *testing.T) {
	for _, d := range []float64{0.5, 1, 7.25, 40} {
		p := ProjectPoint(mgl64.Vec3{0, 0, d}, 0.1, 640, 480, 554.256)
		if math.Abs(p.X()-320) > epsilon || math.Abs(p.Y()-240) > epsilon {
			t.Errorf("point at z=%v projected to (%v, %v), want (320, 240)", d, p.X(), p.Y())
		}
	}
}

func TestProjectPoint_AxesAndNearClamp(t *testing.T) {
	scale := 100.0
	right := ProjectPoint(mgl64.Vec3{1, 0, 2}, 0.1, 200, 100, scale)
	if right.X() <= 100 {
		t.Errorf("camera-space +x should land right of center, got x=%v", right.X())
	}
	up := ProjectPoint(mgl64.Vec3{0, 1, 2}, 0.1, 200, 100, scale)
	if up.Y() >= 50 {
		t.Errorf("camera-space +y should land above center, got y=%v", up.Y())
	}

	// Depth is clamped to near*1.01 so points on or behind the plane stay finite
	onPlane := ProjectPoint(mgl64.Vec3{1, 1, 0}, 0.1, 200, 100, scale)
	wantX := 100 + 1/(0.1*1.01)*scale
	if math.Abs(onPlane.X()-wantX) > 1e-6 {
		t.Errorf("near clamp: got x=%v, want %v", onPlane.X(), wantX)
	}
}

func TestProjectionScale(t *testing.T) {
	got := ProjectionScale(640, math.Pi/3)
	want := 320 / math.Tan(math.Pi/6)
	if math.Abs(got-want) > epsilon {
		t.Errorf("ProjectionScale = %v, want %v", got, want)
	}

	vp := Viewport{Width: 640, Height: 480, FOV: math.Pi / 3, Scale: 480}
	if vp.ProjectionScale() != 480 {
		t.Errorf("override scale ignored: %v", vp.ProjectionScale())
	}
}

func TestTransformToCameraSpace_Yaw(t *testing.T) {
	tests := []struct {
		name  string
		yaw   float64
		point mgl64.Vec3
		want  mgl64.Vec3
	}{
		{"ahead at yaw 0", 0, mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, 5}},
		{"right at yaw 0", 0, mgl64.Vec3{2, 0, 0}, mgl64.Vec3{2, 0, 0}},
		{"quarter turn", math.Pi / 2, mgl64.Vec3{-5, 1, 0}, mgl64.Vec3{0, 1, 5}},
		{"half turn", math.Pi, mgl64.Vec3{0, 0, -3}, mgl64.Vec3{0, 0, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := &world.Camera{Yaw: tt.yaw}
			got := TransformToCameraSpace(tt.point, cam)
			if !vec3Near(got, tt.want, epsilon) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransformToCameraSpace_MatchesCameraVectors(t *testing.T) {
	cam := &world.Camera{Position: mgl64.Vec3{3, 1, -2}, Yaw: 0.7}
	fx, fz := cam.Forward()
	rx, rz := cam.Right()

	ahead := TransformToCameraSpace(cam.Position.Add(mgl64.Vec3{fx * 4, 0, fz * 4}), cam)
	if !vec3Near(ahead, mgl64.Vec3{0, 0, 4}, epsilon) {
		t.Errorf("forward point transformed to %v", ahead)
	}
	right := TransformToCameraSpace(cam.Position.Add(mgl64.Vec3{rx, 0, rz}), cam)
	if !vec3Near(right, mgl64.Vec3{1, 0, 0}, epsilon) {
		t.Errorf("right point transformed to %v", right)
	}
}

func TestTransformToCameraSpace_PitchUpMovesHorizonDown(t *testing.T) {
	cam := &world.Camera{Pitch: 0.2}
	p := TransformToCameraSpace(mgl64.Vec3{0, 0, 10}, cam)
	screen := ProjectPoint(p, 0.1, 640, 480, 500)

	vp := Viewport{Width: 640, Height: 480, Scale: 500}
	if math.Abs(screen.Y()-vp.Horizon(cam.Pitch)) > 1e-6 {
		t.Errorf("horizon point at y=%v, Horizon() = %v", screen.Y(), vp.Horizon(cam.Pitch))
	}
	if screen.Y() <= 240 {
		t.Errorf("looking up should move the horizon below center, got y=%v", screen.Y())
	}
}
