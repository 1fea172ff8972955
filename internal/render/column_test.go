package render

import (
	"image"
	"image/color"
	"math"
	"testing"

	"reddust/internal/world"

	"github.com/go-gl/mathgl/mgl64"
)

var red = color.RGBA{200, 30, 30, 255}

func testViewport(width, height int) Viewport {
	return Viewport{Width: width, Height: height, FOV: math.Pi / 3, Near: 0.1, Far: 50}
}

// wallAcross returns a wall parallel to the x axis at depth z
func wallAcross(x1, x2, z, base, height float64) world.Wall {
	return world.Wall{
		Start:  mgl64.Vec3{x1, base, z},
		End:    mgl64.Vec3{x2, base, z},
		Height: height,
		Color:  red,
	}
}

func TestColumnCaster_AngleTable(t *testing.T) {
	cc := NewColumnCaster()
	vp := testViewport(641, 480)

	if a := cc.Angle(vp, 320); math.Abs(a) > epsilon {
		t.Errorf("center column angle = %v, want 0", a)
	}
	if a, b := cc.Angle(vp, 0), cc.Angle(vp, 640); math.Abs(a+b) > epsilon || a >= 0 {
		t.Errorf("edge angles not symmetric: %v, %v", a, b)
	}
	if a := cc.Angle(vp, 0); math.Abs(a) >= vp.FOV/2 {
		t.Errorf("edge angle %v exceeds half FOV", a)
	}

	// Resizing rebuilds the table
	vp.Width = 101
	if a := cc.Angle(vp, 50); math.Abs(a) > epsilon {
		t.Errorf("center column after resize = %v, want 0", a)
	}
}

func TestColumnCaster_FullyBehindDrawsNothing(t *testing.T) {
	vp := testViewport(64, 48)
	scene := &world.Scene{Walls: []world.Wall{wallAcross(-3, 3, -5, 0, 3)}}
	cam := &world.Camera{Position: mgl64.Vec3{0, 1, 0}}

	dst := image.NewRGBA(image.Rect(0, 0, vp.Width, vp.Height))
	drawn := NewColumnCaster().Cast(dst, scene, cam, vp, ShadowModel{}, nil, nil)
	if drawn != 0 {
		t.Errorf("wall behind the camera drew %d columns", drawn)
	}
	for i, v := range dst.Pix {
		if v != 0 {
			t.Fatalf("pixel byte %d written for a wall behind the camera", i)
		}
	}
}

func TestColumnCaster_FisheyeCorrection(t *testing.T) {
	const d = 6.0
	vp := testViewport(641, 480)
	scene := &world.Scene{Walls: []world.Wall{wallAcross(-20, 20, d, 0, 2)}}
	cam := &world.Camera{}
	cc := NewColumnCaster()

	center := cc.CastColumn(scene, cam, vp, 320)
	if len(center) != 1 {
		t.Fatalf("center column hits = %d, want 1", len(center))
	}
	if math.Abs(center[0].Perp-d) > 1e-9 || math.Abs(center[0].Direct-d) > 1e-9 {
		t.Errorf("center column perp=%v direct=%v, want both %v", center[0].Perp, center[0].Direct, d)
	}

	edge := cc.CastColumn(scene, cam, vp, 0)
	if len(edge) != 1 {
		t.Fatalf("edge column hits = %d, want 1", len(edge))
	}
	theta := cc.Angle(vp, 0)
	hit := edge[0]
	if math.Abs(hit.Perp-hit.Direct*math.Cos(theta)) > 1e-9 {
		t.Errorf("perp %v != direct %v * cos(%v)", hit.Perp, hit.Direct, theta)
	}
	if hit.Perp >= hit.Direct {
		t.Errorf("perp %v should be shorter than direct %v off-center", hit.Perp, hit.Direct)
	}
	// A wall parallel to the view plane has the same perpendicular distance everywhere
	if math.Abs(hit.Perp-d) > 1e-9 {
		t.Errorf("edge perp = %v, want %v", hit.Perp, d)
	}
}

func TestColumnCaster_ExtentMatchesProjection(t *testing.T) {
	vp := testViewport(641, 480)
	scene := &world.Scene{Walls: []world.Wall{wallAcross(-2, 2, 5, 0.25, 2)}}
	cam := &world.Camera{Position: mgl64.Vec3{0, 0.5, 0}}

	hits := NewColumnCaster().CastColumn(scene, cam, vp, 320)
	if len(hits) != 1 {
		t.Fatalf("hits = %d, want 1", len(hits))
	}
	top := vp.project(TransformToCameraSpace(mgl64.Vec3{0, 2.25, 5}, cam))
	bottom := vp.project(TransformToCameraSpace(mgl64.Vec3{0, 0.25, 5}, cam))
	if math.Abs(hits[0].Top-top.Y()) > 1e-6 || math.Abs(hits[0].Bottom-bottom.Y()) > 1e-6 {
		t.Errorf("column spans %v..%v, projected corners %v..%v",
			hits[0].Top, hits[0].Bottom, top.Y(), bottom.Y())
	}
	if math.Abs(hits[0].U-0.5) > 1e-9 {
		t.Errorf("U = %v, want 0.5 at the wall's middle", hits[0].U)
	}
}

func TestColumnCaster_RejectsDegenerateAndOutOfRange(t *testing.T) {
	vp := testViewport(641, 480)
	cam := &world.Camera{}
	cc := NewColumnCaster()

	tests := []struct {
		name  string
		scene *world.Scene
	}{
		{"parallel to ray", &world.Scene{Walls: []world.Wall{{
			Start: mgl64.Vec3{0, 0, 2}, End: mgl64.Vec3{0, 0, 8}, Height: 1,
		}}}},
		{"beyond far plane", &world.Scene{Walls: []world.Wall{wallAcross(-5, 5, 60, 0, 1)}}},
		{"inside near plane", &world.Scene{Walls: []world.Wall{wallAcross(-5, 5, 0.05, 0, 1)}}},
		{"zero radius pillar", &world.Scene{Pillars: []world.Pillar{{X: 0, Z: 4, Radius: 0, Height: 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hits := cc.CastColumn(tt.scene, cam, vp, 320); len(hits) != 0 {
				t.Errorf("got %d hits, want none", len(hits))
			}
		})
	}
}

func TestColumnCaster_PillarHit(t *testing.T) {
	vp := testViewport(641, 480)
	scene := &world.Scene{Pillars: []world.Pillar{{X: 0, Z: 5, Radius: 1, Height: 2, Color: red}}}
	cam := &world.Camera{}

	hits := NewColumnCaster().CastColumn(scene, cam, vp, 320)
	if len(hits) != 1 {
		t.Fatalf("hits = %d, want 1", len(hits))
	}
	hit := hits[0]
	if hit.Kind != HitPillar {
		t.Errorf("kind = %v, want pillar", hit.Kind)
	}
	if math.Abs(hit.Direct-4) > 1e-9 {
		t.Errorf("entry distance = %v, want 4", hit.Direct)
	}
	// Hit point (0, 4) is straight below the center: atan2(-1, 0) = -pi/2
	if math.Abs(hit.U-0.25) > 1e-9 {
		t.Errorf("U = %v, want 0.25", hit.U)
	}
}

func TestColumnCaster_MultiHitBackToFront(t *testing.T) {
	vp := testViewport(641, 480)
	scene := &world.Scene{Walls: []world.Wall{
		wallAcross(-1, 1, 3, 0, 0.5), // short wall in front
		wallAcross(-4, 4, 8, 0, 3),
	}}
	cam := &world.Camera{Position: mgl64.Vec3{0, 1, 0}}

	hits := NewColumnCaster().CastColumn(scene, cam, vp, 320)
	if len(hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(hits))
	}
	if hits[0].Perp <= hits[1].Perp {
		t.Errorf("hits not ordered farthest first: %v, %v", hits[0].Perp, hits[1].Perp)
	}

	dst := image.NewRGBA(image.Rect(0, 0, vp.Width, vp.Height))
	spans := make([]ColumnSpan, vp.Width)
	NewColumnCaster().Cast(dst, scene, cam, vp, ShadowModel{}, nil, spans)
	if math.Abs(spans[320].Depth-3) > 1e-9 {
		t.Errorf("column depth = %v, want the nearer wall at 3", spans[320].Depth)
	}
	// The tall wall shows above the short one
	if got := dst.RGBAAt(320, int(hits[0].Top)+2); got != red {
		t.Errorf("far wall pixel = %v, want %v", got, red)
	}
	if !math.IsInf(spans[0].Depth, 1) && spans[0].Depth < 7.9 {
		t.Errorf("edge column depth = %v, only the far wall reaches it", spans[0].Depth)
	}
}

func TestColumnCaster_TexturedAndShaded(t *testing.T) {
	vp := testViewport(65, 48)
	texColor := color.RGBA{10, 200, 90, 255}
	wall := wallAcross(-3, 3, 4, 0, 2)
	wall.Texture = newTexture("stripe")
	scene := &world.Scene{Walls: []world.Wall{wall}}
	cam := &world.Camera{Position: mgl64.Vec3{0, 1, 0}}
	textures := fakeTextures{"stripe": solidImage(8, 8, texColor)}

	dst := image.NewRGBA(image.Rect(0, 0, vp.Width, vp.Height))
	NewColumnCaster().Cast(dst, scene, cam, vp, ShadowModel{}, textures, nil)
	if got := dst.RGBAAt(32, 24); got != texColor {
		t.Errorf("textured pixel = %v, want %v", got, texColor)
	}

	shadow := ShadowModel{Enabled: true, Distance: 8, Intensity: 1, Color: color.RGBA{0, 0, 0, 255}}
	NewColumnCaster().Cast(dst, scene, cam, vp, shadow, textures, nil)
	want := shadow.Apply(texColor, shadow.Factor(4))
	if got := dst.RGBAAt(32, 24); got != want {
		t.Errorf("shaded pixel = %v, want %v", got, want)
	}
}
