package render

import (
	"image"
	"image/color"
	"math"

	"reddust/internal/graphics"

	"github.com/go-gl/mathgl/mgl64"
)

// vec3Near compares component-wise with an absolute tolerance. mgl64's
// ApproxEqualThreshold squares the threshold when one side is exactly zero.
func vec3Near(got, want mgl64.Vec3, tol float64) bool {
	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			return false
		}
	}
	return true
}

func vec2Near(got, want mgl64.Vec2, tol float64) bool {
	return math.Abs(got[0]-want[0]) <= tol && math.Abs(got[1]-want[1]) <= tol
}

// fakeTextures serves solid test rasters by texture name
type fakeTextures map[string]*image.RGBA

func (f fakeTextures) Lookup(tex *graphics.Texture) *image.RGBA {
	if tex == nil {
		return nil
	}
	return f[tex.Name]
}

func newTexture(name string) *graphics.Texture {
	return &graphics.Texture{Name: name}
}

func solidImage(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// countColor returns how many pixels of img equal c
func countColor(img *image.RGBA, c color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}
