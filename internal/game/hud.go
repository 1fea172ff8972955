package game

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	hudBackground = color.NRGBA{0, 0, 0, 160}
	hudText       = color.RGBA{230, 230, 230, 255}
)

const hudPadding = 4

// DrawHUD writes text lines into the top-left corner of dst over a dark panel.
// It returns the panel rectangle.
func DrawHUD(dst *image.RGBA, lines []string) image.Rectangle {
	if len(lines) == 0 {
		return image.Rectangle{}
	}
	face := basicfont.Face7x13

	width := 0
	for _, line := range lines {
		if w := font.MeasureString(face, line).Ceil(); w > width {
			width = w
		}
	}
	panel := image.Rect(hudPadding, hudPadding,
		hudPadding*3+width, hudPadding*3+len(lines)*face.Height).Intersect(dst.Bounds())
	draw.Draw(dst, panel, image.NewUniform(hudBackground), image.Point{}, draw.Over)

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(hudText),
		Face: face,
	}
	for i, line := range lines {
		drawer.Dot = fixed.P(panel.Min.X+hudPadding, panel.Min.Y+hudPadding+face.Ascent+i*face.Height)
		drawer.DrawString(line)
	}
	return panel
}
