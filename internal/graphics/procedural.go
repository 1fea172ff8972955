package graphics

import (
	"image"
	"image/color"
	"math"

	"reddust/internal/mathutil"
)

const proceduralSize = 64

var proceduralTextures = map[string]func() *image.RGBA{
	"brick":   brickTexture,
	"stone":   stoneTexture,
	"planks":  planksTexture,
	"water":   waterTexture,
	"grass":   grassTexture,
	"checker": checkerTexture,
}

// Procedural returns a generated texture for a known name, or nil
func Procedural(name string) *image.RGBA {
	gen, ok := proceduralTextures[name]
	if !ok {
		return nil
	}
	return gen()
}

// ProceduralNames lists the names Procedural understands
func ProceduralNames() []string {
	return []string{"brick", "checker", "grass", "planks", "stone", "water"}
}

// NewCheckerImage creates a checkerboard image with square cells
func NewCheckerImage(width, height, cell int, c1, c2 color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, c1)
			} else {
				img.SetRGBA(x, y, c2)
			}
		}
	}
	return img
}

func checkerTexture() *image.RGBA {
	return NewCheckerImage(proceduralSize, proceduralSize, 8,
		color.RGBA{200, 200, 200, 255}, color.RGBA{90, 90, 90, 255})
}

// noise returns a deterministic value in [0,1) for a pixel
func noise(x, y, seed int) float64 {
	h := uint32(x*374761393 + y*668265263 + seed*982451653)
	h = (h ^ (h >> 13)) * 1274126177
	h ^= h >> 16
	return float64(h%1024) / 1024
}

func shadeRGBA(c color.RGBA, f float64) color.RGBA {
	scale := func(v uint8) uint8 {
		return uint8(mathutil.Clamp(float64(v)*f, 0, 255))
	}
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), c.A}
}

func brickTexture() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, proceduralSize, proceduralSize))
	brick := color.RGBA{150, 60, 40, 255}
	mortar := color.RGBA{170, 160, 150, 255}
	const rowHeight, brickWidth = 16, 32
	for y := 0; y < proceduralSize; y++ {
		row := y / rowHeight
		offset := 0
		if row%2 == 1 {
			offset = brickWidth / 2
		}
		for x := 0; x < proceduralSize; x++ {
			if y%rowHeight == 0 || (x+offset)%brickWidth == 0 {
				img.SetRGBA(x, y, mortar)
				continue
			}
			img.SetRGBA(x, y, shadeRGBA(brick, 0.85+0.3*noise(x, y, 1)))
		}
	}
	return img
}

func stoneTexture() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, proceduralSize, proceduralSize))
	base := color.RGBA{120, 118, 112, 255}
	for y := 0; y < proceduralSize; y++ {
		for x := 0; x < proceduralSize; x++ {
			f := 0.75 + 0.4*noise(x/2, y/2, 2)
			if x%32 == 0 || y%32 == 0 {
				f = 0.55
			}
			img.SetRGBA(x, y, shadeRGBA(base, f))
		}
	}
	return img
}

func planksTexture() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, proceduralSize, proceduralSize))
	wood := color.RGBA{140, 100, 60, 255}
	for y := 0; y < proceduralSize; y++ {
		for x := 0; x < proceduralSize; x++ {
			if x%16 == 0 {
				img.SetRGBA(x, y, shadeRGBA(wood, 0.5))
				continue
			}
			grain := 0.85 + 0.15*math.Sin(float64(y)*0.7+float64(x/16)*1.3) + 0.1*noise(x, y, 3)
			img.SetRGBA(x, y, shadeRGBA(wood, grain))
		}
	}
	return img
}

func waterTexture() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, proceduralSize, proceduralSize))
	water := color.RGBA{40, 90, 170, 255}
	for y := 0; y < proceduralSize; y++ {
		for x := 0; x < proceduralSize; x++ {
			// Periodic in x and y so the texture tiles while flowing
			fx := 2 * math.Pi * float64(x) / proceduralSize
			fy := 2 * math.Pi * float64(y) / proceduralSize
			f := 0.85 + 0.12*math.Sin(2*fx+math.Sin(fy)) + 0.08*math.Cos(3*fy)
			img.SetRGBA(x, y, shadeRGBA(water, f))
		}
	}
	return img
}

func grassTexture() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, proceduralSize, proceduralSize))
	grass := color.RGBA{60, 140, 50, 255}
	for y := 0; y < proceduralSize; y++ {
		for x := 0; x < proceduralSize; x++ {
			img.SetRGBA(x, y, shadeRGBA(grass, 0.7+0.5*noise(x, y, 4)))
		}
	}
	return img
}
