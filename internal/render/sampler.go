package render

import (
	"image"
	"image/color"
	"math"

	"reddust/internal/config"
	"reddust/internal/mathutil"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"
)

// affineEpsilon is the smallest texture-space triangle determinant that is inverted
const affineEpsilon = 1e-9

// identityAffine draws a texture untransformed
var identityAffine = f64.Aff3{1, 0, 0, 0, 1, 0}

// Sampler paints queued polygons: textured through per-triangle affine maps with a
// single shade overlay, or filled flat when the texture is unavailable
type Sampler struct {
	textures   TexturePixels
	shadow     ShadowModel
	filter     draw.Interpolator
	rasterizer *vector.Rasterizer
	occlusion  []ColumnSpan
}

// NewSampler creates a sampler. filter is config.FilterNearest or config.FilterBilinear.
func NewSampler(textures TexturePixels, shadow ShadowModel, filter string) *Sampler {
	s := &Sampler{
		textures:   textures,
		shadow:     shadow,
		rasterizer: vector.NewRasterizer(1, 1),
	}
	s.SetFilter(filter)
	return s
}

// SetFilter switches the texture interpolator
func (s *Sampler) SetFilter(filter string) {
	if filter == config.FilterBilinear {
		s.filter = draw.ApproxBiLinear
		return
	}
	s.filter = draw.NearestNeighbor
}

// SetShadow replaces the shadow model
func (s *Sampler) SetShadow(shadow ShadowModel) {
	s.shadow = shadow
}

// SetOcclusion sets the per-column wall spans polygons are hidden behind.
// A nil slice disables occlusion.
func (s *Sampler) SetOcclusion(spans []ColumnSpan) {
	s.occlusion = spans
}

// Draw paints one queued surface into dst. It reports whether anything was drawn.
func (s *Sampler) Draw(dst *image.RGBA, r Renderable) bool {
	surface := r.Base()
	if len(surface.Points) < 3 {
		return false
	}
	factor := s.shadow.Factor(surface.Distance)

	var raster *image.RGBA
	if surface.Texture != nil && s.textures != nil {
		raster = s.textures.Lookup(surface.Texture)
	}
	if raster == nil || len(surface.TexCoords) != len(surface.Points) {
		return s.fill(dst, surface, s.shadow.Apply(surface.Color, factor))
	}

	drew := false
	for _, tri := range Triangulate(surface.Points) {
		if s.drawTriangle(dst, raster, tri, surface) {
			drew = true
		}
	}
	if !drew {
		return false
	}

	// One overlay for the whole polygon so triangle seams don't show in the shading
	if alpha := s.shadow.overlayAlpha(factor); alpha > 0 {
		c := s.shadow.Color
		s.fill(dst, surface, color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha})
	}
	return true
}

// fill paints the polygon's coverage with a single color
func (s *Sampler) fill(dst *image.RGBA, surface *Surface, c color.Color) bool {
	mask := s.coverage(dst.Bounds(), surface.Points, surface.Depth)
	if mask == nil {
		return false
	}
	draw.DrawMask(dst, mask.Rect, image.NewUniform(c), image.Point{}, mask, mask.Rect.Min, draw.Over)
	return true
}

// drawTriangle maps the texture onto one triangle of the polygon
func (s *Sampler) drawTriangle(dst *image.RGBA, raster *image.RGBA, tri [3]mgl64.Vec2, surface *Surface) bool {
	mask := s.coverage(dst.Bounds(), tri[:], surface.Depth)
	if mask == nil {
		return false
	}

	texW := float64(raster.Bounds().Dx())
	texH := float64(raster.Bounds().Dy())
	var texPts [3]mgl64.Vec2
	for i, p := range tri {
		uv := UVFor(p, surface.Points, surface.TexCoords)
		texPts[i] = mgl64.Vec2{uv.X() * texW, uv.Y() * texH}
	}

	src, sr := wrapSource(raster, texPts[:])
	s.filter.Transform(dst, AffineFromTriangle(tri, texPts), src, sr, draw.Over, &draw.Options{
		DstMask: mask,
	})
	return true
}

// coverage rasterizes a polygon into a hard-edged mask positioned in dst coordinates.
// Pixels covered by a nearer wall column are removed. It returns nil for empty masks.
func (s *Sampler) coverage(clip image.Rectangle, points []mgl64.Vec2, depth float64) *image.Alpha {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X()), math.Max(maxX, p.X())
		minY, maxY = math.Min(minY, p.Y()), math.Max(maxY, p.Y())
	}
	if math.IsNaN(minX) || math.IsNaN(minY) || math.IsNaN(maxX) || math.IsNaN(maxY) {
		return nil
	}

	rect := image.Rect(
		int(math.Floor(math.Max(minX, float64(clip.Min.X)))),
		int(math.Floor(math.Max(minY, float64(clip.Min.Y)))),
		int(math.Ceil(math.Min(maxX, float64(clip.Max.X)))),
		int(math.Ceil(math.Min(maxY, float64(clip.Max.Y)))),
	).Intersect(clip)
	if rect.Empty() {
		return nil
	}

	w, h := rect.Dx(), rect.Dy()
	z := s.rasterizer
	z.Reset(w, h)
	z.DrawOp = draw.Src
	offX, offY := float64(rect.Min.X), float64(rect.Min.Y)
	z.MoveTo(float32(points[0].X()-offX), float32(points[0].Y()-offY))
	for _, p := range points[1:] {
		z.LineTo(float32(p.X()-offX), float32(p.Y()-offY))
	}
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	covered := false
	for y := 0; y < h; y++ {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		for x := range row {
			// Hard edges. Two triangles sharing an edge split a pixel's coverage, so
			// at least one of them reaches half and no hole opens along the diagonal.
			if row[x] < 127 || s.occluded(rect.Min.X+x, rect.Min.Y+y, depth) {
				row[x] = 0
				continue
			}
			row[x] = 255
			covered = true
		}
	}
	if !covered {
		return nil
	}

	mask.Rect = rect
	return mask
}

// occluded reports whether a nearer wall column covers the pixel. Both depths are
// measured along the view direction; the surface uses its centroid.
func (s *Sampler) occluded(x, y int, depth float64) bool {
	if x < 0 || x >= len(s.occlusion) {
		return false
	}
	span := s.occlusion[x]
	return span.Depth < depth && y >= span.Top && y < span.Bottom
}

// Triangulate splits a convex screen polygon into triangles. Quads are always split
// along the 0-2 diagonal; larger polygons are fanned around their centroid.
func Triangulate(points []mgl64.Vec2) [][3]mgl64.Vec2 {
	switch n := len(points); {
	case n < 3:
		return nil
	case n == 3:
		return [][3]mgl64.Vec2{{points[0], points[1], points[2]}}
	case n == 4:
		return [][3]mgl64.Vec2{
			{points[0], points[1], points[2]},
			{points[0], points[2], points[3]},
		}
	default:
		var center mgl64.Vec2
		for _, p := range points {
			center = center.Add(p)
		}
		center = center.Mul(1 / float64(n))

		tris := make([][3]mgl64.Vec2, n)
		for i := range points {
			tris[i] = [3]mgl64.Vec2{center, points[i], points[(i+1)%n]}
		}
		return tris
	}
}

// UVFor returns the texture coordinate of a screen point: the coordinate of an
// identical point in points, else that of the nearest one
func UVFor(p mgl64.Vec2, points, uvs []mgl64.Vec2) mgl64.Vec2 {
	best := -1
	bestDist := math.Inf(1)
	for i, q := range points {
		if i >= len(uvs) {
			break
		}
		if q == p {
			return uvs[i]
		}
		if d := q.Sub(p).LenSqr(); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return mgl64.Vec2{}
	}
	return uvs[best]
}

// AffineFromTriangle solves the affine map taking the texture-space triangle tex onto
// the screen triangle screen. A degenerate texture triangle yields the identity.
func AffineFromTriangle(screen, tex [3]mgl64.Vec2) f64.Aff3 {
	texDelta := mgl64.Mat2FromCols(tex[1].Sub(tex[0]), tex[2].Sub(tex[0]))
	if math.Abs(texDelta.Det()) < affineEpsilon {
		return identityAffine
	}
	screenDelta := mgl64.Mat2FromCols(screen[1].Sub(screen[0]), screen[2].Sub(screen[0]))

	m := screenDelta.Mul2(texDelta.Inv())
	offset := screen[0].Sub(m.Mul2x1(tex[0]))
	return f64.Aff3{
		m.At(0, 0), m.At(0, 1), offset.X(),
		m.At(1, 0), m.At(1, 1), offset.Y(),
	}
}

// wrapSource returns the image and source rectangle to transform from. Texture
// coordinates outside the raster (flowing water) read from a repeating view of it.
func wrapSource(raster *image.RGBA, texPts []mgl64.Vec2) (image.Image, image.Rectangle) {
	bounds := raster.Bounds()
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range texPts {
		minX, maxX = math.Min(minX, p.X()), math.Max(maxX, p.X())
		minY, maxY = math.Min(minY, p.Y()), math.Max(maxY, p.Y())
	}
	need := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	).Union(bounds)
	if need == bounds {
		return raster, bounds
	}
	return &repeatImage{src: raster, rect: need}, need
}

// repeatImage tiles a raster over an arbitrary rectangle
type repeatImage struct {
	src  *image.RGBA
	rect image.Rectangle
}

func (r *repeatImage) ColorModel() color.Model {
	return color.RGBAModel
}

func (r *repeatImage) Bounds() image.Rectangle {
	return r.rect
}

func (r *repeatImage) At(x, y int) color.Color {
	return r.RGBAAt(x, y)
}

// RGBAAt returns the source pixel at (x, y) wrapped into the raster
func (r *repeatImage) RGBAAt(x, y int) color.RGBA {
	b := r.src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return color.RGBA{}
	}
	x = mathutil.IntMod(x-b.Min.X, w) + b.Min.X
	y = mathutil.IntMod(y-b.Min.Y, h) + b.Min.Y
	return r.src.RGBAAt(x, y)
}
