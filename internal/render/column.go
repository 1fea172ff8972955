package render

import (
	"image"
	"image/color"
	"math"
	"sort"

	"reddust/internal/graphics"
	"reddust/internal/mathutil"
	"reddust/internal/world"

	"github.com/go-gl/mathgl/mgl64"
)

// parallelEpsilon is the smallest ray/wall determinant treated as an intersection
const parallelEpsilon = 1e-9

// TexturePixels resolves texture handles to decoded pixels.
// A nil result means the texture is missing or undecodable.
type TexturePixels interface {
	Lookup(tex *graphics.Texture) *image.RGBA
}

// HitKind tells what a column ray hit
type HitKind int

const (
	HitWall HitKind = iota
	HitPillar
)

// ColumnHit is one wall or pillar intersection along a column's ray
type ColumnHit struct {
	Kind     HitKind
	Index    int     // Index into the scene's Walls or Pillars
	Direct   float64 // Distance along the ray
	Perp     float64 // Distance along the camera's forward axis
	U        float64 // Horizontal texture coordinate in [0,1]
	Height   float64
	BaseY    float64
	Color    color.RGBA
	Texture  *graphics.Texture
	Top      float64 // Unclamped screen rows
	Bottom   float64
	HitPoint mgl64.Vec2 // World x, z
}

// ColumnSpan records the nearest wall drawn in a screen column.
// Depth is +Inf for columns with no wall.
type ColumnSpan struct {
	Depth  float64
	Top    int
	Bottom int
}

// ColumnCaster draws walls and pillars one screen column at a time
type ColumnCaster struct {
	angles    []float64 // Ray angle relative to the view direction, per column
	cosAngles []float64
	width     int
	fov       float64

	// Per-frame scratch
	walls   []int
	pillars []int
	hits    []ColumnHit
}

// NewColumnCaster creates a column caster; its angle table is built on first use
func NewColumnCaster() *ColumnCaster {
	return &ColumnCaster{}
}

// Angle returns the ray angle of column x relative to the view direction
func (cc *ColumnCaster) Angle(viewport Viewport, x int) float64 {
	cc.ensureAngles(viewport)
	if x < 0 || x >= len(cc.angles) {
		return 0
	}
	return cc.angles[x]
}

// ensureAngles rebuilds the angle table when the width or FOV changed
func (cc *ColumnCaster) ensureAngles(viewport Viewport) {
	if cc.width == viewport.Width && cc.fov == viewport.FOV && len(cc.angles) == viewport.Width {
		return
	}
	cc.width = viewport.Width
	cc.fov = viewport.FOV
	cc.angles = make([]float64, viewport.Width)
	cc.cosAngles = make([]float64, viewport.Width)

	halfWidth := float64(viewport.Width) / 2
	tanHalfFov := math.Tan(viewport.FOV / 2)
	for x := 0; x < viewport.Width; x++ {
		normalizedX := (float64(x)+0.5)/halfWidth - 1
		cc.angles[x] = math.Atan(normalizedX * tanHalfFov)
		cc.cosAngles[x] = math.Cos(cc.angles[x])
	}
}

// prepare picks the walls and pillars that can be in front of the camera this frame
func (cc *ColumnCaster) prepare(scene *world.Scene, cam *world.Camera, viewport Viewport) {
	cc.ensureAngles(viewport)
	cc.walls = cc.walls[:0]
	cc.pillars = cc.pillars[:0]

	flat := world.Camera{Position: cam.Position, Yaw: cam.Yaw}
	for i := range scene.Walls {
		w := &scene.Walls[i]
		a := TransformToCameraSpace(w.Start, &flat)
		b := TransformToCameraSpace(w.End, &flat)
		if a.Z() <= viewport.Near && b.Z() <= viewport.Near {
			continue
		}
		cc.walls = append(cc.walls, i)
	}
	for i := range scene.Pillars {
		p := &scene.Pillars[i]
		if p.Radius <= 0 {
			continue
		}
		center := TransformToCameraSpace(mgl64.Vec3{p.X, cam.Position.Y(), p.Z}, &flat)
		if center.Z()+p.Radius <= viewport.Near {
			continue
		}
		cc.pillars = append(cc.pillars, i)
	}
}

// CastColumn returns every hit along column x, farthest first
func (cc *ColumnCaster) CastColumn(scene *world.Scene, cam *world.Camera, viewport Viewport, x int) []ColumnHit {
	cc.prepare(scene, cam, viewport)
	if x < 0 || x >= viewport.Width {
		return nil
	}
	return cc.castColumn(scene, cam, viewport, x)
}

func (cc *ColumnCaster) castColumn(scene *world.Scene, cam *world.Camera, viewport Viewport, x int) []ColumnHit {
	cc.hits = cc.hits[:0]

	angle := cc.angles[x]
	cosAngle := cc.cosAngles[x]
	fx, fz := cam.Forward()
	rx, rz := cam.Right()
	sinA := math.Sin(angle)
	dirX := fx*cosAngle + rx*sinA
	dirZ := fz*cosAngle + rz*sinA
	originX, originZ := cam.Position.X(), cam.Position.Z()

	for _, i := range cc.walls {
		w := &scene.Walls[i]
		s, t, ok := intersectWall(originX, originZ, dirX, dirZ, w)
		if !ok {
			continue
		}
		perp := s * cosAngle
		if perp <= viewport.Near || perp >= viewport.Far {
			continue
		}
		cc.hits = append(cc.hits, ColumnHit{
			Kind:     HitWall,
			Index:    i,
			Direct:   s,
			Perp:     perp,
			U:        t,
			Height:   w.Height,
			BaseY:    w.BaseY(),
			Color:    w.Color,
			Texture:  w.Texture,
			HitPoint: mgl64.Vec2{originX + dirX*s, originZ + dirZ*s},
		})
	}

	for _, i := range cc.pillars {
		p := &scene.Pillars[i]
		s, ok := intersectPillar(originX, originZ, dirX, dirZ, p)
		if !ok {
			continue
		}
		perp := s * cosAngle
		if perp <= viewport.Near || perp >= viewport.Far {
			continue
		}
		hitX, hitZ := originX+dirX*s, originZ+dirZ*s
		u := (math.Atan2(hitZ-p.Z, hitX-p.X) + math.Pi) / (2 * math.Pi)
		u -= math.Floor(u)
		cc.hits = append(cc.hits, ColumnHit{
			Kind:     HitPillar,
			Index:    i,
			Direct:   s,
			Perp:     perp,
			U:        u,
			Height:   p.Height,
			BaseY:    p.BaseY,
			Color:    p.Color,
			Texture:  p.Texture,
			HitPoint: mgl64.Vec2{hitX, hitZ},
		})
	}

	sort.SliceStable(cc.hits, func(a, b int) bool {
		return cc.hits[a].Perp > cc.hits[b].Perp
	})

	horizon := viewport.Horizon(cam.Pitch)
	scale := viewport.ProjectionScale()
	for h := range cc.hits {
		cc.hits[h].Top, cc.hits[h].Bottom = columnExtent(&cc.hits[h], cam.Position.Y(), horizon, scale)
	}
	return cc.hits
}

// columnExtent returns the screen rows covered by a hit. The band is centered on
// the horizon and shifted by the eye's height above the object's vertical middle.
func columnExtent(hit *ColumnHit, eyeY, horizon, scale float64) (top, bottom float64) {
	screenHeight := scale * hit.Height / hit.Perp
	offset := (eyeY - (hit.BaseY + hit.Height/2)) / hit.Perp * scale
	return horizon - screenHeight/2 + offset, horizon + screenHeight/2 + offset
}

// intersectWall intersects a ray with a wall segment in the x,z plane.
// s is the distance along the (unit) ray and t the position along the wall.
func intersectWall(originX, originZ, dirX, dirZ float64, w *world.Wall) (s, t float64, ok bool) {
	wallDirX := w.End.X() - w.Start.X()
	wallDirZ := w.End.Z() - w.Start.Z()

	det := -dirX*wallDirZ + dirZ*wallDirX
	if math.Abs(det) < parallelEpsilon {
		return 0, 0, false
	}

	deltaX := w.Start.X() - originX
	deltaZ := w.Start.Z() - originZ
	s = (-deltaX*wallDirZ + wallDirX*deltaZ) / det
	t = (dirX*deltaZ - dirZ*deltaX) / det
	if s < 0 || t < 0 || t > 1 {
		return 0, 0, false
	}
	return s, t, true
}

// intersectPillar returns the distance along a unit ray to where it enters the pillar
func intersectPillar(originX, originZ, dirX, dirZ float64, p *world.Pillar) (float64, bool) {
	if p.Radius <= 0 {
		return 0, false
	}
	toCenterX := p.X - originX
	toCenterZ := p.Z - originZ
	projection := toCenterX*dirX + toCenterZ*dirZ
	distSq := toCenterX*toCenterX + toCenterZ*toCenterZ - projection*projection
	radiusSq := p.Radius * p.Radius
	if distSq > radiusSq {
		return 0, false
	}
	entry := projection - math.Sqrt(radiusSq-distSq)
	if entry < 0 {
		return 0, false
	}
	return entry, true
}

// Cast draws every wall and pillar column into dst and records the nearest wall
// per column in spans (which must have one entry per column, or be nil).
// It returns the number of columns that drew at least one hit.
func (cc *ColumnCaster) Cast(dst *image.RGBA, scene *world.Scene, cam *world.Camera, viewport Viewport,
	shadow ShadowModel, textures TexturePixels, spans []ColumnSpan) int {

	cc.prepare(scene, cam, viewport)
	for x := range spans {
		spans[x] = ColumnSpan{Depth: math.Inf(1)}
	}
	if len(cc.walls) == 0 && len(cc.pillars) == 0 {
		return 0
	}

	wallRasters := make(map[*graphics.Texture]*image.RGBA)
	rasterFor := func(tex *graphics.Texture) *image.RGBA {
		if tex == nil || textures == nil {
			return nil
		}
		raster, ok := wallRasters[tex]
		if !ok {
			raster = textures.Lookup(tex)
			wallRasters[tex] = raster
		}
		return raster
	}

	drawn := 0
	for x := 0; x < viewport.Width; x++ {
		hits := cc.castColumn(scene, cam, viewport, x)
		if len(hits) == 0 {
			continue
		}
		drawn++

		// Back to front so nearer hits cover farther ones
		for i := range hits {
			hit := &hits[i]
			drawColumn(dst, x, hit, rasterFor(hit.Texture), shadow.Factor(hit.Perp), shadow)
		}

		if spans != nil && x < len(spans) {
			nearest := &hits[len(hits)-1]
			spans[x] = ColumnSpan{
				Depth:  nearest.Perp,
				Top:    int(math.Floor(nearest.Top)),
				Bottom: int(math.Ceil(nearest.Bottom)),
			}
		}
	}
	return drawn
}

// drawColumn fills one pixel-wide strip for a hit, textured when a raster is available
func drawColumn(dst *image.RGBA, x int, hit *ColumnHit, raster *image.RGBA, factor float64, shadow ShadowModel) {
	bounds := dst.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X {
		return
	}
	span := hit.Bottom - hit.Top
	if span <= 0 {
		return
	}
	yStart := max(bounds.Min.Y, int(math.Floor(hit.Top)))
	yEnd := min(bounds.Max.Y, int(math.Ceil(hit.Bottom)))
	if yStart >= yEnd {
		return
	}

	if raster == nil {
		c := shadow.Apply(hit.Color, factor)
		for y := yStart; y < yEnd; y++ {
			dst.SetRGBA(x, y, c)
		}
		return
	}

	texBounds := raster.Bounds()
	texW, texH := texBounds.Dx(), texBounds.Dy()
	texX := mathutil.IntClamp(int(hit.U*float64(texW)), 0, texW-1)
	for y := yStart; y < yEnd; y++ {
		// The texture repeats once per unit of height
		v := (float64(y) + 0.5 - hit.Top) / span * hit.Height
		v -= math.Floor(v)
		texY := mathutil.IntClamp(int(v*float64(texH)), 0, texH-1)
		c := raster.RGBAAt(texBounds.Min.X+texX, texBounds.Min.Y+texY)
		dst.SetRGBA(x, y, shadow.Apply(c, factor))
	}
}
