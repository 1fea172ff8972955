package render

import (
	"math"

	"reddust/internal/config"
	"reddust/internal/world"

	"github.com/go-gl/mathgl/mgl64"
)

// quadUVs are the texture coordinates of a quad's corners in their stored order
var quadUVs = [4]mgl64.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// SurfaceProcessor turns floors, ramps, water and (in polygon mode) walls into
// clipped, projected polygons on a render queue
type SurfaceProcessor struct {
	viewport Viewport
	water    config.WaterConfig

	dropped int
}

// NewSurfaceProcessor creates a surface processor
func NewSurfaceProcessor(viewport Viewport, water config.WaterConfig) *SurfaceProcessor {
	return &SurfaceProcessor{
		viewport: viewport,
		water:    water,
	}
}

// SetViewport updates the projection used for later surfaces
func (sp *SurfaceProcessor) SetViewport(viewport Viewport) {
	sp.viewport = viewport
}

// Dropped returns how many surfaces were discarded by clipping since the last ResetStats
func (sp *SurfaceProcessor) Dropped() int {
	return sp.dropped
}

// ResetStats clears the drop counter
func (sp *SurfaceProcessor) ResetStats() {
	sp.dropped = 0
}

// ProcessFloor queues a floor. Seen from below, the winding is reversed and v flipped.
func (sp *SurfaceProcessor) ProcessFloor(q *RenderQueue, floor *world.Floor, cam *world.Camera) bool {
	corners := floor.Corners()
	fromBelow := cam.Position.Y() < floor.Y
	verts, uvs := orientQuad(corners, quadUVs, fromBelow)

	points, texCoords, ok := sp.projectPolygon(verts, uvs, cam)
	if !ok {
		return false
	}

	q.Add(&FloorInfo{
		Surface: Surface{
			Distance:  cam.Position.Sub(centroid(corners[:])).Len(),
			Depth:     viewDepth(centroid(corners[:]), cam),
			Points:    points,
			Color:     floor.Color,
			Texture:   floor.Texture,
			TexCoords: texCoords,
		},
		Floor:     floor,
		FromBelow: fromBelow,
	})
	return true
}

// ProcessRamp queues a ramp quad with its corners in stored order
func (sp *SurfaceProcessor) ProcessRamp(q *RenderQueue, ramp *world.Ramp, cam *world.Camera) bool {
	points, texCoords, ok := sp.projectPolygon(ramp.Corners[:], quadUVs[:], cam)
	if !ok {
		return false
	}

	q.Add(&RampInfo{
		Surface: Surface{
			Distance:  cam.Position.Sub(centroid(ramp.Corners[:])).Len(),
			Depth:     viewDepth(centroid(ramp.Corners[:]), cam),
			Points:    points,
			Color:     ramp.Color,
			Texture:   ramp.Texture,
			TexCoords: texCoords,
		},
		Ramp: ramp,
	})
	return true
}

// ProcessWater queues a water surface animated to time t (seconds)
func (sp *SurfaceProcessor) ProcessWater(q *RenderQueue, water *world.WaterSurface, cam *world.Camera, t float64) bool {
	y := water.SurfaceY(t)

	// Inflate the rectangle slightly so it wins against floors sharing its edges
	inflate := sp.water.BoundInflation
	minX, maxX := math.Min(water.X1, water.X2)-inflate, math.Max(water.X1, water.X2)+inflate
	minZ, maxZ := math.Min(water.Z1, water.Z2)-inflate, math.Max(water.Z1, water.Z2)+inflate
	corners := [4]mgl64.Vec3{
		{minX, y, minZ},
		{maxX, y, minZ},
		{maxX, y, maxZ},
		{minX, y, maxZ},
	}

	flow := math.Mod(t*sp.water.FlowSpeed, 1)
	if flow < 0 {
		flow++
	}
	var uvs [4]mgl64.Vec2
	for i, uv := range quadUVs {
		uvs[i] = mgl64.Vec2{uv.X() + flow, uv.Y()}
	}

	fromBelow := y > cam.Position.Y()
	verts, texIn := orientQuad(corners, uvs, fromBelow)

	points, texCoords, ok := sp.projectPolygon(verts, texIn, cam)
	if !ok {
		return false
	}

	distance := cam.Position.Sub(centroid(corners[:])).Len()
	if math.Abs(cam.Position.Y()-y) < sp.water.BiasThreshold {
		distance -= sp.water.SortBias
	}

	q.Add(&WaterInfo{
		Surface: Surface{
			Distance:  distance,
			Depth:     viewDepth(centroid(corners[:]), cam),
			Points:    points,
			Color:     water.Color,
			Texture:   water.Texture,
			TexCoords: texCoords,
		},
		Water:        water,
		FromBelow:    fromBelow,
		CameraInside: water.Contains(cam.Position, y),
	})
	return true
}

// ProcessWall queues a wall as a textured quad, used when walls are not column cast
func (sp *SurfaceProcessor) ProcessWall(q *RenderQueue, wall *world.Wall, cam *world.Camera) bool {
	base := wall.BaseY()
	top := base + wall.Height
	corners := []mgl64.Vec3{
		{wall.Start.X(), top, wall.Start.Z()},
		{wall.End.X(), top, wall.End.Z()},
		{wall.End.X(), base, wall.End.Z()},
		{wall.Start.X(), base, wall.Start.Z()},
	}

	points, texCoords, ok := sp.projectPolygon(corners, quadUVs[:], cam)
	if !ok {
		return false
	}

	q.Add(&WallInfo{
		Surface: Surface{
			Distance:  cam.Position.Sub(centroid(corners)).Len(),
			Depth:     viewDepth(centroid(corners), cam),
			Points:    points,
			Color:     wall.Color,
			Texture:   wall.Texture,
			TexCoords: texCoords,
		},
		Wall: wall,
	})
	return true
}

// projectPolygon transforms, clips and projects a world polygon
func (sp *SurfaceProcessor) projectPolygon(corners []mgl64.Vec3, uvs []mgl64.Vec2, cam *world.Camera) ([]mgl64.Vec2, []mgl64.Vec2, bool) {
	near := sp.viewport.Near

	camVerts := make([]mgl64.Vec3, len(corners))
	anyFront := false
	for i, c := range corners {
		camVerts[i] = TransformToCameraSpace(c, cam)
		if camVerts[i].Z() > near {
			anyFront = true
		}
	}
	if !anyFront {
		sp.dropped++
		return nil, nil, false
	}

	clipped, clippedUVs := ClipPolygonToNearPlane(camVerts, uvs, near)
	if len(clipped) < 3 {
		sp.dropped++
		return nil, nil, false
	}

	points := make([]mgl64.Vec2, len(clipped))
	for i, v := range clipped {
		points[i] = sp.viewport.project(v)
	}
	return points, clippedUVs, true
}

// orientQuad returns the quad's corners and UVs, reversed with v flipped when the
// quad is seen from underneath
func orientQuad(corners [4]mgl64.Vec3, uvs [4]mgl64.Vec2, fromBelow bool) ([]mgl64.Vec3, []mgl64.Vec2) {
	verts := make([]mgl64.Vec3, 4)
	tex := make([]mgl64.Vec2, 4)
	for i := 0; i < 4; i++ {
		src := i
		if fromBelow {
			src = 3 - i
		}
		verts[i] = corners[src]
		tex[i] = uvs[src]
		if fromBelow {
			tex[i] = mgl64.Vec2{uvs[src].X(), 1 - uvs[src].Y()}
		}
	}
	return verts, tex
}

// viewDepth is the distance of p along the camera's horizontal forward axis,
// the same measure as a column hit's perpendicular distance
func viewDepth(p mgl64.Vec3, cam *world.Camera) float64 {
	fx, fz := cam.Forward()
	return (p.X()-cam.Position.X())*fx + (p.Z()-cam.Position.Z())*fz
}

// centroid returns the average of the points
func centroid(points []mgl64.Vec3) mgl64.Vec3 {
	var sum mgl64.Vec3
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(points)))
}
