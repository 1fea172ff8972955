package collision

import "math"

// TileChecker reports which map cells block movement
type TileChecker interface {
	IsTileBlocking(tileX, tileY int) bool
	GetWorldBounds() (width, height int)
}

// GroundChecker is optionally implemented by a TileChecker to report walkable height
type GroundChecker interface {
	GroundHeight(x, z float64) float64
}

// CollisionSystem keeps the viewer's footprint inside the map, out of blocking
// cells and off ledges higher than maxStep.
type CollisionSystem struct {
	tiles    TileChecker
	tileSize float64
	maxStep  float64 // <= 0 disables the step check
}

// NewCollisionSystem creates a collision system over tiles of tileSize world units
func NewCollisionSystem(tiles TileChecker, tileSize, maxStep float64) *CollisionSystem {
	if tileSize <= 0 {
		tileSize = 1
	}
	return &CollisionSystem{tiles: tiles, tileSize: tileSize, maxStep: maxStep}
}

// CanMoveTo reports whether box may be recentered at (x, z)
func (cs *CollisionSystem) CanMoveTo(box *BoundingBox, x, z float64) bool {
	target := box.At(x, z)
	return cs.clearOfWalls(target) && cs.withinStep(box, target)
}

// Move slides the box by (dx, dz). A blocked diagonal falls back to each axis on
// its own so the viewer glides along walls. It returns the new center.
func (cs *CollisionSystem) Move(box *BoundingBox, dx, dz float64) (float64, float64) {
	x, z := box.X, box.Z
	switch {
	case cs.CanMoveTo(box, x+dx, z+dz):
		x, z = x+dx, z+dz
	default:
		if dx != 0 && cs.CanMoveTo(box, x+dx, z) {
			x += dx
		}
		if dz != 0 && cs.CanMoveTo(box.At(x, z), x, z+dz) {
			z += dz
		}
	}
	box.MoveTo(x, z)
	return x, z
}

// clearOfWalls checks every cell the footprint touches; cells outside the map block
func (cs *CollisionSystem) clearOfWalls(box *BoundingBox) bool {
	if cs.tiles == nil {
		return true
	}
	width, height := cs.tiles.GetWorldBounds()
	minX, minZ, maxX, maxZ := box.GetBounds()
	col0, row0 := cs.cell(minX), cs.cell(minZ)
	col1, row1 := cs.cell(maxX), cs.cell(maxZ)

	if col0 < 0 || row0 < 0 || col1 >= width || row1 >= height {
		return false
	}
	for row := row0; row <= row1; row++ {
		for col := col0; col <= col1; col++ {
			if cs.tiles.IsTileBlocking(col, row) {
				return false
			}
		}
	}
	return true
}

func (cs *CollisionSystem) cell(v float64) int {
	return int(math.Floor(v / cs.tileSize))
}

// withinStep rejects moves whose footprint climbs more than maxStep
func (cs *CollisionSystem) withinStep(from, to *BoundingBox) bool {
	ground, ok := cs.tiles.(GroundChecker)
	if !ok || cs.maxStep <= 0 {
		return true
	}
	current := ground.GroundHeight(from.X, from.Z)
	for _, corner := range to.GetCorners() {
		if ground.GroundHeight(corner.X, corner.Z)-current > cs.maxStep {
			return false
		}
	}
	return true
}
