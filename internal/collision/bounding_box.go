package collision

// Point is a position on the ground plane
type Point struct {
	X, Z float64
}

// BoundingBox is the viewer's axis-aligned footprint on the ground plane
type BoundingBox struct {
	X, Z  float64 // Center
	Width float64 // Extent along x
	Depth float64 // Extent along z
}

// NewBoundingBox creates a footprint centered at (x, z)
func NewBoundingBox(x, z, width, depth float64) *BoundingBox {
	return &BoundingBox{X: x, Z: z, Width: width, Depth: depth}
}

// At returns a copy of the footprint centered at (x, z)
func (bb *BoundingBox) At(x, z float64) *BoundingBox {
	return NewBoundingBox(x, z, bb.Width, bb.Depth)
}

// GetBounds returns the min and max corners
func (bb *BoundingBox) GetBounds() (minX, minZ, maxX, maxZ float64) {
	hw, hd := bb.Width/2, bb.Depth/2
	return bb.X - hw, bb.Z - hd, bb.X + hw, bb.Z + hd
}

// GetCorners returns the four corners of the footprint
func (bb *BoundingBox) GetCorners() [4]Point {
	minX, minZ, maxX, maxZ := bb.GetBounds()
	return [4]Point{{minX, minZ}, {maxX, minZ}, {minX, maxZ}, {maxX, maxZ}}
}

// MoveTo recenters the footprint
func (bb *BoundingBox) MoveTo(x, z float64) {
	bb.X, bb.Z = x, z
}
