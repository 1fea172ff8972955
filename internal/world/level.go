package world

import (
	"math"

	"reddust/internal/config"
	"reddust/internal/graphics"

	"github.com/go-gl/mathgl/mgl64"
)

// TextureSource resolves texture names to handles; nil means "no texture"
type TextureSource interface {
	Texture(name string) *graphics.Texture
}

// Level converts a tile map into world geometry. One map cell spans TileSize
// world units in x and z; tile heights are given in tile units.
type Level struct {
	Map      *MapData
	Tiles    *TileManager
	TileSize float64
}

// NewLevel creates a level over loaded map data
func NewLevel(mapData *MapData, tiles *TileManager, tileSize float64) *Level {
	if tileSize <= 0 {
		tileSize = 1
	}
	return &Level{Map: mapData, Tiles: tiles, TileSize: tileSize}
}

// BuildScene produces the level geometry. Textures may be nil.
func (l *Level) BuildScene(textures TextureSource) *Scene {
	scene := &Scene{}
	lookup := func(name string) *graphics.Texture {
		if textures == nil || name == "" {
			return nil
		}
		return textures.Texture(name)
	}
	fallback := l.Tiles.DefaultFloor()

	for row := 0; row < l.Map.Height; row++ {
		for col := 0; col < l.Map.Width; col++ {
			id := l.Map.Tiles[row][col]
			data := l.Tiles.GetTileData(id)
			if data == nil {
				continue
			}
			switch data.Kind {
			case config.TileKindFloor:
				scene.Floors = append(scene.Floors, l.floor(col, row, data.Base, data, lookup))
			case config.TileKindSpawn, config.TileKindPillar:
				floorData := data
				if isZeroColor(data.FloorColor) && fallback != nil {
					floorData = fallback
				}
				base := data.Base
				scene.Floors = append(scene.Floors, l.floor(col, row, base, floorData, lookup))
				if data.Kind == config.TileKindPillar {
					cx, cz := l.cellCenter(col, row)
					scene.Pillars = append(scene.Pillars, Pillar{
						X:       cx,
						Z:       cz,
						Radius:  data.Radius * l.TileSize,
						Height:  data.Height * l.TileSize,
						BaseY:   base * l.TileSize,
						Color:   config.RGB(data.WallColor),
						Texture: lookup(data.WallTexture),
					})
				}
			case config.TileKindWall:
				l.appendWallFaces(scene, col, row, data, lookup)
			case config.TileKindRamp:
				scene.Ramps = append(scene.Ramps, Ramp{
					Corners: l.rampCorners(col, row, data),
					Color:   config.RGB(data.FloorColor),
					Texture: lookup(data.FloorTexture),
				})
			case config.TileKindWater:
				x0, z0, x1, z1 := l.cellBounds(col, row)
				scene.Water = append(scene.Water, WaterSurface{
					X1: x0, Z1: z0, X2: x1, Z2: z1,
					Y:          data.Base * l.TileSize,
					Depth:      data.Depth * l.TileSize,
					WaveSpeed:  data.WaveSpeed,
					WaveHeight: data.WaveHeight * l.TileSize,
					Color:      config.RGB(data.WallColor),
					Texture:    lookup(data.WallTexture),
				})
				// Pool bottom
				scene.Floors = append(scene.Floors, l.floor(col, row, data.Base-data.Depth, data, lookup))
			}
		}
	}
	return scene
}

func (l *Level) floor(col, row int, base float64, data *config.TileData, lookup func(string) *graphics.Texture) Floor {
	x0, z0, x1, z1 := l.cellBounds(col, row)
	return Floor{
		X1: x0, Z1: z0, X2: x1, Z2: z1,
		Y:       base * l.TileSize,
		Color:   config.RGB(data.FloorColor),
		Texture: lookup(data.FloorTexture),
	}
}

// appendWallFaces emits the faces of a block wall that are not hidden by a
// neighbouring wall covering the same span, plus a top cap for low walls.
func (l *Level) appendWallFaces(scene *Scene, col, row int, data *config.TileData, lookup func(string) *graphics.Texture) {
	x0, z0, x1, z1 := l.cellBounds(col, row)
	base := data.Base * l.TileSize
	height := data.Height * l.TileSize
	clr := config.RGB(data.WallColor)
	tex := lookup(data.WallTexture)

	faces := []struct {
		dc, dr     int
		start, end [2]float64
	}{
		{0, -1, [2]float64{x0, z0}, [2]float64{x1, z0}}, // north
		{1, 0, [2]float64{x1, z0}, [2]float64{x1, z1}},  // east
		{0, 1, [2]float64{x1, z1}, [2]float64{x0, z1}},  // south
		{-1, 0, [2]float64{x0, z1}, [2]float64{x0, z0}}, // west
	}
	for _, face := range faces {
		if l.coveredBy(col+face.dc, row+face.dr, data) {
			continue
		}
		scene.Walls = append(scene.Walls, Wall{
			Start:   mgl64.Vec3{face.start[0], base, face.start[1]},
			End:     mgl64.Vec3{face.end[0], base, face.end[1]},
			Height:  height,
			Color:   clr,
			Texture: tex,
		})
	}

	if data.Height < 1 {
		scene.Floors = append(scene.Floors, Floor{
			X1: x0, Z1: z0, X2: x1, Z2: z1,
			Y:       base + height,
			Color:   clr,
			Texture: tex,
		})
	}
}

// coveredBy reports whether the neighbour cell hides a face of wall
func (l *Level) coveredBy(col, row int, wall *config.TileData) bool {
	other := l.Tiles.GetTileData(l.Map.TileAt(col, row))
	if other == nil || other.Kind != config.TileKindWall {
		return false
	}
	return other.Base <= wall.Base && other.Base+other.Height >= wall.Base+wall.Height
}

func (l *Level) rampCorners(col, row int, data *config.TileData) [4]mgl64.Vec3 {
	x0, z0, x1, z1 := l.cellBounds(col, row)
	low := data.Base * l.TileSize
	high := (data.Base + data.Rise) * l.TileSize

	// Heights for corners (x0,z0), (x1,z0), (x1,z1), (x0,z1)
	var y [4]float64
	switch data.Direction {
	case "north":
		y = [4]float64{high, high, low, low}
	case "south":
		y = [4]float64{low, low, high, high}
	case "east":
		y = [4]float64{low, high, high, low}
	default: // west
		y = [4]float64{high, low, low, high}
	}
	return [4]mgl64.Vec3{
		{x0, y[0], z0},
		{x1, y[1], z0},
		{x1, y[2], z1},
		{x0, y[3], z1},
	}
}

func (l *Level) cellBounds(col, row int) (x0, z0, x1, z1 float64) {
	s := l.TileSize
	return float64(col) * s, float64(row) * s, float64(col+1) * s, float64(row+1) * s
}

func (l *Level) cellCenter(col, row int) (float64, float64) {
	s := l.TileSize
	return (float64(col) + 0.5) * s, (float64(row) + 0.5) * s
}

// CellAt returns the map cell containing world position (x, z)
func (l *Level) CellAt(x, z float64) (int, int) {
	return int(math.Floor(x / l.TileSize)), int(math.Floor(z / l.TileSize))
}

// IsTileBlocking implements collision.TileChecker
func (l *Level) IsTileBlocking(tileX, tileY int) bool {
	id := l.Map.TileAt(tileX, tileY)
	if id == TileNone {
		return true
	}
	return l.Tiles.IsSolid(id)
}

// GetWorldBounds implements collision.TileChecker
func (l *Level) GetWorldBounds() (width, height int) {
	return l.Map.Width, l.Map.Height
}

// GroundHeight returns the height a walker stands on at (x, z).
// Water cells report their pool bottom.
func (l *Level) GroundHeight(x, z float64) float64 {
	col, row := l.CellAt(x, z)
	data := l.Tiles.GetTileData(l.Map.TileAt(col, row))
	if data == nil {
		return 0
	}
	switch data.Kind {
	case config.TileKindWall:
		return (data.Base + data.Height) * l.TileSize
	case config.TileKindWater:
		return (data.Base - data.Depth) * l.TileSize
	case config.TileKindRamp:
		fx := x/l.TileSize - float64(col)
		fz := z/l.TileSize - float64(row)
		var along float64
		switch data.Direction {
		case "north":
			along = 1 - fz
		case "south":
			along = fz
		case "east":
			along = fx
		default:
			along = 1 - fx
		}
		return (data.Base + data.Rise*along) * l.TileSize
	default:
		return data.Base * l.TileSize
	}
}

// SpawnPosition returns the eye position above the spawn cell, or the map
// centre when the map has no spawn tile
func (l *Level) SpawnPosition(eyeHeight float64) mgl64.Vec3 {
	col, row := l.Map.StartX, l.Map.StartY
	if col < 0 || row < 0 {
		col, row = l.Map.Width/2, l.Map.Height/2
	}
	x, z := l.cellCenter(col, row)
	return mgl64.Vec3{x, l.GroundHeight(x, z) + eyeHeight*l.TileSize, z}
}

func isZeroColor(c [3]int) bool {
	return c[0] == 0 && c[1] == 0 && c[2] == 0
}
