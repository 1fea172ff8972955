package config

// Tile kinds understood by the level converter
const (
	TileKindEmpty  = "empty"
	TileKindFloor  = "floor"
	TileKindWall   = "wall"
	TileKindPillar = "pillar"
	TileKindRamp   = "ramp"
	TileKindWater  = "water"
	TileKindSpawn  = "spawn"
)

type TileConfig struct {
	TileData map[string]TileData `yaml:"tiles"`
}

// TileData describes how one map letter turns into world geometry.
// Heights are in tile units; Base is the ground level of the tile.
type TileData struct {
	Name   string `yaml:"name"`
	Letter string `yaml:"letter"`
	Kind   string `yaml:"kind"`
	Solid  bool   `yaml:"solid"`

	Base   float64 `yaml:"base"`
	Height float64 `yaml:"height"` // Wall and pillar height above Base
	Radius float64 `yaml:"radius"` // Pillars, in tiles

	// Ramps rise by Rise toward Direction ("north", "south", "east", "west")
	Direction string  `yaml:"direction,omitempty"`
	Rise      float64 `yaml:"rise,omitempty"`

	// Water surfaces sit at Base; the pool floor is Depth below it
	Depth      float64 `yaml:"depth,omitempty"`
	WaveSpeed  float64 `yaml:"wave_speed,omitempty"`
	WaveHeight float64 `yaml:"wave_height,omitempty"`

	WallColor    [3]int `yaml:"wall_color"`
	FloorColor   [3]int `yaml:"floor_color"`
	WallTexture  string `yaml:"wall_texture,omitempty"`
	FloorTexture string `yaml:"floor_texture,omitempty"`
}
