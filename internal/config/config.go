package config

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all viewer and renderer configuration values
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Camera   CameraConfig   `yaml:"camera"`
	Movement MovementConfig `yaml:"movement"`
	Render   RenderConfig   `yaml:"render"`
	Shadows  ShadowConfig   `yaml:"shadows"`
	Water    WaterConfig    `yaml:"water"`
	Assets   AssetsConfig   `yaml:"assets"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	// RenderScale divides the screen size to get the raster size (1 = full resolution)
	RenderScale int `yaml:"render_scale"`
}

type CameraConfig struct {
	FieldOfView float64 `yaml:"field_of_view"` // Horizontal FOV in degrees
	EyeHeight   float64 `yaml:"eye_height"`    // Camera height above the ground under it
	MaxPitch    float64 `yaml:"max_pitch"`     // Degrees
}

type MovementConfig struct {
	MoveSpeed           float64 `yaml:"move_speed"`     // Tiles per second
	RotationSpeed       float64 `yaml:"rotation_speed"` // Radians per second
	PitchSpeed          float64 `yaml:"pitch_speed"`    // Radians per second
	TurnSpringFrequency float64 `yaml:"turn_spring_frequency"`
	TurnSpringDamping   float64 `yaml:"turn_spring_damping"`
	CollisionSize       float64 `yaml:"collision_size"` // Player box edge in tiles
}

type RenderConfig struct {
	NearPlane float64 `yaml:"near_plane"`
	FarPlane  float64 `yaml:"far_plane"`
	// ProjectionScale overrides the FOV-derived projection scale when > 0
	ProjectionScale float64 `yaml:"projection_scale"`
	WallMode        string  `yaml:"wall_mode"`      // "columns" or "polygons"
	TextureFilter   string  `yaml:"texture_filter"` // "nearest" or "bilinear"
	OccludeSurfaces bool    `yaml:"occlude_surfaces"`
	SkyColor        [3]int  `yaml:"sky_color"`
	GroundColor     [3]int  `yaml:"ground_color"`
}

type ShadowConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Distance     float64 `yaml:"distance"`
	Intensity    float64 `yaml:"intensity"`
	AmbientLight float64 `yaml:"ambient_light"`
	Color        [3]int  `yaml:"color"`
}

type WaterConfig struct {
	// SortBias is subtracted from a water surface's sort distance when the camera is
	// within BiasThreshold of the surface height, so water wins ties against floors.
	SortBias        float64 `yaml:"sort_bias"`
	BiasThreshold   float64 `yaml:"bias_threshold"`
	FlowSpeed       float64 `yaml:"flow_speed"`      // Texture u offset per second
	BoundInflation  float64 `yaml:"bound_inflation"` // Grows the quad to avoid z-fighting with floors
	UnderwaterTint  [3]int  `yaml:"underwater_tint"`
	UnderwaterAlpha float64 `yaml:"underwater_alpha"`
}

type AssetsConfig struct {
	TilesFile      string  `yaml:"tiles_file"`
	MapFile        string  `yaml:"map_file"`
	TextureDir     string  `yaml:"texture_dir"`
	TileSize       float64 `yaml:"tile_size"`
	PreloadWorkers int     `yaml:"preload_workers"`
}

// Wall modes
const (
	WallModeColumns  = "columns"
	WallModePolygons = "polygons"
)

// Texture filters
const (
	FilterNearest  = "nearest"
	FilterBilinear = "bilinear"
)

var GlobalConfig *Config

// Default returns a configuration with every field populated.
// LoadConfig unmarshals on top of it, so config files only need the values they change.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  640,
			ScreenHeight: 480,
			WindowTitle:  "Red Dust",
			Resizable:    true,
			RenderScale:  1,
		},
		Camera: CameraConfig{
			FieldOfView: 60,
			EyeHeight:   0.5,
			MaxPitch:    30,
		},
		Movement: MovementConfig{
			MoveSpeed:           2.5,
			RotationSpeed:       2.2,
			PitchSpeed:          1.0,
			TurnSpringFrequency: 6.0,
			TurnSpringDamping:   1.0,
			CollisionSize:       0.3,
		},
		Render: RenderConfig{
			NearPlane:       0.1,
			FarPlane:        50,
			WallMode:        WallModeColumns,
			TextureFilter:   FilterNearest,
			OccludeSurfaces: true,
			SkyColor:        [3]int{40, 44, 70},
			GroundColor:     [3]int{28, 24, 22},
		},
		Shadows: ShadowConfig{
			Enabled:      true,
			Distance:     20,
			Intensity:    0.8,
			AmbientLight: 0.2,
			Color:        [3]int{0, 0, 0},
		},
		Water: WaterConfig{
			SortBias:        1.0,
			BiasThreshold:   0.5,
			FlowSpeed:       0.05,
			BoundInflation:  0.01,
			UnderwaterTint:  [3]int{20, 60, 140},
			UnderwaterAlpha: 0.35,
		},
		Assets: AssetsConfig{
			TilesFile:      "assets/tiles.yaml",
			MapFile:        "assets/maps/demo.map",
			TextureDir:     "assets/textures",
			TileSize:       1.0,
			PreloadWorkers: 0,
		},
	}
}

// LoadConfig loads the configuration from a YAML file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Set global config for easy access
	GlobalConfig = cfg
	return cfg, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	cfg, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return cfg
}

// Validate rejects values the renderer cannot work with
func (c *Config) Validate() error {
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		return fmt.Errorf("invalid screen size %dx%d", c.Display.ScreenWidth, c.Display.ScreenHeight)
	}
	if c.Camera.FieldOfView <= 0 || c.Camera.FieldOfView >= 180 {
		return fmt.Errorf("field_of_view must be in (0, 180), got %v", c.Camera.FieldOfView)
	}
	if c.Render.NearPlane <= 0 || c.Render.FarPlane <= c.Render.NearPlane {
		return fmt.Errorf("invalid clip planes near=%v far=%v", c.Render.NearPlane, c.Render.FarPlane)
	}
	switch c.Render.WallMode {
	case WallModeColumns, WallModePolygons:
	default:
		return fmt.Errorf("unknown wall_mode %q", c.Render.WallMode)
	}
	switch c.Render.TextureFilter {
	case FilterNearest, FilterBilinear:
	default:
		return fmt.Errorf("unknown texture_filter %q", c.Render.TextureFilter)
	}
	return nil
}

// Helper functions for easy access to commonly used values

func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

// GetRasterSize returns the size of the frame the renderer draws into
func (c *Config) GetRasterSize() (int, int) {
	scale := c.Display.RenderScale
	if scale < 1 {
		scale = 1
	}
	return max(1, c.Display.ScreenWidth/scale), max(1, c.Display.ScreenHeight/scale)
}

func (c *Config) GetFOVRadians() float64 {
	return c.Camera.FieldOfView * math.Pi / 180
}

func (c *Config) GetMaxPitchRadians() float64 {
	return c.Camera.MaxPitch * math.Pi / 180
}

func (c *Config) GetTileSize() float64 {
	if c.Assets.TileSize <= 0 {
		return 1
	}
	return c.Assets.TileSize
}

// RGB converts a [3]int config color into an opaque color.RGBA
func RGB(c [3]int) color.RGBA {
	return color.RGBA{clampByte(c[0]), clampByte(c[1]), clampByte(c[2]), 255}
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
