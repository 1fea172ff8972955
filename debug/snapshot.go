package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"math"
	"os"

	"reddust/internal/config"
	"reddust/internal/graphics"
	"reddust/internal/render"
	"reddust/internal/threading"
	"reddust/internal/world"

	"github.com/spf13/cobra"
)

type snapshotOptions struct {
	configPath string
	mapPath    string
	outPath    string
	wallMode   string
	x, z       float64
	yaw, pitch float64
	time       float64
	noShadows  bool
}

func main() {
	opts := snapshotOptions{}
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render one frame of a map to a PNG without opening a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSnapshot(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "config.yaml", "configuration file")
	flags.StringVarP(&opts.mapPath, "map", "m", "", "map file (defaults to the configured map)")
	flags.StringVarP(&opts.outPath, "out", "o", "snapshot.png", "output PNG")
	flags.StringVar(&opts.wallMode, "walls", "", "wall mode: columns or polygons")
	flags.Float64Var(&opts.x, "x", 0, "camera x (defaults to the spawn cell)")
	flags.Float64Var(&opts.z, "z", 0, "camera z (defaults to the spawn cell)")
	flags.Float64Var(&opts.yaw, "yaw", 0, "camera yaw in degrees")
	flags.Float64Var(&opts.pitch, "pitch", 0, "camera pitch in degrees")
	flags.Float64VarP(&opts.time, "time", "t", 0, "scene time in seconds")
	flags.BoolVar(&opts.noShadows, "no-shadows", false, "disable distance shading")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func runSnapshot(cmd *cobra.Command, opts snapshotOptions) error {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.mapPath == "" {
		opts.mapPath = cfg.Assets.MapFile
	}

	tiles := world.NewTileManager()
	if err := tiles.LoadTileConfig(cfg.Assets.TilesFile); err != nil {
		return err
	}
	mapData, err := world.NewMapLoader(tiles).LoadMap(opts.mapPath)
	if err != nil {
		return err
	}
	level := world.NewLevel(mapData, tiles, cfg.GetTileSize())
	scene := level.BuildScene(graphics.NewTextureManager(cfg.Assets.TextureDir))

	components := threading.NewThreadingComponents(cfg.Assets.PreloadWorkers)
	defer components.Shutdown()
	if err := components.TextureCache.Preload(cmd.Context(), components.WorkerPool, scene.Textures()); err != nil {
		return fmt.Errorf("preload textures: %w", err)
	}

	cam := world.Camera{
		Position: level.SpawnPosition(cfg.Camera.EyeHeight),
		Yaw:      opts.yaw * math.Pi / 180,
		Pitch:    opts.pitch * math.Pi / 180,
	}
	if cmd.Flags().Changed("x") || cmd.Flags().Changed("z") {
		if cmd.Flags().Changed("x") {
			cam.Position[0] = opts.x
		}
		if cmd.Flags().Changed("z") {
			cam.Position[2] = opts.z
		}
		cam.Position[1] = level.GroundHeight(cam.Position.X(), cam.Position.Z()) + cfg.Camera.EyeHeight*cfg.GetTileSize()
	}

	renderer := render.NewRenderer(cfg, components.TextureCache, components.PerformanceMonitor)
	if opts.wallMode != "" {
		renderer.SetWallMode(opts.wallMode)
	}
	if opts.noShadows {
		renderer.SetShadowsEnabled(false)
	}

	width, height := cfg.GetRasterSize()
	frame := image.NewRGBA(image.Rect(0, 0, width, height))
	stats := renderer.RenderFrame(frame, scene, &cam, opts.time)

	out, err := os.Create(opts.outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", opts.outPath, err)
	}
	defer out.Close()
	if err := png.Encode(out, frame); err != nil {
		return fmt.Errorf("failed to encode %s: %w", opts.outPath, err)
	}

	metrics := components.GetPerformanceMetrics()
	log.Printf("[Snapshot] %s: %dx%d, %d columns, %d surfaces (%d dropped), %v",
		opts.outPath, width, height, stats.Columns, stats.Queued, stats.Dropped, metrics.FrameTime)
	return nil
}
