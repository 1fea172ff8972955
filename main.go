package main

import (
	"context"
	"log"

	"reddust/internal/config"
	"reddust/internal/game"
	"reddust/internal/graphics"
	"reddust/internal/threading"
	"reddust/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	// Load configuration
	cfg := config.MustLoadConfig("config.yaml")

	// Load tiles and the map
	tiles := world.NewTileManager()
	if err := tiles.LoadTileConfig(cfg.Assets.TilesFile); err != nil {
		log.Fatalf("Failed to load tile config: %v", err)
	}
	mapData, err := world.NewMapLoader(tiles).LoadMap(cfg.Assets.MapFile)
	if err != nil {
		log.Fatal(err)
	}
	level := world.NewLevel(mapData, tiles, cfg.GetTileSize())
	scene := level.BuildScene(graphics.NewTextureManager(cfg.Assets.TextureDir))

	components := threading.NewThreadingComponents(cfg.Assets.PreloadWorkers)
	defer components.Shutdown()

	// Decode every texture the scene uses before the first frame
	if err := components.TextureCache.Preload(context.Background(), components.WorkerPool, scene.Textures()); err != nil {
		log.Fatalf("Failed to preload textures: %v", err)
	}
	log.Printf("Scene: %d walls, %d pillars, %d floors, %d ramps, %d water, %d textures",
		len(scene.Walls), len(scene.Pillars), len(scene.Floors), len(scene.Ramps), len(scene.Water),
		components.TextureCache.Len())

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	v := game.NewViewer(cfg, level, scene, components)
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
