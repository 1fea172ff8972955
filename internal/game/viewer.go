package game

import (
	"fmt"
	"image"
	"math"

	"reddust/internal/collision"
	"reddust/internal/config"
	"reddust/internal/game/keytracker"
	"reddust/internal/render"
	"reddust/internal/threading"
	"reddust/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxStepHeight is the largest rise in tiles the viewer walks onto
const maxStepHeight = 0.55

// Input is the set of held controls for one update
type Input struct {
	Forward, Backward       bool
	StrafeLeft, StrafeRight bool
	TurnLeft, TurnRight     bool
	LookUp, LookDown        bool
}

// Viewer walks a camera through a level and shows the rendered frame.
// It implements ebiten.Game.
type Viewer struct {
	config     *config.Config
	level      *world.Level
	scene      *world.Scene
	camera     world.Camera
	controller *CameraController
	collision  *collision.CollisionSystem
	body       *collision.BoundingBox
	renderer   *render.Renderer
	threading  *threading.ThreadingComponents
	keys       *keytracker.KeyStateTracker

	frame   *image.RGBA
	screen  *ebiten.Image
	stats   render.FrameStats
	elapsed float64
	showHUD bool
}

// NewViewer places the camera on the level's spawn cell. The scene is built once;
// its textures are read through the components' texture cache.
func NewViewer(cfg *config.Config, level *world.Level, scene *world.Scene, components *threading.ThreadingComponents) *Viewer {
	tileSize := cfg.GetTileSize()
	spawn := level.SpawnPosition(cfg.Camera.EyeHeight)

	v := &Viewer{
		config:    cfg,
		level:     level,
		scene:     scene,
		camera:    world.Camera{Position: spawn},
		collision: collision.NewCollisionSystem(level, tileSize, maxStepHeight*tileSize),
		body: collision.NewBoundingBox(spawn.X(), spawn.Z(),
			cfg.Movement.CollisionSize*tileSize, cfg.Movement.CollisionSize*tileSize),
		renderer:  render.NewRenderer(cfg, components.TextureCache, components.PerformanceMonitor),
		threading: components,
		keys:      keytracker.New(),
		showHUD:   true,
	}
	v.controller = NewCameraController(&v.camera, cfg.Movement, cfg.GetMaxPitchRadians(), ebiten.DefaultTPS)

	width, height := cfg.GetRasterSize()
	v.frame = image.NewRGBA(image.Rect(0, 0, width, height))
	return v
}

// Camera returns the current camera
func (v *Viewer) Camera() world.Camera {
	return v.camera
}

// Renderer exposes the renderer for toggles and tests
func (v *Viewer) Renderer() *render.Renderer {
	return v.renderer
}

// Step applies one update of held controls lasting dt seconds
func (v *Viewer) Step(in Input, dt float64) {
	mv := v.config.Movement
	tileSize := v.config.GetTileSize()

	v.controller.Turn(axis(in.TurnLeft, in.TurnRight) * mv.RotationSpeed * dt)
	v.controller.Look(axis(in.LookUp, in.LookDown) * mv.PitchSpeed * dt)

	move := axis(in.Forward, in.Backward)
	strafe := axis(in.StrafeRight, in.StrafeLeft)
	if move != 0 || strafe != 0 {
		norm := math.Hypot(move, strafe)
		fx, fz := v.camera.Forward()
		rx, rz := v.camera.Right()
		speed := mv.MoveSpeed * tileSize * dt / norm
		dx := (fx*move + rx*strafe) * speed
		dz := (fz*move + rz*strafe) * speed
		x, z := v.collision.Move(v.body, dx, dz)
		v.camera.Position[0] = x
		v.camera.Position[2] = z
	}

	ground := v.level.GroundHeight(v.camera.Position.X(), v.camera.Position.Z())
	v.controller.SetHeight(ground + v.config.Camera.EyeHeight*tileSize)
	v.controller.Update(&v.camera)
	v.elapsed += dt
}

// axis turns a pair of opposing controls into -1, 0 or 1
func axis(positive, negative bool) float64 {
	switch {
	case positive && !negative:
		return 1
	case negative && !positive:
		return -1
	}
	return 0
}

// Update implements ebiten.Game
func (v *Viewer) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if v.keys.IsKeyJustPressed(ebiten.KeyF1) {
		v.showHUD = !v.showHUD
	}
	if v.keys.IsKeyJustPressed(ebiten.KeyF2) {
		v.renderer.SetShadowsEnabled(!v.renderer.ShadowsEnabled())
	}
	if v.keys.IsKeyJustPressed(ebiten.KeyF3) {
		v.toggleWallMode()
	}

	v.Step(readInput(), 1/float64(ebiten.TPS()))
	return nil
}

func readInput() Input {
	pressed := func(keys ...ebiten.Key) bool {
		for _, key := range keys {
			if ebiten.IsKeyPressed(key) {
				return true
			}
		}
		return false
	}
	return Input{
		Forward:     pressed(ebiten.KeyW, ebiten.KeyArrowUp),
		Backward:    pressed(ebiten.KeyS, ebiten.KeyArrowDown),
		StrafeLeft:  pressed(ebiten.KeyA),
		StrafeRight: pressed(ebiten.KeyD),
		TurnLeft:    pressed(ebiten.KeyArrowLeft),
		TurnRight:   pressed(ebiten.KeyArrowRight),
		LookUp:      pressed(ebiten.KeyQ, ebiten.KeyPageUp),
		LookDown:    pressed(ebiten.KeyE, ebiten.KeyPageDown),
	}
}

func (v *Viewer) toggleWallMode() {
	if v.renderer.WallMode() == config.WallModeColumns {
		v.renderer.SetWallMode(config.WallModePolygons)
	} else {
		v.renderer.SetWallMode(config.WallModeColumns)
	}
}

// RenderFrame draws the current view into the viewer's raster and returns it
func (v *Viewer) RenderFrame() *image.RGBA {
	v.stats = v.renderer.RenderFrame(v.frame, v.scene, &v.camera, v.elapsed)
	if v.showHUD {
		DrawHUD(v.frame, v.hudLines())
	}
	return v.frame
}

// Draw implements ebiten.Game
func (v *Viewer) Draw(screen *ebiten.Image) {
	frame := v.RenderFrame()

	if v.screen == nil {
		v.screen = ebiten.NewImage(frame.Bounds().Dx(), frame.Bounds().Dy())
	}
	v.screen.WritePixels(frame.Pix)

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sw)/float64(frame.Bounds().Dx()), float64(sh)/float64(frame.Bounds().Dy()))
	screen.DrawImage(v.screen, op)
}

// Layout implements ebiten.Game
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.config.GetScreenWidth(), v.config.GetScreenHeight()
}

func (v *Viewer) hudLines() []string {
	metrics := v.threading.GetPerformanceMetrics()
	hits, misses := v.threading.TextureCache.Stats()
	pos := v.camera.Position

	shadows := "off"
	if v.renderer.ShadowsEnabled() {
		shadows = "on"
	}
	lines := []string{
		fmt.Sprintf("FPS %.0f  frame %.1fms", metrics.FramesPerSecond, float64(metrics.AvgFrameTime.Microseconds())/1000),
		fmt.Sprintf("columns %d  surfaces %d  dropped %d", v.stats.Columns, v.stats.Queued, v.stats.Dropped),
		fmt.Sprintf("pos %.2f %.2f %.2f  yaw %.0f  pitch %.0f", pos.X(), pos.Y(), pos.Z(),
			v.camera.Yaw*180/math.Pi, v.camera.Pitch*180/math.Pi),
		fmt.Sprintf("walls %s  shadows %s", v.renderer.WallMode(), shadows),
		fmt.Sprintf("textures %d  hits %d  misses %d", v.threading.TextureCache.Len(), hits, misses),
	}
	if v.stats.Underwater {
		lines = append(lines, "underwater")
	}
	return lines
}
