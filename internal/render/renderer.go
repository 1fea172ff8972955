package render

import (
	"image"
	"image/color"
	"math"

	"reddust/internal/config"
	"reddust/internal/mathutil"
	"reddust/internal/threading/monitoring"
	"reddust/internal/world"

	"golang.org/x/image/draw"
)

// FrameStats summarizes one rendered frame
type FrameStats struct {
	Columns    int  // Screen columns that drew a wall or pillar
	Queued     int  // Surfaces that reached the render queue
	Dropped    int  // Surfaces discarded by near plane clipping
	Underwater bool // The camera is inside a water volume
}

// Renderer draws a first-person view of a scene into an RGBA raster: walls and
// pillars column by column, then floors, ramps and water back to front.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	viewport Viewport
	wallMode string
	occlude  bool

	skyColor        color.RGBA
	groundColor     color.RGBA
	underwaterTint  color.RGBA
	underwaterAlpha float64

	shadow   ShadowModel
	caster   *ColumnCaster
	surfaces *SurfaceProcessor
	queue    *RenderQueue
	sampler  *Sampler
	spans    []ColumnSpan

	monitor *monitoring.PerformanceMonitor // Optional
}

// NewRenderer creates a renderer sized to the configured raster.
// textures may be nil, in which case everything is drawn in flat color.
func NewRenderer(cfg *config.Config, textures TexturePixels, monitor *monitoring.PerformanceMonitor) *Renderer {
	width, height := cfg.GetRasterSize()
	viewport := Viewport{
		Width:  width,
		Height: height,
		FOV:    cfg.GetFOVRadians(),
		Near:   cfg.Render.NearPlane,
		Far:    cfg.Render.FarPlane,
		Scale:  cfg.Render.ProjectionScale,
	}
	shadow := NewShadowModel(cfg.Shadows)

	return &Renderer{
		viewport:        viewport,
		wallMode:        cfg.Render.WallMode,
		occlude:         cfg.Render.OccludeSurfaces,
		skyColor:        config.RGB(cfg.Render.SkyColor),
		groundColor:     config.RGB(cfg.Render.GroundColor),
		underwaterTint:  config.RGB(cfg.Water.UnderwaterTint),
		underwaterAlpha: cfg.Water.UnderwaterAlpha,
		shadow:          shadow,
		caster:          NewColumnCaster(),
		surfaces:        NewSurfaceProcessor(viewport, cfg.Water),
		queue:           NewRenderQueue(),
		sampler:         NewSampler(textures, shadow, cfg.Render.TextureFilter),
		spans:           make([]ColumnSpan, width),
		monitor:         monitor,
	}
}

// Viewport returns the current projection settings
func (r *Renderer) Viewport() Viewport {
	return r.viewport
}

// Resize changes the raster size the renderer projects onto
func (r *Renderer) Resize(width, height int) {
	if width == r.viewport.Width && height == r.viewport.Height {
		return
	}
	r.viewport.Width = width
	r.viewport.Height = height
	r.surfaces.SetViewport(r.viewport)
	r.spans = make([]ColumnSpan, width)
}

// SetShadowsEnabled turns distance shading on or off
func (r *Renderer) SetShadowsEnabled(enabled bool) {
	r.shadow.Enabled = enabled
	r.sampler.SetShadow(r.shadow)
}

// ShadowsEnabled reports whether distance shading is on
func (r *Renderer) ShadowsEnabled() bool {
	return r.shadow.Enabled
}

// SetWallMode selects column casting or polygon drawing for walls
func (r *Renderer) SetWallMode(mode string) {
	if mode == config.WallModePolygons {
		r.wallMode = config.WallModePolygons
		return
	}
	r.wallMode = config.WallModeColumns
}

// WallMode returns the current wall mode
func (r *Renderer) WallMode() string {
	return r.wallMode
}

// Queue returns the surfaces queued by the last frame in the order they were drawn
func (r *Renderer) Queue() []Renderable {
	return r.queue.Items()
}

// RenderFrame draws the scene as seen from cam at time t (seconds) into dst.
// dst is expected to have its origin at (0, 0); the viewport follows its size.
func (r *Renderer) RenderFrame(dst *image.RGBA, scene *world.Scene, cam *world.Camera, t float64) FrameStats {
	if r.monitor != nil {
		defer r.monitor.StartFrame().EndFrame()
	}
	r.Resize(dst.Bounds().Dx(), dst.Bounds().Dy())

	var stats FrameStats
	r.drawBackground(dst, cam)

	// Column pass
	var columnTimer *monitoring.PassTimer
	if r.monitor != nil {
		columnTimer = r.monitor.StartPass(monitoring.PassColumns)
	}
	columnScene := scene
	if r.wallMode == config.WallModePolygons {
		columnScene = &world.Scene{Pillars: scene.Pillars}
	}
	stats.Columns = r.caster.Cast(dst, columnScene, cam, r.viewport, r.shadow, r.sampler.textures, r.spans)
	if columnTimer != nil {
		columnTimer.End()
	}

	// Surface pass
	var surfaceTimer *monitoring.PassTimer
	if r.monitor != nil {
		surfaceTimer = r.monitor.StartPass(monitoring.PassSurfaces)
	}
	r.queue.Reset()
	r.surfaces.ResetStats()
	for i := range scene.Floors {
		r.surfaces.ProcessFloor(r.queue, &scene.Floors[i], cam)
	}
	for i := range scene.Ramps {
		r.surfaces.ProcessRamp(r.queue, &scene.Ramps[i], cam)
	}
	for i := range scene.Water {
		r.surfaces.ProcessWater(r.queue, &scene.Water[i], cam, t)
	}
	if r.wallMode == config.WallModePolygons {
		for i := range scene.Walls {
			r.surfaces.ProcessWall(r.queue, &scene.Walls[i], cam)
		}
	}
	r.queue.Sort()

	if r.occlude && r.wallMode == config.WallModeColumns {
		r.sampler.SetOcclusion(r.spans)
	} else {
		r.sampler.SetOcclusion(nil)
	}
	for _, item := range r.queue.Items() {
		r.sampler.Draw(dst, item)
		if water, ok := item.(*WaterInfo); ok && water.CameraInside {
			stats.Underwater = true
		}
	}
	if stats.Underwater {
		r.drawUnderwaterTint(dst)
	}
	if surfaceTimer != nil {
		surfaceTimer.End()
	}

	stats.Queued = r.queue.Len()
	stats.Dropped = r.surfaces.Dropped()
	if r.monitor != nil {
		r.monitor.RecordCounts(stats.Columns, stats.Queued, stats.Dropped)
	}
	return stats
}

// drawBackground fills the sky above the horizon and the ground below it
func (r *Renderer) drawBackground(dst *image.RGBA, cam *world.Camera) {
	bounds := dst.Bounds()
	horizon := int(math.Round(r.viewport.Horizon(cam.Pitch)))
	horizon = mathutil.IntClamp(bounds.Min.Y+horizon, bounds.Min.Y, bounds.Max.Y)

	sky := image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Max.X, horizon)
	ground := image.Rect(bounds.Min.X, horizon, bounds.Max.X, bounds.Max.Y)
	draw.Draw(dst, sky, image.NewUniform(r.skyColor), image.Point{}, draw.Src)
	draw.Draw(dst, ground, image.NewUniform(r.groundColor), image.Point{}, draw.Src)
}

// drawUnderwaterTint lays a translucent water color over the whole frame
func (r *Renderer) drawUnderwaterTint(dst *image.RGBA) {
	alpha := uint8(mathutil.Clamp(r.underwaterAlpha, 0, 1) * 255)
	if alpha == 0 {
		return
	}
	tint := color.NRGBA{R: r.underwaterTint.R, G: r.underwaterTint.G, B: r.underwaterTint.B, A: alpha}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(tint), image.Point{}, draw.Over)
}
