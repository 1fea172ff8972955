// Command map_viewer shows every map in the maps directory from above, with the
// geometry the renderer would build for it and a readout of the cell under the cursor.
package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"sort"

	"reddust/internal/config"
	"reddust/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	screenW    = 1200
	screenH    = 800
	panelW     = 320
	margin     = 16
	textLine   = 16
	legendLine = 14
)

var (
	backdrop    = color.RGBA{14, 14, 20, 255}
	panelFill   = color.RGBA{22, 22, 32, 255}
	panelEdge   = color.RGBA{80, 80, 100, 255}
	spawnMarker = color.RGBA{50, 200, 255, 255}
	hoverEdge   = color.RGBA{255, 220, 80, 255}
)

// inspectedMap is one map file and what was built from it
type inspectedMap struct {
	path  string
	data  *world.MapData
	level *world.Level
	scene *world.Scene
	err   error
}

type inspector struct {
	tiles    *world.TileManager
	tileSize float64
	maps     []inspectedMap
	current  int
	legend   []string
	scroll   int

	// Grid placement from the last Draw, used to map the cursor to a cell
	grid image.Rectangle
	cell int
}

func main() {
	if _, err := os.Stat("config.yaml"); err != nil {
		// Started from elsewhere; the assets sit next to the binary
		if exe, err := os.Executable(); err == nil {
			_ = os.Chdir(filepath.Dir(exe))
		}
	}

	cfg := config.MustLoadConfig("config.yaml")
	tiles := world.NewTileManager()
	if err := tiles.LoadTileConfig(cfg.Assets.TilesFile); err != nil {
		log.Fatalf("Failed to load tile config: %v", err)
	}

	in := &inspector{
		tiles:    tiles,
		tileSize: cfg.GetTileSize(),
		legend:   legendLines(tiles),
	}
	in.maps = in.loadMaps(filepath.Dir(cfg.Assets.MapFile))
	log.Printf("[MapViewer] %d maps in %s", len(in.maps), filepath.Dir(cfg.Assets.MapFile))

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("Red Dust Map Inspector")
	if err := ebiten.RunGame(in); err != nil {
		log.Fatal(err)
	}
}

func (in *inspector) loadMaps(dir string) []inspectedMap {
	paths, err := filepath.Glob(filepath.Join(dir, "*.map"))
	if err != nil {
		log.Printf("Warning: %v", err)
		return nil
	}
	sort.Strings(paths)

	loader := world.NewMapLoader(in.tiles)
	maps := make([]inspectedMap, 0, len(paths))
	for _, path := range paths {
		m := inspectedMap{path: path}
		m.data, m.err = loader.LoadMap(path)
		if m.err == nil {
			m.level = world.NewLevel(m.data, in.tiles, in.tileSize)
			m.scene = m.level.BuildScene(nil)
		}
		maps = append(maps, m)
	}
	return maps
}

func (in *inspector) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if n := len(in.maps); n > 0 {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeyN):
			in.current = (in.current + 1) % n
		case inpututil.IsKeyJustPressed(ebiten.KeyPageUp), inpututil.IsKeyJustPressed(ebiten.KeyP):
			in.current = (in.current + n - 1) % n
		}
	}

	_, wheel := ebiten.Wheel()
	in.scroll -= int(wheel * legendLine)
	in.scroll = max(0, min(in.scroll, len(in.legend)*legendLine-legendLine))
	return nil
}

func (in *inspector) Layout(_, _ int) (int, int) {
	return screenW, screenH
}

func (in *inspector) Draw(screen *ebiten.Image) {
	screen.Fill(backdrop)
	if len(in.maps) == 0 {
		ebitenutil.DebugPrintAt(screen, "no *.map files found", margin, margin)
		return
	}

	m := in.maps[in.current]
	area := image.Rect(margin, margin, screenW-panelW-2*margin, screenH-margin)
	panel := image.Rect(area.Max.X+margin, margin, screenW-margin, screenH-margin)
	box(screen, area)
	box(screen, panel)

	header := fmt.Sprintf("%s (%d/%d)  PgUp/PgDn or P/N: switch  Esc: quit", filepath.Base(m.path), in.current+1, len(in.maps))
	ebitenutil.DebugPrintAt(screen, header, area.Min.X+8, area.Min.Y+6)
	if m.err != nil {
		ebitenutil.DebugPrintAt(screen, "failed to load: "+m.err.Error(), area.Min.X+8, area.Min.Y+6+textLine)
		in.cell = 0
		return
	}

	in.drawGrid(screen, m, area.Inset(8).Add(image.Pt(0, textLine)))
	y := in.drawSummary(screen, m, panel.Min.X+10, panel.Min.Y+8)
	in.drawLegend(screen, panel.Min.X+10, y+textLine, panel.Max.Y-8)
}

func (in *inspector) drawGrid(screen *ebiten.Image, m inspectedMap, area image.Rectangle) {
	w, h := m.data.Width, m.data.Height
	in.cell = max(2, min(area.Dx()/w, (area.Dy()-textLine)/h))
	origin := area.Min.Add(image.Pt((area.Dx()-w*in.cell)/2, (area.Dy()-textLine-h*in.cell)/2))
	in.grid = image.Rectangle{Min: origin, Max: origin.Add(image.Pt(w*in.cell, h*in.cell))}

	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			data := in.tiles.GetTileData(m.data.Tiles[row][col])
			px := float32(origin.X + col*in.cell)
			py := float32(origin.Y + row*in.cell)
			vector.DrawFilledRect(screen, px, py, float32(in.cell), float32(in.cell), topDownColor(data), false)
			if data != nil && data.Kind == config.TileKindRamp && in.cell >= 8 {
				ebitenutil.DebugPrintAt(screen, rampArrow(data.Direction), int(px)+2, int(py)+1)
			}
		}
	}

	// Pillars at their true radius
	scale := float32(in.cell) / float32(in.tileSize)
	for _, p := range m.scene.Pillars {
		vector.DrawFilledCircle(screen, float32(origin.X)+float32(p.X)*scale, float32(origin.Y)+float32(p.Z)*scale,
			float32(p.Radius)*scale, p.Color, true)
	}

	if m.data.StartX >= 0 {
		cx := float32(origin.X + m.data.StartX*in.cell + in.cell/2)
		cy := float32(origin.Y + m.data.StartY*in.cell + in.cell/2)
		vector.DrawFilledCircle(screen, cx, cy, float32(in.cell)*0.35, spawnMarker, true)
	}

	if col, row, ok := in.hovered(m); ok {
		vector.StrokeRect(screen, float32(origin.X+col*in.cell), float32(origin.Y+row*in.cell),
			float32(in.cell), float32(in.cell), 2, hoverEdge, false)
	}
}

// hovered returns the cell under the mouse cursor
func (in *inspector) hovered(m inspectedMap) (col, row int, ok bool) {
	if in.cell == 0 {
		return 0, 0, false
	}
	mx, my := ebiten.CursorPosition()
	if !image.Pt(mx, my).In(in.grid) {
		return 0, 0, false
	}
	col, row = (mx-in.grid.Min.X)/in.cell, (my-in.grid.Min.Y)/in.cell
	return col, row, col < m.data.Width && row < m.data.Height
}

// drawSummary prints scene counts and the hovered cell, returning the next free row
func (in *inspector) drawSummary(screen *ebiten.Image, m inspectedMap, x, y int) int {
	lines := []string{
		fmt.Sprintf("Size %dx%d  tile %.2f", m.data.Width, m.data.Height, in.tileSize),
		fmt.Sprintf("Wall faces %d  pillars %d", len(m.scene.Walls), len(m.scene.Pillars)),
		fmt.Sprintf("Floors %d  ramps %d  water %d", len(m.scene.Floors), len(m.scene.Ramps), len(m.scene.Water)),
	}
	if m.data.StartX < 0 {
		lines = append(lines, "No spawn tile, starting at the centre")
	}

	lines = append(lines, "")
	if col, row, ok := in.hovered(m); ok {
		data := in.tiles.GetTileData(m.data.Tiles[row][col])
		cx := (float64(col) + 0.5) * in.tileSize
		cz := (float64(row) + 0.5) * in.tileSize
		lines = append(lines,
			fmt.Sprintf("Cell %d,%d  '%s' %s", col, row, data.Letter, data.Name),
			fmt.Sprintf("Kind %s  solid %v", data.Kind, data.Solid),
			fmt.Sprintf("Base %.2f  height %.2f", data.Base, data.Height),
			fmt.Sprintf("Ground at centre %.2f", m.level.GroundHeight(cx, cz)),
		)
	} else {
		lines = append(lines, "Hover a cell for details")
	}

	for _, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x, y)
		y += textLine
	}
	return y
}

func (in *inspector) drawLegend(screen *ebiten.Image, x, top, bottom int) {
	y := top - in.scroll
	for _, line := range in.legend {
		if y >= top && y+legendLine <= bottom {
			ebitenutil.DebugPrintAt(screen, line, x, y)
		}
		y += legendLine
	}
}

func box(screen *ebiten.Image, r image.Rectangle) {
	vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), panelFill, false)
	vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 2, panelEdge, false)
}

func rampArrow(direction string) string {
	switch direction {
	case "north":
		return "^"
	case "south":
		return "v"
	case "east":
		return ">"
	}
	return "<"
}

// topDownColor is the colour a cell shows from above
func topDownColor(data *config.TileData) color.RGBA {
	switch {
	case data == nil:
		return color.RGBA{0, 0, 0, 255}
	case data.Kind == config.TileKindEmpty:
		return color.RGBA{8, 8, 12, 255}
	case data.Kind == config.TileKindWall, data.Kind == config.TileKindWater:
		return config.RGB(data.WallColor)
	case data.FloorColor == [3]int{}:
		return color.RGBA{90, 90, 90, 255}
	}
	return config.RGB(data.FloorColor)
}

// legendLines lists every tile by letter; the wheel scrolls it
func legendLines(tiles *world.TileManager) []string {
	entries := make([]string, 0, tiles.Len())
	for id := world.TileID(0); int(id) < tiles.Len(); id++ {
		data := tiles.GetTileData(id)
		entries = append(entries, fmt.Sprintf("'%s' %-12s %s", data.Letter, tiles.GetTileKey(id), data.Kind))
	}
	sort.Strings(entries)
	return append([]string{"Legend (wheel scrolls)", ""}, entries...)
}
