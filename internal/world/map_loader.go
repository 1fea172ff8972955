package world

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"reddust/internal/config"
)

// MapLoader handles loading tile maps from text files
type MapLoader struct {
	tiles *TileManager
}

// MapData contains the loaded map information
type MapData struct {
	Width  int
	Height int
	Tiles  [][]TileID // Tiles[row][column]
	StartX int        // Spawn column, -1 if the map has none
	StartY int        // Spawn row, -1 if the map has none
}

// NewMapLoader creates a new map loader resolving letters through tiles
func NewMapLoader(tiles *TileManager) *MapLoader {
	return &MapLoader{tiles: tiles}
}

// LoadMap loads a map from the specified file path
func (ml *MapLoader) LoadMap(mapPath string) (*MapData, error) {
	file, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", mapPath, err)
	}
	defer file.Close()

	mapData, err := ml.ParseMap(file)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", mapPath, err)
	}
	fmt.Printf("[MapLoader] Loaded %s (%dx%d, start %d,%d)\n", mapPath, mapData.Width, mapData.Height, mapData.StartX, mapData.StartY)
	return mapData, nil
}

// ParseMap reads map rows from r. Empty lines and lines starting with # are skipped.
func (ml *MapLoader) ParseMap(r io.Reader) (*MapData, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map file: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("map file contains no valid map data")
	}

	width := utf8.RuneCountInString(lines[0])
	for i, line := range lines {
		if n := utf8.RuneCountInString(line); n != width {
			return nil, fmt.Errorf("line %d has inconsistent width: expected %d, got %d", i+1, width, n)
		}
	}

	mapData := &MapData{
		Width:  width,
		Height: len(lines),
		Tiles:  make([][]TileID, len(lines)),
		StartX: -1,
		StartY: -1,
	}

	for y, line := range lines {
		mapData.Tiles[y] = make([]TileID, 0, width)
		for x, char := range []rune(line) {
			id, ok := ml.tiles.GetTileIDFromLetter(char)
			if !ok {
				return nil, fmt.Errorf("line %d column %d: unknown tile letter %q", y+1, x+1, char)
			}
			if ml.tiles.Kind(id) == config.TileKindSpawn {
				mapData.StartX = x
				mapData.StartY = y
			}
			mapData.Tiles[y] = append(mapData.Tiles[y], id)
		}
	}

	return mapData, nil
}

// TileAt returns the tile at a map cell, or TileNone outside the map
func (md *MapData) TileAt(x, y int) TileID {
	if y < 0 || y >= md.Height || x < 0 || x >= md.Width {
		return TileNone
	}
	return md.Tiles[y][x]
}
