package world

import (
	"fmt"
	"os"
	"sort"

	"reddust/internal/config"

	"gopkg.in/yaml.v3"
)

// TileManager handles tile configuration and properties
type TileManager struct {
	tileData     []*config.TileData
	keyToID      map[string]TileID
	idToKey      map[TileID]string
	letterToID   map[rune]TileID
	defaultFloor TileID
}

// NewTileManager creates a new tile manager
func NewTileManager() *TileManager {
	return &TileManager{
		keyToID:      make(map[string]TileID),
		idToKey:      make(map[TileID]string),
		letterToID:   make(map[rune]TileID),
		defaultFloor: TileNone,
	}
}

// LoadTileConfig loads tile configuration from a YAML file
func (tm *TileManager) LoadTileConfig(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read tile config file: %w", err)
	}

	var tileConfig config.TileConfig
	if err := yaml.Unmarshal(data, &tileConfig); err != nil {
		return fmt.Errorf("failed to parse tile config: %w", err)
	}

	return tm.SetTiles(tileConfig.TileData)
}

// SetTiles replaces the tile definitions
func (tm *TileManager) SetTiles(tiles map[string]config.TileData) error {
	keys := make([]string, 0, len(tiles))
	for key := range tiles {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	tm.tileData = make([]*config.TileData, 0, len(keys))
	tm.keyToID = make(map[string]TileID, len(keys))
	tm.idToKey = make(map[TileID]string, len(keys))
	tm.letterToID = make(map[rune]TileID, len(keys))
	tm.defaultFloor = TileNone

	for _, key := range keys {
		// Make a copy to avoid pointer issues
		tileCopy := tiles[key]
		if err := validateTile(key, &tileCopy); err != nil {
			return err
		}

		id := TileID(len(tm.tileData))
		tm.tileData = append(tm.tileData, &tileCopy)
		tm.keyToID[key] = id
		tm.idToKey[id] = key

		letters := []rune(tileCopy.Letter)
		if len(letters) != 1 {
			return fmt.Errorf("tile %q: letter must be a single character, got %q", key, tileCopy.Letter)
		}
		if other, dup := tm.letterToID[letters[0]]; dup {
			return fmt.Errorf("tile %q: letter %q already used by %q", key, tileCopy.Letter, tm.idToKey[other])
		}
		tm.letterToID[letters[0]] = id

		if tileCopy.Kind == config.TileKindFloor && tm.defaultFloor == TileNone {
			tm.defaultFloor = id
		}
	}
	return nil
}

func validateTile(key string, data *config.TileData) error {
	switch data.Kind {
	case config.TileKindEmpty, config.TileKindFloor, config.TileKindSpawn:
	case config.TileKindWall, config.TileKindPillar:
		if data.Height <= 0 {
			return fmt.Errorf("tile %q: %s needs a positive height", key, data.Kind)
		}
	case config.TileKindRamp:
		switch data.Direction {
		case "north", "south", "east", "west":
		default:
			return fmt.Errorf("tile %q: unknown ramp direction %q", key, data.Direction)
		}
	case config.TileKindWater:
		if data.Depth < 0 {
			return fmt.Errorf("tile %q: water depth must not be negative", key)
		}
	default:
		return fmt.Errorf("tile %q: unknown kind %q", key, data.Kind)
	}
	return nil
}

// GetTileData returns the configuration data for a tile, or nil
func (tm *TileManager) GetTileData(id TileID) *config.TileData {
	if id < 0 || int(id) >= len(tm.tileData) {
		return nil
	}
	return tm.tileData[id]
}

// GetTileIDFromKey returns the tile ID for a configuration key
func (tm *TileManager) GetTileIDFromKey(key string) (TileID, bool) {
	id, ok := tm.keyToID[key]
	return id, ok
}

// GetTileIDFromLetter returns the tile ID for a map letter
func (tm *TileManager) GetTileIDFromLetter(letter rune) (TileID, bool) {
	id, ok := tm.letterToID[letter]
	return id, ok
}

// GetTileKey returns the configuration key for a tile
func (tm *TileManager) GetTileKey(id TileID) string {
	return tm.idToKey[id]
}

// Kind returns the tile kind, or "empty" for unknown tiles
func (tm *TileManager) Kind(id TileID) string {
	data := tm.GetTileData(id)
	if data == nil {
		return config.TileKindEmpty
	}
	return data.Kind
}

// IsSolid returns whether a tile blocks movement
func (tm *TileManager) IsSolid(id TileID) bool {
	data := tm.GetTileData(id)
	if data == nil {
		return false // Default to non-solid for unknown tiles
	}
	return data.Solid || data.Kind == config.TileKindWall || data.Kind == config.TileKindPillar
}

// DefaultFloor returns the first floor tile, used under pillars and spawn points
func (tm *TileManager) DefaultFloor() *config.TileData {
	return tm.GetTileData(tm.defaultFloor)
}

// Len returns the number of loaded tile definitions
func (tm *TileManager) Len() int {
	return len(tm.tileData)
}
