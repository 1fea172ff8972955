package world

// TileID identifies a tile definition loaded by the TileManager.
// IDs are assigned in sorted key order, so they are stable for a given tiles file.
type TileID int

// TileNone marks a map cell whose letter has no tile definition
const TileNone TileID = -1
