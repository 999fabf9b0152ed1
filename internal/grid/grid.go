package grid

// TileSize is the edge length of a tile (chunk) in cells.
const TileSize = 16

// Coord is a cell position in world space.
type Coord struct {
	X, Z int
}

// TilePos identifies a tile by its tile-space coordinates.
type TilePos struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// Cell is one grid unit of a fetched tile.
type Cell struct {
	X     int    `json:"x"`
	Z     int    `json:"z"`
	Biome string `json:"biome"`
}

// Coord returns the cell's world position.
func (c Cell) Coord() Coord {
	return Coord{X: c.X, Z: c.Z}
}

// Tile holds the cell rows of one fetched tile as delivered by the data service.
type Tile [][]Cell

// TileOf returns the tile containing world position (x, z).
func TileOf(x, z int) TilePos {
	return TilePos{X: floorDiv(x, TileSize), Z: floorDiv(z, TileSize)}
}

// Manhattan returns |Δx| + |Δz| between two cells.
func Manhattan(a, b Coord) int {
	return abs(a.X-b.X) + abs(a.Z-b.Z)
}

// TileDistance returns the Manhattan distance between two tiles in tile units.
func TileDistance(a, b TilePos) int {
	return abs(a.X-b.X) + abs(a.Z-b.Z)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
