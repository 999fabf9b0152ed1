package worldsim

import (
	"sync"

	"github.com/OCharnyshevich/find-biomes/internal/grid"
)

// World is a finite generated world: every tile within Radius of the origin
// tile exists, except those in Missing.
type World struct {
	Name    string
	Spawn   grid.Coord
	Radius  int
	Missing map[grid.TilePos]bool

	gen *Generator

	mu    sync.RWMutex
	tiles map[grid.TilePos]grid.Tile
}

// NewWorld creates a World of the given tile radius.
func NewWorld(name string, seed int64, radius int, spawn grid.Coord) *World {
	return &World{
		Name:    name,
		Spawn:   spawn,
		Radius:  radius,
		Missing: make(map[grid.TilePos]bool),
		gen:     NewGenerator(seed),
		tiles:   make(map[grid.TilePos]grid.Tile),
	}
}

// Overview lists the existing tiles, row by row.
func (w *World) Overview() []grid.TilePos {
	var out []grid.TilePos
	for z := -w.Radius; z <= w.Radius; z++ {
		for x := -w.Radius; x <= w.Radius; x++ {
			pos := grid.TilePos{X: x, Z: z}
			if !w.Missing[pos] {
				out = append(out, pos)
			}
		}
	}
	return out
}

// Has reports whether the tile at pos exists.
func (w *World) Has(pos grid.TilePos) bool {
	if w.Missing[pos] {
		return false
	}
	return abs(pos.X) <= w.Radius && abs(pos.Z) <= w.Radius
}

// Tile returns the generated cells of the tile at pos. Tiles are generated
// once; concurrent requests for the same tile all get the first result.
func (w *World) Tile(pos grid.TilePos) grid.Tile {
	w.mu.RLock()
	t, cached := w.tiles[pos]
	w.mu.RUnlock()
	if cached {
		return t
	}

	fresh := w.gen.Tile(pos)
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, cached = w.tiles[pos]; !cached {
		t = fresh
		w.tiles[pos] = t
	}
	return t
}

// BiomeAt returns the biome of a cell.
func (w *World) BiomeAt(c grid.Coord) string {
	return w.gen.BiomeAt(c.X, c.Z)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
