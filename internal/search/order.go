package search

import (
	"context"
	"iter"
	"sort"

	"github.com/OCharnyshevich/find-biomes/internal/grid"
)

// TileOrder is the set of known tiles grouped by tile distance from a start
// position.
type TileOrder struct {
	Start     grid.TilePos
	distances []int
	groups    map[int][]grid.TilePos
	total     int
}

// TileOrder builds the tile ordering for start from the session's overview.
func (s *Session) TileOrder(ctx context.Context, start grid.Coord) (*TileOrder, error) {
	tiles, err := s.Overview(ctx)
	if err != nil {
		return nil, err
	}
	return NewTileOrder(tiles, start), nil
}

// NewTileOrder groups tiles by their distance to the tile containing start.
// Tiles at equal distance keep their order in tiles.
func NewTileOrder(tiles []grid.TilePos, start grid.Coord) *TileOrder {
	o := &TileOrder{
		Start:  grid.TileOf(start.X, start.Z),
		groups: make(map[int][]grid.TilePos),
		total:  len(tiles),
	}
	for _, t := range tiles {
		d := grid.TileDistance(t, o.Start)
		if _, ok := o.groups[d]; !ok {
			o.distances = append(o.distances, d)
		}
		o.groups[d] = append(o.groups[d], t)
	}
	sort.Ints(o.distances)
	return o
}

// Len returns the number of tiles in the ordering.
func (o *TileOrder) Len() int {
	return o.total
}

// All yields (tile distance, tile) pairs in non-decreasing distance order.
// Each call starts a fresh pass.
func (o *TileOrder) All() iter.Seq2[int, grid.TilePos] {
	return func(yield func(int, grid.TilePos) bool) {
		for _, d := range o.distances {
			for _, t := range o.groups[d] {
				if !yield(d, t) {
					return
				}
			}
		}
	}
}
