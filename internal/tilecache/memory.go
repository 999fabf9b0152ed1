package tilecache

import (
	"sync"

	"github.com/OCharnyshevich/find-biomes/internal/grid"
)

// Memory is a map-backed Cache.
type Memory struct {
	mu    sync.RWMutex
	tiles map[grid.TilePos]grid.Tile
}

func NewMemory() *Memory {
	return &Memory{tiles: make(map[grid.TilePos]grid.Tile)}
}

func (m *Memory) Get(pos grid.TilePos) (grid.Tile, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tiles[pos]
	return t, ok, nil
}

// Put stores t unless pos is already cached; the first write wins.
func (m *Memory) Put(pos grid.TilePos, t grid.Tile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tiles[pos]; !ok {
		m.tiles[pos] = t
	}
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tiles)
}

func (m *Memory) Close() error {
	return nil
}
