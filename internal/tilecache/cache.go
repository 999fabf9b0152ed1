package tilecache

import (
	"fmt"

	"github.com/OCharnyshevich/find-biomes/internal/grid"
)

// Backend names accepted by New.
const (
	BackendMemory  = "memory"
	BackendLevelDB = "leveldb"
)

// Cache stores fetched tiles for the lifetime of the process. Entries are
// never evicted.
type Cache interface {
	Get(pos grid.TilePos) (grid.Tile, bool, error)
	Put(pos grid.TilePos, t grid.Tile) error
	Len() int
	Close() error
}

// New returns an empty cache of the named backend.
func New(backend string) (Cache, error) {
	switch backend {
	case BackendMemory, "":
		return NewMemory(), nil
	case BackendLevelDB:
		return OpenLevelDB()
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}
