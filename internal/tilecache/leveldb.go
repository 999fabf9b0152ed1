package tilecache

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/OCharnyshevich/find-biomes/internal/grid"
)

// LevelDB is a Cache on an in-memory LevelDB instance. Tiles are stored as
// snappy-compressed JSON, which keeps large scans small in memory. Nothing
// is written to disk.
type LevelDB struct {
	mu  sync.Mutex // serializes the check-then-put in Put
	db  *leveldb.DB
	len int
}

// OpenLevelDB opens an empty in-memory LevelDB cache.
func OpenLevelDB() (*LevelDB, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb: %w", err)
	}
	return &LevelDB{db: db}, nil
}

func (l *LevelDB) Get(pos grid.TilePos) (grid.Tile, bool, error) {
	data, err := l.db.Get(tileKey(pos), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get tile %d,%d: %w", pos.X, pos.Z, err)
	}

	var t grid.Tile
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, false, fmt.Errorf("decode tile %d,%d: %w", pos.X, pos.Z, err)
	}
	return t, true, nil
}

// Put stores t unless pos is already cached; the first write wins.
func (l *LevelDB) Put(pos grid.TilePos, t grid.Tile) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := tileKey(pos)
	exists, err := l.db.Has(key, nil)
	if err != nil {
		return fmt.Errorf("check tile %d,%d: %w", pos.X, pos.Z, err)
	}
	if exists {
		return nil
	}

	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode tile %d,%d: %w", pos.X, pos.Z, err)
	}
	if err := l.db.Put(key, data, nil); err != nil {
		return fmt.Errorf("put tile %d,%d: %w", pos.X, pos.Z, err)
	}
	l.len++
	return nil
}

func (l *LevelDB) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.len
}

func (l *LevelDB) Close() error {
	return l.db.Close()
}

func tileKey(pos grid.TilePos) []byte {
	return []byte(fmt.Sprintf("tile/%d/%d", pos.X, pos.Z))
}
