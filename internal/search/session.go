package search

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/OCharnyshevich/find-biomes/internal/grid"
	"github.com/OCharnyshevich/find-biomes/internal/tilecache"
)

// Source is the remote world data a search reads from.
type Source interface {
	Overview(ctx context.Context) ([]grid.TilePos, error)
	Tile(ctx context.Context, pos grid.TilePos) (grid.Tile, error)
}

// Session carries the per-process fetch state: the overview, fetched tiles,
// and fetch counters. Pass one Session to every search of a run.
type Session struct {
	src   Source
	tiles tilecache.Cache
	log   *slog.Logger

	mu       sync.Mutex
	overview []grid.TilePos
	loaded   bool
	fetches  int
}

// NewSession creates a Session reading from src and caching tiles in tiles.
func NewSession(src Source, tiles tilecache.Cache, log *slog.Logger) *Session {
	return &Session{src: src, tiles: tiles, log: log}
}

// Overview returns the tiles that exist, fetching them on first use.
func (s *Session) Overview(ctx context.Context) ([]grid.TilePos, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.overview, nil
	}

	s.log.Debug("downloading chunks overview")
	ov, err := s.src.Overview(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch overview: %w", err)
	}
	s.overview = ov
	s.loaded = true
	s.log.Debug("downloaded chunks overview", "tiles", len(ov))
	return ov, nil
}

// Tile returns the cells of the tile at pos, fetching it only on a cache miss.
func (s *Session) Tile(ctx context.Context, pos grid.TilePos) (grid.Tile, error) {
	t, ok, err := s.tiles.Get(pos)
	if err != nil {
		return nil, fmt.Errorf("read tile cache: %w", err)
	}
	if ok {
		return t, nil
	}

	t, err = s.src.Tile(ctx, pos)
	if err != nil {
		return nil, fmt.Errorf("fetch tile %d,%d: %w", pos.X, pos.Z, err)
	}

	s.mu.Lock()
	s.fetches++
	s.mu.Unlock()

	if err := s.tiles.Put(pos, t); err != nil {
		return nil, fmt.Errorf("write tile cache: %w", err)
	}
	return t, nil
}

// Fetches returns how many tiles were downloaded so far.
func (s *Session) Fetches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}
