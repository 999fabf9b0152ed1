package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/OCharnyshevich/find-biomes/internal/catalog"
	"github.com/OCharnyshevich/find-biomes/internal/grid"
)

// DefaultSlack is the early-stop tolerance in tile units for 16-cell tiles.
// Once every requested biome has a match found in a tile at distance D, tiles
// beyond D+DefaultSlack are not fetched. Re-derive it if grid.TileSize changes.
const DefaultSlack = 3

// Options tunes a search.
type Options struct {
	Slack      int
	Exhaustive bool // never stop early; scan every tile
}

// DefaultOptions returns the options used by the command line tool.
func DefaultOptions() Options {
	return Options{Slack: DefaultSlack}
}

// Match is the outcome of a search for one biome.
type Match struct {
	Biome        catalog.Biome
	Found        bool
	Coord        grid.Coord
	Distance     int // Manhattan distance from the start in cells
	TileDistance int // distance of the tile the match was found in
}

// Engine finds the nearest cells of a set of biomes in one shared tile scan.
type Engine struct {
	session  *Session
	opts     Options
	progress Progress
	log      *slog.Logger
}

// NewEngine creates an Engine. A nil progress discards updates.
func NewEngine(session *Session, opts Options, progress Progress, log *slog.Logger) *Engine {
	if progress == nil {
		progress = Nop{}
	}
	return &Engine{session: session, opts: opts, progress: progress, log: log}
}

// SearchNames resolves names against reg and searches for them. Unknown names
// fail before anything is fetched.
func (e *Engine) SearchNames(ctx context.Context, reg *catalog.Catalog, names []string, start grid.Coord) ([]Match, error) {
	biomes, err := reg.Resolve(names)
	if err != nil {
		return nil, err
	}
	return e.Search(ctx, biomes, start)
}

// Search returns the nearest match for each distinct biome, in the order
// first requested; repeats are dropped. Between cells at equal distance the
// one scanned first is kept. Any fetch failure aborts the whole search.
func (e *Engine) Search(ctx context.Context, biomes []catalog.Biome, start grid.Coord) ([]Match, error) {
	if len(biomes) == 0 {
		return nil, errors.New("no biomes requested")
	}

	biomes = distinct(biomes)
	states := make([]Match, len(biomes))
	index := make(map[string]int, len(biomes))
	for i, b := range biomes {
		states[i].Biome = b
		index[b.Name] = i
	}

	order, err := e.session.TileOrder(ctx, start)
	if err != nil {
		return nil, err
	}
	e.log.Debug("searching", "biomes", len(biomes), "tiles", order.Len(), "start", start)

	checked, stoppedAt := 0, -1
	for dist, pos := range order.All() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.done(states, dist) {
			stoppedAt = dist
			break
		}

		tile, err := e.session.Tile(ctx, pos)
		if err != nil {
			return nil, err
		}

		for _, row := range tile {
			for _, cell := range row {
				i, ok := index[cell.Biome]
				if !ok {
					continue
				}
				d := grid.Manhattan(cell.Coord(), start)
				if !states[i].Found || d < states[i].Distance {
					states[i].Found = true
					states[i].Coord = cell.Coord()
					states[i].Distance = d
					states[i].TileDistance = dist
				}
			}
		}

		checked++
		e.progress.Update(Event{
			Biomes:       biomes,
			Checked:      checked,
			Total:        order.Len(),
			Tile:         pos,
			TileDistance: dist,
			Best:         append([]Match(nil), states...),
		})
	}
	e.progress.Done()

	if stoppedAt >= 0 {
		e.log.Debug("stopped early", "tileDistance", stoppedAt, "checked", checked)
	}
	e.log.Debug("search finished", "checked", checked, "fetched", e.session.Fetches())
	return states, nil
}

func distinct(biomes []catalog.Biome) []catalog.Biome {
	seen := make(map[string]bool, len(biomes))
	out := make([]catalog.Biome, 0, len(biomes))
	for _, b := range biomes {
		if !seen[b.Name] {
			seen[b.Name] = true
			out = append(out, b)
		}
	}
	return out
}

// done reports whether no tile at dist or beyond can improve any match.
func (e *Engine) done(states []Match, dist int) bool {
	if e.opts.Exhaustive {
		return false
	}
	for _, s := range states {
		if !s.Found || dist <= s.TileDistance+e.opts.Slack {
			return false
		}
	}
	return true
}

// Format renders m as a result line relative to start.
func Format(m Match, start grid.Coord) string {
	if !m.Found {
		return fmt.Sprintf("%s: not found", m.Biome.Name)
	}
	return fmt.Sprintf("%s: %d,%d (%d blocks from %d,%d)",
		m.Biome.Name, m.Coord.X, m.Coord.Z, m.Distance, start.X, start.Z)
}
