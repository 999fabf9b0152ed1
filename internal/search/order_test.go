package search

import (
	"context"
	"math/rand"
	"testing"

	"github.com/OCharnyshevich/find-biomes/internal/grid"
	"github.com/OCharnyshevich/find-biomes/internal/tilecache"
)

func randomTiles(seed int64, n int) []grid.TilePos {
	r := rand.New(rand.NewSource(seed))
	seen := make(map[grid.TilePos]bool)
	var tiles []grid.TilePos
	for len(tiles) < n {
		p := grid.TilePos{X: r.Intn(41) - 20, Z: r.Intn(41) - 20}
		if seen[p] {
			continue
		}
		seen[p] = true
		tiles = append(tiles, p)
	}
	return tiles
}

func collect(o *TileOrder) ([]int, []grid.TilePos) {
	var dists []int
	var tiles []grid.TilePos
	for d, t := range o.All() {
		dists = append(dists, d)
		tiles = append(tiles, t)
	}
	return dists, tiles
}

func TestTileOrderNonDecreasing(t *testing.T) {
	starts := []grid.Coord{{X: 0, Z: 0}, {X: -1, Z: -1}, {X: 250, Z: -77}, {X: -300, Z: 123}}
	for seed := int64(1); seed <= 5; seed++ {
		tiles := randomTiles(seed, 300)
		for _, start := range starts {
			o := NewTileOrder(tiles, start)
			dists, got := collect(o)
			if len(got) != len(tiles) || o.Len() != len(tiles) {
				t.Fatalf("seed %d: got %d tiles, want %d", seed, len(got), len(tiles))
			}
			st := grid.TileOf(start.X, start.Z)
			for i := range dists {
				if dists[i] != grid.TileDistance(got[i], st) {
					t.Fatalf("seed %d: tile %v reported at distance %d", seed, got[i], dists[i])
				}
				if i > 0 && dists[i] < dists[i-1] {
					t.Fatalf("seed %d start %v: distance %d after %d", seed, start, dists[i], dists[i-1])
				}
			}
		}
	}
}

func TestTileOrderKeepsDiscoveryOrderWithinGroup(t *testing.T) {
	tiles := []grid.TilePos{{X: 0, Z: 1}, {X: 3, Z: 0}, {X: -1, Z: 0}, {X: 0, Z: 0}, {X: 1, Z: 0}, {X: 0, Z: -1}}
	_, got := collect(NewTileOrder(tiles, grid.Coord{X: 5, Z: 5}))
	want := []grid.TilePos{{X: 0, Z: 0}, {X: 0, Z: 1}, {X: -1, Z: 0}, {X: 1, Z: 0}, {X: 0, Z: -1}, {X: 3, Z: 0}}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestTileOrderRestartable(t *testing.T) {
	o := NewTileOrder(randomTiles(42, 50), grid.Coord{X: 17, Z: -33})

	// Stop the first pass early; the second pass starts from the beginning.
	n := 0
	for range o.All() {
		n++
		if n == 5 {
			break
		}
	}
	d1, t1 := collect(o)
	d2, t2 := collect(o)
	if len(t1) != 50 || len(t2) != 50 {
		t.Fatalf("passes yielded %d and %d tiles, want 50", len(t1), len(t2))
	}
	for i := range t1 {
		if t1[i] != t2[i] || d1[i] != d2[i] {
			t.Fatalf("passes differ at %d: %v/%d vs %v/%d", i, t1[i], d1[i], t2[i], d2[i])
		}
	}
}

func TestTileOrderEmpty(t *testing.T) {
	_, got := collect(NewTileOrder(nil, grid.Coord{}))
	if len(got) != 0 {
		t.Errorf("got %d tiles from empty overview", len(got))
	}
}

func TestSessionTileOrderFetchesOverviewOnce(t *testing.T) {
	src := newFakeSource()
	src.addSquare(2)
	s := NewSession(src, tilecache.NewMemory(), discard)

	for _, start := range []grid.Coord{{X: 0, Z: 0}, {X: 40, Z: 40}, {X: -100, Z: 3}} {
		o, err := s.TileOrder(context.Background(), start)
		if err != nil {
			t.Fatalf("TileOrder: %v", err)
		}
		if o.Len() != 25 {
			t.Errorf("Len() = %d, want 25", o.Len())
		}
	}
	if src.overviewCalls != 1 {
		t.Errorf("overview fetched %d times, want 1", src.overviewCalls)
	}
}
