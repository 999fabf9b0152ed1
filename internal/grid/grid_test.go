package grid

import "testing"

func TestTileOf(t *testing.T) {
	tests := []struct {
		x, z int
		want TilePos
	}{
		{0, 0, TilePos{0, 0}},
		{15, 15, TilePos{0, 0}},
		{16, 31, TilePos{1, 1}},
		{-1, -16, TilePos{-1, -1}},
		{-17, 33, TilePos{-2, 2}},
		{33, 1, TilePos{2, 0}},
	}
	for _, tt := range tests {
		if got := TileOf(tt.x, tt.z); got != tt.want {
			t.Errorf("TileOf(%d, %d) = %v, want %v", tt.x, tt.z, got, tt.want)
		}
	}
}

func TestManhattan(t *testing.T) {
	if got := Manhattan(Coord{0, 0}, Coord{33, 1}); got != 34 {
		t.Errorf("Manhattan = %d, want 34", got)
	}
	if got := Manhattan(Coord{-5, 10}, Coord{5, -10}); got != 30 {
		t.Errorf("Manhattan = %d, want 30", got)
	}
}

func TestTileDistance(t *testing.T) {
	if got := TileDistance(TilePos{0, 0}, TilePos{2, 0}); got != 2 {
		t.Errorf("TileDistance = %d, want 2", got)
	}
	if got := TileDistance(TilePos{-1, 3}, TilePos{1, -2}); got != 7 {
		t.Errorf("TileDistance = %d, want 7", got)
	}
}
