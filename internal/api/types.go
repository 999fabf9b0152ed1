package api

import "github.com/OCharnyshevich/find-biomes/internal/grid"

// WorldInfo is the part of a worlds.json entry the client reads.
type WorldInfo struct {
	Main bool `json:"main"`
}

type levelData struct {
	Data struct {
		SpawnX int `json:"SpawnX"`
		SpawnZ int `json:"SpawnZ"`
	} `json:"Data"`
}

// overview maps dimension name to the tiles that exist in it.
type overview map[string][]grid.TilePos

// chunkColumn is the vertical slices of one tile; slice 0 carries the biomes.
type chunkColumn [][][]grid.Cell
