package worldsim

import (
	perlin "github.com/aquilax/go-perlin"

	"github.com/OCharnyshevich/find-biomes/internal/catalog"
	"github.com/OCharnyshevich/find-biomes/internal/grid"
)

// Biomes lists every biome the generator can produce plus a few that it
// never places, keyed by their Minecraft protocol IDs.
var Biomes = []catalog.Biome{
	{ID: 0, Name: "ocean", AdventuringTime: true},
	{ID: 1, Name: "plains", AdventuringTime: true},
	{ID: 2, Name: "desert", AdventuringTime: true},
	{ID: 4, Name: "forest", AdventuringTime: true},
	{ID: 5, Name: "taiga", AdventuringTime: true},
	{ID: 8, Name: "nether_wastes"},
	{ID: 9, Name: "the_end"},
	{ID: 12, Name: "snowy_plains", AdventuringTime: true},
	{ID: 14, Name: "mushroom_fields", AdventuringTime: true},
	{ID: 16, Name: "beach", AdventuringTime: true},
	{ID: 21, Name: "jungle", AdventuringTime: true},
	{ID: 29, Name: "dark_forest", AdventuringTime: true},
	{ID: 30, Name: "snowy_taiga", AdventuringTime: true},
	{ID: 35, Name: "savanna", AdventuringTime: true},
}

// Generator selects biomes using temperature/rainfall noise fields.
type Generator struct {
	temp    *perlin.Perlin
	rain    *perlin.Perlin
	terrain *perlin.Perlin
}

// NewGenerator creates a Generator from a seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		temp:    perlin.NewPerlin(2, 2, 3, seed+100),
		rain:    perlin.NewPerlin(2, 2, 3, seed+200),
		terrain: perlin.NewPerlin(2, 2, 4, seed),
	}
}

// BiomeAt returns the biome name at the given world cell.
func (g *Generator) BiomeAt(x, z int) string {
	fx, fz := float64(x), float64(z)

	height := g.terrain.Noise2D(fx/128, fz/128)
	switch {
	case height < -0.3:
		return "ocean"
	case height < -0.22:
		return "beach"
	}

	temp := g.temp.Noise2D(fx/256, fz/256)*0.8 + 0.75
	rain := g.rain.Noise2D(fx/256+100, fz/256+100)*0.5 + 0.5
	return selectBiome(temp, rain)
}

// Tile generates the cell rows of the tile at pos.
func (g *Generator) Tile(pos grid.TilePos) grid.Tile {
	t := make(grid.Tile, grid.TileSize)
	for row := range grid.TileSize {
		t[row] = make([]grid.Cell, grid.TileSize)
		z := pos.Z*grid.TileSize + row
		for col := range grid.TileSize {
			x := pos.X*grid.TileSize + col
			t[row][col] = grid.Cell{X: x, Z: z, Biome: g.BiomeAt(x, z)}
		}
	}
	return t
}

// selectBiome maps temperature and rainfall to a biome.
//
//	Temp\Rain     | Dry (<0.3)    | Medium (0.3-0.6) | Wet (>0.6)
//	Cold <0.3     | Snowy Plains  | Snowy Taiga      | Taiga
//	Mild 0.3-0.7  | Plains        | Forest           | Dark Forest
//	Warm 0.7-1.2  | Savanna       | Plains           | Jungle
//	Hot >1.2      | Desert        | Desert           | Jungle
func selectBiome(temp, rain float64) string {
	switch {
	case temp < 0.3:
		switch {
		case rain < 0.3:
			return "snowy_plains"
		case rain < 0.6:
			return "snowy_taiga"
		default:
			return "taiga"
		}
	case temp < 0.7:
		switch {
		case rain < 0.3:
			return "plains"
		case rain < 0.6:
			return "forest"
		default:
			return "dark_forest"
		}
	case temp < 1.2:
		switch {
		case rain < 0.3:
			return "savanna"
		case rain < 0.6:
			return "plains"
		default:
			return "jungle"
		}
	default:
		if rain > 0.6 {
			return "jungle"
		}
		return "desert"
	}
}
