package catalog

// Biome is one entry of the biome catalog.
type Biome struct {
	ID              int
	Name            string
	AdventuringTime bool // counts towards the Adventuring Time advancement
}

func (b Biome) String() string {
	return b.Name
}

// Registry looks biomes up by numeric code or string key.
type Registry interface {
	ByID(id int) (Biome, bool)
	ByName(name string) (Biome, bool)
	All() []Biome
}
