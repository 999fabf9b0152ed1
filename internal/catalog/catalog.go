package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// UnknownBiomeError is returned when a requested identifier is not in the catalog.
type UnknownBiomeError struct {
	Name string
}

func (e *UnknownBiomeError) Error() string {
	return fmt.Sprintf("unknown biome %q", e.Name)
}

type document struct {
	Biomes map[string]struct {
		ID              string `json:"id"`
		AdventuringTime bool   `json:"adventuringTime"`
	} `json:"biomes"`
}

// Catalog is the read-only biome enumeration for one process run.
type Catalog struct {
	biomes []Biome
	byID   map[int]Biome
	byName map[string]Biome
}

var _ Registry = (*Catalog)(nil)

// New builds a Catalog from biomes. Entries are ordered by ID.
func New(biomes []Biome) (*Catalog, error) {
	c := &Catalog{
		biomes: make([]Biome, len(biomes)),
		byID:   make(map[int]Biome, len(biomes)),
		byName: make(map[string]Biome, len(biomes)),
	}
	copy(c.biomes, biomes)
	sort.Slice(c.biomes, func(i, j int) bool { return c.biomes[i].ID < c.biomes[j].ID })

	for _, b := range c.biomes {
		if b.Name == "" {
			return nil, fmt.Errorf("biome %d has no id", b.ID)
		}
		if _, dup := c.byID[b.ID]; dup {
			return nil, fmt.Errorf("duplicate biome code %d", b.ID)
		}
		if _, dup := c.byName[b.Name]; dup {
			return nil, fmt.Errorf("duplicate biome id %q", b.Name)
		}
		c.byID[b.ID] = b
		c.byName[b.Name] = b
	}
	return c, nil
}

// Parse decodes a biomes.json document.
func Parse(r io.Reader) (*Catalog, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode biome catalog: %w", err)
	}

	biomes := make([]Biome, 0, len(doc.Biomes))
	for key, info := range doc.Biomes {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("biome code %q: %w", key, err)
		}
		biomes = append(biomes, Biome{ID: id, Name: info.ID, AdventuringTime: info.AdventuringTime})
	}
	return New(biomes)
}

func (c *Catalog) ByID(id int) (Biome, bool) {
	b, ok := c.byID[id]
	return b, ok
}

func (c *Catalog) ByName(name string) (Biome, bool) {
	b, ok := c.byName[name]
	return b, ok
}

// All returns every biome ordered by ID.
func (c *Catalog) All() []Biome {
	out := make([]Biome, len(c.biomes))
	copy(out, c.biomes)
	return out
}

// Advancement returns the biomes tracked by the Adventuring Time advancement.
func (c *Catalog) Advancement() []Biome {
	var out []Biome
	for _, b := range c.biomes {
		if b.AdventuringTime {
			out = append(out, b)
		}
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.biomes)
}

// Resolve maps identifiers to biomes in the order given, dropping repeats.
func (c *Catalog) Resolve(names []string) ([]Biome, error) {
	seen := make(map[string]bool, len(names))
	out := make([]Biome, 0, len(names))
	for _, name := range names {
		b, ok := c.byName[name]
		if !ok {
			return nil, &UnknownBiomeError{Name: name}
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, b)
	}
	return out, nil
}
