package search

import (
	"fmt"
	"io"
	"strings"

	"github.com/OCharnyshevich/find-biomes/internal/catalog"
	"github.com/OCharnyshevich/find-biomes/internal/grid"
)

// Event is emitted after each tile is scanned.
type Event struct {
	Biomes       []catalog.Biome
	Checked      int
	Total        int
	Tile         grid.TilePos
	TileDistance int
	Best         []Match // snapshot of every biome's best match so far
}

// Progress receives scan updates.
type Progress interface {
	Update(ev Event)
	Done()
}

// Nop discards progress.
type Nop struct{}

func (Nop) Update(Event) {}
func (Nop) Done()        {}

// Bar draws a single self-overwriting status line, e.g.
//
//	[==..] searching for plains: 52 out of 120 chunks checked
type Bar struct {
	w       io.Writer
	lastLen int
}

func NewBar(w io.Writer) *Bar {
	return &Bar{w: w}
}

func (b *Bar) Update(ev Event) {
	filled := 0
	if ev.Total > 0 {
		filled = min(4, 5*ev.Checked/ev.Total)
	}
	line := fmt.Sprintf("[%s%s] searching for %s: %d out of %d chunks checked",
		strings.Repeat("=", filled), strings.Repeat(".", 4-filled),
		describe(ev.Biomes), ev.Checked, ev.Total)
	b.print(line)
}

func (b *Bar) Done() {
	b.print("[ ok ]")
	fmt.Fprintln(b.w)
	b.lastLen = 0
}

func (b *Bar) print(line string) {
	pad := ""
	if n := b.lastLen - len(line); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	fmt.Fprint(b.w, "\r"+line+pad)
	b.lastLen = len(line)
}

func describe(biomes []catalog.Biome) string {
	if len(biomes) > 3 {
		return fmt.Sprintf("%d biomes", len(biomes))
	}
	names := make([]string, len(biomes))
	for i, b := range biomes {
		names[i] = b.Name
	}
	return strings.Join(names, ", ")
}
