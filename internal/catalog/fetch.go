package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	getter "github.com/hashicorp/go-getter"

	"github.com/OCharnyshevich/find-biomes/internal/api"
)

// DefaultURL is the Wurstmineberg assets copy of the biome catalog.
const DefaultURL = "https://assets.wurstmineberg.de/json/biomes.json"

// Fetch downloads the catalog from src and parses it. src is anything
// go-getter understands as a single file: an http(s) URL or a local path.
func Fetch(ctx context.Context, src string, log *slog.Logger) (*Catalog, error) {
	dir, err := os.MkdirTemp("", "find-biomes-catalog-")
	if err != nil {
		return nil, fmt.Errorf("create catalog temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	pwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	dst := filepath.Join(dir, "biomes.json")
	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeFile,
	}

	log.Debug("downloading biome catalog", "src", src)
	if err := client.Get(); err != nil {
		return nil, &api.FetchError{URL: src, Err: err}
	}

	f, err := os.Open(dst)
	if err != nil {
		return nil, fmt.Errorf("open biome catalog: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, err
	}
	log.Info("loaded biome catalog", "count", c.Len(), "advancement", len(c.Advancement()))
	return c, nil
}
