package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	cleanhttp "github.com/hashicorp/go-cleanhttp"

	"github.com/OCharnyshevich/find-biomes/internal/grid"
)

// DefaultURL is the public Wurstmineberg API.
const DefaultURL = "https://api.wurstmineberg.de"

// Dimension is the overview key of the dimension searched.
const Dimension = "overworld"

// LevelTrace is below slog.LevelDebug; per-request logs use it so that a
// verbose run's progress line is not broken up by one log line per tile.
const LevelTrace = slog.LevelDebug - 4

// Client talks to a Wurstmineberg Minecraft API instance.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger

	mu    sync.Mutex
	world string // configured name, or the main world once resolved
}

// NewClient creates a Client for baseURL. An empty world means the server's
// main world is resolved on first use. A zero timeout leaves requests unbounded.
func NewClient(baseURL, world string, timeout time.Duration, log *slog.Logger) *Client {
	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = timeout
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		log:     log,
		world:   world,
	}
}

// Worlds returns every world the server knows about.
func (c *Client) Worlds(ctx context.Context) (map[string]WorldInfo, error) {
	var worlds map[string]WorldInfo
	if err := c.getJSON(ctx, "/v2/server/worlds.json", &worlds); err != nil {
		return nil, err
	}
	return worlds, nil
}

// MainWorld returns the name of the single world flagged as main.
func (c *Client) MainWorld(ctx context.Context) (string, error) {
	worlds, err := c.Worlds(ctx)
	if err != nil {
		return "", err
	}

	var names []string
	for name, info := range worlds {
		if info.Main {
			names = append(names, name)
		}
	}
	switch len(names) {
	case 0:
		return "", &NoWorldError{}
	case 1:
		return names[0], nil
	default:
		sort.Strings(names)
		return "", &AmbiguousWorldError{Names: names}
	}
}

// World returns the world all per-world requests go to, resolving the main
// world once per Client.
func (c *Client) World(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.world != "" {
		return c.world, nil
	}
	name, err := c.MainWorld(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve main world: %w", err)
	}
	c.log.Debug("resolved main world", "world", name)
	c.world = name
	return name, nil
}

// Spawn returns the world spawn point from level.json.
func (c *Client) Spawn(ctx context.Context) (grid.Coord, error) {
	path, err := c.worldPath(ctx, "level.json")
	if err != nil {
		return grid.Coord{}, err
	}
	var level levelData
	if err := c.getJSON(ctx, path, &level); err != nil {
		return grid.Coord{}, err
	}
	return grid.Coord{X: level.Data.SpawnX, Z: level.Data.SpawnZ}, nil
}

// Overview returns the overworld tiles that exist, in server order.
func (c *Client) Overview(ctx context.Context) ([]grid.TilePos, error) {
	path, err := c.worldPath(ctx, "chunks/overview.json")
	if err != nil {
		return nil, err
	}
	var ov overview
	if err := c.getJSON(ctx, path, &ov); err != nil {
		return nil, err
	}
	tiles, ok := ov[Dimension]
	if !ok {
		return nil, &FetchError{URL: c.baseURL + path, Err: fmt.Errorf("overview has no %s dimension", Dimension)}
	}
	return tiles, nil
}

// Tile returns the biome-carrying slice of the tile at pos.
func (c *Client) Tile(ctx context.Context, pos grid.TilePos) (grid.Tile, error) {
	path, err := c.worldPath(ctx, fmt.Sprintf("chunks/%s/chunk/%d/0/%d.json", Dimension, pos.X, pos.Z))
	if err != nil {
		return nil, err
	}
	var col chunkColumn
	if err := c.getJSON(ctx, path, &col); err != nil {
		return nil, err
	}
	if len(col) == 0 {
		return nil, &FetchError{URL: c.baseURL + path, Err: errors.New("chunk has no slices")}
	}
	return grid.Tile(col[0]), nil
}

func (c *Client) worldPath(ctx context.Context, rest string) (string, error) {
	world, err := c.World(ctx)
	if err != nil {
		return "", err
	}
	return "/v2/world/" + url.PathEscape(world) + "/" + rest, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	u := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &FetchError{URL: u, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{URL: u, StatusCode: resp.StatusCode, Err: errors.New(resp.Status)}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &FetchError{URL: u, Err: fmt.Errorf("decode body: %w", err)}
	}
	c.log.Log(ctx, LevelTrace, "fetched", "path", path, "elapsed", time.Since(start))
	return nil
}
