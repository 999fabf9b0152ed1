package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/OCharnyshevich/find-biomes/internal/api"
	"github.com/OCharnyshevich/find-biomes/internal/catalog"
	"github.com/OCharnyshevich/find-biomes/internal/grid"
	"github.com/OCharnyshevich/find-biomes/internal/search"
	"github.com/OCharnyshevich/find-biomes/internal/tilecache"
)

// Duration is a time.Duration that reads and writes as "30s" in JSON.
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Config holds the search tool configuration.
type Config struct {
	APIURL         string   `json:"api_url"`
	CatalogURL     string   `json:"catalog_url"`
	World          string   `json:"world"`        // empty = server's main world
	StartCoords    string   `json:"start_coords"` // "x,z"; empty = world spawn
	Verbose        bool     `json:"verbose"`
	Advancement    bool     `json:"advancement"`
	Timeout        Duration `json:"timeout"` // per request, 0 = none
	CacheBackend   string   `json:"cache_backend"`
	EarlyStopSlack int      `json:"early_stop_slack"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		APIURL:         api.DefaultURL,
		CatalogURL:     catalog.DefaultURL,
		Timeout:        Duration(30 * time.Second),
		CacheBackend:   tilecache.BackendMemory,
		EarlyStopSlack: search.DefaultSlack,
	}
}

// Load reads a JSON config file on top of the defaults. A leading ~ in path
// is expanded. If the file does not exist, the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand config path: %w", err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", expanded, err)
	}
	return cfg, nil
}

// Merge lets the config file fill in every setting the user did not pass on
// the command line. explicitFlags is keyed by flag name as collected with
// flag.Visit, so -v and -verbose both pin Verbose.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["api-url"] {
		cfg.APIURL = fromFile.APIURL
	}
	if !explicitFlags["biomes-url"] {
		cfg.CatalogURL = fromFile.CatalogURL
	}
	if !explicitFlags["world"] {
		cfg.World = fromFile.World
	}
	if !explicitFlags["start-coords"] {
		cfg.StartCoords = fromFile.StartCoords
	}
	if !explicitFlags["verbose"] && !explicitFlags["v"] {
		cfg.Verbose = fromFile.Verbose
	}
	if !explicitFlags["advancement"] {
		cfg.Advancement = fromFile.Advancement
	}
	if !explicitFlags["timeout"] {
		cfg.Timeout = fromFile.Timeout
	}
	if !explicitFlags["cache"] {
		cfg.CacheBackend = fromFile.CacheBackend
	}
	if !explicitFlags["slack"] {
		cfg.EarlyStopSlack = fromFile.EarlyStopSlack
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("api url is required")
	}
	if c.CatalogURL == "" {
		return errors.New("biome catalog url is required")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout %s is negative", time.Duration(c.Timeout))
	}
	if c.EarlyStopSlack < 0 {
		return fmt.Errorf("early stop slack %d is negative", c.EarlyStopSlack)
	}
	switch c.CacheBackend {
	case tilecache.BackendMemory, tilecache.BackendLevelDB:
	default:
		return fmt.Errorf("unknown cache backend %q", c.CacheBackend)
	}
	if c.StartCoords != "" {
		if _, err := ParseCoords(c.StartCoords); err != nil {
			return err
		}
	}
	return nil
}

// CoordsError is returned for a malformed "x,z" coordinate string.
type CoordsError struct {
	Value string
	Err   error
}

func (e *CoordsError) Error() string {
	return fmt.Sprintf("invalid coordinates %q: %v", e.Value, e.Err)
}

func (e *CoordsError) Unwrap() error {
	return e.Err
}

// ParseCoords parses "x,z" into a coordinate.
func ParseCoords(s string) (grid.Coord, error) {
	xs, zs, ok := strings.Cut(s, ",")
	if !ok {
		return grid.Coord{}, &CoordsError{Value: s, Err: errors.New("want x,z")}
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return grid.Coord{}, &CoordsError{Value: s, Err: err}
	}
	z, err := strconv.Atoi(strings.TrimSpace(zs))
	if err != nil {
		return grid.Coord{}, &CoordsError{Value: s, Err: err}
	}
	return grid.Coord{X: x, Z: z}, nil
}
