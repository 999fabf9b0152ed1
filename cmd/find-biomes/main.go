// Command find-biomes finds the coordinates nearest to a start point that
// carry given biomes in a Minecraft world served by a Wurstmineberg API.
//
//	find-biomes [flags] [biome...]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OCharnyshevich/find-biomes/internal/api"
	"github.com/OCharnyshevich/find-biomes/internal/catalog"
	"github.com/OCharnyshevich/find-biomes/internal/config"
	"github.com/OCharnyshevich/find-biomes/internal/grid"
	"github.com/OCharnyshevich/find-biomes/internal/search"
	"github.com/OCharnyshevich/find-biomes/internal/tilecache"
)

func main() {
	cfg := config.DefaultConfig()

	configPath := flag.String("config", "", "optional JSON config file")
	flag.StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "request all world data from this Wurstmineberg Minecraft API instance")
	flag.StringVar(&cfg.CatalogURL, "biomes-url", cfg.CatalogURL, "biome catalog URL or local path")
	flag.StringVar(&cfg.World, "world", cfg.World, "request world data for this world (default: the main world)")
	flag.StringVar(&cfg.StartCoords, "start-coords", cfg.StartCoords, "start at these x,z coordinates instead of the world spawn")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "produce more detailed output")
	flag.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "shorthand for -verbose")
	flag.BoolVar(&cfg.Advancement, "advancement", cfg.Advancement, "search the biomes tracked by the Adventuring Time advancement")
	flag.DurationVar((*time.Duration)(&cfg.Timeout), "timeout", time.Duration(cfg.Timeout), "per-request timeout (0 = none)")
	flag.StringVar(&cfg.CacheBackend, "cache", cfg.CacheBackend, "tile cache backend: memory or leveldb")
	flag.IntVar(&cfg.EarlyStopSlack, "slack", cfg.EarlyStopSlack, "chunk distance past the nearest match at which the search stops")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [biome...]\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *configPath != "" {
		fromFile, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		explicit := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		config.Merge(cfg, fromFile, explicit)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.Verbose)}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, flag.Args(), log, os.Stdout, os.Stderr); err != nil {
		log.Error("search failed", "error", err)
		os.Exit(1)
	}
}

// logLevel is Info, or Debug for -v. Per-request logs sit below Debug and
// never reach the terminal.
func logLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// run performs one search and writes a line per requested biome to stdout.
// Progress goes to stderr when cfg.Verbose is set.
func run(ctx context.Context, cfg *config.Config, args []string, log *slog.Logger, stdout, stderr io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	cat, err := catalog.Fetch(ctx, cfg.CatalogURL, log)
	if err != nil {
		return fmt.Errorf("load biome catalog: %w", err)
	}
	biomes, err := selectBiomes(cat, args, cfg.Advancement)
	if err != nil {
		return err
	}

	tiles, err := tilecache.New(cfg.CacheBackend)
	if err != nil {
		return err
	}
	defer tiles.Close()

	client := api.NewClient(cfg.APIURL, cfg.World, time.Duration(cfg.Timeout), log)
	start, err := startCoords(ctx, cfg, client, log)
	if err != nil {
		return err
	}

	var progress search.Progress = search.Nop{}
	if cfg.Verbose {
		progress = search.NewBar(stderr)
	}
	session := search.NewSession(client, tiles, log)
	engine := search.NewEngine(session, search.Options{Slack: cfg.EarlyStopSlack}, progress, log)

	matches, err := engine.Search(ctx, biomes, start)
	if err != nil {
		return err
	}
	for _, m := range matches {
		fmt.Fprintln(stdout, search.Format(m, start))
	}
	return nil
}

func selectBiomes(cat *catalog.Catalog, args []string, advancement bool) ([]catalog.Biome, error) {
	switch {
	case advancement && len(args) > 0:
		return nil, errors.New("biome arguments cannot be combined with -advancement")
	case advancement:
		return cat.Advancement(), nil
	case len(args) > 0:
		return cat.Resolve(args)
	default:
		return cat.All(), nil
	}
}

func startCoords(ctx context.Context, cfg *config.Config, client *api.Client, log *slog.Logger) (grid.Coord, error) {
	if cfg.StartCoords != "" {
		return config.ParseCoords(cfg.StartCoords)
	}
	log.Debug("downloading level.json")
	spawn, err := client.Spawn(ctx)
	if err != nil {
		return grid.Coord{}, fmt.Errorf("look up spawn: %w", err)
	}
	log.Debug("start coords", "x", spawn.X, "z", spawn.Z)
	return spawn, nil
}
