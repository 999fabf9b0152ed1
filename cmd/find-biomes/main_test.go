package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/OCharnyshevich/find-biomes/internal/api"
	"github.com/OCharnyshevich/find-biomes/internal/catalog"
	"github.com/OCharnyshevich/find-biomes/internal/config"
	"github.com/OCharnyshevich/find-biomes/internal/grid"
	"github.com/OCharnyshevich/find-biomes/internal/worldsim"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func testConfig(t *testing.T, w *worldsim.World) *config.Config {
	t.Helper()
	srv := httptest.NewServer(worldsim.NewHandler(w, worldsim.Biomes, discard))
	t.Cleanup(srv.Close)

	cfg := config.DefaultConfig()
	cfg.APIURL = srv.URL
	cfg.CatalogURL = srv.URL + worldsim.CatalogPath
	return cfg
}

func TestRunFromSpawn(t *testing.T) {
	w := worldsim.NewWorld("sim", 7, 4, grid.Coord{X: 20, Z: -5})
	cfg := testConfig(t, w)
	origin := w.BiomeAt(w.Spawn)

	var stdout bytes.Buffer
	if err := run(context.Background(), cfg, []string{origin, "the_end"}, discard, &stdout, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	want := []string{
		origin + ": 20,-5 (0 blocks from 20,-5)",
		"the_end: not found",
	}
	if len(lines) != len(want) {
		t.Fatalf("output = %q", stdout.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRunStartCoordsAndLevelDB(t *testing.T) {
	w := worldsim.NewWorld("sim", 7, 3, grid.Coord{})
	cfg := testConfig(t, w)
	cfg.StartCoords = "-30,17"
	cfg.CacheBackend = "leveldb"
	cfg.World = "sim"
	cfg.Verbose = true
	origin := w.BiomeAt(grid.Coord{X: -30, Z: 17})

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), cfg, []string{origin}, discard, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got, want := stdout.String(), origin+": -30,17 (0 blocks from -30,17)\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
	if !strings.Contains(stderr.String(), "[ ok ]") {
		t.Errorf("no progress on stderr: %q", stderr.String())
	}
}

func TestRunAdvancementSubset(t *testing.T) {
	cfg := testConfig(t, worldsim.NewWorld("sim", 2, 2, grid.Coord{}))
	cfg.Advancement = true

	var stdout bytes.Buffer
	if err := run(context.Background(), cfg, nil, discard, &stdout, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := stdout.String()
	if strings.Contains(out, "the_end") || strings.Contains(out, "nether_wastes") {
		t.Errorf("untracked biome in advancement output: %q", out)
	}
	if n := strings.Count(out, "\n"); n != len(worldsim.Biomes)-2 {
		t.Errorf("got %d lines, want %d", n, len(worldsim.Biomes)-2)
	}
}

func TestRunUnknownBiome(t *testing.T) {
	cfg := testConfig(t, worldsim.NewWorld("sim", 2, 2, grid.Coord{}))
	err := run(context.Background(), cfg, []string{"plains", "moon"}, discard, io.Discard, io.Discard)
	var unknown *catalog.UnknownBiomeError
	if !errors.As(err, &unknown) || unknown.Name != "moon" {
		t.Errorf("err = %v, want UnknownBiomeError for moon", err)
	}
}

func TestRunWrongWorld(t *testing.T) {
	cfg := testConfig(t, worldsim.NewWorld("sim", 2, 2, grid.Coord{}))
	cfg.World = "elsewhere"
	err := run(context.Background(), cfg, []string{"plains"}, discard, io.Discard, io.Discard)
	var fe *api.FetchError
	if !errors.As(err, &fe) || fe.StatusCode != 404 {
		t.Errorf("err = %v, want 404 FetchError", err)
	}
}

func TestSelectBiomes(t *testing.T) {
	cat, err := catalog.New(worldsim.Biomes)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := selectBiomes(cat, []string{"plains"}, true); err == nil {
		t.Error("expected error combining arguments with -advancement")
	}
	all, err := selectBiomes(cat, nil, false)
	if err != nil || len(all) != cat.Len() {
		t.Errorf("default selection = %d biomes, %v", len(all), err)
	}
}

func TestLogLevel(t *testing.T) {
	if got := logLevel(false); got != slog.LevelInfo {
		t.Errorf("logLevel(false) = %v, want INFO", got)
	}
	if got := logLevel(true); got != slog.LevelDebug {
		t.Errorf("logLevel(true) = %v, want DEBUG", got)
	}
	if api.LevelTrace >= logLevel(true) {
		t.Errorf("per-request level %v would show with -v", api.LevelTrace)
	}
}

func TestRunVerboseProgressStaysOnOneLine(t *testing.T) {
	w := worldsim.NewWorld("sim", 7, 3, grid.Coord{})
	cfg := testConfig(t, w)
	cfg.StartCoords = "0,0"
	cfg.Verbose = true

	var stderr bytes.Buffer
	log := slog.New(slog.NewTextHandler(&stderr, &slog.HandlerOptions{Level: logLevel(true)}))
	if err := run(context.Background(), cfg, []string{"the_end"}, log, io.Discard, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Contains(stderr.String(), "msg=fetched") {
		t.Error("per-request fetch logs interleaved with the progress line")
	}
	// All 49 progress updates and the final [ ok ] share one terminal line.
	for _, line := range strings.Split(stderr.String(), "\n") {
		if strings.Contains(line, "chunks checked") && !strings.Contains(line, "[ ok ]") {
			t.Errorf("progress line broken up: %q", line)
		}
	}
}
