package worldsim

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/OCharnyshevich/find-biomes/internal/api"
	"github.com/OCharnyshevich/find-biomes/internal/catalog"
	"github.com/OCharnyshevich/find-biomes/internal/grid"
)

// CatalogPath is where the handler serves the biome catalog.
const CatalogPath = "/json/biomes.json"

// NewHandler serves the Wurstmineberg v2 world endpoints for w, and the
// biome catalog at CatalogPath. Only the overworld dimension exists.
func NewHandler(w *World, biomes []catalog.Biome, log *slog.Logger) http.Handler {
	h := &handler{world: w, biomes: biomes, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v2/server/worlds.json", h.worlds)
	mux.HandleFunc("GET /v2/world/{world}/level.json", h.level)
	mux.HandleFunc("GET /v2/world/{world}/chunks/overview.json", h.overview)
	mux.HandleFunc("GET /v2/world/{world}/chunks/{dim}/chunk/{x}/{y}/{file}", h.chunk)
	mux.HandleFunc("GET "+CatalogPath, h.catalog)
	return mux
}

type handler struct {
	world  *World
	biomes []catalog.Biome
	log    *slog.Logger
}

func (h *handler) worlds(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, map[string]api.WorldInfo{h.world.Name: {Main: true}})
}

func (h *handler) level(w http.ResponseWriter, r *http.Request) {
	if !h.knownWorld(w, r) {
		return
	}
	var level struct {
		Data struct {
			SpawnX int `json:"SpawnX"`
			SpawnZ int `json:"SpawnZ"`
		} `json:"Data"`
	}
	level.Data.SpawnX = h.world.Spawn.X
	level.Data.SpawnZ = h.world.Spawn.Z
	h.writeJSON(w, r, level)
}

func (h *handler) overview(w http.ResponseWriter, r *http.Request) {
	if !h.knownWorld(w, r) {
		return
	}
	h.writeJSON(w, r, map[string][]grid.TilePos{api.Dimension: h.world.Overview()})
}

func (h *handler) chunk(w http.ResponseWriter, r *http.Request) {
	if !h.knownWorld(w, r) {
		return
	}
	if r.PathValue("dim") != api.Dimension || r.PathValue("y") != "0" {
		http.NotFound(w, r)
		return
	}
	x, errX := strconv.Atoi(r.PathValue("x"))
	zs, ok := strings.CutSuffix(r.PathValue("file"), ".json")
	z, errZ := strconv.Atoi(zs)
	if errX != nil || errZ != nil || !ok {
		http.Error(w, "bad chunk coordinates", http.StatusBadRequest)
		return
	}

	pos := grid.TilePos{X: x, Z: z}
	if !h.world.Has(pos) {
		http.NotFound(w, r)
		return
	}
	// One vertical slice; biomes live in slice 0.
	h.writeJSON(w, r, []grid.Tile{h.world.Tile(pos)})
}

func (h *handler) catalog(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		ID              string `json:"id"`
		AdventuringTime bool   `json:"adventuringTime"`
	}
	doc := map[string]map[string]entry{"biomes": {}}
	for _, b := range h.biomes {
		doc["biomes"][strconv.Itoa(b.ID)] = entry{ID: b.Name, AdventuringTime: b.AdventuringTime}
	}
	h.writeJSON(w, r, doc)
}

func (h *handler) knownWorld(w http.ResponseWriter, r *http.Request) bool {
	if r.PathValue("world") != h.world.Name {
		http.NotFound(w, r)
		return false
	}
	return true
}

func (h *handler) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("write response", "path", r.URL.Path, "error", err)
		return
	}
	h.log.Debug("served", "path", r.URL.Path)
}
