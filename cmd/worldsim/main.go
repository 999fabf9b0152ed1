// Command worldsim serves a generated world over the Wurstmineberg v2 API,
// for trying find-biomes without a real server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OCharnyshevich/find-biomes/internal/config"
	"github.com/OCharnyshevich/find-biomes/internal/worldsim"
)

func main() {
	var (
		port   = flag.Int("port", 8080, "listen port")
		name   = flag.String("world", "wurstmineberg", "world name")
		seed   = flag.Int64("seed", 0, "world seed")
		radius = flag.Int("radius", 32, "world radius in chunks")
		spawn  = flag.String("spawn", "0,0", "spawn x,z")
		debug  = flag.Bool("debug", false, "log every request")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	sp, err := config.ParseCoords(*spawn)
	if err != nil {
		log.Error("parse spawn", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	w := worldsim.NewWorld(*name, *seed, *radius, sp)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: worldsim.NewHandler(w, worldsim.Biomes, log),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info("world service started",
		"port", *port,
		"world", *name,
		"seed", *seed,
		"radius", *radius,
		"catalog", worldsim.CatalogPath,
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("world service shutting down")
}
