// cmd/lanewar-server/main.go
package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"

	"go-lane-war/internal/api"
	"go-lane-war/internal/app"
	"go-lane-war/internal/config"
	"go-lane-war/internal/defs"
	"go-lane-war/internal/types"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	defsPath := flag.String("defs", "", "path to unit definitions JSON (optional override)")
	addr := flag.String("addr", "", "listen address override")
	seed := flag.Int64("seed", 1, "simulation seed")
	savePath := flag.String("restore", "", "path to a saved game blob to resume")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Error("load config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}
	if *defsPath != "" {
		if err := defs.LoadUnitDefinitions(*defsPath); err != nil {
			logger.Error("load unit definitions", "error", err)
			os.Exit(1)
		}
	}

	var hub *api.Hub
	callbacks := app.Callbacks{
		OnSnapshot: func(snap app.Snapshot) {
			if hub != nil {
				hub.BroadcastSnapshot(snap)
			}
		},
		OnGameOver: func(winner types.Side) {
			logger.Info("game over", "winner", winner.String())
		},
	}

	var game *app.Game
	var err error
	if *savePath != "" {
		blob, readErr := os.ReadFile(*savePath)
		if readErr != nil {
			logger.Error("read saved game", "error", readErr)
			os.Exit(1)
		}
		game, err = app.Restore(blob, callbacks, logger)
		if err != nil {
			// Fail closed: a bad blob means no saved game, not a partial one.
			logger.Error("restore saved game", "error", err)
			os.Exit(1)
		}
		logger.Info("resumed saved game", "tick", game.Snapshot().Tick)
	} else {
		game, err = app.New(cfg, *seed, callbacks, logger)
		if err != nil {
			logger.Error("create game", "error", err)
			os.Exit(1)
		}
	}

	hub = api.NewHub(game, logger)
	go hub.Run()

	game.Start()
	defer game.Stop()

	server := api.NewServer(game, hub, logger)
	logger.Info("listening", "addr", cfg.ListenAddr, "difficulty", cfg.Difficulty, "seed", *seed)
	if err := http.ListenAndServe(cfg.ListenAddr, server.Routes()); err != nil {
		logger.Error("http server", "error", err)
		os.Exit(1)
	}
}
