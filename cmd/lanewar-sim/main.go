// cmd/lanewar-sim/main.go
//
// Headless runner: pits a second rule engine against the built-in opponent
// controller and reports the outcome. Useful for balancing profiles and for
// checking that a seed reproduces the same trajectory.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"go-lane-war/internal/ai"
	"go-lane-war/internal/app"
	"go-lane-war/internal/config"
	"go-lane-war/internal/types"
)

func main() {
	seed := flag.Int64("seed", 1, "simulation seed")
	difficulty := flag.String("difficulty", "balanced", "opponent profile")
	playerProfile := flag.String("player", "balanced", "profile driving the player side")
	maxTicks := flag.Uint64("max-ticks", 120*60, "tick cap before declaring a draw")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.Default()
	cfg.Difficulty = *difficulty

	game, err := app.New(cfg, *seed, app.Callbacks{}, logger)
	if err != nil {
		logger.Error("create game", "error", err)
		os.Exit(1)
	}

	player, err := ai.NewEngine(*playerProfile, logger)
	if err != nil {
		logger.Error("create player controller", "error", err)
		os.Exit(1)
	}

	var playerClock float64
	var tick uint64
	for tick = 0; tick < *maxTicks; tick++ {
		if over, _ := game.Over(); over {
			break
		}
		game.Step()

		// The player side runs on the same cadence as the built-in opponent.
		playerClock += config.TickDuration
		for playerClock >= config.AIDecisionInterval {
			playerClock -= config.AIDecisionInterval
			decision := player.Decide(game.Observe(types.PlayerSide))
			if decision.Kind != ai.Wait {
				game.ApplyDecision(types.PlayerSide, decision)
			}
		}
	}

	snap := game.Snapshot()
	over, winner := game.Over()
	switch {
	case !over:
		fmt.Printf("draw after %d ticks (%.0fs simulated)\n", tick, snap.GameTime)
	default:
		fmt.Printf("winner: %s after %d ticks (%.0fs simulated)\n", winner.String(), tick, snap.GameTime)
	}
	for _, side := range []types.Side{types.PlayerSide, types.OpponentSide} {
		s := snap.Sides[side]
		fmt.Printf("  %-8s age=%d base=%.0f/%.0f gold=%.0f mana=%.0f turret=%d damage=%.0f\n",
			side.String(), s.Age, s.Base.Health, s.Base.MaxHealth, s.Gold, s.Mana,
			s.Base.TurretLevel, snap.DamageDealt[side])
	}
}
