// internal/app/game_test.go
package app

import (
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"testing"

	"go-lane-war/internal/config"
	"go-lane-war/internal/defs"
	"go-lane-war/internal/system"
	"go-lane-war/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestGame(t *testing.T, difficulty string, seed int64) *Game {
	t.Helper()
	cfg := config.Default()
	cfg.Difficulty = difficulty
	g, err := New(cfg, seed, Callbacks{}, testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestQueueToFieldedUnit(t *testing.T) {
	g := newTestGame(t, "balanced", 7)

	if !g.SpawnUnit(types.PlayerSide, "MILITIA") {
		t.Fatal("spawn command rejected")
	}
	if got := g.ecs.Side(types.PlayerSide).Gold; got != config.StartingGold-25 {
		t.Fatalf("gold = %v, want %v", got, config.StartingGold-25)
	}

	buildTicks := int(system.BuildTime(defs.UnitLibrary["MILITIA"], 1)/config.TickDuration) + 2
	for i := 0; i < buildTicks; i++ {
		g.Step()
	}

	fielded := 0
	for _, unit := range g.ecs.Units {
		if unit.Owner == types.PlayerSide {
			fielded++
		}
	}
	if fielded != 1 {
		t.Errorf("fielded player units = %d, want 1", fielded)
	}
	if got := len(g.ecs.Side(types.PlayerSide).Queue); got != 0 {
		t.Errorf("queue length = %d, want 0", got)
	}
}

func TestQueueCapacity(t *testing.T) {
	g := newTestGame(t, "balanced", 7)
	g.ecs.Side(types.PlayerSide).Gold = 10000

	for i := 0; i < config.QueueCapacity; i++ {
		if !g.SpawnUnit(types.PlayerSide, "MILITIA") {
			t.Fatalf("spawn %d rejected below capacity", i)
		}
	}
	if g.SpawnUnit(types.PlayerSide, "MILITIA") {
		t.Error("spawn accepted past queue capacity")
	}
}

func TestSpawnGatedByAge(t *testing.T) {
	g := newTestGame(t, "balanced", 7)
	g.ecs.Side(types.PlayerSide).Gold = 10000

	for _, defID := range defs.UnitsForAge(2) {
		if g.SpawnUnit(types.PlayerSide, defID) {
			t.Errorf("age-2 unit %s recruited at age 1", defID)
		}
	}
}

func TestCancelRefundsExactCost(t *testing.T) {
	g := newTestGame(t, "balanced", 7)
	side := g.ecs.Side(types.PlayerSide)

	g.SpawnUnit(types.PlayerSide, "MILITIA")
	before := side.Gold

	if !g.CancelQueued(types.PlayerSide, 0) {
		t.Fatal("cancel rejected")
	}
	if got := side.Gold; got != before+25 {
		t.Errorf("gold = %v, want %v", got, before+25)
	}
	if g.CancelQueued(types.PlayerSide, 0) {
		t.Error("double cancel accepted on an empty queue")
	}
}

func TestAgeUpDoublesBase(t *testing.T) {
	g := newTestGame(t, "balanced", 7)
	side := g.ecs.Side(types.PlayerSide)
	side.Gold = 10000
	side.Base.Health = 400 // keep damage across the upgrade

	if !g.UpgradeAge(types.PlayerSide) {
		t.Fatal("age-up rejected")
	}
	if side.Age != 2 {
		t.Errorf("age = %d, want 2", side.Age)
	}
	if side.Base.MaxHealth != 2*config.BaseMaxHealth {
		t.Errorf("max health = %v, want %v", side.Base.MaxHealth, 2*config.BaseMaxHealth)
	}
	// Current health gains exactly the added capacity, damage stays.
	if side.Base.Health != 400+config.BaseMaxHealth {
		t.Errorf("health = %v, want %v", side.Base.Health, 400+config.BaseMaxHealth)
	}
	if got := side.Gold; got != 10000-config.AgeUpCost(1) {
		t.Errorf("gold = %v, want %v", got, 10000-config.AgeUpCost(1))
	}
	if got := side.NextAgeCost; got != config.AgeUpCost(2) {
		t.Errorf("next age cost = %v, want %v", got, config.AgeUpCost(2))
	}
	if got := g.ecs.Battlefield.HalfWidth; got != config.LaneHalfWidthDefault+config.LaneGrowthPerAge {
		t.Errorf("half width = %v, want %v", got, config.LaneHalfWidthDefault+config.LaneGrowthPerAge)
	}
}

func TestAgeCap(t *testing.T) {
	g := newTestGame(t, "balanced", 7)
	side := g.ecs.Side(types.PlayerSide)
	side.Gold = 100000
	side.Age = config.MaxAge

	if g.UpgradeAge(types.PlayerSide) {
		t.Error("age-up accepted at the final age")
	}
}

func TestOpponentPaysDiscountedPrice(t *testing.T) {
	g := newTestGame(t, "hard", 7) // 20% discount
	opponent := g.ecs.Side(types.OpponentSide)
	opponent.Gold = 20

	if !g.SpawnUnit(types.OpponentSide, "MILITIA") {
		t.Fatal("discounted recruit rejected at exact price")
	}
	if got := opponent.Gold; got != 0 {
		t.Errorf("opponent gold = %v, want 0", got)
	}

	player := g.ecs.Side(types.PlayerSide)
	player.Gold = 20 // player pays list price 25
	if g.SpawnUnit(types.PlayerSide, "MILITIA") {
		t.Error("player recruit accepted below list price")
	}
}

func TestSimultaneousBaseKillFavorsOpponent(t *testing.T) {
	g := newTestGame(t, "balanced", 7)
	g.ecs.Side(types.PlayerSide).Base.Health = 0
	g.ecs.Side(types.OpponentSide).Base.Health = 0

	g.Step()

	over, winner := g.Over()
	if !over {
		t.Fatal("game not over with both bases dead")
	}
	if winner != types.OpponentSide {
		t.Errorf("winner = %v, want OpponentSide", winner)
	}
}

func TestGameOverIsTerminal(t *testing.T) {
	g := newTestGame(t, "balanced", 7)
	g.ecs.Side(types.OpponentSide).Base.Health = 0
	g.Step()

	tick := g.ecs.Tick
	g.Step()
	if g.ecs.Tick != tick {
		t.Error("simulation advanced after game over")
	}
	if g.SpawnUnit(types.PlayerSide, "MILITIA") {
		t.Error("command accepted after game over")
	}
}

func TestHealBase(t *testing.T) {
	g := newTestGame(t, "balanced", 7)
	side := g.ecs.Side(types.PlayerSide)
	side.Mana = 200

	if g.HealBase(types.PlayerSide) {
		t.Error("heal accepted at full health")
	}

	side.Base.Health = 500
	if !g.HealBase(types.PlayerSide) {
		t.Fatal("heal rejected with mana available")
	}
	if got := side.Base.Health; got != 500+config.HealBaseAmount {
		t.Errorf("health = %v, want %v", got, 500+config.HealBaseAmount)
	}
	if got := side.Mana; got != 200-config.HealBaseManaCost {
		t.Errorf("mana = %v, want %v", got, 200-config.HealBaseManaCost)
	}

	side.Mana = 200
	side.Base.Health = side.Base.MaxHealth - 10
	g.HealBase(types.PlayerSide)
	if got := side.Base.Health; got != side.Base.MaxHealth {
		t.Errorf("health = %v, want capped at %v", got, side.Base.MaxHealth)
	}
}

func TestDeterministicTwinRun(t *testing.T) {
	script := func(g *Game) {
		for i := 0; i < 600; i++ {
			switch i {
			case 0:
				g.SpawnUnit(types.PlayerSide, "MILITIA")
			case 90:
				g.SpawnUnit(types.PlayerSide, "SLINGER")
			case 200:
				g.UpgradeTurret(types.PlayerSide)
			case 420:
				g.SpawnUnit(types.PlayerSide, "MILITIA")
			}
			g.Step()
		}
	}

	a := newTestGame(t, "balanced", 99)
	b := newTestGame(t, "balanced", 99)
	script(a)
	script(b)

	snapA, err := json.Marshal(a.buildSnapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	snapB, err := json.Marshal(b.buildSnapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(snapA) != string(snapB) {
		t.Error("identical seed and commands diverged")
	}
}

func TestBalancesNeverNegative(t *testing.T) {
	g := newTestGame(t, "aggressive", 3)
	for i := 0; i < 1200; i++ {
		g.Step()
	}
	for _, s := range []types.Side{types.PlayerSide, types.OpponentSide} {
		side := g.ecs.Side(s)
		if side.Gold < 0 || side.Mana < 0 {
			t.Errorf("%v balances gold=%v mana=%v, want non-negative", s, side.Gold, side.Mana)
		}
		if math.IsNaN(side.Gold) || math.IsNaN(side.Mana) {
			t.Errorf("%v balance is NaN", s)
		}
	}
}

func TestTurretUpgradeCap(t *testing.T) {
	g := newTestGame(t, "balanced", 7)
	side := g.ecs.Side(types.PlayerSide)
	side.Gold = 1e9

	for i := 0; i < config.TurretMaxLevel; i++ {
		if !g.UpgradeTurret(types.PlayerSide) {
			t.Fatalf("upgrade %d rejected below the cap", i)
		}
	}
	if g.UpgradeTurret(types.PlayerSide) {
		t.Error("upgrade accepted at max turret level")
	}
	if side.Base.TurretLevel != config.TurretMaxLevel {
		t.Errorf("turret level = %d, want %d", side.Base.TurretLevel, config.TurretMaxLevel)
	}
}
