// internal/app/game.go
package app

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go-lane-war/internal/ai"
	"go-lane-war/internal/config"
	"go-lane-war/internal/defs"
	"go-lane-war/internal/entity"
	"go-lane-war/internal/event"
	"go-lane-war/internal/system"
	"go-lane-war/internal/types"
	"go-lane-war/internal/utils"
)

// Callbacks are the host's synchronous observers. Both are optional, and a
// panicking callback is isolated so it can never corrupt a tick.
type Callbacks struct {
	OnSnapshot func(Snapshot)
	OnGameOver func(winner types.Side)
}

// Game owns the authoritative simulation state and advances it at a fixed
// step. All exported methods are safe for concurrent use; the simulation
// itself runs on a single logical thread.
type Game struct {
	mu sync.Mutex

	cfg  config.Config
	diff config.Difficulty

	ecs        *entity.ECS
	dispatcher *event.Dispatcher
	rng        *utils.PRNGService
	logger     *slog.Logger

	economy     *system.EconomySystem
	units       *system.UnitSystem
	projectiles *system.ProjectileSystem
	skills      *system.SkillSystem
	turrets     *system.TurretSystem

	controller    ai.Controller
	aiAccumulator float64

	stepAccumulator float64

	over   bool
	winner types.Side

	callbacks Callbacks

	running bool
	stop    chan struct{}
	done    chan struct{}
}

// New constructs a fresh simulation. The seed fixes the full trajectory:
// two games with the same seed, config and command sequence are identical.
func New(cfg config.Config, seed int64, cb Callbacks, logger *slog.Logger) (*Game, error) {
	diff, ok := config.Difficulties[cfg.Difficulty]
	if !ok {
		return nil, fmt.Errorf("unknown difficulty tier %q", cfg.Difficulty)
	}
	if logger == nil {
		logger = slog.Default()
	}

	controller, err := ai.NewEngine(diff.Profile, logger)
	if err != nil {
		return nil, fmt.Errorf("build opponent controller: %w", err)
	}

	g := &Game{
		cfg:        cfg,
		diff:       diff,
		ecs:        entity.NewECS(cfg.StartingGold, cfg.StartingMana, cfg.LaneHalfWidth),
		dispatcher: event.NewDispatcher(),
		rng:        utils.NewPRNGService(seed),
		logger:     logger,
		controller: controller,
		callbacks:  cb,
	}
	g.wireSystems()
	return g, nil
}

func (g *Game) wireSystems() {
	g.economy = system.NewEconomySystem(g.ecs, g.dispatcher, g.rng, g.cfg)
	g.units = system.NewUnitSystem(g.ecs, g.dispatcher)
	g.projectiles = system.NewProjectileSystem(g.ecs, g.dispatcher)
	g.skills = system.NewSkillSystem(g.ecs, g.dispatcher)
	g.turrets = system.NewTurretSystem(g.ecs, g.dispatcher)
}

// Dispatcher exposes the event stream for host-side listeners.
func (g *Game) Dispatcher() *event.Dispatcher {
	return g.dispatcher
}

// Seed returns the seed the simulation was constructed with.
func (g *Game) Seed() int64 {
	return g.rng.Seed()
}

// Over reports whether the game has ended, and the winner if so.
func (g *Game) Over() (bool, types.Side) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.over, g.winner
}

// Step advances the simulation by exactly one fixed tick.
func (g *Game) Step() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.step()
}

// Advance feeds elapsed real time into the fixed-step accumulator and runs
// as many whole ticks as it covers. The elapsed time is clamped so a stalled
// host cannot trigger a catch-up burst.
func (g *Game) Advance(elapsed float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.stepAccumulator += utils.Clamp(elapsed, 0, config.MaxDeltaTime)
	for g.stepAccumulator >= config.TickDuration && !g.over {
		g.stepAccumulator -= config.TickDuration
		g.step()
	}
}

// step runs one fixed tick in strict order. Game-over is terminal: the
// first tick that observes a dead base halts the simulation.
func (g *Game) step() {
	if g.over {
		return
	}
	dt := config.TickDuration

	// Win check, player base first so a simultaneous kill favors the
	// opponent deterministically.
	if g.ecs.Side(types.PlayerSide).Base.Health <= 0 {
		g.finish(types.OpponentSide)
		return
	}
	if g.ecs.Side(types.OpponentSide).Base.Health <= 0 {
		g.finish(types.PlayerSide)
		return
	}

	// Bases stay anchored to the lane edges as the lane grows.
	for _, s := range []types.Side{types.PlayerSide, types.OpponentSide} {
		g.ecs.Side(s).Base.X = g.ecs.Battlefield.BaseX(s)
	}

	g.ecs.Tick++
	g.ecs.GameTime += dt

	g.economy.Update(dt)
	g.units.Update(dt)
	g.skills.Update(dt)
	g.projectiles.Update(dt)

	// The opponent controller runs on accumulated simulated time, so a
	// paused host never causes a burst of stale decisions.
	g.aiAccumulator += dt
	for g.aiAccumulator >= config.AIDecisionInterval {
		g.aiAccumulator -= config.AIDecisionInterval
		g.runController()
	}

	g.turrets.Update(dt)
	g.decayEffects(dt)

	if g.callbacks.OnSnapshot != nil {
		snap := g.buildSnapshot()
		g.safeCallback(func() { g.callbacks.OnSnapshot(snap) })
	}
}

// finish completes game-over bookkeeping before any host callback runs, so
// a faulty callback cannot skip it.
func (g *Game) finish(winner types.Side) {
	g.over = true
	g.winner = winner
	g.dispatcher.Dispatch(event.Event{Type: event.GameOver, Data: winner})
	g.logger.Info("game over", "winner", winner.String(), "tick", g.ecs.Tick)
	if g.callbacks.OnGameOver != nil {
		g.safeCallback(func() { g.callbacks.OnGameOver(winner) })
	}
}

func (g *Game) safeCallback(f func()) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("host callback panicked", "panic", r)
		}
	}()
	f()
}

func (g *Game) runController() {
	decision := g.controller.Decide(g.buildObservation(types.OpponentSide))
	if decision.Kind == ai.Wait {
		return
	}
	if !g.applyDecision(types.OpponentSide, decision) {
		g.logger.Debug("opponent decision rejected", "decision", decision.String())
	}
}

// applyDecision routes a controller decision through the same command
// internals the player-facing API uses.
func (g *Game) applyDecision(side types.Side, d ai.Decision) bool {
	switch d.Kind {
	case ai.RecruitUnit:
		return g.spawnUnit(side, d.UnitID)
	case ai.AgeUp:
		return g.upgradeAge(side)
	case ai.UpgradeMana:
		return g.upgradeMana(side)
	case ai.UpgradeTurret:
		return g.upgradeTurret(side)
	case ai.RepairBase:
		return g.healBase(side)
	case ai.AttackGroup:
		queued := false
		for _, defID := range d.Group {
			if !g.spawnUnit(side, defID) {
				break
			}
			queued = true
		}
		return queued
	}
	return false
}

// Observe builds the controller-style view of the state for either side.
// Used by headless drivers that pit two controllers against each other.
func (g *Game) Observe(side types.Side) ai.Observation {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.buildObservation(side)
}

// ApplyDecision executes a controller decision for a side through the
// command API. Same checks as the player surface.
func (g *Game) ApplyDecision(side types.Side, d ai.Decision) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.applyDecision(side, d)
}

// AIDebug returns the opponent controller's diagnostic view.
func (g *Game) AIDebug() ai.DebugInfo {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.controller.Debug()
}

func (g *Game) decayEffects(dt float64) {
	for id, fx := range g.ecs.Effects {
		fx.TTL -= dt
		if fx.TTL <= 0 {
			delete(g.ecs.Effects, id)
		}
	}
}

// price applies the opponent's difficulty discount. The player always pays
// list price.
func (g *Game) price(side types.Side, cost float64) float64 {
	if side == types.OpponentSide {
		return cost * (1 - g.diff.CostDiscount)
	}
	return cost
}

// --- Command API. Every command is an atomic check-then-mutate: a failed
// precondition is a no-op returning false, never an error or partial state.

// SpawnUnit queues one unit for production.
func (g *Game) SpawnUnit(side types.Side, defID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.spawnUnit(side, defID)
}

func (g *Game) spawnUnit(side types.Side, defID string) bool {
	if g.over {
		return false
	}
	def, ok := defs.UnitLibrary[defID]
	if !ok {
		return false
	}
	s := g.ecs.Side(side)
	if def.Age > s.Age {
		return false
	}
	if len(s.Queue) >= config.QueueCapacity {
		return false
	}
	cost := g.price(side, def.Cost)
	if !s.SpendGold(cost) {
		return false
	}
	s.Queue = append(s.Queue, entity.QueueItem{
		DefID:     defID,
		Remaining: system.BuildTime(def, s.Age),
		Cost:      cost,
	})
	return true
}

// CancelQueued removes a pending production item and refunds exactly what
// was paid for it.
func (g *Game) CancelQueued(side types.Side, index int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.over {
		return false
	}
	s := g.ecs.Side(side)
	if index < 0 || index >= len(s.Queue) {
		return false
	}
	s.Gold += s.Queue[index].Cost
	s.Queue = append(s.Queue[:index], s.Queue[index+1:]...)
	return true
}

// UpgradeAge advances a side to the next age: the base's maximum health
// doubles (current health keeps the gained delta) and the lane widens.
func (g *Game) UpgradeAge(side types.Side) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.upgradeAge(side)
}

func (g *Game) upgradeAge(side types.Side) bool {
	if g.over {
		return false
	}
	s := g.ecs.Side(side)
	if s.Age >= config.MaxAge {
		return false
	}
	if !s.SpendGold(g.price(side, s.NextAgeCost)) {
		return false
	}
	s.Age++
	s.NextAgeCost = config.AgeUpCost(s.Age)

	oldMax := s.Base.MaxHealth
	s.Base.MaxHealth *= 2
	s.Base.Health += s.Base.MaxHealth - oldMax

	g.ecs.Battlefield.Grow(config.LaneGrowthPerAge)
	g.dispatcher.Dispatch(event.Event{Type: event.AgeUpgraded, Data: side})
	return true
}

// UpgradeMana raises a side's mana-generation level.
func (g *Game) UpgradeMana(side types.Side) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.upgradeMana(side)
}

func (g *Game) upgradeMana(side types.Side) bool {
	if g.over {
		return false
	}
	s := g.ecs.Side(side)
	if !s.SpendGold(g.price(side, config.ManaUpgradeCost(s.ManaLevel))) {
		return false
	}
	s.ManaLevel++
	return true
}

// UpgradeTurret raises a side's turret level, building it at level 1.
func (g *Game) UpgradeTurret(side types.Side) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.upgradeTurret(side)
}

func (g *Game) upgradeTurret(side types.Side) bool {
	if g.over {
		return false
	}
	s := g.ecs.Side(side)
	if s.Base.TurretLevel >= config.TurretMaxLevel {
		return false
	}
	if !s.SpendGold(g.price(side, config.TurretUpgradeCost(s.Base.TurretLevel))) {
		return false
	}
	s.Base.TurretLevel++
	return true
}

// HealBase converts mana into base repairs. Rejected at full health so the
// mana is never wasted.
func (g *Game) HealBase(side types.Side) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.healBase(side)
}

func (g *Game) healBase(side types.Side) bool {
	if g.over {
		return false
	}
	s := g.ecs.Side(side)
	if s.Base.Health >= s.Base.MaxHealth {
		return false
	}
	if !s.SpendMana(config.HealBaseManaCost) {
		return false
	}
	s.Base.Health += config.HealBaseAmount
	if s.Base.Health > s.Base.MaxHealth {
		s.Base.Health = s.Base.MaxHealth
	}
	return true
}

// Start drives the simulation from a background ticker at the fixed rate.
// Idempotent; Stop halts it.
func (g *Game) Start() {
	g.mu.Lock()
	if g.running {
		g.mu.Unlock()
		return
	}
	g.running = true
	g.stop = make(chan struct{})
	g.done = make(chan struct{})
	g.mu.Unlock()

	go g.run()
}

func (g *Game) run() {
	defer close(g.done)
	tickInterval := float64(time.Second) / config.TickRate
	ticker := time.NewTicker(time.Duration(tickInterval))
	defer ticker.Stop()
	for {
		select {
		case <-g.stop:
			return
		case <-ticker.C:
			g.Step()
			if over, _ := g.Over(); over {
				return
			}
		}
	}
}

// Stop halts the background ticker. Idempotent.
func (g *Game) Stop() {
	g.mu.Lock()
	if !g.running {
		g.mu.Unlock()
		return
	}
	g.running = false
	close(g.stop)
	done := g.done
	g.mu.Unlock()
	<-done
}
