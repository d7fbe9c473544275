// internal/system/economy.go
package system

import (
	"go-lane-war/internal/component"
	"go-lane-war/internal/config"
	"go-lane-war/internal/defs"
	"go-lane-war/internal/entity"
	"go-lane-war/internal/event"
	"go-lane-war/internal/types"
	"go-lane-war/internal/utils"
)

// EconomySystem accrues passive income and advances the production queues.
// Only the head item of a queue builds; completion spawns the unit at the
// owner's base.
type EconomySystem struct {
	ecs        *entity.ECS
	dispatcher *event.Dispatcher
	rng        *utils.PRNGService

	goldIncome float64
	manaIncome float64
	// Opponent handicap from the difficulty tier.
	opponentIncomeMult float64
}

func NewEconomySystem(ecs *entity.ECS, dispatcher *event.Dispatcher, rng *utils.PRNGService, cfg config.Config) *EconomySystem {
	diff := config.Difficulties[cfg.Difficulty]
	mult := diff.IncomeMultiplier
	if mult == 0 {
		mult = 1
	}
	return &EconomySystem{
		ecs:                ecs,
		dispatcher:         dispatcher,
		rng:                rng,
		goldIncome:         cfg.GoldIncome,
		manaIncome:         cfg.ManaIncome,
		opponentIncomeMult: mult,
	}
}

func (s *EconomySystem) Update(deltaTime float64) {
	// Clamp so a stalled host cannot produce a windfall on resume.
	dt := utils.Clamp(deltaTime, 0, config.MaxDeltaTime)

	for _, sideID := range []types.Side{types.PlayerSide, types.OpponentSide} {
		side := s.ecs.Side(sideID)
		mult := 1.0
		if sideID == types.OpponentSide {
			mult = s.opponentIncomeMult
		}
		side.Gold += side.GoldRate(s.goldIncome) * dt * mult
		side.Mana += side.ManaRate(s.manaIncome) * dt * mult

		s.advanceQueue(sideID, side, dt)
	}
}

// advanceQueue decrements only the head item's timer and spawns its unit on
// completion.
func (s *EconomySystem) advanceQueue(sideID types.Side, side *entity.SideState, dt float64) {
	if len(side.Queue) == 0 {
		return
	}
	head := &side.Queue[0]
	head.Remaining -= dt
	if head.Remaining > 0 {
		return
	}
	defID := head.DefID
	side.Queue = side.Queue[1:]
	s.SpawnUnit(sideID, defID)
}

// SpawnUnit creates a fielded unit entity at the owner's base edge. It is
// also the entry point production completion uses.
func (s *EconomySystem) SpawnUnit(owner types.Side, defID string) types.EntityID {
	def, ok := defs.UnitLibrary[defID]
	if !ok {
		return 0
	}
	id := s.ecs.NewEntity()

	spawnX := s.ecs.Battlefield.BaseX(owner) + owner.Facing()*config.UnitSpacing
	s.ecs.Units[id] = &component.Unit{DefID: defID, Owner: owner}
	s.ecs.Positions[id] = &component.Position{
		X:      spawnX,
		Offset: s.rng.Range(-10, 10),
	}
	s.ecs.Velocities[id] = &component.Velocity{Speed: def.Speed}
	s.ecs.Healths[id] = &component.Health{Value: def.Health, Max: def.Health}
	s.ecs.Combats[id] = &component.Combat{}
	if def.Skill != nil {
		s.ecs.SkillStates[id] = &component.SkillState{}
	}

	s.dispatcher.Dispatch(event.Event{Type: event.UnitSpawned, Data: event.SpawnData{
		Unit: id, DefID: defID, Owner: owner,
	}})
	return id
}

// BuildTime returns the age-adjusted build duration for a definition: both
// sides build faster in later ages, floored at half the listed time.
func BuildTime(def defs.UnitDefinition, age int) float64 {
	factor := 1 - float64(age-1)*config.BuildTimeReductionPerAge
	if factor < config.MinBuildTimeFactor {
		factor = config.MinBuildTimeFactor
	}
	return def.BuildTime * factor
}
