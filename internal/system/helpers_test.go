// internal/system/helpers_test.go
package system

import (
	"go-lane-war/internal/component"
	"go-lane-war/internal/defs"
	"go-lane-war/internal/entity"
	"go-lane-war/internal/event"
	"go-lane-war/internal/types"
)

func newWorld() (*entity.ECS, *event.Dispatcher) {
	return entity.NewECS(0, 0, 500), event.NewDispatcher()
}

// addUnit fields a unit at a lane coordinate with full health, mirroring the
// component wiring production spawning does.
func addUnit(ecs *entity.ECS, defID string, owner types.Side, x float64) types.EntityID {
	def := defs.UnitLibrary[defID]
	id := ecs.NewEntity()
	ecs.Units[id] = &component.Unit{DefID: defID, Owner: owner}
	ecs.Positions[id] = &component.Position{X: x}
	ecs.Velocities[id] = &component.Velocity{Speed: def.Speed}
	ecs.Healths[id] = &component.Health{Value: def.Health, Max: def.Health}
	ecs.Combats[id] = &component.Combat{}
	if def.Skill != nil {
		ecs.SkillStates[id] = &component.SkillState{}
	}
	return id
}

// anchorBases pins both bases to the lane edges the way the game loop does
// every tick.
func anchorBases(ecs *entity.ECS) {
	for _, s := range []types.Side{types.PlayerSide, types.OpponentSide} {
		ecs.Side(s).Base.X = ecs.Battlefield.BaseX(s)
	}
}
