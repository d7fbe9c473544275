// internal/entity/ecs.go
package entity

import (
	"slices"

	"go-lane-war/internal/component"
	"go-lane-war/internal/types"
)

// ECS owns all mutable simulation state. It is passed by exclusive reference
// into each system's update call; nothing outside the simulation core ever
// holds a live pointer into it.
type ECS struct {
	Tick     uint64
	GameTime float64

	NextID       types.EntityID
	NextEffectID types.EffectID

	// Component stores. Positions is shared by units and projectiles, the
	// rest are per-kind.
	Units       map[types.EntityID]*component.Unit
	Positions   map[types.EntityID]*component.Position
	Velocities  map[types.EntityID]*component.Velocity
	Healths     map[types.EntityID]*component.Health
	Combats     map[types.EntityID]*component.Combat
	SkillStates map[types.EntityID]*component.SkillState
	Projectiles map[types.EntityID]*component.Projectile

	// Transient visual-effect arena, separate ID space.
	Effects map[types.EffectID]*component.Effect

	// KillCredits records which side dealt the killing blow, set by the
	// damage contract and consumed by the end-of-tick death sweep.
	KillCredits map[types.EntityID]types.Side

	Sides       [2]*SideState
	Battlefield Battlefield

	// Cumulative damage dealt by each side, for reporting and AI threat
	// assessment.
	DamageDealt [2]float64
}

// NewECS creates an empty world with both sides initialized.
func NewECS(startingGold, startingMana, laneHalfWidth float64) *ECS {
	ecs := &ECS{
		NextID:       1,
		NextEffectID: 1,
		Units:        make(map[types.EntityID]*component.Unit),
		Positions:    make(map[types.EntityID]*component.Position),
		Velocities:   make(map[types.EntityID]*component.Velocity),
		Healths:      make(map[types.EntityID]*component.Health),
		Combats:      make(map[types.EntityID]*component.Combat),
		SkillStates:  make(map[types.EntityID]*component.SkillState),
		Projectiles:  make(map[types.EntityID]*component.Projectile),
		Effects:      make(map[types.EffectID]*component.Effect),
		KillCredits:  make(map[types.EntityID]types.Side),
		Battlefield:  Battlefield{HalfWidth: laneHalfWidth},
	}
	for s := range ecs.Sides {
		ecs.Sides[s] = NewSideState(startingGold, startingMana)
	}
	return ecs
}

// NewEntity allocates the next entity identifier.
func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	return id
}

// NewEffect allocates the next visual-effect identifier.
func (ecs *ECS) NewEffect() types.EffectID {
	id := ecs.NextEffectID
	ecs.NextEffectID++
	return id
}

// RemoveEntity deletes an entity from every component store.
func (ecs *ECS) RemoveEntity(id types.EntityID) {
	delete(ecs.Units, id)
	delete(ecs.Positions, id)
	delete(ecs.Velocities, id)
	delete(ecs.Healths, id)
	delete(ecs.Combats, id)
	delete(ecs.SkillStates, id)
	delete(ecs.Projectiles, id)
	delete(ecs.KillCredits, id)
}

// Side returns the state of the given side.
func (ecs *ECS) Side(s types.Side) *SideState {
	return ecs.Sides[s]
}

// UnitCount returns the number of live units fielded by a side.
func (ecs *ECS) UnitCount(s types.Side) int {
	n := 0
	for _, u := range ecs.Units {
		if u.Owner == s {
			n++
		}
	}
	return n
}

// SortedUnitIDs returns all unit IDs in ascending order. Systems iterate in
// this order so map layout can never influence the trajectory.
func (ecs *ECS) SortedUnitIDs() []types.EntityID {
	ids := make([]types.EntityID, 0, len(ecs.Units))
	for id := range ecs.Units {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// SortedProjectileIDs returns all projectile IDs in ascending order.
func (ecs *ECS) SortedProjectileIDs() []types.EntityID {
	ids := make([]types.EntityID, 0, len(ecs.Projectiles))
	for id := range ecs.Projectiles {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// SpawnEffect records a transient visual effect.
func (ecs *ECS) SpawnEffect(kind string, x, offset, radius, ttl float64) {
	ecs.Effects[ecs.NewEffect()] = &component.Effect{
		Kind: kind, X: x, Offset: offset, Radius: radius, TTL: ttl,
	}
}
