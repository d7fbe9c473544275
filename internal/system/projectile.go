// internal/system/projectile.go
package system

import (
	"math"

	"go-lane-war/internal/component"
	"go-lane-war/internal/config"
	"go-lane-war/internal/entity"
	"go-lane-war/internal/event"
	"go-lane-war/internal/types"
)

// ProjectileSystem advances in-flight projectiles and resolves their
// impacts. Resolution order per projectile: base impact first, then the
// nearest opposing entity, then splash around the primary hit.
type ProjectileSystem struct {
	ecs        *entity.ECS
	dispatcher *event.Dispatcher
}

func NewProjectileSystem(ecs *entity.ECS, dispatcher *event.Dispatcher) *ProjectileSystem {
	return &ProjectileSystem{ecs: ecs, dispatcher: dispatcher}
}

func (s *ProjectileSystem) Update(deltaTime float64) {
	for _, id := range s.ecs.SortedProjectileIDs() {
		proj := s.ecs.Projectiles[id]
		pos := s.ecs.Positions[id]
		if proj == nil || pos == nil {
			s.remove(id)
			continue
		}

		if proj.Delay > 0 {
			proj.Delay -= deltaTime
			continue
		}

		if proj.Homing {
			s.guide(proj, pos)
		}
		proj.VY += proj.Gravity * deltaTime
		pos.X += proj.VX * deltaTime
		pos.Offset += proj.VY * deltaTime
		proj.Lifetime -= deltaTime

		if s.resolveBaseImpact(id, proj, pos) {
			continue
		}
		if s.resolveEntityImpact(id, proj, pos) {
			continue
		}
		if proj.Lifetime <= 0 {
			s.remove(id)
		}
	}
}

func (s *ProjectileSystem) remove(id types.EntityID) {
	delete(s.ecs.Positions, id)
	delete(s.ecs.Projectiles, id)
}

// guide steers a drone projectile: cruise at altitude toward a point above
// the target, then dive. When the target is gone it re-acquires the
// healthiest opposing unit still alive.
func (s *ProjectileSystem) guide(proj *component.Projectile, pos *component.Position) {
	speed := math.Max(math.Abs(proj.VX), math.Abs(proj.VY))
	if speed == 0 {
		speed = config.TurretProjectileSpeed
	}

	if _, alive := s.ecs.Units[proj.TargetID]; !alive {
		proj.TargetID = s.healthiestEnemy(proj.Owner)
		proj.Diving = false
	}
	targetPos, ok := s.ecs.Positions[proj.TargetID]
	if !ok {
		// Nothing left to chase; fall out of the sky.
		proj.Homing = false
		proj.VY = -speed
		return
	}

	dx := targetPos.X - pos.X
	if !proj.Diving {
		if math.Abs(dx) > config.ProjectileHitRadius {
			proj.VX = math.Copysign(speed, dx)
			proj.VY = 0
			pos.Offset = config.DroneCruiseHeight
		} else {
			proj.Diving = true
		}
	}
	if proj.Diving {
		proj.VX = 0
		proj.VY = -speed
	}
}

func (s *ProjectileSystem) healthiestEnemy(owner types.Side) types.EntityID {
	var best types.EntityID
	bestHealth := -1.0
	for _, id := range s.ecs.SortedUnitIDs() {
		unit := s.ecs.Units[id]
		health := s.ecs.Healths[id]
		if unit == nil || health == nil || unit.Owner == owner {
			continue
		}
		if health.Value > bestHealth {
			bestHealth = health.Value
			best = id
		}
	}
	return best
}

// resolveBaseImpact checks whether the projectile reached the far lane edge
// and, if so, damages the enemy base and spawns any split children there.
func (s *ProjectileSystem) resolveBaseImpact(id types.EntityID, proj *component.Projectile, pos *component.Position) bool {
	enemy := proj.Owner.Enemy()
	baseX := s.ecs.Battlefield.BaseX(enemy)
	if (baseX-pos.X)*proj.Owner.Facing() > 0 {
		return false
	}

	ApplyBaseDamage(s.ecs, enemy, proj.Damage, proj.Owner, proj.ManaLeech)
	s.dispatcher.Dispatch(event.Event{Type: event.BaseDamaged, Data: enemy})
	if proj.SplitCount > 0 {
		s.split(proj, pos)
	}
	s.ecs.SpawnEffect("impact", pos.X, pos.Offset, 0, config.EffectLifetime)
	s.remove(id)
	return true
}

// split breaks a shell into children at the impact point. Children arc back
// into the lane as plain projectiles carrying the split damage.
func (s *ProjectileSystem) split(parent *component.Projectile, pos *component.Position) {
	facing := parent.Owner.Facing()
	for i := 0; i < parent.SplitCount; i++ {
		childID := s.ecs.NewEntity()
		spread := float64(i+1) / float64(parent.SplitCount)
		s.ecs.Projectiles[childID] = &component.Projectile{
			Owner:    parent.Owner,
			Damage:   parent.SplitDamage,
			VX:       -facing * 60 * spread,
			VY:       90 * spread,
			Gravity:  -240,
			Lifetime: 1.5,
			Kind:     parent.Kind + "_SPLIT",
		}
		s.ecs.Positions[childID] = &component.Position{X: pos.X, Offset: pos.Offset}
	}
}

// resolveEntityImpact scans opposing units nearest-first, damages the
// primary hit, splashes around it, and honors pierce.
func (s *ProjectileSystem) resolveEntityImpact(id types.EntityID, proj *component.Projectile, pos *component.Position) bool {
	var hit types.EntityID
	bestDist := math.MaxFloat64

	for _, unitID := range s.ecs.SortedUnitIDs() {
		unit := s.ecs.Units[unitID]
		unitPos := s.ecs.Positions[unitID]
		if unit == nil || unitPos == nil || unit.Owner == proj.Owner {
			continue
		}
		dx := unitPos.X - pos.X
		dy := unitPos.Offset - pos.Offset
		dist := math.Hypot(dx, dy)
		if dist <= config.ProjectileHitRadius && dist < bestDist {
			bestDist = dist
			hit = unitID
		}
	}
	if hit == 0 {
		return false
	}

	ApplyDamageLeech(s.ecs, hit, proj.Damage, proj.Owner, proj.ManaLeech)
	if proj.SplashRadius > 0 {
		s.splash(proj, pos, hit)
	}
	s.ecs.SpawnEffect("hit", pos.X, pos.Offset, proj.SplashRadius, config.EffectLifetime)

	if proj.Pierce > 0 {
		proj.Pierce--
		// Nudge past the victim so the same unit is not struck twice.
		pos.X += proj.Owner.Facing() * config.ProjectileHitRadius * 2
		return false
	}
	s.remove(id)
	return true
}

// splash damages every opposing unit within the splash radius of the impact
// point at the reduced multiplier, excluding the primary hit.
func (s *ProjectileSystem) splash(proj *component.Projectile, pos *component.Position, primary types.EntityID) {
	for _, unitID := range s.ecs.SortedUnitIDs() {
		if unitID == primary {
			continue
		}
		unit := s.ecs.Units[unitID]
		unitPos := s.ecs.Positions[unitID]
		if unit == nil || unitPos == nil || unit.Owner == proj.Owner {
			continue
		}
		dx := unitPos.X - pos.X
		dy := unitPos.Offset - pos.Offset
		if math.Hypot(dx, dy) <= proj.SplashRadius {
			ApplyDamage(s.ecs, unitID, proj.Damage*config.SplashMultiplier, proj.Owner)
		}
	}
}
