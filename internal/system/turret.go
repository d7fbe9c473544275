// internal/system/turret.go
package system

import (
	"math"
	"slices"

	"go-lane-war/internal/component"
	"go-lane-war/internal/config"
	"go-lane-war/internal/defs"
	"go-lane-war/internal/entity"
	"go-lane-war/internal/event"
	"go-lane-war/internal/types"
)

// TurretSystem drives each base's turret: a per-tick fire timer, a plain
// aimed shot by default, and a level-gated ability ladder (barrage > chain >
// pierce) on a separate, longer cooldown. A level-0 turret never fires.
type TurretSystem struct {
	ecs        *entity.ECS
	dispatcher *event.Dispatcher
}

func NewTurretSystem(ecs *entity.ECS, dispatcher *event.Dispatcher) *TurretSystem {
	return &TurretSystem{ecs: ecs, dispatcher: dispatcher}
}

func (s *TurretSystem) Update(deltaTime float64) {
	for _, side := range []types.Side{types.PlayerSide, types.OpponentSide} {
		s.updateTurret(side, deltaTime)
	}
}

func (s *TurretSystem) updateTurret(side types.Side, dt float64) {
	base := &s.ecs.Side(side).Base
	if base.AbilityCooldown > 0 {
		base.AbilityCooldown -= dt
	}
	if base.TurretLevel <= 0 {
		return
	}

	base.TurretTimer += dt
	if base.TurretTimer < config.TurretFireInterval {
		return
	}

	targets := s.targetsInRange(side, base)
	if len(targets) == 0 {
		return
	}
	base.TurretTimer = 0

	damage := defs.TurretDamage(base.TurretLevel)
	ability := defs.AbilityNone
	if base.AbilityCooldown <= 0 {
		ability = defs.AbilityForLevel(base.TurretLevel, len(targets))
	}

	switch ability {
	case defs.AbilityBarrage:
		s.fireBarrage(side, base, targets, damage)
	case defs.AbilityChain:
		s.fireChain(side, targets, damage)
	case defs.AbilityPierce:
		s.firePierce(side, base, targets, damage)
	default:
		s.fireAimedShot(side, base, targets[0], damage)
	}
	if ability != defs.AbilityNone {
		base.AbilityCooldown = defs.AbilityCooldown(ability)
	}
	s.dispatcher.Dispatch(event.Event{Type: event.TurretFired, Data: side})
}

// targetsInRange returns opposing units within turret reach of the base,
// nearest first. Units inside the minimum hitbox radius qualify regardless
// of nominal range.
func (s *TurretSystem) targetsInRange(side types.Side, base *entity.Base) []types.EntityID {
	reach := defs.TurretRange(base.TurretLevel, s.ecs.Battlefield.HalfWidth)
	type candidate struct {
		id   types.EntityID
		dist float64
	}
	var found []candidate

	for _, id := range s.ecs.SortedUnitIDs() {
		unit := s.ecs.Units[id]
		pos := s.ecs.Positions[id]
		if unit == nil || pos == nil || unit.Owner == side {
			continue
		}
		dist := math.Abs(pos.X - base.X)
		if dist <= reach || dist <= config.TurretMinHitboxRadius {
			found = append(found, candidate{id: id, dist: dist})
		}
	}
	slices.SortFunc(found, func(a, b candidate) int {
		if a.dist != b.dist {
			if a.dist < b.dist {
				return -1
			}
			return 1
		}
		// Equal distance falls back to ID order for a stable result.
		if a.id < b.id {
			return -1
		}
		return 1
	})

	ids := make([]types.EntityID, len(found))
	for i, c := range found {
		ids[i] = c.id
	}
	return ids
}

// fireAimedShot launches a plain projectile at the nearest target, its
// lifetime computed from distance and the fixed projectile speed.
func (s *TurretSystem) fireAimedShot(side types.Side, base *entity.Base, target types.EntityID, damage float64) {
	targetPos := s.ecs.Positions[target]
	if targetPos == nil {
		return
	}
	dist := math.Abs(targetPos.X - base.X)
	travel := dist / config.TurretProjectileSpeed

	id := s.ecs.NewEntity()
	s.ecs.Projectiles[id] = &component.Projectile{
		Owner:    side,
		Damage:   damage,
		VX:       side.Facing() * config.TurretProjectileSpeed,
		Lifetime: travel + 0.25,
		Kind:     "TURRET",
	}
	s.ecs.Positions[id] = &component.Position{X: base.X}
}

// firePierce sends one piercing bolt through the incoming line.
func (s *TurretSystem) firePierce(side types.Side, base *entity.Base, targets []types.EntityID, damage float64) {
	id := s.ecs.NewEntity()
	s.ecs.Projectiles[id] = &component.Projectile{
		Owner:    side,
		Damage:   damage * config.TurretPierceFactor,
		VX:       side.Facing() * config.TurretProjectileSpeed,
		Lifetime: config.ProjectileLifetime,
		Pierce:   len(targets) - 1,
		Kind:     "TURRET_PIERCE",
	}
	s.ecs.Positions[id] = &component.Position{X: base.X}
}

// fireChain strikes up to three targets directly: front-loaded damage on the
// nearest, falling off for each jump.
func (s *TurretSystem) fireChain(side types.Side, targets []types.EntityID, damage float64) {
	hit := damage * config.TurretChainFactor
	for i, target := range targets {
		if i >= 3 {
			break
		}
		ApplyDamage(s.ecs, target, hit, side)
		hit *= config.TurretChainFalloff
	}
}

// fireBarrage launches one homing drone per qualifying target.
func (s *TurretSystem) fireBarrage(side types.Side, base *entity.Base, targets []types.EntityID, damage float64) {
	for i, target := range targets {
		if i >= 6 {
			break
		}
		id := s.ecs.NewEntity()
		s.ecs.Projectiles[id] = &component.Projectile{
			Owner:    side,
			Damage:   damage * config.TurretBarrageFactor,
			VX:       side.Facing() * config.TurretProjectileSpeed,
			Lifetime: config.ProjectileLifetime,
			Homing:   true,
			TargetID: target,
			Delay:    float64(i) * 0.1, // stagger the volley
			Kind:     "TURRET_BARRAGE",
		}
		s.ecs.Positions[id] = &component.Position{X: base.X, Offset: config.DroneCruiseHeight}
	}
}
