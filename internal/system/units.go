// internal/system/units.go
package system

import (
	"math"

	"go-lane-war/internal/component"
	"go-lane-war/internal/config"
	"go-lane-war/internal/defs"
	"go-lane-war/internal/entity"
	"go-lane-war/internal/event"
	"go-lane-war/internal/types"
)

// UnitSystem resolves movement, blocking, melee/ranged combat dispatch and
// the base-attack check for every fielded unit, then sweeps deaths and
// out-of-bounds entities at the end of the tick.
type UnitSystem struct {
	ecs        *entity.ECS
	dispatcher *event.Dispatcher
}

func NewUnitSystem(ecs *entity.ECS, dispatcher *event.Dispatcher) *UnitSystem {
	return &UnitSystem{ecs: ecs, dispatcher: dispatcher}
}

func (s *UnitSystem) Update(deltaTime float64) {
	for _, id := range s.ecs.SortedUnitIDs() {
		s.updateUnit(id, deltaTime)
	}
	s.sweep()
}

func (s *UnitSystem) updateUnit(id types.EntityID, dt float64) {
	unit := s.ecs.Units[id]
	pos := s.ecs.Positions[id]
	combat := s.ecs.Combats[id]
	if unit == nil || pos == nil || combat == nil {
		return
	}
	def, ok := defs.UnitLibrary[unit.DefID]
	if !ok {
		return
	}

	if combat.Cooldown > 0 {
		combat.Cooldown -= dt
	}
	if combat.BlinkCooldown > 0 {
		combat.BlinkCooldown -= dt
	}

	blocked, targetID := s.resolveBlocking(id, unit, pos, def)

	if targetID != 0 {
		s.attackUnit(id, unit, pos, combat, def, targetID)
	} else if def.Combat.BlinkRange > 0 && combat.BlinkCooldown <= 0 {
		s.tryBlink(id, unit, pos, combat, def)
	}

	// The base-attack check runs when no unit target exists: once the enemy
	// base is in effective range the unit stops and engages it.
	baseEngaged := false
	if targetID == 0 {
		baseEngaged = s.attackBase(unit, pos, combat, def)
	}

	if !blocked && targetID == 0 && !baseEngaged {
		if vel, hasVel := s.ecs.Velocities[id]; hasVel {
			pos.X += unit.Owner.Facing() * vel.Speed * dt
		}
	}
}

// resolveBlocking scans all other units ahead on the facing axis. Same-owner
// units enforce a minimum spacing (halved for ranged footprints), opposing
// units block contact and become an attack target within range + slack.
// Ghost units neither block nor are blocked.
func (s *UnitSystem) resolveBlocking(id types.EntityID, unit *component.Unit, pos *component.Position, def defs.UnitDefinition) (blocked bool, target types.EntityID) {
	facing := unit.Owner.Facing()
	attackReach := def.Combat.Range + config.AttackRangeSlack
	bestDist := math.MaxFloat64

	for _, otherID := range s.ecs.SortedUnitIDs() {
		if otherID == id {
			continue
		}
		other := s.ecs.Units[otherID]
		otherPos := s.ecs.Positions[otherID]
		if other == nil || otherPos == nil {
			continue
		}
		ahead := (otherPos.X - pos.X) * facing
		if ahead < 0 {
			continue
		}

		if other.Owner == unit.Owner {
			if def.Ghost || defs.UnitLibrary[other.DefID].Ghost {
				continue
			}
			spacing := config.UnitSpacing
			if def.Combat.Class == defs.ClassRanged {
				spacing /= 2
			}
			if ahead < spacing {
				blocked = true
			}
			continue
		}

		// Opposing unit: contact blocks, range acquires.
		if !def.Ghost && !defs.UnitLibrary[other.DefID].Ghost && ahead < config.UnitSpacing/2 {
			blocked = true
		}
		if ahead <= attackReach && ahead < bestDist {
			bestDist = ahead
			target = otherID
		}
	}
	return blocked, target
}

func (s *UnitSystem) attackUnit(id types.EntityID, unit *component.Unit, pos *component.Position, combat *component.Combat, def defs.UnitDefinition, targetID types.EntityID) {
	if combat.Cooldown > 0 {
		return
	}
	switch def.Combat.Class {
	case defs.ClassMelee:
		ApplyDamageLeech(s.ecs, targetID, def.Combat.Damage, unit.Owner, def.ManaLeech)
		combat.Cooldown = 1 / def.Combat.Rate
	case defs.ClassRanged:
		targetPos := s.ecs.Positions[targetID]
		if targetPos == nil {
			return
		}
		s.fireProjectile(unit, pos, def, targetID, targetPos)
		if def.Combat.Burst > 1 {
			if combat.BurstLeft > 0 {
				combat.BurstLeft--
				combat.Cooldown = def.Combat.BurstInterval
			} else {
				combat.BurstLeft = def.Combat.Burst - 1
				combat.Cooldown = 1 / def.Combat.Rate
			}
		} else {
			combat.Cooldown = 1 / def.Combat.Rate
		}
	}
}

// tryBlink teleports a blink unit into melee contact with the nearest enemy
// inside its blink range.
func (s *UnitSystem) tryBlink(id types.EntityID, unit *component.Unit, pos *component.Position, combat *component.Combat, def defs.UnitDefinition) {
	facing := unit.Owner.Facing()
	var best types.EntityID
	bestDist := def.Combat.BlinkRange

	for _, otherID := range s.ecs.SortedUnitIDs() {
		other := s.ecs.Units[otherID]
		otherPos := s.ecs.Positions[otherID]
		if other == nil || otherPos == nil || other.Owner == unit.Owner {
			continue
		}
		ahead := (otherPos.X - pos.X) * facing
		if ahead > config.UnitSpacing/2 && ahead <= bestDist {
			bestDist = ahead
			best = otherID
		}
	}
	if best == 0 {
		return
	}
	targetPos := s.ecs.Positions[best]
	pos.X = targetPos.X - facing*def.Combat.Range*0.5
	combat.BlinkCooldown = def.Combat.BlinkCooldown
	combat.BlinkTargetID = best
	s.ecs.SpawnEffect("blink", pos.X, pos.Offset, 0, config.EffectLifetime)
}

// attackBase engages the enemy base when it is in effective range. Reports
// whether the unit is engaged, cooling down included.
func (s *UnitSystem) attackBase(unit *component.Unit, pos *component.Position, combat *component.Combat, def defs.UnitDefinition) bool {
	enemy := unit.Owner.Enemy()
	baseX := s.ecs.Battlefield.BaseX(enemy)
	dist := math.Abs(baseX - pos.X)
	if dist > def.Combat.Range+config.AttackRangeSlack {
		return false
	}
	if combat.Cooldown > 0 {
		return true
	}
	switch def.Combat.Class {
	case defs.ClassMelee:
		ApplyBaseDamage(s.ecs, enemy, def.Combat.Damage, unit.Owner, def.ManaLeech)
		s.dispatcher.Dispatch(event.Event{Type: event.BaseDamaged, Data: enemy})
	case defs.ClassRanged:
		s.fireProjectileAt(unit, pos, def, baseX, 0)
	}
	combat.Cooldown = 1 / def.Combat.Rate
	return true
}

func (s *UnitSystem) fireProjectile(unit *component.Unit, pos *component.Position, def defs.UnitDefinition, targetID types.EntityID, targetPos *component.Position) {
	id := s.fireProjectileAt(unit, pos, def, targetPos.X, targetPos.Offset)
	if def.Combat.Homing {
		if proj, ok := s.ecs.Projectiles[id]; ok {
			proj.TargetID = targetID
		}
	}
}

// fireProjectileAt spawns one projectile from the unit toward a lane
// coordinate, carrying the definition's behavior flags.
func (s *UnitSystem) fireProjectileAt(unit *component.Unit, pos *component.Position, def defs.UnitDefinition, targetX, targetOffset float64) types.EntityID {
	id := s.ecs.NewEntity()
	facing := unit.Owner.Facing()

	proj := &component.Projectile{
		Owner:        unit.Owner,
		Damage:       def.Combat.Damage,
		VX:           facing * def.Combat.ProjectileSpeed,
		Lifetime:     config.ProjectileLifetime,
		Pierce:       def.Combat.Pierce,
		SplashRadius: def.Combat.SplashRadius,
		SplitCount:   def.Combat.SplitCount,
		SplitDamage:  def.Combat.SplitDamage,
		Homing:       def.Combat.Homing,
		ManaLeech:    def.ManaLeech,
		Kind:         def.ID,
	}
	start := component.Position{X: pos.X, Offset: pos.Offset}
	if def.Combat.Falling {
		// Lob: launch upward, gravity brings the shell down near the target.
		dist := math.Abs(targetX - pos.X)
		flight := dist / math.Max(def.Combat.ProjectileSpeed, 1)
		proj.Gravity = -2 * config.DroneCruiseHeight / math.Max(flight*flight, 0.01)
		proj.VY = -proj.Gravity * flight / 2
		proj.Falling = true
	} else if def.Combat.Homing {
		start.Offset = config.DroneCruiseHeight
	}

	s.ecs.Projectiles[id] = proj
	s.ecs.Positions[id] = &start
	return id
}

// sweep removes out-of-bounds and dead units, crediting bounty to the
// killer's owner.
func (s *UnitSystem) sweep() {
	for _, id := range s.ecs.SortedUnitIDs() {
		unit := s.ecs.Units[id]
		pos := s.ecs.Positions[id]
		health := s.ecs.Healths[id]

		outOfBounds := pos != nil && !s.ecs.Battlefield.Contains(pos.X)
		dead := health != nil && health.Value <= 0

		if dead {
			s.creditBounty(id, unit)
			s.dispatcher.Dispatch(event.Event{Type: event.UnitKilled, Data: event.KillData{
				Victim:      id,
				VictimDefID: unit.DefID,
				KillerOwner: s.ecs.KillCredits[id],
			}})
		}
		if dead || outOfBounds {
			if pos != nil {
				s.ecs.SpawnEffect("death", pos.X, pos.Offset, 0, config.EffectLifetime)
			}
			s.ecs.RemoveEntity(id)
		}
	}
}

// creditBounty pays the killer's owner a gold fraction of the victim's cost,
// plus a mana conversion when the killer's mana-generation level grants it.
func (s *UnitSystem) creditBounty(id types.EntityID, unit *component.Unit) {
	killer, credited := s.ecs.KillCredits[id]
	if !credited {
		return
	}
	def, ok := defs.UnitLibrary[unit.DefID]
	if !ok {
		return
	}
	side := s.ecs.Side(killer)
	side.Gold += def.Bounty(config.BountyGoldFraction)
	if side.ManaLevel >= 1 {
		side.Mana += def.Cost * config.BountyManaFraction
	}
}
