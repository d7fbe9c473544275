// internal/system/skills.go
package system

import (
	"math"

	"go-lane-war/internal/config"
	"go-lane-war/internal/defs"
	"go-lane-war/internal/entity"
	"go-lane-war/internal/event"
	"go-lane-war/internal/types"
)

// SkillSystem attempts every unit's special ability each tick, gated by the
// skill cooldown and the owning side's mana. A cast that finds no valid
// target pays nothing and stays ready; an area cast pays as soon as it has a
// center, even if the blast catches nobody.
type SkillSystem struct {
	ecs        *entity.ECS
	dispatcher *event.Dispatcher
}

func NewSkillSystem(ecs *entity.ECS, dispatcher *event.Dispatcher) *SkillSystem {
	return &SkillSystem{ecs: ecs, dispatcher: dispatcher}
}

func (s *SkillSystem) Update(deltaTime float64) {
	for _, id := range s.ecs.SortedUnitIDs() {
		state := s.ecs.SkillStates[id]
		if state == nil {
			continue
		}
		if state.Cooldown > 0 {
			state.Cooldown -= deltaTime
			continue
		}
		unit := s.ecs.Units[id]
		pos := s.ecs.Positions[id]
		if unit == nil || pos == nil {
			continue
		}
		def, ok := defs.UnitLibrary[unit.DefID]
		if !ok || def.Skill == nil {
			continue
		}
		skill := *def.Skill
		if s.ecs.Side(unit.Owner).Mana < skill.ManaCost {
			continue
		}

		var fired bool
		switch skill.Kind {
		case defs.SkillDirect:
			fired = s.castDirect(id, unit.Owner, pos.X, pos.Offset, skill)
		case defs.SkillArea:
			fired = s.castArea(unit.Owner, pos.X, skill)
		case defs.SkillContinuous:
			fired = s.castContinuous(unit.Owner, pos.X, skill)
		case defs.SkillHeal:
			fired = s.castHeal(id, unit.Owner, pos.X, skill)
		}

		if fired {
			s.ecs.Side(unit.Owner).Mana -= skill.ManaCost
			state.Cooldown = skill.Cooldown
			s.dispatcher.Dispatch(event.Event{Type: event.SkillCast, Data: id})
		}
	}
}

// castDirect applies signed damage to one target: negative power heals the
// nearest damaged ally (protection does not apply to healing), positive
// power strikes the nearest opposing unit through the damage contract.
func (s *SkillSystem) castDirect(caster types.EntityID, owner types.Side, x, offset float64, skill defs.SkillDefinition) bool {
	if skill.Power < 0 {
		target := s.nearestDamagedAlly(caster, owner, x, skill.Range, true)
		if target == 0 {
			return false
		}
		HealUnit(s.ecs, target, -skill.Power)
		return true
	}
	target := s.nearestEnemy(owner, x, skill.Range)
	if target == 0 {
		return false
	}
	ApplyDamage(s.ecs, target, skill.Power, owner)
	return true
}

// castArea centers a blast on the nearest opposing unit, or on the enemy
// base when no unit qualifies, then damages everything opposing within the
// blast radius. Cost is paid once a center exists: a blast that catches
// nothing is a wasted cast.
func (s *SkillSystem) castArea(owner types.Side, x float64, skill defs.SkillDefinition) bool {
	enemy := owner.Enemy()
	baseX := s.ecs.Battlefield.BaseX(enemy)

	centerX := math.NaN()
	if target := s.nearestEnemy(owner, x, skill.Range); target != 0 {
		centerX = s.ecs.Positions[target].X
	} else if math.Abs(baseX-x) <= skill.Range {
		centerX = baseX
	}
	if math.IsNaN(centerX) {
		return false
	}

	for _, id := range s.ecs.SortedUnitIDs() {
		unit := s.ecs.Units[id]
		pos := s.ecs.Positions[id]
		if unit == nil || pos == nil || unit.Owner == owner {
			continue
		}
		if math.Abs(pos.X-centerX) <= skill.Radius {
			ApplyDamage(s.ecs, id, skill.Power, owner)
		}
	}
	if math.Abs(baseX-centerX) <= skill.Radius {
		ApplyBaseDamage(s.ecs, enemy, skill.Power, owner, 0)
	}
	s.ecs.SpawnEffect("blast", centerX, 0, skill.Radius, config.EffectLifetime)
	return true
}

// castContinuous burns every opposing unit in the forward cone each
// activation, plus the enemy base when in range. Unlike a direct strike it
// re-evaluates all qualifying targets every time it fires.
func (s *SkillSystem) castContinuous(owner types.Side, x float64, skill defs.SkillDefinition) bool {
	facing := owner.Facing()
	enemy := owner.Enemy()
	hitAny := false

	var victims []types.EntityID
	for _, id := range s.ecs.SortedUnitIDs() {
		unit := s.ecs.Units[id]
		pos := s.ecs.Positions[id]
		if unit == nil || pos == nil || unit.Owner == owner {
			continue
		}
		ahead := (pos.X - x) * facing
		if ahead >= -config.AttackRangeSlack && ahead <= skill.Range {
			victims = append(victims, id)
		}
	}
	for _, id := range victims {
		ApplyDamage(s.ecs, id, skill.Power, owner)
		hitAny = true
	}

	baseX := s.ecs.Battlefield.BaseX(enemy)
	if math.Abs(baseX-x) <= skill.Range {
		ApplyBaseDamage(s.ecs, enemy, skill.Power, owner, 0)
		hitAny = true
	}
	if hitAny {
		s.ecs.SpawnEffect("flame", x, 0, skill.Range, config.EffectLifetime)
	}
	return hitAny
}

// castHeal restores the closest damaged ally within range, never the caster
// itself.
func (s *SkillSystem) castHeal(caster types.EntityID, owner types.Side, x float64, skill defs.SkillDefinition) bool {
	target := s.nearestDamagedAlly(caster, owner, x, skill.Range, false)
	if target == 0 {
		return false
	}
	HealUnit(s.ecs, target, skill.Power)
	s.ecs.SpawnEffect("heal", s.ecs.Positions[target].X, 0, 0, config.EffectLifetime)
	return true
}

func (s *SkillSystem) nearestEnemy(owner types.Side, x, reach float64) types.EntityID {
	var best types.EntityID
	bestDist := math.MaxFloat64
	for _, id := range s.ecs.SortedUnitIDs() {
		unit := s.ecs.Units[id]
		pos := s.ecs.Positions[id]
		if unit == nil || pos == nil || unit.Owner == owner {
			continue
		}
		dist := math.Abs(pos.X - x)
		if dist <= reach && dist < bestDist {
			bestDist = dist
			best = id
		}
	}
	return best
}

func (s *SkillSystem) nearestDamagedAlly(caster types.EntityID, owner types.Side, x, reach float64, includeSelf bool) types.EntityID {
	var best types.EntityID
	bestDist := math.MaxFloat64
	for _, id := range s.ecs.SortedUnitIDs() {
		if id == caster && !includeSelf {
			continue
		}
		unit := s.ecs.Units[id]
		pos := s.ecs.Positions[id]
		health := s.ecs.Healths[id]
		if unit == nil || pos == nil || health == nil || unit.Owner != owner {
			continue
		}
		if health.Value >= health.Max {
			continue
		}
		dist := math.Abs(pos.X - x)
		if dist <= reach && dist < bestDist {
			bestDist = dist
			best = id
		}
	}
	return best
}
