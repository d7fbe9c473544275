// internal/system/damage.go
package system

import (
	"math"

	"go-lane-war/internal/config"
	"go-lane-war/internal/defs"
	"go-lane-war/internal/entity"
	"go-lane-war/internal/types"
)

// This file is the shared damage-resolution contract used by melee strikes,
// projectile impacts, skill damage and turret fire:
//
//	raw × turret-protection × (1 − damage reduction) → mana-shield absorb
//
// with at least 1 damage always penetrating a shield, and mana-leech paying
// the attacker's owner a fraction of damage actually dealt.

// ProtectionMultiplier returns the damage multiplier turret protection
// grants a defender standing at x. It only applies inside the defender's own
// turret range; outside it the multiplier is 1.
func ProtectionMultiplier(ecs *entity.ECS, owner types.Side, x float64) float64 {
	base := ecs.Side(owner).Base
	if base.TurretLevel <= 0 {
		return 1
	}
	reach := defs.TurretRange(base.TurretLevel, ecs.Battlefield.HalfWidth)
	if math.Abs(x-base.X) > reach {
		return 1
	}
	return 1 - defs.TurretProtection(base.TurretLevel)
}

// absorbWithManaShield converts up to 90% of incoming damage to a mana cost
// at the fixed mana-per-damage ratio, capped by the owner's available mana.
// Returns the damage that still penetrates.
func absorbWithManaShield(ecs *entity.ECS, owner types.Side, damage float64) float64 {
	side := ecs.Side(owner)
	if side.Mana <= 0 || damage <= 0 {
		return damage
	}
	absorbable := damage * config.ManaShieldMaxAbsorb
	manaNeeded := absorbable / config.ManaShieldDamagePerMana
	if manaNeeded > side.Mana {
		manaNeeded = side.Mana
		absorbable = manaNeeded * config.ManaShieldDamagePerMana
	}
	side.Mana -= manaNeeded
	remaining := damage - absorbable
	if remaining < config.MinDamage {
		remaining = config.MinDamage
	}
	return remaining
}

// ApplyDamage resolves raw damage from attacker against a unit and returns
// the amount actually dealt. A zero return means the target no longer
// exists or the damage resolved to nothing.
func ApplyDamage(ecs *entity.ECS, targetID types.EntityID, raw float64, attacker types.Side) float64 {
	return ApplyDamageLeech(ecs, targetID, raw, attacker, 0)
}

// ApplyDamageLeech is ApplyDamage with a mana-leech fraction returned to the
// attacker's owner.
func ApplyDamageLeech(ecs *entity.ECS, targetID types.EntityID, raw float64, attacker types.Side, leech float64) float64 {
	unit, ok := ecs.Units[targetID]
	if !ok {
		return 0
	}
	health, hasHealth := ecs.Healths[targetID]
	pos, hasPos := ecs.Positions[targetID]
	if !hasHealth || !hasPos || raw <= 0 {
		return 0
	}
	def := defs.UnitLibrary[unit.DefID]

	damage := raw * ProtectionMultiplier(ecs, unit.Owner, pos.X)
	damage *= 1 - def.DamageReduction
	if def.ManaShield {
		damage = absorbWithManaShield(ecs, unit.Owner, damage)
	}
	if damage < config.MinDamage {
		damage = config.MinDamage
	}

	health.Value -= damage
	if health.Value <= 0 {
		health.Value = 0
		ecs.KillCredits[targetID] = attacker
	}

	if leech > 0 {
		ecs.Side(attacker).Mana += damage * leech
	}
	ecs.DamageDealt[attacker] += damage
	return damage
}

// ApplyBaseDamage resolves raw damage against a side's base. Bases absorb
// through the owner's mana pool the same way shielded units do.
func ApplyBaseDamage(ecs *entity.ECS, victim types.Side, raw float64, attacker types.Side, leech float64) float64 {
	if raw <= 0 {
		return 0
	}
	damage := absorbWithManaShield(ecs, victim, raw)
	if damage < config.MinDamage {
		damage = config.MinDamage
	}

	base := &ecs.Side(victim).Base
	base.Health -= damage
	if base.Health < 0 {
		base.Health = 0
	}
	base.LastDamagedAt = ecs.GameTime

	if leech > 0 {
		ecs.Side(attacker).Mana += damage * leech
	}
	ecs.DamageDealt[attacker] += damage
	return damage
}

// HealUnit restores health to a unit, ignoring protection, capped at max.
// Returns the amount restored.
func HealUnit(ecs *entity.ECS, targetID types.EntityID, amount float64) float64 {
	health, ok := ecs.Healths[targetID]
	if !ok || amount <= 0 {
		return 0
	}
	before := health.Value
	health.HealBy(amount)
	return health.Value - before
}
