// internal/defs/turrets.go
package defs

import (
	"math"

	"go-lane-war/internal/config"
)

// TurretAbility enumerates the level-gated special attacks, ordered weakest
// to strongest.
type TurretAbility string

const (
	AbilityNone    TurretAbility = "NONE"
	AbilityPierce  TurretAbility = "PIERCE"
	AbilityChain   TurretAbility = "CHAIN"
	AbilityBarrage TurretAbility = "BARRAGE"
)

// TurretDamage returns turret shot damage at the given level. Level 0 means
// no turret is mounted and never fires.
func TurretDamage(level int) float64 {
	if level <= 0 {
		return 0
	}
	l := float64(level)
	return config.TurretDamageBase + config.TurretDamageFactor*l*l
}

// TurretRange returns turret reach at the given level. Range grows in
// decreasing increments per level bracket and is capped at half the lane
// width so a turret can never cover the enemy half.
func TurretRange(level int, laneHalfWidth float64) float64 {
	if level <= 0 {
		return 0
	}
	r := config.TurretRangeBase
	for l := 2; l <= level; l++ {
		bracket := 1 + (l-1)/3
		r += config.TurretRangeStep / float64(bracket)
	}
	return math.Min(r, laneHalfWidth)
}

// TurretProtection returns the damage-reduction fraction a base's turret
// grants to friendly units inside turret range. Diminishing per level,
// asymptotic to the cap.
func TurretProtection(level int) float64 {
	if level <= 0 {
		return 0
	}
	return config.TurretProtectionCap * (1 - math.Pow(config.TurretProtectionDecay, float64(level)))
}

// AbilityForLevel returns the strongest special attack unlocked at the given
// level that the current qualifying-target count supports.
func AbilityForLevel(level, targets int) TurretAbility {
	if level >= config.TurretBarrageLevel && targets >= config.TurretBarrageTargets {
		return AbilityBarrage
	}
	if level >= config.TurretChainLevel && targets >= config.TurretChainTargets {
		return AbilityChain
	}
	if level >= config.TurretPierceLevel && targets >= config.TurretPierceTargets {
		return AbilityPierce
	}
	return AbilityNone
}

// AbilityCooldown returns the per-ability cooldown applied after a special
// attack fires.
func AbilityCooldown(a TurretAbility) float64 {
	switch a {
	case AbilityPierce:
		return config.TurretPierceCooldown
	case AbilityChain:
		return config.TurretChainCooldown
	case AbilityBarrage:
		return config.TurretBarrageCooldown
	default:
		return 0
	}
}

// TurretLevelInfo is a read-only catalog row describing one turret level,
// exposed to hosts for UI convenience.
type TurretLevelInfo struct {
	Level       int     `json:"level"`
	Damage      float64 `json:"damage"`
	Range       float64 `json:"range"`
	Protection  float64 `json:"protection"`
	UpgradeCost float64 `json:"upgrade_cost"`
}

// TurretCatalog lists every turret level up to the maximum for the given
// lane half-width.
func TurretCatalog(laneHalfWidth float64) []TurretLevelInfo {
	rows := make([]TurretLevelInfo, 0, config.TurretMaxLevel)
	for l := 1; l <= config.TurretMaxLevel; l++ {
		rows = append(rows, TurretLevelInfo{
			Level:       l,
			Damage:      TurretDamage(l),
			Range:       TurretRange(l, laneHalfWidth),
			Protection:  TurretProtection(l),
			UpgradeCost: config.TurretUpgradeCost(l - 1),
		})
	}
	return rows
}
