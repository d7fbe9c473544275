// internal/ai/env.go
package ai

import (
	"go-lane-war/internal/defs"
)

// RuleEnv wraps one observation and the engine's persistent memory, and
// exposes the helper methods callable from rule condition expressions.
type RuleEnv struct {
	Obs    Observation
	Memory map[string]any
}

func (e RuleEnv) Gold() float64 { return e.Obs.Self.Gold }
func (e RuleEnv) Mana() float64 { return e.Obs.Self.Mana }
func (e RuleEnv) Age() int      { return e.Obs.Self.Age }
func (e RuleEnv) MaxAge() int   { return e.Obs.MaxAge }

func (e RuleEnv) ManaLevel() int      { return e.Obs.Self.ManaLevel }
func (e RuleEnv) TurretLevel() int    { return e.Obs.Self.TurretLevel }
func (e RuleEnv) MaxTurretLevel() int { return e.Obs.MaxTurretLevel }

func (e RuleEnv) NextAgeCost() float64    { return e.Obs.NextAgeCost }
func (e RuleEnv) NextManaCost() float64   { return e.Obs.NextManaCost }
func (e RuleEnv) NextTurretCost() float64 { return e.Obs.NextTurretCost }

func (e RuleEnv) QueueLen() int  { return e.Obs.Self.QueueLen }
func (e RuleEnv) QueueCap() int  { return e.Obs.Self.QueueCap }
func (e RuleEnv) UnitCount() int { return e.Obs.Self.UnitCount }

func (e RuleEnv) BaseHealthFrac() float64 {
	if e.Obs.Self.BaseMaxHealth == 0 {
		return 0
	}
	return e.Obs.Self.BaseHealth / e.Obs.Self.BaseMaxHealth
}

func (e RuleEnv) EnemyBaseFrac() float64 {
	if e.Obs.Enemy.BaseMaxHealth == 0 {
		return 0
	}
	return e.Obs.Enemy.BaseHealth / e.Obs.Enemy.BaseMaxHealth
}

// Threat scores the enemy army: raw strength weighted by how far it has
// advanced toward our base. 0 means no enemy units; around 1 is a serious
// push at the gate.
func (e RuleEnv) Threat() float64 {
	if e.Obs.Enemy.UnitCount == 0 {
		return 0
	}
	span := 2 * e.Obs.LaneHalfWidth
	if span <= 0 {
		span = 1
	}
	proximity := 1 - e.Obs.Enemy.FrontlineDist/span
	if proximity < 0 {
		proximity = 0
	}
	return e.Obs.Enemy.ArmyHealth / 400 * (0.4 + proximity)
}

// effectiveCost applies the profile's cost discount.
func (e RuleEnv) effectiveCost(c float64) float64 {
	return c * (1 - e.Obs.CostDiscount)
}

// BestUnit returns the priciest unit of the current age, the strongest
// recruit the roster offers.
func (e RuleEnv) BestUnit() string {
	var best string
	bestCost := -1.0
	for _, id := range defs.UnitsForAge(e.Obs.Self.Age) {
		if def := defs.UnitLibrary[id]; def.Cost > bestCost {
			bestCost = def.Cost
			best = def.ID
		}
	}
	return best
}

func (e RuleEnv) BestCost() float64 {
	if id := e.BestUnit(); id != "" {
		return e.effectiveCost(defs.UnitLibrary[id].Cost)
	}
	return 0
}

func (e RuleEnv) CheapestUnit() string {
	def, ok := defs.CheapestUnitForAge(e.Obs.Self.Age)
	if !ok {
		return ""
	}
	return def.ID
}

func (e RuleEnv) CheapestCost() float64 {
	if id := e.CheapestUnit(); id != "" {
		return e.effectiveCost(defs.UnitLibrary[id].Cost)
	}
	return 0
}

// MemFloat reads a numeric memory slot, zero when unset.
func (e RuleEnv) MemFloat(key string) float64 {
	if v, ok := e.Memory[key]; ok {
		if f, ok := v.(float64); ok {
			return f
		}
	}
	return 0
}

// SinceAttack is the simulated time elapsed since the last attack group was
// committed.
func (e RuleEnv) SinceAttack() float64 {
	return e.Obs.GameTime - e.MemFloat("last_attack_at")
}

// SinceAgeUp is the simulated time elapsed since the last age upgrade.
func (e RuleEnv) SinceAgeUp() float64 {
	return e.Obs.GameTime - e.MemFloat("last_age_up_at")
}
