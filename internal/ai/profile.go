// internal/ai/profile.go
package ai

import (
	"fmt"
	"math"
)

// Profile is a high-level opponent posture. Weights are 0.0-1.0; the
// compiler maps them to concrete rule parameters, so the four shipped tiers
// and any custom tier share the same rule machinery.
type Profile struct {
	Name            string  `json:"name"`
	Aggression      float64 `json:"aggression"`
	EconomyPriority float64 `json:"economy_priority"`
	DefensePriority float64 `json:"defense_priority"`
	TechPriority    float64 `json:"tech_priority"`
	EliteWeight     float64 `json:"elite_weight"` // preference for expensive recruits
	Warchest        float64 `json:"warchest"`     // gold floor kept in reserve
	AttackGroupSize int     `json:"attack_group_size"`
	AttackInterval  float64 `json:"attack_interval"`
}

// Profiles holds the shipped opponent tiers.
var Profiles = map[string]Profile{
	"easy": {
		Name:            "easy",
		Aggression:      0.25,
		EconomyPriority: 0.3,
		DefensePriority: 0.5,
		TechPriority:    0.3,
		EliteWeight:     0.2,
		Warchest:        220,
		AttackGroupSize: 6,
		AttackInterval:  45,
	},
	"balanced": {
		Name:            "balanced",
		Aggression:      0.5,
		EconomyPriority: 0.5,
		DefensePriority: 0.5,
		TechPriority:    0.5,
		EliteWeight:     0.5,
		Warchest:        120,
		AttackGroupSize: 4,
		AttackInterval:  30,
	},
	"hard": {
		Name:            "hard",
		Aggression:      0.65,
		EconomyPriority: 0.7,
		DefensePriority: 0.6,
		TechPriority:    0.85,
		EliteWeight:     0.8,
		Warchest:        60,
		AttackGroupSize: 4,
		AttackInterval:  24,
	},
	"aggressive": {
		Name:            "aggressive",
		Aggression:      0.95,
		EconomyPriority: 0.35,
		DefensePriority: 0.25,
		TechPriority:    0.4,
		EliteWeight:     0.35,
		Warchest:        30,
		AttackGroupSize: 3,
		AttackInterval:  14,
	},
}

// Validate clamps all weights to their valid ranges.
func (p *Profile) Validate() {
	p.Aggression = clamp(p.Aggression, 0, 1)
	p.EconomyPriority = clamp(p.EconomyPriority, 0, 1)
	p.DefensePriority = clamp(p.DefensePriority, 0, 1)
	p.TechPriority = clamp(p.TechPriority, 0, 1)
	p.EliteWeight = clamp(p.EliteWeight, 0, 1)
	if p.Warchest < 0 {
		p.Warchest = 0
	}
	p.AttackGroupSize = clampInt(p.AttackGroupSize, 2, 12)
	if p.AttackInterval < 5 {
		p.AttackInterval = 5
	}
}

// CompileProfile generates a complete rule set from a profile's weights.
// All conditions are built via fmt.Sprintf with interpolated values, so the
// compiler never generates invalid expr.
func CompileProfile(p Profile) []*Rule {
	p.Validate()
	var rules []*Rule

	// --- Survival rules (always present, highest priority) ---

	repairThreshold := lerpf(0.3, 0.55, p.DefensePriority)
	rules = append(rules, &Rule{
		Name:         "repair-base",
		Priority:     900,
		Category:     "maintenance",
		Exclusive:    true,
		ConditionSrc: fmt.Sprintf(`BaseHealthFrac() < %.2f && Mana() >= 120`, repairThreshold),
		Action: func(env RuleEnv) Decision {
			return Decision{Kind: RepairBase, Rationale: "base health low, converting mana to repairs"}
		},
	})

	defendThreshold := lerpf(2.2, 1.0, p.DefensePriority)
	rules = append(rules, &Rule{
		Name:         "emergency-defense",
		Priority:     850,
		Category:     "production",
		Exclusive:    true,
		ConditionSrc: fmt.Sprintf(`Threat() > %.2f && QueueLen() < QueueCap() && Gold() >= CheapestCost()`, defendThreshold),
		Action: func(env RuleEnv) Decision {
			return Decision{
				Kind:      RecruitUnit,
				UnitID:    env.CheapestUnit(),
				Rationale: fmt.Sprintf("enemy push detected (threat %.1f), recruiting fast defender", env.Threat()),
			}
		},
	})

	// --- Kill-shot rule ---

	rules = append(rules, &Rule{
		Name:         "finish-push",
		Priority:     800,
		Category:     "production",
		Exclusive:    true,
		ConditionSrc: `EnemyBaseFrac() < 0.25 && QueueLen() < QueueCap() && Gold() >= BestCost()`,
		Action: func(env RuleEnv) Decision {
			return Decision{
				Kind:      RecruitUnit,
				UnitID:    env.BestUnit(),
				Rationale: "enemy base nearly down, committing everything",
			}
		},
	})

	// --- Progression rules (exclusive category: one tech decision per pass) ---

	rules = append(rules, &Rule{
		Name:         "age-up",
		Priority:     700,
		Category:     "progression",
		Exclusive:    true,
		ConditionSrc: fmt.Sprintf(`Age() < MaxAge() && Gold() >= NextAgeCost() + %.0f`, p.Warchest),
		Action: func(env RuleEnv) Decision {
			env.Memory["last_age_up_at"] = env.Obs.GameTime
			return Decision{Kind: AgeUp, Rationale: "reserve met, advancing age"}
		},
	})

	if p.TechPriority > 0.5 {
		// Hold gold when close to the next age and not under pressure.
		rules = append(rules, &Rule{
			Name:         "save-for-age",
			Priority:     690,
			Category:     "progression",
			Exclusive:    true,
			ConditionSrc: `Age() < MaxAge() && Gold() >= NextAgeCost()*0.7 && Threat() < 0.8`,
			Action: func(env RuleEnv) Decision {
				env.Memory["saving_for"] = "age"
				return Decision{Kind: Wait, Rationale: "holding gold for the next age"}
			},
		})
	}

	rules = append(rules, &Rule{
		Name:         "first-mana",
		Priority:     650,
		Category:     "progression",
		Exclusive:    true,
		ConditionSrc: `ManaLevel() == 0 && Gold() >= NextManaCost() + 60`,
		Action: func(env RuleEnv) Decision {
			return Decision{Kind: UpgradeMana, Rationale: "unlocking mana generation"}
		},
	})

	// --- Defense structure rules ---

	if p.DefensePriority > 0.2 {
		rules = append(rules, &Rule{
			Name:         "first-turret",
			Priority:     600,
			Category:     "defense",
			Exclusive:    true,
			ConditionSrc: fmt.Sprintf(`TurretLevel() == 0 && Gold() >= NextTurretCost() + %.0f`, p.Warchest),
			Action: func(env RuleEnv) Decision {
				return Decision{Kind: UpgradeTurret, Rationale: "building the base turret"}
			},
		})

		turretCap := lerp(2, 10, p.DefensePriority)
		rules = append(rules, &Rule{
			Name:         "scale-turret",
			Priority:     380,
			Category:     "defense",
			Exclusive:    true,
			ConditionSrc: fmt.Sprintf(`TurretLevel() > 0 && TurretLevel() < %d && TurretLevel() < MaxTurretLevel() && TurretLevel() < Age()*2 && Gold() >= NextTurretCost() + %.0f`, turretCap, p.Warchest),
			Action: func(env RuleEnv) Decision {
				return Decision{Kind: UpgradeTurret, Rationale: "scaling turret with age"}
			},
		})
	}

	// --- Economy scaling ---

	if p.EconomyPriority > 0.2 {
		manaCap := lerp(2, 8, p.EconomyPriority)
		rules = append(rules, &Rule{
			Name:         "scale-mana",
			Priority:     400,
			Category:     "progression",
			Exclusive:    true,
			ConditionSrc: fmt.Sprintf(`ManaLevel() > 0 && ManaLevel() < %d && ManaLevel() <= Age() && Gold() >= NextManaCost() + %.0f`, manaCap, p.Warchest),
			Action: func(env RuleEnv) Decision {
				return Decision{Kind: UpgradeMana, Rationale: "scaling mana income"}
			},
		})
	}

	// --- Combat rules (parameterized by Aggression) ---

	if p.Aggression > 0.2 {
		groupSize := p.AttackGroupSize
		rules = append(rules, &Rule{
			Name:         "attack-group",
			Priority:     500,
			Category:     "combat",
			Exclusive:    true,
			ConditionSrc: fmt.Sprintf(`UnitCount() >= %d && SinceAttack() > %.0f && QueueLen() < QueueCap() && Gold() >= CheapestCost()*%d`, groupSize, p.AttackInterval, groupSize),
			Action: func(env RuleEnv) Decision {
				env.Memory["last_attack_at"] = env.Obs.GameTime
				return Decision{
					Kind:      AttackGroup,
					Group:     attackComposition(env, groupSize),
					Rationale: fmt.Sprintf("army of %d ready, committing attack wave", env.UnitCount()),
				}
			},
		})
	}

	// --- Baseline production (lowest priority; fires when nothing above does) ---

	armyCap := lerp(6, 16, p.Aggression)
	rules = append(rules, &Rule{
		Name:         "recruit-army",
		Priority:     300,
		Category:     "production",
		Exclusive:    true,
		ConditionSrc: fmt.Sprintf(`QueueLen() < QueueCap() && UnitCount()+QueueLen() < %d && Gold() >= CheapestCost() + %.0f`, armyCap, p.Warchest),
		Action: func(env RuleEnv) Decision {
			return Decision{
				Kind:      RecruitUnit,
				UnitID:    pickRecruit(env, p.EliteWeight),
				Rationale: "steady production",
			}
		},
	})

	return rules
}

// attackComposition builds a wave: one elite spearhead, cheap bodies behind.
func attackComposition(env RuleEnv, size int) []string {
	group := make([]string, 0, size)
	if best := env.BestUnit(); best != "" {
		group = append(group, best)
	}
	cheapest := env.CheapestUnit()
	for len(group) < size && cheapest != "" {
		group = append(group, cheapest)
	}
	return group
}

// pickRecruit chooses between the elite and the cheap recruit of the current
// age based on the profile's elite weight and the gold on hand.
func pickRecruit(env RuleEnv, eliteWeight float64) string {
	best := env.BestUnit()
	cheapest := env.CheapestUnit()
	if best == "" {
		return cheapest
	}
	// Elite-leaning profiles buy the expensive recruit as soon as the budget
	// comfortably covers it; others only with a large surplus.
	margin := lerpf(2.5, 1.1, eliteWeight)
	if env.Gold() >= env.BestCost()*margin {
		return best
	}
	return cheapest
}

func lerp(min, max int, t float64) int {
	return min + int(math.Round(float64(max-min)*t))
}

func lerpf(min, max, t float64) float64 {
	return min + (max-min)*t
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
