// internal/defs/units.go
package defs

// CombatStats contains parameters related to a unit's basic attack.
type CombatStats struct {
	Class  UnitClass `json:"class"`
	Damage float64   `json:"damage"`
	Range  float64   `json:"range"`
	Rate   float64   `json:"rate"` // attacks per second

	// Burst-fire ranged units fire Burst rapid shots at BurstInterval, then
	// wait out the normal 1/Rate cooldown.
	Burst         int     `json:"burst,omitempty"`
	BurstInterval float64 `json:"burst_interval,omitempty"`

	ProjectileSpeed float64 `json:"projectile_speed,omitempty"`

	// Teleport-attack mechanism: the unit blinks into melee contact with a
	// target up to BlinkRange away, on its own BlinkCooldown.
	BlinkRange    float64 `json:"blink_range,omitempty"`
	BlinkCooldown float64 `json:"blink_cooldown,omitempty"`

	// Optional projectile behavior.
	Pierce       int     `json:"pierce,omitempty"`
	SplashRadius float64 `json:"splash_radius,omitempty"`
	SplitCount   int     `json:"split_count,omitempty"`
	SplitDamage  float64 `json:"split_damage,omitempty"`
	Homing       bool    `json:"homing,omitempty"`
	Falling      bool    `json:"falling,omitempty"`
}

// SkillDefinition describes a unit special ability. Power is signed: a
// negative power on a DIRECT skill heals instead of damaging.
type SkillDefinition struct {
	Kind     SkillKind `json:"kind"`
	Power    float64   `json:"power"`
	Range    float64   `json:"range"`
	Radius   float64   `json:"radius,omitempty"` // blast radius for AREA
	ManaCost float64   `json:"mana_cost"`
	Cooldown float64   `json:"cooldown"`
}

// UnitDefinition holds all the static data for a spawnable unit type.
type UnitDefinition struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Age       int     `json:"age"`
	Cost      float64 `json:"cost"`
	BuildTime float64 `json:"build_time"`
	Health    float64 `json:"health"`
	Speed     float64 `json:"speed"`

	Combat CombatStats `json:"combat"`

	// Ghost units have a near-zero footprint and are exempt from blocking.
	Ghost bool `json:"ghost,omitempty"`

	// Innate traits folded into the damage contract.
	DamageReduction float64 `json:"damage_reduction,omitempty"` // 0..1
	ManaShield      bool    `json:"mana_shield,omitempty"`
	ManaLeech       float64 `json:"mana_leech,omitempty"` // fraction of dealt damage returned as mana

	Skill *SkillDefinition `json:"skill,omitempty"`
}

// Bounty is the gold awarded to the killer's owner when this unit dies.
func (d UnitDefinition) Bounty(fraction float64) float64 {
	return d.Cost * fraction
}
