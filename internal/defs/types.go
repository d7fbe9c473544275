// internal/defs/types.go
package defs

// UnitClass defines how a unit delivers its basic attack.
type UnitClass string

const (
	ClassMelee  UnitClass = "MELEE"
	ClassRanged UnitClass = "RANGED"
)

// SkillKind selects the execution variant for a unit special ability.
// The skill system switches exhaustively over this set.
type SkillKind string

const (
	SkillDirect     SkillKind = "DIRECT"
	SkillArea       SkillKind = "AREA"
	SkillContinuous SkillKind = "CONTINUOUS"
	SkillHeal       SkillKind = "HEAL"
)
