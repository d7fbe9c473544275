// internal/component/skill.go
package component

// SkillState is the per-entity cooldown of a unit special ability.
type SkillState struct {
	Cooldown float64 `json:"cooldown"`
}
