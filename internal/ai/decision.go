// internal/ai/decision.go
package ai

import "fmt"

// DecisionKind enumerates the closed set of actions the opponent controller
// can return. Every decision re-enters the simulation through the same
// command API the player uses, so none of them can bypass affordability or
// capacity checks.
type DecisionKind int

const (
	Wait DecisionKind = iota
	RecruitUnit
	AgeUp
	UpgradeMana
	UpgradeTurret
	AttackGroup
	RepairBase
)

func (k DecisionKind) String() string {
	switch k {
	case Wait:
		return "WAIT"
	case RecruitUnit:
		return "RECRUIT_UNIT"
	case AgeUp:
		return "AGE_UP"
	case UpgradeMana:
		return "UPGRADE_MANA"
	case UpgradeTurret:
		return "UPGRADE_TURRET"
	case AttackGroup:
		return "ATTACK_GROUP"
	case RepairBase:
		return "REPAIR_BASE"
	}
	return "UNKNOWN"
}

// Decision is one discrete choice per invocation. UnitID is set for
// RecruitUnit, Group for AttackGroup; Rationale is diagnostic only.
type Decision struct {
	Kind      DecisionKind `json:"kind"`
	UnitID    string       `json:"unit_id,omitempty"`
	Group     []string     `json:"group,omitempty"`
	Rationale string       `json:"rationale,omitempty"`
}

func (d Decision) String() string {
	switch d.Kind {
	case RecruitUnit:
		return fmt.Sprintf("%s(%s)", d.Kind, d.UnitID)
	case AttackGroup:
		return fmt.Sprintf("%s(%d units)", d.Kind, len(d.Group))
	}
	return d.Kind.String()
}

// Controller is the swappable decision strategy. Implementations must be
// deterministic given the same observation sequence and internal state.
type Controller interface {
	Decide(obs Observation) Decision
	Debug() DebugInfo
	MemorySnapshot() map[string]any
	RestoreMemory(mem map[string]any)
	Profile() string
}
