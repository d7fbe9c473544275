// internal/event/types.go
package event

import "go-lane-war/internal/types"

const (
	UnitSpawned EventType = "UnitSpawned" // production item completed
	UnitKilled  EventType = "UnitKilled"  // health reached zero
	BaseDamaged EventType = "BaseDamaged"
	AgeUpgraded EventType = "AgeUpgraded"
	TurretFired EventType = "TurretFired"
	SkillCast   EventType = "SkillCast"
	GameOver    EventType = "GameOver"
)

// KillData describes a unit death, including who earns the bounty.
type KillData struct {
	Victim      types.EntityID
	VictimDefID string
	KillerOwner types.Side
}

// SpawnData describes a completed production item.
type SpawnData struct {
	Unit  types.EntityID
	DefID string
	Owner types.Side
}
