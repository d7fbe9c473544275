// internal/component/combat.go
package component

import "go-lane-war/internal/types"

// Combat carries the mutable attack state of a unit. Static stats live in
// the unit definition; only per-entity timers and counters belong here.
type Combat struct {
	Cooldown float64 `json:"cooldown"` // seconds until the next attack

	// Burst-fire bookkeeping: shots remaining in the current burst.
	BurstLeft int `json:"burst_left,omitempty"`

	// Teleport-attack mechanism (blink units).
	BlinkCooldown float64        `json:"blink_cooldown,omitempty"`
	BlinkTargetID types.EntityID `json:"blink_target_id,omitempty"`
}
