// internal/component/projectile.go
package component

import "go-lane-war/internal/types"

// Projectile represents one in-flight shot. Behavior flags are optional;
// zero values mean a plain single-hit projectile.
type Projectile struct {
	Owner  types.Side `json:"owner"`
	Damage float64    `json:"damage"`

	VX       float64 `json:"vx"`       // lane-axis velocity
	VY       float64 `json:"vy"`       // vertical-offset velocity
	Gravity  float64 `json:"gravity"`  // vertical curvature, applied as acceleration
	Lifetime float64 `json:"lifetime"` // seconds until expiry
	Delay    float64 `json:"delay"`    // activation delay before the first advance

	Pierce       int     `json:"pierce,omitempty"`
	SplashRadius float64 `json:"splash_radius,omitempty"`

	// Split-on-impact descriptor: on base impact the shot breaks into
	// SplitCount children carrying SplitDamage each.
	SplitCount  int     `json:"split_count,omitempty"`
	SplitDamage float64 `json:"split_damage,omitempty"`

	// Drone guidance: the shot cruises at altitude toward an overfly point
	// above its target, then dives. It re-acquires the healthiest enemy when
	// the target disappears.
	Homing   bool           `json:"homing,omitempty"`
	TargetID types.EntityID `json:"target_id,omitempty"`
	Diving   bool           `json:"diving,omitempty"`

	// Falling ordnance drops onto its impact point instead of flying flat.
	Falling bool `json:"falling,omitempty"`

	ManaLeech float64 `json:"mana_leech,omitempty"`

	// Visual hint only; never read by the simulation.
	Kind string `json:"kind,omitempty"`
}
