// internal/types/types.go
package types

// EntityID identifies a live entity or projectile. IDs are allocated from a
// monotonic counter and never reused within a session, so a stale ID can
// always be checked for continued existence.
type EntityID uint64

// EffectID identifies a transient visual-effect record. Allocated from its
// own counter so presentation bookkeeping cannot disturb entity IDs.
type EffectID uint64

// Side is one of the two competing players.
type Side int

const (
	PlayerSide Side = iota
	OpponentSide
)

// Enemy returns the opposing side.
func (s Side) Enemy() Side {
	if s == PlayerSide {
		return OpponentSide
	}
	return PlayerSide
}

func (s Side) String() string {
	if s == PlayerSide {
		return "player"
	}
	return "opponent"
}

// Facing is the movement direction along the lane: +1 toward the opponent
// base, -1 toward the player base.
func (s Side) Facing() float64 {
	if s == PlayerSide {
		return 1
	}
	return -1
}
