// internal/component/position.go
package component

// Position locates an entity on the battlefield: X is the lane coordinate
// (negative half is player territory), Offset is the perpendicular lane
// offset used to fan units out visually and for proximity tests.
type Position struct {
	X      float64 `json:"x"`
	Offset float64 `json:"offset"`
}

// Velocity is the lane-axis speed of an entity. Direction comes from the
// owning side's facing.
type Velocity struct {
	Speed float64 `json:"speed"`
}
