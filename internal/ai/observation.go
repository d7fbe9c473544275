// internal/ai/observation.go
package ai

// SideView is one side's state as the controller sees it: a flattened,
// host-safe copy with no live references into the simulation.
type SideView struct {
	Gold float64
	Mana float64

	Age         int
	ManaLevel   int
	TurretLevel int

	BaseHealth    float64
	BaseMaxHealth float64

	QueueLen int
	QueueCap int

	UnitCount  int
	ArmyHealth float64

	// FrontlineDist is the lane distance from this side's most advanced unit
	// to the enemy base. Twice the lane half-width when no units are fielded.
	FrontlineDist float64
}

// Observation is the full read-only input to one Decide call. Self is always
// the controller's own side.
type Observation struct {
	GameTime float64

	Self  SideView
	Enemy SideView

	LaneHalfWidth float64

	// Effective prices for Self's next purchases, discounts already applied.
	NextAgeCost    float64
	NextManaCost   float64
	NextTurretCost float64

	MaxAge         int
	MaxTurretLevel int
	CostDiscount   float64
}
