// internal/entity/side.go
package entity

import (
	"go-lane-war/internal/config"
	"go-lane-war/internal/types"
)

// Base is one side's fortress: fixed to the lane edge, defended by a
// level-gated turret.
type Base struct {
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"max_health"`
	X         float64 `json:"x"` // re-anchored to the lane edge every tick

	TurretLevel     int     `json:"turret_level"`
	TurretTimer     float64 `json:"turret_timer"`
	AbilityCooldown float64 `json:"ability_cooldown"`

	LastDamagedAt float64 `json:"last_damaged_at"`
}

// QueueItem is one pending production order. Cost records the gold actually
// paid, so canceling refunds exactly the discounted price.
type QueueItem struct {
	DefID     string  `json:"def_id"`
	Remaining float64 `json:"remaining"`
	Cost      float64 `json:"cost"`
}

// SideState aggregates one side's economy, progression, base and production
// queue.
type SideState struct {
	Gold float64 `json:"gold"`
	Mana float64 `json:"mana"`

	Age       int `json:"age"`
	ManaLevel int `json:"mana_level"`

	NextAgeCost float64 `json:"next_age_cost"`

	Base  Base        `json:"base"`
	Queue []QueueItem `json:"queue"`
}

// NewSideState returns a side at age 1 with an empty queue and full base.
func NewSideState(gold, mana float64) *SideState {
	return &SideState{
		Gold:        gold,
		Mana:        mana,
		Age:         1,
		NextAgeCost: config.AgeUpCost(1),
		Base: Base{
			Health:    config.BaseMaxHealth,
			MaxHealth: config.BaseMaxHealth,
		},
	}
}

// GoldRate is the side's passive gold income per second.
func (s *SideState) GoldRate(base float64) float64 {
	return base + float64(s.Age-1)*config.GoldIncomePerAge
}

// ManaRate is the side's passive mana income per second.
func (s *SideState) ManaRate(perLevel float64) float64 {
	return float64(s.ManaLevel) * perLevel
}

// SpendGold deducts amount if affordable. Balances never go negative.
func (s *SideState) SpendGold(amount float64) bool {
	if s.Gold < amount {
		return false
	}
	s.Gold -= amount
	return true
}

// SpendMana deducts amount if affordable.
func (s *SideState) SpendMana(amount float64) bool {
	if s.Mana < amount {
		return false
	}
	s.Mana -= amount
	return true
}

// Battlefield is the 1-D lane: two owner-anchored half-widths around a fixed
// midpoint at x=0.
type Battlefield struct {
	HalfWidth float64 `json:"half_width"`
}

// Grow widens both halves symmetrically, preserving the midpoint.
func (b *Battlefield) Grow(delta float64) {
	b.HalfWidth += delta
}

// BaseX returns the lane-edge anchor for a side's base.
func (b Battlefield) BaseX(s types.Side) float64 {
	if s == types.PlayerSide {
		return -b.HalfWidth
	}
	return b.HalfWidth
}

// Contains reports whether a lane coordinate is inside the playable bounds.
func (b Battlefield) Contains(x float64) bool {
	return x >= -b.HalfWidth && x <= b.HalfWidth
}
