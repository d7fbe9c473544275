// internal/app/snapshot.go
package app

import (
	"math"
	"slices"

	"go-lane-war/internal/ai"
	"go-lane-war/internal/config"
	"go-lane-war/internal/defs"
	"go-lane-war/internal/types"
)

// Snapshot is a host-safe deep copy of the simulation state. Holding one
// never aliases live simulation memory, so the host and the opponent
// controller can read it freely between ticks.
type Snapshot struct {
	Tick     uint64  `json:"tick"`
	GameTime float64 `json:"game_time"`

	Over   bool       `json:"over"`
	Winner types.Side `json:"winner"`

	LaneHalfWidth float64 `json:"lane_half_width"`

	Sides [2]SideSnapshot `json:"sides"`

	Units       []UnitSnapshot       `json:"units"`
	Projectiles []ProjectileSnapshot `json:"projectiles"`
	Effects     []EffectSnapshot     `json:"effects"`

	DamageDealt [2]float64 `json:"damage_dealt"`
}

// SideSnapshot carries one side's economy, progression and base state plus
// precomputed affordability flags for the host UI.
type SideSnapshot struct {
	Gold float64 `json:"gold"`
	Mana float64 `json:"mana"`

	Age       int `json:"age"`
	ManaLevel int `json:"mana_level"`

	Base  BaseSnapshot        `json:"base"`
	Queue []QueueItemSnapshot `json:"queue"`

	NextAgeCost    float64 `json:"next_age_cost"`
	NextManaCost   float64 `json:"next_mana_cost"`
	NextTurretCost float64 `json:"next_turret_cost"`

	CanAffordAgeUp         bool `json:"can_afford_age_up"`
	CanAffordManaUpgrade   bool `json:"can_afford_mana_upgrade"`
	CanAffordTurretUpgrade bool `json:"can_afford_turret_upgrade"`
	CanHealBase            bool `json:"can_heal_base"`
}

type BaseSnapshot struct {
	Health      float64 `json:"health"`
	MaxHealth   float64 `json:"max_health"`
	X           float64 `json:"x"`
	TurretLevel int     `json:"turret_level"`
}

type QueueItemSnapshot struct {
	DefID     string  `json:"def_id"`
	Remaining float64 `json:"remaining"`
	Cost      float64 `json:"cost"`
}

type UnitSnapshot struct {
	ID     types.EntityID `json:"id"`
	DefID  string         `json:"def_id"`
	Owner  types.Side     `json:"owner"`
	X      float64        `json:"x"`
	Offset float64        `json:"offset"`

	Health    float64 `json:"health"`
	MaxHealth float64 `json:"max_health"`

	Cooldown      float64 `json:"cooldown"`
	SkillCooldown float64 `json:"skill_cooldown,omitempty"`
}

type ProjectileSnapshot struct {
	ID     types.EntityID `json:"id"`
	Owner  types.Side     `json:"owner"`
	Kind   string         `json:"kind,omitempty"`
	X      float64        `json:"x"`
	Offset float64        `json:"offset"`
	Damage float64        `json:"damage"`
}

type EffectSnapshot struct {
	ID     types.EffectID `json:"id"`
	Kind   string         `json:"kind"`
	X      float64        `json:"x"`
	Offset float64        `json:"offset"`
	Radius float64        `json:"radius,omitempty"`
	TTL    float64        `json:"ttl"`
}

// Snapshot returns a deep copy of the current state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.buildSnapshot()
}

func (g *Game) buildSnapshot() Snapshot {
	snap := Snapshot{
		Tick:          g.ecs.Tick,
		GameTime:      g.ecs.GameTime,
		Over:          g.over,
		Winner:        g.winner,
		LaneHalfWidth: g.ecs.Battlefield.HalfWidth,
		DamageDealt:   g.ecs.DamageDealt,
	}

	for _, side := range []types.Side{types.PlayerSide, types.OpponentSide} {
		s := g.ecs.Side(side)
		view := SideSnapshot{
			Gold:      s.Gold,
			Mana:      s.Mana,
			Age:       s.Age,
			ManaLevel: s.ManaLevel,
			Base: BaseSnapshot{
				Health:      s.Base.Health,
				MaxHealth:   s.Base.MaxHealth,
				X:           s.Base.X,
				TurretLevel: s.Base.TurretLevel,
			},
			NextAgeCost:    s.NextAgeCost,
			NextManaCost:   config.ManaUpgradeCost(s.ManaLevel),
			NextTurretCost: config.TurretUpgradeCost(s.Base.TurretLevel),
		}
		view.CanAffordAgeUp = s.Age < config.MaxAge && s.Gold >= g.price(side, view.NextAgeCost)
		view.CanAffordManaUpgrade = s.Gold >= g.price(side, view.NextManaCost)
		view.CanAffordTurretUpgrade = s.Base.TurretLevel < config.TurretMaxLevel &&
			s.Gold >= g.price(side, view.NextTurretCost)
		view.CanHealBase = s.Base.Health < s.Base.MaxHealth && s.Mana >= config.HealBaseManaCost

		view.Queue = make([]QueueItemSnapshot, len(s.Queue))
		for i, item := range s.Queue {
			view.Queue[i] = QueueItemSnapshot{DefID: item.DefID, Remaining: item.Remaining, Cost: item.Cost}
		}
		snap.Sides[side] = view
	}

	for _, id := range g.ecs.SortedUnitIDs() {
		unit := g.ecs.Units[id]
		pos := g.ecs.Positions[id]
		health := g.ecs.Healths[id]
		if unit == nil || pos == nil || health == nil {
			continue
		}
		us := UnitSnapshot{
			ID:        id,
			DefID:     unit.DefID,
			Owner:     unit.Owner,
			X:         pos.X,
			Offset:    pos.Offset,
			Health:    health.Value,
			MaxHealth: health.Max,
		}
		if combat := g.ecs.Combats[id]; combat != nil {
			us.Cooldown = combat.Cooldown
		}
		if skill := g.ecs.SkillStates[id]; skill != nil {
			us.SkillCooldown = skill.Cooldown
		}
		snap.Units = append(snap.Units, us)
	}

	for _, id := range g.ecs.SortedProjectileIDs() {
		proj := g.ecs.Projectiles[id]
		pos := g.ecs.Positions[id]
		if proj == nil || pos == nil {
			continue
		}
		snap.Projectiles = append(snap.Projectiles, ProjectileSnapshot{
			ID: id, Owner: proj.Owner, Kind: proj.Kind,
			X: pos.X, Offset: pos.Offset, Damage: proj.Damage,
		})
	}

	effectIDs := make([]types.EffectID, 0, len(g.ecs.Effects))
	for id := range g.ecs.Effects {
		effectIDs = append(effectIDs, id)
	}
	slices.Sort(effectIDs)
	for _, id := range effectIDs {
		fx := g.ecs.Effects[id]
		snap.Effects = append(snap.Effects, EffectSnapshot{
			ID: id, Kind: fx.Kind, X: fx.X, Offset: fx.Offset, Radius: fx.Radius, TTL: fx.TTL,
		})
	}

	return snap
}

// buildObservation flattens the state into the controller's view, with Self
// always the given side and effective prices already discounted.
func (g *Game) buildObservation(self types.Side) ai.Observation {
	obs := ai.Observation{
		GameTime:       g.ecs.GameTime,
		LaneHalfWidth:  g.ecs.Battlefield.HalfWidth,
		MaxAge:         config.MaxAge,
		MaxTurretLevel: config.TurretMaxLevel,
	}
	if self == types.OpponentSide {
		obs.CostDiscount = g.diff.CostDiscount
	}

	selfState := g.ecs.Side(self)
	obs.NextAgeCost = g.price(self, selfState.NextAgeCost)
	obs.NextManaCost = g.price(self, config.ManaUpgradeCost(selfState.ManaLevel))
	obs.NextTurretCost = g.price(self, config.TurretUpgradeCost(selfState.Base.TurretLevel))

	obs.Self = g.sideView(self)
	obs.Enemy = g.sideView(self.Enemy())
	return obs
}

func (g *Game) sideView(side types.Side) ai.SideView {
	s := g.ecs.Side(side)
	view := ai.SideView{
		Gold:          s.Gold,
		Mana:          s.Mana,
		Age:           s.Age,
		ManaLevel:     s.ManaLevel,
		TurretLevel:   s.Base.TurretLevel,
		BaseHealth:    s.Base.Health,
		BaseMaxHealth: s.Base.MaxHealth,
		QueueLen:      len(s.Queue),
		QueueCap:      config.QueueCapacity,
		FrontlineDist: 2 * g.ecs.Battlefield.HalfWidth,
	}

	enemyBaseX := g.ecs.Battlefield.BaseX(side.Enemy())
	for id, unit := range g.ecs.Units {
		if unit.Owner != side {
			continue
		}
		view.UnitCount++
		if health := g.ecs.Healths[id]; health != nil {
			view.ArmyHealth += health.Value
		}
		if pos := g.ecs.Positions[id]; pos != nil {
			if d := math.Abs(enemyBaseX - pos.X); d < view.FrontlineDist {
				view.FrontlineDist = d
			}
		}
	}
	return view
}

// UnitCatalog returns the read-only unit definitions for the host UI,
// deterministic order.
func UnitCatalog() []defs.UnitDefinition {
	var out []defs.UnitDefinition
	for age := 1; age <= config.MaxAge; age++ {
		for _, id := range defs.UnitsForAge(age) {
			if def := defs.UnitLibrary[id]; def.Age == age {
				out = append(out, def)
			}
		}
	}
	return out
}

// TurretCatalog returns the turret level table for the current lane width.
func (g *Game) TurretCatalog() []defs.TurretLevelInfo {
	g.mu.Lock()
	defer g.mu.Unlock()
	return defs.TurretCatalog(g.ecs.Battlefield.HalfWidth)
}
