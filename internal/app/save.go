// internal/app/save.go
package app

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"go-lane-war/internal/ai"
	"go-lane-war/internal/component"
	"go-lane-war/internal/config"
	"go-lane-war/internal/entity"
	"go-lane-war/internal/types"
)

const saveVersion = 1

// savedUnit bundles one unit's components for serialization.
type savedUnit struct {
	Unit     component.Unit        `json:"unit"`
	Position component.Position    `json:"position"`
	Velocity *component.Velocity   `json:"velocity,omitempty"`
	Health   component.Health      `json:"health"`
	Combat   component.Combat      `json:"combat"`
	Skill    *component.SkillState `json:"skill,omitempty"`
}

type savedProjectile struct {
	Projectile component.Projectile `json:"projectile"`
	Position   component.Position   `json:"position"`
}

// savedGame is the full serialized simulation: authoritative state, PRNG
// position, and the opponent controller's internal memory, so a restored
// game continues exactly where it left off.
type savedGame struct {
	Version int           `json:"version"`
	Config  config.Config `json:"config"`

	Seed  int64  `json:"seed"`
	Draws uint64 `json:"draws"`

	Tick         uint64         `json:"tick"`
	GameTime     float64        `json:"game_time"`
	NextID       types.EntityID `json:"next_id"`
	NextEffectID types.EffectID `json:"next_effect_id"`

	HalfWidth float64              `json:"half_width"`
	Sides     [2]entity.SideState  `json:"sides"`

	Units       map[types.EntityID]savedUnit       `json:"units"`
	Projectiles map[types.EntityID]savedProjectile `json:"projectiles"`

	KillCredits map[types.EntityID]types.Side `json:"kill_credits,omitempty"`
	DamageDealt [2]float64                    `json:"damage_dealt"`

	Over   bool       `json:"over"`
	Winner types.Side `json:"winner"`

	AIProfile     string         `json:"ai_profile"`
	AIMemory      map[string]any `json:"ai_memory"`
	AIAccumulator float64        `json:"ai_accumulator"`
}

// Save serializes the full game to an opaque blob.
func (g *Game) Save() ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	saved := savedGame{
		Version:      saveVersion,
		Config:       g.cfg,
		Seed:         g.rng.Seed(),
		Draws:        g.rng.Draws(),
		Tick:         g.ecs.Tick,
		GameTime:     g.ecs.GameTime,
		NextID:       g.ecs.NextID,
		NextEffectID: g.ecs.NextEffectID,
		HalfWidth:    g.ecs.Battlefield.HalfWidth,
		Units:        make(map[types.EntityID]savedUnit, len(g.ecs.Units)),
		Projectiles:  make(map[types.EntityID]savedProjectile, len(g.ecs.Projectiles)),
		KillCredits:  g.ecs.KillCredits,
		DamageDealt:  g.ecs.DamageDealt,
		Over:         g.over,
		Winner:       g.winner,

		AIProfile:     g.controller.Profile(),
		AIMemory:      g.controller.MemorySnapshot(),
		AIAccumulator: g.aiAccumulator,
	}
	for i, s := range g.ecs.Sides {
		saved.Sides[i] = *s
	}

	for id, unit := range g.ecs.Units {
		su := savedUnit{Unit: *unit}
		if pos := g.ecs.Positions[id]; pos != nil {
			su.Position = *pos
		}
		if vel := g.ecs.Velocities[id]; vel != nil {
			v := *vel
			su.Velocity = &v
		}
		if health := g.ecs.Healths[id]; health != nil {
			su.Health = *health
		}
		if combat := g.ecs.Combats[id]; combat != nil {
			su.Combat = *combat
		}
		if skill := g.ecs.SkillStates[id]; skill != nil {
			sk := *skill
			su.Skill = &sk
		}
		saved.Units[id] = su
	}
	for id, proj := range g.ecs.Projectiles {
		sp := savedProjectile{Projectile: *proj}
		if pos := g.ecs.Positions[id]; pos != nil {
			sp.Position = *pos
		}
		saved.Projectiles[id] = sp
	}

	return json.Marshal(saved)
}

// Restore reconstructs a game from a saved blob. Any malformed or
// incomplete blob fails closed: the error is returned and no partial game
// is ever produced.
func Restore(blob []byte, cb Callbacks, logger *slog.Logger) (*Game, error) {
	var saved savedGame
	if err := json.Unmarshal(blob, &saved); err != nil {
		return nil, fmt.Errorf("parse saved game: %w", err)
	}
	if saved.Version != saveVersion {
		return nil, fmt.Errorf("unsupported save version %d", saved.Version)
	}
	if saved.HalfWidth <= 0 || saved.NextID == 0 {
		return nil, fmt.Errorf("saved game is missing required fields")
	}
	if _, ok := ai.Profiles[saved.AIProfile]; !ok {
		return nil, fmt.Errorf("saved game references unknown profile %q", saved.AIProfile)
	}

	g, err := New(saved.Config, saved.Seed, cb, logger)
	if err != nil {
		return nil, err
	}

	g.rng.Restore(saved.Seed, saved.Draws)
	g.ecs.Tick = saved.Tick
	g.ecs.GameTime = saved.GameTime
	g.ecs.NextID = saved.NextID
	g.ecs.NextEffectID = saved.NextEffectID
	g.ecs.Battlefield.HalfWidth = saved.HalfWidth
	g.ecs.DamageDealt = saved.DamageDealt
	for i := range saved.Sides {
		s := saved.Sides[i]
		g.ecs.Sides[i] = &s
	}
	for id, side := range saved.KillCredits {
		g.ecs.KillCredits[id] = side
	}

	for id, su := range saved.Units {
		unit := su.Unit
		pos := su.Position
		health := su.Health
		combat := su.Combat
		g.ecs.Units[id] = &unit
		g.ecs.Positions[id] = &pos
		g.ecs.Healths[id] = &health
		g.ecs.Combats[id] = &combat
		if su.Velocity != nil {
			v := *su.Velocity
			g.ecs.Velocities[id] = &v
		}
		if su.Skill != nil {
			sk := *su.Skill
			g.ecs.SkillStates[id] = &sk
		}
	}
	for id, sp := range saved.Projectiles {
		proj := sp.Projectile
		pos := sp.Position
		g.ecs.Projectiles[id] = &proj
		g.ecs.Positions[id] = &pos
	}

	g.over = saved.Over
	g.winner = saved.Winner
	g.aiAccumulator = saved.AIAccumulator
	g.controller.RestoreMemory(saved.AIMemory)

	return g, nil
}
