// internal/system/turret_test.go
package system

import (
	"math"
	"testing"

	"go-lane-war/internal/defs"
	"go-lane-war/internal/types"
)

func TestLevelZeroTurretNeverFires(t *testing.T) {
	ecs, dispatcher := newWorld()
	anchorBases(ecs)
	sys := NewTurretSystem(ecs, dispatcher)
	addUnit(ecs, "MILITIA", types.OpponentSide, ecs.Battlefield.BaseX(types.PlayerSide)+10)

	for i := 0; i < 300; i++ {
		sys.Update(dt)
	}

	if len(ecs.Projectiles) != 0 {
		t.Errorf("projectiles = %d, want 0 from an unbuilt turret", len(ecs.Projectiles))
	}
}

func TestFireIntervalThreshold(t *testing.T) {
	ecs, dispatcher := newWorld()
	anchorBases(ecs)
	sys := NewTurretSystem(ecs, dispatcher)
	base := &ecs.Side(types.PlayerSide).Base
	base.TurretLevel = 1
	addUnit(ecs, "MILITIA", types.OpponentSide, base.X+50)

	sys.Update(1.19)
	if len(ecs.Projectiles) != 0 {
		t.Fatal("turret fired below the interval threshold")
	}

	sys.Update(0.02)
	if len(ecs.Projectiles) != 1 {
		t.Fatalf("projectiles = %d, want 1 at the threshold", len(ecs.Projectiles))
	}
	for _, proj := range ecs.Projectiles {
		if want := defs.TurretDamage(1); proj.Damage != want {
			t.Errorf("shot damage = %v, want %v", proj.Damage, want)
		}
	}
	if base.TurretTimer != 0 {
		t.Errorf("fire timer = %v, want reset to 0", base.TurretTimer)
	}
}

func TestNoFireWithoutTargets(t *testing.T) {
	ecs, dispatcher := newWorld()
	anchorBases(ecs)
	sys := NewTurretSystem(ecs, dispatcher)
	ecs.Side(types.PlayerSide).Base.TurretLevel = 1

	sys.Update(2.0)

	if len(ecs.Projectiles) != 0 {
		t.Error("turret fired with nothing in range")
	}
}

func TestPierceNeedsTwoTargets(t *testing.T) {
	ecs, dispatcher := newWorld()
	anchorBases(ecs)
	sys := NewTurretSystem(ecs, dispatcher)
	base := &ecs.Side(types.PlayerSide).Base
	base.TurretLevel = 3
	addUnit(ecs, "MILITIA", types.OpponentSide, base.X+40)

	sys.Update(1.3)

	if len(ecs.Projectiles) != 1 {
		t.Fatalf("projectiles = %d, want 1", len(ecs.Projectiles))
	}
	for _, proj := range ecs.Projectiles {
		if proj.Pierce != 0 {
			t.Errorf("single target produced a piercing shot (pierce=%d)", proj.Pierce)
		}
	}
	if base.AbilityCooldown != 0 {
		t.Errorf("ability cooldown = %v, want 0 when no ability fired", base.AbilityCooldown)
	}
}

func TestPierceFiresAgainstLine(t *testing.T) {
	ecs, dispatcher := newWorld()
	anchorBases(ecs)
	sys := NewTurretSystem(ecs, dispatcher)
	base := &ecs.Side(types.PlayerSide).Base
	base.TurretLevel = 3
	addUnit(ecs, "MILITIA", types.OpponentSide, base.X+40)
	addUnit(ecs, "MILITIA", types.OpponentSide, base.X+80)

	sys.Update(1.3)

	if len(ecs.Projectiles) != 1 {
		t.Fatalf("projectiles = %d, want 1", len(ecs.Projectiles))
	}
	for _, proj := range ecs.Projectiles {
		if proj.Pierce != 1 {
			t.Errorf("pierce = %d, want 1 for two targets", proj.Pierce)
		}
		want := defs.TurretDamage(3) * 1.4
		if math.Abs(proj.Damage-want) > 1e-9 {
			t.Errorf("damage = %v, want %v", proj.Damage, want)
		}
	}
	if base.AbilityCooldown != defs.AbilityCooldown(defs.AbilityPierce) {
		t.Errorf("ability cooldown = %v, want %v", base.AbilityCooldown, defs.AbilityCooldown(defs.AbilityPierce))
	}
}

func TestChainStrikesDirectly(t *testing.T) {
	ecs, dispatcher := newWorld()
	anchorBases(ecs)
	sys := NewTurretSystem(ecs, dispatcher)
	base := &ecs.Side(types.PlayerSide).Base
	base.TurretLevel = 6
	near := addUnit(ecs, "MILITIA", types.OpponentSide, base.X+30)
	far := addUnit(ecs, "MILITIA", types.OpponentSide, base.X+60)
	ecs.Healths[near].Value, ecs.Healths[near].Max = 500, 500
	ecs.Healths[far].Value, ecs.Healths[far].Max = 500, 500

	sys.Update(1.3)

	// Chain applies damage directly, front-loaded then falling off.
	hit := defs.TurretDamage(6) * 1.6
	if got, want := ecs.Healths[near].Value, 500-hit; math.Abs(got-want) > 1e-9 {
		t.Errorf("near health = %v, want %v", got, want)
	}
	if got, want := ecs.Healths[far].Value, 500-hit*0.65; math.Abs(got-want) > 1e-9 {
		t.Errorf("far health = %v, want %v", got, want)
	}
	if len(ecs.Projectiles) != 0 {
		t.Errorf("projectiles = %d, want 0 for a chain strike", len(ecs.Projectiles))
	}
}

func TestBarrageLaunchesDrones(t *testing.T) {
	ecs, dispatcher := newWorld()
	anchorBases(ecs)
	sys := NewTurretSystem(ecs, dispatcher)
	base := &ecs.Side(types.PlayerSide).Base
	base.TurretLevel = 9
	for i := 0; i < 4; i++ {
		addUnit(ecs, "MILITIA", types.OpponentSide, base.X+30+float64(i)*20)
	}

	sys.Update(1.3)

	if len(ecs.Projectiles) != 4 {
		t.Fatalf("projectiles = %d, want 4 drones", len(ecs.Projectiles))
	}
	for _, proj := range ecs.Projectiles {
		if !proj.Homing {
			t.Error("barrage shot is not homing")
		}
	}
}

func TestTurretDamageNegativeHealthKills(t *testing.T) {
	// Chain hits at level 6 exceed militia health; the kill credit must
	// point at the turret's side.
	ecs, dispatcher := newWorld()
	anchorBases(ecs)
	sys := NewTurretSystem(ecs, dispatcher)
	ecs.Side(types.PlayerSide).Base.TurretLevel = 6
	near := addUnit(ecs, "MILITIA", types.OpponentSide, ecs.Side(types.PlayerSide).Base.X+30)
	addUnit(ecs, "MILITIA", types.OpponentSide, ecs.Side(types.PlayerSide).Base.X+60)

	sys.Update(1.3)

	if got := ecs.Healths[near].Value; got != 0 {
		t.Fatalf("near health = %v, want 0", got)
	}
	if killer := ecs.KillCredits[near]; killer != types.PlayerSide {
		t.Errorf("kill credit = %v, want PlayerSide", killer)
	}
}
