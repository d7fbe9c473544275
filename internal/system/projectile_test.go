// internal/system/projectile_test.go
package system

import (
	"testing"

	"go-lane-war/internal/component"
	"go-lane-war/internal/entity"
	"go-lane-war/internal/types"
)

func addProjectile(ecs *entity.ECS, proj component.Projectile, x, offset float64) types.EntityID {
	id := ecs.NewEntity()
	if proj.Lifetime == 0 {
		proj.Lifetime = 4
	}
	ecs.Projectiles[id] = &proj
	ecs.Positions[id] = &component.Position{X: x, Offset: offset}
	return id
}

func TestSplashRadiusBoundary(t *testing.T) {
	ecs, dispatcher := newWorld()
	sys := NewProjectileSystem(ecs, dispatcher)

	primary := addUnit(ecs, "MILITIA", types.OpponentSide, 0)
	atEdge := addUnit(ecs, "MILITIA", types.OpponentSide, 50)
	beyond := addUnit(ecs, "MILITIA", types.OpponentSide, 50.2)
	id := addProjectile(ecs, component.Projectile{
		Owner: types.PlayerSide, Damage: 40, SplashRadius: 50,
	}, 0, 0)

	sys.Update(dt)

	if got := ecs.Healths[primary].Value; got != 50 {
		t.Errorf("primary health = %v, want 50 (full damage)", got)
	}
	if got := ecs.Healths[atEdge].Value; got != 70 {
		t.Errorf("edge health = %v, want 70 (half damage at exactly R)", got)
	}
	if got := ecs.Healths[beyond].Value; got != 90 {
		t.Errorf("beyond health = %v, want 90 (untouched past R)", got)
	}
	if _, alive := ecs.Projectiles[id]; alive {
		t.Error("projectile not removed after impact")
	}
}

func TestPierceHitsSuccessiveTargets(t *testing.T) {
	ecs, dispatcher := newWorld()
	sys := NewProjectileSystem(ecs, dispatcher)

	first := addUnit(ecs, "MILITIA", types.OpponentSide, 0)
	second := addUnit(ecs, "MILITIA", types.OpponentSide, 28)
	id := addProjectile(ecs, component.Projectile{
		Owner: types.PlayerSide, Damage: 40, Pierce: 1,
	}, 0, 0)

	sys.Update(dt)
	if got := ecs.Healths[first].Value; got != 50 {
		t.Fatalf("first health = %v, want 50", got)
	}
	if _, alive := ecs.Projectiles[id]; !alive {
		t.Fatal("piercing projectile removed on first hit")
	}

	sys.Update(dt)
	if got := ecs.Healths[second].Value; got != 50 {
		t.Errorf("second health = %v, want 50", got)
	}
	if _, alive := ecs.Projectiles[id]; alive {
		t.Error("projectile not removed after pierce exhausted")
	}
}

func TestBaseImpact(t *testing.T) {
	ecs, dispatcher := newWorld()
	sys := NewProjectileSystem(ecs, dispatcher)
	id := addProjectile(ecs, component.Projectile{
		Owner: types.PlayerSide, Damage: 40,
	}, 500, 0)

	sys.Update(dt)

	if got := ecs.Side(types.OpponentSide).Base.Health; got != 960 {
		t.Errorf("base health = %v, want 960", got)
	}
	if _, alive := ecs.Projectiles[id]; alive {
		t.Error("projectile not removed after base impact")
	}
}

func TestSplitOnBaseImpact(t *testing.T) {
	ecs, dispatcher := newWorld()
	sys := NewProjectileSystem(ecs, dispatcher)
	addProjectile(ecs, component.Projectile{
		Owner: types.PlayerSide, Damage: 48, SplitCount: 3, SplitDamage: 12,
	}, 500, 0)

	sys.Update(dt)

	if got := len(ecs.Projectiles); got != 3 {
		t.Fatalf("children after split = %d, want 3", got)
	}
	for _, child := range ecs.Projectiles {
		if child.Damage != 12 {
			t.Errorf("child damage = %v, want 12", child.Damage)
		}
	}
}

func TestLifetimeExpiry(t *testing.T) {
	ecs, dispatcher := newWorld()
	sys := NewProjectileSystem(ecs, dispatcher)
	id := addProjectile(ecs, component.Projectile{
		Owner: types.PlayerSide, Damage: 10, Lifetime: 0.01,
	}, 0, 0)

	sys.Update(dt)

	if _, alive := ecs.Projectiles[id]; alive {
		t.Error("expired projectile not removed")
	}
}

func TestDelayGatesAdvance(t *testing.T) {
	ecs, dispatcher := newWorld()
	sys := NewProjectileSystem(ecs, dispatcher)
	addUnit(ecs, "MILITIA", types.OpponentSide, 0)
	id := addProjectile(ecs, component.Projectile{
		Owner: types.PlayerSide, Damage: 40, Delay: 1.0,
	}, 0, 0)

	sys.Update(dt)

	if _, alive := ecs.Projectiles[id]; !alive {
		t.Fatal("delayed projectile resolved before activation")
	}
	if got := ecs.Projectiles[id].Delay; got >= 1.0 {
		t.Errorf("delay = %v, want decremented", got)
	}
}

func TestHomingReacquiresTarget(t *testing.T) {
	ecs, dispatcher := newWorld()
	sys := NewProjectileSystem(ecs, dispatcher)
	survivor := addUnit(ecs, "MILITIA", types.OpponentSide, 200)
	id := addProjectile(ecs, component.Projectile{
		Owner: types.PlayerSide, Damage: 40, VX: 300,
		Homing: true, TargetID: 9999, // gone before launch
	}, 0, 60)

	sys.Update(dt)

	if got := ecs.Projectiles[id].TargetID; got != survivor {
		t.Errorf("reacquired target = %v, want %v", got, survivor)
	}
}
