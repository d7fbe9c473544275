// internal/ai/engine_test.go
package ai

import (
	"io"
	"log/slog"
	"testing"

	"go-lane-war/internal/defs"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// calmObs is a quiet early-game observation: full bases, empty lane,
// nothing to react to.
func calmObs() Observation {
	return Observation{
		GameTime: 100,
		Self: SideView{
			Age:           1,
			BaseHealth:    1000,
			BaseMaxHealth: 1000,
			QueueCap:      5,
			FrontlineDist: 1000,
		},
		Enemy: SideView{
			Age:           1,
			BaseHealth:    1000,
			BaseMaxHealth: 1000,
			QueueCap:      5,
			FrontlineDist: 1000,
		},
		LaneHalfWidth:  500,
		NextAgeCost:    530,
		NextManaCost:   120,
		NextTurretCost: 100,
		MaxAge:         6,
		MaxTurretLevel: 12,
	}
}

func TestAllProfilesCompile(t *testing.T) {
	for name := range Profiles {
		e, err := NewEngine(name, testLogger())
		if err != nil {
			t.Errorf("NewEngine(%q): %v", name, err)
			continue
		}
		if e.Profile() != name {
			t.Errorf("Profile() = %q, want %q", e.Profile(), name)
		}
	}
}

func TestUnknownProfileRejected(t *testing.T) {
	if _, err := NewEngine("no_such_profile", testLogger()); err == nil {
		t.Error("unknown profile accepted")
	}
}

func TestZeroResourcesWaits(t *testing.T) {
	e, err := NewEngine("balanced", testLogger())
	if err != nil {
		t.Fatal(err)
	}

	d := e.Decide(calmObs())

	if d.Kind != Wait {
		t.Errorf("decision = %v, want Wait with nothing affordable", d.Kind)
	}
}

func TestRichSideAgesUp(t *testing.T) {
	e, err := NewEngine("balanced", testLogger())
	if err != nil {
		t.Fatal(err)
	}
	obs := calmObs()
	obs.Self.Gold = 650 // next age cost plus the balanced warchest

	d := e.Decide(obs)

	if d.Kind != AgeUp {
		t.Fatalf("decision = %v, want AgeUp", d.Kind)
	}
	if got := e.memory["last_age_up_at"]; got != obs.GameTime {
		t.Errorf("last_age_up_at = %v, want %v", got, obs.GameTime)
	}
	debug := e.Debug()
	if len(debug.ActionLog) != 1 || debug.ActionLog[0].Rule != "age-up" {
		t.Errorf("action log = %+v, want single age-up entry", debug.ActionLog)
	}
}

func TestEmergencyDefenseOverridesEconomy(t *testing.T) {
	e, err := NewEngine("balanced", testLogger())
	if err != nil {
		t.Fatal(err)
	}
	obs := calmObs()
	obs.Self.Gold = 650 // would otherwise age up
	obs.Enemy.UnitCount = 8
	obs.Enemy.ArmyHealth = 1200
	obs.Enemy.FrontlineDist = 100 // push nearly at the gate

	d := e.Decide(obs)

	if d.Kind != RecruitUnit {
		t.Fatalf("decision = %v, want RecruitUnit", d.Kind)
	}
	cheapest, ok := defs.CheapestUnitForAge(1)
	if !ok {
		t.Fatal("no age-1 recruits in the library")
	}
	if d.UnitID != cheapest.ID {
		t.Errorf("recruit = %q, want cheapest defender %q", d.UnitID, cheapest.ID)
	}
}

func TestRepairRunsFirst(t *testing.T) {
	e, err := NewEngine("balanced", testLogger())
	if err != nil {
		t.Fatal(err)
	}
	obs := calmObs()
	obs.Self.Gold = 650
	obs.Self.Mana = 200
	obs.Self.BaseHealth = 300 // below the balanced repair threshold

	d := e.Decide(obs)

	if d.Kind != RepairBase {
		t.Errorf("decision = %v, want RepairBase", d.Kind)
	}
}

func TestSaveForAgeHoldsGold(t *testing.T) {
	// Hard tech priority enables the warchest hold: close to the next age,
	// the engine refuses to spend on lesser progression.
	e, err := NewEngine("hard", testLogger())
	if err != nil {
		t.Fatal(err)
	}
	obs := calmObs()
	obs.GameTime = 10 // too early for an attack wave
	obs.Self.Gold = 400
	obs.Self.TurretLevel = 2 // at the age cap, no turret spending
	obs.Self.UnitCount = 13  // army cap reached, no baseline recruiting

	d := e.Decide(obs)

	if d.Kind != Wait {
		t.Fatalf("decision = %v, want Wait while saving", d.Kind)
	}
	if got := e.Debug().State; got != "saving:age" {
		t.Errorf("debug state = %q, want saving:age", got)
	}
}

func TestAttackGroupComposition(t *testing.T) {
	e, err := NewEngine("aggressive", testLogger())
	if err != nil {
		t.Fatal(err)
	}
	obs := calmObs()
	obs.Self.Gold = 500
	obs.Self.UnitCount = 5
	obs.Self.ManaLevel = 1   // mana unlock already taken
	obs.Self.TurretLevel = 1 // turret already built

	d := e.Decide(obs)

	if d.Kind != AttackGroup {
		t.Fatalf("decision = %v, want AttackGroup", d.Kind)
	}
	if len(d.Group) != Profiles["aggressive"].AttackGroupSize {
		t.Errorf("group size = %d, want %d", len(d.Group), Profiles["aggressive"].AttackGroupSize)
	}
	if got := e.memory["last_attack_at"]; got != obs.GameTime {
		t.Errorf("last_attack_at = %v, want %v", got, obs.GameTime)
	}
}

func TestScaleTurretStopsAtLevelCap(t *testing.T) {
	obs := calmObs()
	obs.Self.Age = 3
	obs.Self.Gold = 400
	obs.Self.TurretLevel = 2
	obs.Self.ManaLevel = 4 // mana scaling exhausted for this age

	e, err := NewEngine("balanced", testLogger())
	if err != nil {
		t.Fatal(err)
	}
	if d := e.Decide(obs); d.Kind != UpgradeTurret {
		t.Fatalf("decision = %v, want UpgradeTurret below the cap", d.Kind)
	}

	// At the game's turret ceiling the same situation must not spend on the
	// turret again.
	e2, err := NewEngine("balanced", testLogger())
	if err != nil {
		t.Fatal(err)
	}
	obs.MaxTurretLevel = obs.Self.TurretLevel
	if d := e2.Decide(obs); d.Kind == UpgradeTurret {
		t.Error("turret upgraded at the level cap")
	}
}

func TestMemorySnapshotIsolated(t *testing.T) {
	e, err := NewEngine("balanced", testLogger())
	if err != nil {
		t.Fatal(err)
	}
	obs := calmObs()
	obs.Self.Gold = 650
	e.Decide(obs)

	snap := e.MemorySnapshot()
	snap["last_age_up_at"] = 9999.0

	if got := e.memory["last_age_up_at"]; got != obs.GameTime {
		t.Errorf("snapshot mutation leaked into engine memory: %v", got)
	}

	e2, err := NewEngine("balanced", testLogger())
	if err != nil {
		t.Fatal(err)
	}
	e2.RestoreMemory(snap)
	if got := e2.memory["last_age_up_at"]; got != 9999.0 {
		t.Errorf("restored memory = %v, want 9999", got)
	}
}
