// internal/app/save_test.go
package app

import (
	"encoding/json"
	"testing"

	"go-lane-war/internal/types"
)

func TestSaveRestoreRoundTrip(t *testing.T) {
	g := newTestGame(t, "balanced", 1234)
	g.SpawnUnit(types.PlayerSide, "MILITIA")
	g.SpawnUnit(types.PlayerSide, "SLINGER")
	for i := 0; i < 300; i++ {
		g.Step()
	}

	blob, err := g.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	restored, err := Restore(blob, Callbacks{}, testLogger())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if got, want := restored.rng.Draws(), g.rng.Draws(); got != want {
		t.Fatalf("restored draws = %d, want %d", got, want)
	}
	if restored.ecs.Tick != g.ecs.Tick {
		t.Fatalf("restored tick = %d, want %d", restored.ecs.Tick, g.ecs.Tick)
	}

	// Both copies must follow the same trajectory from here. Visual effects
	// are not serialized, so run long enough for pre-save ones to expire.
	for i := 0; i < 300; i++ {
		g.Step()
		restored.Step()
	}

	snapA, err := json.Marshal(g.buildSnapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	snapB, err := json.Marshal(restored.buildSnapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(snapA) != string(snapB) {
		t.Error("restored game diverged from the original")
	}
}

func TestRestoreMalformedBlob(t *testing.T) {
	if _, err := Restore([]byte("{"), Callbacks{}, testLogger()); err == nil {
		t.Error("malformed blob accepted")
	}
}

func TestRestoreMissingFields(t *testing.T) {
	if _, err := Restore([]byte("{}"), Callbacks{}, testLogger()); err == nil {
		t.Error("empty save accepted")
	}
}

func TestRestoreUnknownProfile(t *testing.T) {
	g := newTestGame(t, "balanced", 5)
	g.Step()
	blob, err := g.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(blob, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	raw["ai_profile"] = "no_such_profile"
	corrupted, err := json.Marshal(raw)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if _, err := Restore(corrupted, Callbacks{}, testLogger()); err == nil {
		t.Error("unknown controller profile accepted")
	}
}

func TestRestorePreservesGameOver(t *testing.T) {
	g := newTestGame(t, "balanced", 5)
	g.ecs.Side(types.OpponentSide).Base.Health = 0
	g.Step()

	blob, err := g.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	restored, err := Restore(blob, Callbacks{}, testLogger())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	over, winner := restored.Over()
	if !over {
		t.Fatal("restored game not over")
	}
	if winner != types.PlayerSide {
		t.Errorf("winner = %v, want PlayerSide", winner)
	}
}
