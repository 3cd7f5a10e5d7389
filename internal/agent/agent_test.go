package agent

import (
	"os"
	"path/filepath"
	"testing"

	"lionhunt/internal/action"
	"lionhunt/internal/core"
	"lionhunt/internal/world"
)

func TestRandomDefaultsToMoves(t *testing.T) {
	r := NewRandom(core.NewRNG(1))
	seen := map[action.Action]int{}
	for i := 0; i < 400; i++ {
		seen[r.Act(Observation{})]++
	}
	if seen[action.Stay] != 0 {
		t.Fatal("default random agent must not pick Stay")
	}
	for _, a := range action.Moves() {
		if seen[a] == 0 {
			t.Fatalf("action %s never chosen in 400 draws", a)
		}
	}
}

func TestRandomRespectsChoices(t *testing.T) {
	r := NewRandom(core.NewRNG(2), action.Left)
	for i := 0; i < 20; i++ {
		if got := r.Act(Observation{}); got != action.Left {
			t.Fatalf("got %s, want LEFT", got)
		}
	}
}

func TestProximityRandomGrazesWhenLionFar(t *testing.T) {
	sheep := NewProximityRandom(core.NewRNG(3), 2)
	obs := Observation{Self: world.Position{Row: 5, Col: 5}, Lion: world.Position{Row: 7, Col: 6}}
	for i := 0; i < 50; i++ {
		if got := sheep.Act(obs); got != action.Stay {
			t.Fatalf("lion at distance 3 made sheep choose %s", got)
		}
	}
}

func TestProximityRandomFleesWhenLionNear(t *testing.T) {
	sheep := NewProximityRandom(core.NewRNG(4), 2)
	obs := Observation{Self: world.Position{Row: 5, Col: 5}, Lion: world.Position{Row: 6, Col: 6}}
	moved := false
	for i := 0; i < 50; i++ {
		if sheep.Act(obs) != action.Stay {
			moved = true
			break
		}
	}
	if !moved {
		t.Fatal("sheep never reacted to a lion at distance 2")
	}
}

func TestScriptedReplaysThenStays(t *testing.T) {
	s := NewScripted(action.Down, action.Right)
	want := []action.Action{action.Down, action.Right, action.Stay, action.Stay}
	for i, w := range want {
		if got := s.Act(Observation{}); got != w {
			t.Fatalf("move %d = %s, want %s", i, got, w)
		}
	}
	if s.Remaining() != 0 {
		t.Fatalf("remaining = %d", s.Remaining())
	}
}

func TestLoadScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.yaml")
	body := "lion: [down, DOWN, right]\nhunters:\n  - [left, up]\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadScript(path)
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if len(s.Lion) != 3 || s.Lion[2] != action.Right {
		t.Fatalf("lion script = %v", s.Lion)
	}
	if len(s.Hunters) != 1 || s.Hunters[0][1] != action.Up {
		t.Fatalf("hunter scripts = %v", s.Hunters)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("lion: [down, sideways]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScript(bad); err == nil {
		t.Fatal("expected error for unknown action name")
	}
}
