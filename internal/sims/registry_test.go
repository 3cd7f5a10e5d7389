package sims_test

import (
	"context"
	"errors"
	"testing"

	"lionhunt/internal/action"
	"lionhunt/internal/agent"
	"lionhunt/internal/config"
	"lionhunt/internal/sims"
	"lionhunt/internal/sims/classic"
	"lionhunt/internal/sims/pack"
	"lionhunt/internal/sims/sheep"
	"lionhunt/internal/world"
)

func settings(variant string) config.Config {
	c := config.NewConfig()
	c.Variant = variant
	c.TickRate = 0
	return *c
}

func TestNamesListsVariants(t *testing.T) {
	got := sims.Names()
	want := []string{classic.Name, pack.Name, sheep.Name}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", got, want)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := sims.Lookup("dragons"); !errors.Is(err, sims.ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
	if _, err := sims.Build(settings("dragons"), 1); !errors.Is(err, sims.ErrUnknownVariant) {
		t.Fatalf("Build: %v", err)
	}
}

func TestClassicLayout(t *testing.T) {
	g, err := sims.Build(settings(classic.Name), 7)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	w := g.World
	if w.Lion() != (world.Position{}) {
		t.Fatalf("lion starts at %s", w.Lion())
	}
	hunters := w.Hunters()
	if len(hunters) != 1 || hunters[0] != (world.Position{Row: 9, Col: 9}) {
		t.Fatalf("hunters %v", hunters)
	}
	if len(w.Tokens()) != 5 || w.TokenKind() != world.Food || g.Tokens != nil {
		t.Fatalf("tokens %v kind %s", w.Tokens(), w.TokenKind())
	}
}

func TestSameSeedSameGame(t *testing.T) {
	a, err := sims.Build(settings(classic.Name), 42)
	if err != nil {
		t.Fatal(err)
	}
	b, err := sims.Build(settings(classic.Name), 42)
	if err != nil {
		t.Fatal(err)
	}
	ta, tb := a.World.Tokens(), b.World.Tokens()
	for i := range ta {
		if ta[i] != tb[i] {
			t.Fatalf("token %d differs: %s vs %s", i, ta[i], tb[i])
		}
	}
}

func TestPackRaisesHunterCount(t *testing.T) {
	g, err := sims.Build(settings(pack.Name), 3)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if n := len(g.World.Hunters()); n != pack.MinHunters || len(g.Hunters) != n {
		t.Fatalf("pack has %d hunters and %d agents", n, len(g.Hunters))
	}
	c := settings(pack.Name)
	c.HunterCount = 5
	g, err = sims.Build(c, 3)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(g.World.Hunters()) != 5 {
		t.Fatalf("explicit hunter count ignored: %d", len(g.World.Hunters()))
	}
}

func TestSheepHasTokenAgent(t *testing.T) {
	g, err := sims.Build(settings(sheep.Name), 5)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.World.TokenKind() != world.Sheep || g.Tokens == nil {
		t.Fatalf("sheep game kind %s token agent %v", g.World.TokenKind(), g.Tokens)
	}
}

func TestBuildRejectsBadWorld(t *testing.T) {
	c := settings(classic.Name)
	c.GridSize = 0
	if _, err := sims.Build(c, 1); !errors.Is(err, world.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestNewLoopRunsToCompletion(t *testing.T) {
	for _, name := range sims.Names() {
		t.Run(name, func(t *testing.T) {
			c := settings(name)
			c.MaxTicks = 200
			l, err := sims.NewLoop(c, 11, nil)
			if err != nil {
				t.Fatalf("NewLoop: %v", err)
			}
			res, err := l.Run(context.Background())
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if !res.Reason.Terminal() || res.Ticks > 200 || res.Variant != name || res.Seed != 11 {
				t.Fatalf("result %+v", res)
			}
		})
	}
}

func TestApplyScript(t *testing.T) {
	g, err := sims.Build(settings(classic.Name), 1)
	if err != nil {
		t.Fatal(err)
	}
	script := &agent.Script{
		Lion:    []action.Action{action.Down, action.Right},
		Hunters: [][]action.Action{{action.Up}},
	}
	if err := g.ApplyScript(script); err != nil {
		t.Fatalf("ApplyScript: %v", err)
	}
	c := settings(classic.Name)
	l, err := g.Loop(c, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if _, _, err := l.Tick(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if got := g.World.Lion(); got != (world.Position{Row: 1, Col: 1}) {
		t.Fatalf("lion at %s, want (1,1)", got)
	}
	if got := g.World.Hunters()[0]; got != (world.Position{Row: 8, Col: 9}) {
		t.Fatalf("hunter at %s, want (8,9)", got)
	}

	tooMany := &agent.Script{Hunters: [][]action.Action{{action.Up}, {action.Up}}}
	if err := g.ApplyScript(tooMany); !errors.Is(err, world.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
