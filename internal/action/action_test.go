package action

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDelta(t *testing.T) {
	cases := []struct {
		a        Action
		row, col int
	}{
		{Stay, 0, 0},
		{Up, -1, 0},
		{Down, 1, 0},
		{Left, 0, -1},
		{Right, 0, 1},
	}
	for _, tc := range cases {
		row, col := Delta(tc.a)
		if row != tc.row || col != tc.col {
			t.Fatalf("Delta(%s) = (%d,%d), want (%d,%d)", tc.a, row, col, tc.row, tc.col)
		}
		back, err := FromDelta(row, col)
		if err != nil || back != tc.a {
			t.Fatalf("FromDelta(%d,%d) = %s, %v; want %s", row, col, back, err, tc.a)
		}
	}
}

func TestParseStrict(t *testing.T) {
	for _, name := range []string{"stay", "UP", " Down ", "left", "RIGHT"} {
		if _, err := Parse(name); err != nil {
			t.Fatalf("Parse(%q) failed: %v", name, err)
		}
	}
	for _, name := range []string{"", "NORTH", "jump", "(1, 0)"} {
		a, err := Parse(name)
		if !errors.Is(err, ErrInvalidAction) {
			t.Fatalf("Parse(%q) = %s, %v; want ErrInvalidAction", name, a, err)
		}
	}
}

func TestInvalidActionValue(t *testing.T) {
	bad := Action(42)
	if bad.Valid() {
		t.Fatal("Action(42) must not be valid")
	}
	if row, col := Delta(bad); row != 0 || col != 0 {
		t.Fatalf("Delta of invalid action = (%d,%d), want (0,0)", row, col)
	}
	if _, err := bad.MarshalText(); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("MarshalText of invalid action returned %v", err)
	}
	if _, err := FromDelta(2, 0); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("FromDelta(2,0) returned %v", err)
	}
}

func TestJSONScript(t *testing.T) {
	var script []Action
	if err := json.Unmarshal([]byte(`["down","DOWN","right","stay"]`), &script); err != nil {
		t.Fatalf("unmarshal script: %v", err)
	}
	want := []Action{Down, Down, Right, Stay}
	if len(script) != len(want) {
		t.Fatalf("script length %d, want %d", len(script), len(want))
	}
	for i := range want {
		if script[i] != want[i] {
			t.Fatalf("script[%d] = %s, want %s", i, script[i], want[i])
		}
	}
	if err := json.Unmarshal([]byte(`["up","teleport"]`), &script); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
}

func TestMovesExcludesStay(t *testing.T) {
	for _, a := range Moves() {
		if a == Stay {
			t.Fatal("Moves must not contain Stay")
		}
	}
	if len(All()) != 5 {
		t.Fatalf("All() has %d actions, want 5", len(All()))
	}
}
