package action

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAction is returned when a value does not name a known action.
var ErrInvalidAction = errors.New("invalid action")

// Action enumerates the moves an agent can make in one tick.
type Action uint8

const (
	Stay Action = iota
	Up
	Down
	Left
	Right

	count
)

var names = [count]string{
	Stay:  "STAY",
	Up:    "UP",
	Down:  "DOWN",
	Left:  "LEFT",
	Right: "RIGHT",
}

// deltas are expressed on (row, col). Row 0 is the top edge.
var deltas = [count][2]int{
	Stay:  {0, 0},
	Up:    {-1, 0},
	Down:  {1, 0},
	Left:  {0, -1},
	Right: {0, 1},
}

var all = []Action{Stay, Up, Down, Left, Right}
var moves = []Action{Up, Down, Left, Right}

// All returns every action, Stay included.
func All() []Action { return append([]Action(nil), all...) }

// Moves returns the four directional actions.
func Moves() []Action { return append([]Action(nil), moves...) }

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool { return a < count }

// String returns the upper-case action name.
func (a Action) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
	return names[a]
}

// Delta returns the (row, col) offset applied by a. Unknown actions yield
// (0, 0); callers that need strictness check Valid first.
func Delta(a Action) (int, int) {
	if !a.Valid() {
		return 0, 0
	}
	d := deltas[a]
	return d[0], d[1]
}

// FromDelta maps a (row, col) offset back to its action.
func FromDelta(dRow, dCol int) (Action, error) {
	for _, a := range all {
		d := deltas[a]
		if d[0] == dRow && d[1] == dCol {
			return a, nil
		}
	}
	return Stay, fmt.Errorf("%w: delta (%d,%d)", ErrInvalidAction, dRow, dCol)
}

// Parse converts a case-insensitive action name into an Action.
func Parse(s string) (Action, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for _, a := range all {
		if names[a] == name {
			return a, nil
		}
	}
	return Stay, fmt.Errorf("%w: %q", ErrInvalidAction, s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Action) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAction, uint8(a))
	}
	return []byte(names[a]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
