package world

import (
	"fmt"
	"strings"
)

// TokenReward is the score granted for each consumed token.
const TokenReward = 10

// Position is a (row, col) grid coordinate.
type Position struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.Row, p.Col) }

// Manhattan returns the taxicab distance between p and o.
func (p Position) Manhattan(o Position) int {
	return abs(p.Row-o.Row) + abs(p.Col-o.Col)
}

// WithinBox reports whether o lies inside the square of radius r centred on
// p, i.e. both axis deltas are at most r.
func (p Position) WithinBox(o Position, r int) bool {
	return abs(p.Row-o.Row) <= r && abs(p.Col-o.Col) <= r
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// TokenKind selects what the consumable tokens represent.
type TokenKind uint8

const (
	// Food tokens never move.
	Food TokenKind = iota
	// Sheep tokens move every tick according to a token agent.
	Sheep
)

func (k TokenKind) String() string {
	switch k {
	case Food:
		return "food"
	case Sheep:
		return "sheep"
	default:
		return fmt.Sprintf("TokenKind(%d)", uint8(k))
	}
}

// Moving reports whether tokens of this kind move each tick.
func (k TokenKind) Moving() bool { return k == Sheep }

// ParseTokenKind converts "food" or "sheep" into a TokenKind.
func ParseTokenKind(s string) (TokenKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "food", "":
		return Food, nil
	case "sheep":
		return Sheep, nil
	}
	return Food, fmt.Errorf("%w: unknown token kind %q", ErrInvalidConfiguration, s)
}

// Reason explains why a game ended.
type Reason uint8

const (
	// None means the game is still running.
	None Reason = iota
	// Captured means a hunter got the lion inside its capture box.
	Captured
	// Cleared means the lion consumed every token.
	Cleared
	// TimedOut means the time or tick budget ran out. Only the loop sets it.
	TimedOut
	// Quit means the game was cancelled from outside.
	Quit
)

var reasonNames = map[Reason]string{
	None:     "none",
	Captured: "captured",
	Cleared:  "cleared",
	TimedOut: "timed_out",
	Quit:     "quit",
}

func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Reason(%d)", uint8(r))
}

// Terminal reports whether r ends a game.
func (r Reason) Terminal() bool { return r != None }

// Message returns the line shown to players when a game ends.
func (r Reason) Message() string {
	switch r {
	case Captured:
		return "Lion was caught by the hunter!"
	case Cleared:
		return "Lion ate all the food!"
	case TimedOut:
		return "Time's up!"
	case Quit:
		return "Game Over!"
	}
	return ""
}

// MarshalText implements encoding.TextMarshaler.
func (r Reason) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Reason) UnmarshalText(text []byte) error {
	for k, v := range reasonNames {
		if v == string(text) {
			*r = k
			return nil
		}
	}
	return fmt.Errorf("unknown reason %q", text)
}

// Snapshot is a detached copy of the world state.
type Snapshot struct {
	GridSize       int        `json:"grid_size"`
	Lion           Position   `json:"lion"`
	Hunters        []Position `json:"hunters"`
	Tokens         []Position `json:"tokens"`
	TokenKind      string     `json:"token_kind"`
	Score          int        `json:"score"`
	ProximityRange int        `json:"proximity_range"`
	Reason         Reason     `json:"reason"`
}
