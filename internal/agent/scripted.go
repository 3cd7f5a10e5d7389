package agent

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"lionhunt/internal/action"
)

// Scripted replays a fixed list of actions and stays put once it runs out.
type Scripted struct {
	moves []action.Action
	next  int
}

// NewScripted returns an agent that plays moves in order.
func NewScripted(moves ...action.Action) *Scripted {
	return &Scripted{moves: append([]action.Action(nil), moves...)}
}

// Act returns the next scripted move.
func (s *Scripted) Act(Observation) action.Action {
	if s.next >= len(s.moves) {
		return action.Stay
	}
	a := s.moves[s.next]
	s.next++
	return a
}

// Remaining reports how many scripted moves are left.
func (s *Scripted) Remaining() int { return len(s.moves) - s.next }

// Script is the on-disk form of a scripted game: one move list for the lion
// and one per hunter.
type Script struct {
	Lion    []action.Action   `yaml:"lion"`
	Hunters [][]action.Action `yaml:"hunters"`
}

// LoadScript reads a YAML script such as:
//
//	lion: [down, down, right]
//	hunters:
//	  - [left, up]
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script %s: %w", path, err)
	}
	return &s, nil
}
