// Package agent defines the policies that choose one action per tick.
package agent

import (
	"lionhunt/internal/action"
	"lionhunt/internal/world"
)

// Observation is the read-only view an agent gets each tick.
type Observation struct {
	Self    world.Position
	Lion    world.Position
	Hunters []world.Position
	Tokens  []world.Position
}

// Agent picks the next action. Implementations must not block and must treat
// the observation as read-only.
type Agent interface {
	Act(obs Observation) action.Action
}

// Func adapts a plain function to the Agent interface.
type Func func(obs Observation) action.Action

// Act calls f.
func (f Func) Act(obs Observation) action.Action { return f(obs) }

// Stay never moves.
var Stay Agent = Func(func(Observation) action.Action { return action.Stay })
