package agent

import (
	"lionhunt/internal/action"
	"lionhunt/internal/core"
)

// Random picks uniformly among a fixed set of actions every tick.
type Random struct {
	rng     *core.RNG
	choices []action.Action
}

// NewRandom returns a Random agent over choices. With no choices it picks
// among the four directional moves.
func NewRandom(rng *core.RNG, choices ...action.Action) *Random {
	if rng == nil {
		rng = core.NewRNG(0)
	}
	if len(choices) == 0 {
		choices = action.Moves()
	}
	return &Random{rng: rng, choices: append([]action.Action(nil), choices...)}
}

// Act ignores the observation and returns a random choice.
func (r *Random) Act(Observation) action.Action {
	return r.choices[r.rng.IntN(len(r.choices))]
}

// ProximityRandom is the sheep policy: it panics into a random action (Stay
// included) once the lion comes within Range steps, and grazes otherwise.
type ProximityRandom struct {
	Range int
	rng   *core.RNG
}

// DefaultSheepRange is the Manhattan distance at which sheep start to flee.
const DefaultSheepRange = 2

// NewProximityRandom returns a sheep policy with the given detection range.
func NewProximityRandom(rng *core.RNG, rangeSteps int) *ProximityRandom {
	if rng == nil {
		rng = core.NewRNG(0)
	}
	if rangeSteps < 0 {
		rangeSteps = DefaultSheepRange
	}
	return &ProximityRandom{Range: rangeSteps, rng: rng}
}

// Act measures Manhattan distance from Self to the lion.
func (p *ProximityRandom) Act(obs Observation) action.Action {
	if obs.Self.Manhattan(obs.Lion) <= p.Range {
		all := action.All()
		return all[p.rng.IntN(len(all))]
	}
	return action.Stay
}
