// Package sheep replaces food with sheep that bolt once the lion gets close.
package sheep

import (
	"lionhunt/internal/agent"
	"lionhunt/internal/config"
	"lionhunt/internal/core"
	"lionhunt/internal/sims"
	"lionhunt/internal/world"
)

// Name is the registry key.
const Name = "sheep"

// New builds a sheep game. Every sheep shares one ProximityRandom policy
// using cfg.SheepRange.
func New(cfg config.Config, rng *core.RNG) (*sims.Game, error) {
	w, err := world.New(sims.WorldConfig(cfg, world.Sheep), rng)
	if err != nil {
		return nil, err
	}
	return &sims.Game{
		World:   w,
		Lion:    agent.NewRandom(rng),
		Hunters: sims.RandomHunters(rng, cfg.HunterCount),
		Tokens:  agent.NewProximityRandom(rng, cfg.SheepRange),
	}, nil
}

func init() {
	sims.Register(Name, New)
}
