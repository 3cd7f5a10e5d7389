// Package classic is the original game: a random-walking lion, one random
// hunter in the far corner and static food.
package classic

import (
	"lionhunt/internal/agent"
	"lionhunt/internal/config"
	"lionhunt/internal/core"
	"lionhunt/internal/sims"
	"lionhunt/internal/world"
)

// Name is the registry key.
const Name = "classic"

// New builds a classic game. HunterCount is honoured so the same variant can
// be replayed with extra hunters from the command line.
func New(cfg config.Config, rng *core.RNG) (*sims.Game, error) {
	w, err := world.New(sims.WorldConfig(cfg, world.Food), rng)
	if err != nil {
		return nil, err
	}
	return &sims.Game{
		World:   w,
		Lion:    agent.NewRandom(rng),
		Hunters: sims.RandomHunters(rng, cfg.HunterCount),
	}, nil
}

func init() {
	sims.Register(Name, New)
}
