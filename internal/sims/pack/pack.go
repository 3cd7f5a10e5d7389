// Package pack puts several hunters on the board, one per free corner and
// then doubling up.
package pack

import (
	"lionhunt/internal/agent"
	"lionhunt/internal/config"
	"lionhunt/internal/core"
	"lionhunt/internal/sims"
	"lionhunt/internal/world"
)

const (
	// Name is the registry key.
	Name = "pack"
	// MinHunters is the smallest pack; lower settings are raised to it.
	MinHunters = 3
)

// New builds a pack game.
func New(cfg config.Config, rng *core.RNG) (*sims.Game, error) {
	if cfg.HunterCount < MinHunters {
		cfg.HunterCount = MinHunters
	}
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
