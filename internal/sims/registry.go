// Package sims holds the registry of game variants. Variant packages register
// themselves from init, so binaries pick the set they ship with blank imports.
package sims

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"lionhunt/internal/agent"
	"lionhunt/internal/config"
	"lionhunt/internal/core"
	"lionhunt/internal/sim"
	"lionhunt/internal/world"
)

// ErrUnknownVariant is returned for names nobody registered.
var ErrUnknownVariant = errors.New("unknown variant")

// Game is a freshly built world together with the agents that play it.
type Game struct {
	World   *world.World
	Lion    agent.Agent
	Hunters []agent.Agent
	// Tokens drives moving tokens; nil for food.
	Tokens agent.Agent
}

// Factory builds a game from resolved settings. The RNG is seeded from the
// game seed and shared by placement and agents.
type Factory func(cfg config.Config, rng *core.RNG) (*Game, error)

var (
	mu       sync.RWMutex
	variants = map[string]Factory{}
)

// Register adds a variant factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	variants[name] = f
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	mu.RLock()
	defer mu.RUnlock()
	f, ok := variants[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return f, nil
}

// Names lists the registered variants in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build creates the game for cfg.Variant from seed.
func Build(cfg config.Config, seed int64) (*Game, error) {
	f, err := Lookup(cfg.Variant)
	if err != nil {
		return nil, err
	}
	g, err := f(cfg, core.NewRNG(seed))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Variant, err)
	}
	return g, nil
}

// WorldConfig maps the shared settings onto a world configuration.
func WorldConfig(cfg config.Config, tokens world.TokenKind) world.Config {
	return world.Config{
		GridSize:       cfg.GridSize,
		HunterCount:    cfg.HunterCount,
		TokenCount:     cfg.TokenCount,
		ProximityRange: cfg.ProximityRange,
		Tokens:         tokens,
	}
}

// RandomHunters returns n random-walking hunters sharing rng.
func RandomHunters(rng *core.RNG, n int) []agent.Agent {
	out := make([]agent.Agent, n)
	for i := range out {
		out[i] = agent.NewRandom(rng)
	}
	return out
}

// NewLoop builds the game for cfg and wraps it in a loop paced and budgeted
// from cfg. Extra options are applied last.
func NewLoop(cfg config.Config, seed int64, logger *log.Logger, opts ...sim.Option) (*sim.Loop, error) {
	g, err := Build(cfg, seed)
	if err != nil {
		return nil, err
	}
	return g.Loop(cfg, seed, logger, opts...)
}

// Loop wraps an already built game, for callers that swap agents first.
func (g *Game) Loop(cfg config.Config, seed int64, logger *log.Logger, opts ...sim.Option) (*sim.Loop, error) {
	base := []sim.Option{
		sim.WithVariant(cfg.Variant),
		sim.WithSeed(seed),
		sim.WithTickRate(cfg.TickRate),
		sim.WithDuration(cfg.Duration),
		sim.WithTickBudget(cfg.MaxTicks),
		sim.WithLogger(logger),
	}
	if g.Tokens != nil {
		base = append(base, sim.WithTokenAgent(g.Tokens))
	}
	return sim.New(g.World, g.Lion, g.Hunters, append(base, opts...)...)
}

// ApplyScript replaces the lion and the first hunters with scripted agents.
// Hunters beyond the script keep their policy.
func (g *Game) ApplyScript(s *agent.Script) error {
	if len(s.Hunters) > len(g.Hunters) {
		return fmt.Errorf("%w: script has %d hunters, game has %d",
			world.ErrInvalidInput, len(s.Hunters), len(g.Hunters))
	}
	g.Lion = agent.NewScripted(s.Lion...)
	for i, moves := range s.Hunters {
		g.Hunters[i] = agent.NewScripted(moves...)
	}
	return nil
}
