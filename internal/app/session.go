// Package app hosts interactive games: a headless Session that owns the
// current loop and, behind the ebiten tag, the window that drives it.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"lionhunt/internal/config"
	"lionhunt/internal/core"
	"lionhunt/internal/logging"
	"lionhunt/internal/sim"
	"lionhunt/internal/sims"
	"lionhunt/internal/store"
	"lionhunt/internal/ui"
	"lionhunt/internal/world"
)

// Session plays one game after another with the same settings. Each restart
// uses a fresh seed.
type Session struct {
	cfg       config.Config
	logger    *log.Logger
	store     *store.Store
	observers []sim.Observer
	clock     func() time.Time

	loop   *sim.Loop
	seed   int64
	last   sim.Result
	played int
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithStore records every finished game.
func WithStore(s *store.Store) SessionOption { return func(se *Session) { se.store = s } }

// WithObserver forwards frames of every game.
func WithObserver(o sim.Observer) SessionOption {
	return func(se *Session) { se.observers = append(se.observers, o) }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) SessionOption { return func(se *Session) { se.logger = l } }

// WithClock replaces time.Now for game budgets.
func WithClock(now func() time.Time) SessionOption { return func(se *Session) { se.clock = now } }

// NewSession builds the first game from cfg.
func NewSession(cfg config.Config, opts ...SessionOption) (*Session, error) {
	s := &Session{cfg: cfg, clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	if err := s.Start(cfg.EffectiveSeed()); err != nil {
		return nil, err
	}
	return s, nil
}

// Start replaces the current game with a new one built from seed.
func (s *Session) Start(seed int64) error {
	opts := []sim.Option{sim.WithClock(s.clock), sim.WithOnDone(s.finished)}
	for _, o := range s.observers {
		opts = append(opts, sim.WithObserver(o))
	}
	l, err := sims.NewLoop(s.cfg, seed, s.logger, opts...)
	if err != nil {
		return err
	}
	s.loop = l
	s.seed = seed
	return nil
}

// Restart begins a new game with the next seed.
func (s *Session) Restart() error { return s.Start(s.seed + 1) }

// Advance runs one tick of the current game.
func (s *Session) Advance(ctx context.Context) (bool, error) {
	_, done, err := s.loop.Tick(ctx)
	return done, err
}

// Quit ends the current game with Quit if it is still running.
func (s *Session) Quit() {
	if s.loop.Done() {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.loop.Tick(ctx)
}

func (s *Session) finished(r sim.Result) {
	s.last = r
	s.played++
	if s.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.store.Save(ctx, r); err != nil {
		s.logger.Warn("result not recorded", "game", r.GameID, "err", err)
	}
}

// World returns the current game's world for drawing.
func (s *Session) World() *world.World { return s.loop.World() }

// Done reports whether the current game has ended.
func (s *Session) Done() bool { return s.loop.Done() }

// Last returns the most recent finished result.
func (s *Session) Last() sim.Result { return s.last }

// Played counts finished games.
func (s *Session) Played() int { return s.played }

// Seed returns the current game's seed.
func (s *Session) Seed() int64 { return s.seed }

// Parameters merges the game status with the world's own parameters.
func (s *Session) Parameters() core.ParameterSnapshot {
	snap := s.loop.World().Parameters()
	game := ui.GameGroup(s.cfg.Variant, s.loop.Ticks(), s.loop.Remaining())
	snap.Groups = append([]core.ParameterGroup{game}, snap.Groups...)
	return snap
}
