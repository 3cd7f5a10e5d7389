// Package sim drives a world tick by tick: it gathers one action per agent,
// applies them and decides when the game is over.
package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"lionhunt/internal/action"
	"lionhunt/internal/agent"
	"lionhunt/internal/logging"
	"lionhunt/internal/world"
)

// Result summarises a finished game.
type Result struct {
	GameID     string        `json:"game_id"`
	Variant    string        `json:"variant"`
	Seed       int64         `json:"seed"`
	Reason     world.Reason  `json:"reason"`
	Score      int           `json:"score"`
	Ticks      int           `json:"ticks"`
	TokensLeft int           `json:"tokens_left"`
	Started    time.Time     `json:"started"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Frame is what observers receive after every tick.
type Frame struct {
	GameID    string `json:"game_id"`
	Variant   string `json:"variant"`
	Tick      int    `json:"tick"`
	ElapsedMS int64  `json:"elapsed_ms"`
	world.Snapshot
}

// Observer receives a detached frame after each tick and once more when the
// game ends. Observe runs on the loop's goroutine and must not block.
type Observer interface {
	Observe(Frame)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Frame)

// Observe calls f.
func (f ObserverFunc) Observe(fr Frame) { f(fr) }

// Loop owns a world for the duration of one game. It is the world's only
// writer; all methods must be called from a single goroutine.
type Loop struct {
	world   *world.World
	lion    agent.Agent
	hunters []agent.Agent
	tokens  agent.Agent

	interval time.Duration
	duration time.Duration
	budget   int
	now      func() time.Time

	gameID  string
	variant string
	seed    int64

	logger    *log.Logger
	observers []Observer
	onDone    func(Result)

	started time.Time
	ticks   int
	done    bool
	result  Result
}

// Option configures a Loop.
type Option func(*Loop)

// WithTokenAgent sets the policy applied to every moving token.
func WithTokenAgent(a agent.Agent) Option { return func(l *Loop) { l.tokens = a } }

// WithTickRate paces Run at hz ticks per second. Zero runs unpaced.
func WithTickRate(hz int) Option {
	return func(l *Loop) {
		l.interval = 0
		if hz > 0 {
			l.interval = time.Second / time.Duration(hz)
		}
	}
}

// WithDuration ends the game with TimedOut once d of wall-clock time passed.
func WithDuration(d time.Duration) Option { return func(l *Loop) { l.duration = d } }

// WithTickBudget ends the game with TimedOut after n ticks.
func WithTickBudget(n int) Option { return func(l *Loop) { l.budget = n } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(l *Loop) { l.now = now } }

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option { return func(l *Loop) { l.logger = logger } }

// WithObserver registers an observer.
func WithObserver(o Observer) Option {
	return func(l *Loop) { l.observers = append(l.observers, o) }
}

// WithOnDone registers the termination callback. It runs exactly once.
func WithOnDone(fn func(Result)) Option { return func(l *Loop) { l.onDone = fn } }

// WithGameID overrides the generated game id.
func WithGameID(id string) Option { return func(l *Loop) { l.gameID = id } }

// WithVariant records the variant name in results and frames.
func WithVariant(name string) Option { return func(l *Loop) { l.variant = name } }

// WithSeed records the seed the game was created from.
func WithSeed(seed int64) Option { return func(l *Loop) { l.seed = seed } }

// New prepares a loop over w. One hunter agent is required per hunter.
func New(w *world.World, lion agent.Agent, hunters []agent.Agent, opts ...Option) (*Loop, error) {
	if w == nil || lion == nil {
		return nil, fmt.Errorf("%w: world and lion agent are required", world.ErrInvalidInput)
	}
	if len(hunters) != len(w.Hunters()) {
		return nil, fmt.Errorf("%w: %d hunter agents for %d hunters",
			world.ErrInvalidInput, len(hunters), len(w.Hunters()))
	}
	for i, h := range hunters {
		if h == nil {
			return nil, fmt.Errorf("%w: hunter agent %d is nil", world.ErrInvalidInput, i)
		}
	}
	l := &Loop{
		world:   w,
		lion:    lion,
		hunters: append([]agent.Agent(nil), hunters...),
		now:     time.Now,
	}
	WithTickRate(5)(l)
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = logging.Discard()
	}
	if l.gameID == "" {
		l.gameID = uuid.NewString()
	}
	if w.TokenKind().Moving() && l.tokens == nil {
		l.tokens = agent.Stay
	}
	return l, nil
}

// World exposes the world for read-only rendering between ticks.
func (l *Loop) World() *world.World { return l.world }

// GameID returns the id stamped on frames and results.
func (l *Loop) GameID() string { return l.gameID }

// Ticks returns the number of completed steps.
func (l *Loop) Ticks() int { return l.ticks }

// Done reports whether the game has ended.
func (l *Loop) Done() bool { return l.done }

// Elapsed returns wall-clock time since the first tick.
func (l *Loop) Elapsed() time.Duration {
	if l.started.IsZero() {
		return 0
	}
	if l.done {
		return l.result.Elapsed
	}
	return l.now().Sub(l.started)
}

// Remaining returns the wall-clock time left, or -1 for untimed games.
func (l *Loop) Remaining() time.Duration {
	if l.duration <= 0 {
		return -1
	}
	left := l.duration - l.Elapsed()
	if left < 0 {
		left = 0
	}
	return left
}

// Result returns the final result once Done is true.
func (l *Loop) Result() Result { return l.result }

// Tick runs at most one world step. It returns done=true once the game has
// ended; from then on the world is never stepped again. A non-nil error
// means an agent produced unusable input and the game cannot continue.
func (l *Loop) Tick(ctx context.Context) (Result, bool, error) {
	if l.done {
		return l.result, true, nil
	}
	if l.started.IsZero() {
		l.started = l.now()
		l.logger.Info("game started", "game", l.gameID, "variant", l.variant,
			"grid", l.world.GridSize(), "hunters", len(l.hunters), "tokens", len(l.world.Tokens()))
	}
	if r := l.world.TerminalReason(); r.Terminal() {
		return l.finish(r), true, nil
	}
	if ctx.Err() != nil {
		return l.finish(world.Quit), true, nil
	}
	if l.duration > 0 && l.now().Sub(l.started) >= l.duration {
		return l.finish(world.TimedOut), true, nil
	}
	if l.budget > 0 && l.ticks >= l.budget {
		return l.finish(world.TimedOut), true, nil
	}

	if err := l.world.Step(l.collect()); err != nil {
		l.logger.Error("step rejected", "game", l.gameID, "tick", l.ticks+1, "err", err)
		return Result{}, false, fmt.Errorf("tick %d: %w", l.ticks+1, err)
	}
	l.ticks++
	l.logger.Debug("tick", "tick", l.ticks, "lion", l.world.Lion(), "score", l.world.Score())

	if r := l.world.TerminalReason(); r.Terminal() {
		return l.finish(r), true, nil
	}
	if l.budget > 0 && l.ticks >= l.budget {
		return l.finish(world.TimedOut), true, nil
	}
	l.publish(l.frame(world.None))
	return l.snapshotResult(world.None), false, nil
}

// Run ticks at the configured rate until the game ends or ctx is cancelled.
// Cancellation ends the game with Quit.
func (l *Loop) Run(ctx context.Context) (Result, error) {
	var tick <-chan time.Time
	if l.interval > 0 {
		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()
		tick = ticker.C
	}
	for {
		res, done, err := l.Tick(ctx)
		if err != nil || done {
			return res, err
		}
		if tick == nil {
			continue
		}
		select {
		case <-ctx.Done():
		case <-tick:
		}
	}
}

func (l *Loop) collect() world.Moves {
	lion := l.world.Lion()
	hunters := l.world.Hunters()
	tokens := l.world.Tokens()
	obs := func(self world.Position) agent.Observation {
		return agent.Observation{Self: self, Lion: lion, Hunters: hunters, Tokens: tokens}
	}

	m := world.Moves{
		Lion:    l.lion.Act(obs(lion)),
		Hunters: make([]action.Action, len(l.hunters)),
	}
	for i, h := range l.hunters {
		m.Hunters[i] = h.Act(obs(hunters[i]))
	}
	if l.tokens != nil && l.world.TokenKind().Moving() && len(tokens) > 0 {
		m.Tokens = make([]action.Action, len(tokens))
		for i, t := range tokens {
			m.Tokens[i] = l.tokens.Act(obs(t))
		}
	}
	return m
}

func (l *Loop) frame(reason world.Reason) Frame {
	snap := l.world.Snapshot()
	if reason.Terminal() {
		snap.Reason = reason
	}
	return Frame{
		GameID:    l.gameID,
		Variant:   l.variant,
		Tick:      l.ticks,
		ElapsedMS: l.now().Sub(l.started).Milliseconds(),
		Snapshot:  snap,
	}
}

func (l *Loop) publish(f Frame) {
	for _, o := range l.observers {
		o.Observe(f)
	}
}

func (l *Loop) snapshotResult(reason world.Reason) Result {
	return Result{
		GameID:     l.gameID,
		Variant:    l.variant,
		Seed:       l.seed,
		Reason:     reason,
		Score:      l.world.Score(),
		Ticks:      l.ticks,
		TokensLeft: len(l.world.Tokens()),
		Started:    l.started,
		Elapsed:    l.now().Sub(l.started),
	}
}

func (l *Loop) finish(reason world.Reason) Result {
	l.result = l.snapshotResult(reason)
	l.done = true
	l.logger.Info("game over", "game", l.gameID, "reason", reason,
		"score", l.result.Score, "ticks", l.ticks, "elapsed", l.result.Elapsed.Round(time.Millisecond))
	l.publish(l.frame(reason))
	if l.onDone != nil {
		l.onDone(l.result)
	}
	return l.result
}
