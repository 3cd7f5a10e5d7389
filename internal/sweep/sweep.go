// Package sweep plays many seeded games in parallel and summarises them.
package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"lionhunt/internal/config"
	"lionhunt/internal/logging"
	"lionhunt/internal/sim"
	"lionhunt/internal/sims"
	"lionhunt/internal/world"
)

// DefaultMaxTicks caps games when neither a duration nor max_ticks is set.
const DefaultMaxTicks = 10_000

// Summary aggregates a batch of games.
type Summary struct {
	Variant   string               `json:"variant"`
	Games     int                  `json:"games"`
	ByReason  map[world.Reason]int `json:"by_reason"`
	MeanScore float64              `json:"mean_score"`
	MeanTicks float64              `json:"mean_ticks"`
	Best      sim.Result           `json:"best"`
	Results   []sim.Result         `json:"-"`
}

// WinRate is the share of games the lion cleared.
func (s Summary) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.ByReason[world.Cleared]) / float64(s.Games)
}

type options struct {
	record func(sim.Result)
	logger *log.Logger
}

// Option configures Run.
type Option func(*options)

// WithRecorder is called with every finished game. It runs on worker
// goroutines and must be safe for concurrent use.
func WithRecorder(fn func(sim.Result)) Option { return func(o *options) { o.record = fn } }

// WithLogger sets the logger for progress output.
func WithLogger(l *log.Logger) Option { return func(o *options) { o.logger = l } }

// Run plays games unpaced games of cfg.Variant with seeds EffectiveSeed,
// EffectiveSeed+1 and so on, at most workers at a time. The wall-clock budget
// is converted into ticks at cfg.TickRate so results do not depend on
// machine speed. On cancellation the summary covers the games that finished.
func Run(ctx context.Context, cfg config.Config, games, workers int, opts ...Option) (Summary, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}
	if games < 0 {
		return Summary{}, fmt.Errorf("%w: games %d must not be negative", config.ErrInvalidConfig, games)
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if _, err := sims.Lookup(cfg.Variant); err != nil {
		return Summary{}, err
	}

	budget := cfg.TickBudget()
	if budget == 0 {
		budget = DefaultMaxTicks
	}
	cfg.TickRate = 0
	cfg.Duration = 0
	cfg.MaxTicks = budget
	base := cfg.EffectiveSeed()

	results := make([]sim.Result, games)
	played := make([]bool, games)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < games; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			seed := base + int64(i)
			l, err := sims.NewLoop(cfg, seed, nil)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i, seed, err)
			}
			res, err := l.Run(gctx)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i, seed, err)
			}
			if res.Reason == world.Quit {
				return nil
			}
			results[i] = res
			played[i] = true
			if o.record != nil {
				o.record(res)
			}
			o.logger.Debug("game finished", "seed", seed, "reason", res.Reason, "score", res.Score, "ticks", res.Ticks)
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	finished := results[:0]
	for i, ok := range played {
		if ok {
			finished = append(finished, results[i])
		}
	}
	s := Summarize(cfg.Variant, finished)
	o.logger.Info("sweep finished", "variant", cfg.Variant, "games", s.Games,
		"cleared", s.ByReason[world.Cleared], "captured", s.ByReason[world.Captured],
		"timed_out", s.ByReason[world.TimedOut], "mean_score", fmt.Sprintf("%.1f", s.MeanScore))
	return s, err
}

// Summarize aggregates results. Best is the highest score, fewest ticks on
// ties.
func Summarize(variant string, results []sim.Result) Summary {
	s := Summary{Variant: variant, ByReason: map[world.Reason]int{}, Results: results}
	if len(results) == 0 {
		return s
	}
	var score, ticks int
	for _, r := range results {
		s.ByReason[r.Reason]++
		score += r.Score
		ticks += r.Ticks
	}
	s.Games = len(results)
	s.MeanScore = float64(score) / float64(s.Games)
	s.MeanTicks = float64(ticks) / float64(s.Games)

	ranked := append([]sim.Result(nil), results...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Ticks < ranked[j].Ticks
	})
	s.Best = ranked[0]
	return s
}
