package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"lionhunt/internal/agent"
	"lionhunt/internal/config"
	"lionhunt/internal/sim"
	"lionhunt/internal/sims"
	"lionhunt/internal/spectate"
	"lionhunt/internal/store"
)

func newRunCmd() *cobra.Command {
	var (
		script string
		asJSON bool
		fast   bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Play one game and print how it ended",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := settings(cmd)
			if err != nil {
				return err
			}
			if fast {
				cfg.TickRate = 0
			}
			res, err := playOne(cmd.Context(), cfg, logger, script)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), res, asJSON)
		},
	}
	cmd.Flags().StringVar(&script, "script", "", "YAML file with scripted lion and hunter moves")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&fast, "fast", false, "run unpaced instead of at --tps")
	return cmd
}

func playOne(ctx context.Context, cfg *config.Config, logger *log.Logger, script string) (sim.Result, error) {
	seed := cfg.EffectiveSeed()
	game, err := sims.Build(*cfg, seed)
	if err != nil {
		return sim.Result{}, fail(logger, "cannot build game", err)
	}
	if script != "" {
		s, err := agent.LoadScript(script)
		if err != nil {
			return sim.Result{}, fail(logger, "cannot load script", err)
		}
		if err := game.ApplyScript(s); err != nil {
			return sim.Result{}, fail(logger, "script does not fit the game", err)
		}
	}

	var opts []sim.Option
	if cfg.DBPath != "" {
		db, err := store.Open(ctx, cfg.DBPath)
		if err != nil {
			logger.Warn("results will not be recorded", "db", cfg.DBPath, "err", err)
		} else {
			defer db.Close()
			opts = append(opts, sim.WithOnDone(db.Recorder(context.WithoutCancel(ctx), func(err error) {
				logger.Warn("result not recorded", "err", err)
			})))
		}
	}
	if cfg.SpectateAddr != "" {
		hubCtx, stopHub := context.WithCancel(ctx)
		defer stopHub()
		hub := spectate.NewHub(logger)
		go func() {
			if err := hub.ListenAndServe(hubCtx, cfg.SpectateAddr); err != nil {
				logger.Error("spectator server stopped", "err", err)
			}
		}()
		opts = append(opts, sim.WithObserver(hub))
	}

	loop, err := game.Loop(*cfg, seed, logger, opts...)
	if err != nil {
		return sim.Result{}, fail(logger, "cannot start game", err)
	}
	res, err := loop.Run(ctx)
	if err != nil {
		return res, fail(logger, "game aborted", err)
	}
	return res, nil
}

func printResult(w io.Writer, r sim.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	_, err := fmt.Fprintf(w, "%s\nscore %d  ticks %d  tokens left %d  seed %d  game %s\n",
		r.Reason.Message(), r.Score, r.Ticks, r.TokensLeft, r.Seed, r.GameID)
	return err
}
