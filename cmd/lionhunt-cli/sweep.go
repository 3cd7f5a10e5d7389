package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"lionhunt/internal/sim"
	"lionhunt/internal/store"
	"lionhunt/internal/sweep"
	"lionhunt/internal/world"
)

func newSweepCmd() *cobra.Command {
	var (
		games   int
		workers int
		record  bool
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Play many seeded games in parallel and summarise the outcomes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := settings(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			opts := []sweep.Option{sweep.WithLogger(logger)}
			if record && cfg.DBPath != "" {
				db, err := store.Open(ctx, cfg.DBPath)
				if err != nil {
					return fail(logger, "cannot open results ledger", err)
				}
				defer db.Close()
				opts = append(opts, sweep.WithRecorder(db.Recorder(context.WithoutCancel(ctx), func(err error) {
					logger.Warn("result not recorded", "err", err)
				})))
			}
			s, err := sweep.Run(ctx, *cfg, games, workers, opts...)
			if err != nil {
				logger.Error("sweep stopped early", "err", err, "finished", s.Games)
			}
			if perr := printSummary(cmd.OutOrStdout(), s, asJSON); perr != nil {
				return perr
			}
			return err
		},
	}
	cmd.Flags().IntVar(&games, "games", 100, "number of games to play")
	cmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "games played in parallel")
	cmd.Flags().BoolVar(&record, "record", false, "save every game to the results ledger")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func printSummary(w io.Writer, s sweep.Summary, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	fmt.Fprintf(w, "%s: %d games\n", s.Variant, s.Games)
	for _, r := range []world.Reason{world.Cleared, world.Captured, world.TimedOut} {
		fmt.Fprintf(w, "  %-10s %5d\n", r, s.ByReason[r])
	}
	fmt.Fprintf(w, "  mean score %.1f  mean ticks %.1f  lion win rate %.0f%%\n",
		s.MeanScore, s.MeanTicks, 100*s.WinRate())
	if s.Games > 0 {
		printRow(w, s.Best)
	}
	return nil
}

func printRow(w io.Writer, r sim.Result) {
	fmt.Fprintf(w, "  %-8s %-10s score %3d  ticks %4d  seed %d  %s\n",
		r.Variant, r.Reason, r.Score, r.Ticks, r.Seed, r.Started.Format("2006-01-02 15:04"))
}
