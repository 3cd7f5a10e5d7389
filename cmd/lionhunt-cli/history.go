package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"lionhunt/internal/sim"
	"lionhunt/internal/sims"
	"lionhunt/internal/store"
	"lionhunt/internal/world"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit  int
		best   bool
		stats  bool
		asJSON bool
		all    bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded games from the results ledger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := settings(cmd)
			if err != nil {
				return err
			}
			if cfg.DBPath == "" {
				return fail(logger, "no results ledger", fmt.Errorf("--db is empty"))
			}
			ctx := cmd.Context()
			db, err := store.Open(ctx, cfg.DBPath)
			if err != nil {
				return fail(logger, "cannot open results ledger", err)
			}
			defer db.Close()

			variant := cfg.Variant
			if all {
				variant = ""
			}
			out := cmd.OutOrStdout()
			if stats {
				st, err := db.Stats(ctx, variant)
				if err != nil {
					return fail(logger, "cannot read stats", err)
				}
				return printStats(out, variant, st, asJSON)
			}

			var rows []sim.Result
			if best {
				rows, err = db.Best(ctx, variant, limit)
			} else {
				rows, err = db.Recent(ctx, limit)
			}
			if err != nil {
				return fail(logger, "cannot read results", err)
			}
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			if len(rows) == 0 {
				fmt.Fprintln(out, "no games recorded")
			}
			for _, r := range rows {
				printRow(out, r)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "rows to show")
	cmd.Flags().BoolVar(&best, "best", false, "rank by score instead of recency")
	cmd.Flags().BoolVar(&stats, "stats", false, "print aggregate statistics")
	cmd.Flags().BoolVar(&all, "all", false, "include every variant in --best and --stats")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printStats(w io.Writer, variant string, st store.Stats, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}
	if variant == "" {
		variant = "all variants"
	}
	fmt.Fprintf(w, "%s: %d games, best %d, mean score %.1f, mean ticks %.1f\n",
		variant, st.Games, st.BestScore, st.MeanScore, st.MeanTicks)
	reasons := make([]world.Reason, 0, len(st.ByReason))
	for r := range st.ByReason {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })
	for _, r := range reasons {
		fmt.Fprintf(w, "  %-10s %5d\n", r, st.ByReason[r])
	}
	return nil
}

func newVariantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "List the registered game variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range sims.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
