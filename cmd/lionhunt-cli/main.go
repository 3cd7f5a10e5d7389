// Command lionhunt-cli plays lion hunt games without a window: single
// games, batch sweeps and the results ledger.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"lionhunt/internal/config"
	"lionhunt/internal/logging"
	_ "lionhunt/internal/sims/classic"
	_ "lionhunt/internal/sims/pack"
	_ "lionhunt/internal/sims/sheep"
)

func main() {
	config.LoadDotEnv(".env", "../../.env")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lionhunt-cli",
		Short:         "Headless lion hunt: play games, run sweeps and browse results.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	gofs := flag.NewFlagSet("game", flag.ContinueOnError)
	config.NewConfig().Bind(gofs)
	root.PersistentFlags().AddGoFlagSet(gofs)

	root.AddCommand(newRunCmd(), newSweepCmd(), newHistoryCmd(), newVariantsCmd())
	return root
}

// settings resolves the configuration for cmd and builds its logger. Errors
// are logged before they are returned.
func settings(cmd *cobra.Command) (*config.Config, *log.Logger, error) {
	overrides := config.Overrides{}
	cmd.Flags().Visit(func(f *pflag.Flag) { overrides[f.Name] = f.Value.String() })

	cfg, err := config.Load("", nil, withoutCommandFlags(overrides))
	if err != nil {
		log.Error("invalid configuration", "err", err)
		return nil, nil, err
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		log.Error("invalid log level", "err", err)
		return nil, nil, err
	}
	return cfg, logger, nil
}

// withoutCommandFlags drops flags that belong to a subcommand rather than to
// the game configuration.
func withoutCommandFlags(o config.Overrides) config.Overrides {
	known := flag.NewFlagSet("known", flag.ContinueOnError)
	config.NewConfig().Bind(known)
	out := config.Overrides{}
	for name, value := range o {
		if known.Lookup(name) != nil {
			out[name] = value
		}
	}
	return out
}

func fail(logger *log.Logger, msg string, err error) error {
	logger.Error(msg, "err", err)
	return fmt.Errorf("%s: %w", msg, err)
}
