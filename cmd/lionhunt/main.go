//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"lionhunt/internal/app"
	"lionhunt/internal/config"
	"lionhunt/internal/logging"
	_ "lionhunt/internal/sims/classic"
	_ "lionhunt/internal/sims/pack"
	_ "lionhunt/internal/sims/sheep"
	"lionhunt/internal/spectate"
	"lionhunt/internal/store"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	config.LoadDotEnv()
	flags := config.NewConfig()
	flags.Bind(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Load("", nil, config.FromFlagSet(flag.CommandLine))
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatal("invalid log level", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []app.SessionOption{app.WithLogger(logger)}
	if cfg.DBPath != "" {
		db, err := store.Open(ctx, cfg.DBPath)
		if err != nil {
			logger.Warn("results will not be recorded", "db", cfg.DBPath, "err", err)
		} else {
			defer db.Close()
			opts = append(opts, app.WithStore(db))
		}
	}
	if cfg.SpectateAddr != "" {
		hub := spectate.NewHub(logger)
		go func() {
			if err := hub.ListenAndServe(ctx, cfg.SpectateAddr); err != nil {
				logger.Error("spectator server stopped", "err", err)
			}
		}()
		opts = append(opts, app.WithObserver(hub))
	}

	session, err := app.NewSession(*cfg, opts...)
	if err != nil {
		logger.Fatal("cannot start game", "err", err)
	}
	game := app.New(ctx, session, cfg.TickRate, cfg.Scale)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("Lion Hunt - " + cfg.Variant)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game crashed", "err", err)
	}
	// Closing the window skips Update, so a running game is ended here.
	session.Quit()
	logger.Info("bye", "games", session.Played())
}
