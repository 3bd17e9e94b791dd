package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/rotator"
	"github.com/aretw0/rotator/internal/cli"
	loamAdapter "github.com/aretw0/rotator/pkg/adapters/loam"
	"github.com/aretw0/rotator/pkg/config"
	"github.com/aretw0/rotator/pkg/deck"
	"github.com/aretw0/rotator/pkg/domain"
	"github.com/aretw0/rotator/pkg/gesture"
	"github.com/aretw0/rotator/pkg/observability"
	"github.com/aretw0/rotator/pkg/ports"
	"github.com/spf13/cobra"
)

// app bundles what every command needs: configuration, logger, deck and controller.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	deck   *deck.Deck
	ctrl   *rotator.Controller
}

// loadConfig reads --config (if any) and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()

	cfg := config.Default()
	if path, _ := flags.GetString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}

	if flags.Changed("deck") {
		cfg.Deck.Path, _ = flags.GetString("deck")
		cfg.Deck.Dir = ""
	}
	if flags.Changed("deck-dir") {
		cfg.Deck.Dir, _ = flags.GetString("deck-dir")
		cfg.Deck.Path = ""
	}
	if flags.Changed("interval") {
		cfg.Carousel.Interval, _ = flags.GetDuration("interval")
	}
	if flags.Changed("reading") {
		s, _ := flags.GetString("reading")
		r, err := gesture.ParseReadingDirection(s)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Carousel.Reading = r
	}
	if off, _ := flags.GetBool("no-autoplay"); off {
		cfg.Carousel.Autoplay = false
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.Log.Format, _ = flags.GetString("log-format")
	}
	return cfg, cfg.Validate()
}

// deckSource picks the item source configured in cfg.
func deckSource(cfg config.Config) (ports.DeckSource, error) {
	switch {
	case cfg.Deck.Dir != "":
		src, err := loamAdapter.Open(cfg.Deck.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open deck dir: %w", err)
		}
		return src, nil
	case cfg.Deck.Path != "":
		return deck.FileSource{Path: cfg.Deck.Path}, nil
	default:
		return deck.DefaultSource{}, nil
	}
}

// loadApp resolves configuration, logger and deck. The controller is
// created by start once the caller has its hooks ready.
// quiet drops the log level to warn unless --log-level was given, keeping
// the terminal demo readable.
func loadApp(ctx context.Context, cmd *cobra.Command, quiet bool) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if quiet && !cmd.Flags().Changed("log-level") {
		cfg.Log.Level = "warn"
	}
	logger, err := cli.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	src, err := deckSource(cfg)
	if err != nil {
		return nil, err
	}
	d, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load deck: %w", err)
	}
	return &app{cfg: cfg, logger: logger, deck: d}, nil
}

// start creates the controller over the loaded deck.
func (a *app) start(hooks ...domain.LifecycleHooks) error {
	opts := append(a.cfg.ControllerOptions(),
		rotator.WithLogger(a.logger),
		rotator.WithLifecycleHooks(observability.LoggingHooks(a.logger)),
	)
	for _, h := range hooks {
		opts = append(opts, rotator.WithLifecycleHooks(h))
	}
	ctrl, err := rotator.New(a.deck.Len(), opts...)
	if err != nil {
		return fmt.Errorf("error initializing carousel: %w", err)
	}
	a.ctrl = ctrl

	a.logger.Debug("carousel ready", "name", a.cfg.Name, "items", a.deck.Len(), "interval", a.cfg.Carousel.Interval)
	return nil
}
