package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/combat/internal/config"
	"github.com/cory-johannsen/combat/internal/game/dice"
	"github.com/cory-johannsen/combat/internal/observability"
	"github.com/cory-johannsen/combat/internal/storage/file"
	"github.com/cory-johannsen/combat/internal/tracker"
)

// app carries the state shared by one invocation: load the roster before the
// subcommand runs, save it after the subcommand succeeds.
type app struct {
	out        io.Writer
	configPath string

	cfg     config.Config
	logger  *zap.Logger
	store   *file.Store
	tracker *tracker.Tracker
}

// open builds config, logger, evaluator and tracker and loads the roster.
func (a *app) open(cmd *cobra.Command) error {
	v, err := config.NewViper(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	flags := cmd.Flags()
	for key, flag := range map[string]string{
		"roster.path":   "roster",
		"roster.format": "format",
		"dice.seed":     "seed",
		"logging.level": "log-level",
	} {
		if f := flags.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("binding flag --%s: %w", flag, err)
			}
		}
	}
	a.cfg, err = config.LoadFromViper(v)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	a.logger, err = observability.NewLogger(a.cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	src := dice.NewCryptoSource()
	if a.cfg.Dice.Seed != 0 {
		src = dice.NewSeededSource(a.cfg.Dice.Seed)
	}
	roller := dice.NewLoggedRoller(src, a.logger)

	a.store = file.NewStore(a.cfg.Roster.Path, file.Format(a.cfg.Roster.Format), a.logger)
	a.tracker = tracker.New(a.store.Load(), roller, tracker.Options{
		DefaultInit:    a.cfg.Dice.DefaultInit,
		LairInitiative: a.cfg.Dice.LairInitiative,
	}, a.logger)
	return nil
}

// close persists the roster. It runs only after a subcommand succeeded, so a
// failed command never rewrites the file.
func (a *app) close() error {
	defer func() { _ = a.logger.Sync() }()
	if err := a.store.Save(a.tracker.Roster()); err != nil {
		return err
	}
	return nil
}
