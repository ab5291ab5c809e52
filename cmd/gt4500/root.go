package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/gt4500/internal/config"
	"github.com/cory-johannsen/gt4500/internal/game/dice"
	"github.com/cory-johannsen/gt4500/internal/game/ship"
	"github.com/cory-johannsen/gt4500/internal/observability"
	"github.com/cory-johannsen/gt4500/internal/storage/postgres"
)

var (
	cfgPath string
	seed    uint64
)

var rootCmd = &cobra.Command{
	Use:           "gt4500",
	Short:         "GT4500 torpedo fire control",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "configs/dev.yaml", "configuration file")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "seed for jam rolls; 0 uses crypto/rand")
}

// app is the state shared by every subcommand.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	class  *ship.Class
	// journal is nil when the fire journal is disabled.
	journal *postgres.FireLogRepository
	closers []func()
}

// setup loads configuration, builds the logger, resolves the ship class
// and, when enabled, connects the fire journal.
func setup(ctx context.Context, component string) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logging, zap.String("component", component))
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	rt := &app{cfg: cfg, logger: logger}
	rt.closers = append(rt.closers, func() { _ = logger.Sync() })

	classes, err := ship.LoadClasses(cfg.Ship.ClassesDir)
	if err != nil {
		rt.close()
		return nil, fmt.Errorf("loading ship classes: %w", err)
	}
	class, ok := ship.FindClass(classes, cfg.Ship.Class)
	if !ok {
		rt.close()
		return nil, fmt.Errorf("ship class %q not found in %s", cfg.Ship.Class, cfg.Ship.ClassesDir)
	}
	rt.class = class

	if cfg.Database.Enabled {
		dbStart := time.Now()
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			rt.close()
			return nil, fmt.Errorf("connecting to fire journal: %w", err)
		}
		rt.closers = append(rt.closers, pool.Close)
		rt.journal = postgres.NewFireLogRepository(pool.DB())
		logger.Info("fire journal connected",
			zap.String("host", cfg.Database.Host),
			zap.Duration("elapsed", time.Since(dbStart)),
		)
	}
	return rt, nil
}

// newShip builds a fully loaded ship of the configured class.
func (rt *app) newShip(opts ...ship.Option) *ship.Ship {
	src := dice.NewCryptoSource()
	if seed != 0 {
		src = dice.NewSeededSource(seed)
	}
	opts = append([]ship.Option{ship.WithLogger(rt.logger)}, opts...)
	if rt.journal != nil {
		opts = append(opts, ship.WithJournal(rt.journal))
	}
	return ship.Build(rt.class, rt.cfg.Ship.FailureRate, src, opts...)
}

// close releases resources in reverse order of acquisition.
func (rt *app) close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
}
