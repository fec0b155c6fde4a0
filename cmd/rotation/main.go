// Command rotation plans youth-basketball playing time across a two-game
// session and tracks it period by period.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xtding233/hoops-rotation/internal/config"
	"github.com/xtding233/hoops-rotation/internal/planner"
	"github.com/xtding233/hoops-rotation/internal/store"
)

// app holds everything a command needs once the root has bootstrapped. Call
// close after Execute; cobra skips post-run hooks when a command fails.
type app struct {
	configDir   string
	team        string
	verbose     bool
	storeDriver string
	storePath   string

	loader   *config.Loader
	settings config.Settings
	level    zap.AtomicLevel
	logger   *zap.Logger
	store    store.Store
	planner  *planner.Planner
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "rotation",
		Short: "Fair playing-time rotations for a two-game session",
		Long: `rotation keeps an 8-period x 2-game playing-time grid for a roster,
four players on court per period, and replans the rest of the session whenever
a player becomes unavailable.

Player and period numbers on the command line are 1-based.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.bootstrap(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.configDir, "config", "c", "config", "Config directory (default.yaml, teams/<team>.yaml)")
	root.PersistentFlags().StringVarP(&a.team, "team", "t", "default", "Team whose session to operate on")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVar(&a.storeDriver, "store", "", "Override store driver (file|sqlite)")
	root.PersistentFlags().StringVar(&a.storePath, "store-path", "", "Override store path")

	root.AddCommand(
		a.setupCmd(),
		a.showCmd(),
		a.moveCmd("next", "Advance the cursor one period", 1),
		a.moveCmd("prev", "Move the cursor back one period", -1),
		a.toggleCmd(),
		a.reorderCmd(),
		a.renameCmd(),
		a.setCmd(),
		a.regenCmd(),
		a.newGameCmd(),
		a.clearCmd(),
		a.historyCmd(),
		a.restoreCmd(),
		a.serveCmd(),
		a.remoteCmd(),
		a.simulateCmd(),
	)
	return root
}

func (a *app) overrides(cmd *cobra.Command) config.Overrides {
	var o config.Overrides
	if cmd.Flags().Changed("store") {
		o.StoreDriver = &a.storeDriver
	}
	if cmd.Flags().Changed("store-path") {
		o.StorePath = &a.storePath
	}
	return o
}

func (a *app) bootstrap(cmd *cobra.Command) error {
	a.loader = config.NewLoader(a.configDir)
	_, s, err := a.loader.Resolve(a.team, a.overrides(cmd))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.settings = s

	if err := a.buildLogger(); err != nil {
		return err
	}
	a.logger.Debug("config resolved",
		zap.String("team", s.Team),
		zap.String("version", s.Version),
		zap.String("store", s.StoreDriver),
		zap.String("path", s.StorePath))

	switch cmd.Name() {
	case "remote", "simulate":
		return nil
	}

	st, err := store.Open(s.StoreDriver, s.StorePath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	a.store = st
	a.planner = planner.New(a.team, st, a.logger)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := a.planner.Load(ctx); err != nil {
		return err
	}
	if len(s.Players) > 0 && cmd.Name() != "clear" {
		if _, err := a.planner.EnsureRoster(ctx, s.Players, s.UseCurated); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) buildLogger() error {
	cfg := zap.NewProductionConfig()
	if a.settings.Development {
		cfg = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(a.settings.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if a.verbose {
		level.SetLevel(zapcore.DebugLevel)
	}
	cfg.Level = level
	a.level = level
	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil && a.logger != nil {
			a.logger.Warn("close store", zap.Error(err))
		}
		a.store = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func main() {
	a := &app{}
	err := newRootCmd(a).Execute()
	a.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
