// Package cli wires the nativeview commands to configuration, the engine
// runtime and the terminal renderers.
package cli

import (
	"context"
	"fmt"

	"github.com/bnema/nativeview/internal/bootstrap"
	"github.com/bnema/nativeview/internal/cli/styles"
	"github.com/bnema/nativeview/internal/domain/build"
	"github.com/bnema/nativeview/internal/infrastructure/config"
	"github.com/bnema/nativeview/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Manager   *config.Manager
	Config    *config.Config
	Theme     *styles.Theme
	BuildInfo build.Info

	ctx        context.Context
	logCleanup func()
}

// NewApp loads the configuration and a quiet logger. Commands that run views
// build a bootstrap.Runtime on top.
func NewApp() (*App, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("config manager: %w", err)
	}
	return newApp(mgr)
}

// NewAppAt is NewApp reading config.toml from dir.
func NewAppAt(dir string) (*App, error) {
	mgr, err := config.NewManagerAt(dir)
	if err != nil {
		return nil, fmt.Errorf("config manager: %w", err)
	}
	return newApp(mgr)
}

func newApp(mgr *config.Manager) (*App, error) {
	if err := mgr.Load(); err != nil {
		return nil, err
	}
	cfg := mgr.Get()

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.Logging.Level)
	logCfg.TimeFormat = "15:04:05"
	logCfg = logging.ApplyEnv(logCfg)
	logger, cleanup, _ := logging.NewWithFile(logCfg, logging.FileConfig{Enabled: false, WriteToStderr: false})
	mgr.SetLogger(logger)

	return &App{
		Manager:    mgr,
		Config:     cfg,
		Theme:      styles.NewTheme(),
		ctx:        logging.WithContext(context.Background(), logger),
		logCleanup: cleanup,
	}, nil
}

// Ctx returns the context carrying the CLI logger.
func (a *App) Ctx() context.Context { return a.ctx }

// Runtime starts an engine runtime from the loaded configuration.
func (a *App) Runtime(opts bootstrap.Options) (*bootstrap.Runtime, error) {
	return bootstrap.New(context.Background(), a.Manager, opts)
}

// Close releases resources held by the app.
func (a *App) Close() error {
	if a.logCleanup != nil {
		a.logCleanup()
	}
	return nil
}
