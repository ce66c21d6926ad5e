package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"sync/atomic"

	"github.com/vk/genomeprep/internal/config"
	"github.com/vk/genomeprep/internal/ctxlog"
	"github.com/vk/genomeprep/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	ctx      context.Context
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	values   config.Values
	targets  []string

	httpServer *http.Server
	progress   progress
}

// progress is what the health endpoint reports about the current run.
type progress struct {
	total    atomic.Int32
	finished atomic.Int32
	failed   atomic.Bool
}

// NewApp is the constructor for the main application. It loads the pipeline
// configuration and builds an isolated logger and registry. With no modules
// given, the genome module is registered.
func NewApp(outW io.Writer, appConfig *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	values, err := config.Load(ctx, appConfig.ConfigPath, configLoaders()...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded.", "values", values.Names())

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules()
	}
	if err := reg.RegisterModules(modules...); err != nil {
		return nil, fmt.Errorf("failed to register steps: %w", err)
	}
	logger.Debug("All Go modules registered.", "modules", len(modules), "steps", reg.Len())

	targets := appConfig.Targets
	if len(targets) == 0 {
		targets = coreTargets
	}

	return &App{
		outW:     outW,
		ctx:      ctx,
		logger:   logger,
		config:   appConfig,
		registry: reg,
		values:   values,
		targets:  slices.Clone(targets),
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Values returns the loaded pipeline configuration.
func (a *App) Values() config.Values {
	return a.values
}

// Targets returns the names the pipeline is run for.
func (a *App) Targets() []string {
	return slices.Clone(a.targets)
}
