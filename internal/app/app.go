package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vk/seriesreg/internal/ctxlog"
	"github.com/vk/seriesreg/internal/manifest"
	"github.com/vk/seriesreg/internal/registry"
	"github.com/vk/seriesreg/internal/report"
	"github.com/vk/seriesreg/internal/settings"
	"github.com/vk/seriesreg/modules"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	settings *settings.Settings
	renderer *report.Renderer
}

// NewApp is the constructor for the main application. Reports go to outW and
// logs to logW. When no modules are given the core engine modules are
// registered and their embedded manifests are loaded; otherwise only the
// manifests named in the config are loaded.
//
// Startup failures, including a registry that does not match its manifests,
// are programmer or configuration errors and cause a panic.
func NewApp(outW, logW io.Writer, cfg *Config, mods ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW).With("run_id", uuid.NewString())
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	loader := manifest.NewLoader()
	model := manifest.NewModel()
	if len(mods) == 0 {
		mods = coreModules
		sources, err := modules.Manifests()
		if err != nil {
			panic(fmt.Errorf("failed to read embedded manifests: %w", err))
		}
		model, err = loader.LoadSources(ctx, sources)
		if err != nil {
			panic(fmt.Errorf("failed to load embedded manifests: %w", err))
		}
		logger.Debug("Embedded manifests loaded.", "count", len(sources))
	}

	if len(cfg.ManifestPaths) > 0 {
		extra, err := loader.Load(ctx, cfg.ManifestPaths...)
		if err != nil {
			panic(fmt.Errorf("failed to load manifests: %w", err))
		}
		if err := model.Merge(extra); err != nil {
			panic(fmt.Errorf("failed to merge manifests: %w", err))
		}
		logger.Debug("Manifests loaded.", "paths", cfg.ManifestPaths)
	}

	reg := registry.New(registry.WithLogger(logger))
	reg.LoadModules(mods...)
	reg.Seal()
	logger.Debug("All Go modules registered.", "count", len(mods), "series_types", reg.Len())

	if err := reg.ValidateRegistry(ctx, model); err != nil {
		panic(err)
	}

	st := settings.New()
	if err := st.Apply(model.Settings); err != nil {
		panic(fmt.Errorf("failed to apply manifest settings: %w", err))
	}

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		settings: st,
		renderer: report.NewRenderer(outW, report.Format(cfg.Output)),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Settings returns the runtime settings store.
func (a *App) Settings() *settings.Settings {
	return a.settings
}
