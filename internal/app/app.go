package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/nervecenter/gnuplotgo/internal/ctxlog"
	"github.com/nervecenter/gnuplotgo/internal/plotfile"
	"github.com/nervecenter/gnuplotgo/internal/render"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	model    *plotfile.Model
	renderer *render.Renderer
}

// New is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger, the plot model
// loaded, and the renderer wired. A failure to load the plot definitions is
// a fatal startup error and panics; entrypoints recover it into a clean
// exit.
func New(ctx context.Context, outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured")

	model, err := plotfile.NewLoader().Load(ctx, cfg.PlotPath)
	if err != nil {
		panic(fmt.Errorf("failed to load plot definitions: %w", err))
	}
	logger.Debug("Plot definitions loaded", "plots", len(model.Plots), "path", cfg.PlotPath)

	renderer := render.New(render.Options{
		OutDir:      cfg.OutDir,
		Separator:   cfg.Separator,
		Precision:   cfg.Precision,
		Workers:     cfg.Workers,
		Echo:        cfg.Echo,
		KeepScripts: cfg.KeepScripts,
	})
	logger.Debug("Renderer configured", "out_dir", cfg.OutDir, "workers", cfg.Workers)

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		model:    model,
		renderer: renderer,
	}
}

// Model returns the loaded plot model. This is primarily for testing.
func (a *App) Model() *plotfile.Model {
	return a.model
}
