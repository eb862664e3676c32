package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/nervecenter/gnuplotgo/internal/ctxlog"
	"github.com/nervecenter/gnuplotgo/internal/plotfile"
	"github.com/nervecenter/gnuplotgo/internal/watch"
)

// Run executes the main application logic: one render pass over every
// loaded plot, then, in watch mode, re-renders until the context is
// cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started")

	if len(a.model.Plots) == 0 {
		a.logger.Warn("No plots found, nothing to render", "path", a.config.PlotPath)
		return nil
	}

	a.logger.Info("🚀 Starting render run", "plots", len(a.model.Plots))
	results, err := a.renderer.RenderAll(ctx, a.model)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	for _, res := range results {
		a.logger.Info("Artifact written", "plot", res.Plot, "path", res.Artifact, "bytes", res.Bytes)
	}
	a.logger.Info("🏁 Render finished")

	if a.config.Watch {
		return a.watchLoop(ctx)
	}

	a.logger.Debug("App.Run method finished")
	return nil
}

// watchLoop blocks on the filesystem watcher until the context ends.
// Cancellation there is a normal shutdown, not an error.
func (a *App) watchLoop(ctx context.Context) error {
	paths := append([]string{a.config.PlotPath}, a.model.CSVPaths()...)
	err := watch.Run(ctx, paths, watch.DefaultDebounce, a.rerender)
	if errors.Is(err, context.Canceled) {
		a.logger.Info("Watch stopped")
		return nil
	}
	return err
}

// rerender reloads the plot definitions and renders them again. Failures
// are logged rather than fatal so a half-saved plotfile does not kill the
// watch session.
func (a *App) rerender(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("🔁 Change detected, re-rendering")

	model, err := plotfile.NewLoader().Load(ctx, a.config.PlotPath)
	if err != nil {
		logger.Error("Reload failed, keeping previous plots", "error", err)
		return
	}
	a.model = model

	if _, err := a.renderer.RenderAll(ctx, model); err != nil {
		logger.Error("Re-render failed", "error", err)
		return
	}
	logger.Info("🏁 Re-render finished", "plots", len(model.Plots))
}
