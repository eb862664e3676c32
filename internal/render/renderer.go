// Package render turns loaded plot definitions into gnuplot scripts, runs
// them through a bounded worker pool, and writes the rendered artifacts to
// the output directory.
package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nervecenter/gnuplotgo/gnuplot"
	"github.com/nervecenter/gnuplotgo/internal/ctxlog"
	"github.com/nervecenter/gnuplotgo/internal/plotfile"
)

const (
	// DefaultWorkers bounds render concurrency when the caller does not.
	DefaultWorkers = 4
	// DefaultSeparator delimits datablock cells unless a plot picks its own.
	DefaultSeparator = ";"
)

// Options configures a Renderer. Zero values fall back to sane defaults.
type Options struct {
	// OutDir receives the rendered artifacts. Defaults to the working
	// directory.
	OutDir string
	// Separator is the datablock delimiter for plots that do not declare
	// one. Defaults to DefaultSeparator.
	Separator string
	// Precision is the significant-digit count for float cells. Values
	// below 1 leave the dataset default in place.
	Precision int
	// Workers bounds how many plots render concurrently. Defaults to
	// DefaultWorkers.
	Workers int
	// Echo prints each generated script before it runs.
	Echo bool
	// KeepScripts persists each generated script in the working directory.
	KeepScripts bool
}

// Result reports the outcome of rendering a single plot.
type Result struct {
	Plot     string
	Artifact string
	Bytes    int
	Err      error
}

// Renderer renders every plot in a model. It is safe for concurrent use
// once built; RegisterSource calls must happen before rendering starts.
type Renderer struct {
	opts    Options
	sources map[string]SourceFunc
}

// New builds a renderer with the builtin csv and inline data sources
// registered.
func New(opts Options) *Renderer {
	if opts.OutDir == "" {
		opts.OutDir = "."
	}
	if opts.Separator == "" {
		opts.Separator = DefaultSeparator
	}
	if opts.Workers < 1 {
		opts.Workers = DefaultWorkers
	}
	r := &Renderer{
		opts:    opts,
		sources: make(map[string]SourceFunc),
	}
	r.RegisterSource("csv", csvSource)
	r.RegisterSource("inline", inlineSource)
	return r
}

// RenderAll renders every plot in the model through the worker pool. The
// returned slice has one Result per plot, in model order. The first real
// failure cancels the remaining work and is returned as the root cause,
// wrapped together with the names of every failed plot.
func (r *Renderer) RenderAll(ctx context.Context, model *plotfile.Model) ([]Result, error) {
	logger := ctxlog.FromContext(ctx)

	plots := model.Plots
	results := make([]Result, len(plots))
	if len(plots) == 0 {
		logger.Warn("No plots to render")
		return results, nil
	}

	if err := os.MkdirAll(r.opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	jobs := make(chan int, len(plots))
	for i := range plots {
		jobs <- i
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(len(plots))

	logger.Debug("Starting render pool", "workers", r.opts.Workers, "plots", len(plots))
	for i := 0; i < r.opts.Workers; i++ {
		go r.worker(runCtx, plots, jobs, results, cancel, &wg, i)
	}

	wg.Wait()
	close(jobs)

	var failed []string
	var rootCause error
	for _, res := range results {
		if res.Err == nil {
			continue
		}
		// Cancellation is a symptom of another plot's failure, not a cause.
		if errors.Is(res.Err, context.Canceled) {
			continue
		}
		failed = append(failed, res.Plot)
		if rootCause == nil {
			rootCause = res.Err
		}
	}
	if rootCause != nil {
		return results, fmt.Errorf("rendering failed for %s: %w", strings.Join(failed, ", "), rootCause)
	}

	logger.Info("✅ All plots rendered", "count", len(plots), "out_dir", r.opts.OutDir)
	return results, nil
}

// worker is the processing loop for a single concurrent renderer.
func (r *Renderer) worker(ctx context.Context, plots []*plotfile.Plot, jobs chan int, results []Result, cancel context.CancelFunc, wg *sync.WaitGroup, workerID int) {
	logger := ctxlog.FromContext(ctx).With("workerID", workerID)
	logger.Debug("Worker started")

	for idx := range jobs {
		plot := plots[idx]

		if ctx.Err() != nil {
			results[idx] = Result{Plot: plot.Name, Err: ctx.Err()}
			wg.Done()
			continue
		}

		logger.Debug("Worker picked up plot", "plot", plot.Name)
		res := r.renderPlot(ctx, plot)
		results[idx] = res

		if res.Err != nil {
			logger.Error("Plot render failed", "plot", plot.Name, "error", res.Err)
			cancel()
		} else {
			logger.Debug("Plot render succeeded", "plot", plot.Name, "artifact", res.Artifact, "bytes", res.Bytes)
		}
		wg.Done()
	}
	logger.Debug("Worker finished")
}

// renderPlot builds the gnuplot script for one plot, executes it, and
// writes the artifact.
func (r *Renderer) renderPlot(ctx context.Context, plot *plotfile.Plot) Result {
	res := Result{Plot: plot.Name}

	script, err := r.buildScript(ctx, plot)
	if err != nil {
		res.Err = err
		return res
	}

	data, err := script.Execute(ctx)
	if err != nil {
		res.Err = err
		return res
	}

	artifact := filepath.Join(r.opts.OutDir, plot.Output)
	if err := os.WriteFile(artifact, data, 0o644); err != nil {
		res.Err = fmt.Errorf("writing artifact for plot %q: %w", plot.Name, err)
		return res
	}

	res.Artifact = artifact
	res.Bytes = len(data)
	return res
}

// buildScript assembles the script: terminal, free-form commands, one
// datablock per data block, the plot directive from the series list, and
// finally the repeat loops.
func (r *Renderer) buildScript(ctx context.Context, plot *plotfile.Plot) (*gnuplot.Script, error) {
	script := gnuplot.NewScript(gnuplot.Options{
		Echo:       r.opts.Echo,
		KeepScript: r.opts.KeepScripts,
	})

	script.AddCommand("set terminal " + plot.Terminal)
	for _, c := range plot.Commands {
		script.AddCommand(c)
	}

	sep := plot.Separator
	if sep == "" {
		sep = r.opts.Separator
	}

	for _, d := range plot.Data {
		table, err := r.materialize(ctx, d)
		if err != nil {
			return nil, fmt.Errorf("plot %q: %w", plot.Name, err)
		}
		script.AddData(d.Name, sep, table)
	}

	elements := make([]gnuplot.PlotElement, 0, len(plot.Series))
	for _, s := range plot.Series {
		elements = append(elements, seriesElement(plot, s))
	}
	script.AddPlotPairs(elements...)

	for _, rep := range plot.Repeats {
		script.AddIteration(rep.Over, rep.Commands...)
	}
	return script, nil
}

// seriesElement renders one series block into a plot element.
func seriesElement(plot *plotfile.Plot, s *plotfile.Series) gnuplot.PlotElement {
	if s.Raw != "" {
		return gnuplot.PlotElement{Spec: s.Raw}
	}

	label := s.Data
	if label == "" {
		label = plot.Data[0].Name
	}

	spec := "using " + s.Using
	if s.With != "" {
		spec += " with " + s.With
	}
	if s.Title != "" {
		spec += fmt.Sprintf(" title '%s'", s.Title)
	}
	return gnuplot.PlotElement{Label: label, Spec: spec}
}
