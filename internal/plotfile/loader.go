package plotfile

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/nervecenter/gnuplotgo/internal/ctxlog"
	"github.com/nervecenter/gnuplotgo/internal/fsutil"
)

// Extension is the file suffix plotfile discovery looks for.
const Extension = ".hcl"

// Loader parses plotfiles into the format-agnostic Model.
type Loader struct{}

// NewLoader creates a new plotfile loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load orchestrates the entire plotfile loading process: discovery under
// the given paths, HCL parsing, expression evaluation, translation, and
// model validation. Paths may be plotfiles or directories to walk.
func (l *Loader) Load(ctx context.Context, paths ...string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Plotfile loader started", "path_count", len(paths))

	files, err := fsutil.CollectByExtension(paths, Extension)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered plotfiles", "count", len(files))

	model := &Model{}
	parser := hclparse.NewParser()
	evalCtx := evalContext()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse plotfile %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode plotfile %s: %w", file, diags)
		}

		for _, block := range root.Plots {
			plot, err := translatePlot(ctx, file, block, evalCtx)
			if err != nil {
				return nil, err
			}
			model.Plots = append(model.Plots, plot)
		}
	}

	if err := Validate(model); err != nil {
		return nil, err
	}

	logger.Debug("Plotfile loading complete", "plots", len(model.Plots))
	return model, nil
}
