package render

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/nervecenter/gnuplotgo/dataset"
	"github.com/nervecenter/gnuplotgo/internal/plotfile"
)

// SourceFunc materializes a data block into a table the script builder can
// serialize. Implementations receive the renderer's float precision and
// apply it when they construct the table.
type SourceFunc func(ctx context.Context, data *plotfile.Data, precision int) (dataset.Tabular, error)

// RegisterSource installs a data source under the given kind, replacing any
// previous registration. Must not be called concurrently with rendering.
func (r *Renderer) RegisterSource(kind string, fn SourceFunc) {
	r.sources[kind] = fn
}

// materialize resolves a data block through the source registry.
func (r *Renderer) materialize(ctx context.Context, d *plotfile.Data) (dataset.Tabular, error) {
	fn, ok := r.sources[d.Source()]
	if !ok {
		kinds := make([]string, 0, len(r.sources))
		for kind := range r.sources {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		return nil, fmt.Errorf("data %q: no source registered for kind %q (registered: %s)", d.Name, d.Source(), strings.Join(kinds, ", "))
	}
	return fn(ctx, d, r.opts.Precision)
}

func csvSource(_ context.Context, d *plotfile.Data, precision int) (dataset.Tabular, error) {
	table, err := dataset.ReadCSVFile(d.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("data %q: %w", d.Name, err)
	}
	if precision > 0 {
		table.SetPrecision(precision)
	}
	return table, nil
}

func inlineSource(_ context.Context, d *plotfile.Data, precision int) (dataset.Tabular, error) {
	if d.Inline == nil {
		return nil, fmt.Errorf("data %q: inline source has no columns", d.Name)
	}
	if precision > 0 {
		d.Inline.SetPrecision(precision)
	}
	return d.Inline, nil
}
