package plotfile

import (
	"context"
	"fmt"
	"math/big"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/nervecenter/gnuplotgo/dataset"
	"github.com/nervecenter/gnuplotgo/internal/ctxlog"
)

const (
	defaultTerminal = "svg"
	artifactExt     = ".svg"
)

// translatePlot maps one decoded plot block onto the model, applying
// defaults and evaluating inline data columns.
func translatePlot(ctx context.Context, srcFile string, block *plotBlock, evalCtx *hcl.EvalContext) (*Plot, error) {
	logger := ctxlog.FromContext(ctx)

	plot := &Plot{
		Name:      block.Name,
		Terminal:  block.Terminal,
		Output:    block.Output,
		Separator: block.Separator,
		Commands:  block.Commands,
	}
	if plot.Terminal == "" {
		plot.Terminal = defaultTerminal
	}
	if plot.Output == "" {
		plot.Output = block.Name + artifactExt
	}

	baseDir := filepath.Dir(srcFile)
	for _, d := range block.Data {
		data, err := translateData(d, baseDir, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("plot %q: %w", block.Name, err)
		}
		plot.Data = append(plot.Data, data)
	}
	for _, s := range block.Series {
		plot.Series = append(plot.Series, &Series{
			Data:  s.Data,
			Using: s.Using,
			With:  s.With,
			Title: s.Title,
			Raw:   s.Raw,
		})
	}
	for _, r := range block.Repeat {
		plot.Repeats = append(plot.Repeats, &Repeat{Over: r.Over, Commands: r.Commands})
	}

	logger.Debug("Translated plot block",
		"plot", plot.Name,
		"data_blocks", len(plot.Data),
		"series", len(plot.Series),
		"repeats", len(plot.Repeats),
	)
	return plot, nil
}

// translateData resolves a data block into either a CSV reference or an
// inline table. CSV paths are anchored at the plotfile's directory.
func translateData(block *dataBlock, baseDir string, evalCtx *hcl.EvalContext) (*Data, error) {
	data := &Data{Name: block.Name}

	if block.CSV != "" {
		if len(block.Columns) > 0 {
			return nil, fmt.Errorf("data %q: csv and inline columns are mutually exclusive", block.Name)
		}
		path := block.CSV
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		data.CSVPath = path
		return data, nil
	}

	if len(block.Columns) == 0 {
		return nil, fmt.Errorf("data %q: needs either csv or at least one column", block.Name)
	}

	columns := make([]dataset.Column, 0, len(block.Columns))
	for _, col := range block.Columns {
		c, err := translateColumn(col, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("data %q: %w", block.Name, err)
		}
		columns = append(columns, c)
	}
	data.Inline = dataset.New(columns...)
	return data, nil
}

// translateColumn evaluates a column's values expression into a typed
// dataset column. A list of whole numbers becomes an integer column, any
// other all-numeric list a float column, everything else a string column.
// Null elements become empty cells through the string path.
func translateColumn(block *columnBlock, evalCtx *hcl.EvalContext) (dataset.Column, error) {
	val, diags := block.Values.Value(evalCtx)
	if diags.HasErrors() {
		return dataset.Column{}, fmt.Errorf("column %q: %w", block.Name, diags)
	}
	ty := val.Type()
	if val.IsNull() || (!ty.IsTupleType() && !ty.IsListType()) {
		return dataset.Column{}, fmt.Errorf("column %q: values must be a list, got %s", block.Name, ty.FriendlyName())
	}

	elems := val.AsValueSlice()
	if nums, ok := asNumbers(elems); ok {
		if ints, ok := asInts(nums); ok {
			return dataset.Ints(block.Name, ints...), nil
		}
		floats := make([]float64, len(nums))
		for i, n := range nums {
			floats[i], _ = n.Float64()
		}
		return dataset.Floats(block.Name, floats...), nil
	}

	strs := make([]string, 0, len(elems))
	for _, el := range elems {
		if el.IsNull() {
			strs = append(strs, "")
			continue
		}
		s, err := convert.Convert(el, cty.String)
		if err != nil {
			return dataset.Column{}, fmt.Errorf("column %q: unsupported element: %w", block.Name, err)
		}
		strs = append(strs, s.AsString())
	}
	return dataset.Strings(block.Name, strs...), nil
}

// asNumbers converts every element to a number, failing on the first
// element that is null or non-numeric.
func asNumbers(elems []cty.Value) ([]*big.Float, bool) {
	nums := make([]*big.Float, 0, len(elems))
	for _, el := range elems {
		if el.IsNull() {
			return nil, false
		}
		n, err := convert.Convert(el, cty.Number)
		if err != nil {
			return nil, false
		}
		nums = append(nums, n.AsBigFloat())
	}
	return nums, true
}

// asInts narrows numbers to ints only when every one is exactly whole.
func asInts(nums []*big.Float) ([]int, bool) {
	ints := make([]int, 0, len(nums))
	for _, n := range nums {
		if !n.IsInt() {
			return nil, false
		}
		i, acc := n.Int64()
		if acc != big.Exact {
			return nil, false
		}
		ints = append(ints, int(i))
	}
	return ints, true
}
