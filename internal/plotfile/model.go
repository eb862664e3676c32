package plotfile

import (
	"github.com/nervecenter/gnuplotgo/dataset"
)

// Model is the unified, format-agnostic representation of every plot
// definition discovered across the loaded plotfiles.
type Model struct {
	Plots []*Plot
}

// CSVPaths lists every CSV file referenced by the model's data blocks, in
// model order. Watch mode uses this to react to data edits, not just
// plotfile edits.
func (m *Model) CSVPaths() []string {
	var paths []string
	for _, p := range m.Plots {
		for _, d := range p.Data {
			if d.CSVPath != "" {
				paths = append(paths, d.CSVPath)
			}
		}
	}
	return paths
}

// Plot is the format-agnostic representation of a `plot` block, with
// defaults already applied.
type Plot struct {
	Name     string
	Terminal string
	Output   string
	// Separator is the datablock delimiter. Empty means the plot did not
	// choose one and the application default applies.
	Separator string
	Commands  []string
	Data      []*Data
	Series    []*Series
	Repeats   []*Repeat
}

// Data is the format-agnostic representation of a `data` block. Exactly one
// of CSVPath and Inline is set.
type Data struct {
	Name string
	// CSVPath points at a CSV file, resolved against the plotfile's
	// directory so render-time loading is independent of the working
	// directory.
	CSVPath string
	// Inline holds columns evaluated from the plotfile itself.
	Inline *dataset.Table
}

// Source names the data source kind used to materialize this block.
func (d *Data) Source() string {
	if d.CSVPath != "" {
		return "csv"
	}
	return "inline"
}

// Series is the format-agnostic representation of a `series` block.
type Series struct {
	Data  string
	Using string
	With  string
	Title string
	Raw   string
}

// Repeat is the format-agnostic representation of a `repeat` block.
type Repeat struct {
	Over     string
	Commands []string
}
