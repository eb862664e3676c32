package plotfile

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot captures every top-level block a plotfile may contain.
type fileRoot struct {
	Plots  []*plotBlock `hcl:"plot,block"`
	Remain hcl.Body     `hcl:",remain"`
}

// plotBlock represents a `plot "name" { ... }` block as written in HCL.
type plotBlock struct {
	Name      string   `hcl:"name,label"`
	Terminal  string   `hcl:"terminal,optional"`
	Output    string   `hcl:"output,optional"`
	Separator string   `hcl:"separator,optional"`
	Commands  []string `hcl:"commands,optional"`

	Data   []*dataBlock   `hcl:"data,block"`
	Series []*seriesBlock `hcl:"series,block"`
	Repeat []*repeatBlock `hcl:"repeat,block"`
}

// dataBlock represents a `data "name" { ... }` block. It either names a CSV
// file or carries inline column blocks; validation enforces the choice.
type dataBlock struct {
	Name    string         `hcl:"name,label"`
	CSV     string         `hcl:"csv,optional"`
	Columns []*columnBlock `hcl:"column,block"`
}

// columnBlock represents a `column "name" { values = [...] }` block. Values
// stays an undecoded expression so translation can evaluate it with the
// plotfile function table and report diagnostics against the source range.
type columnBlock struct {
	Name   string         `hcl:"name,label"`
	Values hcl.Expression `hcl:"values"`
}

// seriesBlock represents a `series { ... }` block: either a structured
// data/using/with/title element or a raw gnuplot plot element.
type seriesBlock struct {
	Data  string `hcl:"data,optional"`
	Using string `hcl:"using,optional"`
	With  string `hcl:"with,optional"`
	Title string `hcl:"title,optional"`
	Raw   string `hcl:"raw,optional"`
}

// repeatBlock represents a `repeat { over = "..." commands = [...] }` block,
// rendered as a gnuplot do-for loop.
type repeatBlock struct {
	Over     string   `hcl:"over"`
	Commands []string `hcl:"commands"`
}
