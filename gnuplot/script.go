// Package gnuplot builds gnuplot scripts programmatically and runs them
// through an installed gnuplot interpreter.
//
// A Script accumulates directive lines through builder methods: free-form
// commands, inline datablocks encoded from tabular data, plot directives
// with multiple elements, and iteration blocks. Execute then appends the
// exit directive, hands the finished script to the interpreter, and returns
// the rendered artifact bytes.
//
// The interpreter binary defaults to "gnuplot" ("gnuplot.exe" on Windows)
// and can be overridden with the GNUPLOT environment variable.
package gnuplot

import (
	"fmt"
	"io"
	"strings"

	"github.com/nervecenter/gnuplotgo/dataset"
)

// Options controls script echoing and persistence. The zero value is ready
// to use.
type Options struct {
	// Echo prints the finished script text before execution.
	Echo bool
	// KeepScript writes a copy of the finished script into the working
	// directory, named after the temp file stem, for later inspection.
	KeepScript bool
	// Out receives echoed script text. Defaults to os.Stdout.
	Out io.Writer
}

// PlotElement pairs a plot specification with an optional datablock label.
// A non-empty Label is rendered as a $-prefixed datablock reference before
// the spec.
type PlotElement struct {
	Label string
	Spec  string
}

// Script is an ordered list of gnuplot directive lines under construction.
// It is not safe for concurrent use. A Script is single-shot: Execute
// consumes it, and any further Execute call returns ErrAlreadyExecuted.
type Script struct {
	opts     Options
	lines    []string
	executed bool
}

// NewScript returns an empty script with the given options.
func NewScript(opts Options) *Script {
	return &Script{opts: opts}
}

// Lines returns a copy of the directive lines accumulated so far. Multi-line
// directives such as continued plots and datablocks occupy one entry per
// physical line except plot continuations, which stay a single entry.
func (s *Script) Lines() []string {
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// AddCommand splits text on newlines, trims each line, and appends the
// result in order. Passing several commands joined by newlines in one call
// is equivalent to one call per command.
func (s *Script) AddCommand(text string) {
	for _, line := range strings.Split(text, "\n") {
		s.lines = append(s.lines, strings.TrimSpace(line))
	}
}

// AddData encodes tables side by side with sep and appends them as an
// inline datablock:
//
//	set datafile separator "<sep>"
//	$<label> << EOD
//	<header and rows>
//	EOD
//
// A leading $ on label is accepted and stripped. The returned slice holds
// the header column names, in datablock order, for building plot specs.
func (s *Script) AddData(label, sep string, tables ...dataset.Tabular) []string {
	return s.appendBlock(label, sep, dataset.Encode(sep, tables...))
}

// AddNamedData is AddData for key-prefixed tables: every header column is
// prefixed with its table's key, keeping same-named columns distinct.
func (s *Script) AddNamedData(label, sep string, tables ...dataset.Named) []string {
	return s.appendBlock(label, sep, dataset.EncodeNamed(sep, tables...))
}

// AddDataIndexed appends one datablock per table, labelled <prefix>_<i>
// with i counting from zero. The returned slice holds each datablock's
// header columns in table order.
func (s *Script) AddDataIndexed(prefix, sep string, tables []dataset.Tabular) [][]string {
	headers := make([][]string, 0, len(tables))
	for i, t := range tables {
		headers = append(headers, s.AddData(fmt.Sprintf("%s_%d", prefix, i), sep, t))
	}
	return headers
}

func (s *Script) appendBlock(label, sep, text string) []string {
	label = strings.TrimPrefix(label, "$")
	s.lines = append(s.lines, fmt.Sprintf("set datafile separator %q", sep))
	s.lines = append(s.lines, "$"+label+" << EOD")
	if text == "" {
		s.lines = append(s.lines, "EOD")
		return nil
	}
	rows := strings.Split(text, "\n")
	s.lines = append(s.lines, rows...)
	s.lines = append(s.lines, "EOD")
	return strings.Split(rows[0], sep)
}

// AddPlot appends a plot directive over the given elements. Elements after
// the first continue on their own lines, aligned past the command word:
//
//	plot $data using 1:2 with lines, \
//	     $data using 1:3 with points
func (s *Script) AddPlot(elements ...string) {
	s.AddPlotCommand("plot", elements...)
}

// AddPlotCommand is AddPlot with an explicit command word, for variants
// such as splot or replot. An empty command falls back to plot.
func (s *Script) AddPlotCommand(command string, elements ...string) {
	if len(elements) == 0 {
		return
	}
	if command == "" {
		command = "plot"
	}
	cont := ", \\\n" + strings.Repeat(" ", len(command)+1)
	s.lines = append(s.lines, command+" "+strings.Join(elements, cont))
}

// AddPlotFor appends a plot directive in which every element reads from the
// single datablock label.
func (s *Script) AddPlotFor(label string, elements ...string) {
	s.AddPlotForCommand("plot", label, elements...)
}

// AddPlotForCommand is AddPlotFor with an explicit command word.
func (s *Script) AddPlotForCommand(command, label string, elements ...string) {
	label = strings.TrimPrefix(label, "$")
	prefixed := make([]string, 0, len(elements))
	for _, el := range elements {
		prefixed = append(prefixed, "$"+label+" "+el)
	}
	s.AddPlotCommand(command, prefixed...)
}

// AddPlotPairs appends a plot directive from label/spec pairs, so elements
// reading different datablocks can share one plot.
func (s *Script) AddPlotPairs(pairs ...PlotElement) {
	s.AddPlotPairsCommand("plot", pairs...)
}

// AddPlotPairsCommand is AddPlotPairs with an explicit command word.
func (s *Script) AddPlotPairsCommand(command string, pairs ...PlotElement) {
	elements := make([]string, 0, len(pairs))
	for _, p := range pairs {
		el := p.Spec
		if p.Label != "" {
			el = "$" + strings.TrimPrefix(p.Label, "$") + " " + el
		}
		elements = append(elements, el)
	}
	s.AddPlotCommand(command, elements...)
}

// AddIteration wraps commands in a gnuplot do-for block over bounds, for
// example "i=1:5" or "word in \"a b c\"":
//
//	do for [i=1:5] {
//	    <command>
//	}
func (s *Script) AddIteration(bounds string, commands ...string) {
	s.lines = append(s.lines, fmt.Sprintf("do for [%s] {", bounds))
	for _, c := range commands {
		s.lines = append(s.lines, "    "+strings.TrimSpace(c))
	}
	s.lines = append(s.lines, "}")
}
