// Package plotfile loads declarative plot definitions from HCL files and
// translates them into the format-agnostic model consumed by the renderer.
// It is responsible for file discovery, HCL parsing, expression evaluation
// with the built-in function table, defaulting, and validation.
//
// A plotfile declares one or more `plot` blocks. Each plot names its data
// (inline columns or a CSV file), the series drawn from that data, optional
// free-form gnuplot commands, and optional repeat blocks that expand into
// gnuplot do-for loops.
package plotfile
