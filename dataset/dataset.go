// Package dataset models tabular data as ordered named columns and renders
// it into the delimited text blocks that gnuplot consumes.
//
// A Table is the canonical implementation, but the encoder and the script
// builder accept anything that satisfies the Tabular interface, so callers
// with their own row-oriented structures can feed them in directly.
package dataset

import "strconv"

// DefaultPrecision is the number of significant digits used for float cells
// when a table has no explicit precision configured.
const DefaultPrecision = 10

// Tabular is the contract for anything the encoder can serialize: an ordered
// list of column names, a row count, and formatted cell text. CellText must
// return "" for cells that have no value; row and col are zero-based and the
// caller keeps them within NumRows and len(ColumnNames).
type Tabular interface {
	ColumnNames() []string
	NumRows() int
	CellText(row, col int) string
}

// Named pairs a Tabular with a key used to prefix its column names when
// several datasets are serialized together from a named collection.
type Named struct {
	Key  string
	Data Tabular
}

type cellKind uint8

const (
	kindEmpty cellKind = iota
	kindFloat
	kindInt
	kindText
)

// cell is a single typed value. Floats keep their numeric form so precision
// applies at render time, not at construction time.
type cell struct {
	kind cellKind
	f    float64
	i    int64
	text string
}

func (c cell) format(precision int) string {
	switch c.kind {
	case kindFloat:
		return strconv.FormatFloat(c.f, 'g', precision, 64)
	case kindInt:
		return strconv.FormatInt(c.i, 10)
	case kindText:
		return c.text
	default:
		return ""
	}
}

// Column is an ordered, named sequence of cells. Columns are built through
// the Floats, Ints and Strings constructors and are immutable afterwards.
type Column struct {
	name  string
	cells []cell
}

// Floats builds a numeric column. Values render with the owning table's
// significant-digit precision.
func Floats(name string, values ...float64) Column {
	cells := make([]cell, len(values))
	for i, v := range values {
		cells[i] = cell{kind: kindFloat, f: v}
	}
	return Column{name: name, cells: cells}
}

// Ints builds an integer column. Values render exactly, without precision
// rounding.
func Ints(name string, values ...int) Column {
	cells := make([]cell, len(values))
	for i, v := range values {
		cells[i] = cell{kind: kindInt, i: int64(v)}
	}
	return Column{name: name, cells: cells}
}

// Strings builds a text column. Values pass through verbatim.
func Strings(name string, values ...string) Column {
	cells := make([]cell, len(values))
	for i, v := range values {
		cells[i] = cell{kind: kindText, text: v}
	}
	return Column{name: name, cells: cells}
}

// Name returns the column's name.
func (c Column) Name() string { return c.name }

// Len returns the number of cells in the column.
func (c Column) Len() int { return len(c.cells) }

// Table is an ordered collection of named columns. Columns may have uneven
// lengths; rows beyond a column's length read as empty cells.
type Table struct {
	columns   []Column
	precision int
}

// New builds a table from the given columns, in order.
func New(columns ...Column) *Table {
	return &Table{columns: columns}
}

// AddColumn appends a column after the existing ones.
func (t *Table) AddColumn(c Column) {
	t.columns = append(t.columns, c)
}

// SetPrecision sets the significant-digit precision for float cells.
// Values below 1 reset to DefaultPrecision.
func (t *Table) SetPrecision(digits int) {
	t.precision = digits
}

// Precision returns the effective float precision.
func (t *Table) Precision() int {
	if t.precision < 1 {
		return DefaultPrecision
	}
	return t.precision
}

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.name
	}
	return names
}

// NumRows returns the length of the longest column.
func (t *Table) NumRows() int {
	rows := 0
	for _, c := range t.columns {
		if len(c.cells) > rows {
			rows = len(c.cells)
		}
	}
	return rows
}

// CellText returns the formatted cell at (row, col), or "" when the column
// is shorter than row+1.
func (t *Table) CellText(row, col int) string {
	if col < 0 || col >= len(t.columns) {
		return ""
	}
	c := t.columns[col]
	if row < 0 || row >= len(c.cells) {
		return ""
	}
	return c.cells[row].format(t.Precision())
}
