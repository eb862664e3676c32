package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadCSV builds a table from CSV input. The first record is the header row;
// every following record contributes one row of cells. Column types are
// sniffed: a column whose non-empty cells all parse as integers becomes an
// integer column, one whose cells all parse as numbers becomes a float
// column, and anything else stays text. Empty cells stay empty regardless of
// the column type.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("csv input has no header row")
	}

	header := records[0]
	rows := records[1:]
	table := New()
	for col, name := range header {
		raw := make([]string, len(rows))
		for row := range rows {
			raw[row] = strings.TrimSpace(rows[row][col])
		}
		table.AddColumn(sniffColumn(strings.TrimSpace(name), raw))
	}
	return table, nil
}

// ReadCSVFile is ReadCSV over the named file.
func ReadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv %s: %w", path, err)
	}
	defer f.Close()

	table, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// sniffColumn infers the cell type shared by all non-empty values.
func sniffColumn(name string, raw []string) Column {
	allInt := true
	allFloat := true
	sawValue := false
	for _, v := range raw {
		if v == "" {
			continue
		}
		sawValue = true
		if _, err := strconv.ParseInt(v, 10, 64); err != nil {
			allInt = false
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			allFloat = false
			break
		}
	}

	cells := make([]cell, len(raw))
	for i, v := range raw {
		switch {
		case v == "":
			cells[i] = cell{kind: kindEmpty}
		case sawValue && allInt:
			n, _ := strconv.ParseInt(v, 10, 64)
			cells[i] = cell{kind: kindInt, i: n}
		case sawValue && allFloat:
			f, _ := strconv.ParseFloat(v, 64)
			cells[i] = cell{kind: kindFloat, f: f}
		default:
			cells[i] = cell{kind: kindText, text: v}
		}
	}
	return Column{name: name, cells: cells}
}
