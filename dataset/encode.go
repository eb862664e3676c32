package dataset

import "strings"

// Encode renders one or more datasets side by side as delimited text. The
// first line is the concatenation of every dataset's column names joined by
// sep; each following line holds one row index across all datasets, padding
// datasets shorter than the current index with empty cells. Trailing
// whitespace is trimmed from the result.
func Encode(sep string, tables ...Tabular) string {
	return encode(sep, nil, tables)
}

// EncodeNamed is Encode for datasets drawn from a named collection: each
// header cell is prefixed with its dataset's key as "key_column".
func EncodeNamed(sep string, named ...Named) string {
	prefixes := make([]string, len(named))
	tables := make([]Tabular, len(named))
	for i, n := range named {
		prefixes[i] = n.Key
		tables[i] = n.Data
	}
	return encode(sep, prefixes, tables)
}

func encode(sep string, prefixes []string, tables []Tabular) string {
	widths := make([]int, len(tables))
	header := make([]string, 0)
	maxRows := 0
	for i, t := range tables {
		names := t.ColumnNames()
		widths[i] = len(names)
		for _, name := range names {
			if prefixes != nil && prefixes[i] != "" {
				name = prefixes[i] + "_" + name
			}
			header = append(header, name)
		}
		if rows := t.NumRows(); rows > maxRows {
			maxRows = rows
		}
	}

	var b strings.Builder
	b.WriteString(strings.Join(header, sep))
	cells := make([]string, 0, len(header))
	for row := 0; row < maxRows; row++ {
		cells = cells[:0]
		for i, t := range tables {
			for col := 0; col < widths[i]; col++ {
				if row < t.NumRows() {
					cells = append(cells, t.CellText(row, col))
				} else {
					cells = append(cells, "")
				}
			}
		}
		b.WriteByte('\n')
		b.WriteString(strings.Join(cells, sep))
	}

	return strings.TrimRight(b.String(), " \t\r\n")
}
