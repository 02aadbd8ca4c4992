package stancsv

import (
	"strconv"
	"strings"
)

// Table is a numeric table with named, ordered columns. Storage is
// column-major: one []float64 per column, all of equal length.
type Table struct {
	Columns []string
	cols    [][]float64
}

// NewTable builds a table from named columns. All columns must have the
// same length.
func NewTable(columns []string, values [][]float64) (*Table, error) {
	if len(columns) != len(values) {
		return nil, &FormatError{Detail: "column name and value counts differ"}
	}
	for i := 1; i < len(values); i++ {
		if len(values[i]) != len(values[0]) {
			return nil, &FormatError{Detail: "columns have differing lengths"}
		}
	}
	return &Table{Columns: append([]string(nil), columns...), cols: values}, nil
}

// parseTable coerces raw CSV rows to a numeric Table under the given header.
// Every cell must parse as a float; a failure or a ragged row yields a
// FormatError. lineOf maps a row index to its 1-based file line for error
// reporting (may be nil).
func parseTable(path string, header []string, rows [][]string, lineOf func(row int) int) (*Table, error) {
	t := &Table{
		Columns: append([]string(nil), header...),
		cols:    make([][]float64, len(header)),
	}
	for i := range t.cols {
		t.cols[i] = make([]float64, len(rows))
	}

	for r, row := range rows {
		line := 0
		if lineOf != nil {
			line = lineOf(r)
		}
		if len(row) != len(header) {
			return nil, &FormatError{
				Path: path, Line: line,
				Detail: "row has " + strconv.Itoa(len(row)) + " fields, header has " + strconv.Itoa(len(header)),
			}
		}
		for c, field := range row {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, &FormatError{
					Path: path, Line: line,
					Detail: "column " + t.Columns[c] + ": non-numeric value " + strconv.Quote(field),
				}
			}
			t.cols[c][r] = v
		}
	}
	return t, nil
}

// Rows returns the number of rows.
func (t *Table) Rows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0])
}

// Col returns the named column's values, or nil if absent.
func (t *Table) Col(name string) []float64 {
	for i, col := range t.Columns {
		if col == name {
			return t.cols[i]
		}
	}
	return nil
}

// Select returns a table restricted to the named columns, in the given
// order. Unknown names are skipped.
func (t *Table) Select(names []string) *Table {
	out := &Table{}
	for _, name := range names {
		if vals := t.Col(name); vals != nil {
			out.Columns = append(out.Columns, name)
			out.cols = append(out.cols, vals)
		}
	}
	return out
}

// Tail returns a table holding only the trailing n rows. Column slices are
// shared with the receiver.
func (t *Table) Tail(n int) *Table {
	if n >= t.Rows() {
		return t
	}
	out := &Table{
		Columns: t.Columns,
		cols:    make([][]float64, len(t.cols)),
	}
	for i, col := range t.cols {
		out.cols[i] = col[len(col)-n:]
	}
	return out
}

// WithColumn returns a table with an extra named column appended. The
// values slice must match the row count.
func (t *Table) WithColumn(name string, values []float64) *Table {
	return &Table{
		Columns: append(append([]string(nil), t.Columns...), name),
		cols:    append(append([][]float64(nil), t.cols...), values),
	}
}

// Renamed returns a table with columns renamed through fn. Values are shared.
func (t *Table) Renamed(fn func(string) string) *Table {
	out := &Table{
		Columns: make([]string, len(t.Columns)),
		cols:    t.cols,
	}
	for i, col := range t.Columns {
		out.Columns[i] = fn(col)
	}
	return out
}
