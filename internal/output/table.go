package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

var headerColor = color.New(color.FgCyan, color.Bold)

// Table is an ordered, row-oriented result set produced by a scan query.
// Column order is fixed at construction and never reordered; rows keep the
// order resources were returned in unless Sort is applied.
type Table struct {
	columns []string
	rows    [][]string
}

// NewTable creates an empty table with the given column order.
func NewTable(columns ...string) *Table {
	return &Table{columns: columns}
}

// Columns returns the table's column names in order.
func (t *Table) Columns() []string {
	return t.columns
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns the table's rows in order.
func (t *Table) Rows() [][]string {
	return t.rows
}

// AddRow appends a row. Short rows are padded with empty cells, extra cells
// are dropped, so every row always matches the column count.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.columns))
	copy(row, values)
	t.rows = append(t.rows, row)
}

// columnIndex returns the position of a column, or -1 if unknown.
func (t *Table) columnIndex(column string) int {
	for i, name := range t.columns {
		if name == column {
			return i
		}
	}
	return -1
}

// Filter returns a new table with the same columns, keeping only rows whose
// cell in the given column equals value exactly (case-sensitive). An unknown
// column matches nothing.
func (t *Table) Filter(column, value string) *Table {
	filtered := NewTable(t.columns...)
	idx := t.columnIndex(column)
	if idx < 0 {
		return filtered
	}
	for _, row := range t.rows {
		if row[idx] == value {
			filtered.AddRow(row...)
		}
	}
	return filtered
}

// Sort orders rows by the given column, ascending unless descending is set.
// An unknown column leaves the order untouched.
func (t *Table) Sort(column string, descending bool) {
	idx := t.columnIndex(column)
	if idx < 0 {
		return
	}
	sort.SliceStable(t.rows, func(i, j int) bool {
		if descending {
			return t.rows[i][idx] > t.rows[j][idx]
		}
		return t.rows[i][idx] < t.rows[j][idx]
	})
}

// Render writes the table to w in aligned columns. The header row is
// colored unless color output is disabled.
func (t *Table) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := make([]string, len(t.columns))
	for i, name := range t.columns {
		header[i] = headerColor.Sprint(name)
	}
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")); err != nil {
		return err
	}
	for _, row := range t.rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}
