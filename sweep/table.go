package sweep

import (
	"fmt"
	"slices"
)

// Row is one line of a result table: the grid coordinates it belongs to and
// one value per metric column.
type Row struct {
	Key    []int
	Values []float64
}

// Table is an ordered, coordinate-keyed result table.
type Table struct {
	// Name identifies the kind of table, e.g. "all_predictors".
	Name string
	// KeyColumns names the elements of Row.Key.
	KeyColumns []string
	// Columns names the elements of Row.Values.
	Columns []string
	// Rows are ordered by key.
	Rows []Row
}

// Header returns the key columns followed by the metric columns.
func (t Table) Header() []string {
	return append(slices.Clone(t.KeyColumns), t.Columns...)
}

// Column returns the index of the named metric column, or -1.
func (t Table) Column(name string) int {
	return slices.Index(t.Columns, name)
}

// Lookup returns the row with the given key.
func (t Table) Lookup(key ...int) (Row, bool) {
	for _, row := range t.Rows {
		if slices.Equal(row.Key, key) {
			return row, true
		}
	}
	return Row{}, false
}

// Value returns the named metric of the row with the given key.
func (t Table) Value(column string, key ...int) (float64, error) {
	c := t.Column(column)
	if c < 0 {
		return 0, fmt.Errorf("table %s has no column %q", t.Name, column)
	}

	row, ok := t.Lookup(key...)
	if !ok {
		return 0, fmt.Errorf("table %s has no row %v", t.Name, key)
	}

	return row.Values[c], nil
}

// sameShape reports whether a and b have identical schemas and row keys in
// the same order.
func sameShape(a, b Table) bool {
	if !slices.Equal(a.KeyColumns, b.KeyColumns) ||
		!slices.Equal(a.Columns, b.Columns) ||
		len(a.Rows) != len(b.Rows) {
		return false
	}

	for i := range a.Rows {
		if !slices.Equal(a.Rows[i].Key, b.Rows[i].Key) ||
			len(a.Rows[i].Values) != len(b.Rows[i].Values) {
			return false
		}
	}

	return true
}
