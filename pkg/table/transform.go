package table

import (
	"sort"

	"go.uber.org/zap"

	"github.com/Isakrulander/sheetgrid/pkg/logger"
	"github.com/Isakrulander/sheetgrid/pkg/sgerrors"
)

// Row is a read-only view of a single table row handed to predicates.
type Row struct {
	t   *Table
	idx int
}

// Index returns the row's position in its table.
func (r Row) Index() int { return r.idx }

// Value returns the row's value in the named column, nil for a null.
func (r Row) Value(name string) (interface{}, error) {
	col, err := r.t.ColumnByName(name)
	if err != nil {
		return nil, err
	}
	return col.Value(r.idx), nil
}

// Map returns the row as a name-to-value mapping, nil for nulls.
func (r Row) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(r.t.columns))
	for _, col := range r.t.columns {
		m[col.name] = col.Value(r.idx)
	}
	return m
}

// Predicate decides whether a row is kept by Filter.
type Predicate func(Row) (bool, error)

// Filter returns a new table containing the rows the predicate matches,
// in their original relative order. A predicate error excludes the row
// rather than aborting the filter.
func (t *Table) Filter(pred Predicate) *Table {
	kept := make([]int, 0, t.rows)
	excluded := 0
	for i := 0; i < t.rows; i++ {
		match, err := pred(Row{t: t, idx: i})
		if err != nil {
			excluded++
			continue
		}
		if match {
			kept = append(kept, i)
		}
	}

	if excluded > 0 {
		logger.Debug("filter excluded rows on predicate error",
			zap.Int("rows", excluded))
	}

	return t.withRows(kept)
}

// Sort returns a new table with rows stably ordered by the named column.
// Nulls rank as the minimum element of the underlying ordering, so a
// descending sort places them last because the whole order flips.
func (t *Table) Sort(columnName string, ascending bool) (*Table, error) {
	col, err := t.ColumnByName(columnName)
	if err != nil {
		return nil, sgerrors.Wrap(err, sgerrors.ErrorTypeColumnNotFound, "sort column")
	}

	indices := make([]int, t.rows)
	for i := range indices {
		indices[i] = i
	}

	sort.SliceStable(indices, func(a, b int) bool {
		if ascending {
			return col.less(indices[a], indices[b])
		}
		return col.less(indices[b], indices[a])
	})

	return t.withRows(indices), nil
}

// withRows builds a new table from the given row indices, preserving
// column definitions.
func (t *Table) withRows(indices []int) *Table {
	columns := make([]*Column, len(t.columns))
	index := make(map[string]int, len(t.columns))
	for j, col := range t.columns {
		columns[j] = col.selectRows(indices)
		index[col.name] = j
	}
	return &Table{
		columns: columns,
		index:   index,
		rows:    len(indices),
	}
}
