// Package table implements the typed column store at the heart of
// sheetgrid: a raw grid of cell values is classified per column as
// numeric, temporal or text, then materialized into an immutable columnar
// Table consumed by the statistics and export engines.
//
// # Overview
//
// Building a table runs three passes per column:
//   - sampling: the first N non-empty values decide the column kind
//   - materialization: every row re-parses with the chosen kind's parser,
//     values that fail become nulls
//   - assembly: type-homogeneous backing slices plus a validity mask
//
// Tables are immutable after Build. Filter and Sort return new tables,
// and every read-only operation is safe for concurrent use.
package table

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Isakrulander/sheetgrid/pkg/logger"
	"github.com/Isakrulander/sheetgrid/pkg/sgerrors"
)

// Table is an ordered set of equally long typed columns.
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

type buildOptions struct {
	sampleSize int
}

// Option customizes Build.
type Option func(*buildOptions)

// WithSampleSize overrides the inference sample size.
func WithSampleSize(n int) Option {
	return func(o *buildOptions) {
		o.sampleSize = n
	}
}

// Build constructs a Table from a header row and a raw grid. Duplicate
// header names get a _1, _2... suffix in first-seen order and blank
// headers become column_<position>. Source rows whose cells are all empty
// after trimming are dropped. A grid with zero columns is an error; zero
// data rows yields an empty table.
func Build(headers []string, grid [][]Cell, opts ...Option) (*Table, error) {
	if len(headers) == 0 {
		return nil, sgerrors.New(sgerrors.ErrorTypeEmptyWorksheet, "worksheet has no columns")
	}

	o := buildOptions{sampleSize: DefaultSampleSize}
	for _, opt := range opts {
		opt(&o)
	}

	names := dedupeHeaders(headers)
	kept := keepRows(grid, len(headers))

	detector := NewDetector(o.sampleSize)
	columns := make([]*Column, len(names))
	index := make(map[string]int, len(names))

	for j, name := range names {
		raw := make([]Cell, len(kept))
		for i, row := range kept {
			raw[i] = row[j]
		}
		columns[j] = materialize(name, detector.DetectKind(raw), raw)
		index[name] = j
	}

	t := &Table{
		columns: columns,
		index:   index,
		rows:    len(kept),
	}

	logger.Debug("table built",
		zap.Int("rows", t.rows),
		zap.Int("columns", len(columns)))

	return t, nil
}

// dedupeHeaders trims headers, names blank ones by position and resolves
// collisions by suffixing _1, _2... in first-seen order.
func dedupeHeaders(headers []string) []string {
	names := make([]string, len(headers))
	seen := make(map[string]struct{}, len(headers))

	for i, h := range headers {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		if _, taken := seen[name]; taken {
			for n := 1; ; n++ {
				candidate := fmt.Sprintf("%s_%d", name, n)
				if _, taken := seen[candidate]; !taken {
					name = candidate
					break
				}
			}
		}
		seen[name] = struct{}{}
		names[i] = name
	}
	return names
}

// keepRows pads ragged rows to width and drops rows with no non-empty
// cell.
func keepRows(grid [][]Cell, width int) [][]Cell {
	kept := make([][]Cell, 0, len(grid))
	for _, row := range grid {
		padded := make([]Cell, width)
		copy(padded, row)

		empty := true
		for _, cell := range padded {
			if strings.TrimSpace(Project(cell)) != "" {
				empty = false
				break
			}
		}
		if !empty {
			kept = append(kept, padded)
		}
	}
	return kept
}

// materialize re-parses every raw value with the chosen kind's parser.
// Empty cells and parse failures occupy their slot as nulls; a late
// failure never demotes the column to text.
func materialize(name string, kind Kind, raw []Cell) *Column {
	col := &Column{
		name:  name,
		kind:  kind,
		valid: make([]bool, len(raw)),
	}
	switch kind {
	case KindNumeric:
		col.floats = make([]float64, len(raw))
	case KindTemporal:
		col.times = make([]time.Time, len(raw))
	default:
		col.strs = make([]string, len(raw))
	}

	for i, v := range raw {
		s := Project(v)
		if strings.TrimSpace(s) == "" {
			continue
		}
		switch kind {
		case KindNumeric:
			if f, ok := parseNumeric(v); ok {
				col.floats[i] = f
				col.valid[i] = true
			}
		case KindTemporal:
			if t, ok := parseTemporal(v); ok {
				col.times[i] = t
				col.valid[i] = true
			}
		default:
			col.strs[i] = s
			col.valid[i] = true
		}
	}
	return col
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int { return t.rows }

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.columns) }

// Headers returns the column names in order.
func (t *Table) Headers() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.name
	}
	return names
}

// Columns returns the columns in order. The slice is a copy; the columns
// themselves are shared and immutable.
func (t *Table) Columns() []*Column {
	out := make([]*Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// ColumnByName returns the named column.
func (t *Table) ColumnByName(name string) (*Column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, sgerrors.Newf(sgerrors.ErrorTypeColumnNotFound, "column %q not found", name)
	}
	return t.columns[i], nil
}

// Column returns all values of the named column, nil for nulls.
func (t *Table) Column(name string) ([]interface{}, error) {
	col, err := t.ColumnByName(name)
	if err != nil {
		return nil, err
	}
	return col.Values(), nil
}

// Get returns the value at (row, column name), nil for a null.
func (t *Table) Get(row int, name string) (interface{}, error) {
	if row < 0 || row >= t.rows {
		return nil, sgerrors.Newf(sgerrors.ErrorTypeOutOfRange, "row %d out of range [0,%d)", row, t.rows)
	}
	col, err := t.ColumnByName(name)
	if err != nil {
		return nil, err
	}
	return col.Value(row), nil
}
