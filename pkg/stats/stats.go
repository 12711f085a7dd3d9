// Package stats computes per-column descriptive statistics over a table.
//
// Statistics are derived on demand and never cached: Summarize reads an
// immutable table and returns a fresh record per column, so it is
// deterministic, side-effect free, and safe to call concurrently.
package stats

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/Isakrulander/sheetgrid/pkg/logger"
	"github.com/Isakrulander/sheetgrid/pkg/table"
)

// Record holds one column's statistics. Exactly one of Numeric or Text is
// set, selected by the column kind; temporal columns use the text shape.
type Record struct {
	Column  string         `json:"column"`
	Kind    string         `json:"kind"`
	Numeric *NumericRecord `json:"numeric,omitempty"`
	Text    *TextRecord    `json:"text,omitempty"`

	// Note is set when a numeric column was skipped for having no
	// non-null values.
	Note string `json:"note,omitempty"`
}

// NumericRecord holds statistics over a numeric column's non-null values.
type NumericRecord struct {
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Count  int     `json:"count"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
}

// TextRecord holds statistics for text and temporal columns.
type TextRecord struct {
	UniqueCount int `json:"unique_count"`
	NullCount   int `json:"null_count"`
	TotalCount  int `json:"total_count"`
}

// Summarize computes statistics for every column, keyed by column name.
// A numeric column with zero non-null values is recorded with a note
// instead of numbers; it never fails the whole call.
func Summarize(t *table.Table) map[string]Record {
	records := make(map[string]Record, t.ColumnCount())

	for _, col := range t.Columns() {
		rec := Record{
			Column: col.Name(),
			Kind:   col.Kind().String(),
		}

		switch col.Kind() {
		case table.KindNumeric:
			if nr := summarizeNumeric(col); nr != nil {
				rec.Numeric = nr
			} else {
				rec.Note = "no non-null values"
				logger.Debug("numeric column skipped",
					zap.String("column", col.Name()))
			}
		default:
			rec.Text = summarizeText(col)
		}

		records[col.Name()] = rec
	}

	return records
}

// summarizeNumeric aggregates the non-null values of a numeric column.
// Returns nil when the column has none.
func summarizeNumeric(col *table.Column) *NumericRecord {
	values := make([]float64, 0, col.Len())
	for i := 0; i < col.Len(); i++ {
		if f, ok := col.Float(i); ok {
			values = append(values, f)
		}
	}
	if len(values) == 0 {
		return nil
	}

	rec := &NumericRecord{
		Min:   values[0],
		Max:   values[0],
		Count: len(values),
	}

	sum := 0.0
	for _, v := range values {
		if v < rec.Min {
			rec.Min = v
		}
		if v > rec.Max {
			rec.Max = v
		}
		sum += v
	}
	rec.Mean = sum / float64(len(values))

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		rec.Median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		rec.Median = sorted[mid]
	}

	variance := 0.0
	for _, v := range values {
		d := v - rec.Mean
		variance += d * d
	}
	rec.StdDev = math.Sqrt(variance / float64(len(values)))

	return rec
}

// summarizeText counts distinct non-null values. Comparison is
// case-sensitive and exact; an explicit empty string is one distinct
// value like any other.
func summarizeText(col *table.Column) *TextRecord {
	seen := make(map[string]struct{})
	nulls := 0

	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			nulls++
			continue
		}
		seen[col.Format(i)] = struct{}{}
	}

	return &TextRecord{
		UniqueCount: len(seen),
		NullCount:   nulls,
		TotalCount:  col.Len(),
	}
}
