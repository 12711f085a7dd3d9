package table

import (
	"strconv"
	"time"
)

// Kind classifies a column's values as numeric, temporal or text.
type Kind int

const (
	// KindNumeric marks a column whose non-null values are float64.
	KindNumeric Kind = iota
	// KindTemporal marks a column whose non-null values are time.Time.
	KindTemporal
	// KindText marks a column whose non-null values are strings.
	KindText
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindTemporal:
		return "temporal"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Cell is a raw cell value handed in by the grid reader: a string, a
// number, a time.Time, or nil for an empty cell.
type Cell = interface{}

// TimeLayout is the invariant rendering layout for temporal values in
// text-based exports.
const TimeLayout = "2006-01-02 15:04:05"

// Column is a named, type-homogeneous sequence of values. Exactly one of
// the backing slices is populated, selected by kind; valid marks non-null
// slots. Columns are immutable once built.
type Column struct {
	name   string
	kind   Kind
	floats []float64
	times  []time.Time
	strs   []string
	valid  []bool
}

// Name returns the column name, unique within its table.
func (c *Column) Name() string { return c.name }

// Kind returns the inferred kind set at construction.
func (c *Column) Kind() Kind { return c.kind }

// Len returns the number of slots, including nulls.
func (c *Column) Len() int { return len(c.valid) }

// IsNull reports whether slot i holds no value.
func (c *Column) IsNull(i int) bool { return !c.valid[i] }

// Float returns the numeric value at i. ok is false for nulls and for
// non-numeric columns.
func (c *Column) Float(i int) (float64, bool) {
	if c.kind != KindNumeric || !c.valid[i] {
		return 0, false
	}
	return c.floats[i], true
}

// Time returns the temporal value at i. ok is false for nulls and for
// non-temporal columns.
func (c *Column) Time(i int) (time.Time, bool) {
	if c.kind != KindTemporal || !c.valid[i] {
		return time.Time{}, false
	}
	return c.times[i], true
}

// Text returns the string value at i. ok is false for nulls and for
// non-text columns.
func (c *Column) Text(i int) (string, bool) {
	if c.kind != KindText || !c.valid[i] {
		return "", false
	}
	return c.strs[i], true
}

// Value returns the native value at slot i, or nil for a null.
func (c *Column) Value(i int) interface{} {
	if !c.valid[i] {
		return nil
	}
	switch c.kind {
	case KindNumeric:
		return c.floats[i]
	case KindTemporal:
		return c.times[i]
	default:
		return c.strs[i]
	}
}

// Values returns a fresh slice of all values, nil for nulls.
func (c *Column) Values() []interface{} {
	out := make([]interface{}, c.Len())
	for i := range out {
		out[i] = c.Value(i)
	}
	return out
}

// NullCount returns the number of null slots.
func (c *Column) NullCount() int {
	n := 0
	for _, ok := range c.valid {
		if !ok {
			n++
		}
	}
	return n
}

// Format renders the value at slot i for text output: empty string for
// nulls, shortest round-trip form for numbers, TimeLayout for times.
func (c *Column) Format(i int) string {
	if !c.valid[i] {
		return ""
	}
	switch c.kind {
	case KindNumeric:
		return strconv.FormatFloat(c.floats[i], 'f', -1, 64)
	case KindTemporal:
		return c.times[i].Format(TimeLayout)
	default:
		return c.strs[i]
	}
}

// selectRows builds a new column containing the slots at the given row
// indices, in order.
func (c *Column) selectRows(indices []int) *Column {
	out := &Column{
		name:  c.name,
		kind:  c.kind,
		valid: make([]bool, len(indices)),
	}
	switch c.kind {
	case KindNumeric:
		out.floats = make([]float64, len(indices))
	case KindTemporal:
		out.times = make([]time.Time, len(indices))
	default:
		out.strs = make([]string, len(indices))
	}
	for pos, i := range indices {
		out.valid[pos] = c.valid[i]
		switch c.kind {
		case KindNumeric:
			out.floats[pos] = c.floats[i]
		case KindTemporal:
			out.times[pos] = c.times[i]
		default:
			out.strs[pos] = c.strs[i]
		}
	}
	return out
}

// less orders two slots for sorting. Nulls rank below every non-null
// value; non-null values compare by the column's native ordering.
func (c *Column) less(i, j int) bool {
	iv, jv := c.valid[i], c.valid[j]
	if !iv || !jv {
		return !iv && jv
	}
	switch c.kind {
	case KindNumeric:
		return c.floats[i] < c.floats[j]
	case KindTemporal:
		return c.times[i].Before(c.times[j])
	default:
		return c.strs[i] < c.strs[j]
	}
}
