package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name   string
		values []Cell
		want   Kind
	}{
		{
			name:   "all numeric strings",
			values: []Cell{"1", "2.5", "-3", "1e3"},
			want:   KindNumeric,
		},
		{
			name:   "typed numbers",
			values: []Cell{1, 2.5, int64(3)},
			want:   KindNumeric,
		},
		{
			name:   "iso dates",
			values: []Cell{"2024-01-01", "2024-06-30", "2024-12-31"},
			want:   KindTemporal,
		},
		{
			name:   "typed times",
			values: []Cell{time.Now(), time.Now().Add(time.Hour)},
			want:   KindTemporal,
		},
		{
			name:   "plain text",
			values: []Cell{"alpha", "beta"},
			want:   KindText,
		},
		{
			name:   "mixed numeric and text resolves to text",
			values: []Cell{"1", "two", "3"},
			want:   KindText,
		},
		{
			name:   "empty cells do not clear candidate flags",
			values: []Cell{"", nil, "1", "", "2"},
			want:   KindNumeric,
		},
		{
			name:   "no non-empty sample defaults to text",
			values: []Cell{"", nil, "  "},
			want:   KindText,
		},
		{
			name:   "empty column defaults to text",
			values: nil,
			want:   KindText,
		},
	}

	d := NewDetector(DefaultSampleSize)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.DetectKind(tt.values))
		})
	}
}

func TestDetectKindNumericPriority(t *testing.T) {
	// A value like "20060102" parses both as a float and, for some layout
	// lists, as a date. Numeric is checked first and wins the tie.
	d := NewDetector(DefaultSampleSize)
	assert.Equal(t, KindNumeric, d.DetectKind([]Cell{"20060102", "20071130"}))
}

func TestDetectKindSampleWindow(t *testing.T) {
	// The eleventh value never gets sampled with the default size of 10,
	// so the column still resolves to numeric.
	values := make([]Cell, 0, 11)
	for i := 0; i < 10; i++ {
		values = append(values, "1")
	}
	values = append(values, "not a number")

	d := NewDetector(DefaultSampleSize)
	assert.Equal(t, KindNumeric, d.DetectKind(values))

	// A wider sample that reaches it resolves to text.
	assert.Equal(t, KindText, NewDetector(11).DetectKind(values))
}

func TestDetectKindIdempotent(t *testing.T) {
	// Re-running inference on a materialized column's own string
	// projection yields the same kind.
	raw := []Cell{"1.5", "2", "", "3.25"}
	d := NewDetector(DefaultSampleSize)
	kind := d.DetectKind(raw)

	col := materialize("v", kind, raw)
	projected := make([]Cell, col.Len())
	for i := range projected {
		projected[i] = col.Format(i)
	}
	assert.Equal(t, kind, d.DetectKind(projected))
}

func TestProject(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, "", Project(nil))
	assert.Equal(t, "x", Project("x"))
	assert.Equal(t, "2.5", Project(2.5))
	assert.Equal(t, "7", Project(7))
	assert.Equal(t, "2024-03-01 12:30:00", Project(ts))
}
