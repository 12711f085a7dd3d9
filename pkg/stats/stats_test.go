package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Isakrulander/sheetgrid/pkg/table"
)

func TestSummarizeNumeric(t *testing.T) {
	tbl, err := table.Build([]string{"v"}, [][]table.Cell{{"2"}, {"3"}, {"4"}})
	require.NoError(t, err)

	records := Summarize(tbl)
	rec, ok := records["v"]
	require.True(t, ok)
	require.NotNil(t, rec.Numeric)
	assert.Nil(t, rec.Text)

	assert.Equal(t, 3.0, rec.Numeric.Mean)
	assert.Equal(t, 2.0, rec.Numeric.Min)
	assert.Equal(t, 4.0, rec.Numeric.Max)
	assert.Equal(t, 3, rec.Numeric.Count)
	assert.Equal(t, 3.0, rec.Numeric.Median)
}

func TestSummarizeTwoColumnScenario(t *testing.T) {
	tbl, err := table.Build(
		[]string{"a", "b"},
		[][]table.Cell{{"2", "5"}, {"3", "6"}, {"4", "7"}},
	)
	require.NoError(t, err)

	records := Summarize(tbl)
	require.Len(t, records, 2)

	a := records["a"]
	require.NotNil(t, a.Numeric)
	assert.Equal(t, 3.0, a.Numeric.Mean)
	assert.Equal(t, 2.0, a.Numeric.Min)
	assert.Equal(t, 4.0, a.Numeric.Max)
	assert.Equal(t, 3, a.Numeric.Count)

	b := records["b"]
	require.NotNil(t, b.Numeric)
	assert.Equal(t, 6.0, b.Numeric.Mean)
	assert.Equal(t, 5.0, b.Numeric.Min)
	assert.Equal(t, 7.0, b.Numeric.Max)
	assert.Equal(t, 3, b.Numeric.Count)
}

func TestSummarizeNumericSkipsNulls(t *testing.T) {
	// Rows with an empty cell in the only other column still count; only
	// non-null values feed the aggregates.
	tbl, err := table.Build(
		[]string{"v", "pad"},
		[][]table.Cell{{"2", "x"}, {"", "x"}, {"4", "x"}},
	)
	require.NoError(t, err)

	rec := Summarize(tbl)["v"]
	require.NotNil(t, rec.Numeric)
	assert.Equal(t, 3.0, rec.Numeric.Mean)
	assert.Equal(t, 2, rec.Numeric.Count)
}

func TestSummarizeEmptyNumericColumnSkipped(t *testing.T) {
	tbl, err := table.Build(
		[]string{"n", "s"},
		[][]table.Cell{{"1", "a"}, {"2", "b"}},
	)
	require.NoError(t, err)

	// Filter away every row: the numeric column now has zero non-null
	// values and must be skipped with a note, not fail the call.
	empty := tbl.Filter(func(table.Row) (bool, error) { return false, nil })
	records := Summarize(empty)

	rec, ok := records["n"]
	require.True(t, ok)
	assert.Nil(t, rec.Numeric)
	assert.NotEmpty(t, rec.Note)
}

func TestSummarizeText(t *testing.T) {
	tbl, err := table.Build(
		[]string{"s"},
		[][]table.Cell{{"x"}, {"y,z"}, {"x"}},
	)
	require.NoError(t, err)

	rec := Summarize(tbl)["s"]
	require.NotNil(t, rec.Text)
	assert.Equal(t, 2, rec.Text.UniqueCount)
	assert.Equal(t, 0, rec.Text.NullCount)
	assert.Equal(t, 3, rec.Text.TotalCount)
}

func TestSummarizeTextCaseSensitive(t *testing.T) {
	tbl, err := table.Build(
		[]string{"s"},
		[][]table.Cell{{"X"}, {"x"}},
	)
	require.NoError(t, err)

	rec := Summarize(tbl)["s"]
	require.NotNil(t, rec.Text)
	assert.Equal(t, 2, rec.Text.UniqueCount)
}

func TestSummarizeTextCountsNulls(t *testing.T) {
	tbl, err := table.Build(
		[]string{"s", "pad"},
		[][]table.Cell{{"x", "1"}, {"", "2"}, {"y", "3"}},
	)
	require.NoError(t, err)

	rec := Summarize(tbl)["s"]
	require.NotNil(t, rec.Text)
	assert.Equal(t, 2, rec.Text.UniqueCount)
	assert.Equal(t, 1, rec.Text.NullCount)
	assert.Equal(t, 3, rec.Text.TotalCount)
}

func TestSummarizeTemporalUsesTextShape(t *testing.T) {
	tbl, err := table.Build(
		[]string{"d"},
		[][]table.Cell{{"2024-01-01"}, {"2024-01-01"}, {"2024-06-30"}},
	)
	require.NoError(t, err)

	rec := Summarize(tbl)["d"]
	assert.Equal(t, "temporal", rec.Kind)
	require.NotNil(t, rec.Text)
	assert.Nil(t, rec.Numeric)
	assert.Equal(t, 2, rec.Text.UniqueCount)
	assert.Equal(t, 3, rec.Text.TotalCount)
}

func TestSummarizeDeterministic(t *testing.T) {
	tbl, err := table.Build(
		[]string{"n", "s"},
		[][]table.Cell{{"1", "a"}, {"2", "b"}},
	)
	require.NoError(t, err)

	first := Summarize(tbl)
	second := Summarize(tbl)
	assert.Equal(t, first, second)
}
