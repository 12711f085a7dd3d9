package table

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Isakrulander/sheetgrid/pkg/sgerrors"
)

func buildTestTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := Build(
		[]string{"n", "s"},
		[][]Cell{
			{"3", "c"},
			{"1", "a"},
			{"", "b"},
			{"2", "d"},
		},
	)
	require.NoError(t, err)
	return tbl
}

func TestFilterIdentity(t *testing.T) {
	tbl := buildTestTable(t)
	out := tbl.Filter(func(Row) (bool, error) { return true, nil })

	assert.Equal(t, tbl.RowCount(), out.RowCount())
	assert.Equal(t, tbl.Headers(), out.Headers())
	for i := 0; i < tbl.RowCount(); i++ {
		for _, name := range tbl.Headers() {
			want, err := tbl.Get(i, name)
			require.NoError(t, err)
			got, err := out.Get(i, name)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	}
}

func TestFilterByPredicate(t *testing.T) {
	tbl := buildTestTable(t)
	out := tbl.Filter(func(r Row) (bool, error) {
		v, err := r.Value("n")
		if err != nil {
			return false, err
		}
		f, ok := v.(float64)
		return ok && f >= 2, nil
	})

	require.Equal(t, 2, out.RowCount())
	// Relative order preserved.
	first, _ := out.Get(0, "n")
	second, _ := out.Get(1, "n")
	assert.Equal(t, 3.0, first)
	assert.Equal(t, 2.0, second)
}

func TestFilterPredicateErrorExcludesRow(t *testing.T) {
	tbl := buildTestTable(t)
	out := tbl.Filter(func(r Row) (bool, error) {
		if r.Index() == 1 {
			return true, errors.New("boom")
		}
		return true, nil
	})
	assert.Equal(t, tbl.RowCount()-1, out.RowCount())
}

func TestRowMap(t *testing.T) {
	tbl := buildTestTable(t)
	var got map[string]interface{}
	tbl.Filter(func(r Row) (bool, error) {
		if r.Index() == 2 {
			got = r.Map()
		}
		return false, nil
	})
	require.NotNil(t, got)
	assert.Nil(t, got["n"])
	assert.Equal(t, "b", got["s"])
}

func TestSortAscendingNullsFirst(t *testing.T) {
	tbl := buildTestTable(t)
	out, err := tbl.Sort("n", true)
	require.NoError(t, err)

	values, err := out.Column("n")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{nil, 1.0, 2.0, 3.0}, values)
}

func TestSortDescendingNullsLast(t *testing.T) {
	tbl := buildTestTable(t)
	out, err := tbl.Sort("n", false)
	require.NoError(t, err)

	values, err := out.Column("n")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{3.0, 2.0, 1.0, nil}, values)
}

func TestSortRoundTripPreservesRows(t *testing.T) {
	tbl := buildTestTable(t)
	asc, err := tbl.Sort("n", true)
	require.NoError(t, err)
	desc, err := asc.Sort("n", false)
	require.NoError(t, err)

	want, err := tbl.Column("s")
	require.NoError(t, err)
	got, err := desc.Column("s")
	require.NoError(t, err)
	assert.ElementsMatch(t, want, got)
}

func TestSortTextColumnUsesStringComparison(t *testing.T) {
	// Mixed column resolves to text; "10" sorts before "9" ordinally.
	tbl, err := Build([]string{"m"}, [][]Cell{{"9"}, {"10"}, {"x"}})
	require.NoError(t, err)

	out, err := tbl.Sort("m", true)
	require.NoError(t, err)

	values, err := out.Column("m")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"10", "9", "x"}, values)
}

func TestSortIsStable(t *testing.T) {
	tbl, err := Build(
		[]string{"k", "v"},
		[][]Cell{
			{"1", "first"},
			{"1", "second"},
			{"1", "third"},
		},
	)
	require.NoError(t, err)

	out, err := tbl.Sort("k", true)
	require.NoError(t, err)

	values, err := out.Column("v")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"first", "second", "third"}, values)
}

func TestSortUnknownColumn(t *testing.T) {
	tbl := buildTestTable(t)
	_, err := tbl.Sort("missing", true)
	require.Error(t, err)
	assert.True(t, sgerrors.IsType(err, sgerrors.ErrorTypeColumnNotFound))
}

func TestSortDoesNotMutateSource(t *testing.T) {
	tbl := buildTestTable(t)
	before, err := tbl.Column("n")
	require.NoError(t, err)

	_, err = tbl.Sort("n", true)
	require.NoError(t, err)

	after, err := tbl.Column("n")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
