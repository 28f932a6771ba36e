package rowops

import (
	"testing"

	"github.com/go-sif/reshape"
	errors "github.com/go-sif/reshape/errors"
	"github.com/go-sif/reshape/schema"
	"github.com/stretchr/testify/require"
)

func createSchema(t *testing.T, names []string, types ...reshape.ColumnType) reshape.Schema {
	s, err := schema.CreateSchemaFromColumns(names, types)
	require.Nil(t, err)
	return s
}

func TestWithColumnsReplacesInPlace(t *testing.T) {
	s := createSchema(t, []string{"a", "b"}, &reshape.Int64ColumnType{}, &reshape.VarStringColumnType{})
	p, err := PlanWithColumns(s, reshape.Lit("x").Alias("c"), reshape.Col("b").Replace(map[any]any{"y": "z"}))
	require.Nil(t, err)
	require.Equal(t, []string{"a", "b", "c"}, p.Schema().ColumnNames())
	require.Equal(t, []int{0, -1, -1}, p.Sources())
	row, err := p.Apply([]any{int64(1), "y"})
	require.Nil(t, err)
	require.Equal(t, []any{int64(1), "z", "x"}, row)
}

func TestDropAndRename(t *testing.T) {
	s := createSchema(t, []string{"a", "b", "c"}, &reshape.Int64ColumnType{}, &reshape.Int64ColumnType{}, &reshape.Int64ColumnType{})
	p, err := PlanDrop(s, "b")
	require.Nil(t, err)
	require.Equal(t, []string{"a", "c"}, p.Schema().ColumnNames())
	require.Equal(t, []int{0, 2}, p.Sources())
	_, err = PlanDrop(s, "z")
	require.IsType(t, errors.NoSuchColumnError{}, err)

	p, err = PlanRename(s, "b", "z")
	require.Nil(t, err)
	require.Equal(t, []string{"a", "z", "c"}, p.Schema().ColumnNames())
	require.Equal(t, []int{0, 1, 2}, p.Sources())
	_, err = PlanRename(s, "b", "c")
	require.IsType(t, errors.ColumnCollisionError{}, err)
}

func TestExplodeZipsLists(t *testing.T) {
	s := createSchema(t, []string{"A", "B", "C"},
		&reshape.Int64ColumnType{},
		reshape.ListOf(&reshape.Int64ColumnType{}),
		reshape.ListOf(&reshape.Int64ColumnType{}),
	)
	e, err := PlanExplode(s, "B", "C")
	require.Nil(t, err)
	require.Equal(t, []string{"A", "B", "C"}, e.Schema().ColumnNames())
	require.IsType(t, &reshape.Int64ColumnType{}, e.Schema().ColumnTypes()[1])
	rows, err := e.Apply([]any{int64(1), []any{int64(4), int64(5)}, []any{int64(7), int64(8)}})
	require.Nil(t, err)
	require.Equal(t, [][]any{{int64(1), int64(4), int64(7)}, {int64(1), int64(5), int64(8)}}, rows)

	rows, err = e.Apply([]any{int64(1), nil, []any{}})
	require.Nil(t, err)
	require.Len(t, rows, 0)

	_, err = e.Apply([]any{int64(1), []any{int64(4)}, []any{int64(7), int64(8)}})
	require.IsType(t, errors.ExplodeLengthMismatchError{}, err)

	_, err = PlanExplode(s, "A")
	require.IsType(t, errors.TypeMismatchError{}, err)
}

func TestOuterJoin(t *testing.T) {
	left := createSchema(t, []string{"id", "l"}, &reshape.Int64ColumnType{}, &reshape.VarStringColumnType{})
	right := createSchema(t, []string{"r", "id"}, &reshape.VarStringColumnType{}, &reshape.Int64ColumnType{})
	j, err := PlanJoin(left, right, []string{"id"}, reshape.OuterJoin)
	require.Nil(t, err)
	require.Equal(t, []string{"id", "l", "r"}, j.Schema().ColumnNames())
	idx := j.BuildIndex([][]any{{"x", int64(1)}, {"y", int64(3)}, {"n", nil}})
	matched := make([]bool, idx.NumRows())
	onMatch := func(i int) { matched[i] = true }
	var rows [][]any
	rows = append(rows, j.Probe(idx, []any{int64(1), "a"}, onMatch)...)
	rows = append(rows, j.Probe(idx, []any{int64(2), "b"}, onMatch)...)
	rows = append(rows, j.Unmatched(idx, matched)...)
	require.Equal(t, [][]any{
		{int64(1), "a", "x"},
		{int64(2), "b", nil},
		{int64(3), nil, "y"},
		{nil, nil, "n"},
	}, rows)
}

func TestInnerJoinDropsNullKeys(t *testing.T) {
	left := createSchema(t, []string{"id", "l"}, &reshape.Int64ColumnType{}, &reshape.VarStringColumnType{})
	right := createSchema(t, []string{"id", "r"}, &reshape.Int64ColumnType{}, &reshape.VarStringColumnType{})
	j, err := PlanJoin(left, right, []string{"id"}, reshape.InnerJoin)
	require.Nil(t, err)
	idx := j.BuildIndex([][]any{{nil, "x"}})
	require.Len(t, j.Probe(idx, []any{nil, "a"}, func(int) {}), 0)
}

func TestJoinCollisionsAndTypes(t *testing.T) {
	left := createSchema(t, []string{"id", "v"}, &reshape.Int64ColumnType{}, &reshape.VarStringColumnType{})
	right := createSchema(t, []string{"id", "v"}, &reshape.Int64ColumnType{}, &reshape.VarStringColumnType{})
	_, err := PlanJoin(left, right, []string{"id"}, reshape.InnerJoin)
	require.IsType(t, errors.ColumnCollisionError{}, err)

	other := createSchema(t, []string{"id"}, &reshape.VarStringColumnType{})
	_, err = PlanJoin(left, other, []string{"id"}, reshape.InnerJoin)
	require.IsType(t, errors.TypeMismatchError{}, err)

	_, err = PlanJoin(left, other, nil, reshape.LeftJoin)
	require.NotNil(t, err)
}

func TestFillNull(t *testing.T) {
	s := createSchema(t, []string{"a", "b"}, &reshape.Int64ColumnType{}, &reshape.VarStringColumnType{})
	f, err := PlanFillNull(s, map[string]any{"a": 0})
	require.Nil(t, err)
	row, err := f.Apply([]any{nil, nil})
	require.Nil(t, err)
	require.Equal(t, []any{int64(0), nil}, row)
	row, err = f.Apply([]any{int64(5), "x"})
	require.Nil(t, err)
	require.Equal(t, []any{int64(5), "x"}, row)

	_, err = PlanFillNull(s, map[string]any{"b": 1})
	var mismatch errors.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
}
