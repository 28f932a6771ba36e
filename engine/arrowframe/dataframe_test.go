package arrowframe

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/go-sif/reshape"
	errors "github.com/go-sif/reshape/errors"
	"github.com/go-sif/reshape/schema"
	"github.com/stretchr/testify/require"
)

func release(frames ...reshape.Frame) {
	for _, f := range frames {
		if df, ok := f.(*DataFrame); ok {
			df.Release()
		}
	}
}

func collectValues(t *testing.T, f reshape.Frame) [][]any {
	rows, err := f.Collect()
	require.Nil(t, err)
	res := make([][]any, len(rows))
	for i, r := range rows {
		res[i] = r.Values()
	}
	return res
}

func nestedSchema(t *testing.T) reshape.Schema {
	s, err := schema.CreateSchemaFromColumns(
		[]string{"id", "data", "tags"},
		[]reshape.ColumnType{
			&reshape.Int64ColumnType{},
			reshape.StructOf(reshape.StructField{Name: "nested", Type: reshape.StructOf(
				reshape.StructField{Name: "field1", Type: &reshape.Int64ColumnType{}},
				reshape.StructField{Name: "field2", Type: &reshape.VarStringColumnType{}},
			)}),
			reshape.ListOf(&reshape.VarStringColumnType{}),
		},
	)
	require.Nil(t, err)
	return s
}

func TestRoundTripNestedValues(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)
	df, err := CreateDataFrame(nestedSchema(t), [][]any{
		{1, map[string]any{"nested": map[string]any{"field1": 10, "field2": "a"}}, []any{"x", nil}},
		{2, nil, nil},
		{3, map[string]any{"nested": nil}, []any{}},
	}, mem)
	require.Nil(t, err)
	defer df.Release()
	require.Equal(t, [][]any{
		{int64(1), reshape.StructValue{reshape.StructValue{int64(10), "a"}}, []any{"x", nil}},
		{int64(2), nil, nil},
		{int64(3), reshape.StructValue{nil}, []any{}},
	}, collectValues(t, df))

	structCol, ok := df.Record().Column(1).(*array.Struct)
	require.True(t, ok)
	require.Equal(t, 1, structCol.NumField())
	require.True(t, structCol.IsNull(1))
}

func TestSchemaTranslation(t *testing.T) {
	s := nestedSchema(t)
	arrowSchema, err := ToArrowSchema(s)
	require.Nil(t, err)
	require.Equal(t, arrow.PrimitiveTypes.Int64, arrowSchema.Field(0).Type)
	back, err := FromArrowSchema(arrowSchema)
	require.Nil(t, err)
	require.Nil(t, s.Equals(back))

	_, err = FromArrowType(arrow.PrimitiveTypes.Uint8)
	require.IsType(t, errors.TypeMismatchError{}, err)
}

func TestFromRecord(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)
	arrowSchema := arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64},
		{Name: "name", Type: arrow.BinaryTypes.String, Nullable: true},
	}, nil)
	idBuilder := array.NewInt64Builder(mem)
	defer idBuilder.Release()
	idBuilder.AppendValues([]int64{1, 2}, nil)
	ids := idBuilder.NewArray()
	defer ids.Release()
	nameBuilder := array.NewStringBuilder(mem)
	defer nameBuilder.Release()
	nameBuilder.Append("a")
	nameBuilder.AppendNull()
	names := nameBuilder.NewArray()
	defer names.Release()
	rec := array.NewRecord(arrowSchema, []arrow.Array{ids, names}, 2)
	defer rec.Release()

	df, err := FromRecord(rec, mem)
	require.Nil(t, err)
	defer df.Release()
	require.Equal(t, [][]any{{int64(1), "a"}, {int64(2), nil}}, collectValues(t, df))
}

func TestProjectionSharesColumns(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)
	df, err := CreateDataFrame(nestedSchema(t), [][]any{
		{1, map[string]any{"nested": map[string]any{"field1": 10, "field2": "a"}}, nil},
	}, mem)
	require.Nil(t, err)
	defer df.Release()

	renamed, err := df.Rename("id", "key")
	require.Nil(t, err)
	defer release(renamed)
	require.Same(t, df.Record().Column(0), renamed.(*DataFrame).Record().Column(0))

	selected, err := df.Select(reshape.Col("id"), reshape.Col("data").Field("nested").Field("field2"))
	require.Nil(t, err)
	defer release(selected)
	require.Equal(t, []string{"id", "field2"}, selected.Schema().ColumnNames())
	require.Equal(t, [][]any{{int64(1), "a"}}, collectValues(t, selected))

	dropped, err := df.Drop("data", "tags")
	require.Nil(t, err)
	defer release(dropped)
	require.Equal(t, []string{"id"}, dropped.Schema().ColumnNames())
}

func TestExplodeFillLimit(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)
	s, err := schema.CreateSchemaFromColumns(
		[]string{"A", "B", "C"},
		[]reshape.ColumnType{
			&reshape.Int64ColumnType{},
			reshape.ListOf(&reshape.Int64ColumnType{}),
			reshape.ListOf(&reshape.Int64ColumnType{}),
		},
	)
	require.Nil(t, err)
	df, err := CreateDataFrame(s, [][]any{
		{1, []any{4, 5}, []any{7, nil}},
		{2, []any{6, 7}, []any{9, 10}},
	}, mem)
	require.Nil(t, err)
	defer df.Release()
	exploded, err := df.Explode("B", "C")
	require.Nil(t, err)
	defer release(exploded)
	filled, err := exploded.FillNull(map[string]any{"C": 0})
	require.Nil(t, err)
	defer release(filled)
	require.Equal(t, [][]any{
		{int64(1), int64(4), int64(7)},
		{int64(1), int64(5), int64(0)},
		{int64(2), int64(6), int64(9)},
		{int64(2), int64(7), int64(10)},
	}, collectValues(t, filled))
	limited, err := filled.Limit(3)
	require.Nil(t, err)
	defer release(limited)
	n, err := limited.NumRows()
	require.Nil(t, err)
	require.Equal(t, 3, n)
}

func TestOuterJoin(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)
	left, err := schema.CreateSchemaFromColumns(
		[]string{"id", "l"},
		[]reshape.ColumnType{&reshape.Int64ColumnType{}, &reshape.VarStringColumnType{}},
	)
	require.Nil(t, err)
	right, err := schema.CreateSchemaFromColumns(
		[]string{"id", "r"},
		[]reshape.ColumnType{&reshape.Int64ColumnType{}, &reshape.VarStringColumnType{}},
	)
	require.Nil(t, err)
	ldf, err := CreateDataFrame(left, [][]any{{1, "a"}, {2, "b"}}, mem)
	require.Nil(t, err)
	defer ldf.Release()
	rdf, err := CreateDataFrame(right, [][]any{{2, "x"}, {3, "y"}}, mem)
	require.Nil(t, err)
	defer rdf.Release()
	joined, err := ldf.Join(rdf, []string{"id"}, reshape.OuterJoin)
	require.Nil(t, err)
	defer release(joined)
	require.Equal(t, [][]any{
		{int64(1), "a", nil},
		{int64(2), "b", "x"},
		{int64(3), nil, "y"},
	}, collectValues(t, joined))
}
