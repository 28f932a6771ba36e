package partition

import (
	"fmt"
	"testing"

	"github.com/go-sif/reshape"
	errors "github.com/go-sif/reshape/errors"
	"github.com/go-sif/reshape/schema"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
)

func createPartitionTestSchema() reshape.Schema {
	schema := schema.CreateSchema()
	schema.CreateColumn("col1", &reshape.Int32ColumnType{})
	return schema
}

func TestCreatePartition(t *testing.T) {
	schema := createPartitionTestSchema()
	part := CreatePartition(4, schema)
	require.Equal(t, part.GetMaxRows(), 4)
	require.Equal(t, part.GetNumRows(), 0)
	require.NotEmpty(t, part.ID())
	require.Nil(t, part.CanInsertRow())
}

func TestAppendRowValues(t *testing.T) {
	schema := createPartitionTestSchema()
	part := CreatePartition(2, schema)
	require.Nil(t, part.AppendRowValues([]any{int32(1)}))
	require.Nil(t, part.AppendRowValues([]any{int32(2)}))
	require.Equal(t, part.GetNumRows(), 2)
	val, err := part.GetRow(1).GetInt32("col1")
	require.Nil(t, err)
	require.Equal(t, int32(2), val)
	require.IsType(t, errors.PartitionFullError{}, part.AppendRowValues([]any{int32(3)}))

	other := CreatePartition(2, schema)
	require.IsType(t, errors.IncompatibleRowError{}, other.AppendRowValues([]any{int32(3), int32(4)}))
}

func TestSplit(t *testing.T) {
	schema := createPartitionTestSchema()
	rows := make([][]any, 7)
	for i := range rows {
		rows[i] = []any{int32(i)}
	}
	parts, err := Split(3, schema, rows)
	require.Nil(t, err)
	require.Len(t, parts, 3)
	require.Equal(t, 1, parts[2].GetNumRows())
	require.Equal(t, []any{int32(6)}, parts[2].GetRowValues(0))

	parts, err = Split(3, schema, nil)
	require.Nil(t, err)
	require.Len(t, parts, 1)
	require.Equal(t, 0, parts[0].GetNumRows())
}

func TestMapRowsAggregatesErrors(t *testing.T) {
	schema := createPartitionTestSchema()
	part := CreatePartition(4, schema)
	for i := 0; i < 4; i++ {
		require.Nil(t, part.AppendRowValues([]any{int32(i)}))
	}
	doubled, err := part.MapRows(func(values []any) ([]any, error) {
		return []any{values[0].(int32) * 2}, nil
	}, schema)
	require.Nil(t, err)
	require.Equal(t, []any{int32(6)}, doubled.GetRowValues(3))

	_, err = part.MapRows(func(values []any) ([]any, error) {
		if values[0].(int32)%2 == 1 {
			return nil, fmt.Errorf("odd value %d", values[0])
		}
		return values, nil
	}, schema)
	require.NotNil(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	require.Len(t, merr.Errors, 2)
}

func TestFlatMapRowsSpillsIntoNewPartitions(t *testing.T) {
	schema := createPartitionTestSchema()
	part := CreatePartition(2, schema)
	require.Nil(t, part.AppendRowValues([]any{int32(1)}))
	require.Nil(t, part.AppendRowValues([]any{int32(2)}))
	parts, err := part.FlatMapRows(func(values []any) ([][]any, error) {
		return [][]any{values, values}, nil
	}, schema)
	require.Nil(t, err)
	require.Len(t, parts, 2)
	require.Equal(t, []any{int32(2)}, parts[1].GetRowValues(0))
}
