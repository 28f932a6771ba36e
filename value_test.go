package reshape_test

import (
	"math"
	"testing"
	"time"

	"github.com/go-sif/reshape"
	errors "github.com/go-sif/reshape/errors"
	"github.com/stretchr/testify/require"
)

func TestCoerceScalars(t *testing.T) {
	v, err := reshape.CoerceValue(&reshape.Int64ColumnType{}, 5)
	require.Nil(t, err)
	require.Equal(t, int64(5), v)

	v, err = reshape.CoerceValue(&reshape.Int32ColumnType{}, 2.0)
	require.Nil(t, err)
	require.Equal(t, int32(2), v)

	_, err = reshape.CoerceValue(&reshape.Int32ColumnType{}, int64(math.MaxInt32)+1)
	require.IsType(t, errors.TypeMismatchError{}, err)
	_, err = reshape.CoerceValue(&reshape.Int64ColumnType{}, 2.5)
	require.IsType(t, errors.TypeMismatchError{}, err)

	v, err = reshape.CoerceValue(&reshape.Float64ColumnType{}, 3)
	require.Nil(t, err)
	require.Equal(t, float64(3), v)

	v, err = reshape.CoerceValue(&reshape.VarBytesColumnType{}, "ab")
	require.Nil(t, err)
	require.Equal(t, []byte("ab"), v)

	v, err = reshape.CoerceValue(&reshape.TimeColumnType{}, "2020-01-02T03:04:05Z")
	require.Nil(t, err)
	require.True(t, time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC).Equal(v.(time.Time)))

	v, err = reshape.CoerceValue(&reshape.BoolColumnType{}, nil)
	require.Nil(t, err)
	require.Nil(t, v)
	_, err = reshape.CoerceValue(&reshape.BoolColumnType{}, "true")
	require.IsType(t, errors.TypeMismatchError{}, err)
}

func TestCoerceNested(t *testing.T) {
	colType := reshape.StructOf(
		reshape.StructField{Name: "a", Type: &reshape.Int64ColumnType{}},
		reshape.StructField{Name: "tags", Type: reshape.ListOf(&reshape.VarStringColumnType{})},
	)
	v, err := reshape.CoerceValue(colType, map[string]any{"a": 1, "tags": []string{"x", "y"}})
	require.Nil(t, err)
	require.Equal(t, reshape.StructValue{int64(1), []any{"x", "y"}}, v)

	v, err = reshape.CoerceValue(colType, map[string]any{})
	require.Nil(t, err)
	require.Equal(t, reshape.StructValue{nil, nil}, v)

	v, err = reshape.CoerceValue(colType, reshape.StructValue{int32(4), nil})
	require.Nil(t, err)
	require.Equal(t, reshape.StructValue{int64(4), nil}, v)

	_, err = reshape.CoerceValue(colType, map[string]any{"b": 1})
	require.IsType(t, errors.NoSuchFieldError{}, err)
	_, err = reshape.CoerceValue(colType, reshape.StructValue{int64(1)})
	require.IsType(t, errors.TypeMismatchError{}, err)
	_, err = reshape.CoerceValue(colType, map[string]any{"tags": []any{1}})
	require.NotNil(t, err)
	_, err = reshape.CoerceValue(reshape.ListOf(&reshape.Int32ColumnType{}), []byte("ab"))
	require.IsType(t, errors.TypeMismatchError{}, err)
}

func TestInferColumnType(t *testing.T) {
	colType, err := reshape.InferColumnType(int32(1))
	require.Nil(t, err)
	require.IsType(t, &reshape.Int32ColumnType{}, colType)

	colType, err = reshape.InferColumnType(1)
	require.Nil(t, err)
	require.IsType(t, &reshape.Int64ColumnType{}, colType)

	colType, err = reshape.InferColumnType([]any{nil, "a"})
	require.Nil(t, err)
	require.Equal(t, "list<string>", colType.TypeName())

	_, err = reshape.InferColumnType([]any{nil})
	require.NotNil(t, err)
	_, err = reshape.InferColumnType(nil)
	require.NotNil(t, err)
}

func TestColumnTypesEqual(t *testing.T) {
	a := reshape.StructOf(reshape.StructField{Name: "x", Type: reshape.ListOf(&reshape.Int64ColumnType{})})
	b := reshape.StructOf(reshape.StructField{Name: "x", Type: reshape.ListOf(&reshape.Int64ColumnType{})})
	c := reshape.StructOf(reshape.StructField{Name: "y", Type: reshape.ListOf(&reshape.Int64ColumnType{})})
	d := reshape.StructOf(reshape.StructField{Name: "x", Type: reshape.ListOf(&reshape.Int32ColumnType{})})
	require.True(t, reshape.ColumnTypesEqual(a, b))
	require.False(t, reshape.ColumnTypesEqual(a, c))
	require.False(t, reshape.ColumnTypesEqual(a, d))
	require.False(t, reshape.ColumnTypesEqual(&reshape.Int64ColumnType{}, &reshape.Int32ColumnType{}))
}

func TestValueToString(t *testing.T) {
	colType := reshape.StructOf(
		reshape.StructField{Name: "a", Type: &reshape.Int64ColumnType{}},
		reshape.StructField{Name: "tags", Type: reshape.ListOf(&reshape.VarStringColumnType{})},
	)
	require.Equal(t, `{"a": 1, "tags": ["x", nil]}`, colType.ToString(reshape.StructValue{int64(1), []any{"x", nil}}))
}
