package arrowframe

import (
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/go-sif/reshape"
	errors "github.com/go-sif/reshape/errors"
	"github.com/go-sif/reshape/schema"
)

// ToArrowType translates a reshape ColumnType into an Arrow DataType
func ToArrowType(colType reshape.ColumnType) (arrow.DataType, error) {
	switch t := colType.(type) {
	case *reshape.BoolColumnType:
		return arrow.FixedWidthTypes.Boolean, nil
	case *reshape.Int32ColumnType:
		return arrow.PrimitiveTypes.Int32, nil
	case *reshape.Int64ColumnType:
		return arrow.PrimitiveTypes.Int64, nil
	case *reshape.Float32ColumnType:
		return arrow.PrimitiveTypes.Float32, nil
	case *reshape.Float64ColumnType:
		return arrow.PrimitiveTypes.Float64, nil
	case *reshape.VarStringColumnType:
		return arrow.BinaryTypes.String, nil
	case *reshape.VarBytesColumnType:
		return arrow.BinaryTypes.Binary, nil
	case *reshape.TimeColumnType:
		return arrow.FixedWidthTypes.Timestamp_ns, nil
	case *reshape.StructColumnType:
		fields := make([]arrow.Field, len(t.Fields))
		for i, f := range t.Fields {
			dt, err := ToArrowType(f.Type)
			if err != nil {
				return nil, err
			}
			fields[i] = arrow.Field{Name: f.Name, Type: dt, Nullable: true}
		}
		return arrow.StructOf(fields...), nil
	case *reshape.ListColumnType:
		dt, err := ToArrowType(t.Elem)
		if err != nil {
			return nil, err
		}
		return arrow.ListOf(dt), nil
	default:
		return nil, fmt.Errorf("column type %s has no Arrow equivalent", colType.TypeName())
	}
}

// FromArrowType translates an Arrow DataType into a reshape ColumnType
func FromArrowType(dt arrow.DataType) (reshape.ColumnType, error) {
	switch t := dt.(type) {
	case *arrow.BooleanType:
		return &reshape.BoolColumnType{}, nil
	case *arrow.Int32Type:
		return &reshape.Int32ColumnType{}, nil
	case *arrow.Int64Type:
		return &reshape.Int64ColumnType{}, nil
	case *arrow.Float32Type:
		return &reshape.Float32ColumnType{}, nil
	case *arrow.Float64Type:
		return &reshape.Float64ColumnType{}, nil
	case *arrow.StringType:
		return &reshape.VarStringColumnType{}, nil
	case *arrow.BinaryType:
		return &reshape.VarBytesColumnType{}, nil
	case *arrow.TimestampType:
		return &reshape.TimeColumnType{}, nil
	case *arrow.StructType:
		fields := make([]reshape.StructField, t.NumFields())
		for i, f := range t.Fields() {
			ft, err := FromArrowType(f.Type)
			if err != nil {
				return nil, err
			}
			fields[i] = reshape.StructField{Name: f.Name, Type: ft}
		}
		return reshape.StructOf(fields...), nil
	case *arrow.ListType:
		elem, err := FromArrowType(t.Elem())
		if err != nil {
			return nil, err
		}
		return reshape.ListOf(elem), nil
	default:
		return nil, errors.TypeMismatchError{Expected: "a supported Arrow type", Actual: dt.String()}
	}
}

// ToArrowSchema translates a reshape Schema into an Arrow Schema
func ToArrowSchema(s reshape.Schema) (*arrow.Schema, error) {
	fields := make([]arrow.Field, 0, s.NumColumns())
	err := s.ForEachColumn(func(name string, col reshape.Column) error {
		dt, err := ToArrowType(col.Type())
		if err != nil {
			return fmt.Errorf("column %s: %w", name, err)
		}
		fields = append(fields, arrow.Field{Name: name, Type: dt, Nullable: true})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return arrow.NewSchema(fields, nil), nil
}

// FromArrowSchema translates an Arrow Schema into a reshape Schema
func FromArrowSchema(s *arrow.Schema) (reshape.Schema, error) {
	res := schema.CreateSchema()
	for _, f := range s.Fields() {
		colType, err := FromArrowType(f.Type)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", f.Name, err)
		}
		if _, err := res.CreateColumn(f.Name, colType); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// valueAt reads the value at position i of an Arrow array, in reshape's
// value representation
func valueAt(arr arrow.Array, i int) any {
	if arr.IsNull(i) {
		return nil
	}
	switch a := arr.(type) {
	case *array.Boolean:
		return a.Value(i)
	case *array.Int32:
		return a.Value(i)
	case *array.Int64:
		return a.Value(i)
	case *array.Float32:
		return a.Value(i)
	case *array.Float64:
		return a.Value(i)
	case *array.String:
		return a.Value(i)
	case *array.Binary:
		v := a.Value(i)
		res := make([]byte, len(v))
		copy(res, v)
		return res
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return a.Value(i).ToTime(unit)
	case *array.Struct:
		res := make(reshape.StructValue, a.NumField())
		for f := range res {
			res[f] = valueAt(a.Field(f), i)
		}
		return res
	case *array.List:
		start, end := a.ValueOffsets(i)
		values := a.ListValues()
		res := make([]any, 0, end-start)
		for j := start; j < end; j++ {
			res = append(res, valueAt(values, int(j)))
		}
		return res
	default:
		panic(fmt.Sprintf("unsupported Arrow array %T", arr))
	}
}

// appendValue appends a reshape value to an Arrow builder
func appendValue(b array.Builder, v any) error {
	if v == nil {
		appendNull(b)
		return nil
	}
	mismatch := errors.TypeMismatchError{Expected: b.Type().String(), Actual: fmt.Sprintf("%T", v)}
	switch tb := b.(type) {
	case *array.BooleanBuilder:
		bv, ok := v.(bool)
		if !ok {
			return mismatch
		}
		tb.Append(bv)
	case *array.Int32Builder:
		iv, ok := v.(int32)
		if !ok {
			return mismatch
		}
		tb.Append(iv)
	case *array.Int64Builder:
		iv, ok := v.(int64)
		if !ok {
			return mismatch
		}
		tb.Append(iv)
	case *array.Float32Builder:
		fv, ok := v.(float32)
		if !ok {
			return mismatch
		}
		tb.Append(fv)
	case *array.Float64Builder:
		fv, ok := v.(float64)
		if !ok {
			return mismatch
		}
		tb.Append(fv)
	case *array.StringBuilder:
		sv, ok := v.(string)
		if !ok {
			return mismatch
		}
		tb.Append(sv)
	case *array.BinaryBuilder:
		bv, ok := v.([]byte)
		if !ok {
			return mismatch
		}
		tb.Append(bv)
	case *array.TimestampBuilder:
		tv, ok := v.(time.Time)
		if !ok {
			return mismatch
		}
		tb.Append(arrow.Timestamp(tv.UnixNano()))
	case *array.StructBuilder:
		sv, ok := v.(reshape.StructValue)
		if !ok || len(sv) != tb.NumField() {
			return mismatch
		}
		tb.Append(true)
		for f, fv := range sv {
			if err := appendValue(tb.FieldBuilder(f), fv); err != nil {
				return err
			}
		}
	case *array.ListBuilder:
		lv, ok := v.([]any)
		if !ok {
			return mismatch
		}
		tb.Append(true)
		for _, e := range lv {
			if err := appendValue(tb.ValueBuilder(), e); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unsupported Arrow builder %T", b)
	}
	return nil
}

func appendNull(b array.Builder) {
	// struct builders append nulls to their children themselves
	b.AppendNull()
}
