package reshape

import (
	"fmt"
	"math"
	"reflect"
	"time"

	errors "github.com/go-sif/reshape/errors"
)

// StructValue is the value of a StructColumnType: one entry per struct field, in
// field declaration order. A nil entry is a null field.
type StructValue []any

// ColumnTypesEqual returns true iff two ColumnTypes describe the same data. Nested
// types are compared recursively, including struct field names and order.
func ColumnTypesEqual(a ColumnType, b ColumnType) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	switch at := a.(type) {
	case *StructColumnType:
		bt := b.(*StructColumnType)
		if len(at.Fields) != len(bt.Fields) {
			return false
		}
		for i := range at.Fields {
			if at.Fields[i].Name != bt.Fields[i].Name || !ColumnTypesEqual(at.Fields[i].Type, bt.Fields[i].Type) {
				return false
			}
		}
		return true
	case *ListColumnType:
		return ColumnTypesEqual(at.Elem, b.(*ListColumnType).Elem)
	default:
		return true
	}
}

// InferColumnType determines the ColumnType of a plain Go value
func InferColumnType(v any) (ColumnType, error) {
	switch tv := v.(type) {
	case bool:
		return &BoolColumnType{}, nil
	case int8, int16, int32, uint8, uint16:
		return &Int32ColumnType{}, nil
	case int, int64, uint32:
		return &Int64ColumnType{}, nil
	case float32:
		return &Float32ColumnType{}, nil
	case float64:
		return &Float64ColumnType{}, nil
	case string:
		return &VarStringColumnType{}, nil
	case []byte:
		return &VarBytesColumnType{}, nil
	case time.Time:
		return &TimeColumnType{}, nil
	case []any:
		for _, e := range tv {
			if e != nil {
				elemType, err := InferColumnType(e)
				if err != nil {
					return nil, err
				}
				return &ListColumnType{Elem: elemType}, nil
			}
		}
		return nil, fmt.Errorf("cannot infer the element type of a list without non-nil elements")
	default:
		return nil, fmt.Errorf("cannot infer a column type for value %#v of type %T", v, v)
	}
}

// CoerceValue converts v into the canonical representation of colType, so that
// plain Go values (e.g. an int for an int64 column, or a map for a struct) can be
// stored in a Row. nil is always preserved.
func CoerceValue(colType ColumnType, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	mismatch := errors.TypeMismatchError{Expected: colType.TypeName(), Actual: fmt.Sprintf("%T", v)}
	switch t := colType.(type) {
	case *BoolColumnType:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case *Int32ColumnType:
		if i, ok := toInt64(v); ok && i >= math.MinInt32 && i <= math.MaxInt32 {
			return int32(i), nil
		}
	case *Int64ColumnType:
		if i, ok := toInt64(v); ok {
			return i, nil
		}
	case *Float32ColumnType:
		if f, ok := toFloat64(v); ok {
			return float32(f), nil
		}
	case *Float64ColumnType:
		if f, ok := toFloat64(v); ok {
			return f, nil
		}
	case *VarStringColumnType:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case *VarBytesColumnType:
		switch bv := v.(type) {
		case []byte:
			return bv, nil
		case string:
			return []byte(bv), nil
		}
	case *TimeColumnType:
		switch tv := v.(type) {
		case time.Time:
			return tv, nil
		case string:
			parsed, err := time.Parse(t.TimeFormat(), tv)
			if err != nil {
				return nil, fmt.Errorf("could not parse %q as datetime with format %s: %w", tv, t.TimeFormat(), err)
			}
			return parsed, nil
		}
	case *StructColumnType:
		return coerceStruct(t, v, mismatch)
	case *ListColumnType:
		return coerceList(t, v, mismatch)
	default:
		return nil, fmt.Errorf("unsupported column type %T", colType)
	}
	return nil, mismatch
}

func coerceStruct(t *StructColumnType, v any, mismatch error) (any, error) {
	res := make(StructValue, len(t.Fields))
	switch sv := v.(type) {
	case StructValue:
		if len(sv) != len(t.Fields) {
			return nil, mismatch
		}
		for i, f := range t.Fields {
			cv, err := CoerceValue(f.Type, sv[i])
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Name, err)
			}
			res[i] = cv
		}
	case map[string]any:
		for k := range sv {
			if t.FieldIndex(k) < 0 {
				return nil, errors.NoSuchFieldError{Path: t.TypeName(), Field: k}
			}
		}
		for i, f := range t.Fields {
			cv, err := CoerceValue(f.Type, sv[f.Name])
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Name, err)
			}
			res[i] = cv
		}
	default:
		return nil, mismatch
	}
	return res, nil
}

func coerceList(t *ListColumnType, v any, mismatch error) (any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, mismatch
	}
	if _, isBytes := v.([]byte); isBytes {
		return nil, mismatch
	}
	res := make([]any, rv.Len())
	for i := range res {
		cv, err := CoerceValue(t.Elem, rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		res[i] = cv
	}
	return res, nil
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float32:
		if float32(int64(n)) == n {
			return int64(n), true
		}
	case float64:
		if float64(int64(n)) == n {
			return int64(n), true
		}
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	if i, ok := toInt64(v); ok {
		return float64(i), true
	}
	return 0, false
}
