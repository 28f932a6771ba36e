package partition

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-sif/reshape"
	errors "github.com/go-sif/reshape/errors"
)

// rowImpl is a representation of a single row of data (a slice of a
// Partition), along with a reference to the Schema for that row. Values
// are stored in Schema column index order.
type rowImpl struct {
	partID string
	values []any
	schema reshape.Schema
}

// CreateRow builds a new row from its values, which must be in Schema index order
func CreateRow(partID string, values []any, schema reshape.Schema) reshape.Row {
	return &rowImpl{partID: partID, values: values, schema: schema}
}

// Schema returns a read-only copy of the schema for a row
func (r *rowImpl) Schema() reshape.Schema {
	return r.schema.Clone()
}

// Values returns the raw values of this row
func (r *rowImpl) Values() []any {
	return r.values
}

// ToString returns a string representation of this row
func (r *rowImpl) ToString() string {
	var res strings.Builder
	fmt.Fprint(&res, "{")
	r.schema.ForEachColumn(func(name string, col reshape.Column) error {
		var val string
		v := r.values[col.Index()]
		if v == nil {
			val = "nil"
		} else {
			val = col.Type().ToString(v)
		}
		fmt.Fprintf(&res, "\"%s\": %s,", name, val)
		return nil
	})
	fmt.Fprint(&res, "}")
	return res.String()
}

// IsNil returns true iff the given column value is nil in this row. If an error occurs, this function will return false.
func (r *rowImpl) IsNil(colName string) bool {
	col, err := r.schema.GetColumn(colName)
	if err != nil {
		return false
	}
	return r.values[col.Index()] == nil
}

// checkValue fetches a column value, failing if it is nil
func (r *rowImpl) checkValue(colName string) (any, error) {
	col, err := r.schema.GetColumn(colName)
	if err != nil {
		return nil, err
	}
	v := r.values[col.Index()]
	if v == nil {
		return nil, errors.NilValueError{Name: colName}
	}
	return v, nil
}

// Get returns the value of any column, if it exists. Nil values are returned without error.
func (r *rowImpl) Get(colName string) (col any, err error) {
	offset, err := r.schema.GetColumn(colName)
	if err != nil {
		return nil, err
	}
	return r.values[offset.Index()], nil
}

// GetBool retrieves a single bool from the column with the given name.
func (r *rowImpl) GetBool(colName string) (col bool, err error) {
	v, err := r.checkValue(colName)
	if err != nil {
		return
	}
	col, ok := v.(bool)
	if !ok {
		err = r.mismatch(colName, "bool", v)
	}
	return
}

// GetInt32 retrieves a single int32 from the column with the given name
func (r *rowImpl) GetInt32(colName string) (col int32, err error) {
	v, err := r.checkValue(colName)
	if err != nil {
		return
	}
	col, ok := v.(int32)
	if !ok {
		err = r.mismatch(colName, "int32", v)
	}
	return
}

// GetInt64 retrieves a single int64 from the column with the given name
func (r *rowImpl) GetInt64(colName string) (col int64, err error) {
	v, err := r.checkValue(colName)
	if err != nil {
		return
	}
	col, ok := v.(int64)
	if !ok {
		err = r.mismatch(colName, "int64", v)
	}
	return
}

// GetFloat32 retrieves a single float32 from the column with the given name
func (r *rowImpl) GetFloat32(colName string) (col float32, err error) {
	v, err := r.checkValue(colName)
	if err != nil {
		return
	}
	col, ok := v.(float32)
	if !ok {
		err = r.mismatch(colName, "float32", v)
	}
	return
}

// GetFloat64 retrieves a single float64 from the column with the given name
func (r *rowImpl) GetFloat64(colName string) (col float64, err error) {
	v, err := r.checkValue(colName)
	if err != nil {
		return
	}
	col, ok := v.(float64)
	if !ok {
		err = r.mismatch(colName, "float64", v)
	}
	return
}

// GetTime retrieves a single time.Time from the column with the given name
func (r *rowImpl) GetTime(colName string) (col time.Time, err error) {
	v, err := r.checkValue(colName)
	if err != nil {
		return
	}
	col, ok := v.(time.Time)
	if !ok {
		err = r.mismatch(colName, "time", v)
	}
	return
}

// GetVarString retrieves a single string from the column with the given name
func (r *rowImpl) GetVarString(colName string) (col string, err error) {
	v, err := r.checkValue(colName)
	if err != nil {
		return
	}
	col, ok := v.(string)
	if !ok {
		err = r.mismatch(colName, "string", v)
	}
	return
}

// GetVarBytes retrieves a variable-length byte array from the column with the given name
func (r *rowImpl) GetVarBytes(colName string) (col []byte, err error) {
	v, err := r.checkValue(colName)
	if err != nil {
		return
	}
	col, ok := v.([]byte)
	if !ok {
		err = r.mismatch(colName, "bytes", v)
	}
	return
}

// GetStruct retrieves the fields of a struct column
func (r *rowImpl) GetStruct(colName string) (col reshape.StructValue, err error) {
	v, err := r.checkValue(colName)
	if err != nil {
		return
	}
	col, ok := v.(reshape.StructValue)
	if !ok {
		err = r.mismatch(colName, "struct", v)
	}
	return
}

// GetList retrieves the elements of a list column
func (r *rowImpl) GetList(colName string) (col []any, err error) {
	v, err := r.checkValue(colName)
	if err != nil {
		return
	}
	col, ok := v.([]any)
	if !ok {
		err = r.mismatch(colName, "list", v)
	}
	return
}

// GetField follows a path of struct fields below a struct column. A nil
// struct anywhere along the path produces a nil result.
func (r *rowImpl) GetField(colName string, path ...string) (any, error) {
	col, err := r.schema.GetColumn(colName)
	if err != nil {
		return nil, err
	}
	colType := col.Type()
	v := r.values[col.Index()]
	walked := colName
	for _, fieldName := range path {
		st, ok := reshape.IsStruct(colType)
		if !ok {
			return nil, errors.TypeMismatchError{Name: walked, Expected: "struct", Actual: colType.TypeName()}
		}
		fi := st.FieldIndex(fieldName)
		if fi < 0 {
			return nil, errors.NoSuchFieldError{Path: walked, Field: fieldName}
		}
		if v != nil {
			v = v.(reshape.StructValue)[fi]
		}
		colType = st.Fields[fi].Type
		walked = walked + "." + fieldName
	}
	return v, nil
}

func (r *rowImpl) mismatch(colName string, expected string, v any) error {
	return errors.TypeMismatchError{Name: colName, Expected: expected, Actual: fmt.Sprintf("%T", v)}
}
