package reshape

import (
	"fmt"
	"strings"
)

// VarStringColumnType is a column type which stores a variable-length string value
type VarStringColumnType struct{}

// TypeName returns the name of a VarStringColumnType
func (b *VarStringColumnType) TypeName() string {
	return "string"
}

// ToString produces a string representation of a value of a VarStringColumnType value
func (b *VarStringColumnType) ToString(v any) string {
	return fmt.Sprintf("\"%s\"", v.(string))
}

// VarBytesColumnType is a column type which stores variable-length byte arrays
type VarBytesColumnType struct{}

// TypeName returns the name of a VarBytesColumnType
func (b *VarBytesColumnType) TypeName() string {
	return "bytes"
}

// ToString produces a string representation of a value of a VarBytesColumnType value
func (b *VarBytesColumnType) ToString(v any) string {
	bytes := v.([]byte)
	var res strings.Builder
	fmt.Fprint(&res, "[")
	for i, v := range bytes {
		// don't print more than 5 entries
		if i > 5 {
			fmt.Fprintf(&res, "... %d more", len(bytes)-5)
			break
		}
		fmt.Fprintf(&res, "%x", v)
	}
	fmt.Fprint(&res, "]")
	return res.String()
}

// StructField is a named member of a StructColumnType
type StructField struct {
	Name string
	Type ColumnType
}

// StructColumnType is a column type which stores a record of named sub-fields.
// Values are StructValues, holding one entry per field in declaration order.
type StructColumnType struct {
	Fields []StructField
}

// StructOf is a convenience constructor for StructColumnTypes
func StructOf(fields ...StructField) *StructColumnType {
	return &StructColumnType{Fields: fields}
}

// FieldIndex returns the position of the named field, or -1 if it does not exist
func (b *StructColumnType) FieldIndex(name string) int {
	for i, f := range b.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// FieldNames returns the names of this struct's fields, in declaration order
func (b *StructColumnType) FieldNames() []string {
	names := make([]string, len(b.Fields))
	for i, f := range b.Fields {
		names[i] = f.Name
	}
	return names
}

// TypeName returns the name of a StructColumnType, including its fields
func (b *StructColumnType) TypeName() string {
	parts := make([]string, len(b.Fields))
	for i, f := range b.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, f.Type.TypeName())
	}
	return fmt.Sprintf("struct<%s>", strings.Join(parts, ", "))
}

// ToString produces a string representation of a value of a StructColumnType value
func (b *StructColumnType) ToString(v any) string {
	sv := v.(StructValue)
	var res strings.Builder
	fmt.Fprint(&res, "{")
	for i, f := range b.Fields {
		if i > 0 {
			fmt.Fprint(&res, ", ")
		}
		fmt.Fprintf(&res, "\"%s\": %s", f.Name, valueToString(f.Type, sv[i]))
	}
	fmt.Fprint(&res, "}")
	return res.String()
}

// ListColumnType is a column type which stores a variable-length array of
// values of a single element type. Values are []any.
type ListColumnType struct {
	Elem ColumnType
}

// ListOf is a convenience constructor for ListColumnTypes
func ListOf(elem ColumnType) *ListColumnType {
	return &ListColumnType{Elem: elem}
}

// TypeName returns the name of a ListColumnType
func (b *ListColumnType) TypeName() string {
	return fmt.Sprintf("list<%s>", b.Elem.TypeName())
}

// ToString produces a string representation of a value of a ListColumnType value
func (b *ListColumnType) ToString(v any) string {
	lv := v.([]any)
	var res strings.Builder
	fmt.Fprint(&res, "[")
	for i, e := range lv {
		if i > 0 {
			fmt.Fprint(&res, ", ")
		}
		fmt.Fprint(&res, valueToString(b.Elem, e))
	}
	fmt.Fprint(&res, "]")
	return res.String()
}

func valueToString(t ColumnType, v any) string {
	if v == nil {
		return "nil"
	}
	return t.ToString(v)
}

// IsStruct returns the StructColumnType behind colType, if it is one
func IsStruct(colType ColumnType) (st *StructColumnType, isStruct bool) {
	st, isStruct = colType.(*StructColumnType)
	return
}

// IsList returns the ListColumnType behind colType, if it is one
func IsList(colType ColumnType) (lt *ListColumnType, isList bool) {
	lt, isList = colType.(*ListColumnType)
	return
}
