package reshape

import (
	"fmt"
	"time"
)

// ColumnType is an interface which is implemented to define supported column types.
// Reshape provides a variety of built-in scalar and nested types.
type ColumnType interface {
	TypeName() string      // TypeName returns a readable name for this type, such as int64 or struct<a: int64>
	ToString(v any) string // ToString produces a string representation of a value of this type
}

// BoolColumnType is a column type which stores a boolean value
type BoolColumnType struct{}

// TypeName returns the name of a BoolColumnType
func (b *BoolColumnType) TypeName() string {
	return "bool"
}

// ToString produces a string representation of a value of a BoolColumnType value
func (b *BoolColumnType) ToString(v any) string {
	return fmt.Sprintf("%t", v.(bool))
}

// Int32ColumnType is a column type which stores a int32 value
type Int32ColumnType struct{}

// TypeName returns the name of a Int32ColumnType
func (b *Int32ColumnType) TypeName() string {
	return "int32"
}

// ToString produces a string representation of a value of a Int32ColumnType value
func (b *Int32ColumnType) ToString(v any) string {
	return fmt.Sprintf("%d", v.(int32))
}

// Int64ColumnType is a column type which stores a int64 value
type Int64ColumnType struct{}

// TypeName returns the name of a Int64ColumnType
func (b *Int64ColumnType) TypeName() string {
	return "int64"
}

// ToString produces a string representation of a value of a Int64ColumnType value
func (b *Int64ColumnType) ToString(v any) string {
	return fmt.Sprintf("%d", v.(int64))
}

// Float32ColumnType is a column type which stores a float32 value
type Float32ColumnType struct{}

// TypeName returns the name of a Float32ColumnType
func (b *Float32ColumnType) TypeName() string {
	return "float32"
}

// ToString produces a string representation of a value of a Float32ColumnType value
func (b *Float32ColumnType) ToString(v any) string {
	return fmt.Sprintf("%f", v.(float32))
}

// Float64ColumnType is a column type which stores a float64 value
type Float64ColumnType struct{}

// TypeName returns the name of a Float64ColumnType
func (b *Float64ColumnType) TypeName() string {
	return "float64"
}

// ToString produces a string representation of a value of a Float64ColumnType value
func (b *Float64ColumnType) ToString(v any) string {
	return fmt.Sprintf("%f", v.(float64))
}

// TimeColumnType is a column type which stores a time.Time value. Format is used when
// parsing textual sources, and defaults to time.RFC3339.
type TimeColumnType struct {
	Format string
}

// TypeName returns the name of a TimeColumnType
func (b *TimeColumnType) TypeName() string {
	return "time"
}

// ToString produces a string representation of a value of a TimeColumnType value
func (b *TimeColumnType) ToString(v any) string {
	return fmt.Sprintf("\"%s\"", v.(time.Time).String())
}

// TimeFormat returns the configured parsing format of this TimeColumnType
func (b *TimeColumnType) TimeFormat() string {
	if b.Format == "" {
		return time.RFC3339
	}
	return b.Format
}
