package errors

import (
	"fmt"
	"strings"
)

// NilValueError occurs when a value in a Row is null
type NilValueError struct{ Name string }

// Error returns a textual representation of this NilValueError
func (e NilValueError) Error() string {
	return fmt.Sprintf("Value for column %s is nil", e.Name)
}

// IncompatibleRowError occurs when a Row's width does not match an expected Schema
type IncompatibleRowError struct {
	Expected int
	Actual   int
}

// Error returns a textual representation of this IncompatibleRowError
func (e IncompatibleRowError) Error() string {
	return fmt.Sprintf("Row width %d is not compatible with Schema of %d columns", e.Actual, e.Expected)
}

// PartitionFullError occurs when a Partition has reached its max size an a new Row insertion is attempted
type PartitionFullError struct{}

// Error returns a textual representation of this PartitionFullError
func (e PartitionFullError) Error() string {
	return "Partition is full"
}

// NoSuchColumnError occurs when an expression or operation references a column which is not in a Schema
type NoSuchColumnError struct{ Name string }

// Error returns a textual representation of this NoSuchColumnError
func (e NoSuchColumnError) Error() string {
	return fmt.Sprintf("Schema does not contain column with name %s", e.Name)
}

// NoSuchFieldError occurs when a struct field access names a field which the struct does not have
type NoSuchFieldError struct {
	Path  string
	Field string
}

// Error returns a textual representation of this NoSuchFieldError
func (e NoSuchFieldError) Error() string {
	return fmt.Sprintf("Struct %s does not contain field %s", e.Path, e.Field)
}

// TypeMismatchError occurs when a value or column does not have the type an operation requires
type TypeMismatchError struct {
	Name     string
	Expected string
	Actual   string
}

// Error returns a textual representation of this TypeMismatchError
func (e TypeMismatchError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("Expected a value of type %s, but found %s", e.Expected, e.Actual)
	}
	return fmt.Sprintf("Column %s should be of type %s, but is %s", e.Name, e.Expected, e.Actual)
}

// ExplodeLengthMismatchError occurs when arrays which are exploded together have different lengths within a row
type ExplodeLengthMismatchError struct {
	Columns []string
	Lengths []int
}

// Error returns a textual representation of this ExplodeLengthMismatchError
func (e ExplodeLengthMismatchError) Error() string {
	return fmt.Sprintf("Exploded columns [%s] have mismatched lengths %v", strings.Join(e.Columns, ", "), e.Lengths)
}
