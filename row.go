package reshape

import "time"

// Row is a representation of a single row of tabular data, along with a
// reference to the Schema for that row. In practice, users of Row will call
// its getter methods to retrieve data; Rows are produced by Frame.Collect()
type Row interface {
	Schema() Schema                                 // Schema returns the schema for a row
	ToString() string                               // ToString returns a string representation of this row
	Values() []any                                  // Values returns the raw values of this row, in column index order
	IsNil(colName string) bool                      // IsNil returns true iff the given column value is nil in this row. If an error occurs, this function will return false.
	Get(colName string) (col any, err error)        // Get returns the value of any column, if it exists
	GetBool(colName string) (col bool, err error)   // GetBool retrieves a single bool from the column with the given name.
	GetInt32(colName string) (col int32, err error) // GetInt32 retrieves a single int32 from the column with the given name
	GetInt64(colName string) (col int64, err error) // GetInt64 retrieves a single int64 from the column with the given name
	GetFloat32(colName string) (col float32, err error)
	GetFloat64(colName string) (col float64, err error)
	GetTime(colName string) (col time.Time, err error)
	GetVarString(colName string) (col string, err error)          // GetVarString retrieves a single string from the column with the given name
	GetVarBytes(colName string) (col []byte, err error)           // GetVarBytes retrieves a variable-length byte array from the column with the given name
	GetStruct(colName string) (col StructValue, err error)        // GetStruct retrieves the fields of a struct column
	GetList(colName string) (col []any, err error)                // GetList retrieves the elements of a list column
	GetField(colName string, path ...string) (col any, err error) // GetField follows struct fields below a struct column
}
