// Package arrowframe provides a columnar engine for reshape, backed by Apache
// Arrow records. Columns which an operation copies unchanged are shared with
// the source record; computed columns are evaluated row by row and rebuilt.
package arrowframe

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/go-sif/reshape"
	errors "github.com/go-sif/reshape/errors"
	"github.com/go-sif/reshape/internal/partition"
	"github.com/go-sif/reshape/logging"
	"github.com/sirupsen/logrus"
)

// DataFrame is an immutable table backed by a single Arrow record. Every
// DataFrame owns a reference to its record, which Release gives up.
type DataFrame struct {
	mem    memory.Allocator
	schema reshape.Schema
	record arrow.Record
}

// CreateDataFrame builds a DataFrame from rows of plain Go values, which are
// coerced to the types of their Schema columns. A nil allocator defaults to
// Go's allocator.
func CreateDataFrame(schema reshape.Schema, rows [][]any, mem memory.Allocator) (*DataFrame, error) {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	types := schema.ColumnTypes()
	coerced := make([][]any, len(rows))
	for i, row := range rows {
		if len(row) != len(types) {
			return nil, errors.IncompatibleRowError{Expected: len(types), Actual: len(row)}
		}
		values := make([]any, len(row))
		for j, v := range row {
			cv, err := reshape.CoerceValue(types[j], v)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", i, schema.ColumnNames()[j], err)
			}
			values[j] = cv
		}
		coerced[i] = values
	}
	return build(mem, schema, coerced)
}

// FromRecord wraps an existing Arrow record, retaining it
func FromRecord(rec arrow.Record, mem memory.Allocator) (*DataFrame, error) {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	schema, err := FromArrowSchema(rec.Schema())
	if err != nil {
		return nil, err
	}
	rec.Retain()
	return &DataFrame{mem: mem, schema: schema, record: rec}, nil
}

// FromFrame copies the rows of any reshape.Frame into a new DataFrame
func FromFrame(f reshape.Frame, mem memory.Allocator) (*DataFrame, error) {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	rows, err := rowValues(f)
	if err != nil {
		return nil, err
	}
	return build(mem, f.Schema().Clone(), rows)
}

func rowValues(f reshape.Frame) ([][]any, error) {
	if df, ok := f.(*DataFrame); ok {
		return df.rows(), nil
	}
	rows, err := f.Collect()
	if err != nil {
		return nil, err
	}
	res := make([][]any, len(rows))
	for i, row := range rows {
		res[i] = row.Values()
	}
	return res, nil
}

// build appends rows, given as values in Schema index order, into a new record
func build(mem memory.Allocator, schema reshape.Schema, rows [][]any) (*DataFrame, error) {
	arrowSchema, err := ToArrowSchema(schema)
	if err != nil {
		return nil, err
	}
	cols := make([]arrow.Array, schema.NumColumns())
	defer func() {
		for _, c := range cols {
			if c != nil {
				c.Release()
			}
		}
	}()
	for c, field := range arrowSchema.Fields() {
		arr, err := buildColumn(mem, field.Type, rows, c)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", field.Name, err)
		}
		cols[c] = arr
	}
	rec := array.NewRecord(arrowSchema, cols, int64(len(rows)))
	return &DataFrame{mem: mem, schema: schema, record: rec}, nil
}

func buildColumn(mem memory.Allocator, dt arrow.DataType, rows [][]any, c int) (arrow.Array, error) {
	b := array.NewBuilder(mem, dt)
	defer b.Release()
	b.Reserve(len(rows))
	for _, row := range rows {
		if err := appendValue(b, row[c]); err != nil {
			return nil, err
		}
	}
	return b.NewArray(), nil
}

// Record returns the Arrow record behind this DataFrame. The record remains
// owned by the DataFrame; callers which keep it must Retain it.
func (df *DataFrame) Record() arrow.Record {
	return df.record
}

// Release gives up this DataFrame's reference to its record
func (df *DataFrame) Release() {
	if df.record != nil {
		df.record.Release()
		df.record = nil
	}
}

func (df *DataFrame) logger(op string) *logrus.Entry {
	return logging.Logger().WithFields(logrus.Fields{
		"engine":    "arrow",
		"operation": op,
		"rows":      df.record.NumRows(),
	})
}

// rows decodes every row of the record, in order
func (df *DataFrame) rows() [][]any {
	n := int(df.record.NumRows())
	numCols := int(df.record.NumCols())
	res := make([][]any, n)
	for r := 0; r < n; r++ {
		res[r] = make([]any, numCols)
	}
	for c := 0; c < numCols; c++ {
		col := df.record.Column(c)
		for r := 0; r < n; r++ {
			res[r][c] = valueAt(col, r)
		}
	}
	return res
}

// Schema returns the Schema of this DataFrame
func (df *DataFrame) Schema() reshape.Schema {
	return df.schema.Clone()
}

// NumRows returns the number of rows in this DataFrame
func (df *DataFrame) NumRows() (int, error) {
	return int(df.record.NumRows()), nil
}

// Collect materializes the rows of this DataFrame, in order
func (df *DataFrame) Collect() ([]reshape.Row, error) {
	rows := df.rows()
	res := make([]reshape.Row, len(rows))
	for i, values := range rows {
		res[i] = partition.CreateRow("arrow", values, df.schema)
	}
	return res, nil
}

// Limit keeps the first n rows of this DataFrame
func (df *DataFrame) Limit(n int) (reshape.Frame, error) {
	if n < 0 {
		return nil, fmt.Errorf("limit must not be negative, but was %d", n)
	}
	rows := df.rows()
	if n < len(rows) {
		rows = rows[:n]
	}
	return df.derive(df.schema, rows)
}

func (df *DataFrame) derive(schema reshape.Schema, rows [][]any) (reshape.Frame, error) {
	res, err := build(df.mem, schema, rows)
	if err != nil {
		return nil, err
	}
	return res, nil
}
