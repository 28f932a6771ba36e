// Package memory provides an in-process, partitioned, row-oriented engine
// for reshape. Rows are held in bounded Partitions, and operations evaluate
// Partitions concurrently while preserving row order.
package memory

import (
	"fmt"

	"github.com/go-sif/reshape"
	errors "github.com/go-sif/reshape/errors"
	"github.com/go-sif/reshape/internal/partition"
	"github.com/go-sif/reshape/logging"
	"github.com/sirupsen/logrus"
)

// DataFrame is an immutable, partitioned table of rows
type DataFrame struct {
	conf   *Conf
	schema reshape.Schema
	parts  []*partition.Partition
}

// CreateDataFrame is a factory for DataFrames. Values are coerced to the types
// of their Schema columns, so plain Go values (such as int for an int64 column,
// or map[string]any for a struct column) are accepted.
func CreateDataFrame(schema reshape.Schema, rows [][]any, conf *Conf) (*DataFrame, error) {
	conf = withDefaults(conf)
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
	return fromRows(conf, schema, coerced)
}

// FromFrame copies the rows of any reshape.Frame into a new DataFrame
func FromFrame(f reshape.Frame, conf *Conf) (*DataFrame, error) {
	if df, ok := f.(*DataFrame); ok {
		return df, nil
	}
	rows, err := rowValues(f)
	if err != nil {
		return nil, err
	}
	return fromRows(withDefaults(conf), f.Schema().Clone(), rows)
}

func fromRows(conf *Conf, schema reshape.Schema, rows [][]any) (*DataFrame, error) {
	parts, err := partition.Split(conf.PartitionSize, schema, rows)
	if err != nil {
		return nil, err
	}
	return &DataFrame{conf: conf, schema: schema, parts: parts}, nil
}

func rowValues(f reshape.Frame) ([][]any, error) {
	if df, ok := f.(*DataFrame); ok {
		return df.values(), nil
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

func (df *DataFrame) values() [][]any {
	n := 0
	for _, p := range df.parts {
		n += p.GetNumRows()
	}
	res := make([][]any, 0, n)
	for _, p := range df.parts {
		for i := 0; i < p.GetNumRows(); i++ {
			res = append(res, p.GetRowValues(i))
		}
	}
	return res
}

func (df *DataFrame) derive(schema reshape.Schema, parts []*partition.Partition) *DataFrame {
	return &DataFrame{conf: df.conf, schema: schema, parts: parts}
}

func (df *DataFrame) logger(op string) *logrus.Entry {
	return logging.Logger().WithFields(logrus.Fields{
		"engine":     "memory",
		"operation":  op,
		"partitions": len(df.parts),
	})
}

// Schema returns the Schema of this DataFrame
func (df *DataFrame) Schema() reshape.Schema {
	return df.schema.Clone()
}

// NumPartitions returns the number of Partitions holding this DataFrame's rows
func (df *DataFrame) NumPartitions() int {
	return len(df.parts)
}

// NumRows returns the number of rows in this DataFrame
func (df *DataFrame) NumRows() (int, error) {
	n := 0
	for _, p := range df.parts {
		n += p.GetNumRows()
	}
	return n, nil
}

// Collect materializes the rows of this DataFrame, in order
func (df *DataFrame) Collect() ([]reshape.Row, error) {
	res := make([]reshape.Row, 0)
	for _, p := range df.parts {
		for i := 0; i < p.GetNumRows(); i++ {
			res = append(res, partition.CreateRow(p.ID(), p.GetRowValues(i), df.schema))
		}
	}
	return res, nil
}

// Limit keeps the first n rows of this DataFrame
func (df *DataFrame) Limit(n int) (reshape.Frame, error) {
	if n < 0 {
		return nil, fmt.Errorf("limit must not be negative, but was %d", n)
	}
	parts := make([]*partition.Partition, 0)
	remaining := n
	for _, p := range df.parts {
		if remaining <= 0 {
			break
		}
		if p.GetNumRows() <= remaining {
			parts = append(parts, p)
			remaining -= p.GetNumRows()
			continue
		}
		kept, err := partition.Split(df.conf.PartitionSize, df.schema, df.partRows(p, remaining))
		if err != nil {
			return nil, err
		}
		parts = append(parts, kept...)
		remaining = 0
	}
	if len(parts) == 0 {
		parts = append(parts, partition.CreatePartition(df.conf.PartitionSize, df.schema))
	}
	return df.derive(df.schema, parts), nil
}

func (df *DataFrame) partRows(p *partition.Partition, n int) [][]any {
	res := make([][]any, n)
	for i := range res {
		res[i] = p.GetRowValues(i)
	}
	return res
}
