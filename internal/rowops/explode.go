package rowops

import (
	"fmt"

	"github.com/go-sif/reshape"
	errors "github.com/go-sif/reshape/errors"
)

// Explosion expands list columns together, producing one row per zipped element
type Explosion struct {
	schema  reshape.Schema
	names   []string
	indices []int
}

// PlanExplode checks that every named column is a list, and computes the
// resulting Schema, in which each exploded column has its element type
func PlanExplode(s reshape.Schema, colNames ...string) (*Explosion, error) {
	if len(colNames) == 0 {
		return nil, fmt.Errorf("at least one column must be exploded")
	}
	newSchema := s.Clone()
	indices := make([]int, len(colNames))
	seen := make(map[string]bool, len(colNames))
	for i, name := range colNames {
		if seen[name] {
			return nil, errors.ColumnCollisionError{Name: name}
		}
		seen[name] = true
		col, err := s.GetColumn(name)
		if err != nil {
			return nil, err
		}
		lt, ok := reshape.IsList(col.Type())
		if !ok {
			return nil, errors.TypeMismatchError{Name: name, Expected: "list", Actual: col.Type().TypeName()}
		}
		indices[i] = col.Index()
		// swap in the element type, keeping the position
		if _, err := newSchema.RemoveColumn(name); err != nil {
			return nil, err
		}
		if _, err := newSchema.CreateColumn(name, lt.Elem); err != nil {
			return nil, err
		}
	}
	ordered, err := reorder(newSchema, s.ColumnNames())
	if err != nil {
		return nil, err
	}
	return &Explosion{schema: ordered, names: colNames, indices: indices}, nil
}

// Schema returns the Schema of rows produced by this Explosion
func (e *Explosion) Schema() reshape.Schema {
	return e.schema
}

// Apply explodes a single row. Null lists count as empty. A row whose lists
// are all empty produces no rows, and lists of unequal length are an error.
func (e *Explosion) Apply(values []any) ([][]any, error) {
	n := -1
	lengths := make([]int, len(e.indices))
	mismatch := false
	for i, idx := range e.indices {
		if values[idx] != nil {
			lengths[i] = len(values[idx].([]any))
		}
		if n >= 0 && lengths[i] != n {
			mismatch = true
		}
		n = lengths[i]
	}
	if mismatch {
		return nil, errors.ExplodeLengthMismatchError{Columns: e.names, Lengths: lengths}
	}
	res := make([][]any, n)
	for j := 0; j < n; j++ {
		row := make([]any, len(values))
		copy(row, values)
		for _, idx := range e.indices {
			row[idx] = values[idx].([]any)[j]
		}
		res[j] = row
	}
	return res, nil
}
