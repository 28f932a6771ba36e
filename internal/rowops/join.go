package rowops

import (
	"fmt"

	"github.com/go-sif/reshape"
	errors "github.com/go-sif/reshape/errors"
	"github.com/go-sif/reshape/internal/keys"
	"github.com/go-sif/reshape/schema"
)

// Join describes how rows of two Schemas are combined. Output columns are
// the key columns, then the left non-key columns, then the right non-key
// columns. Key columns are coalesced from whichever side has a value.
type Join struct {
	how         reshape.JoinType
	schema      reshape.Schema
	leftKeys    []int
	rightKeys   []int
	leftValues  []int
	rightValues []int
}

// PlanJoin validates the join keys and computes the output Schema
func PlanJoin(left reshape.Schema, right reshape.Schema, on []string, how reshape.JoinType) (*Join, error) {
	j := &Join{how: how, schema: schema.CreateSchema()}
	if how == reshape.CrossJoin && len(on) > 0 {
		return nil, fmt.Errorf("cross joins do not take key columns, but got %v", on)
	} else if how != reshape.CrossJoin && len(on) == 0 {
		return nil, fmt.Errorf("%s joins require at least one key column", how)
	}
	isKey := make(map[string]bool, len(on))
	for _, name := range on {
		if isKey[name] {
			return nil, errors.ColumnCollisionError{Name: name}
		}
		isKey[name] = true
		lcol, err := left.GetColumn(name)
		if err != nil {
			return nil, err
		}
		rcol, err := right.GetColumn(name)
		if err != nil {
			return nil, err
		}
		if !reshape.ColumnTypesEqual(lcol.Type(), rcol.Type()) {
			return nil, errors.TypeMismatchError{Name: name, Expected: lcol.Type().TypeName(), Actual: rcol.Type().TypeName()}
		}
		j.leftKeys = append(j.leftKeys, lcol.Index())
		j.rightKeys = append(j.rightKeys, rcol.Index())
		if _, err := j.schema.CreateColumn(name, lcol.Type()); err != nil {
			return nil, err
		}
	}
	err := left.ForEachColumn(func(name string, col reshape.Column) error {
		if isKey[name] {
			return nil
		}
		j.leftValues = append(j.leftValues, col.Index())
		_, err := j.schema.CreateColumn(name, col.Type())
		return err
	})
	if err != nil {
		return nil, err
	}
	err = right.ForEachColumn(func(name string, col reshape.Column) error {
		if isKey[name] {
			return nil
		}
		j.rightValues = append(j.rightValues, col.Index())
		_, err := j.schema.CreateColumn(name, col.Type())
		return err
	})
	if err != nil {
		return nil, err
	}
	return j, nil
}

// Schema returns the Schema of rows produced by this Join
func (j *Join) Schema() reshape.Schema {
	return j.schema
}

// Index is a hash table over the rows of the right side of a Join
type Index struct {
	rows    [][]any
	buckets map[uint64][]int
}

// BuildIndex hashes the right-hand rows of a Join on their key columns.
// Rows with null keys are never indexed.
func (j *Join) BuildIndex(rightRows [][]any) *Index {
	idx := &Index{rows: rightRows, buckets: make(map[uint64][]int)}
	if j.how == reshape.CrossJoin {
		return idx
	}
	for i, row := range rightRows {
		h, ok := keys.Hash(pick(row, j.rightKeys))
		if !ok {
			continue
		}
		idx.buckets[h] = append(idx.buckets[h], i)
	}
	return idx
}

// NumRows returns the number of right-hand rows in this Index
func (idx *Index) NumRows() int {
	return len(idx.rows)
}

// Probe produces the output rows for a single left-hand row, in right-hand
// row order. matched is called with the position of every right-hand row
// which paired with it.
func (j *Join) Probe(idx *Index, left []any, matched func(rightRow int)) [][]any {
	var res [][]any
	if j.how == reshape.CrossJoin {
		for i, right := range idx.rows {
			res = append(res, j.combine(left, right))
			matched(i)
		}
		return res
	}
	leftKey := pick(left, j.leftKeys)
	if h, ok := keys.Hash(leftKey); ok {
		for _, i := range idx.buckets[h] {
			right := idx.rows[i]
			if keys.Equal(leftKey, pick(right, j.rightKeys)) {
				res = append(res, j.combine(left, right))
				matched(i)
			}
		}
	}
	if len(res) == 0 && (j.how == reshape.LeftJoin || j.how == reshape.OuterJoin) {
		res = append(res, j.combine(left, nil))
	}
	return res
}

// Unmatched produces output rows for the right-hand rows which never paired
// with a left-hand row, for outer joins only
func (j *Join) Unmatched(idx *Index, matched []bool) [][]any {
	if j.how != reshape.OuterJoin {
		return nil
	}
	var res [][]any
	for i, right := range idx.rows {
		if !matched[i] {
			res = append(res, j.combine(nil, right))
		}
	}
	return res
}

func (j *Join) combine(left []any, right []any) []any {
	row := make([]any, 0, j.schema.NumColumns())
	for i := range j.leftKeys {
		var v any
		if left != nil {
			v = left[j.leftKeys[i]]
		}
		if v == nil && right != nil {
			v = right[j.rightKeys[i]]
		}
		row = append(row, v)
	}
	for _, idx := range j.leftValues {
		if left == nil {
			row = append(row, nil)
		} else {
			row = append(row, left[idx])
		}
	}
	for _, idx := range j.rightValues {
		if right == nil {
			row = append(row, nil)
		} else {
			row = append(row, right[idx])
		}
	}
	return row
}

func pick(row []any, indices []int) []any {
	res := make([]any, len(indices))
	for i, idx := range indices {
		res[i] = row[idx]
	}
	return res
}
