package rowops

import (
	"fmt"

	"github.com/go-sif/reshape"
)

// Fill replaces null values in some columns with constants
type Fill struct {
	schema reshape.Schema
	fills  map[int]any
}

// PlanFillNull checks that every target column exists, and coerces each fill
// value to its column's type
func PlanFillNull(s reshape.Schema, values map[string]any) (*Fill, error) {
	fills := make(map[int]any, len(values))
	for name, v := range values {
		col, err := s.GetColumn(name)
		if err != nil {
			return nil, err
		}
		cv, err := reshape.CoerceValue(col.Type(), v)
		if err != nil {
			return nil, fmt.Errorf("fill value for column %s: %w", name, err)
		}
		if cv != nil {
			fills[col.Index()] = cv
		}
	}
	return &Fill{schema: s, fills: fills}, nil
}

// Schema returns the Schema of rows produced by this Fill, which is unchanged
func (f *Fill) Schema() reshape.Schema {
	return f.schema
}

// Apply fills a single row
func (f *Fill) Apply(values []any) ([]any, error) {
	var res []any
	for idx, fill := range f.fills {
		if values[idx] != nil {
			continue
		}
		if res == nil {
			res = make([]any, len(values))
			copy(res, values)
		}
		res[idx] = fill
	}
	if res == nil {
		return values, nil
	}
	return res, nil
}
