package rowops

import (
	"github.com/go-sif/reshape"
	"github.com/go-sif/reshape/schema"
)

// reorder rebuilds a Schema with its columns in the given order
func reorder(s reshape.Schema, names []string) (reshape.Schema, error) {
	res := schema.CreateSchema()
	for _, name := range names {
		col, err := s.GetColumn(name)
		if err != nil {
			return nil, err
		}
		if _, err := res.CreateColumn(name, col.Type()); err != nil {
			return nil, err
		}
	}
	return res, nil
}
